package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to every environment variable read by Load
const EnvPrefix = "PLACES_"

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig    `yaml:"server" envPrefix:"SERVER_"`
	Storage   StorageConfig   `yaml:"storage" envPrefix:"STORAGE_"`
	Database  DatabaseConfig  `yaml:"database" envPrefix:"DB_"`
	Geocoding GeocodingConfig `yaml:"geocoding" envPrefix:"GEOCODING_"`
	AWS       AWSConfig       `yaml:"aws" envPrefix:"AWS_"`
	JWT       JWTConfig       `yaml:"jwt" envPrefix:"JWT_"`
	Auth      AuthConfig      `yaml:"auth" envPrefix:"AUTH_"`
	Log       LogConfig       `yaml:"log" envPrefix:"LOG_"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            int           `yaml:"port" env:"PORT"`
	Host            string        `yaml:"host" env:"HOST"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT"`
}

// StorageConfig selects the repository backend.
// Seed only applies to postgres; the memory backend is always seeded.
type StorageConfig struct {
	Driver string `yaml:"driver" env:"DRIVER"`
	Seed   bool   `yaml:"seed" env:"SEED"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string `yaml:"host" env:"HOST"`
	Port     int    `yaml:"port" env:"PORT"`
	User     string `yaml:"user" env:"USER"`
	Password string `yaml:"password" env:"PASSWORD"`
	DBName   string `yaml:"dbname" env:"NAME"`
	SSLMode  string `yaml:"sslmode" env:"SSLMODE"`
}

// GeocodingConfig holds geocoding configuration.
// With an empty APIKey the fixed fallback coordinates are used.
type GeocodingConfig struct {
	BaseURL     string        `yaml:"base_url" env:"BASE_URL"`
	APIKey      string        `yaml:"api_key" env:"API_KEY"`
	Timeout     time.Duration `yaml:"timeout" env:"TIMEOUT"`
	FallbackLat float64       `yaml:"fallback_lat" env:"FALLBACK_LAT"`
	FallbackLng float64       `yaml:"fallback_lng" env:"FALLBACK_LNG"`
}

// AWSConfig holds AWS configuration. Image uploads are disabled without a bucket.
type AWSConfig struct {
	Region    string `yaml:"region" env:"REGION"`
	S3Bucket  string `yaml:"s3_bucket" env:"S3_BUCKET"`
	AccessKey string `yaml:"access_key" env:"ACCESS_KEY"`
	SecretKey string `yaml:"secret_key" env:"SECRET_KEY"`
	Endpoint  string `yaml:"endpoint" env:"ENDPOINT"`
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret string        `yaml:"secret" env:"SECRET"`
	Issuer string        `yaml:"issuer" env:"ISSUER"`
	TTL    time.Duration `yaml:"ttl" env:"TTL"`
}

// AuthConfig controls whether place mutations require a bearer token
type AuthConfig struct {
	RequireToken bool `yaml:"require_token" env:"REQUIRE_TOKEN"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `yaml:"level" env:"LEVEL"`
	Pretty bool   `yaml:"pretty" env:"PRETTY"`
}

// Default returns the values used for every field the file and environment leave unset
func Default() Config {
	return Config{
		Server: ServerConfig{
			Port:            5000,
			Host:            "0.0.0.0",
			ShutdownTimeout: 15 * time.Second,
		},
		Storage: StorageConfig{
			Driver: StorageMemory,
		},
		Database: DatabaseConfig{
			Host:    "localhost",
			Port:    5432,
			SSLMode: "disable",
		},
		Geocoding: GeocodingConfig{
			BaseURL:     "https://maps.googleapis.com",
			Timeout:     10 * time.Second,
			FallbackLat: 40.7484474,
			FallbackLng: -73.9871516,
		},
		AWS: AWSConfig{
			Region: "us-east-1",
		},
		JWT: JWTConfig{
			Issuer: "places-backend",
			TTL:    time.Hour,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load starts from Default, overlays the YAML file and then the PLACES_*
// environment. Values set explicitly, including zeros, are kept.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("failed to parse env config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the loaded configuration
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port %d is out of range", c.Server.Port))
	}
	if c.Storage.Driver != StorageMemory && c.Storage.Driver != StoragePostgres {
		errs = append(errs, fmt.Errorf("storage.driver %q is not supported", c.Storage.Driver))
	}
	if c.Storage.Driver == StoragePostgres && c.Database.DBName == "" {
		errs = append(errs, errors.New("database.dbname is required for postgres storage"))
	}
	if c.JWT.Secret == "" {
		errs = append(errs, errors.New("jwt.secret is required"))
	}
	if c.JWT.TTL <= 0 {
		errs = append(errs, errors.New("jwt.ttl must be positive"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// DSN returns the PostgreSQL connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// ImagesEnabled reports whether an S3 bucket is configured
func (c *AWSConfig) ImagesEnabled() bool {
	return c.S3Bucket != ""
}
