package services

import (
	"context"
	"fmt"
	"time"

	"places-backend/internal/models"

	"github.com/go-resty/resty/v2"
)

// Geocoder resolves a free-text address to coordinates
type Geocoder interface {
	Coordinates(ctx context.Context, address string) (models.Location, error)
}

const geocodePath = "/maps/api/geocode/json"

// GoogleGeocoder calls the Google Maps geocoding API
type GoogleGeocoder struct {
	client *resty.Client
	apiKey string
}

// NewGoogleGeocoder creates a geocoder for the API at baseURL
func NewGoogleGeocoder(baseURL, apiKey string, timeout time.Duration) *GoogleGeocoder {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")

	return &GoogleGeocoder{
		client: client,
		apiKey: apiKey,
	}
}

type geocodeResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Results      []struct {
		Geometry struct {
			Location models.Location `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// Coordinates returns the location of the first geocoding result
func (g *GoogleGeocoder) Coordinates(ctx context.Context, address string) (models.Location, error) {
	var result geocodeResponse

	resp, err := g.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"address": address,
			"key":     g.apiKey,
		}).
		SetResult(&result).
		Get(geocodePath)
	if err != nil {
		return models.Location{}, fmt.Errorf("%w: %w", ErrGeocodingFailed, err)
	}
	if resp.IsError() {
		return models.Location{}, fmt.Errorf("%w: unexpected status %d", ErrGeocodingFailed, resp.StatusCode())
	}

	switch {
	case result.Status == "ZERO_RESULTS":
		return models.Location{}, ErrLocationNotFound
	case result.Status != "OK":
		return models.Location{}, fmt.Errorf("%w: %s %s", ErrGeocodingFailed, result.Status, result.ErrorMessage)
	case len(result.Results) == 0:
		return models.Location{}, ErrLocationNotFound
	}

	return result.Results[0].Geometry.Location, nil
}

// StaticGeocoder resolves every address to the same location.
// Used when no geocoding API key is configured.
type StaticGeocoder struct {
	Location models.Location
}

// Coordinates returns the fixed location
func (g StaticGeocoder) Coordinates(ctx context.Context, _ string) (models.Location, error) {
	if err := ctx.Err(); err != nil {
		return models.Location{}, fmt.Errorf("%w: %w", ErrGeocodingFailed, err)
	}
	return g.Location, nil
}
