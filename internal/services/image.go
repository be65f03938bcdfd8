package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"places-backend/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ImageStore hands out pre-signed upload URLs for place images
type ImageStore interface {
	PresignUpload(ctx context.Context, key, contentType string, expires time.Duration) (uploadURL, objectURL string, err error)
}

// S3ImageStore stores place images in an S3 bucket
type S3ImageStore struct {
	presignClient *s3.PresignClient
	bucket        string
	region        string
	endpoint      string
}

// NewS3ImageStore creates an S3 image store from the AWS configuration.
// Static credentials are used when an access key is set, otherwise the
// default credential chain applies.
func NewS3ImageStore(ctx context.Context, cfg config.AWSConfig) (*S3ImageStore, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	endpoint := strings.TrimRight(cfg.Endpoint, "/")
	s3Client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3ImageStore{
		presignClient: s3.NewPresignClient(s3Client),
		bucket:        cfg.S3Bucket,
		region:        cfg.Region,
		endpoint:      endpoint,
	}, nil
}

// PresignUpload generates a pre-signed PUT URL for key and returns it with the object's public URL
func (s *S3ImageStore) PresignUpload(ctx context.Context, key, contentType string, expires time.Duration) (string, string, error) {
	request, err := s.presignClient.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = expires
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to generate pre-signed URL: %w", err)
	}

	return request.URL, s.objectURL(key), nil
}

func (s *S3ImageStore) objectURL(key string) string {
	if s.endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", s.endpoint, s.bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// imageExtension maps an upload content type to the stored file extension
func imageExtension(contentType string) (string, error) {
	ext, ok := imageExtensions[strings.ToLower(strings.TrimSpace(contentType))]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedImageType, contentType)
	}
	return ext, nil
}
