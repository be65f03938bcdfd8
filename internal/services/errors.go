package services

import "errors"

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrPlacesNotFound     = errors.New("no places for user")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotPlaceCreator    = errors.New("user is not the creator of this place")
	ErrInvalidToken       = errors.New("invalid token")

	// ErrLocationNotFound is returned when the geocoder has no result for an address.
	ErrLocationNotFound = errors.New("location not found")
	// ErrGeocodingFailed wraps transport and upstream failures of the geocoder.
	ErrGeocodingFailed = errors.New("geocoding failed")

	ErrImagesDisabled       = errors.New("image storage is not configured")
	ErrUnsupportedImageType = errors.New("unsupported image content type")
)
