package handlers

import (
	"errors"
	"net/http"

	"places-backend/internal/repository"
	"places-backend/internal/services"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const internalErrorMessage = "Something went wrong."

type errorMapping struct {
	target  error
	status  int
	message string
}

// errorMappings is checked in order; the first errors.Is match decides the response
var errorMappings = []errorMapping{
	{services.ErrInvalidInput, http.StatusUnprocessableEntity, "Invalid inputs passed, please check your data."},
	{repository.ErrEmailExists, http.StatusUnprocessableEntity, "Could not create user, email already exists."},
	{repository.ErrPlaceNotFound, http.StatusNotFound, "Could not find a place for the provided id."},
	{services.ErrPlacesNotFound, http.StatusNotFound, "Could not find places for the provided user id."},
	{services.ErrInvalidCredentials, http.StatusUnauthorized, "Could not identify user, credentials seem to be wrong."},
	{services.ErrInvalidToken, http.StatusUnauthorized, "Authentication failed."},
	{services.ErrNotPlaceCreator, http.StatusForbidden, "You are not allowed to modify this place."},
	{services.ErrLocationNotFound, http.StatusUnprocessableEntity, "Could not find location for the specified address."},
	{services.ErrGeocodingFailed, http.StatusBadGateway, "Could not resolve the address, please try again later."},
	{services.ErrImagesDisabled, http.StatusServiceUnavailable, "Image uploads are not available."},
}

// statusFromError returns the HTTP status and client message for err
func statusFromError(err error) (int, string) {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return m.status, m.message
		}
	}
	return http.StatusInternalServerError, internalErrorMessage
}

// respondServiceError logs err and renders it through errorMappings
func respondServiceError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	status, message := statusFromError(err)

	var event *zerolog.Event
	if status >= http.StatusInternalServerError {
		event = log.Error()
	} else {
		event = log.Warn()
	}
	event.
		Err(err).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("status", status).
		Msg(msg)

	respondError(w, message, status)
}
