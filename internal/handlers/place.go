package handlers

import (
	"errors"
	"io"
	"net/http"

	"places-backend/internal/middleware"
	"places-backend/internal/models"
	"places-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// PlaceHandler handles place-related HTTP requests
type PlaceHandler struct {
	placeService *services.PlaceService
}

// NewPlaceHandler creates a new place handler
func NewPlaceHandler(placeService *services.PlaceService) *PlaceHandler {
	return &PlaceHandler{
		placeService: placeService,
	}
}

// PlaceResponse wraps a single place
type PlaceResponse struct {
	Place *models.Place `json:"place"`
}

// PlacesResponse wraps a list of places
type PlacesResponse struct {
	Places []*models.Place `json:"places"`
}

// GetPlaceByID handles GET /api/places/{pid}
func (h *PlaceHandler) GetPlaceByID(w http.ResponseWriter, r *http.Request) {
	placeID := chi.URLParam(r, "pid")

	place, err := h.placeService.GetPlaceByID(r.Context(), placeID)
	if err != nil {
		respondServiceError(w, r, err, "Failed to get place")
		return
	}

	respondJSON(w, http.StatusOK, PlaceResponse{Place: place})
}

// GetPlacesByUserID handles GET /api/places/user/{uid}
func (h *PlaceHandler) GetPlacesByUserID(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "uid")

	places, err := h.placeService.GetPlacesByUserID(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, err, "Failed to get places by user")
		return
	}

	respondJSON(w, http.StatusOK, PlacesResponse{Places: places})
}

// CreatePlace handles POST /api/places
func (h *PlaceHandler) CreatePlace(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req services.CreatePlaceRequest
	if err := decodeJSON(r, &req); err != nil {
		respondServiceError(w, r, errors.Join(services.ErrInvalidInput, err), "Invalid request body")
		return
	}

	place, err := h.placeService.CreatePlace(ctx, middleware.GetUserID(ctx), req)
	if err != nil {
		respondServiceError(w, r, err, "Failed to create place")
		return
	}

	log.Info().
		Str("place_id", place.ID).
		Str("creator", place.Creator).
		Msg("Place created")

	respondJSON(w, http.StatusCreated, PlaceResponse{Place: place})
}

// UpdatePlace handles PATCH /api/places/{pid}
func (h *PlaceHandler) UpdatePlace(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	placeID := chi.URLParam(r, "pid")

	var req services.UpdatePlaceRequest
	if err := decodeJSON(r, &req); err != nil {
		respondServiceError(w, r, errors.Join(services.ErrInvalidInput, err), "Invalid request body")
		return
	}

	place, err := h.placeService.UpdatePlace(ctx, middleware.GetUserID(ctx), placeID, req)
	if err != nil {
		respondServiceError(w, r, err, "Failed to update place")
		return
	}

	log.Info().Str("place_id", place.ID).Msg("Place updated")

	respondJSON(w, http.StatusOK, PlaceResponse{Place: place})
}

// DeletePlace handles DELETE /api/places/{pid}
func (h *PlaceHandler) DeletePlace(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	placeID := chi.URLParam(r, "pid")

	if err := h.placeService.DeletePlace(ctx, middleware.GetUserID(ctx), placeID); err != nil {
		respondServiceError(w, r, err, "Failed to delete place")
		return
	}

	log.Info().Str("place_id", placeID).Msg("Place deleted")

	respondJSON(w, http.StatusOK, MessageResponse{Message: "Deleted place."})
}

// RequestImageUpload handles POST /api/places/{pid}/image
func (h *PlaceHandler) RequestImageUpload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	placeID := chi.URLParam(r, "pid")

	var req services.ImageUploadRequest
	if err := decodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		respondServiceError(w, r, errors.Join(services.ErrInvalidInput, err), "Invalid request body")
		return
	}
	if req.ContentType == "" {
		req.ContentType = "image/jpeg"
	}

	response, err := h.placeService.RequestImageUpload(ctx, middleware.GetUserID(ctx), placeID, req.ContentType)
	if err != nil {
		respondServiceError(w, r, err, "Failed to generate pre-signed URL")
		return
	}

	log.Info().
		Str("place_id", placeID).
		Str("image_url", response.ImageURL).
		Msg("Pre-signed URL generated")

	respondJSON(w, http.StatusOK, response)
}
