package services

import (
	"context"
	"fmt"
	"time"

	"places-backend/internal/models"
	"places-backend/internal/repository"

	"github.com/google/uuid"
)

const imageUploadTTL = 5 * time.Minute

// PlaceService handles place-related business logic
type PlaceService struct {
	placeRepo repository.PlaceRepository
	geocoder  Geocoder
	images    ImageStore
	events    EventPublisher
}

// NewPlaceService creates a new place service.
// images and events may be nil: uploads then fail with ErrImagesDisabled
// and no change events are published.
func NewPlaceService(
	placeRepo repository.PlaceRepository,
	geocoder Geocoder,
	images ImageStore,
	events EventPublisher,
) *PlaceService {
	return &PlaceService{
		placeRepo: placeRepo,
		geocoder:  geocoder,
		images:    images,
		events:    events,
	}
}

// CreatePlaceRequest represents a request to create a place
type CreatePlaceRequest struct {
	Title       string `json:"title" validate:"required,notblank"`
	Description string `json:"description" validate:"min=5"`
	Address     string `json:"address" validate:"required,notblank"`
	Creator     string `json:"creator" validate:"required,notblank"`
}

// UpdatePlaceRequest represents a request to update a place
type UpdatePlaceRequest struct {
	Title       string `json:"title" validate:"required,notblank"`
	Description string `json:"description" validate:"min=5"`
}

// ImageUploadRequest represents a request for a place image upload URL
type ImageUploadRequest struct {
	ContentType string `json:"contentType"`
}

// ImageUploadResponse represents the response with pre-signed URL
type ImageUploadResponse struct {
	UploadURL string `json:"uploadUrl"`
	ImageURL  string `json:"imageUrl"`
	ExpiresIn int    `json:"expiresIn"`
}

// GetPlaceByID retrieves a place
func (s *PlaceService) GetPlaceByID(ctx context.Context, placeID string) (*models.Place, error) {
	place, err := s.placeRepo.GetByID(ctx, placeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get place: %w", err)
	}
	return place, nil
}

// GetPlacesByUserID retrieves the places created by a user.
// A user without places is reported as ErrPlacesNotFound.
func (s *PlaceService) GetPlacesByUserID(ctx context.Context, userID string) ([]*models.Place, error) {
	places, err := s.placeRepo.GetByCreator(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get places by user: %w", err)
	}
	if len(places) == 0 {
		return nil, ErrPlacesNotFound
	}
	return places, nil
}

// CreatePlace geocodes the address and stores a new place.
// actorID is the authenticated caller, empty when the request carried no token.
func (s *PlaceService) CreatePlace(ctx context.Context, actorID string, req CreatePlaceRequest) (*models.Place, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	if actorID != "" && actorID != req.Creator {
		return nil, ErrNotPlaceCreator
	}

	location, err := s.geocoder.Coordinates(ctx, req.Address)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve address: %w", err)
	}

	place := &models.Place{
		ID:          uuid.New().String(),
		Title:       req.Title,
		Description: req.Description,
		Address:     req.Address,
		Location:    location,
		Creator:     req.Creator,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.placeRepo.Create(ctx, place); err != nil {
		return nil, fmt.Errorf("failed to create place: %w", err)
	}

	s.publish(MessagePlaceCreated, place.ID, place)
	return place, nil
}

// UpdatePlace replaces the title and description of a place
func (s *PlaceService) UpdatePlace(ctx context.Context, actorID, placeID string, req UpdatePlaceRequest) (*models.Place, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	if err := s.checkCreator(ctx, actorID, placeID); err != nil {
		return nil, err
	}

	place, err := s.placeRepo.Update(ctx, placeID, req.Title, req.Description)
	if err != nil {
		return nil, fmt.Errorf("failed to update place: %w", err)
	}

	s.publish(MessagePlaceUpdated, place.ID, place)
	return place, nil
}

// DeletePlace deletes a place
func (s *PlaceService) DeletePlace(ctx context.Context, actorID, placeID string) error {
	if err := s.checkCreator(ctx, actorID, placeID); err != nil {
		return err
	}

	if err := s.placeRepo.Delete(ctx, placeID); err != nil {
		return fmt.Errorf("failed to delete place: %w", err)
	}

	s.publish(MessagePlaceDeleted, placeID, nil)
	return nil
}

// RequestImageUpload generates a pre-signed URL for uploading a place image
// and records the resulting image URL on the place
func (s *PlaceService) RequestImageUpload(ctx context.Context, actorID, placeID, contentType string) (*ImageUploadResponse, error) {
	if err := s.checkCreator(ctx, actorID, placeID); err != nil {
		return nil, err
	}

	if s.images == nil {
		return nil, ErrImagesDisabled
	}

	ext, err := imageExtension(contentType)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	key := fmt.Sprintf("places/%s/%s%s", placeID, uuid.New().String(), ext)
	uploadURL, imageURL, err := s.images.PresignUpload(ctx, key, contentType, imageUploadTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to presign image upload: %w", err)
	}

	if err := s.placeRepo.UpdateImage(ctx, placeID, imageURL); err != nil {
		return nil, fmt.Errorf("failed to record place image: %w", err)
	}

	if place, err := s.placeRepo.GetByID(ctx, placeID); err == nil {
		s.publish(MessagePlaceUpdated, placeID, place)
	}

	return &ImageUploadResponse{
		UploadURL: uploadURL,
		ImageURL:  imageURL,
		ExpiresIn: int(imageUploadTTL.Seconds()),
	}, nil
}

// checkCreator loads the place and, for an authenticated caller, verifies ownership
func (s *PlaceService) checkCreator(ctx context.Context, actorID, placeID string) error {
	place, err := s.placeRepo.GetByID(ctx, placeID)
	if err != nil {
		return fmt.Errorf("failed to get place: %w", err)
	}
	if actorID != "" && place.Creator != actorID {
		return ErrNotPlaceCreator
	}
	return nil
}

func (s *PlaceService) publish(eventType, placeID string, place *models.Place) {
	if s.events == nil {
		return
	}
	s.events.Publish(WSMessage{
		Type:      eventType,
		Timestamp: time.Now().UnixMilli(),
		PlaceID:   placeID,
		Place:     place,
	})
}
