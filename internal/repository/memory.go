package repository

import (
	"context"
	"sync"

	"places-backend/internal/models"
)

// MemoryPlaceRepository keeps places in process memory
type MemoryPlaceRepository struct {
	mu     sync.RWMutex
	places []models.Place
}

// NewMemoryPlaceRepository creates an in-memory place repository holding the given places
func NewMemoryPlaceRepository(seed ...models.Place) *MemoryPlaceRepository {
	places := make([]models.Place, len(seed))
	copy(places, seed)
	return &MemoryPlaceRepository{places: places}
}

// GetByID retrieves a place by ID
func (r *MemoryPlaceRepository) GetByID(_ context.Context, id string) (*models.Place, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, ErrPlaceNotFound
	}
	place := r.places[i]
	return &place, nil
}

// GetByCreator retrieves all places created by a user, in insertion order
func (r *MemoryPlaceRepository) GetByCreator(_ context.Context, creator string) ([]*models.Place, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var places []*models.Place
	for _, p := range r.places {
		if p.Creator == creator {
			place := p
			places = append(places, &place)
		}
	}
	return places, nil
}

// Create appends a new place
func (r *MemoryPlaceRepository) Create(_ context.Context, place *models.Place) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexOf(place.ID) >= 0 {
		return ErrPlaceExists
	}
	r.places = append(r.places, *place)
	return nil
}

// Update replaces the title and description of a place
func (r *MemoryPlaceRepository) Update(_ context.Context, id, title, description string) (*models.Place, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, ErrPlaceNotFound
	}
	r.places[i].Title = title
	r.places[i].Description = description

	place := r.places[i]
	return &place, nil
}

// UpdateImage sets the image URL of a place
func (r *MemoryPlaceRepository) UpdateImage(_ context.Context, id, image string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return ErrPlaceNotFound
	}
	r.places[i].Image = image
	return nil
}

// Delete removes a place by ID
func (r *MemoryPlaceRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return ErrPlaceNotFound
	}
	r.places = append(r.places[:i], r.places[i+1:]...)
	return nil
}

// Len returns the number of stored places
func (r *MemoryPlaceRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.places)
}

// indexOf must be called with r.mu held
func (r *MemoryPlaceRepository) indexOf(id string) int {
	for i := range r.places {
		if r.places[i].ID == id {
			return i
		}
	}
	return -1
}

// MemoryUserRepository keeps users in process memory
type MemoryUserRepository struct {
	mu    sync.RWMutex
	users []models.User
}

// NewMemoryUserRepository creates an in-memory user repository holding the given users
func NewMemoryUserRepository(seed ...models.User) *MemoryUserRepository {
	users := make([]models.User, len(seed))
	copy(users, seed)
	return &MemoryUserRepository{users: users}
}

// List returns all users in insertion order
func (r *MemoryUserRepository) List(_ context.Context) ([]*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]*models.User, 0, len(r.users))
	for _, u := range r.users {
		user := u
		users = append(users, &user)
	}
	return users, nil
}

// GetByEmail retrieves a user by email
func (r *MemoryUserRepository) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, ErrUserNotFound
}

// Create appends a new user.
// The id and email checks run under the same lock as the insert.
func (r *MemoryUserRepository) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == user.Email {
			return ErrEmailExists
		}
		if u.ID == user.ID {
			return ErrUserExists
		}
	}
	r.users = append(r.users, *user)
	return nil
}

// Len returns the number of stored users
func (r *MemoryUserRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users)
}
