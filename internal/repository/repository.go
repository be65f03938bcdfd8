package repository

import (
	"context"

	"places-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is the part of *pgxpool.Pool the postgres repositories use
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PlaceRepository stores places.
// Implementations return ErrPlaceNotFound for unknown ids.
type PlaceRepository interface {
	GetByID(ctx context.Context, id string) (*models.Place, error)
	GetByCreator(ctx context.Context, creator string) ([]*models.Place, error)
	Create(ctx context.Context, place *models.Place) error
	Update(ctx context.Context, id, title, description string) (*models.Place, error)
	UpdateImage(ctx context.Context, id, image string) error
	Delete(ctx context.Context, id string) error
}

// UserRepository stores users.
// Create must reject a duplicate email with ErrEmailExists atomically.
type UserRepository interface {
	List(ctx context.Context) ([]*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
}
