package repository

import (
	"context"
	"errors"
	"fmt"

	"places-backend/internal/models"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var placeColumns = []string{
	"id", "title", "description", "image", "address", "lat", "lng", "creator", "created_at",
}

// PostgresPlaceRepository handles database operations for places
type PostgresPlaceRepository struct {
	db DB
}

// NewPostgresPlaceRepository creates a new place repository
func NewPostgresPlaceRepository(db DB) *PostgresPlaceRepository {
	return &PostgresPlaceRepository{db: db}
}

// Create creates a new place
func (r *PostgresPlaceRepository) Create(ctx context.Context, place *models.Place) error {
	query, args, err := psql.Insert("places").
		Columns(placeColumns...).
		Values(
			place.ID, place.Title, place.Description, place.Image, place.Address,
			place.Location.Lat, place.Location.Lng, place.Creator, place.CreatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert place query: %w", err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return ErrPlaceExists
		}
		return fmt.Errorf("failed to create place: %w", err)
	}
	return nil
}

// GetByID retrieves a place by ID
func (r *PostgresPlaceRepository) GetByID(ctx context.Context, id string) (*models.Place, error) {
	query, args, err := psql.Select(placeColumns...).
		From("places").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get place query: %w", err)
	}

	place, err := scanPlace(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPlaceNotFound
		}
		return nil, fmt.Errorf("failed to get place: %w", err)
	}
	return place, nil
}

// GetByCreator retrieves places created by a user
func (r *PostgresPlaceRepository) GetByCreator(ctx context.Context, creator string) ([]*models.Place, error) {
	query, args, err := psql.Select(placeColumns...).
		From("places").
		Where(sq.Eq{"creator": creator}).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get places query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get places: %w", err)
	}
	defer rows.Close()

	var places []*models.Place
	for rows.Next() {
		place, err := scanPlace(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan place: %w", err)
		}
		places = append(places, place)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating places: %w", err)
	}

	return places, nil
}

// Update replaces the title and description of a place
func (r *PostgresPlaceRepository) Update(ctx context.Context, id, title, description string) (*models.Place, error) {
	query, args, err := psql.Update("places").
		Set("title", title).
		Set("description", description).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING id, title, description, image, address, lat, lng, creator, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build update place query: %w", err)
	}

	place, err := scanPlace(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPlaceNotFound
		}
		return nil, fmt.Errorf("failed to update place: %w", err)
	}
	return place, nil
}

// UpdateImage updates the image URL of a place
func (r *PostgresPlaceRepository) UpdateImage(ctx context.Context, id, image string) error {
	query, args, err := psql.Update("places").
		Set("image", image).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update image query: %w", err)
	}

	result, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update place image: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrPlaceNotFound
	}
	return nil
}

// Delete deletes a place by ID
func (r *PostgresPlaceRepository) Delete(ctx context.Context, id string) error {
	query, args, err := psql.Delete("places").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete place query: %w", err)
	}

	result, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete place: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrPlaceNotFound
	}
	return nil
}

func scanPlace(row pgx.Row) (*models.Place, error) {
	var place models.Place
	err := row.Scan(
		&place.ID, &place.Title, &place.Description, &place.Image, &place.Address,
		&place.Location.Lat, &place.Location.Lng, &place.Creator, &place.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &place, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
