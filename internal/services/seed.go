package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"places-backend/internal/models"
	"places-backend/internal/repository"
)

// DemoUser is the user every fresh store starts with
var DemoUser = models.User{
	ID:    "u1",
	Name:  "Barbara Sol",
	Email: "yogi@yoga.com",
}

const demoUserPassword = "yoga"

// DemoPlace is the place every fresh store starts with
var DemoPlace = models.Place{
	ID:          "p1",
	Title:       "Ubud Yoga Centre",
	Description: "Hot yoga in Ubud",
	Location: models.Location{
		Lat: -8.5286066,
		Lng: 115.2545175,
	},
	Address: "Jl. Raya Singakerta No.108, Singakerta, Kecamatan Ubud, Kabupaten Gianyar, Bali 80571, Indonesia",
	Creator: "u1",
}

// SeedDemoData inserts DemoUser and DemoPlace. Records that already exist are left untouched.
func SeedDemoData(ctx context.Context, users *UserService, places repository.PlaceRepository) error {
	if err := users.SeedUser(ctx, DemoUser, demoUserPassword); err != nil {
		return fmt.Errorf("failed to seed user: %w", err)
	}

	place := DemoPlace
	place.CreatedAt = time.Now().UTC()
	if err := places.Create(ctx, &place); err != nil && !errors.Is(err, repository.ErrPlaceExists) {
		return fmt.Errorf("failed to seed place: %w", err)
	}

	return nil
}
