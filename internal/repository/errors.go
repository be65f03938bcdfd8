package repository

import "errors"

var (
	ErrPlaceNotFound = errors.New("place not found")
	ErrPlaceExists   = errors.New("place already exists")
	ErrUserNotFound  = errors.New("user not found")
	ErrUserExists    = errors.New("user already exists")

	// ErrEmailExists is returned when a user with the same email is already stored.
	ErrEmailExists = errors.New("email already exists")
)
