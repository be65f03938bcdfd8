package handlers

import (
	"errors"
	"net/http"

	"places-backend/internal/models"
	"places-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// UserHandler handles user-related HTTP requests
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// UsersResponse wraps the user list
type UsersResponse struct {
	Users []*models.User `json:"users"`
}

// UserResponse wraps a single user
type UserResponse struct {
	User *models.User `json:"user"`
}

// GetUsers handles GET /api/users
func (h *UserHandler) GetUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.GetUsers(r.Context())
	if err != nil {
		respondServiceError(w, r, err, "Failed to list users")
		return
	}

	respondJSON(w, http.StatusOK, UsersResponse{Users: users})
}

// Signup handles POST /api/users/signup
func (h *UserHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req services.SignupRequest
	if err := decodeJSON(r, &req); err != nil {
		respondServiceError(w, r, errors.Join(services.ErrInvalidInput, err), "Invalid request body")
		return
	}

	user, err := h.userService.Signup(r.Context(), req)
	if err != nil {
		respondServiceError(w, r, err, "Failed to sign up user")
		return
	}

	log.Info().
		Str("user_id", user.ID).
		Str("email", user.Email).
		Msg("User created")

	respondJSON(w, http.StatusCreated, UserResponse{User: user})
}

// Login handles POST /api/users/login
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req services.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondServiceError(w, r, errors.Join(services.ErrInvalidCredentials, err), "Invalid request body")
		return
	}

	response, err := h.userService.Login(r.Context(), req)
	if err != nil {
		respondServiceError(w, r, err, "Failed to log in user")
		return
	}

	log.Info().Str("user_id", response.UserID).Msg("User logged in")

	respondJSON(w, http.StatusOK, response)
}
