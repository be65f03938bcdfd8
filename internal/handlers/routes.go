package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter wires the API routes.
// placeAuth guards the place mutations.
func NewRouter(
	placeHandler *PlaceHandler,
	userHandler *UserHandler,
	wsHandler *WebSocketHandler,
	placeAuth func(http.Handler) http.Handler,
) chi.Router {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(corsMiddleware)

	r.NotFound(NotFound)

	r.Route("/api", func(r chi.Router) {
		r.Route("/places", func(r chi.Router) {
			r.Get("/{pid}", placeHandler.GetPlaceByID)
			r.Get("/user/{uid}", placeHandler.GetPlacesByUserID)

			r.Group(func(r chi.Router) {
				r.Use(placeAuth)
				r.Post("/", placeHandler.CreatePlace)
				r.Patch("/{pid}", placeHandler.UpdatePlace)
				r.Delete("/{pid}", placeHandler.DeletePlace)
				r.Post("/{pid}/image", placeHandler.RequestImageUpload)
			})
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/", userHandler.GetUsers)
			r.Post("/signup", userHandler.Signup)
			r.Post("/login", userHandler.Login)
		})
	})

	r.Get("/ws", wsHandler.HandleWebSocket)

	return r
}

// corsMiddleware handles CORS
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Origin, X-Requested-With, Content-Type, Accept, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
