package routers

import (
	"github.com/Mart1n-S/WatchListy-sub000/internal/handlers"
	"github.com/Mart1n-S/WatchListy-sub000/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func ReviewRoutes(r *chi.Mux, reviewHandler *handlers.ReviewHandler, jwtSecret string) {
	r.Route("/api/v1/reviews", func(r chi.Router) {
		r.Use(middleware.RequireAuth(jwtSecret))
		r.Get("/{movieId}", reviewHandler.ListHandler)
		r.Post("/{movieId}", reviewHandler.CreateHandler)
		r.Patch("/{movieId}", reviewHandler.UpdateHandler)
		r.Delete("/{movieId}", reviewHandler.DeleteHandler)
	})
}
