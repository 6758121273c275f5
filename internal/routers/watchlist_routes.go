package routers

import (
	"github.com/Mart1n-S/WatchListy-sub000/internal/handlers"
	"github.com/Mart1n-S/WatchListy-sub000/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func WatchlistRoutes(r *chi.Mux, watchlistHandler *handlers.WatchlistHandler, jwtSecret string) {
	r.Route("/api/v1/user-movies", func(r chi.Router) {
		r.Use(middleware.RequireAuth(jwtSecret))
		r.Get("/", watchlistHandler.ListHandler)
		r.Post("/", watchlistHandler.AddHandler)
		r.Patch("/{itemId}", watchlistHandler.SetStatusHandler)
		r.Delete("/{itemId}", watchlistHandler.RemoveHandler)
	})
}
