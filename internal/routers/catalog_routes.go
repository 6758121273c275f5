package routers

import (
	"github.com/Mart1n-S/WatchListy-sub000/internal/handlers"
	"github.com/Mart1n-S/WatchListy-sub000/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func CatalogRoutes(r *chi.Mux, catalogHandler *handlers.CatalogHandler, jwtSecret string) {
	r.Route("/api/v1/catalog", func(r chi.Router) {
		r.Use(middleware.RequireAuth(jwtSecret))
		r.Get("/{type}/search", catalogHandler.SearchHandler)
		r.Get("/{type}/discover", catalogHandler.DiscoverHandler)
		r.Get("/{type}/{id}", catalogHandler.DetailsHandler)
	})
}
