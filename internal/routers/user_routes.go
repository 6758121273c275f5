package routers

import (
	"github.com/Mart1n-S/WatchListy-sub000/internal/handlers"
	"github.com/Mart1n-S/WatchListy-sub000/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func UserRoutes(r *chi.Mux, userHandler *handlers.UserHandler, jwtSecret string) {
	r.Route("/api/v1/users", func(r chi.Router) {
		// Public read; the profile still marks likedByViewer for signed-in callers.
		r.With(middleware.OptionalAuth(jwtSecret)).Get("/{pseudo}", userHandler.ProfileHandler)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(jwtSecret))
			r.Patch("/me", userHandler.UpdateProfileHandler)
			r.Patch("/{pseudo}", userHandler.ToggleLikeHandler)
			r.Post("/follow", userHandler.FollowHandler)
			r.Delete("/follow/{id}", userHandler.UnfollowHandler)
		})
	})
}
