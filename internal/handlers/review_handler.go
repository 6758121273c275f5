package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/Mart1n-S/WatchListy-sub000/internal/middleware"
	"github.com/Mart1n-S/WatchListy-sub000/internal/models"
	"github.com/Mart1n-S/WatchListy-sub000/internal/repositories"
	"github.com/Mart1n-S/WatchListy-sub000/internal/utils"

	"github.com/go-chi/chi/v5"
)

// ReviewHandler manages per-item reviews. Reviews are readable by anyone
// authenticated; mutation is scoped to the authoring user through the
// (user, movie) key.
type ReviewHandler struct {
	Repo     ReviewRepository
	UserRepo UserRepository
}

type reviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

func movieIDParam(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "movieId"), 10, 64)
	return id, err == nil && id > 0
}

// ListHandler returns every review for a catalog item, most recent edit first.
func (h *ReviewHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	movieID, ok := movieIDParam(r)
	if !ok {
		utils.JSONError(w, http.StatusBadRequest, "validation.item_invalid")
		return
	}
	reviews, err := h.Repo.ListByMovie(movieID)
	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "internal.database")
		return
	}
	utils.JSON(w, http.StatusOK, reviews)
}

// CreateHandler posts the caller's review; a second one for the same item is
// a conflict.
func (h *ReviewHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	p, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		utils.JSONError(w, http.StatusUnauthorized, "auth.unauthorized")
		return
	}
	movieID, ok := movieIDParam(r)
	if !ok {
		utils.JSONError(w, http.StatusBadRequest, "validation.item_invalid")
		return
	}
	var req reviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSONError(w, http.StatusBadRequest, "validation.invalid_payload")
		return
	}
	if req.Rating < 1 || req.Rating > 10 {
		utils.JSONError(w, http.StatusBadRequest, "validation.rating_invalid")
		return
	}

	// Denormalized author fields keep the public read free of joins.
	user, err := h.UserRepo.GetUserByID(p.UserID)
	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "internal.database")
		return
	}
	review := &models.Review{
		MovieID:   movieID,
		UserID:    user.ID,
		UserName:  user.Pseudo,
		UserImage: user.Avatar,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}
	if err := h.Repo.Create(review); err != nil {
		if errors.Is(err, repositories.ErrReviewExists) {
			utils.JSONError(w, http.StatusConflict, "review.exists")
		} else {
			utils.JSONError(w, http.StatusInternalServerError, "internal.database")
		}
		return
	}
	utils.JSON(w, http.StatusCreated, review)
}

func (h *ReviewHandler) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	p, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		utils.JSONError(w, http.StatusUnauthorized, "auth.unauthorized")
		return
	}
	movieID, ok := movieIDParam(r)
	if !ok {
		utils.JSONError(w, http.StatusBadRequest, "validation.item_invalid")
		return
	}
	var req reviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSONError(w, http.StatusBadRequest, "validation.invalid_payload")
		return
	}
	if req.Rating < 1 || req.Rating > 10 {
		utils.JSONError(w, http.StatusBadRequest, "validation.rating_invalid")
		return
	}

	review, err := h.Repo.Update(p.UserID, movieID, req.Rating, req.Comment)
	if err != nil {
		if errors.Is(err, repositories.ErrReviewNotFound) {
			utils.JSONError(w, http.StatusNotFound, "review.not_found")
		} else {
			utils.JSONError(w, http.StatusInternalServerError, "internal.database")
		}
		return
	}
	utils.JSON(w, http.StatusOK, review)
}

func (h *ReviewHandler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	p, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		utils.JSONError(w, http.StatusUnauthorized, "auth.unauthorized")
		return
	}
	movieID, ok := movieIDParam(r)
	if !ok {
		utils.JSONError(w, http.StatusBadRequest, "validation.item_invalid")
		return
	}

	if err := h.Repo.Delete(p.UserID, movieID); err != nil {
		if errors.Is(err, repositories.ErrReviewNotFound) {
			utils.JSONError(w, http.StatusNotFound, "review.not_found")
		} else {
			utils.JSONError(w, http.StatusInternalServerError, "internal.database")
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
