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
	"golang.org/x/crypto/bcrypt"
)

// UserHandler manages profiles and the social graph.
type UserHandler struct {
	UserRepo   UserRepository
	SocialRepo SocialRepository
}

type profileResponse struct {
	Pseudo         string  `json:"pseudo"`
	Avatar         string  `json:"avatar"`
	MovieGenres    []int64 `json:"movieGenres"`
	TVGenres       []int64 `json:"tvGenres"`
	LikeCount      int64   `json:"likeCount"`
	FollowingCount int64   `json:"followingCount"`
	LikedByViewer  bool    `json:"likedByViewer"`
}

type updateProfileRequest struct {
	Pseudo      *string  `json:"pseudo"`
	Avatar      *string  `json:"avatar"`
	MovieGenres *[]int64 `json:"movieGenres"`
	TVGenres    *[]int64 `json:"tvGenres"`
	Password    *string  `json:"password"`
}

type followRequest struct {
	Pseudo string `json:"pseudo"`
}

// ProfileHandler returns a user's public profile by pseudo.
func (h *UserHandler) ProfileHandler(w http.ResponseWriter, r *http.Request) {
	user, err := h.UserRepo.GetUserByPseudo(chi.URLParam(r, "pseudo"))
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			utils.JSONError(w, http.StatusNotFound, "user.not_found")
		} else {
			utils.JSONError(w, http.StatusInternalServerError, "internal.database")
		}
		return
	}

	likeCount, err := h.SocialRepo.LikeCount(user.ID)
	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "internal.database")
		return
	}
	followingCount, err := h.SocialRepo.FollowingCount(user.ID)
	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "internal.database")
		return
	}

	resp := profileResponse{
		Pseudo:         user.Pseudo,
		Avatar:         user.Avatar,
		MovieGenres:    user.MovieGenres,
		TVGenres:       user.TVGenres,
		LikeCount:      likeCount,
		FollowingCount: followingCount,
	}
	if p, ok := middleware.PrincipalFrom(r.Context()); ok {
		liked, err := h.SocialRepo.HasLiked(user.ID, p.UserID)
		if err != nil {
			utils.JSONError(w, http.StatusInternalServerError, "internal.database")
			return
		}
		resp.LikedByViewer = liked
	}
	utils.JSON(w, http.StatusOK, resp)
}

// UpdateProfileHandler edits the caller's own pseudo, avatar, preferences or
// password. Pseudo collisions surface as a conflict.
func (h *UserHandler) UpdateProfileHandler(w http.ResponseWriter, r *http.Request) {
	p, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		utils.JSONError(w, http.StatusUnauthorized, "auth.unauthorized")
		return
	}
	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSONError(w, http.StatusBadRequest, "validation.invalid_payload")
		return
	}

	user, err := h.UserRepo.GetUserByID(p.UserID)
	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "internal.database")
		return
	}

	if req.Pseudo != nil && *req.Pseudo != user.Pseudo {
		if !utils.IsPseudoValid(*req.Pseudo) {
			utils.JSONError(w, http.StatusBadRequest, "validation.pseudo_invalid")
			return
		}
		if _, err := h.UserRepo.GetUserByPseudo(*req.Pseudo); err == nil {
			utils.JSONError(w, http.StatusConflict, "auth.pseudo_taken")
			return
		} else if !errors.Is(err, repositories.ErrUserNotFound) {
			utils.JSONError(w, http.StatusInternalServerError, "internal.database")
			return
		}
		user.Pseudo = *req.Pseudo
	}
	if req.Avatar != nil {
		if !models.IsValidAvatar(*req.Avatar) {
			utils.JSONError(w, http.StatusBadRequest, "validation.avatar_invalid")
			return
		}
		user.Avatar = *req.Avatar
	}
	if req.MovieGenres != nil {
		user.MovieGenres = *req.MovieGenres
	}
	if req.TVGenres != nil {
		user.TVGenres = *req.TVGenres
	}
	if req.Password != nil {
		if !utils.IsPasswordValid(*req.Password) {
			utils.JSONError(w, http.StatusBadRequest, "validation.password_weak")
			return
		}
		hash, err := generatePasswordHash([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			utils.JSONError(w, http.StatusInternalServerError, "internal.hashing")
			return
		}
		user.PasswordHash = string(hash)
	}

	if err := h.UserRepo.SaveUser(user); err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "internal.database")
		return
	}
	utils.JSON(w, http.StatusOK, user)
}

// FollowHandler adds the target (resolved by pseudo) to the caller's
// following set and returns the updated set. Following twice is a no-op.
func (h *UserHandler) FollowHandler(w http.ResponseWriter, r *http.Request) {
	p, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		utils.JSONError(w, http.StatusUnauthorized, "auth.unauthorized")
		return
	}
	var req followRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Pseudo == "" {
		utils.JSONError(w, http.StatusBadRequest, "validation.missing_fields")
		return
	}

	target, err := h.UserRepo.GetUserByPseudo(req.Pseudo)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			utils.JSONError(w, http.StatusNotFound, "user.not_found")
		} else {
			utils.JSONError(w, http.StatusInternalServerError, "internal.database")
		}
		return
	}
	if target.ID == p.UserID {
		utils.JSONError(w, http.StatusBadRequest, "social.self_follow")
		return
	}

	if err := h.SocialRepo.Follow(p.UserID, target.ID); err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "internal.database")
		return
	}
	ids, err := h.SocialRepo.FollowingIDs(p.UserID)
	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "internal.database")
		return
	}
	utils.JSON(w, http.StatusOK, map[string]any{"following": ids})
}

// UnfollowHandler removes the edge; absent edges are removed silently.
func (h *UserHandler) UnfollowHandler(w http.ResponseWriter, r *http.Request) {
	p, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		utils.JSONError(w, http.StatusUnauthorized, "auth.unauthorized")
		return
	}
	targetID, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
	if err != nil {
		utils.JSONError(w, http.StatusBadRequest, "validation.invalid_payload")
		return
	}

	if err := h.SocialRepo.Unfollow(p.UserID, uint(targetID)); err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "internal.database")
		return
	}
	ids, err := h.SocialRepo.FollowingIDs(p.UserID)
	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "internal.database")
		return
	}
	utils.JSON(w, http.StatusOK, map[string]any{"following": ids})
}

// ToggleLikeHandler flips the caller's like on the target's list and returns
// the new state. There is no way to force a direction.
func (h *UserHandler) ToggleLikeHandler(w http.ResponseWriter, r *http.Request) {
	p, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		utils.JSONError(w, http.StatusUnauthorized, "auth.unauthorized")
		return
	}
	target, err := h.UserRepo.GetUserByPseudo(chi.URLParam(r, "pseudo"))
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			utils.JSONError(w, http.StatusNotFound, "user.not_found")
		} else {
			utils.JSONError(w, http.StatusInternalServerError, "internal.database")
		}
		return
	}
	if target.ID == p.UserID {
		utils.JSONError(w, http.StatusBadRequest, "social.self_like")
		return
	}

	liked, count, err := h.SocialRepo.ToggleLike(target.ID, p.UserID)
	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "internal.database")
		return
	}
	utils.JSON(w, http.StatusOK, map[string]any{"liked": liked, "likeCount": count})
}
