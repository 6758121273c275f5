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

// WatchlistHandler manages the per-user list endpoints.
type WatchlistHandler struct {
	Repo WatchlistRepository
}

type addEntryRequest struct {
	ItemID   int64              `json:"itemId"`
	ItemType models.MediaType   `json:"itemType"`
	Status   models.WatchStatus `json:"status"`
}

type setStatusRequest struct {
	ItemType models.MediaType   `json:"itemType"`
	Status   models.WatchStatus `json:"status"`
}

// ListHandler returns the caller's entries, most recently touched first.
// ?status= narrows to one bucket.
func (h *WatchlistHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	p, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		utils.JSONError(w, http.StatusUnauthorized, "auth.unauthorized")
		return
	}
	status := models.WatchStatus(r.URL.Query().Get("status"))
	if status != "" && !models.IsValidStatus(status) {
		utils.JSONError(w, http.StatusBadRequest, "validation.status_invalid")
		return
	}
	entries, err := h.Repo.ListByUser(p.UserID, status)
	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "internal.database")
		return
	}
	utils.JSON(w, http.StatusOK, entries)
}

// AddHandler creates an entry; the default bucket is the watchlist.
func (h *WatchlistHandler) AddHandler(w http.ResponseWriter, r *http.Request) {
	p, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		utils.JSONError(w, http.StatusUnauthorized, "auth.unauthorized")
		return
	}
	var req addEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSONError(w, http.StatusBadRequest, "validation.invalid_payload")
		return
	}
	if req.ItemID <= 0 || !models.IsValidMediaType(req.ItemType) {
		utils.JSONError(w, http.StatusBadRequest, "validation.item_invalid")
		return
	}
	if req.Status == "" {
		req.Status = models.StatusWatchlist
	}
	if !models.IsValidStatus(req.Status) {
		utils.JSONError(w, http.StatusBadRequest, "validation.status_invalid")
		return
	}

	entry := &models.UserMovie{
		UserID:   p.UserID,
		ItemID:   req.ItemID,
		ItemType: req.ItemType,
		Status:   req.Status,
	}
	if err := h.Repo.Add(entry); err != nil {
		if errors.Is(err, repositories.ErrEntryExists) {
			utils.JSONError(w, http.StatusConflict, "list.entry_exists")
		} else {
			utils.JSONError(w, http.StatusInternalServerError, "internal.database")
		}
		return
	}
	utils.JSON(w, http.StatusCreated, entry)
}

// SetStatusHandler moves an entry between buckets; every transition is legal.
func (h *WatchlistHandler) SetStatusHandler(w http.ResponseWriter, r *http.Request) {
	p, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		utils.JSONError(w, http.StatusUnauthorized, "auth.unauthorized")
		return
	}
	itemID, err := strconv.ParseInt(chi.URLParam(r, "itemId"), 10, 64)
	if err != nil || itemID <= 0 {
		utils.JSONError(w, http.StatusBadRequest, "validation.item_invalid")
		return
	}
	var req setStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSONError(w, http.StatusBadRequest, "validation.invalid_payload")
		return
	}
	if !models.IsValidMediaType(req.ItemType) {
		utils.JSONError(w, http.StatusBadRequest, "validation.item_invalid")
		return
	}
	if !models.IsValidStatus(req.Status) {
		utils.JSONError(w, http.StatusBadRequest, "validation.status_invalid")
		return
	}

	entry, err := h.Repo.SetStatus(p.UserID, itemID, req.ItemType, req.Status)
	if err != nil {
		if errors.Is(err, repositories.ErrEntryNotFound) {
			utils.JSONError(w, http.StatusNotFound, "list.entry_not_found")
		} else {
			utils.JSONError(w, http.StatusInternalServerError, "internal.database")
		}
		return
	}
	utils.JSON(w, http.StatusOK, entry)
}

func (h *WatchlistHandler) RemoveHandler(w http.ResponseWriter, r *http.Request) {
	p, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		utils.JSONError(w, http.StatusUnauthorized, "auth.unauthorized")
		return
	}
	itemID, err := strconv.ParseInt(chi.URLParam(r, "itemId"), 10, 64)
	if err != nil || itemID <= 0 {
		utils.JSONError(w, http.StatusBadRequest, "validation.item_invalid")
		return
	}
	itemType := models.MediaType(r.URL.Query().Get("itemType"))
	if !models.IsValidMediaType(itemType) {
		utils.JSONError(w, http.StatusBadRequest, "validation.item_invalid")
		return
	}

	if err := h.Repo.Remove(p.UserID, itemID, itemType); err != nil {
		if errors.Is(err, repositories.ErrEntryNotFound) {
			utils.JSONError(w, http.StatusNotFound, "list.entry_not_found")
		} else {
			utils.JSONError(w, http.StatusInternalServerError, "internal.database")
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
