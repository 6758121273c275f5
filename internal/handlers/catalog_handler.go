package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/Mart1n-S/WatchListy-sub000/internal/models"
	"github.com/Mart1n-S/WatchListy-sub000/internal/tmdb"
	"github.com/Mart1n-S/WatchListy-sub000/internal/utils"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Catalog responses barely change; cache them for hours.
const catalogCacheTTL = 6 * time.Hour

// CatalogProvider is the read-only metadata interface the handler needs.
type CatalogProvider interface {
	Details(ctx context.Context, mediaType string, id int64, lang string) (json.RawMessage, error)
	Search(ctx context.Context, mediaType, query, lang string) (json.RawMessage, error)
	Discover(ctx context.Context, mediaType string, filters url.Values, lang string) (json.RawMessage, error)
}

// CatalogHandler proxies TMDB reads through a redis cache. A nil redis client
// degrades to fetching upstream on every request.
type CatalogHandler struct {
	Provider CatalogProvider
	Cache    *redis.Client
	Logger   *zap.Logger
}

func (h *CatalogHandler) logger() *zap.Logger {
	if h.Logger == nil {
		return zap.NewNop()
	}
	return h.Logger
}

func (h *CatalogHandler) cached(ctx context.Context, key string, fetch func() (json.RawMessage, error)) (json.RawMessage, error) {
	if h.Cache != nil {
		if hit, err := h.Cache.Get(ctx, key).Bytes(); err == nil {
			return hit, nil
		}
	}
	body, err := fetch()
	if err != nil {
		return nil, err
	}
	if h.Cache != nil {
		if err := h.Cache.Set(ctx, key, []byte(body), catalogCacheTTL).Err(); err != nil {
			h.logger().Warn("catalog cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return body, nil
}

func (h *CatalogHandler) writeUpstreamError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger().Error("catalog upstream call failed",
		zap.String("route", r.URL.Path),
		zap.Error(err),
	)
	if errors.Is(err, tmdb.ErrTimeout) {
		utils.JSONError(w, http.StatusInternalServerError, "catalog.upstream_timeout")
		return
	}
	utils.JSONError(w, http.StatusInternalServerError, "catalog.upstream_failed")
}

func writeRawJSON(w http.ResponseWriter, body json.RawMessage) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

func mediaTypeParam(r *http.Request) (string, bool) {
	t := chi.URLParam(r, "type")
	return t, models.IsValidMediaType(models.MediaType(t))
}

// DetailsHandler returns one catalog item.
func (h *CatalogHandler) DetailsHandler(w http.ResponseWriter, r *http.Request) {
	mediaType, ok := mediaTypeParam(r)
	if !ok {
		utils.JSONError(w, http.StatusBadRequest, "validation.item_invalid")
		return
	}
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		utils.JSONError(w, http.StatusBadRequest, "validation.item_invalid")
		return
	}
	lang := r.URL.Query().Get("language")

	key := fmt.Sprintf("tmdb:details:%s:%d:%s", mediaType, id, lang)
	body, err := h.cached(r.Context(), key, func() (json.RawMessage, error) {
		return h.Provider.Details(r.Context(), mediaType, id, lang)
	})
	if err != nil {
		h.writeUpstreamError(w, r, err)
		return
	}
	writeRawJSON(w, body)
}

// SearchHandler runs a text query against the catalog.
func (h *CatalogHandler) SearchHandler(w http.ResponseWriter, r *http.Request) {
	mediaType, ok := mediaTypeParam(r)
	if !ok {
		utils.JSONError(w, http.StatusBadRequest, "validation.item_invalid")
		return
	}
	query := r.URL.Query().Get("query")
	if query == "" {
		utils.JSONError(w, http.StatusBadRequest, "validation.missing_fields")
		return
	}
	lang := r.URL.Query().Get("language")

	key := fmt.Sprintf("tmdb:search:%s:%s:%s", mediaType, query, lang)
	body, err := h.cached(r.Context(), key, func() (json.RawMessage, error) {
		return h.Provider.Search(r.Context(), mediaType, query, lang)
	})
	if err != nil {
		h.writeUpstreamError(w, r, err)
		return
	}
	writeRawJSON(w, body)
}

// Discover filters forwarded upstream; everything else is dropped.
var discoverFilters = []string{"with_genres", "sort_by", "page", "year"}

// DiscoverHandler lists catalog items by genre and sort filters.
func (h *CatalogHandler) DiscoverHandler(w http.ResponseWriter, r *http.Request) {
	mediaType, ok := mediaTypeParam(r)
	if !ok {
		utils.JSONError(w, http.StatusBadRequest, "validation.item_invalid")
		return
	}
	lang := r.URL.Query().Get("language")
	filters := url.Values{}
	for _, f := range discoverFilters {
		if v := r.URL.Query().Get(f); v != "" {
			filters.Set(f, v)
		}
	}

	key := fmt.Sprintf("tmdb:discover:%s:%s:%s", mediaType, filters.Encode(), lang)
	body, err := h.cached(r.Context(), key, func() (json.RawMessage, error) {
		return h.Provider.Discover(r.Context(), mediaType, filters, lang)
	})
	if err != nil {
		h.writeUpstreamError(w, r, err)
		return
	}
	writeRawJSON(w, body)
}
