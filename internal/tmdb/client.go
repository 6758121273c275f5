package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"
)

// Error kinds the handlers map onto distinct i18n keys. A timeout is not the
// same failure as an upstream rejection.
var (
	ErrTimeout  = errors.New("tmdb: request timed out")
	ErrUpstream = errors.New("tmdb: upstream failure")
)

const defaultTimeout = 8 * time.Second

// Client is a read-only TMDB API client. Catalog data is immutable from our
// point of view; callers are expected to cache responses.
type Client struct {
	BaseURL string
	APIKey  string
	http    *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		BaseURL: baseURL,
		APIKey:  apiKey,
		http:    &http.Client{Timeout: defaultTimeout},
	}
}

// get performs one upstream call and returns the raw JSON body. The API key
// never appears in errors; upstream bodies are not forwarded to clients.
func (c *Client) get(ctx context.Context, path string, params url.Values) (json.RawMessage, error) {
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request", ErrUpstream)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		var netErr net.Error
		if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
			return nil, ErrTimeout
		}
		return nil, fmt.Errorf("%w: transport", ErrUpstream)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body", ErrUpstream)
	}
	return body, nil
}

// Details fetches one catalog item by type and id.
func (c *Client) Details(ctx context.Context, mediaType string, id int64, lang string) (json.RawMessage, error) {
	params := url.Values{}
	if lang != "" {
		params.Set("language", lang)
	}
	return c.get(ctx, fmt.Sprintf("/%s/%d", mediaType, id), params)
}

// Search runs a text query against one media type.
func (c *Client) Search(ctx context.Context, mediaType, query, lang string) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("query", query)
	if lang != "" {
		params.Set("language", lang)
	}
	return c.get(ctx, "/search/"+mediaType, params)
}

// Discover lists items for one media type with passthrough filters
// (genres, sort order, page).
func (c *Client) Discover(ctx context.Context, mediaType string, filters url.Values, lang string) (json.RawMessage, error) {
	params := url.Values{}
	for k, vs := range filters {
		for _, v := range vs {
			params.Add(k, v)
		}
	}
	if lang != "" {
		params.Set("language", lang)
	}
	return c.get(ctx, "/discover/"+mediaType, params)
}
