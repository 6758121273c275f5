package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestMiddlewareRecordsRequests(t *testing.T) {
	handler := Middleware()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/user-movies", nil))
	if rr.Code != http.StatusTeapot {
		t.Fatalf("middleware must not change the status, got %d", rr.Code)
	}

	// The counter shows up on the scrape endpoint with the right labels.
	scrape := httptest.NewRecorder()
	Handler().ServeHTTP(scrape, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if scrape.Code != http.StatusOK {
		t.Fatalf("unexpected scrape status %d", scrape.Code)
	}
	body := scrape.Body.String()
	if !strings.Contains(body, "watchlisty_http_requests_total") {
		t.Fatalf("request counter missing from scrape")
	}
	if !strings.Contains(body, `status="418"`) {
		t.Fatalf("expected the recorded status label in the scrape")
	}
}

func TestResponseRecorderDefaultsTo200(t *testing.T) {
	rr := httptest.NewRecorder()
	rec := &responseRecorder{ResponseWriter: rr}
	if _, err := rec.Write([]byte("ok")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.status != http.StatusOK {
		t.Fatalf("expected implicit 200, got %d", rec.status)
	}
}
