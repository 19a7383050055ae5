package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lokwah/hknewsdesk/internal/config"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	cfg := &config.Config{
		News: config.NewsConfig{
			CacheTTL:         1800,
			HeadlineCacheTTL: 900,
			MaxArticles:      50,
			MaxHeadlines:     30,
			LookbackDays:     7,
		},
		API: config.APIConfig{Host: "127.0.0.1", Port: 8080},
	}
	return NewServer(cfg)
}

func doRequest(t *testing.T, srv *Server, method, path string) (*httptest.ResponseRecorder, APIResponse) {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	var body APIResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON response: %v (body: %s)", err, rec.Body.String())
	}
	return rec, body
}

func TestHealthEndpoint(t *testing.T) {
	srv := testServer(t)

	for _, path := range []string{"/health", "/api/v1/health"} {
		rec, body := doRequest(t, srv, http.MethodGet, path)
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: status %d, want 200", path, rec.Code)
		}
		if !body.Success {
			t.Fatalf("%s: expected success envelope", path)
		}
	}
}

func TestNewsRequiresTickers(t *testing.T) {
	srv := testServer(t)

	rec, body := doRequest(t, srv, http.MethodGet, "/api/v1/news")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", rec.Code)
	}
	if body.Success || body.Error == "" {
		t.Fatal("expected error envelope")
	}

	// Separators without tickers are equally empty.
	rec, _ = doRequest(t, srv, http.MethodGet, "/api/v1/news?tickers=,,")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", rec.Code)
	}
}

func TestHistoryRejectsBadDays(t *testing.T) {
	srv := testServer(t)

	for _, q := range []string{"days=0", "days=-3", "days=abc"} {
		rec, _ := doRequest(t, srv, http.MethodGet, "/api/v1/history/0700.HK?"+q)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: status %d, want 400", q, rec.Code)
		}
	}
}

func TestStatusEndpoint(t *testing.T) {
	srv := testServer(t)

	rec, body := doRequest(t, srv, http.MethodGet, "/api/v1/status")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, want 200", rec.Code)
	}
	if !body.Success {
		t.Fatal("expected success envelope")
	}

	data, ok := body.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("unexpected data shape: %T", body.Data)
	}
	keys, ok := data["keys"].([]interface{})
	if !ok || len(keys) != 3 {
		t.Fatalf("expected 3 key statuses, got %v", data["keys"])
	}
}

func TestUnknownRouteIs404(t *testing.T) {
	srv := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/nope", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status %d, want 404", rec.Code)
	}
}
