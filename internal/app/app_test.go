package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/riskibarqy/novastream/internal/config"
	"github.com/riskibarqy/novastream/internal/platform/logging"
)

func TestNewHTTPServer_MemoryStorage(t *testing.T) {
	t.Setenv("APP_ENV", config.EnvDev)
	t.Setenv("STORAGE_DRIVER", config.StorageMemory)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	srv, cleanup, err := NewHTTPServer(context.Background(), cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("new http server: %v", err)
	}
	defer func() {
		if err := cleanup(); err != nil {
			t.Fatalf("cleanup: %v", err)
		}
	}()

	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/account", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from /v1/account, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"plan"`) {
		t.Fatalf("expected seeded account in body, got %s", rec.Body.String())
	}

	rec = httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected metrics endpoint enabled by default, got %d", rec.Code)
	}
}

func TestNewHTTPServer_FileStorage(t *testing.T) {
	cfg := config.Config{
		HTTPAddr:           ":0",
		StorageDriver:      config.StorageFile,
		StorageFileDir:     t.TempDir(),
		CORSAllowedOrigins: []string{"*"},
		FeedWorkers:        1,
		FeedMaxSports:      2,
	}

	srv, cleanup, err := NewHTTPServer(context.Background(), cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("new http server: %v", err)
	}
	defer cleanup()

	req := httptest.NewRequest(http.MethodPost, "/v1/account/profiles", nil)
	req.Header.Set("X-Client-ID", "browser-a")
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 adding profile, got %d: %s", rec.Code, rec.Body.String())
	}

	// /metrics is not mounted when metrics are off.
	rec = httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for /metrics, got %d", rec.Code)
	}
}

func TestNewHTTPServer_RejectsEmptyAddr(t *testing.T) {
	if _, _, err := NewHTTPServer(context.Background(), config.Config{}, nil); err == nil {
		t.Fatalf("expected error for empty addr")
	}
}
