package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ridgelinemoto/backend/pkg/config"
	"github.com/ridgelinemoto/backend/pkg/types"
)

type stubPinger struct {
	err error
}

func (p *stubPinger) Ping(ctx context.Context) error { return p.err }

func TestHealthLive(t *testing.T) {
	cfg := &config.Config{App: config.AppConfig{Env: "test"}}
	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	rec := httptest.NewRecorder()
	HealthLive(cfg).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestHealthReadyWithoutCache(t *testing.T) {
	cfg := &config.Config{App: config.AppConfig{Env: "test"}}
	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	rec := httptest.NewRecorder()
	HealthReady(cfg, testLogger(), nil).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 when no cache is configured, got %d", rec.Code)
	}
}

func TestHealthReadyCacheUnreachable(t *testing.T) {
	cfg := &config.Config{App: config.AppConfig{Env: "test"}}
	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	rec := httptest.NewRecorder()
	HealthReady(cfg, testLogger(), &stubPinger{err: errors.New("connection refused")}).ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}

func TestTestConnection(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/test-connection", nil)

	rec := httptest.NewRecorder()
	TestConnection(&stubCatalogService{connected: true}, testLogger()).ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 when reachable, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	TestConnection(&stubCatalogService{connected: false}, testLogger()).ServeHTTP(rec, req)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 when unreachable, got %d", rec.Code)
	}
	var body types.ErrorEnvelope
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Message != "catalog upstream unreachable" {
		t.Fatalf("unexpected message %q", body.Message)
	}
}
