package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestHealthHandler(t *testing.T) {
	ok := HealthCheckerFunc(func(context.Context) error { return nil })
	bad := HealthCheckerFunc(func(context.Context) error { return errors.New("db down") })

	rec := httptest.NewRecorder()
	HealthHandler(map[string]HealthChecker{"database": ok})(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	rec = httptest.NewRecorder()
	HealthHandler(map[string]HealthChecker{"database": ok, "previews": bad})(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
	var body HealthStatus
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Checks["previews"].Message != "db down" || body.Checks["database"].Status != "healthy" {
		t.Errorf("unexpected checks: %+v", body.Checks)
	}
}

func TestMetricsMiddleware_CountsOutcomes(t *testing.T) {
	before := globalMetrics.RequestsFailed.Load()
	beforeOK := globalMetrics.RequestsSuccess.Load()

	h := MetricsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/fail" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Write([]byte("ok"))
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/fail", nil))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ok", nil))

	if got := globalMetrics.RequestsFailed.Load() - before; got != 1 {
		t.Errorf("failed delta = %d, want 1", got)
	}
	if got := globalMetrics.RequestsSuccess.Load() - beforeOK; got != 1 {
		t.Errorf("success delta = %d, want 1", got)
	}
	if globalMetrics.RequestsInProgress.Load() != 0 {
		t.Errorf("in progress = %d, want 0", globalMetrics.RequestsInProgress.Load())
	}
}

func TestLogging_RecordsStatus(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	h := Logging(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodDelete, "/api/prompts", nil))

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("log entries = %d, want 1", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["status"] != int64(http.StatusTeapot) || fields["method"] != http.MethodDelete {
		t.Errorf("unexpected fields: %v", fields)
	}
}
