package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestLiveness(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), rec)

	if err := NewHealthHandler().Liveness(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func readiness(t *testing.T, deps ...Dependency) (int, readinessResponse) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/health/ready", nil), rec)

	if err := NewHealthDependenciesHandler(deps...).Readiness(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp readinessResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return rec.Code, resp
}

func ok(context.Context) error { return nil }

func TestReadiness_AllHealthy(t *testing.T) {
	code, resp := readiness(t,
		Dependency{Name: "postgres", Ping: ok},
		Dependency{Name: "redis", Ping: ok},
	)

	if code != http.StatusOK || resp.Status != "ok" {
		t.Fatalf("expected ok, got %d %+v", code, resp)
	}
	if len(resp.Dependencies) != 2 {
		t.Fatalf("expected 2 dependencies, got %+v", resp.Dependencies)
	}
}

func TestReadiness_Degraded(t *testing.T) {
	code, resp := readiness(t,
		Dependency{Name: "postgres", Ping: ok},
		Dependency{Name: "redis", Ping: func(context.Context) error { return errors.New("connection refused") }},
	)

	if code != http.StatusServiceUnavailable || resp.Status != "degraded" {
		t.Fatalf("expected degraded, got %d %+v", code, resp)
	}
	if got := resp.Dependencies["redis"]; got.Status != "unhealthy" || got.Error != "connection refused" {
		t.Fatalf("unexpected redis status: %+v", got)
	}
	if got := resp.Dependencies["postgres"]; got.Status != "ok" {
		t.Fatalf("unexpected postgres status: %+v", got)
	}
}

func TestReadiness_PingHasDeadline(t *testing.T) {
	readiness(t, Dependency{Name: "postgres", Ping: func(ctx context.Context) error {
		if _, ok := ctx.Deadline(); !ok {
			t.Fatalf("ping context has no deadline")
		}
		return nil
	}})
}
