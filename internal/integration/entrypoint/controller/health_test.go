package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func performHealthCheck(t *testing.T, h *HealthController) (int, HealthResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest(http.MethodGet, "/health", nil)

	h.Check(c)

	var response HealthResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return recorder.Code, response
}

func TestHealthControllerCheck(t *testing.T) {
	healthy := func() bool { return true }
	unhealthy := func() bool { return false }

	t.Run("reports ok when database and cache answer", func(t *testing.T) {
		code, response := performHealthCheck(t, NewHealthController(healthy, healthy))

		if code != http.StatusOK {
			t.Errorf("expected status 200, got %d", code)
		}
		if response.Status != "ok" {
			t.Errorf("expected ok status, got %q", response.Status)
		}
		if response.Service != serviceName {
			t.Errorf("unexpected service name %q", response.Service)
		}
		if response.Database != "connected" || response.ReportCache != "connected" {
			t.Errorf("unexpected dependency states: db=%q cache=%q", response.Database, response.ReportCache)
		}
	})

	t.Run("degrades when the database is down", func(t *testing.T) {
		code, response := performHealthCheck(t, NewHealthController(unhealthy, healthy))

		if code != http.StatusServiceUnavailable {
			t.Errorf("expected status 503, got %d", code)
		}
		if response.Status != "degraded" {
			t.Errorf("expected degraded status, got %q", response.Status)
		}
		if response.Database != "disconnected" {
			t.Errorf("unexpected database state %q", response.Database)
		}
	})

	t.Run("a dead cache does not degrade the service", func(t *testing.T) {
		code, response := performHealthCheck(t, NewHealthController(healthy, unhealthy))

		if code != http.StatusOK {
			t.Errorf("expected status 200, got %d", code)
		}
		if response.Status != "ok" {
			t.Errorf("expected ok status, got %q", response.Status)
		}
		if response.ReportCache != "disconnected" {
			t.Errorf("unexpected cache state %q", response.ReportCache)
		}
	})

	t.Run("reports a disabled cache when none is configured", func(t *testing.T) {
		_, response := performHealthCheck(t, NewHealthController(healthy, nil))

		if response.ReportCache != "disabled" {
			t.Errorf("unexpected cache state %q", response.ReportCache)
		}
	})
}
