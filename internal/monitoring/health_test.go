package monitoring

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serveHealth(t *testing.T, h *HealthChecker) (int, HealthStatus) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	var status HealthStatus
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&status))
	return rec.Code, status
}

func TestHealthCheckerHealthy(t *testing.T) {
	h := NewHealthChecker()
	h.RecordDecision()
	h.SetBreakerState("NORMAL")

	code, status := serveHealth(t, h)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "healthy", status.Status)
	assert.Equal(t, "NORMAL", status.BreakerState)
	assert.False(t, status.LastDecision.IsZero())
}

func TestHealthCheckerHaltedOnKillSwitch(t *testing.T) {
	h := NewHealthChecker()
	h.SetKillSwitch(true)

	code, status := serveHealth(t, h)
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "halted", status.Status)
	assert.True(t, status.KillSwitch)
}

func TestHealthCheckerHaltedOnLockedBreaker(t *testing.T) {
	h := NewHealthChecker()
	h.SetBreakerState("LOCKED")

	code, status := serveHealth(t, h)
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "halted", status.Status)
}

func TestHealthCheckerDegradedOnErrors(t *testing.T) {
	h := NewHealthChecker()
	h.RecordError("state persist failed")

	code, status := serveHealth(t, h)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "degraded", status.Status)
	assert.Len(t, status.Errors, 1)
}

func TestHealthCheckerErrorCap(t *testing.T) {
	h := NewHealthChecker()
	for i := 0; i < 30; i++ {
		h.RecordError("boom")
	}

	_, status := serveHealth(t, h)
	assert.Len(t, status.Errors, 20)
}
