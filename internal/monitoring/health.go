package monitoring

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"
)

var startTime = time.Now()

// HealthChecker tracks liveness signals for the governance session
type HealthChecker struct {
	mu           sync.RWMutex
	lastDecision time.Time
	breaker      string
	killSwitch   bool
	errors       []string
}

// HealthStatus is the JSON payload served at the health endpoint
type HealthStatus struct {
	Status       string    `json:"status"`
	Timestamp    time.Time `json:"timestamp"`
	LastDecision time.Time `json:"last_decision"`
	BreakerState string    `json:"breaker_state"`
	KillSwitch   bool      `json:"kill_switch"`
	Uptime       string    `json:"uptime"`
	Errors       []string  `json:"errors,omitempty"`
}

// NewHealthChecker creates a new health checker
func NewHealthChecker() *HealthChecker {
	return &HealthChecker{
		errors: make([]string, 0),
	}
}

// RecordDecision marks the time of the latest pipeline decision
func (h *HealthChecker) RecordDecision() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.lastDecision = time.Now()
}

// SetBreakerState updates the reported breaker state
func (h *HealthChecker) SetBreakerState(state string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.breaker = state
}

// SetKillSwitch updates the reported kill switch state
func (h *HealthChecker) SetKillSwitch(active bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.killSwitch = active
}

// RecordError appends an error to the health report
func (h *HealthChecker) RecordError(msg string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.errors = append(h.errors, msg)
	if len(h.errors) > 20 {
		h.errors = h.errors[len(h.errors)-20:]
	}
}

func (h *HealthChecker) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	status := "healthy"
	if h.killSwitch || h.breaker == "LOCKED" {
		status = "halted"
		w.WriteHeader(http.StatusServiceUnavailable)
	} else if len(h.errors) > 0 {
		status = "degraded"
	}

	health := HealthStatus{
		Status:       status,
		Timestamp:    time.Now(),
		LastDecision: h.lastDecision,
		BreakerState: h.breaker,
		KillSwitch:   h.killSwitch,
		Uptime:       time.Since(startTime).String(),
		Errors:       h.errors,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(health)
}
