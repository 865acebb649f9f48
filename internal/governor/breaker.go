package governor

import (
	"fmt"
	"sync"
)

// SystemState represents the global circuit breaker state
type SystemState int

const (
	StateNormal SystemState = iota
	StateWarning
	StateReduced
	StateLocked
)

// String returns the string representation of the system state
func (s SystemState) String() string {
	switch s {
	case StateNormal:
		return "NORMAL"
	case StateWarning:
		return "WARNING"
	case StateReduced:
		return "REDUCED"
	case StateLocked:
		return "LOCKED"
	default:
		return "UNKNOWN"
	}
}

// Breaker is the system-wide circuit breaker. The state is level-triggered:
// every evaluation re-derives it from the current drawdown and daily PnL
// sample with no hysteresis, so the breaker can oscillate in and out of
// Warning as metrics move. A manual reset forces Normal until the next
// evaluation recomputes from live metrics.
type Breaker struct {
	mu         sync.RWMutex
	state      SystemState
	lockReason string
}

// NewBreaker creates a breaker in the Normal state
func NewBreaker() *Breaker {
	return &Breaker{state: StateNormal}
}

// Evaluate recomputes the breaker state from the current metrics. The
// Locked conditions are checked first and short-circuit the graded
// thresholds.
func (b *Breaker) Evaluate(drawdownPct, dailyPnL, peakCapital float64) SystemState {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch {
	case drawdownPct >= 25:
		b.state = StateLocked
		b.lockReason = fmt.Sprintf("Drawdown %.1f%% breached lock threshold", drawdownPct)
	case peakCapital > 0 && dailyPnL <= -0.10*peakCapital:
		b.state = StateLocked
		b.lockReason = fmt.Sprintf("Daily loss %.2f breached lock threshold", dailyPnL)
	case drawdownPct >= 15:
		b.state = StateReduced
		b.lockReason = ""
	case drawdownPct >= 10:
		b.state = StateWarning
		b.lockReason = ""
	default:
		b.state = StateNormal
		b.lockReason = ""
	}

	return b.state
}

// State returns the last evaluated state
func (b *Breaker) State() SystemState {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.state
}

// LockReason returns the reason attached to a Locked state
func (b *Breaker) LockReason() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lockReason
}

// ResetLock forces the breaker back to Normal. The override holds only
// until the next Evaluate call recomputes from live metrics.
func (b *Breaker) ResetLock() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state = StateNormal
	b.lockReason = ""
}
