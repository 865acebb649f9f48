package governor

import (
	"sync"
	"time"
)

// DefaultCooldown is the base minimum spacing between trades per strategy
const DefaultCooldown = 15 * time.Second

// CooldownGate rate-limits trade proposals per strategy based on elapsed
// time and the outcome of the previous trade. Timestamps live for the
// process lifetime; there is no expiry.
type CooldownGate struct {
	mu   sync.Mutex
	min  time.Duration
	last map[string]time.Time
}

// NewCooldownGate creates a cooldown gate with the given base cooldown,
// falling back to the default when non-positive
func NewCooldownGate(min time.Duration) *CooldownGate {
	if min <= 0 {
		min = DefaultCooldown
	}
	return &CooldownGate{
		min:  min,
		last: make(map[string]time.Time),
	}
}

// Evaluate decides whether a strategy may trade now. The stored timestamp
// advances only on the allow path; rejected proposals leave it untouched.
// The first call for a strategy always allows.
func (g *CooldownGate) Evaluate(strategyID string, lastPnL float64, now time.Time) (bool, string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	last, seen := g.last[strategyID]
	if !seen {
		g.last[strategyID] = now
		return true, ""
	}

	elapsed := now.Sub(last)
	if elapsed < g.min {
		return false, "Cooldown active"
	}
	// Big losses get double spacing to avoid revenge trading
	if lastPnL < -50 && elapsed < 2*g.min {
		return false, "Post-loss stabilization"
	}
	// Big wins get extra spacing too; streak chasing cuts both ways
	if lastPnL > 100 && elapsed < g.min+g.min/2 {
		return false, "Post-win throttle"
	}

	g.last[strategyID] = now
	return true, ""
}

// Reset clears the stored timestamp for a strategy. Operational override;
// the gate itself never expires entries.
func (g *CooldownGate) Reset(strategyID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.last, strategyID)
}
