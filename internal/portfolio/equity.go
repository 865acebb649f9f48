package portfolio

import "sync"

// EquityTracker maintains running peak equity and drawdown from an equity
// time series
type EquityTracker struct {
	mu      sync.RWMutex
	current float64
	peak    float64
	maxDD   float64
}

// NewEquityTracker starts tracking from an initial equity value
func NewEquityTracker(initial float64) *EquityTracker {
	return &EquityTracker{
		current: initial,
		peak:    initial,
	}
}

// Update records the latest equity sample
func (t *EquityTracker) Update(equity float64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.current = equity
	if equity > t.peak {
		t.peak = equity
	}
	if dd := t.drawdownLocked(); dd > t.maxDD {
		t.maxDD = dd
	}
}

// Current returns the latest equity sample
func (t *EquityTracker) Current() float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.current
}

// Peak returns the highest equity observed so far
func (t *EquityTracker) Peak() float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.peak
}

// DrawdownPct returns the current percentage decline from peak
func (t *EquityTracker) DrawdownPct() float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.drawdownLocked()
}

// MaxDrawdownPct returns the deepest drawdown observed so far
func (t *EquityTracker) MaxDrawdownPct() float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.maxDD
}

func (t *EquityTracker) drawdownLocked() float64 {
	if t.peak <= 0 {
		return 0
	}
	return (t.peak - t.current) / t.peak * 100
}
