package state

import (
	"time"

	"github.com/nmhoang92/capital-governor/internal/memory"
	"github.com/nmhoang92/capital-governor/internal/portfolio"
)

// Store abstracts the durable key-value backing so any storage with
// read-modify-write semantics can replace the file reference implementation
// without touching governor logic.
type Store interface {
	Load(key string, v interface{}) error
	Save(key string, v interface{}) error
}

// SessionState is the complete recoverable state of a governance session
type SessionState struct {
	Version     string                        `json:"version"`
	LastUpdated time.Time                     `json:"last_updated"`
	Strategies  map[string]memory.Performance `json:"strategies"`
	Allocation  portfolio.Allocation          `json:"allocation"`
	DailyPnL    float64                       `json:"daily_pnl"`
	PeakEquity  float64                       `json:"peak_equity"`
}

// NewSessionState creates an empty session state
func NewSessionState() *SessionState {
	return &SessionState{
		Version:     "1.0.0",
		LastUpdated: time.Now(),
		Strategies:  make(map[string]memory.Performance),
	}
}
