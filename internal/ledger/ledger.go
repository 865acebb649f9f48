package ledger

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Fill is an append-only record of one filled order with realized PnL
type Fill struct {
	ID         string    `json:"id"`
	StrategyID string    `json:"strategy_id"`
	Symbol     string    `json:"symbol"`
	Side       string    `json:"side"`
	Size       float64   `json:"size"`
	FillPrice  float64   `json:"fill_price"`
	PnL        float64   `json:"pnl"`
	Win        bool      `json:"win"`
	Timestamp  time.Time `json:"timestamp"`
}

// Stats aggregates the full fill history
type Stats struct {
	TotalFills   int     `json:"total_fills"`
	Wins         int     `json:"wins"`
	Losses       int     `json:"losses"`
	WinRate      float64 `json:"win_rate"`
	GrossProfit  float64 `json:"gross_profit"`
	GrossLoss    float64 `json:"gross_loss"`
	ProfitFactor float64 `json:"profit_factor"`
	NetPnL       float64 `json:"net_pnl"`
}

// Ledger is the append-only record of every filled order
type Ledger struct {
	mu    sync.RWMutex
	fills []Fill
}

// NewLedger creates an empty performance ledger
func NewLedger() *Ledger {
	return &Ledger{}
}

// Append records a fill, assigning an ID when the caller left it empty
func (l *Ledger) Append(f Fill) Fill {
	l.mu.Lock()
	defer l.mu.Unlock()

	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	if f.Timestamp.IsZero() {
		f.Timestamp = time.Now()
	}
	l.fills = append(l.fills, f)
	return f
}

// Fills returns a copy of the full fill history
func (l *Ledger) Fills() []Fill {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return append([]Fill(nil), l.fills...)
}

// Len returns the number of recorded fills
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return len(l.fills)
}

// Stats computes aggregate statistics over the full history
func (l *Ledger) Stats() Stats {
	l.mu.RLock()
	defer l.mu.RUnlock()

	stats := Stats{TotalFills: len(l.fills)}
	for _, f := range l.fills {
		if f.Win {
			stats.Wins++
		} else {
			stats.Losses++
		}
		if f.PnL >= 0 {
			stats.GrossProfit += f.PnL
		} else {
			stats.GrossLoss += -f.PnL
		}
		stats.NetPnL += f.PnL
	}

	if stats.TotalFills > 0 {
		stats.WinRate = float64(stats.Wins) / float64(stats.TotalFills) * 100
	}
	if stats.GrossLoss > 0 {
		stats.ProfitFactor = stats.GrossProfit / stats.GrossLoss
	}
	return stats
}

// StatsFor computes aggregate statistics for a single strategy
func (l *Ledger) StatsFor(strategyID string) Stats {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var stats Stats
	for _, f := range l.fills {
		if f.StrategyID != strategyID {
			continue
		}
		stats.TotalFills++
		if f.Win {
			stats.Wins++
		} else {
			stats.Losses++
		}
		if f.PnL >= 0 {
			stats.GrossProfit += f.PnL
		} else {
			stats.GrossLoss += -f.PnL
		}
		stats.NetPnL += f.PnL
	}

	if stats.TotalFills > 0 {
		stats.WinRate = float64(stats.Wins) / float64(stats.TotalFills) * 100
	}
	if stats.GrossLoss > 0 {
		stats.ProfitFactor = stats.GrossProfit / stats.GrossLoss
	}
	return stats
}
