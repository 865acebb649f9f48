package memory

import (
	"sync"
	"time"
)

// WindowSize caps the per-strategy trade history; oldest entries are evicted
const WindowSize = 100

// Trade is a single settled trade for a strategy
type Trade struct {
	PnL          float64   `json:"pnl"`
	Win          bool      `json:"win"`
	BalanceAfter float64   `json:"balance_after"`
	Timestamp    time.Time `json:"timestamp"`
}

// Performance aggregates the trailing trade window for one strategy
type Performance struct {
	StrategyID    string    `json:"strategy_id"`
	Wins          int       `json:"wins"`
	Losses        int       `json:"losses"`
	RealizedPnL   float64   `json:"realized_pnl"`
	Balances      []float64 `json:"balances"`
	Trades        []Trade   `json:"trades"`
	LastTradeTime time.Time `json:"last_trade_time"`
	LastTradePnL  float64   `json:"last_trade_pnl"`
}

// TradeCount returns how many trades are in the trailing window
func (p *Performance) TradeCount() int {
	return len(p.Trades)
}

// WinRate returns the trailing win rate in percent, 0 with no trades
func (p *Performance) WinRate() float64 {
	total := p.Wins + p.Losses
	if total == 0 {
		return 0
	}
	return float64(p.Wins) / float64(total) * 100
}

// Drawdown returns the percentage decline from the peak of the balance series
func (p *Performance) Drawdown() float64 {
	peak := 0.0
	maxDD := 0.0
	for _, b := range p.Balances {
		if b > peak {
			peak = b
		}
		if peak > 0 {
			dd := (peak - b) / peak * 100
			if dd > maxDD {
				maxDD = dd
			}
		}
	}
	return maxDD
}

// Store is the durable per-strategy trade memory. It is the only component
// allowed to mutate Performance records, and only on trade settlement.
type Store struct {
	mu         sync.RWMutex
	strategies map[string]*Performance
}

// NewStore creates an empty trade memory store
func NewStore() *Store {
	return &Store{
		strategies: make(map[string]*Performance),
	}
}

// Record appends a settled trade to a strategy's window, evicting the oldest
// entry once the window is full
func (s *Store) Record(strategyID string, t Trade) {
	s.mu.Lock()
	defer s.mu.Unlock()

	perf, ok := s.strategies[strategyID]
	if !ok {
		perf = &Performance{StrategyID: strategyID}
		s.strategies[strategyID] = perf
	}

	perf.Trades = append(perf.Trades, t)
	perf.Balances = append(perf.Balances, t.BalanceAfter)
	if len(perf.Trades) > WindowSize {
		evicted := perf.Trades[0]
		perf.Trades = perf.Trades[1:]
		perf.Balances = perf.Balances[1:]
		if evicted.Win {
			perf.Wins--
		} else {
			perf.Losses--
		}
		perf.RealizedPnL -= evicted.PnL
	}

	if t.Win {
		perf.Wins++
	} else {
		perf.Losses++
	}
	perf.RealizedPnL += t.PnL
	perf.LastTradeTime = t.Timestamp
	perf.LastTradePnL = t.PnL
}

// Performance returns a copy of a strategy's performance record
func (s *Store) Performance(strategyID string) (Performance, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	perf, ok := s.strategies[strategyID]
	if !ok {
		return Performance{StrategyID: strategyID}, false
	}
	cp := *perf
	cp.Trades = append([]Trade(nil), perf.Trades...)
	cp.Balances = append([]float64(nil), perf.Balances...)
	return cp, true
}

// Confidence derives a deterministic confidence score from the trailing win
// rate. Strategies with no history score the neutral default of 50.
func (s *Store) Confidence(strategyID string) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	perf, ok := s.strategies[strategyID]
	if !ok || perf.Wins+perf.Losses == 0 {
		return 50
	}

	winRate := perf.WinRate()
	switch {
	case winRate > 60:
		return 80
	case winRate > 55:
		return 70
	case winRate > 50:
		return 60
	case winRate > 45:
		return 45
	default:
		return 30
	}
}

// ConsecutiveLosses counts the losing streak at the tail of the window
func (s *Store) ConsecutiveLosses(strategyID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	perf, ok := s.strategies[strategyID]
	if !ok {
		return 0
	}
	streak := 0
	for i := len(perf.Trades) - 1; i >= 0; i-- {
		if perf.Trades[i].Win {
			break
		}
		streak++
	}
	return streak
}

// Snapshot returns a copy of all performance records for persistence
func (s *Store) Snapshot() map[string]Performance {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]Performance, len(s.strategies))
	for id, perf := range s.strategies {
		cp := *perf
		cp.Trades = append([]Trade(nil), perf.Trades...)
		cp.Balances = append([]float64(nil), perf.Balances...)
		out[id] = cp
	}
	return out
}

// Restore replaces the store contents from a persisted snapshot
func (s *Store) Restore(snapshot map[string]Performance) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.strategies = make(map[string]*Performance, len(snapshot))
	for id, perf := range snapshot {
		cp := perf
		cp.Trades = append([]Trade(nil), perf.Trades...)
		cp.Balances = append([]float64(nil), perf.Balances...)
		s.strategies[id] = &cp
	}
}
