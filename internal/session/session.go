package session

import (
	"sync"
	"time"

	goverrors "github.com/nmhoang92/capital-governor/internal/errors"
	"github.com/nmhoang92/capital-governor/internal/governor"
	"github.com/nmhoang92/capital-governor/internal/ledger"
	"github.com/nmhoang92/capital-governor/internal/logger"
	"github.com/nmhoang92/capital-governor/internal/memory"
	"github.com/nmhoang92/capital-governor/internal/monitoring"
	"github.com/nmhoang92/capital-governor/internal/portfolio"
	"github.com/nmhoang92/capital-governor/internal/regime"
	"github.com/nmhoang92/capital-governor/internal/state"
)

const stateKey = "session"

// Decision is the outcome EvaluateTrade hands back to order-placement code.
// Exactly one of Order and Rejection is set.
type Decision struct {
	Order     *governor.ApprovedOrder
	Rejection *governor.Rejection
}

// Approved reports whether the proposal survived the full chain
func (d Decision) Approved() bool {
	return d.Order != nil
}

// Config wires a session together
type Config struct {
	Strategies     []string
	InitialCapital float64
	Cooldown       time.Duration
	KillSwitch     governor.KillSwitchConfig
	Caps           map[string]governor.EngineCaps
	Allocator      portfolio.RebalanceConfig
	Signal         governor.ConfidenceSignal // nil selects the memory-derived signal
}

// Session is the single authoritative owner of mutable governance state:
// cooldown timestamps, kill switch, breaker, trade memory, ledger, equity
// and the capital allocation. All entry points serialize on one mutex so the
// breaker and the allocation have exactly one writer.
type Session struct {
	mu  sync.Mutex
	log *logger.Logger

	pipeline *governor.Pipeline
	memory   *memory.Store
	ledger   *ledger.Ledger
	equity   *portfolio.EquityTracker
	store    state.Store
	health   *monitoring.HealthChecker

	allocCfg   portfolio.RebalanceConfig
	allocation portfolio.Allocation

	manualKill      bool
	dailyPnL        float64
	dayStart        time.Time
	fillsSinceRebal int

	marketRegime    regime.Regime
	volatilityScore float64
}

// New creates a session, restoring persisted state when the store has any
func New(cfg Config, store state.Store, log *logger.Logger, health *monitoring.HealthChecker) (*Session, error) {
	if cfg.InitialCapital <= 0 {
		return nil, goverrors.NewConfigurationError("session", "New", "initial capital must be positive")
	}
	if len(cfg.Strategies) == 0 {
		return nil, goverrors.NewConfigurationError("session", "New", "at least one strategy is required")
	}

	mem := memory.NewStore()
	signal := cfg.Signal
	if signal == nil {
		signal = mem
	}

	pipeline := governor.NewPipeline(signal)
	pipeline.Cooldown = governor.NewCooldownGate(cfg.Cooldown)
	if cfg.KillSwitch != (governor.KillSwitchConfig{}) {
		pipeline.Kill = cfg.KillSwitch
	}
	for id, caps := range cfg.Caps {
		pipeline.Caps[id] = caps
	}

	allocCfg := cfg.Allocator
	if allocCfg == (portfolio.RebalanceConfig{}) {
		allocCfg = portfolio.DefaultRebalanceConfig()
	}

	s := &Session{
		log:          log,
		pipeline:     pipeline,
		memory:       mem,
		ledger:       ledger.NewLedger(),
		equity:       portfolio.NewEquityTracker(cfg.InitialCapital),
		store:        store,
		health:       health,
		allocCfg:     allocCfg,
		dayStart:     startOfDay(time.Now()),
		marketRegime: regime.RegimeNeutral,
	}

	// Cold strategies score neutral, so the initial split is even
	perf := make(map[string]portfolio.PerformanceView, len(cfg.Strategies))
	for _, id := range cfg.Strategies {
		perf[id] = portfolio.PerformanceView{}
	}
	s.allocation = portfolio.Rebalance(cfg.InitialCapital, perf, allocCfg)

	if err := s.restore(); err != nil {
		return nil, err
	}

	return s, nil
}

// restore loads persisted state, tolerating a missing key
func (s *Session) restore() error {
	if s.store == nil {
		return nil
	}

	var persisted state.SessionState
	err := s.store.Load(stateKey, &persisted)
	if err == state.ErrNotFound {
		return nil
	}
	if err != nil {
		return goverrors.NewStorageError("session", "restore", err)
	}

	s.memory.Restore(persisted.Strategies)
	if len(persisted.Allocation.Strategies) > 0 {
		s.allocation = persisted.Allocation
	}
	// A daily PnL from a previous day is stale; the window starts fresh
	if !persisted.LastUpdated.Before(s.dayStart) {
		s.dailyPnL = persisted.DailyPnL
	}
	if persisted.PeakEquity > 0 {
		s.equity = portfolio.NewEquityTracker(persisted.PeakEquity)
		s.equity.Update(s.allocation.Total)
	}

	if s.log != nil {
		s.log.Info("Session state restored: %d strategies, total=$%.2f",
			len(persisted.Strategies), s.allocation.Total)
	}
	return nil
}

// EvaluateTrade runs a proposal through the governor chain. Rejections are
// normal verdicts, not errors; the error path is reserved for invalid
// inputs and configuration.
func (s *Session) EvaluateTrade(p governor.Proposal) (Decision, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rollDayLocked(p.Timestamp)

	strategyPerf, _ := s.memory.Performance(p.StrategyID)
	m := governor.Metrics{
		TotalCapital:      s.equity.Current(),
		PeakCapital:       s.equity.Peak(),
		DailyPnL:          s.dailyPnL,
		ConsecutiveLosses: s.memory.ConsecutiveLosses(p.StrategyID),
		ManualKill:        s.manualKill,
		LastTradePnL:      strategyPerf.LastTradePnL,
		StrategyPnL:       strategyPerf.RealizedPnL,
		VolatilityScore:   s.volatilityScore,
		MarketRegime:      s.marketRegime,
	}

	order, rejection, err := s.pipeline.Evaluate(p, m)
	if err != nil {
		return Decision{}, err
	}

	monitoring.RecordProposal(p.StrategyID)
	monitoring.SetBreakerState(int(s.pipeline.Breaker.State()))
	if s.health != nil {
		s.health.RecordDecision()
		s.health.SetBreakerState(s.pipeline.Breaker.State().String())
	}

	if rejection != nil {
		monitoring.RecordRejection(p.StrategyID, rejection.Stage)
		if s.log != nil {
			s.log.LogVerdict(p.StrategyID, false, rejection.Stage, rejection.Reason, 0, 0)
		}
		return Decision{Rejection: rejection}, nil
	}

	monitoring.ObserveOrderNotional(p.StrategyID, order.Notional)
	if s.log != nil {
		s.log.LogVerdict(p.StrategyID, true, "", "", order.RiskPct, order.Leverage)
	}
	return Decision{Order: order}, nil
}

// RecordFill settles a filled order: trade memory, ledger and equity are
// updated, and every N fills the capital allocation is rebalanced toward
// the better performer. A failed persist is reported but never rolls back
// the in-memory update; the caller owns reconciliation.
func (s *Session) RecordFill(strategyID string, realizedPnL, balanceAfter float64, isWin bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	s.rollDayLocked(now)

	s.memory.Record(strategyID, memory.Trade{
		PnL:          realizedPnL,
		Win:          isWin,
		BalanceAfter: balanceAfter,
		Timestamp:    now,
	})
	s.ledger.Append(ledger.Fill{
		StrategyID: strategyID,
		PnL:        realizedPnL,
		Win:        isWin,
		Timestamp:  now,
	})

	if _, ok := s.allocation.Strategies[strategyID]; ok {
		s.allocation.Strategies[strategyID] = balanceAfter
		s.allocation.Total = s.allocation.Reserve + sum(s.allocation.Strategies)
	}

	s.dailyPnL += realizedPnL
	s.equity.Update(s.allocation.Total)

	monitoring.SetDailyPnL(s.dailyPnL)
	for id, bal := range s.allocation.Strategies {
		monitoring.SetAllocation(id, bal)
	}
	monitoring.SetAllocation("reserve", s.allocation.Reserve)

	if s.log != nil {
		s.log.Trade("Fill settled - strategy=%s pnl=%.2f balance=%.2f win=%v",
			strategyID, realizedPnL, balanceAfter, isWin)
	}

	s.fillsSinceRebal++
	if s.allocCfg.RebalanceEvery > 0 && s.fillsSinceRebal >= s.allocCfg.RebalanceEvery {
		s.rebalanceLocked()
	}

	return s.persistLocked()
}

// rebalanceLocked redistributes capital from trailing performance
func (s *Session) rebalanceLocked() {
	perf := make(map[string]portfolio.PerformanceView, len(s.allocation.Strategies))
	for id := range s.allocation.Strategies {
		p, _ := s.memory.Performance(id)
		perf[id] = portfolio.PerformanceView{
			WinRate: p.WinRate(),
			PnL:     p.RealizedPnL,
			Trades:  p.TradeCount(),
		}
	}

	s.allocation = portfolio.Rebalance(s.allocation.Total, perf, s.allocCfg)
	s.fillsSinceRebal = 0

	if s.log != nil {
		s.log.LogRebalance(s.allocation.Strategies, s.allocation.Reserve)
	}
	for id, bal := range s.allocation.Strategies {
		monitoring.SetAllocation(id, bal)
	}
	monitoring.SetAllocation("reserve", s.allocation.Reserve)
}

// persistLocked saves the session state without touching in-memory data on
// failure
func (s *Session) persistLocked() error {
	if s.store == nil {
		return nil
	}

	persisted := state.SessionState{
		Version:     "1.0.0",
		LastUpdated: time.Now(),
		Strategies:  s.memory.Snapshot(),
		Allocation:  s.allocation,
		DailyPnL:    s.dailyPnL,
		PeakEquity:  s.equity.Peak(),
	}
	if err := s.store.Save(stateKey, &persisted); err != nil {
		if s.log != nil {
			s.log.LogError("State persist failed", err)
		}
		if s.health != nil {
			s.health.RecordError(err.Error())
		}
		return goverrors.NewStorageError("session", "persist", err)
	}
	return nil
}

// rollDayLocked resets the daily PnL window at local midnight
func (s *Session) rollDayLocked(now time.Time) {
	if now.IsZero() {
		now = time.Now()
	}
	day := startOfDay(now)
	if day.After(s.dayStart) {
		s.dayStart = day
		s.dailyPnL = 0
		monitoring.SetDailyPnL(0)
	}
}

// TriggerKillSwitch engages the manual full stop
func (s *Session) TriggerKillSwitch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.manualKill = true
	monitoring.SetKillSwitchActive(true)
	if s.health != nil {
		s.health.SetKillSwitch(true)
	}
	if s.log != nil {
		s.log.Warning("Manual kill switch engaged")
	}
}

// ResetKillSwitch releases the manual full stop. Threshold-driven kill
// conditions re-fire on the next evaluation if still breached.
func (s *Session) ResetKillSwitch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.manualKill = false
	monitoring.SetKillSwitchActive(false)
	if s.health != nil {
		s.health.SetKillSwitch(false)
	}
}

// ResetBreaker forces the circuit breaker back to Normal until the next
// evaluation
func (s *Session) ResetBreaker() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pipeline.Breaker.ResetLock()
}

// ResetCooldown clears a strategy's cooldown timestamp
func (s *Session) ResetCooldown(strategyID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pipeline.Cooldown.Reset(strategyID)
}

// SetMarketState feeds the latest detected regime and volatility score into
// subsequent evaluations
func (s *Session) SetMarketState(r regime.Regime, volatilityScore float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.marketRegime = r
	s.volatilityScore = volatilityScore
}

// Allocation returns a copy of the current capital allocation
func (s *Session) Allocation() portfolio.Allocation {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := s.allocation
	cp.Strategies = make(map[string]float64, len(s.allocation.Strategies))
	for id, bal := range s.allocation.Strategies {
		cp.Strategies[id] = bal
	}
	return cp
}

// SuggestRebalance returns the advisory confidence-gap transfer, if any
func (s *Session) SuggestRebalance() *portfolio.RebalanceSuggestion {
	s.mu.Lock()
	defer s.mu.Unlock()

	confidence := make(map[string]float64, len(s.allocation.Strategies))
	for id := range s.allocation.Strategies {
		confidence[id] = s.memory.Confidence(id)
	}
	return portfolio.SuggestRebalance(s.allocation.Total, confidence)
}

// Ledger exposes the append-only fill history
func (s *Session) Ledger() *ledger.Ledger {
	return s.ledger
}

// Memory exposes the per-strategy trade memory
func (s *Session) Memory() *memory.Store {
	return s.memory
}

// Equity exposes the equity tracker
func (s *Session) Equity() *portfolio.EquityTracker {
	return s.equity
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func sum(m map[string]float64) float64 {
	total := 0.0
	for _, v := range m {
		total += v
	}
	return total
}
