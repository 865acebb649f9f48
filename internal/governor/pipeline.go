package governor

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nmhoang92/capital-governor/internal/errors"
	"github.com/nmhoang92/capital-governor/internal/regime"
)

// Metrics is the capital and performance snapshot a single evaluation runs
// against. The session assembles it under its lock so the pipeline itself
// stays pure with respect to its inputs.
type Metrics struct {
	TotalCapital      float64
	PeakCapital       float64
	DailyPnL          float64
	ConsecutiveLosses int
	ManualKill        bool
	LastTradePnL      float64
	StrategyPnL       float64
	VolatilityScore   float64
	MarketRegime      regime.Regime
}

// Pipeline is the ordered chain of governors that jointly gate and resize a
// trade request. Stages run in a fixed order; the first rejection
// short-circuits the rest.
type Pipeline struct {
	Window   TimeWindow
	Cooldown *CooldownGate
	Kill     KillSwitchConfig
	Breaker  *Breaker
	Caps     map[string]EngineCaps
	Signal   ConfidenceSignal
}

// NewPipeline wires the governor chain with default thresholds. Caps may be
// overridden per strategy; unknown strategies fall back to the defaults.
func NewPipeline(signal ConfidenceSignal) *Pipeline {
	return &Pipeline{
		Cooldown: NewCooldownGate(DefaultCooldown),
		Kill:     DefaultKillSwitchConfig(),
		Breaker:  NewBreaker(),
		Caps:     make(map[string]EngineCaps),
		Signal:   signal,
	}
}

func (pl *Pipeline) capsFor(strategyID string) EngineCaps {
	if caps, ok := pl.Caps[strategyID]; ok {
		return caps
	}
	return DefaultEngineCaps()
}

// Evaluate runs a proposal through the full chain. A nil rejection means
// the order was approved; an error is returned only for invalid inputs or
// configuration, never for a business rejection.
func (pl *Pipeline) Evaluate(p Proposal, m Metrics) (*ApprovedOrder, *Rejection, error) {
	if p.StrategyID == "" {
		return nil, nil, errors.NewValidationError("pipeline", "Evaluate", "strategy id is required")
	}
	if p.RiskPct <= 0 || p.Leverage <= 0 {
		return nil, nil, errors.NewValidationError("pipeline", "Evaluate",
			fmt.Sprintf("risk %.2f%% and leverage %.1fx must be positive", p.RiskPct, p.Leverage))
	}
	if pl.Signal == nil {
		return nil, nil, errors.NewConfigurationError("pipeline", "Evaluate", "confidence signal not configured")
	}

	now := p.Timestamp
	if now.IsZero() {
		now = time.Now()
	}

	reject := func(stage, reason string) (*ApprovedOrder, *Rejection, error) {
		return nil, &Rejection{
			StrategyID: p.StrategyID,
			Stage:      stage,
			Reason:     reason,
			Timestamp:  now,
		}, nil
	}

	// 1. Time window
	if status := pl.Window.Status(now); !status.Allowed {
		return reject(StageWindow, status.Reason)
	}

	// 2. Cooldown. Runs after the window check so a closed market never
	// consumes the cooldown allowance.
	if allowed, reason := pl.Cooldown.Evaluate(p.StrategyID, m.LastTradePnL, now); !allowed {
		return reject(StageCooldown, reason)
	}

	// 3. Kill switch
	kill := EvaluateKillSwitch(KillSwitchInput{
		TotalCapital:      m.TotalCapital,
		PeakCapital:       m.PeakCapital,
		DailyPnL:          m.DailyPnL,
		ConsecutiveLosses: m.ConsecutiveLosses,
		ManualTrigger:     m.ManualKill,
	}, pl.Kill)
	if kill.Active {
		return reject(StageKillSwitch, kill.Reason)
	}

	// 4. System circuit breaker
	drawdownPct := 0.0
	if m.PeakCapital > 0 {
		drawdownPct = (m.PeakCapital - m.TotalCapital) / m.PeakCapital * 100
	}
	riskPct := p.RiskPct
	leverage := p.Leverage
	var warnings []string
	switch pl.Breaker.Evaluate(drawdownPct, m.DailyPnL, m.PeakCapital) {
	case StateLocked:
		return reject(StageBreaker, "System locked: "+pl.Breaker.LockReason())
	case StateReduced:
		riskPct *= 0.5
		warnings = append(warnings, "Circuit breaker reduced sizing")
	case StateWarning:
		warnings = append(warnings, "Circuit breaker warning")
	}

	// 5. Per-engine hard caps
	caps := ApplyCaps(CapsInput{
		StrategyID:  p.StrategyID,
		Balance:     p.Balance,
		RiskPct:     riskPct,
		Leverage:    leverage,
		Losses:      m.ConsecutiveLosses,
		RealizedPnL: m.StrategyPnL,
	}, pl.capsFor(p.StrategyID))
	if !caps.Approved {
		return reject(StageCaps, caps.Reason)
	}
	riskPct = caps.RiskPct
	leverage = caps.Leverage
	if caps.Warning != "" {
		warnings = append(warnings, caps.Warning)
	}

	// 6. Confidence scoring. The high band's 1.15 modifier is capped at the
	// previous stage's output so the chain stays monotonic and the engine
	// hard cap holds.
	score := ScoreConfidence(pl.Signal.Confidence(p.StrategyID))
	if !score.Approved {
		return reject(StageConfidence, score.Reason)
	}
	capsRisk := riskPct
	riskPct *= score.Modifier
	if riskPct > capsRisk {
		riskPct = capsRisk
	}

	// 7. Regime and volatility adjustment. The slippage estimate is
	// advisory; it feeds an estimated cost and never rejects on its own.
	adj := regime.AdjustForVolatility(m.VolatilityScore, riskPct, leverage)
	riskPct = adj.RiskPct
	leverage = adj.Leverage
	if adj.Level != regime.VolatilityNormal {
		warnings = append(warnings, fmt.Sprintf("Volatility %s: sizing reduced", adj.Level))
	}

	notional := p.Balance * riskPct / 100 * leverage
	slippage := regime.EstimateSlippage(notional, leverage, m.MarketRegime)

	return &ApprovedOrder{
		ID:            uuid.NewString(),
		StrategyID:    p.StrategyID,
		RiskPct:       riskPct,
		Leverage:      leverage,
		Notional:      notional,
		Confidence:    score.Value,
		SlippageFrac:  slippage,
		EstimatedCost: notional * slippage,
		Warnings:      warnings,
		Timestamp:     now,
	}, nil, nil
}
