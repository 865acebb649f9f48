package governor

import (
	"time"
)

// Proposal is the immutable input to the governor chain. It is created per
// decision request and never persisted.
type Proposal struct {
	StrategyID string
	RiskPct    float64 // requested risk as percent of balance
	Leverage   float64
	Balance    float64
	Timestamp  time.Time
}

// Verdict is the outcome of a single stage. Later stages consume the
// adjusted values, not the original request; stages only tighten.
type Verdict struct {
	Approved bool
	RiskPct  float64
	Leverage float64
	Reason   string
	Warning  string
}

// ApprovedOrder is the final pipeline output for a proposal that survived
// every stage. Notional is the capital committed to the order.
type ApprovedOrder struct {
	ID            string    `json:"id"`
	StrategyID    string    `json:"strategy_id"`
	RiskPct       float64   `json:"risk_pct"`
	Leverage      float64   `json:"leverage"`
	Notional      float64   `json:"notional"`
	Confidence    float64   `json:"confidence"`
	SlippageFrac  float64   `json:"slippage_frac"`
	EstimatedCost float64   `json:"estimated_cost"`
	Warnings      []string  `json:"warnings,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
}

// Rejection is a terminal, non-error outcome carrying the stage that fired
// and its reason verbatim
type Rejection struct {
	StrategyID string    `json:"strategy_id"`
	Stage      string    `json:"stage"`
	Reason     string    `json:"reason"`
	Timestamp  time.Time `json:"timestamp"`
}

// Stage names used in rejections and metrics
const (
	StageWindow     = "time_window"
	StageCooldown   = "cooldown"
	StageKillSwitch = "kill_switch"
	StageBreaker    = "circuit_breaker"
	StageCaps       = "engine_caps"
	StageConfidence = "confidence"
	StageRegime     = "regime"
)
