package governor

import "math"

// EngineCaps holds the hard per-strategy limits
type EngineCaps struct {
	MaxRiskPct           float64 `json:"max_risk_pct"`
	MaxLeverage          float64 `json:"max_leverage"`
	MaxDrawdownPct       float64 `json:"max_drawdown_pct"`
	MaxConsecutiveLosses int     `json:"max_consecutive_losses"`
}

// DefaultEngineCaps returns conservative per-strategy limits
func DefaultEngineCaps() EngineCaps {
	return EngineCaps{
		MaxRiskPct:           2.0,
		MaxLeverage:          10.0,
		MaxDrawdownPct:       20.0,
		MaxConsecutiveLosses: 3,
	}
}

// CapsInput carries the proposal values alongside the strategy's trailing
// performance
type CapsInput struct {
	StrategyID  string
	Balance     float64
	RiskPct     float64
	Leverage    float64
	Losses      int // consecutive losses in the trailing window
	RealizedPnL float64
}

// ApplyCaps enforces per-strategy hard limits. Order matters: caps clamp
// first, the loss-streak halving applies second, and the drawdown block is
// evaluated last so it can still reject a fully clamped proposal.
func ApplyCaps(in CapsInput, caps EngineCaps) Verdict {
	v := Verdict{
		Approved: true,
		RiskPct:  in.RiskPct,
		Leverage: in.Leverage,
	}

	if v.RiskPct > caps.MaxRiskPct {
		v.RiskPct = caps.MaxRiskPct
	}
	if v.Leverage > caps.MaxLeverage {
		v.Leverage = caps.MaxLeverage
	}

	if in.Losses >= caps.MaxConsecutiveLosses {
		v.RiskPct /= 2
		v.Warning = "Risk halved after loss streak"
	}

	drawdownPct := 100.0
	if in.Balance > 0 {
		drawdownPct = math.Abs(in.RealizedPnL) / in.Balance * 100
	}
	if drawdownPct >= caps.MaxDrawdownPct {
		v.Approved = false
		v.Reason = "Drawdown limit exceeded"
	}

	return v
}
