package governor

import "math"

// KillSwitchConfig holds the emergency full-stop thresholds
type KillSwitchConfig struct {
	MaxTotalDrawdownPct  float64 `json:"max_total_drawdown_pct"`
	MaxDailyLossPct      float64 `json:"max_daily_loss_pct"`
	MaxConsecutiveLosses int     `json:"max_consecutive_losses"`
}

// DefaultKillSwitchConfig returns the default thresholds
func DefaultKillSwitchConfig() KillSwitchConfig {
	return KillSwitchConfig{
		MaxTotalDrawdownPct:  30,
		MaxDailyLossPct:      10,
		MaxConsecutiveLosses: 5,
	}
}

// KillSwitchInput is the capital snapshot the kill switch evaluates
type KillSwitchInput struct {
	TotalCapital      float64
	PeakCapital       float64
	DailyPnL          float64
	ConsecutiveLosses int
	ManualTrigger     bool
}

// KillSwitchResult reports whether the kill switch fired and why
type KillSwitchResult struct {
	Active bool
	Reason string
}

// EvaluateKillSwitch checks the full-stop conditions in priority order:
// manual trigger always wins, then total drawdown, daily loss, consecutive
// losses. The first breached condition is reported. The evaluator has no
// side effects; the caller must halt trading when Active is set.
func EvaluateKillSwitch(in KillSwitchInput, cfg KillSwitchConfig) KillSwitchResult {
	if in.ManualTrigger {
		return KillSwitchResult{Active: true, Reason: "Manual kill switch engaged"}
	}

	if in.PeakCapital > 0 {
		drawdown := (in.PeakCapital - in.TotalCapital) / in.PeakCapital * 100
		if drawdown > cfg.MaxTotalDrawdownPct {
			return KillSwitchResult{Active: true, Reason: "Max total drawdown exceeded"}
		}

		if in.DailyPnL < 0 {
			dailyLoss := math.Abs(in.DailyPnL) / in.PeakCapital * 100
			if dailyLoss > cfg.MaxDailyLossPct {
				return KillSwitchResult{Active: true, Reason: "Max daily loss exceeded"}
			}
		}
	}

	if in.ConsecutiveLosses >= cfg.MaxConsecutiveLosses {
		return KillSwitchResult{Active: true, Reason: "Max consecutive losses reached"}
	}

	return KillSwitchResult{}
}
