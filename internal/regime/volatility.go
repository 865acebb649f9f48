package regime

// VolatilityLevel classifies a normalized volatility score
type VolatilityLevel string

const (
	VolatilityNormal   VolatilityLevel = "normal"
	VolatilityElevated VolatilityLevel = "elevated"
	VolatilityHigh     VolatilityLevel = "high"
)

// VolatilityAdjustment is the result of scaling a proposal for volatility
type VolatilityAdjustment struct {
	RiskPct  float64
	Leverage float64
	Level    VolatilityLevel
}

// AdjustForVolatility scales risk and leverage down for a volatility score in
// [0,1]. Scores above 0.8 are treated as high volatility, 0.6-0.8 as
// elevated; anything below passes through unchanged.
func AdjustForVolatility(score, riskPct, leverage float64) VolatilityAdjustment {
	switch {
	case score > 0.8:
		return VolatilityAdjustment{
			RiskPct:  riskPct * 0.6,
			Leverage: leverage * 0.6,
			Level:    VolatilityHigh,
		}
	case score > 0.6:
		return VolatilityAdjustment{
			RiskPct:  riskPct * 0.85,
			Leverage: leverage * 0.8,
			Level:    VolatilityElevated,
		}
	default:
		return VolatilityAdjustment{
			RiskPct:  riskPct,
			Leverage: leverage,
			Level:    VolatilityNormal,
		}
	}
}
