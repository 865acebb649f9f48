package regime

// Regime represents different market regimes
type Regime int

const (
	RegimeTrending Regime = iota
	RegimeRanging
	RegimeHighVolatility
	RegimeNeutral
)

func (r Regime) String() string {
	switch r {
	case RegimeTrending:
		return "TRENDING"
	case RegimeRanging:
		return "RANGING"
	case RegimeHighVolatility:
		return "HIGH_VOLATILITY"
	case RegimeNeutral:
		return "NEUTRAL"
	default:
		return "UNKNOWN"
	}
}

// Bias describes the expected edge a regime gives each strategy. It is a
// signal for callers, not a hard gate: the pipeline never rejects on bias.
type Bias struct {
	WinRateSkew  float64            // expected win-rate shift in percentage points
	RiskModifier map[string]float64 // per-strategy risk modifier
}

// biasTable maps each regime to its per-strategy bias. Scalp favors ranging
// and high-volatility conditions; session favors sustained trends.
var biasTable = map[Regime]Bias{
	RegimeTrending: {
		WinRateSkew:  4.0,
		RiskModifier: map[string]float64{"scalp": 0.9, "session": 1.1},
	},
	RegimeRanging: {
		WinRateSkew:  2.0,
		RiskModifier: map[string]float64{"scalp": 1.1, "session": 0.9},
	},
	RegimeHighVolatility: {
		WinRateSkew:  -5.0,
		RiskModifier: map[string]float64{"scalp": 0.8, "session": 0.7},
	},
	RegimeNeutral: {
		WinRateSkew:  0.0,
		RiskModifier: map[string]float64{"scalp": 1.0, "session": 1.0},
	},
}

// BiasFor returns the bias table entry for a regime
func BiasFor(r Regime) Bias {
	if b, ok := biasTable[r]; ok {
		return b
	}
	return biasTable[RegimeNeutral]
}

// RiskModifierFor returns the advisory risk modifier for a strategy in a
// regime, defaulting to 1.0 for unknown strategies
func RiskModifierFor(r Regime, strategyID string) float64 {
	b := BiasFor(r)
	if m, ok := b.RiskModifier[strategyID]; ok {
		return m
	}
	return 1.0
}
