package regime

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdjustForVolatility(t *testing.T) {
	tests := []struct {
		name     string
		score    float64
		risk     float64
		leverage float64
		level    VolatilityLevel
	}{
		{"calm market passes through", 0.3, 2.0, 10.0, VolatilityNormal},
		{"boundary 0.6 is still normal", 0.6, 2.0, 10.0, VolatilityNormal},
		{"elevated scales moderately", 0.7, 2.0 * 0.85, 10.0 * 0.8, VolatilityElevated},
		{"boundary 0.8 is still elevated", 0.8, 2.0 * 0.85, 10.0 * 0.8, VolatilityElevated},
		{"high volatility cuts hard", 0.9, 2.0 * 0.6, 10.0 * 0.6, VolatilityHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adj := AdjustForVolatility(tt.score, 2.0, 10.0)
			assert.InDelta(t, tt.risk, adj.RiskPct, 1e-9)
			assert.InDelta(t, tt.leverage, adj.Leverage, 1e-9)
			assert.Equal(t, tt.level, adj.Level)
		})
	}
}

func TestEstimateSlippage(t *testing.T) {
	// Larger orders cost more in every regime.
	small := EstimateSlippage(500, 5, RegimeNeutral)
	large := EstimateSlippage(50000, 5, RegimeNeutral)
	assert.Less(t, small, large)

	// Higher leverage costs more at the same size.
	lowLev := EstimateSlippage(2000, 3, RegimeNeutral)
	highLev := EstimateSlippage(2000, 25, RegimeNeutral)
	assert.Less(t, lowLev, highLev)

	// Thin regimes amplify the same order.
	calm := EstimateSlippage(2000, 5, RegimeRanging)
	trending := EstimateSlippage(2000, 5, RegimeTrending)
	stressed := EstimateSlippage(2000, 5, RegimeHighVolatility)
	assert.Less(t, calm, trending)
	assert.Less(t, trending, stressed)

	assert.InDelta(t, (0.001+0.0002)/0.6, EstimateSlippage(2000, 5, RegimeHighVolatility), 1e-9)
}

func TestEstimateCost(t *testing.T) {
	size := 2000.0
	assert.InDelta(t, size*EstimateSlippage(size, 5, RegimeNeutral), EstimateCost(size, 5, RegimeNeutral), 1e-9)
}

func TestRiskModifierFor(t *testing.T) {
	assert.InDelta(t, 1.1, RiskModifierFor(RegimeTrending, "session"), 1e-9)
	assert.InDelta(t, 0.9, RiskModifierFor(RegimeTrending, "scalp"), 1e-9)
	assert.InDelta(t, 0.8, RiskModifierFor(RegimeHighVolatility, "scalp"), 1e-9)

	// Unknown strategies stay neutral.
	assert.InDelta(t, 1.0, RiskModifierFor(RegimeTrending, "swing"), 1e-9)
}

func TestBiasForUnknownRegime(t *testing.T) {
	b := BiasFor(Regime(42))
	assert.Equal(t, 0.0, b.WinRateSkew)
}

func TestRegimeString(t *testing.T) {
	assert.Equal(t, "TRENDING", RegimeTrending.String())
	assert.Equal(t, "RANGING", RegimeRanging.String())
	assert.Equal(t, "HIGH_VOLATILITY", RegimeHighVolatility.String())
	assert.Equal(t, "NEUTRAL", RegimeNeutral.String())
	assert.Equal(t, "UNKNOWN", Regime(42).String())
}
