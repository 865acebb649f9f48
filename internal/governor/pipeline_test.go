package governor

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nmhoang92/capital-governor/internal/regime"
)

// fixedSignal returns the same confidence for every strategy
type fixedSignal float64

func (s fixedSignal) Confidence(string) float64 { return float64(s) }

func weekday() time.Time {
	return time.Date(2025, time.March, 5, 12, 0, 0, 0, time.Local)
}

func healthyMetrics() Metrics {
	return Metrics{
		TotalCapital: 10000,
		PeakCapital:  10000,
	}
}

func proposal(strategyID string, riskPct, leverage float64, ts time.Time) Proposal {
	return Proposal{
		StrategyID: strategyID,
		RiskPct:    riskPct,
		Leverage:   leverage,
		Balance:    5000,
		Timestamp:  ts,
	}
}

func TestPipelineApprovesHealthyProposal(t *testing.T) {
	pl := NewPipeline(fixedSignal(70))

	order, rejection, err := pl.Evaluate(proposal("scalp", 1.5, 5, weekday()), healthyMetrics())
	require.NoError(t, err)
	require.Nil(t, rejection)
	require.NotNil(t, order)

	assert.NotEmpty(t, order.ID)
	assert.Equal(t, "scalp", order.StrategyID)
	assert.InDelta(t, 1.5, order.RiskPct, 1e-9)
	assert.InDelta(t, 5.0, order.Leverage, 1e-9)
	assert.InDelta(t, 5000*1.5/100*5, order.Notional, 1e-9)
	assert.Greater(t, order.SlippageFrac, 0.0)
	assert.InDelta(t, order.Notional*order.SlippageFrac, order.EstimatedCost, 1e-9)
}

func TestPipelineValidationErrors(t *testing.T) {
	pl := NewPipeline(fixedSignal(70))

	_, _, err := pl.Evaluate(proposal("", 1, 5, weekday()), healthyMetrics())
	assert.Error(t, err)

	_, _, err = pl.Evaluate(proposal("scalp", 0, 5, weekday()), healthyMetrics())
	assert.Error(t, err)

	_, _, err = pl.Evaluate(proposal("scalp", 1, -2, weekday()), healthyMetrics())
	assert.Error(t, err)

	pl.Signal = nil
	_, _, err = pl.Evaluate(proposal("scalp", 1, 5, weekday()), healthyMetrics())
	assert.Error(t, err)
}

func TestPipelineStageOrder(t *testing.T) {
	saturday := time.Date(2025, time.March, 8, 9, 0, 0, 0, time.Local)

	tests := []struct {
		name    string
		prepare func(pl *Pipeline) (Proposal, Metrics)
		stage   string
		reason  string
	}{
		{
			name: "closed window fires first",
			prepare: func(pl *Pipeline) (Proposal, Metrics) {
				// Everything else is broken too; window must win.
				m := healthyMetrics()
				m.ManualKill = true
				return proposal("scalp", 1, 5, saturday), m
			},
			stage:  StageWindow,
			reason: "Trading window closed (weekend lock)",
		},
		{
			name: "cooldown fires before kill switch",
			prepare: func(pl *Pipeline) (Proposal, Metrics) {
				pl.Cooldown.Evaluate("scalp", 0, weekday())
				m := healthyMetrics()
				m.ManualKill = true
				return proposal("scalp", 1, 5, weekday().Add(5*time.Second)), m
			},
			stage:  StageCooldown,
			reason: "Cooldown active",
		},
		{
			name: "manual kill switch",
			prepare: func(pl *Pipeline) (Proposal, Metrics) {
				m := healthyMetrics()
				m.ManualKill = true
				return proposal("scalp", 1, 5, weekday()), m
			},
			stage:  StageKillSwitch,
			reason: "Manual kill switch engaged",
		},
		{
			name: "daily loss kill switch",
			prepare: func(pl *Pipeline) (Proposal, Metrics) {
				m := Metrics{TotalCapital: 10000, PeakCapital: 10000, DailyPnL: -1200}
				return proposal("scalp", 1, 5, weekday()), m
			},
			stage:  StageKillSwitch,
			reason: "Max daily loss exceeded",
		},
		{
			name: "locked breaker",
			prepare: func(pl *Pipeline) (Proposal, Metrics) {
				// 26% drawdown locks the breaker but stays under the 30%
				// kill switch line.
				m := Metrics{TotalCapital: 7400, PeakCapital: 10000}
				return proposal("scalp", 1, 5, weekday()), m
			},
			stage: StageBreaker,
		},
		{
			name: "strategy drawdown cap",
			prepare: func(pl *Pipeline) (Proposal, Metrics) {
				m := healthyMetrics()
				m.StrategyPnL = -1500
				return proposal("scalp", 1, 5, weekday()), m
			},
			stage:  StageCaps,
			reason: "Drawdown limit exceeded",
		},
		{
			name: "low confidence",
			prepare: func(pl *Pipeline) (Proposal, Metrics) {
				pl.Signal = fixedSignal(20)
				return proposal("scalp", 1, 5, weekday()), healthyMetrics()
			},
			stage:  StageConfidence,
			reason: "Low confidence signal",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pl := NewPipeline(fixedSignal(70))
			p, m := tt.prepare(pl)

			order, rejection, err := pl.Evaluate(p, m)
			require.NoError(t, err)
			require.Nil(t, order)
			require.NotNil(t, rejection)

			assert.Equal(t, tt.stage, rejection.Stage)
			if tt.reason != "" {
				assert.Equal(t, tt.reason, rejection.Reason)
			}
		})
	}
}

func TestPipelineReducedStateHalvesRisk(t *testing.T) {
	pl := NewPipeline(fixedSignal(70))

	// 17% drawdown puts the breaker in Reduced.
	m := Metrics{TotalCapital: 8300, PeakCapital: 10000}
	order, rejection, err := pl.Evaluate(proposal("scalp", 2, 5, weekday()), m)
	require.NoError(t, err)
	require.Nil(t, rejection)
	require.NotNil(t, order)

	assert.InDelta(t, 1.0, order.RiskPct, 1e-9)
	assert.Contains(t, order.Warnings, "Circuit breaker reduced sizing")
}

func TestPipelineHighConfidenceNeverLoosens(t *testing.T) {
	pl := NewPipeline(fixedSignal(90))

	// The 1.15 boost on an uncapped 1.5% request must not exceed the
	// original ask.
	order, rejection, err := pl.Evaluate(proposal("scalp", 1.5, 5, weekday()), healthyMetrics())
	require.NoError(t, err)
	require.Nil(t, rejection)
	assert.InDelta(t, 1.5, order.RiskPct, 1e-9)
}

func TestPipelineHighConfidenceRespectsHardCap(t *testing.T) {
	pl := NewPipeline(fixedSignal(85))

	// Request 5% against the default 2% engine cap: the confidence boost
	// must not push the final risk past the cap applied one stage earlier.
	order, rejection, err := pl.Evaluate(proposal("scalp", 5, 5, weekday()), healthyMetrics())
	require.NoError(t, err)
	require.Nil(t, rejection)
	assert.LessOrEqual(t, order.RiskPct, DefaultEngineCaps().MaxRiskPct)
	assert.InDelta(t, 2.0, order.RiskPct, 1e-9)
}

func TestPipelineMonotonicTightening(t *testing.T) {
	confidences := []float64{45, 65, 90}
	risks := []float64{0.5, 1.5, 3, 5}
	leverages := []float64{2, 8, 15}
	metrics := []Metrics{
		{TotalCapital: 10000, PeakCapital: 10000},
		{TotalCapital: 8800, PeakCapital: 10000},                       // Warning
		{TotalCapital: 8300, PeakCapital: 10000},                       // Reduced
		{TotalCapital: 10000, PeakCapital: 10000, VolatilityScore: 0.7},
		{TotalCapital: 10000, PeakCapital: 10000, VolatilityScore: 0.9},
	}

	ts := weekday()
	for _, c := range confidences {
		for _, r := range risks {
			for _, l := range leverages {
				for mi, m := range metrics {
					pl := NewPipeline(fixedSignal(c))
					order, rejection, err := pl.Evaluate(proposal("scalp", r, l, ts), m)
					require.NoError(t, err)
					if rejection != nil {
						continue
					}
					label := fmt.Sprintf("conf=%v risk=%v lev=%v metrics=%d", c, r, l, mi)
					assert.LessOrEqual(t, order.RiskPct, r, label)
					assert.LessOrEqual(t, order.Leverage, l, label)
				}
			}
		}
	}
}

func TestPipelineVolatilityAdjustment(t *testing.T) {
	pl := NewPipeline(fixedSignal(70))

	m := healthyMetrics()
	m.VolatilityScore = 0.9
	m.MarketRegime = regime.RegimeHighVolatility

	order, rejection, err := pl.Evaluate(proposal("scalp", 2, 10, weekday()), m)
	require.NoError(t, err)
	require.Nil(t, rejection)

	assert.InDelta(t, 2*0.6, order.RiskPct, 1e-9)
	assert.InDelta(t, 10*0.6, order.Leverage, 1e-9)
	assert.NotEmpty(t, order.Warnings)
}

func TestPipelinePerStrategyCaps(t *testing.T) {
	pl := NewPipeline(fixedSignal(70))
	pl.Caps["session"] = EngineCaps{
		MaxRiskPct:           1.0,
		MaxLeverage:          4.0,
		MaxDrawdownPct:       20.0,
		MaxConsecutiveLosses: 3,
	}

	order, rejection, err := pl.Evaluate(proposal("session", 3, 8, weekday()), healthyMetrics())
	require.NoError(t, err)
	require.Nil(t, rejection)

	assert.InDelta(t, 1.0, order.RiskPct, 1e-9)
	assert.InDelta(t, 4.0, order.Leverage, 1e-9)
}
