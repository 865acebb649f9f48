package portfolio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuggestRebalance(t *testing.T) {
	suggestion := SuggestRebalance(10000, map[string]float64{
		"scalp":   80,
		"session": 45,
	})

	require.NotNil(t, suggestion)
	assert.Equal(t, "session", suggestion.From)
	assert.Equal(t, "scalp", suggestion.To)
	assert.InDelta(t, 1000, suggestion.Amount, 1e-9)
	assert.InDelta(t, 35, suggestion.ConfidenceGap, 1e-9)
}

func TestSuggestRebalanceGapAtThreshold(t *testing.T) {
	// A gap of exactly 10 points is not enough.
	suggestion := SuggestRebalance(10000, map[string]float64{
		"scalp":   60,
		"session": 50,
	})
	assert.Nil(t, suggestion)

	suggestion = SuggestRebalance(10000, map[string]float64{
		"scalp":   60.5,
		"session": 50,
	})
	assert.NotNil(t, suggestion)
}

func TestSuggestRebalanceDegenerateInputs(t *testing.T) {
	assert.Nil(t, SuggestRebalance(10000, map[string]float64{"scalp": 80}))
	assert.Nil(t, SuggestRebalance(10000, nil))
	assert.Nil(t, SuggestRebalance(0, map[string]float64{"scalp": 80, "session": 40}))
}
