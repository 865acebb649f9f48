package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fill(strategy string, pnl float64, win bool) Fill {
	return Fill{
		StrategyID: strategy,
		Symbol:     "BTCUSDT",
		Side:       "Buy",
		Size:       0.01,
		FillPrice:  50000,
		PnL:        pnl,
		Win:        win,
		Timestamp:  time.Date(2025, time.March, 5, 12, 0, 0, 0, time.UTC),
	}
}

func TestLedgerAppendAssignsID(t *testing.T) {
	l := NewLedger()

	got := l.Append(fill("scalp", 100, true))
	assert.NotEmpty(t, got.ID)
	assert.Equal(t, 1, l.Len())

	// A caller-provided ID is kept.
	withID := fill("scalp", 50, true)
	withID.ID = "fill-1"
	got = l.Append(withID)
	assert.Equal(t, "fill-1", got.ID)
}

func TestLedgerAppendDefaultsTimestamp(t *testing.T) {
	l := NewLedger()

	f := fill("scalp", 100, true)
	f.Timestamp = time.Time{}
	got := l.Append(f)
	assert.False(t, got.Timestamp.IsZero())
}

func TestLedgerStats(t *testing.T) {
	l := NewLedger()
	l.Append(fill("scalp", 120, true))
	l.Append(fill("scalp", -40, false))
	l.Append(fill("session", 80, true))
	l.Append(fill("session", -60, false))

	stats := l.Stats()
	require.Equal(t, 4, stats.TotalFills)
	assert.Equal(t, 2, stats.Wins)
	assert.Equal(t, 2, stats.Losses)
	assert.InDelta(t, 50.0, stats.WinRate, 1e-9)
	assert.InDelta(t, 200.0, stats.GrossProfit, 1e-9)
	assert.InDelta(t, 100.0, stats.GrossLoss, 1e-9)
	assert.InDelta(t, 2.0, stats.ProfitFactor, 1e-9)
	assert.InDelta(t, 100.0, stats.NetPnL, 1e-9)
}

func TestLedgerStatsFor(t *testing.T) {
	l := NewLedger()
	l.Append(fill("scalp", 120, true))
	l.Append(fill("scalp", -40, false))
	l.Append(fill("session", 80, true))

	scalp := l.StatsFor("scalp")
	assert.Equal(t, 2, scalp.TotalFills)
	assert.InDelta(t, 80.0, scalp.NetPnL, 1e-9)
	assert.InDelta(t, 50.0, scalp.WinRate, 1e-9)

	// No fills for an unknown strategy.
	swing := l.StatsFor("swing")
	assert.Equal(t, 0, swing.TotalFills)
	assert.Equal(t, 0.0, swing.WinRate)
	assert.Equal(t, 0.0, swing.ProfitFactor)
}

func TestLedgerEmptyStats(t *testing.T) {
	l := NewLedger()
	stats := l.Stats()
	assert.Equal(t, 0, stats.TotalFills)
	assert.Equal(t, 0.0, stats.WinRate)
	assert.Equal(t, 0.0, stats.ProfitFactor)
}

func TestLedgerFillsReturnsCopy(t *testing.T) {
	l := NewLedger()
	l.Append(fill("scalp", 100, true))

	fills := l.Fills()
	fills[0].PnL = -999

	assert.InDelta(t, 100, l.Fills()[0].PnL, 1e-9)
}
