package reporting

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nmhoang92/capital-governor/internal/ledger"
	"github.com/nmhoang92/capital-governor/internal/portfolio"
)

func TestPrintAllocationSortedRows(t *testing.T) {
	alloc := portfolio.Allocation{
		Strategies: map[string]float64{
			"session": 4200,
			"scalp":   4800,
			"arb":     500,
		},
		Reserve: 500,
		Total:   10000,
	}

	// Map iteration order must not leak into the table: rows come out
	// sorted on every run.
	for i := 0; i < 5; i++ {
		var buf bytes.Buffer
		NewConsoleReporterTo(&buf).PrintAllocation(alloc)
		out := buf.String()

		arb := strings.Index(out, "arb")
		scalp := strings.Index(out, "scalp")
		session := strings.Index(out, "session")
		require.NotEqual(t, -1, arb)
		require.NotEqual(t, -1, scalp)
		require.NotEqual(t, -1, session)
		assert.Less(t, arb, scalp)
		assert.Less(t, scalp, session)

		assert.Contains(t, out, "$4800.00")
		assert.Contains(t, out, "reserve")
	}
}

func TestPrintStatsWritesTable(t *testing.T) {
	var buf bytes.Buffer
	NewConsoleReporterTo(&buf).PrintStats(ledger.Stats{
		TotalFills:   4,
		Wins:         2,
		Losses:       2,
		WinRate:      50,
		GrossProfit:  200,
		GrossLoss:    100,
		ProfitFactor: 2,
		NetPnL:       100,
	})

	out := buf.String()
	assert.Contains(t, out, "SESSION RESULTS")
	assert.Contains(t, out, "Profit Factor")
}
