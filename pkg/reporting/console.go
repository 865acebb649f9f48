package reporting

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/nmhoang92/capital-governor/internal/ledger"
	"github.com/nmhoang92/capital-governor/internal/portfolio"
)

// ConsoleReporter renders session results as terminal tables
type ConsoleReporter struct {
	out io.Writer
}

// NewConsoleReporter creates a console reporter writing to stdout
func NewConsoleReporter() *ConsoleReporter {
	return &ConsoleReporter{out: os.Stdout}
}

// NewConsoleReporterTo creates a console reporter writing to w
func NewConsoleReporterTo(w io.Writer) *ConsoleReporter {
	return &ConsoleReporter{out: w}
}

// PrintStats renders aggregate ledger statistics
func (r *ConsoleReporter) PrintStats(stats ledger.Stats) {
	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetTitle("SESSION RESULTS")
	t.SetStyle(table.StyleRounded)

	t.AppendRows([]table.Row{
		{"Total Fills", stats.TotalFills},
		{"Winning", fmt.Sprintf("%d (%.1f%%)", stats.Wins, stats.WinRate)},
		{"Losing", stats.Losses},
		{"Gross Profit", fmt.Sprintf("$%.2f", stats.GrossProfit)},
		{"Gross Loss", fmt.Sprintf("$%.2f", stats.GrossLoss)},
		{"Profit Factor", fmt.Sprintf("%.2f", stats.ProfitFactor)},
		{"Net PnL", fmt.Sprintf("$%.2f", stats.NetPnL)},
	})

	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, WidthMin: 15, Align: text.AlignLeft},
		{Number: 2, WidthMin: 20, Align: text.AlignLeft},
	})

	t.Render()
	fmt.Fprintln(r.out)
}

// PrintAllocation renders the current capital allocation
func (r *ConsoleReporter) PrintAllocation(alloc portfolio.Allocation) {
	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetTitle("CAPITAL ALLOCATION")
	t.SetStyle(table.StyleRounded)

	ids := make([]string, 0, len(alloc.Strategies))
	for id := range alloc.Strategies {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		bal := alloc.Strategies[id]
		share := 0.0
		if alloc.Total > 0 {
			share = bal / alloc.Total * 100
		}
		t.AppendRow(table.Row{id, fmt.Sprintf("$%.2f", bal), fmt.Sprintf("%.1f%%", share)})
	}
	t.AppendSeparator()
	t.AppendRow(table.Row{"reserve", fmt.Sprintf("$%.2f", alloc.Reserve), ""})
	t.AppendRow(table.Row{"total", fmt.Sprintf("$%.2f", alloc.Total), ""})

	t.Render()
	fmt.Fprintln(r.out)
}

// PrintStrategyStats renders per-strategy ledger statistics
func (r *ConsoleReporter) PrintStrategyStats(l *ledger.Ledger, strategies []string) {
	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetTitle("PER-STRATEGY PERFORMANCE")
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Strategy", "Fills", "Win Rate", "Net PnL", "Profit Factor"})

	for _, id := range strategies {
		stats := l.StatsFor(id)
		t.AppendRow(table.Row{
			id,
			stats.TotalFills,
			fmt.Sprintf("%.1f%%", stats.WinRate),
			fmt.Sprintf("$%.2f", stats.NetPnL),
			fmt.Sprintf("%.2f", stats.ProfitFactor),
		})
	}

	t.Render()
	fmt.Fprintln(r.out)
}
