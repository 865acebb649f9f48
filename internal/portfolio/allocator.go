package portfolio

import (
	"sort"
)

// Allocation is the capital split across strategies plus the reserve buffer.
// Invariant: sum of strategy balances plus reserve equals total.
type Allocation struct {
	Strategies map[string]float64 `json:"strategies"`
	Reserve    float64            `json:"reserve"`
	Total      float64            `json:"total"`
}

// RebalanceConfig holds capital allocation configuration
type RebalanceConfig struct {
	MinEngineCapital float64 `json:"min_engine_capital"` // floor per strategy
	ReserveBufferPct float64 `json:"reserve_buffer_pct"` // fraction of total held back
	RebalanceEvery   int     `json:"rebalance_every"`    // trades between rebalances
}

// DefaultRebalanceConfig returns the default allocation configuration
func DefaultRebalanceConfig() RebalanceConfig {
	return RebalanceConfig{
		MinEngineCapital: 100.0,
		ReserveBufferPct: 0.10,
		RebalanceEvery:   10,
	}
}

// PerformanceView is the rolling performance input the rebalancer scores.
// WinRate is in percent; Trades of zero marks a strategy as unscored.
type PerformanceView struct {
	WinRate float64
	PnL     float64
	Trades  int
}

// score rates one strategy: trailing win rate weighted by PnL direction,
// with a small base so cold strategies keep a share. Zero-trade strategies
// score neutral 1.0.
func score(p PerformanceView) float64 {
	if p.Trades == 0 {
		return 1.0
	}
	weight := 1.1
	if p.PnL < 0 {
		weight = 0.9
	}
	return p.WinRate/100*weight + 0.1
}

// Rebalance redistributes total capital toward the better-performing
// strategies. The reserve buffer is carved out first; floors are applied to
// each target; the remainder is split proportionally by score.
func Rebalance(total float64, perf map[string]PerformanceView, cfg RebalanceConfig) Allocation {
	alloc := Allocation{
		Strategies: make(map[string]float64, len(perf)),
		Total:      total,
	}
	if len(perf) == 0 || total <= 0 {
		alloc.Reserve = total
		return alloc
	}

	alloc.Reserve = total * cfg.ReserveBufferPct
	investable := total - alloc.Reserve

	ids := make([]string, 0, len(perf))
	for id := range perf {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	// Total capital cannot satisfy every floor: split evenly instead.
	if investable < cfg.MinEngineCapital*float64(len(ids)) {
		share := investable / float64(len(ids))
		for _, id := range ids {
			alloc.Strategies[id] = share
		}
		return alloc
	}

	scores := make(map[string]float64, len(ids))
	scoreSum := 0.0
	for _, id := range ids {
		s := score(perf[id])
		scores[id] = s
		scoreSum += s
	}

	// First pass: proportional targets, pinning anything below the floor.
	floored := make(map[string]bool, len(ids))
	flooredTotal := 0.0
	unflooredScore := 0.0
	for _, id := range ids {
		target := investable * scores[id] / scoreSum
		if target < cfg.MinEngineCapital {
			alloc.Strategies[id] = cfg.MinEngineCapital
			floored[id] = true
			flooredTotal += cfg.MinEngineCapital
		} else {
			unflooredScore += scores[id]
		}
	}

	// Second pass: split what the floors left proportionally by score.
	remaining := investable - flooredTotal
	for _, id := range ids {
		if floored[id] {
			continue
		}
		alloc.Strategies[id] = remaining * scores[id] / unflooredScore
	}

	return alloc
}
