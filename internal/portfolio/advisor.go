package portfolio

import "sort"

// RebalanceSuggestion proposes moving capital from the weaker strategy to
// the stronger one. It is advisory only and never auto-applied.
type RebalanceSuggestion struct {
	From          string  `json:"from"`
	To            string  `json:"to"`
	Amount        float64 `json:"amount"`
	ConfidenceGap float64 `json:"confidence_gap"`
}

// SuggestRebalance compares per-strategy confidence scores and, when the gap
// between the strongest and weakest exceeds 10 points, proposes a one-time
// transfer of 10% of total capital. Returns nil when no transfer is
// warranted.
func SuggestRebalance(total float64, confidence map[string]float64) *RebalanceSuggestion {
	if len(confidence) < 2 || total <= 0 {
		return nil
	}

	ids := make([]string, 0, len(confidence))
	for id := range confidence {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	best, worst := ids[0], ids[0]
	for _, id := range ids[1:] {
		if confidence[id] > confidence[best] {
			best = id
		}
		if confidence[id] < confidence[worst] {
			worst = id
		}
	}

	gap := confidence[best] - confidence[worst]
	if gap <= 10 {
		return nil
	}

	return &RebalanceSuggestion{
		From:          worst,
		To:            best,
		Amount:        total * 0.10,
		ConfidenceGap: gap,
	}
}
