package governor

// ConfidenceSignal produces a confidence score in [0,100] for a strategy.
// The reference implementation derives confidence deterministically from
// trailing performance; randomized signals belong in simulation wiring only
// and must never back production risk decisions.
type ConfidenceSignal interface {
	Confidence(strategyID string) float64
}

// ConfidenceScore is the scorer output: an approval flag and a risk
// multiplier for the confidence band
type ConfidenceScore struct {
	Approved bool
	Value    float64
	Modifier float64
	Reason   string
}

// ScoreConfidence maps a confidence value onto the approval bands. Scores
// below 40 are rejected outright; the surviving bands carry a sizing
// modifier that the pipeline caps so it can never loosen the request.
func ScoreConfidence(value float64) ConfidenceScore {
	switch {
	case value < 40:
		return ConfidenceScore{Value: value, Reason: "Low confidence signal"}
	case value < 60:
		return ConfidenceScore{Approved: true, Value: value, Modifier: 0.8}
	case value < 80:
		return ConfidenceScore{Approved: true, Value: value, Modifier: 1.0}
	default:
		return ConfidenceScore{Approved: true, Value: value, Modifier: 1.15}
	}
}
