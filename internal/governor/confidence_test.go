package governor

import "testing"

func TestScoreConfidence(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		approved bool
		modifier float64
	}{
		{"deep reject", 10, false, 0},
		{"just below reject line", 39.9, false, 0},
		{"reduced band lower edge", 40, true, 0.8},
		{"reduced band", 55, true, 0.8},
		{"neutral band lower edge", 60, true, 1.0},
		{"neutral band", 72, true, 1.0},
		{"boost band lower edge", 80, true, 1.15},
		{"boost band", 95, true, 1.15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScoreConfidence(tt.value)
			if got.Approved != tt.approved {
				t.Fatalf("Approved = %v, want %v", got.Approved, tt.approved)
			}
			if got.Value != tt.value {
				t.Errorf("Value = %v, want %v", got.Value, tt.value)
			}
			if tt.approved && got.Modifier != tt.modifier {
				t.Errorf("Modifier = %v, want %v", got.Modifier, tt.modifier)
			}
			if !tt.approved && got.Reason != "Low confidence signal" {
				t.Errorf("Reason = %q, want low-confidence rejection", got.Reason)
			}
		})
	}
}
