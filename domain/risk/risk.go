// Package risk centralizes the confidence and risk tier thresholds so the
// same numeric signal always yields the same displayed tier regardless of
// which screen renders it. Every function here is pure, stateless, and
// total: inputs are clamped, never rejected.
package risk

import "math"

// Level is a categorical confidence or risk tier
type Level string

const (
	Low    Level = "Low"
	Medium Level = "Medium"
	High   Level = "High"
)

// Tier thresholds. Policy constants copied from observed behavior; tune as
// product values, not derived ones.
const (
	highConfidenceFloor   = 70.0
	mediumConfidenceFloor = 55.0

	// cointossMargin is how close |home-away| must be to a 50/50 split
	// before the matchup itself pushes risk up a tier
	cointossMargin = 0.08
)

// String returns the display label
func (l Level) String() string { return string(l) }

// IsValid reports whether s is a recognized categorical level, used when
// deciding if a pre-authored override may replace a derived tier
func IsValid(s string) bool {
	switch Level(s) {
	case Low, Medium, High:
		return true
	}
	return false
}

// Signals are the numeric inputs to risk classification
type Signals struct {
	AIConfidencePercent float64
	HomeWinProb         float64
	AwayWinProb         float64
	LimitedData         bool
}

// ConfidenceLevelFromPercent maps a 0-100 confidence percent to a tier.
// Input is clamped, and the mapping is monotonic non-decreasing.
func ConfidenceLevelFromPercent(percent float64) Level {
	percent = clampPercent(percent)
	switch {
	case percent >= highConfidenceFloor:
		return High
	case percent >= mediumConfidenceFloor:
		return Medium
	default:
		return Low
	}
}

// RiskLevelFromSignals combines confidence magnitude, how close the
// win-probability pair sits to a coin flip, and the limited-data flag into a
// single tier. Limited data always forces risk up by at least one tier.
func RiskLevelFromSignals(s Signals) Level {
	level := baseRisk(clampPercent(s.AIConfidencePercent))

	margin := math.Abs(clampUnit(s.HomeWinProb) - clampUnit(s.AwayWinProb))
	if margin < cointossMargin {
		level = bumpUp(level)
	}

	if s.LimitedData {
		level = bumpUp(level)
	}

	return level
}

// baseRisk is the inverse of the confidence tiers: high confidence reads as
// low risk
func baseRisk(percent float64) Level {
	switch {
	case percent >= highConfidenceFloor:
		return Low
	case percent >= mediumConfidenceFloor:
		return Medium
	default:
		return High
	}
}

func bumpUp(l Level) Level {
	switch l {
	case Low:
		return Medium
	default:
		return High
	}
}

func clampPercent(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func clampUnit(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
