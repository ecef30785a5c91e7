package analysis

import (
	"math"
	"testing"

	"pregame/models"
)

func TestNormalizeWinProbability(t *testing.T) {
	tests := []struct {
		name         string
		raw          models.RawPayload
		expectedHome float64
		expectedAway float64
	}{
		{
			name:         "valid pair kept",
			raw:          models.RawPayload{"home_win_prob": 0.65, "away_win_prob": 0.35},
			expectedHome: 0.65,
			expectedAway: 0.35,
		},
		{
			name:         "noisy pair rescaled to sum 1",
			raw:          models.RawPayload{"home_win_prob": 0.49, "away_win_prob": 0.49},
			expectedHome: 0.5,
			expectedAway: 0.5,
		},
		{
			name:         "invalid sum resets to fallback pair",
			raw:          models.RawPayload{"home_win_prob": 0.6, "away_win_prob": 0.6},
			expectedHome: FallbackHomeWinProb,
			expectedAway: FallbackAwayWinProb,
		},
		{
			name:         "missing away resets",
			raw:          models.RawPayload{"home_win_prob": 0.6},
			expectedHome: FallbackHomeWinProb,
			expectedAway: FallbackAwayWinProb,
		},
		{
			name:         "non-finite resets",
			raw:          models.RawPayload{"home_win_prob": math.Inf(1), "away_win_prob": 0.4},
			expectedHome: FallbackHomeWinProb,
			expectedAway: FallbackAwayWinProb,
		},
		{
			name:         "degenerate zero resets",
			raw:          models.RawPayload{"home_win_prob": 0.0, "away_win_prob": 1.0},
			expectedHome: FallbackHomeWinProb,
			expectedAway: FallbackAwayWinProb,
		},
		{
			name:         "wrong types reset",
			raw:          models.RawPayload{"home_win_prob": "strong", "away_win_prob": []interface{}{}},
			expectedHome: FallbackHomeWinProb,
			expectedAway: FallbackAwayWinProb,
		},
		{
			name:         "camelCase keys accepted",
			raw:          models.RawPayload{"homeWinProb": 0.58, "awayWinProb": 0.42},
			expectedHome: 0.58,
			expectedAway: 0.42,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeWinProbability(tt.raw)
			if math.Abs(got.Home-tt.expectedHome) > 1e-9 || math.Abs(got.Away-tt.expectedAway) > 1e-9 {
				t.Errorf("got (%v, %v), want (%v, %v)", got.Home, got.Away, tt.expectedHome, tt.expectedAway)
			}
		})
	}
}

func TestNormalizeWinProbability_AlwaysSumsToOne(t *testing.T) {
	for home := 0.05; home < 1; home += 0.05 {
		for away := 0.05; away < 1; away += 0.05 {
			got := normalizeWinProbability(models.RawPayload{"home_win_prob": home, "away_win_prob": away})
			if math.Abs(got.Home+got.Away-1) > 1e-9 {
				t.Fatalf("(%v, %v) normalized to (%v, %v), sum != 1", home, away, got.Home, got.Away)
			}
			if got.Home < 0 || got.Home > 1 || got.Away < 0 || got.Away > 1 {
				t.Fatalf("(%v, %v) normalized outside [0,1]", home, away)
			}
		}
	}
}

func TestNormalizeContent_EmptyPayload(t *testing.T) {
	content := NormalizeContent(models.RawPayload{})

	if content.Matchup != fallbackMatchup {
		t.Errorf("matchup = %q", content.Matchup)
	}
	if content.OpeningSummary != fallbackSummary {
		t.Errorf("summary = %q", content.OpeningSummary)
	}
	if content.WinProbability.Home != FallbackHomeWinProb {
		t.Errorf("home prob = %v", content.WinProbability.Home)
	}
	if content.MatchupEdges == nil || content.BestBets == nil || content.KeyStats == nil || content.Trends == nil {
		t.Error("slice fields must be empty, not nil")
	}
}

func TestNormalizeContent_DualKeySpellings(t *testing.T) {
	snake := NormalizeContent(models.RawPayload{
		"opening_summary": "Snake case summary.",
		"ai_spread_pick":  map[string]interface{}{"pick": "Lakers -4.5", "reasoning": "Defense travels."},
	})
	camel := NormalizeContent(models.RawPayload{
		"openingSummary": "Camel case summary.",
		"aiSpreadPick":   map[string]interface{}{"pick": "Lakers -4.5", "reasoning": "Defense travels."},
	})

	if snake.OpeningSummary != "Snake case summary." {
		t.Errorf("snake summary = %q", snake.OpeningSummary)
	}
	if camel.OpeningSummary != "Camel case summary." {
		t.Errorf("camel summary = %q", camel.OpeningSummary)
	}
	if snake.SpreadPick != camel.SpreadPick {
		t.Errorf("spread picks differ: %+v vs %+v", snake.SpreadPick, camel.SpreadPick)
	}
}

func TestNormalizeContent_BestBetsCoercion(t *testing.T) {
	content := NormalizeContent(models.RawPayload{
		"best_bets": []interface{}{
			map[string]interface{}{"bet_type": "moneyline", "pick": "Celtics ML", "confidence": 0.8},
			map[string]interface{}{"bet_type": "spread"}, // no pick, dropped
			"not an object",                              // wrong type, dropped
			map[string]interface{}{"betType": "total", "pick": "Over 218.5", "confidence": 1.7},
		},
	})

	if len(content.BestBets) != 2 {
		t.Fatalf("best bets = %d, want 2", len(content.BestBets))
	}
	if content.BestBets[0].Pick != "Celtics ML" || content.BestBets[0].BetType != "moneyline" {
		t.Errorf("first bet = %+v", content.BestBets[0])
	}
	if content.BestBets[1].Confidence != 1.0 {
		t.Errorf("confidence not clamped: %v", content.BestBets[1].Confidence)
	}
}

func TestNormalizeResponse_NestedContent(t *testing.T) {
	response := NormalizeResponse(models.RawPayload{
		"sport": "nhl",
		"analysis": map[string]interface{}{
			"matchup": "Bruins @ Rangers",
		},
	})

	if response.Sport != "nhl" {
		t.Errorf("sport = %q", response.Sport)
	}
	if response.Content.Matchup != "Bruins @ Rangers" {
		t.Errorf("matchup = %q", response.Content.Matchup)
	}
}

func TestNormalizeContent_Overrides(t *testing.T) {
	content := NormalizeContent(models.RawPayload{
		"ui_quick_take": map[string]interface{}{
			"confidence_level": "High",
			"recommendation":   "Take the points.",
		},
		"ui_bet_options": []interface{}{
			map[string]interface{}{"id": "spread", "lean": "Lakers -4.5"},
			map[string]interface{}{"label": "no id, dropped"},
		},
	})

	if content.Overrides.QuickTake == nil {
		t.Fatal("quick take override missing")
	}
	if content.Overrides.QuickTake.ConfidenceLevel != "High" {
		t.Errorf("confidence level = %q", content.Overrides.QuickTake.ConfidenceLevel)
	}
	if len(content.Overrides.BetOptions) != 1 {
		t.Fatalf("bet option overrides = %d, want 1", len(content.Overrides.BetOptions))
	}
	if content.Overrides.BetOptions[0].ID != "spread" {
		t.Errorf("override id = %q", content.Overrides.BetOptions[0].ID)
	}
}

func TestFirstNumber(t *testing.T) {
	tests := []struct {
		input    string
		expected *float64
	}{
		{"Lakers -4.5", ptr(-4.5)},
		{"Over 218.5", ptr(218.5)},
		{"Celtics ML", nil},
		{"", nil},
	}

	for _, tt := range tests {
		got := firstNumber(tt.input)
		switch {
		case tt.expected == nil && got != nil:
			t.Errorf("firstNumber(%q) = %v, want nil", tt.input, *got)
		case tt.expected != nil && (got == nil || *got != *tt.expected):
			t.Errorf("firstNumber(%q) = %v, want %v", tt.input, got, *tt.expected)
		}
	}
}

func ptr(v float64) *float64 { return &v }
