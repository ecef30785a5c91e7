package analysis

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"pregame/domain/sportadapt"
	"pregame/models"
)

func TestParseMatchup(t *testing.T) {
	tests := []struct {
		name      string
		matchup   string
		home      string
		away      string
		separator string
	}{
		{"at notation", "Celtics @ Lakers", "Lakers", "Celtics", "@"},
		{"vs notation", "Lakers vs Celtics", "Lakers", "Celtics", "vs"},
		{"vs with period", "Lakers vs. Celtics", "Lakers", "Celtics", "vs"},
		{"uppercase VS", "Lakers VS Celtics", "Lakers", "Celtics", "vs"},
		{"unparseable", "tonight's game", "Home", "Away", "vs"},
		{"empty", "", "Home", "Away", "vs"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			home, away, separator := parseMatchup(tt.matchup)
			if home != tt.home || away != tt.away || separator != tt.separator {
				t.Errorf("parseMatchup(%q) = (%q, %q, %q), want (%q, %q, %q)",
					tt.matchup, home, away, separator, tt.home, tt.away, tt.separator)
			}
		})
	}
}

func TestBuildViewModel_EmptyPayloadIsComplete(t *testing.T) {
	vm := BuildViewModel(models.RawPayload{}, "nba")

	if vm.Header.HomeTeam == "" || vm.Header.AwayTeam == "" {
		t.Error("header teams must never be empty")
	}
	if vm.QuickTake.Recommendation == "" {
		t.Error("recommendation must never be empty")
	}
	if vm.KeyDrivers.Risk == "" {
		t.Error("risk bullet must never be empty")
	}
	if vm.Probability.Home != FallbackHomeWinProb || vm.Probability.Away != FallbackAwayWinProb {
		t.Errorf("probability = %+v, want fallback pair", vm.Probability)
	}
	if vm.BetOptions == nil || vm.MatchupCards == nil || vm.Trends == nil || vm.KeyDrivers.Positives == nil {
		t.Error("slice sections must be empty, not nil")
	}
	if vm.QuickTake.FavoredSide != "home" {
		t.Errorf("fallback prior should favor home, got %q", vm.QuickTake.FavoredSide)
	}
}

func TestBuildViewModel_Deterministic(t *testing.T) {
	payload := models.RawPayload{
		"matchup":         "Celtics @ Lakers",
		"opening_summary": "Lakers control the glass. Celtics are thin at center.",
		"model_win_probability": map[string]interface{}{
			"home_win_prob": 0.62, "away_win_prob": 0.38,
		},
		"key_stats": []interface{}{"Top 5 offense", "Elite rim protection"},
	}

	first, _ := json.Marshal(BuildViewModel(payload, "nba"))
	second, _ := json.Marshal(BuildViewModel(payload, "nba"))
	if string(first) != string(second) {
		t.Error("identical input must produce byte-identical output")
	}
}

func TestBuildViewModel_SpreadLineExtraction(t *testing.T) {
	vm := BuildViewModel(models.RawPayload{
		"matchup": "Celtics @ Lakers",
		"model_win_probability": map[string]interface{}{
			"home_win_prob": 0.6, "away_win_prob": 0.4,
		},
		"ai_spread_pick": map[string]interface{}{"pick": "Lakers -4.5", "reasoning": "Size advantage inside."},
	}, "nba")

	var spread *models.BetOption
	for i := range vm.BetOptions {
		if vm.BetOptions[i].Market == sportadapt.MarketSpread {
			spread = &vm.BetOptions[i]
		}
	}
	if spread == nil {
		t.Fatal("spread option missing")
	}
	if spread.Line == nil || *spread.Line != -4.5 {
		t.Errorf("line = %v, want -4.5", spread.Line)
	}
	if spread.Side != "home" {
		t.Errorf("side = %q, want home (Lakers are the home team)", spread.Side)
	}
	if spread.Prefill.Team != "Lakers" {
		t.Errorf("prefill team = %q", spread.Prefill.Team)
	}
}

func TestBuildViewModel_SideDefaultsToFavored(t *testing.T) {
	vm := BuildViewModel(models.RawPayload{
		"matchup": "Celtics @ Lakers",
		"model_win_probability": map[string]interface{}{
			"home_win_prob": 0.4, "away_win_prob": 0.6,
		},
		"ai_spread_pick": map[string]interface{}{"pick": "take the points"},
	}, "nba")

	for _, option := range vm.BetOptions {
		if option.Market == sportadapt.MarketSpread && option.Side != "away" {
			t.Errorf("ambiguous pick should default to favored side, got %q", option.Side)
		}
	}
}

func TestBuildViewModel_TotalSideInference(t *testing.T) {
	vm := BuildViewModel(models.RawPayload{
		"matchup":       "Celtics @ Lakers",
		"ai_total_pick": map[string]interface{}{"pick": "Under 218.5"},
	}, "nba")

	for _, option := range vm.BetOptions {
		if option.Market == sportadapt.MarketTotal {
			if option.Side != "under" {
				t.Errorf("side = %q, want under", option.Side)
			}
			if option.Line == nil || *option.Line != 218.5 {
				t.Errorf("line = %v, want 218.5", option.Line)
			}
		}
	}
}

func TestBuildViewModel_BetOptionBounds(t *testing.T) {
	full := models.RawPayload{
		"matchup":        "Celtics @ Lakers",
		"ai_spread_pick": map[string]interface{}{"pick": "Lakers -4.5"},
		"ai_total_pick":  map[string]interface{}{"pick": "Over 218.5"},
	}

	for _, sport := range []string{"nba", "nhl", "mlb", "epl", "unknown"} {
		vm := BuildViewModel(full, sport)
		tabs := sportadapt.Resolve(sport).MarketTabs
		if len(vm.BetOptions) > len(tabs) {
			t.Errorf("%s: %d options exceed %d tabs", sport, len(vm.BetOptions), len(tabs))
		}

		hasMoneyline := false
		for _, option := range vm.BetOptions {
			if option.Market == sportadapt.MarketMoneyline {
				hasMoneyline = true
			}
		}
		if !hasMoneyline {
			t.Errorf("%s: moneyline option missing despite a favored side", sport)
		}
	}
}

func TestBuildViewModel_SpreadOmittedWithoutPick(t *testing.T) {
	vm := BuildViewModel(models.RawPayload{"matchup": "Celtics @ Lakers"}, "nba")
	for _, option := range vm.BetOptions {
		if option.Market == sportadapt.MarketSpread || option.Market == sportadapt.MarketTotal {
			t.Errorf("%s option present without an upstream pick", option.Market)
		}
	}
}

func TestBuildViewModel_PuckLineLabel(t *testing.T) {
	vm := BuildViewModel(models.RawPayload{
		"matchup":        "Bruins @ Rangers",
		"ai_spread_pick": map[string]interface{}{"pick": "Bruins +1.5"},
	}, "NHL")

	found := false
	for _, option := range vm.BetOptions {
		if option.Market == sportadapt.MarketSpread {
			found = true
			if option.Label != "Puck Line" {
				t.Errorf("label = %q, want Puck Line", option.Label)
			}
			if option.Side != "away" {
				t.Errorf("side = %q, want away (Bruins are the road team)", option.Side)
			}
		}
	}
	if !found {
		t.Fatal("puck line option missing")
	}
}

func TestBuildViewModel_RecommendationPrecedence(t *testing.T) {
	base := func() models.RawPayload {
		return models.RawPayload{
			"matchup": "Celtics @ Lakers",
			"model_win_probability": map[string]interface{}{
				"home_win_prob": 0.6, "away_win_prob": 0.4,
			},
		}
	}

	withBoth := base()
	withBoth["best_bets"] = []interface{}{
		map[string]interface{}{"bet_type": "moneyline", "pick": "Lakers ML"},
	}
	withBoth["ai_spread_pick"] = map[string]interface{}{"pick": "Lakers -4.5"}
	if got := BuildViewModel(withBoth, "nba").QuickTake.Recommendation; got != "Lakers ML" {
		t.Errorf("moneyline best bet should win: %q", got)
	}

	withSpread := base()
	withSpread["ai_spread_pick"] = map[string]interface{}{"pick": "Lakers -4.5"}
	if got := BuildViewModel(withSpread, "nba").QuickTake.Recommendation; got != "Lakers -4.5" {
		t.Errorf("spread pick should be next: %q", got)
	}

	if got := BuildViewModel(base(), "nba").QuickTake.Recommendation; got != "Lakers ML" {
		t.Errorf("favored-team ML fallback expected: %q", got)
	}

	if got := BuildViewModel(models.RawPayload{}, "nba").QuickTake.Recommendation; got != noRecommendation {
		t.Errorf("final fallback expected: %q", got)
	}
}

func TestBuildViewModel_QuickTakeOverrideWins(t *testing.T) {
	vm := BuildViewModel(models.RawPayload{
		"matchup": "Celtics @ Lakers",
		"model_win_probability": map[string]interface{}{
			"home_win_prob": 0.52, "away_win_prob": 0.48,
		},
		"ui_quick_take": map[string]interface{}{
			"confidence_level": "High",
			"risk_level":       "Low",
		},
	}, "nba")

	if vm.QuickTake.ConfidenceLevel != "High" {
		t.Errorf("confidence level = %q, want High (override wins)", vm.QuickTake.ConfidenceLevel)
	}
	if vm.QuickTake.RiskLevel != "Low" {
		t.Errorf("risk level = %q, want Low (override wins)", vm.QuickTake.RiskLevel)
	}
}

func TestBuildViewModel_UnrecognizedOverrideIgnored(t *testing.T) {
	vm := BuildViewModel(models.RawPayload{
		"matchup": "Celtics @ Lakers",
		"ui_quick_take": map[string]interface{}{
			"confidence_level": "Astronomical",
		},
	}, "nba")

	if vm.QuickTake.ConfidenceLevel == "Astronomical" {
		t.Error("unrecognized categorical override must not pass through")
	}
}

func TestBuildViewModel_RiskBulletFallback(t *testing.T) {
	vm := BuildViewModel(models.RawPayload{
		"matchup":         "Celtics @ Lakers",
		"opening_summary": "Lakers have the better offense. Celtics allow easy looks inside.",
		"model_win_probability": map[string]interface{}{
			"home_win_prob": 0.75, "away_win_prob": 0.25,
		},
	}, "nba")

	if vm.QuickTake.RiskLevel != "Low" {
		t.Fatalf("risk level = %q, want Low", vm.QuickTake.RiskLevel)
	}
	if vm.KeyDrivers.Risk != genericRiskBullets["Low"] {
		t.Errorf("risk bullet = %q, want the generic low-risk sentence", vm.KeyDrivers.Risk)
	}
}

func TestBuildViewModel_RiskBulletFromSummary(t *testing.T) {
	vm := BuildViewModel(models.RawPayload{
		"matchup":         "Celtics @ Lakers",
		"opening_summary": "Lakers shoot well at home. The injury report is a real concern for Boston.",
	}, "nba")

	if !strings.Contains(strings.ToLower(vm.KeyDrivers.Risk), "injury") {
		t.Errorf("risk bullet should come from the flagged sentence, got %q", vm.KeyDrivers.Risk)
	}
}

func TestBuildViewModel_KeyDriverBullets(t *testing.T) {
	vm := BuildViewModel(models.RawPayload{
		"matchup":   "Celtics @ Lakers",
		"key_stats": []interface{}{"- Wins 62% of home games", "• Elite defense", "Third stat dropped"},
	}, "nba")

	if len(vm.KeyDrivers.Positives) != 2 {
		t.Fatalf("positives = %d, want 2", len(vm.KeyDrivers.Positives))
	}
	if vm.KeyDrivers.Positives[0] != "Wins of home games" {
		t.Errorf("first positive = %q", vm.KeyDrivers.Positives[0])
	}
	if vm.KeyDrivers.Positives[1] != "Elite defense" {
		t.Errorf("second positive = %q", vm.KeyDrivers.Positives[1])
	}
}

func TestBuildViewModel_TrendsCapped(t *testing.T) {
	trends := []interface{}{"one", "two", "three", "four", "five", "six"}
	vm := BuildViewModel(models.RawPayload{"matchup": "A vs B", "trends": trends}, "nba")

	if len(vm.Trends) != trendsCap {
		t.Errorf("trends = %d, want %d", len(vm.Trends), trendsCap)
	}
}

func TestBuildViewModel_LimitedDataNote(t *testing.T) {
	vm := BuildViewModel(models.RawPayload{
		"matchup":         "Celtics @ Lakers",
		"opening_summary": "Projections fell back to limited data for this matchup.",
	}, "nba")
	if vm.LimitedDataNote == "" {
		t.Error("hedging keywords should attach the limited-data note")
	}

	clean := BuildViewModel(models.RawPayload{
		"matchup":         "Celtics @ Lakers",
		"opening_summary": "Both teams at full strength.",
	}, "nba")
	if clean.LimitedDataNote != "" {
		t.Errorf("unexpected note: %q", clean.LimitedDataNote)
	}

	override := BuildViewModel(models.RawPayload{
		"matchup":              "Celtics @ Lakers",
		"ui_limited_data_note": "Light slate, light data.",
	}, "nba")
	if override.LimitedDataNote != "Light slate, light data." {
		t.Errorf("override note = %q", override.LimitedDataNote)
	}
}

func TestBuildViewModel_BetOptionOverrideOverlay(t *testing.T) {
	vm := BuildViewModel(models.RawPayload{
		"matchup":        "Celtics @ Lakers",
		"ai_spread_pick": map[string]interface{}{"pick": "Lakers -4.5", "reasoning": "Base reasoning."},
		"ui_bet_options": []interface{}{
			map[string]interface{}{"id": "Spread", "lean": "Lakers -4.5 (authored)", "confidence_level": "High"},
		},
	}, "nba")

	for _, option := range vm.BetOptions {
		if option.Market != sportadapt.MarketSpread {
			continue
		}
		if option.Lean != "Lakers -4.5 (authored)" {
			t.Errorf("lean = %q, override should apply", option.Lean)
		}
		if option.ConfidenceLevel != "High" {
			t.Errorf("confidence level = %q, override should apply", option.ConfidenceLevel)
		}
		if option.Line == nil || *option.Line != -4.5 {
			t.Errorf("line = %v, unmatched base fields must stay", option.Line)
		}
	}
}

func TestBuildViewModel_MatchupCardsPreferOverrides(t *testing.T) {
	vm := BuildViewModel(models.RawPayload{
		"matchup":       "Celtics @ Lakers",
		"matchup_edges": []interface{}{map[string]interface{}{"title": "Derived", "description": "edge"}},
		"ui_matchup_cards": []interface{}{
			map[string]interface{}{"title": "Authored", "body": "card"},
		},
	}, "nba")

	if len(vm.MatchupCards) != 1 || vm.MatchupCards[0].Title != "Authored" {
		t.Errorf("cards = %+v, want the authored card only", vm.MatchupCards)
	}
}

func TestBuildViewModel_HeaderSeparatorGlyph(t *testing.T) {
	at := BuildViewModel(models.RawPayload{"matchup": "Celtics @ Lakers"}, "nba")
	if at.Header.Separator != "@" || at.Header.Title != "Celtics @ Lakers" {
		t.Errorf("header = %+v", at.Header)
	}

	vs := BuildViewModel(models.RawPayload{"matchup": "Lakers vs Celtics"}, "nba")
	if vs.Header.Separator != "vs" || vs.Header.Title != "Lakers vs Celtics" {
		t.Errorf("header = %+v", vs.Header)
	}
}

func TestBuildViewModel_SportFromPayloadWhenArgumentEmpty(t *testing.T) {
	vm := BuildViewModel(models.RawPayload{"sport": "nhl", "matchup": "Bruins @ Rangers"}, "")
	if vm.Header.SportIcon != "🏒" {
		t.Errorf("icon = %q, want hockey", vm.Header.SportIcon)
	}
}

func TestFavored(t *testing.T) {
	side, team, prob := favored(models.WinProbability{Home: 0.52, Away: 0.48}, "Lakers", "Celtics")
	if !reflect.DeepEqual([]interface{}{side, team, prob}, []interface{}{"home", "Lakers", 0.52}) {
		t.Errorf("favored = (%v, %v, %v)", side, team, prob)
	}

	side, team, _ = favored(models.WinProbability{Home: 0.4, Away: 0.6}, "Lakers", "Celtics")
	if side != "away" || team != "Celtics" {
		t.Errorf("favored = (%v, %v)", side, team)
	}
}
