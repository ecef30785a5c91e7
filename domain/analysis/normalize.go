// Package analysis is the normalization and view-model derivation pipeline:
// it coerces an arbitrary, partial, AI-generated game-analysis payload into
// a canonical schema and derives the presentation-ready view model from it.
// Every entry point is a pure, total function; malformed upstream data
// degrades to a documented fallback at the point of normalization and the
// fallback then flows deterministically through every derivation.
package analysis

import (
	"math"

	"pregame/models"
)

// Fallback constants. The probability pair is a minimal home-advantage
// prior; all of these are policy values copied from observed behavior and
// must be preserved exactly.
const (
	FallbackHomeWinProb = 0.52
	FallbackAwayWinProb = 0.48

	fallbackSummary = "Full analysis is still being prepared for this matchup."
	fallbackMatchup = "Home vs Away"

	// probSumTolerance bounds how far a probability pair's sum may drift
	// from 1 before the pair is considered invalid rather than merely
	// noisy. Noisy pairs are rescaled; invalid pairs are discarded.
	probSumTolerance = 0.1
)

// NormalizeResponse coerces a raw upstream response into the canonical
// typed form. It never fails; any shape of input yields a complete result.
func NormalizeResponse(raw models.RawPayload) models.AnalysisResponse {
	content := raw
	if nested := pickMap(raw, "analysis", "content", "analysis_content", "analysisContent"); nested != nil {
		content = nested
	}
	return models.AnalysisResponse{
		Sport:   pickString(raw, "", "sport", "sport_key", "sportKey"),
		Content: NormalizeContent(content),
	}
}

// NormalizeContent coerces the analysis content block. Every field accepts
// either of two key spellings and falls back to a named default on any type
// mismatch, absence, or non-finite number.
func NormalizeContent(raw models.RawPayload) models.AnalysisContent {
	content := models.AnalysisContent{
		Matchup:           pickString(raw, fallbackMatchup, "matchup", "game", "game_title", "gameTitle"),
		OpeningSummary:    pickString(raw, fallbackSummary, "opening_summary", "openingSummary", "summary"),
		MatchupEdges:      normalizeEdges(raw),
		WinProbability:    normalizeWinProbability(pickMap(raw, "model_win_probability", "modelWinProbability", "win_probability", "winProbability")),
		SpreadPick:        normalizePick(pickMap(raw, "ai_spread_pick", "aiSpreadPick", "spread_pick", "spreadPick")),
		TotalPick:         normalizePick(pickMap(raw, "ai_total_pick", "aiTotalPick", "total_pick", "totalPick")),
		BestBets:          normalizeBestBets(raw),
		KeyStats:          normalizeStringList(raw, "key_stats", "keyStats"),
		Trends:            normalizeStringList(raw, "trends", "trend_blocks", "trendBlocks"),
		CalculationMethod: pickString(raw, "", "calculation_method", "calculationMethod", "methodology"),
		Explanation:       pickString(raw, "", "explanation", "analysis_explanation", "analysisExplanation"),
		Overrides:         normalizeOverrides(raw),
		Evidence:          pickMap(raw, "evidence", "ugie", "analytics", "evidence_block", "evidenceBlock"),
	}
	return content
}

// normalizeWinProbability enforces the one numerically interesting
// invariant in the pipeline: the output pair always sums to exactly 1 with
// both values in [0,1]. A missing or non-finite value, a degenerate value
// (<=0 or >=1), or a pair whose sum drifts past the tolerance discards the
// whole pair for the fallback prior; a valid pair is rescaled by its sum.
func normalizeWinProbability(raw models.RawPayload) models.WinProbability {
	fallback := models.WinProbability{Home: FallbackHomeWinProb, Away: FallbackAwayWinProb}
	if raw == nil {
		return fallback
	}

	home := pickFloat(raw, math.NaN(), "home_win_prob", "homeWinProb", "home")
	away := pickFloat(raw, math.NaN(), "away_win_prob", "awayWinProb", "away")
	if math.IsNaN(home) || math.IsNaN(away) {
		return fallback
	}

	home = clamp01(home)
	away = clamp01(away)
	if home <= 0 || home >= 1 || away <= 0 || away >= 1 {
		return fallback
	}

	sum := home + away
	if math.Abs(sum-1) > probSumTolerance {
		return fallback
	}
	return models.WinProbability{Home: home / sum, Away: away / sum}
}

func normalizePick(raw models.RawPayload) models.PickBlock {
	return models.PickBlock{
		Pick:      pickString(raw, "", "pick", "selection"),
		Reasoning: pickString(raw, "", "reasoning", "rationale", "why"),
	}
}

func normalizeEdges(raw models.RawPayload) []models.MatchupEdge {
	value, ok := pick(raw, "matchup_edges", "matchupEdges", "edges")
	if !ok {
		return []models.MatchupEdge{}
	}

	edges := []models.MatchupEdge{}
	for _, entry := range asSlice(value) {
		switch v := entry.(type) {
		case string:
			if s := asString(v, ""); s != "" {
				edges = append(edges, models.MatchupEdge{Description: s})
			}
		case map[string]interface{}:
			edge := models.MatchupEdge{
				Title:       pickString(models.RawPayload(v), "", "title", "name"),
				Description: pickString(models.RawPayload(v), "", "description", "text", "summary"),
			}
			if edge.Title != "" || edge.Description != "" {
				edges = append(edges, edge)
			}
		}
	}
	return edges
}

func normalizeBestBets(raw models.RawPayload) []models.BestBet {
	value, ok := pick(raw, "best_bets", "bestBets")
	if !ok {
		return []models.BestBet{}
	}

	bets := []models.BestBet{}
	for _, entry := range asSlice(value) {
		obj := asMap(entry)
		if obj == nil {
			continue
		}
		bet := models.BestBet{
			BetType:    pickString(obj, "", "bet_type", "betType", "market", "type"),
			Pick:       pickString(obj, "", "pick", "selection"),
			Reasoning:  pickString(obj, "", "reasoning", "rationale"),
			Confidence: clamp01(pickFloat(obj, 0, "confidence", "confidence_score", "confidenceScore")),
		}
		if bet.Pick != "" {
			bets = append(bets, bet)
		}
	}
	return bets
}

func normalizeStringList(raw models.RawPayload, keys ...string) []string {
	value, ok := pick(raw, keys...)
	if !ok {
		return []string{}
	}
	list := asStringSlice(value)
	if list == nil {
		return []string{}
	}
	return list
}

func normalizeOverrides(raw models.RawPayload) models.UIOverrides {
	overrides := models.UIOverrides{
		KeyDrivers:      normalizeStringList(raw, "ui_key_drivers", "uiKeyDrivers"),
		Trends:          normalizeStringList(raw, "ui_trends", "uiTrends"),
		LimitedDataNote: pickString(raw, "", "ui_limited_data_note", "uiLimitedDataNote", "limited_data_note", "limitedDataNote"),
	}

	if quickTake := pickMap(raw, "ui_quick_take", "uiQuickTake"); quickTake != nil {
		overrides.QuickTake = &models.QuickTakeOverride{
			FavoredTeam:     pickString(quickTake, "", "favored_team", "favoredTeam"),
			ConfidenceLevel: pickString(quickTake, "", "confidence_level", "confidenceLevel"),
			RiskLevel:       pickString(quickTake, "", "risk_level", "riskLevel"),
			Recommendation:  pickString(quickTake, "", "recommendation"),
			Rationale:       pickString(quickTake, "", "rationale", "reasoning"),
		}
	}

	if value, ok := pick(raw, "ui_bet_options", "uiBetOptions"); ok {
		for _, entry := range asSlice(value) {
			obj := asMap(entry)
			if obj == nil {
				continue
			}
			override := models.BetOptionOverride{
				ID:              pickString(obj, "", "id", "market", "market_id", "marketId"),
				Label:           pickString(obj, "", "label"),
				Lean:            pickString(obj, "", "lean", "pick"),
				ConfidenceLevel: pickString(obj, "", "confidence_level", "confidenceLevel"),
				Explanation:     pickString(obj, "", "explanation", "reasoning"),
			}
			if override.ID != "" {
				overrides.BetOptions = append(overrides.BetOptions, override)
			}
		}
	}

	if value, ok := pick(raw, "ui_matchup_cards", "uiMatchupCards"); ok {
		for _, entry := range asSlice(value) {
			obj := asMap(entry)
			if obj == nil {
				continue
			}
			card := models.MatchupCardOverride{
				Title: pickString(obj, "", "title"),
				Body:  pickString(obj, "", "body", "text", "description"),
				Icon:  pickString(obj, "", "icon"),
			}
			if card.Title != "" || card.Body != "" {
				overrides.MatchupCards = append(overrides.MatchupCards, card)
			}
		}
	}

	return overrides
}
