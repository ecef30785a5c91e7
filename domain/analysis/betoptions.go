package analysis

import (
	"strings"

	"pregame/domain/copyedit"
	"pregame/domain/risk"
	"pregame/domain/sportadapt"
	"pregame/models"
)

// deriveBetOptions produces at most one bet option per market tab of the
// sport's adaptation record: moneyline whenever a favored side exists,
// spread and total only when the corresponding upstream pick is non-empty.
// Pre-authored overrides then overlay matched options field by field.
func deriveBetOptions(
	content models.AnalysisContent,
	adaptation sportadapt.Adaptation,
	sport string,
	favoredSide, favoredTeam, home, away string,
	confidenceLevel risk.Level,
) []models.BetOption {
	options := []models.BetOption{}
	sportKey := strings.ToLower(strings.TrimSpace(sport))

	for _, tab := range adaptation.MarketTabs {
		var option *models.BetOption
		switch tab.ID {
		case sportadapt.MarketMoneyline:
			option = moneylineOption(content, tab, favoredSide, favoredTeam)
		case sportadapt.MarketSpread:
			option = pickOption(content.SpreadPick, tab, favoredSide, home, away)
		case sportadapt.MarketTotal:
			option = pickOption(content.TotalPick, tab, favoredSide, home, away)
		}
		if option == nil {
			continue
		}

		option.ConfidenceLevel = confidenceLevel.String()
		option.Prefill = models.Prefill{
			Sport:  sportKey,
			Market: tab.ID,
			Side:   option.Side,
			Line:   option.Line,
		}
		if option.Side == "home" {
			option.Prefill.Team = home
		} else if option.Side == "away" {
			option.Prefill.Team = away
		}

		options = append(options, *option)
	}

	return applyBetOptionOverrides(options, content.Overrides.BetOptions)
}

// moneylineOption is always present when a favored team was determined
func moneylineOption(content models.AnalysisContent, tab sportadapt.MarketTab, favoredSide, favoredTeam string) *models.BetOption {
	if favoredTeam == "" {
		return nil
	}

	explanation := "The AI gives " + favoredTeam + " the better chance to win this one."
	for _, bet := range content.BestBets {
		if isMoneylineType(bet.BetType) && bet.Reasoning != "" {
			explanation = copyedit.Truncate(copyedit.SanitizeMainCopy(bet.Reasoning), explanationMaxChars)
			break
		}
	}

	return &models.BetOption{
		Market:      tab.ID,
		Label:       tab.Label,
		Lean:        favoredTeam + " ML",
		Side:        favoredSide,
		Explanation: explanation,
	}
}

// pickOption derives a spread or total option from an upstream pick block.
// An empty pick suppresses the tab entirely.
func pickOption(block models.PickBlock, tab sportadapt.MarketTab, favoredSide, home, away string) *models.BetOption {
	if block.Pick == "" {
		return nil
	}

	return &models.BetOption{
		Market:      tab.ID,
		Label:       tab.Label,
		Lean:        copyedit.SanitizeMainCopy(block.Pick),
		Side:        inferSide(block.Pick, favoredSide, home, away),
		Line:        firstNumber(block.Pick),
		Explanation: copyedit.Truncate(copyedit.SanitizeMainCopy(block.Reasoning), explanationMaxChars),
	}
}

// inferSide normalizes a free-text pick to home/away/over/under by
// case-insensitive substring matching against team names and unit words,
// defaulting to the favored side when nothing matches
func inferSide(pick, favoredSide, home, away string) string {
	lower := strings.ToLower(pick)

	if teamMatches(lower, home) {
		return "home"
	}
	if teamMatches(lower, away) {
		return "away"
	}
	if strings.Contains(lower, "over") {
		return "over"
	}
	if strings.Contains(lower, "under") {
		return "under"
	}
	return favoredSide
}

// teamMatches looks for the full team name or any distinctive word of it
// ("Lakers" inside "Los Angeles Lakers") in the pick text
func teamMatches(lowerPick, team string) bool {
	team = strings.ToLower(strings.TrimSpace(team))
	if team == "" || team == "home" || team == "away" {
		return false
	}
	if strings.Contains(lowerPick, team) {
		return true
	}
	for _, word := range strings.Fields(team) {
		if len(word) >= 3 && strings.Contains(lowerPick, word) {
			return true
		}
	}
	return false
}

// applyBetOptionOverrides overlays pre-authored option fields onto derived
// options, matched by lowercased identifier. Only fields present in the
// override change; unmatched overrides are ignored.
func applyBetOptionOverrides(options []models.BetOption, overrides []models.BetOptionOverride) []models.BetOption {
	if len(overrides) == 0 {
		return options
	}

	for i := range options {
		for _, override := range overrides {
			if strings.ToLower(strings.TrimSpace(override.ID)) != options[i].Market {
				continue
			}
			if override.Label != "" {
				options[i].Label = override.Label
			}
			if override.Lean != "" {
				options[i].Lean = override.Lean
			}
			if risk.IsValid(override.ConfidenceLevel) {
				options[i].ConfidenceLevel = override.ConfidenceLevel
			}
			if override.Explanation != "" {
				options[i].Explanation = copyedit.Truncate(override.Explanation, explanationMaxChars)
			}
		}
	}
	return options
}
