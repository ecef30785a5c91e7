package analysis

import (
	"math"
	"regexp"
	"strings"

	"pregame/domain/copyedit"
	"pregame/domain/risk"
	"pregame/domain/sportadapt"
	"pregame/models"
)

// View-model policy constants
const (
	rationaleMaxChars   = 200
	explanationMaxChars = 500
	positiveDriversCap  = 2
	matchupCardsCap     = 3
	trendsCap           = 4

	noRecommendation = "No clear recommendation for this game yet."
	limitedDataNote  = "Some data for this matchup was limited, so the AI leaned on broader averages."
)

// riskKeywords flag a sentence of the opening summary as the risk bullet
var riskKeywords = []string{
	"injur", "risk", "concern", "question", "doubt", "without",
	"missing", "turnover", "struggl", "uncertain", "weather",
}

// limitedDataKeywords are the hedging phrases that trigger the
// limited-data note
var limitedDataKeywords = []string{"limited", "fallback", "unavailable"}

// genericRiskBullets are the risk-level-appropriate fallbacks when no
// summary sentence carries a risk keyword. The bullet is never empty.
var genericRiskBullets = map[risk.Level]string{
	risk.Low:    "Few ways this goes sideways, but any single game can swing on variance.",
	risk.Medium: "There are a few ways this can go sideways, so keep stakes sensible.",
	risk.High:   "Plenty of ways this can go sideways, so treat this as a volatile spot.",
}

var vsSeparator = regexp.MustCompile(`(?i)\s+vs\.?\s+`)

// BuildViewModel runs the full pipeline: normalize the raw payload, then
// derive the view model. Pure and total; identical input yields identical
// output, and even an empty payload produces a complete renderable result.
func BuildViewModel(raw models.RawPayload, sport string) *models.ViewModel {
	response := NormalizeResponse(raw)
	if sport == "" {
		sport = response.Sport
	}
	return BuildFromContent(response.Content, sport)
}

// BuildFromContent derives the view model from already-normalized content
func BuildFromContent(content models.AnalysisContent, sport string) *models.ViewModel {
	adaptation := sportadapt.Resolve(sport)
	home, away, separator := parseMatchup(content.Matchup)

	favoredSide, favoredTeam, favoredProb := favored(content.WinProbability, home, away)
	confidencePercent := int(math.Round(favoredProb * 100))
	limited := hasLimitedData(content)

	confidenceLevel := risk.ConfidenceLevelFromPercent(float64(confidencePercent))
	riskLevel := risk.RiskLevelFromSignals(risk.Signals{
		AIConfidencePercent: float64(confidencePercent),
		HomeWinProb:         content.WinProbability.Home,
		AwayWinProb:         content.WinProbability.Away,
		LimitedData:         limited,
	})

	// Pre-authored categorical overrides win over derived tiers whenever
	// the override value is recognized.
	if qt := content.Overrides.QuickTake; qt != nil {
		if risk.IsValid(qt.ConfidenceLevel) {
			confidenceLevel = risk.Level(qt.ConfidenceLevel)
		}
		if risk.IsValid(qt.RiskLevel) {
			riskLevel = risk.Level(qt.RiskLevel)
		}
		if qt.FavoredTeam != "" {
			favoredTeam = qt.FavoredTeam
		}
	}

	vm := &models.ViewModel{
		Header: models.Header{
			Title:     headerTitle(home, away, separator),
			Subtitle:  "AI game analysis",
			HomeTeam:  home,
			AwayTeam:  away,
			Separator: separator,
			SportIcon: adaptation.Icon,
		},
		QuickTake: models.QuickTake{
			FavoredTeam:       favoredTeam,
			FavoredSide:       favoredSide,
			ConfidencePercent: confidencePercent,
			ConfidenceLevel:   confidenceLevel.String(),
			RiskLevel:         riskLevel.String(),
			Recommendation:    deriveRecommendation(content, favoredTeam),
			Rationale:         deriveRationale(content),
		},
		KeyDrivers:   deriveKeyDrivers(content, riskLevel),
		Probability:  content.WinProbability,
		BetOptions:   deriveBetOptions(content, adaptation, sport, favoredSide, favoredTeam, home, away, confidenceLevel),
		MatchupCards: deriveMatchupCards(content, adaptation),
		Trends:       deriveTrends(content),
		Evidence:     BuildEvidenceModules(content.Evidence, sport),
	}

	if qt := content.Overrides.QuickTake; qt != nil {
		if qt.Recommendation != "" {
			vm.QuickTake.Recommendation = qt.Recommendation
		}
		if qt.Rationale != "" {
			vm.QuickTake.Rationale = copyedit.ToSingleSentence(qt.Rationale, rationaleMaxChars)
		}
	}

	if note := content.Overrides.LimitedDataNote; note != "" {
		vm.LimitedDataNote = note
	} else if limited {
		vm.LimitedDataNote = limitedDataNote
	}

	return vm
}

// parseMatchup splits the matchup string into team names. The US road-game
// convention puts the away team first around "@"; "vs" lists home first.
func parseMatchup(matchup string) (home, away, separator string) {
	matchup = strings.TrimSpace(matchup)

	if strings.Contains(matchup, "@") {
		parts := strings.SplitN(matchup, "@", 2)
		away = strings.TrimSpace(parts[0])
		home = strings.TrimSpace(parts[1])
		separator = "@"
	} else if loc := vsSeparator.FindStringIndex(matchup); loc != nil {
		home = strings.TrimSpace(matchup[:loc[0]])
		away = strings.TrimSpace(matchup[loc[1]:])
		separator = "vs"
	}

	if home == "" {
		home = "Home"
	}
	if away == "" {
		away = "Away"
	}
	if separator == "" {
		separator = "vs"
	}
	return home, away, separator
}

func headerTitle(home, away, separator string) string {
	if separator == "@" {
		return away + " @ " + home
	}
	return home + " vs " + away
}

// favored picks the side with the higher normalized win probability. The
// fallback prior guarantees a favored side always exists.
func favored(prob models.WinProbability, home, away string) (side, team string, winProb float64) {
	if prob.Away > prob.Home {
		return "away", away, clamp01(prob.Away)
	}
	return "home", home, clamp01(prob.Home)
}

// deriveRecommendation applies the strict precedence order: a moneyline
// best bet, else the spread pick, else a generated favored-team ML, else
// the no-recommendation string. Exactly one recommendation, never a list.
func deriveRecommendation(content models.AnalysisContent, favoredTeam string) string {
	for _, bet := range content.BestBets {
		if isMoneylineType(bet.BetType) && bet.Pick != "" {
			return copyedit.SanitizeMainCopy(bet.Pick)
		}
	}
	if content.SpreadPick.Pick != "" {
		return copyedit.SanitizeMainCopy(content.SpreadPick.Pick)
	}
	if favoredTeam != "" && favoredTeam != "Home" && favoredTeam != "Away" {
		return favoredTeam + " ML"
	}
	return noRecommendation
}

func isMoneylineType(betType string) bool {
	t := strings.ToLower(strings.TrimSpace(betType))
	return t == "moneyline" || t == "ml" || t == "money line"
}

func deriveRationale(content models.AnalysisContent) string {
	sentence := copyedit.ToSingleSentence(content.OpeningSummary, rationaleMaxChars)
	return copyedit.SanitizeMainCopy(sentence)
}

// deriveKeyDrivers builds at most 2 positive bullets from the key-stats
// list and exactly 1 risk bullet from the opening summary
func deriveKeyDrivers(content models.AnalysisContent, riskLevel risk.Level) models.KeyDrivers {
	drivers := models.KeyDrivers{Positives: []string{}}

	source := content.KeyStats
	if len(content.Overrides.KeyDrivers) > 0 {
		source = content.Overrides.KeyDrivers
	}
	for _, stat := range source {
		if len(drivers.Positives) >= positiveDriversCap {
			break
		}
		bullet := copyedit.TrimLeadingNonWord(copyedit.StripPercentages(stat))
		if bullet != "" {
			drivers.Positives = append(drivers.Positives, copyedit.SanitizeMainCopy(bullet))
		}
	}

	drivers.Risk = deriveRiskBullet(content.OpeningSummary, riskLevel)
	return drivers
}

// deriveRiskBullet scans summary sentences for risk-indicating keywords and
// falls back to the generic sentence for the risk level. Never empty.
func deriveRiskBullet(summary string, riskLevel risk.Level) string {
	for _, sentence := range splitSentences(summary) {
		lower := strings.ToLower(sentence)
		for _, keyword := range riskKeywords {
			if strings.Contains(lower, keyword) {
				return copyedit.SanitizeMainCopy(copyedit.ToSingleSentence(sentence, rationaleMaxChars))
			}
		}
	}
	return genericRiskBullets[riskLevel]
}

func splitSentences(text string) []string {
	parts := sentenceBoundary.Split(text, -1)
	sentences := []string{}
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			sentences = append(sentences, trimmed)
		}
	}
	return sentences
}

var sentenceBoundary = regexp.MustCompile(`(?:[.!?])\s+`)

// deriveMatchupCards prefers pre-authored cards, else derives from the
// structured edge list, capped
func deriveMatchupCards(content models.AnalysisContent, adaptation sportadapt.Adaptation) []models.MatchupCard {
	cards := []models.MatchupCard{}

	if len(content.Overrides.MatchupCards) > 0 {
		for _, override := range content.Overrides.MatchupCards {
			if len(cards) >= matchupCardsCap {
				break
			}
			icon := override.Icon
			if icon == "" {
				icon = adaptation.Icon
			}
			cards = append(cards, models.MatchupCard{
				Title: override.Title,
				Body:  copyedit.Truncate(override.Body, explanationMaxChars),
				Icon:  icon,
			})
		}
		return cards
	}

	for _, edge := range content.MatchupEdges {
		if len(cards) >= matchupCardsCap {
			break
		}
		title := edge.Title
		if title == "" {
			title = "Matchup edge"
		}
		cards = append(cards, models.MatchupCard{
			Title: title,
			Body:  copyedit.Truncate(copyedit.SanitizeMainCopy(edge.Description), explanationMaxChars),
			Icon:  adaptation.Icon,
		})
	}
	return cards
}

// deriveTrends prefers the pre-authored trend list, else the normalized
// trend blocks, capped at trendsCap entries
func deriveTrends(content models.AnalysisContent) []string {
	source := content.Trends
	if len(content.Overrides.Trends) > 0 {
		source = content.Overrides.Trends
	}

	trends := []string{}
	for _, trend := range source {
		if len(trends) >= trendsCap {
			break
		}
		if cleaned := copyedit.SanitizeMainCopy(trend); cleaned != "" {
			trends = append(trends, copyedit.Truncate(cleaned, rationaleMaxChars))
		}
	}
	return trends
}

// hasLimitedData reports whether the analysis text hedges with any of the
// limited-data keywords
func hasLimitedData(content models.AnalysisContent) bool {
	if content.Overrides.LimitedDataNote != "" {
		return true
	}
	haystack := strings.ToLower(content.OpeningSummary + " " + content.CalculationMethod + " " + content.Explanation)
	for _, keyword := range limitedDataKeywords {
		if strings.Contains(haystack, keyword) {
			return true
		}
	}
	return false
}
