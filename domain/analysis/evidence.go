package analysis

import (
	"fmt"
	"math"
	"strings"

	"github.com/montanaflynn/stats"

	"pregame/domain/copyedit"
	"pregame/domain/risk"
	"pregame/domain/sportadapt"
	"pregame/models"
)

// Evidence module policy constants. Exact-match contracts for golden-output
// compatibility; product-tunable, not derived.
const (
	// placeholderSentence marks a pillar the analytics run could not
	// assess. A pillar whose summary starts with it and carries zero
	// signals is suppressed entirely.
	placeholderSentence = "unable to assess"

	pillarWhyMaxChars   = 200
	topFactorMaxChars   = 80
	topFactorsCap       = 6
	missingFieldsShown  = 5
	dataQualityBestTier = "complete"

	evidenceDisclaimer = "Parts of the data feed were incomplete for this game, so treat these signals as directional."
)

// pillarKey holds the accepted key spellings for each pillar
var pillarKeys = map[string][]string{
	"availability":     {"availability", "injury_availability", "injuryAvailability"},
	"efficiency":       {"efficiency"},
	"matchup_fit":      {"matchup_fit", "matchupFit"},
	"script_stability": {"script_stability", "scriptStability"},
	"market_alignment": {"market_alignment", "marketAlignment"},
}

// topFactorPillars is the pillar subset whose edge strings feed the
// deduplicated top-factors list, in collection order
var topFactorPillars = []string{"availability", "efficiency", "matchup_fit", "market_alignment"}

// indoorOnlyRules are weather rules that carry no betting signal on their
// own; a weather module firing nothing else is omitted
var indoorOnlyRules = map[string]bool{
	"dome":                    true,
	"indoor":                  true,
	"retractable_roof_closed": true,
}

// BuildEvidenceModules derives the bounded evidence-module block from the
// richer analytics sub-payload. A nil or empty sub-payload yields nil; the
// view model simply omits the section. Never errors.
func BuildEvidenceModules(evidence models.RawPayload, sport string) *models.EvidenceModules {
	if len(evidence) == 0 {
		return nil
	}

	modules := &models.EvidenceModules{
		TopFactors: []string{},
	}

	pillars := map[string]*models.EvidencePillar{}
	for name, keys := range pillarKeys {
		pillars[name] = buildPillar(pickMap(evidence, keys...))
	}
	modules.Availability = pillars["availability"]
	modules.Efficiency = pillars["efficiency"]
	modules.MatchupFit = pillars["matchup_fit"]
	modules.ScriptStability = pillars["script_stability"]
	modules.MarketAlignment = pillars["market_alignment"]

	modules.TopFactors = collectTopFactors(evidence)
	modules.Weather = buildWeatherModule(pickMap(evidence, "weather"), sport)

	score, limited := evidenceConfidence(evidence)
	modules.ConfidencePercent = int(math.Round(score * 100))
	modules.RiskLevel = risk.RiskLevelFromSignals(risk.Signals{
		AIConfidencePercent: score * 100,
		HomeWinProb:         0.5 + score/2,
		AwayWinProb:         0.5 - score/2,
		LimitedData:         limited,
	}).String()

	status := dataQualityStatus(evidence)
	if status != dataQualityBestTier {
		modules.Disclaimer = evidenceDisclaimer
		modules.DataQuality = buildDataQualityNotice(evidence, status)
	}

	return modules
}

// buildPillar coerces one pillar block, applying summary truncation and
// placeholder suppression
func buildPillar(raw models.RawPayload) *models.EvidencePillar {
	if raw == nil {
		return nil
	}

	why := pickString(raw, "", "why", "summary", "text")
	signals := buildSignals(raw)

	// Placeholder suppression: low-information filler never reaches the
	// presentation layer.
	if len(signals) == 0 && strings.HasPrefix(strings.ToLower(strings.TrimSpace(why)), placeholderSentence) {
		return nil
	}
	if why == "" && len(signals) == 0 {
		return nil
	}

	return &models.EvidencePillar{
		Why:     copyedit.Truncate(why, pillarWhyMaxChars),
		Signals: signals,
	}
}

func buildSignals(raw models.RawPayload) []models.EvidenceSignal {
	value, ok := pick(raw, "signals", "metrics")
	if !ok {
		return []models.EvidenceSignal{}
	}

	signals := []models.EvidenceSignal{}
	for _, entry := range asSlice(value) {
		obj := asMap(entry)
		if obj == nil {
			continue
		}
		signal := models.EvidenceSignal{
			Label: pickString(obj, "", "label", "name"),
			Value: formatSignalValue(obj),
		}
		if signal.Label != "" {
			signals = append(signals, signal)
		}
	}
	return signals
}

func formatSignalValue(obj models.RawPayload) string {
	if value, ok := pick(obj, "value", "display_value", "displayValue"); ok {
		if s, isString := value.(string); isString {
			return strings.TrimSpace(s)
		}
		if n := asFiniteFloat(value, math.NaN()); !math.IsNaN(n) {
			return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", n), "0"), ".")
		}
	}
	return ""
}

// collectTopFactors gathers short edge strings across the top-factor pillar
// subset into one deduplicated list: case-sensitive exact dedup, insertion
// order preserved, capped entries, each length-truncated.
func collectTopFactors(evidence models.RawPayload) []string {
	factors := []string{}
	seen := map[string]bool{}

	for _, name := range topFactorPillars {
		pillar := pickMap(evidence, pillarKeys[name]...)
		if pillar == nil {
			continue
		}
		value, ok := pick(pillar, "edges", "factors", "top_factors", "topFactors")
		if !ok {
			continue
		}
		for _, edge := range asStringSlice(value) {
			if len(factors) >= topFactorsCap {
				return factors
			}
			truncated := copyedit.Truncate(edge, topFactorMaxChars)
			if truncated == "" || seen[truncated] {
				continue
			}
			seen[truncated] = true
			factors = append(factors, truncated)
		}
	}
	return factors
}

// buildWeatherModule includes weather only for outdoor sports, and only
// when the fired rules say something beyond "the game is indoors" or the
// feed explicitly flags missing weather data
func buildWeatherModule(raw models.RawPayload, sport string) *models.WeatherModule {
	if raw == nil || !sportadapt.WeatherEligible(sport) {
		return nil
	}

	rules := normalizeStringList(raw, "rules_fired", "rulesFired", "rules")
	missing := false
	if value, ok := pick(raw, "missing_data", "missingData"); ok {
		missing = asBool(value, false)
	}

	meaningful := false
	for _, rule := range rules {
		if !indoorOnlyRules[strings.ToLower(strings.TrimSpace(rule))] {
			meaningful = true
			break
		}
	}
	if !meaningful && !missing {
		return nil
	}

	return &models.WeatherModule{
		Summary:     copyedit.Truncate(pickString(raw, "", "summary", "why", "text"), pillarWhyMaxChars),
		RulesFired:  rules,
		MissingData: missing,
	}
}

// evidenceConfidence resolves the 0-1 confidence score. When the feed
// carries no explicit score, the mean of per-signal scores stands in; with
// nothing to average, a neutral 0.5 with the limited flag set.
func evidenceConfidence(evidence models.RawPayload) (score float64, limited bool) {
	if value, ok := pick(evidence, "confidence", "confidence_score", "confidenceScore"); ok {
		if v := asFiniteFloat(value, math.NaN()); !math.IsNaN(v) {
			return clamp01(v), dataQualityStatus(evidence) != dataQualityBestTier
		}
	}

	scores := []float64{}
	for _, keys := range pillarKeys {
		pillar := pickMap(evidence, keys...)
		if pillar == nil {
			continue
		}
		for _, entry := range asSlice(pillar["signals"]) {
			obj := asMap(entry)
			if obj == nil {
				continue
			}
			if v := pickFloat(obj, math.NaN(), "score", "weight"); !math.IsNaN(v) {
				scores = append(scores, clamp01(v))
			}
		}
	}

	mean, err := stats.Mean(scores)
	if err != nil {
		return 0.5, true
	}
	return clamp01(mean), dataQualityStatus(evidence) != dataQualityBestTier
}

func dataQualityStatus(evidence models.RawPayload) string {
	quality := pickMap(evidence, "data_quality", "dataQuality")
	if quality == nil {
		return dataQualityBestTier
	}
	return strings.ToLower(pickString(quality, dataQualityBestTier, "status", "tier"))
}

// buildDataQualityNotice names up to missingFieldsShown missing fields with
// a count of further omissions, plus any stale field names
func buildDataQualityNotice(evidence models.RawPayload, status string) *models.DataQualityNotice {
	quality := pickMap(evidence, "data_quality", "dataQuality")
	if quality == nil {
		return &models.DataQualityNotice{Status: status, Missing: []string{}, Stale: []string{}}
	}

	missing := normalizeStringList(quality, "missing_fields", "missingFields", "missing")
	stale := normalizeStringList(quality, "stale_fields", "staleFields", "stale")

	notice := &models.DataQualityNotice{Status: status, Missing: missing, Stale: stale}
	if len(missing) > missingFieldsShown {
		notice.Missing = missing[:missingFieldsShown]
		notice.AdditionalMissing = len(missing) - missingFieldsShown
	}
	return notice
}
