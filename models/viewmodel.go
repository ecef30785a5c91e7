package models

// ViewModel is the final presentation-ready structure handed to a rendering
// client. It is a value object: fully owned by the caller, complete even for
// a minimal or malformed input, and never mutated after construction. String
// and slice fields are never nil where the renderer expects content.
type ViewModel struct {
	Header          Header           `json:"header"`
	QuickTake       QuickTake        `json:"quick_take"`
	KeyDrivers      KeyDrivers       `json:"key_drivers"`
	Probability     WinProbability   `json:"probability"`
	BetOptions      []BetOption      `json:"bet_options"`
	MatchupCards    []MatchupCard    `json:"matchup_cards"`
	Trends          []string         `json:"trends"`
	LimitedDataNote string           `json:"limited_data_note,omitempty"`
	Evidence        *EvidenceModules `json:"evidence,omitempty"`
}

// Header carries the title block
type Header struct {
	Title     string `json:"title"`
	Subtitle  string `json:"subtitle"`
	HomeTeam  string `json:"home_team"`
	AwayTeam  string `json:"away_team"`
	Separator string `json:"separator"`
	SportIcon string `json:"sport_icon"`
}

// QuickTake is the at-a-glance verdict block
type QuickTake struct {
	FavoredTeam       string `json:"favored_team"`
	FavoredSide       string `json:"favored_side"` // "home" or "away"
	ConfidencePercent int    `json:"confidence_percent"`
	ConfidenceLevel   string `json:"confidence_level"`
	RiskLevel         string `json:"risk_level"`
	Recommendation    string `json:"recommendation"`
	Rationale         string `json:"rationale"`
}

// KeyDrivers holds at most 2 positive bullets and exactly 1 risk bullet
type KeyDrivers struct {
	Positives []string `json:"positives"`
	Risk      string   `json:"risk"`
}

// Prefill is the deep-link descriptor a bet option carries into the picker
type Prefill struct {
	Sport  string   `json:"sport"`
	Market string   `json:"market"`
	Side   string   `json:"side"`
	Team   string   `json:"team,omitempty"`
	Line   *float64 `json:"line,omitempty"`
}

// BetOption is one market-tab entry; at most one per tab of the sport's
// adaptation record
type BetOption struct {
	Market          string   `json:"market"` // "moneyline", "spread", "total"
	Label           string   `json:"label"`
	Lean            string   `json:"lean"`
	Side            string   `json:"side"` // "home", "away", "over", "under"
	Line            *float64 `json:"line,omitempty"`
	ConfidenceLevel string   `json:"confidence_level"`
	Explanation     string   `json:"explanation"`
	Prefill         Prefill  `json:"prefill"`
}

// MatchupCard is one derived or pre-authored matchup detail card
type MatchupCard struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Icon  string `json:"icon"`
}

// EvidenceSignal is one typed signal line inside an evidence pillar
type EvidenceSignal struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// EvidencePillar is one named category of supporting evidence. A pillar
// whose only content is the "unable to assess" placeholder with zero
// signals is suppressed entirely and never reaches the renderer.
type EvidencePillar struct {
	Why     string           `json:"why"`
	Signals []EvidenceSignal `json:"signals"`
}

// WeatherModule is the weather sub-module, present only for outdoor sports
// with meaningful fired rules or an explicit missing-data flag
type WeatherModule struct {
	Summary     string   `json:"summary"`
	RulesFired  []string `json:"rules_fired"`
	MissingData bool     `json:"missing_data"`
}

// DataQualityNotice summarizes what the upstream analytics run was missing
type DataQualityNotice struct {
	Status            string   `json:"status"`
	Missing           []string `json:"missing"`
	AdditionalMissing int      `json:"additional_missing"`
	Stale             []string `json:"stale"`
}

// EvidenceModules is the optional evidence block of the view model
type EvidenceModules struct {
	TopFactors        []string           `json:"top_factors"`
	Availability      *EvidencePillar    `json:"availability,omitempty"`
	Efficiency        *EvidencePillar    `json:"efficiency,omitempty"`
	MatchupFit        *EvidencePillar    `json:"matchup_fit,omitempty"`
	ScriptStability   *EvidencePillar    `json:"script_stability,omitempty"`
	MarketAlignment   *EvidencePillar    `json:"market_alignment,omitempty"`
	Weather           *WeatherModule     `json:"weather,omitempty"`
	ConfidencePercent int                `json:"confidence_percent"`
	RiskLevel         string             `json:"risk_level"`
	Disclaimer        string             `json:"disclaimer,omitempty"`
	DataQuality       *DataQualityNotice `json:"data_quality,omitempty"`
}
