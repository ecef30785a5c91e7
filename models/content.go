package models

// Canonical analysis content. Every field here is fully typed and always
// populated: the normalizer substitutes a documented fallback for anything
// the upstream payload got wrong or left out.

// WinProbability is a normalized probability pair. After normalization
// Home+Away == 1 and both values sit in [0,1].
type WinProbability struct {
	Home float64 `json:"home"`
	Away float64 `json:"away"`
}

// PickBlock is a single spread or total pick with its reasoning
type PickBlock struct {
	Pick      string `json:"pick"`
	Reasoning string `json:"reasoning"`
}

// BestBet is one entry from the upstream "best bets" list
type BestBet struct {
	BetType    string  `json:"bet_type"`
	Pick       string  `json:"pick"`
	Reasoning  string  `json:"reasoning"`
	Confidence float64 `json:"confidence"`
}

// MatchupEdge describes one edge a side holds in the matchup
type MatchupEdge struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// QuickTakeOverride is a pre-authored quick-take block. Empty fields mean
// "no override"; recognized categorical values win over derived ones.
type QuickTakeOverride struct {
	FavoredTeam     string `json:"favored_team"`
	ConfidenceLevel string `json:"confidence_level"`
	RiskLevel       string `json:"risk_level"`
	Recommendation  string `json:"recommendation"`
	Rationale       string `json:"rationale"`
}

// BetOptionOverride overlays fields onto a derived bet option. Matched to
// the base option by lowercased ID; only non-empty fields are applied.
type BetOptionOverride struct {
	ID              string `json:"id"`
	Label           string `json:"label"`
	Lean            string `json:"lean"`
	ConfidenceLevel string `json:"confidence_level"`
	Explanation     string `json:"explanation"`
}

// MatchupCardOverride is a pre-authored matchup card
type MatchupCardOverride struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Icon  string `json:"icon"`
}

// UIOverrides carries the optional pre-authored UI copy blocks. Nil/empty
// members mean the builder derives the section itself.
type UIOverrides struct {
	QuickTake       *QuickTakeOverride    `json:"quick_take,omitempty"`
	KeyDrivers      []string              `json:"key_drivers,omitempty"`
	BetOptions      []BetOptionOverride   `json:"bet_options,omitempty"`
	MatchupCards    []MatchupCardOverride `json:"matchup_cards,omitempty"`
	Trends          []string              `json:"trends,omitempty"`
	LimitedDataNote string                `json:"limited_data_note,omitempty"`
}

// AnalysisContent is the canonical, fully-coerced analysis schema
type AnalysisContent struct {
	Matchup           string         `json:"matchup"`
	OpeningSummary    string         `json:"opening_summary"`
	MatchupEdges      []MatchupEdge  `json:"matchup_edges"`
	WinProbability    WinProbability `json:"win_probability"`
	SpreadPick        PickBlock      `json:"spread_pick"`
	TotalPick         PickBlock      `json:"total_pick"`
	BestBets          []BestBet      `json:"best_bets"`
	KeyStats          []string       `json:"key_stats"`
	Trends            []string       `json:"trends"`
	CalculationMethod string         `json:"calculation_method"`
	Explanation       string         `json:"explanation"`
	Overrides         UIOverrides    `json:"ui_overrides"`

	// Evidence is the richer analytics sub-payload, passed through untouched
	// for the evidence module builder to interpret.
	Evidence RawPayload `json:"evidence,omitempty"`
}

// AnalysisResponse is the canonical top-level upstream response
type AnalysisResponse struct {
	Sport   string          `json:"sport"`
	Content AnalysisContent `json:"content"`
}
