// Package sportadapt maps sport identifiers to presentation adaptation
// records: icon glyph, ordered market tabs, and unit vocabulary. The table
// is built once at init and read-only afterwards, so lookups are safe from
// any goroutine. Unknown sports resolve to a default record; the registry
// never fails, which guarantees every consumer can render a complete
// bet-option set.
package sportadapt

import "strings"

// Market tab identifiers. Labels vary by sport; IDs do not.
const (
	MarketMoneyline = "moneyline"
	MarketSpread    = "spread"
	MarketTotal     = "total"
)

// MarketTab is one tab in the bet-option strip
type MarketTab struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Adaptation is one sport's presentation record
type Adaptation struct {
	Sport        string      `json:"sport"`
	Icon         string      `json:"icon"`
	MarketTabs   []MarketTab `json:"market_tabs"`
	OffenseLabel string      `json:"offense_label"`
	DefenseLabel string      `json:"defense_label"`

	// OutdoorWeather marks sports where a weather evidence module is
	// meaningful at all
	OutdoorWeather bool `json:"outdoor_weather"`
}

var defaultAdaptation = Adaptation{
	Sport:        "generic",
	Icon:         "🏟️",
	MarketTabs:   tabs("Moneyline", "Spread", "Total"),
	OffenseLabel: "offense",
	DefenseLabel: "defense",
}

// registry maps normalized sport identifiers to shared adaptation records.
// Groups of league identifiers intentionally share one record.
var registry = map[string]*Adaptation{}

func init() {
	basketball := &Adaptation{
		Sport:        "basketball",
		Icon:         "🏀",
		MarketTabs:   tabs("Moneyline", "Spread", "Total"),
		OffenseLabel: "offense",
		DefenseLabel: "defense",
	}
	football := &Adaptation{
		Sport:          "football",
		Icon:           "🏈",
		MarketTabs:     tabs("Moneyline", "Spread", "Total"),
		OffenseLabel:   "offense",
		DefenseLabel:   "defense",
		OutdoorWeather: true,
	}
	hockey := &Adaptation{
		Sport:        "hockey",
		Icon:         "🏒",
		MarketTabs:   tabs("Moneyline", "Puck Line", "Total"),
		OffenseLabel: "offense",
		DefenseLabel: "defense",
	}
	baseball := &Adaptation{
		Sport:          "baseball",
		Icon:           "⚾",
		MarketTabs:     tabs("Moneyline", "Run Line", "Total"),
		OffenseLabel:   "lineup",
		DefenseLabel:   "pitching",
		OutdoorWeather: true,
	}
	soccer := &Adaptation{
		Sport:          "soccer",
		Icon:           "⚽",
		MarketTabs:     tabs("Moneyline", "Goal Line", "Total Goals"),
		OffenseLabel:   "attack",
		DefenseLabel:   "defense",
		OutdoorWeather: true,
	}
	tennis := &Adaptation{
		Sport:        "tennis",
		Icon:         "🎾",
		MarketTabs:   tabs("Moneyline", "Game Spread", "Total Games"),
		OffenseLabel: "serve",
		DefenseLabel: "return",
	}
	combat := &Adaptation{
		Sport:        "combat",
		Icon:         "🥊",
		MarketTabs:   tabs("Moneyline", "Round Line", "Total Rounds"),
		OffenseLabel: "striking",
		DefenseLabel: "grappling",
	}

	register(basketball, "nba", "wnba", "ncaab", "cbb", "basketball")
	register(football, "nfl", "ncaaf", "cfb", "football")
	register(hockey, "nhl", "hockey")
	register(baseball, "mlb", "baseball")
	register(soccer, "soccer", "epl", "premier_league", "la_liga", "laliga",
		"serie_a", "bundesliga", "ligue_1", "mls", "ucl", "champions_league")
	register(tennis, "tennis", "atp", "wta")
	register(combat, "mma", "ufc", "boxing")
}

func register(record *Adaptation, sports ...string) {
	for _, sport := range sports {
		registry[sport] = record
	}
}

func tabs(labels ...string) []MarketTab {
	ids := []string{MarketMoneyline, MarketSpread, MarketTotal}
	result := make([]MarketTab, 0, len(labels))
	for i, label := range labels {
		result = append(result, MarketTab{ID: ids[i], Label: label})
	}
	return result
}

// Resolve returns the adaptation record for a sport identifier. The
// identifier is trimmed and lowercased before lookup; unknown sports get
// the default record.
func Resolve(sport string) Adaptation {
	key := strings.ToLower(strings.TrimSpace(sport))
	if record, ok := registry[key]; ok {
		return *record
	}
	return defaultAdaptation
}

// WeatherEligible reports whether a weather evidence module makes sense for
// the sport
func WeatherEligible(sport string) bool {
	return Resolve(sport).OutdoorWeather
}
