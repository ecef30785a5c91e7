package sportadapt

import "testing"

func TestResolve_KnownSports(t *testing.T) {
	tests := []struct {
		name      string
		sport     string
		icon      string
		secondTab string
	}{
		{"nba", "nba", "🏀", "Spread"},
		{"mixed case nhl", "NHL", "🏒", "Puck Line"},
		{"padded mlb", "  mlb ", "⚾", "Run Line"},
		{"nfl", "nfl", "🏈", "Spread"},
		{"soccer league shares record", "epl", "⚽", "Goal Line"},
		{"another soccer league", "bundesliga", "⚽", "Goal Line"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := Resolve(tt.sport)
			if record.Icon != tt.icon {
				t.Errorf("icon = %q, want %q", record.Icon, tt.icon)
			}
			if len(record.MarketTabs) < 2 {
				t.Fatalf("expected at least 2 market tabs, got %d", len(record.MarketTabs))
			}
			if record.MarketTabs[1].Label != tt.secondTab {
				t.Errorf("second tab = %q, want %q", record.MarketTabs[1].Label, tt.secondTab)
			}
		})
	}
}

func TestResolve_MoneylineAlwaysFirst(t *testing.T) {
	for _, sport := range []string{"nba", "nfl", "nhl", "mlb", "epl", "tennis", "mma", "curling"} {
		record := Resolve(sport)
		if len(record.MarketTabs) == 0 {
			t.Fatalf("%s: no market tabs", sport)
		}
		if record.MarketTabs[0].ID != MarketMoneyline {
			t.Errorf("%s: first tab id = %q", sport, record.MarketTabs[0].ID)
		}
	}
}

func TestResolve_UnknownSportGetsDefault(t *testing.T) {
	record := Resolve("underwater hockey")
	if record.Sport != "generic" {
		t.Errorf("sport = %q, want generic", record.Sport)
	}
	if len(record.MarketTabs) != 3 {
		t.Errorf("default tabs = %d, want 3", len(record.MarketTabs))
	}
	if record.OffenseLabel != "offense" || record.DefenseLabel != "defense" {
		t.Errorf("unexpected unit labels: %q/%q", record.OffenseLabel, record.DefenseLabel)
	}
}

func TestWeatherEligible(t *testing.T) {
	tests := []struct {
		sport    string
		eligible bool
	}{
		{"nfl", true},
		{"mlb", true},
		{"epl", true},
		{"nba", false},
		{"nhl", false},
		{"unknown", false},
	}

	for _, tt := range tests {
		if got := WeatherEligible(tt.sport); got != tt.eligible {
			t.Errorf("WeatherEligible(%q) = %v, want %v", tt.sport, got, tt.eligible)
		}
	}
}
