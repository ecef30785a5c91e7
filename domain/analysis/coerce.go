package analysis

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"pregame/models"
)

// Coercion helpers. The upstream generator is not trusted to produce
// well-formed output, so every accessor is total: it returns a typed value
// or the caller's fallback, never an error. Field lookups accept multiple
// key spellings (snake_case first, then camelCase) as an ordered fallback
// chain.

var numberPattern = regexp.MustCompile(`[-+]?\d+(?:\.\d+)?`)

// pick returns the first present value among the candidate keys
func pick(raw models.RawPayload, keys ...string) (interface{}, bool) {
	if raw == nil {
		return nil, false
	}
	for _, key := range keys {
		if value, ok := raw[key]; ok && value != nil {
			return value, true
		}
	}
	return nil, false
}

func asString(value interface{}, fallback string) string {
	switch v := value.(type) {
	case string:
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			return trimmed
		}
	case float64:
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			return strconv.FormatFloat(v, 'f', -1, 64)
		}
	}
	return fallback
}

func asFiniteFloat(value interface{}, fallback float64) float64 {
	switch v := value.(type) {
	case float64:
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			return v
		}
	case int:
		return float64(v)
	case string:
		if parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil && !math.IsNaN(parsed) && !math.IsInf(parsed, 0) {
			return parsed
		}
	}
	return fallback
}

func asBool(value interface{}, fallback bool) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		if parsed, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			return parsed
		}
	}
	return fallback
}

func asMap(value interface{}) models.RawPayload {
	switch v := value.(type) {
	case map[string]interface{}:
		return models.RawPayload(v)
	case models.RawPayload:
		return v
	}
	return nil
}

func asSlice(value interface{}) []interface{} {
	if v, ok := value.([]interface{}); ok {
		return v
	}
	return nil
}

// asStringSlice flattens a loose list into non-empty trimmed strings. Map
// entries contribute their "text"/"description" field when present.
func asStringSlice(value interface{}) []string {
	var result []string
	for _, entry := range asSlice(value) {
		switch v := entry.(type) {
		case string:
			if trimmed := strings.TrimSpace(v); trimmed != "" {
				result = append(result, trimmed)
			}
		case map[string]interface{}:
			if text, ok := pick(models.RawPayload(v), "text", "description", "summary"); ok {
				if s := asString(text, ""); s != "" {
					result = append(result, s)
				}
			}
		}
	}
	return result
}

// pickString resolves a string field across key spellings
func pickString(raw models.RawPayload, fallback string, keys ...string) string {
	if value, ok := pick(raw, keys...); ok {
		return asString(value, fallback)
	}
	return fallback
}

// pickFloat resolves a numeric field across key spellings
func pickFloat(raw models.RawPayload, fallback float64, keys ...string) float64 {
	if value, ok := pick(raw, keys...); ok {
		return asFiniteFloat(value, fallback)
	}
	return fallback
}

// pickMap resolves a nested object across key spellings
func pickMap(raw models.RawPayload, keys ...string) models.RawPayload {
	if value, ok := pick(raw, keys...); ok {
		return asMap(value)
	}
	return nil
}

// firstNumber extracts the first numeric token from free text, e.g. the
// -4.5 in "Lakers -4.5". Returns nil when the text carries no number.
func firstNumber(text string) *float64 {
	match := numberPattern.FindString(text)
	if match == "" {
		return nil
	}
	parsed, err := strconv.ParseFloat(match, 64)
	if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
		return nil
	}
	return &parsed
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
