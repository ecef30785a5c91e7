// Package copyedit holds the pure text utilities applied to AI-authored copy
// before it reaches the renderer: jargon replacement, percentage stripping,
// and single-sentence clamping. Every function is total; malformed or empty
// input degrades to an empty string, never an error.
package copyedit

import (
	"regexp"
	"strings"
)

// Replacement is one entry in the voice-lint table. Pattern is matched
// case-insensitively; entries apply in table order, so later entries may act
// on the output of earlier ones.
type Replacement struct {
	Pattern *regexp.Regexp
	With    string
}

var (
	percentPattern  = regexp.MustCompile(`[-+]?\d+(?:\.\d+)?\s?%`)
	doubleSpace     = regexp.MustCompile(`  +`)
	sentenceBreak   = regexp.MustCompile(`[.!?]\s`)
	leadingNonWord  = regexp.MustCompile(`^[^\p{L}\p{N}]+`)
	trailingOrphans = regexp.MustCompile(`\s+([,.;:])`)
)

// SanitizeMainCopy rewrites jargon in AI-authored copy into plain language
// using the default voice-lint table
func SanitizeMainCopy(text string) string {
	return SanitizeWithTable(text, DefaultVoiceLintTable)
}

// SanitizeWithTable applies an ordered replacement table to text
func SanitizeWithTable(text string, table []Replacement) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	for _, entry := range table {
		text = entry.Pattern.ReplaceAllString(text, entry.With)
	}
	text = doubleSpace.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// StripPercentages removes numeric percentage tokens ("62%", "+4.5 %") and
// collapses the double spaces left behind
func StripPercentages(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	text = percentPattern.ReplaceAllString(text, "")
	text = trailingOrphans.ReplaceAllString(text, "$1")
	text = doubleSpace.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// ToSingleSentence returns the first sentence of text, hard-truncated to
// maxChars runes with an ellipsis when still too long. The result is always
// at most maxChars+1 runes.
func ToSingleSentence(text string, maxChars int) string {
	text = strings.TrimSpace(text)
	if text == "" || maxChars <= 0 {
		return ""
	}

	if loc := sentenceBreak.FindStringIndex(text); loc != nil {
		text = strings.TrimSpace(text[:loc[0]+1])
	}

	runes := []rune(text)
	if len(runes) > maxChars {
		return string(runes[:maxChars]) + "…"
	}
	return text
}

// TrimLeadingNonWord strips bullet glyphs, dashes, and other leading
// punctuation from a derived bullet
func TrimLeadingNonWord(text string) string {
	return strings.TrimSpace(leadingNonWord.ReplaceAllString(strings.TrimSpace(text), ""))
}

// Truncate hard-truncates text to maxChars runes, appending an ellipsis when
// anything was cut
func Truncate(text string, maxChars int) string {
	text = strings.TrimSpace(text)
	if maxChars <= 0 {
		return ""
	}
	runes := []rune(text)
	if len(runes) <= maxChars {
		return text
	}
	return string(runes[:maxChars]) + "…"
}
