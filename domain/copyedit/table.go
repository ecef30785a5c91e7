package copyedit

import "regexp"

// VoiceLintTableVersion identifies the active replacement table so the ops
// surface can report which copy policy is deployed.
const VoiceLintTableVersion = "2025-07"

// DefaultVoiceLintTable is the ordered jargon replacement table. Order
// matters: the model-reference rewrites run after the statistical-term
// rewrites so that phrases like "model confidence" are handled as a unit
// before the bare word "model" is genericized.
var DefaultVoiceLintTable = []Replacement{
	{regexp.MustCompile(`(?i)model confidence`), "how sure the AI is"},
	{regexp.MustCompile(`(?i)confidence interval`), "how sure the AI is"},
	{regexp.MustCompile(`(?i)statistical confidence`), "how sure the AI is"},
	{regexp.MustCompile(`(?i)\bexpected value\b|\bEV\b`), "long-term value"},
	{regexp.MustCompile(`(?i)monte carlo simulations?`), "thousands of simulated games"},
	{regexp.MustCompile(`(?i)regression (?:analysis|model)s?`), "data"},
	{regexp.MustCompile(`(?i)z-scores?`), "ratings"},
	{regexp.MustCompile(`(?i)standard deviations?`), "spread of outcomes"},
	{regexp.MustCompile(`(?i)(?:training |historical )?data ?sets?`), "data"},
	{regexp.MustCompile(`(?i)historical database`), "data"},
	{regexp.MustCompile(`(?i)\b(?:our |the )?(?:prediction )?(?:model|algorithm)s?\b`), "the AI"},
}

// LintTableInfo describes the active table for the ops endpoint
type LintTableInfo struct {
	Version string   `json:"version"`
	Rules   []string `json:"rules"`
}

// TableInfo returns a serializable description of the active table
func TableInfo() LintTableInfo {
	info := LintTableInfo{Version: VoiceLintTableVersion}
	for _, entry := range DefaultVoiceLintTable {
		info.Rules = append(info.Rules, entry.Pattern.String()+" -> "+entry.With)
	}
	return info
}
