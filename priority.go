package cardex

import (
	"regexp"
	"strings"
)

// Priority bounds. Lower values are more important; BasePriority is the
// starting point before any signal decrements.
const (
	MinPriority  = 1
	BasePriority = 3
	MaxPriority  = 5
)

// statPattern matches percentages and large counts ("50%", "3 million",
// "40 percent").
var statPattern = regexp.MustCompile(`(?i)\d+(?:\.\d+)?\s*(?:%|million|billion|trillion|percent)`)

// PriorityConfig holds the lexical signal families used to score span
// priority. The lists are configuration data, not code, so they can be
// tuned (e.g. from a YAML file) without changes here.
type PriorityConfig struct {
	// KeyTerms are debate-structure terms that mark a span as load-bearing.
	KeyTerms []string `json:"keyTerms" yaml:"keyTerms"`

	// StrongLanguage are assertive words that mark conclusory claims.
	StrongLanguage []string `json:"strongLanguage" yaml:"strongLanguage"`
}

// DefaultPriorityConfig returns the built-in signal lists.
func DefaultPriorityConfig() PriorityConfig {
	return PriorityConfig{
		KeyTerms: []string{
			"impact", "uniqueness", "link", "internal link", "solvency",
			"evidence", "proves", "shows", "demonstrates",
		},
		StrongLanguage: []string{
			"must", "will", "proves", "confirms", "establishes",
			"critical", "essential",
		},
	}
}

// Score assigns a formatting priority in [MinPriority, MaxPriority] to a
// span text. The baseline is BasePriority; each matching signal family
// (key terms, statistics, strong language) decrements once, independently,
// clamped at the floor. Pure and deterministic.
func (c PriorityConfig) Score(text string) int {
	priority := BasePriority
	lower := strings.ToLower(text)

	if containsAny(lower, c.KeyTerms) {
		priority--
	}
	if statPattern.MatchString(text) {
		priority--
	}
	if containsAny(lower, c.StrongLanguage) {
		priority--
	}

	if priority < MinPriority {
		priority = MinPriority
	}
	if priority > MaxPriority {
		priority = MaxPriority
	}
	return priority
}

// containsAny reports whether lower contains any of the terms as a
// case-insensitive substring. Terms are assumed to be lowercase.
func containsAny(lower string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}
