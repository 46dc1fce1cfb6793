package cardex

import "strings"

// Topic buckets for debate context inference.
type Topic string

// Topics. TopicGeneral is the fallback when no bucket matches.
const (
	TopicClimate    Topic = "climate change"
	TopicEconomics  Topic = "economics"
	TopicSecurity   Topic = "security"
	TopicHealthcare Topic = "healthcare"
	TopicGeneral    Topic = "general"
)

// ArgumentType classifies the card's role in an argument.
type ArgumentType string

// Argument types. ArgEvidence is the fallback.
const (
	ArgImpact   ArgumentType = "impact"
	ArgLink     ArgumentType = "link"
	ArgSolvency ArgumentType = "solvency"
	ArgEvidence ArgumentType = "evidence"
)

// DebateContext is advisory metadata inferred from a card's text. It is
// attached only to context-aware training examples and never affects
// extraction or validation.
type DebateContext struct {
	Topic   Topic        `json:"topic"`
	Type    ArgumentType `json:"type"`
	Urgency string       `json:"urgency"`
}

var topicKeywords = []struct {
	topic Topic
	words []string
}{
	{TopicClimate, []string{"warming", "climate", "emission", "carbon", "sea level", "fossil"}},
	{TopicEconomics, []string{"economy", "economic", "gdp", "trade", "inflation", "market", "recession"}},
	{TopicSecurity, []string{"war", "military", "terror", "nuclear", "deterrence", "conflict"}},
	{TopicHealthcare, []string{"health", "disease", "hospital", "pandemic", "medicare", "medical"}},
}

var argKeywords = []struct {
	arg   ArgumentType
	words []string
}{
	{ArgImpact, []string{"impact", "extinction", "collapse", "catastroph", "death"}},
	{ArgLink, []string{"link", "causes", "leads to", "results in", "triggers"}},
	{ArgSolvency, []string{"solvency", "solves", "solution", "resolves", "fixes"}},
}

var urgencyKeywords = []string{"now", "immediate", "urgent", "imminent", "crisis", "brink"}

// InferContext derives a DebateContext from a keyword scan of the given
// text (typically tag + cite + body). The first matching bucket wins on
// each axis; unmatched axes default to general/evidence. Pure function.
func InferContext(text string) DebateContext {
	lower := strings.ToLower(text)

	dc := DebateContext{
		Topic:   TopicGeneral,
		Type:    ArgEvidence,
		Urgency: "normal",
	}

	for _, bucket := range topicKeywords {
		if containsAny(lower, bucket.words) {
			dc.Topic = bucket.topic
			break
		}
	}
	for _, bucket := range argKeywords {
		if containsAny(lower, bucket.words) {
			dc.Type = bucket.arg
			break
		}
	}
	if containsAny(lower, urgencyKeywords) {
		dc.Urgency = "high"
	}

	return dc
}
