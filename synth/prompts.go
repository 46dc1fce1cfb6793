package synth

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/evidlab/cardex"
)

// systemPrompt is the fixed formatter persona every example opens with.
const systemPrompt = "You are an expert debate card formatter. Given a card's tag, " +
	"citation, and body text, choose which passages to underline, emphasize, and " +
	"highlight so a debater can read the card efficiently. Respond with a JSON " +
	"object with \"underline\", \"emphasis\", and \"highlight\" span lists and a " +
	"\"reasoning\" summary. Each span has \"text\", \"start\", \"end\", and a " +
	"\"priority\" from 1 (most important) to 5."

func buildUserPrompt(tag, cite, body string) string {
	var b strings.Builder
	b.WriteString("Format this debate card:\n")
	b.WriteString("Tag: " + tag + "\n")
	if cite != "" {
		b.WriteString("Cite: " + cite + "\n")
	}
	b.WriteString("Body: " + body)
	return b.String()
}

// spanJSON is a span as it appears in the assistant response.
type spanJSON struct {
	Text     string `json:"text"`
	Start    int    `json:"start"`
	End      int    `json:"end"`
	Priority int    `json:"priority"`
}

type responseJSON struct {
	Underline []spanJSON `json:"underline"`
	Emphasis  []spanJSON `json:"emphasis"`
	Highlight []spanJSON `json:"highlight"`
	Reasoning string     `json:"reasoning"`
}

// buildResponse renders the assistant turn: span lists grouped by type
// plus the reasoning summary. Empty groups marshal as [] so the response
// shape is stable across cards.
func buildResponse(spans []cardex.Span, reasoning string) (string, error) {
	resp := responseJSON{
		Underline: []spanJSON{},
		Emphasis:  []spanJSON{},
		Highlight: []spanJSON{},
		Reasoning: reasoning,
	}

	for _, sp := range spans {
		j := spanJSON{
			Text:     sp.Text,
			Start:    sp.StartPosition,
			End:      sp.EndPosition,
			Priority: sp.Priority,
		}
		switch sp.Type {
		case cardex.SpanUnderline:
			resp.Underline = append(resp.Underline, j)
		case cardex.SpanEmphasis:
			resp.Emphasis = append(resp.Emphasis, j)
		case cardex.SpanHighlight:
			resp.Highlight = append(resp.Highlight, j)
		}
	}

	out, err := json.Marshal(resp)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func buildReasoning(spans []cardex.Span) string {
	var underline, emphasis, highlight int
	for _, sp := range spans {
		switch sp.Type {
		case cardex.SpanUnderline:
			underline++
		case cardex.SpanEmphasis:
			emphasis++
		case cardex.SpanHighlight:
			highlight++
		}
	}
	return fmt.Sprintf("Formatted %d underline, %d emphasis, and %d highlight spans for this card.",
		underline, emphasis, highlight)
}

func contextSentence(dc cardex.DebateContext) string {
	s := fmt.Sprintf("Context: this is a %s card about %s.", dc.Type, dc.Topic)
	if dc.Urgency == "high" {
		s += " The argument is time-sensitive."
	}
	return s
}
