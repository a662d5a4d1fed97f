package client

import "strings"

// Span is a fragment of step text with its emphasis flag.
type Span struct {
	Text string
	Bold bool
}

// SplitEmphasis breaks a step on ** markers so renderers can bold the
// delimited spans. Odd-indexed fragments are the emphasized ones;
// well-formed steps carry an even number of markers, and a dangling marker
// simply leaves the trailing fragment emphasized.
func SplitEmphasis(step string) []Span {
	parts := strings.Split(step, "**")
	spans := make([]Span, 0, len(parts))
	for i, part := range parts {
		if part == "" {
			continue
		}
		spans = append(spans, Span{Text: part, Bold: i%2 == 1})
	}
	return spans
}
