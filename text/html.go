package text

import (
	"strings"

	"github.com/kenshaw/symdmp"
)

// HTML tokenizes a string into one symbol per tag ("<...>"), one symbol
// per HTML comment ("<!-- ... -->"), and a run of Inner-parser symbols for
// everything between tags. Comment detection takes priority over tag
// detection, so "<" and ">" inside a comment body are literal until the
// closing "-->". Joining every produced symbol's text always reproduces
// the input exactly, since every byte of the input is assigned to exactly
// one symbol.
type HTML struct {
	Inner Parser
}

// NewHTML returns an HTML parser that tokenizes text outside tags with
// inner. A nil inner defaults to Words.
func NewHTML(inner Parser) HTML {
	if inner == nil {
		inner = Words
	}
	return HTML{Inner: inner}
}

// Parse satisfies Parser.
func (h HTML) Parse(s string) []symdmp.Symbol[string] {
	inner := h.Inner
	if inner == nil {
		inner = Words
	}
	var out []symdmp.Symbol[string]
	i := 0
	for i < len(s) {
		switch {
		case strings.HasPrefix(s[i:], "<!--"):
			end := strings.Index(s[i+4:], "-->")
			var stop int
			if end == -1 {
				stop = len(s)
			} else {
				stop = i + 4 + end + 3
			}
			out = append(out, symdmp.Symbol[string]{Payload: s[i:stop]})
			i = stop
		case s[i] == '<':
			j := strings.IndexByte(s[i:], '>')
			var stop int
			if j == -1 {
				stop = len(s)
			} else {
				stop = i + j + 1
			}
			out = append(out, symdmp.Symbol[string]{Payload: s[i:stop]})
			i = stop
		default:
			next := strings.IndexByte(s[i:], '<')
			var stop int
			if next == -1 {
				stop = len(s)
			} else {
				stop = i + next
			}
			out = append(out, inner.Parse(s[i:stop])...)
			i = stop
		}
	}
	return out
}
