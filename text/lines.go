package text

import (
	"strings"

	"github.com/kenshaw/symdmp"
)

// Lines tokenizes a string on "\n" boundaries. Each symbol keeps its
// trailing newline, so joining symbols always reproduces the input exactly;
// a trailing "\n" in the input yields an empty final symbol.
type Lines struct{}

// Parse satisfies Parser.
func (Lines) Parse(s string) []symdmp.Symbol[string] {
	if s == "" {
		return nil
	}
	parts := strings.SplitAfter(s, "\n")
	out := make([]symdmp.Symbol[string], len(parts))
	for i, p := range parts {
		out[i] = symdmp.Symbol[string]{Payload: p}
	}
	return out
}
