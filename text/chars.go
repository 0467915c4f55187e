package text

import "github.com/kenshaw/symdmp"

// Chars tokenizes a string one rune (Unicode code point) per symbol.
type Chars struct{}

// Parse satisfies Parser.
func (Chars) Parse(s string) []symdmp.Symbol[string] {
	runes := []rune(s)
	out := make([]symdmp.Symbol[string], len(runes))
	for i, r := range runes {
		out[i] = symdmp.Symbol[string]{Payload: string(r)}
	}
	return out
}
