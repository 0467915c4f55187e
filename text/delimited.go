package text

import "github.com/kenshaw/symdmp"

// Delimited tokenizes a string on any rune in Set, attaching each delimiter
// to the end of the symbol it terminates (mirroring Lines's "\n" handling),
// so joining symbols reproduces the input exactly.
type Delimited struct {
	Set string
}

// NewDelimited returns a Delimited parser splitting on any rune in set.
func NewDelimited(set string) Delimited {
	return Delimited{Set: set}
}

// Parse satisfies Parser.
func (d Delimited) Parse(s string) []symdmp.Symbol[string] {
	if s == "" {
		return nil
	}
	var out []symdmp.Symbol[string]
	var cur []rune
	for _, r := range s {
		cur = append(cur, r)
		if containsRune(d.Set, r) {
			out = append(out, symdmp.Symbol[string]{Payload: string(cur)})
			cur = nil
		}
	}
	if len(cur) != 0 {
		out = append(out, symdmp.Symbol[string]{Payload: string(cur)})
	}
	return out
}

func containsRune(set string, r rune) bool {
	for _, c := range set {
		if c == r {
			return true
		}
	}
	return false
}
