// Package text specializes symdmp's generic symbol engine to plain strings:
// a family of parsers tokenizes a string into a symbol sequence at varying
// granularity (characters, lines, delimiter runs, words, HTML tags), and a
// matching Codec lets symdmp.Config[string] round-trip deltas and patch
// text through the same tokenization a caller chose up front.
package text

import (
	"strings"

	"github.com/kenshaw/symdmp"
)

// Parser tokenizes a string into an ordered symbol sequence.
type Parser interface {
	Parse(s string) []symdmp.Symbol[string]
}

// Join concatenates the payload text of every symbol in order, reproducing
// the original string for any sequence produced by a conforming Parser.
func Join(symbols []symdmp.Symbol[string]) string {
	var buf strings.Builder
	for _, s := range symbols {
		buf.WriteString(s.Payload)
	}
	return buf.String()
}

// Codec adapts a Parser into a symdmp.Codec[string]: payload text is
// already its own encoding, and decoding a run of inserted text re-parses
// it with the same Parser so the rebuilt symbols carry the granularity the
// original sequence was built with.
type Codec struct {
	Parser Parser
}

// NewCodec returns a Codec backed by parser.
func NewCodec(parser Parser) Codec {
	return Codec{Parser: parser}
}

// Encode satisfies symdmp.Codec[string]; string payloads are their own text.
func (c Codec) Encode(s string) string {
	return s
}

// DecodeRun satisfies symdmp.Codec[string] by re-tokenizing text with c's
// Parser.
func (c Codec) DecodeRun(text string) []string {
	symbols := c.Parser.Parse(text)
	out := make([]string, len(symbols))
	for i, s := range symbols {
		out[i] = s.Payload
	}
	return out
}
