package symdmp

import (
	"net/url"
	"strings"
)

// unescaper reverses the percent-escapes of a fixed "unreserved" subset for
// compatibility with JavaScript's encodeURI. Its keys are the upper-case
// hex escapes that url.QueryEscape emits; the match is case-sensitive, so a
// lower-case escape such as "%3b" is left alone.
var unescaper = strings.NewReplacer(
	"%21", "!", "%7E", "~", "%27", "'",
	"%28", "(", "%29", ")", "%3B", ";",
	"%2F", "/", "%3F", "?", "%3A", ":",
	"%40", "@", "%26", "&", "%3D", "=",
	"%2B", "+", "%24", "$", "%2C", ",",
	"%23", "#", "%2A", "*",
)

// encodePayload percent-encodes s with url.QueryEscape, then restores the
// JavaScript-encodeURI-compatible unreserved set.
func encodePayload(s string) string {
	escaped := strings.Replace(url.QueryEscape(s), "+", " ", -1)
	return unescaper.Replace(escaped)
}

// decodePayload is the inverse of encodePayload.
func decodePayload(s string) (string, error) {
	// url.QueryUnescape would turn a literal "+" back into a space, so
	// protect it first the same way the teacher does.
	s = strings.Replace(s, "+", "%2b", -1)
	return url.QueryUnescape(s)
}
