// Package htmldiff renders the diff between two HTML documents as a third
// HTML document that visibly marks inserted and deleted regions while
// keeping the surrounding markup syntactically valid.
//
// The raw symbol-level diff from symdmp does not respect tag boundaries, so
// wrapping every inserted/deleted symbol directly would produce broken
// markup such as "<de<ins>l>x</del></ins>". DiffSeg reconstructs a tree
// from the flat diff list before a Formatter ever sees a fragment of text,
// so markers never straddle a tag delimiter.
package htmldiff

import (
	"strings"

	"github.com/kenshaw/symdmp"
	"github.com/kenshaw/symdmp/text"
)

// alwaysSelfClosing is the set of tag names treated as self-closing even
// without an explicit trailing "/".
var alwaysSelfClosing = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "command": true,
	"embed": true, "hr": true, "img": true, "input": true, "keygen": true,
	"link": true, "meta": true, "param": true, "source": true, "track": true,
	"wbr": true, "!doctype": true,
}

// DiffSeg is a node of the reconstructed HTML-diff tree.
type DiffSeg struct {
	// Text is the segment's raw source text.
	Text string
	// Op is the diff operation the segment (or, for a tag, its closing
	// tag) was attributed.
	Op symdmp.Op
	// IsTag reports whether Text is a tag or comment, not plain content.
	IsTag bool
	// IsStartTag reports whether a tag segment opens (rather than closes)
	// an element. Always false for non-tag segments.
	IsStartTag bool
	// SelfClosing reports whether a start-tag segment never has a
	// matching close tag (comments count as self-closing).
	SelfClosing bool
	// TagName is the lower-cased tag name, set only for tag segments.
	TagName string
	// Children holds the segment's nested segments. Only ever non-nil
	// when IsTag, IsStartTag, and !SelfClosing all hold.
	Children []*DiffSeg
}

// ChildSegments returns s.Children, panicking with a symdmp LogicError-kind
// error if s cannot hold children (a non-tag leaf, a closing tag, and a
// self-closing tag never do). Use this instead of reading Children
// directly when the caller cannot already tell s is a container.
func (s *DiffSeg) ChildSegments() []*DiffSeg {
	if !s.IsTag || !s.IsStartTag || s.SelfClosing {
		panic(&symdmp.Error{Kind: symdmp.ErrLogicError, Msg: "htmldiff: segment is not a container"})
	}
	return s.Children
}

// Formatter renders a contiguous run of text under a single diff
// operation. The default formatter wraps DELETE in a line-through red
// <del> and INSERT in an underlined green <ins>; EQUAL text passes through
// unchanged.
type Formatter func(text string, op symdmp.Op) string

// DefaultFormatter is the formatter used when Diff is called without one.
func DefaultFormatter(s string, op symdmp.Op) string {
	switch op {
	case symdmp.OpDelete:
		return `<del style="text-decoration: line-through;color: red;">` + s + `</del>`
	case symdmp.OpInsert:
		return `<ins style="text-decoration: underline;color: green;">` + s + `</ins>`
	default:
		return s
	}
}

// Diff computes the diff between a and b as HTML-tagged text, tokenizing
// both with an HTML parser over word-granularity text, cleaning the result
// semantically, and rendering it with formatter (DefaultFormatter if nil).
func Diff(a, b string, formatter Formatter) (string, error) {
	if formatter == nil {
		formatter = DefaultFormatter
	}
	parser := text.NewHTML(text.Words)
	codec := text.NewCodec(parser)
	config := symdmp.NewDefaultConfig[string](codec)
	diffs := config.DiffMain(parser.Parse(a), parser.Parse(b))
	diffs = config.DiffCleanupSemantic(diffs)
	return Render(diffs, formatter), nil
}

// Render reconstructs the tag tree from a flat symbol-level diff list
// (such as one produced over a text.HTML parser's symbols) and emits it
// through formatter.
func Render(diffs []symdmp.Diff[string], formatter Formatter) string {
	if formatter == nil {
		formatter = DefaultFormatter
	}
	segs := flatten(diffs)
	tree := buildTree(segs)
	var buf strings.Builder
	for _, seg := range tree {
		emit(&buf, seg, formatter)
	}
	return buf.String()
}

// flatten turns every symbol of every diff into a classified leaf segment.
func flatten(diffs []symdmp.Diff[string]) []*DiffSeg {
	var out []*DiffSeg
	for _, d := range diffs {
		for _, sym := range d.Symbols {
			out = append(out, classify(sym.Payload, d.Op))
		}
	}
	return out
}

func classify(raw string, op symdmp.Op) *DiffSeg {
	trimmed := strings.TrimSpace(raw)
	seg := &DiffSeg{Text: raw, Op: op}
	switch {
	case strings.HasPrefix(trimmed, "<!--"):
		seg.IsTag = true
		seg.IsStartTag = true
		seg.SelfClosing = true
		seg.TagName = "!--"
	case strings.HasPrefix(trimmed, "<"):
		seg.IsTag = true
		body := strings.TrimSuffix(strings.TrimPrefix(trimmed, "<"), ">")
		seg.IsStartTag = !strings.HasPrefix(body, "/")
		name := body
		if !seg.IsStartTag {
			name = strings.TrimPrefix(body, "/")
		}
		name = strings.TrimSuffix(name, "/")
		if sp := strings.IndexAny(name, " \t\n\r"); sp != -1 {
			name = name[:sp]
		}
		name = strings.ToLower(name)
		seg.TagName = name
		seg.SelfClosing = strings.HasSuffix(body, "/") || alwaysSelfClosing[name]
	default:
		// Plain text leaf.
	}
	return seg
}

// buildTree groups a flat classified segment list into a forest, folding
// each non-self-closing start tag's matching end tag and everything
// between into its Children, and rewriting the start tag's Op from the end
// tag's Op (the upstream diff tends to attribute the closing half of an
// element to whichever change surrounds it).
func buildTree(segs []*DiffSeg) []*DiffSeg {
	segs, _ = buildTreeFrom(segs)
	return segs
}

// buildTreeFrom consumes a prefix of segs, returning the built forest and
// the unconsumed remainder. It recurses one level per open start tag.
func buildTreeFrom(segs []*DiffSeg) ([]*DiffSeg, []*DiffSeg) {
	var out []*DiffSeg
	for len(segs) > 0 {
		seg := segs[0]
		segs = segs[1:]
		if seg.IsTag && seg.IsStartTag && !seg.SelfClosing {
			var children []*DiffSeg
			var end *DiffSeg
			children, segs, end = consumeUntilClose(segs, seg.TagName)
			seg.Children = children
			if end != nil {
				seg.Children = append(seg.Children, end)
				seg.Op = end.Op
			}
		}
		out = append(out, seg)
	}
	return out, segs
}

// consumeUntilClose scans segs for the end tag matching name, recursively
// folding any nested elements encountered along the way, and returns the
// children gathered before the close tag, the remaining unconsumed
// segments after it, and the close-tag segment itself (nil if segs ran out
// first, i.e. the element was never closed).
func consumeUntilClose(segs []*DiffSeg, name string) ([]*DiffSeg, []*DiffSeg, *DiffSeg) {
	var children []*DiffSeg
	for len(segs) > 0 {
		seg := segs[0]
		if seg.IsTag && !seg.IsStartTag && seg.TagName == name {
			return children, segs[1:], seg
		}
		segs = segs[1:]
		if seg.IsTag && seg.IsStartTag && !seg.SelfClosing {
			var nested []*DiffSeg
			var end *DiffSeg
			nested, segs, end = consumeUntilClose(segs, seg.TagName)
			seg.Children = nested
			if end != nil {
				seg.Children = append(seg.Children, end)
				seg.Op = end.Op
			}
		}
		children = append(children, seg)
	}
	return children, segs, nil
}

// childrenMatch reports whether every segment of seg's subtree (including
// seg itself) shares the same operation.
func childrenMatch(seg *DiffSeg) bool {
	op := seg.Op
	var walk func(*DiffSeg) bool
	walk = func(s *DiffSeg) bool {
		if s.Op != op {
			return false
		}
		for _, c := range s.Children {
			if !walk(c) {
				return false
			}
		}
		return true
	}
	return walk(seg)
}

// rawText concatenates a segment's own text with all descendants' text, in
// document order.
func rawText(seg *DiffSeg) string {
	var buf strings.Builder
	var walk func(*DiffSeg)
	walk = func(s *DiffSeg) {
		buf.WriteString(s.Text)
		for _, c := range s.Children {
			walk(c)
		}
	}
	walk(seg)
	return buf.String()
}

func emit(buf *strings.Builder, seg *DiffSeg, formatter Formatter) {
	if !seg.IsTag {
		buf.WriteString(formatter(seg.Text, seg.Op))
		return
	}
	if len(seg.Children) == 0 {
		buf.WriteString(formatter(seg.Text, seg.Op))
		return
	}
	if childrenMatch(seg) {
		buf.WriteString(formatter(rawText(seg), seg.Op))
		return
	}
	// Mixed-operation subtree: the opening tag text is raw, children are
	// coalesced into maximal uniform-operation runs, mixed subtrees recurse.
	buf.WriteString(seg.Text)
	emitChildren(buf, seg.Children, formatter)
}

func emitChildren(buf *strings.Builder, children []*DiffSeg, formatter Formatter) {
	i := 0
	for i < len(children) {
		c := children[i]
		if !childrenMatch(c) {
			emit(buf, c, formatter)
			i++
			continue
		}
		op := c.Op
		j := i
		var buf2 strings.Builder
		for j < len(children) && childrenMatch(children[j]) && children[j].Op == op {
			buf2.WriteString(rawText(children[j]))
			j++
		}
		buf.WriteString(formatter(buf2.String(), op))
		i = j
	}
}
