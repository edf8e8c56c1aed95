// Package grapheme segments text into user-perceived characters.
//
// A Grapheme is one cluster (possibly several code points, e.g. a base
// character plus combining marks) together with its byte span in the
// surrounding document. Cursor walks clusters forward and backward over
// any chunked text source.
package grapheme

import (
	"unicode"

	"github.com/mattn/go-runewidth"
)

// Grapheme is one grapheme cluster and its absolute byte span.
type Grapheme struct {
	text  string
	start int
	end   int
}

// New creates a grapheme from its text and absolute byte span.
func New(text string, start, end int) Grapheme {
	return Grapheme{text: text, start: start, end: end}
}

// String returns the cluster's text.
func (g Grapheme) String() string {
	return g.text
}

// Start returns the byte offset of the cluster's first byte.
func (g Grapheme) Start() int {
	return g.start
}

// End returns the byte offset just past the cluster's last byte.
func (g Grapheme) End() int {
	return g.end
}

// Len returns the cluster's length in bytes.
func (g Grapheme) Len() int {
	return g.end - g.start
}

// Is reports content equality with s. Spans are not compared, so a
// caller can test for separators with g.Is(":").
func (g Grapheme) Is(s string) bool {
	return g.text == s
}

// IsRune reports whether the cluster is exactly the single rune r.
func (g Grapheme) IsRune(r rune) bool {
	return g.text == string(r)
}

// IsWhitespace reports whether the cluster's base character is Unicode
// whitespace. Line breaks count as whitespace here; use IsLineBreak to
// tell them apart.
func (g Grapheme) IsWhitespace() bool {
	for _, r := range g.text {
		return unicode.IsSpace(r)
	}
	return false
}

// IsAlphanumeric reports whether the cluster's base character is a
// letter or a digit.
func (g Grapheme) IsAlphanumeric() bool {
	for _, r := range g.text {
		return unicode.IsLetter(r) || unicode.IsNumber(r)
	}
	return false
}

// IsLineBreak reports whether the cluster terminates a line. A lone
// carriage return is a terminator of its own; "\r\n" is a single
// cluster and a single terminator.
func (g Grapheme) IsLineBreak() bool {
	switch g.text {
	case "\n", "\r", "\r\n":
		return true
	}
	return false
}

// Width returns the cluster's display width in terminal cells.
// ASCII is 1, CJK and emoji are 2, combining marks add nothing.
func (g Grapheme) Width() int {
	return runewidth.StringWidth(g.text)
}
