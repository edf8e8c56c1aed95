// Package vim implements vi style motions and queries over an editing
// core: word and paragraph movement, bracket matching, character finds
// and text search. Motions never mutate; they compute the position a
// command would move to, so the caller can move the cursor, extend a
// selection or feed an operator with it.
//
// Every motion takes a multiplier. Word, line and paragraph motions
// are all or nothing: when fewer repetitions than asked for are
// possible, they report ok == false and the cursor should stay put.
// Character finds and searches clamp an overshooting multiplier to the
// outermost hit instead, and fail only when no hit lies in the
// direction at all. A multiplier below one counts as one.
package vim

import (
	"github.com/coppermine/textkit/grapheme"
	"github.com/coppermine/textkit/textstore"
)

// View is the read-only surface motions work against. *textcore.Core
// satisfies it.
type View interface {
	Cursor() textstore.Position
	LenBytes() int
	LenLines() int
	LineWidth(line int) int
	LineGraphemes(line int) *grapheme.Cursor
	GraphemesAt(pos textstore.Position) *grapheme.Cursor
	ByteAt(pos textstore.Position) int
	PosAt(off int) textstore.Position
	ReaderAt(br textstore.ByteRange) *textstore.Reader
	WordAt(pos textstore.Position) textstore.Range
	Slice(r textstore.Range) string
}

func effMul(mul int) int {
	if mul < 1 {
		return 1
	}
	return mul
}

// charClass divides text into the three vi word classes.
type charClass int

const (
	classWhite charClass = iota
	classWord
	classOther
)

// classOf classifies for the small word motions: letters, digits and
// the underscore form words.
func classOf(g grapheme.Grapheme) charClass {
	switch {
	case g.IsWhitespace():
		return classWhite
	case g.IsAlphanumeric() || g.Is("_"):
		return classWord
	default:
		return classOther
	}
}

// bigClassOf classifies for the WORD motions: anything non-blank is
// one class.
func bigClassOf(g grapheme.Grapheme) charClass {
	if g.IsWhitespace() {
		return classWhite
	}
	return classWord
}
