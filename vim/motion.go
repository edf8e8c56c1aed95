package vim

import (
	"github.com/coppermine/textkit/grapheme"
	"github.com/coppermine/textkit/textstore"
)

type classifier func(grapheme.Grapheme) charClass

// skipNext advances over clusters of class cls.
func skipNext(cur *grapheme.Cursor, class classifier, cls charClass) {
	for {
		g, ok := cur.PeekNext()
		if !ok || class(g) != cls {
			return
		}
		cur.Next()
	}
}

// skipPrev retreats over clusters of class cls.
func skipPrev(cur *grapheme.Cursor, class classifier, cls charClass) {
	for {
		g, ok := cur.PeekPrev()
		if !ok || class(g) != cls {
			return
		}
		cur.Prev()
	}
}

func nextWordStart(v View, mul int, class classifier) (textstore.Position, bool) {
	cur := v.GraphemesAt(v.Cursor())
	for i := 0; i < effMul(mul); i++ {
		g, ok := cur.Next()
		if !ok {
			return textstore.Position{}, false
		}
		if cls := class(g); cls != classWhite {
			skipNext(cur, class, cls)
		}
		skipNext(cur, class, classWhite)
		// A word must start here; running off the end fails the step.
		if _, ok := cur.PeekNext(); !ok {
			return textstore.Position{}, false
		}
	}
	return v.PosAt(cur.Offset()), true
}

func nextWordEnd(v View, mul int, class classifier) (textstore.Position, bool) {
	cur := v.GraphemesAt(v.Cursor())
	for i := 0; i < effMul(mul); i++ {
		if _, ok := cur.Next(); !ok {
			return textstore.Position{}, false
		}
		skipNext(cur, class, classWhite)
		g, ok := cur.PeekNext()
		if !ok {
			return textstore.Position{}, false
		}
		skipNext(cur, class, class(g))
		// Land on the run's last cluster, not past it.
		cur.Prev()
	}
	return v.PosAt(cur.Offset()), true
}

func prevWordStart(v View, mul int, class classifier) (textstore.Position, bool) {
	cur := v.GraphemesAt(v.Cursor())
	for i := 0; i < effMul(mul); i++ {
		if _, ok := cur.Prev(); !ok {
			return textstore.Position{}, false
		}
		skipPrev(cur, class, classWhite)
		g, ok := cur.PeekPrev()
		if !ok {
			continue
		}
		skipPrev(cur, class, class(g))
	}
	return v.PosAt(cur.Offset()), true
}

func prevWordEnd(v View, mul int, class classifier) (textstore.Position, bool) {
	cur := v.GraphemesAt(v.Cursor())
	for i := 0; i < effMul(mul); i++ {
		g, ok := cur.Prev()
		if !ok {
			return textstore.Position{}, false
		}
		if cls := class(g); cls != classWhite {
			skipPrev(cur, class, cls)
		}
		skipPrev(cur, class, classWhite)
		if _, ok := cur.PeekPrev(); !ok {
			return textstore.Position{}, false
		}
		// The cluster before the cursor is the word's last one; land on
		// it.
		cur.Prev()
	}
	return v.PosAt(cur.Offset()), true
}

// NextWordStart is the motion behind 'w'.
func NextWordStart(v View, mul int) (textstore.Position, bool) {
	return nextWordStart(v, mul, classOf)
}

// NextWordEnd is the motion behind 'e'.
func NextWordEnd(v View, mul int) (textstore.Position, bool) {
	return nextWordEnd(v, mul, classOf)
}

// PrevWordStart is the motion behind 'b'.
func PrevWordStart(v View, mul int) (textstore.Position, bool) {
	return prevWordStart(v, mul, classOf)
}

// PrevWordEnd is the motion behind 'ge'.
func PrevWordEnd(v View, mul int) (textstore.Position, bool) {
	return prevWordEnd(v, mul, classOf)
}

// NextBigWordStart is the motion behind 'W'.
func NextBigWordStart(v View, mul int) (textstore.Position, bool) {
	return nextWordStart(v, mul, bigClassOf)
}

// NextBigWordEnd is the motion behind 'E'.
func NextBigWordEnd(v View, mul int) (textstore.Position, bool) {
	return nextWordEnd(v, mul, bigClassOf)
}

// PrevBigWordStart is the motion behind 'B'.
func PrevBigWordStart(v View, mul int) (textstore.Position, bool) {
	return prevWordStart(v, mul, bigClassOf)
}

// PrevBigWordEnd is the motion behind 'gE'.
func PrevBigWordEnd(v View, mul int) (textstore.Position, bool) {
	return prevWordEnd(v, mul, bigClassOf)
}

// StartOfLine is the motion behind '0'.
func StartOfLine(v View, _ int) (textstore.Position, bool) {
	return textstore.Pos(0, v.Cursor().Line), true
}

// EndOfLine is the motion behind '$'. The landing column sits past the
// last cluster, so a deletion up to it takes the whole rest of the
// line. A multiplier moves that many lines down first.
func EndOfLine(v View, mul int) (textstore.Position, bool) {
	line := v.Cursor().Line + effMul(mul) - 1
	if line >= v.LenLines() {
		return textstore.Position{}, false
	}
	return textstore.Pos(v.LineWidth(line), line), true
}

// StartOfText is the motion behind 'gg': onto the first non-blank
// cluster of the text.
func StartOfText(v View, _ int) (textstore.Position, bool) {
	cur := v.GraphemesAt(textstore.Pos(0, 0))
	for {
		g, ok := cur.PeekNext()
		if !ok || !g.IsWhitespace() {
			break
		}
		cur.Next()
	}
	return v.PosAt(cur.Offset()), true
}

// EndOfText is the motion behind 'G' without a count.
func EndOfText(v View, _ int) (textstore.Position, bool) {
	last := v.LenLines() - 1
	return textstore.Pos(v.LineWidth(last), last), true
}

// StartOfNextLine is the motion behind '+'.
func StartOfNextLine(v View, mul int) (textstore.Position, bool) {
	line := v.Cursor().Line + effMul(mul)
	if line >= v.LenLines() {
		return textstore.Position{}, false
	}
	return textstore.Pos(0, line), true
}

// Col is the motion behind '|': jump to a column on the current line,
// clamped to the line width.
func Col(v View, col int) (textstore.Position, bool) {
	line := v.Cursor().Line
	if col < 0 {
		col = 0
	}
	if w := v.LineWidth(line); col > w {
		col = w
	}
	return textstore.Pos(col, line), true
}

// Line is the motion behind 'G' with a count: jump to a line, column
// zero.
func Line(v View, line int) (textstore.Position, bool) {
	if line < 0 || line >= v.LenLines() {
		return textstore.Position{}, false
	}
	return textstore.Pos(0, line), true
}

// LinePercent is the motion behind '%' with a count: jump to the line
// at n percent of the text, n in 1..100.
func LinePercent(v View, n int) (textstore.Position, bool) {
	if n < 1 || n > 100 {
		return textstore.Position{}, false
	}
	line := (n*v.LenLines() + 99) / 100
	if line > 0 {
		line--
	}
	return textstore.Pos(0, line), true
}

// NextParagraph is the motion behind '}': forward to the blank line
// after the next paragraph, or the last line. Each step first skips the
// blank-line run the cursor sits in, so one run counts as one boundary
// no matter how many blank lines it has.
func NextParagraph(v View, mul int) (textstore.Position, bool) {
	line := v.Cursor().Line
	last := v.LenLines() - 1
	for i := 0; i < effMul(mul); i++ {
		if line >= last {
			return textstore.Position{}, false
		}
		for line < last && v.LineWidth(line) == 0 {
			line++
		}
		for line < last && v.LineWidth(line) != 0 {
			line++
		}
	}
	return textstore.Pos(0, line), true
}

// PrevParagraph is the motion behind '{': backward to the blank line
// before the previous paragraph, or the first line. Blank runs are
// skipped whole, like NextParagraph.
func PrevParagraph(v View, mul int) (textstore.Position, bool) {
	line := v.Cursor().Line
	for i := 0; i < effMul(mul); i++ {
		if line <= 0 {
			return textstore.Position{}, false
		}
		for line > 0 && v.LineWidth(line) == 0 {
			line--
		}
		for line > 0 && v.LineWidth(line) != 0 {
			line--
		}
	}
	return textstore.Pos(0, line), true
}

var bracePairs = map[string]string{
	"(": ")",
	"[": "]",
	"{": "}",
	"<": ">",
}

var bracePairsRev = map[string]string{
	")": "(",
	"]": "[",
	"}": "{",
	">": "<",
}

// MatchingBrace is the motion behind '%' without a count: from a
// bracket at the cursor to its partner. The cluster under the cursor
// is checked first, then the one before it. The landing is the
// partner's first byte in both directions; an unbalanced scan or a
// cursor not adjacent to any bracket fails.
func MatchingBrace(v View, _ int) (textstore.Position, bool) {
	cur := v.GraphemesAt(v.Cursor())
	if g, ok := cur.PeekNext(); ok {
		if closer, isOpen := bracePairs[g.String()]; isOpen {
			cur.Next()
			return braceForward(v, cur, g.String(), closer)
		}
		if opener, isClose := bracePairsRev[g.String()]; isClose {
			return braceBack(v, cur, opener, g.String())
		}
	}
	if g, ok := cur.PeekPrev(); ok {
		if closer, isOpen := bracePairs[g.String()]; isOpen {
			return braceForward(v, cur, g.String(), closer)
		}
		if opener, isClose := bracePairsRev[g.String()]; isClose {
			cur.Prev()
			return braceBack(v, cur, opener, g.String())
		}
	}
	return textstore.Position{}, false
}

// braceForward scans for the closer balancing one already-open pair.
func braceForward(v View, cur *grapheme.Cursor, opener, closer string) (textstore.Position, bool) {
	depth := 1
	for {
		g, ok := cur.Next()
		if !ok {
			return textstore.Position{}, false
		}
		switch g.String() {
		case opener:
			depth++
		case closer:
			depth--
			if depth == 0 {
				return v.PosAt(g.Start()), true
			}
		}
	}
}

// braceBack scans for the opener balancing one already-closed pair.
func braceBack(v View, cur *grapheme.Cursor, opener, closer string) (textstore.Position, bool) {
	depth := 1
	for {
		g, ok := cur.Prev()
		if !ok {
			return textstore.Position{}, false
		}
		switch g.String() {
		case closer:
			depth++
		case opener:
			depth--
			if depth == 0 {
				return v.PosAt(g.Start()), true
			}
		}
	}
}
