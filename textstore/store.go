package textstore

import (
	"strings"

	"github.com/rivo/uniseg"

	"github.com/coppermine/textkit/grapheme"
)

// Store is the contract shared by the two text backends. Content is
// always valid UTF-8; line separators are "\n", "\r" or "\r\n"; every
// mutation is atomic and reports the exact position range and byte
// range it touched.
//
// All coordinate lookups return typed errors for out-of-bounds input
// (ColumnIndexError, LineIndexError, ByteIndexError); they never clamp
// and never panic.
type Store interface {
	// String returns the full content.
	String() string
	// SetString replaces the full content.
	SetString(t string)

	// LenBytes returns the content length in bytes.
	LenBytes() int
	// LenLines returns the number of lines, separators + 1.
	LenLines() int
	// HasFinalNewline reports whether the content ends with a separator.
	HasFinalNewline() bool

	// LineWidth returns the grapheme count of a line, excluding its
	// terminator.
	LineWidth(line int) (int, error)
	// LineAt returns a line including its trailing separator, if any.
	LineAt(line int) (string, error)
	// LinesAt iterates lines starting at line. Restart by calling again.
	LinesAt(line int) (*LineIter, error)

	// ByteRangeAt returns the byte span of the grapheme at pos. At the
	// end of a line (pos.Col == LineWidth) it returns the empty span of
	// the insert position there.
	ByteRangeAt(pos Position) (ByteRange, error)
	// ByteRange returns the byte span covering the whole range.
	ByteRange(r Range) (ByteRange, error)
	// ByteToPos returns the position whose grapheme contains the byte
	// offset.
	ByteToPos(off int) (Position, error)
	// BytesToRange converts a byte range to a position range.
	BytesToRange(br ByteRange) (Range, error)

	// StrSlice returns the text of a position range.
	StrSlice(r Range) (string, error)
	// StrSliceByte returns the text of a byte range.
	StrSliceByte(br ByteRange) (string, error)

	// LineGraphemes returns a cursor over one line's graphemes,
	// including the trailing separator.
	LineGraphemes(line int) (*grapheme.Cursor, error)
	// GraphemesByte returns a cursor over the byte range, positioned at
	// the absolute offset pos.
	GraphemesByte(br ByteRange, pos int) (*grapheme.Cursor, error)
	// ReaderAt returns a rune reader streaming the byte range.
	ReaderAt(br ByteRange) (*Reader, error)

	// InsertChar inserts one rune. Inserting '\n' directly after a lone
	// '\r', or '\r' directly before a lone '\n', coalesces into a
	// single two-byte terminator; the returned ranges reflect that.
	InsertChar(pos Position, ch rune) (Range, ByteRange, error)
	// InsertStr inserts a string.
	InsertStr(pos Position, t string) (Range, ByteRange, error)
	// Remove deletes a range and returns the removed text.
	Remove(r Range) (string, Range, ByteRange, error)

	// InsertBytes splices raw text at a byte offset. Undo/redo only.
	InsertBytes(off int, t string) error
	// RemoveBytes removes a raw byte range. Undo/redo only.
	RemoveBytes(br ByteRange) error

	sealed()
}

// backend is the minimal surface each storage implementation provides;
// the shared contract logic is built on top of it.
type backend interface {
	source() grapheme.Source
	lenBytes() int
	// sepCount returns the number of line separators, "\r\n" counting
	// once.
	sepCount() int
	// lineToByte returns the byte offset of the start of line. line is
	// 0..sepCount()+1; one past the last line yields lenBytes.
	lineToByte(line int) int
	// byteToLine returns the line containing the byte offset.
	byteToLine(off int) int
	sliceBytes(br ByteRange) string
	insertBytes(off int, t string)
	removeBytes(br ByteRange) string
}

// contract implements the Store methods shared by both backends.
type contract struct {
	b backend
}

func (c *contract) sealed() {}

// LenBytes returns the content length in bytes.
func (c *contract) LenBytes() int {
	return c.b.lenBytes()
}

// LenLines returns the number of lines, separators + 1.
func (c *contract) LenLines() int {
	return c.b.sepCount() + 1
}

// HasFinalNewline reports whether the content ends with a separator.
func (c *contract) HasFinalNewline() bool {
	n := c.b.lenBytes()
	if n == 0 {
		return false
	}
	last := c.b.sliceBytes(Bytes(n-1, n))
	return last == "\n" || last == "\r"
}

// LineGraphemes returns a cursor over one line's graphemes, including
// the trailing separator.
func (c *contract) LineGraphemes(line int) (*grapheme.Cursor, error) {
	n := c.LenLines()
	if line < 0 || line > n {
		return nil, &LineIndexError{Requested: line, Max: n}
	}
	start := c.b.lineToByte(line)
	end := start
	if line < n {
		end = c.b.lineToByte(line + 1)
	}
	return grapheme.NewCursor(c.b.source(), start, end, start), nil
}

// LineWidth returns the grapheme count of a line excluding its
// terminator.
func (c *contract) LineWidth(line int) (int, error) {
	it, err := c.LineGraphemes(line)
	if err != nil {
		return 0, err
	}
	width := 0
	for {
		g, ok := it.Next()
		if !ok {
			break
		}
		if g.IsLineBreak() {
			break
		}
		width++
	}
	return width, nil
}

// LineAt returns a line including its trailing separator, if any.
func (c *contract) LineAt(line int) (string, error) {
	n := c.LenLines()
	if line < 0 || line > n {
		return "", &LineIndexError{Requested: line, Max: n}
	}
	if line == n {
		return "", nil
	}
	return c.b.sliceBytes(Bytes(c.b.lineToByte(line), c.b.lineToByte(line+1))), nil
}

// LineIter iterates lines forward. It is restartable by requesting a
// fresh iterator from LinesAt.
type LineIter struct {
	c    *contract
	line int
}

// Next returns the next line and advances, or ok == false past the end.
func (it *LineIter) Next() (string, bool) {
	if it.line >= it.c.LenLines() {
		return "", false
	}
	s, err := it.c.LineAt(it.line)
	if err != nil {
		return "", false
	}
	it.line++
	return s, true
}

// Line returns the index of the line Next will return.
func (it *LineIter) Line() int {
	return it.line
}

// LinesAt iterates lines starting at line.
func (c *contract) LinesAt(line int) (*LineIter, error) {
	n := c.LenLines()
	if line < 0 || line > n {
		return nil, &LineIndexError{Requested: line, Max: n}
	}
	return &LineIter{c: c, line: line}, nil
}

// ByteRangeAt returns the byte span of the grapheme at pos. The end of
// a line maps to the empty span of the insert position there.
func (c *contract) ByteRangeAt(pos Position) (ByteRange, error) {
	it, err := c.LineGraphemes(pos.Line)
	if err != nil {
		return ByteRange{}, err
	}
	col := 0
	end := it.Offset()
	for {
		g, ok := it.Next()
		if !ok {
			break
		}
		if col == pos.Col {
			if g.IsLineBreak() {
				return Bytes(g.Start(), g.Start()), nil
			}
			return Bytes(g.Start(), g.End()), nil
		}
		col++
		end = g.End()
	}
	// One past the last grapheme is the insert position at the very end.
	if col == pos.Col {
		return Bytes(end, end), nil
	}
	return ByteRange{}, &ColumnIndexError{Requested: pos.Col, Max: col}
}

// ByteRange returns the byte span covering the whole range.
func (c *contract) ByteRange(r Range) (ByteRange, error) {
	sb, err := c.ByteRangeAt(r.Start)
	if err != nil {
		return ByteRange{}, err
	}
	eb, err := c.ByteRangeAt(r.End)
	if err != nil {
		return ByteRange{}, err
	}
	return Bytes(sb.Start, eb.Start), nil
}

// ByteToPos returns the position whose grapheme contains the byte
// offset.
func (c *contract) ByteToPos(off int) (Position, error) {
	if off < 0 || off > c.b.lenBytes() {
		return Position{}, &ByteIndexError{Requested: off, Max: c.b.lenBytes()}
	}
	line := c.b.byteToLine(off)
	it, err := c.LineGraphemes(line)
	if err != nil {
		return Position{}, err
	}
	col := 0
	for {
		g, ok := it.Next()
		if !ok {
			break
		}
		if off < g.End() {
			break
		}
		col++
	}
	return Pos(col, line), nil
}

// BytesToRange converts a byte range to a position range.
func (c *contract) BytesToRange(br ByteRange) (Range, error) {
	start, err := c.ByteToPos(br.Start)
	if err != nil {
		return Range{}, err
	}
	end, err := c.ByteToPos(br.End)
	if err != nil {
		return Range{}, err
	}
	return NewRange(start, end), nil
}

// StrSlice returns the text of a position range.
func (c *contract) StrSlice(r Range) (string, error) {
	br, err := c.ByteRange(r)
	if err != nil {
		return "", err
	}
	return c.b.sliceBytes(br), nil
}

// StrSliceByte returns the text of a byte range.
func (c *contract) StrSliceByte(br ByteRange) (string, error) {
	if br.Start < 0 || br.End > c.b.lenBytes() || br.Start > br.End {
		return "", &ByteIndexError{Requested: br.End, Max: c.b.lenBytes()}
	}
	return c.b.sliceBytes(br), nil
}

// GraphemesByte returns a cursor over the byte range positioned at pos.
func (c *contract) GraphemesByte(br ByteRange, pos int) (*grapheme.Cursor, error) {
	if br.Start < 0 || br.End > c.b.lenBytes() || br.Start > br.End {
		return nil, &ByteIndexError{Requested: br.End, Max: c.b.lenBytes()}
	}
	if pos < br.Start || pos > br.End {
		return nil, &ByteIndexError{Requested: pos, Max: br.End}
	}
	return grapheme.NewCursor(c.b.source(), br.Start, br.End, pos), nil
}

// InsertChar inserts one rune and returns the affected ranges,
// coalescing a '\r'+'\n' pair into one terminator.
func (c *contract) InsertChar(pos Position, ch rune) (Range, ByteRange, error) {
	posB, err := c.ByteRangeAt(pos)
	if err != nil {
		return Range{}, ByteRange{}, err
	}
	at := posB.Start

	// A column one past a line that lacks its terminator maps to the
	// very end of the text; re-derive the canonical position so the
	// returned range is consistent.
	if at == c.b.lenBytes() && at > 0 {
		cur := grapheme.NewCursor(c.b.source(), 0, at, at)
		if g, ok := cur.PeekPrev(); ok && !g.IsLineBreak() {
			pos, _ = c.ByteToPos(at)
		}
	}

	cur := grapheme.NewCursor(c.b.source(), 0, c.b.lenBytes(), at)
	prev, hasPrev := cur.PeekPrev()
	next, hasNext := cur.PeekNext()

	var ins Range
	switch {
	case ch == '\n':
		if hasPrev && prev.Is("\r") {
			ins = Range{Start: pos, End: pos}
		} else {
			ins = Range{Start: pos, End: Pos(0, pos.Line+1)}
		}
	case ch == '\r':
		if hasNext && next.Is("\n") {
			ins = Range{Start: pos, End: pos}
		} else {
			ins = Range{Start: pos, End: Pos(0, pos.Line+1)}
		}
	default:
		// The new rune may combine with either neighbor into a single
		// cluster; compare cluster counts to find out.
		parts := 1
		var buf strings.Builder
		if hasPrev {
			parts++
			buf.WriteString(prev.String())
		}
		buf.WriteRune(ch)
		if hasNext {
			parts++
			buf.WriteString(next.String())
		}
		if uniseg.GraphemeClusterCount(buf.String()) == parts {
			ins = Range{Start: pos, End: Pos(pos.Col+1, pos.Line)}
		} else {
			ins = Range{Start: pos, End: pos}
		}
	}

	c.b.insertBytes(at, string(ch))
	return ins, Bytes(at, at+len(string(ch))), nil
}

// InsertStr inserts a string and returns the affected ranges.
func (c *contract) InsertStr(pos Position, t string) (Range, ByteRange, error) {
	posB, err := c.ByteRangeAt(pos)
	if err != nil {
		return Range{}, ByteRange{}, err
	}
	at := posB.Start

	// Both ends of the range are measured by byte offset, the start
	// before and the end after the splice. That keeps the range
	// consistent with the resulting text when clusters combine at the
	// seams, including a leading '\n' joining a lone '\r' already in
	// front of it.
	start, err := c.ByteToPos(at)
	if err != nil {
		return Range{}, ByteRange{}, err
	}
	c.b.insertBytes(at, t)
	end, err := c.ByteToPos(at + len(t))
	if err != nil {
		return Range{}, ByteRange{}, err
	}
	return Range{Start: start, End: end}, Bytes(at, at+len(t)), nil
}

// Remove deletes a range and returns the removed text.
func (c *contract) Remove(r Range) (string, Range, ByteRange, error) {
	sb, err := c.ByteRangeAt(r.Start)
	if err != nil {
		return "", Range{}, ByteRange{}, err
	}
	eb, err := c.ByteRangeAt(r.End)
	if err != nil {
		return "", Range{}, ByteRange{}, err
	}
	br := Bytes(sb.Start, eb.Start)
	old := c.b.removeBytes(br)
	return old, r, br, nil
}

// InsertBytes splices raw text at a byte offset. Undo/redo only.
func (c *contract) InsertBytes(off int, t string) error {
	if off < 0 || off > c.b.lenBytes() {
		return &ByteIndexError{Requested: off, Max: c.b.lenBytes()}
	}
	c.b.insertBytes(off, t)
	return nil
}

// RemoveBytes removes a raw byte range. Undo/redo only.
func (c *contract) RemoveBytes(br ByteRange) error {
	if br.Start < 0 || br.End > c.b.lenBytes() || br.Start > br.End {
		return &ByteIndexError{Requested: br.End, Max: c.b.lenBytes()}
	}
	c.b.removeBytes(br)
	return nil
}

// countLineBreaks counts line separators in t, "\r\n" counting once.
func countLineBreaks(t string) (breaks int) {
	for i := 0; i < len(t); i++ {
		switch t[i] {
		case '\n':
			breaks++
		case '\r':
			breaks++
			if i+1 < len(t) && t[i+1] == '\n' {
				i++
			}
		}
	}
	return breaks
}
