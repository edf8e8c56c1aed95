// Package textstore provides the storage layer for editable text: a
// (column, line) position model in grapheme units and two
// interchangeable backends, a flat string for small buffers and a rope
// for large ones.
package textstore

import "fmt"

// Position is a logical text position: Col counts grapheme clusters
// from the start of the line, Line counts lines from the top. Ordering
// is lexicographic, line first.
type Position struct {
	Col  int
	Line int
}

// Pos is shorthand for Position{Col: col, Line: line}.
func Pos(col, line int) Position {
	return Position{Col: col, Line: line}
}

// Less reports whether p sorts before q.
func (p Position) Less(q Position) bool {
	if p.Line != q.Line {
		return p.Line < q.Line
	}
	return p.Col < q.Col
}

// String renders the position as "col:line".
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Col, p.Line)
}

// Range is a half-open position range with Start <= End. A range with
// Start == End is a caret.
type Range struct {
	Start Position
	End   Position
}

// NewRange builds a range from two endpoints in either order.
func NewRange(a, b Position) Range {
	if b.Less(a) {
		a, b = b, a
	}
	return Range{Start: a, End: b}
}

// IsEmpty reports whether the range is a caret.
func (r Range) IsEmpty() bool {
	return r.Start == r.End
}

// Contains reports whether p lies within the range.
func (r Range) Contains(p Position) bool {
	return !p.Less(r.Start) && p.Less(r.End)
}

// String renders the range as "start-end".
func (r Range) String() string {
	return fmt.Sprintf("%v-%v", r.Start, r.End)
}

// Expand returns o adjusted for an insertion covering r.
func (r Range) Expand(o Range) Range {
	return Range{Start: r.ExpandPos(o.Start), End: r.ExpandPos(o.End)}
}

// ExpandPos returns p adjusted for an insertion covering r: positions
// at or after the insertion point shift by the inserted extent.
func (r Range) ExpandPos(p Position) Position {
	deltaLines := r.End.Line - r.Start.Line
	switch {
	case p.Less(r.Start):
		return p
	case p == r.Start:
		return r.End
	case p.Line > r.Start.Line:
		return Position{Col: p.Col, Line: p.Line + deltaLines}
	case p.Line == r.Start.Line && p.Col >= r.Start.Col:
		return Position{Col: p.Col - r.Start.Col + r.End.Col, Line: p.Line + deltaLines}
	default:
		return p
	}
}

// Shrink returns o adjusted for a deletion covering r.
func (r Range) Shrink(o Range) Range {
	return Range{Start: r.ShrinkPos(o.Start), End: r.ShrinkPos(o.End)}
}

// ShrinkPos returns p adjusted for a deletion covering r: positions
// inside the deleted range collapse to its start, later positions
// shift back.
func (r Range) ShrinkPos(p Position) Position {
	deltaLines := r.End.Line - r.Start.Line
	switch {
	case p.Less(r.Start):
		return p
	case !r.End.Less(p):
		return r.Start
	case p.Line > r.End.Line:
		return Position{Col: p.Col, Line: p.Line - deltaLines}
	case p.Line == r.End.Line && p.Col >= r.End.Col:
		return Position{Col: p.Col - r.End.Col + r.Start.Col, Line: p.Line - deltaLines}
	default:
		return p
	}
}

// ByteRange is a half-open byte offset range.
type ByteRange struct {
	Start int
	End   int
}

// Bytes is shorthand for ByteRange{Start: start, End: end}.
func Bytes(start, end int) ByteRange {
	return ByteRange{Start: start, End: end}
}

// Len returns the range's length in bytes.
func (b ByteRange) Len() int {
	return b.End - b.Start
}

// IsEmpty reports whether the range is empty.
func (b ByteRange) IsEmpty() bool {
	return b.Start >= b.End
}

// Contains reports whether off lies within the range.
func (b ByteRange) Contains(off int) bool {
	return off >= b.Start && off < b.End
}

// Intersects reports whether the two ranges overlap in at least one byte.
func (b ByteRange) Intersects(o ByteRange) bool {
	return b.Start < o.End && o.Start < b.End
}

// ExpandedBy returns o adjusted for the insertion covering ins.
func ExpandedBy(ins ByteRange, o ByteRange) ByteRange {
	n := ins.Len()
	if o.Start >= ins.Start {
		o.Start += n
	}
	if o.End >= ins.Start {
		o.End += n
	}
	return o
}

// ShrunkBy returns o adjusted for the deletion covering del.
func ShrunkBy(del ByteRange, o ByteRange) ByteRange {
	o.Start = shrinkOff(del, o.Start)
	o.End = shrinkOff(del, o.End)
	return o
}

func shrinkOff(del ByteRange, off int) int {
	switch {
	case off < del.Start:
		return off
	case off <= del.End:
		return del.Start
	default:
		return off - del.Len()
	}
}
