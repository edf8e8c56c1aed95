package textcore

import (
	"sort"

	"github.com/coppermine/textkit/textstore"
)

// StyleRange is a byte range tagged with a caller-defined style id.
// What an id means is up to the caller; a syntax highlighter maps its
// token types to ids, a spell checker may use a single one.
type StyleRange struct {
	Range textstore.ByteRange
	Style int
}

// rangeMap keeps style ranges sorted by start offset and keeps them in
// step with edits.
type rangeMap struct {
	entries []StyleRange
}

func (m *rangeMap) clear() {
	m.entries = m.entries[:0]
}

func (m *rangeMap) set(styles []StyleRange) {
	m.entries = append(m.entries[:0], styles...)
	sort.Slice(m.entries, func(i, j int) bool {
		return styleLess(m.entries[i], m.entries[j])
	})
}

func styleLess(a, b StyleRange) bool {
	if a.Range.Start != b.Range.Start {
		return a.Range.Start < b.Range.Start
	}
	if a.Range.End != b.Range.End {
		return a.Range.End < b.Range.End
	}
	return a.Style < b.Style
}

func (m *rangeMap) add(r textstore.ByteRange, style int) {
	e := StyleRange{Range: r, Style: style}
	i := sort.Search(len(m.entries), func(i int) bool {
		return !styleLess(m.entries[i], e)
	})
	if i < len(m.entries) && m.entries[i] == e {
		return
	}
	m.entries = append(m.entries, StyleRange{})
	copy(m.entries[i+1:], m.entries[i:])
	m.entries[i] = e
}

func (m *rangeMap) remove(r textstore.ByteRange, style int) {
	e := StyleRange{Range: r, Style: style}
	i := sort.Search(len(m.entries), func(i int) bool {
		return !styleLess(m.entries[i], e)
	})
	if i >= len(m.entries) || m.entries[i] != e {
		return
	}
	m.entries = append(m.entries[:i], m.entries[i+1:]...)
}

// at returns the style ids whose ranges contain the byte offset.
func (m *rangeMap) at(off int) []int {
	var out []int
	for _, e := range m.entries {
		if e.Range.Start > off {
			break
		}
		if e.Range.Contains(off) {
			out = append(out, e.Style)
		}
	}
	return out
}

// match returns the range with the given style id containing off.
func (m *rangeMap) match(off, style int) (textstore.ByteRange, bool) {
	for _, e := range m.entries {
		if e.Range.Start > off {
			break
		}
		if e.Style == style && e.Range.Contains(off) {
			return e.Range, true
		}
	}
	return textstore.ByteRange{}, false
}

// in returns the entries intersecting the byte range.
func (m *rangeMap) in(br textstore.ByteRange) []StyleRange {
	var out []StyleRange
	for _, e := range m.entries {
		if e.Range.Start >= br.End {
			break
		}
		if e.Range.Intersects(br) {
			out = append(out, e)
		}
	}
	return out
}

// expanded shifts all entries for an insertion. Offsets move
// monotonically, so the order is preserved.
func (m *rangeMap) expanded(ins textstore.ByteRange) {
	for i := range m.entries {
		m.entries[i].Range = textstore.ExpandedBy(ins, m.entries[i].Range)
	}
}

// shrunk shifts all entries for a deletion and drops the ones the
// deletion swallowed whole.
func (m *rangeMap) shrunk(del textstore.ByteRange) {
	kept := m.entries[:0]
	for _, e := range m.entries {
		e.Range = textstore.ShrunkBy(del, e.Range)
		if !e.Range.IsEmpty() {
			kept = append(kept, e)
		}
	}
	m.entries = kept
}
