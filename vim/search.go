package vim

import (
	"regexp"

	"github.com/coppermine/textkit/textstore"
)

// Matches caches the hits of the last text search, the state behind
// '/', '?', '*', '#' and the 'n' and 'N' repeats. The whole text is
// scanned once per term and the hit list reused until the term
// changes. A repeat past the outermost hit reports not-applicable; a
// multiplier that overshoots the list lands on the outermost hit.
//
// The pattern is a regular expression. Matching streams over the
// store's chunks, so a search never copies the document.
type Matches struct {
	Term string
	Dir  int
	// Tmp marks a search made while the pattern is still being typed.
	// The caller clears it by searching the term again with tmp false;
	// neither way rescans.
	Tmp  bool
	Idx  int
	List []textstore.ByteRange
}

// SearchForward is '/': onto the next match of the pattern.
func (m *Matches) SearchForward(v View, mul int, term string, tmp bool) (textstore.Position, bool) {
	return m.search(v, mul, term, 1, tmp)
}

// SearchBack is '?': onto the previous match of the pattern.
func (m *Matches) SearchBack(v View, mul int, term string, tmp bool) (textstore.Position, bool) {
	return m.search(v, mul, term, -1, tmp)
}

// SearchWordForward is '*': forward for the word under the cursor,
// matched whole.
func (m *Matches) SearchWordForward(v View, mul int) (textstore.Position, bool) {
	term, ok := wordTerm(v)
	if !ok {
		return textstore.Position{}, false
	}
	return m.search(v, mul, term, 1, false)
}

// SearchWordBack is '#': backward for the word under the cursor,
// matched whole.
func (m *Matches) SearchWordBack(v View, mul int) (textstore.Position, bool) {
	term, ok := wordTerm(v)
	if !ok {
		return textstore.Position{}, false
	}
	return m.search(v, mul, term, -1, false)
}

// Repeat is 'n': the last search again, same direction.
func (m *Matches) Repeat(v View, mul int) (textstore.Position, bool) {
	if m.Term == "" {
		return textstore.Position{}, false
	}
	return m.landing(v, mul, m.Dir)
}

// RepeatRev is 'N': the last search again, opposite direction.
func (m *Matches) RepeatRev(v View, mul int) (textstore.Position, bool) {
	if m.Term == "" {
		return textstore.Position{}, false
	}
	return m.landing(v, mul, -m.Dir)
}

func wordTerm(v View) (string, bool) {
	word := v.Slice(v.WordAt(v.Cursor()))
	if word == "" {
		return "", false
	}
	return `\b` + regexp.QuoteMeta(word) + `\b`, true
}

func (m *Matches) search(v View, mul int, term string, dir int, tmp bool) (textstore.Position, bool) {
	if !m.update(v, term) {
		return textstore.Position{}, false
	}
	m.Dir = dir
	m.Tmp = tmp
	return m.landing(v, mul, dir)
}

// update rescans the text when the term changed. A cursor move alone
// never invalidates the hit list.
func (m *Matches) update(v View, term string) bool {
	if m.Term == term {
		return true
	}
	re, err := regexp.Compile(term)
	if err != nil {
		return false
	}
	m.Term = term
	m.Idx = 0
	m.List = m.List[:0]
	n := v.LenBytes()
	off := 0
	for off <= n {
		loc := re.FindReaderIndex(v.ReaderAt(textstore.Bytes(off, n)))
		if loc == nil {
			break
		}
		start, end := off+loc[0], off+loc[1]
		m.List = append(m.List, textstore.Bytes(start, end))
		if end == start {
			end++
		}
		off = end
	}
	return true
}

func (m *Matches) landing(v View, mul, dir int) (textstore.Position, bool) {
	if len(m.List) == 0 {
		return textstore.Position{}, false
	}
	cb := v.ByteAt(v.Cursor())
	i, ok := m.idxFrom(cb, dir, effMul(mul))
	if !ok {
		return textstore.Position{}, false
	}
	m.Idx = i
	return v.PosAt(m.List[i].Start), true
}

// idxFrom picks the mul-th hit in direction dir from the cursor byte.
// Forward candidates start past the cursor, backward candidates end
// before it. No hit in the direction fails; a multiplier overshooting
// the list clamps to the outermost hit.
func (m *Matches) idxFrom(cb, dir, mul int) (int, bool) {
	if dir > 0 {
		for i, h := range m.List {
			if h.Start > cb {
				if i+mul-1 < len(m.List) {
					return i + mul - 1, true
				}
				return len(m.List) - 1, true
			}
		}
		return 0, false
	}
	for i := len(m.List) - 1; i >= 0; i-- {
		if m.List[i].End < cb {
			if i-(mul-1) > 0 {
				return i - (mul - 1), true
			}
			return 0, true
		}
	}
	return 0, false
}
