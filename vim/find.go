package vim

import "github.com/coppermine/textkit/textstore"

// Finds caches the hits of the last character find, the state behind
// 'f', 't', 'F', 'T' and the ';' and ',' repeats. The hit list belongs
// to one line and is rebuilt when the term or the cursor's line
// changes.
type Finds struct {
	Term string
	Line int
	Dir  int
	Till bool
	Idx  int
	List []textstore.ByteRange
}

// FindForward is 'f': onto the next occurrence of term on the line.
func (f *Finds) FindForward(v View, mul int, term string) (textstore.Position, bool) {
	return f.find(v, mul, term, 1, false)
}

// FindBack is 'F': onto the previous occurrence of term on the line.
func (f *Finds) FindBack(v View, mul int, term string) (textstore.Position, bool) {
	return f.find(v, mul, term, -1, false)
}

// TillForward is 't': just before the next occurrence of term.
func (f *Finds) TillForward(v View, mul int, term string) (textstore.Position, bool) {
	return f.find(v, mul, term, 1, true)
}

// TillBack is 'T': just after the previous occurrence of term.
func (f *Finds) TillBack(v View, mul int, term string) (textstore.Position, bool) {
	return f.find(v, mul, term, -1, true)
}

// Repeat is ';': the last find again, same direction.
func (f *Finds) Repeat(v View, mul int) (textstore.Position, bool) {
	if f.Term == "" {
		return textstore.Position{}, false
	}
	f.update(v, f.Term, v.Cursor().Line)
	return f.landing(v, mul, f.Dir)
}

// RepeatRev is ',': the last find again, opposite direction. The
// stored direction stays as it was, so a following ';' is unaffected.
func (f *Finds) RepeatRev(v View, mul int) (textstore.Position, bool) {
	if f.Term == "" {
		return textstore.Position{}, false
	}
	f.update(v, f.Term, v.Cursor().Line)
	return f.landing(v, mul, -f.Dir)
}

func (f *Finds) find(v View, mul int, term string, dir int, till bool) (textstore.Position, bool) {
	if term == "" {
		return textstore.Position{}, false
	}
	f.update(v, term, v.Cursor().Line)
	f.Dir, f.Till = dir, till
	return f.landing(v, mul, dir)
}

func (f *Finds) update(v View, term string, line int) {
	if f.Term == term && f.Line == line {
		return
	}
	f.Term, f.Line = term, line
	f.Idx = 0
	f.List = f.List[:0]
	it := v.LineGraphemes(line)
	for {
		g, ok := it.Next()
		if !ok || g.IsLineBreak() {
			return
		}
		if g.Is(term) {
			f.List = append(f.List, textstore.Bytes(g.Start(), g.End()))
		}
	}
}

func (f *Finds) landing(v View, mul, dir int) (textstore.Position, bool) {
	cb := v.ByteAt(v.Cursor())
	i, ok := f.idxFrom(cb, dir, effMul(mul))
	if !ok {
		return textstore.Position{}, false
	}
	f.Idx = i
	hit := f.List[i]
	if !f.Till {
		return v.PosAt(hit.Start), true
	}
	if dir > 0 {
		cur := v.GraphemesAt(v.PosAt(hit.Start))
		g, ok := cur.PeekPrev()
		if !ok || g.IsLineBreak() {
			return textstore.Position{}, false
		}
		return v.PosAt(g.Start()), true
	}
	return v.PosAt(hit.End), true
}

// idxFrom picks the mul-th hit in direction dir from the cursor byte.
// Forward candidates start past the cursor, backward candidates end
// before it. No hit in the direction fails; a multiplier overshooting
// the list clamps to the outermost hit.
func (f *Finds) idxFrom(cb, dir, mul int) (int, bool) {
	base := cb
	if dir < 0 && f.Till && f.Idx < len(f.List) && f.List[f.Idx].End == base {
		// After a backward till the cursor sits just past the current
		// hit; searching from there would find that hit forever, so
		// restart from the hit itself.
		base = f.List[f.Idx].Start
	}
	if dir > 0 {
		for i, h := range f.List {
			if h.Start > base {
				if i+mul-1 < len(f.List) {
					return i + mul - 1, true
				}
				return len(f.List) - 1, true
			}
		}
		return 0, false
	}
	for i := len(f.List) - 1; i >= 0; i-- {
		if f.List[i].End < base {
			if i-(mul-1) > 0 {
				return i - (mul - 1), true
			}
			return 0, true
		}
	}
	return 0, false
}
