package grapheme

import (
	"strings"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// Source is random access to chunks of UTF-8 text. A flat string is a
// single chunk; a rope serves its leaves. Chunks must split only at
// rune boundaries.
type Source interface {
	// Chunk returns the chunk containing byte offset off together with
	// the absolute offset of the chunk's first byte. off == Len() may
	// return an empty chunk.
	Chunk(off int) (string, int)
	// Len returns the total byte length.
	Len() int
}

// StringSource adapts a plain string to Source.
type StringSource string

// Chunk returns the whole string.
func (s StringSource) Chunk(off int) (string, int) {
	return string(s), 0
}

// Len returns the byte length.
func (s StringSource) Len() int {
	return len(s)
}

// window is the number of bytes inspected around the cursor per step.
// It grows on demand when a single cluster exceeds it.
const window = 256

// Cursor walks grapheme clusters of a byte range within a Source, in
// both directions. It sits between clusters; Next consumes the cluster
// after it, Prev the cluster before it. At the range bounds both
// return ok == false without moving, any number of times.
//
// A Cursor borrows the source and must not outlive a mutation of it.
type Cursor struct {
	src        Source
	start, end int
	off        int
}

// NewCursor returns a cursor over the byte range [start, end) of src,
// positioned at pos. All offsets are absolute and must lie on grapheme
// boundaries within the range.
func NewCursor(src Source, start, end, pos int) *Cursor {
	if end > src.Len() {
		end = src.Len()
	}
	if start < 0 {
		start = 0
	}
	if pos < start {
		pos = start
	}
	if pos > end {
		pos = end
	}
	return &Cursor{src: src, start: start, end: end, off: pos}
}

// Offset returns the cursor's absolute byte offset.
func (c *Cursor) Offset() int {
	return c.off
}

// SkipTo moves the cursor to the absolute byte offset off, clamped to
// the cursor's range. off must be a grapheme boundary.
func (c *Cursor) SkipTo(off int) {
	if off < c.start {
		off = c.start
	}
	if off > c.end {
		off = c.end
	}
	c.off = off
}

// Next returns the cluster after the cursor and moves past it.
func (c *Cursor) Next() (Grapheme, bool) {
	g, ok := c.PeekNext()
	if ok {
		c.off = g.end
	}
	return g, ok
}

// Prev returns the cluster before the cursor and moves before it.
func (c *Cursor) Prev() (Grapheme, bool) {
	g, ok := c.PeekPrev()
	if ok {
		c.off = g.start
	}
	return g, ok
}

// PeekNext returns the cluster after the cursor without moving.
func (c *Cursor) PeekNext() (Grapheme, bool) {
	if c.off >= c.end {
		return Grapheme{}, false
	}
	size := window
	for {
		hi := c.off + size
		if hi > c.end {
			hi = c.end
		}
		win := c.slice(c.off, hi)
		cluster, _, _, _ := uniseg.StepString(win, -1)
		if len(cluster) < len(win) || hi == c.end {
			return Grapheme{text: cluster, start: c.off, end: c.off + len(cluster)}, true
		}
		// The whole window is one cluster and the range continues.
		size *= 2
	}
}

// PeekPrev returns the cluster before the cursor without moving.
func (c *Cursor) PeekPrev() (Grapheme, bool) {
	if c.off <= c.start {
		return Grapheme{}, false
	}
	size := window
	for {
		lo := c.off - size
		if lo < c.start {
			lo = c.start
		}
		win := c.slice(lo, c.off)
		// Drop partial leading bytes of a rune split by the window.
		for len(win) > 0 && !utf8.RuneStart(win[0]) {
			win = win[1:]
			lo++
		}
		// The cluster ending at the cursor is the last one in the window.
		var last string
		rest := win
		state := -1
		for len(rest) > 0 {
			var cluster string
			cluster, rest, _, state = uniseg.StepString(rest, state)
			last = cluster
		}
		if len(last) < len(win) || lo == c.start {
			return Grapheme{text: last, start: c.off - len(last), end: c.off}, true
		}
		size *= 2
	}
}

// slice assembles the text of the absolute byte range [from, to).
func (c *Cursor) slice(from, to int) string {
	chunk, base := c.src.Chunk(from)
	if base+len(chunk) >= to {
		return chunk[from-base : to-base]
	}
	var b strings.Builder
	b.Grow(to - from)
	off := from
	for off < to {
		chunk, base = c.src.Chunk(off)
		hi := len(chunk)
		if base+hi > to {
			hi = to - base
		}
		b.WriteString(chunk[off-base : hi])
		off = base + hi
	}
	return b.String()
}
