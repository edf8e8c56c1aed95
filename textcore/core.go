// Package textcore ties a text store to a cursor, a selection, a style
// overlay and an undo log. It is the editing engine a widget or a modal
// layer drives; it knows nothing about rendering or key handling.
//
// Unlike the storage layer, which returns errors for out-of-bounds
// coordinates, the core clamps every position it is given to the text.
package textcore

import (
	"strings"

	"github.com/coppermine/textkit/grapheme"
	"github.com/coppermine/textkit/textstore"
)

// Core is an editable text with cursor, selection, styles and undo.
type Core struct {
	store  textstore.Store
	cursor textstore.Position
	anchor textstore.Position

	styles rangeMap
	log    undoLog

	newline    string
	tabWidth   int
	expandTabs bool
}

// New creates an empty core backed by a rope store.
func New() *Core {
	return NewWithStore(textstore.NewTextRope(""))
}

// NewWithStore creates a core on an existing store.
func NewWithStore(s textstore.Store) *Core {
	return &Core{store: s, newline: "\n", tabWidth: 8, expandTabs: true}
}

// Store returns the underlying text store.
func (c *Core) Store() textstore.Store {
	return c.store
}

// Text returns the full text.
func (c *Core) Text() string {
	return c.store.String()
}

// SetText replaces the text and resets cursor, selection, styles and
// the undo history.
func (c *Core) SetText(t string) {
	c.store.SetString(t)
	c.cursor = textstore.Pos(0, 0)
	c.anchor = c.cursor
	c.styles.clear()
	c.log.undo = c.log.undo[:0]
	c.log.redo = c.log.redo[:0]
}

// Clear empties the text.
func (c *Core) Clear() {
	c.SetText("")
}

// SetNewline sets the separator InsertNewline inserts.
func (c *Core) SetNewline(nl string) {
	switch nl {
	case "\n", "\r", "\r\n":
		c.newline = nl
	}
}

// Newline returns the separator InsertNewline inserts.
func (c *Core) Newline() string {
	return c.newline
}

// SetTabWidth sets the tab stop distance.
func (c *Core) SetTabWidth(w int) {
	if w > 0 {
		c.tabWidth = w
	}
}

// TabWidth returns the tab stop distance.
func (c *Core) TabWidth() int {
	return c.tabWidth
}

// SetExpandTabs switches InsertTab between spaces and a tab character.
func (c *Core) SetExpandTabs(expand bool) {
	c.expandTabs = expand
}

// ExpandTabs reports whether InsertTab inserts spaces.
func (c *Core) ExpandTabs() bool {
	return c.expandTabs
}

// SetUndoCount bounds the undo log to n edits, zero meaning unbounded.
// Grouped edits are dropped whole.
func (c *Core) SetUndoCount(n int) {
	c.log.limit = n
	c.log.trim()
}

// LenBytes returns the text length in bytes.
func (c *Core) LenBytes() int {
	return c.store.LenBytes()
}

// LenLines returns the number of lines.
func (c *Core) LenLines() int {
	return c.store.LenLines()
}

// LineWidth returns the grapheme width of the line, clamped.
func (c *Core) LineWidth(line int) int {
	w, err := c.store.LineWidth(c.clampLine(line))
	if err != nil {
		return 0
	}
	return w
}

// LineAt returns the line including its separator, clamped.
func (c *Core) LineAt(line int) string {
	s, err := c.store.LineAt(c.clampLine(line))
	if err != nil {
		return ""
	}
	return s
}

func (c *Core) clampLine(line int) int {
	if line < 0 {
		return 0
	}
	if last := c.store.LenLines() - 1; line > last {
		return last
	}
	return line
}

func (c *Core) clampPos(p textstore.Position) textstore.Position {
	p.Line = c.clampLine(p.Line)
	if p.Col < 0 {
		p.Col = 0
	}
	if w := c.LineWidth(p.Line); p.Col > w {
		p.Col = w
	}
	return p
}

// Cursor returns the cursor position.
func (c *Core) Cursor() textstore.Position {
	return c.cursor
}

// Anchor returns the selection anchor. With no selection it equals the
// cursor.
func (c *Core) Anchor() textstore.Position {
	return c.anchor
}

// SetCursor moves the cursor, clamped to the text. With extend the
// anchor stays put and the selection grows. Reports whether cursor or
// anchor changed.
func (c *Core) SetCursor(pos textstore.Position, extend bool) bool {
	pos = c.clampPos(pos)
	oldC, oldA := c.cursor, c.anchor
	c.cursor = pos
	if !extend {
		c.anchor = pos
	}
	return c.cursor != oldC || c.anchor != oldA
}

// HasSelection reports whether anything is selected.
func (c *Core) HasSelection() bool {
	return c.cursor != c.anchor
}

// Selection returns the selected range in document order.
func (c *Core) Selection() textstore.Range {
	return textstore.NewRange(c.anchor, c.cursor)
}

// InSelection reports whether pos lies inside the selected range. The
// selection end is exclusive.
func (c *Core) InSelection(pos textstore.Position) bool {
	return c.Selection().Contains(pos)
}

// SetSelection selects the range, anchor at its start.
func (c *Core) SetSelection(r textstore.Range) {
	c.anchor = c.clampPos(r.Start)
	c.cursor = c.clampPos(r.End)
}

// SelectAll selects the whole text.
func (c *Core) SelectAll() {
	last := c.store.LenLines() - 1
	c.anchor = textstore.Pos(0, 0)
	c.cursor = textstore.Pos(c.LineWidth(last), last)
}

// Slice returns the text of the range, clamped.
func (c *Core) Slice(r textstore.Range) string {
	r = textstore.NewRange(c.clampPos(r.Start), c.clampPos(r.End))
	s, err := c.store.StrSlice(r)
	if err != nil {
		return ""
	}
	return s
}

// SelectedText returns the selected text.
func (c *Core) SelectedText() string {
	s, err := c.store.StrSlice(c.Selection())
	if err != nil {
		return ""
	}
	return s
}

// ByteAt returns the byte offset of the grapheme at pos, clamped.
func (c *Core) ByteAt(pos textstore.Position) int {
	br, err := c.store.ByteRangeAt(c.clampPos(pos))
	if err != nil {
		return c.store.LenBytes()
	}
	return br.Start
}

// PosAt returns the position whose grapheme contains the byte offset,
// clamped.
func (c *Core) PosAt(off int) textstore.Position {
	if off < 0 {
		off = 0
	}
	if n := c.store.LenBytes(); off > n {
		off = n
	}
	p, err := c.store.ByteToPos(off)
	if err != nil {
		return textstore.Pos(0, 0)
	}
	return p
}

// LineGraphemes returns a cursor over the line's graphemes including
// its separator.
func (c *Core) LineGraphemes(line int) *grapheme.Cursor {
	it, err := c.store.LineGraphemes(c.clampLine(line))
	if err != nil {
		return grapheme.NewCursor(grapheme.StringSource(""), 0, 0, 0)
	}
	return it
}

// GraphemesAt returns a cursor over the whole text positioned at pos.
func (c *Core) GraphemesAt(pos textstore.Position) *grapheme.Cursor {
	cur, err := c.store.GraphemesByte(textstore.Bytes(0, c.store.LenBytes()), c.ByteAt(pos))
	if err != nil {
		return grapheme.NewCursor(grapheme.StringSource(""), 0, 0, 0)
	}
	return cur
}

// ReaderAt returns a rune reader over the byte range, clamped.
func (c *Core) ReaderAt(br textstore.ByteRange) *textstore.Reader {
	n := c.store.LenBytes()
	if br.Start < 0 {
		br.Start = 0
	}
	if br.End > n {
		br.End = n
	}
	if br.Start > br.End {
		br.Start = br.End
	}
	rd, err := c.store.ReaderAt(br)
	if err != nil {
		rd, _ = c.store.ReaderAt(textstore.Bytes(0, 0))
	}
	return rd
}

func (c *Core) state() editState {
	return editState{cursor: c.cursor, anchor: c.anchor}
}

// InsertChar inserts one character at the cursor, replacing the
// selection if there is one.
func (c *Core) InsertChar(ch rune) {
	if c.HasSelection() {
		c.BeginUndoSeq()
		defer c.EndUndoSeq()
		c.DeleteRange(c.Selection())
	}
	before := c.state()
	pos := c.clampPos(c.cursor)
	r, br, err := c.store.InsertChar(pos, ch)
	if err != nil {
		return
	}
	c.styles.expanded(br)
	sel := r.Expand(textstore.Range{Start: c.anchor, End: c.cursor})
	c.anchor, c.cursor = sel.Start, sel.End
	c.log.push(undoEntry{
		kind:   undoInsert,
		bytes:  br,
		text:   string(ch),
		before: before,
		after:  c.state(),
	})
}

// InsertStr inserts a string at the cursor, replacing the selection if
// there is one.
func (c *Core) InsertStr(t string) {
	if t == "" {
		return
	}
	if c.HasSelection() {
		c.BeginUndoSeq()
		defer c.EndUndoSeq()
		c.DeleteRange(c.Selection())
	}
	before := c.state()
	pos := c.clampPos(c.cursor)
	r, br, err := c.store.InsertStr(pos, t)
	if err != nil {
		return
	}
	c.styles.expanded(br)
	sel := r.Expand(textstore.Range{Start: c.anchor, End: c.cursor})
	c.anchor, c.cursor = sel.Start, sel.End
	c.log.push(undoEntry{
		kind:   undoInsert,
		bytes:  br,
		text:   t,
		before: before,
		after:  c.state(),
	})
}

// InsertNewline inserts the configured line separator.
func (c *Core) InsertNewline() {
	c.InsertStr(c.newline)
}

// InsertTab inserts a tab, as spaces up to the next tab stop when
// expansion is on.
func (c *Core) InsertTab() {
	if c.expandTabs {
		n := c.tabWidth - c.cursor.Col%c.tabWidth
		c.InsertStr(strings.Repeat(" ", n))
	} else {
		c.InsertChar('\t')
	}
}

// DeleteRange removes the range, clamped to the text. Reports whether
// anything was removed.
func (c *Core) DeleteRange(r textstore.Range) bool {
	r = textstore.NewRange(c.clampPos(r.Start), c.clampPos(r.End))
	if r.IsEmpty() {
		return false
	}
	before := c.state()
	old, _, br, err := c.store.Remove(r)
	if err != nil || old == "" {
		return false
	}
	c.styles.shrunk(br)
	// Positions inside the removed range collapse to its start; cursor
	// and anchor elsewhere keep their place in the text.
	sel := r.Shrink(textstore.Range{Start: c.anchor, End: c.cursor})
	c.anchor, c.cursor = sel.Start, sel.End
	c.log.push(undoEntry{
		kind:   undoRemove,
		bytes:  br,
		text:   old,
		before: before,
		after:  c.state(),
	})
	return true
}

// DeletePrevChar removes the selection, or the grapheme before the
// cursor.
func (c *Core) DeletePrevChar() bool {
	if c.HasSelection() {
		return c.DeleteRange(c.Selection())
	}
	g, ok := c.GraphemesAt(c.cursor).Prev()
	if !ok {
		return false
	}
	return c.DeleteRange(textstore.Range{Start: c.PosAt(g.Start()), End: c.cursor})
}

// DeleteNextChar removes the selection, or the grapheme after the
// cursor.
func (c *Core) DeleteNextChar() bool {
	if c.HasSelection() {
		return c.DeleteRange(c.Selection())
	}
	g, ok := c.GraphemesAt(c.cursor).Next()
	if !ok {
		return false
	}
	return c.DeleteRange(textstore.Range{Start: c.cursor, End: c.PosAt(g.End())})
}

// BeginUndoSeq opens an undo sequence: every edit until the matching
// EndUndoSeq undoes and redoes as one step. Sequences nest; only the
// outermost pair delimits.
func (c *Core) BeginUndoSeq() {
	c.log.beginSeq()
}

// EndUndoSeq closes an undo sequence.
func (c *Core) EndUndoSeq() {
	c.log.endSeq()
}

// Undo reverts the newest edit or sequence. Reports whether anything
// changed.
func (c *Core) Undo() bool {
	group := c.log.popUndo()
	if len(group) == 0 {
		return false
	}
	for _, e := range group {
		switch e.kind {
		case undoInsert:
			c.store.RemoveBytes(e.bytes)
			c.styles.shrunk(e.bytes)
		case undoRemove:
			c.store.InsertBytes(e.bytes.Start, e.text)
			c.styles.expanded(e.bytes)
		}
		c.cursor = e.before.cursor
		c.anchor = e.before.anchor
		c.log.pushRedo(e)
	}
	return true
}

// Redo reapplies the newest undone edit or sequence. Reports whether
// anything changed.
func (c *Core) Redo() bool {
	group := c.log.popRedo()
	if len(group) == 0 {
		return false
	}
	for _, e := range group {
		switch e.kind {
		case undoInsert:
			c.store.InsertBytes(e.bytes.Start, e.text)
			c.styles.expanded(e.bytes)
		case undoRemove:
			c.store.RemoveBytes(e.bytes)
			c.styles.shrunk(e.bytes)
		}
		c.cursor = e.after.cursor
		c.anchor = e.after.anchor
		c.log.restore(e)
	}
	return true
}

// HasUndo reports whether Undo would do anything.
func (c *Core) HasUndo() bool {
	return len(c.log.undo) > 0
}

// HasRedo reports whether Redo would do anything.
func (c *Core) HasRedo() bool {
	return len(c.log.redo) > 0
}

// SetStyles replaces the style overlay.
func (c *Core) SetStyles(styles []StyleRange) {
	c.styles.set(styles)
}

// AddStyle adds one styled byte range.
func (c *Core) AddStyle(r textstore.ByteRange, style int) {
	c.styles.add(r, style)
}

// AddStyleRange adds a styled position range, converted to bytes.
func (c *Core) AddStyleRange(r textstore.Range, style int) {
	r = textstore.NewRange(c.clampPos(r.Start), c.clampPos(r.End))
	c.styles.add(textstore.Bytes(c.ByteAt(r.Start), c.ByteAt(r.End)), style)
}

// RemoveStyle removes one styled byte range. Range and style must
// match an existing entry exactly.
func (c *Core) RemoveStyle(r textstore.ByteRange, style int) {
	c.styles.remove(r, style)
}

// ClearStyles drops the whole overlay.
func (c *Core) ClearStyles() {
	c.styles.clear()
}

// StylesAt returns the style ids covering the byte offset.
func (c *Core) StylesAt(off int) []int {
	return c.styles.at(off)
}

// StylesIn returns the styled ranges intersecting the byte range.
func (c *Core) StylesIn(br textstore.ByteRange) []StyleRange {
	return c.styles.in(br)
}

// StyleMatch returns the range carrying the style id at the byte
// offset.
func (c *Core) StyleMatch(off, style int) (textstore.ByteRange, bool) {
	return c.styles.match(off, style)
}

// WordStart returns the start of the alphanumeric run around pos.
func (c *Core) WordStart(pos textstore.Position) textstore.Position {
	cur := c.GraphemesAt(pos)
	for {
		g, ok := cur.PeekPrev()
		if !ok || !g.IsAlphanumeric() {
			break
		}
		cur.Prev()
	}
	return c.PosAt(cur.Offset())
}

// WordEnd returns the end of the alphanumeric run around pos.
func (c *Core) WordEnd(pos textstore.Position) textstore.Position {
	cur := c.GraphemesAt(pos)
	for {
		g, ok := cur.PeekNext()
		if !ok || !g.IsAlphanumeric() {
			break
		}
		cur.Next()
	}
	return c.PosAt(cur.Offset())
}

// IsWordBoundary reports whether pos sits between a word cluster and a
// non-word cluster, or at a text edge.
func (c *Core) IsWordBoundary(pos textstore.Position) bool {
	cur := c.GraphemesAt(pos)
	prev, okP := cur.PeekPrev()
	next, okN := cur.PeekNext()
	if !okP || !okN {
		return true
	}
	return prev.IsAlphanumeric() != next.IsAlphanumeric()
}

// WordAt returns the span of the alphanumeric run around pos.
func (c *Core) WordAt(pos textstore.Position) textstore.Range {
	return textstore.Range{Start: c.WordStart(pos), End: c.WordEnd(pos)}
}

// NextWordStart returns the start of the word after pos.
func (c *Core) NextWordStart(pos textstore.Position) textstore.Position {
	cur := c.GraphemesAt(pos)
	for {
		g, ok := cur.PeekNext()
		if !ok || !g.IsAlphanumeric() {
			break
		}
		cur.Next()
	}
	for {
		g, ok := cur.PeekNext()
		if !ok || g.IsAlphanumeric() {
			break
		}
		cur.Next()
	}
	return c.PosAt(cur.Offset())
}

// NextWordEnd returns the end of the word after pos.
func (c *Core) NextWordEnd(pos textstore.Position) textstore.Position {
	cur := c.GraphemesAt(pos)
	for {
		g, ok := cur.PeekNext()
		if !ok || g.IsAlphanumeric() {
			break
		}
		cur.Next()
	}
	for {
		g, ok := cur.PeekNext()
		if !ok || !g.IsAlphanumeric() {
			break
		}
		cur.Next()
	}
	return c.PosAt(cur.Offset())
}

// PrevWordStart returns the start of the word before pos.
func (c *Core) PrevWordStart(pos textstore.Position) textstore.Position {
	cur := c.GraphemesAt(pos)
	for {
		g, ok := cur.PeekPrev()
		if !ok || g.IsAlphanumeric() {
			break
		}
		cur.Prev()
	}
	for {
		g, ok := cur.PeekPrev()
		if !ok || !g.IsAlphanumeric() {
			break
		}
		cur.Prev()
	}
	return c.PosAt(cur.Offset())
}

// PrevWordEnd returns the end of the word before pos.
func (c *Core) PrevWordEnd(pos textstore.Position) textstore.Position {
	cur := c.GraphemesAt(pos)
	for {
		g, ok := cur.PeekPrev()
		if !ok || !g.IsAlphanumeric() {
			break
		}
		cur.Prev()
	}
	for {
		g, ok := cur.PeekPrev()
		if !ok || g.IsAlphanumeric() {
			break
		}
		cur.Prev()
	}
	return c.PosAt(cur.Offset())
}
