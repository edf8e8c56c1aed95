package textcore

import (
	"testing"

	"github.com/coppermine/textkit/textstore"
)

func newCore(text string) *Core {
	c := New()
	c.SetText(text)
	return c
}

func TestInsertMovesCursor(t *testing.T) {
	c := newCore("")
	c.InsertChar('a')
	c.InsertChar('b')
	if got := c.Text(); got != "ab" {
		t.Errorf("text = %q", got)
	}
	if got := c.Cursor(); got != textstore.Pos(2, 0) {
		t.Errorf("cursor = %v, want 2:0", got)
	}
	c.InsertNewline()
	c.InsertStr("cd")
	if got := c.Text(); got != "ab\ncd" {
		t.Errorf("text = %q", got)
	}
	if got := c.Cursor(); got != textstore.Pos(2, 1) {
		t.Errorf("cursor = %v, want 2:1", got)
	}
}

func TestSetCursorClamps(t *testing.T) {
	c := newCore("ab\ncdef")
	if !c.SetCursor(textstore.Pos(99, 0), false) {
		t.Error("SetCursor reported no change")
	}
	if got := c.Cursor(); got != textstore.Pos(2, 0) {
		t.Errorf("cursor = %v, want 2:0", got)
	}
	c.SetCursor(textstore.Pos(3, 99), false)
	if got := c.Cursor(); got != textstore.Pos(3, 1) {
		t.Errorf("cursor = %v, want 3:1", got)
	}
	if c.SetCursor(textstore.Pos(3, 1), false) {
		t.Error("SetCursor reported change on no-op")
	}
}

func TestSelection(t *testing.T) {
	c := newCore("hello world")
	c.SetCursor(textstore.Pos(6, 0), false)
	c.SetCursor(textstore.Pos(11, 0), true)
	if !c.HasSelection() {
		t.Fatal("no selection")
	}
	if got := c.SelectedText(); got != "world" {
		t.Errorf("selected = %q", got)
	}
	// Backwards selection normalizes.
	c.SetCursor(textstore.Pos(5, 0), false)
	c.SetCursor(textstore.Pos(0, 0), true)
	if got := c.SelectedText(); got != "hello" {
		t.Errorf("selected = %q", got)
	}

	c.SelectAll()
	if got := c.SelectedText(); got != "hello world" {
		t.Errorf("select all = %q", got)
	}
}

func TestInSelection(t *testing.T) {
	c := newCore("hello world")
	c.SetSelection(textstore.Range{Start: textstore.Pos(6, 0), End: textstore.Pos(11, 0)})
	if !c.InSelection(textstore.Pos(6, 0)) {
		t.Error("start of selection should be inside")
	}
	if c.InSelection(textstore.Pos(11, 0)) {
		t.Error("end of selection is exclusive")
	}
	if c.InSelection(textstore.Pos(2, 0)) {
		t.Error("position before selection should be outside")
	}
}

func TestDeleteRangeKeepsCursor(t *testing.T) {
	// A programmatic delete away from the cursor leaves it in place.
	c := newCore("hello world")
	c.SetCursor(textstore.Pos(2, 0), false)
	c.DeleteRange(textstore.Range{Start: textstore.Pos(6, 0), End: textstore.Pos(11, 0)})
	if got := c.Cursor(); got != textstore.Pos(2, 0) {
		t.Errorf("cursor = %v, want 2:0", got)
	}

	// A delete before the cursor shifts it back with the text.
	c = newCore("hello world")
	c.SetCursor(textstore.Pos(9, 0), false)
	c.DeleteRange(textstore.Range{Start: textstore.Pos(0, 0), End: textstore.Pos(6, 0)})
	if got := c.Text(); got != "world" {
		t.Errorf("text = %q", got)
	}
	if got := c.Cursor(); got != textstore.Pos(3, 0) {
		t.Errorf("cursor = %v, want 3:0", got)
	}

	// A cursor inside the removed range collapses to its start.
	c = newCore("hello world")
	c.SetCursor(textstore.Pos(8, 0), false)
	c.DeleteRange(textstore.Range{Start: textstore.Pos(5, 0), End: textstore.Pos(11, 0)})
	if got := c.Cursor(); got != textstore.Pos(5, 0) {
		t.Errorf("cursor = %v, want 5:0", got)
	}
}

func TestInsertReplacesSelection(t *testing.T) {
	c := newCore("hello world")
	c.SetSelection(textstore.Range{Start: textstore.Pos(0, 0), End: textstore.Pos(5, 0)})
	c.InsertStr("bye")
	if got := c.Text(); got != "bye world" {
		t.Errorf("text = %q", got)
	}
	if got := c.Cursor(); got != textstore.Pos(3, 0) {
		t.Errorf("cursor = %v", got)
	}
	// Delete and insert revert as one step.
	if !c.Undo() {
		t.Fatal("Undo failed")
	}
	if got := c.Text(); got != "hello world" {
		t.Errorf("after undo = %q", got)
	}
	if !c.Redo() {
		t.Fatal("Redo failed")
	}
	if got := c.Text(); got != "bye world" {
		t.Errorf("after redo = %q", got)
	}
}

func TestUndoPerKeystroke(t *testing.T) {
	c := newCore("")
	for _, ch := range "abc" {
		c.InsertChar(ch)
	}
	want := []string{"ab", "a", ""}
	for i, w := range want {
		if !c.Undo() {
			t.Fatalf("Undo %d failed", i)
		}
		if got := c.Text(); got != w {
			t.Errorf("after undo %d: %q, want %q", i, got, w)
		}
	}
	if c.Undo() {
		t.Error("Undo on empty log should fail")
	}
	for i, w := range []string{"a", "ab", "abc"} {
		if !c.Redo() {
			t.Fatalf("Redo %d failed", i)
		}
		if got := c.Text(); got != w {
			t.Errorf("after redo %d: %q, want %q", i, got, w)
		}
	}
	if c.Redo() {
		t.Error("Redo on empty log should fail")
	}
}

func TestUndoRestoresCursor(t *testing.T) {
	c := newCore("hello")
	c.SetCursor(textstore.Pos(2, 0), false)
	c.InsertChar('X')
	c.SetCursor(textstore.Pos(0, 0), false)
	c.Undo()
	if got := c.Cursor(); got != textstore.Pos(2, 0) {
		t.Errorf("cursor after undo = %v, want 2:0", got)
	}
	c.Redo()
	if got := c.Cursor(); got != textstore.Pos(3, 0) {
		t.Errorf("cursor after redo = %v, want 3:0", got)
	}
}

func TestUndoSequence(t *testing.T) {
	c := newCore("")
	c.InsertChar('a')
	c.BeginUndoSeq()
	c.InsertChar('b')
	// Nested pairs do not split the sequence.
	c.BeginUndoSeq()
	c.InsertChar('c')
	c.EndUndoSeq()
	c.InsertChar('d')
	c.EndUndoSeq()
	c.InsertChar('e')

	c.Undo()
	if got := c.Text(); got != "abcd" {
		t.Fatalf("after first undo = %q", got)
	}
	c.Undo()
	if got := c.Text(); got != "a" {
		t.Fatalf("sequence undo = %q, want %q", got, "a")
	}
	c.Redo()
	if got := c.Text(); got != "abcd" {
		t.Fatalf("sequence redo = %q, want %q", got, "abcd")
	}
}

func TestNewEditClearsRedo(t *testing.T) {
	c := newCore("")
	c.InsertChar('a')
	c.InsertChar('b')
	c.Undo()
	c.InsertChar('x')
	if c.Redo() {
		t.Error("Redo should fail after a fresh edit")
	}
	if got := c.Text(); got != "ax" {
		t.Errorf("text = %q", got)
	}
}

func TestUndoLimit(t *testing.T) {
	c := newCore("")
	c.SetUndoCount(2)
	for _, ch := range "abcd" {
		c.InsertChar(ch)
	}
	if !c.Undo() || !c.Undo() {
		t.Fatal("expected two undos")
	}
	if c.Undo() {
		t.Error("third undo should fail under limit 2")
	}
	if got := c.Text(); got != "ab" {
		t.Errorf("text = %q, want %q", got, "ab")
	}
}

func TestDeletePrevChar(t *testing.T) {
	c := newCore("ab\ncd")
	c.SetCursor(textstore.Pos(0, 1), false)
	if !c.DeletePrevChar() {
		t.Fatal("DeletePrevChar failed")
	}
	if got := c.Text(); got != "abcd" {
		t.Errorf("text = %q", got)
	}
	if got := c.Cursor(); got != textstore.Pos(2, 0) {
		t.Errorf("cursor = %v", got)
	}

	// A combining cluster goes as a whole.
	c = newCore("aä")
	c.SetCursor(textstore.Pos(2, 0), false)
	c.DeletePrevChar()
	if got := c.Text(); got != "a" {
		t.Errorf("text = %q, want %q", got, "a")
	}
}

func TestDeleteNextChar(t *testing.T) {
	c := newCore("ab\ncd")
	c.SetCursor(textstore.Pos(2, 0), false)
	if !c.DeleteNextChar() {
		t.Fatal("DeleteNextChar failed")
	}
	if got := c.Text(); got != "abcd" {
		t.Errorf("text = %q", got)
	}
	c.SetCursor(textstore.Pos(4, 0), false)
	if c.DeleteNextChar() {
		t.Error("DeleteNextChar at end should fail")
	}
}

func TestInsertTab(t *testing.T) {
	c := newCore("")
	c.SetTabWidth(4)
	c.InsertChar('a')
	c.InsertTab()
	if got := c.Text(); got != "a   " {
		t.Errorf("text = %q, want %q", got, "a   ")
	}
	c.SetExpandTabs(false)
	c.InsertTab()
	if got := c.Text(); got != "a   \t" {
		t.Errorf("text = %q", got)
	}
}

func TestStylesFollowEdits(t *testing.T) {
	c := newCore("hello world")
	c.AddStyle(textstore.Bytes(6, 11), 1)
	c.SetCursor(textstore.Pos(0, 0), false)
	c.InsertStr("x")
	if r, ok := c.StyleMatch(8, 1); !ok || r != textstore.Bytes(7, 12) {
		t.Errorf("style after insert = %v, %v", r, ok)
	}
	c.Undo()
	if r, ok := c.StyleMatch(7, 1); !ok || r != textstore.Bytes(6, 11) {
		t.Errorf("style after undo = %v, %v", r, ok)
	}
	// Deleting the styled text drops the entry.
	c.DeleteRange(textstore.Range{Start: textstore.Pos(6, 0), End: textstore.Pos(11, 0)})
	if got := c.StylesAt(6); got != nil {
		t.Errorf("styles after delete = %v", got)
	}
}

func TestStyleQueries(t *testing.T) {
	c := newCore("hello world")
	c.SetStyles([]StyleRange{
		{Range: textstore.Bytes(0, 5), Style: 1},
		{Range: textstore.Bytes(3, 8), Style: 2},
	})
	if got := c.StylesAt(4); len(got) != 2 {
		t.Errorf("StylesAt(4) = %v", got)
	}
	if got := c.StylesAt(9); got != nil {
		t.Errorf("StylesAt(9) = %v", got)
	}
	if got := c.StylesIn(textstore.Bytes(6, 11)); len(got) != 1 || got[0].Style != 2 {
		t.Errorf("StylesIn = %v", got)
	}
	c.RemoveStyle(textstore.Bytes(3, 8), 2)
	if _, ok := c.StyleMatch(4, 2); ok {
		t.Error("style 2 should be gone")
	}
	c.ClearStyles()
	if got := c.StylesAt(0); got != nil {
		t.Errorf("styles after clear = %v", got)
	}
}

func TestSetTextResets(t *testing.T) {
	c := newCore("abc")
	c.InsertChar('x')
	c.AddStyle(textstore.Bytes(0, 1), 7)
	c.SetText("new")
	if c.HasUndo() || c.HasRedo() {
		t.Error("SetText should clear history")
	}
	if got := c.StylesAt(0); got != nil {
		t.Error("SetText should clear styles")
	}
	if got := c.Cursor(); got != textstore.Pos(0, 0) {
		t.Errorf("cursor = %v", got)
	}
}

func TestWordHelpers(t *testing.T) {
	c := newCore("foo bar-baz")
	tests := []struct {
		name string
		fn   func(textstore.Position) textstore.Position
		pos  textstore.Position
		want textstore.Position
	}{
		{"word start", c.WordStart, textstore.Pos(5, 0), textstore.Pos(4, 0)},
		{"word end", c.WordEnd, textstore.Pos(5, 0), textstore.Pos(7, 0)},
		{"next word start", c.NextWordStart, textstore.Pos(0, 0), textstore.Pos(4, 0)},
		{"next word end", c.NextWordEnd, textstore.Pos(3, 0), textstore.Pos(7, 0)},
		{"prev word start", c.PrevWordStart, textstore.Pos(6, 0), textstore.Pos(4, 0)},
		{"prev word end", c.PrevWordEnd, textstore.Pos(8, 0), textstore.Pos(7, 0)},
	}
	for _, tt := range tests {
		if got := tt.fn(tt.pos); got != tt.want {
			t.Errorf("%s at %v = %v, want %v", tt.name, tt.pos, got, tt.want)
		}
	}
	if got := c.WordAt(textstore.Pos(1, 0)); got != (textstore.Range{Start: textstore.Pos(0, 0), End: textstore.Pos(3, 0)}) {
		t.Errorf("WordAt = %v", got)
	}
}
