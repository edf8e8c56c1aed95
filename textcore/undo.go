package textcore

import "github.com/coppermine/textkit/textstore"

type undoKind int

const (
	undoInsert undoKind = iota
	undoRemove
)

// undoEntry records one atomic edit: the byte span of the inserted
// text in the post-edit document, or the removed text's span in the
// pre-edit document, plus the cursor and anchor on both sides.
type undoEntry struct {
	kind   undoKind
	bytes  textstore.ByteRange
	text   string
	before editState
	after  editState
	seq    int
}

type editState struct {
	cursor textstore.Position
	anchor textstore.Position
}

// undoLog holds the undo and redo stacks. Entries sharing a nonzero
// seq id were made inside one sequence and replay together. Edits are
// never merged; every keystroke stays individually undoable unless
// grouped by the caller.
type undoLog struct {
	undo []undoEntry
	redo []undoEntry

	limit   int
	depth   int
	seq     int
	nextSeq int
}

// push records a new edit and invalidates the redo stack.
func (l *undoLog) push(e undoEntry) {
	if l.depth > 0 {
		e.seq = l.seq
	}
	l.undo = append(l.undo, e)
	l.redo = l.redo[:0]
	l.trim()
}

// restore re-appends an entry during redo without touching the redo
// stack.
func (l *undoLog) restore(e undoEntry) {
	l.undo = append(l.undo, e)
}

func (l *undoLog) pushRedo(e undoEntry) {
	l.redo = append(l.redo, e)
}

// trim enforces the entry limit, dropping whole sequences from the old
// end.
func (l *undoLog) trim() {
	if l.limit <= 0 || len(l.undo) <= l.limit {
		return
	}
	drop := len(l.undo) - l.limit
	for drop < len(l.undo) && l.undo[drop].seq != 0 && l.undo[drop].seq == l.undo[drop-1].seq {
		drop++
	}
	l.undo = append(l.undo[:0], l.undo[drop:]...)
}

func (l *undoLog) beginSeq() {
	if l.depth == 0 {
		l.nextSeq++
		l.seq = l.nextSeq
	}
	l.depth++
}

func (l *undoLog) endSeq() {
	if l.depth == 0 {
		return
	}
	l.depth--
	if l.depth == 0 {
		l.seq = 0
	}
}

// popUndo removes the newest entry group and returns it newest first,
// the order it must be reverted in.
func (l *undoLog) popUndo() []undoEntry {
	if len(l.undo) == 0 {
		return nil
	}
	hi := len(l.undo) - 1
	lo := hi
	if seq := l.undo[hi].seq; seq != 0 {
		for lo > 0 && l.undo[lo-1].seq == seq {
			lo--
		}
	}
	group := make([]undoEntry, 0, hi-lo+1)
	for i := hi; i >= lo; i-- {
		group = append(group, l.undo[i])
	}
	l.undo = l.undo[:lo]
	return group
}

// popRedo removes the newest redo group and returns it in application
// order, oldest edit first.
func (l *undoLog) popRedo() []undoEntry {
	if len(l.redo) == 0 {
		return nil
	}
	hi := len(l.redo) - 1
	lo := hi
	if seq := l.redo[hi].seq; seq != 0 {
		for lo > 0 && l.redo[lo-1].seq == seq {
			lo--
		}
	}
	group := make([]undoEntry, 0, hi-lo+1)
	for i := hi; i >= lo; i-- {
		group = append(group, l.redo[i])
	}
	l.redo = l.redo[:lo]
	return group
}
