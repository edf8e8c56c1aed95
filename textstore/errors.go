package textstore

import "fmt"

// ColumnIndexError reports a column beyond the width of its line.
type ColumnIndexError struct {
	Requested int
	Max       int
}

func (e *ColumnIndexError) Error() string {
	return fmt.Sprintf("column index %d out of bounds, max %d", e.Requested, e.Max)
}

// LineIndexError reports a line beyond the number of lines.
type LineIndexError struct {
	Requested int
	Max       int
}

func (e *LineIndexError) Error() string {
	return fmt.Sprintf("line index %d out of bounds, max %d", e.Requested, e.Max)
}

// ByteIndexError reports a byte offset beyond the text length.
type ByteIndexError struct {
	Requested int
	Max       int
}

func (e *ByteIndexError) Error() string {
	return fmt.Sprintf("byte index %d out of bounds, max %d", e.Requested, e.Max)
}
