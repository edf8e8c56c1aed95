package textstore

import (
	"io"
	"unicode/utf8"

	"github.com/coppermine/textkit/grapheme"
)

// Reader streams a byte range of a store as runes, chunk by chunk, so
// regexp searches never materialize the whole text. It borrows the
// store and must not outlive a mutation.
type Reader struct {
	src      grapheme.Source
	off, end int
	chunk    string
	base     int
}

// ReaderAt returns a reader over the byte range.
func (c *contract) ReaderAt(br ByteRange) (*Reader, error) {
	if br.Start < 0 || br.End > c.b.lenBytes() || br.Start > br.End {
		return nil, &ByteIndexError{Requested: br.End, Max: c.b.lenBytes()}
	}
	return &Reader{src: c.b.source(), off: br.Start, end: br.End}, nil
}

// Offset returns the absolute byte offset of the next rune.
func (r *Reader) Offset() int {
	return r.off
}

// ReadRune implements io.RuneReader. Chunks split only at rune
// boundaries, so a rune never spans two chunks.
func (r *Reader) ReadRune() (rune, int, error) {
	if r.off >= r.end {
		return 0, 0, io.EOF
	}
	if r.off < r.base || r.off >= r.base+len(r.chunk) {
		r.chunk, r.base = r.src.Chunk(r.off)
	}
	ch, size := utf8.DecodeRuneInString(r.chunk[r.off-r.base:])
	if r.off+size > r.end {
		return 0, 0, io.EOF
	}
	r.off += size
	return ch, size, nil
}
