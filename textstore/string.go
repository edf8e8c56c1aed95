package textstore

import "github.com/coppermine/textkit/grapheme"

// TextString stores the text as one flat string. Every edit reallocates,
// which is fine for the small buffers of input fields and dialogs; use
// TextRope for anything document sized.
type TextString struct {
	contract
	text string
	seps int
}

// NewTextString creates a flat-string store with the given content.
func NewTextString(t string) *TextString {
	s := &TextString{}
	s.contract.b = s
	s.SetString(t)
	return s
}

// String returns the full content.
func (s *TextString) String() string {
	return s.text
}

// SetString replaces the full content.
func (s *TextString) SetString(t string) {
	s.text = t
	s.seps = countLineBreaks(t)
}

func (s *TextString) source() grapheme.Source {
	return grapheme.StringSource(s.text)
}

func (s *TextString) lenBytes() int {
	return len(s.text)
}

func (s *TextString) sepCount() int {
	return s.seps
}

func (s *TextString) lineToByte(line int) int {
	if line <= 0 {
		return 0
	}
	seen := 0
	for i := 0; i < len(s.text); i++ {
		switch s.text[i] {
		case '\n':
			seen++
		case '\r':
			if i+1 < len(s.text) && s.text[i+1] == '\n' {
				i++
			}
			seen++
		default:
			continue
		}
		if seen == line {
			return i + 1
		}
	}
	return len(s.text)
}

func (s *TextString) byteToLine(off int) int {
	line := 0
	for i := 0; i < off && i < len(s.text); i++ {
		switch s.text[i] {
		case '\n':
			line++
		case '\r':
			if i+1 < len(s.text) && s.text[i+1] == '\n' {
				// The separator only counts once it ends before off.
				if i+1 < off {
					line++
				}
				i++
			} else {
				line++
			}
		}
	}
	return line
}

func (s *TextString) sliceBytes(br ByteRange) string {
	return s.text[br.Start:br.End]
}

func (s *TextString) insertBytes(off int, t string) {
	s.SetString(s.text[:off] + t + s.text[off:])
}

func (s *TextString) removeBytes(br ByteRange) string {
	old := s.text[br.Start:br.End]
	s.SetString(s.text[:br.Start] + s.text[br.End:])
	return old
}
