// Package highlight builds style overlays from chroma's lexers. It
// tokenizes a core's text and translates the tokens into the byte
// range styles the core carries, with a Palette mapping chroma's token
// types to the dense integer ids a renderer can index directly.
package highlight

import (
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"

	"github.com/coppermine/textkit/textcore"
	"github.com/coppermine/textkit/textstore"
)

// Palette assigns dense style ids to chroma token types, in order of
// first appearance. The caller resolves an id back to its token type
// to pick colors.
type Palette struct {
	ids   map[chroma.TokenType]int
	types []chroma.TokenType
}

// NewPalette creates an empty palette.
func NewPalette() *Palette {
	return &Palette{ids: make(map[chroma.TokenType]int)}
}

// ID returns the style id for a token type, assigning the next free
// one on first use.
func (p *Palette) ID(t chroma.TokenType) int {
	if id, ok := p.ids[t]; ok {
		return id
	}
	id := len(p.types)
	p.ids[t] = id
	p.types = append(p.types, t)
	return id
}

// Type resolves a style id back to its token type.
func (p *Palette) Type(id int) (chroma.TokenType, bool) {
	if id < 0 || id >= len(p.types) {
		return 0, false
	}
	return p.types[id], true
}

// Len returns the number of assigned ids.
func (p *Palette) Len() int {
	return len(p.types)
}

// Highlighter tokenizes text with one lexer and one palette.
type Highlighter struct {
	lexer chroma.Lexer
	pal   *Palette
}

// New creates a highlighter from a lexer.
func New(pal *Palette, lexer chroma.Lexer) *Highlighter {
	if lexer == nil {
		lexer = lexers.Fallback
	}
	return &Highlighter{lexer: chroma.Coalesce(lexer), pal: pal}
}

// ForFile picks the lexer by file name.
func ForFile(pal *Palette, filename string) *Highlighter {
	return New(pal, lexers.Match(filename))
}

// ForLanguage picks the lexer by language name.
func ForLanguage(pal *Palette, name string) *Highlighter {
	return New(pal, lexers.Get(name))
}

// Scan tokenizes text into styled byte ranges. Plain text and
// whitespace tokens carry no style and are skipped.
func (h *Highlighter) Scan(text string) ([]textcore.StyleRange, error) {
	it, err := h.lexer.Tokenise(nil, text)
	if err != nil {
		return nil, err
	}
	var styles []textcore.StyleRange
	off := 0
	for tok := it(); tok != chroma.EOF; tok = it() {
		n := len(tok.Value)
		if n == 0 {
			continue
		}
		if tok.Type != chroma.Text && tok.Type != chroma.TextWhitespace {
			styles = append(styles, textcore.StyleRange{
				Range: textstore.Bytes(off, off+n),
				Style: h.pal.ID(tok.Type),
			})
		}
		off += n
	}
	return styles, nil
}

// Apply rebuilds the core's style overlay from its current text.
func (h *Highlighter) Apply(c *textcore.Core) error {
	styles, err := h.Scan(c.Text())
	if err != nil {
		return err
	}
	c.SetStyles(styles)
	return nil
}
