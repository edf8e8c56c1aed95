package textstore

import (
	"strings"
	"unicode/utf8"

	"github.com/coppermine/textkit/grapheme"
)

const (
	maxLeaf  = 1024
	maxChild = 8
)

// TextRope stores the text as a tree of string chunks with per-node
// byte and separator summaries, so coordinate lookups and edits stay
// local. Leaves never split inside a rune or inside a "\r\n" pair.
type TextRope struct {
	contract
	root *ropeNode
}

// NewTextRope creates a rope store with the given content.
func NewTextRope(t string) *TextRope {
	r := &TextRope{}
	r.contract.b = r
	r.SetString(t)
	return r
}

// String returns the full content.
func (r *TextRope) String() string {
	return r.sliceBytes(Bytes(0, r.root.bytes))
}

// SetString replaces the full content.
func (r *TextRope) SetString(t string) {
	r.root = buildNode(chunkLeaves(t))
}

func (r *TextRope) source() grapheme.Source {
	return ropeSource{root: r.root}
}

func (r *TextRope) lenBytes() int {
	return r.root.bytes
}

func (r *TextRope) sepCount() int {
	return r.root.breaks
}

func (r *TextRope) lineToByte(line int) int {
	if line <= 0 {
		return 0
	}
	n := r.root
	base := 0
	for !n.leaf() {
		next := n.children[len(n.children)-1]
		for i, c := range n.children {
			if line <= c.breaks || i == len(n.children)-1 {
				next = c
				break
			}
			line -= c.breaks
			base += c.bytes
		}
		n = next
	}
	seen := 0
	for i := 0; i < len(n.text); i++ {
		switch n.text[i] {
		case '\n':
			seen++
		case '\r':
			if i+1 < len(n.text) && n.text[i+1] == '\n' {
				i++
			}
			seen++
		default:
			continue
		}
		if seen == line {
			return base + i + 1
		}
	}
	return base + len(n.text)
}

func (r *TextRope) byteToLine(off int) int {
	n := r.root
	line := 0
	for !n.leaf() {
		next := n.children[len(n.children)-1]
		for i, c := range n.children {
			if off < c.bytes || i == len(n.children)-1 {
				next = c
				break
			}
			off -= c.bytes
			line += c.breaks
		}
		n = next
	}
	for i := 0; i < off && i < len(n.text); i++ {
		switch n.text[i] {
		case '\n':
			line++
		case '\r':
			if i+1 < len(n.text) && n.text[i+1] == '\n' {
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

func (r *TextRope) sliceBytes(br ByteRange) string {
	if br.IsEmpty() {
		return ""
	}
	var b strings.Builder
	b.Grow(br.Len())
	r.root.appendRange(&b, br.Start, br.End)
	return b.String()
}

func (r *TextRope) insertBytes(off int, t string) {
	if t == "" {
		return
	}
	if extra := r.root.insert(off, t); extra != nil {
		r.grow(extra)
	}
	r.fixSeam(off)
	r.fixSeam(off + len(t))
}

func (r *TextRope) removeBytes(br ByteRange) string {
	old := r.sliceBytes(br)
	if br.IsEmpty() {
		return old
	}
	r.root.remove(br.Start, br.End)
	for !r.root.leaf() && len(r.root.children) == 1 {
		r.root = r.root.children[0]
	}
	r.fixSeam(br.Start)
	return old
}

func (r *TextRope) grow(extra *ropeNode) {
	root := &ropeNode{children: []*ropeNode{r.root, extra}}
	root.recalc()
	r.root = root
}

// fixSeam rejoins a "\r\n" pair that an edit left split across two
// leaves, which would otherwise count as two separators.
func (r *TextRope) fixSeam(off int) {
	if off <= 0 || off >= r.root.bytes {
		return
	}
	src := ropeSource{root: r.root}
	left, lbase := src.Chunk(off - 1)
	if lbase+len(left) != off || left[len(left)-1] != '\r' {
		return
	}
	right, rbase := src.Chunk(off)
	if rbase != off || len(right) == 0 || right[0] != '\n' {
		return
	}
	r.root.remove(off, off+1)
	if extra := r.root.insert(off, "\n"); extra != nil {
		r.grow(extra)
	}
}

// ropeSource adapts the rope's leaves to grapheme.Source.
type ropeSource struct {
	root *ropeNode
}

// Chunk returns the leaf containing byte offset off and its base.
func (s ropeSource) Chunk(off int) (string, int) {
	n := s.root
	base := 0
	for !n.leaf() {
		next := n.children[len(n.children)-1]
		for i, c := range n.children {
			if off < base+c.bytes || i == len(n.children)-1 {
				next = c
				break
			}
			base += c.bytes
		}
		n = next
	}
	return n.text, base
}

// Len returns the total byte length.
func (s ropeSource) Len() int {
	return s.root.bytes
}

// ropeNode is a leaf (children nil) holding a chunk of text, or an
// internal node summarizing its children.
type ropeNode struct {
	children []*ropeNode
	text     string
	bytes    int
	breaks   int
}

func (n *ropeNode) leaf() bool {
	return n.children == nil
}

func (n *ropeNode) recalc() {
	if n.leaf() {
		n.bytes = len(n.text)
		n.breaks = countLineBreaks(n.text)
		return
	}
	n.bytes, n.breaks = 0, 0
	for _, c := range n.children {
		n.bytes += c.bytes
		n.breaks += c.breaks
	}
}

func (n *ropeNode) appendRange(b *strings.Builder, lo, hi int) {
	if n.leaf() {
		b.WriteString(n.text[lo:hi])
		return
	}
	base := 0
	for _, c := range n.children {
		clo, chi := lo-base, hi-base
		base += c.bytes
		if chi <= 0 {
			break
		}
		if clo >= c.bytes {
			continue
		}
		if clo < 0 {
			clo = 0
		}
		if chi > c.bytes {
			chi = c.bytes
		}
		c.appendRange(b, clo, chi)
	}
}

// insert splices t at the node-relative offset off and returns an
// overflow sibling when the node had to split.
func (n *ropeNode) insert(off int, t string) *ropeNode {
	if n.leaf() {
		joined := n.text[:off] + t + n.text[off:]
		leaves := chunkLeaves(joined)
		if len(leaves) == 1 {
			n.text = joined
			n.recalc()
			return nil
		}
		*n = *buildNode(leaves)
		return nil
	}
	base := 0
	idx := len(n.children) - 1
	for i, c := range n.children {
		// An offset on a boundary goes to the left child.
		if off <= base+c.bytes {
			idx = i
			break
		}
		base += c.bytes
	}
	if extra := n.children[idx].insert(off-base, t); extra != nil {
		n.children = append(n.children, nil)
		copy(n.children[idx+2:], n.children[idx+1:])
		n.children[idx+1] = extra
	}
	if len(n.children) > maxChild {
		half := len(n.children) / 2
		sib := &ropeNode{children: append([]*ropeNode(nil), n.children[half:]...)}
		n.children = n.children[:half]
		n.recalc()
		sib.recalc()
		return sib
	}
	n.recalc()
	return nil
}

// remove deletes the node-relative byte range [lo, hi). Emptied
// children are dropped; an emptied internal node becomes an empty leaf.
func (n *ropeNode) remove(lo, hi int) {
	if n.leaf() {
		n.text = n.text[:lo] + n.text[hi:]
		n.recalc()
		return
	}
	base := 0
	kept := n.children[:0]
	for _, c := range n.children {
		clo, chi := lo-base, hi-base
		base += c.bytes
		if chi > 0 && clo < c.bytes {
			if clo < 0 {
				clo = 0
			}
			if chi > c.bytes {
				chi = c.bytes
			}
			c.remove(clo, chi)
		}
		if c.bytes > 0 {
			kept = append(kept, c)
		}
	}
	n.children = kept
	if len(n.children) == 0 {
		n.children = nil
		n.text = ""
	}
	n.recalc()
}

// chunkLeaves splits t into leaves of at most maxLeaf bytes, breaking
// only at rune boundaries and never between '\r' and '\n'.
func chunkLeaves(t string) []*ropeNode {
	if len(t) <= maxLeaf {
		l := &ropeNode{text: t}
		l.recalc()
		return []*ropeNode{l}
	}
	var leaves []*ropeNode
	for len(t) > 0 {
		end := maxLeaf
		if end >= len(t) {
			end = len(t)
		} else {
			for end > 0 && !utf8.RuneStart(t[end]) {
				end--
			}
			if end > 0 && t[end-1] == '\r' && t[end] == '\n' {
				end--
			}
			if end == 0 {
				end = maxLeaf
			}
		}
		l := &ropeNode{text: t[:end]}
		l.recalc()
		leaves = append(leaves, l)
		t = t[end:]
	}
	return leaves
}

// buildNode stacks leaves into a tree, maxChild wide per level.
func buildNode(nodes []*ropeNode) *ropeNode {
	for len(nodes) > 1 {
		var level []*ropeNode
		for len(nodes) > 0 {
			w := maxChild
			if w > len(nodes) {
				w = len(nodes)
			}
			p := &ropeNode{children: append([]*ropeNode(nil), nodes[:w]...)}
			p.recalc()
			level = append(level, p)
			nodes = nodes[w:]
		}
		nodes = level
	}
	return nodes[0]
}
