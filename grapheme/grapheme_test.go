package grapheme

import (
	"strings"
	"testing"
)

func collect(c *Cursor) []string {
	var out []string
	for {
		g, ok := c.Next()
		if !ok {
			return out
		}
		out = append(out, g.String())
	}
}

func TestCursorForward(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"ascii", "abc", []string{"a", "b", "c"}},
		{"combining", "äbc", []string{"ä", "b", "c"}},
		{"crlf is one cluster", "a\r\nb", []string{"a", "\r\n", "b"}},
		{"lone cr", "a\rb", []string{"a", "\r", "b"}},
		{"emoji", "x🙂y", []string{"x", "🙂", "y"}},
		{"empty", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := StringSource(tt.text)
			c := NewCursor(src, 0, len(tt.text), 0)
			got := collect(c)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d clusters %q, want %d %q", len(got), got, len(tt.want), tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("cluster %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestCursorBackward(t *testing.T) {
	text := "äb\r\nc"
	src := StringSource(text)
	c := NewCursor(src, 0, len(text), len(text))
	want := []string{"c", "\r\n", "b", "ä"}
	for i, w := range want {
		g, ok := c.Prev()
		if !ok {
			t.Fatalf("Prev %d: no cluster", i)
		}
		if g.String() != w {
			t.Errorf("Prev %d = %q, want %q", i, g.String(), w)
		}
	}
	if _, ok := c.Prev(); ok {
		t.Error("Prev at start should fail")
	}
	if _, ok := c.Prev(); ok {
		t.Error("Prev at start should keep failing")
	}
}

func TestCursorSpans(t *testing.T) {
	text := "äb"
	c := NewCursor(StringSource(text), 0, len(text), 0)
	g, _ := c.Next()
	if g.Start() != 0 || g.End() != 3 {
		t.Errorf("first span = %d..%d, want 0..3", g.Start(), g.End())
	}
	g, _ = c.Next()
	if g.Start() != 3 || g.End() != 4 {
		t.Errorf("second span = %d..%d, want 3..4", g.Start(), g.End())
	}
}

func TestCursorSubrange(t *testing.T) {
	text := "hello world"
	c := NewCursor(StringSource(text), 6, 11, 6)
	got := collect(c)
	if strings.Join(got, "") != "world" {
		t.Errorf("subrange = %q, want %q", strings.Join(got, ""), "world")
	}
	if _, ok := c.Next(); ok {
		t.Error("Next at range end should fail")
	}
}

func TestCursorPeekDoesNotMove(t *testing.T) {
	c := NewCursor(StringSource("ab"), 0, 2, 1)
	if g, ok := c.PeekNext(); !ok || !g.Is("b") {
		t.Fatalf("PeekNext = %v, %v", g, ok)
	}
	if g, ok := c.PeekPrev(); !ok || !g.Is("a") {
		t.Fatalf("PeekPrev = %v, %v", g, ok)
	}
	if c.Offset() != 1 {
		t.Errorf("offset moved to %d", c.Offset())
	}
}

func TestCursorWideCluster(t *testing.T) {
	// A single cluster larger than the inspection window.
	text := "x" + "a" + strings.Repeat("̈", 200) + "y"
	c := NewCursor(StringSource(text), 0, len(text), 0)
	got := collect(c)
	if len(got) != 3 {
		t.Fatalf("got %d clusters, want 3", len(got))
	}
	if len(got[1]) != 1+200*2 {
		t.Errorf("middle cluster is %d bytes, want %d", len(got[1]), 1+200*2)
	}
	back := NewCursor(StringSource(text), 0, len(text), len(text))
	back.Prev()
	g, ok := back.Prev()
	if !ok || g.String() != got[1] {
		t.Errorf("backward middle cluster mismatch")
	}
}

func TestChunkedSource(t *testing.T) {
	// Chunks split at rune boundaries only.
	chunks := []string{"he", "ll", "o\r", "\nx"}
	src := chunkSource(chunks)
	c := NewCursor(src, 0, src.Len(), 0)
	want := []string{"h", "e", "l", "l", "o", "\r\n", "x"}
	got := collect(c)
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("got %q, want %q", got, want)
	}
}

type chunkSource []string

func (s chunkSource) Chunk(off int) (string, int) {
	base := 0
	for i, c := range s {
		if off < base+len(c) || i == len(s)-1 {
			return c, base
		}
		base += len(c)
	}
	return "", base
}

func (s chunkSource) Len() int {
	n := 0
	for _, c := range s {
		n += len(c)
	}
	return n
}

func TestClassifiers(t *testing.T) {
	tests := []struct {
		g            string
		space, alnum, brk bool
	}{
		{"a", false, true, false},
		{"_", false, false, false},
		{"1", false, true, false},
		{" ", true, false, false},
		{"\t", true, false, false},
		{"\n", true, false, true},
		{"\r", true, false, true},
		{"\r\n", true, false, true},
		{"(", false, false, false},
		{"ä", false, true, false},
	}
	for _, tt := range tests {
		g := New(tt.g, 0, len(tt.g))
		if got := g.IsWhitespace(); got != tt.space {
			t.Errorf("IsWhitespace(%q) = %v, want %v", tt.g, got, tt.space)
		}
		if got := g.IsAlphanumeric(); got != tt.alnum {
			t.Errorf("IsAlphanumeric(%q) = %v, want %v", tt.g, got, tt.alnum)
		}
		if got := g.IsLineBreak(); got != tt.brk {
			t.Errorf("IsLineBreak(%q) = %v, want %v", tt.g, got, tt.brk)
		}
	}
}

func TestWidth(t *testing.T) {
	tests := []struct {
		g    string
		want int
	}{
		{"a", 1},
		{"世", 2},
		{"ä", 1},
	}
	for _, tt := range tests {
		if got := New(tt.g, 0, len(tt.g)).Width(); got != tt.want {
			t.Errorf("Width(%q) = %d, want %d", tt.g, got, tt.want)
		}
	}
}
