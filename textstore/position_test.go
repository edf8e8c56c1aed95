package textstore

import "testing"

func TestPositionLess(t *testing.T) {
	tests := []struct {
		a, b Position
		want bool
	}{
		{Pos(0, 0), Pos(1, 0), true},
		{Pos(5, 0), Pos(0, 1), true},
		{Pos(0, 1), Pos(5, 0), false},
		{Pos(2, 2), Pos(2, 2), false},
	}
	for _, tt := range tests {
		if got := tt.a.Less(tt.b); got != tt.want {
			t.Errorf("%v.Less(%v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestNewRangeNormalizes(t *testing.T) {
	r := NewRange(Pos(3, 2), Pos(1, 1))
	if r.Start != Pos(1, 1) || r.End != Pos(3, 2) {
		t.Errorf("NewRange = %v", r)
	}
}

func TestExpandPos(t *testing.T) {
	// An insertion spanning (2,1)-(1,2).
	ins := Range{Start: Pos(2, 1), End: Pos(1, 2)}
	tests := []struct {
		p, want Position
	}{
		{Pos(1, 1), Pos(1, 1)},
		{Pos(2, 1), Pos(1, 2)},
		{Pos(4, 1), Pos(3, 2)},
		{Pos(0, 2), Pos(0, 3)},
		{Pos(7, 5), Pos(7, 6)},
	}
	for _, tt := range tests {
		if got := ins.ExpandPos(tt.p); got != tt.want {
			t.Errorf("ExpandPos(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestShrinkPos(t *testing.T) {
	// A deletion spanning (2,1)-(1,2).
	del := Range{Start: Pos(2, 1), End: Pos(1, 2)}
	tests := []struct {
		p, want Position
	}{
		{Pos(1, 1), Pos(1, 1)},
		{Pos(3, 1), Pos(2, 1)},
		{Pos(0, 2), Pos(2, 1)},
		{Pos(1, 2), Pos(2, 1)},
		{Pos(4, 2), Pos(5, 1)},
		{Pos(7, 5), Pos(7, 4)},
	}
	for _, tt := range tests {
		if got := del.ShrinkPos(tt.p); got != tt.want {
			t.Errorf("ShrinkPos(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestByteRangeAdjust(t *testing.T) {
	ins := Bytes(3, 6)
	if got := ExpandedBy(ins, Bytes(1, 2)); got != Bytes(1, 2) {
		t.Errorf("ExpandedBy before = %v", got)
	}
	if got := ExpandedBy(ins, Bytes(4, 8)); got != Bytes(7, 11) {
		t.Errorf("ExpandedBy after = %v", got)
	}
	if got := ExpandedBy(ins, Bytes(1, 5)); got != Bytes(1, 8) {
		t.Errorf("ExpandedBy spanning = %v", got)
	}

	del := Bytes(3, 6)
	if got := ShrunkBy(del, Bytes(1, 2)); got != Bytes(1, 2) {
		t.Errorf("ShrunkBy before = %v", got)
	}
	if got := ShrunkBy(del, Bytes(4, 5)); got != Bytes(3, 3) {
		t.Errorf("ShrunkBy inside = %v", got)
	}
	if got := ShrunkBy(del, Bytes(7, 9)); got != Bytes(4, 6) {
		t.Errorf("ShrunkBy after = %v", got)
	}
	if got := ShrunkBy(del, Bytes(1, 9)); got != Bytes(1, 6) {
		t.Errorf("ShrunkBy spanning = %v", got)
	}
}
