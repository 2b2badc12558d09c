package engine

import (
	"testing"
)

func pos(r, c int) Position { return Position{Row: r, Col: c} }

func TestNewWallLayout_Dimensions(t *testing.T) {
	l := NewWallLayout(9, 7)

	if len(l.Horizontal) != 8 || len(l.Vertical) != 9 {
		t.Fatalf("Expected 8 horizontal and 9 vertical rows, got %d and %d", len(l.Horizontal), len(l.Vertical))
	}
	for r, row := range l.Horizontal {
		if len(row) != 7 {
			t.Errorf("Horizontal row %d has %d segments, want 7", r, len(row))
		}
	}
	for r, row := range l.Vertical {
		if len(row) != 6 {
			t.Errorf("Vertical row %d has %d segments, want 6", r, len(row))
		}
	}

	if h, v := l.Count(); h != 0 || v != 0 {
		t.Errorf("Expected empty layout, got %d horizontal and %d vertical segments", h, v)
	}
}

func TestWallLayout_PlaceSetsBothSegments(t *testing.T) {
	l := NewWallLayout(9, 9)

	l.Place(Horizontal, pos(3, 2))
	if !l.HasHorizontal(3, 2) || !l.HasHorizontal(3, 3) {
		t.Error("Horizontal wall should set segments (3,2) and (3,3)")
	}
	if l.HasHorizontal(3, 4) {
		t.Error("Horizontal wall should not reach (3,4)")
	}

	l.Place(Vertical, pos(5, 6))
	if !l.HasVertical(5, 6) || !l.HasVertical(6, 6) {
		t.Error("Vertical wall should set segments (5,6) and (6,6)")
	}
	if l.HasVertical(7, 6) {
		t.Error("Vertical wall should not reach (7,6)")
	}

	if h, v := l.Count(); h != 2 || v != 2 {
		t.Errorf("Expected 2 and 2 segments, got %d and %d", h, v)
	}
}

func TestWallLayout_WithLeavesOriginalUntouched(t *testing.T) {
	l := NewWallLayout(5, 5)
	next := l.With(Horizontal, pos(1, 1))

	if !next.HasHorizontal(1, 1) {
		t.Error("New layout should hold the wall")
	}
	if l.HasHorizontal(1, 1) {
		t.Error("Original layout must not change")
	}
}

func TestWallLayout_Overlaps(t *testing.T) {
	l := NewWallLayout(9, 9).With(Horizontal, pos(4, 4))

	tests := []struct {
		name   string
		o      Orientation
		anchor Position
		want   bool
	}{
		{"same anchor", Horizontal, pos(4, 4), true},
		{"shares right segment", Horizontal, pos(4, 5), true},
		{"shares left segment", Horizontal, pos(4, 3), true},
		{"adjacent without sharing", Horizontal, pos(4, 6), false},
		{"different row", Horizontal, pos(3, 4), false},
		{"crossing vertical is not an overlap", Vertical, pos(4, 4), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := l.Overlaps(tt.o, tt.anchor); got != tt.want {
				t.Errorf("Overlaps(%s, %v) = %v, want %v", tt.o, tt.anchor, got, tt.want)
			}
		})
	}
}

func TestWallLayout_ValidAnchor(t *testing.T) {
	l := NewWallLayout(9, 9)

	for _, p := range []Position{pos(0, 0), pos(7, 7)} {
		if !l.ValidAnchor(p) {
			t.Errorf("Anchor %v should be valid", p)
		}
	}
	for _, p := range []Position{pos(8, 0), pos(0, 8), pos(-1, 3)} {
		if l.ValidAnchor(p) {
			t.Errorf("Anchor %v should be invalid", p)
		}
	}
}

func TestWallLayout_Paired(t *testing.T) {
	l := NewWallLayout(5, 5).With(Horizontal, pos(1, 1)).With(Vertical, pos(2, 3))
	if !l.Paired() {
		t.Fatal("Layout built from walls should be paired")
	}

	// Two walls side by side form a run of four segments.
	if !NewWallLayout(5, 5).With(Horizontal, pos(0, 0)).With(Horizontal, pos(0, 2)).Paired() {
		t.Error("A run of two walls should be paired")
	}

	lone := NewWallLayout(5, 5)
	lone.Horizontal[2][4] = true
	if lone.Paired() {
		t.Error("A single horizontal segment should not be paired")
	}

	odd := NewWallLayout(5, 5).With(Vertical, pos(0, 1))
	odd.Vertical[2][1] = true
	if odd.Paired() {
		t.Error("A run of three vertical segments should not be paired")
	}
}

func TestBuildGraph_EmptyBoard(t *testing.T) {
	g := BuildGraph(NewWallLayout(9, 9))

	tests := []struct {
		name string
		cell Position
		want int
	}{
		{"corner", pos(0, 0), 2},
		{"edge", pos(0, 4), 3},
		{"centre", pos(4, 4), 4},
		{"out of bounds", pos(9, 0), 0},
	}
	for _, tt := range tests {
		if got := len(g.Neighbors(tt.cell)); got != tt.want {
			t.Errorf("%s: expected %d neighbours, got %d", tt.name, tt.want, got)
		}
	}
}

func TestBuildGraph_WallsRemoveEdgesSymmetrically(t *testing.T) {
	l := NewWallLayout(9, 9).With(Horizontal, pos(2, 4)).With(Vertical, pos(5, 1))
	g := BuildGraph(l)

	tests := []struct {
		a, b Position
		want bool
	}{
		// Horizontal wall at (2,4) covers columns 4 and 5 between rows 2 and 3.
		{pos(2, 4), pos(3, 4), false},
		{pos(3, 4), pos(2, 4), false},
		{pos(2, 5), pos(3, 5), false},
		{pos(2, 3), pos(3, 3), true},
		{pos(2, 6), pos(3, 6), true},
		// Vertical wall at (5,1) covers rows 5 and 6 between columns 1 and 2.
		{pos(5, 1), pos(5, 2), false},
		{pos(6, 2), pos(6, 1), false},
		{pos(7, 1), pos(7, 2), true},
	}
	for _, tt := range tests {
		if got := g.Adjacent(tt.a, tt.b); got != tt.want {
			t.Errorf("Adjacent(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}

	for r := 0; r < 9; r++ {
		for c := 0; c < 9; c++ {
			for _, n := range g.Neighbors(pos(r, c)) {
				if !g.Adjacent(n, pos(r, c)) {
					t.Errorf("Adjacency %v-%v must be symmetric", pos(r, c), n)
				}
			}
		}
	}
}

func TestGraph_DistanceAndHasPath(t *testing.T) {
	g := BuildGraph(NewWallLayout(9, 9))
	if d := g.Distance(pos(0, 4), 8); d != 8 {
		t.Errorf("Expected distance 8, got %d", d)
	}
	if d := g.Distance(pos(8, 4), 8); d != 0 {
		t.Errorf("Expected distance 0 on the goal row, got %d", d)
	}
	if !g.HasPath(pos(0, 4), 8) {
		t.Error("Empty board should have a path")
	}

	// A full barrier between rows 0 and 1 on a 4-column board.
	l := NewWallLayout(3, 4).With(Horizontal, pos(0, 0)).With(Horizontal, pos(0, 2))
	g = BuildGraph(l)
	if g.HasPath(pos(0, 1), 2) {
		t.Error("Barrier should cut row 0 off from row 2")
	}
	if d := g.Distance(pos(0, 1), 2); d != -1 {
		t.Errorf("Expected -1 for no path, got %d", d)
	}
	if !g.HasPath(pos(2, 1), 1) {
		t.Error("Rows below the barrier should stay connected")
	}
}
