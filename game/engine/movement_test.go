package engine

import (
	"errors"
	"testing"
)

// createTestGameState builds a 9x9 state with the pawns at the given cells and P1 to move
func createTestGameState(p1, p2 Position) *GameState {
	s := NewGameState(9, 9, 10)
	s.P1.Position = p1
	s.P2.Position = p2
	return s
}

// withWall returns a copy of s with a wall placed and the graph rebuilt
func withWall(s *GameState, o Orientation, anchor Position) *GameState {
	next := s.clone()
	next.Walls = s.Walls.With(o, anchor)
	next.graph = BuildGraph(next.Walls)
	return next
}

func TestValidateMove_PlainSteps(t *testing.T) {
	s := NewGameState(9, 9, 10)

	tests := []struct {
		name    string
		target  Position
		wantErr error
	}{
		{"down", Position{Row: 1, Col: 4}, nil},
		{"left", Position{Row: 0, Col: 3}, nil},
		{"right", Position{Row: 0, Col: 5}, nil},
		{"off the top edge", Position{Row: -1, Col: 4}, ErrOutOfBounds},
		{"off the right edge", Position{Row: 0, Col: 9}, ErrOutOfBounds},
		{"diagonal", Position{Row: 1, Col: 5}, ErrIllegalAdjacency},
		{"two cells away", Position{Row: 2, Col: 4}, ErrIllegalAdjacency},
		{"onto opponent", Position{Row: 8, Col: 4}, ErrOccupiedTarget},
		{"stay in place", Position{Row: 0, Col: 4}, ErrIllegalAdjacency},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateMove(s, Player1, tt.target)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Expected move to %v to be legal, got %v", tt.target, err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidateMove_WallBlocksStep(t *testing.T) {
	s := withWall(NewGameState(9, 9, 10), Horizontal, Position{Row: 0, Col: 3})

	err := ValidateMove(s, Player1, Position{Row: 1, Col: 4})
	if !errors.Is(err, ErrIllegalAdjacency) {
		t.Fatalf("Expected wall to block the step, got %v", err)
	}

	var rej *Rejection
	if !errors.As(err, &rej) {
		t.Fatalf("Expected a *Rejection, got %T", err)
	}
	if rej.Reason != "illegal move to (1,4) (blocked or not adjacent/jump)" {
		t.Errorf("Unexpected reason: %q", rej.Reason)
	}
	if rej.Code() != "illegal_adjacency" {
		t.Errorf("Expected code illegal_adjacency, got %q", rej.Code())
	}
}

func TestValidateMove_StraightJump(t *testing.T) {
	s := createTestGameState(Position{Row: 1, Col: 4}, Position{Row: 2, Col: 4})

	if err := ValidateMove(s, Player1, Position{Row: 3, Col: 4}); err != nil {
		t.Fatalf("Expected straight jump to be legal, got %v", err)
	}

	// While the straight landing is open, side-steps are not available.
	for _, side := range []Position{{Row: 2, Col: 3}, {Row: 2, Col: 5}} {
		if err := ValidateMove(s, Player1, side); !errors.Is(err, ErrIllegalAdjacency) {
			t.Errorf("Expected side-step to %v to be rejected, got %v", side, err)
		}
	}
}

func TestValidateMove_SideStepWhenStraightBlocked(t *testing.T) {
	base := createTestGameState(Position{Row: 1, Col: 4}, Position{Row: 2, Col: 4})
	s := withWall(base, Horizontal, Position{Row: 2, Col: 4})

	if err := ValidateMove(s, Player1, Position{Row: 3, Col: 4}); !errors.Is(err, ErrIllegalAdjacency) {
		t.Fatalf("Expected straight jump through wall to be rejected, got %v", err)
	}
	for _, side := range []Position{{Row: 2, Col: 3}, {Row: 2, Col: 5}} {
		if err := ValidateMove(s, Player1, side); err != nil {
			t.Errorf("Expected side-step to %v to be legal, got %v", side, err)
		}
	}

	// The base state is not affected by the scratch wall.
	if err := ValidateMove(base, Player1, Position{Row: 3, Col: 4}); err != nil {
		t.Errorf("Expected base state to still allow the jump, got %v", err)
	}
}

func TestValidateMove_SideStepAtBoardEdge(t *testing.T) {
	s := createTestGameState(Position{Row: 7, Col: 4}, Position{Row: 8, Col: 4})

	if err := ValidateMove(s, Player1, Position{Row: 9, Col: 4}); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("Expected landing off board to be out of bounds, got %v", err)
	}
	for _, side := range []Position{{Row: 8, Col: 3}, {Row: 8, Col: 5}} {
		if err := ValidateMove(s, Player1, side); err != nil {
			t.Errorf("Expected side-step to %v to be legal, got %v", side, err)
		}
	}
}

func TestValidateMove_SideStepBlockedByWall(t *testing.T) {
	s := createTestGameState(Position{Row: 1, Col: 4}, Position{Row: 2, Col: 4})
	s = withWall(s, Horizontal, Position{Row: 2, Col: 4})
	s = withWall(s, Vertical, Position{Row: 1, Col: 4})

	// Vertical wall at (1,4) separates (2,4) from (2,5).
	if err := ValidateMove(s, Player1, Position{Row: 2, Col: 5}); !errors.Is(err, ErrIllegalAdjacency) {
		t.Errorf("Expected side-step through wall to be rejected, got %v", err)
	}
	if err := ValidateMove(s, Player1, Position{Row: 2, Col: 3}); err != nil {
		t.Errorf("Expected open side-step to be legal, got %v", err)
	}
}

func TestLegalMoves(t *testing.T) {
	tests := []struct {
		name  string
		state *GameState
		want  []Position
	}{
		{
			name:  "initial P1",
			state: NewGameState(9, 9, 10),
			want:  []Position{{Row: 0, Col: 3}, {Row: 0, Col: 5}, {Row: 1, Col: 4}},
		},
		{
			name:  "straight jump replaces opponent cell",
			state: createTestGameState(Position{Row: 1, Col: 4}, Position{Row: 2, Col: 4}),
			want:  []Position{{Row: 0, Col: 4}, {Row: 1, Col: 3}, {Row: 1, Col: 5}, {Row: 3, Col: 4}},
		},
		{
			name: "side-steps when straight is walled",
			state: withWall(createTestGameState(Position{Row: 1, Col: 4}, Position{Row: 2, Col: 4}),
				Horizontal, Position{Row: 2, Col: 4}),
			want: []Position{{Row: 0, Col: 4}, {Row: 1, Col: 3}, {Row: 1, Col: 5}, {Row: 2, Col: 3}, {Row: 2, Col: 5}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LegalMoves(tt.state, tt.state.Turn)
			if len(got) != len(tt.want) {
				t.Fatalf("Expected %d moves %v, got %d %v", len(tt.want), tt.want, len(got), got)
			}
			seen := make(map[Position]bool)
			for _, p := range got {
				seen[p] = true
				if err := ValidateMove(tt.state, tt.state.Turn, p); err != nil {
					t.Errorf("LegalMoves returned %v but ValidateMove rejects it: %v", p, err)
				}
			}
			for _, p := range tt.want {
				if !seen[p] {
					t.Errorf("Expected %v among legal moves %v", p, got)
				}
			}
		})
	}
}

func TestShortestPath(t *testing.T) {
	s := NewGameState(9, 9, 10)
	if d := ShortestPath(s, Player1); d != 8 {
		t.Errorf("Expected P1 distance 8, got %d", d)
	}
	if d := ShortestPath(s, Player2); d != 8 {
		t.Errorf("Expected P2 distance 8, got %d", d)
	}

	s = withWall(s, Horizontal, Position{Row: 0, Col: 3})
	if d := ShortestPath(s, Player1); d != 9 {
		t.Errorf("Expected P1 detour distance 9, got %d", d)
	}
}
