package engine

// ValidateWall checks whether placer may put a wall of orientation o at anchor.
//
// The connectivity check runs against a scratch layout with the wall placed;
// the state passed in is never modified.
func ValidateWall(s *GameState, placer PlayerID, o Orientation, anchor Position) error {
	if s.WallsLeft(placer) <= 0 {
		return reject(ErrNoWallsRemaining, "%s has no walls left", placer)
	}

	if !s.Walls.ValidAnchor(anchor) {
		return reject(ErrOutOfBounds, "wall anchor out of bounds: %s", anchor)
	}

	if s.Walls.Overlaps(o, anchor) {
		return reject(ErrWallOverlap, "wall overlaps existing %s wall", orientationName(o))
	}

	sim := BuildGraph(s.Walls.With(o, anchor))
	for _, p := range []PlayerID{Player1, Player2} {
		if !sim.HasPath(s.PositionOf(p), s.GoalRow(p)) {
			return reject(ErrPathBlocked, "wall blocks %s's path", p)
		}
	}
	return nil
}

// LegalWalls returns every anchor where the player may place a wall of orientation o
func LegalWalls(s *GameState, p PlayerID, o Orientation) []Position {
	if s.WallsLeft(p) <= 0 {
		return nil
	}
	var anchors []Position
	for r := 0; r <= s.Rows-2; r++ {
		for c := 0; c <= s.Cols-2; c++ {
			anchor := Position{Row: r, Col: c}
			if ValidateWall(s, p, o, anchor) == nil {
				anchors = append(anchors, anchor)
			}
		}
	}
	return anchors
}

func orientationName(o Orientation) string {
	if o == Vertical {
		return "vertical"
	}
	return "horizontal"
}
