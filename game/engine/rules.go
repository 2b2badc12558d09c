package engine

// Validate checks action for the player whose turn it is
func Validate(s *GameState, a Action) error {
	if IsTerminal(s) {
		return reject(ErrGameOver, "game is over, %s won", winnerOf(s))
	}

	switch a.Kind {
	case ActionMove:
		return ValidateMove(s, s.Turn, a.Target)
	case ActionWallH:
		return ValidateWall(s, s.Turn, Horizontal, a.Anchor)
	case ActionWallV:
		return ValidateWall(s, s.Turn, Vertical, a.Anchor)
	default:
		return reject(ErrUnknownAction, "unknown action %q", a.Kind)
	}
}

// Apply returns the state after the current player performs a.
//
// Apply does not validate: a must have passed Validate for s. The input state
// is left untouched and shares its layout and graph with the result unless a
// wall was placed.
func Apply(s *GameState, a Action) *GameState {
	next := s.clone()
	mover := s.Turn

	switch a.Kind {
	case ActionMove:
		next.pawnRef(mover).Position = a.Target
	case ActionWallH, ActionWallV:
		next.Walls = s.Walls.With(a.Orientation(), a.Anchor)
		next.graph = BuildGraph(next.Walls)
		next.pawnRef(mover).WallsLeft--
	}

	next.Turn = mover.Opponent()
	next.MoveNumber++
	return next
}

// IsTerminal reports whether either pawn stands on its goal row
func IsTerminal(s *GameState) bool {
	return s.P1.Position.Row == s.Rows-1 || s.P2.Position.Row == 0
}

// Winner returns the player that reached its goal row
func Winner(s *GameState) (PlayerID, bool) {
	w := winnerOf(s)
	return w, w != NoPlayer
}

func winnerOf(s *GameState) PlayerID {
	switch {
	case s.P1.Position.Row == s.Rows-1:
		return Player1
	case s.P2.Position.Row == 0:
		return Player2
	}
	return NoPlayer
}
