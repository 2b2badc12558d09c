package engine

// ValidateMove checks whether mover may move its pawn to target.
// Rules are checked in order and the first violation is returned.
func ValidateMove(s *GameState, mover PlayerID, target Position) error {
	if !s.InBounds(target) {
		return reject(ErrOutOfBounds, "move out of bounds: %s", target)
	}

	opp := s.PositionOf(mover.Opponent())
	if target == opp {
		return reject(ErrOccupiedTarget, "cannot move onto opponent at %s", target)
	}

	if !reachableStep(s.Graph(), s.PositionOf(mover), opp, target) {
		return reject(ErrIllegalAdjacency, "illegal move to %s (blocked or not adjacent/jump)", target)
	}
	return nil
}

// reachableStep applies the plain step, straight jump and side-step rules
func reachableStep(g *Graph, me, opp, target Position) bool {
	for _, n := range g.Neighbors(me) {
		if n == target && n != opp {
			return true
		}
		if n == opp {
			for _, landing := range jumpTargets(g, me, opp) {
				if landing == target {
					return true
				}
			}
		}
	}
	return false
}

// jumpTargets lists the landing cells when jumping over opp from me. The
// straight landing is the only option while it is open; otherwise any open
// neighbour of opp other than me is a side-step landing.
func jumpTargets(g *Graph, me, opp Position) []Position {
	straight := opp.Add(opp.Sub(me))
	if g.Adjacent(opp, straight) {
		return []Position{straight}
	}
	var targets []Position
	for _, side := range g.Neighbors(opp) {
		if side != me {
			targets = append(targets, side)
		}
	}
	return targets
}

// LegalMoves returns every cell the given player's pawn may move to
func LegalMoves(s *GameState, p PlayerID) []Position {
	g := s.Graph()
	me := s.PositionOf(p)
	opp := s.PositionOf(p.Opponent())

	var moves []Position
	for _, n := range g.Neighbors(me) {
		if n != opp {
			moves = append(moves, n)
			continue
		}
		moves = append(moves, jumpTargets(g, me, opp)...)
	}
	return moves
}

// ShortestPath returns the number of steps the player needs to reach its goal
// row ignoring the opponent pawn, or -1 when no path exists.
func ShortestPath(s *GameState, p PlayerID) int {
	return s.Graph().Distance(s.PositionOf(p), s.GoalRow(p))
}
