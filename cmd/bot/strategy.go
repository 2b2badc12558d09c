package main

import "github.com/wricardo/quoridor/game/engine"

// Strategy picks greedy actions: step along the shortest path, and when the
// opponent is closer to its goal row, place the wall that slows it down the
// most relative to the bot's own detour.
type Strategy struct {
	UseWalls bool
}

// Next returns the action for the player to move, or false when the game is over.
func (s Strategy) Next(state *engine.GameState) (engine.Action, bool) {
	if engine.IsTerminal(state) {
		return engine.Action{}, false
	}
	me := state.Turn

	if s.UseWalls && state.WallsLeft(me) > 0 {
		if engine.ShortestPath(state, me.Opponent()) < engine.ShortestPath(state, me) {
			if wall, gain := bestWall(state, me); gain > 0 {
				return wall, true
			}
		}
	}

	return bestMove(state, me)
}

// bestMove returns the legal move that leaves the shortest remaining path.
func bestMove(state *engine.GameState, me engine.PlayerID) (engine.Action, bool) {
	moves := engine.LegalMoves(state, me)
	if len(moves) == 0 {
		return engine.Action{}, false
	}

	g := state.Graph()
	goal := state.GoalRow(me)
	best, bestDist := moves[0], -1
	for _, m := range moves {
		d := g.Distance(m, goal)
		if d < 0 {
			continue
		}
		if bestDist < 0 || d < bestDist {
			best, bestDist = m, d
		}
	}
	return engine.MoveAction(best), true
}

// bestWall scores every legal wall by how much longer it makes the opponent's
// path minus how much longer it makes the bot's own.
func bestWall(state *engine.GameState, me engine.PlayerID) (engine.Action, int) {
	opp := me.Opponent()
	myPath := engine.ShortestPath(state, me)
	oppPath := engine.ShortestPath(state, opp)

	var best engine.Action
	bestGain := 0
	for _, o := range []engine.Orientation{engine.Horizontal, engine.Vertical} {
		for _, anchor := range engine.LegalWalls(state, me, o) {
			a := engine.WallAction(o, anchor)
			next := engine.Apply(state, a)
			gain := (engine.ShortestPath(next, opp) - oppPath) - (engine.ShortestPath(next, me) - myPath)
			if gain > bestGain {
				best, bestGain = a, gain
			}
		}
	}
	return best, bestGain
}
