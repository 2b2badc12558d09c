// Package engine provides the core rules of Quoridor on an n x m board.
//
// The engine package implements:
//   - The wall layout: two segment grids, each wall covering two segments
//   - The board graph: per-cell adjacency rebuilt from the wall layout
//   - Move legality, including straight and side-step jumps over the opponent
//   - Wall legality, including the rule that neither pawn may be cut off
//   - State transitions and the terminal check
//
// Core Types:
//
// GameState is an immutable snapshot: Apply returns a new value and never
// modifies its input. Action is a tagged variant with three kinds (move,
// wall_h, wall_v). Validators return a *Rejection whose Err is one of the
// package sentinels (ErrOutOfBounds, ErrPathBlocked, ...). GameEngine wraps a
// state and a GameConfig for callers that want a mutable handle.
//
// Usage:
//
//	eng := engine.NewEngineWithDefaults()
//
//	// Move P1 one row down
//	state, err := eng.Submit(engine.MoveAction(engine.Position{Row: 1, Col: 4}))
//	if err != nil {
//		fmt.Println("Invalid:", err)
//	}
//
//	// P2 places a horizontal wall
//	state, err = eng.Submit(engine.WallAction(engine.Horizontal, engine.Position{Row: 6, Col: 3}))
//
// Game Rules:
//
// Player 1 starts at the top-centre cell and wins on reaching the last row;
// Player 2 starts at the bottom-centre cell and wins on reaching row 0. Each
// turn a player either moves its pawn or places one of its walls. A wall may
// never leave either pawn without a route to its goal row.
package engine
