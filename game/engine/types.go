package engine

import (
	"encoding/json"
	"fmt"
)

const (
	// Validation constants
	MinBoardSize      = 2
	MaxBoardSize      = 25
	MaxWallsPerPlayer = 100

	DefaultRows           = 9
	DefaultCols           = 9
	DefaultWallsPerPlayer = 10
)

// Position represents a (row, col) cell coordinate
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Add returns the position offset by d
func (p Position) Add(d Position) Position {
	return Position{Row: p.Row + d.Row, Col: p.Col + d.Col}
}

// Sub returns the offset from q to p
func (p Position) Sub(q Position) Position {
	return Position{Row: p.Row - q.Row, Col: p.Col - q.Col}
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// PlayerID identifies one of the two pawns
type PlayerID int

const (
	NoPlayer PlayerID = 0
	Player1  PlayerID = 1
	Player2  PlayerID = 2
)

// Opponent returns the other player
func (p PlayerID) Opponent() PlayerID {
	if p == Player1 {
		return Player2
	}
	return Player1
}

func (p PlayerID) String() string {
	switch p {
	case Player1:
		return "P1"
	case Player2:
		return "P2"
	}
	return "none"
}

// Orientation of a wall
type Orientation string

const (
	Horizontal Orientation = "h"
	Vertical   Orientation = "v"
)

// ParseOrientation accepts "h"/"horizontal" and "v"/"vertical"
func ParseOrientation(s string) (Orientation, error) {
	switch s {
	case "h", "H", "horizontal":
		return Horizontal, nil
	case "v", "V", "vertical":
		return Vertical, nil
	}
	return "", fmt.Errorf("unknown wall orientation %q", s)
}

// ActionKind is the closed set of actions a player can submit
type ActionKind string

const (
	ActionMove  ActionKind = "move"
	ActionWallH ActionKind = "wall_h"
	ActionWallV ActionKind = "wall_v"
)

// Action is a tagged variant: Target is set for moves, Anchor for walls.
type Action struct {
	Kind   ActionKind `json:"kind"`
	Target Position   `json:"target"`
	Anchor Position   `json:"anchor"`
}

// MoveAction builds a pawn move to target
func MoveAction(target Position) Action {
	return Action{Kind: ActionMove, Target: target}
}

// WallAction builds a wall placement at anchor
func WallAction(o Orientation, anchor Position) Action {
	kind := ActionWallH
	if o == Vertical {
		kind = ActionWallV
	}
	return Action{Kind: kind, Anchor: anchor}
}

// IsWall reports whether the action places a wall
func (a Action) IsWall() bool {
	return a.Kind == ActionWallH || a.Kind == ActionWallV
}

// Orientation returns the wall orientation of a wall action
func (a Action) Orientation() Orientation {
	if a.Kind == ActionWallV {
		return Vertical
	}
	return Horizontal
}

// String renders the action in shell command form
func (a Action) String() string {
	switch a.Kind {
	case ActionMove:
		return fmt.Sprintf("move %d %d", a.Target.Row, a.Target.Col)
	case ActionWallH:
		return fmt.Sprintf("wall h %d %d", a.Anchor.Row, a.Anchor.Col)
	case ActionWallV:
		return fmt.Sprintf("wall v %d %d", a.Anchor.Row, a.Anchor.Col)
	}
	return string(a.Kind)
}

// Pawn is a player's piece and remaining wall budget
type Pawn struct {
	Position  Position `json:"position"`
	WallsLeft int      `json:"walls_left"`
}

// GameConfig describes a board variant loaded from JSON
type GameConfig struct {
	Name           string `json:"name"`
	Description    string `json:"description"`
	Rows           int    `json:"rows"`
	Cols           int    `json:"cols"`
	WallsPerPlayer int    `json:"walls_per_player"`
}

// GameState is an immutable snapshot of a game. Transitions build new values;
// the wall layout and graph are shared between snapshots until a wall is placed.
type GameState struct {
	Rows       int         `json:"rows"`
	Cols       int         `json:"cols"`
	Walls      *WallLayout `json:"walls"`
	P1         Pawn        `json:"p1"`
	P2         Pawn        `json:"p2"`
	Turn       PlayerID    `json:"turn"`
	MoveNumber int         `json:"move_number"`
	ConfigName string      `json:"config_name,omitempty"`

	graph *Graph
}

// NewGameState creates the initial state for a rows x cols board
func NewGameState(rows, cols, walls int) *GameState {
	layout := NewWallLayout(rows, cols)
	return &GameState{
		Rows:  rows,
		Cols:  cols,
		Walls: layout,
		P1:    Pawn{Position: Position{Row: 0, Col: cols / 2}, WallsLeft: walls},
		P2:    Pawn{Position: Position{Row: rows - 1, Col: cols / 2}, WallsLeft: walls},
		Turn:  Player1,
		graph: BuildGraph(layout),
	}
}

// UnmarshalJSON decodes a state and builds its graph. A missing wall layout
// decodes as an empty one.
func (s *GameState) UnmarshalJSON(data []byte) error {
	type plain GameState
	var decoded plain
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	*s = GameState(decoded)

	if s.Rows < 0 || s.Rows > MaxBoardSize || s.Cols < 0 || s.Cols > MaxBoardSize {
		return nil
	}
	if s.Walls == nil {
		s.Walls = NewWallLayout(s.Rows, s.Cols)
	}
	if s.Walls.Rows >= 0 && s.Walls.Rows <= MaxBoardSize && s.Walls.Cols >= 0 && s.Walls.Cols <= MaxBoardSize {
		s.graph = BuildGraph(s.Walls)
	}
	return nil
}

// Graph returns the board graph. States built outside NewGameState, Apply or
// UnmarshalJSON get a fresh graph on every call.
func (s *GameState) Graph() *Graph {
	if s.graph != nil {
		return s.graph
	}
	if s.Walls == nil {
		return BuildGraph(NewWallLayout(s.Rows, s.Cols))
	}
	return BuildGraph(s.Walls)
}

// Pawn returns the pawn of the given player
func (s *GameState) Pawn(p PlayerID) Pawn {
	if p == Player2 {
		return s.P2
	}
	return s.P1
}

// PositionOf returns the position of the given player's pawn
func (s *GameState) PositionOf(p PlayerID) Position {
	return s.Pawn(p).Position
}

// WallsLeft returns the remaining wall count of the given player
func (s *GameState) WallsLeft(p PlayerID) int {
	return s.Pawn(p).WallsLeft
}

// GoalRow returns the row the given player must reach
func (s *GameState) GoalRow(p PlayerID) int {
	if p == Player1 {
		return s.Rows - 1
	}
	return 0
}

// InBounds reports whether pos lies on the board
func (s *GameState) InBounds(pos Position) bool {
	return pos.Row >= 0 && pos.Row < s.Rows && pos.Col >= 0 && pos.Col < s.Cols
}

// OccupantAt returns the player standing on pos, or NoPlayer
func (s *GameState) OccupantAt(pos Position) PlayerID {
	switch pos {
	case s.P1.Position:
		return Player1
	case s.P2.Position:
		return Player2
	}
	return NoPlayer
}

// Neighbors returns the graph neighbours of pos under the current walls
func (s *GameState) Neighbors(pos Position) []Position {
	return s.Graph().Neighbors(pos)
}

// clone returns a shallow copy; Walls and graph stay shared
func (s *GameState) clone() *GameState {
	next := *s
	return &next
}

// pawnRef returns a pointer to the pawn of p, for use on cloned states
func (s *GameState) pawnRef(p PlayerID) *Pawn {
	if p == Player2 {
		return &s.P2
	}
	return &s.P1
}
