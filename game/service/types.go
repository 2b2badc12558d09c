package service

import (
	"time"

	"github.com/wricardo/quoridor/game/engine"
)

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string             `json:"id"`
	ConfigName     string             `json:"config_name"`
	CreatedAt      time.Time          `json:"created_at"`
	LastAccessedAt time.Time          `json:"last_accessed_at"`
	GameState      *engine.GameState  `json:"game_state"`
	GameConfig     *engine.GameConfig `json:"game_config"`
	GameOver       bool               `json:"game_over"`
	Winner         string             `json:"winner,omitempty"`
}

// ActionResult contains the result of a move or wall placement.
// A rejected action is not an error: Success is false and Code/Reason
// describe the rejection.
type ActionResult struct {
	Success    bool              `json:"success"`
	Action     string            `json:"action"`
	Player     string            `json:"player"`
	Code       string            `json:"code,omitempty"`
	Reason     string            `json:"reason,omitempty"`
	Message    string            `json:"message"`
	GameState  *engine.GameState `json:"game_state"`
	GameOver   bool              `json:"game_over"`
	Winner     string            `json:"winner,omitempty"`
	LegalMoves []engine.Position `json:"legal_moves,omitempty"`
	Events     []GameEvent       `json:"events,omitempty"`
}

// LegalMoves lists what the player to move may do
type LegalMoves struct {
	Player          string            `json:"player"`
	Moves           []engine.Position `json:"moves"`
	WallsLeft       int               `json:"walls_left"`
	HorizontalWalls []engine.Position `json:"horizontal_walls,omitempty"`
	VerticalWalls   []engine.Position `json:"vertical_walls,omitempty"`
	ShortestPath    int               `json:"shortest_path"`
	OpponentPath    int               `json:"opponent_shortest_path"`
	GameOver        bool              `json:"game_over"`
}

// GameEvent represents an event that occurred during gameplay
type GameEvent struct {
	Type      string          `json:"type"` // "move", "wall", "rejected", "victory", "reset"
	Message   string          `json:"message"`
	Timestamp time.Time       `json:"timestamp"`
	Player    string          `json:"player,omitempty"`
	Position  engine.Position `json:"position"`
}

// HistoryEntry records one accepted action
type HistoryEntry struct {
	MoveNumber int           `json:"move_number"`
	Player     string        `json:"player"`
	Action     engine.Action `json:"action"`
	Notation   string        `json:"notation"`
	Timestamp  time.Time     `json:"timestamp"`
}

// HistoryOptions configures history retrieval
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// HistoryResponse contains paginated action history
type HistoryResponse struct {
	Entries     []HistoryEntry `json:"entries"`
	TotalMoves  int            `json:"total_moves"`
	Page        int            `json:"page"`
	PageSize    int            `json:"page_size"`
	TotalPages  int            `json:"total_pages"`
	HasNext     bool           `json:"has_next"`
	HasPrevious bool           `json:"has_previous"`
}

// ConfigInfo provides information about a game configuration
type ConfigInfo struct {
	Filename       string `json:"filename"`
	ConfigID       string `json:"config_id"` // The identifier to use for session creation
	Name           string `json:"name"`
	Description    string `json:"description"`
	Rows           int    `json:"rows"`
	Cols           int    `json:"cols"`
	WallsPerPlayer int    `json:"walls_per_player"`
}
