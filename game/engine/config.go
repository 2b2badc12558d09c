package engine

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultConfig returns the classic 9x9 board with 10 walls per player
func DefaultConfig() *GameConfig {
	return &GameConfig{
		Name:           "classic",
		Description:    "Classic 9x9 board, 10 walls per player",
		Rows:           DefaultRows,
		Cols:           DefaultCols,
		WallsPerPlayer: DefaultWallsPerPlayer,
	}
}

// ValidateGameConfig validates a game configuration for correctness and playability
func ValidateGameConfig(config *GameConfig) error {
	if config == nil {
		return fmt.Errorf("config validation: config is nil")
	}
	if config.Name == "" {
		return fmt.Errorf("config validation: name is required")
	}
	if config.Description == "" {
		return fmt.Errorf("config validation: description is required")
	}

	if config.Rows < MinBoardSize || config.Rows > MaxBoardSize {
		return fmt.Errorf("config validation: rows must be between %d and %d, got %d", MinBoardSize, MaxBoardSize, config.Rows)
	}
	if config.Cols < MinBoardSize || config.Cols > MaxBoardSize {
		return fmt.Errorf("config validation: cols must be between %d and %d, got %d", MinBoardSize, MaxBoardSize, config.Cols)
	}

	if config.WallsPerPlayer < 0 || config.WallsPerPlayer > MaxWallsPerPlayer {
		return fmt.Errorf("config validation: walls_per_player must be between 0 and %d, got %d", MaxWallsPerPlayer, config.WallsPerPlayer)
	}

	return nil
}

// CheckState verifies the invariants of a decoded state: layout dimensions,
// segment pairing, pawn placement, wall counts and goal reachability.
func CheckState(s *GameState) error {
	if s.Rows < MinBoardSize || s.Cols < MinBoardSize {
		return fmt.Errorf("state validation: board %dx%d is too small", s.Rows, s.Cols)
	}
	if s.Walls != nil {
		if s.Walls.Rows != s.Rows || s.Walls.Cols != s.Cols ||
			len(s.Walls.Horizontal) != s.Rows-1 || len(s.Walls.Vertical) != s.Rows {
			return fmt.Errorf("state validation: wall layout does not match %dx%d board", s.Rows, s.Cols)
		}
		for r, row := range s.Walls.Horizontal {
			if len(row) != s.Cols {
				return fmt.Errorf("state validation: horizontal row %d has %d segments, want %d", r, len(row), s.Cols)
			}
		}
		for r, row := range s.Walls.Vertical {
			if len(row) != s.Cols-1 {
				return fmt.Errorf("state validation: vertical row %d has %d segments, want %d", r, len(row), s.Cols-1)
			}
		}
		if !s.Walls.Paired() {
			return fmt.Errorf("state validation: wall segments are not paired into whole walls")
		}
	}
	if !s.InBounds(s.P1.Position) || !s.InBounds(s.P2.Position) {
		return fmt.Errorf("state validation: pawn out of bounds")
	}
	if s.P1.Position == s.P2.Position {
		return fmt.Errorf("state validation: pawns share cell %s", s.P1.Position)
	}
	if s.P1.WallsLeft < 0 || s.P2.WallsLeft < 0 {
		return fmt.Errorf("state validation: negative wall count")
	}
	if s.Turn != Player1 && s.Turn != Player2 {
		return fmt.Errorf("state validation: invalid turn %d", s.Turn)
	}

	g := s.Graph()
	for _, p := range []PlayerID{Player1, Player2} {
		if !g.HasPath(s.PositionOf(p), s.GoalRow(p)) {
			return fmt.Errorf("state validation: %s has no path to goal row %d", p, s.GoalRow(p))
		}
	}
	return nil
}

// LoadGameConfig loads a game configuration from a JSON file
func LoadGameConfig(filename string) (*GameConfig, error) {
	// Support CONFIG_DIR environment variable for alternative config directory
	configPath := filename
	if configDir := os.Getenv("CONFIG_DIR"); configDir != "" {
		if strings.HasPrefix(filename, "configs/") {
			configPath = filepath.Join(configDir, strings.TrimPrefix(filename, "configs/"))
		}
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	var config GameConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	if err := ValidateGameConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// LoadConfigByName loads a game configuration by name from the configs directory
func LoadConfigByName(configName string) (*GameConfig, error) {
	if !strings.HasSuffix(configName, ".json") {
		configName = configName + ".json"
	}

	configPath := filepath.Join("configs", configName)

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file '%s' not found", configName)
	}

	config, err := LoadGameConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("invalid config '%s': %w", configName, err)
	}

	return config, nil
}

// InitGameStateFromConfig creates a new game state using the provided configuration
func InitGameStateFromConfig(config *GameConfig) *GameState {
	if config == nil {
		config = DefaultConfig()
	}

	state := NewGameState(config.Rows, config.Cols, config.WallsPerPlayer)
	state.ConfigName = config.Name
	return state
}
