package engine

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func createValidConfig() *GameConfig {
	return &GameConfig{
		Name:           "test",
		Description:    "Test description",
		Rows:           7,
		Cols:           9,
		WallsPerPlayer: 8,
	}
}

func TestValidateGameConfig_ValidConfig(t *testing.T) {
	if err := ValidateGameConfig(createValidConfig()); err != nil {
		t.Errorf("Expected valid config, got error: %v", err)
	}
	if err := ValidateGameConfig(DefaultConfig()); err != nil {
		t.Errorf("Expected default config to be valid, got error: %v", err)
	}
}

func TestValidateGameConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *GameConfig)
		wantMsg string
	}{
		{"missing name", func(c *GameConfig) { c.Name = "" }, "name is required"},
		{"missing description", func(c *GameConfig) { c.Description = "" }, "description is required"},
		{"one row", func(c *GameConfig) { c.Rows = 1 }, "rows must be between"},
		{"too many rows", func(c *GameConfig) { c.Rows = MaxBoardSize + 1 }, "rows must be between"},
		{"zero cols", func(c *GameConfig) { c.Cols = 0 }, "cols must be between"},
		{"negative walls", func(c *GameConfig) { c.WallsPerPlayer = -1 }, "walls_per_player must be between"},
		{"too many walls", func(c *GameConfig) { c.WallsPerPlayer = MaxWallsPerPlayer + 1 }, "walls_per_player must be between"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := createValidConfig()
			tt.mutate(config)
			err := ValidateGameConfig(config)
			if err == nil {
				t.Fatal("Expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("Expected error containing %q, got %v", tt.wantMsg, err)
			}
		})
	}

	if err := ValidateGameConfig(nil); err == nil {
		t.Error("Expected error for nil config")
	}
}

func TestValidateGameConfig_SmallestBoard(t *testing.T) {
	config := createValidConfig()
	config.Rows, config.Cols, config.WallsPerPlayer = 2, 2, 0
	if err := ValidateGameConfig(config); err != nil {
		t.Errorf("Expected 2x2 board without walls to be valid, got %v", err)
	}
}

func TestCheckState(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(s *GameState)
		wantErr bool
	}{
		{"fresh state", func(s *GameState) {}, false},
		{"pawn out of bounds", func(s *GameState) { s.P1.Position = Position{Row: -1, Col: 0} }, true},
		{"shared cell", func(s *GameState) { s.P2.Position = s.P1.Position }, true},
		{"negative walls", func(s *GameState) { s.P2.WallsLeft = -1 }, true},
		{"bad turn", func(s *GameState) { s.Turn = NoPlayer }, true},
		{"mismatched layout", func(s *GameState) { s.Walls = NewWallLayout(5, 5) }, true},
		{"whole wall", func(s *GameState) { s.Walls.Place(Horizontal, Position{Row: 3, Col: 3}) }, false},
		{"lone segment", func(s *GameState) { s.Walls.Horizontal[3][3] = true }, true},
		{"three vertical segments", func(s *GameState) {
			s.Walls.Place(Vertical, Position{Row: 2, Col: 5})
			s.Walls.Vertical[4][5] = true
		}, true},
		{"sealed pawn", func(s *GameState) {
			for _, c := range []int{0, 2, 4, 6} {
				s.Walls.Place(Horizontal, Position{Row: 0, Col: c})
			}
			s.Walls.Place(Vertical, Position{Row: 0, Col: 7})
			s.graph = nil
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewGameState(9, 9, 10)
			tt.mutate(s)
			err := CheckState(s)
			if (err != nil) != tt.wantErr {
				t.Errorf("CheckState() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadConfigByName(t *testing.T) {
	tempDir := t.TempDir()

	oldWd, _ := os.Getwd()
	defer os.Chdir(oldWd)
	os.Chdir(tempDir)

	os.MkdirAll("configs", 0755)

	configContent := `{
		"name": "test",
		"description": "Test description",
		"rows": 5,
		"cols": 5,
		"walls_per_player": 3
	}`

	err := os.WriteFile(filepath.Join("configs", "test.json"), []byte(configContent), 0644)
	if err != nil {
		t.Fatalf("Failed to create test config file: %v", err)
	}

	config, err := LoadConfigByName("test")
	if err != nil {
		t.Fatalf("Failed to load config by name: %v", err)
	}
	if config.Rows != 5 || config.WallsPerPlayer != 3 {
		t.Errorf("Unexpected config: %+v", config)
	}

	config2, err := LoadConfigByName("test.json")
	if err != nil {
		t.Fatalf("Failed to load config by name with extension: %v", err)
	}
	if config2.Name != "test" {
		t.Errorf("Expected config name 'test', got '%s'", config2.Name)
	}

	_, err = LoadConfigByName("nonexistent")
	if err == nil {
		t.Fatal("Expected error for non-existent config")
	}
	if !strings.Contains(err.Error(), "not found") {
		t.Errorf("Expected 'not found' error, got: %v", err)
	}

	bad := `{"name": "bad", "description": "too small", "rows": 1, "cols": 5, "walls_per_player": 3}`
	os.WriteFile(filepath.Join("configs", "bad.json"), []byte(bad), 0644)
	_, err = LoadConfigByName("bad")
	if err == nil || !strings.Contains(err.Error(), "invalid config 'bad.json'") {
		t.Errorf("Expected invalid config error, got: %v", err)
	}
}

func TestLoadGameConfig_ConfigDirOverride(t *testing.T) {
	dir := t.TempDir()
	content := `{"name": "wide", "description": "Wide board", "rows": 9, "cols": 11, "walls_per_player": 12}`
	if err := os.WriteFile(filepath.Join(dir, "wide.json"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("CONFIG_DIR", dir)

	config, err := LoadGameConfig("configs/wide.json")
	if err != nil {
		t.Fatalf("Failed to load config via CONFIG_DIR: %v", err)
	}
	if config.Cols != 11 {
		t.Errorf("Expected 11 cols, got %d", config.Cols)
	}

	if _, err := LoadGameConfig(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("Expected error for non-existent file")
	}
}

func TestInitGameStateFromConfig(t *testing.T) {
	config := createValidConfig()
	state := InitGameStateFromConfig(config)

	if state.Rows != 7 || state.Cols != 9 {
		t.Errorf("Expected 7x9 board, got %dx%d", state.Rows, state.Cols)
	}
	if state.P1.Position != (Position{Row: 0, Col: 4}) {
		t.Errorf("Expected P1 at top centre, got %v", state.P1.Position)
	}
	if state.P2.Position != (Position{Row: 6, Col: 4}) {
		t.Errorf("Expected P2 at bottom centre, got %v", state.P2.Position)
	}
	if state.P1.WallsLeft != 8 || state.P2.WallsLeft != 8 {
		t.Error("Expected both players to start with the configured wall budget")
	}
	if state.ConfigName != "test" {
		t.Errorf("Expected config name 'test', got %q", state.ConfigName)
	}

	defaultState := InitGameStateFromConfig(nil)
	if defaultState.Rows != DefaultRows || defaultState.P1.WallsLeft != DefaultWallsPerPlayer {
		t.Error("Expected nil config to fall back to the classic board")
	}
}
