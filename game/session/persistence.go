package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/wricardo/quoridor/game/config"
	"github.com/wricardo/quoridor/game/engine"
	"github.com/wricardo/quoridor/game/service"
)

// SessionPersistence defines the interface for persisting sessions
type SessionPersistence interface {
	// Save persists a session to storage
	Save(session *service.Session) error

	// Load retrieves a session from storage by ID
	Load(id string) (*service.Session, error)

	// Delete removes a session from storage
	Delete(id string) error

	// ListAll returns all persisted session IDs
	ListAll() ([]string, error)

	// Exists checks if a session exists in storage
	Exists(id string) bool
}

// PersistedSessionData is the stored form of a session. The board graph is
// not stored; it is rebuilt from the wall layout on load.
type PersistedSessionData struct {
	ID             string                 `json:"id"`
	ConfigName     string                 `json:"config_name"`
	CreatedAt      time.Time              `json:"created_at"`
	LastAccessedAt time.Time              `json:"last_accessed_at"`
	GameState      *engine.GameState      `json:"game_state"`
	History        []service.HistoryEntry `json:"history,omitempty"`
}

// configIDResolver maps a config display name to its config ID (file name
// without extension). Unknown names are assumed to already be IDs.
func configIDResolver(configs service.ConfigManager, displayName string) (string, error) {
	infos, err := configs.ListConfigs()
	if err != nil {
		return "", fmt.Errorf("failed to list configs: %w", err)
	}
	for _, info := range infos {
		if info.Name == displayName {
			return info.ConfigID, nil
		}
	}
	return displayName, nil
}

// encodeSession serialises a session into its stored JSON form
func encodeSession(configs service.ConfigManager, session *service.Session) ([]byte, error) {
	if session == nil {
		return nil, fmt.Errorf("session cannot be nil")
	}

	configID, err := configIDResolver(configs, session.Config.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to get config ID: %w", err)
	}

	data := PersistedSessionData{
		ID:             session.ID,
		ConfigName:     configID,
		CreatedAt:      session.CreatedAt,
		LastAccessedAt: session.LastAccessedAt,
		GameState:      session.Engine.GetState(),
		History:        session.History,
	}

	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal session data: %w", err)
	}
	return out, nil
}

// decodeSession rebuilds a live session from its stored JSON form. The stored
// config is looked up by ID; a config that has since disappeared falls back
// to the dimensions recorded in the state.
func decodeSession(configs service.ConfigManager, raw []byte) (*service.Session, error) {
	var data PersistedSessionData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session data: %w", err)
	}
	if data.GameState == nil {
		return nil, fmt.Errorf("session %s has no game state", data.ID)
	}

	gameConfig, err := configs.LoadConfig(data.ConfigName)
	switch {
	case errors.Is(err, config.ErrConfigNotFound):
		gameConfig = configFromState(data.ConfigName, data.GameState)
	case err != nil:
		return nil, fmt.Errorf("failed to load config '%s': %w", data.ConfigName, err)
	}

	gameEngine, err := engine.NewEngine(gameConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create game engine: %w", err)
	}

	if err := gameEngine.SetState(data.GameState); err != nil {
		return nil, fmt.Errorf("failed to set game state: %w", err)
	}

	return &service.Session{
		ID:             data.ID,
		Engine:         gameEngine,
		Config:         gameConfig,
		History:        data.History,
		CreatedAt:      data.CreatedAt,
		LastAccessedAt: data.LastAccessedAt,
	}, nil
}

// configFromState rebuilds a config for a session whose config file is gone.
// Resetting such a session starts from the recorded board size.
func configFromState(name string, state *engine.GameState) *engine.GameConfig {
	if name == "" {
		name = "restored"
	}
	walls := max(engine.DefaultWallsPerPlayer, state.P1.WallsLeft, state.P2.WallsLeft)
	if def := engine.DefaultConfig(); name == def.Name && state.Rows == def.Rows && state.Cols == def.Cols {
		return def
	}
	return &engine.GameConfig{
		Name:           name,
		Description:    fmt.Sprintf("Restored %dx%d board", state.Rows, state.Cols),
		Rows:           state.Rows,
		Cols:           state.Cols,
		WallsPerPlayer: walls,
	}
}
