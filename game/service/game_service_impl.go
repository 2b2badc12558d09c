package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/wricardo/quoridor/game/engine"
	"github.com/wricardo/quoridor/game/render"
)

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
	mu       sync.RWMutex
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager, configs ConfigManager) GameService {
	return &gameServiceImpl{
		sessions: sessions,
		configs:  configs,
	}
}

// getConfigID returns the config_id for a given config name, used for consistent API responses
func (s *gameServiceImpl) getConfigID(configName string) string {
	availableConfigs, err := s.configs.ListConfigs()
	if err == nil {
		for _, cfg := range availableConfigs {
			if cfg.Name == configName {
				return cfg.ConfigID
			}
		}
	}
	if configName == "" {
		return "classic"
	}
	return configName
}

func (s *gameServiceImpl) sessionInfo(sess *Session, configID string) *SessionInfo {
	info := &SessionInfo{
		ID:             sess.ID,
		ConfigName:     configID,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		GameState:      sess.Engine.GetState(),
		GameConfig:     sess.Config,
		GameOver:       sess.Engine.IsGameOver(),
	}
	if w, ok := sess.Engine.Winner(); ok {
		info.Winner = w.String()
	}
	return info
}

// CreateSession creates a new game session
func (s *gameServiceImpl) CreateSession(ctx context.Context, configName string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var config *engine.GameConfig
	var err error
	if configName != "" {
		config, err = s.configs.LoadConfig(configName)
		if err != nil {
			if strings.Contains(err.Error(), "configuration not found") {
				availableConfigs, listErr := s.configs.ListConfigs()
				if listErr == nil && len(availableConfigs) > 0 {
					var configIDs []string
					for _, cfg := range availableConfigs {
						configIDs = append(configIDs, cfg.ConfigID)
					}
					return nil, fmt.Errorf("config '%s' not found. Available configs: %v", configName, configIDs)
				}
				return nil, fmt.Errorf("config '%s' not found. Use /api/configs to list available configurations", configName)
			}
			return nil, fmt.Errorf("failed to load config %s: %w", configName, err)
		}
	} else {
		config = s.configs.GetDefault()
	}

	sess, err := s.sessions.Create("", config)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	configID := configName
	if configID == "" {
		configID = s.getConfigID(config.Name)
	}

	log.Info().Str("session", sess.ID).Str("config", configID).
		Int("rows", config.Rows).Int("cols", config.Cols).Msg("Session created")

	return s.sessionInfo(sess, configID), nil
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)

	return s.sessionInfo(sess, s.getConfigID(sess.Config.Name)), nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, s.sessionInfo(sess, s.getConfigID(sess.Config.Name)))
	}

	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sessions.Delete(sessionID)
}

// Move moves the current player's pawn to target
func (s *gameServiceImpl) Move(ctx context.Context, sessionID string, target engine.Position) (*ActionResult, error) {
	return s.submit(sessionID, engine.MoveAction(target))
}

// PlaceWall places a wall for the current player
func (s *gameServiceImpl) PlaceWall(ctx context.Context, sessionID string, orientation engine.Orientation, anchor engine.Position) (*ActionResult, error) {
	if orientation != engine.Horizontal && orientation != engine.Vertical {
		return nil, fmt.Errorf("invalid wall orientation %q", orientation)
	}
	return s.submit(sessionID, engine.WallAction(orientation, anchor))
}

// submit validates and applies an action for the player whose turn it is.
// Rule rejections are reported in the result; only lookup failures are errors.
func (s *gameServiceImpl) submit(sessionID string, action engine.Action) (*ActionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)

	player := sess.Engine.CurrentPlayer()
	state, err := sess.Engine.Submit(action)

	result := &ActionResult{
		Action:    action.String(),
		Player:    player.String(),
		GameState: state,
	}

	if err != nil {
		var rej *engine.Rejection
		if !errors.As(err, &rej) {
			return nil, err
		}
		result.Code = rej.Code()
		result.Reason = rej.Reason
		result.Message = "Invalid: " + rej.Reason
		result.Events = []GameEvent{{
			Type:      "rejected",
			Message:   rej.Reason,
			Timestamp: time.Now(),
			Player:    player.String(),
			Position:  actionPosition(action),
		}}
		s.finishResult(sess, result)
		return result, nil
	}

	result.Success = true
	sess.History = append(sess.History, HistoryEntry{
		MoveNumber: state.MoveNumber,
		Player:     player.String(),
		Action:     action,
		Notation:   action.String(),
		Timestamp:  time.Now(),
	})
	result.Events = actionEvents(player, action, state)
	result.Message = result.Events[len(result.Events)-1].Message
	s.finishResult(sess, result)

	if err := s.sessions.Save(sessionID); err != nil {
		log.Warn().Err(err).Str("session", sessionID).Msg("Failed to persist session after action")
	}

	return result, nil
}

func (s *gameServiceImpl) finishResult(sess *Session, result *ActionResult) {
	result.GameOver = sess.Engine.IsGameOver()
	if w, ok := sess.Engine.Winner(); ok {
		result.Winner = w.String()
	}
	result.LegalMoves = sess.Engine.LegalMoves()
}

func actionPosition(a engine.Action) engine.Position {
	if a.IsWall() {
		return a.Anchor
	}
	return a.Target
}

// actionEvents describes an accepted action
func actionEvents(player engine.PlayerID, a engine.Action, state *engine.GameState) []GameEvent {
	now := time.Now()
	var events []GameEvent

	if a.IsWall() {
		name := "horizontal"
		if a.Orientation() == engine.Vertical {
			name = "vertical"
		}
		events = append(events, GameEvent{
			Type:      "wall",
			Message:   fmt.Sprintf("%s placed a %s wall at %s (%d left)", player, name, a.Anchor, state.WallsLeft(player)),
			Timestamp: now,
			Player:    player.String(),
			Position:  a.Anchor,
		})
	} else {
		events = append(events, GameEvent{
			Type:      "move",
			Message:   fmt.Sprintf("%s moved to %s", player, a.Target),
			Timestamp: now,
			Player:    player.String(),
			Position:  a.Target,
		})
	}

	if w, ok := engine.Winner(state); ok {
		events = append(events, GameEvent{
			Type:      "victory",
			Message:   fmt.Sprintf("Game over! Winner: %s", w),
			Timestamp: now,
			Player:    w.String(),
			Position:  state.PositionOf(w),
		})
	}
	return events
}

// Reset resets a game session to initial state
func (s *gameServiceImpl) Reset(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	state := sess.Engine.Reset()
	sess.History = nil

	if err := s.sessions.Save(sessionID); err != nil {
		log.Warn().Err(err).Str("session", sessionID).Msg("Failed to persist session after reset")
	}

	return state, nil
}

// GetGameState retrieves the current game state
func (s *gameServiceImpl) GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	return sess.Engine.GetState(), nil
}

// GetLegalMoves lists the pawn moves and wall anchors open to the player to move
func (s *gameServiceImpl) GetLegalMoves(ctx context.Context, sessionID string) (*LegalMoves, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	state := sess.Engine.GetState()
	player := state.Turn
	result := &LegalMoves{
		Player:       player.String(),
		Moves:        []engine.Position{},
		WallsLeft:    state.WallsLeft(player),
		ShortestPath: engine.ShortestPath(state, player),
		OpponentPath: engine.ShortestPath(state, player.Opponent()),
		GameOver:     engine.IsTerminal(state),
	}
	if result.GameOver {
		return result, nil
	}

	result.Moves = engine.LegalMoves(state, player)
	result.HorizontalWalls = engine.LegalWalls(state, player, engine.Horizontal)
	result.VerticalWalls = engine.LegalWalls(state, player, engine.Vertical)
	return result, nil
}

// RenderBoard returns the text rendering of a session's board
func (s *gameServiceImpl) RenderBoard(ctx context.Context, sessionID string, ascii bool) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return "", fmt.Errorf("session not found: %w", err)
	}

	return render.Render(sess.Engine.GetState(), render.Options{ASCII: ascii}), nil
}

// GetHistory returns paginated action history
func (s *gameServiceImpl) GetHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	history := sess.History
	total := len(history)

	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = 20
	}
	if opts.Limit > 100 {
		opts.Limit = 100
	}
	if opts.Order == "" {
		opts.Order = "desc"
	}

	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := (opts.Page - 1) * opts.Limit
	end := min(start+opts.Limit, total)

	entries := []HistoryEntry{}
	if opts.Order == "desc" {
		for i := total - 1 - start; i >= 0 && i >= total-end; i-- {
			entries = append(entries, history[i])
		}
	} else if start < total {
		entries = append(entries, history[start:end]...)
	}

	return &HistoryResponse{
		Entries:     entries,
		TotalMoves:  total,
		Page:        opts.Page,
		PageSize:    opts.Limit,
		TotalPages:  totalPages,
		HasNext:     opts.Page < totalPages,
		HasPrevious: opts.Page > 1,
	}, nil
}

// ListConfigs returns available game configurations
func (s *gameServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a specific game configuration
func (s *gameServiceImpl) LoadConfig(ctx context.Context, configName string) (*engine.GameConfig, error) {
	return s.configs.LoadConfig(configName)
}

// SaveConfig saves a game configuration to disk
func (s *gameServiceImpl) SaveConfig(ctx context.Context, configName string, config *engine.GameConfig) error {
	return s.configs.SaveConfig(configName, config)
}
