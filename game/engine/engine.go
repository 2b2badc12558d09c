package engine

import "fmt"

// Engine provides the main interface for game operations
type Engine interface {
	// Game state management
	GetState() *GameState
	SetState(state *GameState) error
	Reset() *GameState
	IsGameOver() bool
	Winner() (PlayerID, bool)
	CurrentPlayer() PlayerID

	// Actions
	Validate(action Action) error
	Submit(action Action) (*GameState, error)
	LegalMoves() []Position

	// Configuration
	GetConfig() *GameConfig
	SetConfig(config *GameConfig) error
}

// GameEngine implements the Engine interface over a single game
type GameEngine struct {
	state  *GameState
	config *GameConfig
}

// NewEngine creates a new game engine with the provided configuration
func NewEngine(config *GameConfig) (*GameEngine, error) {
	if err := ValidateGameConfig(config); err != nil {
		return nil, err
	}

	return &GameEngine{
		config: config,
		state:  InitGameStateFromConfig(config),
	}, nil
}

// NewEngineWithDefaults creates a new game engine on the classic 9x9 board
func NewEngineWithDefaults() *GameEngine {
	config := DefaultConfig()
	return &GameEngine{
		config: config,
		state:  InitGameStateFromConfig(config),
	}
}

// GetState returns the current game state
func (e *GameEngine) GetState() *GameState {
	return e.state
}

// SetState replaces the game state (used for persistence loading)
func (e *GameEngine) SetState(state *GameState) error {
	if state == nil {
		return fmt.Errorf("state cannot be nil")
	}
	if err := CheckState(state); err != nil {
		return err
	}
	e.state = state
	return nil
}

// Reset starts a new game on the same configuration
func (e *GameEngine) Reset() *GameState {
	e.state = InitGameStateFromConfig(e.config)
	return e.state
}

// IsGameOver returns whether a pawn has reached its goal row
func (e *GameEngine) IsGameOver() bool {
	return IsTerminal(e.state)
}

// Winner returns the winning player once the game is over
func (e *GameEngine) Winner() (PlayerID, bool) {
	return Winner(e.state)
}

// CurrentPlayer returns the player whose turn it is
func (e *GameEngine) CurrentPlayer() PlayerID {
	return e.state.Turn
}

// Validate checks an action against the current state without applying it
func (e *GameEngine) Validate(action Action) error {
	return Validate(e.state, action)
}

// Submit validates and applies an action. On rejection the state is unchanged
// and the returned error is a *Rejection.
func (e *GameEngine) Submit(action Action) (*GameState, error) {
	if err := Validate(e.state, action); err != nil {
		return e.state, err
	}
	e.state = Apply(e.state, action)
	return e.state, nil
}

// LegalMoves returns the pawn moves available to the current player
func (e *GameEngine) LegalMoves() []Position {
	if IsTerminal(e.state) {
		return nil
	}
	return LegalMoves(e.state, e.state.Turn)
}

// GetConfig returns the current game configuration
func (e *GameEngine) GetConfig() *GameConfig {
	return e.config
}

// SetConfig sets a new game configuration and resets the game
func (e *GameEngine) SetConfig(config *GameConfig) error {
	if err := ValidateGameConfig(config); err != nil {
		return err
	}

	e.config = config
	e.state = InitGameStateFromConfig(config)
	return nil
}
