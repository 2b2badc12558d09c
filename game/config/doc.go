// Package config provides configuration management for the Quoridor server.
//
// The config package handles:
//   - Loading board configurations from JSON files
//   - Configuration validation
//   - Default configuration management
//   - Configuration discovery and listing
//
// Configuration Format:
//
// Board configurations are stored as JSON files in the configs directory:
//
//	{
//	  "name": "classic",
//	  "description": "Classic 9x9 board, 10 walls per player",
//	  "rows": 9,
//	  "cols": 9,
//	  "walls_per_player": 10
//	}
//
// The file name without extension is the config ID used to create sessions.
//
// Available Configurations:
//   - classic: 9x9 board, 10 walls each
//   - small: 5x5 board, 3 walls each
//   - wide: 9x11 board, 12 walls each
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//
//	// Load specific configuration
//	gameConfig, err := manager.LoadConfig("small")
//
//	// Get default configuration (classic, or the built-in board if missing)
//	defaultConfig := manager.GetDefault()
//
//	// List available configurations
//	configs, err := manager.ListConfigs()
package config
