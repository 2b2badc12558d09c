// Package service provides the business logic layer for the Quoridor server.
//
// The service package implements:
//   - Multi-session game management
//   - Configuration management and loading
//   - Move and wall submission with rule rejections reported in the result
//   - Legal move listing and board rendering
//   - Per-session action history
//
// Core Interfaces:
//
// GameService is the main service interface providing high-level game operations.
// SessionManager handles session creation, retrieval, and lifecycle.
// ConfigManager manages game configuration loading and validation.
//
// Architecture:
//
// The service layer sits between the transport layer (HTTP/WebSocket/MCP) and
// the game engine, providing session isolation, configuration management, and
// business logic orchestration. Each session maintains its own game engine
// instance with independent state.
//
// Usage:
//
//	sessionMgr := session.NewManager()
//	configMgr, _ := config.NewManager("configs")
//	gameService := service.NewGameService(sessionMgr, configMgr)
//
//	// Create a new session
//	sessionInfo, err := gameService.CreateSession(ctx, "classic")
//	if err != nil {
//		log.Fatal().Err(err).Msg("create session")
//	}
//
//	// P1 moves, P2 answers with a wall
//	result, err := gameService.Move(ctx, sessionInfo.ID, engine.Position{Row: 1, Col: 4})
//	result, err = gameService.PlaceWall(ctx, sessionInfo.ID, engine.Horizontal, engine.Position{Row: 1, Col: 3})
//
// An illegal action is not an error: the returned ActionResult has Success
// false and carries the rejection code and reason. Errors are reserved for
// unknown sessions and storage failures.
package service
