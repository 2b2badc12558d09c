// Package mcp exposes Quoridor sessions to AI agents over the Model Context Protocol.
//
// Every tool call is proxied to the REST API, so agents and browsers share
// sessions and websocket spectators see agent moves live.
//
// Tools:
//   - create_session, get_session, list_sessions, list_configs
//   - game_state, render_board, legal_moves, move_history
//   - move: move the current pawn to (row, col), jumps included
//   - place_wall: place an h or v wall anchored at (row, col)
//   - reset_game, game_instructions
//
// Rejected actions are returned as normal results starting with
// "REJECTED [code]"; only transport and argument failures are tool errors.
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	if err := client.ServeStdio(); err != nil {
//		log.Fatal().Err(err).Msg("MCP stdio server failed")
//	}
package mcp
