// Package session keeps Quoridor game sessions alive between requests.
//
// A Manager maps session IDs to service.Session values, each owning its own
// engine.GameEngine. IDs are case-insensitive; an empty ID on Create gets a
// random 4-hex-character identifier. Sessions idle for longer than a given
// age can be dropped from memory with CleanupExpiredSessions.
//
// Persistence is optional and pluggable through SessionPersistence:
//
//   - FilePersistence writes one JSON file per session into a directory.
//   - RedisPersistence stores the same JSON under quoridor:session:<id>
//     with a TTL refreshed on every save.
//
// Stored sessions carry the config ID, the game state (wall grids, pawns,
// turn) and the action history. The board graph is not stored; the engine
// rebuilds it from the wall layout when the state is restored.
//
// Usage:
//
//	persistence, err := session.NewFilePersistence("sessions", configManager)
//	if err != nil {
//		return err
//	}
//	manager := session.NewManagerWithPersistence(persistence)
//	if err := manager.LoadPersistedSessions(); err != nil {
//		return err
//	}
//	sess, err := manager.Create("", configManager.GetDefault())
package session
