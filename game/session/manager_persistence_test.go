package session

import (
	"testing"
	"time"

	"github.com/wricardo/quoridor/game/config"
	"github.com/wricardo/quoridor/game/engine"
)

func TestManagerWithPersistence(t *testing.T) {
	configManager, err := config.NewManager("../../configs")
	if err != nil {
		t.Fatalf("Failed to create config manager: %v", err)
	}

	backends := map[string]SessionPersistence{}

	filePersistence, err := NewFilePersistence(t.TempDir(), configManager)
	if err != nil {
		t.Fatalf("Failed to create file persistence: %v", err)
	}
	backends["file"] = filePersistence
	backends["redis"] = newTestRedisPersistence(t, configManager)

	for name, persistence := range backends {
		t.Run(name, func(t *testing.T) {
			runManagerPersistenceSuite(t, persistence, configManager.GetDefault())
		})
	}
}

func runManagerPersistenceSuite(t *testing.T, persistence SessionPersistence, gameConfig *engine.GameConfig) {
	manager := NewManagerWithPersistence(persistence)

	t.Run("Create Session Auto-Saves", func(t *testing.T) {
		session, err := manager.Create("auto1", gameConfig)
		if err != nil {
			t.Fatalf("Failed to create session: %v", err)
		}
		if !persistence.Exists(session.ID) {
			t.Fatal("Session should be auto-saved on creation")
		}

		loaded, err := persistence.Load(session.ID)
		if err != nil {
			t.Fatalf("Failed to load auto-saved session: %v", err)
		}
		if loaded.ID != session.ID {
			t.Errorf("Expected ID %s, got %s", session.ID, loaded.ID)
		}
	})

	t.Run("Get Session Loads from Persistence", func(t *testing.T) {
		fresh := NewManagerWithPersistence(persistence)

		session, err := fresh.Get("auto1")
		if err != nil {
			t.Fatalf("Failed to get session from persistence: %v", err)
		}
		if fresh.Count() != 1 {
			t.Error("Session should be cached in memory after loading from persistence")
		}

		again, _ := fresh.Get("AUTO1")
		if again != session {
			t.Error("Expected cached instance on second lookup")
		}
	})

	t.Run("Save Method Persists Changes", func(t *testing.T) {
		session, err := manager.Get("auto1")
		if err != nil {
			t.Fatalf("Failed to get session: %v", err)
		}

		if _, err := session.Engine.Submit(engine.MoveAction(engine.Position{Row: 1, Col: 4})); err != nil {
			t.Fatalf("move failed: %v", err)
		}
		if _, err := session.Engine.Submit(engine.WallAction(engine.Vertical, engine.Position{Row: 2, Col: 2})); err != nil {
			t.Fatalf("wall failed: %v", err)
		}

		if err := manager.Save("auto1"); err != nil {
			t.Fatalf("Failed to save session: %v", err)
		}

		restarted := NewManagerWithPersistence(persistence)
		loaded, err := restarted.Get("auto1")
		if err != nil {
			t.Fatalf("Failed to load session after manual save: %v", err)
		}

		state := loaded.Engine.GetState()
		if state.P1.Position != (engine.Position{Row: 1, Col: 4}) {
			t.Errorf("Expected P1 at (1,4), got %v", state.P1.Position)
		}
		if state.P2.WallsLeft != 9 || !state.Walls.HasVertical(3, 2) {
			t.Error("Expected wall placement to be persisted")
		}
		if loaded.Engine.CurrentPlayer() != engine.Player1 {
			t.Errorf("Expected P1 to move next, got %v", loaded.Engine.CurrentPlayer())
		}
	})

	t.Run("Save Unknown Session", func(t *testing.T) {
		if err := manager.Save("nobody"); err != ErrSessionNotFound {
			t.Errorf("Expected ErrSessionNotFound, got %v", err)
		}
	})

	t.Run("Delete Removes from Persistence", func(t *testing.T) {
		session, err := manager.Create("delete_test", gameConfig)
		if err != nil {
			t.Fatalf("Failed to create session: %v", err)
		}
		if !persistence.Exists(session.ID) {
			t.Fatal("Session should exist in persistence")
		}

		if err := manager.Delete(session.ID); err != nil {
			t.Fatalf("Failed to delete session: %v", err)
		}
		if persistence.Exists(session.ID) {
			t.Error("Session should be removed from persistence on delete")
		}
		if _, err := manager.Get(session.ID); err == nil {
			t.Error("Should not be able to get deleted session")
		}
	})

	t.Run("Expired Sessions Reload On Demand", func(t *testing.T) {
		session, err := manager.Create("idle", gameConfig)
		if err != nil {
			t.Fatal(err)
		}
		session.LastAccessedAt = time.Now().Add(-3 * time.Hour)

		if removed := manager.CleanupExpiredSessions(time.Hour); removed == 0 {
			t.Fatal("Expected idle session to be dropped from memory")
		}
		if _, err := manager.Get("idle"); err != nil {
			t.Errorf("Expected idle session to reload from storage: %v", err)
		}
	})

	t.Run("Load Persisted Sessions on Startup", func(t *testing.T) {
		ids := []string{"startup1", "startup2", "startup3"}
		for _, id := range ids {
			if _, err := manager.Create(id, gameConfig); err != nil {
				t.Fatalf("Failed to create session %s: %v", id, err)
			}
		}

		restarted := NewManagerWithPersistence(persistence)
		if err := restarted.LoadPersistedSessions(); err != nil {
			t.Fatalf("Failed to load persisted sessions: %v", err)
		}

		for _, id := range ids {
			session, err := restarted.Get(id)
			if err != nil {
				t.Errorf("Failed to get session %s after startup load: %v", id, err)
				continue
			}
			if session.ID != id {
				t.Errorf("Expected ID %s, got %s", id, session.ID)
			}
		}
		if restarted.Count() < len(ids) {
			t.Errorf("Expected at least %d sessions, got %d", len(ids), restarted.Count())
		}
	})

	t.Run("Update Last Accessed Persists", func(t *testing.T) {
		session, err := manager.Get("startup1")
		if err != nil {
			t.Fatalf("Failed to get session: %v", err)
		}
		originalTime := session.LastAccessedAt
		time.Sleep(10 * time.Millisecond)

		if err := manager.UpdateLastAccessed("startup1"); err != nil {
			t.Fatalf("Failed to update last accessed: %v", err)
		}

		loaded, err := NewManagerWithPersistence(persistence).Get("startup1")
		if err != nil {
			t.Fatalf("Failed to load session: %v", err)
		}
		if !loaded.LastAccessedAt.After(originalTime) {
			t.Error("Last accessed time should be updated and persisted")
		}
	})

	t.Run("Save All Sessions", func(t *testing.T) {
		if err := manager.SaveAllSessions(); err != nil {
			t.Errorf("SaveAllSessions() error = %v", err)
		}
	})
}
