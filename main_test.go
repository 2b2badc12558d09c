package main

import (
	"context"
	"flag"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/joho/godotenv"
	"github.com/wricardo/quoridor/api"
	"github.com/wricardo/quoridor/game/session"
	"github.com/wricardo/quoridor/transport/mcp"
)

// withFlags points the storage flags at test locations for the duration of t.
func withFlags(t *testing.T, configs, sessions, redis string) {
	t.Helper()
	oldConfig, oldSessions, oldRedis := *configDir, *sessionsDir, *redisAddr
	*configDir, *sessionsDir, *redisAddr = configs, sessions, redis
	t.Cleanup(func() {
		*configDir, *sessionsDir, *redisAddr = oldConfig, oldSessions, oldRedis
	})
}

func TestConstants(t *testing.T) {
	if Version == "" {
		t.Error("Version should not be empty")
	}
	if AppName != "Quoridor Server" {
		t.Errorf("Unexpected app name %s", AppName)
	}
}

func TestFlagDefaults(t *testing.T) {
	if *port <= 0 || *port > 65535 {
		t.Errorf("Invalid default port: %d", *port)
	}
	if *host == "" {
		t.Error("Host should have a default value")
	}
	if *configDir == "" || *sessionsDir == "" {
		t.Error("Config and sessions directories should have default values")
	}
}

func TestApplyEnvDefaults_FromDotEnv(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	content := "REDIS_ADDR=localhost:6379\nSESSIONS_DIR=/data/sessions\nCONFIG_DIR=/data/configs\n"
	if err := os.WriteFile(envFile, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write .env: %v", err)
	}
	env, err := godotenv.Read(envFile)
	if err != nil {
		t.Fatalf("Failed to read .env: %v", err)
	}

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	configs := fs.String("config-dir", "configs", "")
	sessions := fs.String("sessions-dir", "sessions", "")
	redisFlag := fs.String("redis-addr", "", "")
	if err := fs.Parse([]string{"-config-dir", "explicit"}); err != nil {
		t.Fatalf("Failed to parse flags: %v", err)
	}

	if err := applyEnvDefaults(fs, func(key string) string { return env[key] }); err != nil {
		t.Fatalf("applyEnvDefaults failed: %v", err)
	}
	if *redisFlag != "localhost:6379" {
		t.Errorf("Expected redis-addr from .env, got %q", *redisFlag)
	}
	if *sessions != "/data/sessions" {
		t.Errorf("Expected sessions-dir from .env, got %q", *sessions)
	}
	if *configs != "explicit" {
		t.Errorf("Explicit flag should win over .env, got %q", *configs)
	}
}

func TestApplyEnvDefaults_LoadedEnvironment(t *testing.T) {
	t.Setenv("SESSIONS_DIR", "")
	os.Unsetenv("SESSIONS_DIR")

	envFile := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(envFile, []byte("SESSIONS_DIR=/srv/sessions\n"), 0644); err != nil {
		t.Fatalf("Failed to write .env: %v", err)
	}
	if err := godotenv.Load(envFile); err != nil {
		t.Fatalf("Failed to load .env: %v", err)
	}

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	sessions := fs.String("sessions-dir", "sessions", "")
	redisFlag := fs.String("redis-addr", "", "")
	if err := fs.Parse(nil); err != nil {
		t.Fatalf("Failed to parse flags: %v", err)
	}

	if err := applyEnvDefaults(fs, os.Getenv); err != nil {
		t.Fatalf("applyEnvDefaults failed: %v", err)
	}
	if *sessions != "/srv/sessions" {
		t.Errorf("Expected sessions-dir from loaded .env, got %q", *sessions)
	}
	if *redisFlag != os.Getenv("REDIS_ADDR") {
		t.Errorf("Unexpected redis-addr %q", *redisFlag)
	}
}

func TestInitializeServices_FileStorage(t *testing.T) {
	sessionsPath := filepath.Join(t.TempDir(), "sessions")
	withFlags(t, "configs", sessionsPath, "")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	svc, err := initializeServices(ctx)
	if err != nil {
		t.Fatalf("Failed to initialize services: %v", err)
	}
	if _, ok := svc.persistence.(*session.FilePersistence); !ok {
		t.Errorf("Expected file persistence, got %T", svc.persistence)
	}

	info, err := svc.game.CreateSession(ctx, "small")
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}
	if _, err := os.Stat(filepath.Join(sessionsPath, strings.ToLower(info.ID)+".json")); err != nil {
		t.Errorf("Expected session file to be written: %v", err)
	}

	svc.shutdown()
}

func TestInitializeServices_RedisStorage(t *testing.T) {
	mr := miniredis.RunT(t)
	withFlags(t, "configs", t.TempDir(), mr.Addr())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	svc, err := initializeServices(ctx)
	if err != nil {
		t.Fatalf("Failed to initialize services: %v", err)
	}
	defer svc.shutdown()

	if _, ok := svc.persistence.(*session.RedisPersistence); !ok {
		t.Fatalf("Expected redis persistence, got %T", svc.persistence)
	}

	info, err := svc.game.CreateSession(ctx, "")
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}
	if !mr.Exists("quoridor:session:" + strings.ToLower(info.ID)) {
		t.Errorf("Expected session %s in redis, keys: %v", info.ID, mr.Keys())
	}
}

func TestInitializeServices_Errors(t *testing.T) {
	ctx := context.Background()

	withFlags(t, "/non/existent/path", t.TempDir(), "")
	if _, err := initializeServices(ctx); err == nil {
		t.Error("Expected error for non-existent config directory")
	}

	*configDir, *redisAddr = "configs", "127.0.0.1:1"
	if _, err := initializeServices(ctx); err == nil || !strings.Contains(err.Error(), "session persistence") {
		t.Errorf("Expected persistence error for unreachable redis, got %v", err)
	}
}

func TestSyncWithPersistence(t *testing.T) {
	sessionsPath := t.TempDir()
	withFlags(t, "configs", sessionsPath, "")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	svc, err := initializeServices(ctx)
	if err != nil {
		t.Fatal(err)
	}

	kept, _ := svc.game.CreateSession(ctx, "small")
	removed, _ := svc.game.CreateSession(ctx, "small")
	if err := os.Remove(filepath.Join(sessionsPath, strings.ToLower(removed.ID)+".json")); err != nil {
		t.Fatal(err)
	}

	if n := syncWithPersistence(svc.sessions, svc.persistence); n != 1 {
		t.Errorf("Expected 1 pruned session, got %d", n)
	}
	if svc.sessions.Count() != 1 {
		t.Errorf("Expected 1 session left in memory, got %d", svc.sessions.Count())
	}
	if _, err := svc.sessions.Get(kept.ID); err != nil {
		t.Errorf("Expected %s to survive: %v", kept.ID, err)
	}
}

func TestNewRouter(t *testing.T) {
	withFlags(t, "configs", t.TempDir(), "")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	svc, err := initializeServices(ctx)
	if err != nil {
		t.Fatal(err)
	}

	router := newRouter(api.NewServer(svc.game, nil), mcp.NewClient("http://127.0.0.1:1"))
	ts := httptest.NewServer(router)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/health")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected API health 200, got %d", resp.StatusCode)
	}

	resp, err = http.Get(ts.URL + "/mcp")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("Expected 405 for GET /mcp, got %d", resp.StatusCode)
	}

	body := strings.NewReader(`{"jsonrpc":"2.0","id":1,"method":"tools/list"}`)
	resp, err = http.Post(ts.URL+"/mcp", "application/json", body)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	for _, tool := range []string{"create_session", "move", "place_wall", "legal_moves"} {
		if !strings.Contains(string(data), `"`+tool+`"`) {
			t.Errorf("Expected tool %s in tools/list response", tool)
		}
	}
}

func TestApiAvailable(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/health" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	if !apiAvailable(ts.URL) {
		t.Error("Expected API to be reported available")
	}
	if apiAvailable("http://127.0.0.1:1") {
		t.Error("Expected unreachable API to be reported unavailable")
	}
}

func TestNgrokSettings(t *testing.T) {
	t.Setenv("NGROK_ENABLED", "1")
	if !ngrokShouldRun() {
		t.Error("Expected NGROK_ENABLED=1 to enable the tunnel")
	}
	t.Setenv("NGROK_ENABLED", "")
	if ngrokShouldRun() {
		t.Error("Expected tunnel to be disabled by default")
	}

	t.Setenv("NGROK_AUTHTOKEN", "")
	t.Setenv("NGROK_AUTH_TOKEN", "underscore")
	if got := ngrokAuthToken(); got != "underscore" {
		t.Errorf("Expected NGROK_AUTH_TOKEN fallback, got %q", got)
	}
}
