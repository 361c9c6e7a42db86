package session

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pomistea/turtle-escape/game/engine"
	"github.com/pomistea/turtle-escape/game/service"
)

// stubConfigManager serves a single in-memory board for persistence tests
type stubConfigManager struct {
	config *engine.BoardConfig
}

func (s *stubConfigManager) LoadConfig(name string) (*engine.BoardConfig, error) {
	if name != "test" && name != s.config.Name {
		return nil, errors.New("configuration not found")
	}
	return s.config, nil
}

func (s *stubConfigManager) ListConfigs() ([]*service.ConfigInfo, error) {
	return []*service.ConfigInfo{{
		Filename:    "test.json",
		ConfigID:    "test",
		Name:        s.config.Name,
		Description: s.config.Description,
		Columns:     s.config.Columns,
		Rows:        s.config.Rows,
		MineCount:   engine.CountMines(s.config),
	}}, nil
}

func (s *stubConfigManager) GetDefault() *engine.BoardConfig {
	return s.config
}

func (s *stubConfigManager) SaveConfig(name string, config *engine.BoardConfig) error {
	s.config = config
	return nil
}

func newTestPersistence(t *testing.T) (*FilePersistence, *stubConfigManager) {
	dir := t.TempDir()
	configs := &stubConfigManager{config: createTestConfig()}
	fp, err := NewFilePersistence(dir, configs)
	if err != nil {
		t.Fatalf("Failed to create file persistence: %v", err)
	}
	return fp, configs
}

func newTestSession(t *testing.T, id string, config *engine.BoardConfig) *service.Session {
	eng, err := engine.NewEngine(config)
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}
	return &service.Session{
		ID:             id,
		Engine:         eng,
		Config:         config,
		CreatedAt:      time.Now(),
		LastAccessedAt: time.Now(),
	}
}

func TestFilePersistence_SaveAndLoad(t *testing.T) {
	fp, configs := newTestPersistence(t)

	sess := newTestSession(t, "ab12", configs.config)

	// Apply some commands so the restored state has history
	sess.Engine.Apply(engine.CommandMove)
	sess.Engine.Apply(engine.CommandRotate)

	if err := fp.Save(sess); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if !fp.Exists("ab12") {
		t.Fatal("Expected session file to exist after save")
	}

	loaded, err := fp.Load("ab12")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.ID != "ab12" {
		t.Errorf("Loaded ID = %q, want ab12", loaded.ID)
	}
	state := loaded.Engine.GetState()
	if state.TotalCommands != 2 {
		t.Errorf("Restored history has %d commands, want 2", state.TotalCommands)
	}
	if state.Turtle.Position != (engine.Position{X: 0, Y: 0}) {
		t.Errorf("Restored turtle at %+v, want (0,0)", state.Turtle.Position)
	}
	if state.Turtle.Heading != engine.East {
		t.Errorf("Restored heading %s, want east", state.Turtle.Heading)
	}
}

func TestFilePersistence_SaveNilSession(t *testing.T) {
	fp, _ := newTestPersistence(t)
	if err := fp.Save(nil); err == nil {
		t.Error("Expected error saving nil session")
	}
}

func TestFilePersistence_LoadMissing(t *testing.T) {
	fp, _ := newTestPersistence(t)
	if _, err := fp.Load("zzzz"); err != ErrSessionNotFound {
		t.Errorf("Expected ErrSessionNotFound, got %v", err)
	}
}

func TestFilePersistence_Delete(t *testing.T) {
	fp, configs := newTestPersistence(t)

	sess := newTestSession(t, "cd34", configs.config)
	if err := fp.Save(sess); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if err := fp.Delete("cd34"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if fp.Exists("cd34") {
		t.Error("Expected session file to be removed")
	}
	if err := fp.Delete("cd34"); err != ErrSessionNotFound {
		t.Errorf("Expected ErrSessionNotFound on double delete, got %v", err)
	}
}

func TestFilePersistence_ListAll(t *testing.T) {
	fp, configs := newTestPersistence(t)

	for _, id := range []string{"aa11", "bb22", "cc33"} {
		if err := fp.Save(newTestSession(t, id, configs.config)); err != nil {
			t.Fatalf("Save %s failed: %v", id, err)
		}
	}

	ids, err := fp.ListAll()
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	if len(ids) != 3 {
		t.Errorf("Expected 3 session IDs, got %d", len(ids))
	}
}

func TestManager_PersistenceRoundTrip(t *testing.T) {
	dir := t.TempDir()
	configs := &stubConfigManager{config: createTestConfig()}
	fp, err := NewFilePersistence(dir, configs)
	if err != nil {
		t.Fatalf("Failed to create file persistence: %v", err)
	}

	// First manager: create a session and play part of a route
	first := NewManagerWithPersistence(fp)
	sess, err := first.Create("game", configs.config)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	sess.Engine.Apply(engine.CommandMove)
	if err := first.Save("game"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Second manager on the same directory sees the persisted session
	second := NewManagerWithPersistence(fp)
	if err := second.LoadPersistedSessions(); err != nil {
		t.Fatalf("LoadPersistedSessions failed: %v", err)
	}
	if second.Count() != 1 {
		t.Fatalf("Expected 1 restored session, got %d", second.Count())
	}

	restored, err := second.Get("game")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if restored.Engine.GetState().TotalCommands != 1 {
		t.Errorf("Restored session lost its history")
	}

	// Deleting through the manager removes the file too
	if err := second.Delete("game"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "game.json")); !os.IsNotExist(err) {
		t.Error("Expected session file to be deleted")
	}
}

func TestManager_GetLoadsFromPersistence(t *testing.T) {
	dir := t.TempDir()
	configs := &stubConfigManager{config: createTestConfig()}
	fp, err := NewFilePersistence(dir, configs)
	if err != nil {
		t.Fatalf("Failed to create file persistence: %v", err)
	}

	manager := NewManagerWithPersistence(fp)
	if _, err := manager.Create("lazy", configs.config); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Drop from memory; Get should transparently reload from disk
	if err := manager.DeleteFromMemory("lazy"); err != nil {
		t.Fatalf("DeleteFromMemory failed: %v", err)
	}
	if manager.Count() != 0 {
		t.Fatalf("Expected empty memory cache, got %d", manager.Count())
	}

	restored, err := manager.Get("lazy")
	if err != nil {
		t.Fatalf("Get after memory drop failed: %v", err)
	}
	if restored.ID != "lazy" {
		t.Errorf("Restored ID = %q, want lazy", restored.ID)
	}
	if manager.Count() != 1 {
		t.Error("Expected restored session to be cached in memory")
	}
}
