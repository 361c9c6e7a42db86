package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/pomistea/turtle-escape/game/engine"
	"github.com/pomistea/turtle-escape/game/service"
)

// MockSessionManager implements service.SessionManager for testing
type MockSessionManager struct {
	sessions map[string]*service.Session
}

func NewMockSessionManager() *MockSessionManager {
	return &MockSessionManager{
		sessions: make(map[string]*service.Session),
	}
}

func (m *MockSessionManager) Create(id string, config *engine.BoardConfig) (*service.Session, error) {
	// Generate ID if empty (mimics real session manager behavior)
	if id == "" {
		id = fmt.Sprintf("test_%d", len(m.sessions)+1)
	}

	if _, exists := m.sessions[id]; exists {
		return nil, errors.New("session already exists")
	}

	eng, err := engine.NewEngine(config)
	if err != nil {
		return nil, err
	}

	session := &service.Session{
		ID:             id,
		Engine:         eng,
		Config:         config,
		CreatedAt:      time.Now(),
		LastAccessedAt: time.Now(),
	}

	m.sessions[id] = session
	return session, nil
}

func (m *MockSessionManager) Get(id string) (*service.Session, error) {
	session, exists := m.sessions[id]
	if !exists {
		return nil, errors.New("session not found")
	}
	return session, nil
}

func (m *MockSessionManager) GetOrCreate(id string, config *engine.BoardConfig) (*service.Session, error) {
	if session, exists := m.sessions[id]; exists {
		return session, nil
	}
	return m.Create(id, config)
}

func (m *MockSessionManager) List() []*service.Session {
	result := make([]*service.Session, 0, len(m.sessions))
	for _, session := range m.sessions {
		result = append(result, session)
	}
	return result
}

func (m *MockSessionManager) Delete(id string) error {
	delete(m.sessions, id)
	return nil
}

func (m *MockSessionManager) UpdateLastAccessed(id string) error {
	if session, exists := m.sessions[id]; exists {
		session.LastAccessedAt = time.Now()
		return nil
	}
	return errors.New("session not found")
}

func (m *MockSessionManager) Save(id string) error {
	if _, exists := m.sessions[id]; !exists {
		return errors.New("session not found")
	}
	// Mock save - in real implementation this would persist to disk
	return nil
}

// MockConfigManager implements service.ConfigManager for testing
type MockConfigManager struct {
	configs map[string]*engine.BoardConfig
}

func NewMockConfigManager() *MockConfigManager {
	defaultConfig := engine.DefaultBoardConfig()
	defaultConfig.Name = "test"
	defaultConfig.Description = "Test configuration"

	return &MockConfigManager{
		configs: map[string]*engine.BoardConfig{
			"test":    defaultConfig,
			"default": defaultConfig,
		},
	}
}

func (m *MockConfigManager) LoadConfig(name string) (*engine.BoardConfig, error) {
	config, exists := m.configs[name]
	if !exists {
		return nil, errors.New("configuration not found")
	}
	return config, nil
}

func (m *MockConfigManager) ListConfigs() ([]*service.ConfigInfo, error) {
	result := make([]*service.ConfigInfo, 0, len(m.configs))
	for name, config := range m.configs {
		result = append(result, &service.ConfigInfo{
			Filename:    name + ".json",
			ConfigID:    name,
			Name:        config.Name,
			Description: config.Description,
			Columns:     config.Columns,
			Rows:        config.Rows,
			MineCount:   engine.CountMines(config),
		})
	}
	return result, nil
}

func (m *MockConfigManager) GetDefault() *engine.BoardConfig {
	return m.configs["default"]
}

func (m *MockConfigManager) SaveConfig(name string, config *engine.BoardConfig) error {
	m.configs[name] = config
	return nil
}

// Test cases
func TestGameService_CreateSession(t *testing.T) {
	ctx := context.Background()
	sessions := NewMockSessionManager()
	configs := NewMockConfigManager()
	svc := service.NewGameService(sessions, configs)

	tests := []struct {
		name       string
		configName string
		wantErr    bool
	}{
		{
			name:       "create with default config",
			configName: "",
			wantErr:    false,
		},
		{
			name:       "create with specific config",
			configName: "test",
			wantErr:    false,
		},
		{
			name:       "create with invalid config",
			configName: "nonexistent",
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session, err := svc.CreateSession(ctx, tt.configName)
			if (err != nil) != tt.wantErr {
				t.Errorf("CreateSession() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && session == nil {
				t.Error("CreateSession() returned nil session")
			}
		})
	}
}

func TestGameService_Command(t *testing.T) {
	ctx := context.Background()
	sessions := NewMockSessionManager()
	configs := NewMockConfigManager()
	svc := service.NewGameService(sessions, configs)

	sessionInfo, err := svc.CreateSession(ctx, "test")
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}

	tests := []struct {
		name      string
		sessionID string
		command   string
		reset     bool
		wantErr   bool
	}{
		{
			name:      "move command",
			sessionID: sessionInfo.ID,
			command:   "m",
			reset:     false,
			wantErr:   false,
		},
		{
			name:      "rotate with reset",
			sessionID: sessionInfo.ID,
			command:   "r",
			reset:     true,
			wantErr:   false,
		},
		{
			name:      "invalid session",
			sessionID: "nonexistent",
			command:   "m",
			reset:     false,
			wantErr:   true,
		},
		{
			name:      "invalid command",
			sessionID: sessionInfo.ID,
			command:   "jump",
			reset:     false,
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := svc.Command(ctx, tt.sessionID, tt.command, tt.reset)
			if (err != nil) != tt.wantErr {
				t.Errorf("Command() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && result == nil {
				t.Error("Command() returned nil result")
			}
		})
	}

	// Additional checks: StepInfo on a successful command
	_, _ = svc.Reset(ctx, sessionInfo.ID)

	res, err := svc.Command(ctx, sessionInfo.ID, "m", false)
	if err != nil {
		t.Fatalf("Command m failed unexpectedly: %v", err)
	}
	if res.Step == nil || !res.Success {
		t.Fatalf("Expected success with StepInfo, got success=%v step=%v", res.Success, res.Step)
	}
	// Classic board: start (0,1) facing north, so m lands on (0,0)
	if res.Step.Command != engine.CommandMove || res.Step.To != (engine.Position{X: 0, Y: 0}) {
		t.Errorf("Invalid StepInfo: %+v", res.Step)
	}
}

func TestGameService_Command_AfterGameOver(t *testing.T) {
	ctx := context.Background()
	sessions := NewMockSessionManager()
	configs := NewMockConfigManager()
	svc := service.NewGameService(sessions, configs)

	sessionInfo, err := svc.CreateSession(ctx, "test")
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}

	// Walk onto the mine at (1,1): m r m r m
	for _, cmd := range []string{"m", "r", "m", "r", "m"} {
		if _, err := svc.Command(ctx, sessionInfo.ID, cmd, false); err != nil {
			t.Fatalf("Command %q failed: %v", cmd, err)
		}
	}

	// Further commands report failure without erroring
	res, err := svc.Command(ctx, sessionInfo.ID, "m", false)
	if err != nil {
		t.Fatalf("Command after game over errored: %v", err)
	}
	if res.Success {
		t.Error("Expected command after game over to be rejected")
	}

	// Reset flag allows play to continue
	res, err = svc.Command(ctx, sessionInfo.ID, "m", true)
	if err != nil {
		t.Fatalf("Command with reset failed: %v", err)
	}
	if !res.Success {
		t.Error("Expected command with reset to succeed")
	}
}

func TestGameService_RunSequence(t *testing.T) {
	ctx := context.Background()
	sessions := NewMockSessionManager()
	configs := NewMockConfigManager()
	svc := service.NewGameService(sessions, configs)

	sessionInfo, err := svc.CreateSession(ctx, "test")
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}

	tests := []struct {
		name         string
		sequence     string
		wantStatus   engine.Status
		wantSuccess  bool
		wantExecuted int
	}{
		{
			name:         "safe route",
			sequence:     "mrmmmmrmm",
			wantStatus:   engine.Safe,
			wantSuccess:  true,
			wantExecuted: 9,
		},
		{
			name:         "out of bounds",
			sequence:     "mrmmmmm",
			wantStatus:   engine.OutOfBounds,
			wantSuccess:  false,
			wantExecuted: 7,
		},
		{
			name:         "mine hit",
			sequence:     "mrmrm",
			wantStatus:   engine.MineHit,
			wantSuccess:  false,
			wantExecuted: 5,
		},
		{
			name:         "sequence exhausted",
			sequence:     "mrmm",
			wantStatus:   engine.StillInDanger,
			wantSuccess:  false,
			wantExecuted: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := svc.RunSequence(ctx, sessionInfo.ID, tt.sequence)
			if err != nil {
				t.Fatalf("RunSequence() error = %v", err)
			}
			if result.Status != tt.wantStatus {
				t.Errorf("RunSequence() status = %s, want %s", result.Status, tt.wantStatus)
			}
			if result.Success != tt.wantSuccess {
				t.Errorf("RunSequence() success = %v, want %v", result.Success, tt.wantSuccess)
			}
			if result.CommandsExecuted != tt.wantExecuted {
				t.Errorf("RunSequence() executed = %d, want %d", result.CommandsExecuted, tt.wantExecuted)
			}
			if len(result.Steps) != tt.wantExecuted {
				t.Errorf("RunSequence() steps = %d, want %d", len(result.Steps), tt.wantExecuted)
			}
		})
	}
}

func TestGameService_RunSequence_InvalidSequenceRejectedWhole(t *testing.T) {
	ctx := context.Background()
	sessions := NewMockSessionManager()
	configs := NewMockConfigManager()
	svc := service.NewGameService(sessions, configs)

	sessionInfo, err := svc.CreateSession(ctx, "test")
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}

	result, err := svc.RunSequence(ctx, sessionInfo.ID, "mrmx")
	if err != nil {
		t.Fatalf("RunSequence() error = %v", err)
	}
	if result.Success || result.StopReasonCode != "invalid_sequence" {
		t.Errorf("Expected invalid_sequence rejection, got %+v", result)
	}
	if result.CommandsExecuted != 0 {
		t.Errorf("Rejected sequence must apply nothing, executed %d", result.CommandsExecuted)
	}

	// The turtle is untouched by the rejected sequence
	state, err := svc.GetGameState(ctx, sessionInfo.ID)
	if err != nil {
		t.Fatalf("GetGameState() error = %v", err)
	}
	if state.TotalCommands != 0 {
		t.Errorf("Rejected sequence recorded %d commands", state.TotalCommands)
	}
}

func TestGameService_RunSequence_StopsAtExit(t *testing.T) {
	ctx := context.Background()
	sessions := NewMockSessionManager()
	configs := NewMockConfigManager()
	svc := service.NewGameService(sessions, configs)

	sessionInfo, err := svc.CreateSession(ctx, "test")
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}

	// Commands after the safe step are not applied
	result, err := svc.RunSequence(ctx, sessionInfo.ID, "mrmmmmrmmmmm")
	if err != nil {
		t.Fatalf("RunSequence() error = %v", err)
	}
	if result.Status != engine.Safe {
		t.Fatalf("status = %s, want safe", result.Status)
	}
	if result.CommandsExecuted != 9 || result.StoppedOnCommand != 9 {
		t.Errorf("Expected stop on command 9, got executed=%d stopped_on=%d",
			result.CommandsExecuted, result.StoppedOnCommand)
	}
	if result.EndPos != (engine.Position{X: 4, Y: 2}) {
		t.Errorf("EndPos = %+v, want exit (4,2)", result.EndPos)
	}
	if result.DistanceToExit != 0 {
		t.Errorf("DistanceToExit = %d, want 0", result.DistanceToExit)
	}
}

func TestGameService_GetCommandHistory(t *testing.T) {
	ctx := context.Background()
	sessions := NewMockSessionManager()
	configs := NewMockConfigManager()
	svc := service.NewGameService(sessions, configs)

	sessionInfo, err := svc.CreateSession(ctx, "test")
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}

	// Generate some history
	if _, err := svc.RunSequence(ctx, sessionInfo.ID, "mrmm"); err != nil {
		t.Fatalf("Failed to run sequence: %v", err)
	}

	tests := []struct {
		name      string
		sessionID string
		opts      service.HistoryOptions
		wantErr   bool
	}{
		{
			name:      "default options",
			sessionID: sessionInfo.ID,
			opts:      service.HistoryOptions{},
			wantErr:   false,
		},
		{
			name:      "with pagination",
			sessionID: sessionInfo.ID,
			opts: service.HistoryOptions{
				Page:  1,
				Limit: 2,
				Order: "asc",
			},
			wantErr: false,
		},
		{
			name:      "descending order",
			sessionID: sessionInfo.ID,
			opts: service.HistoryOptions{
				Page:  1,
				Limit: 10,
				Order: "desc",
			},
			wantErr: false,
		},
		{
			name:      "invalid session",
			sessionID: "nonexistent",
			opts:      service.HistoryOptions{},
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := svc.GetCommandHistory(ctx, tt.sessionID, tt.opts)
			if (err != nil) != tt.wantErr {
				t.Errorf("GetCommandHistory() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && result == nil {
				t.Error("GetCommandHistory() returned nil result")
			}
			if !tt.wantErr && result != nil {
				if result.Commands == nil {
					t.Error("GetCommandHistory() returned nil commands slice")
				}
				if result.TotalCommands != 4 {
					t.Errorf("GetCommandHistory() total = %d, want 4", result.TotalCommands)
				}
			}
		})
	}

	// Pagination boundaries
	page2, err := svc.GetCommandHistory(ctx, sessionInfo.ID, service.HistoryOptions{Page: 2, Limit: 3, Order: "asc"})
	if err != nil {
		t.Fatalf("GetCommandHistory() error = %v", err)
	}
	if len(page2.Commands) != 1 || !page2.HasPrevious || page2.HasNext {
		t.Errorf("Unexpected page 2: %+v", page2)
	}
}

func TestGameService_ListSessions(t *testing.T) {
	ctx := context.Background()
	sessions := NewMockSessionManager()
	configs := NewMockConfigManager()
	svc := service.NewGameService(sessions, configs)

	for i := 0; i < 3; i++ {
		_, err := svc.CreateSession(ctx, "test")
		if err != nil {
			t.Fatalf("Failed to create session %d: %v", i, err)
		}
	}

	sessionList, err := svc.ListSessions(ctx)
	if err != nil {
		t.Fatalf("ListSessions() error = %v", err)
	}

	if len(sessionList) != 3 {
		t.Errorf("ListSessions() returned %d sessions, want 3", len(sessionList))
	}
}

func TestGameService_Reset(t *testing.T) {
	ctx := context.Background()
	sessions := NewMockSessionManager()
	configs := NewMockConfigManager()
	svc := service.NewGameService(sessions, configs)

	sessionInfo, err := svc.CreateSession(ctx, "test")
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}

	if _, err = svc.Command(ctx, sessionInfo.ID, "m", false); err != nil {
		t.Fatalf("Failed to apply command: %v", err)
	}

	state, err := svc.Reset(ctx, sessionInfo.ID)
	if err != nil {
		t.Fatalf("Reset() error = %v", err)
	}

	if state == nil {
		t.Fatal("Reset() returned nil state")
	}
	if state.Turtle.Position != (engine.Position{X: 0, Y: 1}) {
		t.Errorf("Reset turtle at %+v, want start (0,1)", state.Turtle.Position)
	}
	if state.TotalCommands != 1 {
		t.Errorf("Cumulative history lost on reset: total = %d, want 1", state.TotalCommands)
	}
}
