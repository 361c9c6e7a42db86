package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/pomistea/turtle-escape/game/engine"
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
	// Fallback: return as-is or "default"
	if configName == "" {
		return "default"
	}
	return configName
}

// CreateSession creates a new game session
func (s *gameServiceImpl) CreateSession(ctx context.Context, configName string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Load configuration
	var config *engine.BoardConfig
	var err error
	if configName != "" {
		config, err = s.configs.LoadConfig(configName)
		if err != nil {
			// Provide helpful error message with available options
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

	// Let session manager generate a proper 4-character ID
	session, err := s.sessions.Create("", config)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	// Prefer the input configName if provided, otherwise look up the
	// config_id by display name
	configID := configName
	if configID == "" {
		configID = s.getConfigID(config.Name)
	}

	return &SessionInfo{
		ID:             session.ID,
		ConfigName:     configID,
		CreatedAt:      session.CreatedAt,
		LastAccessedAt: session.LastAccessedAt,
		GameState:      session.Engine.GetState(),
		GameConfig:     session.Config,
	}, nil
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)

	return &SessionInfo{
		ID:             session.ID,
		ConfigName:     s.getConfigID(session.Config.Name),
		CreatedAt:      session.CreatedAt,
		LastAccessedAt: session.LastAccessedAt,
		GameState:      session.Engine.GetState(),
		GameConfig:     session.Config,
	}, nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))

	for _, sess := range sessions {
		result = append(result, &SessionInfo{
			ID:             sess.ID,
			ConfigName:     s.getConfigID(sess.Config.Name),
			CreatedAt:      sess.CreatedAt,
			LastAccessedAt: sess.LastAccessedAt,
			GameState:      sess.Engine.GetState(),
			GameConfig:     sess.Config,
		})
	}

	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sessions.Delete(sessionID)
}

// Command applies a single command ("m" or "r") for a session
func (s *gameServiceImpl) Command(ctx context.Context, sessionID, command string, reset bool) (*CommandResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)

	events := []GameEvent{}

	// Handle reset if requested
	if reset {
		sess.Engine.Reset()
		events = append(events, GameEvent{
			Type:      "reset",
			Message:   "Turtle returned to the start position",
			Timestamp: time.Now(),
		})
	}

	cmd, parseErr := engine.ParseCommand(command)
	if parseErr != nil {
		return nil, fmt.Errorf("invalid command %q: only m (move) and r (rotate) are accepted", command)
	}

	prevPos := sess.Engine.TurtlePosition()
	status, applyErr := sess.Engine.Apply(cmd)
	state := sess.Engine.GetState()

	result := &CommandResult{
		Success:   applyErr == nil,
		GameState: state,
		Message:   state.Message,
		Events:    events,
	}

	if applyErr != nil {
		if errors.Is(applyErr, engine.ErrGameOver) {
			result.Message = "The playthrough is over. Reset to try again."
			return result, nil
		}
		return nil, applyErr
	}

	newPos := sess.Engine.TurtlePosition()
	result.Events = append(result.Events, s.extractCommandEvents(sess, cmd, newPos)...)
	result.Step = &StepInfo{
		Idx:      state.TotalCommands,
		Command:  cmd,
		From:     prevPos,
		To:       newPos,
		Heading:  sess.Engine.TurtleHeading(),
		Status:   status,
		Terminal: status.Terminal(),
	}

	// Auto-save session after the command
	if err := s.sessions.Save(sessionID); err != nil {
		fmt.Printf("Warning: Failed to persist session %s after command: %v\n", sessionID, err)
	}

	return result, nil
}

// RunSequence validates a command sequence and replays it on a fresh
// turtle, halting at the first terminal status. A sequence containing
// any unknown character is rejected as a whole; nothing is applied.
func (s *gameServiceImpl) RunSequence(ctx context.Context, sessionID, sequence string) (*RunResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)

	commands, parseErr := engine.ParseCommandSequence(sequence)
	if parseErr != nil {
		state := sess.Engine.GetState()
		return &RunResult{
			RequestedCommands: len(sequence),
			Success:           false,
			Status:            state.Status,
			GameState:         state,
			Events:            []GameEvent{},
			StoppedReason:     parseErr.Error(),
			StopReasonCode:    "invalid_sequence",
			StartPos:          sess.Config.Start,
			EndPos:            state.Turtle.Position,
			Message:           fmt.Sprintf("Sequence rejected: %v", parseErr),
		}, nil
	}

	start := sess.Config.StartTurtle()

	result := &RunResult{
		RequestedCommands: len(commands),
		Events:            make([]GameEvent, 0),
		StartPos:          start.Position,
		StartHeading:      start.Heading,
	}

	status, runErr := sess.Engine.RunSequence(commands, func(step int, cmd engine.Command, turtle engine.Turtle, st engine.Status) {
		from := result.StartPos
		if n := len(result.Steps); n > 0 {
			from = result.Steps[n-1].To
		}
		result.Steps = append(result.Steps, StepInfo{
			Idx:      step,
			Command:  cmd,
			From:     from,
			To:       turtle.Position,
			Heading:  turtle.Heading,
			Status:   st,
			Terminal: st.Terminal(),
		})
	})
	if runErr != nil {
		return nil, runErr
	}

	state := sess.Engine.GetState()
	result.CommandsExecuted = len(result.Steps)
	result.Success = status == engine.Safe
	result.Status = status
	result.GameState = state
	result.GameOver = state.GameOver
	result.Message = state.Message
	result.EndPos = state.Turtle.Position
	result.EndHeading = state.Turtle.Heading
	result.Board = engine.RenderBoard(sess.Config, &state.Turtle)
	result.DistanceToExit = engine.ManhattanDistance(state.Turtle.Position, sess.Config.Exit)

	switch status {
	case engine.Safe, engine.MineHit, engine.OutOfBounds:
		result.StopReasonCode = string(status)
		result.StoppedOnCommand = result.CommandsExecuted
		result.StoppedReason = state.Message
	default:
		result.StopReasonCode = "exhausted"
		result.StoppedReason = "sequence exhausted before reaching a terminal cell"
	}

	result.Events = append(result.Events, s.extractRunEvents(state)...)

	// Auto-save session after the run
	if err := s.sessions.Save(sessionID); err != nil {
		fmt.Printf("Warning: Failed to persist session %s after run: %v\n", sessionID, err)
	}

	return result, nil
}

// Reset resets a game session so the turtle starts over
func (s *gameServiceImpl) Reset(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	state := sess.Engine.Reset()

	// Auto-save session after reset
	if err := s.sessions.Save(sessionID); err != nil {
		fmt.Printf("Warning: Failed to persist session %s after reset: %v\n", sessionID, err)
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

// GetCommandHistory returns paginated command history
func (s *gameServiceImpl) GetCommandHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	history := sess.Engine.GetCommandHistory()
	total := len(history)

	// Apply defaults
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

	// Calculate pagination
	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := (opts.Page - 1) * opts.Limit
	end := start + opts.Limit
	if end > total {
		end = total
	}

	// Get the slice of commands
	var commands []engine.CommandHistoryEntry
	if opts.Order == "desc" {
		// Reverse order (most recent first)
		for i := total - 1 - start; i >= 0 && i >= total-end; i-- {
			commands = append(commands, history[i])
		}
	} else {
		// Normal chronological order
		if start < total {
			commands = history[start:end]
		}
	}

	// Ensure commands is not nil
	if commands == nil {
		commands = []engine.CommandHistoryEntry{}
	}

	return &HistoryResponse{
		Commands:      commands,
		TotalCommands: total,
		Page:          opts.Page,
		PageSize:      opts.Limit,
		TotalPages:    totalPages,
		HasNext:       opts.Page < totalPages,
		HasPrevious:   opts.Page > 1,
	}, nil
}

// ListConfigs returns available board configurations
func (s *gameServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a specific board configuration
func (s *gameServiceImpl) LoadConfig(ctx context.Context, configName string) (*engine.BoardConfig, error) {
	return s.configs.LoadConfig(configName)
}

// SaveConfig saves a board configuration to disk
func (s *gameServiceImpl) SaveConfig(ctx context.Context, configName string, config *engine.BoardConfig) error {
	return s.configs.SaveConfig(configName, config)
}

// extractCommandEvents generates events from an applied command
func (s *gameServiceImpl) extractCommandEvents(sess *Session, cmd engine.Command, newPos engine.Position) []GameEvent {
	events := []GameEvent{}
	state := sess.Engine.GetState()

	verb := "Moved"
	if cmd == engine.CommandRotate {
		verb = "Rotated"
	}
	events = append(events, GameEvent{
		Type:      "command",
		Message:   fmt.Sprintf("%s to %s", verb, state.Turtle.Describe()),
		Timestamp: time.Now(),
		Position:  newPos,
	})

	if state.GameOver {
		events = append(events, GameEvent{
			Type:      string(state.Status),
			Message:   state.Message,
			Timestamp: time.Now(),
			Position:  newPos,
		})
	}

	return events
}

// extractRunEvents generates the terminal event for a finished run
func (s *gameServiceImpl) extractRunEvents(state *engine.GameState) []GameEvent {
	if !state.GameOver {
		return nil
	}
	return []GameEvent{{
		Type:      string(state.Status),
		Message:   state.Message,
		Timestamp: time.Now(),
		Position:  state.Turtle.Position,
	}}
}
