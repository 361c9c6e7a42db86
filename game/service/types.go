package service

import (
	"time"

	"github.com/pomistea/turtle-escape/game/engine"
)

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string              `json:"id"`
	ConfigName     string              `json:"config_name"`
	CreatedAt      time.Time           `json:"created_at"`
	LastAccessedAt time.Time           `json:"last_accessed_at"`
	GameState      *engine.GameState   `json:"game_state"`
	GameConfig     *engine.BoardConfig `json:"game_config"`
}

// CommandResult contains the result of a single command
type CommandResult struct {
	Success   bool              `json:"success"`
	GameState *engine.GameState `json:"game_state"`
	Message   string            `json:"message"`
	Events    []GameEvent       `json:"events,omitempty"`
	Step      *StepInfo         `json:"step,omitempty"`
}

// RunResult contains the result of replaying a command sequence
type RunResult struct {
	// Summary
	CommandsExecuted  int               `json:"commands_executed"`
	RequestedCommands int               `json:"requested_commands"`
	Success           bool              `json:"success"`
	Status            engine.Status     `json:"status"`
	GameState         *engine.GameState `json:"game_state"`
	Events            []GameEvent       `json:"events"`
	StoppedReason     string            `json:"stopped_reason,omitempty"`    // Human-readable reason
	StopReasonCode    string            `json:"stop_reason_code,omitempty"`  // Machine-friendly: safe|mine_hit|out_of_bounds|invalid_sequence|exhausted
	StoppedOnCommand  int               `json:"stopped_on_command,omitempty"` // 1-based index of the command that ended the run

	// Start/end snapshot
	StartPos     engine.Position `json:"start_pos"`
	EndPos       engine.Position `json:"end_pos"`
	StartHeading engine.Heading  `json:"start_heading"`
	EndHeading   engine.Heading  `json:"end_heading"`

	// Per-step compact trace (only for this run)
	Steps []StepInfo `json:"steps,omitempty"`

	// Final status aids
	GameOver       bool     `json:"game_over"`
	Message        string   `json:"message,omitempty"`
	Board          []string `json:"board,omitempty"`
	DistanceToExit int      `json:"distance_to_exit"`
}

// StepInfo is a compact record for each applied command in a run
type StepInfo struct {
	Idx      int             `json:"idx"`
	Command  engine.Command  `json:"command"`
	From     engine.Position `json:"from"`
	To       engine.Position `json:"to"`
	Heading  engine.Heading  `json:"heading"`
	Status   engine.Status   `json:"status"`
	Terminal bool            `json:"terminal,omitempty"`
}

// GameEvent represents an event that occurred during gameplay
type GameEvent struct {
	Type      string          `json:"type"` // "command", "safe", "mine_hit", "out_of_bounds", "reset"
	Message   string          `json:"message"`
	Timestamp time.Time       `json:"timestamp"`
	Position  engine.Position `json:"position,omitempty"`
}

// HistoryOptions configures command history retrieval
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// HistoryResponse contains paginated command history
type HistoryResponse struct {
	Commands      []engine.CommandHistoryEntry `json:"commands"`
	TotalCommands int                          `json:"total_commands"`
	Page          int                          `json:"page"`
	PageSize      int                          `json:"page_size"`
	TotalPages    int                          `json:"total_pages"`
	HasNext       bool                         `json:"has_next"`
	HasPrevious   bool                         `json:"has_previous"`
}

// ConfigInfo provides information about a board configuration
type ConfigInfo struct {
	Filename    string `json:"filename"`
	ConfigID    string `json:"config_id"` // The identifier to use for session creation
	Name        string `json:"name"`      // Display name
	Description string `json:"description"`
	Columns     int    `json:"columns"`
	Rows        int    `json:"rows"`
	MineCount   int    `json:"mine_count"`
}
