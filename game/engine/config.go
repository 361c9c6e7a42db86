package engine

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ValidateBoardConfig validates a board configuration for correctness
func ValidateBoardConfig(config *BoardConfig) error {
	if config.Name == "" {
		return fmt.Errorf("config validation: name is required")
	}
	if config.Description == "" {
		return fmt.Errorf("config validation: description is required")
	}

	if config.Columns < MinBoardSize || config.Columns > MaxBoardSize {
		return fmt.Errorf("config validation: columns must be between %d and %d, got %d", MinBoardSize, MaxBoardSize, config.Columns)
	}
	if config.Rows < MinBoardSize || config.Rows > MaxBoardSize {
		return fmt.Errorf("config validation: rows must be between %d and %d, got %d", MinBoardSize, MaxBoardSize, config.Rows)
	}

	// The upper bound here is inclusive of the dimension value itself, a
	// carried-over quirk of the original settings format. Positions equal
	// to columns/rows pass validation and are reported out_of_bounds by
	// Classify instead. Do not tighten to columns-1/rows-1.
	if config.Start.X < 0 || config.Start.X > config.Columns {
		return fmt.Errorf("config validation: start x must be between 0 and %d, got %d", config.Columns, config.Start.X)
	}
	if config.Start.Y < 0 || config.Start.Y > config.Rows {
		return fmt.Errorf("config validation: start y must be between 0 and %d, got %d", config.Rows, config.Start.Y)
	}
	if config.Exit.X < 0 || config.Exit.X > config.Columns {
		return fmt.Errorf("config validation: exit x must be between 0 and %d, got %d", config.Columns, config.Exit.X)
	}
	if config.Exit.Y < 0 || config.Exit.Y > config.Rows {
		return fmt.Errorf("config validation: exit y must be between 0 and %d, got %d", config.Rows, config.Exit.Y)
	}

	if _, err := ParseHeading(config.StartHeading); err != nil {
		return fmt.Errorf("config validation: start_heading must be north, east, south or west, got %q", config.StartHeading)
	}

	// Mines may coincide with the start or exit cell; the classifier
	// decides precedence, not the configuration.
	return nil
}

// StartTurtle constructs a fresh turtle at the board's start state.
// Call only after validation: the heading is assumed to parse.
func (c *BoardConfig) StartTurtle() *Turtle {
	heading, err := ParseHeading(c.StartHeading)
	if err != nil {
		heading = North
	}
	return NewTurtle(c.Start, heading)
}

// DedupedMines returns the mine set with duplicates removed, preserving
// first-seen order
func (c *BoardConfig) DedupedMines() []Position {
	seen := make(map[Position]bool, len(c.Mines))
	mines := make([]Position, 0, len(c.Mines))
	for _, m := range c.Mines {
		if !seen[m] {
			seen[m] = true
			mines = append(mines, m)
		}
	}
	return mines
}

// LoadBoardConfig loads and validates a board configuration JSON file
func LoadBoardConfig(filename string) (*BoardConfig, error) {
	configPath := filename
	if configDir := os.Getenv("CONFIG_DIR"); configDir != "" {
		if strings.HasPrefix(filename, "configs/") {
			configPath = filepath.Join(configDir, strings.TrimPrefix(filename, "configs/"))
		}
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	var config BoardConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	if err := ValidateBoardConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// InitGameStateFromConfig creates a new game state using the provided
// configuration. A nil config falls back to the classic board.
func InitGameStateFromConfig(config *BoardConfig) *GameState {
	if config == nil {
		config = DefaultBoardConfig()
	}

	return &GameState{
		Turtle:              *config.StartTurtle(),
		Status:              StillInDanger,
		GameOver:            false,
		Message:             statusMessage(config, StillInDanger, true),
		ConfigName:          config.Name,
		CommandHistory:      []CommandHistoryEntry{},
		TotalCommands:       0,
		CurrentCommands:     []CommandHistoryEntry{},
		CurrentCommandCount: 0,
		Playthroughs:        0,
	}
}

// DefaultBoardConfig returns the classic 5x4 minefield
func DefaultBoardConfig() *BoardConfig {
	config := &BoardConfig{
		Name:         "classic",
		Description:  "The classic 5x4 minefield",
		Columns:      5,
		Rows:         4,
		Start:        Position{X: 0, Y: 1},
		StartHeading: "north",
		Exit:         Position{X: 4, Y: 2},
		Mines: []Position{
			{X: 1, Y: 1},
			{X: 2, Y: 2},
			{X: 3, Y: 2},
		},
	}
	config.Messages.Welcome = "The turtle is in the minefield. Guide it to the exit!"
	config.Messages.Safe = "The turtle reached the exit. Success!"
	config.Messages.MineHit = "Mine hit! The playthrough is over."
	config.Messages.OutOfBounds = "The turtle left the board."
	config.Messages.StillInDanger = "Still in danger at %s."
	config.Messages.IllegalCommand = "Illegal command, playthrough aborted."
	return config
}

// statusMessage picks the report text for a status, falling back to a
// built-in default when the config leaves the message blank
func statusMessage(config *BoardConfig, status Status, welcome bool) string {
	if welcome {
		if config.Messages.Welcome != "" {
			return config.Messages.Welcome
		}
		return "The turtle is in the minefield."
	}

	var text, fallback string
	switch status {
	case Safe:
		text, fallback = config.Messages.Safe, "Success!"
	case MineHit:
		text, fallback = config.Messages.MineHit, "Mine hit!"
	case OutOfBounds:
		text, fallback = config.Messages.OutOfBounds, "Out of bounds!"
	default:
		text, fallback = config.Messages.StillInDanger, "Still in danger at %s."
	}
	if text == "" {
		text = fallback
	}
	return text
}

// appendCommand records an applied command in both the cumulative and
// the current-segment history
func (gs *GameState) appendCommand(cmd Command, from, to Position, status Status) {
	entry := CommandHistoryEntry{
		Command:   cmd,
		From:      from,
		To:        to,
		Heading:   gs.Turtle.Heading,
		Status:    status,
		Timestamp: time.Now().Unix(),
		Number:    gs.TotalCommands + 1,
	}
	gs.CommandHistory = append(gs.CommandHistory, entry)
	gs.TotalCommands++
	gs.CurrentCommands = append(gs.CurrentCommands, entry)
	gs.CurrentCommandCount++
}
