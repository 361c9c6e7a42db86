package engine

import (
	"fmt"
	"strings"
)

// Engine provides the main interface for game operations
type Engine interface {
	// Game state management
	GetState() *GameState
	SetState(state *GameState) error
	Reset() *GameState
	IsGameOver() bool
	Status() Status
	TurtlePosition() Position
	TurtleHeading() Heading

	// Command operations
	Apply(cmd Command) (Status, error)
	RunSequence(commands []Command, observe StepFunc) (Status, error)

	// Configuration
	GetConfig() *BoardConfig
	SetConfig(config *BoardConfig) error

	// History
	GetCommandHistory() []CommandHistoryEntry
	GetLastCommand() *CommandHistoryEntry
}

// GameEngine implements the Engine interface
type GameEngine struct {
	state  *GameState
	config *BoardConfig
}

// NewEngine creates a new game engine with the provided configuration
func NewEngine(config *BoardConfig) (*GameEngine, error) {
	if err := ValidateBoardConfig(config); err != nil {
		return nil, err
	}

	return &GameEngine{
		config: config,
		state:  InitGameStateFromConfig(config),
	}, nil
}

// NewEngineWithDefaults creates a new game engine on the classic board
func NewEngineWithDefaults() *GameEngine {
	config := DefaultBoardConfig()
	return &GameEngine{
		config: config,
		state:  InitGameStateFromConfig(config),
	}
}

// GetState returns the current game state
func (e *GameEngine) GetState() *GameState {
	return e.state
}

// SetState sets the game state (used for persistence loading)
func (e *GameEngine) SetState(state *GameState) error {
	if state == nil {
		return fmt.Errorf("state cannot be nil")
	}
	e.state = state
	return nil
}

// Reset puts a fresh turtle at the start state. Cumulative history and
// totals survive the reset; only the current segment is cleared.
func (e *GameEngine) Reset() *GameState {
	prevHistory := e.state.CommandHistory
	prevTotal := e.state.TotalCommands
	prevPlaythroughs := e.state.Playthroughs

	e.state = InitGameStateFromConfig(e.config)

	e.state.CommandHistory = prevHistory
	e.state.TotalCommands = prevTotal
	e.state.Playthroughs = prevPlaythroughs
	e.state.CurrentCommands = []CommandHistoryEntry{}
	e.state.CurrentCommandCount = 0

	return e.state
}

// IsGameOver returns whether the current playthrough reached a terminal status
func (e *GameEngine) IsGameOver() bool {
	return e.state.GameOver
}

// Status returns the current board status
func (e *GameEngine) Status() Status {
	return e.state.Status
}

// TurtlePosition returns the turtle's current position
func (e *GameEngine) TurtlePosition() Position {
	return e.state.Turtle.Position
}

// TurtleHeading returns the turtle's current heading
func (e *GameEngine) TurtleHeading() Heading {
	return e.state.Turtle.Heading
}

// Apply executes a single command against the live turtle and
// reclassifies the board. Commands against a finished playthrough are
// rejected; reset first.
func (e *GameEngine) Apply(cmd Command) (Status, error) {
	if e.state.GameOver {
		return e.state.Status, ErrGameOver
	}

	from := e.state.Turtle.Position

	switch cmd {
	case CommandMove:
		e.state.Turtle.Move()
	case CommandRotate:
		e.state.Turtle.Rotate()
	default:
		e.state.GameOver = true
		e.state.Message = statusMessage(e.config, e.state.Status, false)
		if e.config.Messages.IllegalCommand != "" {
			e.state.Message = e.config.Messages.IllegalCommand
		}
		return e.state.Status, fmt.Errorf("%w: %q", ErrIllegalCommand, cmd)
	}

	status := Classify(e.config, &e.state.Turtle)
	e.state.Status = status
	e.state.GameOver = status.Terminal()
	e.state.Message = e.describeStatus(status)
	e.state.appendCommand(cmd, from, e.state.Turtle.Position, status)

	return status, nil
}

// RunSequence replays a pre-validated command sequence on a fresh turtle,
// halting at the first terminal status. The session's current segment is
// cleared first, so after the run it holds exactly this playthrough.
func (e *GameEngine) RunSequence(commands []Command, observe StepFunc) (Status, error) {
	// Fresh turtle, one playthrough
	e.Reset()

	turtle := e.config.StartTurtle()
	status, err := Run(e.config, turtle, commands, func(step int, cmd Command, t Turtle, st Status) {
		from := e.state.Turtle.Position
		e.state.Turtle = t
		e.state.appendCommand(cmd, from, t.Position, st)
		if observe != nil {
			observe(step, cmd, t, st)
		}
	})

	e.state.Status = status
	e.state.GameOver = status.Terminal()
	e.state.Playthroughs++
	if err != nil {
		e.state.Message = statusMessage(e.config, status, false)
		if e.config.Messages.IllegalCommand != "" {
			e.state.Message = e.config.Messages.IllegalCommand
		}
		return status, err
	}
	e.state.Message = e.describeStatus(status)

	return status, nil
}

// GetConfig returns the current board configuration
func (e *GameEngine) GetConfig() *BoardConfig {
	return e.config
}

// SetConfig sets a new board configuration and resets the game
func (e *GameEngine) SetConfig(config *BoardConfig) error {
	if err := ValidateBoardConfig(config); err != nil {
		return err
	}

	e.config = config
	e.state = InitGameStateFromConfig(config)
	return nil
}

// GetCommandHistory returns the cumulative command history
func (e *GameEngine) GetCommandHistory() []CommandHistoryEntry {
	return e.state.CommandHistory
}

// GetLastCommand returns the last applied command, or nil if none
func (e *GameEngine) GetLastCommand() *CommandHistoryEntry {
	if len(e.state.CommandHistory) == 0 {
		return nil
	}
	return &e.state.CommandHistory[len(e.state.CommandHistory)-1]
}

// describeStatus formats the report text for a status, filling the
// turtle snapshot into still-in-danger messages that carry a %s verb
func (e *GameEngine) describeStatus(status Status) string {
	msg := statusMessage(e.config, status, false)
	if strings.Contains(msg, "%s") {
		msg = fmt.Sprintf(msg, e.state.Turtle.Describe())
	}
	return msg
}
