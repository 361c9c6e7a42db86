package engine

import (
	"fmt"
	"strings"
)

// Heading is the compass direction the turtle is facing
type Heading string

const (
	North Heading = "north"
	East  Heading = "east"
	South Heading = "south"
	West  Heading = "west"
)

// RotateRight returns the heading after a 90° clockwise turn
func (h Heading) RotateRight() Heading {
	switch h {
	case North:
		return East
	case East:
		return South
	case South:
		return West
	case West:
		return North
	default:
		return h
	}
}

// ParseHeading matches a heading name case-insensitively
func ParseHeading(s string) (Heading, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "north":
		return North, nil
	case "east":
		return East, nil
	case "south":
		return South, nil
	case "west":
		return West, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidHeading, s)
	}
}

// Status is the board outcome for the turtle's current position
type Status string

const (
	StillInDanger Status = "still_in_danger"
	OutOfBounds   Status = "out_of_bounds"
	MineHit       Status = "mine_hit"
	Safe          Status = "safe"
)

// Terminal reports whether the status stops command playback.
// StillInDanger is the only non-terminal value.
func (s Status) Terminal() bool {
	return s != StillInDanger
}

// Command is a single-character turtle instruction
type Command string

const (
	CommandMove   Command = "m"
	CommandRotate Command = "r"

	// Validation constants
	MinBoardSize        = 1
	MaxBoardSize        = 100
	MaxSequenceLength   = 1000
	WebSocketBufferSize = 256
)

// Position represents x,y coordinates. x grows eastward, y grows
// southward; y=0 is the top row. Out-of-range coordinates are
// representable on purpose, the classifier detects them.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// BoardConfig describes the playing field loaded from JSON
type BoardConfig struct {
	Name         string     `json:"name"`
	Description  string     `json:"description"`
	Columns      int        `json:"columns"`
	Rows         int        `json:"rows"`
	Start        Position   `json:"start"`
	StartHeading string     `json:"start_heading"`
	Exit         Position   `json:"exit"`
	Mines        []Position `json:"mines"`
	Messages     struct {
		Welcome        string `json:"welcome"`
		Safe           string `json:"safe"`
		MineHit        string `json:"mine_hit"`
		OutOfBounds    string `json:"out_of_bounds"`
		StillInDanger  string `json:"still_in_danger"`
		IllegalCommand string `json:"illegal_command"`
	} `json:"messages"`
}

// HasMine reports whether a mine occupies the given cell
func (c *BoardConfig) HasMine(p Position) bool {
	for _, m := range c.Mines {
		if m == p {
			return true
		}
	}
	return false
}

// GameState represents the complete state of one game session
type GameState struct {
	Turtle     Turtle `json:"turtle"`
	Status     Status `json:"status"`
	GameOver   bool   `json:"game_over"`
	Message    string `json:"message"`
	ConfigName string `json:"config_name"`

	// CommandHistory is cumulative across resets and playthroughs.
	CommandHistory []CommandHistoryEntry `json:"command_history"`
	TotalCommands  int                   `json:"total_commands"`

	// CurrentCommands mirrors CommandHistory entries but is cleared on
	// reset and at the start of each sequence playthrough.
	CurrentCommands     []CommandHistoryEntry `json:"current_commands"`
	CurrentCommandCount int                   `json:"current_command_count"`

	// Playthroughs counts completed sequence replays in this session.
	Playthroughs int `json:"playthroughs"`
}

// CommandHistoryEntry records a single applied command
type CommandHistoryEntry struct {
	Command   Command  `json:"command"`
	From      Position `json:"from_position"`
	To        Position `json:"to_position"`
	Heading   Heading  `json:"heading"`
	Status    Status   `json:"status"`
	Timestamp int64    `json:"timestamp"`
	Number    int      `json:"number"`
}
