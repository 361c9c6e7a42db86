package engine

import (
	"fmt"
	"strings"
)

// ParseCommand recognizes a single command character, case-insensitively
func ParseCommand(s string) (Command, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "m", "move":
		return CommandMove, nil
	case "r", "rotate":
		return CommandRotate, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidCommand, s)
	}
}

// ParseCommandSequence validates and parses a command string such as
// "mrmmm". The sequence must be non-empty and every character must be a
// recognized command; one bad character rejects the whole sequence.
func ParseCommandSequence(s string) ([]Command, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, ErrEmptySequence
	}
	if len(s) > MaxSequenceLength {
		return nil, fmt.Errorf("sequence too long: %d commands, max %d", len(s), MaxSequenceLength)
	}

	commands := make([]Command, 0, len(s))
	for i, r := range strings.ToLower(s) {
		switch r {
		case 'm':
			commands = append(commands, CommandMove)
		case 'r':
			commands = append(commands, CommandRotate)
		default:
			return nil, fmt.Errorf("%w: %q at position %d", ErrInvalidCommand, string(r), i+1)
		}
	}

	return commands, nil
}

// SequenceString renders a command slice back to its compact "mrmm" form
func SequenceString(commands []Command) string {
	var b strings.Builder
	for _, cmd := range commands {
		b.WriteString(string(cmd))
	}
	return b.String()
}
