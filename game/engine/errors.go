package engine

import "errors"

var (
	// ErrInvalidHeading is returned when a heading name is not one of
	// north, east, south, west.
	ErrInvalidHeading = errors.New("invalid heading")

	// ErrEmptySequence is returned when a command sequence has no commands.
	ErrEmptySequence = errors.New("empty command sequence")

	// ErrInvalidCommand is returned when a sequence contains a character
	// other than the recognized commands. The whole sequence is rejected.
	ErrInvalidCommand = errors.New("invalid command")

	// ErrIllegalCommand is returned when the runner encounters an
	// unrecognized command at playback time despite prior validation.
	ErrIllegalCommand = errors.New("illegal command during playback")

	// ErrGameOver is returned when a command is applied to a session whose
	// status is already terminal.
	ErrGameOver = errors.New("game is over")
)
