package engine

import "fmt"

// StepFunc observes one applied command: the 1-based step index, the
// command, a copy of the turtle after the command, and the resulting
// status. Observers are for reporting only and cannot influence the run.
type StepFunc func(step int, cmd Command, turtle Turtle, status Status)

// Run replays a command sequence against a board, driving the given
// turtle. Each command is applied first, then the board is classified;
// the first terminal status halts the run and the remaining commands are
// never applied. The observer, if non-nil, is invoked after every
// applied command.
//
// The sequence is expected to be pre-validated. An unrecognized command
// encountered anyway halts the run immediately with ErrIllegalCommand.
func Run(config *BoardConfig, t *Turtle, commands []Command, observe StepFunc) (Status, error) {
	status := StillInDanger

	for i, cmd := range commands {
		switch cmd {
		case CommandMove:
			t.Move()
		case CommandRotate:
			t.Rotate()
		default:
			return status, fmt.Errorf("%w: %q at step %d", ErrIllegalCommand, cmd, i+1)
		}

		status = Classify(config, t)
		if observe != nil {
			observe(i+1, cmd, *t, status)
		}
		if status.Terminal() {
			break
		}
	}

	return status, nil
}
