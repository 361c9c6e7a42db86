// Command turtle is the offline driver for the minefield game. It
// replays move files against a board settings file and can search for
// the shortest escape sequence, without needing a running server.
//
// Usage:
//
//	turtle play configs/classic.json moves.txt
//	turtle solve configs/classic.json
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pomistea/turtle-escape/game/engine"
	"github.com/urfave/cli/v3"
)

func main() {
	cmd := &cli.Command{
		Name:  "turtle",
		Usage: "replay and solve turtle minefield boards",
		Commands: []*cli.Command{
			{
				Name:      "play",
				Usage:     "replay each line of a moves file as one playthrough",
				ArgsUsage: "<settings.json> <moves file>",
				Action:    runPlay,
			},
			{
				Name:      "solve",
				Usage:     "find the shortest escape sequence for a board",
				ArgsUsage: "<settings.json>",
				Action:    runSolve,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func runPlay(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() != 2 {
		return fmt.Errorf("play needs a settings file and a moves file")
	}

	config, err := engine.LoadBoardConfig(cmd.Args().Get(0))
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}

	file, err := os.Open(cmd.Args().Get(1))
	if err != nil {
		return fmt.Errorf("opening moves file: %w", err)
	}
	defer file.Close()

	invalid, err := playSequences(config, file, os.Stdout)
	if err != nil {
		return err
	}
	if invalid > 0 {
		return fmt.Errorf("%d sequence(s) rejected before execution", invalid)
	}
	return nil
}

// playSequences replays one playthrough per non-empty line, printing the
// outcome of each. A line that fails validation is rejected as a whole;
// nothing from it is executed. Returns the number of rejected lines.
func playSequences(config *engine.BoardConfig, moves io.Reader, out io.Writer) (int, error) {
	scanner := bufio.NewScanner(moves)
	sequence := 0
	invalid := 0

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		sequence++

		commands, err := engine.ParseCommandSequence(line)
		if err != nil {
			fmt.Fprintf(out, "Sequence %d: invalid sequence (%v)\n", sequence, err)
			invalid++
			continue
		}

		turtle := config.StartTurtle()
		status, err := engine.Run(config, turtle, commands, nil)
		if err != nil {
			fmt.Fprintf(out, "Sequence %d: invalid sequence (%v)\n", sequence, err)
			invalid++
			continue
		}

		fmt.Fprintf(out, "Sequence %d: %s\n", sequence, describeOutcome(turtle, status, len(commands)))
	}

	if err := scanner.Err(); err != nil {
		return invalid, fmt.Errorf("reading moves file: %w", err)
	}
	if sequence == 0 {
		return invalid, fmt.Errorf("moves file contains no sequences")
	}
	return invalid, nil
}

func describeOutcome(t *engine.Turtle, status engine.Status, commands int) string {
	switch status {
	case engine.Safe:
		return fmt.Sprintf("escaped in %d commands", commands)
	case engine.MineHit:
		return fmt.Sprintf("mine hit at (%d,%d)", t.Position.X, t.Position.Y)
	case engine.OutOfBounds:
		return fmt.Sprintf("left the board at (%d,%d)", t.Position.X, t.Position.Y)
	default:
		return fmt.Sprintf("still in danger at (%d,%d) after %d commands", t.Position.X, t.Position.Y, commands)
	}
}

func runSolve(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() != 1 {
		return fmt.Errorf("solve needs a settings file")
	}

	config, err := engine.LoadBoardConfig(cmd.Args().Get(0))
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}

	sequence, err := solveBoard(config)
	if err != nil {
		return err
	}
	if sequence == "" {
		fmt.Println("The turtle already starts on the exit.")
		return nil
	}

	fmt.Printf("Shortest escape: %s (%d commands)\n", sequence, len(sequence))
	return nil
}

// solverState is a BFS node: where the turtle is and where it faces.
// Two visits to the same cell with different headings are distinct
// states because only a move in the facing direction is available.
type solverState struct {
	pos     engine.Position
	heading engine.Heading
}

// solveBoard breadth-first searches the (position, heading) state space
// for the shortest command sequence that reaches the exit. Moves onto
// mined or off-board cells are pruned, so a returned sequence always
// replays to a safe outcome.
func solveBoard(config *engine.BoardConfig) (string, error) {
	if config.HasMine(config.Exit) {
		return "", fmt.Errorf("the exit is mined, the board cannot be won")
	}
	if !inBounds(config, config.Start) {
		return "", fmt.Errorf("the start is outside the board")
	}
	if config.HasMine(config.Start) {
		return "", fmt.Errorf("the start is mined")
	}
	if config.Start == config.Exit {
		return "", nil
	}

	start := solverState{pos: config.Start, heading: config.StartTurtle().Heading}
	visited := map[solverState]bool{start: true}
	parent := make(map[solverState]solverState)
	via := make(map[solverState]engine.Command)
	queue := []solverState{start}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		// Move ahead, if the cell ahead is survivable.
		ahead := engine.Turtle{Position: current.pos, Heading: current.heading}
		ahead.Move()
		if inBounds(config, ahead.Position) && !config.HasMine(ahead.Position) {
			next := solverState{pos: ahead.Position, heading: current.heading}
			if !visited[next] {
				visited[next] = true
				parent[next] = current
				via[next] = engine.CommandMove
				if next.pos == config.Exit {
					return reconstruct(parent, via, start, next), nil
				}
				queue = append(queue, next)
			}
		}

		// Rotate in place.
		next := solverState{pos: current.pos, heading: current.heading.RotateRight()}
		if !visited[next] {
			visited[next] = true
			parent[next] = current
			via[next] = engine.CommandRotate
			queue = append(queue, next)
		}
	}

	return "", fmt.Errorf("no path from the start to the exit")
}

func reconstruct(parent map[solverState]solverState, via map[solverState]engine.Command, start, end solverState) string {
	var commands []byte
	for state := end; state != start; state = parent[state] {
		commands = append(commands, byte(via[state][0]))
	}
	for i, j := 0, len(commands)-1; i < j; i, j = i+1, j-1 {
		commands[i], commands[j] = commands[j], commands[i]
	}
	return string(commands)
}

func inBounds(config *engine.BoardConfig, p engine.Position) bool {
	return p.X >= 0 && p.X < config.Columns && p.Y >= 0 && p.Y < config.Rows
}
