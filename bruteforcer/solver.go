package main

import "fmt"

// Board is the subset of a board configuration the solver needs.
type Board struct {
	Name         string     `json:"name"`
	Columns      int        `json:"columns"`
	Rows         int        `json:"rows"`
	Start        Position   `json:"start"`
	StartHeading string     `json:"start_heading"`
	Exit         Position   `json:"exit"`
	Mines        []Position `json:"mines"`
}

// headings in clockwise order, matching a right rotation
var headings = []string{"north", "east", "south", "west"}

var headingDelta = map[string][2]int{
	"north": {0, -1},
	"east":  {1, 0},
	"south": {0, 1},
	"west":  {-1, 0},
}

func (b *Board) hasMine(p Position) bool {
	for _, m := range b.Mines {
		if m == p {
			return true
		}
	}
	return false
}

func (b *Board) inBounds(p Position) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < b.Columns && p.Y < b.Rows
}

func rotateRight(heading string) string {
	for i, h := range headings {
		if h == heading {
			return headings[(i+1)%4]
		}
	}
	return heading
}

// solverState is a BFS node: where the turtle is and which way it faces.
type solverState struct {
	pos     Position
	heading string
}

// Solve finds the shortest command sequence (m and r characters) that takes
// the turtle from the board's start to the exit without stepping on a mine
// or leaving the board. Returns an error when no sequence exists.
//
// BFS over (position, heading) states: both commands cost one, so the first
// time the exit is dequeued the sequence is minimal.
func Solve(board *Board) (string, error) {
	if board.hasMine(board.Exit) {
		return "", fmt.Errorf("exit (%d,%d) is mined, board cannot be won", board.Exit.X, board.Exit.Y)
	}
	if !board.inBounds(board.Start) {
		return "", fmt.Errorf("start (%d,%d) is off the board", board.Start.X, board.Start.Y)
	}
	if board.hasMine(board.Start) {
		return "", fmt.Errorf("start (%d,%d) is mined", board.Start.X, board.Start.Y)
	}

	start := solverState{pos: board.Start, heading: board.StartHeading}
	if start.pos == board.Exit {
		return "", nil
	}

	visited := map[solverState]bool{start: true}
	queue := []solverState{start}
	parent := map[solverState]solverState{}
	command := map[solverState]byte{}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		// m: step forward, legal only if the new cell is on the board
		// and mine-free
		delta := headingDelta[cur.heading]
		next := solverState{
			pos:     Position{X: cur.pos.X + delta[0], Y: cur.pos.Y + delta[1]},
			heading: cur.heading,
		}
		if board.inBounds(next.pos) && !board.hasMine(next.pos) && !visited[next] {
			visited[next] = true
			parent[next] = cur
			command[next] = 'm'
			if next.pos == board.Exit {
				return reconstruct(start, next, parent, command), nil
			}
			queue = append(queue, next)
		}

		// r: rotate in place
		turned := solverState{pos: cur.pos, heading: rotateRight(cur.heading)}
		if !visited[turned] {
			visited[turned] = true
			parent[turned] = cur
			command[turned] = 'r'
			queue = append(queue, turned)
		}
	}

	return "", fmt.Errorf("exit (%d,%d) is unreachable from start (%d,%d)",
		board.Exit.X, board.Exit.Y, board.Start.X, board.Start.Y)
}

func reconstruct(start, goal solverState, parent map[solverState]solverState, command map[solverState]byte) string {
	var reversed []byte
	for cur := goal; cur != start; cur = parent[cur] {
		reversed = append(reversed, command[cur])
	}
	sequence := make([]byte, len(reversed))
	for i, c := range reversed {
		sequence[len(reversed)-1-i] = c
	}
	return string(sequence)
}

// Simulate replays a command sequence on a board and reports the final
// status using the same rules as the game server. Used to sanity check
// solver output before submitting it.
func Simulate(board *Board, sequence string) (Position, string) {
	pos := board.Start
	heading := board.StartHeading

	for _, c := range sequence {
		switch c {
		case 'm':
			delta := headingDelta[heading]
			pos = Position{X: pos.X + delta[0], Y: pos.Y + delta[1]}
		case 'r':
			heading = rotateRight(heading)
		default:
			return pos, "invalid_sequence"
		}

		// Classify after every command: bounds first, then mine, then exit
		if !board.inBounds(pos) {
			return pos, "out_of_bounds"
		}
		if board.hasMine(pos) {
			return pos, "mine_hit"
		}
		if pos == board.Exit {
			return pos, "safe"
		}
	}

	return pos, "still_in_danger"
}
