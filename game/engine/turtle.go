package engine

import (
	"fmt"
	"strings"
)

// Turtle is the movable entity: a grid position plus a heading. One
// turtle serves one playthrough; a fresh turtle is constructed per run.
type Turtle struct {
	Position Position `json:"position"`
	Heading  Heading  `json:"heading"`
}

// NewTurtle creates a turtle at the given start state
func NewTurtle(pos Position, heading Heading) *Turtle {
	return &Turtle{Position: pos, Heading: heading}
}

// Move translates the turtle one cell in the direction it faces. It does
// not consult board bounds; leaving the grid is a legal intermediate
// state resolved by Classify. The default branch is unreachable for the
// closed Heading domain and exists only to keep the return uniform.
func (t *Turtle) Move() bool {
	switch t.Heading {
	case North:
		t.Position.Y--
	case East:
		t.Position.X++
	case South:
		t.Position.Y++
	case West:
		t.Position.X--
	default:
		return false
	}
	return true
}

// Rotate turns the turtle 90° clockwise
func (t *Turtle) Rotate() {
	t.Heading = t.Heading.RotateRight()
}

// Describe returns a human-readable "x,y HEADING" snapshot
func (t *Turtle) Describe() string {
	return fmt.Sprintf("%d,%d %s", t.Position.X, t.Position.Y, strings.ToUpper(string(t.Heading)))
}
