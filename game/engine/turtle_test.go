package engine

import (
	"testing"
)

func TestTurtle_Move(t *testing.T) {
	cases := []struct {
		heading Heading
		want    Position
	}{
		{North, Position{X: 2, Y: 1}},
		{East, Position{X: 3, Y: 2}},
		{South, Position{X: 2, Y: 3}},
		{West, Position{X: 1, Y: 2}},
	}

	for _, c := range cases {
		turtle := NewTurtle(Position{X: 2, Y: 2}, c.heading)
		if ok := turtle.Move(); !ok {
			t.Errorf("Move() facing %s returned false", c.heading)
		}
		if turtle.Position != c.want {
			t.Errorf("Move() facing %s ended at %+v, want %+v", c.heading, turtle.Position, c.want)
		}
	}
}

func TestTurtle_Move_IgnoresBounds(t *testing.T) {
	turtle := NewTurtle(Position{X: 0, Y: 0}, West)
	if ok := turtle.Move(); !ok {
		t.Error("Move() off the board edge must still succeed")
	}
	if turtle.Position.X != -1 {
		t.Errorf("expected x=-1 after moving west from the edge, got %d", turtle.Position.X)
	}
}

func TestTurtle_Rotate(t *testing.T) {
	turtle := NewTurtle(Position{X: 0, Y: 0}, North)

	turtle.Rotate()
	if turtle.Heading != East {
		t.Errorf("expected east after one rotate, got %s", turtle.Heading)
	}
	if turtle.Position != (Position{X: 0, Y: 0}) {
		t.Errorf("rotate must not move the turtle, got %+v", turtle.Position)
	}
}

func TestTurtle_MoveReversibility(t *testing.T) {
	// Move, turn 180° with two rotates, move again: back where it started.
	for _, h := range []Heading{North, East, South, West} {
		turtle := NewTurtle(Position{X: 5, Y: 5}, h)
		start := turtle.Position

		turtle.Move()
		turtle.Rotate()
		turtle.Rotate()
		turtle.Move()

		if turtle.Position != start {
			t.Errorf("facing %s: expected return to %+v, got %+v", h, start, turtle.Position)
		}
	}
}

func TestTurtle_Describe(t *testing.T) {
	turtle := NewTurtle(Position{X: 3, Y: 1}, West)
	if got := turtle.Describe(); got != "3,1 WEST" {
		t.Errorf("Describe() = %q, want %q", got, "3,1 WEST")
	}

	// Describe must not mutate
	before := *turtle
	turtle.Describe()
	if *turtle != before {
		t.Error("Describe() mutated the turtle")
	}
}
