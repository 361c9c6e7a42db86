package engine

import (
	"testing"
)

func classifyTestConfig() *BoardConfig {
	config := &BoardConfig{
		Name:         "Classify Test Board",
		Description:  "Board for classifier tests",
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
	return config
}

func TestClassify(t *testing.T) {
	config := classifyTestConfig()

	cases := []struct {
		name string
		pos  Position
		want Status
	}{
		{"negative x", Position{X: -1, Y: 0}, OutOfBounds},
		{"negative y", Position{X: 0, Y: -1}, OutOfBounds},
		{"x at columns", Position{X: 5, Y: 0}, OutOfBounds},
		{"y at rows", Position{X: 0, Y: 4}, OutOfBounds},
		{"mine", Position{X: 1, Y: 1}, MineHit},
		{"exit", Position{X: 4, Y: 2}, Safe},
		{"plain cell", Position{X: 0, Y: 0}, StillInDanger},
		{"start cell", Position{X: 0, Y: 1}, StillInDanger},
	}

	for _, c := range cases {
		turtle := NewTurtle(c.pos, North)
		if got := Classify(config, turtle); got != c.want {
			t.Errorf("%s: Classify(%+v) = %s, want %s", c.name, c.pos, got, c.want)
		}
	}
}

func TestClassify_BoundsBeforeMembership(t *testing.T) {
	// A mine or exit recorded outside the grid must never mask an escaped
	// turtle: bounds checks win.
	config := classifyTestConfig()
	config.Mines = append(config.Mines, Position{X: 7, Y: 1})
	config.Exit = Position{X: 5, Y: 2}

	onStrayMine := NewTurtle(Position{X: 7, Y: 1}, North)
	if got := Classify(config, onStrayMine); got != OutOfBounds {
		t.Errorf("turtle on out-of-range mine classified %s, want %s", got, OutOfBounds)
	}

	onStrayExit := NewTurtle(Position{X: 5, Y: 2}, North)
	if got := Classify(config, onStrayExit); got != OutOfBounds {
		t.Errorf("turtle on out-of-range exit classified %s, want %s", got, OutOfBounds)
	}
}

func TestClassify_MineWinsOverExit(t *testing.T) {
	// A mined exit cell is still a mine hit; reaching the exit does not
	// protect the turtle from the hazard occupying it.
	config := classifyTestConfig()
	config.Mines = append(config.Mines, config.Exit)

	turtle := NewTurtle(config.Exit, East)
	if got := Classify(config, turtle); got != MineHit {
		t.Errorf("mined exit classified %s, want %s", got, MineHit)
	}
}

func TestClassify_Pure(t *testing.T) {
	config := classifyTestConfig()
	turtle := NewTurtle(Position{X: 2, Y: 1}, South)

	configBefore := *config
	turtleBefore := *turtle

	first := Classify(config, turtle)
	second := Classify(config, turtle)

	if first != second {
		t.Errorf("repeated Classify disagreed: %s then %s", first, second)
	}
	if *turtle != turtleBefore {
		t.Error("Classify mutated the turtle")
	}
	if config.Columns != configBefore.Columns || config.Rows != configBefore.Rows ||
		config.Exit != configBefore.Exit || len(config.Mines) != len(configBefore.Mines) {
		t.Error("Classify mutated the config")
	}
}
