package engine

import (
	"testing"
)

func TestHeading_RotateRight(t *testing.T) {
	cases := []struct {
		in   Heading
		want Heading
	}{
		{North, East},
		{East, South},
		{South, West},
		{West, North},
	}

	for _, c := range cases {
		if got := c.in.RotateRight(); got != c.want {
			t.Errorf("RotateRight(%s) = %s, want %s", c.in, got, c.want)
		}
	}
}

func TestHeading_RotateRight_CycleClosure(t *testing.T) {
	for _, h := range []Heading{North, East, South, West} {
		got := h
		for i := 0; i < 4; i++ {
			got = got.RotateRight()
		}
		if got != h {
			t.Errorf("four rotations from %s ended at %s", h, got)
		}
	}
}

func TestParseHeading(t *testing.T) {
	cases := []struct {
		in      string
		want    Heading
		wantErr bool
	}{
		{"north", North, false},
		{"NORTH", North, false},
		{"East", East, false},
		{" south ", South, false},
		{"wEsT", West, false},
		{"northeast", "", true},
		{"", "", true},
		{"n", "", true},
	}

	for _, c := range cases {
		got, err := ParseHeading(c.in)
		if c.wantErr {
			if err == nil {
				t.Errorf("ParseHeading(%q) expected error, got %s", c.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseHeading(%q) unexpected error: %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("ParseHeading(%q) = %s, want %s", c.in, got, c.want)
		}
	}
}

func TestStatus_Terminal(t *testing.T) {
	if StillInDanger.Terminal() {
		t.Error("still_in_danger must not be terminal")
	}
	for _, s := range []Status{OutOfBounds, MineHit, Safe} {
		if !s.Terminal() {
			t.Errorf("%s must be terminal", s)
		}
	}
}

func TestBoardConfig_HasMine(t *testing.T) {
	config := DefaultBoardConfig()

	if !config.HasMine(Position{X: 1, Y: 1}) {
		t.Error("expected mine at (1,1)")
	}
	if config.HasMine(Position{X: 0, Y: 0}) {
		t.Error("did not expect mine at (0,0)")
	}
	// Out-of-range probes are legal and simply miss
	if config.HasMine(Position{X: -1, Y: 99}) {
		t.Error("did not expect mine at (-1,99)")
	}
}
