package engine

import (
	"errors"
	"strings"
	"testing"
)

func TestParseCommandSequence(t *testing.T) {
	commands, err := ParseCommandSequence("mrmmmmrmm")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(commands) != 9 {
		t.Fatalf("expected 9 commands, got %d", len(commands))
	}
	if commands[0] != CommandMove || commands[1] != CommandRotate {
		t.Errorf("unexpected leading commands: %v", commands[:2])
	}
	if got := SequenceString(commands); got != "mrmmmmrmm" {
		t.Errorf("round trip produced %q", got)
	}
}

func TestParseCommandSequence_CaseInsensitive(t *testing.T) {
	commands, err := ParseCommandSequence("MrM")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []Command{CommandMove, CommandRotate, CommandMove}
	for i, cmd := range want {
		if commands[i] != cmd {
			t.Errorf("command %d = %q, want %q", i, commands[i], cmd)
		}
	}
}

func TestParseCommandSequence_Empty(t *testing.T) {
	for _, in := range []string{"", "   ", "\n"} {
		if _, err := ParseCommandSequence(in); !errors.Is(err, ErrEmptySequence) {
			t.Errorf("ParseCommandSequence(%q) error = %v, want ErrEmptySequence", in, err)
		}
	}
}

func TestParseCommandSequence_FailClosed(t *testing.T) {
	// One bad character rejects the whole sequence, no partial acceptance.
	for _, in := range []string{"mx", "mrmq", "1", "mm m"} {
		commands, err := ParseCommandSequence(in)
		if !errors.Is(err, ErrInvalidCommand) {
			t.Errorf("ParseCommandSequence(%q) error = %v, want ErrInvalidCommand", in, err)
		}
		if commands != nil {
			t.Errorf("ParseCommandSequence(%q) returned partial commands %v", in, commands)
		}
	}
}

func TestParseCommandSequence_TooLong(t *testing.T) {
	in := strings.Repeat("m", MaxSequenceLength+1)
	if _, err := ParseCommandSequence(in); err == nil {
		t.Error("expected error for oversized sequence")
	}
}

func TestParseCommand(t *testing.T) {
	cases := []struct {
		in      string
		want    Command
		wantErr bool
	}{
		{"m", CommandMove, false},
		{"M", CommandMove, false},
		{"move", CommandMove, false},
		{"r", CommandRotate, false},
		{"rotate", CommandRotate, false},
		{"x", "", true},
		{"", "", true},
		{"mm", "", true},
	}

	for _, c := range cases {
		got, err := ParseCommand(c.in)
		if c.wantErr {
			if err == nil {
				t.Errorf("ParseCommand(%q) expected error, got %q", c.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseCommand(%q) unexpected error: %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("ParseCommand(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
