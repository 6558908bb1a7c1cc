package prompt

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
)

func TestPrompter_Ask(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"newline", "buy milk\n", "buy milk"},
		{"crlf", "buy milk\r\n", "buy milk"},
		{"no trailing newline", "buy milk", "buy milk"},
		{"keeps case and inner spaces", "  Buy  Milk \n", "  Buy  Milk "},
		{"empty line", "\n", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			p := New(strings.NewReader(tt.input), &out)
			got, err := p.Ask("Type in your todo\n")
			if err != nil {
				t.Fatalf("Ask failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Ask() = %q, want %q", got, tt.want)
			}
			if out.String() != "Type in your todo\n" {
				t.Errorf("question written as %q", out.String())
			}
		})
	}
}

func TestPrompter_AskReadsOneLinePerCall(t *testing.T) {
	p := New(strings.NewReader("first\nsecond\n"), io.Discard)
	for _, want := range []string{"first", "second"} {
		got, err := p.Ask("? ")
		if err != nil {
			t.Fatalf("Ask failed: %v", err)
		}
		if got != want {
			t.Errorf("Ask() = %q, want %q", got, want)
		}
	}
	if _, err := p.Ask("? "); !errors.Is(err, io.EOF) {
		t.Errorf("expected EOF after input is exhausted, got %v", err)
	}
}

func TestPrompter_AskNoInput(t *testing.T) {
	p := New(strings.NewReader(""), io.Discard)
	_, err := p.Ask("? ")
	if !errors.Is(err, ErrNoInput) {
		t.Errorf("expected ErrNoInput, got %v", err)
	}
}

func TestParseAnswer(t *testing.T) {
	tests := map[string]Answer{
		"y":   Yes,
		"Y":   Yes,
		" y ": Yes,
		"n":   No,
		"N":   No,
		"yes": Unknown,
		"":    Unknown,
		"x":   Unknown,
	}
	for reply, want := range tests {
		if got := ParseAnswer(reply); got != want {
			t.Errorf("ParseAnswer(%q) = %v, want %v", reply, got, want)
		}
	}
}

func TestPrompter_Confirm(t *testing.T) {
	var out bytes.Buffer
	p := New(strings.NewReader("Y\n"), &out)
	got, err := p.Confirm("Are you sure? (Y/N)\n")
	if err != nil {
		t.Fatalf("Confirm failed: %v", err)
	}
	if got != Yes {
		t.Errorf("Confirm() = %v, want Yes", got)
	}
}
