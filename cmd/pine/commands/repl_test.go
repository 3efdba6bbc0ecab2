package commands

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestRunREPLSendsLinesInOrder(t *testing.T) {
	input := "cancel my subscription\n\n  \nwhat's the status?\n/quit\nnever reached\n"

	var got []string
	err := runREPL(context.Background(), strings.NewReader(input), nil,
		func(ctx context.Context, line string) error {
			got = append(got, line)
			return nil
		})
	if err != nil {
		t.Fatalf("runREPL() error = %v", err)
	}

	want := []string{"cancel my subscription", "what's the status?"}
	if len(got) != len(want) {
		t.Fatalf("lines = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("lines[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestRunREPLExitCommands(t *testing.T) {
	for _, cmd := range []string{"/quit", "/exit"} {
		t.Run(cmd, func(t *testing.T) {
			called := false
			err := runREPL(context.Background(), strings.NewReader(cmd+"\n"), nil,
				func(ctx context.Context, line string) error {
					called = true
					return nil
				})
			if err != nil {
				t.Fatalf("runREPL() error = %v", err)
			}
			if called {
				t.Errorf("handler called for %s", cmd)
			}
		})
	}
}

func TestRunREPLEOF(t *testing.T) {
	err := runREPL(context.Background(), strings.NewReader("hello"), nil,
		func(ctx context.Context, line string) error { return nil })
	if err != nil {
		t.Fatalf("runREPL() error on EOF = %v", err)
	}
}

func TestRunREPLHandlerError(t *testing.T) {
	boom := errors.New("connection lost")
	err := runREPL(context.Background(), strings.NewReader("hi\nbye\n"), nil,
		func(ctx context.Context, line string) error { return boom })
	if !errors.Is(err, boom) {
		t.Fatalf("runREPL() error = %v, want %v", err, boom)
	}
}

func TestRunREPLContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := runREPL(ctx, strings.NewReader("hi\n"), nil,
		func(ctx context.Context, line string) error { return nil })
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("runREPL() error = %v, want context.Canceled", err)
	}
}

func TestRunREPLPromptShownPerLine(t *testing.T) {
	prompts := 0
	err := runREPL(context.Background(), strings.NewReader("a\nb\n/quit\n"),
		func() { prompts++ },
		func(ctx context.Context, line string) error { return nil })
	if err != nil {
		t.Fatalf("runREPL() error = %v", err)
	}
	// One prompt per read attempt: a, b, /quit.
	if prompts != 3 {
		t.Errorf("prompts = %d, want 3", prompts)
	}
}
