package commands

import (
	"bufio"
	"context"
	"io"
	"strings"
)

// replHandler processes one line of user input.
type replHandler func(ctx context.Context, line string) error

// runREPL reads lines from r and feeds them to handle, in order.
//
// Blank lines are skipped. The loop ends cleanly on /quit, /exit, EOF, or
// context cancellation; a handler error aborts it. Reading from an
// io.Reader rather than the terminal directly keeps the loop testable.
func runREPL(ctx context.Context, r io.Reader, prompt func(), handle replHandler) error {
	scanner := bufio.NewScanner(r)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		if prompt != nil {
			prompt()
		}
		if !scanner.Scan() {
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "/quit" || line == "/exit" {
			return nil
		}

		if err := handle(ctx, line); err != nil {
			return err
		}
	}
}
