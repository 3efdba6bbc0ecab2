package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pine-ai/pine-cli/pkg/cli"
	"github.com/pine-ai/pine-cli/pkg/pineassistant"
)

const (
	chatHistoryLimit = 20
	chatPickerPage   = 10
)

var chatCmd = &cobra.Command{
	Use:   "chat [session-id]",
	Short: "Interactive assistant chat",
	Long: `Chat with the Pine assistant in a REPL.

Without a session ID, recent sessions are listed so you can pick one or
start fresh. Type /quit or /exit (or press Ctrl-D) to leave; the session
and any running task keep going on the backend.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		creds, err := requireCredentials()
		if err != nil {
			return err
		}
		client := assistantClient(creds)

		var sessionID string
		if len(args) > 0 {
			sessionID = args[0]
		} else {
			sessionID, err = pickSession(ctx, client, os.Stdin)
			if err != nil {
				return err
			}
		}

		cli.PrintAccent("Connecting to session %s. /quit to leave.", sessionID)

		styles := cli.DefaultStyles
		return chatSession(ctx, client, sessionID, os.Stdin, chatHooks{
			prompt: func() { fmt.Print(styles.Label.Render("you> ")) },
			onHistory: func(messages []pineassistant.HistoryMessage) {
				cli.PrintDim("--- recent history ---")
				renderHistory(messages)
				cli.PrintDim("----------------------")
			},
			onEvent: renderEvent,
		})
	},
}

// chatHooks are the rendering callbacks of chatSession, split out so the
// session loop can be exercised without a terminal.
type chatHooks struct {
	prompt    func()
	onHistory func([]pineassistant.HistoryMessage)
	onEvent   func(*pineassistant.Event)
}

// chatSession joins a session, replays recent history, and runs the REPL.
//
// A turn that fails because the realtime connection dropped re-dials,
// re-joins, and retries the turn once; the session itself lives on the
// backend and survives the reconnect.
func chatSession(ctx context.Context, client *pineassistant.Client, sessionID string, r io.Reader, hooks chatHooks) error {
	rt, err := client.Realtime(ctx)
	if err != nil {
		return err
	}
	defer func() {
		rt.Leave(sessionID)
		rt.Close()
	}()

	if err := rt.Join(ctx, sessionID); err != nil {
		return err
	}

	history, err := rt.History(ctx, sessionID, chatHistoryLimit, "asc")
	if err != nil {
		return err
	}
	if len(history.Messages) > 0 && hooks.onHistory != nil {
		hooks.onHistory(history.Messages)
	}

	turn := func(ctx context.Context, line string) error {
		for event, err := range rt.Chat(ctx, sessionID, line) {
			if err != nil {
				return err
			}
			if hooks.onEvent != nil {
				hooks.onEvent(event)
			}
		}
		return nil
	}

	return runREPL(ctx, r, hooks.prompt, func(ctx context.Context, line string) error {
		err := turn(ctx, line)
		if !pineassistant.IsConnectionLost(err) {
			return err
		}

		cli.PrintDim("Connection lost, reconnecting...")
		rt.Close()
		rt, err = client.Realtime(ctx)
		if err != nil {
			return err
		}
		if err := rt.Join(ctx, sessionID); err != nil {
			return err
		}
		return turn(ctx, line)
	})
}

// pickSession lets the user choose a recent session or create a new one.
// Pages accumulate: picking 'm' appends the next page and earlier entries
// stay selectable by their number. Input comes from r so the flow is
// testable.
func pickSession(ctx context.Context, client *pineassistant.Client, r io.Reader) (string, error) {
	reader := bufio.NewReader(r)

	var all []pineassistant.Session
	total := 0

	for {
		list, err := client.Sessions.List(ctx, pineassistant.ListOptions{
			Limit:  chatPickerPage,
			Offset: len(all),
		})
		if err != nil {
			return "", err
		}
		total = list.Total

		if len(all) == 0 && len(list.Sessions) == 0 {
			fmt.Println("No sessions yet, starting a new one.")
			return createSession(ctx, client)
		}

		for i, s := range list.Sessions {
			title := s.Title
			if title == "" {
				title = "(untitled)"
			}
			fmt.Printf("  %2d. %s  [%s]  %s\n", len(all)+i+1, s.ID, s.State, title)
		}
		all = append(all, list.Sessions...)

		for {
			more := len(all) < total

			prompt := "Pick a session number, 'n' for new"
			if more {
				prompt += ", 'm' for more"
			}
			fmt.Print(prompt + ": ")

			line, err := reader.ReadString('\n')
			if err != nil {
				return "", fmt.Errorf("read input: %w", err)
			}
			choice := strings.TrimSpace(line)

			if choice == "n" {
				return createSession(ctx, client)
			}
			if choice == "m" && more {
				break
			}

			n, err := strconv.Atoi(choice)
			if err != nil || n < 1 || n > len(all) {
				fmt.Println("Not a valid choice.")
				continue
			}
			return all[n-1].ID, nil
		}
	}
}

// createSession creates a session and announces it.
func createSession(ctx context.Context, client *pineassistant.Client) (string, error) {
	session, err := client.Sessions.Create(ctx)
	if err != nil {
		return "", err
	}
	cli.PrintSuccess("Created session %s", session.ID)
	return session.ID, nil
}
