package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pine-ai/pine-cli/pkg/cli"
	"github.com/pine-ai/pine-cli/pkg/pineassistant"
)

var (
	sessionsState   string
	sessionsLimit   int
	sessionsOffset  int
	sessionsForce   bool
	sessionsHistory bool
	historyLimit    int
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Assistant session management",
}

var sessionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		creds, err := requireCredentials()
		if err != nil {
			return err
		}
		client := assistantClient(creds)

		list, err := client.Sessions.List(cmd.Context(), pineassistant.ListOptions{
			State:  sessionsState,
			Limit:  sessionsLimit,
			Offset: sessionsOffset,
		})
		if err != nil {
			return err
		}

		if outputJSON {
			return cli.OutputJSON(os.Stdout, list)
		}

		if len(list.Sessions) == 0 {
			fmt.Println("No sessions. Start one with `pine chat` or `pine send --new`.")
			return nil
		}

		rows := make([][]string, 0, len(list.Sessions))
		for _, s := range list.Sessions {
			rows = append(rows, []string{
				s.ID,
				s.State,
				s.Title,
				cli.FormatTimestamp(s.UpdatedAt),
			})
		}
		fmt.Println(cli.RenderTable([]string{"ID", "State", "Title", "Updated"}, rows))

		shown := sessionsOffset + len(list.Sessions)
		if list.Total > shown {
			cli.PrintDim("Showing %d of %d. Next page: --offset %d", shown, list.Total, shown)
		}
		return nil
	},
}

var sessionsGetCmd = &cobra.Command{
	Use:   "get <session-id>",
	Short: "Show a session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		creds, err := requireCredentials()
		if err != nil {
			return err
		}
		client := assistantClient(creds)

		session, err := client.Sessions.Get(ctx, args[0])
		if err != nil {
			return err
		}

		var history *pineassistant.History
		if sessionsHistory {
			rt, err := client.Realtime(ctx)
			if err != nil {
				return err
			}
			defer rt.Close()

			history, err = rt.History(ctx, session.ID, historyLimit, "asc")
			if err != nil {
				return err
			}
		}

		if outputJSON {
			out := map[string]any{"session": session}
			if history != nil {
				out["history"] = history.Messages
			}
			return cli.OutputJSON(os.Stdout, out)
		}

		fmt.Printf("ID:      %s\n", session.ID)
		fmt.Printf("State:   %s\n", session.State)
		if session.Title != "" {
			fmt.Printf("Title:   %s\n", session.Title)
		}
		if session.CreatedAt != "" {
			fmt.Printf("Created: %s\n", cli.FormatTimestamp(session.CreatedAt))
		}
		if session.UpdatedAt != "" {
			fmt.Printf("Updated: %s\n", cli.FormatTimestamp(session.UpdatedAt))
		}

		if history != nil {
			fmt.Println()
			renderHistory(history.Messages)
		}
		return nil
	},
}

var sessionsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new session",
	RunE: func(cmd *cobra.Command, args []string) error {
		creds, err := requireCredentials()
		if err != nil {
			return err
		}
		client := assistantClient(creds)

		session, err := client.Sessions.Create(cmd.Context())
		if err != nil {
			return err
		}

		if outputJSON {
			return cli.OutputCompactJSON(os.Stdout, session)
		}
		cli.PrintSuccess("Created session %s", session.ID)
		return nil
	},
}

var sessionsDeleteCmd = &cobra.Command{
	Use:   "delete <session-id>",
	Short: "Delete a session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		creds, err := requireCredentials()
		if err != nil {
			return err
		}
		client := assistantClient(creds)

		if err := client.Sessions.Delete(cmd.Context(), args[0], sessionsForce); err != nil {
			return err
		}

		if outputJSON {
			return cli.OutputCompactJSON(os.Stdout, map[string]string{
				"status":     "deleted",
				"session_id": args[0],
			})
		}
		cli.PrintSuccess("Deleted session %s", args[0])
		return nil
	},
}

func init() {
	sessionsListCmd.Flags().StringVar(&sessionsState, "state", "", "filter by state (init, active, chat, task_processing, task_finished)")
	sessionsListCmd.Flags().IntVar(&sessionsLimit, "limit", 20, "page size")
	sessionsListCmd.Flags().IntVar(&sessionsOffset, "offset", 0, "skip the first N sessions")

	sessionsGetCmd.Flags().BoolVar(&sessionsHistory, "history", false, "include conversation history")
	sessionsGetCmd.Flags().IntVar(&historyLimit, "limit", 50, "maximum history messages with --history")

	sessionsDeleteCmd.Flags().BoolVar(&sessionsForce, "force", false, "delete even if a task is running")

	sessionsCmd.AddCommand(sessionsListCmd)
	sessionsCmd.AddCommand(sessionsGetCmd)
	sessionsCmd.AddCommand(sessionsCreateCmd)
	sessionsCmd.AddCommand(sessionsDeleteCmd)
}
