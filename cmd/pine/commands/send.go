package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pine-ai/pine-cli/pkg/cli"
)

var (
	sendSessionID string
	sendNew       bool
	sendNoWait    bool
)

var sendCmd = &cobra.Command{
	Use:   "send <message>",
	Short: "Send one message to the assistant",
	Long: `Send a single message to an assistant session and print the reply.

Exactly one of --session and --new must be given. With --no-wait the
message is submitted and the command returns without waiting for the
assistant's turn to finish.`,
	Example: `  pine send "cancel my gym membership" --new
  pine send "what's the status?" --session sess-42
  pine send "also check the cable bill" --session sess-42 --no-wait
  pine send "cancel it" --new --json | jq -r .reply`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if sendNew == (sendSessionID != "") {
			return fmt.Errorf("exactly one of --session and --new is required")
		}

		creds, err := requireCredentials()
		if err != nil {
			return err
		}
		client := assistantClient(creds)

		sessionID := sendSessionID
		if sendNew {
			session, err := client.Sessions.Create(ctx)
			if err != nil {
				return err
			}
			sessionID = session.ID
			printVerbose("created session %s", sessionID)
		}

		rt, err := client.Realtime(ctx)
		if err != nil {
			return err
		}
		defer rt.Close()

		if err := rt.Join(ctx, sessionID); err != nil {
			return err
		}

		result, err := rt.Send(ctx, sessionID, args[0], !sendNoWait)
		if err != nil {
			return err
		}

		switch {
		case result.Submitted != nil:
			if outputJSON {
				return cli.OutputCompactJSON(os.Stdout, map[string]string{
					"status":     "submitted",
					"session_id": sessionID,
					"message_id": result.Submitted.MessageID,
				})
			}
			cli.PrintSuccess("Message submitted to session %s", sessionID)
			cli.PrintDim("Follow up with `pine chat %s`", sessionID)

		case result.Completed != nil:
			if outputJSON {
				return cli.OutputJSON(os.Stdout, map[string]any{
					"status":     "completed",
					"session_id": sessionID,
					"reply":      result.Completed.Reply,
				})
			}
			for _, event := range result.Completed.Events {
				renderEvent(event)
			}
			cli.PrintDim("Session: %s", sessionID)
		}
		return nil
	},
}

func init() {
	sendCmd.Flags().StringVarP(&sendSessionID, "session", "s", "", "target session ID")
	sendCmd.Flags().BoolVar(&sendNew, "new", false, "create a new session for this message")
	sendCmd.Flags().BoolVar(&sendNoWait, "no-wait", false, "submit and return without waiting for the reply")
}
