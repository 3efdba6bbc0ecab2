package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pine-ai/pine-cli/pkg/cli"
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Task lifecycle control",
	Long: `Start or stop background task execution for a session.

A task runs server-side: the assistant keeps working (researching,
calling, filling forms) after this command returns. Watch progress with
` + "`pine chat <session-id>`" + ` or ` + "`pine sessions get <session-id> --history`" + `.`,
}

var taskStartCmd = &cobra.Command{
	Use:   "start <session-id>",
	Short: "Start task execution for a session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		creds, err := requireCredentials()
		if err != nil {
			return err
		}
		client := assistantClient(creds)

		status, err := client.Sessions.StartTask(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		if outputJSON {
			return cli.OutputCompactJSON(os.Stdout, map[string]string{
				"status":     "started",
				"session_id": args[0],
				"message":    status.Message,
			})
		}
		cli.PrintSuccess("Task started for session %s", args[0])
		if status.Message != "" {
			cli.PrintDim("%s", status.Message)
		}
		return nil
	},
}

var taskStopCmd = &cobra.Command{
	Use:   "stop <session-id>",
	Short: "Stop a running task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		creds, err := requireCredentials()
		if err != nil {
			return err
		}
		client := assistantClient(creds)

		status, err := client.Sessions.StopTask(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		if outputJSON {
			return cli.OutputCompactJSON(os.Stdout, map[string]string{
				"status":     "stopped",
				"session_id": args[0],
				"message":    status.Message,
			})
		}
		cli.PrintSuccess("Task stopped for session %s", args[0])
		if status.Message != "" {
			cli.PrintDim("%s", status.Message)
		}
		return nil
	},
}

func init() {
	taskCmd.AddCommand(taskStartCmd)
	taskCmd.AddCommand(taskStopCmd)
}
