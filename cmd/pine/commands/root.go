package commands

import (
	"context"
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/pine-ai/pine-cli/pkg/cli"
	"github.com/pine-ai/pine-cli/pkg/pineassistant"
	"github.com/pine-ai/pine-cli/pkg/pinevoice"
)

var (
	// Global flags
	outputJSON bool
	verbose    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pine",
	Short: "Pine AI CLI",
	Long: `Pine AI CLI - voice calls & assistant tasks from your terminal.

Commands:
  auth login|request|verify|status|logout   Authentication
  voice call|status                         Voice calls
  chat [session-id]                         Interactive assistant chat
  send <message>                            One-shot assistant message
  sessions list|get|create|delete           Session management
  task start|stop                           Task lifecycle

Examples:
  # Log in (interactive, email verification)
  pine auth login

  # Make a call and wait for the result
  pine voice call --to "+14155551234" --name "Comcast" \
    --context "Bill went up $30" --objective "Restore the old rate"

  # Send a message to a new session and pipe the result
  pine send "cancel my gym membership" --new --json | jq .
`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command with the given context.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "output as JSON (for piping)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(authCmd)
	rootCmd.AddCommand(voiceCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(sendCmd)
	rootCmd.AddCommand(sessionsCmd)
	rootCmd.AddCommand(taskCmd)
	rootCmd.AddCommand(versionCmd)
}

// ReportError renders a command failure. In JSON mode the error goes to
// stdout as a structured object so scripts can parse it regardless of the
// exit code; otherwise it is a human-readable message on stderr.
func ReportError(err error) {
	code, message := classifyError(err)

	if outputJSON {
		cli.OutputError(os.Stdout, code, message)
		return
	}

	cli.PrintError("%s", message)
	if errors.Is(err, cli.ErrNotAuthenticated) {
		cli.PrintDim("Run `pine auth login` first.")
	}
}

// classifyError maps an error to a code and message for display.
func classifyError(err error) (int, string) {
	if e, ok := pinevoice.AsError(err); ok {
		return e.Code, e.Message
	}
	if e, ok := pineassistant.AsError(err); ok {
		return e.Code, e.Message
	}
	var verr *pinevoice.ValidationError
	if errors.As(err, &verr) {
		return 0, verr.Error()
	}
	return 0, err.Error()
}

// requireCredentials loads stored credentials or fails with the
// not-authenticated error, before any network call happens.
func requireCredentials() (*cli.Credentials, error) {
	creds, err := cli.LoadCredentials()
	if err != nil {
		return nil, err
	}
	return creds, nil
}

// voiceClient builds an authenticated voice API client.
func voiceClient(creds *cli.Credentials) *pinevoice.Client {
	opts := []pinevoice.Option{}
	if creds.BaseURL != "" {
		opts = append(opts, pinevoice.WithBaseURL(creds.BaseURL))
	}
	return pinevoice.NewClient(creds.AccessToken, creds.UserID, opts...)
}

// assistantClient builds an authenticated assistant API client.
func assistantClient(creds *cli.Credentials) *pineassistant.Client {
	opts := []pineassistant.Option{
		pineassistant.WithCredentials(creds.AccessToken, creds.UserID),
	}
	if creds.BaseURL != "" {
		opts = append(opts, pineassistant.WithBaseURL(creds.BaseURL))
	}
	return pineassistant.NewClient(opts...)
}

func printVerbose(format string, args ...any) {
	cli.PrintVerbose(verbose, format, args...)
}
