package commands

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pine-ai/pine-cli/pkg/cli"
	"github.com/pine-ai/pine-cli/pkg/pinevoice"
)

var (
	voiceRequestFile string
	voiceTo          string
	voiceName        string
	voiceContext     string
	voiceObjective   string
	voiceInstr       string
	voiceCaller      string
	voiceVoice       string
	voiceMaxDuration int
	voiceSummary     bool
	voiceNoWait      bool
	voicePollSecs    int
)

var voiceCmd = &cobra.Command{
	Use:   "voice",
	Short: "Outbound AI voice calls",
	Long: `Outbound AI voice calls through the Pine voice API.

The agent calls on your behalf, negotiates per your objective, and
returns a summary plus a full transcript when the call ends.`,
}

var voiceCallCmd = &cobra.Command{
	Use:   "call",
	Short: "Place an outbound call",
	Example: `  pine voice call --to "+14155551234" --name "Comcast" \
    --context "Bill went up $30 this month" \
    --objective "Restore the previous rate"

  # Load the request from a file, override the number on the command line
  pine voice call -f negotiate.yaml --to "+14155556789"

  # Fire and forget
  pine voice call -f negotiate.yaml --no-wait`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if err := checkCallFlags(cmd); err != nil {
			return err
		}

		creds, err := requireCredentials()
		if err != nil {
			return err
		}
		client := voiceClient(creds)

		req := &pinevoice.CallRequest{}
		if voiceRequestFile != "" {
			if err := cli.LoadRequest(voiceRequestFile, req); err != nil {
				return err
			}
		}
		applyCallFlags(cmd, req)

		if voiceNoWait {
			initiated, err := client.Calls.Create(ctx, req)
			if err != nil {
				return err
			}
			if outputJSON {
				return cli.OutputCompactJSON(os.Stdout, initiated)
			}
			cli.PrintSuccess("Call submitted: %s", initiated.CallID)
			cli.PrintDim("Check progress with `pine voice status %s`", initiated.CallID)
			return nil
		}

		printVerbose("calling %s (%s)", req.To, req.Name)
		opts := pinevoice.WaitOptions{
			Interval: time.Duration(voicePollSecs) * time.Second,
		}
		if !outputJSON {
			var lastStatus pinevoice.Status
			opts.OnProgress = func(s *pinevoice.CallStatus) {
				if s.Status != lastStatus {
					cli.PrintDim("  %s", statusLine(s))
					lastStatus = s.Status
				}
			}
			fmt.Printf("Calling %s (%s)...\n", req.Name, req.To)
		}

		result, err := client.Calls.CreateAndWait(ctx, req, opts)
		if err != nil {
			return err
		}

		if outputJSON {
			return cli.OutputJSON(os.Stdout, result)
		}
		renderCallResult(result)
		return nil
	},
}

var voiceStatusCmd = &cobra.Command{
	Use:   "status <call-id>",
	Short: "Show the status of a call",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		creds, err := requireCredentials()
		if err != nil {
			return err
		}
		client := voiceClient(creds)

		status, err := client.Calls.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		if outputJSON {
			return cli.OutputJSON(os.Stdout, status)
		}

		fmt.Println(statusLine(status))
		if status.Result != nil {
			renderCallResult(status.Result)
		} else if !status.Status.Terminal() {
			cli.PrintDim("Call in progress. Re-run to refresh.")
		}
		return nil
	},
}

// applyCallFlags overlays explicitly set flags on top of a request that may
// have been loaded from a file.
func applyCallFlags(cmd *cobra.Command, req *pinevoice.CallRequest) {
	if cmd.Flags().Changed("to") {
		req.To = voiceTo
	}
	if cmd.Flags().Changed("name") {
		req.Name = voiceName
	}
	if cmd.Flags().Changed("context") {
		req.Context = voiceContext
	}
	if cmd.Flags().Changed("objective") {
		req.Objective = voiceObjective
	}
	if cmd.Flags().Changed("instructions") {
		req.Instructions = voiceInstr
	}
	if cmd.Flags().Changed("caller") {
		req.Caller = voiceCaller
	}
	if cmd.Flags().Changed("voice") {
		req.Voice = voiceVoice
	}
	if cmd.Flags().Changed("max-duration") {
		req.MaxDurationMinutes = voiceMaxDuration
	}
	if cmd.Flags().Changed("summary") {
		req.EnableSummary = voiceSummary
	}
}

// checkCallFlags rejects explicit flag values that request validation
// would otherwise read as "unset". A zero max-duration in the request
// means the backend default, so an explicit --max-duration 0 has to be
// caught here, before the request is built.
func checkCallFlags(cmd *cobra.Command) error {
	if cmd.Flags().Changed("max-duration") &&
		(voiceMaxDuration < pinevoice.MinCallDurationMinutes || voiceMaxDuration > pinevoice.MaxCallDurationMinutes) {
		return &pinevoice.ValidationError{
			Field: "max-duration",
			Message: fmt.Sprintf("%d is outside the allowed range %d-%d minutes",
				voiceMaxDuration, pinevoice.MinCallDurationMinutes, pinevoice.MaxCallDurationMinutes),
		}
	}
	return nil
}

// statusLine formats a one-line call status for progress output.
func statusLine(s *pinevoice.CallStatus) string {
	line := fmt.Sprintf("[%s] %s", s.Status, s.CallID)
	if s.DurationSeconds > 0 {
		line += "  " + cli.FormatSeconds(s.DurationSeconds)
	}
	return line
}

// renderCallResult prints the terminal outcome of a call.
func renderCallResult(result *pinevoice.CallResult) {
	switch result.Status {
	case pinevoice.StatusCompleted:
		cli.PrintSuccess("Call completed")
	case pinevoice.StatusCancelled:
		cli.PrintWarning("Call cancelled")
	default:
		cli.PrintError("Call %s", result.Status)
	}

	fmt.Printf("Duration: %s", cli.FormatSeconds(result.DurationSeconds))
	if result.CreditsCharged > 0 {
		fmt.Printf("   Credits: %d", result.CreditsCharged)
	}
	fmt.Println()

	if result.Summary != "" {
		fmt.Println(cli.RenderPanel("Summary", result.Summary))
	}

	if len(result.Transcript) > 0 {
		rows := make([][]string, 0, len(result.Transcript))
		for _, entry := range result.Transcript {
			rows = append(rows, []string{entry.Speaker, entry.Text})
		}
		fmt.Println(cli.RenderTable([]string{"Speaker", "Text"}, rows))
	}
}

func init() {
	f := voiceCallCmd.Flags()
	f.StringVarP(&voiceRequestFile, "file", "f", "", "load the call request from a YAML or JSON file")
	f.StringVar(&voiceTo, "to", "", "phone number in E.164 format (e.g. +14155551234)")
	f.StringVar(&voiceName, "name", "", "name of the person or business to call")
	f.StringVar(&voiceContext, "context", "", "background context for the call")
	f.StringVar(&voiceObjective, "objective", "", "what the call should achieve")
	f.StringVar(&voiceInstr, "instructions", "", "detailed strategy for the agent")
	f.StringVar(&voiceCaller, "caller", "", "caller persona: "+strings.Join([]string{pinevoice.CallerNegotiator, pinevoice.CallerCommunicator}, ", "))
	f.StringVar(&voiceVoice, "voice", "", "voice gender: "+strings.Join([]string{pinevoice.VoiceMale, pinevoice.VoiceFemale}, ", "))
	f.IntVar(&voiceMaxDuration, "max-duration", 0, "maximum call length in minutes (1-120)")
	f.BoolVar(&voiceSummary, "summary", false, "request an LLM summary of the call")
	f.BoolVar(&voiceNoWait, "no-wait", false, "submit the call and return immediately")
	f.IntVar(&voicePollSecs, "poll-interval", 5, "status polling interval in seconds")

	voiceCmd.AddCommand(voiceCallCmd)
	voiceCmd.AddCommand(voiceStatusCmd)
}
