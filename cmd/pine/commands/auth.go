package commands

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pine-ai/pine-cli/pkg/cli"
	"github.com/pine-ai/pine-cli/pkg/pineassistant"
)

var (
	authBaseURL      string
	authEmail        string
	authCode         string
	authRequestToken string
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authentication commands",
	Long: `Authentication for Pine AI, shared by the voice and assistant APIs.

Login uses email verification: a code is sent to your account email and
exchanged for an access token, which is saved to ~/.pine/config.json.`,
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in with email verification (interactive)",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		client := loginClient()

		reader := bufio.NewReader(os.Stdin)
		email, err := promptLine(reader, "Email: ")
		if err != nil {
			return err
		}

		fmt.Println("Sending verification code...")
		code, err := client.Auth.RequestCode(ctx, email)
		if err != nil {
			return err
		}
		cli.PrintSuccess("Code sent. Check your email.")

		verification, err := promptLine(reader, "Verification code: ")
		if err != nil {
			return err
		}

		verified, err := client.Auth.VerifyCode(ctx, email, verification, code.RequestToken)
		if err != nil {
			return err
		}

		if err := saveVerified(verified); err != nil {
			return err
		}

		cli.PrintSuccess("Logged in as %s  (user %s)", verified.Email, verified.UserID)
		cli.PrintDim("Credentials saved to ~/.pine/config.json")
		return nil
	},
}

var authRequestCmd = &cobra.Command{
	Use:   "request",
	Short: "Request a verification code (non-interactive)",
	RunE: func(cmd *cobra.Command, args []string) error {
		client := loginClient()

		code, err := client.Auth.RequestCode(cmd.Context(), authEmail)
		if err != nil {
			return err
		}

		return cli.OutputCompactJSON(os.Stdout, map[string]string{
			"request_token": code.RequestToken,
			"email":         authEmail,
		})
	},
}

var authVerifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify a code and save credentials (non-interactive)",
	RunE: func(cmd *cobra.Command, args []string) error {
		client := loginClient()

		verified, err := client.Auth.VerifyCode(cmd.Context(), authEmail, authCode, authRequestToken)
		if err != nil {
			return err
		}

		if err := saveVerified(verified); err != nil {
			return err
		}

		return cli.OutputCompactJSON(os.Stdout, map[string]string{
			"status":  "authenticated",
			"email":   verified.Email,
			"user_id": verified.UserID,
		})
	},
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show current authentication status",
	RunE: func(cmd *cobra.Command, args []string) error {
		creds, err := cli.LoadCredentials()
		authenticated := err == nil
		if err != nil && !errors.Is(err, cli.ErrNotAuthenticated) {
			return err
		}

		if outputJSON {
			out := map[string]any{
				"authenticated": authenticated,
				"base_url":      pineassistant.DefaultBaseURL,
			}
			if authenticated {
				out["email"] = creds.Email
				out["user_id"] = creds.UserID
				if creds.BaseURL != "" {
					out["base_url"] = creds.BaseURL
				}
			}
			return cli.OutputCompactJSON(os.Stdout, out)
		}

		if !authenticated {
			fmt.Println("○ Not logged in.  Run `pine auth login`.")
			return nil
		}

		cli.PrintSuccess("Logged in  %s  (user %s)", creds.Email, creds.UserID)
		if creds.BaseURL != "" {
			cli.PrintDim("Base URL: %s", creds.BaseURL)
		}
		cli.PrintDim("Token: %s", cli.MaskToken(creds.AccessToken))
		return nil
	},
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear saved credentials",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cli.ClearCredentials(); err != nil {
			return err
		}
		cli.PrintSuccess("Logged out. Credentials removed.")
		return nil
	},
}

// loginClient builds an unauthenticated client for the login flow,
// honoring the --base-url override.
func loginClient() *pineassistant.Client {
	opts := []pineassistant.Option{}
	if authBaseURL != "" {
		opts = append(opts, pineassistant.WithBaseURL(authBaseURL))
	}
	return pineassistant.NewClient(opts...)
}

// saveVerified persists the result of a successful verification.
func saveVerified(v *pineassistant.Verification) error {
	return cli.SaveCredentials(&cli.Credentials{
		AccessToken: v.AccessToken,
		UserID:      v.UserID,
		Email:       v.Email,
		BaseURL:     authBaseURL,
	})
}

// promptLine reads one trimmed line of input after printing a label.
func promptLine(reader *bufio.Reader, label string) (string, error) {
	fmt.Print(label)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func init() {
	authLoginCmd.Flags().StringVar(&authBaseURL, "base-url", "", "Pine AI base URL override")

	authRequestCmd.Flags().StringVar(&authEmail, "email", "", "Pine AI account email (required)")
	authRequestCmd.Flags().StringVar(&authBaseURL, "base-url", "", "Pine AI base URL override")
	authRequestCmd.MarkFlagRequired("email")

	authVerifyCmd.Flags().StringVar(&authEmail, "email", "", "Pine AI account email (required)")
	authVerifyCmd.Flags().StringVar(&authRequestToken, "request-token", "", "token from `pine auth request` (required)")
	authVerifyCmd.Flags().StringVar(&authCode, "code", "", "verification code from email (required)")
	authVerifyCmd.Flags().StringVar(&authBaseURL, "base-url", "", "Pine AI base URL override")
	authVerifyCmd.MarkFlagRequired("email")
	authVerifyCmd.MarkFlagRequired("request-token")
	authVerifyCmd.MarkFlagRequired("code")

	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authRequestCmd)
	authCmd.AddCommand(authVerifyCmd)
	authCmd.AddCommand(authStatusCmd)
	authCmd.AddCommand(authLogoutCmd)
}
