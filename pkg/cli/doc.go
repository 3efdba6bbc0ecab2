// Package cli provides shared utilities for the pine command-line tool.
//
// This package includes:
//   - Credential storage (~/.pine/config.json, atomic writes)
//   - Output helpers (JSON mode, styled terminal messages)
//   - Request file loading (YAML/JSON)
//   - Panel and table rendering for terminal output
//
// Example usage:
//
//	creds, err := cli.LoadCredentials()
//	if errors.Is(err, cli.ErrNotAuthenticated) {
//	    // Tell the user to run `pine auth login`
//	}
//
//	cli.OutputJSON(os.Stdout, result)
package cli
