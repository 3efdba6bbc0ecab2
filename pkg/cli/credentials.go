package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	// DefaultBaseDir is the per-user configuration directory name.
	DefaultBaseDir = ".pine"
	// DefaultCredentialsFile is the credentials filename.
	DefaultCredentialsFile = "config.json"
)

// ErrNotAuthenticated indicates that no usable credentials are stored.
// Commands surface it with a hint to run `pine auth login`.
var ErrNotAuthenticated = errors.New("not logged in")

// Credentials holds the persisted identity for authenticated commands.
//
// The file layout is an external contract shared with the Pine SDKs:
// a single JSON object at ~/.pine/config.json.
type Credentials struct {
	// AccessToken is the bearer token issued by the auth backend.
	AccessToken string `json:"access_token"`

	// UserID is the authenticated user's ID.
	UserID string `json:"user_id"`

	// Email is the account email, kept for display only.
	Email string `json:"email,omitempty"`

	// BaseURL is an optional API base URL override.
	BaseURL string `json:"base_url,omitempty"`
}

// CredentialsPath returns the default credentials file path.
func CredentialsPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, DefaultBaseDir, DefaultCredentialsFile), nil
}

// LoadCredentials loads credentials from the default path.
//
// A missing, empty, or unparseable file yields ErrNotAuthenticated, as does
// a file without both an access token and a user ID.
func LoadCredentials() (*Credentials, error) {
	path, err := CredentialsPath()
	if err != nil {
		return nil, err
	}
	return LoadCredentialsFrom(path)
}

// LoadCredentialsFrom loads credentials from a specific path.
func LoadCredentialsFrom(path string) (*Credentials, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotAuthenticated
		}
		return nil, fmt.Errorf("failed to read credentials: %w", err)
	}

	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		// A corrupt file is treated the same as an absent one.
		return nil, ErrNotAuthenticated
	}

	if creds.AccessToken == "" || creds.UserID == "" {
		return nil, ErrNotAuthenticated
	}

	return &creds, nil
}

// SaveCredentials writes credentials to the default path.
func SaveCredentials(creds *Credentials) error {
	path, err := CredentialsPath()
	if err != nil {
		return err
	}
	return SaveCredentialsTo(path, creds)
}

// SaveCredentialsTo writes credentials to a specific path.
//
// The write is atomic: data goes to a temp file in the same directory which
// is then renamed over the target, so a crash mid-write cannot leave a
// truncated credentials file behind.
func SaveCredentialsTo(path string, creds *Credentials) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal credentials: %w", err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(dir, DefaultCredentialsFile+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write credentials: %w", err)
	}
	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to set credentials mode: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write credentials: %w", err)
	}

	return nil
}

// ClearCredentials removes the credentials file at the default path.
func ClearCredentials() error {
	path, err := CredentialsPath()
	if err != nil {
		return err
	}
	return ClearCredentialsFrom(path)
}

// ClearCredentialsFrom removes the credentials file at a specific path.
// A file that is already absent is not an error.
func ClearCredentialsFrom(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove credentials: %w", err)
	}
	return nil
}

// MaskToken masks an access token for display.
func MaskToken(token string) string {
	if len(token) <= 8 {
		return strings.Repeat("*", len(token))
	}
	return token[:4] + strings.Repeat("*", len(token)-8) + token[len(token)-4:]
}
