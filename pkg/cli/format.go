package cli

import (
	"fmt"
	"time"
)

// FormatTimestamp formats an RFC 3339 timestamp for display in local time.
// Unparseable or empty input is returned unchanged.
func FormatTimestamp(ts string) string {
	if ts == "" {
		return ""
	}
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return ts
	}
	return t.Local().Format("Jan 2 15:04")
}

// FormatSeconds formats a duration in seconds to a human readable string.
func FormatSeconds(secs int) string {
	if secs < 60 {
		return fmt.Sprintf("%ds", secs)
	}
	mins := secs / 60
	rem := secs % 60
	if rem == 0 {
		return fmt.Sprintf("%dm", mins)
	}
	return fmt.Sprintf("%dm%ds", mins, rem)
}
