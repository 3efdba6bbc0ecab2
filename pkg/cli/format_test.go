package cli

import "testing"

func TestFormatSeconds(t *testing.T) {
	tests := []struct {
		secs int
		want string
	}{
		{0, "0s"},
		{45, "45s"},
		{60, "1m"},
		{90, "1m30s"},
		{3600, "60m"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := FormatSeconds(tt.secs); got != tt.want {
				t.Errorf("FormatSeconds(%d) = %q, want %q", tt.secs, got, tt.want)
			}
		})
	}
}

func TestFormatTimestamp(t *testing.T) {
	if got := FormatTimestamp(""); got != "" {
		t.Errorf("FormatTimestamp(\"\") = %q, want empty", got)
	}

	// Unparseable input passes through unchanged.
	if got := FormatTimestamp("yesterday"); got != "yesterday" {
		t.Errorf("FormatTimestamp(garbage) = %q, want passthrough", got)
	}

	// Valid RFC 3339 input renders non-empty.
	if got := FormatTimestamp("2026-08-24T10:30:00Z"); got == "" || got == "2026-08-24T10:30:00Z" {
		t.Errorf("FormatTimestamp(rfc3339) = %q, want formatted", got)
	}
}
