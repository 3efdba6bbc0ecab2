package pinevoice

import (
	"fmt"
	"regexp"
)

// Caller personas.
const (
	CallerNegotiator   = "negotiator"
	CallerCommunicator = "communicator"
)

// Voice genders.
const (
	VoiceMale   = "male"
	VoiceFemale = "female"
)

// MaxDurationMinutes bounds for a call.
const (
	MinCallDurationMinutes = 1
	MaxCallDurationMinutes = 120
)

// phoneRE matches E.164 numbers: leading +, then 8-15 digits.
var phoneRE = regexp.MustCompile(`^\+[1-9]\d{7,14}$`)

// CallRequest describes an outbound voice call.
type CallRequest struct {
	// To is the phone number to call, in E.164 format (e.g. +14155551234).
	To string `json:"to" yaml:"to"`

	// Name is the name of the person or business being called.
	Name string `json:"name" yaml:"name"`

	// Context is the background context for the call.
	Context string `json:"context" yaml:"context"`

	// Objective is what the call should achieve.
	Objective string `json:"objective" yaml:"objective"`

	// Instructions is an optional detailed strategy for the agent.
	Instructions string `json:"instructions,omitempty" yaml:"instructions,omitempty"`

	// Caller is the caller persona: negotiator or communicator.
	// Empty selects the backend default.
	Caller string `json:"caller,omitempty" yaml:"caller,omitempty"`

	// Voice is the voice gender: male or female.
	// Empty selects the backend default.
	Voice string `json:"voice,omitempty" yaml:"voice,omitempty"`

	// MaxDurationMinutes limits the call length, 1-120 minutes.
	// Zero selects the backend default.
	MaxDurationMinutes int `json:"max_duration_minutes,omitempty" yaml:"max_duration_minutes,omitempty"`

	// EnableSummary requests an LLM summary of the call.
	EnableSummary bool `json:"enable_summary,omitempty" yaml:"enable_summary,omitempty"`
}

// ValidationError reports a request field that failed local validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// Validate checks the request locally, before any network call.
func (r *CallRequest) Validate() error {
	if r.To == "" {
		return &ValidationError{Field: "to", Message: "phone number is required"}
	}
	if !phoneRE.MatchString(r.To) {
		return &ValidationError{Field: "to", Message: fmt.Sprintf("%q is not an E.164 phone number (e.g. +14155551234)", r.To)}
	}
	if r.Name == "" {
		return &ValidationError{Field: "name", Message: "name is required"}
	}
	if r.Context == "" {
		return &ValidationError{Field: "context", Message: "context is required"}
	}
	if r.Objective == "" {
		return &ValidationError{Field: "objective", Message: "objective is required"}
	}
	switch r.Caller {
	case "", CallerNegotiator, CallerCommunicator:
	default:
		return &ValidationError{Field: "caller", Message: fmt.Sprintf("%q is not one of: negotiator, communicator", r.Caller)}
	}
	switch r.Voice {
	case "", VoiceMale, VoiceFemale:
	default:
		return &ValidationError{Field: "voice", Message: fmt.Sprintf("%q is not one of: male, female", r.Voice)}
	}
	if r.MaxDurationMinutes != 0 &&
		(r.MaxDurationMinutes < MinCallDurationMinutes || r.MaxDurationMinutes > MaxCallDurationMinutes) {
		return &ValidationError{Field: "max-duration", Message: fmt.Sprintf("%d is outside the allowed range %d-%d minutes",
			r.MaxDurationMinutes, MinCallDurationMinutes, MaxCallDurationMinutes)}
	}
	return nil
}

// Call statuses reported by the backend.
type Status string

const (
	StatusQueued     Status = "queued"
	StatusDialing    Status = "dialing"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
	StatusCancelled  Status = "cancelled"
)

// Terminal returns true if the status is final.
func (s Status) Terminal() bool {
	switch s {
	case StatusCompleted, StatusFailed, StatusCancelled:
		return true
	}
	return false
}

// InitiatedCall is the fire-and-forget result of Create: the call was
// submitted and its state now lives on the backend.
type InitiatedCall struct {
	CallID string `json:"call_id"`
	Status Status `json:"status"`
}

// TranscriptEntry is one utterance of the call transcript.
type TranscriptEntry struct {
	Speaker string `json:"speaker"`
	Text    string `json:"text"`
}

// CallStatus is the current state of a call, as returned by Get.
// Result is present only once the call has reached a terminal status.
type CallStatus struct {
	CallID          string      `json:"call_id"`
	Status          Status      `json:"status"`
	DurationSeconds int         `json:"duration_seconds,omitempty"`
	Result          *CallResult `json:"result,omitempty"`
}

// CallResult is the terminal outcome of a call.
type CallResult struct {
	CallID          string            `json:"call_id"`
	Status          Status            `json:"status"`
	DurationSeconds int               `json:"duration_seconds"`
	Summary         string            `json:"summary,omitempty"`
	CreditsCharged  int               `json:"credits_charged"`
	Transcript      []TranscriptEntry `json:"transcript,omitempty"`
}
