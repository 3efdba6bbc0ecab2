package pineassistant

// EventType identifies a server-to-client realtime event.
type EventType string

// Server-to-client event types.
const (
	EventSessionText       EventType = "session:text"
	EventSessionState      EventType = "session:state"
	EventSessionThinking   EventType = "session:thinking"
	EventSessionWorkLog    EventType = "session:work_log"
	EventSessionFormToUser EventType = "session:form_to_user"
	EventHistoryResult     EventType = "history:result"
	EventError             EventType = "error"
)

// StateIdle is the session state that marks the end of an assistant turn.
const StateIdle = "idle"

// WorkLogStep is one step of the assistant's work log.
type WorkLogStep struct {
	StepTitle   string `json:"step_title,omitempty"`
	StepDetails string `json:"step_details,omitempty"`
	Status      string `json:"status,omitempty"`
}

// HistoryMessage is one message of a session's conversation history.
type HistoryMessage struct {
	// Type mirrors the realtime event types (session:message, session:text,
	// session:work_log, session:form_to_user).
	Type string `json:"type"`

	// Role is the speaker role for session:message entries (user/assistant).
	Role string `json:"role,omitempty"`

	// Timestamp is the RFC 3339 time the message was recorded.
	Timestamp string `json:"timestamp,omitempty"`

	// Content is the message text.
	Content string `json:"content,omitempty"`

	// MessageToUser carries the prompt of a form_to_user entry.
	MessageToUser string `json:"message_to_user,omitempty"`

	// Steps carries work log steps.
	Steps []WorkLogStep `json:"steps,omitempty"`
}

// EventData is the payload of a realtime event. Fields are populated
// according to the event type.
type EventData struct {
	SessionID string `json:"session_id,omitempty"`

	// RequestID correlates request/response exchanges (history fetches).
	RequestID string `json:"request_id,omitempty"`

	// Content is the text of session:text events and the state name of
	// session:state events.
	Content string `json:"content,omitempty"`

	// MessageToUser is the prompt of session:form_to_user events.
	MessageToUser string `json:"message_to_user,omitempty"`

	// Steps are the work log steps of session:work_log events.
	Steps []WorkLogStep `json:"steps,omitempty"`

	// Messages is the payload of history:result events.
	Messages []HistoryMessage `json:"messages,omitempty"`

	// Code and Message describe error events.
	Code    int    `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

// Event is a server-to-client realtime event.
type Event struct {
	Type EventType `json:"type"`
	Data EventData `json:"data"`
}

// History is a session's conversation history, oldest or newest first
// depending on the requested order.
type History struct {
	Messages []HistoryMessage `json:"messages"`
}
