package pineassistant

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// Session states reported by the backend.
const (
	SessionStateInit           = "init"
	SessionStateActive         = "active"
	SessionStateChat           = "chat"
	SessionStateTaskProcessing = "task_processing"
	SessionStateTaskFinished   = "task_finished"
)

// Session is backend-owned conversational context, referenced by ID.
type Session struct {
	ID        string `json:"id"`
	State     string `json:"state,omitempty"`
	Title     string `json:"title,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// SessionList is one page of sessions.
type SessionList struct {
	Sessions []Session `json:"sessions"`
	Total    int       `json:"total"`
}

// ListOptions filters and paginates Sessions.List.
type ListOptions struct {
	// State filters by session state (empty = all).
	State string

	// Limit caps the page size (zero = backend default).
	Limit int

	// Offset skips the first N results.
	Offset int
}

// TaskStatus is the backend's acknowledgment of a task lifecycle change.
type TaskStatus struct {
	Message string `json:"message,omitempty"`
}

// SessionService provides session CRUD and task lifecycle operations.
// All operations are passthroughs; session state lives on the backend.
type SessionService struct {
	client *Client
}

// newSessionService creates a session service.
func newSessionService(c *Client) *SessionService {
	return &SessionService{client: c}
}

// List returns a page of the user's sessions.
func (s *SessionService) List(ctx context.Context, opts ListOptions) (*SessionList, error) {
	q := url.Values{}
	if opts.State != "" {
		q.Set("state", opts.State)
	}
	if opts.Limit > 0 {
		q.Set("limit", strconv.Itoa(opts.Limit))
	}
	if opts.Offset > 0 {
		q.Set("offset", strconv.Itoa(opts.Offset))
	}

	path := "/api/v1/sessions"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var resp SessionList
	if err := s.client.http.request(ctx, "GET", path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Create creates a new session.
func (s *SessionService) Create(ctx context.Context) (*Session, error) {
	var resp Session
	if err := s.client.http.request(ctx, "POST", "/api/v1/sessions", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Get returns session metadata.
func (s *SessionService) Get(ctx context.Context, sessionID string) (*Session, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("session ID is required")
	}

	var resp Session
	if err := s.client.http.request(ctx, "GET", "/api/v1/sessions/"+url.PathEscape(sessionID), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Delete deletes a session. force skips the backend's safety checks.
func (s *SessionService) Delete(ctx context.Context, sessionID string, force bool) error {
	if sessionID == "" {
		return fmt.Errorf("session ID is required")
	}

	path := "/api/v1/sessions/" + url.PathEscape(sessionID)
	if force {
		path += "?force=true"
	}
	return s.client.http.request(ctx, "DELETE", path, nil, nil)
}

// StartTask starts task execution for a session.
func (s *SessionService) StartTask(ctx context.Context, sessionID string) (*TaskStatus, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("session ID is required")
	}

	var resp TaskStatus
	if err := s.client.http.request(ctx, "POST", "/api/v1/sessions/"+url.PathEscape(sessionID)+"/task/start", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// StopTask stops a running task.
func (s *SessionService) StopTask(ctx context.Context, sessionID string) (*TaskStatus, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("session ID is required")
	}

	var resp TaskStatus
	if err := s.client.http.request(ctx, "POST", "/api/v1/sessions/"+url.PathEscape(sessionID)+"/task/stop", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
