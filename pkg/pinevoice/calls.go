package pinevoice

import (
	"context"
	"fmt"
	"net/url"
	"time"
)

// DefaultPollInterval is the default status polling interval for waiting calls.
const DefaultPollInterval = 5 * time.Second

// CallService provides outbound call operations.
type CallService struct {
	client *Client
}

// newCallService creates a call service.
func newCallService(c *Client) *CallService {
	return &CallService{client: c}
}

// Create submits an outbound call and returns immediately.
//
// The request is validated locally first; a *ValidationError is returned
// before any network traffic when a field is rejected.
func (s *CallService) Create(ctx context.Context, req *CallRequest) (*InitiatedCall, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var resp InitiatedCall
	if err := s.client.http.request(ctx, "POST", "/api/v1/voice/calls", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Get returns the current status of a call.
func (s *CallService) Get(ctx context.Context, callID string) (*CallStatus, error) {
	if callID == "" {
		return nil, &ValidationError{Field: "call-id", Message: "call ID is required"}
	}

	var resp CallStatus
	if err := s.client.http.request(ctx, "GET", "/api/v1/voice/calls/"+url.PathEscape(callID), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// WaitOptions configures CreateAndWait and Wait.
type WaitOptions struct {
	// Interval is the polling interval. Zero means DefaultPollInterval.
	Interval time.Duration

	// OnProgress, if set, is invoked after every poll with the current
	// status, including the terminal one.
	OnProgress func(*CallStatus)
}

// CreateAndWait submits a call and blocks until it reaches a terminal
// status, polling Get on an interval. Context cancellation aborts the wait;
// the call itself keeps running on the backend.
func (s *CallService) CreateAndWait(ctx context.Context, req *CallRequest, opts WaitOptions) (*CallResult, error) {
	initiated, err := s.Create(ctx, req)
	if err != nil {
		return nil, err
	}
	return s.Wait(ctx, initiated.CallID, opts)
}

// Wait blocks until the call reaches a terminal status.
func (s *CallService) Wait(ctx context.Context, callID string, opts WaitOptions) (*CallResult, error) {
	interval := opts.Interval
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	// Query immediately before the first ticker interval.
	status, err := s.Get(ctx, callID)
	if err != nil {
		return nil, err
	}
	if opts.OnProgress != nil {
		opts.OnProgress(status)
	}
	if status.Status.Terminal() {
		return resultFromStatus(status)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
			status, err := s.Get(ctx, callID)
			if err != nil {
				return nil, err
			}
			if opts.OnProgress != nil {
				opts.OnProgress(status)
			}
			if status.Status.Terminal() {
				return resultFromStatus(status)
			}
		}
	}
}

// resultFromStatus extracts the terminal result from a status response.
func resultFromStatus(status *CallStatus) (*CallResult, error) {
	if status.Result != nil {
		return status.Result, nil
	}
	// Terminal status without a result body still yields a usable outcome.
	if status.Status.Terminal() {
		return &CallResult{
			CallID:          status.CallID,
			Status:          status.Status,
			DurationSeconds: status.DurationSeconds,
		}, nil
	}
	return nil, fmt.Errorf("call %s is not finished (status %s)", status.CallID, status.Status)
}
