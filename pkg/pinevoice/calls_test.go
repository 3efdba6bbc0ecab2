package pinevoice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient("test-token", "user-1", WithBaseURL(srv.URL), WithRetry(0))
}

func TestCallsCreate(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/v1/voice/calls" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("Authorization = %q", got)
		}
		if got := r.Header.Get("X-User-ID"); got != "user-1" {
			t.Errorf("X-User-ID = %q", got)
		}

		var req CallRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.To != "+14155551234" {
			t.Errorf("to = %q", req.To)
		}

		json.NewEncoder(w).Encode(InitiatedCall{CallID: "call-123", Status: StatusQueued})
	}))

	call, err := client.Calls.Create(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if call.CallID != "call-123" {
		t.Errorf("CallID = %q, want call-123", call.CallID)
	}
	if call.Status != StatusQueued {
		t.Errorf("Status = %q, want queued", call.Status)
	}
}

func TestCallsCreateRejectsInvalidBeforeNetwork(t *testing.T) {
	var hits atomic.Int32
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))

	req := validRequest()
	req.MaxDurationMinutes = 121

	_, err := client.Calls.Create(context.Background(), req)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Create() error = %v, want *ValidationError", err)
	}
	if hits.Load() != 0 {
		t.Errorf("server was hit %d times, want 0", hits.Load())
	}
}

func TestCallsGetNotFound(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"error":{"code":404,"message":"call not found"}}`)
	}))

	_, err := client.Calls.Get(context.Background(), "call-missing")
	apiErr, ok := AsError(err)
	if !ok {
		t.Fatalf("Get() error = %v, want *Error", err)
	}
	if !apiErr.IsNotFound() {
		t.Errorf("IsNotFound() = false, HTTPStatus = %d", apiErr.HTTPStatus)
	}
	if apiErr.Message != "call not found" {
		t.Errorf("Message = %q", apiErr.Message)
	}
}

func TestCallsCreateAndWait(t *testing.T) {
	var polls atomic.Int32
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost:
			json.NewEncoder(w).Encode(InitiatedCall{CallID: "call-9", Status: StatusQueued})
		case r.Method == http.MethodGet:
			n := polls.Add(1)
			status := CallStatus{CallID: "call-9", Status: StatusInProgress, DurationSeconds: int(n) * 5}
			if n >= 3 {
				status.Status = StatusCompleted
				status.Result = &CallResult{
					CallID:          "call-9",
					Status:          StatusCompleted,
					DurationSeconds: 95,
					Summary:         "Negotiated the bill down.",
					CreditsCharged:  2,
					Transcript: []TranscriptEntry{
						{Speaker: "agent", Text: "Hello, I am calling about a billing issue."},
						{Speaker: "callee", Text: "Let me check that for you."},
					},
				}
			}
			json.NewEncoder(w).Encode(status)
		}
	}))

	var progress []Status
	result, err := client.Calls.CreateAndWait(context.Background(), validRequest(), WaitOptions{
		Interval: 10 * time.Millisecond,
		OnProgress: func(s *CallStatus) {
			progress = append(progress, s.Status)
		},
	})
	if err != nil {
		t.Fatalf("CreateAndWait() error = %v", err)
	}

	if result.Status != StatusCompleted {
		t.Errorf("Status = %q, want completed", result.Status)
	}
	if result.Summary == "" {
		t.Error("Summary is empty")
	}
	if len(result.Transcript) != 2 {
		t.Errorf("Transcript length = %d, want 2", len(result.Transcript))
	}
	if len(progress) != 3 {
		t.Errorf("progress callbacks = %d, want 3", len(progress))
	}
	if progress[len(progress)-1] != StatusCompleted {
		t.Errorf("final progress status = %q, want completed", progress[len(progress)-1])
	}
}

func TestCallsWaitContextCancel(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(CallStatus{CallID: "call-1", Status: StatusInProgress})
	}))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.Calls.Wait(ctx, "call-1", WaitOptions{Interval: 10 * time.Millisecond})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Wait() error = %v, want context.DeadlineExceeded", err)
	}
}

func TestRetryOnServerError(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			fmt.Fprint(w, `{"error":{"code":502,"message":"upstream hiccup"}}`)
			return
		}
		json.NewEncoder(w).Encode(CallStatus{CallID: "call-1", Status: StatusQueued})
	}))
	defer srv.Close()

	client := NewClient("tok", "u", WithBaseURL(srv.URL), WithRetry(2))

	// The first attempt fails with a retryable 502; the retry succeeds.
	status, err := client.Calls.Get(context.Background(), "call-1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if status.Status != StatusQueued {
		t.Errorf("Status = %q, want queued", status.Status)
	}
	if hits.Load() != 2 {
		t.Errorf("server hits = %d, want 2", hits.Load())
	}
}
