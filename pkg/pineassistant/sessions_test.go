package pineassistant

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(
		WithCredentials("test-token", "user-1"),
		WithBaseURL(srv.URL),
		WithRetry(0),
	)
}

func TestSessionsList(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/sessions" {
			t.Errorf("path = %q", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("state") != "chat" || q.Get("limit") != "10" || q.Get("offset") != "20" {
			t.Errorf("query = %q", r.URL.RawQuery)
		}
		json.NewEncoder(w).Encode(SessionList{
			Sessions: []Session{
				{ID: "sess-1", State: "chat", Title: "Cancel gym membership"},
				{ID: "sess-2", State: "task_finished", Title: "Lower internet bill"},
			},
			Total: 42,
		})
	}))

	list, err := client.Sessions.List(context.Background(), ListOptions{State: "chat", Limit: 10, Offset: 20})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(list.Sessions) != 2 {
		t.Errorf("sessions = %d, want 2", len(list.Sessions))
	}
	if list.Total != 42 {
		t.Errorf("total = %d, want 42", list.Total)
	}
}

func TestSessionsCreateAndGet(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/api/v1/sessions":
			json.NewEncoder(w).Encode(Session{ID: "sess-new", State: SessionStateInit})
		case r.Method == http.MethodGet && r.URL.Path == "/api/v1/sessions/sess-new":
			json.NewEncoder(w).Encode(Session{ID: "sess-new", State: SessionStateChat, Title: "untitled"})
		default:
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
	}))

	created, err := client.Sessions.Create(context.Background())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if created.ID != "sess-new" {
		t.Errorf("ID = %q", created.ID)
	}

	got, err := client.Sessions.Get(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.State != SessionStateChat {
		t.Errorf("State = %q", got.State)
	}
}

func TestSessionsDeleteForce(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("method = %q", r.Method)
		}
		if r.URL.Query().Get("force") != "true" {
			t.Errorf("query = %q", r.URL.RawQuery)
		}
		w.WriteHeader(http.StatusNoContent)
	}))

	if err := client.Sessions.Delete(context.Background(), "sess-1", true); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
}

func TestTaskLifecycle(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/sessions/sess-1/task/start":
			json.NewEncoder(w).Encode(TaskStatus{Message: "task started"})
		case "/api/v1/sessions/sess-1/task/stop":
			json.NewEncoder(w).Encode(TaskStatus{Message: "task stopped"})
		default:
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
	}))

	started, err := client.Sessions.StartTask(context.Background(), "sess-1")
	if err != nil {
		t.Fatalf("StartTask() error = %v", err)
	}
	if started.Message != "task started" {
		t.Errorf("Message = %q", started.Message)
	}

	stopped, err := client.Sessions.StopTask(context.Background(), "sess-1")
	if err != nil {
		t.Fatalf("StopTask() error = %v", err)
	}
	if stopped.Message != "task stopped" {
		t.Errorf("Message = %q", stopped.Message)
	}
}

func TestSessionsAuthError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"error":{"code":401,"message":"token expired"}}`)
	}))

	_, err := client.Sessions.List(context.Background(), ListOptions{})
	apiErr, ok := AsError(err)
	if !ok {
		t.Fatalf("List() error = %v, want *Error", err)
	}
	if !apiErr.IsAuth() {
		t.Errorf("IsAuth() = false, HTTPStatus = %d", apiErr.HTTPStatus)
	}
}

func TestEmptySessionIDRejectedLocally(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("server should not be reached")
	}))

	if _, err := client.Sessions.Get(context.Background(), ""); err == nil {
		t.Error("Get(\"\") expected error")
	}
	if err := client.Sessions.Delete(context.Background(), "", false); err == nil {
		t.Error("Delete(\"\") expected error")
	}
	if _, err := client.Sessions.StartTask(context.Background(), ""); err == nil {
		t.Error("StartTask(\"\") expected error")
	}
	if _, err := client.Sessions.StopTask(context.Background(), ""); err == nil {
		t.Error("StopTask(\"\") expected error")
	}
}
