package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/pine-ai/pine-cli/pkg/pineassistant"
)

// flakyChatServer serves the realtime protocol but drops the first
// connection right after its first message turn, the way a backend restart
// or idle timeout would.
func flakyChatServer(t *testing.T, conns *atomic.Int32) *pineassistant.Client {
	t.Helper()

	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		defer conn.Close()
		connNum := conns.Add(1)

		for {
			var msg struct {
				Type string         `json:"type"`
				Data map[string]any `json:"data"`
			}
			if err := conn.ReadJSON(&msg); err != nil {
				return
			}

			switch msg.Type {
			case "history:get":
				rid, _ := msg.Data["request_id"].(string)
				sid, _ := msg.Data["session_id"].(string)
				conn.WriteJSON(pineassistant.Event{Type: pineassistant.EventHistoryResult, Data: pineassistant.EventData{
					SessionID: sid,
					RequestID: rid,
				}})
			case "session:message":
				sid, _ := msg.Data["session_id"].(string)
				content, _ := msg.Data["content"].(string)
				conn.WriteJSON(pineassistant.Event{Type: pineassistant.EventSessionText, Data: pineassistant.EventData{
					SessionID: sid,
					Content:   "re: " + content,
				}})
				conn.WriteJSON(pineassistant.Event{Type: pineassistant.EventSessionState, Data: pineassistant.EventData{
					SessionID: sid,
					Content:   pineassistant.StateIdle,
				}})
				if connNum == 1 {
					conn.WriteControl(websocket.CloseMessage,
						websocket.FormatCloseMessage(websocket.CloseGoingAway, ""),
						time.Now().Add(time.Second))
					return
				}
			}
		}
	}))
	t.Cleanup(srv.Close)

	return pineassistant.NewClient(
		pineassistant.WithCredentials("test-token", "user-1"),
		pineassistant.WithBaseURL(srv.URL),
	)
}

func TestChatSessionReconnects(t *testing.T) {
	var conns atomic.Int32
	client := flakyChatServer(t, &conns)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var texts []string
	err := chatSession(ctx, client, "sess-1", strings.NewReader("first\nsecond\n/quit\n"), chatHooks{
		onEvent: func(event *pineassistant.Event) {
			if event.Type == pineassistant.EventSessionText {
				texts = append(texts, event.Data.Content)
			}
		},
	})
	if err != nil {
		t.Fatalf("chatSession() error = %v", err)
	}

	if got := conns.Load(); got != 2 {
		t.Errorf("connections = %d, want 2 (one reconnect)", got)
	}
	if len(texts) == 0 || texts[len(texts)-1] != "re: second" {
		t.Fatalf("replies = %v, want last reply to the second line", texts)
	}
	var sawFirst bool
	for _, text := range texts {
		if text == "re: first" {
			sawFirst = true
		}
	}
	if !sawFirst {
		t.Errorf("replies = %v, missing reply to the first line", texts)
	}
}

// pickerClient serves a fixed set of sessions with offset/limit paging.
func pickerClient(t *testing.T, total int) *pineassistant.Client {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/sessions" || r.Method != "GET" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			http.NotFound(w, r)
			return
		}
		offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		if limit <= 0 {
			limit = total
		}

		var page []pineassistant.Session
		for i := offset; i < total && i < offset+limit; i++ {
			page = append(page, pineassistant.Session{
				ID:    fmt.Sprintf("sess-%d", i+1),
				State: "chat",
			})
		}
		json.NewEncoder(w).Encode(pineassistant.SessionList{Sessions: page, Total: total})
	}))
	t.Cleanup(srv.Close)

	return pineassistant.NewClient(
		pineassistant.WithCredentials("test-token", "user-1"),
		pineassistant.WithBaseURL(srv.URL),
	)
}

func TestPickSessionAcrossPages(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name  string
		total int
		input string
		want  string
	}{
		{"first page", 15, "3\n", "sess-3"},
		{"second page", 15, "m\n12\n", "sess-12"},
		{"earlier page stays selectable after more", 15, "m\n2\n", "sess-2"},
		{"invalid then valid", 15, "99\n5\n", "sess-5"},
		{"no more pages to request", 10, "m\n7\n", "sess-7"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := pickerClient(t, tt.total)

			got, err := pickSession(ctx, client, strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("pickSession() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("pickSession() = %q, want %q", got, tt.want)
			}
		})
	}
}
