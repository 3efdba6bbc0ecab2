package pineassistant

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"net"
	"net/http"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// RealtimeSession is a WebSocket connection to the assistant backend.
//
// One connection can join and leave multiple sessions over its lifetime,
// but the CLI uses it for a single session per invocation. A background
// goroutine reads server events into a channel; request/response exchanges
// (history fetches) are correlated by request ID.
type RealtimeSession struct {
	conn      *websocket.Conn
	recvChan  chan *Event
	errChan   chan error
	closeChan chan struct{}
	closeOnce sync.Once

	writeMu sync.Mutex

	readMu  sync.Mutex
	readErr error

	pendingMu sync.Mutex
	pending   map[string]chan *Event
}

// IsConnectionLost reports whether err means the realtime connection is no
// longer usable and must be re-dialed. Covers close frames, dropped TCP
// connections, and writes on an already-closed socket.
func IsConnectionLost(err error) bool {
	if err == nil {
		return false
	}
	var closeErr *websocket.CloseError
	if errors.As(err, &closeErr) {
		return true
	}
	return errors.Is(err, websocket.ErrCloseSent) ||
		errors.Is(err, net.ErrClosed) ||
		errors.Is(err, io.EOF) ||
		errors.Is(err, io.ErrUnexpectedEOF)
}

// Realtime dials the realtime WebSocket endpoint and starts receiving.
func (c *Client) Realtime(ctx context.Context) (*RealtimeSession, error) {
	wsURL := strings.Replace(c.config.baseURL, "http", "ws", 1) + "/api/v1/realtime"

	header := http.Header{}
	if c.config.accessToken != "" {
		header.Set("Authorization", "Bearer "+c.config.accessToken)
	}
	if c.config.userID != "" {
		header.Set("X-User-ID", c.config.userID)
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, header)
	if err != nil {
		return nil, fmt.Errorf("connect realtime: %w", err)
	}

	rt := &RealtimeSession{
		conn:      conn,
		recvChan:  make(chan *Event, 100),
		errChan:   make(chan error, 1),
		closeChan: make(chan struct{}),
		pending:   make(map[string]chan *Event),
	}

	go rt.receiveLoop()

	return rt, nil
}

// writeJSON serializes a client message to the socket.
func (rt *RealtimeSession) writeJSON(v any) error {
	rt.writeMu.Lock()
	defer rt.writeMu.Unlock()
	return rt.conn.WriteJSON(v)
}

// clientMessage is the client-to-server frame shape.
type clientMessage struct {
	Type string         `json:"type"`
	Data map[string]any `json:"data,omitempty"`
}

// Join subscribes this connection to a session's event stream.
func (rt *RealtimeSession) Join(ctx context.Context, sessionID string) error {
	return rt.writeJSON(clientMessage{
		Type: "session:join",
		Data: map[string]any{"session_id": sessionID},
	})
}

// Leave unsubscribes from a session's event stream.
func (rt *RealtimeSession) Leave(sessionID string) error {
	return rt.writeJSON(clientMessage{
		Type: "session:leave",
		Data: map[string]any{"session_id": sessionID},
	})
}

// SendMessage sends a message to a session without waiting for a reply
// (fire-and-forget). Returns the client-generated message ID.
func (rt *RealtimeSession) SendMessage(sessionID, text string) (string, error) {
	messageID := uuid.NewString()
	err := rt.writeJSON(clientMessage{
		Type: "session:message",
		Data: map[string]any{
			"session_id": sessionID,
			"message_id": messageID,
			"content":    text,
		},
	})
	if err != nil {
		return "", err
	}
	return messageID, nil
}

// Chat sends a message and yields the assistant's events for this turn.
//
// The sequence ends when the session reports the idle state, the server
// sends an error event, or ctx is canceled. Events for pending history
// requests are never yielded here.
func (rt *RealtimeSession) Chat(ctx context.Context, sessionID, text string) iter.Seq2[*Event, error] {
	return func(yield func(*Event, error) bool) {
		if _, err := rt.SendMessage(sessionID, text); err != nil {
			yield(nil, fmt.Errorf("send message: %w", err))
			return
		}

		for {
			select {
			case <-ctx.Done():
				yield(nil, ctx.Err())
				return
			case err := <-rt.errChan:
				yield(nil, err)
				return
			case <-rt.closeChan:
				return
			case event, ok := <-rt.recvChan:
				if !ok {
					// Receive loop died. Surface the read error so the
					// caller knows the turn did not complete.
					if err := rt.lastReadErr(); err != nil {
						yield(nil, err)
					}
					return
				}
				if event.Type == EventError {
					yield(nil, &Error{Code: event.Data.Code, Message: event.Data.Message})
					return
				}
				if !yield(event, nil) {
					return
				}
				if event.Type == EventSessionState && event.Data.Content == StateIdle {
					return
				}
			}
		}
	}
}

// SendResult is the two-case outcome of Send: exactly one of Submitted or
// Completed is set, chosen by the wait parameter.
type SendResult struct {
	// Submitted is set for fire-and-forget sends.
	Submitted *Submitted

	// Completed is set for waiting sends.
	Completed *Completed
}

// Submitted records a message that was sent without waiting.
type Submitted struct {
	MessageID string
}

// Completed records a turn that ran to completion.
type Completed struct {
	// Reply is the assistant's aggregated text reply.
	Reply string

	// Events are all events received during the turn, in order.
	Events []*Event
}

// Send sends a message to a session. With wait false it returns as soon as
// the message is on the wire; with wait true it blocks until the assistant's
// turn completes and aggregates the reply.
func (rt *RealtimeSession) Send(ctx context.Context, sessionID, text string, wait bool) (*SendResult, error) {
	if !wait {
		messageID, err := rt.SendMessage(sessionID, text)
		if err != nil {
			return nil, err
		}
		return &SendResult{Submitted: &Submitted{MessageID: messageID}}, nil
	}

	var events []*Event
	var parts []string
	for event, err := range rt.Chat(ctx, sessionID, text) {
		if err != nil {
			return nil, err
		}
		events = append(events, event)
		if event.Type == EventSessionText && event.Data.Content != "" {
			parts = append(parts, event.Data.Content)
		}
	}

	return &SendResult{Completed: &Completed{
		Reply:  strings.Join(parts, "\n"),
		Events: events,
	}}, nil
}

// History fetches a session's conversation history over the socket.
// order is "asc" or "desc"; limit caps the message count.
func (rt *RealtimeSession) History(ctx context.Context, sessionID string, limit int, order string) (*History, error) {
	requestID := uuid.NewString()

	respChan := make(chan *Event, 1)
	rt.pendingMu.Lock()
	rt.pending[requestID] = respChan
	rt.pendingMu.Unlock()
	defer func() {
		rt.pendingMu.Lock()
		delete(rt.pending, requestID)
		rt.pendingMu.Unlock()
	}()

	err := rt.writeJSON(clientMessage{
		Type: "history:get",
		Data: map[string]any{
			"request_id": requestID,
			"session_id": sessionID,
			"limit":      limit,
			"order":      order,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("request history: %w", err)
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case err := <-rt.errChan:
		return nil, err
	case <-rt.closeChan:
		return nil, fmt.Errorf("connection closed")
	case event := <-respChan:
		if event.Type == EventError {
			return nil, &Error{Code: event.Data.Code, Message: event.Data.Message}
		}
		return &History{Messages: event.Data.Messages}, nil
	}
}

// lastReadErr returns the error that terminated the receive loop, if any.
func (rt *RealtimeSession) lastReadErr() error {
	rt.readMu.Lock()
	defer rt.readMu.Unlock()
	return rt.readErr
}

// Close shuts the connection down. Safe to call more than once.
func (rt *RealtimeSession) Close() error {
	rt.closeOnce.Do(func() {
		close(rt.closeChan)
		rt.writeMu.Lock()
		rt.conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		rt.writeMu.Unlock()
		rt.conn.Close()
	})
	return nil
}

// receiveLoop reads server events and routes them to the event channel or
// to a pending request/response exchange.
func (rt *RealtimeSession) receiveLoop() {
	defer close(rt.recvChan)

	for {
		select {
		case <-rt.closeChan:
			return
		default:
		}

		var event Event
		if err := rt.conn.ReadJSON(&event); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				readErr := fmt.Errorf("read event: %w", err)
				rt.readMu.Lock()
				rt.readErr = readErr
				rt.readMu.Unlock()
				select {
				case rt.errChan <- readErr:
				default:
				}
			}
			return
		}

		if event.Data.RequestID != "" {
			rt.pendingMu.Lock()
			respChan, ok := rt.pending[event.Data.RequestID]
			rt.pendingMu.Unlock()
			if ok {
				respChan <- &event
				continue
			}
		}

		select {
		case rt.recvChan <- &event:
		case <-rt.closeChan:
			return
		}
	}
}
