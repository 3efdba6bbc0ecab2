// Package pineassistant provides a Go client for the Pine AI assistant API.
//
// The client covers the email-verification auth flow, session CRUD, task
// lifecycle control, and a realtime WebSocket session for chat. Sessions and
// tasks are owned by the backend; this client only references them by ID.
//
// Basic usage:
//
//	client := pineassistant.NewClient(
//	    pineassistant.WithCredentials(token, userID),
//	)
//
//	list, err := client.Sessions.List(ctx, pineassistant.ListOptions{Limit: 10})
//
// Chat over the realtime connection:
//
//	rt, err := client.Realtime(ctx)
//	defer rt.Close()
//	rt.Join(ctx, sessionID)
//	for event, err := range rt.Chat(ctx, sessionID, "hello") {
//	    ...
//	}
package pineassistant
