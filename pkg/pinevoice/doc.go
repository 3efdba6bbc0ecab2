// Package pinevoice provides a Go client for the Pine AI voice calling API.
//
// The client places outbound AI voice calls and polls their status. All
// operations are single request/response round trips; a "waiting" call is a
// create followed by status polling until a terminal state.
//
// Basic usage:
//
//	client := pinevoice.NewClient(token, userID)
//
//	call, err := client.Calls.Create(ctx, &pinevoice.CallRequest{
//	    To:        "+14155551234",
//	    Name:      "Comcast Support",
//	    Context:   "Monthly bill went up by $30",
//	    Objective: "Get the bill back to the original rate",
//	})
//
// Or block until the call finishes:
//
//	result, err := client.Calls.CreateAndWait(ctx, req, pinevoice.WaitOptions{
//	    OnProgress: func(s *pinevoice.CallStatus) { fmt.Println(s.Status) },
//	})
package pinevoice
