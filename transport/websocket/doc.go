// Package websocket provides WebSocket transport for the memory game.
//
// The websocket package implements:
//   - Session-aware WebSocket connections
//   - State broadcasting after every flip and acknowledge
//   - Inbound flip and acknowledge commands
//
// Architecture:
//
// A central Hub owns every connection. Each client has a read pump and a
// write pump goroutine. The Run loop is the only goroutine that touches the
// client map, so broadcasts are queued on a channel and never block callers.
//
// Message Protocol:
//
// Messages are JSON-encoded with the following structure:
//   - Incoming: {"action": "flip", "card_id": 3} or {"action": "acknowledge"}
//   - Outgoing: {"session_id": "abc1", "event": "state_update", "game_state": {...}}
//
// Command failures are sent back to the sending client only, as an
// "error" event with the reason in the error field.
//
// Usage:
//
//	hub := websocket.NewHub()
//	hub.SetCommandHandler(handler)
//	go hub.Run(ctx)
//
//	router.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
//		hub.ServeWS(w, r, r.URL.Query().Get("session"))
//	})
package websocket
