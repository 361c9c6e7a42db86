// Package websocket provides WebSocket transport for the turtle escape game.
//
// The websocket package implements:
//   - Real-time state broadcasting after each command
//   - Session-aware WebSocket connections
//   - Terminal-status notification (playthrough_over events)
//   - Connection lifecycle management
//
// Architecture:
//
// The package uses a hub-and-spoke model where a central Hub manages all
// WebSocket connections. Each client connection is handled by a dedicated
// goroutine that manages reading, writing, and cleanup.
//
// Message Protocol:
//
// Outgoing messages are JSON-encoded:
//
//	{
//	  "session_id": "ab12",
//	  "event": "state_update",       // or "playthrough_over" when terminal
//	  "status": "still_in_danger",   // classifier result
//	  "game_over": false,
//	  "game_state": { ... }          // complete game state
//	}
//
// Incoming messages are ignored; commands go through the REST API, the
// socket only streams state back.
//
// Session Integration:
//
// WebSocket connections are session-aware. Clients specify their session ID
// via query parameter (?session=ab12) when establishing the connection.
// State updates are broadcast only to clients connected to the same session.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run()
//
//	// in the HTTP handler, after the session is verified
//	hub.ServeWS(w, r, sessionID)
//
// Connection Lifecycle:
//
// 1. Client connects with session ID
// 2. Connection registered with hub
// 3. State updates broadcast after each command or sequence run
// 4. Ping/pong keepalive maintains the connection
// 5. On disconnect, the client is unregistered and empty sessions removed
package websocket
