// Package api provides HTTP REST API handlers for the turtle escape game.
//
// The api package implements:
//   - RESTful endpoints for game operations
//   - Session management endpoints
//   - Board configuration listing and creation
//   - WebSocket upgrade handling
//   - Static file serving
//
// Endpoints:
//
// Session Management:
//   - POST /api/sessions - Create new session
//   - GET /api/sessions - List all sessions (sort/order/limit query params)
//   - GET /api/sessions/unified - Multi-session view for dashboards
//   - GET /api/sessions/{id} - Get specific session
//   - DELETE /api/sessions/{id} - Delete session
//
// Game Operations:
//   - GET /api/sessions/{id}/state - Get current game state
//   - POST /api/sessions/{id}/command - Execute a single command
//   - POST /api/sessions/{id}/run - Run a full command sequence
//   - POST /api/sessions/{id}/reset - Return the turtle to the start
//   - GET /api/sessions/{id}/history - Get command history with pagination
//
// Configuration:
//   - GET /api/configs - List available board configurations
//   - POST /api/configs - Save a new board configuration
//   - GET /api/configs/{name} - Get a specific board configuration
//
// Request/Response Format:
//
// All endpoints accept and return JSON.
//
// Commands are sent as POST with JSON body:
//
//	{
//	  "command": "m|r",      // m moves forward, r rotates right
//	  "reset": true|false    // optional reset before the command
//	}
//
// Sequences are sent as POST with JSON body:
//
//	{
//	  "sequence": "mrmmmmrmm"
//	}
//
// A sequence containing any character other than m or r is rejected as a
// whole and nothing is applied.
//
// Error Handling:
//
// Errors are returned as JSON with appropriate HTTP status codes:
//
//	{
//	  "error": "error message"
//	}
package api

//
// Enriched Responses (Command and Run)
//
// Command (POST /api/sessions/{id}/command)
//   Response:
//     - success, message, events
//     - step: { idx, command, from{x,y}, to{x,y}, heading, status, terminal }
//     - game_state: full state including command history counters
//
// Run (POST /api/sessions/{id}/run)
//   Response:
//     - commands_executed, requested_commands
//     - stopped_reason (text), stop_reason_code (safe|mine_hit|out_of_bounds|invalid_sequence|exhausted)
//     - stopped_on_command (1-based)
//     - steps: [{ idx, command, from, to, heading, status, terminal }]
//     - start_pos, end_pos, start_heading, end_heading
//     - board: ASCII rendering of the final position
//     - distance_to_exit: Manhattan distance from the end position
