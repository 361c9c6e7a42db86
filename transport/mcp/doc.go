// Package mcp provides a Model Context Protocol interface for the turtle
// escape game.
//
// The mcp package implements:
//   - MCP server for AI agent integration
//   - Tool definitions for game operations
//   - Session-aware command execution
//   - A thin proxy over the REST API
//
// MCP Tools:
//
// The package exposes the following tools for AI agents:
//   - board_state: Get current game state with a board rendering
//   - command: Execute a single command (m or r)
//   - run_sequence: Run a whole command string in one playthrough
//   - reset_game: Return the turtle to the start position
//   - command_history: Retrieve command history with pagination
//   - create_session: Create new game session with board selection
//   - get_session: Get specific session details
//   - list_sessions: List all active sessions
//   - list_configs: List available board configurations
//   - probe_cell: Inspect a single board cell (mine, exit, start or empty)
//   - game_instructions: Get comprehensive game instructions and rules
//
// Architecture:
//
// The MCP server does not hold game state. Every tool call is translated
// into a REST request against the API server, and the JSON response is
// formatted into human-readable text for the agent. Running the MCP
// process separately from the game server keeps a single source of truth
// for sessions.
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
//
// AI Integration:
//
// The MCP interface enables AI agents to:
//   - Autonomously play the game
//   - Plan and test escape routes
//   - Inspect boards cell by cell before committing to a route
//   - Manage multiple game sessions
//   - Learn from command history across playthroughs
package mcp
