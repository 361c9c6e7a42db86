// Package service provides the business logic layer for Turtle Escape.
//
// The service package implements:
//   - Multi-session game management
//   - Board configuration management and loading
//   - Command processing and sequence validation
//   - Session lifecycle management
//   - Command history tracking
//
// Core Interfaces:
//
// GameService is the main service interface providing high-level game operations.
// SessionManager handles session creation, retrieval, and lifecycle.
// ConfigManager manages board configuration loading and validation.
//
// Architecture:
//
// The service layer sits between the transport layer (HTTP/WebSocket/MCP) and
// the game engine, providing session isolation, configuration management, and
// business logic orchestration. Each session maintains its own game engine
// instance with independent state.
//
// Usage:
//
//	sessionMgr := session.NewManager()
//	configMgr := config.NewManager("configs")
//	gameService := service.NewGameService(sessionMgr, configMgr)
//
//	// Create a new session
//	sessionInfo, err := gameService.CreateSession(ctx, "classic")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Step the turtle one command at a time
//	result, err := gameService.Command(ctx, sessionInfo.ID, "m", false)
//
//	// Or replay a whole sequence on a fresh turtle
//	run, err := gameService.RunSequence(ctx, sessionInfo.ID, "mrmmmmrmm")
//
// Session Management:
//
// Sessions are identified by unique 4-character IDs and maintain independent
// game state. Multiple sessions can run concurrently with different board
// configurations. Sessions track creation time, last access time, and command
// history for analytics and debugging.
package service
