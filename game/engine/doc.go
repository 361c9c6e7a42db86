// Package engine provides the core game logic for Turtle Escape.
//
// The engine package implements the simulation:
//   - The turtle entity: a grid position plus a compass heading
//   - Single-character move/rotate commands and sequence validation
//   - The board status classifier (still in danger, out of bounds,
//     mine hit, safe)
//   - The playthrough runner that replays a command sequence until the
//     first terminal status
//   - Board configuration validation and game state management
//
// Core Types:
//
// The Engine interface defines the main contract for game operations,
// implemented by GameEngine. GameState represents the current session
// state, while BoardConfig defines the playing field loaded from JSON.
//
// Usage:
//
//	config, err := engine.LoadBoardConfig("configs/classic.json")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	commands, err := engine.ParseCommandSequence("mrmmmmrmm")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	turtle := config.StartTurtle()
//	status, err := engine.Run(config, turtle, commands, nil)
//
// Game Rules:
//
// The turtle starts at the board's start cell facing the start heading.
// "m" moves one cell in the facing direction, "r" rotates 90° clockwise.
// After each command the board is classified: leaving the grid or
// stepping on a mine ends the playthrough in failure, reaching the exit
// ends it in success, anything else leaves the turtle still in danger
// and playback continues. A mine on the exit cell wins over the exit.
//
// The engine performs no file I/O beyond LoadBoardConfig and never
// parses external representations itself; transports hand it validated
// BoardConfig values and command sequences.
package engine
