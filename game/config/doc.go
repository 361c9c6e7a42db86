// Package config provides board configuration management for Turtle Escape.
//
// The config package handles:
//   - Loading board configurations from JSON files
//   - Configuration validation and verification
//   - Default configuration management
//   - Configuration discovery and listing
//
// Configuration Format:
//
// Board configurations are stored as JSON files in the configs directory.
// Each configuration defines:
//   - Board dimensions (columns and rows)
//   - The turtle's starting cell and heading
//   - The exit cell and the mine cells
//   - Report messages for the possible playthrough outcomes
//
// Available Configurations:
//
// The package ships with several boards of increasing difficulty:
//   - classic: The original 5x4 minefield with three mines
//   - open_field: A wide board with scattered mines
//   - corridor: A narrow board that forces a single route
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Load specific configuration
//	board, err := manager.LoadConfig("classic")
//
//	// Get default configuration
//	defaultBoard := manager.GetDefault()
//
//	// List available configurations
//	configs, err := manager.ListConfigs()
//
// Validation:
//
// All configurations are validated for:
//   - Board dimensions within supported limits
//   - Start and exit positions within the settings range
//   - A recognized starting heading
//   - Required name and description fields
package config
