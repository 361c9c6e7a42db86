// Command validate provides a small CLI that validates board configuration
// JSON files in the ../configs directory. It checks:
//   - JSON structure and required fields
//   - Board dimensions within supported bounds
//   - Start and exit positions on (or at the edge of) the board
//   - Start heading is one of north, east, south, west
//   - Required message keys
//   - Reachability: the exit can be reached from the start without
//     crossing a mine
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	minBoardSize = 1
	maxBoardSize = 100
)

// Position mirrors the coordinate schema used in board files.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Config mirrors the JSON schema for a board configuration.
type Config struct {
	Name         string            `json:"name"`
	Description  string            `json:"description"`
	Columns      int               `json:"columns"`
	Rows         int               `json:"rows"`
	Start        Position          `json:"start"`
	StartHeading string            `json:"start_heading"`
	Exit         Position          `json:"exit"`
	Mines        []Position        `json:"mines"`
	Messages     map[string]string `json:"messages"`
}

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

// validateConfig loads and validates a single board JSON file. It performs
// structural checks, position and heading validation, message presence,
// and a reachability analysis from start to exit.
func validateConfig(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Failed to read file: %v", err))
		return result
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Invalid JSON: %v", err))
		return result
	}

	// Validate dimensions
	if config.Columns < minBoardSize || config.Columns > maxBoardSize {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("columns must be between %d and %d, got %d", minBoardSize, maxBoardSize, config.Columns))
	}
	if config.Rows < minBoardSize || config.Rows > maxBoardSize {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("rows must be between %d and %d, got %d", minBoardSize, maxBoardSize, config.Rows))
	}

	// Positions may sit on the inclusive upper edge; the classifier reports
	// out_of_bounds for them at runtime. Keep the same rule here.
	checkPos := func(label string, p Position) {
		if p.X < 0 || p.X > config.Columns || p.Y < 0 || p.Y > config.Rows {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("%s (%d,%d) is outside the board", label, p.X, p.Y))
		} else if p.X == config.Columns || p.Y == config.Rows {
			result.Errors = append(result.Errors, fmt.Sprintf("Note: %s (%d,%d) sits on the boundary and classifies as out_of_bounds", label, p.X, p.Y))
		}
	}
	checkPos("start", config.Start)
	checkPos("exit", config.Exit)
	for i, m := range config.Mines {
		checkPos(fmt.Sprintf("mine %d", i+1), m)
	}

	// Validate heading
	switch strings.ToLower(config.StartHeading) {
	case "north", "east", "south", "west":
	default:
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("start_heading must be north, east, south or west, got %q", config.StartHeading))
	}

	// Validate messages
	requiredMessages := []string{
		"welcome",
		"safe",
		"mine_hit",
		"out_of_bounds",
		"still_in_danger",
		"illegal_command",
	}
	for _, msg := range requiredMessages {
		if _, exists := config.Messages[msg]; !exists {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Missing required message: %s", msg))
		}
	}

	// Reachability validation - can the exit be reached at all
	if result.Valid {
		reachabilityResult := validateReachability(&config)
		if !reachabilityResult.Valid {
			result.Valid = false
		}
		result.Errors = append(result.Errors, reachabilityResult.Errors...)
	}

	// Add informational data
	if result.Valid {
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Name: %s", config.Name))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Board: %dx%d", config.Columns, config.Rows))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Start: (%d,%d) facing %s", config.Start.X, config.Start.Y, strings.ToLower(config.StartHeading)))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Exit: (%d,%d)", config.Exit.X, config.Exit.Y))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Mines: %d", len(config.Mines)))
	}

	return result
}

// validateReachability ensures the exit is reachable from the start using
// 4-directional movement over mine-free cells. Rotation is free, so any
// cell path the flood fill finds can be walked by the turtle.
func validateReachability(config *Config) ValidationResult {
	result := ValidationResult{
		Valid:  true,
		Errors: []string{},
	}

	hasMine := func(x, y int) bool {
		for _, m := range config.Mines {
			if m.X == x && m.Y == y {
				return true
			}
		}
		return false
	}

	if hasMine(config.Exit.X, config.Exit.Y) {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Exit (%d,%d) is mined: stepping there is mine_hit, the board cannot be won", config.Exit.X, config.Exit.Y))
		return result
	}

	if hasMine(config.Start.X, config.Start.Y) {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Start (%d,%d) is mined: the first move already begins on a mine", config.Start.X, config.Start.Y))
		return result
	}

	inBounds := func(x, y int) bool {
		return x >= 0 && y >= 0 && x < config.Columns && y < config.Rows
	}

	// Flood fill from the start over mine-free cells
	visited := make(map[string]bool)
	queue := [][]int{{config.Start.X, config.Start.Y}}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		x, y := current[0], current[1]
		key := fmt.Sprintf("%d,%d", x, y)

		if visited[key] {
			continue
		}
		visited[key] = true

		directions := [][]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
		for _, dir := range directions {
			nx, ny := x+dir[0], y+dir[1]
			nkey := fmt.Sprintf("%d,%d", nx, ny)

			if !visited[nkey] && inBounds(nx, ny) && !hasMine(nx, ny) {
				queue = append(queue, []int{nx, ny})
			}
		}
	}

	exitKey := fmt.Sprintf("%d,%d", config.Exit.X, config.Exit.Y)
	if !visited[exitKey] {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Reachability failure: exit (%d,%d) cannot be reached from start (%d,%d) without crossing a mine", config.Exit.X, config.Exit.Y, config.Start.X, config.Start.Y))
	} else {
		result.Errors = append(result.Errors, "✓ Reachability: exit reachable from start")
	}

	return result
}

// main scans ../configs for *.json files and validates each one, printing a
// concise report and exiting with non-zero status if any are invalid.
func main() {
	configDir := "../configs"
	files, err := filepath.Glob(filepath.Join(configDir, "*.json"))
	if err != nil {
		fmt.Printf("Error finding config files: %v\n", err)
		os.Exit(1)
	}

	allValid := true
	for _, file := range files {
		result := validateConfig(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				if !strings.HasPrefix(err, "✓") {
					fmt.Println("  ❌ " + err)
				}
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All board configurations are valid!")
	} else {
		fmt.Println("❌ Some board configurations have errors")
		os.Exit(1)
	}
}
