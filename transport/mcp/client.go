package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/pomistea/turtle-escape/game/engine"
	"github.com/pomistea/turtle-escape/game/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Turtle Escape",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Turtle Escape - MCP Interface

This is a thin client that proxies all requests to the REST API server.

GAME OBJECTIVE:
Guide the turtle (shown as an arrow) off the minefield through the exit (E)
without stepping on a mine (*) or leaving the board.

AVAILABLE TOOLS:
- board_state: Get current game state with a board rendering
- command: Single command (m = move forward, r = rotate right) - requires intent explanation
- run_sequence: Run a whole command string at once - requires intent explanation
- reset_game: Return the turtle to the start position
- command_history: View past commands
- create_session: Create new game session
- get_session: Get session details
- list_sessions: List all active sessions
- list_configs: List available board configurations
- game_instructions: Get comprehensive game instructions and rules
- probe_cell: Get detailed info about a specific board cell (mine, exit, start or empty)

NOTE: The 'intent' parameter on command/run_sequence tools serves as rubber duck debugging - explain your reasoning!`),
	)

	// Register all tools
	c.registerTools()
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new game session with optional board configuration selection",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"config_id": map[string]interface{}{
					"type":        "string",
					"description": "ID of the board configuration to use (optional)",
				},
			},
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active game sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details of a specific session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID to retrieve",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleGetSession)

	// Game operations
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "board_state",
		Description: "Get the current game state with a board rendering",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleBoardState)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "command",
		Description: "Execute a single command: m moves the turtle one cell forward, r rotates it 90 degrees clockwise",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"command": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"m", "r"},
					"description": "Command to execute",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of the intent behind this command (serves as a rubber duck to help explain your reasoning)",
				},
				"reset": map[string]interface{}{
					"type":        "boolean",
					"description": "Reset before executing",
				},
			},
			Required: []string{"session_id", "command"},
		},
	}, c.handleCommand)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "run_sequence",
		Description: "Run a whole command string in one playthrough, e.g. \"mrmmmmrmm\". The turtle starts fresh from the start position and stops at the first terminal status. A sequence containing any character other than m or r is rejected as a whole.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"sequence": map[string]interface{}{
					"type":        "string",
					"description": "Command string made of m and r characters",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of the plan behind this sequence (serves as a rubber duck to help explain your reasoning)",
				},
			},
			Required: []string{"session_id", "sequence"},
		},
	}, c.handleRunSequence)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "reset_game",
		Description: "Return the turtle to the start position and heading",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleReset)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "command_history",
		Description: "Get command history for a session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"page": map[string]interface{}{
					"type":        "integer",
					"description": "Page number",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Items per page",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleCommandHistory)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_configs",
		Description: "List available board configurations",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListConfigs)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get comprehensive game instructions and rules",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleGameInstructions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "probe_cell",
		Description: "Get detailed information about a specific board cell. Useful for verifying whether a cell holds a mine (*), the exit (E) or is safe to cross.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"x": map[string]interface{}{
					"type":        "integer",
					"description": "X coordinate (column) of the cell to probe (0-based)",
				},
				"y": map[string]interface{}{
					"type":        "integer",
					"description": "Y coordinate (row) of the cell to probe (0-based)",
				},
			},
			Required: []string{"session_id", "x", "y"},
		},
	}, c.handleProbeCell)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(method, path string, body interface{}, result interface{}) error {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	configID, _ := args["config_id"].(string)

	body := map[string]string{}
	if configID != "" {
		body["config_id"] = configID
	}

	var session service.SessionInfo
	err := c.apiCall("POST", "/api/sessions", body, &session)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created session: %s\nBoard: %s\n", session.ID, session.ConfigName)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}

	err := c.apiCall("GET", "/api/sessions", nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Active Sessions (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		result += fmt.Sprintf("- %s (Board: %s, Created: %s)\n",
			s.ID, s.ConfigName, s.CreatedAt.Format("15:04:05"))
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var session service.SessionInfo
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s", sessionID), nil, &session)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatSessionInfo(&session)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleBoardState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var session service.SessionInfo
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s", sessionID), nil, &session)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatGameState(session.GameState, session.GameConfig)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleCommand(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	command, _ := args["command"].(string)
	intent, _ := args["intent"].(string)
	reset, _ := args["reset"].(bool)

	// Intent parameter serves as rubber duck debugging - we don't need to process it further
	_ = intent

	body := map[string]interface{}{
		"command": command,
		"reset":   reset,
	}

	var result service.CommandResult
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/command", sessionID), body, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	response := formatCommandResult(&result)
	return mcp.NewToolResultText(response), nil
}

func (c *Client) handleRunSequence(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	sequence, _ := args["sequence"].(string)
	intent, _ := args["intent"].(string)

	// Intent parameter serves as rubber duck debugging - we don't need to process it further
	_ = intent

	body := map[string]interface{}{
		"sequence": sequence,
	}

	var result service.RunResult
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/run", sessionID), body, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	response := formatRunResult(sessionID, &result)
	return mcp.NewToolResultText(response), nil
}

func (c *Client) handleReset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var response struct {
		Message string            `json:"message"`
		State   *engine.GameState `json:"state"`
	}

	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/reset", sessionID), nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("%s\n\n%s", response.Message, formatGameState(response.State, nil))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleCommandHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	params := "?"
	if page, ok := args["page"].(float64); ok {
		params += fmt.Sprintf("page=%d&", int(page))
	}
	if limit, ok := args["limit"].(float64); ok {
		params += fmt.Sprintf("limit=%d&", int(limit))
	}

	var history service.HistoryResponse
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/history%s", sessionID, params), nil, &history)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	// Also fetch current segment from live state
	var session service.SessionInfo
	if err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s", sessionID), nil, &session); err != nil {
		// If fetching session fails, still return the history
		result := formatHistory(&history)
		return mcp.NewToolResultText(result), nil
	}

	result := formatHistory(&history)
	result += "\n" + formatCurrentSegment(session.GameState)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListConfigs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var configs []service.ConfigInfo
	err := c.apiCall("GET", "/api/configs", nil, &configs)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := "Available Boards:\n\n"
	for _, config := range configs {
		result += fmt.Sprintf("• %s\n  %s\n  Board: %dx%d, Mines: %d\n\n",
			config.Name, config.Description, config.Columns, config.Rows, config.MineCount)
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instructions := `Turtle Escape - Complete Instructions

GAME OBJECTIVE:
Guide the turtle off the minefield by reaching the exit cell without stepping
on a mine or leaving the board.

GAME MECHANICS:
• Two commands only: m moves one cell forward in the current heading,
  r rotates 90 degrees clockwise in place (north -> east -> south -> west)
• The turtle starts at a fixed position and heading defined by the board
• After every move the position is classified:
  - safe: the turtle is standing exactly on the exit - you escaped
  - mine_hit: the turtle is standing on a mine - playthrough over
  - out_of_bounds: the turtle left the board - playthrough over
  - still_in_danger: on the board, alive, but not out yet
• A mine on the exit cell beats the exit: stepping there is mine_hit
• Once a playthrough is over no further commands are accepted until reset

BOARD LEGEND:
• ^ > v < - The turtle, pointing in its current heading
• * - Mine (stepping here ends the playthrough)
• E - Exit (reach this cell to escape)
• . - Empty cell

COORDINATES:
• (0,0) is the top-left corner
• x grows to the right (east), y grows downward (south)
• Moving north decreases y, moving south increases y

SEQUENCES:
• run_sequence takes a whole command string, e.g. "mrmmmmrmm"
• The turtle always starts a sequence fresh from the start position
• Execution halts at the first terminal status; later commands are ignored
• A sequence containing any character other than m or r is rejected as a
  whole and nothing is executed

STRATEGY TIPS FOR AI AGENTS:
1. Fetch board_state first and map out mines, exit and your heading
2. Remember r only turns clockwise: turning left costs three r commands
3. Plan the full route before running it, counting cells carefully
4. Use probe_cell to double-check any cell you are unsure about
5. After a mine_hit, compare the failed route against the board and fix
   exactly the step that went wrong

SESSION MANAGEMENT:
- Multiple game sessions can run simultaneously
- Each session has a unique 4-character ID
- Sessions maintain independent state and board configuration
- Use session-specific tools for multi-game management

HISTORY:
- command_history is cumulative across playthroughs and survives resets
- The current segment shows only the commands of the playthrough in progress`

	return mcp.NewToolResultText(instructions), nil
}

func (c *Client) handleProbeCell(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	x := int(args["x"].(float64))
	y := int(args["y"].(float64))

	// The session carries the board configuration alongside the live state
	var session service.SessionInfo
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s", sessionID), nil, &session)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	config := session.GameConfig
	if config == nil {
		return mcp.NewToolResultError("session has no board configuration"), nil
	}

	pos := engine.Position{X: x, Y: y}

	if x < 0 || y < 0 || x >= config.Columns || y >= config.Rows {
		return mcp.NewToolResultError(fmt.Sprintf(
			"Coordinates (%d, %d) are outside the board. Board is %dx%d (x 0-%d, y 0-%d); a turtle moving there is out_of_bounds",
			x, y, config.Columns, config.Rows, config.Columns-1, config.Rows-1)), nil
	}

	var cellChar, cellType, description string
	deadly := false

	switch {
	case config.HasMine(pos):
		cellChar = "*"
		cellType = "Mine"
		deadly = true
		description = "Mine - stepping here ends the playthrough with mine_hit"
		if config.Exit == pos {
			cellType = "Mine (on the exit)"
			description = "Mine sitting on the exit cell - the mine wins, stepping here is mine_hit, not safe"
		}
	case config.Exit == pos:
		cellChar = "E"
		cellType = "Exit"
		description = "Exit - reach this cell to escape with status safe"
	case config.Start == pos:
		cellChar = "."
		cellType = "Start"
		description = fmt.Sprintf("Start position - the turtle begins here facing %s", config.StartHeading)
	default:
		cellChar = "."
		cellType = "Empty"
		description = "Empty cell - safe to cross"
	}

	occupied := ""
	if session.GameState != nil && session.GameState.Turtle.Position == pos {
		occupied = fmt.Sprintf("\nThe turtle is currently on this cell, heading %s.", session.GameState.Turtle.Heading)
	}

	result := fmt.Sprintf(`Cell at position (%d, %d):
Character: %s
Type: %s
Deadly: %v
Description: %s%s`,
		x, y, cellChar, cellType, deadly, description, occupied)

	return mcp.NewToolResultText(result), nil
}

// Formatting helpers

func formatSessionInfo(session *service.SessionInfo) string {
	return fmt.Sprintf("Session: %s\nBoard: %s\nCreated: %s\n\n%s",
		session.ID, session.ConfigName,
		session.CreatedAt.Format("2006-01-02 15:04:05"),
		formatGameState(session.GameState, session.GameConfig))
}

func formatGameState(state *engine.GameState, config *engine.BoardConfig) string {
	if state == nil {
		return "No game state available"
	}

	var result strings.Builder

	// Header (include cumulative total commands)
	result.WriteString(fmt.Sprintf("Position: (%d,%d) | Heading: %s | Status: %s | Commands: %d | Playthroughs: %d\n",
		state.Turtle.Position.X, state.Turtle.Position.Y,
		state.Turtle.Heading, state.Status, state.TotalCommands, state.Playthroughs))

	// Board rendering when the configuration is available
	if config != nil {
		result.WriteString("\n")
		for _, row := range engine.RenderBoard(config, &state.Turtle) {
			result.WriteString(row)
			result.WriteString("\n")
		}
		result.WriteString(fmt.Sprintf("\nDistance to exit: %d\n",
			engine.ManhattanDistance(state.Turtle.Position, config.Exit)))
	}

	// Status
	if state.GameOver {
		switch state.Status {
		case engine.Safe:
			result.WriteString("\nESCAPED! The turtle made it out.")
		case engine.MineHit:
			result.WriteString("\nBOOM! The turtle hit a mine.")
		case engine.OutOfBounds:
			result.WriteString("\nThe turtle wandered off the board.")
		default:
			result.WriteString("\nPlaythrough over.")
		}
	}

	if state.Message != "" {
		result.WriteString(fmt.Sprintf("\nMessage: %s", state.Message))
	}

	return result.String()
}

func formatCommandResult(result *service.CommandResult) string {
	response := ""
	if result.Success {
		response = "✓ Command executed\n"
	} else {
		response = "✗ Command rejected\n"
	}

	// Compact step summary (if available)
	if result.Step != nil {
		s := result.Step
		response += fmt.Sprintf("Step: %s (%d,%d)→(%d,%d) heading=%s status=%s\n",
			s.Command, s.From.X, s.From.Y, s.To.X, s.To.Y, s.Heading, s.Status)
	}

	if result.Message != "" {
		response += fmt.Sprintf("Message: %s\n", result.Message)
	}

	if len(result.Events) > 0 {
		response += "Events:\n"
		for _, event := range result.Events {
			response += fmt.Sprintf("- %s: %s\n", event.Type, event.Message)
		}
	}

	response += "\n" + formatGameState(result.GameState, nil)
	return response
}

func formatRunResult(sessionID string, result *service.RunResult) string {
	var b strings.Builder

	configName := ""
	if result.GameState != nil {
		configName = result.GameState.ConfigName
	}
	b.WriteString(fmt.Sprintf("Session: %s • Board: %s\n", sessionID, configName))

	// Run summary
	b.WriteString(fmt.Sprintf("Executed %d/%d commands\n", result.CommandsExecuted, result.RequestedCommands))
	if result.StoppedReason != "" {
		b.WriteString(fmt.Sprintf("Stopped: %s\n", result.StoppedReason))
	}
	if result.StopReasonCode == "invalid_sequence" {
		b.WriteString("The sequence was rejected as a whole; nothing was executed.\n")
		return b.String()
	}

	// Steps of this run
	if len(result.Steps) > 0 {
		b.WriteString("\nSteps (this run):\n")
		for _, s := range result.Steps {
			b.WriteString(fmt.Sprintf("%d. %s (%d,%d)→(%d,%d) heading=%s status=%s\n",
				s.Idx+1, s.Command, s.From.X, s.From.Y, s.To.X, s.To.Y, s.Heading, s.Status))
		}
	}

	// Route summary
	b.WriteString(fmt.Sprintf("\nRoute: (%d,%d) %s → (%d,%d) %s\n",
		result.StartPos.X, result.StartPos.Y, result.StartHeading,
		result.EndPos.X, result.EndPos.Y, result.EndHeading))
	b.WriteString(fmt.Sprintf("Final status: %s\n", result.Status))
	if result.Status != engine.Safe {
		b.WriteString(fmt.Sprintf("Distance to exit: %d\n", result.DistanceToExit))
	}

	// Events
	if len(result.Events) > 0 {
		b.WriteString("\nEvents:\n")
		for _, event := range result.Events {
			b.WriteString(fmt.Sprintf("- %s: %s\n", event.Type, event.Message))
		}
	}

	// Board rendering of the final position
	if len(result.Board) > 0 {
		b.WriteString("\nBoard:\n")
		for _, row := range result.Board {
			b.WriteString(row)
			b.WriteString("\n")
		}
	}

	if result.Message != "" {
		b.WriteString(fmt.Sprintf("\nMessage: %s\n", result.Message))
	}

	return b.String()
}

func formatHistory(history *service.HistoryResponse) string {
	result := fmt.Sprintf("Command History (Page %d/%d) — Total (cumulative): %d\n\n",
		history.Page, history.TotalPages, history.TotalCommands)

	for _, entry := range history.Commands {
		result += fmt.Sprintf("%d. %s (%d,%d)→(%d,%d) %s [%s]\n",
			entry.Number, entry.Command,
			entry.From.X, entry.From.Y, entry.To.X, entry.To.Y,
			entry.Heading, entry.Status)
	}

	return result
}

func formatCurrentSegment(state *engine.GameState) string {
	if state == nil {
		return "Current Segment: unavailable"
	}
	commands := state.CurrentCommands
	total := state.CurrentCommandCount
	header := fmt.Sprintf("Current Playthrough Segment — Commands: %d\n\n", total)
	if len(commands) == 0 {
		return header + "(no commands in current playthrough)"
	}
	var b strings.Builder
	b.WriteString(header)
	for i, entry := range commands {
		// i is zero-based within the segment
		b.WriteString(fmt.Sprintf("%d. %s (%d,%d)→(%d,%d) %s [%s]\n",
			i+1, entry.Command,
			entry.From.X, entry.From.Y, entry.To.X, entry.To.Y,
			entry.Heading, entry.Status))
	}
	return b.String()
}
