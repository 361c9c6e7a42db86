// Command bruteforcer solves turtle escape boards against a running game
// server. It fetches the board configuration, computes the shortest command
// sequence with a breadth-first search over (position, heading) states, and
// submits it through the run endpoint.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"
)

type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type GameState struct {
	Turtle struct {
		Position Position `json:"position"`
		Heading  string   `json:"heading"`
	} `json:"turtle"`
	Status     string `json:"status"`
	GameOver   bool   `json:"game_over"`
	Message    string `json:"message"`
	ConfigName string `json:"config_name"`
}

type SessionResponse struct {
	ID         string     `json:"id"`
	ConfigName string     `json:"config_name"`
	GameState  *GameState `json:"game_state"`
	GameConfig *Board     `json:"game_config"`
}

type RunResponse struct {
	Success          bool       `json:"success"`
	Status           string     `json:"status"`
	CommandsExecuted int        `json:"commands_executed"`
	StopReasonCode   string     `json:"stop_reason_code"`
	EndPos           Position   `json:"end_pos"`
	GameState        *GameState `json:"game_state"`
	Message          string     `json:"message"`
	Board            []string   `json:"board"`
}

type Client struct {
	baseURL   string
	sessionID string
	client    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *Client) CreateSession(configID string) (*SessionResponse, error) {
	var reqBody []byte
	var err error

	if configID != "" {
		reqBody, err = json.Marshal(map[string]string{"config_id": configID})
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
	}

	resp, err := c.client.Post(c.baseURL+"/api/sessions", "application/json", bytes.NewBuffer(reqBody))
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("create session failed: %s - %s", resp.Status, string(body))
	}

	var session SessionResponse
	if err := json.Unmarshal(body, &session); err != nil {
		return nil, fmt.Errorf("parse session response: %w", err)
	}

	c.sessionID = session.ID
	return &session, nil
}

func (c *Client) GetSession() (*SessionResponse, error) {
	url := fmt.Sprintf("%s/api/sessions/%s", c.baseURL, c.sessionID)
	resp, err := c.client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	defer resp.Body.Close()

	var session SessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, fmt.Errorf("parse session: %w", err)
	}

	return &session, nil
}

func (c *Client) RunSequence(sequence string) (*RunResponse, error) {
	body, err := json.Marshal(map[string]string{"sequence": sequence})
	if err != nil {
		return nil, fmt.Errorf("marshal run request: %w", err)
	}

	url := fmt.Sprintf("%s/api/sessions/%s/run", c.baseURL, c.sessionID)
	resp, err := c.client.Post(url, "application/json", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("run sequence: %w", err)
	}
	defer resp.Body.Close()

	var runResp RunResponse
	if err := json.NewDecoder(resp.Body).Decode(&runResp); err != nil {
		return nil, fmt.Errorf("parse run response: %w", err)
	}

	return &runResp, nil
}

func main() {
	serverURL := flag.String("url", "http://localhost:8080", "Game server URL")
	configID := flag.String("config", "", "Board configuration ID (classic, open_field, corridor)")
	continueSession := flag.String("continue", "", "Reuse an existing session by ID")
	dryRun := flag.Bool("dry-run", false, "Solve and print the sequence without submitting it")
	flag.Parse()

	log.Printf("Connecting to game server at %s", *serverURL)
	client := NewClient(*serverURL)

	var session *SessionResponse
	var err error

	if *continueSession != "" {
		client.sessionID = *continueSession
		log.Printf("Reusing session: %s", client.sessionID)
		session, err = client.GetSession()
		if err != nil {
			log.Fatalf("Failed to load session: %v", err)
		}
	} else {
		session, err = client.CreateSession(*configID)
		if err != nil {
			log.Fatalf("Failed to create session: %v", err)
		}
		log.Printf("Session created: %s", client.sessionID)
	}

	board := session.GameConfig
	if board == nil {
		log.Fatalf("Session %s carries no board configuration", client.sessionID)
	}
	log.Printf("Board %q: %dx%d, start (%d,%d) facing %s, exit (%d,%d), %d mines",
		board.Name, board.Columns, board.Rows,
		board.Start.X, board.Start.Y, board.StartHeading,
		board.Exit.X, board.Exit.Y, len(board.Mines))

	sequence, err := Solve(board)
	if err != nil {
		log.Fatalf("No solution: %v", err)
	}
	log.Printf("Shortest sequence (%d commands): %s", len(sequence), sequence)

	// Sanity check before submitting
	endPos, status := Simulate(board, sequence)
	if status != "safe" {
		log.Fatalf("Solver output fails local replay: status=%s at (%d,%d)", status, endPos.X, endPos.Y)
	}

	if *dryRun {
		fmt.Println(sequence)
		return
	}

	result, err := client.RunSequence(sequence)
	if err != nil {
		log.Fatalf("Failed to run sequence: %v", err)
	}

	log.Printf("Server executed %d commands, status=%s, end=(%d,%d)",
		result.CommandsExecuted, result.Status, result.EndPos.X, result.EndPos.Y)
	for _, row := range result.Board {
		log.Print(row)
	}

	if result.Status != "safe" {
		log.Printf("Server disagreed with the solver (stop=%s)", result.StopReasonCode)
		os.Exit(1)
	}

	log.Printf("ESCAPED in %d commands. Session: %s", result.CommandsExecuted, client.sessionID)
}
