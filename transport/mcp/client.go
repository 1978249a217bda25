package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cast"

	"github.com/wricardo/mcp-training/memorygame/game/config"
	"github.com/wricardo/mcp-training/memorygame/game/engine"
	"github.com/wricardo/mcp-training/memorygame/game/service"
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
		baseURL: strings.TrimSuffix(baseURL, "/"),
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
		"Memory Match Game",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Memory Match Game - MCP Interface

This is a thin client that proxies all requests to the REST API server.

GAME OBJECTIVE:
Find every pair of matching cards. Players take turns flipping two cards.
A match scores and keeps the turn, a mismatch must be acknowledged and passes the turn.

AVAILABLE TOOLS:
- create_session: Create new game session
- list_sessions: List all active sessions
- get_session: Get session details
- game_state: Show the board
- flip: Flip one card by id - requires intent explanation
- acknowledge: Hide a mismatched pair and pass the turn
- restart_game: Deal a new deck for the same players
- game_result: Final ranking once every pair is matched
- gallery: Matched faces and who found them
- list_configs: List available presets
- game_instructions: Get the rules

NOTE: The 'intent' parameter on flip serves as rubber duck debugging - explain your reasoning!`),
	)

	c.registerTools()
}

// sessionOnly is the schema shared by tools that take just a session id
func sessionOnly() mcp.ToolInputSchema {
	return mcp.ToolInputSchema{
		Type: "object",
		Properties: map[string]interface{}{
			"session_id": map[string]interface{}{
				"type":        "string",
				"description": "Session ID",
			},
		},
		Required: []string{"session_id"},
	}
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new game session with optional preset and overrides",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"config_id": map[string]interface{}{
					"type":        "string",
					"description": "Preset to use (optional, see list_configs)",
				},
				"pairs": map[string]interface{}{
					"type":        "integer",
					"description": "Number of pairs to deal (optional)",
				},
				"player_count": map[string]interface{}{
					"type":        "integer",
					"description": "Number of players, 1 to 6 (optional)",
				},
				"player_names": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "string"},
					"description": "Player names in turn order (optional)",
				},
				"seed": map[string]interface{}{
					"type":        "integer",
					"description": "Shuffle seed for a reproducible deck (optional)",
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
		InputSchema: sessionOnly(),
	}, c.handleGetSession)

	// Game operations
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_state",
		Description: "Get the current board, scores and whose turn it is",
		InputSchema: sessionOnly(),
	}, c.handleGameState)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "flip",
		Description: "Flip a face-down card",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"card_id": map[string]interface{}{
					"type":        "integer",
					"description": "Card id as shown on the board (0-based)",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of why you chose this card (serves as a rubber duck to help explain your reasoning)",
				},
			},
			Required: []string{"session_id", "card_id"},
		},
	}, c.handleFlip)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "acknowledge",
		Description: "Hide a mismatched pair and pass the turn to the next player",
		InputSchema: sessionOnly(),
	}, c.handleAcknowledge)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "restart_game",
		Description: "Deal a new deck for the same preset and players",
		InputSchema: sessionOnly(),
	}, c.handleRestart)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_result",
		Description: "Get the final ranking of a completed game",
		InputSchema: sessionOnly(),
	}, c.handleGameResult)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "gallery",
		Description: "List matched faces and the player who found each one",
		InputSchema: sessionOnly(),
	}, c.handleGallery)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_configs",
		Description: "List available game presets",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListConfigs)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get game instructions and rules",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleGameInstructions)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
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

// arguments returns the tool arguments, empty when none were sent
func arguments(request mcp.CallToolRequest) map[string]interface{} {
	args, _ := request.Params.Arguments.(map[string]interface{})
	return args
}

// sessionPath builds /api/sessions/{id}/suffix with the id escaped
func sessionPath(args map[string]interface{}, suffix string) (string, error) {
	sessionID := strings.TrimSpace(cast.ToString(args["session_id"]))
	if sessionID == "" {
		return "", fmt.Errorf("session_id is required")
	}
	p := "/api/sessions/" + url.PathEscape(sessionID)
	if suffix != "" {
		p += "/" + suffix
	}
	return p, nil
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)

	var req service.CreateSessionRequest
	req.ConfigID = cast.ToString(args["config_id"])
	if v, ok := args["pairs"]; ok {
		pairs, err := cast.ToIntE(v)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("pairs must be a number: %v", err)), nil
		}
		req.Pairs = pairs
	}
	if v, ok := args["player_count"]; ok {
		count, err := cast.ToIntE(v)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("player_count must be a number: %v", err)), nil
		}
		req.PlayerCount = count
	}
	for _, name := range cast.ToStringSlice(args["player_names"]) {
		req.Players = append(req.Players, config.PlayerConfig{Name: name})
	}
	if v, ok := args["seed"]; ok {
		seed, err := cast.ToInt64E(v)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("seed must be a number: %v", err)), nil
		}
		req.Seed = &seed
	}

	var session service.SessionInfo
	if err := c.apiCall(ctx, "POST", "/api/sessions", req, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created session: %s\nConfig: %s\nSeed: %d\n\n", session.ID, session.ConfigName, session.Seed)
	result += formatGameState(session.GameState)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}

	if err := c.apiCall(ctx, "GET", "/api/sessions", nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Active Sessions (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		progress := ""
		if s.GameState != nil {
			progress = fmt.Sprintf(", Pairs: %d/%d", s.GameState.MatchedPairs, s.GameState.TotalPairs)
		}
		result += fmt.Sprintf("- %s (Config: %s, Created: %s%s)\n",
			s.ID, s.ConfigName, s.CreatedAt.Format("15:04:05"), progress)
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	p, err := sessionPath(arguments(request), "")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var session service.SessionInfo
	if err := c.apiCall(ctx, "GET", p, nil, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSessionInfo(&session)), nil
}

func (c *Client) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	p, err := sessionPath(arguments(request), "state")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var state engine.Snapshot
	if err := c.apiCall(ctx, "GET", p, nil, &state); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatGameState(&state)), nil
}

func (c *Client) handleFlip(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	p, err := sessionPath(args, "flip")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	// Card ids arrive as float64 from JSON or as strings from some clients
	raw, ok := args["card_id"]
	if !ok {
		return mcp.NewToolResultError("card_id is required"), nil
	}
	cardID, err := cast.ToIntE(raw)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("card_id must be a number: %v", err)), nil
	}

	if intent := strings.TrimSpace(cast.ToString(args["intent"])); intent != "" {
		log.Printf("[MCP] flip %s card %d: %s", cast.ToString(args["session_id"]), cardID, intent)
	}

	var result service.TurnResult
	if err := c.apiCall(ctx, "POST", p, map[string]int{"card_id": cardID}, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatTurnResult(&result)), nil
}

func (c *Client) handleAcknowledge(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	p, err := sessionPath(arguments(request), "acknowledge")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var result service.TurnResult
	if err := c.apiCall(ctx, "POST", p, nil, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatTurnResult(&result)), nil
}

func (c *Client) handleRestart(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	p, err := sessionPath(arguments(request), "restart")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var response struct {
		Message string           `json:"message"`
		State   *engine.Snapshot `json:"state"`
	}
	if err := c.apiCall(ctx, "POST", p, nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("%s\n\n%s", response.Message, formatGameState(response.State))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGameResult(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	p, err := sessionPath(arguments(request), "result")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var result engine.GameResult
	if err := c.apiCall(ctx, "GET", p, nil, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatGameResult(&result)), nil
}

func (c *Client) handleGallery(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	p, err := sessionPath(arguments(request), "gallery")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var response struct {
		Count   int                    `json:"count"`
		Gallery []service.GalleryEntry `json:"gallery"`
	}
	if err := c.apiCall(ctx, "GET", p, nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if response.Count == 0 {
		return mcp.NewToolResultText("No pairs matched yet."), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Matched pairs (%d):\n\n", response.Count)
	for _, entry := range response.Gallery {
		fmt.Fprintf(&b, "- %s by %s (cards %d and %d, turn %d)\n",
			entry.Face, entry.PlayerName, entry.CardIDs[0], entry.CardIDs[1], entry.Turn)
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleListConfigs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var configs []config.Info
	if err := c.apiCall(ctx, "GET", "/api/configs", nil, &configs); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := "Available Configurations:\n\n"
	for _, cfg := range configs {
		pairs := "all images"
		if cfg.Pairs > 0 {
			pairs = fmt.Sprintf("%d", cfg.Pairs)
		}
		result += fmt.Sprintf("• %s (config_id: %s)\n  %s\n  Pairs: %s, Players: %d, Language: %s\n\n",
			cfg.Name, cfg.ConfigID, cfg.Description, pairs, cfg.PlayerCount, cfg.Language)
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instructions := `Memory Match Game - Instructions

GAME OBJECTIVE:
Match every pair of cards. The player with the most pairs wins; equal top scores share the win.

TURN SEQUENCE:
1. Flip a face-down card with flip(card_id).
2. Flip a second face-down card.
3. If both faces are equal the pair stays face up, you score, and you keep the turn.
4. If they differ the pair stays visible until someone calls acknowledge.
   Acknowledge turns both cards face down and passes the turn to the next player.

BOARD LEGEND:
• [ 7]      - face-down card with its id
• <a.png>   - face-up card showing its face
• ✓a.png    - matched card

RULES THE SERVER ENFORCES:
• Matched or face-up cards cannot be flipped.
• Nothing can be flipped while a mismatched pair waits for acknowledge.
• Rejected commands leave the game unchanged.

STRATEGY:
• Remember every face you have seen, including the other players' flips.
• Flip a card you have seen the partner of before trying unknown cards.
• Use game_state to see the board and gallery to review matched faces.`

	return mcp.NewToolResultText(instructions), nil
}

// Formatting helpers

func formatSessionInfo(session *service.SessionInfo) string {
	result := fmt.Sprintf("Session: %s\nConfig: %s\nCreated: %s\nLast accessed: %s\nSeed: %d\n\n",
		session.ID, session.ConfigName,
		session.CreatedAt.Format(time.RFC3339), session.LastAccessedAt.Format(time.RFC3339), session.Seed)
	return result + formatGameState(session.GameState)
}

// formatGameState renders the board as a grid plus the scoreboard
func formatGameState(state *engine.Snapshot) string {
	if state == nil {
		return "Game state unavailable"
	}

	var b strings.Builder
	b.WriteString(formatBoard(state))
	b.WriteString("\n")

	fmt.Fprintf(&b, "Pairs: %d/%d, Flips: %d, Attempts: %d\n",
		state.MatchedPairs, state.TotalPairs, state.Flips, state.Attempts)

	b.WriteString("Players:\n")
	for i, p := range state.Players {
		marker := " "
		if i == state.CurrentPlayer && !state.Complete {
			marker = "▶"
		}
		fmt.Fprintf(&b, "%s %s: %d\n", marker, p.Name, p.Score)
	}

	switch {
	case state.Complete:
		b.WriteString("\nGame complete. Use game_result for the ranking.\n")
	case state.Phase == engine.Resolving:
		b.WriteString("\nMismatch on the board. Call acknowledge to continue.\n")
	case state.Phase == engine.OneUp:
		b.WriteString("\nOne card up. Flip a second card.\n")
	}

	return b.String()
}

// formatBoard lays cards out using the snapshot's layout hint
func formatBoard(state *engine.Snapshot) string {
	cols := state.Layout.Cols
	if cols <= 0 {
		cols = len(state.Cards)
	}

	var b strings.Builder
	for i, card := range state.Cards {
		if i > 0 && i%cols == 0 {
			b.WriteString("\n")
		} else if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(cardLabel(card))
	}
	b.WriteString("\n")
	return b.String()
}

func cardLabel(card engine.CardView) string {
	switch card.State {
	case engine.FaceUp:
		return fmt.Sprintf("<%s>", path.Base(string(card.Face)))
	case engine.Matched:
		return "✓" + path.Base(string(card.Face))
	default:
		return fmt.Sprintf("[%2d]", card.ID)
	}
}

func formatTurnResult(result *service.TurnResult) string {
	var b strings.Builder
	for _, event := range result.Events {
		fmt.Fprintf(&b, "• %s\n", event.Message)
	}
	if result.Sound != "" {
		fmt.Fprintf(&b, "♪ %s\n", result.Sound)
	}
	b.WriteString("\n")
	b.WriteString(formatGameState(result.State))
	return b.String()
}

func formatGameResult(result *engine.GameResult) string {
	var b strings.Builder
	b.WriteString("Final ranking:\n")
	for _, r := range result.Rankings {
		fmt.Fprintf(&b, "%d. %s: %d\n", r.Rank, r.Name, r.Score)
	}
	fmt.Fprintf(&b, "\nTotal flips: %d, attempts: %d\n", result.TotalFlips, result.TotalAttempts)
	if len(result.Winners) > 1 {
		fmt.Fprintf(&b, "Tie between %d players\n", len(result.Winners))
	}
	return b.String()
}
