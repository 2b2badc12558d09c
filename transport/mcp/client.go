package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/wricardo/quoridor/game/engine"
	"github.com/wricardo/quoridor/game/render"
	"github.com/wricardo/quoridor/game/service"
)

const (
	serverName    = "quoridor"
	serverVersion = "1.0.0"
)

// Client exposes the Quoridor REST API as MCP tools.
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates an MCP client that proxies tool calls to the API at baseURL.
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
	c.initMCPServer()
	return c
}

// GetMCPServer returns the underlying MCP server.
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// ServeStdio runs the MCP server over stdin/stdout until the input closes.
func (c *Client) ServeStdio() error {
	return server.ServeStdio(c.mcpServer)
}

func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		serverName,
		serverVersion,
		server.WithToolCapabilities(true),
		server.WithInstructions(instructions),
	)
	c.registerTools()
}

const instructions = `Quoridor for two players on a rectangular board.

Create a session first with create_session and pass the returned session_id to every other tool.
P1 starts on the top row and wins by reaching the bottom row. P2 starts on the bottom row and wins by reaching the top row.
On each turn the player to move either moves their pawn (move) or places a wall (place_wall).
Call legal_moves to see the reachable cells and both players' shortest path lengths before deciding.
Call game_instructions for the full rules.`

func (c *Client) registerTools() {
	sessionIDProp := map[string]interface{}{
		"type":        "string",
		"description": "Session ID returned by create_session",
	}
	rowProp := map[string]interface{}{
		"type":        "integer",
		"description": "Zero-based row, 0 is the top row",
	}
	colProp := map[string]interface{}{
		"type":        "integer",
		"description": "Zero-based column, 0 is the leftmost column",
	}
	intentProp := map[string]interface{}{
		"type":        "string",
		"description": "Optional note on why this action was chosen; echoed back in the result",
	}

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new Quoridor game session. Use list_configs to see board variants.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"config_id": map[string]interface{}{
					"type":        "string",
					"description": "Board configuration ID (default: classic)",
				},
			},
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_state",
		Description: "Get the board, pawn positions, wall counts and whose turn it is",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProp,
			},
			Required: []string{"session_id"},
		},
	}, c.handleGameState)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "move",
		Description: "Move the current player's pawn to the target cell. Jumps are given as the landing cell.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProp,
				"row":        rowProp,
				"col":        colProp,
				"intent":     intentProp,
			},
			Required: []string{"session_id", "row", "col"},
		},
	}, c.handleMove)

	c.mcpServer.AddTool(mcp.Tool{
		Name: "place_wall",
		Description: "Place a two-segment wall for the current player. A horizontal wall anchored at (r,c) " +
			"blocks movement between rows r and r+1 for columns c and c+1. A vertical wall anchored at (r,c) " +
			"blocks movement between columns c and c+1 for rows r and r+1.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProp,
				"orientation": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"h", "v"},
					"description": "h for horizontal, v for vertical",
				},
				"row":    rowProp,
				"col":    colProp,
				"intent": intentProp,
			},
			Required: []string{"session_id", "orientation", "row", "col"},
		},
	}, c.handlePlaceWall)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "legal_moves",
		Description: "List the cells the current player may move to, wall counts and shortest path lengths",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProp,
			},
			Required: []string{"session_id"},
		},
	}, c.handleLegalMoves)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "render_board",
		Description: "Render the board as text",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProp,
				"ascii": map[string]interface{}{
					"type":        "boolean",
					"description": "Use plain ASCII characters instead of box drawing (default: false)",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleRenderBoard)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "reset_game",
		Description: "Reset the session to a fresh game on the same board",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProp,
			},
			Required: []string{"session_id"},
		},
	}, c.handleReset)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "move_history",
		Description: "Get the accepted actions of a session with pagination",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProp,
				"page": map[string]interface{}{
					"type":        "integer",
					"description": "Page number (default: 1)",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Entries per page (default: 20)",
				},
				"order": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"asc", "desc"},
					"description": "Sort order (default: desc)",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleHistory)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List active game sessions",
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
				"session_id": sessionIDProp,
			},
			Required: []string{"session_id"},
		},
	}, c.handleGetSession)

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
		Description: "Get the complete Quoridor rules",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleGameInstructions)
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	body := map[string]string{}
	if id, ok := args["config_id"].(string); ok && id != "" {
		body["config_id"] = id
	}

	var info service.SessionInfo
	if err := c.apiCall(ctx, "POST", "/api/sessions", body, &info); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSessionInfo(&info, "Session created")), nil
}

func (c *Client) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, errResult := requireSessionID(request)
	if errResult != nil {
		return errResult, nil
	}

	var state engine.GameState
	if err := c.apiCall(ctx, "GET", sessionPath(sessionID, "state"), nil, &state); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatGameState(&state)), nil
}

func (c *Client) handleMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, errResult := requireSessionID(request)
	if errResult != nil {
		return errResult, nil
	}
	args := arguments(request)
	row, okRow := intArg(args, "row")
	col, okCol := intArg(args, "col")
	if !okRow || !okCol {
		return mcp.NewToolResultError("row and col are required integers"), nil
	}

	var result service.ActionResult
	body := map[string]int{"row": row, "col": col}
	if err := c.apiCall(ctx, "POST", sessionPath(sessionID, "move"), body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatActionResult(&result, stringArg(args, "intent"))), nil
}

func (c *Client) handlePlaceWall(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, errResult := requireSessionID(request)
	if errResult != nil {
		return errResult, nil
	}
	args := arguments(request)
	orientation, err := engine.ParseOrientation(stringArg(args, "orientation"))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	row, okRow := intArg(args, "row")
	col, okCol := intArg(args, "col")
	if !okRow || !okCol {
		return mcp.NewToolResultError("row and col are required integers"), nil
	}

	var result service.ActionResult
	body := map[string]interface{}{"orientation": string(orientation), "row": row, "col": col}
	if err := c.apiCall(ctx, "POST", sessionPath(sessionID, "wall"), body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatActionResult(&result, stringArg(args, "intent"))), nil
}

func (c *Client) handleLegalMoves(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, errResult := requireSessionID(request)
	if errResult != nil {
		return errResult, nil
	}

	var moves service.LegalMoves
	if err := c.apiCall(ctx, "GET", sessionPath(sessionID, "legal-moves"), nil, &moves); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatLegalMoves(&moves)), nil
}

func (c *Client) handleRenderBoard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, errResult := requireSessionID(request)
	if errResult != nil {
		return errResult, nil
	}

	path := sessionPath(sessionID, "board")
	if ascii, _ := arguments(request)["ascii"].(bool); ascii {
		path += "?ascii=true"
	}

	board, err := c.apiText(ctx, path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(board), nil
}

func (c *Client) handleReset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, errResult := requireSessionID(request)
	if errResult != nil {
		return errResult, nil
	}

	var resp struct {
		Message string            `json:"message"`
		State   *engine.GameState `json:"state"`
	}
	if err := c.apiCall(ctx, "POST", sessionPath(sessionID, "reset"), nil, &resp); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(resp.Message + "\n\n" + formatGameState(resp.State)), nil
}

func (c *Client) handleHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, errResult := requireSessionID(request)
	if errResult != nil {
		return errResult, nil
	}
	args := arguments(request)

	query := url.Values{}
	if page, ok := intArg(args, "page"); ok {
		query.Set("page", fmt.Sprint(page))
	}
	if limit, ok := intArg(args, "limit"); ok {
		query.Set("limit", fmt.Sprint(limit))
	}
	if order := stringArg(args, "order"); order != "" {
		query.Set("order", order)
	}
	path := sessionPath(sessionID, "history")
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var history service.HistoryResponse
	if err := c.apiCall(ctx, "GET", path, nil, &history); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatHistory(&history)), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var resp struct {
		Count    int                    `json:"count"`
		Sessions []*service.SessionInfo `json:"sessions"`
	}
	if err := c.apiCall(ctx, "GET", "/api/sessions", nil, &resp); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if len(resp.Sessions) == 0 {
		return mcp.NewToolResultText("No active sessions"), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Active sessions (%d):\n", resp.Count)
	for _, s := range resp.Sessions {
		status := "in progress"
		if s.GameOver {
			status = "won by " + s.Winner
		}
		moveNumber := 0
		if s.GameState != nil {
			moveNumber = s.GameState.MoveNumber
		}
		fmt.Fprintf(&sb, "  %s  config=%s  moves=%d  %s\n", s.ID, s.ConfigName, moveNumber, status)
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, errResult := requireSessionID(request)
	if errResult != nil {
		return errResult, nil
	}

	var info service.SessionInfo
	if err := c.apiCall(ctx, "GET", "/api/sessions/"+url.PathEscape(sessionID), nil, &info); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSessionInfo(&info, "Session")), nil
}

func (c *Client) handleListConfigs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var configs []service.ConfigInfo
	if err := c.apiCall(ctx, "GET", "/api/configs", nil, &configs); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if len(configs) == 0 {
		return mcp.NewToolResultText("No configurations available"), nil
	}

	var sb strings.Builder
	sb.WriteString("Available configurations:\n")
	for _, cfg := range configs {
		fmt.Fprintf(&sb, "  %s: %dx%d, %d walls each. %s\n", cfg.ConfigID, cfg.Rows, cfg.Cols, cfg.WallsPerPlayer, cfg.Description)
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(rulesText), nil
}

const rulesText = `QUORIDOR RULES

Board
  The board has R rows and C columns, addressed as (row, col) from (0,0) at the top left.
  P1 starts at (0, C/2) and wins on reaching any cell of row R-1.
  P2 starts at (R-1, C/2) and wins on reaching any cell of row 0.
  P1 moves first. Players alternate; every accepted action passes the turn.

Moving
  A pawn steps one cell up, down, left or right unless a wall lies between the cells.
  If the opponent stands on that neighbouring cell, the pawn jumps straight over it instead,
  provided no wall or board edge is behind the opponent.
  When the straight jump is blocked, the pawn may step diagonally to any open neighbour of the opponent.
  A pawn can never land on the opponent.

Walls
  Each player has a fixed stock of walls. A wall is two segments long.
  "wall h r c" blocks (r,c)-(r+1,c) and (r,c+1)-(r+1,c+1); needs 0 <= r < R-1 and 0 <= c < C-1.
  "wall v r c" blocks (r,c)-(r,c+1) and (r+1,c)-(r+1,c+1); needs 0 <= r < R-1 and 0 <= c < C-1.
  A wall may not share a segment with an existing wall of the same orientation.
  A wall may never leave either player without a path to their goal row.

Rejections
  Illegal actions are rejected with a code (out_of_bounds, occupied_target, illegal_adjacency,
  no_walls_remaining, wall_overlap, path_blocked, game_over) and the turn does not change.`

// API helpers

func (c *Client) apiCall(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return apiError(resp)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

func (c *Client) apiText(ctx context.Context, path string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+path, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", apiError(resp)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	return string(data), nil
}

func apiError(resp *http.Response) error {
	var errResp struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Error != "" {
		return fmt.Errorf("%s", errResp.Error)
	}
	return fmt.Errorf("API error: %d", resp.StatusCode)
}

func sessionPath(sessionID, action string) string {
	return "/api/sessions/" + url.PathEscape(sessionID) + "/" + action
}

// Argument helpers

func arguments(request mcp.CallToolRequest) map[string]interface{} {
	args, _ := request.Params.Arguments.(map[string]interface{})
	if args == nil {
		return map[string]interface{}{}
	}
	return args
}

func requireSessionID(request mcp.CallToolRequest) (string, *mcp.CallToolResult) {
	id := stringArg(arguments(request), "session_id")
	if id == "" {
		return "", mcp.NewToolResultError("session_id is required")
	}
	return id, nil
}

func stringArg(args map[string]interface{}, key string) string {
	s, _ := args[key].(string)
	return strings.TrimSpace(s)
}

// intArg accepts JSON numbers, which decode as float64, and numeric strings.
func intArg(args map[string]interface{}, key string) (int, bool) {
	switch v := args[key].(type) {
	case float64:
		if v != float64(int(v)) {
			return 0, false
		}
		return int(v), true
	case int:
		return v, true
	case string:
		var n int
		if _, err := fmt.Sscanf(v, "%d", &n); err == nil {
			return n, true
		}
	}
	return 0, false
}

// Formatting helpers

func formatSessionInfo(info *service.SessionInfo, title string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %s\n", title, info.ID)
	fmt.Fprintf(&sb, "Config: %s\n", info.ConfigName)
	if info.GameConfig != nil {
		fmt.Fprintf(&sb, "Board: %dx%d, %d walls each\n", info.GameConfig.Rows, info.GameConfig.Cols, info.GameConfig.WallsPerPlayer)
	}
	if info.GameState != nil {
		sb.WriteString("\n")
		sb.WriteString(formatGameState(info.GameState))
	}
	return sb.String()
}

func formatGameState(state *engine.GameState) string {
	if state == nil {
		return "No game state"
	}

	var sb strings.Builder
	sb.WriteString(render.Render(state, render.Options{ASCII: true}))
	fmt.Fprintf(&sb, "\nP1 at %s, P2 at %s, move %d\n", state.P1.Position, state.P2.Position, state.MoveNumber)

	if winner, ok := engine.Winner(state); ok {
		fmt.Fprintf(&sb, "GAME OVER: %s wins\n", winner)
	} else {
		fmt.Fprintf(&sb, "%s to move\n", state.Turn)
	}
	return sb.String()
}

func formatActionResult(result *service.ActionResult, intent string) string {
	var sb strings.Builder
	if result.Success {
		fmt.Fprintf(&sb, "OK: %s\n", result.Message)
	} else {
		fmt.Fprintf(&sb, "REJECTED [%s]: %s\n", result.Code, result.Reason)
	}
	if intent != "" {
		fmt.Fprintf(&sb, "Intent: %s\n", intent)
	}
	if result.GameOver {
		fmt.Fprintf(&sb, "GAME OVER: %s wins\n", result.Winner)
	}
	if len(result.LegalMoves) > 0 {
		fmt.Fprintf(&sb, "Next legal moves: %s\n", formatPositions(result.LegalMoves))
	}
	if result.GameState != nil {
		sb.WriteString("\n")
		sb.WriteString(formatGameState(result.GameState))
	}
	return sb.String()
}

func formatLegalMoves(moves *service.LegalMoves) string {
	if moves.GameOver {
		return "Game is over; no legal moves"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s to move\n", moves.Player)
	fmt.Fprintf(&sb, "Moves: %s\n", formatPositions(moves.Moves))
	fmt.Fprintf(&sb, "Walls left: %d\n", moves.WallsLeft)
	fmt.Fprintf(&sb, "Shortest path: %d, opponent: %d\n", moves.ShortestPath, moves.OpponentPath)
	if moves.WallsLeft > 0 {
		fmt.Fprintf(&sb, "Legal walls: %d horizontal, %d vertical\n", len(moves.HorizontalWalls), len(moves.VerticalWalls))
	}
	return sb.String()
}

func formatHistory(history *service.HistoryResponse) string {
	if history.TotalMoves == 0 {
		return "No moves yet"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "History (page %d of %d, %d moves):\n", history.Page, history.TotalPages, history.TotalMoves)
	for _, e := range history.Entries {
		fmt.Fprintf(&sb, "  %3d. %s %s\n", e.MoveNumber, e.Player, e.Notation)
	}
	if history.HasNext {
		fmt.Fprintf(&sb, "More entries on page %d\n", history.Page+1)
	}
	return sb.String()
}

func formatPositions(ps []engine.Position) string {
	if len(ps) == 0 {
		return "none"
	}
	parts := make([]string, len(ps))
	for i, p := range ps {
		parts[i] = p.String()
	}
	return strings.Join(parts, " ")
}
