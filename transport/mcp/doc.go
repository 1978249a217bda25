// Package mcp provides the Model Context Protocol interface for the memory game.
//
// Client registers MCP tools and proxies every call to the REST API, so an
// agent and a browser can share one session.
//
// MCP Tools:
//   - create_session: Create a session (config_id, pairs, player_count, player_names, seed)
//   - list_sessions, get_session: Inspect sessions
//   - game_state: Board, scores and whose turn it is
//   - flip: Flip one card by id
//   - acknowledge: Hide a mismatched pair and pass the turn
//   - restart_game: Deal a new deck for the same players
//   - game_result: Final ranking of a completed game
//   - gallery: Matched faces with the player who found each
//   - list_configs: Available presets
//   - game_instructions: Rules and board legend
//
// Numeric arguments are coerced with spf13/cast, so card ids sent as JSON
// numbers or strings both work.
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//
//	// Stdio mode
//	server.ServeStdio(client.GetMCPServer())
//
//	// HTTP mode
//	response := client.GetMCPServer().HandleMessage(ctx, body)
package mcp
