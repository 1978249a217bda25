// Package api provides HTTP REST API handlers for the memory game.
//
// Endpoints:
//
// Session Management:
//   - POST /api/sessions - Create new session ({config_id, pairs, player_count, players, seed})
//   - GET /api/sessions - List sessions (?sort=created|accessed&order=asc|desc&limit=n)
//   - GET /api/sessions/unified - Several sessions side by side (?sessionIds=a,b or ?configName=x)
//   - GET /api/sessions/{id} - Get specific session
//   - DELETE /api/sessions/{id} - Delete session
//
// Game Operations:
//   - GET /api/sessions/{id}/state - Current snapshot
//   - POST /api/sessions/{id}/flip - Flip a card ({card_id})
//   - POST /api/sessions/{id}/acknowledge - Hide a mismatched pair and pass the turn
//   - POST /api/sessions/{id}/restart - Deal a new deck for the same players
//   - GET /api/sessions/{id}/result - Final ranking, once every pair is matched
//   - GET /api/sessions/{id}/gallery - Matched faces with the player who found them
//
// Configuration:
//   - GET /api/configs - List available presets
//   - POST /api/configs - Save a preset
//   - GET /api/configs/{name} - Get a preset
//
// Other:
//   - GET /ws?session={id} - WebSocket updates and commands for a session
//   - GET /health - Health check
//
// Error Handling:
//
// Errors are returned as JSON with an appropriate status code:
//
//	{"error": "flip card 3: invalid operation: invalid card"}
//
// Unknown sessions and presets give 404, rejected flips and acknowledges
// give 409, and games that cannot be dealt (too few images, bad roster)
// give 422.
package api
