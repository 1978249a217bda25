package service

import (
	"time"

	"github.com/wricardo/mcp-training/memorygame/game/config"
	"github.com/wricardo/mcp-training/memorygame/game/engine"
	"github.com/wricardo/mcp-training/memorygame/game/media"
)

// CreateSessionRequest selects the preset and overrides for a new game
type CreateSessionRequest struct {
	ConfigID    string                `json:"config_id,omitempty"`
	Pairs       int                   `json:"pairs,omitempty"`        // 0 uses the preset
	PlayerCount int                   `json:"player_count,omitempty"` // 0 uses the preset
	Players     []config.PlayerConfig `json:"players,omitempty"`
	Seed        *int64                `json:"seed,omitempty"` // nil draws a random seed
}

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string             `json:"id"`
	ConfigName     string             `json:"config_name"`
	CreatedAt      time.Time          `json:"created_at"`
	LastAccessedAt time.Time          `json:"last_accessed_at"`
	Seed           int64              `json:"seed"`
	GameState      *engine.Snapshot   `json:"game_state"`
	GameConfig     *config.GameConfig `json:"game_config"`
}

// TurnResult contains the result of a flip or acknowledge
type TurnResult struct {
	Success bool             `json:"success"`
	State   *engine.Snapshot `json:"game_state"`
	Message string           `json:"message"`
	Events  []GameEvent      `json:"events"`
	Sound   media.Ref        `json:"sound,omitempty"` // played on a match
}

// GameEvent represents an event that occurred during gameplay
type GameEvent struct {
	Type      string             `json:"type"` // "flipped", "match", "mismatch", "turn_passed", "game_result", "restart"
	Message   string             `json:"message"`
	Timestamp time.Time          `json:"timestamp"`
	CardIDs   []int              `json:"card_ids,omitempty"`
	PlayerID  string             `json:"player_id,omitempty"`
	Score     int                `json:"score,omitempty"`
	Result    *engine.GameResult `json:"result,omitempty"`
}

// GalleryEntry is a matched face with the player who found it
type GalleryEntry struct {
	Face       media.Ref `json:"face"`
	PlayerID   string    `json:"player_id"`
	PlayerName string    `json:"player_name"`
	CardIDs    [2]int    `json:"card_ids"`
	Turn       int       `json:"turn"`
}
