package service

import (
	"context"
	"time"

	"github.com/wricardo/mcp-training/memorygame/game/config"
	"github.com/wricardo/mcp-training/memorygame/game/engine"
	"github.com/wricardo/mcp-training/memorygame/game/media"
)

// GameService defines all game-related operations
type GameService interface {
	// Session Management
	CreateSession(ctx context.Context, req CreateSessionRequest) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Game Operations
	Flip(ctx context.Context, sessionID string, cardID int) (*TurnResult, error)
	Acknowledge(ctx context.Context, sessionID string) (*TurnResult, error)
	Restart(ctx context.Context, sessionID string) (*engine.Snapshot, error)

	// Game State
	GetGameState(ctx context.Context, sessionID string) (*engine.Snapshot, error)
	GetResult(ctx context.Context, sessionID string) (*engine.GameResult, error)
	GetGallery(ctx context.Context, sessionID string) ([]GalleryEntry, error)

	// Configuration
	ListConfigs(ctx context.Context) ([]*config.Info, error)
	LoadConfig(ctx context.Context, configName string) (*config.GameConfig, error)
	SaveConfig(ctx context.Context, configName string, cfg *config.GameConfig) error
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id string, game Game) (*Session, error)
	Get(id string) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
}

// ConfigManager handles game preset loading
type ConfigManager interface {
	LoadConfig(name string) (*config.GameConfig, error)
	ListConfigs() ([]*config.Info, error)
	GetDefault() *config.GameConfig
	SaveConfig(name string, cfg *config.GameConfig) error
}

// MediaDiscoverer finds the assets a preset points at
type MediaDiscoverer func(sources ...media.Source) (*media.Pool, error)

// Game is everything needed to play and restart one game
type Game struct {
	ConfigID string
	Config   *config.GameConfig
	Pool     *media.Pool
	Players  []engine.Player
	Pairs    int
	Seed     int64
	Seeded   bool
	Restarts int
	Engine   *engine.GameEngine
}

// Session represents an active game session
type Session struct {
	ID string
	Game
	CreatedAt      time.Time
	LastAccessedAt time.Time
}
