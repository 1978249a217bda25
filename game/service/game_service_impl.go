package service

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	mathrand "math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/wricardo/mcp-training/memorygame/game/config"
	"github.com/wricardo/mcp-training/memorygame/game/engine"
	"github.com/wricardo/mcp-training/memorygame/game/media"
)

var (
	ErrSessionNotFound   = errors.New("session not found")
	ErrResultUnavailable = errors.New("game is not complete")
)

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
	discover MediaDiscoverer
	mu       sync.RWMutex
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager, configs ConfigManager) GameService {
	return NewGameServiceWithDiscoverer(sessions, configs, media.Discover)
}

// NewGameServiceWithDiscoverer creates a service that finds media with discover
func NewGameServiceWithDiscoverer(sessions SessionManager, configs ConfigManager, discover MediaDiscoverer) GameService {
	return &gameServiceImpl{
		sessions: sessions,
		configs:  configs,
		discover: discover,
	}
}

// getConfigID returns the config_id for a given config name, used for consistent API responses
func (s *gameServiceImpl) getConfigID(configName string) string {
	availableConfigs, err := s.configs.ListConfigs()
	if err == nil {
		for _, cfg := range availableConfigs {
			if cfg.Name == configName {
				return cfg.ConfigID
			}
		}
	}
	if configName == "" {
		return "default"
	}
	return configName
}

// CreateSession resolves the preset, discovers its media and deals a new game
func (s *gameServiceImpl) CreateSession(ctx context.Context, req CreateSessionRequest) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	preset, configID, err := s.resolvePreset(req.ConfigID)
	if err != nil {
		return nil, err
	}

	pool, err := s.discover(preset.Sources()...)
	if err != nil {
		return nil, fmt.Errorf("failed to load media for %s: %w", configID, err)
	}

	images := pool.Count(media.KindImage)
	if req.Pairs > images {
		return nil, fmt.Errorf("%w: %d pairs requested but only %d images in %s",
			engine.ErrInsufficientAssets, req.Pairs, images, configID)
	}

	players, err := preset.Roster(req.Players, req.PlayerCount, pool.Avatars())
	if err != nil {
		return nil, err
	}

	game := Game{
		ConfigID: configID,
		Config:   preset,
		Pool:     pool,
		Players:  players,
		Pairs:    preset.PairCount(req.Pairs, images),
	}

	if req.Seed != nil {
		game.Seed, game.Seeded = *req.Seed, true
	} else if game.Seed, err = newSeed(); err != nil {
		return nil, err
	}

	game.Engine, err = newEngine(&game, game.Seed)
	if err != nil {
		return nil, err
	}

	// Let session manager generate a proper 4-character ID
	sess, err := s.sessions.Create("", game)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return sessionInfo(sess), nil
}

// resolvePreset loads the named preset or the default one
func (s *gameServiceImpl) resolvePreset(configID string) (*config.GameConfig, string, error) {
	if configID == "" {
		preset := s.configs.GetDefault()
		if preset == nil {
			return nil, "", fmt.Errorf("%w: no default config available", engine.ErrConfiguration)
		}
		return withDefaults(preset), s.getConfigID(preset.Name), nil
	}

	preset, err := s.configs.LoadConfig(configID)
	if err != nil {
		// Provide helpful error message with available options
		if errors.Is(err, config.ErrConfigNotFound) {
			availableConfigs, listErr := s.configs.ListConfigs()
			if listErr == nil && len(availableConfigs) > 0 {
				var configIDs []string
				for _, cfg := range availableConfigs {
					configIDs = append(configIDs, cfg.ConfigID)
				}
				return nil, "", fmt.Errorf("%w: config '%s' not found. Available configs: %v", err, configID, configIDs)
			}
			return nil, "", fmt.Errorf("%w: config '%s' not found. Use /api/configs to list available configurations", err, configID)
		}
		return nil, "", fmt.Errorf("failed to load config %s: %w", configID, err)
	}

	return withDefaults(preset), configID, nil
}

// withDefaults copies a cached preset and fills its blank fields
func withDefaults(preset *config.GameConfig) *config.GameConfig {
	out := preset.Clone()
	config.ApplyDefaults(out)
	return out
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	return sessionInfo(sess), nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, sessionInfo(sess))
	}

	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.sessions.Delete(sessionID); err != nil {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}
	return nil
}

// Flip reveals a card for the current player
func (s *gameServiceImpl) Flip(ctx context.Context, sessionID string, cardID int) (*TurnResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	events, err := sess.Engine.Flip(cardID)
	if err != nil {
		return nil, fmt.Errorf("flip card %d: %w", cardID, err)
	}

	return s.turnResult(sess, events), nil
}

// Acknowledge hides a mismatched pair and passes the turn
func (s *gameServiceImpl) Acknowledge(ctx context.Context, sessionID string) (*TurnResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	events, err := sess.Engine.Acknowledge()
	if err != nil {
		return nil, fmt.Errorf("acknowledge: %w", err)
	}

	return s.turnResult(sess, events), nil
}

// Restart deals a new deck for the same preset, media and players.
// Seeded sessions stay reproducible: restart n uses seed+n.
func (s *gameServiceImpl) Restart(ctx context.Context, sessionID string) (*engine.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	seed := sess.Seed + int64(sess.Restarts+1)
	if !sess.Seeded {
		if seed, err = newSeed(); err != nil {
			return nil, err
		}
	}

	eng, err := newEngine(&sess.Game, seed)
	if err != nil {
		return nil, err
	}

	sess.Engine = eng
	sess.Restarts++
	if !sess.Seeded {
		sess.Seed = seed
	}

	state := eng.CurrentState()
	return &state, nil
}

// GetGameState returns the current snapshot
func (s *gameServiceImpl) GetGameState(ctx context.Context, sessionID string) (*engine.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	state := sess.Engine.CurrentState()
	return &state, nil
}

// GetResult returns the final ranking once every pair is matched
func (s *gameServiceImpl) GetResult(ctx context.Context, sessionID string) (*engine.GameResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	result, ok := sess.Engine.Result()
	if !ok {
		state := sess.Engine.CurrentState()
		return nil, fmt.Errorf("%w: %d of %d pairs matched", ErrResultUnavailable, state.MatchedPairs, state.TotalPairs)
	}
	return result, nil
}

// GetGallery returns the matched faces with the players who found them
func (s *gameServiceImpl) GetGallery(ctx context.Context, sessionID string) ([]GalleryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	names := playerNames(sess.Engine.Roster().Players())
	pairs := sess.Engine.Gallery()
	gallery := make([]GalleryEntry, 0, len(pairs))
	for _, p := range pairs {
		gallery = append(gallery, GalleryEntry{
			Face:       p.Face,
			PlayerID:   p.PlayerID,
			PlayerName: names[p.PlayerID],
			CardIDs:    p.CardIDs,
			Turn:       p.Turn,
		})
	}
	return gallery, nil
}

// ListConfigs returns available presets
func (s *gameServiceImpl) ListConfigs(ctx context.Context) ([]*config.Info, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a specific preset
func (s *gameServiceImpl) LoadConfig(ctx context.Context, configName string) (*config.GameConfig, error) {
	return s.configs.LoadConfig(configName)
}

// SaveConfig saves a preset
func (s *gameServiceImpl) SaveConfig(ctx context.Context, configName string, cfg *config.GameConfig) error {
	return s.configs.SaveConfig(configName, cfg)
}

// session looks a session up and marks it as accessed
// Callers hold the write lock: touching a session writes LastAccessedAt,
// which sessionInfo and ListSessions read.
func (s *gameServiceImpl) session(sessionID string) (*Session, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}
	s.sessions.UpdateLastAccessed(sessionID)
	return sess, nil
}

// turnResult converts engine events into the client-facing result
func (s *gameServiceImpl) turnResult(sess *Session, events []engine.Event) *TurnResult {
	state := sess.Engine.CurrentState()
	messages := sess.Config.Messages
	names := playerNames(state.Players)
	now := time.Now()

	result := &TurnResult{
		Success: true,
		State:   &state,
		Events:  make([]GameEvent, 0, len(events)),
	}

	for _, ev := range events {
		ge := GameEvent{Type: string(ev.Type()), Timestamp: now}

		switch e := ev.(type) {
		case engine.FlippedEvent:
			ge.CardIDs = []int{e.CardID}
			ge.Message = fmt.Sprintf("Card %d flipped", e.CardID)
		case engine.MatchEvent:
			ge.CardIDs = e.CardIDs[:]
			ge.PlayerID = e.ScoringPlayerID
			ge.Score = e.NewScore
			ge.Message = fmt.Sprintf(messages.Match, names[e.ScoringPlayerID], e.NewScore)
			result.Sound = pickSound(sess.Pool)
		case engine.MismatchEvent:
			ge.CardIDs = e.CardIDs[:]
			ge.Message = messages.Mismatch
		case engine.TurnPassedEvent:
			ge.CardIDs = e.CardIDs[:]
			ge.PlayerID = e.PlayerID
			ge.Message = fmt.Sprintf(messages.TurnPassed, names[e.PlayerID])
		case engine.GameResult:
			r := e
			ge.Result = &r
			ge.Message = resultMessage(messages, r)
		}

		result.Events = append(result.Events, ge)
		result.Message = ge.Message
	}

	return result
}

// resultMessage announces the winner or the tie
func resultMessage(messages config.Messages, result engine.GameResult) string {
	var winners []string
	score := 0
	for _, r := range result.Rankings {
		if r.Rank == 1 {
			winners = append(winners, r.Name)
			score = r.Score
		}
	}

	if len(winners) == 1 {
		return fmt.Sprintf(messages.Victory, winners[0], score)
	}
	return fmt.Sprintf(messages.Tie, strings.Join(winners, ", "))
}

// newEngine deals a fresh deck for game using seed
func newEngine(game *Game, seed int64) (*engine.GameEngine, error) {
	deck, err := engine.NewDeckBuilder(seed).Build(game.Pool.Images(), game.Pairs)
	if err != nil {
		return nil, err
	}

	roster, err := engine.NewRoster(game.Players)
	if err != nil {
		return nil, err
	}

	opts := []engine.Option{}
	if game.Config.ScoreIncrement > 0 {
		opts = append(opts, engine.WithScoreIncrement(game.Config.ScoreIncrement))
	}

	return engine.NewGame(deck, roster, opts...)
}

func sessionInfo(sess *Session) *SessionInfo {
	state := sess.Engine.CurrentState()
	return &SessionInfo{
		ID:             sess.ID,
		ConfigName:     sess.ConfigID, // Return the config_id, not the display name
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		Seed:           sess.Seed,
		GameState:      &state,
		GameConfig:     sess.Config,
	}
}

func playerNames(players []engine.Player) map[string]string {
	names := make(map[string]string, len(players))
	for _, p := range players {
		names[p.ID] = p.Name
	}
	return names
}

// pickSound returns a random match sound, or nothing when none are configured
func pickSound(pool *media.Pool) media.Ref {
	sounds := pool.Sounds()
	if len(sounds) == 0 {
		return ""
	}
	return sounds[mathrand.IntN(len(sounds))]
}

// newSeed draws a deck seed from crypto/rand
func newSeed() (int64, error) {
	var raw [8]byte
	if _, err := rand.Read(raw[:]); err != nil {
		return 0, fmt.Errorf("generate seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(raw[:])), nil
}
