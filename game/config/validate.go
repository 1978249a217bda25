package config

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"

	"github.com/wricardo/mcp-training/memorygame/game/engine"
)

// ValidateGameConfig validates a preset after defaults have been applied
func ValidateGameConfig(config *GameConfig) error {
	// Validate required fields
	if config.Name == "" {
		return fmt.Errorf("config validation: name is required")
	}
	if config.Description == "" {
		return fmt.Errorf("config validation: description is required")
	}

	if config.Language != "" {
		if _, err := language.Parse(config.Language); err != nil {
			return fmt.Errorf("config validation: language %q is not a valid tag: %w", config.Language, err)
		}
	}

	if config.Pairs < 0 {
		return fmt.Errorf("config validation: pairs must not be negative, got %d", config.Pairs)
	}
	if config.ScoreIncrement < 0 {
		return fmt.Errorf("config validation: score_increment must not be negative, got %d", config.ScoreIncrement)
	}
	if config.PlayerCount < 0 || config.PlayerCount > engine.MaxPlayers {
		return fmt.Errorf("config validation: player_count must be between 0 and %d, got %d", engine.MaxPlayers, config.PlayerCount)
	}
	if len(config.Players) > engine.MaxPlayers {
		return fmt.Errorf("config validation: at most %d players, got %d", engine.MaxPlayers, len(config.Players))
	}

	ids := make(map[string]bool)
	for i, p := range config.Players {
		if p.ID == "" {
			continue
		}
		if ids[p.ID] {
			return fmt.Errorf("config validation: players[%d] reuses id %q", i, p.ID)
		}
		ids[p.ID] = true
	}

	if config.Media.Images.Folder == "" {
		return fmt.Errorf("config validation: media.images.folder is required")
	}

	// Validate format strings
	formats := []struct {
		field string
		value string
		verbs []string
	}{
		{"messages.match", config.Messages.Match, []string{"%s", "%d"}},
		{"messages.turn_passed", config.Messages.TurnPassed, []string{"%s"}},
		{"messages.victory", config.Messages.Victory, []string{"%s", "%d"}},
		{"messages.tie", config.Messages.Tie, []string{"%s"}},
		{"messages.player_name", config.Messages.PlayerName, []string{"%d"}},
	}
	for _, f := range formats {
		if f.value == "" {
			continue
		}
		for _, verb := range f.verbs {
			if !strings.Contains(f.value, verb) {
				return fmt.Errorf("config validation: %s must contain %s", f.field, verb)
			}
		}
	}

	return nil
}
