package config

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/wricardo/mcp-training/memorygame/game/engine"
	"github.com/wricardo/mcp-training/memorygame/game/media"
)

// Roster turns the requested or preset players into engine players.
// players and count come from the request, 0 and nil meaning unset. A count
// outside 1..6 or below the number of named players is an ErrInvalidRoster,
// as are more than six players. Without a request the preset decides and
// its values are clamped to 1..6. Missing ids get a uuid, blank names the
// numbered default and blank avatars the first avatar of the pool.
func (c *GameConfig) Roster(players []PlayerConfig, count int, avatars []media.Ref) ([]engine.Player, error) {
	switch {
	case count < 0 || count > engine.MaxPlayers:
		return nil, fmt.Errorf("%w: player_count must be between 1 and %d, got %d", engine.ErrInvalidRoster, engine.MaxPlayers, count)
	case len(players) > engine.MaxPlayers:
		return nil, fmt.Errorf("%w: at most %d players, got %d", engine.ErrInvalidRoster, engine.MaxPlayers, len(players))
	case count > 0 && count < len(players):
		return nil, fmt.Errorf("%w: player_count %d is less than the %d players given", engine.ErrInvalidRoster, count, len(players))
	}

	if count == 0 {
		count = len(players)
	}
	if len(players) == 0 {
		players = c.Players
	}
	if count == 0 {
		count = clampPlayers(c.PlayerCount)
		if c.PlayerCount <= 0 {
			count = clampPlayers(len(players))
		}
	}

	nameFormat := c.Messages.PlayerName
	if nameFormat == "" {
		nameFormat = "Player %d"
	}

	var defaultAvatar media.Ref
	if len(avatars) > 0 {
		defaultAvatar = avatars[0]
	}

	roster := make([]engine.Player, count)
	for i := range roster {
		var p PlayerConfig
		if i < len(players) {
			p = players[i]
		}

		id := strings.TrimSpace(p.ID)
		if id == "" {
			id = uuid.NewString()
		}
		name := strings.TrimSpace(p.Name)
		if name == "" {
			name = fmt.Sprintf(nameFormat, i+1)
		}
		avatar := media.Ref(p.Avatar)
		if avatar == "" {
			avatar = defaultAvatar
		}

		roster[i] = engine.Player{ID: id, Name: name, Avatar: avatar}
	}

	return roster, nil
}

// PairCount returns the pairs to deal given the number of distinct images.
// requested overrides the preset when positive; 0 uses every image.
func (c *GameConfig) PairCount(requested, available int) int {
	pairs := requested
	if pairs <= 0 {
		pairs = c.Pairs
	}
	if pairs <= 0 || pairs > available {
		pairs = available
	}
	return pairs
}

func clampPlayers(n int) int {
	if n < engine.MinPlayers {
		return engine.MinPlayers
	}
	if n > engine.MaxPlayers {
		return engine.MaxPlayers
	}
	return n
}
