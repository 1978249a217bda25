package engine

import (
	"fmt"
	"strings"
)

// Roster is the fixed, ordered list of players in turn order
type Roster struct {
	players []*Player
}

// NewRoster validates players and returns a roster with zeroed scores
func NewRoster(players []Player) (*Roster, error) {
	if len(players) < MinPlayers || len(players) > MaxPlayers {
		return nil, fmt.Errorf("%w: need between %d and %d players, got %d", ErrInvalidRoster, MinPlayers, MaxPlayers, len(players))
	}

	ids := make(map[string]bool, len(players))
	roster := &Roster{players: make([]*Player, 0, len(players))}
	for i, p := range players {
		if strings.TrimSpace(p.ID) == "" {
			return nil, fmt.Errorf("%w: player %d has no id", ErrInvalidRoster, i+1)
		}
		if strings.TrimSpace(p.Name) == "" {
			return nil, fmt.Errorf("%w: player %d has no name", ErrInvalidRoster, i+1)
		}
		if ids[p.ID] {
			return nil, fmt.Errorf("%w: duplicate player id %q", ErrInvalidRoster, p.ID)
		}
		ids[p.ID] = true

		roster.players = append(roster.players, &Player{
			ID:     p.ID,
			Name:   strings.TrimSpace(p.Name),
			Avatar: p.Avatar,
		})
	}

	return roster, nil
}

// Len returns the number of players
func (r *Roster) Len() int {
	return len(r.players)
}

// Player returns a copy of the player at index
func (r *Roster) Player(index int) (Player, bool) {
	if index < 0 || index >= len(r.players) {
		return Player{}, false
	}
	return *r.players[index], true
}

// Players returns a copy of all players in turn order
func (r *Roster) Players() []Player {
	out := make([]Player, len(r.players))
	for i, p := range r.players {
		out[i] = *p
	}
	return out
}

// addScore is only called by the engine that holds this roster
func (r *Roster) addScore(index, points int) int {
	r.players[index].Score += points
	return r.players[index].Score
}

func (r *Roster) resetScores() {
	for _, p := range r.players {
		p.Score = 0
	}
}
