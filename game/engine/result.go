package engine

import "sort"

// RankedScore is one line of the final scoreboard
type RankedScore struct {
	Rank        int    `json:"rank"`
	PlayerID    string `json:"player_id"`
	Name        string `json:"name"`
	Score       int    `json:"score"`
	RosterIndex int    `json:"roster_index"`
}

// GameResult is created once, when the last pair is matched
type GameResult struct {
	Rankings      []RankedScore `json:"rankings"`
	Winners       []string      `json:"winners"`
	TotalFlips    int           `json:"total_flips"`
	TotalAttempts int           `json:"total_attempts"`
}

// RankPlayers orders players by score descending, ties kept in roster
// order. Tied scores share a rank.
func RankPlayers(players []Player) []RankedScore {
	ranked := make([]RankedScore, len(players))
	for i, p := range players {
		ranked[i] = RankedScore{
			PlayerID:    p.ID,
			Name:        p.Name,
			Score:       p.Score,
			RosterIndex: i,
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].RosterIndex < ranked[j].RosterIndex
	})

	for i := range ranked {
		if i > 0 && ranked[i].Score == ranked[i-1].Score {
			ranked[i].Rank = ranked[i-1].Rank
		} else {
			ranked[i].Rank = i + 1
		}
	}

	return ranked
}

func newGameResult(players []Player, flips, attempts int) *GameResult {
	rankings := RankPlayers(players)

	var winners []string
	for _, r := range rankings {
		if r.Rank == 1 {
			winners = append(winners, r.PlayerID)
		}
	}

	return &GameResult{
		Rankings:      rankings,
		Winners:       winners,
		TotalFlips:    flips,
		TotalAttempts: attempts,
	}
}

// clone returns a deep copy so callers never alias the stored result
func (r *GameResult) clone() *GameResult {
	if r == nil {
		return nil
	}
	out := *r
	out.Rankings = append([]RankedScore(nil), r.Rankings...)
	out.Winners = append([]string(nil), r.Winners...)
	return &out
}
