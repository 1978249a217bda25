package engine

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"
)

// playRandomGame drives a full game with random legal flips and checks the
// board invariants after every command.
func playRandomGame(t *testing.T, seed uint64, pairs, players int) {
	t.Helper()

	assets := faces("a", "b", "c", "d", "e", "f", "g", "h", "i", "j")
	deck, err := NewDeckBuilder(int64(seed)).Build(assets, pairs)
	require.NoError(t, err)
	roster, err := NewRoster(testPlayers(players))
	require.NoError(t, err)
	game, err := NewGame(deck, roster)
	require.NoError(t, err)

	rng := rand.New(rand.NewPCG(seed, seed+1))
	prev := game.CurrentState()
	results := 0

	for steps := 0; !game.IsComplete(); steps++ {
		require.Less(t, steps, 10000, "game did not finish")

		var events []Event
		if prev.Phase == Resolving {
			events, err = game.Acknowledge()
		} else {
			var candidates []int
			for _, c := range prev.Cards {
				if c.State == FaceDown {
					candidates = append(candidates, c.ID)
				}
			}
			events, err = game.Flip(candidates[rng.IntN(len(candidates))])
		}
		require.NoError(t, err)

		state := game.CurrentState()

		require.LessOrEqual(t, len(state.FaceUp), 2)
		require.Equal(t, len(state.FaceUp), CountCardState(state.Cards, FaceUp))
		require.Equal(t, 0, CountCardState(state.Cards, Matched)%2)

		total := 0
		for i, p := range state.Players {
			require.GreaterOrEqual(t, p.Score, prev.Players[i].Score, "scores never decrease")
			total += p.Score
		}
		require.Equal(t, state.MatchedPairs, total)

		for _, ev := range events {
			switch ev := ev.(type) {
			case MatchEvent:
				require.Equal(t, prev.CurrentPlayer, state.CurrentPlayer)
			case TurnPassedEvent:
				require.Equal(t, (prev.CurrentPlayer+1)%players, ev.PlayerIndex)
				require.Equal(t, ev.PlayerIndex, state.CurrentPlayer)
			case GameResult:
				results++
			}
		}

		prev = state
	}

	require.Equal(t, 1, results)
	require.Equal(t, pairs, prev.MatchedPairs)
	require.Equal(t, 2*pairs, CountCardState(prev.Cards, Matched))
}

func TestEngine_RandomPlayInvariants(t *testing.T) {
	for seed := uint64(1); seed <= 25; seed++ {
		playRandomGame(t, seed, int(seed%10)+1, int(seed%MaxPlayers)+1)
	}
}

func TestGridFor(t *testing.T) {
	tests := []struct {
		count int
		want  Layout
	}{
		{0, Layout{}},
		{2, Layout{Rows: 1, Cols: 2}},
		{4, Layout{Rows: 2, Cols: 2}},
		{6, Layout{Rows: 2, Cols: 3}},
		{16, Layout{Rows: 4, Cols: 4}},
		{18, Layout{Rows: 4, Cols: 5}},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, GridFor(tt.count), "count %d", tt.count)
	}
}

func TestMaxPairs(t *testing.T) {
	require.Equal(t, 5, MaxPairs(5, 0))
	require.Equal(t, 3, MaxPairs(5, 6))
	require.Equal(t, 0, MaxPairs(-1, 0))
}
