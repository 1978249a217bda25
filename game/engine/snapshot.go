package engine

import "github.com/wricardo/mcp-training/memorygame/game/media"

// CardView is the client-facing card. Face is only set once the card is
// face up or matched.
type CardView struct {
	ID      int       `json:"id"`
	State   CardState `json:"state"`
	Face    media.Ref `json:"face,omitempty"`
	OwnerID string    `json:"owner_id,omitempty"`
}

// Layout is a board arrangement hint for the presentation layer
type Layout struct {
	Rows int `json:"rows"`
	Cols int `json:"cols"`
}

// Snapshot is a read-only copy of the engine state
type Snapshot struct {
	Cards           []CardView  `json:"cards"`
	Players         []Player    `json:"players"`
	CurrentPlayer   int         `json:"current_player"`
	CurrentPlayerID string      `json:"current_player_id"`
	Phase           Phase       `json:"phase"`
	FaceUp          []int       `json:"face_up"`
	LastOutcome     Outcome     `json:"last_outcome"`
	Flips           int         `json:"flips"`
	Attempts        int         `json:"attempts"`
	MatchedPairs    int         `json:"matched_pairs"`
	TotalPairs      int         `json:"total_pairs"`
	Layout          Layout      `json:"layout"`
	Complete        bool        `json:"complete"`
	Result          *GameResult `json:"result,omitempty"`
}

// CurrentState returns a deep copy of the engine state. Repeated calls
// without commands in between return equal snapshots.
func (e *GameEngine) CurrentState() Snapshot {
	cards := make([]CardView, len(e.cards))
	for i, card := range e.cards {
		view := CardView{ID: card.ID, State: card.State}
		if card.State != FaceDown {
			view.Face = card.Face
		}
		if owner, ok := e.owners[card.ID]; ok {
			view.OwnerID = owner
		}
		cards[i] = view
	}

	current, _ := e.roster.Player(e.turn.CurrentPlayer)

	return Snapshot{
		Cards:           cards,
		Players:         e.roster.Players(),
		CurrentPlayer:   e.turn.CurrentPlayer,
		CurrentPlayerID: current.ID,
		Phase:           e.turn.Phase,
		FaceUp:          append([]int{}, e.turn.FaceUp...),
		LastOutcome:     e.turn.LastOutcome,
		Flips:           e.flips,
		Attempts:        e.attempts,
		MatchedPairs:    len(e.matched),
		TotalPairs:      len(e.cards) / 2,
		Layout:          GridFor(len(e.cards)),
		Complete:        e.IsComplete(),
		Result:          e.result.clone(),
	}
}
