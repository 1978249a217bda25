package engine

// EventType names an engine event variant
type EventType string

const (
	EventFlipped    EventType = "flipped"
	EventMatch      EventType = "match"
	EventMismatch   EventType = "mismatch"
	EventTurnPassed EventType = "turn_passed"
	EventGameResult EventType = "game_result"
)

// Event is implemented by every value the engine emits
type Event interface {
	Type() EventType
}

// FlippedEvent is emitted for every accepted flip
type FlippedEvent struct {
	CardID int `json:"card_id"`
}

// MatchEvent is emitted when the two face-up cards share a face
type MatchEvent struct {
	CardIDs         [2]int `json:"card_ids"`
	ScoringPlayerID string `json:"scoring_player_id"`
	NewScore        int    `json:"new_score"`
}

// MismatchEvent is emitted when the two face-up cards differ.
// The engine waits for Acknowledge before flipping them back.
type MismatchEvent struct {
	CardIDs [2]int `json:"card_ids"`
}

// TurnPassedEvent is emitted by Acknowledge
type TurnPassedEvent struct {
	CardIDs     [2]int `json:"card_ids"`
	PlayerID    string `json:"player_id"`
	PlayerIndex int    `json:"player_index"`
}

func (FlippedEvent) Type() EventType    { return EventFlipped }
func (MatchEvent) Type() EventType      { return EventMatch }
func (MismatchEvent) Type() EventType   { return EventMismatch }
func (TurnPassedEvent) Type() EventType { return EventTurnPassed }
func (GameResult) Type() EventType      { return EventGameResult }

// Listener receives events synchronously, in emission order
type Listener func(Event)
