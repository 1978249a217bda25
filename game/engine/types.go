package engine

import (
	"fmt"

	"github.com/wricardo/mcp-training/memorygame/game/media"
)

// CardState represents the visibility of a single card
type CardState int

const (
	FaceDown CardState = iota
	FaceUp
	Matched
)

// String returns the wire name of the card state
func (s CardState) String() string {
	switch s {
	case FaceDown:
		return "face_down"
	case FaceUp:
		return "face_up"
	case Matched:
		return "matched"
	default:
		return "unknown"
	}
}

// MarshalText encodes the state by name so snapshots stay readable
func (s CardState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a state name written by MarshalText
func (s *CardState) UnmarshalText(text []byte) error {
	switch string(text) {
	case "face_down":
		*s = FaceDown
	case "face_up":
		*s = FaceUp
	case "matched":
		*s = Matched
	default:
		return fmt.Errorf("unknown card state %q", text)
	}
	return nil
}

// Phase represents the turn slot the engine is in
type Phase string

const (
	Idle      Phase = "idle"
	OneUp     Phase = "one_up"
	Resolving Phase = "resolving"
)

// Outcome is the result of the most recent pair evaluation
type Outcome string

const (
	OutcomePending  Outcome = "pending"
	OutcomeMatch    Outcome = "match"
	OutcomeMismatch Outcome = "mismatch"
)

const (
	// Validation constants
	MinPlayers            = 1
	MaxPlayers            = 6
	MinPairs              = 1
	DefaultScoreIncrement = 1
)

// Card is a single card on the board. Two cards share every face.
type Card struct {
	ID    int       `json:"id"`
	Face  media.Ref `json:"face"`
	State CardState `json:"state"`
}

// Player is a roster entry
type Player struct {
	ID     string    `json:"id"`
	Name   string    `json:"name"`
	Avatar media.Ref `json:"avatar,omitempty"`
	Score  int       `json:"score"`
}

// TurnState is the mutable turn bookkeeping owned by the engine
type TurnState struct {
	CurrentPlayer int     `json:"current_player"`
	FaceUp        []int   `json:"face_up"`
	Phase         Phase   `json:"phase"`
	LastOutcome   Outcome `json:"last_outcome"`
}

// MatchedPair records which player matched which face
type MatchedPair struct {
	Face     media.Ref `json:"face"`
	CardIDs  [2]int    `json:"card_ids"`
	PlayerID string    `json:"player_id"`
	Turn     int       `json:"turn"`
}
