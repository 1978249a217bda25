package engine

import (
	"fmt"
	"sort"
	"strings"
)

// Engine provides the main interface for game operations
type Engine interface {
	// Commands
	Flip(cardID int) ([]Event, error)
	Acknowledge() ([]Event, error)

	// Queries
	CurrentState() Snapshot
	IsComplete() bool
	Result() (*GameResult, bool)
	Gallery() []MatchedPair

	// Events
	Subscribe(listener Listener)
}

var _ Engine = (*GameEngine)(nil)

// GameEngine implements the Engine interface. It is not safe for
// concurrent use; callers serialize commands.
type GameEngine struct {
	cards     []Card
	roster    *Roster
	turn      TurnState
	increment int

	flips    int
	attempts int
	owners   map[int]string
	matched  []MatchedPair
	result   *GameResult

	listeners []Listener
}

// NewGame creates an engine for deck and roster. The deck cards are copied;
// the roster is referenced and its scores reset to zero.
func NewGame(deck *Deck, roster *Roster, opts ...Option) (*GameEngine, error) {
	if deck == nil || len(deck.Cards) < 2*MinPairs {
		return nil, fmt.Errorf("%w: deck has no pairs", ErrInvalidDeck)
	}
	if roster == nil || roster.Len() < MinPlayers {
		return nil, fmt.Errorf("%w: roster is empty", ErrInvalidRoster)
	}

	// Revalidate so hand-assembled decks obey the pair invariant
	checked, err := NewDeck(deck.Faces())
	if err != nil {
		return nil, err
	}

	e := &GameEngine{
		cards:     checked.Cards,
		roster:    roster,
		increment: DefaultScoreIncrement,
		owners:    make(map[int]string),
		turn: TurnState{
			CurrentPlayer: 0,
			FaceUp:        []int{},
			Phase:         Idle,
			LastOutcome:   OutcomePending,
		},
	}

	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}

	roster.resetScores()
	return e, nil
}

// Subscribe registers a listener for every future event
func (e *GameEngine) Subscribe(listener Listener) {
	if listener != nil {
		e.listeners = append(e.listeners, listener)
	}
}

// Flip turns a face-down card face up and evaluates the pair once two
// cards are showing.
func (e *GameEngine) Flip(cardID int) ([]Event, error) {
	if e.turn.Phase == Resolving {
		return nil, fmt.Errorf("%w: cards %v must be acknowledged first", ErrAwaitingAcknowledge, e.turn.FaceUp)
	}

	if cardID < 0 || cardID >= len(e.cards) {
		return nil, fmt.Errorf("%w: unknown card %d", ErrInvalidCard, cardID)
	}

	card := &e.cards[cardID]
	switch card.State {
	case Matched:
		return nil, fmt.Errorf("%w: card %d is already matched", ErrInvalidCard, cardID)
	case FaceUp:
		return nil, fmt.Errorf("%w: card %d is already face up", ErrInvalidCard, cardID)
	}

	card.State = FaceUp
	e.flips++
	e.turn.FaceUp = append(e.turn.FaceUp, cardID)
	events := []Event{FlippedEvent{CardID: cardID}}

	if len(e.turn.FaceUp) == 1 {
		e.turn.Phase = OneUp
		e.turn.LastOutcome = OutcomePending
		return e.emit(events), nil
	}

	return e.emit(append(events, e.evaluate()...)), nil
}

// evaluate compares the two face-up cards
func (e *GameEngine) evaluate() []Event {
	e.attempts++
	pair := [2]int{e.turn.FaceUp[0], e.turn.FaceUp[1]}
	first, second := &e.cards[pair[0]], &e.cards[pair[1]]

	if first.Face != second.Face {
		e.turn.Phase = Resolving
		e.turn.LastOutcome = OutcomeMismatch
		return []Event{MismatchEvent{CardIDs: pair}}
	}

	first.State = Matched
	second.State = Matched

	player, _ := e.roster.Player(e.turn.CurrentPlayer)
	score := e.roster.addScore(e.turn.CurrentPlayer, e.increment)
	e.owners[pair[0]] = player.ID
	e.owners[pair[1]] = player.ID
	e.matched = append(e.matched, MatchedPair{
		Face:     first.Face,
		CardIDs:  pair,
		PlayerID: player.ID,
		Turn:     e.attempts,
	})

	// Matching player keeps the turn
	e.turn.FaceUp = []int{}
	e.turn.Phase = Idle
	e.turn.LastOutcome = OutcomeMatch

	events := []Event{MatchEvent{
		CardIDs:         pair,
		ScoringPlayerID: player.ID,
		NewScore:        score,
	}}

	if e.result == nil && e.IsComplete() {
		e.result = newGameResult(e.roster.Players(), e.flips, e.attempts)
		events = append(events, *e.result.clone())
	}

	return events
}

// Acknowledge flips a mismatched pair back and passes the turn
func (e *GameEngine) Acknowledge() ([]Event, error) {
	if e.turn.Phase != Resolving || e.turn.LastOutcome != OutcomeMismatch {
		return nil, fmt.Errorf("%w: nothing to acknowledge in phase %s", ErrInvalidState, e.turn.Phase)
	}

	pair := [2]int{e.turn.FaceUp[0], e.turn.FaceUp[1]}
	for _, id := range pair {
		e.cards[id].State = FaceDown
	}

	e.turn.CurrentPlayer = (e.turn.CurrentPlayer + 1) % e.roster.Len()
	e.turn.FaceUp = []int{}
	e.turn.Phase = Idle

	next, _ := e.roster.Player(e.turn.CurrentPlayer)
	return e.emit([]Event{TurnPassedEvent{
		CardIDs:     pair,
		PlayerID:    next.ID,
		PlayerIndex: e.turn.CurrentPlayer,
	}}), nil
}

// IsComplete returns whether every card is matched
func (e *GameEngine) IsComplete() bool {
	for _, card := range e.cards {
		if card.State != Matched {
			return false
		}
	}
	return true
}

// Result returns the final result once the game is complete
func (e *GameEngine) Result() (*GameResult, bool) {
	if e.result == nil {
		return nil, false
	}
	return e.result.clone(), true
}

// Gallery returns every matched face with the player who matched it,
// sorted by face case-insensitively
func (e *GameEngine) Gallery() []MatchedPair {
	out := append([]MatchedPair(nil), e.matched...)
	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(string(out[i].Face)) < strings.ToLower(string(out[j].Face))
	})
	return out
}

// Roster returns the roster this engine scores against
func (e *GameEngine) Roster() *Roster {
	return e.roster
}

func (e *GameEngine) emit(events []Event) []Event {
	for _, ev := range events {
		for _, l := range e.listeners {
			l(ev)
		}
	}
	return events
}
