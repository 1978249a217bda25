// Package engine provides the core game logic for the memory match game.
//
// The engine package implements the game mechanics including:
//   - Deck construction from a media pool with a seedable shuffle
//   - The card flip state machine (Idle, OneUp, Resolving)
//   - Match detection, scoring and turn rotation
//   - End-of-game detection and ranking
//
// Core Types:
//
// The Engine interface defines the main contract for game operations,
// implemented by GameEngine. DeckBuilder turns media references into a
// shuffled Deck, Roster holds the players in turn order, and Snapshot is
// the read-only state handed to presentation code.
//
// Usage:
//
//	deck, err := engine.NewDeckBuilder(seed).Build(pool.Images(), 8)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	roster, err := engine.NewRoster(players)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	game, err := engine.NewGame(deck, roster)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	events, err := game.Flip(3)
//	state := game.CurrentState()
//
// Game Rules:
//
// Players take turns revealing two cards. A matching pair scores for the
// current player, who keeps the turn. A mismatch stays visible until
// Acknowledge is called, which hides both cards and passes the turn to the
// next player in roster order. The game ends when every pair is matched and
// a single GameResult is emitted.
//
// Errors:
//
// Configuration problems wrap ErrConfiguration and must be reported before
// play. Rejected commands wrap ErrInvalidOperation and leave the state
// untouched.
package engine
