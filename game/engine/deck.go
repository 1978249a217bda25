package engine

import (
	"fmt"
	"math/rand/v2"

	"github.com/wricardo/mcp-training/memorygame/game/media"
)

// Deck is the ordered card sequence a game is played with
type Deck struct {
	Cards []Card `json:"cards"`
}

// PairCount returns the number of pairs in the deck
func (d *Deck) PairCount() int {
	return len(d.Cards) / 2
}

// Faces returns the face of every card in deck order
func (d *Deck) Faces() []media.Ref {
	faces := make([]media.Ref, len(d.Cards))
	for i, card := range d.Cards {
		faces[i] = card.Face
	}
	return faces
}

// NewDeck builds an unshuffled deck from an explicit face order.
// Every face must appear exactly twice.
func NewDeck(faces []media.Ref) (*Deck, error) {
	if len(faces) < 2*MinPairs || len(faces)%2 != 0 {
		return nil, fmt.Errorf("%w: need an even number of at least %d cards, got %d", ErrInvalidDeck, 2*MinPairs, len(faces))
	}

	counts := make(map[media.Ref]int, len(faces)/2)
	cards := make([]Card, len(faces))
	for i, face := range faces {
		if face == "" {
			return nil, fmt.Errorf("%w: card %d has no face", ErrInvalidDeck, i)
		}
		counts[face]++
		cards[i] = Card{ID: i, Face: face, State: FaceDown}
	}

	for face, n := range counts {
		if n != 2 {
			return nil, fmt.Errorf("%w: face %q appears %d times", ErrInvalidDeck, face, n)
		}
	}

	return &Deck{Cards: cards}, nil
}

// DeckBuilder selects assets and shuffles them into a deck
type DeckBuilder struct {
	rng *rand.Rand
}

// NewDeckBuilder creates a deterministic builder for the given seed
func NewDeckBuilder(seed int64) *DeckBuilder {
	return NewDeckBuilderWithSource(rand.NewPCG(uint64(seed), uint64(seed)>>1|1))
}

// NewDeckBuilderWithSource creates a builder drawing from src
func NewDeckBuilderWithSource(src rand.Source) *DeckBuilder {
	return &DeckBuilder{rng: rand.New(src)}
}

// Build selects pairCount distinct assets in supplied order, duplicates
// each one and shuffles the result. Card ids equal deck positions.
func (b *DeckBuilder) Build(assets []media.Ref, pairCount int) (*Deck, error) {
	if pairCount < MinPairs {
		return nil, fmt.Errorf("%w: pair count must be at least %d, got %d", ErrInsufficientAssets, MinPairs, pairCount)
	}

	selected := make([]media.Ref, 0, pairCount)
	seen := make(map[media.Ref]bool, pairCount)
	for _, asset := range assets {
		if len(selected) == pairCount {
			break
		}
		if asset == "" || seen[asset] {
			continue
		}
		seen[asset] = true
		selected = append(selected, asset)
	}

	if len(selected) < pairCount {
		return nil, fmt.Errorf("%w: pair count %d exceeds %d distinct assets", ErrInsufficientAssets, pairCount, len(selected))
	}

	faces := make([]media.Ref, 0, 2*pairCount)
	for _, asset := range selected {
		faces = append(faces, asset, asset)
	}

	b.rng.Shuffle(len(faces), func(i, j int) { faces[i], faces[j] = faces[j], faces[i] })

	return NewDeck(faces)
}
