package engine

import "fmt"

// Option configures a GameEngine
type Option func(*GameEngine) error

// WithScoreIncrement sets the points awarded per matched pair
func WithScoreIncrement(points int) Option {
	return func(e *GameEngine) error {
		if points < 1 {
			return fmt.Errorf("%w: score increment must be at least 1, got %d", ErrInvalidOption, points)
		}
		e.increment = points
		return nil
	}
}

// WithListener registers a listener before the first command
func WithListener(listener Listener) Option {
	return func(e *GameEngine) error {
		e.Subscribe(listener)
		return nil
	}
}

// WithStartingPlayer sets the roster index of the player who flips first
func WithStartingPlayer(index int) Option {
	return func(e *GameEngine) error {
		if index < 0 || index >= e.roster.Len() {
			return fmt.Errorf("%w: starting player %d outside roster of %d", ErrInvalidOption, index, e.roster.Len())
		}
		e.turn.CurrentPlayer = index
		return nil
	}
}
