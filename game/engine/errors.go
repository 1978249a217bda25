package engine

import (
	"errors"
	"fmt"

	"github.com/wricardo/mcp-training/memorygame/game/media"
)

var (
	// ErrConfiguration is the parent of every error that prevents a game from starting.
	ErrConfiguration = errors.New("configuration error")

	// ErrInvalidOperation is the parent of every rejected engine command.
	// The engine state is unchanged when one is returned.
	ErrInvalidOperation = errors.New("invalid operation")
)

var (
	ErrInsufficientAssets = fmt.Errorf("%w: insufficient assets", ErrConfiguration)
	ErrInvalidRoster      = fmt.Errorf("%w: invalid roster", ErrConfiguration)
	ErrInvalidDeck        = fmt.Errorf("%w: invalid deck", ErrConfiguration)
	ErrInvalidOption      = fmt.Errorf("%w: invalid option", ErrConfiguration)

	ErrInvalidCard         = fmt.Errorf("%w: invalid card", ErrInvalidOperation)
	ErrInvalidState        = fmt.Errorf("%w: invalid state", ErrInvalidOperation)
	ErrAwaitingAcknowledge = fmt.Errorf("%w: pair awaiting acknowledge", ErrInvalidOperation)
)

// IsConfigurationError reports whether err must be surfaced before play begins
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrConfiguration) || errors.Is(err, media.ErrEmptyPool)
}

// IsInvalidOperation reports whether err is a recoverable command rejection
func IsInvalidOperation(err error) bool {
	return errors.Is(err, ErrInvalidOperation)
}
