package game

import "errors"

var (
	// ErrInvalidTransition is returned when an action is applied to a hand
	// that has already reached terminal.
	ErrInvalidTransition = errors.New("invalid transition")

	// ErrIllegalAction is returned when the action id is not set in the
	// current legal mask.
	ErrIllegalAction = errors.New("illegal action")

	// ErrDuplicateCard is returned when a hand is created from two copies of
	// the same card.
	ErrDuplicateCard = errors.New("duplicate private card")

	// ErrInvalidCard is returned when a hand is created from a card outside
	// the three-card deck.
	ErrInvalidCard = errors.New("invalid card")
)
