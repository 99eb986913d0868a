package battle

import "errors"

// Rejections. Transitions wrap these with context; compare with errors.Is.
var (
	ErrBattleOver       = errors.New("battle is over")
	ErrNotPlayerPhase   = errors.New("not the player's phase")
	ErrNotEnemyPhase    = errors.New("not the enemy phase")
	ErrPendingAnswer    = errors.New("a question is awaiting an answer")
	ErrPendingDiscard   = errors.New("a discard selection is pending")
	ErrNoPendingAnswer  = errors.New("no question is awaiting an answer")
	ErrNoPendingDiscard = errors.New("no discard selection is pending")
	ErrNotEnoughEnergy  = errors.New("not enough energy")
	ErrCardNotInHand    = errors.New("card is not in hand")
	ErrUnplayable       = errors.New("card cannot be played")
	ErrMustAnswerFirst  = errors.New("a must-answer card is in hand")
	ErrInvalidDiscard   = errors.New("invalid discard selection")
	ErrNoSuchConsumable = errors.New("consumable not held")
	ErrNoEnemies        = errors.New("encounter has no known enemies")
)
