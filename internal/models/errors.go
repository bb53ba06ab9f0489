package models

import "errors"

// Errores de las máquinas de estado (booking / match).
var (
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrNotParticipant    = errors.New("user is not a participant")
	ErrOnlyOpponent      = errors.New("only the invited opponent can accept")
	ErrStaleAnswer       = errors.New("answer does not match the player's current question")
	ErrNegativeScore     = errors.New("points cannot be negative")
	ErrPlayerFinished    = errors.New("player already answered every question")
	ErrMatchExpired      = errors.New("match deadline has passed")
	ErrMatchInProgress   = errors.New("match is still in progress")
)
