package game

import "errors"

// Operation failure taxonomy. Every engine operation returns one of these,
// wrapped with context; the transaction layer aborts without writing and the
// HTTP layer maps them onto status codes.
var (
	ErrNotFound           = errors.New("game not found")
	ErrInvalidPhase       = errors.New("invalid phase for action")
	ErrUnauthorized       = errors.New("not authorized")
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrPreconditionNotMet = errors.New("precondition not met")
	ErrRoomFull           = errors.New("room is full")
)
