package types

import (
	"errors"
	"fmt"
)

// ErrorCode represents a specific error type
type ErrorCode string

const (
	// Game state errors
	ErrGameNotFound       ErrorCode = "GAME_NOT_FOUND"
	ErrGameAlreadyEnded   ErrorCode = "GAME_ALREADY_ENDED"
	ErrInvalidState       ErrorCode = "INVALID_STATE"
	ErrAwaitingSuit       ErrorCode = "AWAITING_SUIT"
	ErrInvariantViolation ErrorCode = "INVARIANT_VIOLATION"

	// Player errors
	ErrNotPlayerTurn  ErrorCode = "NOT_PLAYER_TURN"
	ErrNotGameCreator ErrorCode = "NOT_GAME_CREATOR"
	ErrCardNotFound   ErrorCode = "CARD_NOT_FOUND"

	// Action errors
	ErrInvalidAction    ErrorCode = "INVALID_ACTION"
	ErrIllegalMove      ErrorCode = "ILLEGAL_MOVE"
	ErrInvalidCommand   ErrorCode = "INVALID_COMMAND"
	ErrInvalidArgument  ErrorCode = "INVALID_ARGUMENT"
	ErrPermissionDenied ErrorCode = "PERMISSION_DENIED"

	// System errors
	ErrInternalError ErrorCode = "INTERNAL_ERROR"
	ErrDatabaseError ErrorCode = "DATABASE_ERROR"
)

// rejectionCodes are the codes of intents that were refused without touching
// game state. Anything else is a fault.
var rejectionCodes = map[ErrorCode]bool{
	ErrGameNotFound:     true,
	ErrGameAlreadyEnded: true,
	ErrInvalidState:     true,
	ErrAwaitingSuit:     true,
	ErrNotPlayerTurn:    true,
	ErrNotGameCreator:   true,
	ErrCardNotFound:     true,
	ErrInvalidAction:    true,
	ErrIllegalMove:      true,
	ErrInvalidCommand:   true,
	ErrInvalidArgument:  true,
	ErrPermissionDenied: true,
}

// GameError represents a game-related error
type GameError struct {
	Code    ErrorCode
	Message string
	Err     error // Underlying error, if any
}

// Error implements the error interface
func (e *GameError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *GameError) Unwrap() error {
	return e.Err
}

// NewGameError creates a new GameError
func NewGameError(code ErrorCode, message string) *GameError {
	return &GameError{
		Code:    code,
		Message: message,
	}
}

// WrapError wraps an existing error in a GameError
func WrapError(code ErrorCode, message string, err error) *GameError {
	return &GameError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// IsGameError checks if an error is a GameError and has a specific code
func IsGameError(err error, code ErrorCode) bool {
	var gameErr *GameError
	if err == nil {
		return false
	}
	if ok := As(err, &gameErr); !ok {
		return false
	}
	return gameErr.Code == code
}

// IsRejection reports whether err is a refused intent rather than a fault.
func IsRejection(err error) bool {
	var gameErr *GameError
	if !As(err, &gameErr) {
		return false
	}
	return rejectionCodes[gameErr.Code]
}

// As is a helper function to safely type assert an error to a GameError
func As(err error, target **GameError) bool {
	if target == nil || err == nil {
		return false
	}
	return errors.As(err, target)
}
