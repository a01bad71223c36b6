package types

import (
	"errors"
	"fmt"
)

// ErrorCode represents a specific error type
type ErrorCode string

const (
	// Setup errors
	ErrInvalidConfig ErrorCode = "INVALID_CONFIG"

	// Decision source errors
	ErrInvalidSelection ErrorCode = "INVALID_SELECTION"
	ErrInputClosed      ErrorCode = "INPUT_CLOSED"

	// Lookup errors
	ErrNotFound ErrorCode = "NOT_FOUND"
)

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

// Is matches any GameError carrying the same code, so errors.Is(err, NewGameError(code, ""))
// works regardless of message.
func (e *GameError) Is(target error) bool {
	t, ok := target.(*GameError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// NewGameError creates a new GameError
func NewGameError(code ErrorCode, message string) *GameError {
	return &GameError{
		Code:    code,
		Message: message,
	}
}

// Errorf creates a new GameError with a formatted message
func Errorf(code ErrorCode, format string, args ...interface{}) *GameError {
	return NewGameError(code, fmt.Sprintf(format, args...))
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
	if !errors.As(err, &gameErr) {
		return false
	}
	return gameErr.Code == code
}
