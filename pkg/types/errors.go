package types

import (
	"errors"
	"fmt"
)

// Common SDK errors
var (
	// Numeric-safety errors. Always fatal to the operation, never retried.
	ErrArithmeticOverflow = errors.New("arithmetic overflow")
	ErrDivisionByZero     = errors.New("division by zero")

	// Input validation errors
	ErrInvalidAmount      = errors.New("amount must be greater than 0")
	ErrInvalidFee         = errors.New("fee bps must be < 10000")
	ErrInvalidSlippage    = errors.New("slippage bps must be <= 10000")
	ErrBelowMinimumTrade  = errors.New("trade below minimum size")
	ErrArtistShareTooHigh = errors.New("artist share exceeds maximum")

	// Trade errors
	ErrInsufficientLiquidity = errors.New("insufficient liquidity")
	ErrInactiveCurve         = errors.New("bonding curve is not active")
	ErrSlippageExceeded      = errors.New("slippage exceeded")
	ErrTokensStillVesting    = errors.New("tokens are still vesting")

	// Internal consistency errors
	ErrInvariantViolated = errors.New("curve invariant violated")
)

// ValidationError represents input validation failures.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error.
func NewValidationError(field, message string) ValidationError {
	return ValidationError{Field: field, Message: message}
}

// InvariantError reports which curve invariant broke and how. It unwraps to
// ErrInvariantViolated so callers can match with errors.Is.
type InvariantError struct {
	Invariant string
	Detail    string
}

func (e InvariantError) Error() string {
	return fmt.Sprintf("invariant violated [%s]: %s", e.Invariant, e.Detail)
}

func (e InvariantError) Unwrap() error {
	return ErrInvariantViolated
}

// NewInvariantError creates an InvariantError with a formatted detail message.
func NewInvariantError(invariant, format string, args ...interface{}) InvariantError {
	return InvariantError{Invariant: invariant, Detail: fmt.Sprintf(format, args...)}
}

// IsRetryable reports whether the caller may retry the operation with fresh
// inputs. Only a tripped slippage guard qualifies: the caller re-quotes and
// submits an updated minimum. Everything else is either a hard validation
// failure or an internal consistency failure.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, ErrSlippageExceeded)
}
