/*
errors.go - Centralized error types for the attribution engine

PURPOSE:
  All error types in one place for consistency and discoverability.
  Note the split with warnings.go: errors are for inputs the system must
  reject (negative amounts, inverted windows, broken config); warnings are
  for inputs it degrades on but still processes.

USAGE:
  if errors.Is(err, engine.ErrNegativeAmount) {
      // reject at ingestion with 400
  }
*/
package engine

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrNegativeAmount is returned when a billing amount, salary, or logged
	// hours value is negative. Revenue and cost are never negative; negative
	// inputs are rejected at ingestion rather than absorbed.
	ErrNegativeAmount = errors.New("negative amount")

	// ErrInvalidWindow is returned when a report window ends before it starts.
	ErrInvalidWindow = errors.New("invalid window: end before start")

	// ErrInvalidConfig is returned when engine configuration cannot be used.
	ErrInvalidConfig = errors.New("invalid engine configuration")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// ConfigError describes which configuration field is unusable.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid engine configuration: %s %s", e.Field, e.Reason)
}

func (e *ConfigError) Unwrap() error { return ErrInvalidConfig }

// NegativeAmountError describes which input carried a negative value.
type NegativeAmountError struct {
	Field string
	Value string
}

func (e *NegativeAmountError) Error() string {
	return fmt.Sprintf("negative amount: %s = %s", e.Field, e.Value)
}

func (e *NegativeAmountError) Unwrap() error { return ErrNegativeAmount }

// IsClientError returns true if the error is due to invalid client input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrNegativeAmount) ||
		errors.Is(err, ErrInvalidWindow) ||
		errors.Is(err, ErrInvalidConfig)
}
