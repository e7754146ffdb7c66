/*
errors.go - Centralized error types

PURPOSE:
  All error types in one place for consistency and discoverability.
  Domain packages return these (or the structured forms below) so callers
  can branch with errors.Is / errors.As without string matching.

ERROR CATEGORIES:
  1. Input errors - bad rate, unknown rotation, malformed plan
  2. Arithmetic errors - non-positive cap, negative totals, inverted periods

USAGE:
  if errors.Is(err, generic.ErrUnknownPattern) {
      // surface as validation feedback
  }

SEE ALSO:
  - schedule/rotation.go: Returns UnknownPatternError
  - benefit/calculator.go: Returns InvalidRateError
  - api/handlers.go: Maps client errors to HTTP 400
*/
package generic

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrUnknownPattern is returned when a rotation identifier is not in the catalog.
	ErrUnknownPattern = errors.New("unknown rotation pattern")

	// ErrInvalidRate is returned when a daily rate is not a positive finite number.
	ErrInvalidRate = errors.New("invalid daily rate")

	// ErrInvalidCap is returned when an installment cap is zero or negative.
	ErrInvalidCap = errors.New("installment cap must be positive")

	// ErrNegativeAmount is returned when a total that must be non-negative is not.
	ErrNegativeAmount = errors.New("amount must not be negative")

	// ErrInvalidPeriod is returned when a period is malformed (end before start).
	ErrInvalidPeriod = errors.New("invalid period: end before start")

	// ErrPlanInvalid is returned when a benefit plan definition cannot be used.
	ErrPlanInvalid = errors.New("invalid benefit plan")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// UnknownPatternError names the rotation that was not recognised.
type UnknownPatternError struct {
	Pattern string
}

func (e *UnknownPatternError) Error() string {
	return fmt.Sprintf("unknown rotation pattern %q", e.Pattern)
}

func (e *UnknownPatternError) Unwrap() error {
	return ErrUnknownPattern
}

// InvalidRateError names the offending rate and the benefit it belongs to.
type InvalidRateError struct {
	Benefit string // empty when the rate is validated outside a plan
	Rate    float64
	Reason  string
}

func (e *InvalidRateError) Error() string {
	if e.Benefit == "" {
		return fmt.Sprintf("invalid daily rate %v: %s", e.Rate, e.Reason)
	}
	return fmt.Sprintf("invalid daily rate %v for %s: %s", e.Rate, e.Benefit, e.Reason)
}

func (e *InvalidRateError) Unwrap() error {
	return ErrInvalidRate
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid client input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrUnknownPattern) ||
		errors.Is(err, ErrInvalidRate) ||
		errors.Is(err, ErrInvalidCap) ||
		errors.Is(err, ErrNegativeAmount) ||
		errors.Is(err, ErrInvalidPeriod)
}
