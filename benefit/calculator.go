package benefit

import (
	"math"

	"github.com/shopspring/decimal"
	"github.com/warp/admission-benefits/generic"
)

// NewRate validates a caller-supplied daily rate and converts it to an Amount.
func NewRate(v float64, unit generic.Unit) (generic.Amount, error) {
	switch {
	case math.IsNaN(v) || math.IsInf(v, 0):
		return generic.Amount{}, &generic.InvalidRateError{Rate: v, Reason: "not a finite number"}
	case v <= 0:
		return generic.Amount{}, &generic.InvalidRateError{Rate: v, Reason: "must be positive"}
	}
	return generic.NewAmount(v, unit), nil
}

// ComputeTotal returns rate x len(days).
func ComputeTotal(rate float64, days []generic.TimePoint) (generic.Amount, error) {
	r, err := NewRate(rate, generic.UnitBRL)
	if err != nil {
		return generic.Amount{}, err
	}
	return TotalFor(r, len(days)), nil
}

// TotalFor multiplies an already validated rate by a day count.
func TotalFor(rate generic.Amount, dayCount int) generic.Amount {
	return rate.Mul(decimal.NewFromInt(int64(dayCount)))
}

// CapFor returns the largest single installment: rate x cycles.
func CapFor(rate generic.Amount, cycles int) (generic.Amount, error) {
	if !rate.IsPositive() || cycles <= 0 {
		return generic.Amount{}, generic.ErrInvalidCap
	}
	return rate.MulInt(cycles), nil
}
