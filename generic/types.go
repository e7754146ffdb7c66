/*
Package generic provides the calendar and money primitives shared by the
schedule and benefit packages.

PURPOSE:
  Nothing in here knows about rotations or vouchers. It only knows about
  calendar days, inclusive date ranges and monetary amounts, and the error
  vocabulary every other package speaks.

KEY CONCEPTS IN THIS FILE (types.go):
  - Amount: A monetary quantity with a currency unit (e.g., R$ 118.62)
  - Unit:   The currency the amount is expressed in

DESIGN PRINCIPLES:
  1. Precision: Uses decimal.Decimal, so installment sums equal totals exactly
  2. Immutability: Every Amount operation returns a new value
  3. Display rounding (2 places) happens only at the edges (reports, DTOs)

USAGE:
  rate := generic.NewAmount(19.77, generic.UnitBRL)
  cap := rate.MulInt(6) // R$ 118.62

SEE ALSO:
  - time.go:   TimePoint and month helpers
  - period.go: Period (inclusive date range)
  - errors.go: Sentinel and structured errors
*/
package generic

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// AMOUNT - Monetary quantity with unit
// =============================================================================

type Amount struct {
	Value decimal.Decimal
	Unit  Unit
}

type Unit string

const (
	UnitBRL Unit = "BRL"
)

// Symbol returns the display prefix for the unit.
func (u Unit) Symbol() string {
	switch u {
	case UnitBRL:
		return "R$"
	default:
		return string(u)
	}
}

func NewAmount(value float64, unit Unit) Amount {
	return Amount{Value: decimal.NewFromFloat(value), Unit: unit}
}

func NewAmountFromInt(value int, unit Unit) Amount {
	return Amount{Value: decimal.NewFromInt(int64(value)), Unit: unit}
}

func MustParseAmount(s string, unit Unit) Amount {
	return Amount{Value: decimal.RequireFromString(s), Unit: unit}
}

func (a Amount) Zero() Amount                 { return Amount{Value: decimal.Zero, Unit: a.Unit} }
func (a Amount) Add(b Amount) Amount          { return Amount{Value: a.Value.Add(b.Value), Unit: a.Unit} }
func (a Amount) Sub(b Amount) Amount          { return Amount{Value: a.Value.Sub(b.Value), Unit: a.Unit} }
func (a Amount) Mul(s decimal.Decimal) Amount { return Amount{Value: a.Value.Mul(s), Unit: a.Unit} }
func (a Amount) MulInt(n int) Amount          { return a.Mul(decimal.NewFromInt(int64(n))) }
func (a Amount) IsNegative() bool             { return a.Value.IsNegative() }
func (a Amount) IsZero() bool                 { return a.Value.IsZero() }
func (a Amount) IsPositive() bool             { return a.Value.IsPositive() }
func (a Amount) Equal(b Amount) bool          { return a.Value.Equal(b.Value) }
func (a Amount) GreaterThan(b Amount) bool    { return a.Value.GreaterThan(b.Value) }
func (a Amount) LessThan(b Amount) bool       { return a.Value.LessThan(b.Value) }

// Float64 returns the nearest float64, for JSON responses.
func (a Amount) Float64() float64 {
	f, _ := a.Value.Float64()
	return f
}

// StringFixed renders the amount with two decimals, without the currency symbol.
func (a Amount) StringFixed() string { return a.Value.StringFixed(2) }

// String renders the amount for display, e.g. "R$ 131.38".
func (a Amount) String() string { return a.Unit.Symbol() + " " + a.StringFixed() }

// Sum adds up amounts. The unit of the result is the unit of the first element.
func Sum(amounts []Amount) Amount {
	if len(amounts) == 0 {
		return Amount{Value: decimal.Zero}
	}
	total := amounts[0].Zero()
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}
