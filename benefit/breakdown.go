package benefit

import (
	"errors"
	"fmt"

	"github.com/warp/admission-benefits/generic"
	"github.com/warp/admission-benefits/schedule"
)

// =============================================================================
// CALCULATION
// =============================================================================

// Request is the validated input of one admission calculation.
type Request struct {
	HireDate      generic.TimePoint
	Rotation      schedule.Rotation
	SuppliedRates map[Kind]float64 // rates for SourceSupplied benefits
}

// Breakdown is the result for one benefit.
type Breakdown struct {
	Kind         Kind
	Label        string
	Name         string
	DailyRate    generic.Amount
	Total        generic.Amount
	Cap          generic.Amount
	Installments []generic.Amount
}

// Result is the full outcome of Calculate.
type Result struct {
	HireDate generic.TimePoint
	Rotation schedule.Rotation
	Cutoff   generic.TimePoint
	Days     []generic.TimePoint
	Benefits []Breakdown
}

// DayCount returns the number of working days counted.
func (r *Result) DayCount() int { return len(r.Days) }

// Benefit returns the breakdown for kind.
func (r *Result) Benefit(kind Kind) (Breakdown, bool) {
	for _, b := range r.Benefits {
		if b.Kind == kind {
			return b, true
		}
	}
	return Breakdown{}, false
}

// Calculate computes the cutoff and schedule once, then every benefit of the
// plan in order. Nothing is returned unless every benefit succeeds.
func Calculate(plan Plan, req Request) (*Result, error) {
	if err := plan.Validate(); err != nil {
		return nil, err
	}

	rates := make([]generic.Amount, len(plan.Benefits))
	for i, def := range plan.Benefits {
		rate, err := rateFor(def, req.SuppliedRates)
		if err != nil {
			return nil, err
		}
		rates[i] = rate
	}

	days, err := schedule.Generate(req.HireDate, req.Rotation)
	if err != nil {
		return nil, err
	}

	result := &Result{
		HireDate: req.HireDate,
		Rotation: req.Rotation,
		Cutoff:   schedule.CutoffFor(req.HireDate),
		Days:     days,
		Benefits: make([]Breakdown, 0, len(plan.Benefits)),
	}

	for i, def := range plan.Benefits {
		b, err := breakdownFor(def, rates[i], len(days))
		if err != nil {
			return nil, fmt.Errorf("benefit %s: %w", def.Kind, err)
		}
		result.Benefits = append(result.Benefits, b)
	}
	return result, nil
}

func rateFor(def Definition, supplied map[Kind]float64) (generic.Amount, error) {
	unit := def.Unit
	if unit == "" {
		unit = generic.UnitBRL
	}
	if def.Source == SourceFixed {
		return generic.Amount{Value: def.DailyRate.Value, Unit: unit}, nil
	}

	v, ok := supplied[def.Kind]
	if !ok {
		return generic.Amount{}, &generic.InvalidRateError{Benefit: def.Label, Reason: "missing"}
	}
	rate, err := NewRate(v, unit)
	if err != nil {
		var rateErr *generic.InvalidRateError
		if errors.As(err, &rateErr) {
			rateErr.Benefit = def.Label
		}
		return generic.Amount{}, err
	}
	return rate, nil
}

func breakdownFor(def Definition, rate generic.Amount, dayCount int) (Breakdown, error) {
	limit, err := CapFor(rate, def.CycleDays)
	if err != nil {
		return Breakdown{}, err
	}
	total := TotalFor(rate, dayCount)
	installments, err := Split(total, limit)
	if err != nil {
		return Breakdown{}, err
	}
	return Breakdown{
		Kind:         def.Kind,
		Label:        def.Label,
		Name:         def.Name,
		DailyRate:    rate,
		Total:        total,
		Cap:          limit,
		Installments: installments,
	}, nil
}
