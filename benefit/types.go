/*
Package benefit turns a working-day schedule into benefit totals and
installment plans.

PURPOSE:
  Every benefit is paid per working day. The total is rate x days, and the
  total is paid out in installments no larger than rate x cycle length, with
  an undersized tail folded into the installment before it.

BENEFIT SOURCES:
  supplied: the daily rate comes with the request (transport voucher, VT)
  fixed:    the daily rate comes from configuration (meal voucher, VR)

  Both run through the same calculator and the same splitter; only the place
  the rate is read from differs.

USAGE:
  result, err := benefit.Calculate(plan, benefit.Request{
      HireDate:      generic.NewTimePoint(2024, time.January, 10),
      Rotation:      schedule.Rotation5x2,
      SuppliedRates: map[benefit.Kind]float64{"vt": 12.5},
  })

CONCURRENCY:
  Everything here is a pure function of its arguments. Plans are values and
  are never mutated after construction, so one plan may serve concurrent
  requests.

SEE ALSO:
  - calculator.go:   NewRate, ComputeTotal, CapFor
  - installments.go: Split
  - breakdown.go:    Calculate
  - factory/plan.go: Plan definitions from YAML/JSON
*/
package benefit

import (
	"fmt"

	"github.com/warp/admission-benefits/generic"
)

// DefaultCycleDays is the installment cap multiplier: one installment covers
// at most this many working days.
const DefaultCycleDays = 6

// =============================================================================
// BENEFIT DEFINITIONS
// =============================================================================

// Kind identifies a benefit within a plan (e.g. "vt", "vr").
type Kind string

// Source says where a benefit's daily rate comes from.
type Source string

const (
	SourceSupplied Source = "supplied"
	SourceFixed    Source = "fixed"
)

// Definition is one benefit of a plan.
type Definition struct {
	Kind      Kind
	Label     string       // short display label, e.g. "VT"
	Name      string       // long display name
	Source    Source
	DailyRate generic.Amount // only meaningful for SourceFixed
	CycleDays int
	Unit      generic.Unit
}

// Plan is the ordered set of benefits computed for every admission.
type Plan struct {
	Benefits []Definition
}

// Validate checks the plan can be calculated.
func (p Plan) Validate() error {
	if len(p.Benefits) == 0 {
		return fmt.Errorf("%w: no benefits defined", generic.ErrPlanInvalid)
	}
	seen := make(map[Kind]bool, len(p.Benefits))
	for _, d := range p.Benefits {
		if d.Kind == "" {
			return fmt.Errorf("%w: benefit without kind", generic.ErrPlanInvalid)
		}
		if seen[d.Kind] {
			return fmt.Errorf("%w: duplicate benefit %q", generic.ErrPlanInvalid, d.Kind)
		}
		seen[d.Kind] = true

		if d.CycleDays <= 0 {
			return fmt.Errorf("%w: benefit %q: cycle_days must be positive", generic.ErrPlanInvalid, d.Kind)
		}
		switch d.Source {
		case SourceSupplied:
		case SourceFixed:
			if !d.DailyRate.IsPositive() {
				return fmt.Errorf("%w: benefit %q: fixed daily rate must be positive", generic.ErrPlanInvalid, d.Kind)
			}
		default:
			return fmt.Errorf("%w: benefit %q: unknown rate source %q", generic.ErrPlanInvalid, d.Kind, d.Source)
		}
	}
	return nil
}

// Supplied returns the benefits whose rate must come with the request.
func (p Plan) Supplied() []Definition {
	var out []Definition
	for _, d := range p.Benefits {
		if d.Source == SourceSupplied {
			out = append(out, d)
		}
	}
	return out
}

// Find returns the definition for kind.
func (p Plan) Find(kind Kind) (Definition, bool) {
	for _, d := range p.Benefits {
		if d.Kind == kind {
			return d, true
		}
	}
	return Definition{}, false
}
