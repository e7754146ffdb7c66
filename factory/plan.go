/*
Package factory provides YAML/JSON to Go benefit plan conversion.

PURPOSE:
  Converts plan definitions into benefit.Plan values. Daily rates that are
  not supplied per admission (the meal voucher) live here as configuration
  instead of as literals in the calculator.

SCHEMA (YAML; the same keys work as JSON):
  currency: BRL
  cycle_days: 6
  benefits:
    - kind: vt
      label: VT
      name: Vale-Transporte
      rate_source: supplied
    - kind: vr
      label: VR
      name: Vale-Refeição
      rate_source: fixed
      daily_rate: "19.77"

KEY FEATURES:
  - cycle_days at plan level is the default for every benefit
  - daily_rate is parsed as a decimal string (floats are accepted too)
  - The resulting plan is validated before it is returned

USAGE:
  f := factory.NewPlanFactory()
  plan, err := f.LoadPlan("benefits.yaml")

  // Built-in plan
  plan := factory.DefaultPlan()

SEE ALSO:
  - benefit/types.go: Plan and Definition
  - config/config.go: PLAN_FILE setting
*/
package factory

import (
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/warp/admission-benefits/benefit"
	"github.com/warp/admission-benefits/generic"
	"gopkg.in/yaml.v3"
)

// DefaultPlanYAML is the plan used when no plan file is configured.
const DefaultPlanYAML = `
currency: BRL
cycle_days: 6
benefits:
  - kind: vt
    label: VT
    name: Vale-Transporte
    rate_source: supplied
  - kind: vr
    label: VR
    name: Vale-Refeição
    rate_source: fixed
    daily_rate: "19.77"
`

// =============================================================================
// SCHEMA TYPES
// =============================================================================

// PlanJSON is the serialized form of a plan.
type PlanJSON struct {
	Currency  string        `yaml:"currency" json:"currency"`
	CycleDays int           `yaml:"cycle_days" json:"cycle_days"`
	Benefits  []BenefitJSON `yaml:"benefits" json:"benefits"`
}

// BenefitJSON is one benefit entry.
type BenefitJSON struct {
	Kind       string `yaml:"kind" json:"kind"`
	Label      string `yaml:"label" json:"label"`
	Name       string `yaml:"name" json:"name"`
	RateSource string `yaml:"rate_source" json:"rate_source"`
	DailyRate  string `yaml:"daily_rate,omitempty" json:"daily_rate,omitempty"`
	CycleDays  int    `yaml:"cycle_days,omitempty" json:"cycle_days,omitempty"`
}

// =============================================================================
// PLAN FACTORY
// =============================================================================

// PlanFactory converts plan definitions to benefit.Plan.
type PlanFactory struct{}

// NewPlanFactory creates a new plan factory.
func NewPlanFactory() *PlanFactory {
	return &PlanFactory{}
}

// DefaultPlan returns the built-in plan. It panics only if DefaultPlanYAML is broken.
func DefaultPlan() benefit.Plan {
	plan, err := NewPlanFactory().ParsePlan([]byte(DefaultPlanYAML))
	if err != nil {
		panic(fmt.Sprintf("default plan: %v", err))
	}
	return plan
}

// LoadPlan reads and parses a plan file.
func (f *PlanFactory) LoadPlan(path string) (benefit.Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return benefit.Plan{}, fmt.Errorf("failed to read plan file: %w", err)
	}
	return f.ParsePlan(data)
}

// ParsePlan parses YAML (or JSON) into a validated plan.
func (f *PlanFactory) ParsePlan(data []byte) (benefit.Plan, error) {
	var pj PlanJSON
	if err := yaml.Unmarshal(data, &pj); err != nil {
		return benefit.Plan{}, fmt.Errorf("%w: failed to parse plan: %v", generic.ErrPlanInvalid, err)
	}
	return f.FromJSON(pj)
}

// FromJSON converts PlanJSON to benefit.Plan.
func (f *PlanFactory) FromJSON(pj PlanJSON) (benefit.Plan, error) {
	unit := generic.Unit(strings.ToUpper(pj.Currency))
	if unit == "" {
		unit = generic.UnitBRL
	}
	cycle := pj.CycleDays
	if cycle == 0 {
		cycle = benefit.DefaultCycleDays
	}

	plan := benefit.Plan{Benefits: make([]benefit.Definition, 0, len(pj.Benefits))}
	for _, bj := range pj.Benefits {
		def, err := parseBenefit(bj, unit, cycle)
		if err != nil {
			return benefit.Plan{}, err
		}
		plan.Benefits = append(plan.Benefits, def)
	}

	if err := plan.Validate(); err != nil {
		return benefit.Plan{}, err
	}
	return plan, nil
}

// ToJSON converts a plan back to its serialized form.
func (f *PlanFactory) ToJSON(plan benefit.Plan) PlanJSON {
	pj := PlanJSON{CycleDays: benefit.DefaultCycleDays}
	for i, d := range plan.Benefits {
		if i == 0 {
			pj.Currency = string(d.Unit)
		}
		bj := BenefitJSON{
			Kind:       string(d.Kind),
			Label:      d.Label,
			Name:       d.Name,
			RateSource: string(d.Source),
			CycleDays:  d.CycleDays,
		}
		if d.Source == benefit.SourceFixed {
			bj.DailyRate = d.DailyRate.Value.String()
		}
		pj.Benefits = append(pj.Benefits, bj)
	}
	return pj
}

func parseBenefit(bj BenefitJSON, unit generic.Unit, defaultCycle int) (benefit.Definition, error) {
	kind := strings.ToLower(strings.TrimSpace(bj.Kind))
	def := benefit.Definition{
		Kind:      benefit.Kind(kind),
		Label:     bj.Label,
		Name:      bj.Name,
		Source:    parseSource(bj.RateSource),
		CycleDays: bj.CycleDays,
		Unit:      unit,
	}
	if def.Label == "" {
		def.Label = strings.ToUpper(kind)
	}
	if def.Name == "" {
		def.Name = def.Label
	}
	if def.CycleDays == 0 {
		def.CycleDays = defaultCycle
	}

	if bj.DailyRate != "" {
		rate, err := decimal.NewFromString(strings.TrimSpace(bj.DailyRate))
		if err != nil {
			return benefit.Definition{}, fmt.Errorf("%w: benefit %q: daily_rate %q is not a number", generic.ErrPlanInvalid, kind, bj.DailyRate)
		}
		def.DailyRate = generic.Amount{Value: rate, Unit: unit}
	}
	return def, nil
}

func parseSource(s string) benefit.Source {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "supplied", "request":
		return benefit.SourceSupplied
	case "fixed", "config":
		return benefit.SourceFixed
	default:
		return benefit.Source(s)
	}
}
