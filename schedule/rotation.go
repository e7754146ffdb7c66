// Package schedule derives the working days of a newly admitted employee.
// A rotation decides which calendar days count; the cutoff rule decides
// where counting stops.
package schedule

import (
	"strings"

	"github.com/warp/admission-benefits/generic"
)

// =============================================================================
// ROTATION PATTERNS
// =============================================================================

// Rotation identifies a work/rest pattern.
type Rotation string

const (
	Rotation12x36 Rotation = "12x36" // 24h alternating: work 1, rest 1
	Rotation5x2   Rotation = "5x2"   // business days only
	Rotation4x2   Rotation = "4x2"
	Rotation5x1   Rotation = "5x1"
	Rotation6x1   Rotation = "6x1"
)

// Cycle is a fixed (work, rest) day count.
type Cycle struct {
	Work int
	Rest int
}

// Spec describes one catalog entry. Business rotations filter by weekday and
// carry no cycle.
type Spec struct {
	Rotation    Rotation
	Description string
	Business    bool
	Cycle       Cycle
}

// catalog is read-only after package initialisation.
var catalog = []Spec{
	{Rotation: Rotation12x36, Description: "continuous 24h alternating (work 1, rest 1)", Cycle: Cycle{Work: 1, Rest: 1}},
	{Rotation: Rotation5x2, Description: "standard business days (Monday to Friday)", Business: true},
	{Rotation: Rotation4x2, Description: "4 days on, 2 days off", Cycle: Cycle{Work: 4, Rest: 2}},
	{Rotation: Rotation5x1, Description: "5 days on, 1 day off", Cycle: Cycle{Work: 5, Rest: 1}},
	{Rotation: Rotation6x1, Description: "6 days on, 1 day off", Cycle: Cycle{Work: 6, Rest: 1}},
}

// aliases accepted by ParseRotation in addition to the canonical identifiers.
var aliases = map[string]Rotation{
	"continuous-24h-alternating": Rotation12x36,
	"standard-business":          Rotation5x2,
	"business":                   Rotation5x2,
	"4-on-2-off":                 Rotation4x2,
	"5-on-1-off":                 Rotation5x1,
	"6-on-1-off":                 Rotation6x1,
}

// Rotations returns the catalog in display order.
func Rotations() []Spec {
	out := make([]Spec, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup returns the catalog entry for r.
func Lookup(r Rotation) (Spec, error) {
	for _, s := range catalog {
		if s.Rotation == r {
			return s, nil
		}
	}
	return Spec{}, &generic.UnknownPatternError{Pattern: string(r)}
}

// ParseRotation normalises user input ("6X1", " 5x2 ", "6-on-1-off") to a Rotation.
func ParseRotation(s string) (Rotation, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if r, ok := aliases[key]; ok {
		return r, nil
	}
	spec, err := Lookup(Rotation(key))
	if err != nil {
		return "", &generic.UnknownPatternError{Pattern: s}
	}
	return spec.Rotation, nil
}

func (r Rotation) String() string { return string(r) }
