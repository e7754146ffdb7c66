package generic

// =============================================================================
// PERIOD - Closed date range used as the benefit reference window
// =============================================================================

// Period is the inclusive range [Start, End].
//
// Examples:
//   - Hired 2024-01-10: [2024-01-10, 2024-01-31]
//   - Hired 2024-01-20: [2024-01-20, 2024-02-29]
type Period struct {
	Start TimePoint
	End   TimePoint
}

// Validate returns ErrInvalidPeriod when End is before Start.
func (p Period) Validate() error {
	if p.End.Before(p.Start) {
		return ErrInvalidPeriod
	}
	return nil
}

// Contains returns true if the time point is within the period [Start, End]
func (p Period) Contains(t TimePoint) bool {
	return t.AfterOrEqual(p.Start) && t.BeforeOrEqual(p.End)
}

// Len returns the number of calendar days in the period, or 0 when invalid.
func (p Period) Len() int {
	if p.Validate() != nil {
		return 0
	}
	return DaysBetween(p.Start, p.End) + 1
}

// Days returns all days in the period as a slice of TimePoints.
func (p Period) Days() []TimePoint {
	days := make([]TimePoint, 0, p.Len())
	current := p.Start
	for current.BeforeOrEqual(p.End) {
		days = append(days, current)
		current = current.AddDays(1)
	}
	return days
}

// Filter returns the days of the period for which keep reports true, in order.
func (p Period) Filter(keep func(TimePoint) bool) []TimePoint {
	var days []TimePoint
	for current := p.Start; current.BeforeOrEqual(p.End); current = current.AddDays(1) {
		if keep(current) {
			days = append(days, current)
		}
	}
	return days
}

// String returns a string representation of the period.
func (p Period) String() string {
	return "[" + p.Start.String() + ", " + p.End.String() + "]"
}
