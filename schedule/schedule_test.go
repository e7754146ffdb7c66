package schedule_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/admission-benefits/generic"
	"github.com/warp/admission-benefits/schedule"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func date(year int, month time.Month, day int) generic.TimePoint {
	return generic.NewTimePoint(year, month, day)
}

func isoDates(days []generic.TimePoint) []string {
	out := make([]string, len(days))
	for i, d := range days {
		out[i] = d.String()
	}
	return out
}

func everyDayOf(year int) []generic.TimePoint {
	return generic.Period{Start: date(year, time.January, 1), End: date(year, time.December, 31)}.Days()
}

// =============================================================================
// CUTOFF
// =============================================================================

func TestCutoffFor(t *testing.T) {
	cases := []struct {
		name string
		hire generic.TimePoint
		want generic.TimePoint
	}{
		{"first day closes same month", date(2024, time.February, 1), date(2024, time.February, 29)},
		{"day 14 closes same month", date(2024, time.January, 14), date(2024, time.January, 31)},
		{"day 15 rolls to next month (leap)", date(2024, time.January, 15), date(2024, time.February, 29)},
		{"day 15 rolls to next month (non-leap)", date(2023, time.January, 15), date(2023, time.February, 28)},
		{"december rolls into january", date(2024, time.December, 15), date(2025, time.January, 31)},
		{"last day of november", date(2024, time.November, 30), date(2024, time.December, 31)},
		{"31st rolls to a 30-day month", date(2024, time.March, 31), date(2024, time.April, 30)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := schedule.CutoffFor(tc.hire)
			assert.True(t, got.Equal(tc.want), "cutoff for %s: want %s, got %s", tc.hire, tc.want, got)
		})
	}
}

func TestCutoffFor_EveryDayOfYear(t *testing.T) {
	for _, hire := range everyDayOf(2024) {
		cutoff := schedule.CutoffFor(hire)
		if hire.Day() <= 14 {
			assert.Equal(t, hire.Month(), cutoff.Month(), "hire %s", hire)
		} else {
			next := hire.Time.AddDate(0, 0, -hire.Day()+1).AddDate(0, 1, 0)
			assert.Equal(t, next.Month(), cutoff.Month(), "hire %s", hire)
			assert.Equal(t, next.Year(), cutoff.Year(), "hire %s", hire)
		}
		assert.Equal(t, 1, cutoff.AddDays(1).Day(), "cutoff %s must be a month end", cutoff)
	}
}

// =============================================================================
// ROTATION CATALOG
// =============================================================================

func TestParseRotation(t *testing.T) {
	cases := map[string]schedule.Rotation{
		"12x36":             schedule.Rotation12x36,
		"5x2":               schedule.Rotation5x2,
		" 6X1 ":             schedule.Rotation6x1,
		"standard-business": schedule.Rotation5x2,
		"4-on-2-off":        schedule.Rotation4x2,
		"5-on-1-off":        schedule.Rotation5x1,
	}
	for in, want := range cases {
		got, err := schedule.ParseRotation(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

func TestParseRotation_Unknown(t *testing.T) {
	_, err := schedule.ParseRotation("7x0")

	require.Error(t, err)
	assert.ErrorIs(t, err, generic.ErrUnknownPattern)
	var patternErr *generic.UnknownPatternError
	require.ErrorAs(t, err, &patternErr)
	assert.Equal(t, "7x0", patternErr.Pattern)
}

func TestRotations_ReturnsCopy(t *testing.T) {
	list := schedule.Rotations()
	require.Len(t, list, 5)
	list[0].Cycle.Work = 99

	spec, err := schedule.Lookup(schedule.Rotation12x36)
	require.NoError(t, err)
	assert.Equal(t, 1, spec.Cycle.Work, "catalog must not be mutable through Rotations()")
}

// =============================================================================
// GENERATE - EXAMPLES
// =============================================================================

func TestGenerate_BusinessDays(t *testing.T) {
	// GIVEN: Hired Wednesday 2024-01-10 on business days
	// WHEN: Generating the schedule
	// THEN: Weekdays from Jan 10 to Jan 31, weekends excluded

	days, err := schedule.Generate(date(2024, time.January, 10), schedule.Rotation5x2)
	require.NoError(t, err)

	assert.Len(t, days, 16)
	assert.Equal(t, "2024-01-10", days[0].String())
	assert.Equal(t, "2024-01-31", days[len(days)-1].String())
	got := isoDates(days)
	for _, weekend := range []string{"2024-01-13", "2024-01-14", "2024-01-20", "2024-01-21", "2024-01-27", "2024-01-28"} {
		assert.NotContains(t, got, weekend)
	}
}

func TestGenerate_SixOnOneOffAcrossLeapFebruary(t *testing.T) {
	// GIVEN: Hired 2024-01-20 on 6x1
	// WHEN: Generating the schedule
	// THEN: Cutoff is 2024-02-29; runs are Jan 20-25, Jan 27-Feb 1, ...

	days, err := schedule.Generate(date(2024, time.January, 20), schedule.Rotation6x1)
	require.NoError(t, err)

	got := isoDates(days)
	assert.Equal(t, []string{
		"2024-01-20", "2024-01-21", "2024-01-22", "2024-01-23", "2024-01-24", "2024-01-25",
		"2024-01-27", "2024-01-28", "2024-01-29", "2024-01-30", "2024-01-31", "2024-02-01",
	}, got[:12])
	assert.NotContains(t, got, "2024-01-26")
	assert.NotContains(t, got, "2024-02-02")
	assert.Len(t, days, 36)
	assert.Equal(t, "2024-02-29", got[len(got)-1])
}

func TestGenerate_FixedCycleCounts(t *testing.T) {
	cases := []struct {
		name     string
		hire     generic.TimePoint
		rotation schedule.Rotation
		want     int
	}{
		{"12x36 alternates", date(2024, time.January, 10), schedule.Rotation12x36, 11},
		{"4x2 over March", date(2024, time.March, 1), schedule.Rotation4x2, 21},
		{"5x1 across new year", date(2024, time.December, 20), schedule.Rotation5x1, 36},
		{"6x1 truncated block", date(2024, time.January, 29), schedule.Rotation6x1, 28},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			days, err := schedule.Generate(tc.hire, tc.rotation)
			require.NoError(t, err)
			assert.Len(t, days, tc.want)
		})
	}
}

func TestGenerate_UnknownRotationIsAnError(t *testing.T) {
	days, err := schedule.Generate(date(2024, time.January, 10), schedule.Rotation("3x3"))

	assert.Nil(t, days)
	assert.ErrorIs(t, err, generic.ErrUnknownPattern)
}

// =============================================================================
// GENERATE - PROPERTIES
// =============================================================================

func TestGenerate_OrderedUniqueAndBounded(t *testing.T) {
	for _, spec := range schedule.Rotations() {
		for _, hire := range everyDayOf(2024) {
			days, err := schedule.Generate(hire, spec.Rotation)
			require.NoError(t, err)
			require.NotEmpty(t, days, "%s from %s", spec.Rotation, hire)

			window := schedule.Window(hire)
			for i, d := range days {
				require.True(t, window.Contains(d), "%s outside %s", d, window)
				if i > 0 {
					require.True(t, days[i-1].Before(d), "%s not after %s", d, days[i-1])
				}
			}
		}
	}
}

func TestGenerate_BusinessDaysProperty(t *testing.T) {
	for _, hire := range everyDayOf(2024) {
		days, err := schedule.Generate(hire, schedule.Rotation5x2)
		require.NoError(t, err)

		kept := make(map[string]bool, len(days))
		for _, d := range days {
			require.True(t, d.IsWorkday(), "%s is a weekend day", d)
			kept[d.String()] = true
		}

		window := schedule.Window(hire)
		for start := window.Start; !start.AddDays(6).After(window.End); start = start.AddDays(1) {
			count := 0
			for i := 0; i < 7; i++ {
				if kept[start.AddDays(i).String()] {
					count++
				}
			}
			require.Equal(t, 5, count, "week starting %s", start)
		}
	}
}

func TestGenerate_FixedCycleRunsAndGaps(t *testing.T) {
	for _, spec := range schedule.Rotations() {
		if spec.Business {
			continue
		}
		for _, hire := range everyDayOf(2024) {
			days, err := schedule.Generate(hire, spec.Rotation)
			require.NoError(t, err)

			run := 1
			for i := 1; i < len(days); i++ {
				gap := generic.DaysBetween(days[i-1], days[i]) - 1
				if gap == 0 {
					run++
					continue
				}
				require.Equal(t, spec.Cycle.Rest, gap, "%s from %s: gap before %s", spec.Rotation, hire, days[i])
				require.Equal(t, spec.Cycle.Work, run, "%s from %s: run before %s", spec.Rotation, hire, days[i])
				run = 1
			}
			require.LessOrEqual(t, run, spec.Cycle.Work)
		}
	}
}

func TestGenerate_IsDeterministic(t *testing.T) {
	hire := date(2024, time.May, 17)
	first, err := schedule.Generate(hire, schedule.Rotation4x2)
	require.NoError(t, err)
	second, err := schedule.Generate(hire, schedule.Rotation4x2)
	require.NoError(t, err)

	assert.Equal(t, isoDates(first), isoDates(second))
}
