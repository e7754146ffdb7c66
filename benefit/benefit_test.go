package benefit_test

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/admission-benefits/benefit"
	"github.com/warp/admission-benefits/generic"
	"github.com/warp/admission-benefits/schedule"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func brl(s string) generic.Amount {
	return generic.MustParseAmount(s, generic.UnitBRL)
}

func values(amounts []generic.Amount) []string {
	out := make([]string, len(amounts))
	for i, a := range amounts {
		out[i] = a.StringFixed()
	}
	return out
}

func testPlan() benefit.Plan {
	return benefit.Plan{Benefits: []benefit.Definition{
		{Kind: "vt", Label: "VT", Name: "Transport voucher", Source: benefit.SourceSupplied, CycleDays: 6, Unit: generic.UnitBRL},
		{Kind: "vr", Label: "VR", Name: "Meal voucher", Source: benefit.SourceFixed, DailyRate: brl("19.77"), CycleDays: 6, Unit: generic.UnitBRL},
	}}
}

func workdays(n int) []generic.TimePoint {
	start := generic.NewTimePoint(2024, time.January, 1)
	days := make([]generic.TimePoint, n)
	for i := range days {
		days[i] = start.AddDays(i)
	}
	return days
}

// =============================================================================
// RATES AND TOTALS
// =============================================================================

func TestNewRate_RejectsInvalidValues(t *testing.T) {
	for _, v := range []float64{0, -1, math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := benefit.NewRate(v, generic.UnitBRL)
		assert.ErrorIs(t, err, generic.ErrInvalidRate, "rate %v", v)
	}
}

func TestComputeTotal(t *testing.T) {
	total, err := benefit.ComputeTotal(19.77, workdays(16))
	require.NoError(t, err)
	assert.Equal(t, "316.32", total.StringFixed())

	total, err = benefit.ComputeTotal(8.5, nil)
	require.NoError(t, err)
	assert.True(t, total.IsZero())
}

func TestComputeTotal_InvalidRate(t *testing.T) {
	_, err := benefit.ComputeTotal(-3, workdays(5))

	var rateErr *generic.InvalidRateError
	require.ErrorAs(t, err, &rateErr)
	assert.Equal(t, -3.0, rateErr.Rate)
}

func TestCapFor(t *testing.T) {
	limit, err := benefit.CapFor(brl("19.77"), benefit.DefaultCycleDays)
	require.NoError(t, err)
	assert.Equal(t, "118.62", limit.StringFixed())

	_, err = benefit.CapFor(brl("19.77"), 0)
	assert.ErrorIs(t, err, generic.ErrInvalidCap)
}

// =============================================================================
// INSTALLMENTS
// =============================================================================

func TestSplit_MergesShortTail(t *testing.T) {
	// GIVEN: R$ 250.00 with a R$ 118.62 cap (19.77 x 6)
	// WHEN: Splitting
	// THEN: 2 full installments + 12.76 remainder, merged into [118.62, 131.38]

	installments, err := benefit.Split(brl("250"), brl("118.62"))
	require.NoError(t, err)
	assert.Equal(t, []string{"118.62", "131.38"}, values(installments))
}

func TestSplit_EdgeCases(t *testing.T) {
	cases := []struct {
		name  string
		total string
		limit string
		want  []string
	}{
		{"zero total", "0", "118.62", []string{}},
		{"below cap", "50", "118.62", []string{"50.00"}},
		{"exactly cap", "118.62", "118.62", []string{"118.62"}},
		{"exact multiple", "237.24", "118.62", []string{"118.62", "118.62"}},
		{"one cap and a tail", "160", "60", []string{"60.00", "100.00"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			installments, err := benefit.Split(brl(tc.total), brl(tc.limit))
			require.NoError(t, err)
			assert.Equal(t, tc.want, values(installments))
		})
	}
}

func TestSplit_InvalidInput(t *testing.T) {
	_, err := benefit.Split(brl("10"), brl("0"))
	assert.ErrorIs(t, err, generic.ErrInvalidCap)

	_, err = benefit.Split(brl("10"), brl("-5"))
	assert.ErrorIs(t, err, generic.ErrInvalidCap)

	_, err = benefit.Split(brl("-10"), brl("5"))
	assert.ErrorIs(t, err, generic.ErrNegativeAmount)

	// Ratios too large for an installment slice are rejected, not allocated.
	for _, total := range []string{"1e23", "1000000", "100.01"} {
		_, err = benefit.Split(brl(total), brl("0.01"))
		assert.ErrorIs(t, err, generic.ErrInvalidCap, total)
	}

	installments, err := benefit.Split(brl("100"), brl("0.01"))
	require.NoError(t, err)
	assert.Len(t, installments, 10000)
}

func TestSplit_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 2000; i++ {
		limit := generic.Amount{Value: decimal.New(rng.Int63n(50000)+1, -2), Unit: generic.UnitBRL}
		total := generic.Amount{Value: decimal.New(rng.Int63n(1000000), -2), Unit: generic.UnitBRL}

		installments, err := benefit.Split(total, limit)
		require.NoError(t, err)

		assert.True(t, generic.Sum(installments).Equal(total), "sum of %v != %s", values(installments), total)
		for j, inst := range installments {
			require.True(t, inst.IsPositive())
			if j < len(installments)-1 {
				require.False(t, inst.GreaterThan(limit), "non-final installment %s exceeds cap %s", inst, limit)
			}
		}
		if len(installments) > 1 {
			last := installments[len(installments)-1]
			require.False(t, last.LessThan(limit), "lone short tail %s with cap %s", last, limit)
		}
	}
}

// =============================================================================
// CALCULATE
// =============================================================================

func TestCalculate_BusinessDays(t *testing.T) {
	// GIVEN: Hired 2024-01-10 on 5x2 with VT at R$ 10.00/day and VR fixed at R$ 19.77/day
	// WHEN: Calculating
	// THEN: 16 working days; VT 160.00 -> [60, 100]; VR 316.32 -> [118.62, 197.70]

	result, err := benefit.Calculate(testPlan(), benefit.Request{
		HireDate:      generic.NewTimePoint(2024, time.January, 10),
		Rotation:      schedule.Rotation5x2,
		SuppliedRates: map[benefit.Kind]float64{"vt": 10},
	})
	require.NoError(t, err)

	assert.Equal(t, "2024-01-31", result.Cutoff.String())
	assert.Equal(t, 16, result.DayCount())
	require.Len(t, result.Benefits, 2)

	vt, ok := result.Benefit("vt")
	require.True(t, ok)
	assert.Equal(t, "160.00", vt.Total.StringFixed())
	assert.Equal(t, "60.00", vt.Cap.StringFixed())
	assert.Equal(t, []string{"60.00", "100.00"}, values(vt.Installments))

	vr, ok := result.Benefit("vr")
	require.True(t, ok)
	assert.Equal(t, "316.32", vr.Total.StringFixed())
	assert.Equal(t, []string{"118.62", "197.70"}, values(vr.Installments))
}

func TestCalculate_MissingSuppliedRate(t *testing.T) {
	_, err := benefit.Calculate(testPlan(), benefit.Request{
		HireDate: generic.NewTimePoint(2024, time.January, 10),
		Rotation: schedule.Rotation5x2,
	})

	var rateErr *generic.InvalidRateError
	require.ErrorAs(t, err, &rateErr)
	assert.Equal(t, "VT", rateErr.Benefit)
}

func TestCalculate_InvalidSuppliedRate(t *testing.T) {
	_, err := benefit.Calculate(testPlan(), benefit.Request{
		HireDate:      generic.NewTimePoint(2024, time.January, 10),
		Rotation:      schedule.Rotation5x2,
		SuppliedRates: map[benefit.Kind]float64{"vt": math.NaN()},
	})

	assert.ErrorIs(t, err, generic.ErrInvalidRate)
	assert.True(t, generic.IsClientError(err))
}

func TestCalculate_UnknownRotation(t *testing.T) {
	result, err := benefit.Calculate(testPlan(), benefit.Request{
		HireDate:      generic.NewTimePoint(2024, time.January, 10),
		Rotation:      schedule.Rotation("9x9"),
		SuppliedRates: map[benefit.Kind]float64{"vt": 10},
	})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, generic.ErrUnknownPattern)
}

func TestCalculate_InvalidPlan(t *testing.T) {
	plan := testPlan()
	plan.Benefits[1].CycleDays = 0

	_, err := benefit.Calculate(plan, benefit.Request{
		HireDate:      generic.NewTimePoint(2024, time.January, 10),
		Rotation:      schedule.Rotation5x2,
		SuppliedRates: map[benefit.Kind]float64{"vt": 10},
	})
	assert.ErrorIs(t, err, generic.ErrPlanInvalid)
}

func TestPlan_Validate(t *testing.T) {
	assert.ErrorIs(t, benefit.Plan{}.Validate(), generic.ErrPlanInvalid)

	dup := testPlan()
	dup.Benefits[1].Kind = "vt"
	assert.ErrorIs(t, dup.Validate(), generic.ErrPlanInvalid)

	noRate := testPlan()
	noRate.Benefits[1].DailyRate = generic.Amount{}
	assert.ErrorIs(t, noRate.Validate(), generic.ErrPlanInvalid)

	assert.NoError(t, testPlan().Validate())
	assert.Len(t, testPlan().Supplied(), 1)
}
