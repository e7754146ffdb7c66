package schedule

import (
	"github.com/warp/admission-benefits/generic"
)

// lateAdmissionDay is the first day of the month whose admissions roll over
// to the end of the following month.
const lateAdmissionDay = 15

// CutoffFor returns the last day counted for an employee hired on hire.
// Days 1-14 close at the end of the hire month; later days close at the end
// of the following month (December rolls into January of the next year).
func CutoffFor(hire generic.TimePoint) generic.TimePoint {
	if hire.Day() < lateAdmissionDay {
		return generic.EndOfMonth(hire.Year(), hire.Month())
	}
	year, month := hire.Year(), hire.Month()+1
	if month > 12 {
		year, month = year+1, 1
	}
	return generic.EndOfMonth(year, month)
}

// Window returns the inclusive reference period [hire, cutoff].
func Window(hire generic.TimePoint) generic.Period {
	return generic.Period{Start: hire, End: CutoffFor(hire)}
}

// Generate returns the working days between hire and its cutoff, in
// chronological order. An unknown rotation is an error, never an empty schedule.
func Generate(hire generic.TimePoint, r Rotation) ([]generic.TimePoint, error) {
	spec, err := Lookup(r)
	if err != nil {
		return nil, err
	}
	return GenerateWindow(Window(hire), spec), nil
}

// GenerateWindow applies spec to an explicit window.
func GenerateWindow(window generic.Period, spec Spec) []generic.TimePoint {
	if spec.Business {
		return businessDays(window)
	}
	return cycleDays(window, spec.Cycle)
}

func businessDays(window generic.Period) []generic.TimePoint {
	return window.Filter(generic.TimePoint.IsWorkday)
}

// cycleDays walks the window in (work, rest) blocks. A block may be cut
// short by the cutoff; the rest skip always runs in full and the loop
// re-checks the cutoff before the next block.
func cycleDays(window generic.Period, c Cycle) []generic.TimePoint {
	if c.Work <= 0 {
		return nil
	}
	var days []generic.TimePoint
	current := window.Start
	for current.BeforeOrEqual(window.End) {
		for i := 0; i < c.Work; i++ {
			if current.After(window.End) {
				break
			}
			days = append(days, current)
			current = current.AddDays(1)
		}
		current = current.AddDays(c.Rest)
	}
	return days
}
