package payroll

// =============================================================================
// PAY PERIOD - The calendar bounds every calculation runs against
// =============================================================================

// PayPeriod is the concrete [Start, End] window a cycle's month+frequency
// resolves to. Every downstream stage (proration, structure filtering,
// statutory caps, cost allocation) works against these bounds.
type PayPeriod struct {
	Start TimePoint
	End   TimePoint
}

// Contains returns true if the date is within [Start, End].
func (p PayPeriod) Contains(t TimePoint) bool {
	return t.AfterOrEqual(p.Start) && t.BeforeOrEqual(p.End)
}

// TotalDays is the inclusive calendar-day count of the period.
func (p PayPeriod) TotalDays() int {
	return DaysInclusive(p.Start, p.End)
}

func (p PayPeriod) String() string {
	return "[" + p.Start.String() + ", " + p.End.String() + "]"
}

// =============================================================================
// FREQUENCY
// =============================================================================

type Frequency string

const (
	Monthly     Frequency = "Monthly"
	SemiMonthly Frequency = "Semi-Monthly"
	Weekly      Frequency = "Weekly"
	BiWeekly    Frequency = "Bi-Weekly"
)

// =============================================================================
// PAYROLL CYCLE
// =============================================================================

// PayrollCycle identifies one batch run. The id is assigned by the caller's
// orchestration layer; the engine is stateless beyond Month and Frequency.
type PayrollCycle struct {
	ID        CycleID
	Month     YearMonth
	Frequency Frequency
}

// =============================================================================
// PAY PERIOD RESOLVER
// =============================================================================

// ResolvePayPeriod converts a cycle's month + frequency into calendar bounds.
//
// The Semi-Monthly split is decided by the CURRENT day-of-month (`today`),
// not by anything period-relative: on or before the 15th the half runs
// 1..15, after the 15th it runs 16..month-end. Reprocessing a past month
// therefore needs the clock it originally ran under; callers inject it via
// Config.Now.
func ResolvePayPeriod(month YearMonth, frequency Frequency, today TimePoint) PayPeriod {
	first := month.First()
	last := month.Last()

	switch frequency {
	case SemiMonthly:
		if today.Day() <= 15 {
			return PayPeriod{Start: first, End: NewTimePoint(month.Year, month.Month, 15)}
		}
		return PayPeriod{Start: NewTimePoint(month.Year, month.Month, 16), End: last}

	case Weekly:
		return PayPeriod{Start: first, End: first.AddDays(6)}

	case BiWeekly:
		return PayPeriod{Start: first, End: first.AddDays(13)}

	default: // Monthly
		return PayPeriod{Start: first, End: last}
	}
}
