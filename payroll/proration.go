/*
proration.go - Eligibility and worked-span resolution

PURPOSE:
  Decides whether an employee belongs in a pay period at all, and if so,
  which part of the period they actually worked. The worked span drives
  every prorated amount downstream: amount × days / totalDays, rounded
  to cents at each leaf.

ELIGIBILITY:
  An employee is excluded (InactiveEmployeeError) when:
  - employment status isn't Active
  - the termination's last working day precedes the period start
  - the joining date follows the period end

CLAMPING:
  1. Start at the period bounds.
  2. Joining date inside the period clamps the start ("Join").
  3. Last working day inside the period clamps the end ("Exit",
     or "Join & Exit" when both apply).
  4. Otherwise a lifecycle event inside the period records its type as
     the reason - informational only, dates stay untouched.
*/
package payroll

// =============================================================================
// PRORATION RESULT
// =============================================================================

// Proration is the worked-span outcome for one employee in one period.
type Proration struct {
	Days      int
	TotalDays int
	Reason    string // empty for a full period
}

// Proration reasons for clamped spans.
const (
	ReasonJoin        = "Join"
	ReasonExit        = "Exit"
	ReasonJoinAndExit = "Join & Exit"
)

// IsProrated reports whether the employee worked less than the full period.
func (p Proration) IsProrated() bool { return p.Days < p.TotalDays }

// Apply scales a full-period amount by the worked-day ratio, rounded to
// cents. Full spans pass through with only the rounding applied.
func (p Proration) Apply(amount Money) Money {
	if !p.IsProrated() {
		return amount.Round2()
	}
	return amount.ProrateBy(p.Days, p.TotalDays)
}

// =============================================================================
// PRORATION ENGINE
// =============================================================================

// ResolveProration performs the eligibility test and worked-span clamping
// for one employee against one period.
func ResolveProration(emp Employee, period PayPeriod) (Proration, error) {
	if period.End.Before(period.Start) {
		return Proration{}, ErrInvalidPeriod
	}
	if emp.Status != StatusActive {
		return Proration{}, &InactiveEmployeeError{
			EmployeeID: emp.ID,
			Status:     emp.Status,
			Detail:     "status is " + string(emp.Status),
		}
	}
	if emp.Termination != nil && emp.Termination.LastWorkingDay.Before(period.Start) {
		return Proration{}, &InactiveEmployeeError{
			EmployeeID: emp.ID,
			Status:     emp.Status,
			Detail:     "terminated before period start",
		}
	}
	if emp.JoiningDate.After(period.End) {
		return Proration{}, &InactiveEmployeeError{
			EmployeeID: emp.ID,
			Status:     emp.Status,
			Detail:     "joined after period end",
		}
	}

	start := period.Start
	end := period.End
	reason := ""

	if period.Contains(emp.JoiningDate) && emp.JoiningDate.After(start) {
		start = emp.JoiningDate
		reason = ReasonJoin
	}
	if emp.Termination != nil && period.Contains(emp.Termination.LastWorkingDay) {
		end = emp.Termination.LastWorkingDay
		if reason == ReasonJoin {
			reason = ReasonJoinAndExit
		} else {
			reason = ReasonExit
		}
	}

	// Lifecycle events annotate a full span but never clamp it.
	if reason == "" {
		for _, ev := range emp.History {
			if period.Contains(ev.Date) {
				reason = string(ev.Type)
				break
			}
		}
	}

	totalDays := period.TotalDays()
	days := DaysInclusive(start, end)
	if days < 0 {
		days = 0
	}
	if days > totalDays {
		days = totalDays
	}

	return Proration{Days: days, TotalDays: totalDays, Reason: reason}, nil
}

// FullSpan returns an unprorated span for the period, keeping any
// informational reason from the employee's lifecycle history. Used when
// proration is disabled in the engine configuration.
func FullSpan(emp Employee, period PayPeriod) Proration {
	reason := ""
	for _, ev := range emp.History {
		if period.Contains(ev.Date) {
			reason = string(ev.Type)
			break
		}
	}
	total := period.TotalDays()
	return Proration{Days: total, TotalDays: total, Reason: reason}
}
