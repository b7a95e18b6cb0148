/*
employee.go - Employee contractual data read by the engine

PURPOSE:
  The shapes the external employee directory supplies: identity, status,
  lifecycle dates and events, the versioned salary component list, and
  project assignments. The engine only reads these records; it never
  mutates them.

KEY CONCEPTS:
  SalaryComponent:
    Versioned, effective-dated configuration. Multiple versions of the same
    logical component may coexist; only the version(s) overlapping the pay
    period are effective. This is a list filtered by interval containment,
    never a mutable singleton keyed by name.

  ComponentKind:
    Explicit allowance-vs-deduction classification. An unset kind is
    treated as an allowance, which matches how unclassified structure
    members have historically been paid out.

  ProjectAssignment:
    Concurrent assignments carry either a percentage or a monthly-hours
    figure; when several overlap a period their factors must be
    normalizable to sum to 1.0.
*/
package payroll

// =============================================================================
// EMPLOYEE
// =============================================================================

type EmploymentStatus string

const (
	StatusActive     EmploymentStatus = "Active"
	StatusTerminated EmploymentStatus = "Terminated"
	StatusOnLeave    EmploymentStatus = "OnLeave"
	StatusSuspended  EmploymentStatus = "Suspended"
)

type Employee struct {
	ID     EmployeeID
	Name   string
	Email  string
	Status EmploymentStatus

	// BasicSalary is the monthly basic rate before proration.
	BasicSalary Money

	JoiningDate TimePoint
	Termination *Termination // nil while employed

	// History is the ordered lifecycle event list (transfers, promotions,
	// salary revisions). Events inside a pay period annotate the proration
	// reason; they never clamp dates.
	History []LifecycleEvent

	SalaryStructure []SalaryComponent
	Assignments     []ProjectAssignment
}

type Termination struct {
	LastWorkingDay TimePoint
	Reason         string
}

// =============================================================================
// LIFECYCLE EVENTS
// =============================================================================

type EventType string

const (
	EventTransfer       EventType = "Transfer"
	EventPromotion      EventType = "Promotion"
	EventSalaryRevision EventType = "Salary Revision"
)

type LifecycleEvent struct {
	Type EventType
	Date TimePoint
	Note string
}

// =============================================================================
// SALARY COMPONENT - Versioned, effective-dated structure entry
// =============================================================================

type CalcMode string

const (
	ModeFixedAmount       CalcMode = "FixedAmount"
	ModePercentageOfBasic CalcMode = "PercentageOfBasic"
)

type ComponentKind string

const (
	KindAllowance ComponentKind = "Allowance"
	KindDeduction ComponentKind = "Deduction"
)

type SalaryComponent struct {
	ID   ComponentID
	Name string
	Kind ComponentKind // unset reads as KindAllowance
	Mode CalcMode

	// Amount is the fixed amount for ModeFixedAmount; Rate is the percent
	// of basic for ModePercentageOfBasic.
	Amount Money
	Rate   float64

	EffectiveDate TimePoint
	EndDate       *TimePoint // nil = open-ended

	// Taxable marks allowances that add to taxable income. TaxExempt marks
	// deductions that reduce it.
	Taxable   bool
	TaxExempt bool
}

// IsAllowance reports whether the component pays out. Unclassified
// components count as allowances.
func (c SalaryComponent) IsAllowance() bool {
	return c.Kind == KindAllowance || c.Kind == ""
}

func (c SalaryComponent) IsDeduction() bool {
	return c.Kind == KindDeduction
}

// OverlapsSpan reports whether the component's effective interval intersects
// [start, end]. A component ending before the span or starting after it is
// excluded.
func (c SalaryComponent) OverlapsSpan(start, end TimePoint) bool {
	if c.EffectiveDate.After(end) {
		return false
	}
	if c.EndDate != nil && c.EndDate.Before(start) {
		return false
	}
	return true
}

// ResolveAmount computes the component's full-period amount against the
// given basic salary, rounded to cents.
func (c SalaryComponent) ResolveAmount(basic Money) Money {
	if c.Mode == ModePercentageOfBasic {
		return basic.Percent(c.Rate)
	}
	return c.Amount.Round2()
}

// =============================================================================
// PROJECT ASSIGNMENT
// =============================================================================

type ProjectAssignment struct {
	ProjectID   ProjectID
	ProjectName string

	EffectiveDate TimePoint
	EndDate       *TimePoint // nil = still assigned

	// Exactly one of Percentage / HoursPerMonth is normally set. With
	// neither set, overlapping assignments split equally.
	Percentage    *float64
	HoursPerMonth *float64
}

// OverlapsSpan reports whether the assignment is active at any point in
// [start, end].
func (a ProjectAssignment) OverlapsSpan(start, end TimePoint) bool {
	if a.EffectiveDate.After(end) {
		return false
	}
	if a.EndDate != nil && a.EndDate.Before(start) {
		return false
	}
	return true
}
