/*
facts.go - Period-scoped facts and rule tables supplied by external stores

PURPOSE:
  Everything the engine consumes besides the employee record: bonuses,
  ad-hoc adjustments, attendance, commission rules, loan schedules, and
  the tax/statutory rule tables. Facts are keyed by employee id and
  (optionally) a target month; the engine filters, it never writes.

CONFIGURATION ABSENCE:
  A missing tax or statutory configuration is not an error. It means
  "no applicable charge" and yields empty item lists.
*/
package payroll

// =============================================================================
// BONUSES
// =============================================================================

type BonusStatus string

const (
	BonusApproved BonusStatus = "Approved"
	BonusPending  BonusStatus = "Pending"
	BonusRejected BonusStatus = "Rejected"
)

type BonusRecord struct {
	ID         string
	EmployeeID EmployeeID
	Name       string
	Amount     Money
	Status     BonusStatus

	// PayrollMonth pins the bonus to one cycle. Zero means "next cycle
	// processed", i.e. the bonus applies to whichever month picks it up.
	PayrollMonth YearMonth

	AwardedOn TimePoint
}

// AppliesTo reports whether the bonus belongs on the given month's payslip.
// Bonuses are period-level grants: included verbatim, never prorated.
func (b BonusRecord) AppliesTo(employeeID EmployeeID, month YearMonth) bool {
	if b.EmployeeID != employeeID || b.Status != BonusApproved {
		return false
	}
	return b.PayrollMonth.IsZero() || b.PayrollMonth == month
}

// =============================================================================
// AD-HOC ADJUSTMENTS
// =============================================================================

type AdjustmentType string

const (
	AdjustmentAddition  AdjustmentType = "Addition"
	AdjustmentDeduction AdjustmentType = "Deduction"
)

type AdjustmentStatus string

const (
	AdjustmentActive   AdjustmentStatus = "Active"
	AdjustmentInactive AdjustmentStatus = "Inactive"
)

type PayrollAdjustment struct {
	ID          string
	EmployeeID  EmployeeID
	Description string
	Type        AdjustmentType
	Amount      Money
	Status      AdjustmentStatus
	TargetMonth YearMonth // zero = applies to any month
}

func (a PayrollAdjustment) AppliesTo(employeeID EmployeeID, month YearMonth) bool {
	if a.EmployeeID != employeeID || a.Status != AdjustmentActive {
		return false
	}
	return a.TargetMonth.IsZero() || a.TargetMonth == month
}

// =============================================================================
// ATTENDANCE
// =============================================================================

type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "Present"
	AttendanceAbsent  AttendanceStatus = "Absent"
	AttendanceOnLeave AttendanceStatus = "OnLeave"
)

type AttendanceRecord struct {
	EmployeeID    EmployeeID
	Date          TimePoint
	Status        AttendanceStatus
	OvertimeHours float64
}

// =============================================================================
// COMMISSION RULES
// =============================================================================

// CommissionRule is a period-scoped earning rule: a flat amount or a percent
// of basic, granted at period level like a bonus.
type CommissionRule struct {
	ID         string
	EmployeeID EmployeeID
	Name       string
	Mode       CalcMode
	Amount     Money
	Rate       float64
	Month      YearMonth // zero = every month while the rule exists
}

func (r CommissionRule) AppliesTo(employeeID EmployeeID, month YearMonth) bool {
	if r.EmployeeID != employeeID {
		return false
	}
	return r.Month.IsZero() || r.Month == month
}

// =============================================================================
// LOAN SCHEDULE
// =============================================================================

type LoanStatus string

const (
	LoanActive LoanStatus = "Active"
	LoanClosed LoanStatus = "Closed"
)

// LoanRecord is one loan/advance with a flat monthly installment deducted
// over [FirstMonth, LastMonth].
type LoanRecord struct {
	ID                 string
	EmployeeID         EmployeeID
	Name               string
	MonthlyInstallment Money
	FirstMonth         YearMonth
	LastMonth          YearMonth // zero = open-ended
	Status             LoanStatus
}

func (l LoanRecord) AppliesTo(employeeID EmployeeID, month YearMonth) bool {
	if l.EmployeeID != employeeID || l.Status != LoanActive {
		return false
	}
	if monthBefore(month, l.FirstMonth) {
		return false
	}
	if !l.LastMonth.IsZero() && monthBefore(l.LastMonth, month) {
		return false
	}
	return true
}

func monthBefore(a, b YearMonth) bool {
	if a.Year != b.Year {
		return a.Year < b.Year
	}
	return a.Month < b.Month
}

// =============================================================================
// TAX CONFIGURATION - Progressive slab table
// =============================================================================

// TaxSlab is one bracket of a progressive table. Slabs are cumulative:
// income above MinIncome is taxed at Rate up to MaxIncome (open-ended when
// nil), plus an optional flat add-on for reaching the bracket.
type TaxSlab struct {
	MinIncome   Money
	MaxIncome   *Money // nil = unbounded top bracket
	Rate        float64
	FixedAmount Money
}

type TaxConfiguration struct {
	Name  string
	Slabs []TaxSlab
}

// Validate enforces the slab table contract: ascending by MinIncome,
// non-overlapping, each bounded slab closing at or below its successor.
func (tc *TaxConfiguration) Validate() error {
	for i, slab := range tc.Slabs {
		if slab.MaxIncome != nil && slab.MaxIncome.LessThan(slab.MinIncome) {
			return &TaxTableError{SlabIndex: i, Detail: "max income below min income"}
		}
		if i == 0 {
			continue
		}
		prev := tc.Slabs[i-1]
		if !prev.MinIncome.LessThan(slab.MinIncome) {
			return &TaxTableError{SlabIndex: i, Detail: "slabs not ascending by min income"}
		}
		if prev.MaxIncome != nil && slab.MinIncome.LessThan(*prev.MaxIncome) {
			return &TaxTableError{SlabIndex: i, Detail: "slab overlaps previous bracket"}
		}
	}
	return nil
}

// =============================================================================
// STATUTORY CONFIGURATION - Rate-based mandatory contributions
// =============================================================================

type StatutoryConfiguration struct {
	ContributionType string // e.g. "Social Insurance", "Provident Fund"
	EmployeeRate     float64
	MaxSalaryLimit   *Money // nil = uncapped
}

// =============================================================================
// FACTS BUNDLE - Everything a cycle run consumes besides employees
// =============================================================================

// PayrollFacts bundles the period-scoped fact lists and rule tables for one
// engine invocation. Nil/empty members mean "no applicable charge".
type PayrollFacts struct {
	Bonuses     []BonusRecord
	Adjustments []PayrollAdjustment
	Attendance  []AttendanceRecord
	Commissions []CommissionRule
	Loans       []LoanRecord

	Tax       *TaxConfiguration
	Statutory []StatutoryConfiguration
}

// AttendanceFor returns the employee's attendance records inside the period,
// preserving input order.
func (f PayrollFacts) AttendanceFor(employeeID EmployeeID, period PayPeriod) []AttendanceRecord {
	var out []AttendanceRecord
	for _, rec := range f.Attendance {
		if rec.EmployeeID == employeeID && period.Contains(rec.Date) {
			out = append(out, rec)
		}
	}
	return out
}

// PresentDays counts attendance records marked Present inside the period.
func (f PayrollFacts) PresentDays(employeeID EmployeeID, period PayPeriod) int {
	count := 0
	for _, rec := range f.AttendanceFor(employeeID, period) {
		if rec.Status == AttendancePresent {
			count++
		}
	}
	return count
}
