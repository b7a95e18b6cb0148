/*
store.go - Persistence interfaces around the calculation engine

PURPOSE:
  Defines the boundary between the pure calculation engine and the data it
  reads and writes. The engine itself performs no I/O; the API layer loads
  employees/facts through these interfaces, runs the engine, and persists
  the resulting payslips.

KEY INTERFACES:
  EmployeeDirectory: Employee records with salary structure + assignments
  FactsStore:        Period-scoped facts (bonuses, adjustments, attendance,
                     commissions, loans)
  ConfigStore:       Tax and statutory rule tables
  PayslipStore:      Generated payslips and cycle records

IDEMPOTENCY:
  A payslip is created once per (employee, cycle). SavePayslip rejects a
  duplicate with ErrPayslipExists; cycle reruns skip already-generated
  employees instead of double-paying them.

IMPLEMENTATIONS:
  - payroll/store/memory.go: In-memory for testing/dev
  - store/sqlite/sqlite.go:  Production SQLite
*/
package payroll

import "context"

// =============================================================================
// EMPLOYEE DIRECTORY
// =============================================================================

type EmployeeDirectory interface {
	// GetEmployee returns the full record or ErrEmployeeNotFound.
	GetEmployee(ctx context.Context, id EmployeeID) (Employee, error)

	// ListEmployees returns the full population, any status.
	ListEmployees(ctx context.Context) ([]Employee, error)

	// PutEmployee creates or replaces an employee record.
	PutEmployee(ctx context.Context, emp Employee) error
}

// =============================================================================
// FACTS STORE
// =============================================================================

// FactsStore supplies the period-scoped facts for one month. Each method
// returns every record that could apply to the month; per-employee
// filtering happens in the engine.
type FactsStore interface {
	BonusesForMonth(ctx context.Context, month YearMonth) ([]BonusRecord, error)
	AdjustmentsForMonth(ctx context.Context, month YearMonth) ([]PayrollAdjustment, error)
	AttendanceForPeriod(ctx context.Context, period PayPeriod) ([]AttendanceRecord, error)
	CommissionsForMonth(ctx context.Context, month YearMonth) ([]CommissionRule, error)
	LoansForMonth(ctx context.Context, month YearMonth) ([]LoanRecord, error)

	AddBonus(ctx context.Context, b BonusRecord) error
	AddAdjustment(ctx context.Context, a PayrollAdjustment) error
	AddAttendance(ctx context.Context, recs []AttendanceRecord) error
	AddCommission(ctx context.Context, c CommissionRule) error
	AddLoan(ctx context.Context, l LoanRecord) error
}

// =============================================================================
// CONFIG STORE
// =============================================================================

type ConfigStore interface {
	// TaxConfig returns the active slab table, or nil when none is set.
	TaxConfig(ctx context.Context) (*TaxConfiguration, error)
	SetTaxConfig(ctx context.Context, cfg TaxConfiguration) error

	StatutoryConfigs(ctx context.Context) ([]StatutoryConfiguration, error)
	SetStatutoryConfigs(ctx context.Context, cfgs []StatutoryConfiguration) error
}

// =============================================================================
// PAYSLIP STORE
// =============================================================================

type PayslipStore interface {
	// SavePayslip persists a generated payslip. Returns ErrPayslipExists
	// when one already exists for the same (employee, cycle).
	SavePayslip(ctx context.Context, p *Payslip) error

	// HasPayslip reports whether (employee, cycle) was already generated.
	HasPayslip(ctx context.Context, empID EmployeeID, cycleID CycleID) (bool, error)

	GetPayslip(ctx context.Context, id PayslipID) (*Payslip, error)
	ListPayslipsByCycle(ctx context.Context, cycleID CycleID) ([]*Payslip, error)
	ListPayslipsByEmployee(ctx context.Context, empID EmployeeID) ([]*Payslip, error)

	// SaveCycle records a processed cycle; GetCycle returns
	// ErrCycleNotFound when absent.
	SaveCycle(ctx context.Context, c PayrollCycle) error
	GetCycle(ctx context.Context, id CycleID) (PayrollCycle, error)
	ListCycles(ctx context.Context) ([]PayrollCycle, error)
}
