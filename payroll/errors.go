/*
errors.go - Centralized error types for the payroll engine

PURPOSE:
  All error types in one place for consistency and discoverability.
  Callers should wrap these errors with additional context.

ERROR CATEGORIES:
  1. Eligibility errors - Employee cannot appear in a cycle at all
  2. Configuration errors - Malformed rule tables (tax slabs)
  3. Store errors - Persistence-level failures (used by store packages)

PROPAGATION POLICY:
  Per-employee errors are collected into the cycle result's error list
  rather than raised, so one bad record never aborts a cycle. Missing
  tax/statutory configuration is NOT an error - it yields empty item
  lists ("no applicable charge").

USAGE:
  if errors.Is(err, payroll.ErrInactiveEmployee) {
      // skip employee, keep processing the cycle
  }
*/
package payroll

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInactiveEmployee is returned when an employee is not eligible for
	// the pay period: status isn't Active, termination precedes the period,
	// or joining follows it.
	ErrInactiveEmployee = errors.New("employee not active in pay period")

	// ErrInvalidPeriod is returned when a period is malformed (end before start).
	ErrInvalidPeriod = errors.New("invalid period: end before start")

	// ErrInvalidTaxTable is returned when a tax slab table violates the
	// ascending, non-overlapping contract.
	ErrInvalidTaxTable = errors.New("invalid tax slab table")

	// ErrEmployeeNotFound is returned by stores when a referenced employee
	// doesn't exist.
	ErrEmployeeNotFound = errors.New("employee not found")

	// ErrCycleNotFound is returned by stores when a referenced cycle
	// doesn't exist.
	ErrCycleNotFound = errors.New("payroll cycle not found")

	// ErrPayslipExists is returned by stores enforcing the one-payslip-per-
	// employee-per-cycle idempotency guard.
	ErrPayslipExists = errors.New("payslip already exists for employee and cycle")

	// ErrPayslipNotFound is returned by stores when a referenced payslip
	// doesn't exist.
	ErrPayslipNotFound = errors.New("payslip not found")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// InactiveEmployeeError explains why an employee was excluded from a cycle.
type InactiveEmployeeError struct {
	EmployeeID EmployeeID
	Status     EmploymentStatus
	Detail     string
}

func (e *InactiveEmployeeError) Error() string {
	return fmt.Sprintf("employee %s is not active for this period: %s", e.EmployeeID, e.Detail)
}

func (e *InactiveEmployeeError) Unwrap() error {
	return ErrInactiveEmployee
}

// TaxTableError pinpoints the offending slab in a malformed table.
type TaxTableError struct {
	SlabIndex int
	Detail    string
}

func (e *TaxTableError) Error() string {
	return fmt.Sprintf("tax slab %d: %s", e.SlabIndex, e.Detail)
}

func (e *TaxTableError) Unwrap() error {
	return ErrInvalidTaxTable
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsEligibility returns true if the error means the employee was excluded
// from the cycle rather than the calculation itself failing.
func IsEligibility(err error) bool {
	return errors.Is(err, ErrInactiveEmployee)
}

// IsNotFound returns true if the error indicates a missing record.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrEmployeeNotFound) ||
		errors.Is(err, ErrCycleNotFound) ||
		errors.Is(err, ErrPayslipNotFound)
}
