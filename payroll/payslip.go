/*
payslip.go - The terminal payslip record and its assembler

PURPOSE:
  Packages every computed section into one immutable Payslip plus an audit
  Snapshot of the exact inputs used, so the result can be reproduced and
  audited later without re-reading mutable source data.

LIFECYCLE:
  A payslip is created once per (employee, cycle) with status Pending and
  PaidAmount zero. Payment-status transitions happen outside the engine;
  nothing here ever mutates a payslip after assembly.
*/
package payroll

import (
	"fmt"
	"time"
)

// =============================================================================
// PAYSLIP
// =============================================================================

type PayslipStatus string

const (
	PayslipPending PayslipStatus = "Pending"
	PayslipPaid    PayslipStatus = "Paid"
	PayslipVoid    PayslipStatus = "Void"
)

type Payslip struct {
	ID         PayslipID
	EmployeeID EmployeeID
	CycleID    CycleID
	Month      YearMonth
	Period     PayPeriod
	Proration  Proration

	Earnings   Earnings
	Deductions Deductions

	GrossSalary     Money
	TotalDeductions Money
	NetSalary       Money

	Allocations []PayrollCostAllocation
	Snapshot    Snapshot

	Status      PayslipStatus
	PaidAmount  Money
	GeneratedAt time.Time
}

// Snapshot freezes the inputs a payslip was computed from.
type Snapshot struct {
	SalaryStructure []SalaryComponent
	Assignments     []ProjectAssignment
	Bonuses         []BonusRecord
	Adjustments     []PayrollAdjustment
	AttendanceDays  int
	WorkingDays     int
}

// =============================================================================
// PAYSLIP ASSEMBLER
// =============================================================================

type PayslipAssembler struct {
	Config Config
}

// Assemble combines the computed sections into a payslip. Pure with respect
// to its inputs aside from the generated id and timestamp.
func (pa *PayslipAssembler) Assemble(
	emp Employee,
	month YearMonth,
	period PayPeriod,
	span Proration,
	components []SalaryComponent,
	earnings Earnings,
	deductions Deductions,
	allocations []PayrollCostAllocation,
	facts PayrollFacts,
) *Payslip {
	gross := earnings.Gross()
	totalDeductions := deductions.Total()

	var activeAssignments []ProjectAssignment
	for _, a := range emp.Assignments {
		if a.OverlapsSpan(period.Start, period.End) {
			activeAssignments = append(activeAssignments, a)
		}
	}

	var appliedBonuses []BonusRecord
	for _, b := range facts.Bonuses {
		if b.AppliesTo(emp.ID, month) {
			appliedBonuses = append(appliedBonuses, b)
		}
	}
	var empAdjustments []PayrollAdjustment
	for _, adj := range facts.Adjustments {
		if adj.EmployeeID == emp.ID {
			empAdjustments = append(empAdjustments, adj)
		}
	}

	now := pa.Config.now()
	return &Payslip{
		ID:         newPayslipID(emp.ID, month),
		EmployeeID: emp.ID,
		Month:      month,
		Period:     period,
		Proration:  span,

		Earnings:   earnings,
		Deductions: deductions,

		GrossSalary:     gross,
		TotalDeductions: totalDeductions,
		NetSalary:       gross.Sub(totalDeductions),

		Allocations: allocations,
		Snapshot: Snapshot{
			SalaryStructure: components,
			Assignments:     activeAssignments,
			Bonuses:         appliedBonuses,
			Adjustments:     empAdjustments,
			AttendanceDays:  facts.PresentDays(emp.ID, period),
			WorkingDays:     span.TotalDays,
		},

		Status:      PayslipPending,
		PaidAmount:  ZeroMoney(),
		GeneratedAt: now.Time,
	}
}

func newPayslipID(empID EmployeeID, month YearMonth) PayslipID {
	return PayslipID(fmt.Sprintf("PS-%s-%s-%d", empID, month, time.Now().UnixNano()))
}
