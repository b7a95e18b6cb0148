package payroll_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/payroll-engine/payroll"
	"github.com/warp/payroll-engine/payroll/store"
)

func newTestEngine() *payroll.Engine {
	cfg := payroll.DefaultConfig()
	cfg.Now = fixedClock(tp(2025, time.May, 5))
	return payroll.New(cfg)
}

// =============================================================================
// SINGLE-EMPLOYEE PIPELINE
// =============================================================================

func TestEngine_CalculateEmployeePayroll_FullMonth(t *testing.T) {
	emp := activeEmployee("emp-1", 3000, tp(2024, time.January, 1))
	emp.SalaryStructure = []payroll.SalaryComponent{
		{ID: "c-housing", Name: "Housing", Mode: payroll.ModeFixedAmount,
			Amount: money(500), EffectiveDate: tp(2024, time.January, 1)},
	}

	engine := newTestEngine()
	payslip, warnings, err := engine.CalculateEmployeePayroll(emp, ym(2025, time.April), payroll.Monthly, payroll.PayrollFacts{})

	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, "3000.00", payslip.Earnings.Basic.String())
	assert.Equal(t, "3500.00", payslip.GrossSalary.String())
	assert.Equal(t, "3500.00", payslip.NetSalary.String())
	assert.False(t, payslip.Proration.IsProrated())
	assert.Equal(t, payroll.PayslipPending, payslip.Status)
	assert.True(t, payslip.PaidAmount.IsZero())
	assert.NotEmpty(t, payslip.ID)
	assert.False(t, payslip.GeneratedAt.IsZero())
}

func TestEngine_CalculateEmployeePayroll_NetIdentity(t *testing.T) {
	// net == gross - (structural + tax + statutory + loans + adjustments),
	// exactly, for a payslip exercising every section.

	emp := activeEmployee("emp-1", 3000, tp(2025, time.April, 10))
	emp.SalaryStructure = []payroll.SalaryComponent{
		{ID: "c-housing", Name: "Housing", Mode: payroll.ModeFixedAmount,
			Amount: money(600), EffectiveDate: tp(2024, time.January, 1)},
		{ID: "c-fund", Name: "Welfare Fund", Kind: payroll.KindDeduction,
			Mode: payroll.ModeFixedAmount, Amount: money(90), EffectiveDate: tp(2024, time.January, 1)},
	}
	cap := money(2000)
	facts := payroll.PayrollFacts{
		Bonuses: []payroll.BonusRecord{
			{ID: "b-1", EmployeeID: "emp-1", Name: "Bonus", Amount: money(250),
				Status: payroll.BonusApproved, PayrollMonth: ym(2025, time.April), AwardedOn: tp(2025, time.April, 20)},
		},
		Adjustments: []payroll.PayrollAdjustment{
			{ID: "a-1", EmployeeID: "emp-1", Description: "Penalty", Type: payroll.AdjustmentDeduction,
				Amount: money(40), Status: payroll.AdjustmentActive, TargetMonth: ym(2025, time.April)},
		},
		Loans: []payroll.LoanRecord{
			{ID: "l-1", EmployeeID: "emp-1", Name: "Advance", MonthlyInstallment: money(120),
				FirstMonth: ym(2025, time.March), Status: payroll.LoanActive},
		},
		Tax:       twoSlabTable(),
		Statutory: []payroll.StatutoryConfiguration{{ContributionType: "Social Insurance", EmployeeRate: 5, MaxSalaryLimit: &cap}},
	}

	engine := newTestEngine()
	payslip, _, err := engine.CalculateEmployeePayroll(emp, ym(2025, time.April), payroll.Monthly, facts)
	require.NoError(t, err)

	d := payslip.Deductions
	expectedNet := payslip.GrossSalary.
		Sub(d.TotalStructural()).
		Sub(d.TotalTax()).
		Sub(d.TotalStatutory()).
		Sub(d.TotalLoans()).
		Sub(d.TotalAdjustments())

	assert.True(t, payslip.NetSalary.Equal(expectedNet),
		"net %s != gross %s - deductions %s", payslip.NetSalary, payslip.GrossSalary, payslip.TotalDeductions)
	assert.True(t, payslip.TotalDeductions.Equal(d.Total()))
}

func TestEngine_CalculateEmployeePayroll_SnapshotFreezesInputs(t *testing.T) {
	emp := activeEmployee("emp-1", 3000, tp(2024, time.January, 1))
	emp.SalaryStructure = []payroll.SalaryComponent{
		{ID: "c-housing", Name: "Housing", Mode: payroll.ModeFixedAmount,
			Amount: money(500), EffectiveDate: tp(2024, time.January, 1)},
	}
	emp.Assignments = []payroll.ProjectAssignment{
		{ProjectID: "p-1", EffectiveDate: tp(2025, time.January, 1), Percentage: pct(100)},
	}
	facts := payroll.PayrollFacts{
		Bonuses: []payroll.BonusRecord{
			{ID: "b-1", EmployeeID: "emp-1", Name: "Bonus", Amount: money(100),
				Status: payroll.BonusApproved, PayrollMonth: ym(2025, time.April)},
		},
		Adjustments: []payroll.PayrollAdjustment{
			{ID: "a-1", EmployeeID: "emp-1", Description: "Penalty", Type: payroll.AdjustmentDeduction,
				Amount: money(10), Status: payroll.AdjustmentActive, TargetMonth: ym(2025, time.April)},
		},
		Attendance: []payroll.AttendanceRecord{
			{EmployeeID: "emp-1", Date: tp(2025, time.April, 7), Status: payroll.AttendancePresent},
			{EmployeeID: "emp-1", Date: tp(2025, time.April, 8), Status: payroll.AttendanceAbsent},
		},
	}

	engine := newTestEngine()
	payslip, _, err := engine.CalculateEmployeePayroll(emp, ym(2025, time.April), payroll.Monthly, facts)
	require.NoError(t, err)

	snap := payslip.Snapshot
	assert.Len(t, snap.SalaryStructure, 1)
	assert.Len(t, snap.Assignments, 1)
	assert.Len(t, snap.Bonuses, 1)
	assert.Len(t, snap.Adjustments, 1)
	assert.Equal(t, 1, snap.AttendanceDays)
	assert.Equal(t, 30, snap.WorkingDays)
}

func TestEngine_CalculateEmployeePayroll_ExpiredComponentExcluded(t *testing.T) {
	ended := tp(2025, time.March, 31)
	emp := activeEmployee("emp-1", 3000, tp(2024, time.January, 1))
	emp.SalaryStructure = []payroll.SalaryComponent{
		{ID: "c-old", Name: "Old Housing", Mode: payroll.ModeFixedAmount,
			Amount: money(400), EffectiveDate: tp(2024, time.January, 1), EndDate: &ended},
		{ID: "c-new", Name: "Housing", Mode: payroll.ModeFixedAmount,
			Amount: money(500), EffectiveDate: tp(2025, time.April, 1)},
	}

	engine := newTestEngine()
	payslip, _, err := engine.CalculateEmployeePayroll(emp, ym(2025, time.April), payroll.Monthly, payroll.PayrollFacts{})
	require.NoError(t, err)

	require.Len(t, payslip.Earnings.Allowances, 1)
	assert.Equal(t, "Housing", payslip.Earnings.Allowances[0].Name)
}

func TestEngine_ZeroDaySpan_WarnedNotSilent(t *testing.T) {
	// GIVEN: A join date after the last working day, both inside April
	// WHEN: Calculating the payslip
	// THEN: The span clamps to zero days, the payslip is all-zero, and a
	//       warning says so

	emp := activeEmployee("emp-1", 3000, tp(2025, time.April, 10))
	emp.Termination = &payroll.Termination{LastWorkingDay: tp(2025, time.April, 5)}

	engine := newTestEngine()
	payslip, warnings, err := engine.CalculateEmployeePayroll(emp, ym(2025, time.April), payroll.Monthly, payroll.PayrollFacts{})

	require.NoError(t, err)
	assert.Equal(t, 0, payslip.Proration.Days)
	assert.True(t, payslip.NetSalary.IsZero())
	require.NotEmpty(t, warnings)
	assert.Contains(t, warnings[0], "zero payable days")
}

func TestEngine_ProrationDisabled_FullSpanButEligibilityStillApplies(t *testing.T) {
	cfg := payroll.DefaultConfig()
	cfg.ProrationEnabled = false
	cfg.Now = fixedClock(tp(2025, time.May, 5))
	engine := payroll.New(cfg)

	// Mid-month joiner gets a full-span payslip
	joiner := activeEmployee("emp-1", 3000, tp(2025, time.April, 10))
	payslip, _, err := engine.CalculateEmployeePayroll(joiner, ym(2025, time.April), payroll.Monthly, payroll.PayrollFacts{})
	require.NoError(t, err)
	assert.Equal(t, "3000.00", payslip.Earnings.Basic.String())

	// An inactive employee is still excluded
	inactive := activeEmployee("emp-2", 3000, tp(2024, time.January, 1))
	inactive.Status = payroll.StatusTerminated
	_, _, err = engine.CalculateEmployeePayroll(inactive, ym(2025, time.April), payroll.Monthly, payroll.PayrollFacts{})
	assert.ErrorIs(t, err, payroll.ErrInactiveEmployee)
}

// =============================================================================
// CYCLE PROCESSING
// =============================================================================

func TestEngine_ProcessPayrollCycle_InactiveEmployeeReportedNotFatal(t *testing.T) {
	// GIVEN: Three employees, one suspended
	// WHEN: Processing the cycle
	// THEN: 2 payslips, 1 error entry, batch completes

	suspended := activeEmployee("emp-2", 2500, tp(2024, time.January, 1))
	suspended.Status = payroll.StatusSuspended
	employees := []payroll.Employee{
		activeEmployee("emp-1", 3000, tp(2024, time.January, 1)),
		suspended,
		activeEmployee("emp-3", 4000, tp(2024, time.January, 1)),
	}
	cycle := payroll.PayrollCycle{ID: "cycle-2025-04", Month: ym(2025, time.April), Frequency: payroll.Monthly}

	engine := newTestEngine()
	result := engine.ProcessPayrollCycle(cycle, employees, payroll.PayrollFacts{})

	assert.Len(t, result.Payslips, 2)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "emp-2")
}

func TestEngine_ProcessPayrollCycle_StampsCycleID(t *testing.T) {
	employees := []payroll.Employee{activeEmployee("emp-1", 3000, tp(2024, time.January, 1))}
	cycle := payroll.PayrollCycle{ID: "cycle-2025-04", Month: ym(2025, time.April), Frequency: payroll.Monthly}

	engine := newTestEngine()
	result := engine.ProcessPayrollCycle(cycle, employees, payroll.PayrollFacts{})

	require.Len(t, result.Payslips, 1)
	assert.Equal(t, payroll.CycleID("cycle-2025-04"), result.Payslips[0].CycleID)
}

func TestEngine_ProcessPayrollCycle_CollectsWarnings(t *testing.T) {
	emp := activeEmployee("emp-1", 3000, tp(2024, time.January, 1))
	emp.Assignments = []payroll.ProjectAssignment{
		{ProjectID: "p-1", EffectiveDate: tp(2025, time.January, 1), Percentage: pct(70)},
	}
	cycle := payroll.PayrollCycle{ID: "cycle-1", Month: ym(2025, time.April), Frequency: payroll.Monthly}

	engine := newTestEngine()
	result := engine.ProcessPayrollCycle(cycle, []payroll.Employee{emp}, payroll.PayrollFacts{})

	assert.Len(t, result.Payslips, 1)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "not 100")
}

func TestEngine_ProcessPayrollCycle_FactsFromMemoryStore(t *testing.T) {
	// GIVEN: Employees, facts, and config held in the in-memory store
	ctx := context.Background()
	mem := store.NewMemory()
	require.NoError(t, mem.PutEmployee(ctx, activeEmployee("emp-1", 3000, tp(2024, time.January, 1))))
	require.NoError(t, mem.PutEmployee(ctx, activeEmployee("emp-2", 2500, tp(2024, time.June, 1))))
	require.NoError(t, mem.AddBonus(ctx, payroll.BonusRecord{
		ID: "b-1", EmployeeID: "emp-1", Name: "Spot Bonus", Amount: money(250),
		Status: payroll.BonusApproved, PayrollMonth: ym(2025, time.April), AwardedOn: tp(2025, time.April, 20),
	}))
	require.NoError(t, mem.SetTaxConfig(ctx, *twoSlabTable()))

	// WHEN: Assembling facts through the store interfaces and processing
	employees, err := mem.ListEmployees(ctx)
	require.NoError(t, err)
	bonuses, err := mem.BonusesForMonth(ctx, ym(2025, time.April))
	require.NoError(t, err)
	tax, err := mem.TaxConfig(ctx)
	require.NoError(t, err)

	cycle := payroll.PayrollCycle{ID: "cycle-2025-04", Month: ym(2025, time.April), Frequency: payroll.Monthly}
	engine := newTestEngine()
	result := engine.ProcessPayrollCycle(cycle, employees, payroll.PayrollFacts{Bonuses: bonuses, Tax: tax})

	// THEN: Both payslips come out and persist exactly once per cycle
	require.Len(t, result.Payslips, 2)
	require.Len(t, result.Payslips[0].Earnings.Bonuses, 1)
	for _, p := range result.Payslips {
		require.NoError(t, mem.SavePayslip(ctx, p))
	}
	assert.ErrorIs(t, mem.SavePayslip(ctx, result.Payslips[0]), payroll.ErrPayslipExists)

	saved, err := mem.ListPayslipsByCycle(ctx, "cycle-2025-04")
	require.NoError(t, err)
	assert.Len(t, saved, 2)
}

func TestEngine_ProcessPayrollCycle_AllocationRowsSumToNet(t *testing.T) {
	emp := activeEmployee("emp-1", 3000, tp(2024, time.January, 1))
	emp.Assignments = []payroll.ProjectAssignment{
		{ProjectID: "p-1", EffectiveDate: tp(2025, time.January, 1), Percentage: pct(60)},
		{ProjectID: "p-2", EffectiveDate: tp(2025, time.January, 1), Percentage: pct(40)},
	}
	cycle := payroll.PayrollCycle{ID: "cycle-1", Month: ym(2025, time.April), Frequency: payroll.Monthly}

	engine := newTestEngine()
	result := engine.ProcessPayrollCycle(cycle, []payroll.Employee{emp}, payroll.PayrollFacts{})

	require.Len(t, result.Payslips, 1)
	payslip := result.Payslips[0]
	require.Len(t, payslip.Allocations, 2)

	sum := payroll.ZeroMoney()
	for _, row := range payslip.Allocations {
		sum = sum.Add(row.Net)
	}
	// Tolerance: one cent per allocation row
	diff := sum.Sub(payslip.NetSalary).Abs()
	assert.False(t, diff.GreaterThan(money(0.02)),
		"allocation sum %s deviates from net %s", sum, payslip.NetSalary)
}
