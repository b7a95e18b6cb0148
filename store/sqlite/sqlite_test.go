package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/payroll-engine/payroll"
	"github.com/warp/payroll-engine/store/sqlite"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	s, err := sqlite.New(filepath.Join(t.TempDir(), "payroll.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func money(v float64) payroll.Money { return payroll.NewMoney(v) }

func TestStore_EmployeeRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.GetEmployee(ctx, "emp-1")
	assert.ErrorIs(t, err, payroll.ErrEmployeeNotFound)

	end := payroll.NewTimePoint(2025, time.December, 31)
	emp := payroll.Employee{
		ID:          "emp-1",
		Name:        "Dana Reyes",
		Email:       "dana@example.com",
		Status:      payroll.StatusActive,
		BasicSalary: money(3000),
		JoiningDate: payroll.NewTimePoint(2024, time.January, 1),
		SalaryStructure: []payroll.SalaryComponent{
			{ID: "c-housing", Name: "Housing", Mode: payroll.ModeFixedAmount,
				Amount: money(500), EffectiveDate: payroll.NewTimePoint(2024, time.January, 1),
				EndDate: &end, Taxable: true},
		},
		Assignments: []payroll.ProjectAssignment{
			{ProjectID: "p-1", ProjectName: "Apollo",
				EffectiveDate: payroll.NewTimePoint(2025, time.January, 1)},
		},
	}
	require.NoError(t, s.PutEmployee(ctx, emp))

	got, err := s.GetEmployee(ctx, "emp-1")
	require.NoError(t, err)
	assert.Equal(t, "Dana Reyes", got.Name)
	assert.Equal(t, "3000.00", got.BasicSalary.String())
	require.Len(t, got.SalaryStructure, 1)
	require.NotNil(t, got.SalaryStructure[0].EndDate)
	assert.True(t, got.SalaryStructure[0].Taxable)
	require.Len(t, got.Assignments, 1)

	// Upsert replaces, never duplicates
	emp.Name = "Dana R."
	require.NoError(t, s.PutEmployee(ctx, emp))
	all, err := s.ListEmployees(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Dana R.", all[0].Name)
}

func TestStore_FactsMonthFilter(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	april := payroll.YearMonth{Year: 2025, Month: time.April}

	require.NoError(t, s.AddBonus(ctx, payroll.BonusRecord{
		ID: "b-1", EmployeeID: "emp-1", Name: "Spot", Amount: money(200),
		Status: payroll.BonusApproved, PayrollMonth: april}))
	require.NoError(t, s.AddBonus(ctx, payroll.BonusRecord{
		ID: "b-2", EmployeeID: "emp-1", Name: "Other", Amount: money(100),
		Status: payroll.BonusApproved, PayrollMonth: payroll.YearMonth{Year: 2025, Month: time.May}}))
	require.NoError(t, s.AddBonus(ctx, payroll.BonusRecord{
		ID: "b-3", EmployeeID: "emp-1", Name: "Unpinned", Amount: money(50),
		Status: payroll.BonusApproved}))

	bonuses, err := s.BonusesForMonth(ctx, april)
	require.NoError(t, err)
	assert.Len(t, bonuses, 2, "pinned-to-April plus unpinned")
}

func TestStore_AttendancePeriodQuery(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	recs := []payroll.AttendanceRecord{
		{EmployeeID: "emp-1", Date: payroll.NewTimePoint(2025, time.April, 7), Status: payroll.AttendancePresent},
		{EmployeeID: "emp-1", Date: payroll.NewTimePoint(2025, time.April, 8), Status: payroll.AttendancePresent, OvertimeHours: 2},
		{EmployeeID: "emp-1", Date: payroll.NewTimePoint(2025, time.May, 1), Status: payroll.AttendancePresent},
	}
	require.NoError(t, s.AddAttendance(ctx, recs))

	period := payroll.PayPeriod{
		Start: payroll.NewTimePoint(2025, time.April, 1),
		End:   payroll.NewTimePoint(2025, time.April, 30),
	}
	got, err := s.AttendanceForPeriod(ctx, period)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 2.0, got[1].OvertimeHours)

	// Re-marking the same day replaces the row
	require.NoError(t, s.AddAttendance(ctx, []payroll.AttendanceRecord{
		{EmployeeID: "emp-1", Date: payroll.NewTimePoint(2025, time.April, 7), Status: payroll.AttendanceAbsent},
	}))
	got, err = s.AttendanceForPeriod(ctx, period)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, payroll.AttendanceAbsent, got[0].Status)
}

func TestStore_LoanMonthBounds(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.AddLoan(ctx, payroll.LoanRecord{
		ID: "l-1", EmployeeID: "emp-1", Name: "Advance", MonthlyInstallment: money(120),
		FirstMonth: payroll.YearMonth{Year: 2025, Month: time.March}, Status: payroll.LoanActive}))
	require.NoError(t, s.AddLoan(ctx, payroll.LoanRecord{
		ID: "l-2", EmployeeID: "emp-1", Name: "Future", MonthlyInstallment: money(80),
		FirstMonth: payroll.YearMonth{Year: 2025, Month: time.June}, Status: payroll.LoanActive}))
	require.NoError(t, s.AddLoan(ctx, payroll.LoanRecord{
		ID: "l-3", EmployeeID: "emp-1", Name: "Finished", MonthlyInstallment: money(60),
		FirstMonth: payroll.YearMonth{Year: 2024, Month: time.June},
		LastMonth:  payroll.YearMonth{Year: 2025, Month: time.January}, Status: payroll.LoanClosed}))

	loans, err := s.LoansForMonth(ctx, payroll.YearMonth{Year: 2025, Month: time.April})
	require.NoError(t, err)
	require.Len(t, loans, 1)
	assert.Equal(t, "l-1", loans[0].ID)
}

func TestStore_ConfigRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	cfg, err := s.TaxConfig(ctx)
	require.NoError(t, err)
	assert.Nil(t, cfg, "unset tax config reads as nil")

	max := money(1000)
	require.NoError(t, s.SetTaxConfig(ctx, payroll.TaxConfiguration{
		Name: "Income Tax",
		Slabs: []payroll.TaxSlab{
			{MinIncome: money(0), MaxIncome: &max, Rate: 10},
			{MinIncome: money(1000), Rate: 20, FixedAmount: money(25)},
		},
	}))

	cfg, err = s.TaxConfig(ctx)
	require.NoError(t, err)
	require.NotNil(t, cfg)
	require.Len(t, cfg.Slabs, 2)
	assert.Equal(t, "25.00", cfg.Slabs[1].FixedAmount.String())

	capSalary := money(2000)
	require.NoError(t, s.SetStatutoryConfigs(ctx, []payroll.StatutoryConfiguration{
		{ContributionType: "Social Insurance", EmployeeRate: 5, MaxSalaryLimit: &capSalary},
	}))
	statutory, err := s.StatutoryConfigs(ctx)
	require.NoError(t, err)
	require.Len(t, statutory, 1)
	require.NotNil(t, statutory[0].MaxSalaryLimit)
}

func TestStore_PayslipIdempotencyGuard(t *testing.T) {
	// One payslip per (employee, cycle). A rerun surfaces ErrPayslipExists.

	s := newTestStore(t)
	ctx := context.Background()
	april := payroll.YearMonth{Year: 2025, Month: time.April}

	first := &payroll.Payslip{
		ID: "ps-1", EmployeeID: "emp-1", CycleID: "cycle-1", Month: april,
		NetSalary: money(2800), Status: payroll.PayslipPending,
		GeneratedAt: time.Now(),
	}
	require.NoError(t, s.SavePayslip(ctx, first))

	dup := &payroll.Payslip{
		ID: "ps-2", EmployeeID: "emp-1", CycleID: "cycle-1", Month: april,
		NetSalary: money(2800), Status: payroll.PayslipPending,
		GeneratedAt: time.Now(),
	}
	err := s.SavePayslip(ctx, dup)
	assert.ErrorIs(t, err, payroll.ErrPayslipExists)

	has, err := s.HasPayslip(ctx, "emp-1", "cycle-1")
	require.NoError(t, err)
	assert.True(t, has)

	got, err := s.GetPayslip(ctx, "ps-1")
	require.NoError(t, err)
	assert.Equal(t, "2800.00", got.NetSalary.String())
}

func TestStore_CycleRecords(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.GetCycle(ctx, "cycle-1")
	assert.ErrorIs(t, err, payroll.ErrCycleNotFound)

	cycle := payroll.PayrollCycle{
		ID: "cycle-1", Month: payroll.YearMonth{Year: 2025, Month: time.April},
		Frequency: payroll.Monthly,
	}
	require.NoError(t, s.SaveCycle(ctx, cycle))

	got, err := s.GetCycle(ctx, "cycle-1")
	require.NoError(t, err)
	assert.Equal(t, payroll.Monthly, got.Frequency)
	assert.Equal(t, 2025, got.Month.Year)

	require.NoError(t, s.Reset(ctx))
	cycles, err := s.ListCycles(ctx)
	require.NoError(t, err)
	assert.Empty(t, cycles)
}
