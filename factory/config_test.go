package factory_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/payroll-engine/factory"
	"github.com/warp/payroll-engine/payroll"
)

func TestParseEmployee_FullRecord(t *testing.T) {
	jsonStr := `{
		"id": "emp-1",
		"name": "Dana Reyes",
		"basic_salary": 3000,
		"joining_date": "2024-01-01",
		"salary_structure": [
			{"id": "c-housing", "name": "Housing", "mode": "PercentageOfBasic",
			 "rate": 10, "effective_date": "2024-01-01", "taxable": true},
			{"id": "c-fund", "name": "Welfare Fund", "kind": "Deduction",
			 "amount": 50, "effective_date": "2024-01-01"}
		],
		"assignments": [
			{"project_id": "p-1", "project_name": "Apollo",
			 "effective_date": "2024-01-01", "percentage": 60}
		]
	}`

	f := factory.NewConfigFactory()
	emp, err := f.ParseEmployee(jsonStr)
	require.NoError(t, err)

	assert.Equal(t, payroll.EmployeeID("emp-1"), emp.ID)
	assert.Equal(t, payroll.StatusActive, emp.Status, "status defaults to Active")
	assert.Equal(t, "3000.00", emp.BasicSalary.Round2().String())
	require.Len(t, emp.SalaryStructure, 2)
	assert.True(t, emp.SalaryStructure[0].IsAllowance())
	assert.Equal(t, payroll.ModePercentageOfBasic, emp.SalaryStructure[0].Mode)
	assert.True(t, emp.SalaryStructure[1].IsDeduction())
	require.Len(t, emp.Assignments, 1)
	require.NotNil(t, emp.Assignments[0].Percentage)
	assert.Equal(t, 60.0, *emp.Assignments[0].Percentage)
}

func TestParseEmployee_MissingID_Rejected(t *testing.T) {
	f := factory.NewConfigFactory()
	_, err := f.ParseEmployee(`{"name": "No ID", "joining_date": "2024-01-01"}`)
	assert.Error(t, err)
}

func TestParseEmployee_BadDate_Rejected(t *testing.T) {
	f := factory.NewConfigFactory()
	_, err := f.ParseEmployee(`{"id": "emp-1", "joining_date": "January 2024"}`)
	assert.Error(t, err)
}

func TestParseTaxConfiguration_ValidatesTable(t *testing.T) {
	f := factory.NewConfigFactory()

	cfg, err := f.ParseTaxConfiguration(`{
		"name": "Income Tax",
		"slabs": [
			{"min_income": 0, "max_income": 1000, "rate": 10},
			{"min_income": 1000, "rate": 20, "fixed_amount": 25}
		]
	}`)
	require.NoError(t, err)
	require.Len(t, cfg.Slabs, 2)
	assert.Nil(t, cfg.Slabs[1].MaxIncome, "absent max_income reads as unbounded")

	// Descending slabs fail validation at parse time
	_, err = f.ParseTaxConfiguration(`{
		"slabs": [
			{"min_income": 1000, "rate": 20},
			{"min_income": 0, "rate": 10}
		]
	}`)
	assert.ErrorIs(t, err, payroll.ErrInvalidTaxTable)
}

func TestParseStatutoryConfigurations(t *testing.T) {
	f := factory.NewConfigFactory()

	cfgs, err := f.ParseStatutoryConfigurations(`[
		{"contribution_type": "Social Insurance", "employee_rate": 5, "max_salary_limit": 2000},
		{"contribution_type": "Provident Fund", "employee_rate": 2}
	]`)
	require.NoError(t, err)
	require.Len(t, cfgs, 2)
	require.NotNil(t, cfgs[0].MaxSalaryLimit)
	assert.Equal(t, "2000.00", cfgs[0].MaxSalaryLimit.Round2().String())
	assert.Nil(t, cfgs[1].MaxSalaryLimit)
}

func TestParseEngineConfig_OverlaysDefaults(t *testing.T) {
	f := factory.NewConfigFactory()

	cfg, err := f.ParseEngineConfig(`{"working_days_per_month": 26, "proration_enabled": false}`)
	require.NoError(t, err)

	defaults := payroll.DefaultConfig()
	assert.Equal(t, 26, cfg.WorkingDaysPerMonth)
	assert.False(t, cfg.ProrationEnabled)
	assert.Equal(t, defaults.HoursPerDay, cfg.HoursPerDay)
	assert.Equal(t, defaults.OvertimeMultiplier, cfg.OvertimeMultiplier)
	assert.True(t, cfg.MultiProjectAllocation)
}

func TestParseEmployee_Termination(t *testing.T) {
	f := factory.NewConfigFactory()

	emp, err := f.ParseEmployee(`{
		"id": "emp-1",
		"status": "Terminated",
		"joining_date": "2023-06-01",
		"termination": {"last_working_day": "2025-05-15", "reason": "resignation"}
	}`)
	require.NoError(t, err)

	assert.Equal(t, payroll.StatusTerminated, emp.Status)
	require.NotNil(t, emp.Termination)
	assert.Equal(t, payroll.NewTimePoint(2025, time.May, 15), emp.Termination.LastWorkingDay)
}
