/*
scenarios.go - Demo scenario loaders for testing and demonstrations

PURPOSE:

	Provides pre-built scenarios that populate the database with realistic
	data for testing and demos. Each scenario creates employees, salary
	structures, rule tables, and facts that demonstrate specific features.

AVAILABLE SCENARIOS:

	starter-team:     Three employees with fixed and percentage allowances
	mid-month-join:   Prorated payslip for an employee who joined mid-month
	multi-project:    Cost allocation across concurrent project assignments
	full-deductions:  Tax slabs, statutory contributions, a loan, and an
	                  adjustment on one payslip

HOW SCENARIOS WORK:
 1. Reset database (clear all data)
 2. Create employees via factory JSON
 3. Install rule tables (tax, statutory)
 4. Add facts (bonuses, adjustments, attendance, loans)

USAGE VIA API:

	POST /api/scenarios/load
	{"scenario_id": "multi-project"}

ADDING NEW SCENARIOS:
 1. Add to 'scenarios' slice with ID, name, description
 2. Create loader function: loadXxxScenario(ctx, h)
 3. Add case to LoadScenario handler

NOTE:

	Scenarios reset the database. Only use in development/demo environments.

SEE ALSO:
  - handlers.go: LoadScenario, ListScenarios handlers
  - factory/config.go: Employee and rule table JSON definitions
*/
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/warp/payroll-engine/payroll"
)

// =============================================================================
// SCENARIO DEFINITIONS
// =============================================================================

var scenarios = []ScenarioDTO{
	{
		ID:          "starter-team",
		Name:        "Starter Team",
		Description: "Three employees with fixed and percentage-of-basic allowances",
	},
	{
		ID:          "mid-month-join",
		Name:        "Mid-Month Join",
		Description: "Prorated payslip for an employee who joined mid-month, plus a joining bonus",
	},
	{
		ID:          "multi-project",
		Name:        "Multi-Project Allocation",
		Description: "Payroll cost split across concurrent project assignments",
	},
	{
		ID:          "full-deductions",
		Name:        "Full Deductions",
		Description: "Progressive tax, statutory contributions, a loan installment, and an adjustment",
	},
}

// ListScenarios returns available scenarios.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scenarios)
}

// GetCurrentScenario returns the currently loaded scenario, if any.
func (h *Handler) GetCurrentScenario(w http.ResponseWriter, r *http.Request) {
	if h.currentScenario == "" {
		writeJSON(w, http.StatusOK, nil)
		return
	}

	for _, s := range scenarios {
		if s.ID == h.currentScenario {
			writeJSON(w, http.StatusOK, s)
			return
		}
	}

	writeJSON(w, http.StatusOK, ScenarioDTO{
		ID:          h.currentScenario,
		Name:        h.currentScenario,
		Description: "Currently loaded scenario",
	})
}

// LoadScenario loads a predefined scenario.
func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	var req LoadScenarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	ctx := r.Context()

	// Reset first
	if err := h.Store.Reset(ctx); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset database", err)
		return
	}
	h.Engine = payroll.New(payroll.DefaultConfig())
	h.currentScenario = ""

	var err error
	switch req.ScenarioID {
	case "starter-team":
		err = h.loadStarterTeamScenario(ctx)
	case "mid-month-join":
		err = h.loadMidMonthJoinScenario(ctx)
	case "multi-project":
		err = h.loadMultiProjectScenario(ctx)
	case "full-deductions":
		err = h.loadFullDeductionsScenario(ctx)
	default:
		writeError(w, http.StatusBadRequest, "Unknown scenario: "+req.ScenarioID, nil)
		return
	}

	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load scenario", err)
		return
	}

	h.currentScenario = req.ScenarioID
	writeJSON(w, http.StatusOK, map[string]string{
		"status":   "loaded",
		"scenario": req.ScenarioID,
	})
}

// =============================================================================
// SCENARIO LOADERS
// =============================================================================

// demoMonth is the month scenario facts pin to: the most recently completed
// calendar month, so a cycle run right after loading produces payslips.
func demoMonth() payroll.YearMonth {
	now := time.Now()
	if now.Month() == time.January {
		return payroll.YearMonth{Year: now.Year() - 1, Month: time.December}
	}
	return payroll.YearMonth{Year: now.Year(), Month: now.Month() - 1}
}

func (h *Handler) putEmployeeJSON(ctx context.Context, jsonStr string) error {
	emp, err := h.Factory.ParseEmployee(jsonStr)
	if err != nil {
		return err
	}
	return h.Store.PutEmployee(ctx, emp)
}

func (h *Handler) loadStarterTeamScenario(ctx context.Context) error {
	team := []string{
		`{
			"id": "emp-ayla", "name": "Ayla Brandt", "email": "ayla@example.com",
			"basic_salary": 4200, "joining_date": "2023-03-01",
			"salary_structure": [
				{"id": "c-housing", "name": "Housing Allowance", "amount": 800,
				 "effective_date": "2023-03-01", "taxable": true},
				{"id": "c-transport", "name": "Transport Allowance", "amount": 250,
				 "effective_date": "2023-03-01"}
			]
		}`,
		`{
			"id": "emp-marco", "name": "Marco Silva", "email": "marco@example.com",
			"basic_salary": 3600, "joining_date": "2022-07-15",
			"salary_structure": [
				{"id": "c-housing", "name": "Housing Allowance", "mode": "PercentageOfBasic",
				 "rate": 15, "effective_date": "2022-07-15", "taxable": true}
			]
		}`,
		`{
			"id": "emp-priya", "name": "Priya Nair", "email": "priya@example.com",
			"basic_salary": 5100, "joining_date": "2021-11-01",
			"salary_structure": [
				{"id": "c-housing", "name": "Housing Allowance", "amount": 900,
				 "effective_date": "2021-11-01", "taxable": true},
				{"id": "c-fund", "name": "Welfare Fund", "kind": "Deduction", "amount": 75,
				 "effective_date": "2021-11-01"}
			]
		}`,
	}

	for _, e := range team {
		if err := h.putEmployeeJSON(ctx, e); err != nil {
			return err
		}
	}
	return nil
}

func (h *Handler) loadMidMonthJoinScenario(ctx context.Context) error {
	month := demoMonth()
	joinDate := payroll.NewTimePoint(month.Year, month.Month, 10)

	empJSON := fmt.Sprintf(`{
		"id": "emp-joiner", "name": "Jonah Reed", "email": "jonah@example.com",
		"basic_salary": 3000, "joining_date": "%s",
		"salary_structure": [
			{"id": "c-housing", "name": "Housing Allowance", "amount": 600,
			 "effective_date": "%s", "taxable": true}
		]
	}`, joinDate.String(), joinDate.String())

	if err := h.putEmployeeJSON(ctx, empJSON); err != nil {
		return err
	}

	return h.Store.AddBonus(ctx, payroll.BonusRecord{
		ID:           "bonus-joining",
		EmployeeID:   "emp-joiner",
		Name:         "Joining Bonus",
		Amount:       payroll.NewMoney(500),
		Status:       payroll.BonusApproved,
		PayrollMonth: month,
		AwardedOn:    joinDate,
	})
}

func (h *Handler) loadMultiProjectScenario(ctx context.Context) error {
	empJSON := `{
		"id": "emp-split", "name": "Renata Cruz", "email": "renata@example.com",
		"basic_salary": 4800, "joining_date": "2022-01-10",
		"salary_structure": [
			{"id": "c-housing", "name": "Housing Allowance", "amount": 700,
			 "effective_date": "2022-01-10", "taxable": true}
		],
		"assignments": [
			{"project_id": "p-apollo", "project_name": "Apollo",
			 "effective_date": "2023-01-01", "percentage": 60},
			{"project_id": "p-hermes", "project_name": "Hermes",
			 "effective_date": "2023-01-01", "percentage": 40}
		]
	}`

	if err := h.putEmployeeJSON(ctx, empJSON); err != nil {
		return err
	}

	// A second employee splitting by hours instead of percentages
	hourlyJSON := `{
		"id": "emp-hours", "name": "Felix Okoro", "email": "felix@example.com",
		"basic_salary": 3900, "joining_date": "2023-05-01",
		"assignments": [
			{"project_id": "p-apollo", "project_name": "Apollo",
			 "effective_date": "2023-06-01", "hours_per_month": 120},
			{"project_id": "p-atlas", "project_name": "Atlas",
			 "effective_date": "2023-06-01", "hours_per_month": 40}
		]
	}`
	return h.putEmployeeJSON(ctx, hourlyJSON)
}

func (h *Handler) loadFullDeductionsScenario(ctx context.Context) error {
	month := demoMonth()

	empJSON := `{
		"id": "emp-full", "name": "Ines Kovac", "email": "ines@example.com",
		"basic_salary": 5500, "joining_date": "2021-02-01",
		"salary_structure": [
			{"id": "c-housing", "name": "Housing Allowance", "amount": 1000,
			 "effective_date": "2021-02-01", "taxable": true},
			{"id": "c-fund", "name": "Welfare Fund", "kind": "Deduction", "amount": 100,
			 "effective_date": "2021-02-01", "tax_exempt": true}
		]
	}`
	if err := h.putEmployeeJSON(ctx, empJSON); err != nil {
		return err
	}

	tax, err := h.Factory.ParseTaxConfiguration(`{
		"name": "Progressive Income Tax",
		"slabs": [
			{"min_income": 0, "max_income": 2000, "rate": 0},
			{"min_income": 2000, "max_income": 4000, "rate": 10},
			{"min_income": 4000, "rate": 20, "fixed_amount": 50}
		]
	}`)
	if err != nil {
		return err
	}
	if err := h.Store.SetTaxConfig(ctx, *tax); err != nil {
		return err
	}

	statutory, err := h.Factory.ParseStatutoryConfigurations(`[
		{"contribution_type": "Social Insurance", "employee_rate": 5, "max_salary_limit": 4000},
		{"contribution_type": "Provident Fund", "employee_rate": 2}
	]`)
	if err != nil {
		return err
	}
	if err := h.Store.SetStatutoryConfigs(ctx, statutory); err != nil {
		return err
	}

	if err := h.Store.AddLoan(ctx, payroll.LoanRecord{
		ID:                 "loan-advance",
		EmployeeID:         "emp-full",
		Name:               "Salary Advance",
		MonthlyInstallment: payroll.NewMoney(200),
		FirstMonth:         payroll.YearMonth{Year: month.Year - 1, Month: month.Month},
		Status:             payroll.LoanActive,
	}); err != nil {
		return err
	}

	return h.Store.AddAdjustment(ctx, payroll.PayrollAdjustment{
		ID:          "adj-parking",
		EmployeeID:  "emp-full",
		Description: "Parking fine recovery",
		Type:        payroll.AdjustmentDeduction,
		Amount:      payroll.NewMoney(60),
		Status:      payroll.AdjustmentActive,
		TargetMonth: month,
	})
}
