/*
scenarios_test.go - Tests for demo scenario loading

Tests for:
- Scenario listing and current-scenario tracking
- The full-deductions scenario producing every payslip section
- Reset clearing scenario state
*/
package api

import (
	"net/http"
	"testing"
)

func TestListScenarios(t *testing.T) {
	_, router := newTestHandler(t)

	rec := doJSON(t, router, "GET", "/api/scenarios", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	list := decodeBody[[]ScenarioDTO](t, rec)
	if len(list) != 4 {
		t.Errorf("Expected 4 scenarios, got %d", len(list))
	}
}

func TestLoadScenario_Unknown(t *testing.T) {
	_, router := newTestHandler(t)

	rec := doJSON(t, router, "POST", "/api/scenarios/load", `{"scenario_id": "does-not-exist"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", rec.Code)
	}
}

func TestLoadScenario_StarterTeam(t *testing.T) {
	h, router := newTestHandler(t)

	rec := doJSON(t, router, "POST", "/api/scenarios/load", `{"scenario_id": "starter-team"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if h.currentScenario != "starter-team" {
		t.Errorf("Expected current scenario starter-team, got %q", h.currentScenario)
	}

	rec = doJSON(t, router, "GET", "/api/employees", "")
	employees := decodeBody[[]EmployeeDTO](t, rec)
	if len(employees) != 3 {
		t.Fatalf("Expected 3 employees, got %d", len(employees))
	}

	rec = doJSON(t, router, "GET", "/api/scenarios/current", "")
	current := decodeBody[ScenarioDTO](t, rec)
	if current.ID != "starter-team" {
		t.Errorf("Expected current scenario starter-team, got %s", current.ID)
	}
}

func TestLoadScenario_FullDeductions_ProducesAllSections(t *testing.T) {
	// GIVEN: The full-deductions scenario
	_, router := newTestHandler(t)

	rec := doJSON(t, router, "POST", "/api/scenarios/load", `{"scenario_id": "full-deductions"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	// WHEN: Running payroll for the scenario's month
	month := demoMonth()
	rec = doJSON(t, router, "POST", "/api/payroll/run", `{"month": "`+month.String()+`"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	result := decodeBody[CycleResultDTO](t, rec)
	if len(result.Payslips) != 1 {
		t.Fatalf("Expected 1 payslip, got %d: errors=%v", len(result.Payslips), result.Errors)
	}

	// THEN: Every deduction section is populated
	d := result.Payslips[0].Deductions
	if len(d.Structural) == 0 {
		t.Error("Expected a structural deduction (Welfare Fund)")
	}
	if len(d.Tax) == 0 {
		t.Error("Expected tax lines")
	}
	if len(d.Statutory) != 2 {
		t.Errorf("Expected 2 statutory lines, got %d", len(d.Statutory))
	}
	if len(d.Loans) != 1 {
		t.Errorf("Expected 1 loan line, got %d", len(d.Loans))
	}
	if len(d.Adjustments) != 1 {
		t.Errorf("Expected 1 adjustment line, got %d", len(d.Adjustments))
	}
}

func TestLoadScenario_MidMonthJoin_Prorated(t *testing.T) {
	_, router := newTestHandler(t)

	rec := doJSON(t, router, "POST", "/api/scenarios/load", `{"scenario_id": "mid-month-join"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	month := demoMonth()
	rec = doJSON(t, router, "POST", "/api/payroll/run", `{"month": "`+month.String()+`"}`)
	result := decodeBody[CycleResultDTO](t, rec)
	if len(result.Payslips) != 1 {
		t.Fatalf("Expected 1 payslip, got %d: errors=%v", len(result.Payslips), result.Errors)
	}

	p := result.Payslips[0]
	if !p.Proration.Prorated {
		t.Error("Expected a prorated payslip for a mid-month joiner")
	}
	if p.Proration.Reason != "Join" {
		t.Errorf("Expected proration reason Join, got %q", p.Proration.Reason)
	}
	if len(p.Earnings.Bonuses) != 1 {
		t.Errorf("Expected the joining bonus on the payslip, got %d bonus lines", len(p.Earnings.Bonuses))
	}
}

func TestResetDatabase_ClearsScenario(t *testing.T) {
	h, router := newTestHandler(t)

	doJSON(t, router, "POST", "/api/scenarios/load", `{"scenario_id": "starter-team"}`)

	rec := doJSON(t, router, "POST", "/api/scenarios/reset", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if h.currentScenario != "" {
		t.Errorf("Expected cleared scenario, got %q", h.currentScenario)
	}

	rec = doJSON(t, router, "GET", "/api/employees", "")
	employees := decodeBody[[]EmployeeDTO](t, rec)
	if len(employees) != 0 {
		t.Errorf("Expected no employees after reset, got %d", len(employees))
	}
}
