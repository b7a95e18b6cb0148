/*
Package factory provides JSON to Go payroll configuration conversion.

PURPOSE:
  Converts JSON definitions into payroll engine inputs: employee records,
  salary components, tax slab tables, statutory rules, and engine settings.
  This enables payroll configuration without code changes - HR can define
  rule tables in JSON, and the factory creates the proper Go structs.

WHY JSON?
  - Non-developers can modify rule tables
  - Easy integration with admin UI
  - Version control for payroll configs
  - Database storage of rule tables

JSON SCHEMA (employee):
  {
    "id": "emp-1",
    "name": "Dana Reyes",
    "status": "Active",
    "basic_salary": 3000,
    "joining_date": "2024-01-01",
    "salary_structure": [
      {"id": "c-housing", "name": "Housing", "mode": "PercentageOfBasic",
       "rate": 10, "effective_date": "2024-01-01", "taxable": true}
    ],
    "assignments": [
      {"project_id": "p-1", "project_name": "Apollo",
       "effective_date": "2024-01-01", "percentage": 60}
    ]
  }

JSON SCHEMA (tax table):
  {
    "name": "Income Tax",
    "slabs": [
      {"min_income": 0, "max_income": 1000, "rate": 10},
      {"min_income": 1000, "rate": 20, "fixed_amount": 25}
    ]
  }

USAGE:
  factory := NewConfigFactory()
  emp, err := factory.ParseEmployee(jsonString)
  tax, err := factory.ParseTaxConfiguration(taxJSON)

SEE ALSO:
  - payroll/employee.go: Employee type definitions
  - payroll/facts.go: Tax and statutory rule tables
  - api/scenarios.go: Demo data built through this factory
*/
package factory

import (
	"encoding/json"
	"fmt"

	"github.com/warp/payroll-engine/payroll"
)

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// EmployeeJSON is the JSON representation of an employee record.
type EmployeeJSON struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Email       string  `json:"email,omitempty"`
	Status      string  `json:"status,omitempty"` // defaults to Active
	BasicSalary float64 `json:"basic_salary"`
	JoiningDate string  `json:"joining_date"`

	Termination *TerminationJSON `json:"termination,omitempty"`
	History     []EventJSON      `json:"history,omitempty"`

	SalaryStructure []ComponentJSON  `json:"salary_structure,omitempty"`
	Assignments     []AssignmentJSON `json:"assignments,omitempty"`
}

type TerminationJSON struct {
	LastWorkingDay string `json:"last_working_day"`
	Reason         string `json:"reason,omitempty"`
}

type EventJSON struct {
	Type string `json:"type"` // Transfer, Promotion, Salary Revision
	Date string `json:"date"`
	Note string `json:"note,omitempty"`
}

// ComponentJSON represents one versioned salary component.
type ComponentJSON struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Kind          string  `json:"kind,omitempty"` // Allowance (default) or Deduction
	Mode          string  `json:"mode,omitempty"` // FixedAmount (default) or PercentageOfBasic
	Amount        float64 `json:"amount,omitempty"`
	Rate          float64 `json:"rate,omitempty"`
	EffectiveDate string  `json:"effective_date"`
	EndDate       string  `json:"end_date,omitempty"`
	Taxable       bool    `json:"taxable,omitempty"`
	TaxExempt     bool    `json:"tax_exempt,omitempty"`
}

// AssignmentJSON represents one project assignment.
type AssignmentJSON struct {
	ProjectID     string   `json:"project_id"`
	ProjectName   string   `json:"project_name,omitempty"`
	EffectiveDate string   `json:"effective_date"`
	EndDate       string   `json:"end_date,omitempty"`
	Percentage    *float64 `json:"percentage,omitempty"`
	HoursPerMonth *float64 `json:"hours_per_month,omitempty"`
}

// TaxConfigJSON represents a progressive slab table.
type TaxConfigJSON struct {
	Name  string     `json:"name,omitempty"`
	Slabs []SlabJSON `json:"slabs"`
}

type SlabJSON struct {
	MinIncome   float64  `json:"min_income"`
	MaxIncome   *float64 `json:"max_income,omitempty"` // absent = unbounded top bracket
	Rate        float64  `json:"rate"`
	FixedAmount float64  `json:"fixed_amount,omitempty"`
}

// StatutoryJSON represents one rate-based mandatory contribution.
type StatutoryJSON struct {
	ContributionType string   `json:"contribution_type"`
	EmployeeRate     float64  `json:"employee_rate"`
	MaxSalaryLimit   *float64 `json:"max_salary_limit,omitempty"`
}

// EngineConfigJSON represents the global engine settings.
type EngineConfigJSON struct {
	WorkingDaysPerMonth    *int     `json:"working_days_per_month,omitempty"`
	HoursPerDay            *int     `json:"hours_per_day,omitempty"`
	OvertimeMultiplier     *float64 `json:"overtime_multiplier,omitempty"`
	ProrationEnabled       *bool    `json:"proration_enabled,omitempty"`
	MultiProjectAllocation *bool    `json:"multi_project_allocation,omitempty"`
}

// =============================================================================
// CONFIG FACTORY
// =============================================================================

// ConfigFactory converts JSON payroll configuration to Go structs.
type ConfigFactory struct{}

// NewConfigFactory creates a new config factory.
func NewConfigFactory() *ConfigFactory {
	return &ConfigFactory{}
}

// ParseEmployee parses a JSON string into an Employee record.
func (f *ConfigFactory) ParseEmployee(jsonStr string) (payroll.Employee, error) {
	var ej EmployeeJSON
	if err := json.Unmarshal([]byte(jsonStr), &ej); err != nil {
		return payroll.Employee{}, fmt.Errorf("failed to parse employee JSON: %w", err)
	}
	return f.EmployeeFromJSON(ej)
}

// EmployeeFromJSON converts EmployeeJSON to a payroll.Employee.
func (f *ConfigFactory) EmployeeFromJSON(ej EmployeeJSON) (payroll.Employee, error) {
	if ej.ID == "" {
		return payroll.Employee{}, fmt.Errorf("employee requires an id")
	}
	joined, err := parseDate(ej.JoiningDate)
	if err != nil {
		return payroll.Employee{}, fmt.Errorf("employee %s: invalid joining_date: %w", ej.ID, err)
	}

	emp := payroll.Employee{
		ID:          payroll.EmployeeID(ej.ID),
		Name:        ej.Name,
		Email:       ej.Email,
		Status:      parseStatus(ej.Status),
		BasicSalary: payroll.NewMoney(ej.BasicSalary),
		JoiningDate: joined,
	}

	if ej.Termination != nil {
		last, err := parseDate(ej.Termination.LastWorkingDay)
		if err != nil {
			return payroll.Employee{}, fmt.Errorf("employee %s: invalid last_working_day: %w", ej.ID, err)
		}
		emp.Termination = &payroll.Termination{LastWorkingDay: last, Reason: ej.Termination.Reason}
	}

	for _, evj := range ej.History {
		date, err := parseDate(evj.Date)
		if err != nil {
			return payroll.Employee{}, fmt.Errorf("employee %s: invalid event date: %w", ej.ID, err)
		}
		emp.History = append(emp.History, payroll.LifecycleEvent{
			Type: payroll.EventType(evj.Type),
			Date: date,
			Note: evj.Note,
		})
	}

	for _, cj := range ej.SalaryStructure {
		c, err := componentFromJSON(cj)
		if err != nil {
			return payroll.Employee{}, fmt.Errorf("employee %s: %w", ej.ID, err)
		}
		emp.SalaryStructure = append(emp.SalaryStructure, c)
	}

	for _, aj := range ej.Assignments {
		a, err := assignmentFromJSON(aj)
		if err != nil {
			return payroll.Employee{}, fmt.Errorf("employee %s: %w", ej.ID, err)
		}
		emp.Assignments = append(emp.Assignments, a)
	}

	return emp, nil
}

// ParseTaxConfiguration parses and validates a slab table JSON string.
func (f *ConfigFactory) ParseTaxConfiguration(jsonStr string) (*payroll.TaxConfiguration, error) {
	var tj TaxConfigJSON
	if err := json.Unmarshal([]byte(jsonStr), &tj); err != nil {
		return nil, fmt.Errorf("failed to parse tax config JSON: %w", err)
	}
	return f.TaxFromJSON(tj)
}

// TaxFromJSON converts TaxConfigJSON to a validated payroll.TaxConfiguration.
func (f *ConfigFactory) TaxFromJSON(tj TaxConfigJSON) (*payroll.TaxConfiguration, error) {
	cfg := &payroll.TaxConfiguration{Name: tj.Name}
	for _, sj := range tj.Slabs {
		slab := payroll.TaxSlab{
			MinIncome:   payroll.NewMoney(sj.MinIncome),
			Rate:        sj.Rate,
			FixedAmount: payroll.NewMoney(sj.FixedAmount),
		}
		if sj.MaxIncome != nil {
			max := payroll.NewMoney(*sj.MaxIncome)
			slab.MaxIncome = &max
		}
		cfg.Slabs = append(cfg.Slabs, slab)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ParseStatutoryConfigurations parses a JSON array of contribution rules.
func (f *ConfigFactory) ParseStatutoryConfigurations(jsonStr string) ([]payroll.StatutoryConfiguration, error) {
	var sjs []StatutoryJSON
	if err := json.Unmarshal([]byte(jsonStr), &sjs); err != nil {
		return nil, fmt.Errorf("failed to parse statutory config JSON: %w", err)
	}

	var cfgs []payroll.StatutoryConfiguration
	for _, sj := range sjs {
		cfg := payroll.StatutoryConfiguration{
			ContributionType: sj.ContributionType,
			EmployeeRate:     sj.EmployeeRate,
		}
		if sj.MaxSalaryLimit != nil {
			cap := payroll.NewMoney(*sj.MaxSalaryLimit)
			cfg.MaxSalaryLimit = &cap
		}
		cfgs = append(cfgs, cfg)
	}
	return cfgs, nil
}

// ParseEngineConfig overlays JSON settings on the engine defaults.
func (f *ConfigFactory) ParseEngineConfig(jsonStr string) (payroll.Config, error) {
	cfg := payroll.DefaultConfig()
	if jsonStr == "" {
		return cfg, nil
	}

	var cj EngineConfigJSON
	if err := json.Unmarshal([]byte(jsonStr), &cj); err != nil {
		return payroll.Config{}, fmt.Errorf("failed to parse engine config JSON: %w", err)
	}

	if cj.WorkingDaysPerMonth != nil {
		cfg.WorkingDaysPerMonth = *cj.WorkingDaysPerMonth
	}
	if cj.HoursPerDay != nil {
		cfg.HoursPerDay = *cj.HoursPerDay
	}
	if cj.OvertimeMultiplier != nil {
		cfg.OvertimeMultiplier = *cj.OvertimeMultiplier
	}
	if cj.ProrationEnabled != nil {
		cfg.ProrationEnabled = *cj.ProrationEnabled
	}
	if cj.MultiProjectAllocation != nil {
		cfg.MultiProjectAllocation = *cj.MultiProjectAllocation
	}
	return cfg, nil
}

// =============================================================================
// PARSING HELPERS
// =============================================================================

func parseStatus(s string) payroll.EmploymentStatus {
	switch s {
	case "Terminated":
		return payroll.StatusTerminated
	case "OnLeave":
		return payroll.StatusOnLeave
	case "Suspended":
		return payroll.StatusSuspended
	default:
		return payroll.StatusActive
	}
}

func parseDate(s string) (payroll.TimePoint, error) {
	return payroll.ParseTimePoint(s)
}

func componentFromJSON(cj ComponentJSON) (payroll.SalaryComponent, error) {
	effective, err := parseDate(cj.EffectiveDate)
	if err != nil {
		return payroll.SalaryComponent{}, fmt.Errorf("component %s: invalid effective_date: %w", cj.ID, err)
	}

	c := payroll.SalaryComponent{
		ID:            payroll.ComponentID(cj.ID),
		Name:          cj.Name,
		Kind:          payroll.ComponentKind(cj.Kind),
		Mode:          parseCalcMode(cj.Mode),
		Amount:        payroll.NewMoney(cj.Amount),
		Rate:          cj.Rate,
		EffectiveDate: effective,
		Taxable:       cj.Taxable,
		TaxExempt:     cj.TaxExempt,
	}
	if cj.EndDate != "" {
		end, err := parseDate(cj.EndDate)
		if err != nil {
			return payroll.SalaryComponent{}, fmt.Errorf("component %s: invalid end_date: %w", cj.ID, err)
		}
		c.EndDate = &end
	}
	return c, nil
}

func assignmentFromJSON(aj AssignmentJSON) (payroll.ProjectAssignment, error) {
	effective, err := parseDate(aj.EffectiveDate)
	if err != nil {
		return payroll.ProjectAssignment{}, fmt.Errorf("assignment %s: invalid effective_date: %w", aj.ProjectID, err)
	}

	a := payroll.ProjectAssignment{
		ProjectID:     payroll.ProjectID(aj.ProjectID),
		ProjectName:   aj.ProjectName,
		EffectiveDate: effective,
		Percentage:    aj.Percentage,
		HoursPerMonth: aj.HoursPerMonth,
	}
	if aj.EndDate != "" {
		end, err := parseDate(aj.EndDate)
		if err != nil {
			return payroll.ProjectAssignment{}, fmt.Errorf("assignment %s: invalid end_date: %w", aj.ProjectID, err)
		}
		a.EndDate = &end
	}
	return a, nil
}

func parseCalcMode(s string) payroll.CalcMode {
	if s == "PercentageOfBasic" {
		return payroll.ModePercentageOfBasic
	}
	return payroll.ModeFixedAmount
}
