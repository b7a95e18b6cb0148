/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract, allowing:
  - Field renaming without breaking clients
  - API-specific validation
  - Version evolution

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

MONEY REPRESENTATION:
  All monetary amounts go over the wire as fixed two-decimal strings
  ("3000.00"). Floats lose cents; strings keep the payslip identity
  auditable by a client.

TYPES:
  Employee:
    EmployeeDTO (wraps factory.EmployeeJSON for creation)

  Payslips:
    PayslipDTO, PayslipItemDTO, EarningsDTO, DeductionsDTO,
    AllocationDTO, ProrationDTO

  Cycles:
    CycleDTO, RunCycleRequest, CycleResultDTO

  Facts:
    BonusRequest, AdjustmentRequest, AttendanceRequest,
    CommissionRequest, LoanRequest

  Scenarios:
    ScenarioDTO, LoadScenarioRequest

VALIDATION:
  Validation is done in handlers, not in DTOs. DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
  - factory/config.go: EmployeeJSON, TaxConfigJSON input formats
*/
package api

import (
	"time"

	"github.com/warp/payroll-engine/payroll"
)

// =============================================================================
// REQUEST/RESPONSE TYPES
// =============================================================================

// EmployeeDTO represents an employee in API responses.
type EmployeeDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email,omitempty"`
	Status      string `json:"status"`
	BasicSalary string `json:"basic_salary"`
	JoiningDate string `json:"joining_date"`
	LastWorkingDay string `json:"last_working_day,omitempty"`
	Components  int    `json:"components"`
	Assignments int    `json:"assignments"`
}

// PayslipItemDTO is one named line on a payslip section.
type PayslipItemDTO struct {
	Name   string `json:"name"`
	Type   string `json:"type"`
	Amount string `json:"amount"`
}

// EarningsDTO is the earnings side of a payslip.
type EarningsDTO struct {
	Basic       string           `json:"basic"`
	Allowances  []PayslipItemDTO `json:"allowances,omitempty"`
	Bonuses     []PayslipItemDTO `json:"bonuses,omitempty"`
	Overtime    []PayslipItemDTO `json:"overtime,omitempty"`
	Commissions []PayslipItemDTO `json:"commissions,omitempty"`
}

// DeductionsDTO is the deduction side of a payslip, itemized by section.
type DeductionsDTO struct {
	Structural  []PayslipItemDTO `json:"structural,omitempty"`
	Tax         []PayslipItemDTO `json:"tax,omitempty"`
	Statutory   []PayslipItemDTO `json:"statutory,omitempty"`
	Loans       []PayslipItemDTO `json:"loans,omitempty"`
	Adjustments []PayslipItemDTO `json:"adjustments,omitempty"`
	Total       string           `json:"total"`
}

// ProrationDTO describes the worked span behind a payslip.
type ProrationDTO struct {
	Days      int    `json:"days"`
	TotalDays int    `json:"total_days"`
	Reason    string `json:"reason,omitempty"`
	Prorated  bool   `json:"prorated"`
}

// AllocationDTO is one project's share of a payslip's cost.
type AllocationDTO struct {
	ProjectID   string  `json:"project_id"`
	ProjectName string  `json:"project_name,omitempty"`
	Factor      float64 `json:"factor"`
	Basic       string  `json:"basic"`
	Allowances  string  `json:"allowances"`
	Bonuses     string  `json:"bonuses"`
	Deductions  string  `json:"deductions"`
	Net         string  `json:"net"`
}

// PayslipDTO represents a generated payslip.
type PayslipDTO struct {
	ID              string          `json:"id"`
	EmployeeID      string          `json:"employee_id"`
	CycleID         string          `json:"cycle_id,omitempty"`
	Month           string          `json:"month"`
	PeriodStart     string          `json:"period_start"`
	PeriodEnd       string          `json:"period_end"`
	Proration       ProrationDTO    `json:"proration"`
	Earnings        EarningsDTO     `json:"earnings"`
	Deductions      DeductionsDTO   `json:"deductions"`
	GrossSalary     string          `json:"gross_salary"`
	TotalDeductions string          `json:"total_deductions"`
	NetSalary       string          `json:"net_salary"`
	Allocations     []AllocationDTO `json:"allocations,omitempty"`
	Status          string          `json:"status"`
	PaidAmount      string          `json:"paid_amount"`
	GeneratedAt     string          `json:"generated_at"`
}

// CycleDTO represents a processed payroll cycle.
type CycleDTO struct {
	ID        string `json:"id"`
	Month     string `json:"month"`
	Frequency string `json:"frequency"`
}

// RunCycleRequest triggers a payroll cycle run.
type RunCycleRequest struct {
	CycleID   string `json:"cycle_id,omitempty"` // derived from month when empty
	Month     string `json:"month"`              // "YYYY-MM"
	Frequency string `json:"frequency,omitempty"`
}

// CycleResultDTO is the outcome of a cycle run.
type CycleResultDTO struct {
	CycleID  string       `json:"cycle_id"`
	Month    string       `json:"month"`
	Payslips []PayslipDTO `json:"payslips"`
	Errors   []string     `json:"errors,omitempty"`
	Warnings []string     `json:"warnings,omitempty"`
	Skipped  []string     `json:"skipped,omitempty"` // already-generated payslips
}

// PreviewRequest asks for a single-employee payslip without persisting it.
type PreviewRequest struct {
	Month     string `json:"month"`
	Frequency string `json:"frequency,omitempty"`
}

// BonusRequest records a bonus grant.
type BonusRequest struct {
	ID           string  `json:"id,omitempty"`
	EmployeeID   string  `json:"employee_id"`
	Name         string  `json:"name"`
	Amount       float64 `json:"amount"`
	Status       string  `json:"status,omitempty"` // defaults to Approved
	PayrollMonth string  `json:"payroll_month,omitempty"`
	AwardedOn    string  `json:"awarded_on,omitempty"`
}

// AdjustmentRequest records an ad-hoc addition or deduction.
type AdjustmentRequest struct {
	ID          string  `json:"id,omitempty"`
	EmployeeID  string  `json:"employee_id"`
	Description string  `json:"description"`
	Type        string  `json:"type"` // "Addition" or "Deduction"
	Amount      float64 `json:"amount"`
	TargetMonth string  `json:"target_month,omitempty"`
}

// AttendanceRequest records a batch of daily attendance rows.
type AttendanceRequest struct {
	Records []AttendanceRecordRequest `json:"records"`
}

// AttendanceRecordRequest is one employee-day attendance mark.
type AttendanceRecordRequest struct {
	EmployeeID    string  `json:"employee_id"`
	Date          string  `json:"date"` // "YYYY-MM-DD"
	Status        string  `json:"status"`
	OvertimeHours float64 `json:"overtime_hours,omitempty"`
}

// CommissionRequest records a commission rule.
type CommissionRequest struct {
	ID         string  `json:"id,omitempty"`
	EmployeeID string  `json:"employee_id"`
	Name       string  `json:"name"`
	Mode       string  `json:"mode"` // "FixedAmount" or "PercentageOfBasic"
	Amount     float64 `json:"amount,omitempty"`
	Rate       float64 `json:"rate,omitempty"`
	Month      string  `json:"month,omitempty"`
}

// LoanRequest records a loan repayment schedule.
type LoanRequest struct {
	ID                 string  `json:"id,omitempty"`
	EmployeeID         string  `json:"employee_id"`
	Name               string  `json:"name"`
	MonthlyInstallment float64 `json:"monthly_installment"`
	FirstMonth         string  `json:"first_month"`
	LastMonth          string  `json:"last_month,omitempty"`
}

// ScenarioDTO represents a demo scenario.
type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// LoadScenarioRequest selects a scenario to load.
type LoadScenarioRequest struct {
	ScenarioID string `json:"scenario_id"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func toEmployeeDTO(e payroll.Employee) EmployeeDTO {
	dto := EmployeeDTO{
		ID:          string(e.ID),
		Name:        e.Name,
		Email:       e.Email,
		Status:      string(e.Status),
		BasicSalary: e.BasicSalary.String(),
		JoiningDate: e.JoiningDate.String(),
		Components:  len(e.SalaryStructure),
		Assignments: len(e.Assignments),
	}
	if e.Termination != nil {
		dto.LastWorkingDay = e.Termination.LastWorkingDay.String()
	}
	return dto
}

func toItemDTOs(items []payroll.PayslipItem) []PayslipItemDTO {
	if len(items) == 0 {
		return nil
	}
	dtos := make([]PayslipItemDTO, len(items))
	for i, item := range items {
		dtos[i] = PayslipItemDTO{
			Name:   item.Name,
			Type:   string(item.Type),
			Amount: item.Amount.String(),
		}
	}
	return dtos
}

func toPayslipDTO(p *payroll.Payslip) PayslipDTO {
	allocations := make([]AllocationDTO, len(p.Allocations))
	for i, a := range p.Allocations {
		allocations[i] = AllocationDTO{
			ProjectID:   string(a.ProjectID),
			ProjectName: a.ProjectName,
			Factor:      a.Factor,
			Basic:       a.Basic.String(),
			Allowances:  a.Allowances.String(),
			Bonuses:     a.Bonuses.String(),
			Deductions:  a.Deductions.String(),
			Net:         a.Net.String(),
		}
	}
	if len(allocations) == 0 {
		allocations = nil
	}

	return PayslipDTO{
		ID:          string(p.ID),
		EmployeeID:  string(p.EmployeeID),
		CycleID:     string(p.CycleID),
		Month:       p.Month.String(),
		PeriodStart: p.Period.Start.String(),
		PeriodEnd:   p.Period.End.String(),
		Proration: ProrationDTO{
			Days:      p.Proration.Days,
			TotalDays: p.Proration.TotalDays,
			Reason:    p.Proration.Reason,
			Prorated:  p.Proration.IsProrated(),
		},
		Earnings: EarningsDTO{
			Basic:       p.Earnings.Basic.String(),
			Allowances:  toItemDTOs(p.Earnings.Allowances),
			Bonuses:     toItemDTOs(p.Earnings.Bonuses),
			Overtime:    toItemDTOs(p.Earnings.Overtime),
			Commissions: toItemDTOs(p.Earnings.Commissions),
		},
		Deductions: DeductionsDTO{
			Structural:  toItemDTOs(p.Deductions.Structural),
			Tax:         toItemDTOs(p.Deductions.Tax),
			Statutory:   toItemDTOs(p.Deductions.Statutory),
			Loans:       toItemDTOs(p.Deductions.Loans),
			Adjustments: toItemDTOs(p.Deductions.Adjustments),
			Total:       p.TotalDeductions.String(),
		},
		GrossSalary:     p.GrossSalary.String(),
		TotalDeductions: p.TotalDeductions.String(),
		NetSalary:       p.NetSalary.String(),
		Allocations:     allocations,
		Status:          string(p.Status),
		PaidAmount:      p.PaidAmount.String(),
		GeneratedAt:     p.GeneratedAt.Format(time.RFC3339),
	}
}

func toPayslipDTOs(payslips []*payroll.Payslip) []PayslipDTO {
	dtos := make([]PayslipDTO, len(payslips))
	for i, p := range payslips {
		dtos[i] = toPayslipDTO(p)
	}
	return dtos
}

func toCycleDTO(c payroll.PayrollCycle) CycleDTO {
	return CycleDTO{
		ID:        string(c.ID),
		Month:     c.Month.String(),
		Frequency: string(c.Frequency),
	}
}
