/*
handlers.go - HTTP API handlers for the payroll engine

PURPOSE:
  Exposes the payroll engine via REST API. Handles HTTP request/response,
  JSON serialization, and delegates to domain logic.

ENDPOINTS:
  Employees:
    GET    /api/employees                 List all employees
    POST   /api/employees                 Create/replace employee
    GET    /api/employees/{id}            Get employee details
    GET    /api/employees/{id}/payslips   Payslip history
    POST   /api/employees/{id}/preview    Preview payslip (not persisted)

  Facts:
    POST   /api/facts/bonuses             Record a bonus grant
    POST   /api/facts/adjustments         Record an ad-hoc adjustment
    POST   /api/facts/attendance          Record attendance rows
    POST   /api/facts/commissions         Record a commission rule
    POST   /api/facts/loans               Record a loan schedule

  Configuration:
    GET    /api/config/tax                Active tax slab table
    PUT    /api/config/tax                Replace tax slab table
    GET    /api/config/statutory          Statutory contribution rules
    PUT    /api/config/statutory          Replace statutory rules
    PUT    /api/config/engine             Update engine settings

  Payroll:
    POST   /api/payroll/run               Run a payroll cycle
    GET    /api/payslips/{id}             Get a payslip
    GET    /api/cycles                    List processed cycles
    GET    /api/cycles/{id}               Get a cycle
    GET    /api/cycles/{id}/payslips      Payslips of a cycle

  Scenarios:
    GET    /api/scenarios                 List demo scenarios
    POST   /api/scenarios/load            Load a demo scenario
    POST   /api/scenarios/reset           Reset the database

ARCHITECTURE:
  Handler struct holds all dependencies:
  - Store: Database access
  - Factory: JSON to payroll configuration conversion
  - Engine: The pure calculation engine

REQUEST FLOW:
  1. Parse HTTP request
  2. Validate input
  3. Call domain logic (engine, factory)
  4. Serialize response
  5. Handle errors

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 404: Resource not found
  - 409: Conflict (payslip already generated)
  - 500: Internal errors

SECURITY NOTE:
  Currently NO authentication or authorization. All endpoints are public.

SEE ALSO:
  - dto.go: Request/response data structures
  - scenarios.go: Demo scenario loaders
  - server.go: Router setup and middleware
*/
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/warp/payroll-engine/factory"
	"github.com/warp/payroll-engine/payroll"
	"github.com/warp/payroll-engine/store/sqlite"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store   *sqlite.Store
	Factory *factory.ConfigFactory
	Engine  *payroll.Engine

	// Track currently loaded scenario
	currentScenario string
}

// NewHandler creates a new handler with the given store.
func NewHandler(store *sqlite.Store) *Handler {
	return &Handler{
		Store:   store,
		Factory: factory.NewConfigFactory(),
		Engine:  payroll.New(payroll.DefaultConfig()),
	}
}

// =============================================================================
// EMPLOYEE HANDLERS
// =============================================================================

// ListEmployees returns all employees.
func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Store.ListEmployees(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list employees", err)
		return
	}

	dtos := make([]EmployeeDTO, len(employees))
	for i, e := range employees {
		dtos[i] = toEmployeeDTO(e)
	}

	writeJSON(w, http.StatusOK, dtos)
}

// GetEmployee returns a single employee.
func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	id := payroll.EmployeeID(chi.URLParam(r, "id"))

	emp, err := h.Store.GetEmployee(r.Context(), id)
	if payroll.IsNotFound(err) {
		writeError(w, http.StatusNotFound, "Employee not found", nil)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get employee", err)
		return
	}

	writeJSON(w, http.StatusOK, toEmployeeDTO(emp))
}

// CreateEmployee creates or replaces an employee from its JSON definition.
func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var ej factory.EmployeeJSON
	if err := json.NewDecoder(r.Body).Decode(&ej); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	emp, err := h.Factory.EmployeeFromJSON(ej)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid employee definition", err)
		return
	}

	if err := h.Store.PutEmployee(r.Context(), emp); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save employee", err)
		return
	}

	writeJSON(w, http.StatusCreated, toEmployeeDTO(emp))
}

// ListEmployeePayslips returns an employee's payslip history.
func (h *Handler) ListEmployeePayslips(w http.ResponseWriter, r *http.Request) {
	id := payroll.EmployeeID(chi.URLParam(r, "id"))

	payslips, err := h.Store.ListPayslipsByEmployee(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list payslips", err)
		return
	}

	writeJSON(w, http.StatusOK, toPayslipDTOs(payslips))
}

// PreviewPayslip calculates a single payslip without persisting anything.
func (h *Handler) PreviewPayslip(w http.ResponseWriter, r *http.Request) {
	id := payroll.EmployeeID(chi.URLParam(r, "id"))

	var req PreviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	month, err := payroll.ParseYearMonth(req.Month)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid month (use YYYY-MM)", err)
		return
	}
	frequency := parseFrequency(req.Frequency)

	ctx := r.Context()
	emp, err := h.Store.GetEmployee(ctx, id)
	if payroll.IsNotFound(err) {
		writeError(w, http.StatusNotFound, "Employee not found", nil)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get employee", err)
		return
	}

	facts, err := h.loadFacts(ctx, month, frequency)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load payroll facts", err)
		return
	}

	payslip, warnings, err := h.Engine.CalculateEmployeePayroll(emp, month, frequency, facts)
	if err != nil {
		if payroll.IsEligibility(err) {
			writeError(w, http.StatusConflict, "Employee not eligible for this period", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to calculate payslip", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"payslip":  toPayslipDTO(payslip),
		"warnings": warnings,
	})
}

// =============================================================================
// FACT HANDLERS
// =============================================================================

// CreateBonus records a bonus grant.
func (h *Handler) CreateBonus(w http.ResponseWriter, r *http.Request) {
	var req BonusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.EmployeeID == "" {
		writeError(w, http.StatusBadRequest, "employee_id is required", nil)
		return
	}

	status := payroll.BonusStatus(req.Status)
	if status == "" {
		status = payroll.BonusApproved
	}

	bonus := payroll.BonusRecord{
		ID:         orGeneratedID(req.ID, "bonus"),
		EmployeeID: payroll.EmployeeID(req.EmployeeID),
		Name:       req.Name,
		Amount:     payroll.NewMoney(req.Amount).Round2(),
		Status:     status,
	}
	if req.PayrollMonth != "" {
		month, err := payroll.ParseYearMonth(req.PayrollMonth)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid payroll_month (use YYYY-MM)", err)
			return
		}
		bonus.PayrollMonth = month
	}
	if req.AwardedOn != "" {
		awarded, err := payroll.ParseTimePoint(req.AwardedOn)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid awarded_on date (use YYYY-MM-DD)", err)
			return
		}
		bonus.AwardedOn = awarded
	}

	if err := h.Store.AddBonus(r.Context(), bonus); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save bonus", err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"id": bonus.ID, "status": string(bonus.Status)})
}

// CreateAdjustment records an ad-hoc addition or deduction.
func (h *Handler) CreateAdjustment(w http.ResponseWriter, r *http.Request) {
	var req AdjustmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	adjType := payroll.AdjustmentType(req.Type)
	if adjType != payroll.AdjustmentAddition && adjType != payroll.AdjustmentDeduction {
		writeError(w, http.StatusBadRequest, `type must be "Addition" or "Deduction"`, nil)
		return
	}

	adj := payroll.PayrollAdjustment{
		ID:          orGeneratedID(req.ID, "adj"),
		EmployeeID:  payroll.EmployeeID(req.EmployeeID),
		Description: req.Description,
		Type:        adjType,
		Amount:      payroll.NewMoney(req.Amount).Round2(),
		Status:      payroll.AdjustmentActive,
	}
	if req.TargetMonth != "" {
		month, err := payroll.ParseYearMonth(req.TargetMonth)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid target_month (use YYYY-MM)", err)
			return
		}
		adj.TargetMonth = month
	}

	if err := h.Store.AddAdjustment(r.Context(), adj); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save adjustment", err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"id": adj.ID})
}

// RecordAttendance records a batch of daily attendance rows.
func (h *Handler) RecordAttendance(w http.ResponseWriter, r *http.Request) {
	var req AttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if len(req.Records) == 0 {
		writeError(w, http.StatusBadRequest, "At least one attendance record is required", nil)
		return
	}

	recs := make([]payroll.AttendanceRecord, len(req.Records))
	for i, rr := range req.Records {
		date, err := payroll.ParseTimePoint(rr.Date)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid date: %s", rr.Date), err)
			return
		}
		status := payroll.AttendanceStatus(rr.Status)
		if status == "" {
			status = payroll.AttendancePresent
		}
		recs[i] = payroll.AttendanceRecord{
			EmployeeID:    payroll.EmployeeID(rr.EmployeeID),
			Date:          date,
			Status:        status,
			OvertimeHours: rr.OvertimeHours,
		}
	}

	if err := h.Store.AddAttendance(r.Context(), recs); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save attendance", err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]int{"recorded": len(recs)})
}

// CreateCommission records a commission rule.
func (h *Handler) CreateCommission(w http.ResponseWriter, r *http.Request) {
	var req CommissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	rule := payroll.CommissionRule{
		ID:         orGeneratedID(req.ID, "comm"),
		EmployeeID: payroll.EmployeeID(req.EmployeeID),
		Name:       req.Name,
		Mode:       parseCalcMode(req.Mode),
		Amount:     payroll.NewMoney(req.Amount).Round2(),
		Rate:       req.Rate,
	}
	if req.Month != "" {
		month, err := payroll.ParseYearMonth(req.Month)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid month (use YYYY-MM)", err)
			return
		}
		rule.Month = month
	}

	if err := h.Store.AddCommission(r.Context(), rule); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save commission", err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"id": rule.ID})
}

// CreateLoan records a loan repayment schedule.
func (h *Handler) CreateLoan(w http.ResponseWriter, r *http.Request) {
	var req LoanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	firstMonth, err := payroll.ParseYearMonth(req.FirstMonth)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid first_month (use YYYY-MM)", err)
		return
	}

	loan := payroll.LoanRecord{
		ID:                 orGeneratedID(req.ID, "loan"),
		EmployeeID:         payroll.EmployeeID(req.EmployeeID),
		Name:               req.Name,
		MonthlyInstallment: payroll.NewMoney(req.MonthlyInstallment).Round2(),
		FirstMonth:         firstMonth,
		Status:             payroll.LoanActive,
	}
	if req.LastMonth != "" {
		lastMonth, err := payroll.ParseYearMonth(req.LastMonth)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid last_month (use YYYY-MM)", err)
			return
		}
		loan.LastMonth = lastMonth
	}

	if err := h.Store.AddLoan(r.Context(), loan); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save loan", err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"id": loan.ID})
}

// =============================================================================
// CONFIGURATION HANDLERS
// =============================================================================

// GetTaxConfig returns the active tax slab table.
func (h *Handler) GetTaxConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.Store.TaxConfig(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get tax configuration", err)
		return
	}
	writeJSON(w, http.StatusOK, cfg)
}

// SetTaxConfig replaces the active tax slab table. The table is validated
// before it is stored; a malformed table never reaches the engine.
func (h *Handler) SetTaxConfig(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Failed to read request body", err)
		return
	}

	cfg, err := h.Factory.ParseTaxConfiguration(string(body))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid tax configuration", err)
		return
	}

	if err := h.Store.SetTaxConfig(r.Context(), *cfg); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save tax configuration", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "slabs": len(cfg.Slabs)})
}

// GetStatutoryConfigs returns the statutory contribution rules.
func (h *Handler) GetStatutoryConfigs(w http.ResponseWriter, r *http.Request) {
	cfgs, err := h.Store.StatutoryConfigs(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get statutory configuration", err)
		return
	}
	writeJSON(w, http.StatusOK, cfgs)
}

// SetStatutoryConfigs replaces the statutory contribution rules.
func (h *Handler) SetStatutoryConfigs(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Failed to read request body", err)
		return
	}

	cfgs, err := h.Factory.ParseStatutoryConfigurations(string(body))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid statutory configuration", err)
		return
	}

	if err := h.Store.SetStatutoryConfigs(r.Context(), cfgs); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save statutory configuration", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "rules": len(cfgs)})
}

// SetEngineConfig updates the global engine settings. Unset fields keep
// their defaults.
func (h *Handler) SetEngineConfig(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Failed to read request body", err)
		return
	}

	cfg, err := h.Factory.ParseEngineConfig(string(body))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid engine configuration", err)
		return
	}

	h.Engine = payroll.New(cfg)

	writeJSON(w, http.StatusOK, map[string]any{
		"working_days_per_month":   cfg.WorkingDaysPerMonth,
		"hours_per_day":            cfg.HoursPerDay,
		"overtime_multiplier":      cfg.OvertimeMultiplier,
		"proration_enabled":        cfg.ProrationEnabled,
		"multi_project_allocation": cfg.MultiProjectAllocation,
	})
}

// =============================================================================
// PAYROLL HANDLERS
// =============================================================================

// RunCycle processes a payroll cycle for all employees.
func (h *Handler) RunCycle(w http.ResponseWriter, r *http.Request) {
	var req RunCycleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	month, err := payroll.ParseYearMonth(req.Month)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid month (use YYYY-MM)", err)
		return
	}
	frequency := parseFrequency(req.Frequency)

	cycleID := payroll.CycleID(req.CycleID)
	if cycleID == "" {
		cycleID = payroll.CycleID("cycle-" + month.String())
	}
	cycle := payroll.PayrollCycle{ID: cycleID, Month: month, Frequency: frequency}

	ctx := r.Context()
	employees, err := h.Store.ListEmployees(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list employees", err)
		return
	}

	facts, err := h.loadFacts(ctx, month, frequency)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load payroll facts", err)
		return
	}

	result := h.Engine.ProcessPayrollCycle(cycle, employees, facts)

	if err := h.Store.SaveCycle(ctx, cycle); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save cycle", err)
		return
	}

	// Persist payslips; reruns of already-generated employees are reported
	// as skipped rather than double-paid.
	saved := make([]PayslipDTO, 0, len(result.Payslips))
	var skipped []string
	for _, p := range result.Payslips {
		err := h.Store.SavePayslip(ctx, p)
		if errors.Is(err, payroll.ErrPayslipExists) {
			skipped = append(skipped, string(p.EmployeeID))
			continue
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to save payslip", err)
			return
		}
		saved = append(saved, toPayslipDTO(p))
	}

	writeJSON(w, http.StatusOK, CycleResultDTO{
		CycleID:  string(cycleID),
		Month:    month.String(),
		Payslips: saved,
		Errors:   result.Errors,
		Warnings: result.Warnings,
		Skipped:  skipped,
	})
}

// GetPayslip returns a single payslip.
func (h *Handler) GetPayslip(w http.ResponseWriter, r *http.Request) {
	id := payroll.PayslipID(chi.URLParam(r, "id"))

	payslip, err := h.Store.GetPayslip(r.Context(), id)
	if payroll.IsNotFound(err) {
		writeError(w, http.StatusNotFound, "Payslip not found", nil)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get payslip", err)
		return
	}

	writeJSON(w, http.StatusOK, toPayslipDTO(payslip))
}

// ListCycles returns all processed cycles.
func (h *Handler) ListCycles(w http.ResponseWriter, r *http.Request) {
	cycles, err := h.Store.ListCycles(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list cycles", err)
		return
	}

	dtos := make([]CycleDTO, len(cycles))
	for i, c := range cycles {
		dtos[i] = toCycleDTO(c)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetCycle returns a single cycle.
func (h *Handler) GetCycle(w http.ResponseWriter, r *http.Request) {
	id := payroll.CycleID(chi.URLParam(r, "id"))

	cycle, err := h.Store.GetCycle(r.Context(), id)
	if payroll.IsNotFound(err) {
		writeError(w, http.StatusNotFound, "Cycle not found", nil)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get cycle", err)
		return
	}

	writeJSON(w, http.StatusOK, toCycleDTO(cycle))
}

// ListCyclePayslips returns the payslips generated by a cycle.
func (h *Handler) ListCyclePayslips(w http.ResponseWriter, r *http.Request) {
	id := payroll.CycleID(chi.URLParam(r, "id"))

	payslips, err := h.Store.ListPayslipsByCycle(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list payslips", err)
		return
	}

	writeJSON(w, http.StatusOK, toPayslipDTOs(payslips))
}

// ResetDatabase clears all data.
func (h *Handler) ResetDatabase(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.Reset(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset database", err)
		return
	}

	h.Engine = payroll.New(payroll.DefaultConfig())
	h.currentScenario = ""

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// =============================================================================
// HELPERS
// =============================================================================

// loadFacts assembles the fact bundle one engine invocation consumes.
func (h *Handler) loadFacts(ctx context.Context, month payroll.YearMonth, frequency payroll.Frequency) (payroll.PayrollFacts, error) {
	period := payroll.ResolvePayPeriod(month, frequency, h.Engine.Config.Now())

	bonuses, err := h.Store.BonusesForMonth(ctx, month)
	if err != nil {
		return payroll.PayrollFacts{}, err
	}
	adjustments, err := h.Store.AdjustmentsForMonth(ctx, month)
	if err != nil {
		return payroll.PayrollFacts{}, err
	}
	attendance, err := h.Store.AttendanceForPeriod(ctx, period)
	if err != nil {
		return payroll.PayrollFacts{}, err
	}
	commissions, err := h.Store.CommissionsForMonth(ctx, month)
	if err != nil {
		return payroll.PayrollFacts{}, err
	}
	loans, err := h.Store.LoansForMonth(ctx, month)
	if err != nil {
		return payroll.PayrollFacts{}, err
	}
	tax, err := h.Store.TaxConfig(ctx)
	if err != nil {
		return payroll.PayrollFacts{}, err
	}
	statutory, err := h.Store.StatutoryConfigs(ctx)
	if err != nil {
		return payroll.PayrollFacts{}, err
	}

	return payroll.PayrollFacts{
		Bonuses:     bonuses,
		Adjustments: adjustments,
		Attendance:  attendance,
		Commissions: commissions,
		Loans:       loans,
		Tax:         tax,
		Statutory:   statutory,
	}, nil
}

func parseFrequency(s string) payroll.Frequency {
	switch payroll.Frequency(s) {
	case payroll.SemiMonthly, payroll.Weekly, payroll.BiWeekly:
		return payroll.Frequency(s)
	default:
		return payroll.Monthly
	}
}

func parseCalcMode(s string) payroll.CalcMode {
	if s == string(payroll.ModePercentageOfBasic) {
		return payroll.ModePercentageOfBasic
	}
	return payroll.ModeFixedAmount
}

func orGeneratedID(id, prefix string) string {
	if id != "" {
		return id
	}
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
