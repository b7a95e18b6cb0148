// Package store provides in-memory implementations of the payroll
// persistence interfaces, used for tests and local development.
package store

import (
	"context"
	"sort"
	"sync"

	"github.com/warp/payroll-engine/payroll"
)

// =============================================================================
// MEMORY STORE - Implements EmployeeDirectory, FactsStore, ConfigStore,
// and PayslipStore behind one mutex.
// =============================================================================

type Memory struct {
	mu sync.RWMutex

	employees map[payroll.EmployeeID]payroll.Employee

	bonuses     []payroll.BonusRecord
	adjustments []payroll.PayrollAdjustment
	attendance  []payroll.AttendanceRecord
	commissions []payroll.CommissionRule
	loans       []payroll.LoanRecord

	tax       *payroll.TaxConfiguration
	statutory []payroll.StatutoryConfiguration

	payslips map[payroll.PayslipID]*payroll.Payslip
	byCycle  map[cycleKey]payroll.PayslipID
	cycles   map[payroll.CycleID]payroll.PayrollCycle
}

type cycleKey struct {
	EmployeeID payroll.EmployeeID
	CycleID    payroll.CycleID
}

func NewMemory() *Memory {
	return &Memory{
		employees: make(map[payroll.EmployeeID]payroll.Employee),
		payslips:  make(map[payroll.PayslipID]*payroll.Payslip),
		byCycle:   make(map[cycleKey]payroll.PayslipID),
		cycles:    make(map[payroll.CycleID]payroll.PayrollCycle),
	}
}

// =============================================================================
// EMPLOYEE DIRECTORY
// =============================================================================

func (m *Memory) GetEmployee(_ context.Context, id payroll.EmployeeID) (payroll.Employee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	emp, ok := m.employees[id]
	if !ok {
		return payroll.Employee{}, payroll.ErrEmployeeNotFound
	}
	return emp, nil
}

func (m *Memory) ListEmployees(_ context.Context) ([]payroll.Employee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]payroll.Employee, 0, len(m.employees))
	for _, emp := range m.employees {
		result = append(result, emp)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *Memory) PutEmployee(_ context.Context, emp payroll.Employee) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.employees[emp.ID] = emp
	return nil
}

// =============================================================================
// FACTS STORE
// =============================================================================

func (m *Memory) BonusesForMonth(_ context.Context, month payroll.YearMonth) ([]payroll.BonusRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []payroll.BonusRecord
	for _, b := range m.bonuses {
		if b.PayrollMonth.IsZero() || b.PayrollMonth == month {
			result = append(result, b)
		}
	}
	return result, nil
}

func (m *Memory) AdjustmentsForMonth(_ context.Context, month payroll.YearMonth) ([]payroll.PayrollAdjustment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []payroll.PayrollAdjustment
	for _, a := range m.adjustments {
		if a.TargetMonth.IsZero() || a.TargetMonth == month {
			result = append(result, a)
		}
	}
	return result, nil
}

func (m *Memory) AttendanceForPeriod(_ context.Context, period payroll.PayPeriod) ([]payroll.AttendanceRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []payroll.AttendanceRecord
	for _, rec := range m.attendance {
		if period.Contains(rec.Date) {
			result = append(result, rec)
		}
	}
	return result, nil
}

func (m *Memory) CommissionsForMonth(_ context.Context, month payroll.YearMonth) ([]payroll.CommissionRule, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []payroll.CommissionRule
	for _, c := range m.commissions {
		if c.Month.IsZero() || c.Month == month {
			result = append(result, c)
		}
	}
	return result, nil
}

func (m *Memory) LoansForMonth(_ context.Context, month payroll.YearMonth) ([]payroll.LoanRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []payroll.LoanRecord
	for _, l := range m.loans {
		if l.AppliesTo(l.EmployeeID, month) {
			result = append(result, l)
		}
	}
	return result, nil
}

func (m *Memory) AddBonus(_ context.Context, b payroll.BonusRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bonuses = append(m.bonuses, b)
	return nil
}

func (m *Memory) AddAdjustment(_ context.Context, a payroll.PayrollAdjustment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.adjustments = append(m.adjustments, a)
	return nil
}

func (m *Memory) AddAttendance(_ context.Context, recs []payroll.AttendanceRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.attendance = append(m.attendance, recs...)
	return nil
}

func (m *Memory) AddCommission(_ context.Context, c payroll.CommissionRule) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.commissions = append(m.commissions, c)
	return nil
}

func (m *Memory) AddLoan(_ context.Context, l payroll.LoanRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loans = append(m.loans, l)
	return nil
}

// =============================================================================
// CONFIG STORE
// =============================================================================

func (m *Memory) TaxConfig(_ context.Context) (*payroll.TaxConfiguration, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.tax == nil {
		return nil, nil
	}
	cfg := *m.tax
	return &cfg, nil
}

func (m *Memory) SetTaxConfig(_ context.Context, cfg payroll.TaxConfiguration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tax = &cfg
	return nil
}

func (m *Memory) StatutoryConfigs(_ context.Context) ([]payroll.StatutoryConfiguration, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]payroll.StatutoryConfiguration, len(m.statutory))
	copy(result, m.statutory)
	return result, nil
}

func (m *Memory) SetStatutoryConfigs(_ context.Context, cfgs []payroll.StatutoryConfiguration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.statutory = append([]payroll.StatutoryConfiguration{}, cfgs...)
	return nil
}

// =============================================================================
// PAYSLIP STORE
// =============================================================================

func (m *Memory) SavePayslip(_ context.Context, p *payroll.Payslip) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	k := cycleKey{EmployeeID: p.EmployeeID, CycleID: p.CycleID}
	if p.CycleID != "" {
		if _, exists := m.byCycle[k]; exists {
			return payroll.ErrPayslipExists
		}
	}
	m.payslips[p.ID] = p
	if p.CycleID != "" {
		m.byCycle[k] = p.ID
	}
	return nil
}

func (m *Memory) HasPayslip(_ context.Context, empID payroll.EmployeeID, cycleID payroll.CycleID) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.byCycle[cycleKey{EmployeeID: empID, CycleID: cycleID}]
	return ok, nil
}

func (m *Memory) GetPayslip(_ context.Context, id payroll.PayslipID) (*payroll.Payslip, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.payslips[id]
	if !ok {
		return nil, payroll.ErrPayslipNotFound
	}
	return p, nil
}

func (m *Memory) ListPayslipsByCycle(_ context.Context, cycleID payroll.CycleID) ([]*payroll.Payslip, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []*payroll.Payslip
	for _, p := range m.payslips {
		if p.CycleID == cycleID {
			result = append(result, p)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].EmployeeID < result[j].EmployeeID })
	return result, nil
}

func (m *Memory) ListPayslipsByEmployee(_ context.Context, empID payroll.EmployeeID) ([]*payroll.Payslip, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []*payroll.Payslip
	for _, p := range m.payslips {
		if p.EmployeeID == empID {
			result = append(result, p)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].GeneratedAt.Before(result[j].GeneratedAt) })
	return result, nil
}

func (m *Memory) SaveCycle(_ context.Context, c payroll.PayrollCycle) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cycles[c.ID] = c
	return nil
}

func (m *Memory) GetCycle(_ context.Context, id payroll.CycleID) (payroll.PayrollCycle, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, ok := m.cycles[id]
	if !ok {
		return payroll.PayrollCycle{}, payroll.ErrCycleNotFound
	}
	return c, nil
}

func (m *Memory) ListCycles(_ context.Context) ([]payroll.PayrollCycle, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]payroll.PayrollCycle, 0, len(m.cycles))
	for _, c := range m.cycles {
		result = append(result, c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}
