/*
Package sqlite provides a SQLite-backed implementation of the storage interfaces.

PURPOSE:
  Implements all persistence interfaces (EmployeeDirectory, FactsStore,
  ConfigStore, PayslipStore) using SQLite. In production, the same patterns
  apply to PostgreSQL - only minor SQL dialect differences.

KEY TABLES:
  employees:   Employee records; nested structure/assignments/history as JSON
  bonuses:     Bonus grants keyed by employee + payroll month
  adjustments: Ad-hoc additions/deductions
  attendance:  Daily attendance with overtime hours
  commissions: Commission rules
  loans:       Loan schedules
  configs:     Tax slab table and statutory rules (JSON documents)
  cycles:      Processed payroll cycles
  payslips:    Generated payslips; full document as JSON for audit replay

IDEMPOTENCY:
  idx_payslips_employee_cycle enforces one payslip per (employee, cycle).
  A rerun surfaces payroll.ErrPayslipExists instead of double-paying.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. In production with PostgreSQL,
  database-level concurrency control handles this instead.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) for better concurrency:
  - Multiple readers don't block
  - Single writer at a time
  - Better crash recovery

USAGE:
  store, err := sqlite.New("./data/payroll.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

MIGRATION:
  Schema is auto-migrated on New(). For production, use a proper
  migration tool (golang-migrate, goose) with versioned migrations.

SEE ALSO:
  - payroll/store.go: Interface definitions
  - payroll/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/warp/payroll-engine/payroll"
)

// Store implements all storage interfaces using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- Employees (nested records stored as JSON documents)
	CREATE TABLE IF NOT EXISTS employees (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT,
		status TEXT NOT NULL,
		basic_salary TEXT NOT NULL,
		joining_date TEXT NOT NULL,
		termination_json TEXT,
		history_json TEXT,
		structure_json TEXT,
		assignments_json TEXT,
		created_at TEXT NOT NULL
	);

	-- Bonuses
	CREATE TABLE IF NOT EXISTS bonuses (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL,
		name TEXT NOT NULL,
		amount TEXT NOT NULL,
		status TEXT NOT NULL,
		payroll_month TEXT,
		awarded_on TEXT,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_bonuses_month
		ON bonuses(payroll_month);
	CREATE INDEX IF NOT EXISTS idx_bonuses_employee
		ON bonuses(employee_id);

	-- Ad-hoc adjustments
	CREATE TABLE IF NOT EXISTS adjustments (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL,
		description TEXT NOT NULL,
		adj_type TEXT NOT NULL,
		amount TEXT NOT NULL,
		status TEXT NOT NULL,
		target_month TEXT,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_adjustments_month
		ON adjustments(target_month);

	-- Attendance (one row per employee per day)
	CREATE TABLE IF NOT EXISTS attendance (
		employee_id TEXT NOT NULL,
		date TEXT NOT NULL,
		status TEXT NOT NULL,
		overtime_hours REAL DEFAULT 0,
		created_at TEXT NOT NULL,
		PRIMARY KEY (employee_id, date)
	);

	CREATE INDEX IF NOT EXISTS idx_attendance_date
		ON attendance(date);

	-- Commission rules
	CREATE TABLE IF NOT EXISTS commissions (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL,
		name TEXT NOT NULL,
		mode TEXT NOT NULL,
		amount TEXT NOT NULL,
		rate REAL DEFAULT 0,
		month TEXT,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_commissions_month
		ON commissions(month);

	-- Loan schedules
	CREATE TABLE IF NOT EXISTS loans (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL,
		name TEXT NOT NULL,
		monthly_installment TEXT NOT NULL,
		first_month TEXT NOT NULL,
		last_month TEXT,
		status TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_loans_employee
		ON loans(employee_id);

	-- Rule tables (single JSON document per key)
	CREATE TABLE IF NOT EXISTS configs (
		key TEXT PRIMARY KEY,
		value_json TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	-- Processed cycles
	CREATE TABLE IF NOT EXISTS cycles (
		id TEXT PRIMARY KEY,
		month TEXT NOT NULL,
		frequency TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	-- Generated payslips (full document as JSON for audit replay)
	CREATE TABLE IF NOT EXISTS payslips (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL,
		cycle_id TEXT,
		month TEXT NOT NULL,
		net_salary TEXT NOT NULL,
		status TEXT NOT NULL,
		payslip_json TEXT NOT NULL,
		generated_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_payslips_cycle
		ON payslips(cycle_id);
	CREATE INDEX IF NOT EXISTS idx_payslips_employee
		ON payslips(employee_id);

	-- CRITICAL: one payslip per (employee, cycle)
	CREATE UNIQUE INDEX IF NOT EXISTS idx_payslips_employee_cycle
		ON payslips(employee_id, cycle_id) WHERE cycle_id IS NOT NULL AND cycle_id != '';
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// EMPLOYEE DIRECTORY (payroll.EmployeeDirectory interface)
// =============================================================================

// PutEmployee creates or replaces an employee record.
func (s *Store) PutEmployee(ctx context.Context, emp payroll.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	terminationJSON, err := marshalNullable(emp.Termination)
	if err != nil {
		return err
	}
	historyJSON, _ := json.Marshal(emp.History)
	structureJSON, _ := json.Marshal(emp.SalaryStructure)
	assignmentsJSON, _ := json.Marshal(emp.Assignments)

	query := `
		INSERT INTO employees
		(id, name, email, status, basic_salary, joining_date,
		 termination_json, history_json, structure_json, assignments_json, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			email = excluded.email,
			status = excluded.status,
			basic_salary = excluded.basic_salary,
			joining_date = excluded.joining_date,
			termination_json = excluded.termination_json,
			history_json = excluded.history_json,
			structure_json = excluded.structure_json,
			assignments_json = excluded.assignments_json
	`

	_, err = s.db.ExecContext(ctx, query,
		emp.ID, emp.Name, emp.Email, emp.Status,
		emp.BasicSalary.Value.String(),
		emp.JoiningDate.String(),
		terminationJSON,
		string(historyJSON), string(structureJSON), string(assignmentsJSON),
		time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

// GetEmployee retrieves an employee by ID.
func (s *Store) GetEmployee(ctx context.Context, id payroll.EmployeeID) (payroll.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, email, status, basic_salary, joining_date,
		        termination_json, history_json, structure_json, assignments_json
		 FROM employees WHERE id = ?`, id)

	emp, err := scanEmployee(row)
	if err == sql.ErrNoRows {
		return payroll.Employee{}, payroll.ErrEmployeeNotFound
	}
	return emp, err
}

// ListEmployees returns all employees, any status.
func (s *Store) ListEmployees(ctx context.Context) ([]payroll.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, email, status, basic_salary, joining_date,
		        termination_json, history_json, structure_json, assignments_json
		 FROM employees ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []payroll.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}
	return employees, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEmployee(row rowScanner) (payroll.Employee, error) {
	var (
		emp             payroll.Employee
		email           sql.NullString
		basicSalary     string
		joiningDate     string
		terminationJSON sql.NullString
		historyJSON     sql.NullString
		structureJSON   sql.NullString
		assignmentsJSON sql.NullString
	)

	err := row.Scan(&emp.ID, &emp.Name, &email, &emp.Status, &basicSalary, &joiningDate,
		&terminationJSON, &historyJSON, &structureJSON, &assignmentsJSON)
	if err != nil {
		return emp, err
	}

	emp.Email = email.String
	emp.BasicSalary = payroll.MustParseMoney(basicSalary)
	emp.JoiningDate, _ = payroll.ParseTimePoint(joiningDate)

	if terminationJSON.Valid && terminationJSON.String != "" {
		var t payroll.Termination
		if err := json.Unmarshal([]byte(terminationJSON.String), &t); err == nil {
			emp.Termination = &t
		}
	}
	unmarshalInto(historyJSON, &emp.History)
	unmarshalInto(structureJSON, &emp.SalaryStructure)
	unmarshalInto(assignmentsJSON, &emp.Assignments)

	return emp, nil
}

// =============================================================================
// FACTS STORE (payroll.FactsStore interface)
// =============================================================================

// AddBonus persists a bonus grant.
func (s *Store) AddBonus(ctx context.Context, b payroll.BonusRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO bonuses (id, employee_id, name, amount, status, payroll_month, awarded_on, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.EmployeeID, b.Name, b.Amount.Value.String(), b.Status,
		monthString(b.PayrollMonth), timeString(b.AwardedOn),
		time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

// BonusesForMonth returns bonuses pinned to the month plus unpinned ones.
func (s *Store) BonusesForMonth(ctx context.Context, month payroll.YearMonth) ([]payroll.BonusRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, employee_id, name, amount, status, payroll_month, awarded_on
		 FROM bonuses WHERE payroll_month = ? OR payroll_month = '' OR payroll_month IS NULL
		 ORDER BY created_at`, month.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bonuses []payroll.BonusRecord
	for rows.Next() {
		var (
			b            payroll.BonusRecord
			amount       string
			payrollMonth sql.NullString
			awardedOn    sql.NullString
		)
		if err := rows.Scan(&b.ID, &b.EmployeeID, &b.Name, &amount, &b.Status, &payrollMonth, &awardedOn); err != nil {
			return nil, err
		}
		b.Amount = payroll.MustParseMoney(amount)
		b.PayrollMonth = parseMonth(payrollMonth.String)
		if awardedOn.Valid && awardedOn.String != "" {
			b.AwardedOn, _ = payroll.ParseTimePoint(awardedOn.String)
		}
		bonuses = append(bonuses, b)
	}
	return bonuses, rows.Err()
}

// AddAdjustment persists an ad-hoc adjustment.
func (s *Store) AddAdjustment(ctx context.Context, a payroll.PayrollAdjustment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO adjustments (id, employee_id, description, adj_type, amount, status, target_month, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.EmployeeID, a.Description, a.Type, a.Amount.Value.String(), a.Status,
		monthString(a.TargetMonth),
		time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

// AdjustmentsForMonth returns adjustments for the month plus unpinned ones.
func (s *Store) AdjustmentsForMonth(ctx context.Context, month payroll.YearMonth) ([]payroll.PayrollAdjustment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, employee_id, description, adj_type, amount, status, target_month
		 FROM adjustments WHERE target_month = ? OR target_month = '' OR target_month IS NULL
		 ORDER BY created_at`, month.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var adjustments []payroll.PayrollAdjustment
	for rows.Next() {
		var (
			a           payroll.PayrollAdjustment
			amount      string
			targetMonth sql.NullString
		)
		if err := rows.Scan(&a.ID, &a.EmployeeID, &a.Description, &a.Type, &amount, &a.Status, &targetMonth); err != nil {
			return nil, err
		}
		a.Amount = payroll.MustParseMoney(amount)
		a.TargetMonth = parseMonth(targetMonth.String)
		adjustments = append(adjustments, a)
	}
	return adjustments, rows.Err()
}

// AddAttendance persists daily attendance records; same-day rows are replaced.
func (s *Store) AddAttendance(ctx context.Context, recs []payroll.AttendanceRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer sqlTx.Rollback()

	for _, rec := range recs {
		_, err := sqlTx.ExecContext(ctx,
			`INSERT INTO attendance (employee_id, date, status, overtime_hours, created_at)
			 VALUES (?, ?, ?, ?, ?)
			 ON CONFLICT(employee_id, date) DO UPDATE SET
				status = excluded.status,
				overtime_hours = excluded.overtime_hours`,
			rec.EmployeeID, rec.Date.String(), rec.Status, rec.OvertimeHours,
			time.Now().UTC().Format(time.RFC3339),
		)
		if err != nil {
			return err
		}
	}
	return sqlTx.Commit()
}

// AttendanceForPeriod returns all attendance rows inside [start, end].
func (s *Store) AttendanceForPeriod(ctx context.Context, period payroll.PayPeriod) ([]payroll.AttendanceRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT employee_id, date, status, overtime_hours
		 FROM attendance WHERE date >= ? AND date <= ?
		 ORDER BY employee_id, date`,
		period.Start.String(), period.End.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []payroll.AttendanceRecord
	for rows.Next() {
		var (
			rec  payroll.AttendanceRecord
			date string
		)
		if err := rows.Scan(&rec.EmployeeID, &date, &rec.Status, &rec.OvertimeHours); err != nil {
			return nil, err
		}
		rec.Date, _ = payroll.ParseTimePoint(date)
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

// AddCommission persists a commission rule.
func (s *Store) AddCommission(ctx context.Context, c payroll.CommissionRule) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO commissions (id, employee_id, name, mode, amount, rate, month, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.EmployeeID, c.Name, c.Mode, c.Amount.Value.String(), c.Rate,
		monthString(c.Month),
		time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

// CommissionsForMonth returns rules for the month plus unpinned ones.
func (s *Store) CommissionsForMonth(ctx context.Context, month payroll.YearMonth) ([]payroll.CommissionRule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, employee_id, name, mode, amount, rate, month
		 FROM commissions WHERE month = ? OR month = '' OR month IS NULL
		 ORDER BY created_at`, month.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rules []payroll.CommissionRule
	for rows.Next() {
		var (
			c       payroll.CommissionRule
			amount  string
			monthDB sql.NullString
		)
		if err := rows.Scan(&c.ID, &c.EmployeeID, &c.Name, &c.Mode, &amount, &c.Rate, &monthDB); err != nil {
			return nil, err
		}
		c.Amount = payroll.MustParseMoney(amount)
		c.Month = parseMonth(monthDB.String)
		rules = append(rules, c)
	}
	return rules, rows.Err()
}

// AddLoan persists a loan schedule.
func (s *Store) AddLoan(ctx context.Context, l payroll.LoanRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO loans (id, employee_id, name, monthly_installment, first_month, last_month, status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		l.ID, l.EmployeeID, l.Name, l.MonthlyInstallment.Value.String(),
		monthString(l.FirstMonth), monthString(l.LastMonth), l.Status,
		time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

// LoansForMonth returns loans whose schedule covers the month. Status
// filtering stays in the engine; the query only trims by month bounds.
func (s *Store) LoansForMonth(ctx context.Context, month payroll.YearMonth) ([]payroll.LoanRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// YYYY-MM strings compare correctly lexicographically.
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, employee_id, name, monthly_installment, first_month, last_month, status
		 FROM loans
		 WHERE first_month <= ? AND (last_month IS NULL OR last_month = '' OR last_month >= ?)
		 ORDER BY created_at`,
		month.String(), month.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var loans []payroll.LoanRecord
	for rows.Next() {
		var (
			l           payroll.LoanRecord
			installment string
			firstMonth  string
			lastMonth   sql.NullString
		)
		if err := rows.Scan(&l.ID, &l.EmployeeID, &l.Name, &installment, &firstMonth, &lastMonth, &l.Status); err != nil {
			return nil, err
		}
		l.MonthlyInstallment = payroll.MustParseMoney(installment)
		l.FirstMonth = parseMonth(firstMonth)
		l.LastMonth = parseMonth(lastMonth.String)
		loans = append(loans, l)
	}
	return loans, rows.Err()
}

// =============================================================================
// CONFIG STORE (payroll.ConfigStore interface)
// =============================================================================

const (
	configKeyTax       = "tax"
	configKeyStatutory = "statutory"
)

// SetTaxConfig stores the active slab table.
func (s *Store) SetTaxConfig(ctx context.Context, cfg payroll.TaxConfiguration) error {
	return s.putConfig(ctx, configKeyTax, cfg)
}

// TaxConfig returns the active slab table, or nil when none is set.
func (s *Store) TaxConfig(ctx context.Context) (*payroll.TaxConfiguration, error) {
	var cfg payroll.TaxConfiguration
	found, err := s.getConfig(ctx, configKeyTax, &cfg)
	if err != nil || !found {
		return nil, err
	}
	return &cfg, nil
}

// SetStatutoryConfigs stores the statutory contribution rules.
func (s *Store) SetStatutoryConfigs(ctx context.Context, cfgs []payroll.StatutoryConfiguration) error {
	return s.putConfig(ctx, configKeyStatutory, cfgs)
}

// StatutoryConfigs returns the statutory contribution rules.
func (s *Store) StatutoryConfigs(ctx context.Context) ([]payroll.StatutoryConfiguration, error) {
	var cfgs []payroll.StatutoryConfiguration
	if _, err := s.getConfig(ctx, configKeyStatutory, &cfgs); err != nil {
		return nil, err
	}
	return cfgs, nil
}

func (s *Store) putConfig(ctx context.Context, key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	valueJSON, err := json.Marshal(value)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO configs (key, value_json, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET
			value_json = excluded.value_json,
			updated_at = excluded.updated_at`,
		key, string(valueJSON), time.Now().UTC().Format(time.RFC3339))
	return err
}

func (s *Store) getConfig(ctx context.Context, key string, out any) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var valueJSON string
	err := s.db.QueryRowContext(ctx,
		"SELECT value_json FROM configs WHERE key = ?", key).Scan(&valueJSON)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, json.Unmarshal([]byte(valueJSON), out)
}

// =============================================================================
// PAYSLIP STORE (payroll.PayslipStore interface)
// =============================================================================

// SavePayslip persists a generated payslip. The unique (employee, cycle)
// index turns a rerun into payroll.ErrPayslipExists.
func (s *Store) SavePayslip(ctx context.Context, p *payroll.Payslip) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	payslipJSON, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to serialize payslip: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO payslips (id, employee_id, cycle_id, month, net_salary, status, payslip_json, generated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.EmployeeID, p.CycleID, p.Month.String(),
		p.NetSalary.Value.String(), p.Status, string(payslipJSON),
		p.GeneratedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return payroll.ErrPayslipExists
		}
		return fmt.Errorf("failed to save payslip: %w", err)
	}
	return nil
}

// HasPayslip reports whether (employee, cycle) was already generated.
func (s *Store) HasPayslip(ctx context.Context, empID payroll.EmployeeID, cycleID payroll.CycleID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM payslips WHERE employee_id = ? AND cycle_id = ?",
		empID, cycleID).Scan(&count)
	return count > 0, err
}

// GetPayslip retrieves a payslip by ID.
func (s *Store) GetPayslip(ctx context.Context, id payroll.PayslipID) (*payroll.Payslip, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var payslipJSON string
	err := s.db.QueryRowContext(ctx,
		"SELECT payslip_json FROM payslips WHERE id = ?", id).Scan(&payslipJSON)
	if err == sql.ErrNoRows {
		return nil, payroll.ErrPayslipNotFound
	}
	if err != nil {
		return nil, err
	}

	var p payroll.Payslip
	if err := json.Unmarshal([]byte(payslipJSON), &p); err != nil {
		return nil, fmt.Errorf("failed to deserialize payslip %s: %w", id, err)
	}
	return &p, nil
}

// ListPayslipsByCycle returns all payslips generated for a cycle.
func (s *Store) ListPayslipsByCycle(ctx context.Context, cycleID payroll.CycleID) ([]*payroll.Payslip, error) {
	return s.queryPayslips(ctx,
		"SELECT payslip_json FROM payslips WHERE cycle_id = ? ORDER BY employee_id", cycleID)
}

// ListPayslipsByEmployee returns an employee's payslips, oldest first.
func (s *Store) ListPayslipsByEmployee(ctx context.Context, empID payroll.EmployeeID) ([]*payroll.Payslip, error) {
	return s.queryPayslips(ctx,
		"SELECT payslip_json FROM payslips WHERE employee_id = ? ORDER BY generated_at", empID)
}

func (s *Store) queryPayslips(ctx context.Context, query string, args ...any) ([]*payroll.Payslip, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payslips []*payroll.Payslip
	for rows.Next() {
		var payslipJSON string
		if err := rows.Scan(&payslipJSON); err != nil {
			return nil, err
		}
		var p payroll.Payslip
		if err := json.Unmarshal([]byte(payslipJSON), &p); err != nil {
			return nil, fmt.Errorf("failed to deserialize payslip: %w", err)
		}
		payslips = append(payslips, &p)
	}
	return payslips, rows.Err()
}

// SaveCycle records a processed cycle.
func (s *Store) SaveCycle(ctx context.Context, c payroll.PayrollCycle) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO cycles (id, month, frequency, created_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			month = excluded.month,
			frequency = excluded.frequency`,
		c.ID, c.Month.String(), c.Frequency,
		time.Now().UTC().Format(time.RFC3339))
	return err
}

// GetCycle retrieves a cycle by ID.
func (s *Store) GetCycle(ctx context.Context, id payroll.CycleID) (payroll.PayrollCycle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		c     payroll.PayrollCycle
		month string
	)
	err := s.db.QueryRowContext(ctx,
		"SELECT id, month, frequency FROM cycles WHERE id = ?", id).
		Scan(&c.ID, &month, &c.Frequency)
	if err == sql.ErrNoRows {
		return payroll.PayrollCycle{}, payroll.ErrCycleNotFound
	}
	if err != nil {
		return payroll.PayrollCycle{}, err
	}
	c.Month = parseMonth(month)
	return c, nil
}

// ListCycles returns all processed cycles.
func (s *Store) ListCycles(ctx context.Context) ([]payroll.PayrollCycle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, month, frequency FROM cycles ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cycles []payroll.PayrollCycle
	for rows.Next() {
		var (
			c     payroll.PayrollCycle
			month string
		)
		if err := rows.Scan(&c.ID, &month, &c.Frequency); err != nil {
			return nil, err
		}
		c.Month = parseMonth(month)
		cycles = append(cycles, c)
	}
	return cycles, rows.Err()
}

// =============================================================================
// UTILITIES
// =============================================================================

// Reset clears all data (for testing/demo).
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tables := []string{"payslips", "cycles", "bonuses", "adjustments", "attendance",
		"commissions", "loans", "configs", "employees"}
	for _, table := range tables {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}
	return nil
}

func marshalNullable(t *payroll.Termination) (sql.NullString, error) {
	if t == nil {
		return sql.NullString{}, nil
	}
	b, err := json.Marshal(t)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(b), Valid: true}, nil
}

func unmarshalInto(src sql.NullString, out any) {
	if src.Valid && src.String != "" {
		json.Unmarshal([]byte(src.String), out)
	}
}

func monthString(m payroll.YearMonth) string {
	if m.IsZero() {
		return ""
	}
	return m.String()
}

func parseMonth(s string) payroll.YearMonth {
	if s == "" {
		return payroll.YearMonth{}
	}
	m, _ := payroll.ParseYearMonth(s)
	return m
}

func timeString(tp payroll.TimePoint) string {
	if tp.IsZero() {
		return ""
	}
	return tp.String()
}

func isUniqueConstraintError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
