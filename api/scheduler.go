/*
scheduler.go - Automated payroll cycle scheduler

PURPOSE:
  Periodically checks whether a completed calendar month still lacks a
  payroll cycle and automatically processes it.

DESIGN:
  - Runs a background goroutine with configurable check interval
  - Targets the most recently completed month
  - Skips months that already have a cycle record (the per-payslip
    idempotency guard backstops a concurrent manual run)
  - Logs processed/skipped counts for audit

CONFIGURATION:
  - CheckInterval: How often to check (default: 1 hour)
  - Frequency: Cycle frequency for automatic runs (default: Monthly)
  - Enabled: Whether scheduler is active (default: true)

USAGE:
  scheduler := NewPayrollScheduler(store, handler)
  scheduler.Start()
  // ... later
  scheduler.Stop()

SEE ALSO:
  - handlers.go: RunCycle endpoint (manual runs)
  - payroll/cycle.go: ProcessPayrollCycle
*/
package api

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/warp/payroll-engine/payroll"
	"github.com/warp/payroll-engine/store/sqlite"
)

// PayrollScheduler handles automated month-end payroll runs.
type PayrollScheduler struct {
	Store         *sqlite.Store
	Handler       *Handler
	CheckInterval time.Duration
	Frequency     payroll.Frequency
	Enabled       bool

	ticker *time.Ticker
	stop   chan bool
	wg     sync.WaitGroup
	mu     sync.Mutex
}

// NewPayrollScheduler creates a new scheduler.
func NewPayrollScheduler(store *sqlite.Store, handler *Handler) *PayrollScheduler {
	return &PayrollScheduler{
		Store:         store,
		Handler:       handler,
		CheckInterval: 1 * time.Hour,
		Frequency:     payroll.Monthly,
		Enabled:       true,
		stop:          make(chan bool),
	}
}

// Start begins the scheduler.
func (ps *PayrollScheduler) Start() {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	if !ps.Enabled {
		log.Println("[Scheduler] Disabled, not starting")
		return
	}

	ps.ticker = time.NewTicker(ps.CheckInterval)
	ps.wg.Add(1)

	go ps.run()

	log.Printf("[Scheduler] Started with check interval: %v", ps.CheckInterval)
}

// Stop stops the scheduler.
func (ps *PayrollScheduler) Stop() {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	if ps.ticker != nil {
		ps.ticker.Stop()
		close(ps.stop)
		ps.wg.Wait()
		log.Println("[Scheduler] Stopped")
	}
}

func (ps *PayrollScheduler) run() {
	defer ps.wg.Done()

	// Run immediately on start
	ps.checkAndProcess()

	for {
		select {
		case <-ps.ticker.C:
			ps.checkAndProcess()
		case <-ps.stop:
			return
		}
	}
}

func (ps *PayrollScheduler) checkAndProcess() {
	ctx := context.Background()
	now := time.Now()

	// The most recently completed month
	target := payroll.YearMonth{Year: now.Year(), Month: now.Month()}
	if target.Month == time.January {
		target = payroll.YearMonth{Year: target.Year - 1, Month: time.December}
	} else {
		target = payroll.YearMonth{Year: target.Year, Month: target.Month - 1}
	}

	cycleID := payroll.CycleID("cycle-" + target.String())

	_, err := ps.Store.GetCycle(ctx, cycleID)
	if err == nil {
		return // already processed
	}
	if !errors.Is(err, payroll.ErrCycleNotFound) {
		log.Printf("[Scheduler] Error checking cycle %s: %v", cycleID, err)
		return
	}

	log.Printf("[Scheduler] Processing payroll for %s", target.String())

	if err := ps.processCycle(ctx, cycleID, target); err != nil {
		log.Printf("[Scheduler] Error processing cycle %s: %v", cycleID, err)
	}
}

func (ps *PayrollScheduler) processCycle(ctx context.Context, cycleID payroll.CycleID, month payroll.YearMonth) error {
	employees, err := ps.Store.ListEmployees(ctx)
	if err != nil {
		return err
	}
	if len(employees) == 0 {
		return nil
	}

	facts, err := ps.Handler.loadFacts(ctx, month, ps.Frequency)
	if err != nil {
		return err
	}

	cycle := payroll.PayrollCycle{ID: cycleID, Month: month, Frequency: ps.Frequency}
	result := ps.Handler.Engine.ProcessPayrollCycle(cycle, employees, facts)

	if err := ps.Store.SaveCycle(ctx, cycle); err != nil {
		return err
	}

	savedCount := 0
	skippedCount := 0
	for _, p := range result.Payslips {
		err := ps.Store.SavePayslip(ctx, p)
		if errors.Is(err, payroll.ErrPayslipExists) {
			skippedCount++
			continue
		}
		if err != nil {
			log.Printf("[Scheduler] Error saving payslip for %s: %v", p.EmployeeID, err)
			continue
		}
		savedCount++
	}

	for _, e := range result.Errors {
		log.Printf("[Scheduler] %s: %s", cycleID, e)
	}

	log.Printf("[Scheduler] Completed %s: %d payslips, %d skipped (already generated), %d errors",
		cycleID, savedCount, skippedCount, len(result.Errors))

	return nil
}

// RunNow triggers an immediate check (for testing/admin).
func (ps *PayrollScheduler) RunNow() {
	ps.checkAndProcess()
}

// GetNextRunTime returns when the next scheduled check will occur.
func (ps *PayrollScheduler) GetNextRunTime() time.Time {
	return time.Now().Add(ps.CheckInterval)
}
