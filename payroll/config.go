package payroll

// =============================================================================
// ENGINE CONFIGURATION - Passed explicitly into each call, never hidden state
// =============================================================================

// Config carries the global knobs of the engine. It is an explicit value so
// invocations stay deterministic, parallelizable, and easy to test.
type Config struct {
	// WorkingDaysPerMonth is the nominal working-day count used for
	// hourly-rate derivation and the payslip snapshot. Calendar days,
	// not working days, drive proration.
	WorkingDaysPerMonth int

	// HoursPerDay converts the monthly basic rate into an hourly rate
	// for overtime pay.
	HoursPerDay int

	// OvertimeMultiplier scales the hourly rate for overtime hours.
	OvertimeMultiplier float64

	// ProrationEnabled toggles partial-period scaling. Eligibility checks
	// run either way; with proration off, every eligible employee is paid
	// the full period.
	ProrationEnabled bool

	// MultiProjectAllocation toggles cost splitting across concurrent
	// project assignments. Off means every payslip gets an empty
	// allocation list.
	MultiProjectAllocation bool

	// Now supplies the wall clock. The semi-monthly period boundary depends
	// on the current day-of-month, so tests and replays inject a fixed
	// clock here to reproduce past results.
	Now func() TimePoint
}

// DefaultConfig returns the engine defaults.
func DefaultConfig() Config {
	return Config{
		WorkingDaysPerMonth:    22,
		HoursPerDay:            8,
		OvertimeMultiplier:     1.5,
		ProrationEnabled:       true,
		MultiProjectAllocation: true,
		Now:                    Today,
	}
}

// now returns the configured clock's reading, falling back to the real clock.
func (c Config) now() TimePoint {
	if c.Now != nil {
		return c.Now()
	}
	return Today()
}
