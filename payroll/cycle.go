/*
cycle.go - Engine entry points

PURPOSE:
  The two public operations of the calculation engine:

    CalculateEmployeePayroll - one employee, one month, one frequency
    ProcessPayrollCycle      - the whole population for one cycle

  Each payslip is a pure function of (employee, month, frequency, facts,
  config). The cycle processor collects per-employee failures instead of
  aborting: one ineligible employee never blocks the batch.

PIPELINE (per employee):
  resolve period -> resolve proration -> filter salary structure ->
  earnings -> deductions -> cost allocation -> assemble payslip

SEE ALSO:
  - period.go, proration.go, structure.go: The leading stages
  - earnings.go, deductions.go, allocation.go, payslip.go: The rest
*/
package payroll

import "fmt"

// =============================================================================
// ENGINE
// =============================================================================

type Engine struct {
	Config Config
}

func New(cfg Config) *Engine { return &Engine{Config: cfg} }

// CalculateEmployeePayroll runs the full pipeline for one employee.
// Eligibility failures come back as an error; data-quality findings come
// back as warnings alongside a valid payslip.
func (e *Engine) CalculateEmployeePayroll(
	emp Employee,
	month YearMonth,
	frequency Frequency,
	facts PayrollFacts,
) (*Payslip, []string, error) {
	period := ResolvePayPeriod(month, frequency, e.Config.now())

	span, err := e.resolveSpan(emp, period)
	if err != nil {
		return nil, nil, err
	}

	var warnings []string
	if span.Days == 0 {
		// Eligible but with no payable days, e.g. a join date after the
		// last working day inside the same period. The payslip comes out
		// all-zero, which deserves a flag rather than silence.
		warnings = append(warnings, fmt.Sprintf(
			"employee %s: zero payable days in period %s to %s", emp.ID, period.Start, period.End))
	}

	components := EffectiveComponents(emp.SalaryStructure, period)

	earningsCalc := EarningsCalculator{Config: e.Config}
	earnings := earningsCalc.Calculate(emp, month, period, span, components, facts)

	deductionCalc := DeductionCalculator{Config: e.Config}
	deductions, deductionWarnings := deductionCalc.Calculate(emp, month, span, components, earnings, facts)
	warnings = append(warnings, deductionWarnings...)

	gross := earnings.Gross()
	totalDeductions := deductions.Total()
	allocator := CostAllocator{Config: e.Config}
	allocations, allocWarnings := allocator.Allocate(emp, period, AllocationTotals{
		Basic:      earnings.Basic,
		Allowances: earnings.TotalAllowances(),
		Bonuses:    earnings.TotalBonuses(),
		Deductions: totalDeductions,
		Net:        gross.Sub(totalDeductions),
	})
	warnings = append(warnings, allocWarnings...)

	assembler := PayslipAssembler{Config: e.Config}
	payslip := assembler.Assemble(emp, month, period, span, components, earnings, deductions, allocations, facts)

	return payslip, warnings, nil
}

func (e *Engine) resolveSpan(emp Employee, period PayPeriod) (Proration, error) {
	if !e.Config.ProrationEnabled {
		// Eligibility still applies; only the clamping is skipped.
		if _, err := ResolveProration(emp, period); err != nil {
			return Proration{}, err
		}
		return FullSpan(emp, period), nil
	}
	return ResolveProration(emp, period)
}

// =============================================================================
// CYCLE PROCESSING
// =============================================================================

// CycleResult is the batch outcome for one payroll cycle.
type CycleResult struct {
	Payslips []*Payslip
	Errors   []string
	Warnings []string
}

// ProcessPayrollCycle runs the pipeline for every employee in the cycle.
// Failed employees are reported in Errors and skipped; the batch always
// completes.
func (e *Engine) ProcessPayrollCycle(
	cycle PayrollCycle,
	employees []Employee,
	facts PayrollFacts,
) *CycleResult {
	result := &CycleResult{}

	for _, emp := range employees {
		payslip, warnings, err := e.CalculateEmployeePayroll(emp, cycle.Month, cycle.Frequency, facts)
		if err != nil {
			result.Errors = append(result.Errors,
				fmt.Sprintf("employee %s (%s): %v", emp.ID, emp.Name, err))
			continue
		}
		payslip.CycleID = cycle.ID
		result.Payslips = append(result.Payslips, payslip)
		result.Warnings = append(result.Warnings, warnings...)
	}

	return result
}
