/*
allocation.go - Splitting payroll totals across project assignments

PURPOSE:
  Distributes one employee's computed totals across the projects they are
  concurrently assigned to, so project cost reporting can attribute payroll
  spend without reopening the payslip.

FACTOR RULES (per overlapping assignment, in priority order):
  1. Declared percentage      -> factor = percentage / 100
  2. Declared monthly hours   -> factor = hours / sum(declared hours),
     only when at least two assignments declare hours
  3. Neither                  -> factor = 1 / count (equal split)

  A lone hours declaration has no sibling to share against: its ratio
  would be hours/hours = 1 while undeclared siblings split equally,
  over-allocating the payslip. It falls back to the equal split instead.

  Factors are NOT re-normalized: if percentages sum to 95, the allocation
  rows cover 95% of the payslip and a warning is emitted. Callers who need
  an exact partition must supply percentages summing to 100.
*/
package payroll

import "fmt"

// =============================================================================
// COST ALLOCATION
// =============================================================================

// PayrollCostAllocation is one project's share of a payslip's totals.
type PayrollCostAllocation struct {
	ProjectID   ProjectID
	ProjectName string
	Factor      float64
	Basic       Money
	Allowances  Money
	Bonuses     Money
	Deductions  Money
	Net         Money
}

// AllocationTotals are the payslip-level figures being split.
type AllocationTotals struct {
	Basic      Money
	Allowances Money
	Bonuses    Money
	Deductions Money
	Net        Money
}

// =============================================================================
// COST ALLOCATOR
// =============================================================================

type CostAllocator struct {
	Config Config
}

// Allocate produces one allocation row per assignment overlapping the
// period. Returns nothing when multi-project allocation is disabled or no
// assignment overlaps.
func (ca *CostAllocator) Allocate(emp Employee, period PayPeriod, totals AllocationTotals) ([]PayrollCostAllocation, []string) {
	if !ca.Config.MultiProjectAllocation {
		return nil, nil
	}

	var active []ProjectAssignment
	for _, a := range emp.Assignments {
		if a.OverlapsSpan(period.Start, period.End) {
			active = append(active, a)
		}
	}
	if len(active) == 0 {
		return nil, nil
	}

	factors, warnings := allocationFactors(emp.ID, active)

	rows := make([]PayrollCostAllocation, 0, len(active))
	for i, a := range active {
		f := factors[i]
		rows = append(rows, PayrollCostAllocation{
			ProjectID:   a.ProjectID,
			ProjectName: a.ProjectName,
			Factor:      f,
			Basic:       totals.Basic.MulFloat(f),
			Allowances:  totals.Allowances.MulFloat(f),
			Bonuses:     totals.Bonuses.MulFloat(f),
			Deductions:  totals.Deductions.MulFloat(f),
			Net:         totals.Net.MulFloat(f),
		})
	}
	return rows, warnings
}

// allocationFactors resolves one factor per active assignment, positionally.
func allocationFactors(empID EmployeeID, active []ProjectAssignment) ([]float64, []string) {
	var warnings []string

	totalHours := 0.0
	hoursCount := 0
	pctSum := 0.0
	anyPct := false
	for _, a := range active {
		if a.Percentage != nil {
			anyPct = true
			pctSum += *a.Percentage
		} else if a.HoursPerMonth != nil {
			hoursCount++
			totalHours += *a.HoursPerMonth
		}
	}
	if anyPct && pctSum != 100 {
		warnings = append(warnings, fmt.Sprintf(
			"employee %s: project allocation percentages sum to %.2f, not 100", empID, pctSum))
	}

	factors := make([]float64, len(active))
	for i, a := range active {
		switch {
		case a.Percentage != nil:
			factors[i] = *a.Percentage / 100
		case a.HoursPerMonth != nil && hoursCount >= 2 && totalHours > 0:
			factors[i] = *a.HoursPerMonth / totalHours
		default:
			factors[i] = 1 / float64(len(active))
		}
	}
	return factors, warnings
}
