/*
deductions.go - The deduction side of the payslip

PURPOSE:
  Computes structural deductions, progressive income tax, statutory
  contributions, loan installments, and ad-hoc adjustments for one
  employee in one pay period. Sections stay disaggregated: a payslip
  always exposes both the itemized lines and the rolled-up totals.

SIGN CONVENTIONS:
  Adjustment ITEMS carry a signed display amount: -amount for deductions,
  +amount for additions. The adjustment TOTAL is net-reducing (positive
  shrinks net pay), so a deduction adjustment contributes +amount to the
  total and an addition contributes -amount. Net salary is always

    net = gross - (structural + tax + statutory + loans + adjustments)

  and that identity holds exactly, in cents, for every payslip.
*/
package payroll

// =============================================================================
// DEDUCTIONS
// =============================================================================

type Deductions struct {
	Structural  []PayslipItem
	Tax         []PayslipItem
	Statutory   []PayslipItem
	Loans       []PayslipItem
	Adjustments []PayslipItem
}

func (d Deductions) TotalStructural() Money { return SumItems(d.Structural) }
func (d Deductions) TotalTax() Money        { return SumItems(d.Tax) }
func (d Deductions) TotalStatutory() Money  { return SumItems(d.Statutory) }
func (d Deductions) TotalLoans() Money      { return SumItems(d.Loans) }

// TotalAdjustments is the net-reducing aggregate: the negation of the
// signed item sum.
func (d Deductions) TotalAdjustments() Money { return SumItems(d.Adjustments).Neg() }

// Total is everything subtracted from gross to reach net.
func (d Deductions) Total() Money {
	return d.TotalStructural().
		Add(d.TotalTax()).
		Add(d.TotalStatutory()).
		Add(d.TotalLoans()).
		Add(d.TotalAdjustments())
}

// =============================================================================
// DEDUCTION CALCULATOR
// =============================================================================

type DeductionCalculator struct {
	Config Config
}

// Calculate computes the full deduction side for one employee. The
// component list must already be filtered to the period. An invalid tax
// table yields zero tax plus a warning, never a hard failure.
func (dc *DeductionCalculator) Calculate(
	emp Employee,
	month YearMonth,
	span Proration,
	components []SalaryComponent,
	earnings Earnings,
	facts PayrollFacts,
) (Deductions, []string) {
	var warnings []string

	structural := dc.structural(emp, span, components)

	tax, taxWarnings := dc.tax(structural, earnings, facts)
	warnings = append(warnings, taxWarnings...)

	return Deductions{
		Structural:  structural,
		Tax:         tax,
		Statutory:   dc.statutory(earnings.Gross(), span, facts),
		Loans:       dc.loans(emp, month, facts),
		Adjustments: dc.adjustments(emp, month, facts),
	}, warnings
}

// structural mirrors allowance resolution for deduction-kind components,
// including the proration ratio.
func (dc *DeductionCalculator) structural(emp Employee, span Proration, components []SalaryComponent) []PayslipItem {
	var items []PayslipItem
	for _, c := range DeductionComponents(components) {
		resolved := c.ResolveAmount(emp.BasicSalary)
		items = append(items, PayslipItem{
			Name:        c.Name,
			Amount:      span.Apply(resolved),
			Type:        ItemDeduction,
			ComponentID: c.ID,
			Taxable:     !c.TaxExempt,
		})
	}
	return items
}

func (dc *DeductionCalculator) tax(structural []PayslipItem, earnings Earnings, facts PayrollFacts) ([]PayslipItem, []string) {
	if facts.Tax == nil {
		return nil, nil
	}
	if err := facts.Tax.Validate(); err != nil {
		return nil, []string{"tax configuration skipped: " + err.Error()}
	}

	exempt := ZeroMoney()
	for _, item := range structural {
		if !item.Taxable {
			exempt = exempt.Add(item.Amount)
		}
	}

	taxable := TaxableIncome(earnings.Gross(), earnings.Allowances, exempt)
	return ComputeProgressiveTax(taxable, facts.Tax), nil
}

// statutory applies each nonzero employee rate to the capped gross, then
// prorates by the same day ratio as earnings.
func (dc *DeductionCalculator) statutory(gross Money, span Proration, facts PayrollFacts) []PayslipItem {
	var items []PayslipItem
	for _, rule := range facts.Statutory {
		if rule.EmployeeRate == 0 {
			continue
		}
		base := gross
		if rule.MaxSalaryLimit != nil {
			base = base.Min(*rule.MaxSalaryLimit)
		}
		items = append(items, PayslipItem{
			Name:   rule.ContributionType,
			Amount: span.Apply(base.Percent(rule.EmployeeRate)),
			Type:   ItemStatutory,
		})
	}
	return items
}

func (dc *DeductionCalculator) loans(emp Employee, month YearMonth, facts PayrollFacts) []PayslipItem {
	var items []PayslipItem
	for _, loan := range facts.Loans {
		if !loan.AppliesTo(emp.ID, month) {
			continue
		}
		items = append(items, PayslipItem{
			Name:   loan.Name,
			Amount: loan.MonthlyInstallment.Round2(),
			Type:   ItemLoan,
		})
	}
	return items
}

// adjustments are taken verbatim (never prorated) with signed display
// amounts: -amount when the adjustment deducts, +amount when it adds.
func (dc *DeductionCalculator) adjustments(emp Employee, month YearMonth, facts PayrollFacts) []PayslipItem {
	var items []PayslipItem
	for _, adj := range facts.Adjustments {
		if !adj.AppliesTo(emp.ID, month) {
			continue
		}
		amount := adj.Amount.Round2()
		if adj.Type == AdjustmentDeduction {
			amount = amount.Neg()
		}
		items = append(items, PayslipItem{
			Name:   adj.Description,
			Amount: amount,
			Type:   ItemAdjustment,
		})
	}
	return items
}
