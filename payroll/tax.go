/*
tax.go - Progressive income tax evaluation

PURPOSE:
  Evaluates a progressive slab table against taxable income. The engine is
  country-agnostic: the table is supplied externally, and evaluation is
  purely mechanical.

BRACKET MATH:
  For each slab in ascending MinIncome order, if taxable income exceeds
  slab.MinIncome, the bracket's tax is:

    (min(taxableIncome, slab.MaxIncome or +inf) - slab.MinIncome) * rate/100

  plus the slab's flat add-on for reaching the bracket. Brackets accumulate;
  the result is monotonically non-decreasing in taxable income.

EDGE CASES:
  - Negative taxable income clamps to zero.
  - No tax configuration means zero tax items, not an error.
*/
package payroll

// TaxableIncome derives the base the slab table applies to: gross salary
// plus taxable allowances minus tax-exempt structural deductions, clamped
// at zero.
func TaxableIncome(gross Money, allowances []PayslipItem, exemptDeductions Money) Money {
	taxable := gross
	for _, a := range allowances {
		if a.Taxable {
			taxable = taxable.Add(a.Amount)
		}
	}
	taxable = taxable.Sub(exemptDeductions)
	if taxable.IsNegative() {
		return ZeroMoney()
	}
	return taxable
}

// ComputeProgressiveTax evaluates the slab table and returns one payslip
// line per bracket that charged anything. A nil configuration yields an
// empty list.
func ComputeProgressiveTax(taxable Money, cfg *TaxConfiguration) []PayslipItem {
	if cfg == nil {
		return nil
	}

	var items []PayslipItem
	for _, slab := range cfg.Slabs {
		if !taxable.GreaterThan(slab.MinIncome) {
			continue
		}

		top := taxable
		if slab.MaxIncome != nil {
			top = top.Min(*slab.MaxIncome)
		}

		bracketTax := top.Sub(slab.MinIncome).Percent(slab.Rate).Add(slab.FixedAmount.Round2())
		if bracketTax.IsZero() {
			continue
		}

		items = append(items, PayslipItem{
			Name:   taxBracketName(cfg, slab),
			Amount: bracketTax,
			Type:   ItemTax,
		})
	}
	return items
}

func taxBracketName(cfg *TaxConfiguration, slab TaxSlab) string {
	name := cfg.Name
	if name == "" {
		name = "Income Tax"
	}
	if slab.MaxIncome != nil {
		return name + " (" + slab.MinIncome.String() + "-" + slab.MaxIncome.String() + ")"
	}
	return name + " (above " + slab.MinIncome.String() + ")"
}
