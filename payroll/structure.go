package payroll

// =============================================================================
// SALARY STRUCTURE RESOLVER - Interval filter over versioned components
// =============================================================================

// EffectiveComponents returns the subset of a versioned salary component
// list whose effective interval overlaps the pay period. Input order is
// preserved so downstream iteration stays deterministic.
func EffectiveComponents(components []SalaryComponent, period PayPeriod) []SalaryComponent {
	var effective []SalaryComponent
	for _, c := range components {
		if c.OverlapsSpan(period.Start, period.End) {
			effective = append(effective, c)
		}
	}
	return effective
}

// AllowanceComponents filters effective components down to the paying kind.
func AllowanceComponents(components []SalaryComponent) []SalaryComponent {
	var out []SalaryComponent
	for _, c := range components {
		if c.IsAllowance() {
			out = append(out, c)
		}
	}
	return out
}

// DeductionComponents filters effective components down to the deducting kind.
func DeductionComponents(components []SalaryComponent) []SalaryComponent {
	var out []SalaryComponent
	for _, c := range components {
		if c.IsDeduction() {
			out = append(out, c)
		}
	}
	return out
}
