/*
earnings.go - The earning side of the payslip

PURPOSE:
  Computes basic salary, allowances, bonuses, overtime, and commissions
  for one employee in one pay period.

PRORATION RULES:
  Basic and allowances are period-level entitlements: they scale by the
  worked-day ratio. Bonuses and commissions are period-level GRANTS:
  included verbatim, never prorated. Overtime is derived from attendance,
  which is already span-scoped, so no further scaling applies.

AMOUNT RESOLUTION:
  FixedAmount components pay their amount; PercentageOfBasic components
  pay rate% of the UNPRORATED monthly basic, then the proration ratio
  applies to the resolved amount.
*/
package payroll

import "github.com/shopspring/decimal"

// =============================================================================
// EARNINGS
// =============================================================================

type Earnings struct {
	Basic       Money
	Allowances  []PayslipItem
	Bonuses     []PayslipItem
	Overtime    []PayslipItem
	Commissions []PayslipItem
}

func (e Earnings) TotalAllowances() Money  { return SumItems(e.Allowances) }
func (e Earnings) TotalBonuses() Money     { return SumItems(e.Bonuses) }
func (e Earnings) TotalOvertime() Money    { return SumItems(e.Overtime) }
func (e Earnings) TotalCommissions() Money { return SumItems(e.Commissions) }

// Gross is basic + all earning sections. Every member is leaf-rounded, so
// the sum is exact in cents.
func (e Earnings) Gross() Money {
	return e.Basic.
		Add(e.TotalAllowances()).
		Add(e.TotalBonuses()).
		Add(e.TotalOvertime()).
		Add(e.TotalCommissions())
}

// =============================================================================
// EARNINGS CALCULATOR
// =============================================================================

type EarningsCalculator struct {
	Config Config
}

// Calculate computes the full earning side for one employee. The component
// list must already be filtered to the period (EffectiveComponents).
func (ec *EarningsCalculator) Calculate(
	emp Employee,
	month YearMonth,
	period PayPeriod,
	span Proration,
	components []SalaryComponent,
	facts PayrollFacts,
) Earnings {
	basic := span.Apply(emp.BasicSalary)

	return Earnings{
		Basic:       basic,
		Allowances:  ec.allowances(emp, span, components),
		Bonuses:     ec.bonuses(emp, month, facts),
		Overtime:    ec.overtime(emp, period, facts),
		Commissions: ec.commissions(emp, month, facts),
	}
}

func (ec *EarningsCalculator) allowances(emp Employee, span Proration, components []SalaryComponent) []PayslipItem {
	var items []PayslipItem
	for _, c := range AllowanceComponents(components) {
		resolved := c.ResolveAmount(emp.BasicSalary)
		items = append(items, PayslipItem{
			Name:        c.Name,
			Amount:      span.Apply(resolved),
			Type:        ItemAllowance,
			ComponentID: c.ID,
			Taxable:     c.Taxable,
		})
	}
	return items
}

func (ec *EarningsCalculator) bonuses(emp Employee, month YearMonth, facts PayrollFacts) []PayslipItem {
	var items []PayslipItem
	for _, b := range facts.Bonuses {
		if !b.AppliesTo(emp.ID, month) {
			continue
		}
		date := b.AwardedOn
		items = append(items, PayslipItem{
			Name:   b.Name,
			Amount: b.Amount.Round2(),
			Type:   ItemBonus,
			Date:   &date,
		})
	}
	return items
}

// overtime pays attendance overtime hours at the derived hourly rate times
// the configured multiplier. No attendance data means no overtime items,
// never an error.
func (ec *EarningsCalculator) overtime(emp Employee, period PayPeriod, facts PayrollFacts) []PayslipItem {
	hourly := ec.hourlyRate(emp.BasicSalary)
	multiplier := decimal.NewFromFloat(ec.Config.OvertimeMultiplier)

	var items []PayslipItem
	for _, rec := range facts.AttendanceFor(emp.ID, period) {
		if rec.OvertimeHours <= 0 {
			continue
		}
		date := rec.Date
		amount := hourly.
			Mul(decimal.NewFromFloat(rec.OvertimeHours)).
			Mul(multiplier).
			Round2()
		items = append(items, PayslipItem{
			Name:   "Overtime " + rec.Date.String(),
			Amount: amount,
			Type:   ItemOvertime,
			Date:   &date,
		})
	}
	return items
}

func (ec *EarningsCalculator) commissions(emp Employee, month YearMonth, facts PayrollFacts) []PayslipItem {
	var items []PayslipItem
	for _, rule := range facts.Commissions {
		if !rule.AppliesTo(emp.ID, month) {
			continue
		}
		amount := rule.Amount.Round2()
		if rule.Mode == ModePercentageOfBasic {
			amount = emp.BasicSalary.Percent(rule.Rate)
		}
		items = append(items, PayslipItem{
			Name:   rule.Name,
			Amount: amount,
			Type:   ItemCommission,
		})
	}
	return items
}

// hourlyRate derives the hourly basic rate from the nominal working month.
func (ec *EarningsCalculator) hourlyRate(monthlyBasic Money) Money {
	workingDays := ec.Config.WorkingDaysPerMonth
	if workingDays <= 0 {
		workingDays = DefaultConfig().WorkingDaysPerMonth
	}
	hoursPerDay := ec.Config.HoursPerDay
	if hoursPerDay <= 0 {
		hoursPerDay = DefaultConfig().HoursPerDay
	}
	hours := decimal.NewFromInt(int64(workingDays * hoursPerDay))
	return monthlyBasic.Div(hours)
}
