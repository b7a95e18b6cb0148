/*
Package payroll provides the core payroll calculation engine.

PURPOSE:
  This package contains the types and algorithms that turn an employee's
  contractual data plus a set of period-scoped facts (bonuses, adjustments,
  attendance, tax rules, statutory rules) into a fully itemized payslip,
  with the cost split across the employee's concurrent project assignments.

KEY CONCEPTS IN THIS FILE (types.go):
  - Money: A monetary amount backed by decimal.Decimal (never float math)
  - PayslipItem: The atomic line of any payslip section
  - ItemType: Closed set of payslip line kinds (allowance, tax, ...)
  - Employee/Component/Project IDs: Type-safe identifiers

DESIGN PRINCIPLES:
  1. Determinism: Every stage is a pure function of its inputs
  2. Precision: decimal.Decimal with rounding to cents at each leaf amount
  3. Type Safety: Strong typing for IDs prevents mixing employee/project IDs
  4. Auditability: Every payslip carries a snapshot of the inputs it used

USAGE:
  basic := payroll.NewMoney(3000)
  item := payroll.PayslipItem{
      Name:   "Housing Allowance",
      Amount: basic.Percent(10),
      Type:   payroll.ItemAllowance,
  }

SEE ALSO:
  - period.go: Pay period resolution from cycle month + frequency
  - proration.go: Worked-span clamping for partial periods
  - cycle.go: The engine entry points
*/
package payroll

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// MONEY - Monetary amount (always in the cycle's implicit currency)
// =============================================================================

type Money struct {
	Value decimal.Decimal
}

func NewMoney(value float64) Money {
	return Money{Value: decimal.NewFromFloat(value)}
}

func NewMoneyFromInt(value int) Money {
	return Money{Value: decimal.NewFromInt(int64(value))}
}

func MustParseMoney(s string) Money {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{Value: decimal.Zero}
	}
	return Money{Value: d}
}

func ZeroMoney() Money { return Money{Value: decimal.Zero} }

func (m Money) Add(b Money) Money          { return Money{Value: m.Value.Add(b.Value)} }
func (m Money) Sub(b Money) Money          { return Money{Value: m.Value.Sub(b.Value)} }
func (m Money) Mul(s decimal.Decimal) Money { return Money{Value: m.Value.Mul(s)} }
func (m Money) Div(s decimal.Decimal) Money { return Money{Value: m.Value.Div(s)} }
func (m Money) Neg() Money                 { return Money{Value: m.Value.Neg()} }
func (m Money) Abs() Money                 { return Money{Value: m.Value.Abs()} }
func (m Money) IsZero() bool               { return m.Value.IsZero() }
func (m Money) IsNegative() bool           { return m.Value.IsNegative() }
func (m Money) IsPositive() bool           { return m.Value.IsPositive() }
func (m Money) GreaterThan(b Money) bool   { return m.Value.GreaterThan(b.Value) }
func (m Money) LessThan(b Money) bool      { return m.Value.LessThan(b.Value) }
func (m Money) Equal(b Money) bool         { return m.Value.Equal(b.Value) }
func (m Money) Min(b Money) Money          { if m.LessThan(b) { return m }; return b }
func (m Money) Max(b Money) Money          { if m.GreaterThan(b) { return m }; return b }
func (m Money) String() string             { return m.Value.StringFixed(2) }

// Round2 rounds to cents. Leaf amounts are rounded at the point of
// computation, never deferred to display time.
func (m Money) Round2() Money { return Money{Value: m.Value.Round(2)} }

// Percent returns rate% of the amount, rounded to cents.
func (m Money) Percent(rate float64) Money {
	return Money{Value: m.Value.Mul(decimal.NewFromFloat(rate)).Div(hundred).Round(2)}
}

// MulFloat scales the amount by a float factor, rounded to cents. Used
// for allocation factors, which originate as percentages or hour shares.
func (m Money) MulFloat(factor float64) Money {
	return Money{Value: m.Value.Mul(decimal.NewFromFloat(factor)).Round(2)}
}

// ProrateBy scales the amount by days/totalDays, rounded to cents.
// The full amount is returned untouched for a complete span.
func (m Money) ProrateBy(days, totalDays int) Money {
	if totalDays <= 0 || days >= totalDays {
		return m.Round2()
	}
	return Money{Value: m.Value.
		Mul(decimal.NewFromInt(int64(days))).
		Div(decimal.NewFromInt(int64(totalDays))).
		Round(2)}
}

var hundred = decimal.NewFromInt(100)

// =============================================================================
// IDENTIFIERS
// =============================================================================

type EmployeeID string
type ComponentID string
type ProjectID string
type CycleID string
type PayslipID string

// =============================================================================
// PAYSLIP ITEM - Atomic line of any payslip section
// =============================================================================

// ItemType is the closed set of payslip line kinds. Downstream totals are
// computed exhaustively per kind, so no free-form strings here.
type ItemType string

const (
	ItemAllowance  ItemType = "allowance"
	ItemBonus      ItemType = "bonus"
	ItemOvertime   ItemType = "overtime"
	ItemCommission ItemType = "commission"
	ItemDeduction  ItemType = "deduction"
	ItemTax        ItemType = "tax"
	ItemStatutory  ItemType = "statutory"
	ItemLoan       ItemType = "loan"
	ItemAdjustment ItemType = "adjustment"
)

type PayslipItem struct {
	Name        string
	Amount      Money
	Type        ItemType
	Date        *TimePoint  // When the underlying fact occurred, if dated
	ComponentID ComponentID // The salary component this line came from, if any
	Taxable     bool
}

// SumItems totals a section's line amounts. Items are already leaf-rounded,
// so the sum is exact in cents.
func SumItems(items []PayslipItem) Money {
	total := ZeroMoney()
	for _, it := range items {
		total = total.Add(it.Amount)
	}
	return total
}
