package payroll_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/payroll-engine/payroll"
)

func pct(v float64) *float64   { return &v }
func hours(v float64) *float64 { return &v }

func assignedEmployee(assignments ...payroll.ProjectAssignment) payroll.Employee {
	emp := activeEmployee("emp-1", 3000, tp(2024, time.January, 1))
	emp.Assignments = assignments
	return emp
}

func netOnly(net float64) payroll.AllocationTotals {
	return payroll.AllocationTotals{Net: money(net)}
}

func newAllocator() payroll.CostAllocator {
	return payroll.CostAllocator{Config: payroll.DefaultConfig()}
}

// =============================================================================
// FACTOR RULES
// =============================================================================

func TestCostAllocator_PercentageSplit(t *testing.T) {
	// GIVEN: Two assignments at 60%/40%, net salary 1000
	// WHEN: Allocating
	// THEN: Rows of 600.00 and 400.00, summing back to 1000.00

	emp := assignedEmployee(
		payroll.ProjectAssignment{ProjectID: "p-1", ProjectName: "Apollo",
			EffectiveDate: tp(2025, time.January, 1), Percentage: pct(60)},
		payroll.ProjectAssignment{ProjectID: "p-2", ProjectName: "Hermes",
			EffectiveDate: tp(2025, time.January, 1), Percentage: pct(40)},
	)

	allocator := newAllocator()
	rows, warnings := allocator.Allocate(emp, april2025(), netOnly(1000))

	assert.Empty(t, warnings)
	require.Len(t, rows, 2)
	assert.Equal(t, "600.00", rows[0].Net.String())
	assert.Equal(t, "400.00", rows[1].Net.String())
	assert.Equal(t, "1000.00", rows[0].Net.Add(rows[1].Net).String())
}

func TestCostAllocator_HoursShare(t *testing.T) {
	emp := assignedEmployee(
		payroll.ProjectAssignment{ProjectID: "p-1", EffectiveDate: tp(2025, time.January, 1), HoursPerMonth: hours(120)},
		payroll.ProjectAssignment{ProjectID: "p-2", EffectiveDate: tp(2025, time.January, 1), HoursPerMonth: hours(40)},
	)

	allocator := newAllocator()
	rows, warnings := allocator.Allocate(emp, april2025(), netOnly(1000))

	assert.Empty(t, warnings)
	require.Len(t, rows, 2)
	assert.Equal(t, "750.00", rows[0].Net.String())
	assert.Equal(t, "250.00", rows[1].Net.String())
}

func TestCostAllocator_EqualSplitFallback(t *testing.T) {
	emp := assignedEmployee(
		payroll.ProjectAssignment{ProjectID: "p-1", EffectiveDate: tp(2025, time.January, 1)},
		payroll.ProjectAssignment{ProjectID: "p-2", EffectiveDate: tp(2025, time.January, 1)},
	)

	allocator := newAllocator()
	rows, _ := allocator.Allocate(emp, april2025(), netOnly(999))

	require.Len(t, rows, 2)
	assert.Equal(t, "499.50", rows[0].Net.String())
	assert.Equal(t, "499.50", rows[1].Net.String())
}

func TestCostAllocator_MixedPercentageAndEqualSibling(t *testing.T) {
	// A declared percentage binds its own row; a sibling without one falls
	// back to the equal split of the overlapping count.

	emp := assignedEmployee(
		payroll.ProjectAssignment{ProjectID: "p-1", EffectiveDate: tp(2025, time.January, 1), Percentage: pct(50)},
		payroll.ProjectAssignment{ProjectID: "p-2", EffectiveDate: tp(2025, time.January, 1)},
	)

	allocator := newAllocator()
	rows, warnings := allocator.Allocate(emp, april2025(), netOnly(1000))

	require.Len(t, rows, 2)
	assert.Equal(t, "500.00", rows[0].Net.String())
	assert.Equal(t, "500.00", rows[1].Net.String())
	// 50 declared != 100 -> flagged
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "sum to 50.00")
}

func TestCostAllocator_LoneHoursWithBlankSibling_EqualSplit(t *testing.T) {
	// A single hours declaration has nothing to share against: hours/hours
	// would be 1.0 while the blank sibling takes 1/2, allocating 150% of
	// the payslip. Both fall back to the equal split instead.

	emp := assignedEmployee(
		payroll.ProjectAssignment{ProjectID: "p-1", EffectiveDate: tp(2025, time.January, 1), HoursPerMonth: hours(30)},
		payroll.ProjectAssignment{ProjectID: "p-2", EffectiveDate: tp(2025, time.January, 1)},
	)

	allocator := newAllocator()
	rows, warnings := allocator.Allocate(emp, april2025(), netOnly(1000))

	assert.Empty(t, warnings)
	require.Len(t, rows, 2)
	assert.Equal(t, 0.5, rows[0].Factor)
	assert.Equal(t, 0.5, rows[1].Factor)
	assert.Equal(t, "1000.00", rows[0].Net.Add(rows[1].Net).String())
}

func TestCostAllocator_HoursShareNextToPercentageSibling(t *testing.T) {
	// Two hours declarations share against each other even when a third
	// assignment binds itself by percentage.

	emp := assignedEmployee(
		payroll.ProjectAssignment{ProjectID: "p-1", EffectiveDate: tp(2025, time.January, 1), Percentage: pct(50)},
		payroll.ProjectAssignment{ProjectID: "p-2", EffectiveDate: tp(2025, time.January, 1), HoursPerMonth: hours(30)},
		payroll.ProjectAssignment{ProjectID: "p-3", EffectiveDate: tp(2025, time.January, 1), HoursPerMonth: hours(10)},
	)

	allocator := newAllocator()
	rows, _ := allocator.Allocate(emp, april2025(), netOnly(1000))

	require.Len(t, rows, 3)
	assert.Equal(t, "500.00", rows[0].Net.String())
	assert.Equal(t, "750.00", rows[1].Net.String())
	assert.Equal(t, "250.00", rows[2].Net.String())
}

// =============================================================================
// NO-OP CONDITIONS
// =============================================================================

func TestCostAllocator_DisabledConfig_NoRows(t *testing.T) {
	cfg := payroll.DefaultConfig()
	cfg.MultiProjectAllocation = false
	emp := assignedEmployee(
		payroll.ProjectAssignment{ProjectID: "p-1", EffectiveDate: tp(2025, time.January, 1), Percentage: pct(100)},
	)

	allocator := payroll.CostAllocator{Config: cfg}
	rows, warnings := allocator.Allocate(emp, april2025(), netOnly(1000))

	assert.Empty(t, rows)
	assert.Empty(t, warnings)
}

func TestCostAllocator_NoOverlappingAssignment_NoRows(t *testing.T) {
	ended := tp(2025, time.February, 28)
	emp := assignedEmployee(
		payroll.ProjectAssignment{ProjectID: "p-old", EffectiveDate: tp(2024, time.January, 1),
			EndDate: &ended, Percentage: pct(100)},
		payroll.ProjectAssignment{ProjectID: "p-future", EffectiveDate: tp(2025, time.June, 1),
			Percentage: pct(100)},
	)

	allocator := newAllocator()
	rows, _ := allocator.Allocate(emp, april2025(), netOnly(1000))

	assert.Empty(t, rows)
}

// =============================================================================
// NON-NORMALIZATION
// =============================================================================

func TestCostAllocator_PercentagesNotRenormalized(t *testing.T) {
	// 30 + 50 = 80: rows cover 80% of net and a warning is emitted, rather
	// than silently stretching factors to 1.0.

	emp := assignedEmployee(
		payroll.ProjectAssignment{ProjectID: "p-1", EffectiveDate: tp(2025, time.January, 1), Percentage: pct(30)},
		payroll.ProjectAssignment{ProjectID: "p-2", EffectiveDate: tp(2025, time.January, 1), Percentage: pct(50)},
	)

	allocator := newAllocator()
	rows, warnings := allocator.Allocate(emp, april2025(), netOnly(1000))

	require.Len(t, rows, 2)
	assert.Equal(t, "300.00", rows[0].Net.String())
	assert.Equal(t, "500.00", rows[1].Net.String())
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "not 100")
}

func TestCostAllocator_SplitsEverySection(t *testing.T) {
	emp := assignedEmployee(
		payroll.ProjectAssignment{ProjectID: "p-1", EffectiveDate: tp(2025, time.January, 1), Percentage: pct(100)},
	)
	totals := payroll.AllocationTotals{
		Basic:      money(3000),
		Allowances: money(500),
		Bonuses:    money(200),
		Deductions: money(700),
		Net:        money(3000),
	}

	allocator := newAllocator()
	rows, _ := allocator.Allocate(emp, april2025(), totals)

	require.Len(t, rows, 1)
	assert.Equal(t, "3000.00", rows[0].Basic.String())
	assert.Equal(t, "500.00", rows[0].Allowances.String())
	assert.Equal(t, "200.00", rows[0].Bonuses.String())
	assert.Equal(t, "700.00", rows[0].Deductions.String())
	assert.Equal(t, "3000.00", rows[0].Net.String())
}
