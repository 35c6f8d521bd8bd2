/*
calc.go - Revenue, cost, and profit for the labor track

PURPOSE:
  Combines the hours index with per-assignment billing/salary terms to
  produce employee-driven revenue and labor cost for a project. Revenue and
  cost are the SAME calculation invoked with two different parameter bundles
  (billing terms vs salary terms), both flowing through engine.Attribute, so
  the two can never silently diverge in formula or rounding.

FLOW (per assignment):
  1. hours     = index.HoursFor(employeeID, projectID)
  2. normalize = cfg.ToBase(periodicAmount, currency)   [inside Attribute]
  3. rate      = cfg.HourlyRate(normalized, ...)        [inside Attribute]
  4. result    = hours x rate

SEE ALSO:
  - engine/rate.go: Attribute, HourlyRate
  - report/report.go: Per-entry bucketing built on Rates()
*/
package labor

import (
	"github.com/shopspring/decimal"

	"github.com/warp/attribution-engine/engine"
)

// =============================================================================
// CALCULATOR
// =============================================================================

// Calculator computes labor-track figures under a fixed engine config.
// Stateless and safe for concurrent use.
type Calculator struct {
	Config engine.Config
}

func NewCalculator(cfg engine.Config) Calculator {
	return Calculator{Config: cfg}
}

// Revenue computes employee-driven revenue for the assignment's project:
// approved hours times the client-billing hourly rate.
func (c Calculator) Revenue(a EmployeeAssignment, idx *HoursIndex, warn *engine.Warnings) decimal.Decimal {
	hours := idx.HoursFor(a.EmployeeID, a.ProjectID)
	return c.Config.Attribute(hours, a.ClientBilling, a.ClientCurrency, a.BillingType, a.WorkingDays, a.WorkingHours, warn)
}

// Cost mirrors Revenue exactly, substituting the salary bundle for the
// billing bundle.
func (c Calculator) Cost(a EmployeeAssignment, idx *HoursIndex, warn *engine.Warnings) decimal.Decimal {
	hours := idx.HoursFor(a.EmployeeID, a.ProjectID)
	return c.Config.Attribute(hours, a.Salary, a.SalaryCurrency, a.SalaryType, a.WorkingDays, a.WorkingHours, warn)
}

// Profit is revenue minus cost. Revenue and cost are never negative;
// profit may be (a loss-making assignment).
func (c Calculator) Profit(a EmployeeAssignment, idx *HoursIndex, warn *engine.Warnings) decimal.Decimal {
	return c.Revenue(a, idx, warn).Sub(c.Cost(a, idx, warn))
}

// Rates derives the billing and salary hourly rates for an assignment
// without applying hours. Report assembly uses these to attribute each
// time-log entry to its own calendar month: bucketing per entry and summing
// gives exactly the same totals as hours x rate in one shot (additivity).
func (c Calculator) Rates(a EmployeeAssignment, warn *engine.Warnings) (billRate, costRate decimal.Decimal) {
	billRate = c.Config.HourlyRate(
		c.Config.ToBase(a.ClientBilling, a.ClientCurrency),
		a.BillingType, a.WorkingDays, a.WorkingHours, warn,
	)
	costRate = c.Config.HourlyRate(
		c.Config.ToBase(a.Salary, a.SalaryCurrency),
		a.SalaryType, a.WorkingDays, a.WorkingHours, warn,
	)
	return billRate, costRate
}
