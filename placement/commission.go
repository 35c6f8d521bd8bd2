/*
commission.go - Placement profit and revenue

PURPOSE:
  Computes the profit and recognized revenue for one hired candidate from
  the candidate's compensation terms and the client's commission
  configuration.

TRACKS WITHIN THE TRACK:
  Internal hires:   billed at cost-plus. Profit is accrual CTC minus salary;
                    revenue is the full accrual CTC.
  Commission hires: profit is the commission (percentage of salary or fixed
                    fee); the commission itself is the recognized revenue -
                    no separate markup revenue is modeled.

DEGRADATION:
  Missing or unknown commission configuration resolves to zero with a
  warning, consistent with the rest of the engine.
*/
package placement

import (
	"github.com/shopspring/decimal"

	"github.com/warp/attribution-engine/engine"
)

var hundred = decimal.NewFromInt(100)

// =============================================================================
// COMMISSION ENGINE
// =============================================================================

// Engine computes placement figures under a fixed config.
// Stateless and safe for concurrent use.
type Engine struct {
	Config engine.Config
}

func NewEngine(cfg engine.Config) Engine {
	return Engine{Config: cfg}
}

// Result carries the outcome for one candidate.
type Result struct {
	Profit  decimal.Decimal
	Revenue decimal.Decimal

	// Salary is the annualized base-currency salary the commission was
	// derived from; kept for display alongside the candidate record.
	Salary decimal.Decimal
}

// CandidateProfit computes placement profit and revenue for a hired
// candidate. The candidate's own job category decides the track: internal
// hires use cost-plus, everything else uses the client's commission terms.
func (e Engine) CandidateProfit(c Candidate, client Client, warn *engine.Warnings) Result {
	salaryMoney, ok := ParseCTC(c.CTC, e.Config.BaseCurrency, warn)
	salary := Annualize(salaryMoney, e.Config)

	if c.JobTypeCategory == JobInternal {
		accrualMoney, accrualOK := ParseCTC(c.AccrualCTC, e.Config.BaseCurrency, warn)
		accrual := Annualize(accrualMoney, e.Config)
		if !ok && !accrualOK {
			return Result{Salary: salary}
		}
		// Cost-plus: the full accrual value is billed, salary is the cost.
		return Result{
			Profit:  accrual.Sub(salary),
			Revenue: accrual,
			Salary:  salary,
		}
	}

	switch client.CommissionType {
	case CommissionPercentage:
		profit := salary.Mul(client.CommissionValue).Div(hundred)
		return Result{Profit: profit, Revenue: profit, Salary: salary}
	case CommissionFixed:
		profit := e.Config.ToBase(client.CommissionValue, client.Currency)
		return Result{Profit: profit, Revenue: profit, Salary: salary}
	default:
		warn.Add(engine.WarnMissingCommission, c.ID,
			"client "+client.ID+" has no usable commission configuration")
		return Result{Salary: salary}
	}
}
