package placement_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/attribution-engine/engine"
	"github.com/warp/attribution-engine/placement"
)

func candidate(id string, category placement.JobCategory, ctc, accrual string) placement.Candidate {
	return placement.Candidate{
		ID:              id,
		Name:            "Test Candidate",
		ClientID:        "client-1",
		CTC:             ctc,
		AccrualCTC:      accrual,
		JobTypeCategory: category,
		JoiningDate:     time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC),
	}
}

func percentageClient(value string) placement.Client {
	return placement.Client{
		ID:              "client-1",
		Name:            "Test Client",
		Currency:        engine.CurrencyINR,
		CommissionType:  placement.CommissionPercentage,
		CommissionValue: dec(value),
	}
}

// =============================================================================
// INTERNAL HIRES (COST-PLUS)
// =============================================================================

func TestCandidateProfit_InternalCostPlus(t *testing.T) {
	// GIVEN: Internal hire, 9 lpa salary, 12 lpa accrual billing
	// WHEN: Computing placement profit
	// THEN: profit = 1200000 - 900000 = 300000; revenue is the full accrual
	eng := placement.NewEngine(engine.DefaultConfig())
	c := candidate("cand-1", placement.JobInternal, "9,00,000 lpa", "12,00,000 lpa")

	got := eng.CandidateProfit(c, percentageClient("10"), nil)

	assert.True(t, got.Profit.Equal(dec("300000")), "profit %s", got.Profit)
	assert.True(t, got.Revenue.Equal(dec("1200000")), "revenue %s", got.Revenue)
	assert.True(t, got.Salary.Equal(dec("900000")), "salary %s", got.Salary)
}

func TestCandidateProfit_InternalIgnoresClientCommission(t *testing.T) {
	// The candidate's own category decides the track; commission terms on
	// the client never apply to internal hires.
	eng := placement.NewEngine(engine.DefaultConfig())
	c := candidate("cand-1", placement.JobInternal, "9 lpa", "12 lpa")

	withCommission := eng.CandidateProfit(c, percentageClient("50"), nil)
	withoutCommission := eng.CandidateProfit(c, placement.Client{ID: "client-1"}, nil)

	assert.True(t, withCommission.Profit.Equal(withoutCommission.Profit))
}

func TestCandidateProfit_InternalLossMaking(t *testing.T) {
	// Accrual below salary: a negative placement margin is reported as-is.
	eng := placement.NewEngine(engine.DefaultConfig())
	c := candidate("cand-1", placement.JobInternal, "1200000", "1000000")

	got := eng.CandidateProfit(c, percentageClient("10"), nil)
	assert.True(t, got.Profit.Equal(dec("-200000")), "profit %s", got.Profit)
}

func TestCandidateProfit_InternalBothUnparseable(t *testing.T) {
	eng := placement.NewEngine(engine.DefaultConfig())
	c := candidate("cand-1", placement.JobInternal, "tbd", "")
	warn := &engine.Warnings{}

	got := eng.CandidateProfit(c, percentageClient("10"), warn)

	assert.True(t, got.Profit.IsZero())
	assert.True(t, got.Revenue.IsZero())
	assert.Equal(t, 2, warn.Len())
}

func TestCandidateProfit_InternalMonthlyAccrual(t *testing.T) {
	// Accrual quoted monthly annualizes before the spread is taken:
	// 100000 x 12 - 900000 = 300000
	eng := placement.NewEngine(engine.DefaultConfig())
	c := candidate("cand-1", placement.JobInternal, "900000", "100000 Monthly")

	got := eng.CandidateProfit(c, percentageClient("10"), nil)
	assert.True(t, got.Profit.Equal(dec("300000")), "profit %s", got.Profit)
}

// =============================================================================
// EXTERNAL PLACEMENTS (COMMISSION)
// =============================================================================

func TestCandidateProfit_PercentageCommission(t *testing.T) {
	// GIVEN: External hire at 18 lpa, client pays 8.33%
	// WHEN: Computing placement profit
	// THEN: profit = revenue = 1800000 x 8.33 / 100 = 149940
	eng := placement.NewEngine(engine.DefaultConfig())
	c := candidate("cand-1", placement.JobExternal, "18,00,000", "")

	got := eng.CandidateProfit(c, percentageClient("8.33"), nil)

	assert.True(t, got.Profit.Equal(dec("149940")), "profit %s", got.Profit)
	assert.True(t, got.Revenue.Equal(got.Profit))
	assert.True(t, got.Salary.Equal(dec("1800000")))
}

func TestCandidateProfit_PercentageOfHourlyCTC(t *testing.T) {
	// "$5000 Hourly" annualizes to 846720000 before the percentage applies.
	eng := placement.NewEngine(engine.DefaultConfig())
	c := candidate("cand-1", placement.JobExternal, "$5000 Hourly", "")

	got := eng.CandidateProfit(c, percentageClient("10"), nil)

	assert.True(t, got.Salary.Equal(dec("846720000")), "salary %s", got.Salary)
	assert.True(t, got.Profit.Equal(dec("84672000")), "profit %s", got.Profit)
}

func TestCandidateProfit_FixedCommission(t *testing.T) {
	// Fixed fee in the client's currency, normalized to base:
	// $1500 x 84 = 126000
	eng := placement.NewEngine(engine.DefaultConfig())
	c := candidate("cand-1", placement.JobExternal, "18 lpa", "")
	client := placement.Client{
		ID:              "client-1",
		Currency:        engine.CurrencyUSD,
		CommissionType:  placement.CommissionFixed,
		CommissionValue: dec("1500"),
	}

	got := eng.CandidateProfit(c, client, nil)

	assert.True(t, got.Profit.Equal(dec("126000")), "profit %s", got.Profit)
	assert.True(t, got.Revenue.Equal(got.Profit))
}

func TestCandidateProfit_FixedCommissionIndependentOfSalary(t *testing.T) {
	eng := placement.NewEngine(engine.DefaultConfig())
	client := placement.Client{
		ID:              "client-1",
		Currency:        engine.CurrencyINR,
		CommissionType:  placement.CommissionFixed,
		CommissionValue: dec("50000"),
	}

	low := eng.CandidateProfit(candidate("cand-1", placement.JobExternal, "5 lpa", ""), client, nil)
	high := eng.CandidateProfit(candidate("cand-2", placement.JobExternal, "50 lpa", ""), client, nil)

	assert.True(t, low.Profit.Equal(high.Profit))
	assert.True(t, low.Profit.Equal(dec("50000")))
}

func TestCandidateProfit_UnparseableCTCStillEarnsFixedFee(t *testing.T) {
	// A fixed fee does not depend on the salary, so an unparseable CTC
	// degrades only the salary figure.
	eng := placement.NewEngine(engine.DefaultConfig())
	c := candidate("cand-1", placement.JobExternal, "referral bonus", "")
	client := placement.Client{
		ID:              "client-1",
		Currency:        engine.CurrencyINR,
		CommissionType:  placement.CommissionFixed,
		CommissionValue: dec("75000"),
	}
	warn := &engine.Warnings{}

	got := eng.CandidateProfit(c, client, warn)

	assert.True(t, got.Profit.Equal(dec("75000")))
	assert.True(t, got.Salary.IsZero())
	assert.Equal(t, 1, warn.Len())
}

func TestCandidateProfit_UnknownCommissionTypeIsZeroWithWarning(t *testing.T) {
	eng := placement.NewEngine(engine.DefaultConfig())
	c := candidate("cand-1", placement.JobExternal, "18 lpa", "")
	client := placement.Client{ID: "client-1", CommissionType: placement.CommissionType("barter")}
	warn := &engine.Warnings{}

	got := eng.CandidateProfit(c, client, warn)

	assert.True(t, got.Profit.IsZero())
	assert.True(t, got.Revenue.IsZero())
	assert.True(t, got.Salary.Equal(dec("1800000")))
	require.Equal(t, 1, warn.Len())
	assert.Equal(t, engine.WarnMissingCommission, warn.List()[0].Code)
}

// =============================================================================
// CLIENT VALIDATION
// =============================================================================

func TestClientValidate_NegativeCommissionRejected(t *testing.T) {
	client := percentageClient("10")
	client.CommissionValue = dec("-5")

	err := client.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, engine.ErrNegativeAmount)
}
