/*
Package engine provides the core revenue and profit attribution engine.

PURPOSE:
  This package contains the shared calculation primitives that every
  attribution track uses: deriving an hourly rate from a periodic amount,
  normalizing foreign-currency amounts to the organization's base currency,
  and bucketing per-entry results into calendar-month totals.

KEY CONCEPTS IN THIS FILE (types.go):
  - Money: An amount with a currency and a billing periodicity
  - Currency: ISO-style currency code (only USD is non-base)
  - Periodicity: How a periodic amount is quoted (Monthly, LPA, Hourly)
  - WorkingDaysConfig: Which calendar-day convention divides the year

DESIGN PRINCIPLES:
  1. Precision: Uses decimal.Decimal to avoid floating-point drift
  2. Purity: No I/O, no clocks, no globals - same inputs, same outputs
  3. One formula: Revenue and cost share a single rate derivation so the
     two calculations can never silently diverge
  4. Silent degradation with diagnostics: unknown inputs resolve to zero,
     but a Warnings collector makes every zeroed figure traceable

USAGE:
  cfg := engine.DefaultConfig()
  base := cfg.ToBase(decimal.NewFromInt(1000), engine.CurrencyUSD)
  rate := cfg.HourlyRate(base, engine.PeriodicityMonthly, engine.WorkingWeekdaysOnly, decimal.Zero, nil)

SEE ALSO:
  - config.go: Injectable rate/convention configuration
  - rate.go: Hourly rate derivation
  - monthly.go: Calendar-month bucketing
*/
package engine

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// CURRENCY
// =============================================================================

// Currency is a currency code. Only one non-base currency is supported (USD);
// every other code is treated as already denominated in the base currency.
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyINR Currency = "INR"
)

// =============================================================================
// PERIODICITY - How a periodic amount is quoted
// =============================================================================

// Periodicity is the billing/salary convention a periodic amount is quoted in.
type Periodicity string

const (
	PeriodicityMonthly Periodicity = "Monthly"
	PeriodicityLPA     Periodicity = "LPA" // annual lump sum ("Lakhs Per Annum")
	PeriodicityHourly  Periodicity = "Hourly"
)

// =============================================================================
// WORKING DAYS - Calendar-day convention
// =============================================================================

// WorkingDaysConfig selects how many days per year are considered billable.
// The day counts are a fixed lookup (see Config.WorkingDays), never computed
// from the calendar.
type WorkingDaysConfig string

const (
	WorkingAllDays      WorkingDaysConfig = "all_days"         // 365
	WorkingWeekdaysOnly WorkingDaysConfig = "weekdays_only"    // 260
	WorkingSaturday     WorkingDaysConfig = "saturday_working" // 312
)

// =============================================================================
// MONEY - Typed amount with currency and periodicity
// =============================================================================

// Money is an amount with its currency and the periodicity it is quoted in.
// It replaces the free-form compensation strings of the upstream data entry
// with a typed value as early as possible in the pipeline.
type Money struct {
	Amount      decimal.Decimal
	Currency    Currency
	Periodicity Periodicity
}

// NewMoney builds a Money value from a float. Use for literals and tests;
// parsed or stored amounts should come in as decimals already.
func NewMoney(amount float64, currency Currency, periodicity Periodicity) Money {
	return Money{Amount: decimal.NewFromFloat(amount), Currency: currency, Periodicity: periodicity}
}

func (m Money) IsZero() bool { return m.Amount.IsZero() }
