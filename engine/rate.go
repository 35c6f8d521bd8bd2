/*
rate.go - Hourly rate derivation and currency normalization

PURPOSE:
  The single formula behind every figure this engine produces. Whatever the
  caller is attributing - client billing or employee salary - the hourly
  rate is always:

      periodicAmount x periodsPerYear / (workingDaysPerYear x dailyHours)

  with periodsPerYear = 12 for monthly amounts and 1 for annual (LPA)
  amounts, and with hourly amounts passing through untouched.

ORDERING INVARIANT:
  Currency conversion happens BEFORE periodicity conversion. Callers
  normalize the periodic amount to base currency first (ToBase), then derive
  the rate. Attribute() enforces the ordering for them.

SEE ALSO:
  - config.go: The constants this file divides by
  - labor/calc.go: Revenue/cost built on Attribute()
*/
package engine

import (
	"github.com/shopspring/decimal"
)

var twelve = decimal.NewFromInt(12)

// =============================================================================
// CURRENCY NORMALIZATION
// =============================================================================

// ToBase converts an amount to base currency. Only USD is converted (at the
// fixed configured rate); any other code is treated as already-base. Passing
// the base currency code is the identity.
func (c Config) ToBase(amount decimal.Decimal, currency Currency) decimal.Decimal {
	if currency == CurrencyUSD {
		return amount.Mul(c.USDToBaseRate)
	}
	return amount
}

// =============================================================================
// HOURLY RATE DERIVATION
// =============================================================================

// HourlyRate derives an hourly rate from a periodic amount that is ALREADY in
// base currency. An unknown periodicity resolves to zero (recorded on warn),
// matching the upstream behavior of treating unconfigured billing as no-op
// rather than an error. A non-positive dailyHours falls back to the default.
func (c Config) HourlyRate(amountBase decimal.Decimal, p Periodicity, conv WorkingDaysConfig, dailyHours decimal.Decimal, warn *Warnings) decimal.Decimal {
	if dailyHours.LessThanOrEqual(decimal.Zero) {
		dailyHours = c.DefaultDailyHours
	}

	switch p {
	case PeriodicityHourly:
		return amountBase
	case PeriodicityMonthly:
		divisor := c.hoursPerYear(conv, dailyHours, warn)
		return amountBase.Mul(twelve).Div(divisor)
	case PeriodicityLPA:
		divisor := c.hoursPerYear(conv, dailyHours, warn)
		return amountBase.Div(divisor)
	default:
		warn.Add(WarnUnknownPeriodicity, string(p), "unknown periodicity, rate resolves to zero")
		return decimal.Zero
	}
}

func (c Config) hoursPerYear(conv WorkingDaysConfig, dailyHours decimal.Decimal, warn *Warnings) decimal.Decimal {
	days := c.WorkingDaysPerYear(conv, warn)
	return decimal.NewFromInt(int64(days)).Mul(dailyHours)
}

// =============================================================================
// MONETARY ATTRIBUTION - The shared revenue/cost formula
// =============================================================================

// Attribute computes hours x hourlyRate for a periodic amount in an arbitrary
// currency. This is the one entry point both revenue (client billing) and
// cost (salary) flow through, so the two can never diverge in formula or
// rounding. Normalization strictly precedes rate derivation.
func (c Config) Attribute(hours decimal.Decimal, amount decimal.Decimal, currency Currency, p Periodicity, conv WorkingDaysConfig, dailyHours decimal.Decimal, warn *Warnings) decimal.Decimal {
	normalized := c.ToBase(amount, currency)
	rate := c.HourlyRate(normalized, p, conv, dailyHours, warn)
	return hours.Mul(rate)
}
