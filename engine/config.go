/*
config.go - Injectable attribution constants

PURPOSE:
  Every constant the calculators depend on lives here instead of being
  hard-coded at call sites: the USD exchange rate, the default daily working
  hours, the working-days-per-year table, and the flat annual-hours constant
  used to annualize hourly candidate compensation.

WHY INJECTABLE?
  - Testing: property tests pin their own rates instead of magic numbers
  - Multi-tenant: each organization can carry its own conventions
  - Auditability: one place to answer "which rate produced this figure?"

SEE ALSO:
  - rate.go: Uses WorkingDays and DefaultDailyHours
  - currency.go: Uses USDToBaseRate
  - factory/config.go: JSON form with defaulting and validation
*/
package engine

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// CONFIG - The constants behind every attribution calculation
// =============================================================================

// Config carries the injectable constants for rate derivation and currency
// normalization. Zero-value Config is not usable; start from DefaultConfig.
type Config struct {
	// BaseCurrency is the organization's reporting currency. Amounts in any
	// currency other than USD are assumed to already be in base currency.
	BaseCurrency Currency

	// USDToBaseRate converts one USD into base currency units.
	USDToBaseRate decimal.Decimal

	// DefaultDailyHours applies when an assignment has no working-hours value.
	DefaultDailyHours decimal.Decimal

	// WorkingDays maps each working-day convention to billable days per year.
	// This is a fixed table, never computed from the calendar.
	WorkingDays map[WorkingDaysConfig]int

	// CandidateAnnualHours annualizes hourly candidate compensation strings.
	// Intentionally distinct from the WorkingDays-based conversion: candidate
	// CTC figures use a flat convention regardless of assignment terms.
	CandidateAnnualHours decimal.Decimal
}

// DefaultConfig returns the production conventions observed in the field:
// base INR, 84 INR per USD, 8-hour days, 2016 annual hours for candidates.
func DefaultConfig() Config {
	return Config{
		BaseCurrency:      CurrencyINR,
		USDToBaseRate:     decimal.NewFromInt(84),
		DefaultDailyHours: decimal.NewFromInt(8),
		WorkingDays: map[WorkingDaysConfig]int{
			WorkingAllDays:      365,
			WorkingWeekdaysOnly: 260,
			WorkingSaturday:     312,
		},
		CandidateAnnualHours: decimal.NewFromInt(2016),
	}
}

// Validate checks that the config can safely divide and convert.
func (c Config) Validate() error {
	if !c.USDToBaseRate.IsPositive() {
		return &ConfigError{Field: "usd_to_base_rate", Reason: "must be positive"}
	}
	if !c.DefaultDailyHours.IsPositive() {
		return &ConfigError{Field: "default_daily_hours", Reason: "must be positive"}
	}
	if !c.CandidateAnnualHours.IsPositive() {
		return &ConfigError{Field: "candidate_annual_hours", Reason: "must be positive"}
	}
	if len(c.WorkingDays) == 0 {
		return &ConfigError{Field: "working_days", Reason: "table is empty"}
	}
	for conv, days := range c.WorkingDays {
		if days <= 0 {
			return &ConfigError{Field: "working_days." + string(conv), Reason: "must be positive"}
		}
	}
	if _, ok := c.WorkingDays[WorkingAllDays]; !ok {
		return &ConfigError{Field: "working_days.all_days", Reason: "required (fallback convention)"}
	}
	return nil
}

// WorkingDaysPerYear resolves a convention against the table. Unknown
// conventions fall back to all_days and record a warning.
func (c Config) WorkingDaysPerYear(conv WorkingDaysConfig, warn *Warnings) int {
	if days, ok := c.WorkingDays[conv]; ok {
		return days
	}
	warn.Add(WarnUnknownWorkingDays, string(conv), "unknown working-days convention, using all_days")
	return c.WorkingDays[WorkingAllDays]
}
