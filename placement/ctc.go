/*
ctc.go - Compensation string parsing

PURPOSE:
  Candidate compensation (CTC) arrives from data entry as a free-form string:
  "$5000 Hourly", "₹600000 LPA", "9,00,000". This file turns those strings
  into typed engine.Money values at the edge of the pipeline so the profit
  path never touches raw strings.

GRAMMAR:
  [sigil] amount [periodicityWord]
  - sigil:  "$" means USD; "₹" or no sigil means base currency
  - amount: decimal digits, thousands separators tolerated
  - word:   monthly | hourly | lpa (case-insensitive); absent means lpa

FAILURE MODE:
  Unparseable strings yield a zero Money and record a warning. Callers
  surface the zero as "no data", never as genuinely-zero income.
*/
package placement

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/warp/attribution-engine/engine"
)

// =============================================================================
// CTC PARSER
// =============================================================================

// ParseCTC parses a free-form compensation string into a typed Money value.
// The boolean reports whether an amount was successfully extracted; on
// failure the returned Money is zero in base currency.
func ParseCTC(raw string, base engine.Currency, warn *engine.Warnings) (engine.Money, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		warn.Add(engine.WarnUnparseableCTC, raw, "empty compensation string")
		return engine.Money{Currency: base, Periodicity: engine.PeriodicityLPA}, false
	}

	currency := base
	if strings.HasPrefix(s, "$") {
		currency = engine.CurrencyUSD
		s = strings.TrimPrefix(s, "$")
	} else {
		s = strings.TrimPrefix(s, "₹")
	}

	// Thousands separators are data-entry noise, not structure.
	s = strings.ReplaceAll(s, ",", "")

	fields := strings.Fields(s)
	if len(fields) == 0 {
		warn.Add(engine.WarnUnparseableCTC, raw, "no amount found")
		return engine.Money{Currency: base, Periodicity: engine.PeriodicityLPA}, false
	}

	amount, err := decimal.NewFromString(fields[0])
	if err != nil || amount.IsNegative() {
		warn.Add(engine.WarnUnparseableCTC, raw, "amount is not a non-negative number")
		return engine.Money{Currency: base, Periodicity: engine.PeriodicityLPA}, false
	}

	periodicity := engine.PeriodicityLPA
	if len(fields) > 1 {
		switch strings.ToLower(fields[1]) {
		case "monthly":
			periodicity = engine.PeriodicityMonthly
		case "hourly":
			periodicity = engine.PeriodicityHourly
		case "lpa":
			periodicity = engine.PeriodicityLPA
		default:
			// Unknown word behaves like an annual figure, but is worth flagging.
			warn.Add(engine.WarnUnparseableCTC, raw, "unknown periodicity word "+fields[1]+", assuming lpa")
		}
	}

	return engine.Money{Amount: amount, Currency: currency, Periodicity: periodicity}, true
}

// =============================================================================
// ANNUALIZATION
// =============================================================================

// Annualize converts a parsed compensation value to an annual figure in base
// currency. Currency normalization happens first, then periodicity:
// monthly x12, hourly x CandidateAnnualHours (a flat convention distinct
// from the WorkingDays-based derivation used for assignments), lpa as-is.
func Annualize(m engine.Money, cfg engine.Config) decimal.Decimal {
	annual := cfg.ToBase(m.Amount, m.Currency)
	switch m.Periodicity {
	case engine.PeriodicityMonthly:
		return annual.Mul(decimal.NewFromInt(12))
	case engine.PeriodicityHourly:
		return annual.Mul(cfg.CandidateAnnualHours)
	default:
		return annual
	}
}
