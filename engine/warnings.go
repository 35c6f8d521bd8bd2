/*
warnings.go - Diagnostic channel for silent-zero degradation

PURPOSE:
  The engine favors silent degradation over hard failure: unknown
  periodicities, unparseable compensation strings, and missing commission
  configuration all resolve to zero rather than erroring. That is the right
  call for a best-effort reporting aid, but it makes a zeroed figure
  indistinguishable from genuinely-zero revenue.

  Warnings is the accumulator that closes that gap. Calculators accept a
  *Warnings and record every degradation; callers surface the list alongside
  the aggregate so a zero can be traced to its cause.

NIL-SAFETY:
  All methods are nil-receiver safe. Passing nil keeps the original
  silent behavior, which some callers (ad-hoc what-if queries) prefer.

USAGE:
  warn := &engine.Warnings{}
  rate := cfg.HourlyRate(amount, "Weekly", conv, hours, warn) // unknown periodicity
  // rate is zero; warn.List() explains why
*/
package engine

import "fmt"

// =============================================================================
// WARNING CODES
// =============================================================================

type WarningCode string

const (
	WarnUnknownPeriodicity WarningCode = "unknown_periodicity"
	WarnUnknownWorkingDays WarningCode = "unknown_working_days"
	WarnUnparseableCTC     WarningCode = "unparseable_ctc"
	WarnMissingCommission  WarningCode = "missing_commission_config"
	WarnUnmatchedHours     WarningCode = "unmatched_hours"
	WarnMissingClient      WarningCode = "missing_client"
)

// Warning records one degradation: which rule fired, for which subject
// (an assignment, candidate, or employee/project pair), and why.
type Warning struct {
	Code    WarningCode
	Subject string
	Detail  string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s [%s]: %s", w.Code, w.Subject, w.Detail)
}

// =============================================================================
// WARNINGS - Accumulator
// =============================================================================

// Warnings collects degradation diagnostics during a single report build.
// Not safe for concurrent use; each report request owns its own collector.
type Warnings struct {
	list []Warning
}

// Add records a warning. Safe to call on a nil receiver (no-op).
func (w *Warnings) Add(code WarningCode, subject, detail string) {
	if w == nil {
		return
	}
	w.list = append(w.list, Warning{Code: code, Subject: subject, Detail: detail})
}

// List returns the recorded warnings in order.
func (w *Warnings) List() []Warning {
	if w == nil {
		return nil
	}
	return w.list
}

// Strings renders the warnings for API/display use.
func (w *Warnings) Strings() []string {
	if w == nil || len(w.list) == 0 {
		return nil
	}
	out := make([]string, len(w.list))
	for i, warning := range w.list {
		out[i] = warning.String()
	}
	return out
}

// Len reports how many warnings were recorded.
func (w *Warnings) Len() int {
	if w == nil {
		return 0
	}
	return len(w.list)
}
