/*
monthly.go - Calendar-month bucketing of attribution results

PURPOSE:
  Buckets per-entry revenue/profit contributions and hire counts into
  calendar-month totals across a report window. Both tracks feed the same
  aggregator: the labor track keys contributions by time-log date, the
  placement track by candidate joining date.

ORDERING:
  The final slice is sorted chronologically by the bucket's underlying
  first-of-month date, never lexically by label. A lexical sort on
  "Apr 2025" / "Dec 2024" would misorder across years.

LIFECYCLE:
  Buckets are transient: created lazily on first contribution, recomputed in
  full on every report request, never persisted.
*/
package engine

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// MONTHLY BUCKET
// =============================================================================

// MonthlyBucket is one calendar month of aggregated results.
type MonthlyBucket struct {
	Month   string // display label, e.g. "Mar 2025"
	Date    time.Time
	Revenue decimal.Decimal
	Profit  decimal.Decimal
	Hires   int
}

// MonthStart truncates a time to the first of its month (UTC).
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// MonthLabel renders the display label for a month.
func MonthLabel(t time.Time) string {
	return t.Format("Jan 2006")
}

// =============================================================================
// MONTHLY AGGREGATOR
// =============================================================================

// MonthlyAggregator accumulates contributions into month buckets.
// Not safe for concurrent use; each report request owns its own instance.
type MonthlyAggregator struct {
	buckets map[time.Time]*MonthlyBucket
}

func NewMonthlyAggregator() *MonthlyAggregator {
	return &MonthlyAggregator{buckets: make(map[time.Time]*MonthlyBucket)}
}

func (a *MonthlyAggregator) bucket(at time.Time) *MonthlyBucket {
	key := MonthStart(at)
	b, ok := a.buckets[key]
	if !ok {
		b = &MonthlyBucket{Month: MonthLabel(key), Date: key}
		a.buckets[key] = b
	}
	return b
}

// Add accumulates a revenue/profit contribution into the month of at.
func (a *MonthlyAggregator) Add(at time.Time, revenue, profit decimal.Decimal) {
	b := a.bucket(at)
	b.Revenue = b.Revenue.Add(revenue)
	b.Profit = b.Profit.Add(profit)
}

// AddHire increments the hire count for the month of at.
func (a *MonthlyAggregator) AddHire(at time.Time) {
	a.bucket(at).Hires++
}

// Buckets returns the accumulated months sorted chronologically.
func (a *MonthlyAggregator) Buckets() []MonthlyBucket {
	out := make([]MonthlyBucket, 0, len(a.buckets))
	for _, b := range a.buckets {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// Totals sums revenue and profit across all buckets.
func (a *MonthlyAggregator) Totals() (revenue, profit decimal.Decimal) {
	for _, b := range a.buckets {
		revenue = revenue.Add(b.Revenue)
		profit = profit.Add(b.Profit)
	}
	return revenue, profit
}
