package engine_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/attribution-engine/engine"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

// =============================================================================
// MONTHLY AGGREGATOR
// =============================================================================

func TestMonthlyAggregator_LazyBuckets(t *testing.T) {
	// GIVEN: Contributions in two of three possible months
	// WHEN: Reading back buckets
	// THEN: Only touched months exist; untouched months are never created
	agg := engine.NewMonthlyAggregator()
	agg.Add(day(2025, time.January, 15), dec("100"), dec("40"))
	agg.Add(day(2025, time.March, 3), dec("200"), dec("90"))

	buckets := agg.Buckets()
	require.Len(t, buckets, 2)
	assert.Equal(t, "Jan 2025", buckets[0].Month)
	assert.Equal(t, "Mar 2025", buckets[1].Month)
}

func TestMonthlyAggregator_AccumulatesWithinMonth(t *testing.T) {
	agg := engine.NewMonthlyAggregator()
	agg.Add(day(2025, time.January, 2), dec("100"), dec("40"))
	agg.Add(day(2025, time.January, 28), dec("50"), dec("10"))

	buckets := agg.Buckets()
	require.Len(t, buckets, 1)
	assert.True(t, buckets[0].Revenue.Equal(dec("150")), "got %s", buckets[0].Revenue)
	assert.True(t, buckets[0].Profit.Equal(dec("50")), "got %s", buckets[0].Profit)
}

func TestMonthlyAggregator_ChronologicalAcrossYears(t *testing.T) {
	// "Apr 2025" sorts before "Dec 2024" lexically. Ordering must follow
	// the underlying dates, not the labels.
	agg := engine.NewMonthlyAggregator()
	agg.Add(day(2025, time.April, 1), dec("1"), dec("1"))
	agg.Add(day(2024, time.December, 1), dec("1"), dec("1"))
	agg.Add(day(2025, time.January, 1), dec("1"), dec("1"))

	buckets := agg.Buckets()
	require.Len(t, buckets, 3)
	assert.Equal(t, "Dec 2024", buckets[0].Month)
	assert.Equal(t, "Jan 2025", buckets[1].Month)
	assert.Equal(t, "Apr 2025", buckets[2].Month)
}

func TestMonthlyAggregator_HiresIndependentOfMoney(t *testing.T) {
	agg := engine.NewMonthlyAggregator()
	agg.AddHire(day(2025, time.February, 9))
	agg.AddHire(day(2025, time.February, 20))
	agg.Add(day(2025, time.February, 20), dec("300000"), dec("300000"))

	buckets := agg.Buckets()
	require.Len(t, buckets, 1)
	assert.Equal(t, 2, buckets[0].Hires)
	assert.True(t, buckets[0].Revenue.Equal(dec("300000")))
}

func TestMonthlyAggregator_TotalsMatchBucketSum(t *testing.T) {
	agg := engine.NewMonthlyAggregator()
	agg.Add(day(2025, time.January, 1), dec("100.25"), dec("30.10"))
	agg.Add(day(2025, time.February, 1), dec("200.50"), dec("60.20"))
	agg.Add(day(2025, time.February, 15), dec("9.25"), dec("-5"))

	revenue, profit := agg.Totals()

	var sumR, sumP decimal.Decimal
	for _, b := range agg.Buckets() {
		sumR = sumR.Add(b.Revenue)
		sumP = sumP.Add(b.Profit)
	}
	assert.True(t, revenue.Equal(sumR))
	assert.True(t, profit.Equal(sumP))
	assert.True(t, profit.Equal(dec("85.30")), "got %s", profit)
}

// =============================================================================
// WINDOW
// =============================================================================

func TestWindow_InvertedRangeRejected(t *testing.T) {
	_, err := engine.NewWindow(day(2025, time.June, 1), day(2025, time.January, 1))
	require.Error(t, err)
	assert.ErrorIs(t, err, engine.ErrInvalidWindow)
	assert.True(t, engine.IsClientError(err))
}

func TestWindow_SingleDayIsValid(t *testing.T) {
	w, err := engine.NewWindow(day(2025, time.June, 1), day(2025, time.June, 1))
	require.NoError(t, err)
	assert.True(t, w.Contains(day(2025, time.June, 1)))
	assert.False(t, w.Contains(day(2025, time.June, 2)))
}

func TestWindow_MonthsSpansYearBoundary(t *testing.T) {
	w, err := engine.NewWindow(day(2024, time.November, 15), day(2025, time.February, 10))
	require.NoError(t, err)

	months := w.Months()
	require.Len(t, months, 4)
	assert.Equal(t, "Nov 2024", engine.MonthLabel(months[0]))
	assert.Equal(t, "Feb 2025", engine.MonthLabel(months[3]))
}
