// Package placement implements the candidate-placement attribution track.
// It converts hired-candidate compensation and client commission terms into
// placement profit and revenue, bucketed by joining month.
package placement

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/attribution-engine/engine"
)

// =============================================================================
// CLIENT COMMISSION CONFIGURATION
// =============================================================================

// CommissionType is how a recruiting client pays for a placement.
type CommissionType string

const (
	CommissionPercentage CommissionType = "percentage" // percent of candidate salary
	CommissionFixed      CommissionType = "fixed"      // flat fee per placement
)

// Client carries the commission terms governing placements for one client.
type Client struct {
	ID              string
	Name            string
	Currency        engine.Currency
	CommissionType  CommissionType
	CommissionValue decimal.Decimal
}

// Validate rejects negative commission values.
func (c Client) Validate() error {
	if c.CommissionValue.IsNegative() {
		return &engine.NegativeAmountError{Field: "commission_value", Value: c.CommissionValue.String()}
	}
	return nil
}

// =============================================================================
// CANDIDATE
// =============================================================================

// JobCategory distinguishes internal hires (billed at cost-plus) from
// external placements (billed by commission).
type JobCategory string

const (
	JobInternal JobCategory = "Internal"
	JobExternal JobCategory = "External"
)

// Candidate is a hired candidate. CTC and AccrualCTC arrive as free-form
// strings from data entry (e.g. "$5000 Hourly", "₹600000 LPA") and are
// parsed into typed Money values before any math happens.
type Candidate struct {
	ID              string
	Name            string
	ClientID        string
	CTC             string
	AccrualCTC      string
	JobTypeCategory JobCategory
	JoiningDate     time.Time
}
