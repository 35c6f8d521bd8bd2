// Package labor implements the employee-hour attribution track.
// It converts approved time-log entries and per-assignment billing/salary
// terms into revenue, cost, and profit figures using the shared engine.
package labor

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/attribution-engine/engine"
)

// =============================================================================
// TIME LOG
// =============================================================================

// ProjectHours is one project line inside a time-log entry.
type ProjectHours struct {
	ProjectID string
	Hours     decimal.Decimal
}

// TimeLogEntry is a single day of logged work, produced by an external
// time-tracking subsystem and consumed read-only. Entries are immutable once
// approved; only approved entries are eligible for attribution.
type TimeLogEntry struct {
	ID         string
	EmployeeID string
	Date       time.Time
	Approved   bool
	Projects   []ProjectHours
}

// Validate rejects negative hours. Everything else is tolerated: entries
// referencing unknown projects are excluded from attribution later, not here.
func (e TimeLogEntry) Validate() error {
	for _, p := range e.Projects {
		if p.Hours.IsNegative() {
			return &engine.NegativeAmountError{Field: "hours[" + p.ProjectID + "]", Value: p.Hours.String()}
		}
	}
	return nil
}

// =============================================================================
// EMPLOYEE ASSIGNMENT
// =============================================================================

// EmployeeAssignment carries the billing and salary terms for one
// (employee, project) pair. Mutated externally when terms change and used
// as-is: there is no historical versioning, so a rate change retroactively
// affects recomputation of past months.
type EmployeeAssignment struct {
	ID         string
	EmployeeID string
	ProjectID  string
	ClientID   string

	ClientBilling  decimal.Decimal
	BillingType    engine.Periodicity
	ClientCurrency engine.Currency

	Salary         decimal.Decimal
	SalaryType     engine.Periodicity
	SalaryCurrency engine.Currency

	// WorkingHours is the daily hours divisor; zero means the engine default.
	WorkingHours decimal.Decimal
	WorkingDays  engine.WorkingDaysConfig
}

// Validate rejects negative monetary terms and hours.
func (a EmployeeAssignment) Validate() error {
	if a.ClientBilling.IsNegative() {
		return &engine.NegativeAmountError{Field: "client_billing", Value: a.ClientBilling.String()}
	}
	if a.Salary.IsNegative() {
		return &engine.NegativeAmountError{Field: "salary", Value: a.Salary.String()}
	}
	if a.WorkingHours.IsNegative() {
		return &engine.NegativeAmountError{Field: "working_hours", Value: a.WorkingHours.String()}
	}
	return nil
}

// Key returns the (employee, project) pair this assignment binds.
func (a EmployeeAssignment) Key() Pair {
	return Pair{EmployeeID: a.EmployeeID, ProjectID: a.ProjectID}
}

// Pair identifies an (employee, project) combination.
type Pair struct {
	EmployeeID string
	ProjectID  string
}

func (p Pair) String() string { return p.EmployeeID + "/" + p.ProjectID }
