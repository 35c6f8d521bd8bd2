/*
hours.go - Indexed hours aggregation

PURPOSE:
  Sums hours logged by a given employee against a given project. The inputs
  arrive as day-level entries each carrying multiple project lines, so a
  naive implementation re-scans the whole log collection once per employee.
  HoursIndex pre-indexes by (employee, project) instead: one pass to build,
  O(1) per lookup.

ELIGIBILITY:
  Only approved entries contribute. Unapproved entries are skipped entirely,
  not error-ed - approval state is owned by the upstream time-tracking
  subsystem.
*/
package labor

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// HOURS INDEX
// =============================================================================

// HoursIndex is a prebuilt (employee, project) -> total hours lookup.
type HoursIndex struct {
	hours map[Pair]decimal.Decimal
}

// NewHoursIndex builds the index from time-log entries in a single pass.
// Unapproved entries and non-positive hour lines contribute nothing.
func NewHoursIndex(logs []TimeLogEntry) *HoursIndex {
	idx := &HoursIndex{hours: make(map[Pair]decimal.Decimal)}
	for _, entry := range logs {
		if !entry.Approved {
			continue
		}
		for _, p := range entry.Projects {
			if !p.Hours.IsPositive() {
				continue
			}
			key := Pair{EmployeeID: entry.EmployeeID, ProjectID: p.ProjectID}
			idx.hours[key] = idx.hours[key].Add(p.Hours)
		}
	}
	return idx
}

// HoursFor returns the total approved hours for an (employee, project) pair.
// Pairs with no logged hours return zero.
func (idx *HoursIndex) HoursFor(employeeID, projectID string) decimal.Decimal {
	return idx.hours[Pair{EmployeeID: employeeID, ProjectID: projectID}]
}

// Pairs returns every (employee, project) combination with logged hours.
// Report assembly uses this to detect hours with no matching assignment.
func (idx *HoursIndex) Pairs() []Pair {
	pairs := make([]Pair, 0, len(idx.hours))
	for p := range idx.hours {
		pairs = append(pairs, p)
	}
	return pairs
}

// TotalHours sums all indexed hours.
func (idx *HoursIndex) TotalHours() decimal.Decimal {
	var total decimal.Decimal
	for _, h := range idx.hours {
		total = total.Add(h)
	}
	return total
}
