package engine

import "time"

// =============================================================================
// WINDOW - Report date range
// =============================================================================

// Window is the [Start, End] date range of a report request. The window only
// pre-filters which rows are considered; the filtering itself happens at the
// storage layer, and the calculators assume pre-filtered input.
type Window struct {
	Start time.Time
	End   time.Time
}

// NewWindow builds a validated window.
func NewWindow(start, end time.Time) (Window, error) {
	w := Window{Start: start, End: end}
	if err := w.Validate(); err != nil {
		return Window{}, err
	}
	return w, nil
}

func (w Window) Validate() error {
	if w.End.Before(w.Start) {
		return ErrInvalidWindow
	}
	return nil
}

// Contains reports whether t falls within [Start, End], date-inclusive.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// Months returns the first-of-month dates covered by the window, in order.
func (w Window) Months() []time.Time {
	var months []time.Time
	current := MonthStart(w.Start)
	end := MonthStart(w.End)
	for !current.After(end) {
		months = append(months, current)
		current = current.AddDate(0, 1, 0)
	}
	return months
}
