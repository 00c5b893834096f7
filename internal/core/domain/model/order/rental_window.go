package order

import (
	"errors"
	"time"

	"rental/internal/pkg/errs"
)

// ErrInconsistentRentalWindow is returned when a rental window's end date is
// not strictly after its start date. This is a data-integrity defect, not a
// business outcome, so it surfaces as a hard failure.
var ErrInconsistentRentalWindow = errors.New("rental window end date must be after start date")

// RentalWindow is the [startDate, endDate] period a rental order covers.
// The day count is always derived from the dates, never supplied separately,
// so it cannot disagree with them. End-date comparisons used for delivery
// scheduling work at day granularity; time of day is ignored.
//
// RentalWindow is an immutable value object; the zero value is invalid.
type RentalWindow struct {
	startDate time.Time
	endDate   time.Time
}

// NewRentalWindow creates a RentalWindow, requiring startDate < endDate.
func NewRentalWindow(startDate, endDate time.Time) (RentalWindow, error) {
	if startDate.IsZero() {
		return RentalWindow{}, errs.NewValueIsRequiredError("startDate")
	}
	if endDate.IsZero() {
		return RentalWindow{}, errs.NewValueIsRequiredError("endDate")
	}
	if !startDate.Before(endDate) {
		return RentalWindow{}, ErrInconsistentRentalWindow
	}
	return RentalWindow{startDate: startDate, endDate: endDate}, nil
}

// StartDate returns the first day of the rental.
func (w RentalWindow) StartDate() time.Time {
	return w.startDate
}

// EndDate returns the day the rental ends and the items are due back.
func (w RentalWindow) EndDate() time.Time {
	return w.endDate
}

// Days returns the billable rental day count: the window length in days
// rounded up, with a minimum of one.
func (w RentalWindow) Days() int {
	d := w.endDate.Sub(w.startDate)
	days := int(d / (24 * time.Hour))
	if d%(24*time.Hour) > 0 {
		days++
	}
	if days < 1 {
		days = 1
	}
	return days
}

// EndsOnOrBefore reports whether the rental ends on the given day or earlier,
// at day granularity.
func (w RentalWindow) EndsOnOrBefore(day time.Time) bool {
	return !dateOf(w.endDate).After(dateOf(day))
}

// EndsBefore reports whether the rental ended strictly before the given day,
// at day granularity. Used to flag overdue returns.
func (w RentalWindow) EndsBefore(day time.Time) bool {
	return dateOf(w.endDate).Before(dateOf(day))
}

// Validate checks that the window was built through NewRentalWindow.
func (w RentalWindow) Validate() error {
	if w.startDate.IsZero() || w.endDate.IsZero() {
		return ErrInconsistentRentalWindow
	}
	return nil
}

// dateOf truncates a timestamp to its calendar day in UTC.
func dateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
