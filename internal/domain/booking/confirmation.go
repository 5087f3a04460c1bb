package booking

import (
	"time"

	"github.com/tidyhome/tidyhome-api/internal/pkg/widget"
)

// Cancel moves a confirmed booking to cancelled. It refuses a second call.
func (b *ConfirmedBooking) Cancel(now time.Time) error {
	if b.Status == StatusCancelled {
		return ErrAlreadyCancelled
	}

	at := now.UTC()
	b.Status = StatusCancelled
	b.CancelledAt = &at
	return nil
}

// ModifyState opens a new draft from the booking's service and schedule
// fields. Payment has to be entered again.
func ModifyState(b *ConfirmedBooking) State {
	d := b.Draft.clone()
	d.Payment = Payment{}

	return State{
		Step:        StepServiceDetails,
		Draft:       d,
		HoursEdited: true,
	}
}

// RecurState is ModifyState with the repeat options switched on.
func RecurState(b *ConfirmedBooking, req RecurRequest) State {
	st := ModifyState(b)
	st.Draft.RepeatService = true
	st.Draft.Frequency = req.Frequency
	st.Draft.Weekdays = widget.NormalizeWeekdays(req.Weekdays)
	return st
}
