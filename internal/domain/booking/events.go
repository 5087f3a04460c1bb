package booking

import (
	"context"
	"time"
)

// QueueBookingConfirmed receives one event per submitted booking.
const QueueBookingConfirmed = "booking.confirmed"

// EventPublisher sends events to a broker.
type EventPublisher interface {
	PublishJSON(ctx context.Context, queue string, v any) error
}

// BookingConfirmedEvent is published after submission.
type BookingConfirmedEvent struct {
	BookingID   string    `json:"booking_id"`
	BookingType string    `json:"booking_type"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	City        string    `json:"city"`
	Hours       int       `json:"hours"`
	Total       string    `json:"total"`
	Method      string    `json:"payment_method"`
	ConfirmedAt time.Time `json:"confirmed_at"`
}

func newBookingConfirmedEvent(b *ConfirmedBooking) BookingConfirmedEvent {
	return BookingConfirmedEvent{
		BookingID:   b.ID,
		BookingType: string(b.Draft.BookingType),
		Date:        b.Draft.Date,
		Time:        b.Draft.Time,
		City:        b.Draft.City,
		Hours:       b.Draft.BookingHours,
		Total:       b.Breakdown.Total.StringFixed(2),
		Method:      string(b.Draft.Payment.Method()),
		ConfirmedAt: b.ConfirmedAt,
	}
}
