package booking

import (
	"time"

	"github.com/tidyhome/tidyhome-api/internal/domain/catalog"
	"github.com/tidyhome/tidyhome-api/internal/domain/pricing"
)

// Step is one screen of the booking wizard.
type Step string

const (
	StepServiceDetails      Step = "service_details"
	StepScheduleAndLocation Step = "schedule_and_location"
	StepPaymentConfirmation Step = "payment_confirmation"
	StepConfirmed           Step = "confirmed"
)

var stepOrder = []Step{StepServiceDetails, StepScheduleAndLocation, StepPaymentConfirmation, StepConfirmed}

func (s Step) index() int {
	for i, st := range stepOrder {
		if st == s {
			return i
		}
	}
	return -1
}

// AddOns are priced extras. Ironing only counts for home bookings.
type AddOns struct {
	IroningHours int `json:"ironing_hours"`
}

// Address of the property to clean.
type Address struct {
	Street       string `json:"street,omitempty" validate:"max=200"`
	Building     string `json:"building,omitempty" validate:"max=100"`
	Flat         string `json:"flat,omitempty" validate:"max=50"`
	ParkingNotes string `json:"parking_notes,omitempty" validate:"max=500"`
}

// Contact of the customer.
type Contact struct {
	Name        string `json:"name,omitempty"`
	Phone       string `json:"phone,omitempty"`
	CountryCode string `json:"country_code,omitempty"`
	Email       string `json:"email,omitempty"`
}

// Draft is the in-progress booking. It is owned by exactly one Wizard.
type Draft struct {
	// service details
	BookingType       catalog.BookingType       `json:"booking_type,omitempty"`
	ApartmentType     catalog.ApartmentType     `json:"apartment_type,omitempty"`
	OfficeSize        catalog.OfficeSize        `json:"office_size,omitempty"`
	CleaningMaterials catalog.CleaningMaterials `json:"cleaning_materials,omitempty"`
	BookingHours      int                       `json:"booking_hours,omitempty"`
	AddOns            AddOns                    `json:"add_ons"`

	// schedule and location
	Date          string            `json:"date,omitempty"`
	Time          string            `json:"time,omitempty"`
	RepeatService bool              `json:"repeat_service"`
	Frequency     catalog.Frequency `json:"frequency,omitempty"`
	Weekdays      []string          `json:"weekdays,omitempty"`
	City          string            `json:"city,omitempty"`
	Address       Address           `json:"address"`
	Contact       Contact           `json:"contact"`
	Instructions  string            `json:"instructions,omitempty"`

	// payment
	Payment Payment `json:"payment"`
}

// SizeCode returns the size field matching the booking type.
func (d *Draft) SizeCode() string {
	switch d.BookingType {
	case catalog.BookingTypeHome:
		return string(d.ApartmentType)
	case catalog.BookingTypeOffice:
		return string(d.OfficeSize)
	}
	return ""
}

func (d *Draft) pricingInput() pricing.Input {
	return pricing.Input{
		BookingType:  d.BookingType,
		Hours:        d.BookingHours,
		IroningHours: d.AddOns.IroningHours,
	}
}

func (d Draft) clone() Draft {
	if d.Weekdays != nil {
		d.Weekdays = append([]string(nil), d.Weekdays...)
	}
	d.Payment = d.Payment.clone()
	return d
}

// Status of a confirmed booking.
type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

// ConfirmedBooking is the frozen result of a submitted draft.
// Card numbers are masked and security codes dropped before freezing.
type ConfirmedBooking struct {
	ID          string            `json:"id"`
	Draft       Draft             `json:"booking"`
	Breakdown   pricing.Breakdown `json:"price"`
	ConfirmedAt time.Time         `json:"confirmed_at"`
	Status      Status            `json:"status"`
	CancelledAt *time.Time        `json:"cancelled_at,omitempty"`
}
