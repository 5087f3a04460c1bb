package booking

import (
	"github.com/tidyhome/tidyhome-api/internal/domain/catalog"
	"github.com/tidyhome/tidyhome-api/internal/domain/pricing"
)

// ServiceDetailsPatch updates the first step. Nil fields are left as they are.
type ServiceDetailsPatch struct {
	BookingType       *catalog.BookingType       `json:"booking_type" validate:"omitempty,booking_type"`
	ApartmentType     *catalog.ApartmentType     `json:"apartment_type" validate:"omitempty,apartment_type"`
	OfficeSize        *catalog.OfficeSize        `json:"office_size" validate:"omitempty,office_size"`
	CleaningMaterials *catalog.CleaningMaterials `json:"cleaning_materials" validate:"omitempty,cleaning_materials"`
	BookingHours      *int                       `json:"booking_hours" validate:"omitempty,gte=1,lte=12"`
	IroningHours      *int                       `json:"ironing_hours" validate:"omitempty,gte=0,lte=12"`
}

// ContactPatch updates the contact block of the schedule step.
type ContactPatch struct {
	Name        *string `json:"name" validate:"omitempty,max=100"`
	Phone       *string `json:"phone" validate:"omitempty,max=32"`
	CountryCode *string `json:"country_code" validate:"omitempty,max=8"`
	Email       *string `json:"email" validate:"omitempty,max=254"`
}

// SchedulePatch updates the schedule and location step.
// Weekdays replaces the whole selection; ToggleWeekday flips a single day.
// ToggleRepeat flips the repeat switch after RepeatService is applied.
type SchedulePatch struct {
	Date          *string            `json:"date" validate:"omitempty,iso_date"`
	Time          *string            `json:"time" validate:"omitempty,time_slot"`
	RepeatService *bool              `json:"repeat_service"`
	ToggleRepeat  bool               `json:"toggle_repeat"`
	Frequency     *catalog.Frequency `json:"frequency" validate:"omitempty,frequency"`
	Weekdays      []string           `json:"weekdays" validate:"omitempty,dive,weekday"`
	ToggleWeekday *string            `json:"toggle_weekday" validate:"omitempty,weekday"`
	City          *string            `json:"city" validate:"omitempty,max=100"`
	Address       *Address           `json:"address"`
	Contact       *ContactPatch      `json:"contact"`
	Instructions  *string            `json:"instructions" validate:"omitempty,max=1000"`
}

// PaymentPatch updates the payment step. Fields that do not belong to the
// active method are ignored; changing Method starts a fresh variant.
// CardKey appends one keystroke to the new-card number.
type PaymentPatch struct {
	Method      *catalog.PaymentMethod `json:"payment_method" validate:"omitempty,payment_method"`
	SavedCardID *string                `json:"card_id" validate:"omitempty,max=64"`
	CVC         *string                `json:"cvc" validate:"omitempty,max=4"`
	CardNumber  *string                `json:"card_number" validate:"omitempty,max=32"`
	CardKey     *string                `json:"card_key" validate:"omitempty,max=32"`
	CardHolder  *string                `json:"card_holder" validate:"omitempty,max=100"`
	Expiry      *string                `json:"expiry" validate:"omitempty,max=5"`
	SaveCard    *bool                  `json:"save_card"`
	Billing     *BillingInfo           `json:"billing"`
}

// RecurRequest opens a repeating booking from a confirmed one.
type RecurRequest struct {
	Frequency catalog.Frequency `json:"frequency" validate:"required,frequency"`
	Weekdays  []string          `json:"weekdays" validate:"omitempty,dive,weekday"`
}

// StepperView reports which stepper buttons are enabled.
type StepperView struct {
	Value        int  `json:"value"`
	Min          int  `json:"min"`
	Max          int  `json:"max"`
	CanIncrement bool `json:"can_increment"`
	CanDecrement bool `json:"can_decrement"`
}

// View is what the UI renders after every command.
type View struct {
	SessionID   string            `json:"session_id"`
	Step        Step              `json:"step"`
	Draft       Draft             `json:"draft"`
	Breakdown   pricing.Breakdown `json:"price"`
	ShowPrice   bool              `json:"show_price"`
	Errors      FieldErrors       `json:"errors,omitempty"`
	CanGoBack   bool              `json:"can_go_back"`
	CanGoNext   bool              `json:"can_go_next"`
	CanSubmit   bool              `json:"can_submit"`
	Hours       StepperView       `json:"hours"`
	Ironing     StepperView       `json:"ironing"`
	CardNetwork string            `json:"card_network,omitempty"`
}

// ConfirmationResponse is the public shape of a confirmed booking.
type ConfirmationResponse struct {
	ConfirmedBooking
	CanCancel bool `json:"can_cancel"`
}

// ToResponse wraps the booking with the actions still available on it.
func (b *ConfirmedBooking) ToResponse() ConfirmationResponse {
	return ConfirmationResponse{
		ConfirmedBooking: *b,
		CanCancel:        b.Status == StatusConfirmed,
	}
}
