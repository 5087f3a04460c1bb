package booking

import (
	"strconv"
	"strings"
	"time"

	"github.com/tidyhome/tidyhome-api/internal/domain/catalog"
	"github.com/tidyhome/tidyhome-api/internal/pkg/validator"
	"github.com/tidyhome/tidyhome-api/internal/pkg/widget"
)

// TimeSlotLayout is the format of Draft.Time.
const TimeSlotLayout = "15:04"

// SavedCardLookup answers whether a saved card id belongs to the customer's listing.
type SavedCardLookup interface {
	HasSavedCard(id string) bool
}

// ValidateServiceDetails checks the fields owned by the first step.
func ValidateServiceDetails(d *Draft) FieldErrors {
	errs := FieldErrors{}

	switch d.BookingType {
	case "":
		errs.add("booking_type", KindMissingRequired, "Choose home or office")
		errs.add("size", KindMissingRequired, "Choose the property size")
	case catalog.BookingTypeHome:
		if d.ApartmentType == "" {
			errs.add("apartment_type", KindMissingRequired, "Choose the apartment type")
		} else if !catalog.Valid(d.ApartmentType, catalog.ApartmentTypes) {
			errs.add("apartment_type", KindOutOfRange, "Unknown apartment type")
		}
	case catalog.BookingTypeOffice:
		if d.OfficeSize == "" {
			errs.add("office_size", KindMissingRequired, "Choose the office size")
		} else if !catalog.Valid(d.OfficeSize, catalog.OfficeSizes) {
			errs.add("office_size", KindOutOfRange, "Unknown office size")
		}
	default:
		errs.add("booking_type", KindOutOfRange, "Unknown booking type")
		errs.add("size", KindMissingRequired, "Choose the property size")
	}

	if d.BookingHours < 1 {
		errs.add("booking_hours", KindMissingRequired, "Choose at least one hour")
	}

	return errs
}

// ValidateSchedule checks the fields owned by the schedule and location step.
func ValidateSchedule(d *Draft, now time.Time) FieldErrors {
	errs := FieldErrors{}

	if d.Date == "" {
		errs.add("date", KindMissingRequired, "Choose a date")
	} else if day, err := widget.ParseISODate(d.Date, now.Location()); err != nil {
		errs.add("date", KindFormatMismatch, "Date must be YYYY-MM-DD")
	} else if widget.IsDisabled(day, now) {
		errs.add("date", KindOutOfRange, "Date cannot be in the past")
	}

	if d.Time == "" {
		errs.add("time", KindMissingRequired, "Choose a time slot")
	} else if _, err := time.Parse(TimeSlotLayout, d.Time); err != nil {
		errs.add("time", KindFormatMismatch, "Time must be HH:MM")
	}

	if strings.TrimSpace(d.City) == "" {
		errs.add("city", KindMissingRequired, "Choose a city")
	}

	if d.Contact.Phone == "" {
		errs.add("contact.phone", KindMissingRequired, "Enter a phone number")
	}

	if d.Contact.Email != "" && validator.ValidateVar(d.Contact.Email, "email") != nil {
		errs.add("contact.email", KindFormatMismatch, "Invalid email format")
	}

	if d.RepeatService {
		if d.Frequency == "" {
			errs.add("frequency", KindMissingRequired, "Choose how often to repeat")
		} else if !catalog.Valid(d.Frequency, catalog.Frequencies) {
			errs.add("frequency", KindOutOfRange, "Unknown frequency")
		}
	}

	return errs
}

// ValidatePayment checks the active payment variant. A nil lookup accepts any saved card id.
func ValidatePayment(d *Draft, cards SavedCardLookup, now time.Time) FieldErrors {
	errs := FieldErrors{}

	switch p := d.Payment.Details.(type) {
	case nil:
		errs.add("payment_method", KindMissingRequired, "Choose a payment method")
	case SavedCardPayment:
		if p.CardID == "" {
			errs.add("payment.card_id", KindMissingRequired, "Choose a saved card")
		} else if cards != nil && !cards.HasSavedCard(p.CardID) {
			errs.add("payment.card_id", KindOutOfRange, "Unknown saved card")
		}
		validateCVC(errs, p.CVC)
	case NewCardPayment:
		switch {
		case p.Number == "":
			errs.add("payment.card_number", KindMissingRequired, "Enter the card number")
		case !widget.CardDigitCountValid(p.Number):
			errs.add("payment.card_number", KindFormatMismatch, "Card number must have 13 to 16 digits")
		}
		if strings.TrimSpace(p.Holder) == "" {
			errs.add("payment.card_holder", KindMissingRequired, "Enter the card holder name")
		}
		validateExpiry(errs, p.Expiry, now)
		validateCVC(errs, p.CVC)
	case ApplePayPayment, CashPayment:
	}

	return errs
}

func validateCVC(errs FieldErrors, cvc string) {
	switch {
	case cvc == "":
		errs.add("payment.cvc", KindMissingRequired, "Enter the CVC")
	case len(cvc) < 3 || len(cvc) > 4 || widget.Digits(cvc) != cvc:
		errs.add("payment.cvc", KindFormatMismatch, "CVC must have 3 or 4 digits")
	}
}

// validateExpiry accepts MM/YY cards valid through the end of that month.
func validateExpiry(errs FieldErrors, expiry string, now time.Time) {
	if expiry == "" {
		errs.add("payment.expiry", KindMissingRequired, "Enter the expiry date")
		return
	}

	month, year, ok := parseExpiry(expiry)
	if !ok {
		errs.add("payment.expiry", KindFormatMismatch, "Expiry must be MM/YY")
		return
	}

	firstOfNext := time.Date(2000+year, time.Month(month)+1, 1, 0, 0, 0, 0, now.Location())
	if !now.Before(firstOfNext) {
		errs.add("payment.expiry", KindFormatMismatch, "Card has expired")
	}
}

func parseExpiry(expiry string) (month, year int, ok bool) {
	mm, yy, found := strings.Cut(expiry, "/")
	if !found || len(mm) != 2 || len(yy) != 2 {
		return 0, 0, false
	}

	month, err := strconv.Atoi(mm)
	if err != nil || month < 1 || month > 12 {
		return 0, 0, false
	}
	year, err = strconv.Atoi(yy)
	if err != nil || year < 0 {
		return 0, 0, false
	}
	return month, year, true
}
