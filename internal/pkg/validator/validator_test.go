package validator

import "testing"

type patch struct {
	BookingType *string  `json:"booking_type" validate:"omitempty,booking_type"`
	Hours       *int     `json:"booking_hours" validate:"omitempty,gte=1,lte=12"`
	Date        *string  `json:"date" validate:"omitempty,iso_date"`
	Time        *string  `json:"time" validate:"omitempty,time_slot"`
	Weekdays    []string `json:"weekdays" validate:"omitempty,dive,weekday"`
}

func ptr[T any](v T) *T { return &v }

func TestValidate_CustomTags(t *testing.T) {
	errs := Validate(patch{
		BookingType: ptr("castle"),
		Hours:       ptr(13),
		Date:        ptr("16/10/2026"),
		Time:        ptr("9am"),
		Weekdays:    []string{"mon", "funday"},
	})

	for _, field := range []string{"booking_type", "booking_hours", "date", "time"} {
		if _, ok := errs[field]; !ok {
			t.Fatalf("expected error for %s, got %v", field, errs)
		}
	}
	if errs["booking_hours"] != "Value must be at most 12" {
		t.Fatalf("expected lte message, got %q", errs["booking_hours"])
	}
	if _, ok := errs["weekdays[1]"]; !ok {
		t.Fatalf("expected error for weekdays[1], got %v", errs)
	}
}

func TestValidate_AcceptsKnownCodes(t *testing.T) {
	errs := Validate(patch{
		BookingType: ptr("office"),
		Hours:       ptr(3),
		Date:        ptr("2026-10-16"),
		Time:        ptr("09:30"),
		Weekdays:    []string{"sat", "sun"},
	})
	if errs != nil {
		t.Fatalf("expected no errors, got %v", errs)
	}
}

func TestValidateVar_Email(t *testing.T) {
	if err := ValidateVar("ops@tidyhome.example", "email"); err != nil {
		t.Fatalf("expected valid email, got %v", err)
	}
	if err := ValidateVar("not-an-email", "email"); err == nil {
		t.Fatal("expected invalid email")
	}
}
