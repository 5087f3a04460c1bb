package validator

import (
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/tidyhome/tidyhome-api/internal/domain/catalog"
	"github.com/tidyhome/tidyhome-api/internal/pkg/widget"
)

// Validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()

	// Use JSON tag names in error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	registerCustomValidations()
}

// codeTags map a tag to the codes it accepts.
var codeTags = map[string][]string{
	"booking_type":       catalog.Strings(catalog.BookingTypes),
	"apartment_type":     catalog.Strings(catalog.ApartmentTypes),
	"office_size":        catalog.Strings(catalog.OfficeSizes),
	"cleaning_materials": catalog.Strings(catalog.MaterialsOptions),
	"frequency":          catalog.Strings(catalog.Frequencies),
	"payment_method":     catalog.Strings(catalog.PaymentMethods),
	"weekday":            widget.Weekdays,
}

func registerCustomValidations() {
	for tag, codes := range codeTags {
		codes := codes
		validate.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			v := fl.Field().String()
			for _, c := range codes {
				if v == c {
					return true
				}
			}
			return false
		})
	}

	validate.RegisterValidation("iso_date", func(fl validator.FieldLevel) bool {
		v := fl.Field().String()
		if v == "" {
			return true
		}
		_, err := time.Parse(widget.ISODate, v)
		return err == nil
	})

	validate.RegisterValidation("time_slot", func(fl validator.FieldLevel) bool {
		v := fl.Field().String()
		if v == "" {
			return true
		}
		_, err := time.Parse("15:04", v)
		return err == nil
	})
}

// Validate validates a struct and returns a map of field errors
func Validate(s interface{}) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string]string{"body": "Invalid request"}
	}

	errors := make(map[string]string)
	for _, err := range verrs {
		field := err.Field()
		if codes, ok := codeTags[err.Tag()]; ok {
			errors[field] = "Invalid value. Must be one of: " + strings.Join(codes, ", ")
			continue
		}

		switch err.Tag() {
		case "required":
			errors[field] = "This field is required"
		case "email":
			errors[field] = "Invalid email format"
		case "min":
			errors[field] = "Value is too short (min: " + err.Param() + ")"
		case "max":
			errors[field] = "Value is too long (max: " + err.Param() + ")"
		case "gte":
			errors[field] = "Value must be at least " + err.Param()
		case "lte":
			errors[field] = "Value must be at most " + err.Param()
		case "iso_date":
			errors[field] = "Date must be YYYY-MM-DD"
		case "time_slot":
			errors[field] = "Time must be HH:MM"
		default:
			errors[field] = "Invalid value"
		}
	}

	return errors
}

// ValidateVar validates a single variable
func ValidateVar(field interface{}, tag string) error {
	return validate.Var(field, tag)
}
