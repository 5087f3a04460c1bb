// Package catalog holds the codes a booking can be built from.
package catalog

// BookingType selects which property-size field and which add-ons apply.
type BookingType string

const (
	BookingTypeHome   BookingType = "home"
	BookingTypeOffice BookingType = "office"
)

// ApartmentType is the size bracket of a home booking.
type ApartmentType string

const (
	ApartmentStudio ApartmentType = "studio"
	Apartment1BR    ApartmentType = "1br"
	Apartment2BR    ApartmentType = "2br"
	Apartment3BR    ApartmentType = "3br"
	Apartment4BR    ApartmentType = "4br"
	Apartment5BR    ApartmentType = "5br"
)

// OfficeSize is the floor-area band (square metres) of an office booking.
type OfficeSize string

const (
	Office0To50    OfficeSize = "0-50"
	Office50To100  OfficeSize = "50-100"
	Office100To150 OfficeSize = "100-150"
	Office150To200 OfficeSize = "150-200"
	Office200To250 OfficeSize = "200-250"
)

// CleaningMaterials tells whether the cleaner brings supplies.
type CleaningMaterials string

const (
	MaterialsNeeded    CleaningMaterials = "needed"
	MaterialsNotNeeded CleaningMaterials = "not-needed"
)

// Frequency of a repeated service.
type Frequency string

const (
	FrequencyWeekly   Frequency = "weekly"
	FrequencyBiWeekly Frequency = "bi-weekly"
	FrequencyMonthly  Frequency = "monthly"
)

// PaymentMethod keys the payment variant of a draft.
type PaymentMethod string

const (
	PaymentSavedCards PaymentMethod = "saved-cards"
	PaymentNewCard    PaymentMethod = "new-card"
	PaymentApplePay   PaymentMethod = "apple-pay"
	PaymentCash       PaymentMethod = "cash"
)

var (
	BookingTypes     = []BookingType{BookingTypeHome, BookingTypeOffice}
	ApartmentTypes   = []ApartmentType{ApartmentStudio, Apartment1BR, Apartment2BR, Apartment3BR, Apartment4BR, Apartment5BR}
	OfficeSizes      = []OfficeSize{Office0To50, Office50To100, Office100To150, Office150To200, Office200To250}
	MaterialsOptions = []CleaningMaterials{MaterialsNeeded, MaterialsNotNeeded}
	Frequencies      = []Frequency{FrequencyWeekly, FrequencyBiWeekly, FrequencyMonthly}
	PaymentMethods   = []PaymentMethod{PaymentSavedCards, PaymentNewCard, PaymentApplePay, PaymentCash}
)

// Valid reports whether v is one of options.
func Valid[T ~string](v T, options []T) bool {
	for _, o := range options {
		if o == v {
			return true
		}
	}
	return false
}

// Strings converts a code list for error messages and validator tags.
func Strings[T ~string](options []T) []string {
	out := make([]string, len(options))
	for i, o := range options {
		out[i] = string(o)
	}
	return out
}
