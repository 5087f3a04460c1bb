// Package duration suggests a default number of hours for a property size.
package duration

import "github.com/tidyhome/tidyhome-api/internal/domain/catalog"

// FallbackHours is used for any size code the tables do not know.
const FallbackHours = 2

// DefaultHomeTable maps apartment types to suggested hours.
var DefaultHomeTable = map[string]int{
	string(catalog.ApartmentStudio): 2,
	string(catalog.Apartment1BR):    2,
	string(catalog.Apartment2BR):    3,
	string(catalog.Apartment3BR):    4,
	string(catalog.Apartment4BR):    5,
	string(catalog.Apartment5BR):    6,
}

// DefaultOfficeTable maps office area bands to suggested hours.
var DefaultOfficeTable = map[string]int{
	string(catalog.Office0To50):    1,
	string(catalog.Office50To100):  2,
	string(catalog.Office100To150): 3,
	string(catalog.Office150To200): 4,
	string(catalog.Office200To250): 5,
}

// Resolver looks up suggested durations. The result only seeds bookingHours.
type Resolver struct {
	home   map[string]int
	office map[string]int
}

// NewResolver copies the given tables; nil tables fall back to the defaults.
func NewResolver(home, office map[string]int) *Resolver {
	if home == nil {
		home = DefaultHomeTable
	}
	if office == nil {
		office = DefaultOfficeTable
	}
	return &Resolver{home: copyTable(home), office: copyTable(office)}
}

// Resolve never fails: unknown codes and types give FallbackHours.
func (r *Resolver) Resolve(bookingType catalog.BookingType, sizeCode string) int {
	var table map[string]int
	switch bookingType {
	case catalog.BookingTypeHome:
		table = r.home
	case catalog.BookingTypeOffice:
		table = r.office
	}

	if hours, ok := table[sizeCode]; ok && hours > 0 {
		return hours
	}
	return FallbackHours
}

func copyTable(t map[string]int) map[string]int {
	out := make(map[string]int, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}
