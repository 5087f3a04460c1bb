package widget

import "time"

// ISODate is the layout the date picker emits.
const ISODate = "2006-01-02"

// DatePicker is the controlled state of the calendar popover.
type DatePicker struct {
	Open  bool
	Value string
}

// IsDisabled reports days before today, compared at start of day in now's location.
func IsDisabled(day, now time.Time) bool {
	return startOfDay(day, now.Location()).Before(startOfDay(now, now.Location()))
}

// Select picks day. A disabled day is a no-op and returns false; a valid one
// closes the picker and stores the ISO date.
func (p *DatePicker) Select(day, now time.Time) bool {
	if IsDisabled(day, now) {
		return false
	}
	p.Value = day.Format(ISODate)
	p.Open = false
	return true
}

// ParseISODate parses a date picker value in loc.
func ParseISODate(value string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(ISODate, value, loc)
}

func startOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
