package widget

// Weekdays is the fixed token domain of the weekday selector, in display order.
var Weekdays = []string{"mon", "tue", "wed", "thu", "fri", "sat", "sun"}

// IsWeekday reports whether token belongs to the selector domain.
func IsWeekday(token string) bool {
	for _, d := range Weekdays {
		if d == token {
			return true
		}
	}
	return false
}

// ToggleWeekday adds day when absent and removes it when present.
// Unknown tokens leave the selection unchanged.
func ToggleWeekday(selected []string, day string) []string {
	if !IsWeekday(day) {
		return NormalizeWeekdays(selected)
	}

	set := weekdaySet(selected)
	if set[day] {
		delete(set, day)
	} else {
		set[day] = true
	}
	return orderedWeekdays(set)
}

// NormalizeWeekdays drops unknown tokens and duplicates and sorts into week order.
func NormalizeWeekdays(selected []string) []string {
	return orderedWeekdays(weekdaySet(selected))
}

func weekdaySet(selected []string) map[string]bool {
	set := make(map[string]bool, len(selected))
	for _, d := range selected {
		if IsWeekday(d) {
			set[d] = true
		}
	}
	return set
}

func orderedWeekdays(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for _, d := range Weekdays {
		if set[d] {
			out = append(out, d)
		}
	}
	return out
}
