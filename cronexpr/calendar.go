package cronexpr

import "time"

// daysInMonth returns the number of days in the given month.
func daysInMonth(year, month int) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// nearestWeekday resolves an "nW" day-of-month field: the weekday
// (Mon-Fri) closest to day n in the given month, never crossing a month
// boundary. A Saturday resolves to the preceding Friday, a Sunday to the
// following Monday; at the month's edges the shift reverses direction to
// stay inside the month.
func nearestWeekday(year, month, day int) int {
	last := daysInMonth(year, month)
	if day > last {
		day = last
	}

	switch time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC).Weekday() {
	case time.Saturday:
		if day == 1 {
			return 3 // Monday the 3rd
		}
		return day - 1
	case time.Sunday:
		if day == last {
			return day - 2 // Friday before
		}
		return day + 1
	default:
		return day
	}
}
