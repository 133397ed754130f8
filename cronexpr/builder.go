package cronexpr

import (
	"fmt"
	"strconv"
	"strings"
)

// Convenience constructors for common schedules. All of them are thin
// sugar over Parse.

// EveryMinute fires at every minute.
func EveryMinute() *Expression { return MustParse("* * * * *") }

// Hourly fires at minute 0 of every hour.
func Hourly() *Expression { return MustParse("0 * * * *") }

// Daily fires at midnight every day.
func Daily() *Expression { return MustParse("0 0 * * *") }

// Weekly fires at midnight every Sunday.
func Weekly() *Expression { return MustParse("0 0 * * 0") }

// Monthly fires at midnight on the first of every month.
func Monthly() *Expression { return MustParse("0 0 1 * *") }

// DailyAt fires every day at the given hour and minute.
func DailyAt(hour, minute int) (*Expression, error) {
	return Parse(fmt.Sprintf("%d %d * * *", minute, hour))
}

// EveryNMinutes fires every n minutes, counted from minute 0.
func EveryNMinutes(n int) (*Expression, error) {
	if n <= 0 || n > 59 {
		return nil, &ParseError{Token: strconv.Itoa(n), Reason: "invalid minute interval", Min: 1, Max: 59}
	}
	return Parse(fmt.Sprintf("*/%d * * * *", n))
}

// EveryNHours fires at minute 0 every n hours, counted from hour 0.
func EveryNHours(n int) (*Expression, error) {
	if n <= 0 || n > 23 {
		return nil, &ParseError{Token: strconv.Itoa(n), Reason: "invalid hour interval", Min: 1, Max: 23}
	}
	return Parse(fmt.Sprintf("0 */%d * * *", n))
}

// OnWeekdays fires at midnight on the given weekdays (0-7, Sunday is
// both 0 and 7).
func OnWeekdays(weekdays ...int) (*Expression, error) {
	if len(weekdays) == 0 {
		return nil, &ParseError{Token: "", Reason: "no weekdays given"}
	}
	parts := make([]string, len(weekdays))
	for i, d := range weekdays {
		if d < 0 || d > 7 {
			return nil, &ParseError{Token: strconv.Itoa(d), Reason: "invalid weekday", Min: 0, Max: 7}
		}
		parts[i] = strconv.Itoa(d)
	}
	return Parse("0 0 * * " + strings.Join(parts, ","))
}
