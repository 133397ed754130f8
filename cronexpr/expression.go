package cronexpr

import (
	"strconv"
	"strings"
	"time"
)

// Unit bounds, per field position.
const (
	minSecond, maxSecond = 0, 59
	minMinute, maxMinute = 0, 59
	minHour, maxHour     = 0, 23
	minDom, maxDom       = 1, 31
	minMonth, maxMonth   = 1, 12
	minDow, maxDow       = 0, 7 // 0 and 7 both mean Sunday
	minYear, maxYear     = 1970, 3000
)

// maxSearchMinutes bounds NextAfter's forward search to roughly one year.
const maxSearchMinutes = 366 * 24 * 60

// Expression is a parsed cron expression. Seconds and Year are nil when
// the source text omitted them. An Expression is immutable once parsed.
type Expression struct {
	Seconds    *Field
	Minutes    Field
	Hours      Field
	DayOfMonth Field
	Month      Field
	DayOfWeek  Field
	Year       *Field
}

// Parse parses a cron expression with 5, 6, or 7 whitespace-separated
// fields. 5 fields are minutes through day-of-week; 6 fields prefix
// seconds; 7 fields also append a year.
func Parse(text string) (*Expression, error) {
	tokens := strings.Fields(text)

	var (
		expr Expression
		err  error
	)
	switch len(tokens) {
	case 5:
		// minutes hours day month weekday
		err = expr.parseFrom(tokens, false, false)
	case 6:
		// seconds minutes hours day month weekday
		err = expr.parseFrom(tokens, true, false)
	case 7:
		// seconds minutes hours day month weekday year
		err = expr.parseFrom(tokens, true, true)
	default:
		return nil, &ParseError{
			Token:  text,
			Reason: "expected 5, 6, or 7 fields, got " + strconv.Itoa(len(tokens)),
		}
	}
	if err != nil {
		return nil, err
	}
	return &expr, nil
}

// MustParse is Parse that panics on error, for expressions known at
// compile time.
func MustParse(text string) *Expression {
	expr, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return expr
}

func (e *Expression) parseFrom(tokens []string, withSeconds, withYear bool) error {
	i := 0
	if withSeconds {
		sec, err := ParseField(tokens[i], minSecond, maxSecond)
		if err != nil {
			return err
		}
		e.Seconds = &sec
		i++
	}

	var err error
	if e.Minutes, err = ParseField(tokens[i], minMinute, maxMinute); err != nil {
		return err
	}
	if e.Hours, err = ParseField(tokens[i+1], minHour, maxHour); err != nil {
		return err
	}
	if e.DayOfMonth, err = ParseField(tokens[i+2], minDom, maxDom); err != nil {
		return err
	}
	if e.Month, err = ParseField(tokens[i+3], minMonth, maxMonth); err != nil {
		return err
	}
	if e.DayOfWeek, err = ParseField(tokens[i+4], minDow, maxDow); err != nil {
		return err
	}

	if withYear {
		year, yerr := ParseField(tokens[i+5], minYear, maxYear)
		if yerr != nil {
			return yerr
		}
		e.Year = &year
	}
	return nil
}

// Validate re-checks every field against its unit's bounds, including
// the calendar forms that ParseField cannot bound-check (it does not
// know which unit a token belongs to).
func (e *Expression) Validate() error {
	if e.Seconds != nil {
		if err := e.Seconds.validate(minSecond, maxSecond, "seconds"); err != nil {
			return err
		}
	}
	if err := e.Minutes.validate(minMinute, maxMinute, "minutes"); err != nil {
		return err
	}
	if err := e.Hours.validate(minHour, maxHour, "hours"); err != nil {
		return err
	}
	if err := e.DayOfMonth.validate(minDom, maxDom, "day-of-month"); err != nil {
		return err
	}
	if err := e.Month.validate(minMonth, maxMonth, "month"); err != nil {
		return err
	}
	if err := e.DayOfWeek.validate(minDow, maxDow, "day-of-week"); err != nil {
		return err
	}
	if e.Year != nil {
		if err := e.Year.validate(minYear, maxYear, "year"); err != nil {
			return err
		}
	}
	return nil
}

// Matches reports whether the expression fires at the given instant.
// The calendar day forms (L, nW, nL, n#m) are resolved against the
// instant's year and month.
func (e *Expression) Matches(t time.Time) bool {
	if e.Seconds != nil && !e.Seconds.Matches(t.Second()) {
		return false
	}
	if !e.Minutes.Matches(t.Minute()) {
		return false
	}
	if !e.Hours.Matches(t.Hour()) {
		return false
	}
	if !e.matchesDayOfMonth(t) {
		return false
	}
	if !e.Month.Matches(int(t.Month())) {
		return false
	}
	if !e.matchesDayOfWeek(t) {
		return false
	}
	if e.Year != nil && !e.Year.Matches(t.Year()) {
		return false
	}
	return true
}

func (e *Expression) matchesDayOfMonth(t time.Time) bool {
	switch e.DayOfMonth.Kind {
	case Last:
		return t.Day() == daysInMonth(t.Year(), int(t.Month()))
	case NearestWeekday:
		return t.Day() == nearestWeekday(t.Year(), int(t.Month()), e.DayOfMonth.Value)
	default:
		return e.DayOfMonth.Matches(t.Day())
	}
}

func (e *Expression) matchesDayOfWeek(t time.Time) bool {
	wd := int(t.Weekday()) // 0 = Sunday
	switch e.DayOfWeek.Kind {
	case LastWeekday:
		return wd == normalizeWeekday(e.DayOfWeek.Value) &&
			t.Day() > daysInMonth(t.Year(), int(t.Month()))-7
	case NthWeekday:
		return wd == normalizeWeekday(e.DayOfWeek.Value) &&
			(t.Day()-1)/7+1 == e.DayOfWeek.Nth
	default:
		// 0 and 7 both mean Sunday, on either side of the comparison.
		if e.DayOfWeek.Matches(wd) {
			return true
		}
		return wd == 0 && e.DayOfWeek.Matches(7)
	}
}

// NextAfter returns the next instant strictly after the given one at
// which the expression fires. The search walks forward one minute at a
// time (one second when the expression has a seconds field) and gives up
// after roughly one year, returning false: the expression never fires
// again within the window.
func (e *Expression) NextAfter(after time.Time) (time.Time, bool) {
	step := time.Minute
	steps := maxSearchMinutes
	if e.Seconds != nil {
		step = time.Second
		steps = maxSearchMinutes * 60
	}

	next := after.Add(step).Truncate(step)
	for range steps {
		if e.Matches(next) {
			return next, true
		}
		next = next.Add(step)
	}
	return time.Time{}, false
}

// String renders the expression back to cron text. The result is
// semantically equivalent to the parsed input, not necessarily
// byte-identical (lists come back sorted and deduplicated).
func (e *Expression) String() string {
	parts := make([]string, 0, 7)
	if e.Seconds != nil {
		parts = append(parts, e.Seconds.String())
	}
	parts = append(parts,
		e.Minutes.String(),
		e.Hours.String(),
		e.DayOfMonth.String(),
		e.Month.String(),
		e.DayOfWeek.String(),
	)
	if e.Year != nil {
		parts = append(parts, e.Year.String())
	}
	return strings.Join(parts, " ")
}

func normalizeWeekday(wd int) int {
	if wd == 7 {
		return 0
	}
	return wd
}
