package cronexpr

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Kind discriminates the variants a cron field can take.
type Kind int

const (
	// All matches every value ("*").
	All Kind = iota
	// Value matches one concrete value.
	Value
	// List matches any of a sorted, deduplicated set of values.
	List
	// Range matches every value in a closed interval.
	Range
	// Step matches values of a base field at a fixed interval.
	Step
	// Last is the last day of the month ("L").
	Last
	// NearestWeekday is the weekday closest to a given day ("nW").
	NearestWeekday
	// LastWeekday is the last occurrence of a weekday in the month ("nL").
	LastWeekday
	// NthWeekday is the n-th occurrence of a weekday in the month ("n#m").
	NthWeekday
)

// Field is one parsed slot of a cron expression.
//
// Which payload members are meaningful depends on Kind: Value holds the
// single value for Value, the day for NearestWeekday, and the weekday for
// LastWeekday and NthWeekday; Nth holds the occurrence for NthWeekday.
type Field struct {
	Kind   Kind
	Value  int
	Values []int
	Lo, Hi int
	Base   *Field
	Step   int
	Nth    int
}

// ParseError reports a malformed cron field or expression. It names the
// offending token and, where applicable, the expected bounds.
type ParseError struct {
	Token  string
	Reason string
	Min    int
	Max    int
}

func (e *ParseError) Error() string {
	if e.Max > e.Min {
		return fmt.Sprintf("cronexpr: %s: %q (bounds %d-%d)", e.Reason, e.Token, e.Min, e.Max)
	}
	return fmt.Sprintf("cronexpr: %s: %q", e.Reason, e.Token)
}

// ParseField parses one cron field token with the unit's inclusive
// bounds. Values, list members, and range endpoints are validated
// eagerly; any token outside the grammar is a *ParseError.
func ParseField(token string, min, max int) (Field, error) {
	token = strings.TrimSpace(token)

	if token == "*" {
		return Field{Kind: All}, nil
	}
	if token == "L" {
		return Field{Kind: Last}, nil
	}

	// Steps: */n or expr/n. Checked before ranges so "1-10/2" nests the
	// range inside the step.
	if strings.Contains(token, "/") {
		return parseStep(token, min, max)
	}

	if strings.Contains(token, "-") {
		return parseRange(token, min, max)
	}

	if strings.Contains(token, ",") {
		return parseList(token, min, max)
	}

	// Nearest weekday: nW.
	if strings.HasSuffix(token, "W") {
		day, err := strconv.Atoi(token[:len(token)-1])
		if err != nil {
			return Field{}, &ParseError{Token: token, Reason: "invalid nearest-weekday expression"}
		}
		return Field{Kind: NearestWeekday, Value: day}, nil
	}

	// Last weekday: nL.
	if strings.HasSuffix(token, "L") && len(token) > 1 {
		weekday, err := strconv.Atoi(token[:len(token)-1])
		if err != nil {
			return Field{}, &ParseError{Token: token, Reason: "invalid last-weekday expression"}
		}
		return Field{Kind: LastWeekday, Value: weekday}, nil
	}

	// Nth weekday: n#m.
	if strings.Contains(token, "#") {
		return parseNthWeekday(token)
	}

	value, err := strconv.Atoi(token)
	if err != nil {
		return Field{}, &ParseError{Token: token, Reason: "invalid numeric value"}
	}
	if value < min || value > max {
		return Field{}, &ParseError{Token: token, Reason: "value out of range", Min: min, Max: max}
	}
	return Field{Kind: Value, Value: value}, nil
}

func parseStep(token string, min, max int) (Field, error) {
	parts := strings.Split(token, "/")
	if len(parts) != 2 {
		return Field{}, &ParseError{Token: token, Reason: "invalid step format"}
	}

	step, err := strconv.Atoi(parts[1])
	if err != nil {
		return Field{}, &ParseError{Token: parts[1], Reason: "invalid step value"}
	}
	if step == 0 {
		return Field{}, &ParseError{Token: token, Reason: "step value cannot be zero"}
	}
	if step < 0 {
		return Field{}, &ParseError{Token: token, Reason: "step value cannot be negative"}
	}

	var base Field
	if parts[0] == "*" {
		base = Field{Kind: All}
	} else {
		base, err = ParseField(parts[0], min, max)
		if err != nil {
			return Field{}, err
		}
	}
	return Field{Kind: Step, Base: &base, Step: step}, nil
}

func parseRange(token string, min, max int) (Field, error) {
	parts := strings.Split(token, "-")
	if len(parts) != 2 {
		return Field{}, &ParseError{Token: token, Reason: "invalid range format"}
	}

	lo, err := strconv.Atoi(parts[0])
	if err != nil {
		return Field{}, &ParseError{Token: parts[0], Reason: "invalid range start"}
	}
	hi, err := strconv.Atoi(parts[1])
	if err != nil {
		return Field{}, &ParseError{Token: parts[1], Reason: "invalid range end"}
	}

	if lo > hi {
		return Field{}, &ParseError{Token: token, Reason: "range start greater than end"}
	}
	if lo < min || hi > max {
		return Field{}, &ParseError{Token: token, Reason: "range out of bounds", Min: min, Max: max}
	}
	return Field{Kind: Range, Lo: lo, Hi: hi}, nil
}

func parseList(token string, min, max int) (Field, error) {
	parts := strings.Split(token, ",")
	values := make([]int, 0, len(parts))
	for _, part := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return Field{}, &ParseError{Token: part, Reason: "invalid list value"}
		}
		if v < min || v > max {
			return Field{}, &ParseError{Token: part, Reason: "list value out of range", Min: min, Max: max}
		}
		values = append(values, v)
	}

	sort.Ints(values)
	values = dedupe(values)
	return Field{Kind: List, Values: values}, nil
}

func parseNthWeekday(token string) (Field, error) {
	parts := strings.Split(token, "#")
	if len(parts) != 2 {
		return Field{}, &ParseError{Token: token, Reason: "invalid nth-weekday format"}
	}
	weekday, err := strconv.Atoi(parts[0])
	if err != nil {
		return Field{}, &ParseError{Token: parts[0], Reason: "invalid weekday in nth-weekday expression"}
	}
	nth, err := strconv.Atoi(parts[1])
	if err != nil {
		return Field{}, &ParseError{Token: parts[1], Reason: "invalid nth value"}
	}
	return Field{Kind: NthWeekday, Value: weekday, Nth: nth}, nil
}

func dedupe(sorted []int) []int {
	out := sorted[:0]
	for i, v := range sorted {
		if i == 0 || v != sorted[i-1] {
			out = append(out, v)
		}
	}
	return out
}

// Matches reports whether the field matches the given value.
//
// The calendar kinds (Last, NearestWeekday, LastWeekday, NthWeekday)
// always report false here: they are meaningless without a (year, month)
// context. Expression.Matches resolves them through the calendar instead.
func (f Field) Matches(value int) bool {
	switch f.Kind {
	case All:
		return true
	case Value:
		return f.Value == value
	case List:
		for _, v := range f.Values {
			if v == value {
				return true
			}
		}
		return false
	case Range:
		return value >= f.Lo && value <= f.Hi
	case Step:
		if !f.Base.Matches(value) {
			return false
		}
		// The step origin is the range's lower bound; for every other
		// base it is zero.
		origin := 0
		if f.Base.Kind == Range {
			origin = f.Base.Lo
		}
		return (value-origin)%f.Step == 0
	default:
		return false
	}
}

// validate re-checks the field against the unit's bounds. The bounds of
// values, lists, and ranges are enforced at parse time already; the
// calendar kinds are only checkable here because parsing does not know
// which unit the token belongs to.
func (f Field) validate(min, max int, unit string) error {
	switch f.Kind {
	case All, Last:
		return nil
	case Value:
		if f.Value < min || f.Value > max {
			return &ParseError{Token: strconv.Itoa(f.Value), Reason: unit + " value out of range", Min: min, Max: max}
		}
	case List:
		for _, v := range f.Values {
			if v < min || v > max {
				return &ParseError{Token: strconv.Itoa(v), Reason: unit + " list value out of range", Min: min, Max: max}
			}
		}
	case Range:
		if f.Lo < min || f.Hi > max {
			return &ParseError{Token: f.String(), Reason: unit + " range out of bounds", Min: min, Max: max}
		}
	case Step:
		if f.Step <= 0 {
			return &ParseError{Token: f.String(), Reason: unit + " step must be positive"}
		}
		return f.Base.validate(min, max, unit)
	case NearestWeekday:
		if f.Value < 1 || f.Value > 31 {
			return &ParseError{Token: f.String(), Reason: unit + " nearest-weekday day out of range", Min: 1, Max: 31}
		}
	case LastWeekday:
		if f.Value < 0 || f.Value > 7 {
			return &ParseError{Token: f.String(), Reason: unit + " weekday out of range", Min: 0, Max: 7}
		}
	case NthWeekday:
		if f.Value < 0 || f.Value > 7 {
			return &ParseError{Token: f.String(), Reason: unit + " weekday out of range", Min: 0, Max: 7}
		}
		if f.Nth < 1 || f.Nth > 5 {
			return &ParseError{Token: f.String(), Reason: unit + " nth occurrence out of range", Min: 1, Max: 5}
		}
	}
	return nil
}

// String renders the field back to cron syntax.
func (f Field) String() string {
	switch f.Kind {
	case All:
		return "*"
	case Value:
		return strconv.Itoa(f.Value)
	case List:
		parts := make([]string, len(f.Values))
		for i, v := range f.Values {
			parts[i] = strconv.Itoa(v)
		}
		return strings.Join(parts, ",")
	case Range:
		return fmt.Sprintf("%d-%d", f.Lo, f.Hi)
	case Step:
		return fmt.Sprintf("%s/%d", f.Base, f.Step)
	case Last:
		return "L"
	case NearestWeekday:
		return fmt.Sprintf("%dW", f.Value)
	case LastWeekday:
		return fmt.Sprintf("%dL", f.Value)
	case NthWeekday:
		return fmt.Sprintf("%d#%d", f.Value, f.Nth)
	default:
		return "?"
	}
}
