package cronexpr_test

import (
	"testing"
	"time"

	"github.com/schedkit/schedkit/cronexpr"
)

func mustParse(t *testing.T, text string) *cronexpr.Expression {
	t.Helper()
	expr, err := cronexpr.Parse(text)
	if err != nil {
		t.Fatalf("Parse(%q): %v", text, err)
	}
	return expr
}

func utc(year int, month time.Month, day, hour, min, sec int) time.Time {
	return time.Date(year, month, day, hour, min, sec, 0, time.UTC)
}

func TestParse_FieldCounts(t *testing.T) {
	five := mustParse(t, "*/5 0 * * 1")
	if five.Seconds != nil || five.Year != nil {
		t.Error("5-field expression should have neither seconds nor year")
	}

	six := mustParse(t, "30 */5 0 * * 1")
	if six.Seconds == nil {
		t.Error("6-field expression should have seconds")
	}
	if six.Year != nil {
		t.Error("6-field expression should not have a year")
	}

	seven := mustParse(t, "30 */5 0 * * 1 2030")
	if seven.Seconds == nil || seven.Year == nil {
		t.Error("7-field expression should have both seconds and year")
	}
}

func TestParse_BadFieldCount(t *testing.T) {
	for _, text := range []string{"", "*", "* *", "* * * *", "* * * * * * * *"} {
		if _, err := cronexpr.Parse(text); err == nil {
			t.Errorf("Parse(%q) succeeded, want error", text)
		}
	}
}

func TestParse_PropagatesFieldErrors(t *testing.T) {
	for _, text := range []string{
		"60 * * * *",    // minutes out of range
		"* 24 * * *",    // hours out of range
		"* * 0 * *",     // day-of-month below bound
		"* * * 13 *",    // month out of range
		"* * * * 8",     // day-of-week out of range
		"* * * * * * 1969", // year below bound
	} {
		if _, err := cronexpr.Parse(text); err == nil {
			t.Errorf("Parse(%q) succeeded, want error", text)
		}
	}
}

func TestMatches_MondayNineAM(t *testing.T) {
	// 9:00 AM every Monday. October 2, 2023 was a Monday.
	expr := mustParse(t, "0 9 * * 1")

	if !expr.Matches(utc(2023, time.October, 2, 9, 0, 0)) {
		t.Error("should match Monday 09:00")
	}
	if expr.Matches(utc(2023, time.October, 2, 10, 0, 0)) {
		t.Error("should not match Monday 10:00")
	}
	if expr.Matches(utc(2023, time.October, 3, 9, 0, 0)) {
		t.Error("should not match Tuesday 09:00")
	}
}

func TestMatches_SevenMeansSunday(t *testing.T) {
	expr := mustParse(t, "0 9 * * 7")
	sunday := utc(2023, time.October, 1, 9, 0, 0)
	if !expr.Matches(sunday) {
		t.Error("day-of-week 7 should match a Sunday")
	}

	expr = mustParse(t, "0 9 * * 0")
	if !expr.Matches(sunday) {
		t.Error("day-of-week 0 should match a Sunday")
	}
}

func TestMatches_SecondsField(t *testing.T) {
	expr := mustParse(t, "*/30 * * * * *")
	if !expr.Matches(utc(2023, time.October, 2, 9, 0, 30)) {
		t.Error("should match at second 30")
	}
	if expr.Matches(utc(2023, time.October, 2, 9, 0, 31)) {
		t.Error("should not match at second 31")
	}
}

func TestMatches_YearField(t *testing.T) {
	expr := mustParse(t, "0 0 0 1 1 * 2030")
	if !expr.Matches(utc(2030, time.January, 1, 0, 0, 0)) {
		t.Error("should match January 1, 2030")
	}
	if expr.Matches(utc(2031, time.January, 1, 0, 0, 0)) {
		t.Error("should not match January 1, 2031")
	}
}

func TestMatches_LastDayOfMonth(t *testing.T) {
	expr := mustParse(t, "0 0 L 2 *")
	if !expr.Matches(utc(2024, time.February, 29, 0, 0, 0)) {
		t.Error("L should match February 29 in a leap year")
	}
	if expr.Matches(utc(2024, time.February, 28, 0, 0, 0)) {
		t.Error("L should not match February 28 in a leap year")
	}
	if !expr.Matches(utc(2023, time.February, 28, 0, 0, 0)) {
		t.Error("L should match February 28 in a common year")
	}
}

func TestMatches_NthWeekday(t *testing.T) {
	// Second Monday of the month. October 2023: Mondays are 2, 9, 16, 23, 30.
	expr := mustParse(t, "0 9 * * 1#2")
	if !expr.Matches(utc(2023, time.October, 9, 9, 0, 0)) {
		t.Error("1#2 should match the second Monday")
	}
	if expr.Matches(utc(2023, time.October, 2, 9, 0, 0)) {
		t.Error("1#2 should not match the first Monday")
	}
	if expr.Matches(utc(2023, time.October, 16, 9, 0, 0)) {
		t.Error("1#2 should not match the third Monday")
	}
}

func TestMatches_LastWeekday(t *testing.T) {
	// Last Friday of the month. October 2023: Fridays are 6, 13, 20, 27.
	expr := mustParse(t, "0 17 * * 5L")
	if !expr.Matches(utc(2023, time.October, 27, 17, 0, 0)) {
		t.Error("5L should match the last Friday")
	}
	if expr.Matches(utc(2023, time.October, 20, 17, 0, 0)) {
		t.Error("5L should not match an earlier Friday")
	}
}

func TestMatches_NearestWeekday(t *testing.T) {
	// July 15, 2023 was a Saturday, so 15W resolves to Friday the 14th.
	expr := mustParse(t, "0 0 15W 7 *")
	if !expr.Matches(utc(2023, time.July, 14, 0, 0, 0)) {
		t.Error("15W should match Friday the 14th when the 15th is a Saturday")
	}
	if expr.Matches(utc(2023, time.July, 15, 0, 0, 0)) {
		t.Error("15W should not match the Saturday itself")
	}
	// June 15, 2023 was a Thursday: 15W is the 15th itself.
	expr = mustParse(t, "0 0 15W 6 *")
	if !expr.Matches(utc(2023, time.June, 15, 0, 0, 0)) {
		t.Error("15W should match the 15th when it is a weekday")
	}
}

func TestNextAfter_MinuteGranularity(t *testing.T) {
	expr := mustParse(t, "*/15 * * * *")
	after := utc(2023, time.October, 2, 9, 3, 12)

	next, ok := expr.NextAfter(after)
	if !ok {
		t.Fatal("NextAfter returned no instant")
	}
	want := utc(2023, time.October, 2, 9, 15, 0)
	if !next.Equal(want) {
		t.Errorf("NextAfter = %v, want %v", next, want)
	}
}

func TestNextAfter_SecondGranularity(t *testing.T) {
	expr := mustParse(t, "*/20 * * * * *")
	after := utc(2023, time.October, 2, 9, 0, 5)

	next, ok := expr.NextAfter(after)
	if !ok {
		t.Fatal("NextAfter returned no instant")
	}
	want := utc(2023, time.October, 2, 9, 0, 20)
	if !next.Equal(want) {
		t.Errorf("NextAfter = %v, want %v", next, want)
	}
}

func TestNextAfter_CrossesDays(t *testing.T) {
	expr := mustParse(t, "0 9 * * 1") // Monday 09:00
	after := utc(2023, time.October, 2, 9, 0, 0) // a Monday at 09:00 sharp

	next, ok := expr.NextAfter(after)
	if !ok {
		t.Fatal("NextAfter returned no instant")
	}
	want := utc(2023, time.October, 9, 9, 0, 0)
	if !next.Equal(want) {
		t.Errorf("NextAfter = %v, want %v", next, want)
	}
}

func TestNextAfter_NeverFires(t *testing.T) {
	// February 30 does not exist; the search window expires.
	expr := mustParse(t, "0 0 30 2 *")
	if _, ok := expr.NextAfter(utc(2023, time.October, 2, 0, 0, 0)); ok {
		t.Error("NextAfter should report no instant for February 30")
	}
}

func TestString_RoundTrips(t *testing.T) {
	texts := []string{
		"* * * * *",
		"*/5 0 1-15 * 1,3,5",
		"30 14 * * *",
		"0 */5 0 * * 1",
		"0 0 0 1 1 * 2030",
		"0 0 L * *",
		"0 9 * * 1#2",
	}
	for _, text := range texts {
		expr := mustParse(t, text)
		again := mustParse(t, expr.String())
		if expr.String() != again.String() {
			t.Errorf("round trip of %q: %q != %q", text, expr.String(), again.String())
		}
	}
}

func TestValidate_CalendarBounds(t *testing.T) {
	tests := []struct {
		text    string
		wantErr bool
	}{
		{"0 0 15W * *", false},
		{"0 0 * * 5L", false},
		{"0 0 * * 1#5", false},
		{"0 0 99W * *", true}, // nearest weekday beyond day 31
		{"0 0 * * 9L", true},  // weekday beyond 7
		{"0 0 * * 1#6", true}, // nth occurrence beyond 5
	}
	for _, tt := range tests {
		expr, err := cronexpr.Parse(tt.text)
		if err != nil {
			t.Fatalf("Parse(%q): %v", tt.text, err)
		}
		err = expr.Validate()
		if (err != nil) != tt.wantErr {
			t.Errorf("Validate(%q) error = %v, wantErr %v", tt.text, err, tt.wantErr)
		}
	}
}
