package aggregation

import (
	"errors"
	"testing"
	"time"
)

// fixedClock pins "today" for period validation tests.
type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

func date(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

func TestLastDayOfMonth(t *testing.T) {
	cases := []struct {
		year  int
		month int
		want  int
	}{
		{2025, 1, 31},
		{2025, 2, 28},
		{2024, 2, 29}, // leap year
		{2000, 2, 29}, // century leap year
		{1900, 2, 28}, // century non-leap year
		{2025, 4, 30},
		{2025, 12, 31}, // rolls into January of the next year
	}
	for _, tc := range cases {
		if got := LastDayOfMonth(tc.year, tc.month); got != tc.want {
			t.Errorf("LastDayOfMonth(%d, %d) = %d, want %d", tc.year, tc.month, got, tc.want)
		}
	}
}

func TestWeekRange(t *testing.T) {
	// January 1, 2025 is a Wednesday. The first Sunday is Jan 5, the
	// first Monday Jan 6.
	cases := []struct {
		week      int
		weekStart WeekStart
		wantStart time.Time
		wantEnd   time.Time
	}{
		{1, Sunday, date(2025, 1, 5), date(2025, 1, 11)},
		{1, Monday, date(2025, 1, 6), date(2025, 1, 12)},
		{2, Monday, date(2025, 1, 13), date(2025, 1, 19)},
		{10, Sunday, date(2025, 3, 9), date(2025, 3, 15)},
	}
	for i, tc := range cases {
		start, end := weekRange(2025, tc.week, tc.weekStart)
		if !start.Equal(tc.wantStart) || !end.Equal(tc.wantEnd) {
			t.Errorf("case %d: weekRange = [%s, %s], want [%s, %s]", i,
				start.Format(dateLayout), end.Format(dateLayout),
				tc.wantStart.Format(dateLayout), tc.wantEnd.Format(dateLayout))
		}
	}
}

func TestWeekRangeStartsOnTargetWeekday(t *testing.T) {
	// Week 1 anchored at Jan 1 when it already is the target weekday:
	// January 1, 2023 is a Sunday.
	start, end := weekRange(2023, 1, Sunday)
	if !start.Equal(date(2023, 1, 1)) || !end.Equal(date(2023, 1, 7)) {
		t.Fatalf("weekRange(2023, 1, Sunday) = [%s, %s]",
			start.Format(dateLayout), end.Format(dateLayout))
	}
}

func TestWeekRangeAround(t *testing.T) {
	// November 20, 2025 is a Thursday.
	cases := []struct {
		ref       time.Time
		weekStart WeekStart
		wantStart time.Time
	}{
		{date(2025, 11, 20), Monday, date(2025, 11, 17)},
		{date(2025, 11, 20), Sunday, date(2025, 11, 16)},
		{date(2025, 11, 17), Monday, date(2025, 11, 17)}, // ref is the week start
		{date(2025, 11, 16), Monday, date(2025, 11, 10)}, // Sunday belongs to the prior Monday week
	}
	for i, tc := range cases {
		start, end := weekRangeAround(tc.ref, tc.weekStart)
		if !start.Equal(tc.wantStart) {
			t.Errorf("case %d: start = %s, want %s", i,
				start.Format(dateLayout), tc.wantStart.Format(dateLayout))
		}
		if !end.Equal(start.AddDate(0, 0, 6)) {
			t.Errorf("case %d: week does not span 7 days", i)
		}
	}
}

func TestYearRange(t *testing.T) {
	start, end := yearRange(2024, January)
	if !start.Equal(date(2024, 1, 1)) || !end.Equal(date(2024, 12, 31)) {
		t.Fatalf("calendar year 2024 = [%s, %s]", start.Format(dateLayout), end.Format(dateLayout))
	}

	start, end = yearRange(2024, April)
	if !start.Equal(date(2024, 4, 1)) || !end.Equal(date(2025, 3, 31)) {
		t.Fatalf("fiscal year 2024 = [%s, %s]", start.Format(dateLayout), end.Format(dateLayout))
	}
}

func TestNewDate(t *testing.T) {
	cases := []struct {
		year  int
		month int
		day   int
		ok    bool
	}{
		{2024, 2, 29, true}, // leap February
		{2025, 2, 29, false},
		{2025, 4, 31, false},
		{2025, 12, 31, true},
		{2025, 6, 0, false},
	}
	for i, tc := range cases {
		d, err := NewDate(tc.year, tc.month, tc.day)
		if tc.ok {
			if err != nil {
				t.Errorf("case %d: expected ok, got %v", i, err)
			} else if !d.Equal(date(tc.year, tc.month, tc.day)) {
				t.Errorf("case %d: date = %v", i, d)
			}
			continue
		}
		if err == nil {
			t.Errorf("case %d: expected invalid day error", i)
		}
	}
}

func TestNewDateErrorValues(t *testing.T) {
	_, err := NewDate(2025, 2, 30)
	var dayErr *InvalidDayError
	if !errors.As(err, &dayErr) || dayErr.Year != 2025 || dayErr.Month != 2 || dayErr.Day != 30 {
		t.Fatalf("expected InvalidDayError(2025-02-30), got %v", err)
	}

	_, err = NewDate(2025, 13, 1)
	var monthErr *InvalidMonthError
	if !errors.As(err, &monthErr) {
		t.Fatalf("expected InvalidMonthError, got %v", err)
	}

	_, err = NewDate(1800, 1, 1)
	var yearErr *InvalidYearError
	if !errors.As(err, &yearErr) {
		t.Fatalf("expected InvalidYearError, got %v", err)
	}
}

func TestValidateNotFuture(t *testing.T) {
	clock := fixedClock{now: date(2025, 6, 15)}

	cases := []struct {
		year  int
		month int
		ok    bool
	}{
		{2020, 1, true},
		{2025, 6, true}, // current month
		{2025, 7, false},
		{2026, 6, false},
	}
	for i, tc := range cases {
		err := validateNotFuture(clock, tc.year, tc.month)
		if tc.ok && err != nil {
			t.Errorf("case %d: expected ok, got %v", i, err)
		}
		if !tc.ok && err == nil {
			t.Errorf("case %d: expected future date error", i)
		}
	}
}

func TestValidateNotFutureDecemberRollover(t *testing.T) {
	clock := fixedClock{now: date(2025, 12, 31)}
	if err := validateNotFuture(clock, 2025, 12); err != nil {
		t.Fatalf("current month: %v", err)
	}
	if err := validateNotFuture(clock, 2026, 1); err == nil {
		t.Fatal("expected future date error for next January")
	}
}
