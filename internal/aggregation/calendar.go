package aggregation

import "time"

// dateLayout is the canonical form every date takes on the wire and in SQL.
const dateLayout = "2006-01-02"

// WeekStart selects which weekday opens a reporting week.
type WeekStart int

const (
	// Sunday start (US style).
	Sunday WeekStart = iota
	// Monday start (ISO 8601, Europe/Japan style).
	Monday
)

func (w WeekStart) weekday() time.Weekday {
	if w == Monday {
		return time.Monday
	}
	return time.Sunday
}

// YearStart selects which month opens a reporting year.
type YearStart int

const (
	// January start (calendar year).
	January YearStart = iota
	// April start (fiscal year, Japanese style).
	April
)

// LastDayOfMonth returns the number of the last day of the given month,
// computed as day 1 of the following month minus one day. December rolls
// into January of the next year; leap-year February resolves to 29.
func LastDayOfMonth(year, month int) int {
	nextMonth := month + 1
	nextYear := year
	if month == 12 {
		nextMonth = 1
		nextYear = year + 1
	}

	first := time.Date(nextYear, time.Month(nextMonth), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 0, -1)
	if int(last.Month()) != month {
		// Should not happen for a valid year/month pair.
		return 28
	}
	return last.Day()
}

func validateYear(year int) error {
	if year < 1900 || year > 2100 {
		return &InvalidYearError{Year: year}
	}
	return nil
}

func validateMonth(month int) error {
	if month < 1 || month > 12 {
		return &InvalidMonthError{Month: month}
	}
	return nil
}

// validateNotFuture fails when the first day of the given month is
// strictly after the clock's current date.
func validateNotFuture(clock Clock, year, month int) error {
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	if first.After(today(clock)) {
		return &FutureDateError{Year: year, Month: month}
	}
	return nil
}

// today truncates the clock's time to a UTC date so comparisons ignore
// the time-of-day portion.
func today(clock Clock) time.Time {
	return dateOf(clock.Now())
}

// dateOf truncates a timestamp to its UTC date.
func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// NewDate builds a UTC date, rejecting day numbers that do not exist in
// the given month.
func NewDate(year, month, day int) (time.Time, error) {
	if err := validateYear(year); err != nil {
		return time.Time{}, err
	}
	if err := validateMonth(month); err != nil {
		return time.Time{}, err
	}
	if day < 1 || day > LastDayOfMonth(year, month) {
		return time.Time{}, &InvalidDayError{Year: year, Month: month, Day: day}
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), nil
}

// weekRange resolves week number `week` of `year` to its [start, end]
// dates. Week 1 starts at the first occurrence of the target weekday on
// or after January 1; later weeks advance in 7-day steps. The window
// spans 7 days inclusive.
func weekRange(year, week int, weekStart WeekStart) (time.Time, time.Time) {
	jan1 := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)

	offset := (int(weekStart.weekday()) - int(jan1.Weekday()) + 7) % 7
	firstWeekStart := jan1.AddDate(0, 0, offset)

	start := firstWeekStart.AddDate(0, 0, (week-1)*7)
	end := start.AddDate(0, 0, 6)
	return start, end
}

// weekRangeAround resolves the week containing `ref` to its [start, end]
// dates, walking back 0-6 days to the most recent target weekday.
func weekRangeAround(ref time.Time, weekStart WeekStart) (time.Time, time.Time) {
	back := (int(ref.Weekday()) - int(weekStart.weekday()) + 7) % 7
	start := ref.AddDate(0, 0, -back)
	end := start.AddDate(0, 0, 6)
	return start, end
}

// yearRange resolves a reporting year to its [start, end] dates:
// calendar years span Jan 1 - Dec 31, fiscal years Apr 1 - Mar 31 of the
// following calendar year.
func yearRange(year int, yearStart YearStart) (time.Time, time.Time) {
	if yearStart == April {
		start := time.Date(year, time.April, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(year+1, time.March, 31, 0, 0, 0, 0, time.UTC)
		return start, end
	}
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
	return start, end
}
