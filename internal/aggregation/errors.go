package aggregation

import (
	"fmt"
	"time"
)

// Validation errors raised by the period builders. They all indicate
// caller error and are never retried; each carries the offending values
// so the command layer can build a precise message.

// InvalidYearError reports a year outside the supported 1900-2100 range.
type InvalidYearError struct {
	Year int
}

func (e *InvalidYearError) Error() string {
	return fmt.Sprintf("invalid year: %d. Year must be between 1900 and 2100", e.Year)
}

// InvalidMonthError reports a month outside 1-12.
type InvalidMonthError struct {
	Month int
}

func (e *InvalidMonthError) Error() string {
	return fmt.Sprintf("invalid month: %d. Month must be between 1 and 12", e.Month)
}

// InvalidWeekError reports a week number outside 1-53.
type InvalidWeekError struct {
	Week int
}

func (e *InvalidWeekError) Error() string {
	return fmt.Sprintf("invalid week: %d. Week must be between 1 and 53", e.Week)
}

// InvalidDayError reports a day that does not exist in the given month.
type InvalidDayError struct {
	Year  int
	Month int
	Day   int
}

func (e *InvalidDayError) Error() string {
	return fmt.Sprintf("invalid day %d for %d-%02d", e.Day, e.Year, e.Month)
}

// FutureDateError reports a period that starts after today.
type FutureDateError struct {
	Year  int
	Month int
}

func (e *FutureDateError) Error() string {
	return fmt.Sprintf("future date not allowed: %d-%02d", e.Year, e.Month)
}

// InvalidDateRangeError reports a range whose start is after its end.
type InvalidDateRangeError struct {
	Start time.Time
	End   time.Time
}

func (e *InvalidDateRangeError) Error() string {
	return fmt.Sprintf("invalid date range: %s to %s. Start date must be before end date",
		e.Start.Format(dateLayout), e.End.Format(dateLayout))
}
