package aggregation

import "time"

// Builder constructs aggregation requests for the standard reporting
// periods. It validates inputs against an injected clock before any
// query is compiled; every builder defaults to sorting by amount
// descending, which callers can override through composition.
type Builder struct {
	clock Clock
}

// NewBuilder returns a builder validating against the wall clock.
func NewBuilder() *Builder {
	return &Builder{clock: systemClock{}}
}

// NewBuilderWithClock returns a builder validating against the given
// clock. Tests use this to pin "today".
func NewBuilderWithClock(clock Clock) *Builder {
	return &Builder{clock: clock}
}

// Monthly builds a request covering one calendar month.
func (b *Builder) Monthly(userID int64, year, month int, groupBy GroupBy) (Request, error) {
	if err := validateYear(year); err != nil {
		return Request{}, err
	}
	if err := validateMonth(month); err != nil {
		return Request{}, err
	}
	if err := validateNotFuture(b.clock, year, month); err != nil {
		return Request{}, err
	}

	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	last := time.Date(year, time.Month(month), LastDayOfMonth(year, month), 0, 0, 0, 0, time.UTC)

	filter := NewFilter(DateBetween(first, last))
	return NewRequest(userID, filter, groupBy), nil
}

// Daily builds a request covering exactly one date. The time-of-day
// portion of the argument is ignored, so passing "now" on the current
// day is valid.
func (b *Builder) Daily(userID int64, date time.Time, groupBy GroupBy) (Request, error) {
	day := dateOf(date)
	if day.After(today(b.clock)) {
		return Request{}, &FutureDateError{Year: day.Year(), Month: int(day.Month())}
	}

	filter := NewFilter(DateExact(day))
	return NewRequest(userID, filter, groupBy), nil
}

// Period builds a request covering an arbitrary inclusive date range.
func (b *Builder) Period(userID int64, start, end time.Time, groupBy GroupBy) (Request, error) {
	if start.After(end) {
		return Request{}, &InvalidDateRangeError{Start: start, End: end}
	}
	if start.After(today(b.clock)) {
		return Request{}, &FutureDateError{Year: start.Year(), Month: int(start.Month())}
	}

	filter := NewFilter(DateBetween(start, end))
	return NewRequest(userID, filter, groupBy), nil
}

// Weekly builds a request covering week `week` of `year`. Week 1 starts
// at the first occurrence of the week-start day on or after January 1.
func (b *Builder) Weekly(userID int64, year, week int, weekStart WeekStart, groupBy GroupBy) (Request, error) {
	if err := validateYear(year); err != nil {
		return Request{}, err
	}
	if week < 1 || week > 53 {
		return Request{}, &InvalidWeekError{Week: week}
	}

	start, end := weekRange(year, week, weekStart)
	if start.After(today(b.clock)) {
		return Request{}, &FutureDateError{Year: start.Year(), Month: int(start.Month())}
	}

	filter := NewFilter(DateBetween(start, end))
	return NewRequest(userID, filter, groupBy), nil
}

// WeeklyByDate builds a request covering the week containing the
// reference date. Like Daily, the time-of-day portion is ignored.
func (b *Builder) WeeklyByDate(userID int64, reference time.Time, weekStart WeekStart, groupBy GroupBy) (Request, error) {
	ref := dateOf(reference)
	if ref.After(today(b.clock)) {
		return Request{}, &FutureDateError{Year: ref.Year(), Month: int(ref.Month())}
	}

	start, end := weekRangeAround(ref, weekStart)
	filter := NewFilter(DateBetween(start, end))
	return NewRequest(userID, filter, groupBy), nil
}

// Yearly builds a request covering one calendar or fiscal year.
func (b *Builder) Yearly(userID int64, year int, yearStart YearStart, groupBy GroupBy) (Request, error) {
	if err := validateYear(year); err != nil {
		return Request{}, err
	}

	start, end := yearRange(year, yearStart)
	if start.After(today(b.clock)) {
		return Request{}, &FutureDateError{Year: start.Year(), Month: int(start.Month())}
	}

	filter := NewFilter(DateBetween(start, end))
	return NewRequest(userID, filter, groupBy), nil
}

// The monthly variants below compose the base monthly builder and set
// optional fields on the result; none of them re-derives the date range.

// MonthlyByCategory is Monthly narrowed to one category code path.
func (b *Builder) MonthlyByCategory(userID int64, year, month int, groupBy GroupBy, category CategoryFilter) (Request, error) {
	req, err := b.Monthly(userID, year, month, groupBy)
	if err != nil {
		return Request{}, err
	}
	req.Filter = req.Filter.WithCategory(category)
	return req, nil
}

// MonthlyByAmount is Monthly narrowed to an amount range.
func (b *Builder) MonthlyByAmount(userID int64, year, month int, groupBy GroupBy, amount AmountFilter) (Request, error) {
	req, err := b.Monthly(userID, year, month, groupBy)
	if err != nil {
		return Request{}, err
	}
	req.Filter = req.Filter.WithAmount(amount)
	return req, nil
}

// MonthlySorted is Monthly with a caller-chosen sort.
func (b *Builder) MonthlySorted(userID int64, year, month int, groupBy GroupBy, orderBy OrderField, sortOrder SortOrder) (Request, error) {
	req, err := b.Monthly(userID, year, month, groupBy)
	if err != nil {
		return Request{}, err
	}
	return req.WithSort(orderBy, sortOrder), nil
}

// MonthlyOptions carries every optional knob of a monthly aggregation.
type MonthlyOptions struct {
	Category  CategoryFilter
	Amount    AmountFilter
	ShopID    int64
	OrderBy   OrderField
	SortOrder SortOrder
	Limit     int
}

// MonthlyFull is Monthly with all optional fields applied at once.
func (b *Builder) MonthlyFull(userID int64, year, month int, groupBy GroupBy, opts MonthlyOptions) (Request, error) {
	req, err := b.Monthly(userID, year, month, groupBy)
	if err != nil {
		return Request{}, err
	}
	req.Filter = req.Filter.
		WithCategory(opts.Category).
		WithAmount(opts.Amount).
		WithShop(opts.ShopID)
	req = req.WithSort(opts.OrderBy, opts.SortOrder)
	if opts.Limit > 0 {
		req = req.WithLimit(opts.Limit)
	}
	return req, nil
}
