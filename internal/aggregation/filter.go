package aggregation

import "time"

// The filter algebra renders predicate fragments over the transaction
// header relation aliased `th`. Every value is carried as a bind
// parameter; only column expressions and operators are fixed text.
// Filters that carry no condition render an empty fragment and are
// omitted from the WHERE clause rather than rendered as TRUE.

type dateFilterKind int

const (
	dateFrom dateFilterKind = iota
	dateTo
	dateBetween
	dateExact
)

// DateFilter is the mandatory temporal predicate. All bounds are
// inclusive and compare only the date portion of the timestamp column.
type DateFilter struct {
	kind dateFilterKind
	from time.Time
	to   time.Time
}

// DateFrom matches transactions on or after the given date.
func DateFrom(d time.Time) DateFilter {
	return DateFilter{kind: dateFrom, from: d}
}

// DateTo matches transactions on or before the given date.
func DateTo(d time.Time) DateFilter {
	return DateFilter{kind: dateTo, to: d}
}

// DateBetween matches transactions within [from, to].
func DateBetween(from, to time.Time) DateFilter {
	return DateFilter{kind: dateBetween, from: from, to: to}
}

// DateExact matches transactions on exactly the given date.
func DateExact(d time.Time) DateFilter {
	return DateFilter{kind: dateExact, from: d}
}

// Start returns the lower bound of the filter, when it has one.
func (f DateFilter) Start() (time.Time, bool) {
	switch f.kind {
	case dateFrom, dateBetween, dateExact:
		return f.from, true
	}
	return time.Time{}, false
}

// End returns the upper bound of the filter, when it has one.
func (f DateFilter) End() (time.Time, bool) {
	switch f.kind {
	case dateTo, dateBetween:
		return f.to, true
	case dateExact:
		return f.from, true
	}
	return time.Time{}, false
}

func (f DateFilter) predicate() (string, []any) {
	switch f.kind {
	case dateFrom:
		return "DATE(th.TRANSACTION_DATE) >= ?", []any{f.from.Format(dateLayout)}
	case dateTo:
		return "DATE(th.TRANSACTION_DATE) <= ?", []any{f.to.Format(dateLayout)}
	case dateBetween:
		return "DATE(th.TRANSACTION_DATE) BETWEEN ? AND ?",
			[]any{f.from.Format(dateLayout), f.to.Format(dateLayout)}
	default:
		return "DATE(th.TRANSACTION_DATE) = ?", []any{f.from.Format(dateLayout)}
	}
}

type amountFilterKind int

const (
	amountNone amountFilterKind = iota
	amountGTE
	amountLTE
	amountBetween
	amountExact
)

// AmountFilter is an optional predicate over the signed total amount.
// The zero value carries no condition.
type AmountFilter struct {
	kind amountFilterKind
	lo   int64
	hi   int64
}

// AmountGreaterThanOrEqual matches amounts >= v.
func AmountGreaterThanOrEqual(v int64) AmountFilter {
	return AmountFilter{kind: amountGTE, lo: v}
}

// AmountLessThanOrEqual matches amounts <= v.
func AmountLessThanOrEqual(v int64) AmountFilter {
	return AmountFilter{kind: amountLTE, hi: v}
}

// AmountBetween matches amounts within [lo, hi].
func AmountBetween(lo, hi int64) AmountFilter {
	return AmountFilter{kind: amountBetween, lo: lo, hi: hi}
}

// AmountExact matches amounts equal to v.
func AmountExact(v int64) AmountFilter {
	return AmountFilter{kind: amountExact, lo: v}
}

// HasCondition reports whether the filter renders a predicate.
func (f AmountFilter) HasCondition() bool {
	return f.kind != amountNone
}

func (f AmountFilter) predicate() (string, []any) {
	switch f.kind {
	case amountGTE:
		return "th.TOTAL_AMOUNT >= ?", []any{f.lo}
	case amountLTE:
		return "th.TOTAL_AMOUNT <= ?", []any{f.hi}
	case amountBetween:
		return "th.TOTAL_AMOUNT BETWEEN ? AND ?", []any{f.lo, f.hi}
	case amountExact:
		return "th.TOTAL_AMOUNT = ?", []any{f.lo}
	default:
		return "", nil
	}
}

type categoryFilterKind int

const (
	categoryNone categoryFilterKind = iota
	categoryLevel1
	categoryLevel2
	categoryLevel3
)

// CategoryFilter is an optional predicate over the category code path.
// More specific variants imply the less specific codes. The zero value
// carries no condition.
type CategoryFilter struct {
	kind categoryFilterKind
	c1   string
	c2   string
	c3   string
}

// ByCategory1 matches transactions with the given category-1 code.
func ByCategory1(c1 string) CategoryFilter {
	return CategoryFilter{kind: categoryLevel1, c1: c1}
}

// ByCategory2 matches transactions with the given category-1/2 code path.
func ByCategory2(c1, c2 string) CategoryFilter {
	return CategoryFilter{kind: categoryLevel2, c1: c1, c2: c2}
}

// ByCategory3 matches transactions with the given category-1/2/3 code path.
func ByCategory3(c1, c2, c3 string) CategoryFilter {
	return CategoryFilter{kind: categoryLevel3, c1: c1, c2: c2, c3: c3}
}

// HasCondition reports whether the filter renders a predicate.
func (f CategoryFilter) HasCondition() bool {
	return f.kind != categoryNone
}

func (f CategoryFilter) predicate() (string, []any) {
	switch f.kind {
	case categoryLevel1:
		return "th.CATEGORY1_CODE = ?", []any{f.c1}
	case categoryLevel2:
		return "th.CATEGORY1_CODE = ? AND th.CATEGORY2_CODE = ?", []any{f.c1, f.c2}
	case categoryLevel3:
		return "th.CATEGORY1_CODE = ? AND th.CATEGORY2_CODE = ? AND th.CATEGORY3_CODE = ?",
			[]any{f.c1, f.c2, f.c3}
	default:
		return "", nil
	}
}
