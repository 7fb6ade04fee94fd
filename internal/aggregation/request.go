package aggregation

// Filter is the composed predicate set of one aggregation: the date
// window is mandatory, everything else optional. Values are immutable;
// the With* methods return a modified copy.
type Filter struct {
	Date     DateFilter
	Amount   AmountFilter
	Category CategoryFilter
	// ShopID narrows to one shop; 0 means no shop filter (shop ids
	// start at 1, the store stores unassigned shops as NULL).
	ShopID int64
}

// NewFilter builds a filter carrying only the mandatory date predicate.
func NewFilter(date DateFilter) Filter {
	return Filter{Date: date}
}

// WithAmount returns a copy with the amount predicate set.
func (f Filter) WithAmount(amount AmountFilter) Filter {
	f.Amount = amount
	return f
}

// WithCategory returns a copy with the category predicate set.
func (f Filter) WithCategory(category CategoryFilter) Filter {
	f.Category = category
	return f
}

// WithShop returns a copy narrowed to one shop.
func (f Filter) WithShop(shopID int64) Filter {
	f.ShopID = shopID
	return f
}

// Request is one complete aggregation: whose transactions, filtered
// how, grouped and ordered how. Build it through the period builders;
// once built it is only read.
type Request struct {
	UserID    int64
	Filter    Filter
	GroupBy   GroupBy
	OrderBy   OrderField
	SortOrder SortOrder
	// Limit caps the result rows; 0 means no limit.
	Limit int
}

// NewRequest builds a request with the default sort of amount
// descending and no limit.
func NewRequest(userID int64, filter Filter, groupBy GroupBy) Request {
	return Request{
		UserID:    userID,
		Filter:    filter,
		GroupBy:   groupBy,
		OrderBy:   OrderByAmount,
		SortOrder: Desc,
	}
}

// WithSort returns a copy with the given sort field and direction.
func (r Request) WithSort(orderBy OrderField, sortOrder SortOrder) Request {
	r.OrderBy = orderBy
	r.SortOrder = sortOrder
	return r
}

// WithLimit returns a copy capped at n result rows.
func (r Request) WithLimit(n int) Request {
	r.Limit = n
	return r
}

// Result is one reporting row. TotalAmount and AvgAmount are signed
// minor currency units; AvgAmount is truncated toward zero, matching
// the store's integer cast.
type Result struct {
	GroupKey    string `db:"group_key" json:"group_key"`
	GroupName   string `db:"group_name" json:"group_name"`
	TotalAmount int64  `db:"total_amount" json:"total_amount"`
	Count       int64  `db:"count" json:"count"`
	AvgAmount   int64  `db:"avg_amount" json:"avg_amount"`
}
