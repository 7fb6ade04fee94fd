package aggregation

// GroupBy is the dimension by which transactions are aggregated. Each
// axis knows its projection columns, its grouping key expression, and
// the joins it needs. Category2, Category3 and Product are detail-scoped:
// their codes live on the transaction detail relation (aliased `td`),
// so those axes fan out one row per detail line.
type GroupBy int

const (
	GroupByCategory1 GroupBy = iota
	GroupByCategory2
	GroupByCategory3
	GroupByAccount
	GroupByShop
	GroupByProduct
	GroupByDate
)

// noneLabel is the display fallback for rows with no assigned
// account, shop or product.
const noneLabel = "(none)"

func (g GroupBy) String() string {
	switch g {
	case GroupByCategory1:
		return "category1"
	case GroupByCategory2:
		return "category2"
	case GroupByCategory3:
		return "category3"
	case GroupByAccount:
		return "account"
	case GroupByShop:
		return "shop"
	case GroupByProduct:
		return "product"
	case GroupByDate:
		return "date"
	default:
		return "unknown"
	}
}

// selectClause returns the (group_key, group_name) projection pair.
// group_name falls back to the un-localized dimension name when no
// translation row matches the caller's language.
func (g GroupBy) selectClause() string {
	switch g {
	case GroupByCategory1:
		return "th.CATEGORY1_CODE AS group_key, " +
			"COALESCE(c1i.CATEGORY1_NAME_I18N, c1.CATEGORY1_NAME) AS group_name"
	case GroupByCategory2:
		return "td.CATEGORY1_CODE || '/' || td.CATEGORY2_CODE AS group_key, " +
			"COALESCE(c2i.CATEGORY2_NAME_I18N, c2.CATEGORY2_NAME) AS group_name"
	case GroupByCategory3:
		return "td.CATEGORY1_CODE || '/' || td.CATEGORY2_CODE || '/' || td.CATEGORY3_CODE AS group_key, " +
			"COALESCE(c3i.CATEGORY3_NAME_I18N, c3.CATEGORY3_NAME) AS group_name"
	case GroupByAccount:
		return "COALESCE(th.FROM_ACCOUNT_CODE, th.TO_ACCOUNT_CODE, 'NONE') AS group_key, " +
			"COALESCE(ai.ACCOUNT_NAME_I18N, a.ACCOUNT_NAME, '" + noneLabel + "') AS group_name"
	case GroupByShop:
		return "CAST(COALESCE(th.SHOP_ID, 0) AS TEXT) AS group_key, " +
			"COALESCE(si.SHOP_NAME_I18N, s.SHOP_NAME, '" + noneLabel + "') AS group_name"
	case GroupByProduct:
		return "CAST(COALESCE(td.PRODUCT_ID, 0) AS TEXT) AS group_key, " +
			"COALESCE(pi.PRODUCT_NAME_I18N, p.PRODUCT_NAME, '" + noneLabel + "') AS group_name"
	default: // GroupByDate
		return "DATE(th.TRANSACTION_DATE) AS group_key, " +
			"DATE(th.TRANSACTION_DATE) AS group_name"
	}
}

// groupByClause returns the GROUP BY key expression. Category2 and
// Category3 group on the full code path: level codes are only unique
// within their parent.
func (g GroupBy) groupByClause() string {
	switch g {
	case GroupByCategory1:
		return "th.CATEGORY1_CODE"
	case GroupByCategory2:
		return "td.CATEGORY1_CODE, td.CATEGORY2_CODE"
	case GroupByCategory3:
		return "td.CATEGORY1_CODE, td.CATEGORY2_CODE, td.CATEGORY3_CODE"
	case GroupByAccount:
		return "COALESCE(th.FROM_ACCOUNT_CODE, th.TO_ACCOUNT_CODE, 'NONE')"
	case GroupByShop:
		return "COALESCE(th.SHOP_ID, 0)"
	case GroupByProduct:
		return "COALESCE(td.PRODUCT_ID, 0)"
	default: // GroupByDate
		return "DATE(th.TRANSACTION_DATE)"
	}
}

// requiresDetailJoin reports whether the axis needs the transaction
// detail relation.
func (g GroupBy) requiresDetailJoin() bool {
	switch g {
	case GroupByCategory2, GroupByCategory3, GroupByProduct:
		return true
	}
	return false
}

// joinClauses returns the JOIN text for the axis plus the bind args the
// joins carry (the language code of each *_I18N join).
func (g GroupBy) joinClauses(lang string) (string, []any) {
	switch g {
	case GroupByCategory1:
		return "LEFT JOIN CATEGORY1 c1 ON th.USER_ID = c1.USER_ID AND th.CATEGORY1_CODE = c1.CATEGORY1_CODE\n" +
				"LEFT JOIN CATEGORY1_I18N c1i ON c1.USER_ID = c1i.USER_ID AND c1.CATEGORY1_CODE = c1i.CATEGORY1_CODE AND c1i.LANG_CODE = ?",
			[]any{lang}
	case GroupByCategory2:
		return "INNER JOIN TRANSACTIONS_DETAIL td ON th.USER_ID = td.USER_ID AND th.TRANSACTION_ID = td.TRANSACTION_ID\n" +
				"LEFT JOIN CATEGORY2 c2 ON td.USER_ID = c2.USER_ID AND td.CATEGORY1_CODE = c2.CATEGORY1_CODE AND td.CATEGORY2_CODE = c2.CATEGORY2_CODE\n" +
				"LEFT JOIN CATEGORY2_I18N c2i ON c2.USER_ID = c2i.USER_ID AND c2.CATEGORY1_CODE = c2i.CATEGORY1_CODE AND c2.CATEGORY2_CODE = c2i.CATEGORY2_CODE AND c2i.LANG_CODE = ?",
			[]any{lang}
	case GroupByCategory3:
		return "INNER JOIN TRANSACTIONS_DETAIL td ON th.USER_ID = td.USER_ID AND th.TRANSACTION_ID = td.TRANSACTION_ID\n" +
				"LEFT JOIN CATEGORY3 c3 ON td.USER_ID = c3.USER_ID AND td.CATEGORY1_CODE = c3.CATEGORY1_CODE AND td.CATEGORY2_CODE = c3.CATEGORY2_CODE AND td.CATEGORY3_CODE = c3.CATEGORY3_CODE\n" +
				"LEFT JOIN CATEGORY3_I18N c3i ON c3.USER_ID = c3i.USER_ID AND c3.CATEGORY1_CODE = c3i.CATEGORY1_CODE AND c3.CATEGORY2_CODE = c3i.CATEGORY2_CODE AND c3.CATEGORY3_CODE = c3i.CATEGORY3_CODE AND c3i.LANG_CODE = ?",
			[]any{lang}
	case GroupByAccount:
		return "LEFT JOIN ACCOUNTS a ON th.USER_ID = a.USER_ID AND COALESCE(th.FROM_ACCOUNT_CODE, th.TO_ACCOUNT_CODE) = a.ACCOUNT_CODE\n" +
				"LEFT JOIN ACCOUNTS_I18N ai ON a.USER_ID = ai.USER_ID AND a.ACCOUNT_CODE = ai.ACCOUNT_CODE AND ai.LANG_CODE = ?",
			[]any{lang}
	case GroupByShop:
		return "LEFT JOIN SHOPS s ON th.USER_ID = s.USER_ID AND th.SHOP_ID = s.SHOP_ID\n" +
				"LEFT JOIN SHOPS_I18N si ON s.USER_ID = si.USER_ID AND s.SHOP_ID = si.SHOP_ID AND si.LANG_CODE = ?",
			[]any{lang}
	case GroupByProduct:
		return "LEFT JOIN TRANSACTIONS_DETAIL td ON th.USER_ID = td.USER_ID AND th.TRANSACTION_ID = td.TRANSACTION_ID\n" +
				"LEFT JOIN PRODUCTS p ON td.USER_ID = p.USER_ID AND td.PRODUCT_ID = p.PRODUCT_ID\n" +
				"LEFT JOIN PRODUCTS_I18N pi ON p.USER_ID = pi.USER_ID AND p.PRODUCT_ID = pi.PRODUCT_ID AND pi.LANG_CODE = ?",
			[]any{lang}
	default: // GroupByDate
		return "", nil
	}
}

// OrderField selects the result column to sort by. Fields resolve to
// the projected aliases, so name-based fields sort on the localized
// display label.
type OrderField int

const (
	OrderByTransactionDate OrderField = iota
	OrderByAmount
	OrderByCategoryName
	OrderByShopName
	OrderByCount
	OrderByGroupKey
)

func (f OrderField) orderExpr() string {
	switch f {
	case OrderByAmount:
		return "total_amount"
	case OrderByCategoryName, OrderByShopName:
		return "group_name"
	case OrderByCount:
		return "count"
	default: // OrderByTransactionDate, OrderByGroupKey
		return "group_key"
	}
}

// SortOrder is the sort direction.
type SortOrder int

const (
	Asc SortOrder = iota
	Desc
)

func (s SortOrder) keyword() string {
	if s == Desc {
		return "DESC"
	}
	return "ASC"
}
