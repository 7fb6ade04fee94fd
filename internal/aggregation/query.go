package aggregation

import (
	"strconv"
	"strings"
)

// The compiler renders one SQL statement per request. All values travel
// as bind parameters in the returned args slice, ordered exactly as
// their placeholders appear in the text; only fixed, enumerated
// fragments (column expressions, operators, sort keywords) are
// interpolated. Compilation is deterministic: the same request and
// language always yield byte-identical SQL.

// signedAmountExpr maps a transaction to its signed contribution:
// money out counts negative, money in positive, and a transfer nets to
// zero on every axis except the account axis, which has its own
// compilation path.
const signedAmountExpr = `CASE
            WHEN th.CATEGORY1_CODE = 'EXPENSE' THEN -th.TOTAL_AMOUNT
            WHEN th.CATEGORY1_CODE = 'INCOME' THEN th.TOTAL_AMOUNT
            WHEN th.CATEGORY1_CODE = 'TRANSFER' THEN 0
            ELSE th.TOTAL_AMOUNT
        END`

// BuildQuery compiles a request into SQL text plus its bind args. The
// language code selects *_I18N translation rows for display names.
func BuildQuery(req Request, lang string) (string, []any) {
	if req.GroupBy == GroupByAccount {
		return buildAccountQuery(req, lang)
	}

	joins, joinArgs := req.GroupBy.joinClauses(lang)
	where, whereArgs := buildWhereClause(req.UserID, req.Filter, true)

	var sb strings.Builder
	sb.WriteString("SELECT\n    ")
	sb.WriteString(req.GroupBy.selectClause())
	sb.WriteString(",\n    SUM(")
	sb.WriteString(signedAmountExpr)
	sb.WriteString(") AS total_amount,\n    COUNT(*) AS count,\n    CAST(AVG(")
	sb.WriteString(signedAmountExpr)
	sb.WriteString(") AS INTEGER) AS avg_amount\nFROM TRANSACTIONS_HEADER th\n")
	if joins != "" {
		sb.WriteString(joins)
		sb.WriteString("\n")
	}
	sb.WriteString("WHERE ")
	sb.WriteString(where)
	sb.WriteString("\nGROUP BY ")
	sb.WriteString(req.GroupBy.groupByClause())
	sb.WriteString("\nORDER BY ")
	sb.WriteString(req.OrderBy.orderExpr())
	sb.WriteString(" ")
	sb.WriteString(req.SortOrder.keyword())
	if req.Limit > 0 {
		sb.WriteString("\nLIMIT ")
		sb.WriteString(strconv.Itoa(req.Limit))
	}
	sb.WriteString("\n")

	args := make([]any, 0, len(joinArgs)+len(whereArgs))
	args = append(args, joinArgs...)
	args = append(args, whereArgs...)
	return sb.String(), args
}

// buildWhereClause renders the conjunction of the user predicate, the
// date predicate, optionally the transfer exclusion, and whatever
// optional filters carry a condition. Transfers net to zero when viewed
// by category, shop, product or date, so those axes exclude them up
// front; the account path passes excludeTransfer=false.
func buildWhereClause(userID int64, filter Filter, excludeTransfer bool) (string, []any) {
	datePred, dateArgs := filter.Date.predicate()

	conditions := []string{"th.USER_ID = ?", datePred}
	args := append([]any{userID}, dateArgs...)

	if excludeTransfer {
		conditions = append(conditions, "th.CATEGORY1_CODE != 'TRANSFER'")
	}
	if filter.Amount.HasCondition() {
		pred, predArgs := filter.Amount.predicate()
		conditions = append(conditions, pred)
		args = append(args, predArgs...)
	}
	if filter.Category.HasCondition() {
		pred, predArgs := filter.Category.predicate()
		conditions = append(conditions, pred)
		args = append(args, predArgs...)
	}
	if filter.ShopID != 0 {
		conditions = append(conditions, "th.SHOP_ID = ?")
		args = append(args, filter.ShopID)
	}

	return strings.Join(conditions, " AND "), args
}
