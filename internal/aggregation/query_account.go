package aggregation

import (
	"strconv"
	"strings"
)

// The account axis cannot reuse the generic compiler: one header row
// carries one amount, but account aggregation must attribute it to up
// to two accounts with opposite sign. A transfer debits its source
// account and credits its destination, so each transfer header fans out
// into two legs. The compiler synthesizes a UNION ALL of four signed
// flows, one per (category, leg) pair, and aggregates the unioned rows
// by account code.
var accountLegs = []struct {
	category string
	column   string
	negate   bool
}{
	{"EXPENSE", "th.FROM_ACCOUNT_CODE", true},
	{"INCOME", "th.TO_ACCOUNT_CODE", false},
	{"TRANSFER", "th.FROM_ACCOUNT_CODE", true},
	{"TRANSFER", "th.TO_ACCOUNT_CODE", false},
}

func buildAccountQuery(req Request, lang string) (string, []any) {
	datePred, dateArgs := req.Filter.Date.predicate()

	// Shared optional predicates, applied to every arm. The transfer
	// exclusion does not apply here; the category filter never does,
	// each arm pins its own category.
	var extra []string
	var extraArgs []any
	if req.Filter.Amount.HasCondition() {
		pred, predArgs := req.Filter.Amount.predicate()
		extra = append(extra, pred)
		extraArgs = append(extraArgs, predArgs...)
	}
	if req.Filter.ShopID != 0 {
		extra = append(extra, "th.SHOP_ID = ?")
		extraArgs = append(extraArgs, req.Filter.ShopID)
	}
	extraSQL := ""
	if len(extra) > 0 {
		extraSQL = " AND " + strings.Join(extra, " AND ")
	}

	var sb strings.Builder
	var args []any

	sb.WriteString("SELECT\n")
	sb.WriteString("    COALESCE(account_data.account_code, 'NONE') AS group_key,\n")
	sb.WriteString("    COALESCE(ai.ACCOUNT_NAME_I18N, a.ACCOUNT_NAME, '" + noneLabel + "') AS group_name,\n")
	sb.WriteString("    SUM(account_data.amount) AS total_amount,\n")
	sb.WriteString("    COUNT(*) AS count,\n")
	sb.WriteString("    CAST(AVG(account_data.amount) AS INTEGER) AS avg_amount\n")
	sb.WriteString("FROM (\n")

	for i, leg := range accountLegs {
		if i > 0 {
			sb.WriteString("    UNION ALL\n")
		}
		amount := "th.TOTAL_AMOUNT"
		if leg.negate {
			amount = "-th.TOTAL_AMOUNT"
		}
		sb.WriteString("    SELECT " + leg.column + " AS account_code, " + amount + " AS amount\n")
		sb.WriteString("    FROM TRANSACTIONS_HEADER th\n")
		sb.WriteString("    WHERE th.USER_ID = ? AND th.CATEGORY1_CODE = '" + leg.category + "' AND " + datePred + extraSQL + "\n")
		args = append(args, req.UserID)
		args = append(args, dateArgs...)
		args = append(args, extraArgs...)
	}

	sb.WriteString(") AS account_data\n")
	sb.WriteString("LEFT JOIN ACCOUNTS a ON a.USER_ID = ? AND a.ACCOUNT_CODE = account_data.account_code\n")
	sb.WriteString("LEFT JOIN ACCOUNTS_I18N ai ON a.USER_ID = ai.USER_ID AND a.ACCOUNT_CODE = ai.ACCOUNT_CODE AND ai.LANG_CODE = ?\n")
	args = append(args, req.UserID, lang)

	sb.WriteString("GROUP BY COALESCE(account_data.account_code, 'NONE')\n")
	sb.WriteString("ORDER BY ")
	sb.WriteString(req.OrderBy.orderExpr())
	sb.WriteString(" ")
	sb.WriteString(req.SortOrder.keyword())
	if req.Limit > 0 {
		sb.WriteString("\nLIMIT ")
		sb.WriteString(strconv.Itoa(req.Limit))
	}
	sb.WriteString("\n")

	return sb.String(), args
}
