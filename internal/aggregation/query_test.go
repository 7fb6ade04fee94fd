package aggregation

import (
	"strings"
	"testing"
)

func monthlyRequest(t *testing.T, groupBy GroupBy) Request {
	t.Helper()
	req, err := testBuilder().Monthly(1, 2025, 5, groupBy)
	if err != nil {
		t.Fatal(err)
	}
	return req
}

func TestBuildQueryShape(t *testing.T) {
	axes := []GroupBy{
		GroupByCategory1, GroupByCategory2, GroupByCategory3,
		GroupByShop, GroupByProduct, GroupByDate,
	}
	for _, axis := range axes {
		t.Run(axis.String(), func(t *testing.T) {
			req := monthlyRequest(t, axis).WithLimit(10)
			sql, args := BuildQuery(req, "ja")

			for _, want := range []string{"SELECT", "FROM TRANSACTIONS_HEADER", "GROUP BY", "ORDER BY", "LIMIT 10"} {
				if !strings.Contains(sql, want) {
					t.Errorf("missing %q in:\n%s", want, sql)
				}
			}
			if !strings.Contains(sql, "th.CATEGORY1_CODE != 'TRANSFER'") {
				t.Error("transfer exclusion missing")
			}
			if strings.Count(sql, "?") != len(args) {
				t.Errorf("%d placeholders for %d args", strings.Count(sql, "?"), len(args))
			}
			// No filter value may leak into the text.
			for _, leaked := range []string{"2025-05-01", "2025-05-31"} {
				if strings.Contains(sql, leaked) {
					t.Errorf("value %q interpolated into SQL", leaked)
				}
			}
		})
	}
}

func TestBuildQueryDetailJoins(t *testing.T) {
	cases := []struct {
		axis       GroupBy
		detailJoin bool
	}{
		{GroupByCategory1, false},
		{GroupByCategory2, true},
		{GroupByCategory3, true},
		{GroupByShop, false},
		{GroupByProduct, true},
		{GroupByDate, false},
	}
	for _, tc := range cases {
		if got := tc.axis.requiresDetailJoin(); got != tc.detailJoin {
			t.Errorf("%s: requiresDetailJoin = %v", tc.axis, got)
		}
		sql, _ := BuildQuery(monthlyRequest(t, tc.axis), "en")
		joined := strings.Contains(sql, "TRANSACTIONS_DETAIL")
		if joined != tc.detailJoin {
			t.Errorf("%s: detail join present = %v, want %v", tc.axis, joined, tc.detailJoin)
		}
	}
}

func TestBuildQueryCompositeGroupKeys(t *testing.T) {
	sql, _ := BuildQuery(monthlyRequest(t, GroupByCategory2), "en")
	if !strings.Contains(sql, "GROUP BY td.CATEGORY1_CODE, td.CATEGORY2_CODE") {
		t.Errorf("category2 group key:\n%s", sql)
	}

	sql, _ = BuildQuery(monthlyRequest(t, GroupByCategory3), "en")
	if !strings.Contains(sql, "GROUP BY td.CATEGORY1_CODE, td.CATEGORY2_CODE, td.CATEGORY3_CODE") {
		t.Errorf("category3 group key:\n%s", sql)
	}
}

func TestBuildQueryOptionalFilters(t *testing.T) {
	req := monthlyRequest(t, GroupByCategory1)
	req.Filter = req.Filter.
		WithAmount(AmountGreaterThanOrEqual(1000)).
		WithCategory(ByCategory1("EXPENSE")).
		WithShop(7)

	sql, args := BuildQuery(req, "en")
	for _, want := range []string{"th.TOTAL_AMOUNT >= ?", "th.CATEGORY1_CODE = ?", "th.SHOP_ID = ?"} {
		if !strings.Contains(sql, want) {
			t.Errorf("missing %q", want)
		}
	}
	// lang, user, two dates, amount, category code, shop id.
	if len(args) != 7 {
		t.Fatalf("got %d args: %v", len(args), args)
	}

	// A filter without conditions renders nothing.
	bare, bareArgs := BuildQuery(monthlyRequest(t, GroupByCategory1), "en")
	if strings.Contains(bare, "TOTAL_AMOUNT >=") || strings.Contains(bare, "SHOP_ID") {
		t.Error("optional predicates rendered for empty filters")
	}
	// lang, user, two dates.
	if len(bareArgs) != 4 {
		t.Fatalf("got %d args: %v", len(bareArgs), bareArgs)
	}
}

func TestBuildQueryArgOrder(t *testing.T) {
	req := monthlyRequest(t, GroupByCategory1)
	_, args := BuildQuery(req, "ja")

	want := []any{"ja", int64(1), "2025-05-01", "2025-05-31"}
	assertArgs(t, 0, args, want)
}

func TestBuildQuerySortResolution(t *testing.T) {
	cases := []struct {
		field OrderField
		want  string
	}{
		{OrderByTransactionDate, "ORDER BY group_key"},
		{OrderByAmount, "ORDER BY total_amount"},
		{OrderByCategoryName, "ORDER BY group_name"},
		{OrderByShopName, "ORDER BY group_name"},
		{OrderByCount, "ORDER BY count"},
		{OrderByGroupKey, "ORDER BY group_key"},
	}
	for _, tc := range cases {
		req := monthlyRequest(t, GroupByCategory1).WithSort(tc.field, Asc)
		sql, _ := BuildQuery(req, "en")
		if !strings.Contains(sql, tc.want+" ASC") {
			t.Errorf("field %v: missing %q ASC", tc.field, tc.want)
		}
	}

	req := monthlyRequest(t, GroupByCategory1).WithSort(OrderByAmount, Desc)
	sql, _ := BuildQuery(req, "en")
	if !strings.Contains(sql, "ORDER BY total_amount DESC") {
		t.Error("descending sort not rendered")
	}
}

func TestBuildQueryIdempotent(t *testing.T) {
	req := monthlyRequest(t, GroupByCategory2).WithLimit(5)
	req.Filter = req.Filter.WithAmount(AmountBetween(100, 5000))

	first, firstArgs := BuildQuery(req, "ja")
	second, secondArgs := BuildQuery(req, "ja")
	if first != second {
		t.Fatal("recompiling the same request produced different SQL")
	}
	assertArgs(t, 0, secondArgs, firstArgs)
}

func TestBuildQueryNoLimitByDefault(t *testing.T) {
	sql, _ := BuildQuery(monthlyRequest(t, GroupByCategory1), "en")
	if strings.Contains(sql, "LIMIT") {
		t.Error("limit rendered for unlimited request")
	}
}

func TestBuildAccountQueryShape(t *testing.T) {
	req := monthlyRequest(t, GroupByAccount).WithLimit(3)
	sql, args := BuildQuery(req, "ja")

	if got := strings.Count(sql, "UNION ALL"); got != 3 {
		t.Fatalf("expected 3 UNION ALL separators for 4 arms, got %d", got)
	}

	// One arm per (category, leg) pair with the right sign.
	arms := []string{
		"SELECT th.FROM_ACCOUNT_CODE AS account_code, -th.TOTAL_AMOUNT AS amount",
		"SELECT th.TO_ACCOUNT_CODE AS account_code, th.TOTAL_AMOUNT AS amount",
	}
	for _, arm := range arms {
		if !strings.Contains(sql, arm) {
			t.Errorf("missing arm %q", arm)
		}
	}
	if got := strings.Count(sql, "th.CATEGORY1_CODE = 'TRANSFER'"); got != 2 {
		t.Errorf("expected 2 transfer arms, got %d", got)
	}
	if got := strings.Count(sql, "th.CATEGORY1_CODE = 'EXPENSE'"); got != 1 {
		t.Errorf("expected 1 expense arm, got %d", got)
	}
	if got := strings.Count(sql, "th.CATEGORY1_CODE = 'INCOME'"); got != 1 {
		t.Errorf("expected 1 income arm, got %d", got)
	}

	// The transfer exclusion never applies on the account axis.
	if strings.Contains(sql, "!= 'TRANSFER'") {
		t.Error("transfer exclusion leaked into account query")
	}

	for _, want := range []string{"LEFT JOIN ACCOUNTS a", "GROUP BY", "ORDER BY total_amount DESC", "LIMIT 3"} {
		if !strings.Contains(sql, want) {
			t.Errorf("missing %q", want)
		}
	}
	if strings.Count(sql, "?") != len(args) {
		t.Errorf("%d placeholders for %d args", strings.Count(sql, "?"), len(args))
	}
}

func TestBuildAccountQuerySharedPredicates(t *testing.T) {
	req := monthlyRequest(t, GroupByAccount)
	req.Filter = req.Filter.WithAmount(AmountGreaterThanOrEqual(500)).WithShop(2)

	sql, args := BuildQuery(req, "en")

	// Every arm repeats the shared predicates.
	if got := strings.Count(sql, "th.TOTAL_AMOUNT >= ?"); got != 4 {
		t.Errorf("amount predicate in %d arms, want 4", got)
	}
	if got := strings.Count(sql, "th.SHOP_ID = ?"); got != 4 {
		t.Errorf("shop predicate in %d arms, want 4", got)
	}

	// Per arm: user, 2 dates, amount, shop; plus outer join user + lang.
	if len(args) != 4*5+2 {
		t.Fatalf("got %d args", len(args))
	}
}

func TestBuildAccountQueryIdempotent(t *testing.T) {
	req := monthlyRequest(t, GroupByAccount)
	first, _ := BuildQuery(req, "ja")
	second, _ := BuildQuery(req, "ja")
	if first != second {
		t.Fatal("recompiling the same account request produced different SQL")
	}
}
