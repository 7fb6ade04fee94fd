package aggregation

import (
	"testing"
)

func TestDateFilterPredicates(t *testing.T) {
	cases := []struct {
		filter   DateFilter
		wantSQL  string
		wantArgs []any
	}{
		{
			DateFrom(date(2025, 1, 1)),
			"DATE(th.TRANSACTION_DATE) >= ?",
			[]any{"2025-01-01"},
		},
		{
			DateTo(date(2025, 12, 31)),
			"DATE(th.TRANSACTION_DATE) <= ?",
			[]any{"2025-12-31"},
		},
		{
			DateBetween(date(2025, 1, 1), date(2025, 12, 31)),
			"DATE(th.TRANSACTION_DATE) BETWEEN ? AND ?",
			[]any{"2025-01-01", "2025-12-31"},
		},
		{
			DateExact(date(2025, 6, 15)),
			"DATE(th.TRANSACTION_DATE) = ?",
			[]any{"2025-06-15"},
		},
	}
	for i, tc := range cases {
		sql, args := tc.filter.predicate()
		if sql != tc.wantSQL {
			t.Errorf("case %d: sql = %q, want %q", i, sql, tc.wantSQL)
		}
		assertArgs(t, i, args, tc.wantArgs)
	}
}

func TestAmountFilterPredicates(t *testing.T) {
	cases := []struct {
		filter   AmountFilter
		wantSQL  string
		wantArgs []any
	}{
		{AmountGreaterThanOrEqual(1000), "th.TOTAL_AMOUNT >= ?", []any{int64(1000)}},
		{AmountLessThanOrEqual(500), "th.TOTAL_AMOUNT <= ?", []any{int64(500)}},
		{AmountBetween(100, 200), "th.TOTAL_AMOUNT BETWEEN ? AND ?", []any{int64(100), int64(200)}},
		{AmountExact(150), "th.TOTAL_AMOUNT = ?", []any{int64(150)}},
		{AmountFilter{}, "", nil},
	}
	for i, tc := range cases {
		sql, args := tc.filter.predicate()
		if sql != tc.wantSQL {
			t.Errorf("case %d: sql = %q, want %q", i, sql, tc.wantSQL)
		}
		assertArgs(t, i, args, tc.wantArgs)
	}
}

func TestAmountFilterNoneHasNoCondition(t *testing.T) {
	if (AmountFilter{}).HasCondition() {
		t.Fatal("zero amount filter should carry no condition")
	}
	if !AmountExact(1).HasCondition() {
		t.Fatal("exact amount filter should carry a condition")
	}
}

func TestCategoryFilterPredicates(t *testing.T) {
	cases := []struct {
		filter   CategoryFilter
		wantSQL  string
		wantArgs []any
	}{
		{
			ByCategory1("EXPENSE"),
			"th.CATEGORY1_CODE = ?",
			[]any{"EXPENSE"},
		},
		{
			ByCategory2("EXPENSE", "FOOD"),
			"th.CATEGORY1_CODE = ? AND th.CATEGORY2_CODE = ?",
			[]any{"EXPENSE", "FOOD"},
		},
		{
			ByCategory3("EXPENSE", "FOOD", "GROCERY"),
			"th.CATEGORY1_CODE = ? AND th.CATEGORY2_CODE = ? AND th.CATEGORY3_CODE = ?",
			[]any{"EXPENSE", "FOOD", "GROCERY"},
		},
		{CategoryFilter{}, "", nil},
	}
	for i, tc := range cases {
		sql, args := tc.filter.predicate()
		if sql != tc.wantSQL {
			t.Errorf("case %d: sql = %q, want %q", i, sql, tc.wantSQL)
		}
		assertArgs(t, i, args, tc.wantArgs)
	}
}

func TestFilterComposition(t *testing.T) {
	base := NewFilter(DateFrom(date(2025, 1, 1)))

	composed := base.
		WithAmount(AmountGreaterThanOrEqual(1000)).
		WithCategory(ByCategory1("EXPENSE")).
		WithShop(5)

	if composed.Amount != AmountGreaterThanOrEqual(1000) {
		t.Error("amount filter not applied")
	}
	if composed.Category != ByCategory1("EXPENSE") {
		t.Error("category filter not applied")
	}
	if composed.ShopID != 5 {
		t.Error("shop filter not applied")
	}

	// Composition must not touch the base value.
	if base.Amount.HasCondition() || base.Category.HasCondition() || base.ShopID != 0 {
		t.Error("base filter was mutated")
	}
}

func assertArgs(t *testing.T, caseNum int, got, want []any) {
	t.Helper()
	if len(got) != len(want) {
		t.Errorf("case %d: got %d args, want %d", caseNum, len(got), len(want))
		return
	}
	for j := range want {
		if got[j] != want[j] {
			t.Errorf("case %d: arg %d = %v, want %v", caseNum, j, got[j], want[j])
		}
	}
}
