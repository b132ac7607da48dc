package common_test

import (
	"reflect"
	"testing"

	"cafe-analytics/common"
	"cafe-analytics/records"
)

func rankingSales() []records.SalesLine {
	sales := []records.SalesLine{
		line("2024-01-01", "09:00", "Latte", 2, 8, "card"),
		line("2024-01-01", "09:30", "Mocha", 1, 5, "cash"),
		line("2024-01-01", "10:00", "Latte", 1, 4, "card"),
		line("2024-01-02", "11:00", "Scone", 3, 9, "cash"),
		line("2024-01-02", "12:00", "Mocha", 2, 10, "card"),
	}
	for i := range sales {
		sales[i].Category = "Coffee"
	}
	sales[3].Category = "Bakery"
	return sales
}

func TestRankByRevenue(t *testing.T) {
	got := common.RankBy(rankingSales(), common.GroupByItem, common.MetricRevenue, 10)
	want := []common.Ranking{
		{Key: "Mocha", Quantity: 3, Revenue: 15},
		{Key: "Latte", Quantity: 3, Revenue: 12},
		{Key: "Scone", Quantity: 3, Revenue: 9},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestRankByQuantityKeepsEncounterOrderOnTies(t *testing.T) {
	got := common.RankBy(rankingSales(), common.GroupByItem, common.MetricQuantity, 2)
	want := []common.Ranking{
		{Key: "Latte", Quantity: 3, Revenue: 12},
		{Key: "Mocha", Quantity: 3, Revenue: 15},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestRankByIsSortedAndBounded(t *testing.T) {
	for top := 1; top <= 4; top++ {
		got := common.RankBy(rankingSales(), common.GroupByPaymentMethod, common.MetricRevenue, top)
		if len(got) > top {
			t.Fatalf("top %d returned %d rankings", top, len(got))
		}
		for i := 1; i < len(got); i++ {
			if got[i].Revenue > got[i-1].Revenue {
				t.Fatalf("rankings not sorted descending: %+v", got)
			}
		}
	}
}

func TestRankByTopBelowOne(t *testing.T) {
	got := common.RankBy(rankingSales(), common.GroupByItem, common.MetricRevenue, 0)
	if len(got) != 1 || got[0].Key != "Mocha" {
		t.Fatalf("expected only Mocha, got %+v", got)
	}
}

func TestRankByEmptyInput(t *testing.T) {
	got := common.RankBy(nil, common.GroupByItem, common.MetricRevenue, 5)
	if got == nil || len(got) != 0 {
		t.Fatalf("expected an empty non-nil slice, got %#v", got)
	}
}

func TestRankByCategory(t *testing.T) {
	got := common.RankBy(rankingSales(), common.GroupByCategory, common.MetricRevenue, 5)
	want := []common.Ranking{
		{Key: "Coffee", Quantity: 6, Revenue: 27},
		{Key: "Bakery", Quantity: 3, Revenue: 9},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestRevenueShare(t *testing.T) {
	got := common.RevenueShare(rankingSales(), common.GroupByPaymentMethod)
	want := []common.Share{
		{Ranking: common.Ranking{Key: "card", Quantity: 5, Revenue: 22}, Percentage: 61.11},
		{Ranking: common.Ranking{Key: "cash", Quantity: 4, Revenue: 14}, Percentage: 38.89},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestRevenueShareWithoutRevenue(t *testing.T) {
	sales := []records.SalesLine{
		line("2024-01-01", "09:00", "Water", 1, 0, "card"),
		line("2024-01-01", "09:00", "Water", 1, 0, "cash"),
	}
	for _, share := range common.RevenueShare(sales, common.GroupByPaymentMethod) {
		if share.Percentage != 0 {
			t.Fatalf("expected 0%% share, got %+v", share)
		}
	}
	if got := common.RevenueShare(nil, common.GroupByPaymentMethod); got == nil || len(got) != 0 {
		t.Fatalf("expected an empty non-nil slice, got %#v", got)
	}
}

func TestFilterCategory(t *testing.T) {
	if got := common.FilterCategory(rankingSales(), "coffee"); len(got) != 4 {
		t.Fatalf("expected 4 coffee lines, got %d", len(got))
	}
	if got := common.FilterCategory(rankingSales(), ""); len(got) != 5 {
		t.Fatalf("expected every line, got %d", len(got))
	}
}

func TestWithMargins(t *testing.T) {
	rankings := common.RankBy(rankingSales(), common.GroupByItem, common.MetricRevenue, 10)
	menu := []records.MenuItem{{ItemName: "latte", CostToMake: 2.5}}

	got := common.WithMargins(rankings, menu)
	if len(got) != 3 {
		t.Fatalf("expected 3 items, got %d", len(got))
	}
	if got[0].Key != "Mocha" || got[0].GrossMargin != nil || got[0].UnitCost != nil {
		t.Fatalf("expected Mocha without margins, got %+v", got[0])
	}
	latte := got[1]
	if latte.UnitCost == nil || *latte.UnitCost != 2.5 {
		t.Fatalf("expected Latte unit cost 2.5, got %+v", latte)
	}
	if *latte.GrossMargin != 4.5 || *latte.MarginPct != 37.5 {
		t.Fatalf("expected margin 4.5 (37.5%%), got %v (%v%%)", *latte.GrossMargin, *latte.MarginPct)
	}
}
