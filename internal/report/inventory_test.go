package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStockStatus_Boundaries(t *testing.T) {
	cases := []struct {
		qty       int
		threshold int
		want      string
	}{
		{0, 5, stockOut},
		{1, 5, stockLow},
		{5, 5, stockLow},
		{6, 5, stockIn},
		{3, 3, stockLow},
		{100, 5, stockIn},
	}
	for _, tc := range cases {
		got := stockStatus(Product{Quantity: tc.qty, LowStockThreshold: tc.threshold})
		assert.Equal(t, tc.want, got, "qty=%d threshold=%d", tc.qty, tc.threshold)
	}
}

func TestTurnoverClass_Boundaries(t *testing.T) {
	cases := []struct {
		units int
		want  string
	}{
		{0, turnoverSlow},
		{3, turnoverSlow},
		{4, turnoverNormal},
		{10, turnoverNormal},
		{11, turnoverFast},
		{500, turnoverFast},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, turnoverClass(tc.units), "units=%d", tc.units)
	}
}

func TestStockSummary(t *testing.T) {
	ds := &Dataset{
		Window: testWindow(),
		Products: []Product{
			{ID: "p1", Name: "Kaju Katli", Quantity: 50, LowStockThreshold: 5, Price: 450},
			{ID: "p2", Name: "Diya Set", Quantity: 3, LowStockThreshold: 5, Price: 200},
			{ID: "p3", Name: "Gift Hamper", Quantity: 0, LowStockThreshold: 5, Price: 1500},
		},
	}

	res := buildStockSummary(ds, Filters{})

	assert.Equal(t, 3.0, kpiByLabel(t, res, "Products").Raw)
	assert.Equal(t, 53.0, kpiByLabel(t, res, "Stock Units").Raw)
	assert.Equal(t, 23100.0, kpiByLabel(t, res, "Stock Value").Raw)
	assert.Equal(t, 1.0, kpiByLabel(t, res, "Out of Stock").Raw)

	require.Len(t, res.Table, 3)
	assert.Equal(t, stockIn, res.Table[0]["status"], "severity order, not size order")
	assert.Equal(t, stockLow, res.Table[1]["status"])
	assert.Equal(t, stockOut, res.Table[2]["status"])
}

func TestLowStock_UrgentFirst(t *testing.T) {
	ds := &Dataset{
		Window: testWindow(),
		Products: []Product{
			{ID: "p1", Name: "Kaju Katli", Quantity: 50, LowStockThreshold: 5},
			{ID: "p2", Name: "Diya Set", Quantity: 4, LowStockThreshold: 5, Category: "Decor"},
			{ID: "p3", Name: "Gift Hamper", Quantity: 0, LowStockThreshold: 5},
			{ID: "p4", Name: "Rangoli Kit", Quantity: 2, LowStockThreshold: 5},
		},
	}

	res := buildLowStock(ds, Filters{})

	assert.Equal(t, 2.0, kpiByLabel(t, res, "Low Stock").Raw)
	assert.Equal(t, 1.0, kpiByLabel(t, res, "Out of Stock").Raw)

	require.Len(t, res.Table, 3)
	assert.Equal(t, "Gift Hamper", res.Table[0]["product"], "lowest stock first")
	assert.Equal(t, "Rangoli Kit", res.Table[1]["product"])
	assert.Equal(t, "Diya Set", res.Table[2]["product"])
	assert.Equal(t, labelUncategorized, res.Table[0]["category"])
}

func TestProductTurnover_UnsoldProductsAreSlow(t *testing.T) {
	w := testWindow()
	ds := &Dataset{
		Window: w,
		Products: []Product{
			{ID: "p1", Name: "Kaju Katli", Quantity: 20, LowStockThreshold: 5},
			{ID: "p2", Name: "Diya Set", Quantity: 8, LowStockThreshold: 5},
			{ID: "p3", Name: "Gift Hamper", Quantity: 2, LowStockThreshold: 5},
		},
		Orders: []Order{
			{ID: "o1", CreatedAt: dayIn(w, 1), Items: []OrderItem{
				{ProductID: "p1", Quantity: 12, Total: 5400},
				{ProductID: "p2", Quantity: 4, Total: 800},
			}},
		},
	}

	res := buildProductTurnover(ds, Filters{})

	assert.Equal(t, 1.0, kpiByLabel(t, res, "Fast Movers").Raw)
	assert.Equal(t, 1.0, kpiByLabel(t, res, "Normal").Raw)
	assert.Equal(t, 1.0, kpiByLabel(t, res, "Slow Movers").Raw)
	assert.Equal(t, 16.0, kpiByLabel(t, res, "Units Sold").Raw)

	require.Len(t, res.Table, 3)
	assert.Equal(t, "Kaju Katli", res.Table[0]["product"])
	assert.Equal(t, turnoverFast, res.Table[0]["turnover"])
	assert.Equal(t, "Gift Hamper", res.Table[2]["product"])
	assert.Equal(t, 0, res.Table[2]["units_sold"])
	assert.Equal(t, turnoverSlow, res.Table[2]["turnover"])
}

func TestBundlePerformance(t *testing.T) {
	w := testWindow()
	ds := &Dataset{
		Window: w,
		Orders: []Order{
			{ID: "o1", CreatedAt: dayIn(w, 1), Items: []OrderItem{
				{BundleID: "b1", ProductName: "Festive Hamper", Quantity: 2, Total: 3000},
				{ProductID: "p1", ProductName: "Kaju Katli", Quantity: 1, Total: 450},
			}},
			{ID: "o2", CreatedAt: dayIn(w, 2), Items: []OrderItem{
				{BundleID: "b1", ProductName: "Festive Hamper", Quantity: 1, Total: 1500},
			}},
		},
	}

	res := buildBundlePerformance(ds, Filters{})

	assert.Equal(t, 3.0, kpiByLabel(t, res, "Bundles Sold").Raw)
	assert.Equal(t, 4500.0, kpiByLabel(t, res, "Bundle Revenue").Raw)
	assert.InDelta(t, 90.9, kpiByLabel(t, res, "Share of Revenue").Raw, 0.05)
	assert.Equal(t, "Festive Hamper", kpiByLabel(t, res, "Top Bundle").Value)

	require.Len(t, res.Table, 1)
	assert.Equal(t, 3, res.Table[0]["units"])
}
