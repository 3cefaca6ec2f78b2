package report

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kpiByLabel(t *testing.T, res ReportResult, label string) KPI {
	t.Helper()
	for _, k := range res.KPIs {
		if k.Label == label {
			return k
		}
	}
	t.Fatalf("no KPI labeled %q", label)
	return KPI{}
}

// shareSum parses the formatted share cells of every row and adds them up.
func shareSum(t *testing.T, rows []Row, col string) float64 {
	t.Helper()
	var sum float64
	for _, r := range rows {
		s, ok := r[col].(string)
		require.True(t, ok)
		v, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
		require.NoError(t, err)
		sum += v
	}
	return sum
}

func TestSalesSummary_Scenario(t *testing.T) {
	w := testWindow()
	ds := &Dataset{
		Window: w,
		Orders: []Order{
			{ID: "o1", Total: 100, Status: "delivered", CreatedAt: dayIn(w, 1)},
			{ID: "o2", Total: 200, Status: "cancelled", CreatedAt: dayIn(w, 2)},
		},
	}

	res := buildSalesSummary(ds, Filters{})

	assert.Equal(t, 2.0, kpiByLabel(t, res, "Total Orders").Raw)
	assert.Equal(t, 300.0, kpiByLabel(t, res, "Total Revenue").Raw)
	assert.Equal(t, 150.0, kpiByLabel(t, res, "Avg Order Value").Raw)
	assert.Equal(t, "₹300", kpiByLabel(t, res, "Total Revenue").Value)
	assert.Equal(t, "₹150", kpiByLabel(t, res, "Avg Order Value").Value)
}

func TestSalesSummary_TableMatchesKPIs(t *testing.T) {
	w := testWindow()
	ds := &Dataset{
		Window: w,
		Orders: []Order{
			{ID: "o1", Total: 120.50, CreatedAt: dayIn(w, 1)},
			{ID: "o2", Total: 79.50, CreatedAt: dayIn(w, 1)},
			{ID: "o3", Total: 300, CreatedAt: dayIn(w, 5)},
		},
	}

	res := buildSalesSummary(ds, Filters{})

	var tableRevenue float64
	var tableOrders int
	for _, row := range res.Table {
		tableRevenue += row["revenue"].(float64)
		tableOrders += row["orders"].(int)
	}
	assert.InDelta(t, kpiByLabel(t, res, "Total Revenue").Raw, tableRevenue, 0.01)
	assert.Equal(t, len(ds.Orders), tableOrders)
}

func TestSalesSummary_ChronologicalDays(t *testing.T) {
	w := testWindow()
	ds := &Dataset{
		Window: w,
		Orders: []Order{
			{ID: "o3", Total: 50, CreatedAt: dayIn(w, 20)},
			{ID: "o1", Total: 10, CreatedAt: dayIn(w, 3)},
			{ID: "o2", Total: 900, CreatedAt: dayIn(w, 11)},
		},
	}

	res := buildSalesSummary(ds, Filters{})

	require.NotNil(t, res.Chart)
	assert.Equal(t, ChartLine, res.Chart.Type)
	assert.Equal(t, []string{"03 Jan", "11 Jan", "20 Jan"}, res.Chart.Labels)

	dates := make([]string, 0, len(res.Table))
	for _, row := range res.Table {
		dates = append(dates, row["date"].(string))
	}
	assert.Equal(t, []string{"03 Jan", "11 Jan", "20 Jan"}, dates)
}

func TestSalesByProduct_GroupsAndFallsBack(t *testing.T) {
	w := testWindow()
	ds := &Dataset{
		Window: w,
		Products: []Product{
			{ID: "p1", Name: "Kaju Katli", Category: "Sweets", Price: 450},
		},
		Orders: []Order{
			{ID: "o1", CreatedAt: dayIn(w, 1), Items: []OrderItem{
				{ProductID: "p1", ProductName: "Kaju Katli", Quantity: 2, Total: 900},
				{ProductID: "", ProductName: "Discontinued Thali", Quantity: 1, Total: 350},
			}},
			{ID: "o2", CreatedAt: dayIn(w, 2), Items: []OrderItem{
				{ProductID: "p1", ProductName: "Kaju Katli", Quantity: 1, Total: 450},
			}},
		},
	}

	res := buildSalesByProduct(ds, Filters{})

	require.Len(t, res.Table, 2)
	assert.Equal(t, "Kaju Katli", res.Table[0]["product"], "sorted descending by revenue")
	assert.Equal(t, 1350.0, res.Table[0]["revenue"])
	assert.Equal(t, 3, res.Table[0]["units"])
	assert.Equal(t, "Discontinued Thali", res.Table[1]["product"])
	assert.Equal(t, labelUncategorized, res.Table[1]["category"])

	assert.InDelta(t, 100.0, shareSum(t, res.Table, "share"), 0.2)
	assert.Equal(t, 1700.0, kpiByLabel(t, res, "Revenue").Raw)
}

func TestSalesByProduct_CategoryFilter(t *testing.T) {
	w := testWindow()
	ds := &Dataset{
		Window: w,
		Products: []Product{
			{ID: "p1", Name: "Kaju Katli", Category: "Sweets"},
			{ID: "p2", Name: "Diya Set", Category: "Decor"},
		},
		Orders: []Order{
			{ID: "o1", CreatedAt: dayIn(w, 1), Items: []OrderItem{
				{ProductID: "p1", Quantity: 1, Total: 450},
				{ProductID: "p2", Quantity: 2, Total: 600},
			}},
		},
	}

	res := buildSalesByProduct(ds, Filters{Category: "sweets"})

	require.Len(t, res.Table, 1)
	assert.Equal(t, "Kaju Katli", res.Table[0]["product"])
	assert.Equal(t, 450.0, kpiByLabel(t, res, "Revenue").Raw)
}

func TestSalesByCoupon_IgnoresUncoupledOrders(t *testing.T) {
	w := testWindow()
	ds := &Dataset{
		Window: w,
		Orders: []Order{
			{ID: "o1", Total: 500, Discount: 50, CouponCode: "DIWALI10", CreatedAt: dayIn(w, 1)},
			{ID: "o2", Total: 300, Discount: 30, CouponCode: "DIWALI10", CreatedAt: dayIn(w, 2)},
			{ID: "o3", Total: 200, CreatedAt: dayIn(w, 3)},
		},
	}

	res := buildSalesByCoupon(ds, Filters{})

	assert.Equal(t, 2.0, kpiByLabel(t, res, "Coupon Orders").Raw)
	assert.Equal(t, 80.0, kpiByLabel(t, res, "Total Discount").Raw)
	assert.InDelta(t, 66.7, kpiByLabel(t, res, "Usage Rate").Raw, 0.05)
	require.Len(t, res.Table, 1)
	assert.Equal(t, "DIWALI10", res.Table[0]["coupon"])
	assert.Equal(t, 2, res.Table[0]["orders"])
}

func TestSalesByPaymentMethod_ShareRoundsToOneDecimal(t *testing.T) {
	w := testWindow()
	ds := &Dataset{
		Window: w,
		Orders: []Order{
			{ID: "o1", PaymentMethod: "upi", Total: 1000, CreatedAt: dayIn(w, 1)},
			{ID: "o2", PaymentMethod: "card", Total: 500, CreatedAt: dayIn(w, 1)},
			{ID: "o3", PaymentMethod: "", Total: 300, CreatedAt: dayIn(w, 2)},
		},
	}

	res := buildSalesByPaymentMethod(ds, Filters{})

	require.Len(t, res.Table, 3)
	assert.Equal(t, "upi", res.Table[0]["method"])
	assert.Equal(t, "55.6%", res.Table[0]["share"])

	var found bool
	for _, row := range res.Table {
		if row["method"] == labelUnknown {
			found = true
		}
	}
	assert.True(t, found, "blank method falls back to sentinel")
	assert.InDelta(t, 100.0, shareSum(t, res.Table, "share"), 0.2)
}
