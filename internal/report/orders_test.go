package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrdersByStatus_CountConservation(t *testing.T) {
	w := testWindow()
	ds := &Dataset{
		Window: w,
		Orders: []Order{
			{ID: "o1", Status: "delivered", Total: 100, CreatedAt: dayIn(w, 1)},
			{ID: "o2", Status: "delivered", Total: 200, CreatedAt: dayIn(w, 2)},
			{ID: "o3", Status: "cancelled", Total: 50, CreatedAt: dayIn(w, 3)},
			{ID: "o4", Status: "new", Total: 75, CreatedAt: dayIn(w, 4)},
		},
	}

	res := buildOrdersByStatus(ds, Filters{})

	var counted int
	for _, row := range res.Table {
		counted += row["orders"].(int)
	}
	assert.Equal(t, len(ds.Orders), counted, "no order dropped or double-counted")

	assert.Equal(t, "delivered", res.Table[0]["status"], "sorted by order count")
	assert.Equal(t, "delivered", kpiByLabel(t, res, "Most Common").Value)
	assert.Equal(t, 50.0, kpiByLabel(t, res, "Completion Rate").Raw)
	assert.InDelta(t, 100.0, shareSum(t, res.Table, "share"), 0.2)
}

func TestOrderValueDistribution_Bands(t *testing.T) {
	w := testWindow()
	ds := &Dataset{
		Window: w,
		Orders: []Order{
			{ID: "o1", Total: 499.99, CreatedAt: dayIn(w, 1)},
			{ID: "o2", Total: 500, CreatedAt: dayIn(w, 1)},
			{ID: "o3", Total: 999.99, CreatedAt: dayIn(w, 2)},
			{ID: "o4", Total: 1000, CreatedAt: dayIn(w, 2)},
			{ID: "o5", Total: 5000, CreatedAt: dayIn(w, 3)},
		},
	}

	res := buildOrderValueDistribution(ds, Filters{})

	require.Len(t, res.Table, 5)
	assert.Equal(t, 1, res.Table[0]["orders"], "under 500")
	assert.Equal(t, 2, res.Table[1]["orders"], "500-999")
	assert.Equal(t, 1, res.Table[2]["orders"], "1000-1999")
	assert.Equal(t, 0, res.Table[3]["orders"], "2000-4999")
	assert.Equal(t, 1, res.Table[4]["orders"], "5000 and above")

	assert.Equal(t, 5000.0, kpiByLabel(t, res, "Highest Order").Raw)
	assert.Equal(t, 999.99, kpiByLabel(t, res, "Median Order Value").Raw)

	// Histogram keeps band order, never value order.
	require.NotNil(t, res.Chart)
	assert.Equal(t, "Under ₹500", res.Chart.Labels[0])
}

func TestCancellationsReturns(t *testing.T) {
	w := testWindow()
	ds := &Dataset{
		Window: w,
		Profiles: []Profile{
			{UserID: "u1", FullName: "Asha Patel"},
		},
		Orders: []Order{
			{ID: "o1", UserID: "u1", OrderNumber: "ORD-1001", Status: "cancelled", Total: 750, CreatedAt: dayIn(w, 1)},
			{ID: "o2", OrderNumber: "ORD-1002", Status: "returned", Total: 1200, CreatedAt: dayIn(w, 2)},
			{ID: "o3", OrderNumber: "ORD-1003", Status: "delivered", Total: 900, CreatedAt: dayIn(w, 3)},
		},
	}

	res := buildCancellationsReturns(ds, Filters{})

	assert.Equal(t, 1.0, kpiByLabel(t, res, "Cancelled").Raw)
	assert.Equal(t, 1.0, kpiByLabel(t, res, "Returned").Raw)
	assert.Equal(t, 1950.0, kpiByLabel(t, res, "Lost Revenue").Raw)
	assert.InDelta(t, 66.7, kpiByLabel(t, res, "Cancellation Rate").Raw, 0.05)

	require.Len(t, res.Table, 2)
	assert.Equal(t, "ORD-1002", res.Table[0]["order"], "largest loss first")
	assert.Equal(t, labelGuest, res.Table[0]["customer"])
	assert.Equal(t, "Asha Patel", res.Table[1]["customer"])
}

func TestOrdersSummary_DailyBreakdown(t *testing.T) {
	w := testWindow()
	ds := &Dataset{
		Window: w,
		Orders: []Order{
			{ID: "o1", Status: "delivered", Total: 100, CreatedAt: dayIn(w, 1)},
			{ID: "o2", Status: "cancelled", Total: 60, CreatedAt: dayIn(w, 1)},
			{ID: "o3", Status: "shipped", Total: 40, CreatedAt: dayIn(w, 2)},
		},
	}

	res := buildOrdersSummary(ds, Filters{})

	assert.Equal(t, 3.0, kpiByLabel(t, res, "Total Orders").Raw)
	assert.Equal(t, 1.0, kpiByLabel(t, res, "Delivered").Raw)
	assert.Equal(t, 1.0, kpiByLabel(t, res, "Cancelled / Returned").Raw)

	require.Len(t, res.Table, 2)
	assert.Equal(t, 2, res.Table[0]["orders"])
	assert.Equal(t, 1, res.Table[0]["delivered"])
	assert.Equal(t, 1, res.Table[0]["cancelled"])
}
