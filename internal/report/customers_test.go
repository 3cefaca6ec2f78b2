package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopCustomers(t *testing.T) {
	w := testWindow()
	ds := &Dataset{
		Window: w,
		Profiles: []Profile{
			{UserID: "u1", FullName: "Asha Patel"},
			{UserID: "u2", FullName: "Ravi Nair"},
		},
		Orders: []Order{
			{ID: "o1", UserID: "u1", Total: 1200, CreatedAt: dayIn(w, 1)},
			{ID: "o2", UserID: "u1", Total: 800, CreatedAt: dayIn(w, 5)},
			{ID: "o3", UserID: "u2", Total: 500, CreatedAt: dayIn(w, 6)},
			{ID: "o4", Total: 999, CreatedAt: dayIn(w, 7)},
			{ID: "o5", UserID: "u-gone", Total: 50, CreatedAt: dayIn(w, 8)},
		},
	}

	res := buildTopCustomers(ds, Filters{})

	assert.Equal(t, 3.0, kpiByLabel(t, res, "Customers").Raw, "guest orders excluded from ranking")
	assert.Equal(t, 1.0, kpiByLabel(t, res, "Guest Orders").Raw)
	assert.Equal(t, "Asha Patel", kpiByLabel(t, res, "Top Customer").Value)
	assert.Equal(t, 2000.0, kpiByLabel(t, res, "Top Customer Spend").Raw)

	require.Len(t, res.Table, 3)
	assert.Equal(t, "Asha Patel", res.Table[0]["customer"])
	assert.Equal(t, 2, res.Table[0]["orders"])
	assert.Equal(t, 1000.0, res.Table[0]["avg_order_value"])
	assert.Equal(t, labelUnknown, res.Table[2]["customer"], "deleted profile falls back to sentinel")
}

func TestNewVsReturning(t *testing.T) {
	w := testWindow()
	beforeWindow := w.Since.AddDate(0, -2, 0)
	ds := &Dataset{
		Window: w,
		Profiles: []Profile{
			{UserID: "u-new", FullName: "New Customer", CreatedAt: dayIn(w, 2)},
			{UserID: "u-old", FullName: "Old Customer", CreatedAt: beforeWindow},
		},
		Orders: []Order{
			{ID: "o1", UserID: "u-new", Total: 300, CreatedAt: dayIn(w, 3)},
			{ID: "o2", UserID: "u-old", Total: 700, CreatedAt: dayIn(w, 4)},
			{ID: "o3", UserID: "u-old", Total: 200, CreatedAt: dayIn(w, 9)},
			{ID: "o4", Total: 100, CreatedAt: dayIn(w, 10)},
		},
	}

	res := buildNewVsReturning(ds, Filters{})

	assert.Equal(t, 1.0, kpiByLabel(t, res, "New Customers").Raw)
	assert.Equal(t, 1.0, kpiByLabel(t, res, "Returning Customers").Raw)
	assert.Equal(t, 1.0, kpiByLabel(t, res, "Guest Orders").Raw)
	assert.Equal(t, 50.0, kpiByLabel(t, res, "Returning Share").Raw)

	require.Len(t, res.Table, 3)
	assert.Equal(t, "New", res.Table[0]["segment"])
	assert.Equal(t, 2, res.Table[1]["orders"])
	assert.InDelta(t, 100.0, shareSum(t, res.Table, "share"), 0.2)
}

func TestCustomerGrowth(t *testing.T) {
	w := Window{
		Since: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		Until: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
	}
	ds := &Dataset{
		Window: w,
		Profiles: []Profile{
			{UserID: "u0", CreatedAt: time.Date(2024, 11, 5, 0, 0, 0, 0, time.UTC)},
			{UserID: "u1", CreatedAt: time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)},
			{UserID: "u2", CreatedAt: time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC)},
			{UserID: "u3", CreatedAt: time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC), IsBlocked: true},
		},
	}

	res := buildCustomerGrowth(ds, Filters{})

	assert.Equal(t, 4.0, kpiByLabel(t, res, "Total Customers").Raw)
	assert.Equal(t, 3.0, kpiByLabel(t, res, "New Signups").Raw)
	assert.Equal(t, 1.0, kpiByLabel(t, res, "Blocked").Raw)

	require.Len(t, res.Table, 2)
	assert.Equal(t, "Jan 2025", res.Table[0]["month"])
	assert.Equal(t, 2, res.Table[0]["signups"])
	assert.Equal(t, "Mar 2025", res.Table[1]["month"])
	assert.Equal(t, 3, res.Table[1]["cumulative"])
}
