package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpenseByCategory_Scenario(t *testing.T) {
	w := testWindow()
	ds := &Dataset{
		Window: w,
		Expenses: []Expense{
			{Category: "ads", Amount: 500, SpentOn: dayIn(w, 1)},
			{Category: "ads", Amount: 300, SpentOn: dayIn(w, 2)},
			{Category: "rent", Amount: 1000, SpentOn: dayIn(w, 3)},
		},
	}

	res := buildExpenseByCategory(ds, Filters{})

	require.Len(t, res.Table, 2)
	assert.Equal(t, Row{"name": "rent", "value": 1000.0, "share": "55.6%"}, res.Table[0])
	assert.Equal(t, Row{"name": "ads", "value": 800.0, "share": "44.4%"}, res.Table[1])
	assert.Equal(t, []string{"name", "value", "share"}, res.Columns)

	assert.Equal(t, 1800.0, kpiByLabel(t, res, "Total Expenses").Raw)
	assert.Equal(t, "rent", kpiByLabel(t, res, "Top Category").Value)
}

func TestExpenseSummary_MonthlyBuckets(t *testing.T) {
	w := Window{
		Since: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		Until: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
	}
	ds := &Dataset{
		Window: w,
		Expenses: []Expense{
			{Category: "rent", Amount: 1000, SpentOn: time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)},
			{Category: "ads", Amount: 200, SpentOn: time.Date(2025, 1, 28, 0, 0, 0, 0, time.UTC)},
			{Category: "rent", Amount: 1000, SpentOn: time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)},
		},
	}

	res := buildExpenseSummary(ds, Filters{})

	assert.Equal(t, 2200.0, kpiByLabel(t, res, "Total Expenses").Raw)
	assert.Equal(t, 3.0, kpiByLabel(t, res, "Entries").Raw)
	assert.Equal(t, 1100.0, kpiByLabel(t, res, "Avg per Month").Raw)
	assert.Equal(t, "rent", kpiByLabel(t, res, "Top Category").Value)

	require.Len(t, res.Table, 2)
	assert.Equal(t, "Jan 2025", res.Table[0]["month"])
	assert.Equal(t, 1200.0, res.Table[0]["amount"])
	assert.Equal(t, "Mar 2025", res.Table[1]["month"])
}

func TestProfitLoss(t *testing.T) {
	jan := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2025, 2, 15, 0, 0, 0, 0, time.UTC)
	w := Window{
		Since: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		Until: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
	}
	ds := &Dataset{
		Window: w,
		Orders: []Order{
			{ID: "o1", Status: "delivered", Total: 5000, CreatedAt: jan},
			{ID: "o2", Status: "shipped", Total: 3000, CreatedAt: feb},
			{ID: "o3", Status: "cancelled", Total: 9999, CreatedAt: feb},
		},
		Expenses: []Expense{
			{Category: "rent", Amount: 2000, SpentOn: jan},
			{Category: "ads", Amount: 4000, SpentOn: feb},
		},
	}

	res := buildProfitLoss(ds, Filters{})

	assert.Equal(t, 8000.0, kpiByLabel(t, res, "Revenue").Raw, "cancelled orders excluded")
	assert.Equal(t, 6000.0, kpiByLabel(t, res, "Expenses").Raw)
	assert.Equal(t, 2000.0, kpiByLabel(t, res, "Net Profit").Raw)
	assert.Equal(t, 25.0, kpiByLabel(t, res, "Margin").Raw)

	require.Len(t, res.Table, 2)
	assert.Equal(t, "Jan 2025", res.Table[0]["month"])
	assert.Equal(t, 3000.0, res.Table[0]["profit"])
	assert.Equal(t, "Feb 2025", res.Table[1]["month"])
	assert.Equal(t, -1000.0, res.Table[1]["profit"])
	assert.Equal(t, "-33.3%", res.Table[1]["margin"])
}

func TestProfitLoss_ZeroRevenueMonthGuarded(t *testing.T) {
	mar := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	w := Window{
		Since: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		Until: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
	}
	ds := &Dataset{
		Window:   w,
		Expenses: []Expense{{Category: "rent", Amount: 1000, SpentOn: mar}},
	}

	res := buildProfitLoss(ds, Filters{})

	assert.Equal(t, -1000.0, kpiByLabel(t, res, "Net Profit").Raw)
	assert.Equal(t, 0.0, kpiByLabel(t, res, "Margin").Raw)
	require.Len(t, res.Table, 1)
	assert.Equal(t, "0.0%", res.Table[0]["margin"])
}
