package report

import "time"

// Expense reports: spend over time, category split and the profit & loss view.

func expensesDefinitions() []Definition {
	return []Definition{
		{
			ID:       "expense-summary",
			Title:    "Expense Summary",
			Category: CategoryExpenses,
			Needs:    Needs{Expenses: true},
			Build:    buildExpenseSummary,
		},
		{
			ID:       "expense-by-category",
			Title:    "Expenses by Category",
			Category: CategoryExpenses,
			Needs:    Needs{Expenses: true},
			Build:    buildExpenseByCategory,
		},
		{
			ID:       "profit-loss",
			Title:    "Profit & Loss",
			Category: CategoryExpenses,
			Needs:    Needs{Orders: true, Expenses: true},
			Build:    buildProfitLoss,
		},
	}
}

func buildExpenseSummary(ds *Dataset, _ Filters) ReportResult {
	type bucket struct {
		entries int
		amount  float64
	}
	months := make(map[time.Time]*bucket)

	var total float64
	categories := make(map[string]float64)
	for _, e := range ds.Expenses {
		total += e.Amount
		category := e.Category
		if category == "" {
			category = labelUncategorized
		}
		categories[category] += e.Amount
		m := monthOf(e.SpentOn)
		b := months[m]
		if b == nil {
			b = &bucket{}
			months[m] = b
		}
		b.entries++
		b.amount += e.Amount
	}

	topCategory := labelNone
	var topAmount float64
	for category, amount := range categories {
		if amount > topAmount {
			topAmount = amount
			topCategory = category
		}
	}

	keys := sortedTimes(months)
	labels := make([]string, 0, len(keys))
	series := make([]float64, 0, len(keys))
	rows := make([]Row, 0, len(keys))
	for _, k := range keys {
		b := months[k]
		labels = append(labels, monthLabel(k))
		series = append(series, round2(b.amount))
		rows = append(rows, Row{
			"month":   monthLabel(k),
			"entries": b.entries,
			"amount":  round2(b.amount),
		})
	}

	return ReportResult{
		KPIs: []KPI{
			moneyKPI("Total Expenses", total, "red"),
			countKPI("Entries", len(ds.Expenses), "blue"),
			moneyKPI("Avg per Month", safeDiv(total, float64(len(months))), "purple"),
			textKPI("Top Category", topCategory, "orange"),
		},
		Chart: chartOrNil(ChartSpec{
			Type:   ChartLine,
			Labels: labels,
			Series: []Series{{Name: "Expenses", Data: series}},
		}),
		Columns: []string{"month", "entries", "amount"},
		Table:   rows,
	}
}

func buildExpenseByCategory(ds *Dataset, _ Filters) ReportResult {
	groups := make(map[string]float64)
	var total float64
	for _, e := range ds.Expenses {
		category := e.Category
		if category == "" {
			category = labelUncategorized
		}
		groups[category] += e.Amount
		total += e.Amount
	}

	rows := make([]Row, 0, len(groups))
	topCategory := labelNone
	var topAmount float64
	for category, amount := range groups {
		if amount > topAmount {
			topAmount = amount
			topCategory = category
		}
		rows = append(rows, Row{
			"name":  category,
			"value": round2(amount),
			"share": formatPercent(share(amount, total)),
		})
	}
	sortRowsDesc(rows, "value")

	return ReportResult{
		KPIs: []KPI{
			moneyKPI("Total Expenses", total, "red"),
			countKPI("Categories", len(groups), "blue"),
			textKPI("Top Category", topCategory, "purple"),
			percentKPI("Top Share", share(topAmount, total), "orange"),
		},
		Chart:   chartOrNil(pieChart(rows, "name", "Expenses", "value")),
		Columns: []string{"name", "value", "share"},
		Table:   rows,
	}
}

func buildProfitLoss(ds *Dataset, _ Filters) ReportResult {
	type bucket struct {
		revenue  float64
		expenses float64
	}
	months := make(map[time.Time]*bucket)
	at := func(t time.Time) *bucket {
		m := monthOf(t)
		b := months[m]
		if b == nil {
			b = &bucket{}
			months[m] = b
		}
		return b
	}

	var revenue float64
	for _, o := range ds.Orders {
		// Cancelled and returned orders never earned their total.
		if o.Status == "cancelled" || o.Status == "returned" {
			continue
		}
		revenue += o.Total
		at(o.CreatedAt).revenue += o.Total
	}
	var expenses float64
	for _, e := range ds.Expenses {
		expenses += e.Amount
		at(e.SpentOn).expenses += e.Amount
	}
	profit := revenue - expenses
	margin := share(profit, revenue)

	keys := sortedTimes(months)
	labels := make([]string, 0, len(keys))
	revSeries := make([]float64, 0, len(keys))
	expSeries := make([]float64, 0, len(keys))
	rows := make([]Row, 0, len(keys))
	for _, k := range keys {
		b := months[k]
		monthProfit := b.revenue - b.expenses
		labels = append(labels, monthLabel(k))
		revSeries = append(revSeries, round2(b.revenue))
		expSeries = append(expSeries, round2(b.expenses))
		rows = append(rows, Row{
			"month":    monthLabel(k),
			"revenue":  round2(b.revenue),
			"expenses": round2(b.expenses),
			"profit":   round2(monthProfit),
			"margin":   formatPercent(share(monthProfit, b.revenue)),
		})
	}

	profitColor := "green"
	if profit < 0 {
		profitColor = "red"
	}

	return ReportResult{
		KPIs: []KPI{
			moneyKPI("Revenue", revenue, "green"),
			moneyKPI("Expenses", expenses, "red"),
			moneyKPI("Net Profit", profit, profitColor),
			percentKPI("Margin", margin, "purple"),
		},
		Chart: chartOrNil(ChartSpec{
			Type:   ChartBar,
			Labels: labels,
			Series: []Series{
				{Name: "Revenue", Data: revSeries},
				{Name: "Expenses", Data: expSeries},
			},
		}),
		Columns: []string{"month", "revenue", "expenses", "profit", "margin"},
		Table:   rows,
	}
}
