package report

import (
	"sort"
	"time"
)

// Order reports: volume, status mix, value spread and the cancellation picture.

func ordersDefinitions() []Definition {
	return []Definition{
		{
			ID:       "orders-summary",
			Title:    "Orders Summary",
			Category: CategoryOrders,
			Needs:    Needs{Orders: true},
			Build:    buildOrdersSummary,
		},
		{
			ID:       "orders-by-status",
			Title:    "Orders by Status",
			Category: CategoryOrders,
			Needs:    Needs{Orders: true},
			Build:    buildOrdersByStatus,
		},
		{
			ID:       "order-value-distribution",
			Title:    "Order Value Distribution",
			Category: CategoryOrders,
			Needs:    Needs{Orders: true},
			Build:    buildOrderValueDistribution,
		},
		{
			ID:       "cancellations-returns",
			Title:    "Cancellations & Returns",
			Category: CategoryOrders,
			Needs:    Needs{Orders: true, Profiles: true},
			Build:    buildCancellationsReturns,
		},
	}
}

func buildOrdersSummary(ds *Dataset, _ Filters) ReportResult {
	type bucket struct {
		orders    int
		delivered int
		cancelled int
		revenue   float64
	}
	days := make(map[time.Time]*bucket)

	var delivered, cancelled int
	var revenue float64
	for _, o := range ds.Orders {
		revenue += o.Total
		d := dayOf(o.CreatedAt)
		b := days[d]
		if b == nil {
			b = &bucket{}
			days[d] = b
		}
		b.orders++
		b.revenue += o.Total
		switch o.Status {
		case "delivered":
			delivered++
			b.delivered++
		case "cancelled", "returned":
			cancelled++
			b.cancelled++
		}
	}

	keys := sortedTimes(days)
	labels := make([]string, 0, len(keys))
	series := make([]float64, 0, len(keys))
	rows := make([]Row, 0, len(keys))
	for _, k := range keys {
		b := days[k]
		labels = append(labels, dayLabel(k))
		series = append(series, float64(b.orders))
		rows = append(rows, Row{
			"date":      dayLabel(k),
			"orders":    b.orders,
			"delivered": b.delivered,
			"cancelled": b.cancelled,
			"revenue":   round2(b.revenue),
		})
	}

	return ReportResult{
		KPIs: []KPI{
			countKPI("Total Orders", len(ds.Orders), "blue"),
			countKPI("Delivered", delivered, "green"),
			countKPI("Cancelled / Returned", cancelled, "red"),
			moneyKPI("Avg Order Value", safeDiv(revenue, float64(len(ds.Orders))), "purple"),
		},
		Chart: chartOrNil(ChartSpec{
			Type:   ChartLine,
			Labels: labels,
			Series: []Series{{Name: "Orders", Data: series}},
		}),
		Columns: []string{"date", "orders", "delivered", "cancelled", "revenue"},
		Table:   rows,
	}
}

func buildOrdersByStatus(ds *Dataset, _ Filters) ReportResult {
	type group struct {
		orders  int
		revenue float64
	}
	groups := make(map[string]*group)
	var delivered int
	for _, o := range ds.Orders {
		status := o.Status
		if status == "" {
			status = labelUnknown
		}
		g := groups[status]
		if g == nil {
			g = &group{}
			groups[status] = g
		}
		g.orders++
		g.revenue += o.Total
		if o.Status == "delivered" {
			delivered++
		}
	}

	total := len(ds.Orders)
	rows := make([]Row, 0, len(groups))
	topStatus := labelNone
	var topCount int
	for status, g := range groups {
		if g.orders > topCount {
			topCount = g.orders
			topStatus = status
		}
		rows = append(rows, Row{
			"status":  status,
			"orders":  g.orders,
			"revenue": round2(g.revenue),
			"share":   formatPercent(share(float64(g.orders), float64(total))),
		})
	}
	sortRowsDesc(rows, "orders")

	return ReportResult{
		KPIs: []KPI{
			countKPI("Total Orders", total, "blue"),
			countKPI("Statuses", len(groups), "orange"),
			textKPI("Most Common", topStatus, "purple"),
			percentKPI("Completion Rate", share(float64(delivered), float64(total)), "green"),
		},
		Chart:   chartOrNil(pieChart(rows, "status", "Orders", "orders")),
		Columns: []string{"status", "orders", "revenue", "share"},
		Table:   rows,
	}
}

// valueBands are the fixed buckets of the order value histogram.
var valueBands = []struct {
	label string
	min   float64
	max   float64 // exclusive; 0 means unbounded
}{
	{"Under ₹500", 0, 500},
	{"₹500 – ₹999", 500, 1000},
	{"₹1,000 – ₹1,999", 1000, 2000},
	{"₹2,000 – ₹4,999", 2000, 5000},
	{"₹5,000 and above", 5000, 0},
}

func buildOrderValueDistribution(ds *Dataset, _ Filters) ReportResult {
	type band struct {
		orders  int
		revenue float64
	}
	bands := make([]band, len(valueBands))

	totals := make([]float64, 0, len(ds.Orders))
	var revenue, highest float64
	for _, o := range ds.Orders {
		revenue += o.Total
		totals = append(totals, o.Total)
		if o.Total > highest {
			highest = o.Total
		}
		for i, vb := range valueBands {
			if o.Total >= vb.min && (vb.max == 0 || o.Total < vb.max) {
				bands[i].orders++
				bands[i].revenue += o.Total
				break
			}
		}
	}
	sort.Float64s(totals)
	var median float64
	if n := len(totals); n > 0 {
		if n%2 == 1 {
			median = totals[n/2]
		} else {
			median = (totals[n/2-1] + totals[n/2]) / 2
		}
	}

	// Histogram rows keep band order; the spread is the point of the report.
	labels := make([]string, 0, len(bands))
	series := make([]float64, 0, len(bands))
	rows := make([]Row, 0, len(bands))
	for i, b := range bands {
		labels = append(labels, valueBands[i].label)
		series = append(series, float64(b.orders))
		rows = append(rows, Row{
			"range":   valueBands[i].label,
			"orders":  b.orders,
			"revenue": round2(b.revenue),
			"share":   formatPercent(share(float64(b.orders), float64(len(ds.Orders)))),
		})
	}
	if len(ds.Orders) == 0 {
		labels, series, rows = nil, nil, nil
	}

	return ReportResult{
		KPIs: []KPI{
			countKPI("Total Orders", len(ds.Orders), "blue"),
			moneyKPI("Avg Order Value", safeDiv(revenue, float64(len(ds.Orders))), "green"),
			moneyKPI("Median Order Value", median, "purple"),
			moneyKPI("Highest Order", highest, "orange"),
		},
		Chart: chartOrNil(ChartSpec{
			Type:   ChartBar,
			Labels: labels,
			Series: []Series{{Name: "Orders", Data: series}},
		}),
		Columns: []string{"range", "orders", "revenue", "share"},
		Table:   rows,
	}
}

func buildCancellationsReturns(ds *Dataset, _ Filters) ReportResult {
	profiles := profilesByUser(ds.Profiles)

	var cancelled, returned int
	var lost float64
	rows := make([]Row, 0)
	for _, o := range ds.Orders {
		if o.Status != "cancelled" && o.Status != "returned" {
			continue
		}
		if o.Status == "cancelled" {
			cancelled++
		} else {
			returned++
		}
		lost += o.Total
		rows = append(rows, Row{
			"order":    o.OrderNumber,
			"customer": customerLabel(o, profiles),
			"status":   o.Status,
			"amount":   round2(o.Total),
			"date":     dayLabel(o.CreatedAt),
		})
	}
	sortRowsDesc(rows, "amount")

	rate := share(float64(cancelled+returned), float64(len(ds.Orders)))

	var chart *ChartSpec
	if cancelled+returned > 0 {
		chart = chartOrNil(pieChart([]Row{
			{"kind": "Cancelled", "orders": cancelled},
			{"kind": "Returned", "orders": returned},
		}, "kind", "Orders", "orders"))
	}

	return ReportResult{
		KPIs: []KPI{
			countKPI("Cancelled", cancelled, "red"),
			countKPI("Returned", returned, "orange"),
			moneyKPI("Lost Revenue", lost, "red"),
			percentKPI("Cancellation Rate", rate, "purple"),
		},
		Chart:   chart,
		Columns: []string{"order", "customer", "status", "amount", "date"},
		Table:   rows,
	}
}
