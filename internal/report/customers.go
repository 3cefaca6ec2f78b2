package report

import "time"

// Customer reports: spend ranking, new-vs-returning mix and signup growth.

func customersDefinitions() []Definition {
	return []Definition{
		{
			ID:       "top-customers",
			Title:    "Top Customers",
			Category: CategoryCustomers,
			Needs:    Needs{Orders: true, Profiles: true},
			Build:    buildTopCustomers,
		},
		{
			ID:       "new-vs-returning",
			Title:    "New vs Returning",
			Category: CategoryCustomers,
			Needs:    Needs{Orders: true, Profiles: true},
			Build:    buildNewVsReturning,
		},
		{
			ID:       "customer-growth",
			Title:    "Customer Growth",
			Category: CategoryCustomers,
			Needs:    Needs{Profiles: true},
			Build:    buildCustomerGrowth,
		},
	}
}

func buildTopCustomers(ds *Dataset, _ Filters) ReportResult {
	profiles := profilesByUser(ds.Profiles)

	type group struct {
		name   string
		orders int
		spend  float64
	}
	groups := make(map[string]*group)
	var guestOrders int
	for _, o := range ds.Orders {
		if o.UserID == "" {
			guestOrders++
			continue
		}
		g := groups[o.UserID]
		if g == nil {
			g = &group{name: customerLabel(o, profiles)}
			groups[o.UserID] = g
		}
		g.orders++
		g.spend += o.Total
	}

	rows := make([]Row, 0, len(groups))
	topCustomer := labelNone
	var topSpend float64
	for _, g := range groups {
		if g.spend > topSpend {
			topSpend = g.spend
			topCustomer = g.name
		}
		rows = append(rows, Row{
			"customer":        g.name,
			"orders":          g.orders,
			"spend":           round2(g.spend),
			"avg_order_value": round2(safeDiv(g.spend, float64(g.orders))),
		})
	}
	sortRowsDesc(rows, "spend")

	return ReportResult{
		KPIs: []KPI{
			countKPI("Customers", len(groups), "blue"),
			countKPI("Guest Orders", guestOrders, "orange"),
			textKPI("Top Customer", topCustomer, "purple"),
			moneyKPI("Top Customer Spend", topSpend, "green"),
		},
		Chart:   chartOrNil(barChart(rows, "customer", "Spend", "spend", 10)),
		Columns: []string{"customer", "orders", "spend", "avg_order_value"},
		Table:   rows,
	}
}

func buildNewVsReturning(ds *Dataset, _ Filters) ReportResult {
	profiles := profilesByUser(ds.Profiles)

	type segment struct {
		customers map[string]struct{}
		orders    int
		revenue   float64
	}
	segments := map[string]*segment{
		"New":       {customers: map[string]struct{}{}},
		"Returning": {customers: map[string]struct{}{}},
		"Guest":     {customers: map[string]struct{}{}},
	}
	order := []string{"New", "Returning", "Guest"}

	for _, o := range ds.Orders {
		name := "Guest"
		if o.UserID != "" {
			// A customer counts as new when their account was created inside the window.
			if p, ok := profiles[o.UserID]; ok && ds.Window.Contains(p.CreatedAt) {
				name = "New"
			} else {
				name = "Returning"
			}
			segments[name].customers[o.UserID] = struct{}{}
		}
		segments[name].orders++
		segments[name].revenue += o.Total
	}

	var revenue float64
	for _, s := range segments {
		revenue += s.revenue
	}

	rows := make([]Row, 0, len(order))
	for _, name := range order {
		s := segments[name]
		if s.orders == 0 {
			continue
		}
		rows = append(rows, Row{
			"segment":   name,
			"customers": len(s.customers),
			"orders":    s.orders,
			"revenue":   round2(s.revenue),
			"share":     formatPercent(share(s.revenue, revenue)),
		})
	}

	returningShare := share(float64(segments["Returning"].orders), float64(len(ds.Orders)))

	return ReportResult{
		KPIs: []KPI{
			countKPI("New Customers", len(segments["New"].customers), "green"),
			countKPI("Returning Customers", len(segments["Returning"].customers), "blue"),
			countKPI("Guest Orders", segments["Guest"].orders, "orange"),
			percentKPI("Returning Share", returningShare, "purple"),
		},
		Chart:   chartOrNil(pieChart(rows, "segment", "Orders", "orders")),
		Columns: []string{"segment", "customers", "orders", "revenue", "share"},
		Table:   rows,
	}
}

func buildCustomerGrowth(ds *Dataset, _ Filters) ReportResult {
	months := make(map[time.Time]int)
	var inWindow, blocked int
	for _, p := range ds.Profiles {
		if p.IsBlocked {
			blocked++
		}
		if !ds.Window.Contains(p.CreatedAt) {
			continue
		}
		inWindow++
		months[monthOf(p.CreatedAt)]++
	}
	existing := len(ds.Profiles) - inWindow

	keys := sortedTimes(months)
	labels := make([]string, 0, len(keys))
	series := make([]float64, 0, len(keys))
	rows := make([]Row, 0, len(keys))
	cumulative := 0
	for _, k := range keys {
		n := months[k]
		cumulative += n
		labels = append(labels, monthLabel(k))
		series = append(series, float64(n))
		rows = append(rows, Row{
			"month":      monthLabel(k),
			"signups":    n,
			"cumulative": cumulative,
		})
	}

	growth := share(float64(inWindow), float64(existing))

	return ReportResult{
		KPIs: []KPI{
			countKPI("Total Customers", len(ds.Profiles), "blue"),
			countKPI("New Signups", inWindow, "green"),
			countKPI("Blocked", blocked, "red"),
			percentKPI("Growth Rate", growth, "purple"),
		},
		Chart: chartOrNil(ChartSpec{
			Type:   ChartLine,
			Labels: labels,
			Series: []Series{{Name: "Signups", Data: series}},
		}),
		Columns: []string{"month", "signups", "cumulative"},
		Table:   rows,
	}
}
