package report

import "time"

// Sales reports: revenue-centric views over orders and order items.

func salesDefinitions() []Definition {
	return []Definition{
		{
			ID:       "sales-summary",
			Title:    "Sales Summary",
			Category: CategorySales,
			Needs:    Needs{Orders: true},
			Build:    buildSalesSummary,
		},
		{
			ID:       "sales-by-day",
			Title:    "Sales by Day",
			Category: CategorySales,
			Needs:    Needs{Orders: true},
			Build:    buildSalesByDay,
		},
		{
			ID:       "sales-by-product",
			Title:    "Sales by Product",
			Category: CategorySales,
			Needs:    Needs{Orders: true, Products: true},
			Build:    buildSalesByProduct,
		},
		{
			ID:       "sales-by-category",
			Title:    "Sales by Category",
			Category: CategorySales,
			Needs:    Needs{Orders: true, Products: true},
			Build:    buildSalesByCategory,
		},
		{
			ID:       "sales-by-coupon",
			Title:    "Sales by Coupon",
			Category: CategorySales,
			Needs:    Needs{Orders: true},
			Build:    buildSalesByCoupon,
		},
		{
			ID:       "sales-by-payment-method",
			Title:    "Sales by Payment Method",
			Category: CategorySales,
			Needs:    Needs{Orders: true},
			Build:    buildSalesByPaymentMethod,
		},
	}
}

func buildSalesSummary(ds *Dataset, _ Filters) ReportResult {
	type bucket struct {
		orders  int
		items   int
		revenue float64
	}
	days := make(map[time.Time]*bucket)

	var revenue float64
	var items int
	for _, o := range ds.Orders {
		revenue += o.Total
		for _, it := range o.Items {
			items += it.Quantity
		}
		d := dayOf(o.CreatedAt)
		b := days[d]
		if b == nil {
			b = &bucket{}
			days[d] = b
		}
		b.orders++
		b.revenue += o.Total
		for _, it := range o.Items {
			b.items += it.Quantity
		}
	}
	avg := safeDiv(revenue, float64(len(ds.Orders)))

	keys := sortedTimes(days)
	labels := make([]string, 0, len(keys))
	series := make([]float64, 0, len(keys))
	rows := make([]Row, 0, len(keys))
	for _, k := range keys {
		b := days[k]
		labels = append(labels, dayLabel(k))
		series = append(series, round2(b.revenue))
		rows = append(rows, Row{
			"date":    dayLabel(k),
			"orders":  b.orders,
			"items":   b.items,
			"revenue": round2(b.revenue),
		})
	}

	return ReportResult{
		KPIs: []KPI{
			countKPI("Total Orders", len(ds.Orders), "blue"),
			moneyKPI("Total Revenue", revenue, "green"),
			moneyKPI("Avg Order Value", avg, "purple"),
			countKPI("Items Sold", items, "orange"),
		},
		Chart: chartOrNil(ChartSpec{
			Type:   ChartLine,
			Labels: labels,
			Series: []Series{{Name: "Revenue", Data: series}},
		}),
		Columns: []string{"date", "orders", "items", "revenue"},
		Table:   rows,
	}
}

func buildSalesByDay(ds *Dataset, _ Filters) ReportResult {
	type bucket struct {
		orders  int
		revenue float64
	}
	days := make(map[time.Time]*bucket)

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
	}

	keys := sortedTimes(days)
	labels := make([]string, 0, len(keys))
	revSeries := make([]float64, 0, len(keys))
	orderSeries := make([]float64, 0, len(keys))
	rows := make([]Row, 0, len(keys))
	bestDay := labelNone
	var bestRevenue float64
	for _, k := range keys {
		b := days[k]
		labels = append(labels, dayLabel(k))
		revSeries = append(revSeries, round2(b.revenue))
		orderSeries = append(orderSeries, float64(b.orders))
		if b.revenue > bestRevenue {
			bestRevenue = b.revenue
			bestDay = dayLabel(k)
		}
		rows = append(rows, Row{
			"date":            dayLabel(k),
			"orders":          b.orders,
			"revenue":         round2(b.revenue),
			"avg_order_value": round2(safeDiv(b.revenue, float64(b.orders))),
		})
	}

	return ReportResult{
		KPIs: []KPI{
			moneyKPI("Total Revenue", revenue, "green"),
			countKPI("Total Orders", len(ds.Orders), "blue"),
			moneyKPI("Avg Daily Revenue", safeDiv(revenue, float64(len(days))), "purple"),
			textKPI("Best Day", bestDay, "orange"),
		},
		Chart: chartOrNil(ChartSpec{
			Type:   ChartLine,
			Labels: labels,
			Series: []Series{
				{Name: "Revenue", Data: revSeries},
				{Name: "Orders", Data: orderSeries},
			},
		}),
		Columns: []string{"date", "orders", "revenue", "avg_order_value"},
		Table:   rows,
	}
}

func buildSalesByProduct(ds *Dataset, f Filters) ReportResult {
	byID, byName := productsByID(ds.Products)

	type group struct {
		name     string
		category string
		units    int
		revenue  float64
	}
	groups := make(map[string]*group)
	var units int
	var revenue float64
	for _, o := range ds.Orders {
		for _, it := range o.Items {
			category := categoryOf(it, byID, byName)
			if !categoryMatches(f.Category, category) {
				continue
			}
			name := itemLabel(it, byID, byName)
			key := it.ProductID
			if key == "" {
				key = name
			}
			g := groups[key]
			if g == nil {
				g = &group{name: name, category: category}
				groups[key] = g
			}
			g.units += it.Quantity
			g.revenue += it.Total
			units += it.Quantity
			revenue += it.Total
		}
	}

	rows := make([]Row, 0, len(groups))
	topProduct := labelNone
	var topRevenue float64
	for _, g := range groups {
		if g.revenue > topRevenue {
			topRevenue = g.revenue
			topProduct = g.name
		}
		rows = append(rows, Row{
			"product":  g.name,
			"category": g.category,
			"units":    g.units,
			"revenue":  round2(g.revenue),
			"share":    formatPercent(share(g.revenue, revenue)),
		})
	}
	sortRowsDesc(rows, "revenue")

	return ReportResult{
		KPIs: []KPI{
			countKPI("Products Sold", len(groups), "blue"),
			countKPI("Units Sold", units, "orange"),
			moneyKPI("Revenue", revenue, "green"),
			textKPI("Top Product", topProduct, "purple"),
		},
		Chart:   chartOrNil(barChart(rows, "product", "Revenue", "revenue", 10)),
		Columns: []string{"product", "category", "units", "revenue", "share"},
		Table:   rows,
	}
}

func buildSalesByCategory(ds *Dataset, f Filters) ReportResult {
	byID, byName := productsByID(ds.Products)

	type group struct {
		units   int
		revenue float64
	}
	groups := make(map[string]*group)
	var units int
	var revenue float64
	for _, o := range ds.Orders {
		for _, it := range o.Items {
			category := categoryOf(it, byID, byName)
			if !categoryMatches(f.Category, category) {
				continue
			}
			g := groups[category]
			if g == nil {
				g = &group{}
				groups[category] = g
			}
			g.units += it.Quantity
			g.revenue += it.Total
			units += it.Quantity
			revenue += it.Total
		}
	}

	rows := make([]Row, 0, len(groups))
	topCategory := labelNone
	var topRevenue float64
	for name, g := range groups {
		if g.revenue > topRevenue {
			topRevenue = g.revenue
			topCategory = name
		}
		rows = append(rows, Row{
			"category": name,
			"units":    g.units,
			"revenue":  round2(g.revenue),
			"share":    formatPercent(share(g.revenue, revenue)),
		})
	}
	sortRowsDesc(rows, "revenue")

	return ReportResult{
		KPIs: []KPI{
			countKPI("Categories", len(groups), "blue"),
			countKPI("Units Sold", units, "orange"),
			moneyKPI("Revenue", revenue, "green"),
			textKPI("Top Category", topCategory, "purple"),
		},
		Chart:   chartOrNil(pieChart(rows, "category", "Revenue", "revenue")),
		Columns: []string{"category", "units", "revenue", "share"},
		Table:   rows,
	}
}

func buildSalesByCoupon(ds *Dataset, _ Filters) ReportResult {
	type group struct {
		orders   int
		discount float64
		revenue  float64
	}
	groups := make(map[string]*group)
	var couponOrders int
	var couponRevenue, discount float64
	for _, o := range ds.Orders {
		if o.CouponCode == "" {
			continue
		}
		couponOrders++
		couponRevenue += o.Total
		discount += o.Discount
		g := groups[o.CouponCode]
		if g == nil {
			g = &group{}
			groups[o.CouponCode] = g
		}
		g.orders++
		g.discount += o.Discount
		g.revenue += o.Total
	}

	rows := make([]Row, 0, len(groups))
	for code, g := range groups {
		rows = append(rows, Row{
			"coupon":   code,
			"orders":   g.orders,
			"discount": round2(g.discount),
			"revenue":  round2(g.revenue),
		})
	}
	sortRowsDesc(rows, "revenue")

	usage := share(float64(couponOrders), float64(len(ds.Orders)))

	return ReportResult{
		KPIs: []KPI{
			countKPI("Coupon Orders", couponOrders, "blue"),
			moneyKPI("Coupon Revenue", couponRevenue, "green"),
			moneyKPI("Total Discount", discount, "red"),
			percentKPI("Usage Rate", usage, "purple"),
		},
		Chart:   chartOrNil(barChart(rows, "coupon", "Revenue", "revenue", 10)),
		Columns: []string{"coupon", "orders", "discount", "revenue"},
		Table:   rows,
	}
}

func buildSalesByPaymentMethod(ds *Dataset, _ Filters) ReportResult {
	type group struct {
		orders  int
		revenue float64
	}
	groups := make(map[string]*group)
	var revenue float64
	for _, o := range ds.Orders {
		method := o.PaymentMethod
		if method == "" {
			method = labelUnknown
		}
		g := groups[method]
		if g == nil {
			g = &group{}
			groups[method] = g
		}
		g.orders++
		g.revenue += o.Total
		revenue += o.Total
	}

	rows := make([]Row, 0, len(groups))
	topMethod := labelNone
	var topRevenue float64
	for method, g := range groups {
		if g.revenue > topRevenue {
			topRevenue = g.revenue
			topMethod = method
		}
		rows = append(rows, Row{
			"method":  method,
			"orders":  g.orders,
			"revenue": round2(g.revenue),
			"share":   formatPercent(share(g.revenue, revenue)),
		})
	}
	sortRowsDesc(rows, "revenue")

	return ReportResult{
		KPIs: []KPI{
			countKPI("Payment Methods", len(groups), "blue"),
			moneyKPI("Total Revenue", revenue, "green"),
			textKPI("Top Method", topMethod, "purple"),
			percentKPI("Top Method Share", share(topRevenue, revenue), "orange"),
		},
		Chart:   chartOrNil(pieChart(rows, "method", "Revenue", "revenue")),
		Columns: []string{"method", "orders", "revenue", "share"},
		Table:   rows,
	}
}
