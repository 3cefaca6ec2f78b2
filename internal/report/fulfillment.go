package report

// Delivery reports: fulfilment status, partner scorecard, COD reconciliation and
// order-to-door timelines.

func deliveryDefinitions() []Definition {
	return []Definition{
		{
			ID:       "delivery-summary",
			Title:    "Delivery Summary",
			Category: CategoryDelivery,
			Needs:    Needs{Deliveries: true},
			Build:    buildDeliverySummary,
		},
		{
			ID:       "partner-performance",
			Title:    "Partner Performance",
			Category: CategoryDelivery,
			Needs:    Needs{Deliveries: true},
			Build:    buildPartnerPerformance,
		},
		{
			ID:       "cod-reconciliation",
			Title:    "COD Reconciliation",
			Category: CategoryDelivery,
			Needs:    Needs{Deliveries: true},
			Build:    buildCODReconciliation,
		},
		{
			ID:       "delivery-timelines",
			Title:    "Delivery Timelines",
			Category: CategoryDelivery,
			Needs:    Needs{Orders: true, Deliveries: true},
			Build:    buildDeliveryTimelines,
		},
	}
}

func buildDeliverySummary(ds *Dataset, _ Filters) ReportResult {
	groups := make(map[string]int)
	var delivered, failed, inFlight int
	for _, d := range ds.Deliveries {
		status := d.Status
		if status == "" {
			status = labelUnknown
		}
		groups[status]++
		switch d.Status {
		case "delivered":
			delivered++
		case "failed":
			failed++
		default:
			inFlight++
		}
	}

	total := len(ds.Deliveries)
	rows := make([]Row, 0, len(groups))
	for status, n := range groups {
		rows = append(rows, Row{
			"status":     status,
			"deliveries": n,
			"share":      formatPercent(share(float64(n), float64(total))),
		})
	}
	sortRowsDesc(rows, "deliveries")

	return ReportResult{
		KPIs: []KPI{
			countKPI("Deliveries", total, "blue"),
			countKPI("Delivered", delivered, "green"),
			countKPI("In Flight", inFlight, "orange"),
			countKPI("Failed", failed, "red"),
		},
		Chart:   chartOrNil(pieChart(rows, "status", "Deliveries", "deliveries")),
		Columns: []string{"status", "deliveries", "share"},
		Table:   rows,
	}
}

func buildPartnerPerformance(ds *Dataset, _ Filters) ReportResult {
	type group struct {
		deliveries int
		delivered  int
		failed     int
	}
	groups := make(map[string]*group)
	var delivered, failed int
	for _, d := range ds.Deliveries {
		partner := d.PartnerName
		if partner == "" {
			partner = labelUnknown
		}
		g := groups[partner]
		if g == nil {
			g = &group{}
			groups[partner] = g
		}
		g.deliveries++
		switch d.Status {
		case "delivered":
			g.delivered++
			delivered++
		case "failed":
			g.failed++
			failed++
		}
	}

	rows := make([]Row, 0, len(groups))
	for partner, g := range groups {
		rows = append(rows, Row{
			"partner":      partner,
			"deliveries":   g.deliveries,
			"delivered":    g.delivered,
			"failed":       g.failed,
			"success_rate": formatPercent(share(float64(g.delivered), float64(g.deliveries))),
		})
	}
	sortRowsDesc(rows, "deliveries")

	successRate := share(float64(delivered), float64(len(ds.Deliveries)))

	return ReportResult{
		KPIs: []KPI{
			countKPI("Partners", len(groups), "blue"),
			countKPI("Delivered", delivered, "green"),
			countKPI("Failed", failed, "red"),
			percentKPI("Success Rate", successRate, "purple"),
		},
		Chart:   chartOrNil(barChart(rows, "partner", "Deliveries", "deliveries", 10)),
		Columns: []string{"partner", "deliveries", "delivered", "failed", "success_rate"},
		Table:   rows,
	}
}

func buildCODReconciliation(ds *Dataset, _ Filters) ReportResult {
	type group struct {
		orders    int
		value     float64
		collected float64
	}
	groups := make(map[string]*group)
	var codOrders int
	var codValue, collected float64
	for _, d := range ds.Deliveries {
		if !d.IsCOD {
			continue
		}
		codOrders++
		codValue += d.CODAmount
		partner := d.PartnerName
		if partner == "" {
			partner = labelUnknown
		}
		g := groups[partner]
		if g == nil {
			g = &group{}
			groups[partner] = g
		}
		g.orders++
		g.value += d.CODAmount
		if d.CODCollected {
			g.collected += d.CODAmount
			collected += d.CODAmount
		}
	}
	pending := codValue - collected

	rows := make([]Row, 0, len(groups))
	for partner, g := range groups {
		rows = append(rows, Row{
			"partner":    partner,
			"cod_orders": g.orders,
			"value":      round2(g.value),
			"collected":  round2(g.collected),
			"pending":    round2(g.value - g.collected),
		})
	}
	sortRowsDesc(rows, "value")

	var chart *ChartSpec
	if codOrders > 0 {
		chart = chartOrNil(pieChart([]Row{
			{"state": "Collected", "amount": round2(collected)},
			{"state": "Pending", "amount": round2(pending)},
		}, "state", "COD Amount", "amount"))
	}

	return ReportResult{
		KPIs: []KPI{
			countKPI("COD Deliveries", codOrders, "blue"),
			moneyKPI("COD Value", codValue, "purple"),
			moneyKPI("Collected", collected, "green"),
			moneyKPI("Pending", pending, "red"),
		},
		Chart:   chart,
		Columns: []string{"partner", "cod_orders", "value", "collected", "pending"},
		Table:   rows,
	}
}

// timelineBands bucket the days between order placement and delivery.
var timelineBands = []struct {
	label   string
	minDays int
	maxDays int // exclusive; 0 means unbounded
}{
	{"Same Day", 0, 1},
	{"1–2 Days", 1, 3},
	{"3–5 Days", 3, 6},
	{"6+ Days", 6, 0},
}

func buildDeliveryTimelines(ds *Dataset, _ Filters) ReportResult {
	orders := ordersByID(ds.Orders)

	counts := make([]int, len(timelineBands))
	var deliveredCount int
	var totalDays, fastest, slowest float64
	first := true
	for _, d := range ds.Deliveries {
		if d.DeliveredAt == nil {
			continue
		}
		start := d.CreatedAt
		if o, ok := orders[d.OrderID]; ok {
			start = o.CreatedAt
		}
		days := d.DeliveredAt.Sub(start).Hours() / 24
		if days < 0 {
			days = 0
		}
		deliveredCount++
		totalDays += days
		if first || days < fastest {
			fastest = days
		}
		if first || days > slowest {
			slowest = days
		}
		first = false
		whole := int(days)
		for i, band := range timelineBands {
			if whole >= band.minDays && (band.maxDays == 0 || whole < band.maxDays) {
				counts[i]++
				break
			}
		}
	}

	labels := make([]string, 0, len(timelineBands))
	series := make([]float64, 0, len(timelineBands))
	rows := make([]Row, 0, len(timelineBands))
	for i, band := range timelineBands {
		labels = append(labels, band.label)
		series = append(series, float64(counts[i]))
		rows = append(rows, Row{
			"duration":   band.label,
			"deliveries": counts[i],
			"share":      formatPercent(share(float64(counts[i]), float64(deliveredCount))),
		})
	}
	if deliveredCount == 0 {
		labels, series, rows = nil, nil, nil
	}

	return ReportResult{
		KPIs: []KPI{
			countKPI("Delivered", deliveredCount, "blue"),
			numberKPI("Avg Days", round1(safeDiv(totalDays, float64(deliveredCount))), "green"),
			numberKPI("Fastest (Days)", round1(fastest), "purple"),
			numberKPI("Slowest (Days)", round1(slowest), "orange"),
		},
		Chart: chartOrNil(ChartSpec{
			Type:   ChartBar,
			Labels: labels,
			Series: []Series{{Name: "Deliveries", Data: series}},
		}),
		Columns: []string{"duration", "deliveries", "share"},
		Table:   rows,
	}
}
