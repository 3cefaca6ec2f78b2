package report

import (
	"strings"
	"time"
)

// Payment reports: collections, method mix, refunds and the COD split.

func paymentsDefinitions() []Definition {
	return []Definition{
		{
			ID:       "payments-summary",
			Title:    "Payments Summary",
			Category: CategoryPayments,
			Needs:    Needs{Payments: true},
			Build:    buildPaymentsSummary,
		},
		{
			ID:       "payment-method-split",
			Title:    "Payment Method Split",
			Category: CategoryPayments,
			Needs:    Needs{Payments: true},
			Build:    buildPaymentMethodSplit,
		},
		{
			ID:       "refunds",
			Title:    "Refunds",
			Category: CategoryPayments,
			Needs:    Needs{Orders: true, Payments: true},
			Build:    buildRefunds,
		},
		{
			ID:       "cod-vs-prepaid",
			Title:    "COD vs Prepaid",
			Category: CategoryPayments,
			Needs:    Needs{Orders: true, Deliveries: true},
			Build:    buildCODvsPrepaid,
		},
	}
}

func buildPaymentsSummary(ds *Dataset, _ Filters) ReportResult {
	type bucket struct {
		payments  int
		collected float64
		refunded  float64
	}
	days := make(map[time.Time]*bucket)

	var collected, refunded float64
	for _, p := range ds.Payments {
		d := dayOf(p.CreatedAt)
		b := days[d]
		if b == nil {
			b = &bucket{}
			days[d] = b
		}
		b.payments++
		if p.Status == "paid" || p.Status == "partial" {
			collected += p.Amount
			b.collected += p.Amount
		}
		refunded += p.RefundAmount
		b.refunded += p.RefundAmount
	}

	keys := sortedTimes(days)
	labels := make([]string, 0, len(keys))
	series := make([]float64, 0, len(keys))
	rows := make([]Row, 0, len(keys))
	for _, k := range keys {
		b := days[k]
		labels = append(labels, dayLabel(k))
		series = append(series, round2(b.collected))
		rows = append(rows, Row{
			"date":      dayLabel(k),
			"payments":  b.payments,
			"collected": round2(b.collected),
			"refunded":  round2(b.refunded),
		})
	}

	return ReportResult{
		KPIs: []KPI{
			countKPI("Payments", len(ds.Payments), "blue"),
			moneyKPI("Collected", collected, "green"),
			moneyKPI("Refunded", refunded, "red"),
			moneyKPI("Net Collected", collected-refunded, "purple"),
		},
		Chart: chartOrNil(ChartSpec{
			Type:   ChartLine,
			Labels: labels,
			Series: []Series{{Name: "Collected", Data: series}},
		}),
		Columns: []string{"date", "payments", "collected", "refunded"},
		Table:   rows,
	}
}

func buildPaymentMethodSplit(ds *Dataset, _ Filters) ReportResult {
	type group struct {
		payments int
		amount   float64
	}
	groups := make(map[string]*group)
	var total float64
	for _, p := range ds.Payments {
		if p.Status != "paid" && p.Status != "partial" {
			continue
		}
		method := p.Method
		if method == "" {
			method = labelUnknown
		}
		g := groups[method]
		if g == nil {
			g = &group{}
			groups[method] = g
		}
		g.payments++
		g.amount += p.Amount
		total += p.Amount
	}

	rows := make([]Row, 0, len(groups))
	topMethod := labelNone
	var topAmount float64
	for method, g := range groups {
		if g.amount > topAmount {
			topAmount = g.amount
			topMethod = method
		}
		rows = append(rows, Row{
			"method":   method,
			"payments": g.payments,
			"amount":   round2(g.amount),
			"share":    formatPercent(share(g.amount, total)),
		})
	}
	sortRowsDesc(rows, "amount")

	return ReportResult{
		KPIs: []KPI{
			countKPI("Methods", len(groups), "blue"),
			moneyKPI("Collected", total, "green"),
			textKPI("Top Method", topMethod, "purple"),
			percentKPI("Top Method Share", share(topAmount, total), "orange"),
		},
		Chart:   chartOrNil(pieChart(rows, "method", "Collected", "amount")),
		Columns: []string{"method", "payments", "amount", "share"},
		Table:   rows,
	}
}

func buildRefunds(ds *Dataset, _ Filters) ReportResult {
	orders := ordersByID(ds.Orders)

	var count int
	var amount float64
	rows := make([]Row, 0)
	reasons := make(map[string]float64)
	for _, p := range ds.Payments {
		if p.RefundAmount <= 0 && p.Status != "refunded" {
			continue
		}
		count++
		amount += p.RefundAmount
		reason := p.RefundReason
		if reason == "" {
			reason = labelNone
		}
		reasons[reason] += p.RefundAmount
		orderNumber := labelUnknown
		if o, ok := orders[p.OrderID]; ok {
			orderNumber = o.OrderNumber
		}
		rows = append(rows, Row{
			"order":  orderNumber,
			"method": p.Method,
			"paid":   round2(p.Amount),
			"refund": round2(p.RefundAmount),
			"reason": reason,
			"date":   dayLabel(p.CreatedAt),
		})
	}
	sortRowsDesc(rows, "refund")

	reasonRows := make([]Row, 0, len(reasons))
	for reason, amt := range reasons {
		reasonRows = append(reasonRows, Row{"reason": reason, "refund": round2(amt)})
	}
	sortRowsDesc(reasonRows, "refund")

	rate := share(float64(count), float64(len(ds.Payments)))

	return ReportResult{
		KPIs: []KPI{
			countKPI("Refunds", count, "red"),
			moneyKPI("Refund Amount", amount, "red"),
			moneyKPI("Avg Refund", safeDiv(amount, float64(count)), "orange"),
			percentKPI("Refund Rate", rate, "purple"),
		},
		Chart:   chartOrNil(barChart(reasonRows, "reason", "Refunded", "refund", 10)),
		Columns: []string{"order", "method", "paid", "refund", "reason", "date"},
		Table:   rows,
	}
}

func buildCODvsPrepaid(ds *Dataset, _ Filters) ReportResult {
	deliveries := deliveriesByOrder(ds.Deliveries)

	type split struct {
		orders  int
		revenue float64
	}
	var cod, prepaid split
	for _, o := range ds.Orders {
		isCOD := strings.EqualFold(o.PaymentMethod, "cod")
		if d, ok := deliveries[o.ID]; ok {
			isCOD = d.IsCOD
		}
		if isCOD {
			cod.orders++
			cod.revenue += o.Total
		} else {
			prepaid.orders++
			prepaid.revenue += o.Total
		}
	}

	total := cod.revenue + prepaid.revenue
	rows := []Row{
		{"type": "COD", "orders": cod.orders, "revenue": round2(cod.revenue), "share": formatPercent(share(cod.revenue, total))},
		{"type": "Prepaid", "orders": prepaid.orders, "revenue": round2(prepaid.revenue), "share": formatPercent(share(prepaid.revenue, total))},
	}
	if len(ds.Orders) == 0 {
		rows = nil
	}

	return ReportResult{
		KPIs: []KPI{
			countKPI("COD Orders", cod.orders, "orange"),
			countKPI("Prepaid Orders", prepaid.orders, "blue"),
			moneyKPI("COD Value", cod.revenue, "purple"),
			moneyKPI("Prepaid Value", prepaid.revenue, "green"),
		},
		Chart:   chartOrNil(pieChart(rows, "type", "Revenue", "revenue")),
		Columns: []string{"type", "orders", "revenue", "share"},
		Table:   rows,
	}
}
