package report

import "time"

// Marketing reports: storefront analytics events turned into funnel, abandonment and
// traffic views. Every stage metric is per-session, deduplicated by session id.

// funnelStages in order; an event type maps to exactly one stage.
var funnelStages = []struct {
	label string
	event string
}{
	{"Product Views", "product_view"},
	{"Added to Cart", "add_to_cart"},
	{"Checkout Started", "checkout_started"},
	{"Purchased", "order_completed"},
}

func marketingDefinitions() []Definition {
	return []Definition{
		{
			ID:       "conversion-funnel",
			Title:    "Conversion Funnel",
			Category: CategoryMarketing,
			Needs:    Needs{Events: true},
			Build:    buildConversionFunnel,
		},
		{
			ID:       "cart-abandonment",
			Title:    "Cart Abandonment",
			Category: CategoryMarketing,
			Needs:    Needs{Events: true},
			Build:    buildCartAbandonment,
		},
		{
			ID:       "most-viewed-products",
			Title:    "Most Viewed Products",
			Category: CategoryMarketing,
			Needs:    Needs{Events: true, Products: true},
			Build:    buildMostViewedProducts,
		},
		{
			ID:       "traffic-by-page",
			Title:    "Traffic by Page",
			Category: CategoryMarketing,
			Needs:    Needs{Events: true},
			Build:    buildTrafficByPage,
		},
	}
}

func buildConversionFunnel(ds *Dataset, _ Filters) ReportResult {
	stages := make([]sessionSet, len(funnelStages))
	for i := range stages {
		stages[i] = sessionSet{}
	}
	for _, ev := range ds.Events {
		for i, stage := range funnelStages {
			if ev.EventType == stage.event {
				stages[i].add(ev.SessionID)
				break
			}
		}
	}

	views := stages[0].size()
	purchases := stages[len(stages)-1].size()

	labels := make([]string, 0, len(funnelStages))
	series := make([]float64, 0, len(funnelStages))
	rows := make([]Row, 0, len(funnelStages))
	var any bool
	for i, stage := range funnelStages {
		n := stages[i].size()
		if n > 0 {
			any = true
		}
		conversion := labelNone
		if i > 0 {
			conversion = formatPercent(share(float64(n), float64(stages[i-1].size())))
		}
		labels = append(labels, stage.label)
		series = append(series, float64(n))
		rows = append(rows, Row{
			"stage":      stage.label,
			"sessions":   n,
			"conversion": conversion,
		})
	}
	if !any {
		labels, series, rows = nil, nil, nil
	}

	cartRate := share(float64(stages[1].size()), float64(views))
	checkoutRate := share(float64(stages[2].size()), float64(stages[1].size()))
	conversionRate := share(float64(purchases), float64(views))

	return ReportResult{
		KPIs: []KPI{
			countKPI("Sessions with Views", views, "blue"),
			percentKPI("View to Cart", cartRate, "orange"),
			percentKPI("Cart to Checkout", checkoutRate, "purple"),
			percentKPI("Conversion Rate", conversionRate, "green"),
		},
		Chart: chartOrNil(ChartSpec{
			Type:   ChartBar,
			Labels: labels,
			Series: []Series{{Name: "Sessions", Data: series}},
		}),
		Columns: []string{"stage", "sessions", "conversion"},
		Table:   rows,
	}
}

func buildCartAbandonment(ds *Dataset, _ Filters) ReportResult {
	type bucket struct {
		carts     sessionSet
		purchases sessionSet
	}
	days := make(map[time.Time]*bucket)
	carts := sessionSet{}
	purchases := sessionSet{}
	for _, ev := range ds.Events {
		if ev.EventType != "add_to_cart" && ev.EventType != "order_completed" {
			continue
		}
		d := dayOf(ev.CreatedAt)
		b := days[d]
		if b == nil {
			b = &bucket{carts: sessionSet{}, purchases: sessionSet{}}
			days[d] = b
		}
		if ev.EventType == "add_to_cart" {
			carts.add(ev.SessionID)
			b.carts.add(ev.SessionID)
		} else {
			purchases.add(ev.SessionID)
			b.purchases.add(ev.SessionID)
		}
	}

	// A cart session counts as completed only when the same session purchased.
	completed := 0
	for id := range carts {
		if purchases.has(id) {
			completed++
		}
	}
	abandoned := carts.size() - completed
	rate := share(float64(abandoned), float64(carts.size()))

	keys := sortedTimes(days)
	rows := make([]Row, 0, len(keys))
	for _, k := range keys {
		b := days[k]
		dayCompleted := 0
		for id := range b.carts {
			if b.purchases.has(id) {
				dayCompleted++
			}
		}
		dayAbandoned := b.carts.size() - dayCompleted
		rows = append(rows, Row{
			"date":      dayLabel(k),
			"carts":     b.carts.size(),
			"completed": dayCompleted,
			"abandoned": dayAbandoned,
			"rate":      formatPercent(share(float64(dayAbandoned), float64(b.carts.size()))),
		})
	}

	var chart *ChartSpec
	if carts.size() > 0 {
		chart = chartOrNil(pieChart([]Row{
			{"state": "Completed", "sessions": completed},
			{"state": "Abandoned", "sessions": abandoned},
		}, "state", "Sessions", "sessions"))
	}

	return ReportResult{
		KPIs: []KPI{
			countKPI("Cart Sessions", carts.size(), "blue"),
			countKPI("Completed", completed, "green"),
			countKPI("Abandoned", abandoned, "red"),
			percentKPI("Abandonment Rate", rate, "purple"),
		},
		Chart:   chart,
		Columns: []string{"date", "carts", "completed", "abandoned", "rate"},
		Table:   rows,
	}
}

func buildMostViewedProducts(ds *Dataset, _ Filters) ReportResult {
	byID, _ := productsByID(ds.Products)

	type group struct {
		views    int
		visitors sessionSet
	}
	groups := make(map[string]*group)
	var views int
	for _, ev := range ds.Events {
		if ev.EventType != "product_view" || ev.ProductID == "" {
			continue
		}
		views++
		g := groups[ev.ProductID]
		if g == nil {
			g = &group{visitors: sessionSet{}}
			groups[ev.ProductID] = g
		}
		g.views++
		g.visitors.add(ev.VisitorID)
	}

	rows := make([]Row, 0, len(groups))
	topProduct := labelNone
	var topViews int
	for id, g := range groups {
		name := labelUnknown
		category := labelUncategorized
		if p, ok := byID[id]; ok {
			name = p.Name
			if p.Category != "" {
				category = p.Category
			}
		}
		if g.views > topViews {
			topViews = g.views
			topProduct = name
		}
		rows = append(rows, Row{
			"product":  name,
			"category": category,
			"views":    g.views,
			"visitors": g.visitors.size(),
		})
	}
	sortRowsDesc(rows, "views")

	return ReportResult{
		KPIs: []KPI{
			countKPI("Product Views", views, "blue"),
			countKPI("Products Viewed", len(groups), "orange"),
			textKPI("Top Product", topProduct, "purple"),
			countKPI("Top Product Views", topViews, "green"),
		},
		Chart:   chartOrNil(barChart(rows, "product", "Views", "views", 10)),
		Columns: []string{"product", "category", "views", "visitors"},
		Table:   rows,
	}
}

func buildTrafficByPage(ds *Dataset, _ Filters) ReportResult {
	type group struct {
		views    int
		sessions sessionSet
	}
	groups := make(map[string]*group)
	allSessions := sessionSet{}
	var views int
	for _, ev := range ds.Events {
		if ev.EventType != "page_view" {
			continue
		}
		views++
		allSessions.add(ev.SessionID)
		page := ev.PagePath
		if page == "" {
			page = labelUnknown
		}
		g := groups[page]
		if g == nil {
			g = &group{sessions: sessionSet{}}
			groups[page] = g
		}
		g.views++
		g.sessions.add(ev.SessionID)
	}

	rows := make([]Row, 0, len(groups))
	topPage := labelNone
	var topViews int
	for page, g := range groups {
		if g.views > topViews {
			topViews = g.views
			topPage = page
		}
		rows = append(rows, Row{
			"page":     page,
			"views":    g.views,
			"sessions": g.sessions.size(),
			"share":    formatPercent(share(float64(g.views), float64(views))),
		})
	}
	sortRowsDesc(rows, "views")

	return ReportResult{
		KPIs: []KPI{
			countKPI("Page Views", views, "blue"),
			countKPI("Pages", len(groups), "orange"),
			countKPI("Sessions", allSessions.size(), "purple"),
			textKPI("Top Page", topPage, "green"),
		},
		Chart:   chartOrNil(barChart(rows, "page", "Views", "views", 10)),
		Columns: []string{"page", "views", "sessions", "share"},
		Table:   rows,
	}
}
