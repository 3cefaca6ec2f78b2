package report

// Inventory reports: stock position, low-stock alerts, turnover speed and bundles.

// Stock status labels.
const (
	stockIn  = "In Stock"
	stockLow = "Low"
	stockOut = "Out of Stock"
)

// Turnover classes with their fixed unit thresholds.
const (
	turnoverFast   = "Fast"
	turnoverNormal = "Normal"
	turnoverSlow   = "Slow"
)

// stockStatus classifies quantity against the product's low-stock threshold.
func stockStatus(p Product) string {
	switch {
	case p.Quantity == 0:
		return stockOut
	case p.Quantity <= p.LowStockThreshold:
		return stockLow
	default:
		return stockIn
	}
}

// turnoverClass buckets units sold in the window. More than 10 is fast, more than 3
// normal, the rest slow.
func turnoverClass(units int) string {
	switch {
	case units > 10:
		return turnoverFast
	case units > 3:
		return turnoverNormal
	default:
		return turnoverSlow
	}
}

func inventoryDefinitions() []Definition {
	return []Definition{
		{
			ID:       "stock-summary",
			Title:    "Stock Summary",
			Category: CategoryInventory,
			Needs:    Needs{Products: true},
			Build:    buildStockSummary,
		},
		{
			ID:       "low-stock",
			Title:    "Low Stock",
			Category: CategoryInventory,
			Needs:    Needs{Products: true},
			Build:    buildLowStock,
		},
		{
			ID:       "product-turnover",
			Title:    "Product Turnover",
			Category: CategoryInventory,
			Needs:    Needs{Orders: true, Products: true},
			Build:    buildProductTurnover,
		},
		{
			ID:       "bundle-performance",
			Title:    "Bundle Performance",
			Category: CategoryInventory,
			Needs:    Needs{Orders: true},
			Build:    buildBundlePerformance,
		},
	}
}

func buildStockSummary(ds *Dataset, f Filters) ReportResult {
	type group struct {
		products int
		units    int
		value    float64
	}
	groups := map[string]*group{
		stockIn:  {},
		stockLow: {},
		stockOut: {},
	}
	order := []string{stockIn, stockLow, stockOut}

	var units, outOfStock int
	var value float64
	var counted int
	for _, p := range ds.Products {
		if !categoryMatches(f.Category, p.Category) {
			continue
		}
		counted++
		status := stockStatus(p)
		g := groups[status]
		g.products++
		g.units += p.Quantity
		g.value += float64(p.Quantity) * p.Price
		units += p.Quantity
		value += float64(p.Quantity) * p.Price
		if status == stockOut {
			outOfStock++
		}
	}

	// Status rows keep severity order rather than sorting by size.
	rows := make([]Row, 0, len(order))
	for _, status := range order {
		g := groups[status]
		rows = append(rows, Row{
			"status":   status,
			"products": g.products,
			"units":    g.units,
			"value":    round2(g.value),
		})
	}
	if counted == 0 {
		rows = nil
	}

	return ReportResult{
		KPIs: []KPI{
			countKPI("Products", counted, "blue"),
			countKPI("Stock Units", units, "orange"),
			moneyKPI("Stock Value", value, "green"),
			countKPI("Out of Stock", outOfStock, "red"),
		},
		Chart:   chartOrNil(pieChart(rows, "status", "Products", "products")),
		Columns: []string{"status", "products", "units", "value"},
		Table:   rows,
	}
}

func buildLowStock(ds *Dataset, f Filters) ReportResult {
	var low, out, unitsLeft int
	var value float64
	rows := make([]Row, 0)
	for _, p := range ds.Products {
		if !categoryMatches(f.Category, p.Category) {
			continue
		}
		status := stockStatus(p)
		if status == stockIn {
			continue
		}
		if status == stockLow {
			low++
		} else {
			out++
		}
		unitsLeft += p.Quantity
		value += float64(p.Quantity) * p.Price
		category := p.Category
		if category == "" {
			category = labelUncategorized
		}
		rows = append(rows, Row{
			"product":   p.Name,
			"category":  category,
			"stock":     p.Quantity,
			"threshold": p.LowStockThreshold,
			"status":    status,
		})
	}
	// Most urgent first: lowest stock at the top.
	sortRowsAsc(rows, "stock")

	return ReportResult{
		KPIs: []KPI{
			countKPI("Low Stock", low, "orange"),
			countKPI("Out of Stock", out, "red"),
			countKPI("Units Left", unitsLeft, "blue"),
			moneyKPI("Stock Value", value, "green"),
		},
		Chart:   chartOrNil(barChart(rows, "product", "Units Left", "stock", 10)),
		Columns: []string{"product", "category", "stock", "threshold", "status"},
		Table:   rows,
	}
}

func buildProductTurnover(ds *Dataset, f Filters) ReportResult {
	byID, byName := productsByID(ds.Products)

	// Units sold per catalog product in the window; unsold products stay at zero and
	// classify as slow movers.
	sold := make(map[string]int)
	for _, o := range ds.Orders {
		for _, it := range o.Items {
			if p, ok := lookupProduct(it, byID, byName); ok {
				sold[p.ID] += it.Quantity
			}
		}
	}

	classCounts := map[string]int{turnoverFast: 0, turnoverNormal: 0, turnoverSlow: 0}
	var totalUnits, counted int
	rows := make([]Row, 0, len(ds.Products))
	for _, p := range ds.Products {
		if !categoryMatches(f.Category, p.Category) {
			continue
		}
		counted++
		units := sold[p.ID]
		totalUnits += units
		class := turnoverClass(units)
		classCounts[class]++
		rows = append(rows, Row{
			"product":    p.Name,
			"units_sold": units,
			"stock":      p.Quantity,
			"turnover":   class,
			"status":     stockStatus(p),
		})
	}
	sortRowsDesc(rows, "units_sold")

	classRows := []Row{
		{"class": turnoverFast, "products": classCounts[turnoverFast]},
		{"class": turnoverNormal, "products": classCounts[turnoverNormal]},
		{"class": turnoverSlow, "products": classCounts[turnoverSlow]},
	}
	if counted == 0 {
		classRows = nil
	}

	return ReportResult{
		KPIs: []KPI{
			countKPI("Fast Movers", classCounts[turnoverFast], "green"),
			countKPI("Normal", classCounts[turnoverNormal], "blue"),
			countKPI("Slow Movers", classCounts[turnoverSlow], "orange"),
			countKPI("Units Sold", totalUnits, "purple"),
		},
		Chart:   chartOrNil(barChart(classRows, "class", "Products", "products", 0)),
		Columns: []string{"product", "units_sold", "stock", "turnover", "status"},
		Table:   rows,
	}
}

func buildBundlePerformance(ds *Dataset, _ Filters) ReportResult {
	type group struct {
		name    string
		units   int
		revenue float64
	}
	groups := make(map[string]*group)
	var bundleUnits int
	var bundleRevenue, revenue float64
	for _, o := range ds.Orders {
		for _, it := range o.Items {
			revenue += it.Total
			if it.BundleID == "" {
				continue
			}
			g := groups[it.BundleID]
			if g == nil {
				name := it.ProductName
				if name == "" {
					name = labelUnknown
				}
				g = &group{name: name}
				groups[it.BundleID] = g
			}
			g.units += it.Quantity
			g.revenue += it.Total
			bundleUnits += it.Quantity
			bundleRevenue += it.Total
		}
	}

	rows := make([]Row, 0, len(groups))
	topBundle := labelNone
	var topRevenue float64
	for _, g := range groups {
		if g.revenue > topRevenue {
			topRevenue = g.revenue
			topBundle = g.name
		}
		rows = append(rows, Row{
			"bundle":  g.name,
			"units":   g.units,
			"revenue": round2(g.revenue),
			"share":   formatPercent(share(g.revenue, revenue)),
		})
	}
	sortRowsDesc(rows, "revenue")

	return ReportResult{
		KPIs: []KPI{
			countKPI("Bundles Sold", bundleUnits, "blue"),
			moneyKPI("Bundle Revenue", bundleRevenue, "green"),
			percentKPI("Share of Revenue", share(bundleRevenue, revenue), "purple"),
			textKPI("Top Bundle", topBundle, "orange"),
		},
		Chart:   chartOrNil(barChart(rows, "bundle", "Revenue", "revenue", 10)),
		Columns: []string{"bundle", "units", "revenue", "share"},
		Table:   rows,
	}
}
