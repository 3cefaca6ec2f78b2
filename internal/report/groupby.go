package report

import (
	"sort"
	"strings"
	"time"
)

// Index builders. Joins run off these maps, built once per computation, instead of
// scanning the joined slice per row.

func ordersByID(orders []Order) map[string]Order {
	idx := make(map[string]Order, len(orders))
	for _, o := range orders {
		idx[o.ID] = o
	}
	return idx
}

func paymentsByOrder(payments []Payment) map[string][]Payment {
	idx := make(map[string][]Payment, len(payments))
	for _, p := range payments {
		idx[p.OrderID] = append(idx[p.OrderID], p)
	}
	return idx
}

func deliveriesByOrder(deliveries []Delivery) map[string]Delivery {
	idx := make(map[string]Delivery, len(deliveries))
	for _, d := range deliveries {
		idx[d.OrderID] = d
	}
	return idx
}

func profilesByUser(profiles []Profile) map[string]Profile {
	idx := make(map[string]Profile, len(profiles))
	for _, p := range profiles {
		idx[p.UserID] = p
	}
	return idx
}

// productsByID returns the id-keyed index plus a name-keyed fallback for historical order
// items whose product was deleted after purchase.
func productsByID(products []Product) (byID map[string]Product, byName map[string]Product) {
	byID = make(map[string]Product, len(products))
	byName = make(map[string]Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
		byName[p.Name] = p
	}
	return byID, byName
}

// lookupProduct resolves an order item to its product via id, falling back to the
// captured name. ok is false when neither resolves.
func lookupProduct(item OrderItem, byID, byName map[string]Product) (Product, bool) {
	if item.ProductID != "" {
		if p, ok := byID[item.ProductID]; ok {
			return p, true
		}
	}
	if p, ok := byName[item.ProductName]; ok {
		return p, true
	}
	return Product{}, false
}

// customerLabel names the order's customer: "Guest" for guest checkout, "Unknown" when
// the profile row is missing.
func customerLabel(o Order, profiles map[string]Profile) string {
	if o.UserID == "" {
		return labelGuest
	}
	p, ok := profiles[o.UserID]
	if !ok || p.FullName == "" {
		return labelUnknown
	}
	return p.FullName
}

// categoryOf resolves an item's product category, "Uncategorized" when the product is
// gone or carries no category.
func categoryOf(item OrderItem, byID, byName map[string]Product) string {
	if p, ok := lookupProduct(item, byID, byName); ok && p.Category != "" {
		return p.Category
	}
	return labelUncategorized
}

// categoryMatches applies the optional category filter; empty matches everything.
func categoryMatches(filter, category string) bool {
	if filter == "" {
		return true
	}
	return strings.EqualFold(filter, category)
}

// itemLabel names an order item's product, preferring the live catalog name.
func itemLabel(item OrderItem, byID, byName map[string]Product) string {
	if p, ok := lookupProduct(item, byID, byName); ok {
		return p.Name
	}
	if item.ProductName != "" {
		return item.ProductName
	}
	return labelUnknown
}

// Guarded arithmetic. count == 0 never divides; it yields zero so KPIs render "0"/"₹0"
// instead of NaN.

func safeDiv(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}

// share returns part/total as a percentage rounded to one decimal.
func share(part, total float64) float64 {
	return round1(safeDiv(part, total) * 100)
}

// sortRowsDesc orders table rows descending by a numeric column. Ties keep input order.
func sortRowsDesc(rows []Row, column string) {
	sort.SliceStable(rows, func(i, j int) bool {
		return numeric(rows[i][column]) > numeric(rows[j][column])
	})
}

// sortRowsAsc orders table rows ascending by a numeric column.
func sortRowsAsc(rows []Row, column string) {
	sort.SliceStable(rows, func(i, j int) bool {
		return numeric(rows[i][column]) < numeric(rows[j][column])
	})
}

// numeric coerces the value types builders put in rows; anything else counts as zero.
func numeric(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	default:
		return 0
	}
}

// sortedTimes returns bucket keys in chronological order; date-based reports never
// re-sort by value.
func sortedTimes[M any](buckets map[time.Time]M) []time.Time {
	keys := make([]time.Time, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Before(keys[j]) })
	return keys
}

// sessionSet collects distinct session ids, giving funnel stages set semantics: an event
// counts at most once per session.
type sessionSet map[string]struct{}

func (s sessionSet) add(id string) {
	if id != "" {
		s[id] = struct{}{}
	}
}

func (s sessionSet) has(id string) bool {
	_, ok := s[id]
	return ok
}

func (s sessionSet) size() int { return len(s) }

// chartOrNil drops the chart entirely when there is nothing to plot, so an empty window
// renders the "no data" state instead of an empty axis.
func chartOrNil(spec ChartSpec) *ChartSpec {
	if len(spec.Labels) == 0 {
		return nil
	}
	return &spec
}

// barChart plots the top `limit` rows (rows must already be sorted), labeled by the
// labelCol cell and sized by the valueCol cell.
func barChart(rows []Row, labelCol, seriesName, valueCol string, limit int) ChartSpec {
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	labels := make([]string, 0, len(rows))
	data := make([]float64, 0, len(rows))
	for _, r := range rows {
		labels = append(labels, label(r[labelCol]))
		data = append(data, numeric(r[valueCol]))
	}
	return ChartSpec{Type: ChartBar, Labels: labels, Series: []Series{{Name: seriesName, Data: data}}}
}

// pieChart plots every row as one slice.
func pieChart(rows []Row, labelCol, seriesName, valueCol string) ChartSpec {
	spec := barChart(rows, labelCol, seriesName, valueCol, 0)
	spec.Type = ChartPie
	return spec
}

func label(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return labelUnknown
}
