package report

import "time"

// Row types handed to the engine by the fetch adapter. They are deliberately decoupled
// from the gorm models: numeric fields arrive already coerced (NULL → 0) and relations
// arrive as plain ids, so builders never touch the database or mutate shared state.

// Order is one checkout within the report window. Items are always attached.
type Order struct {
	ID             string
	UserID         string // empty for guest checkout
	OrderNumber    string
	Status         string
	PaymentMethod  string
	PaymentStatus  string
	Subtotal       float64
	Discount       float64
	ShippingCharge float64
	Tax            float64
	Total          float64
	CouponCode     string
	CreatedAt      time.Time
	Items          []OrderItem
}

// OrderItem is a line item. ProductID is empty when the product was deleted before the
// order row was captured; ProductName is the purchase-time fallback label.
type OrderItem struct {
	ProductID   string
	ProductName string
	VariantName string
	BundleID    string
	Quantity    int
	Price       float64
	Total       float64
}

// Payment is a payment attempt or refund against an order.
type Payment struct {
	OrderID      string
	Method       string
	Status       string
	Amount       float64
	RefundAmount float64
	RefundReason string
	CreatedAt    time.Time
}

// Delivery is the fulfillment record of one order.
type Delivery struct {
	OrderID      string
	Status       string
	PartnerName  string
	IsCOD        bool
	CODAmount    float64
	CODCollected bool
	DeliveredAt  *time.Time
	CreatedAt    time.Time
}

// Expense is one operating cost entry.
type Expense struct {
	Category    string
	Description string
	Amount      float64
	SpentOn     time.Time
}

// Profile is a storefront customer.
type Profile struct {
	UserID    string
	FullName  string
	Email     string
	IsBlocked bool
	CreatedAt time.Time
}

// Product is a catalog item with its current stock position.
type Product struct {
	ID                string
	Name              string
	Category          string
	Price             float64
	Quantity          int
	LowStockThreshold int
}

// Event is one raw storefront tracking event.
type Event struct {
	EventType string
	SessionID string
	VisitorID string
	ProductID string
	PagePath  string
	CreatedAt time.Time
}

// Filters narrow the fetched rows before aggregation. Status restricts orders to a single
// status ("" or "all" means no restriction); Category restricts order items to products in
// one catalog category.
type Filters struct {
	Status   string `json:"status,omitempty"`
	Category string `json:"category,omitempty"`
}

// Needs declares which tables a report reads, so the engine fetches only those.
type Needs struct {
	Orders     bool
	Payments   bool
	Deliveries bool
	Expenses   bool
	Profiles   bool
	Products   bool
	Events     bool
}

// Dataset bundles the rows fetched for one computation.
type Dataset struct {
	Window     Window
	Orders     []Order
	Payments   []Payment
	Deliveries []Delivery
	Expenses   []Expense
	Profiles   []Profile
	Products   []Product
	Events     []Event
}

// KPI is one headline metric. Value is the display string (₹ money, counts, percents);
// Raw carries the underlying number so KPIs, chart and table all project the same sums.
type KPI struct {
	Label string  `json:"label"`
	Value string  `json:"value"`
	Raw   float64 `json:"raw"`
	Icon  string  `json:"icon,omitempty"`
	Color string  `json:"color,omitempty"`
}

// Chart type hints understood by the dashboard.
const (
	ChartBar  = "bar"
	ChartLine = "line"
	ChartPie  = "pie"
)

// Series is one named data vector aligned with the chart labels.
type Series struct {
	Name string    `json:"name"`
	Data []float64 `json:"data"`
}

// ChartSpec describes the chart for a report, or is nil when there is nothing to plot.
type ChartSpec struct {
	Type   string   `json:"type"`
	Labels []string `json:"labels"`
	Series []Series `json:"series"`
}

// Row is one table row keyed by column name.
type Row map[string]any

// ReportResult is the normalized output consumed by the dashboard: a fixed set of KPIs,
// an optional chart, and a table whose column order is explicit. It is built fresh on
// every invocation and never persisted.
type ReportResult struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Category    string     `json:"category"`
	GeneratedAt time.Time  `json:"generated_at"`
	KPIs        []KPI      `json:"kpis"`
	Chart       *ChartSpec `json:"chart"`
	Columns     []string   `json:"columns"`
	Table       []Row      `json:"table"`
}

// HasRows reports whether there is anything to export.
func (r ReportResult) HasRows() bool { return len(r.Table) > 0 }

func emptyResult() ReportResult {
	return ReportResult{KPIs: []KPI{}, Columns: []string{}, Table: []Row{}}
}
