package report

// Report categories, mirrored in the back-office sidebar.
const (
	CategorySales     = "sales"
	CategoryOrders    = "orders"
	CategoryPayments  = "payments"
	CategoryCustomers = "customers"
	CategoryInventory = "inventory"
	CategoryDelivery  = "delivery"
	CategoryExpenses  = "expenses"
	CategoryMarketing = "marketing"
)

// Definition declares one report: its identity, which tables it reads, and how its
// result is assembled from a loaded dataset. Builders are pure; all IO happens before
// Build runs.
type Definition struct {
	ID       string
	Title    string
	Category string
	Needs    Needs
	Build    func(*Dataset, Filters) ReportResult
}

// Registry holds every report definition, keyed by id, preserving catalog order.
type Registry struct {
	defs  map[string]Definition
	order []string
}

// NewRegistry assembles the built-in report catalog.
func NewRegistry() *Registry {
	r := &Registry{defs: make(map[string]Definition)}
	r.add(salesDefinitions()...)
	r.add(ordersDefinitions()...)
	r.add(paymentsDefinitions()...)
	r.add(customersDefinitions()...)
	r.add(inventoryDefinitions()...)
	r.add(deliveryDefinitions()...)
	r.add(expensesDefinitions()...)
	r.add(marketingDefinitions()...)
	return r
}

func (r *Registry) add(defs ...Definition) {
	for _, d := range defs {
		if _, dup := r.defs[d.ID]; dup {
			panic("report: duplicate definition " + d.ID)
		}
		r.defs[d.ID] = d
		r.order = append(r.order, d.ID)
	}
}

// Lookup returns the definition for id.
func (r *Registry) Lookup(id string) (Definition, bool) {
	d, ok := r.defs[id]
	return d, ok
}

// Definitions returns all definitions in catalog order.
func (r *Registry) Definitions() []Definition {
	out := make([]Definition, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.defs[id])
	}
	return out
}

// IDs returns every report id in catalog order.
func (r *Registry) IDs() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}
