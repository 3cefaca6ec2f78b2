package report

import (
	"context"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

// Source loads raw rows for a reporting window. Implementations sit over the database;
// the engine never issues queries itself.
type Source interface {
	Orders(ctx context.Context, w Window, status string) ([]Order, error)
	Payments(ctx context.Context, w Window) ([]Payment, error)
	Deliveries(ctx context.Context, w Window) ([]Delivery, error)
	Expenses(ctx context.Context, w Window) ([]Expense, error)
	Profiles(ctx context.Context) ([]Profile, error)
	Products(ctx context.Context) ([]Product, error)
	Events(ctx context.Context, w Window) ([]Event, error)
}

// Engine computes reports: it resolves the definition, loads only the tables the
// definition declares, and hands the dataset to the builder.
type Engine struct {
	source   Source
	registry *Registry
}

func NewEngine(source Source, registry *Registry) *Engine {
	return &Engine{source: source, registry: registry}
}

// Registry exposes the catalog for listing endpoints.
func (e *Engine) Registry() *Registry { return e.registry }

// Compute runs the report identified by id over the window. An unknown id returns an
// empty result alongside ErrUnknownReport so callers can still render a page. A failed
// table load aborts the whole computation with a DataSourceError; partial datasets are
// never handed to builders.
func (e *Engine) Compute(ctx context.Context, id string, w Window, f Filters) (ReportResult, error) {
	def, ok := e.registry.Lookup(id)
	if !ok {
		res := emptyResult()
		res.ID = id
		res.GeneratedAt = time.Now()
		return res, ErrUnknownReport
	}

	f.Status = normalizeStatus(f.Status)

	ds, err := e.load(ctx, def.Needs, w, f)
	if err != nil {
		return ReportResult{}, err
	}

	res := def.Build(ds, f)
	res.ID = def.ID
	res.Title = def.Title
	res.Category = def.Category
	res.GeneratedAt = time.Now()
	if res.KPIs == nil {
		res.KPIs = []KPI{}
	}
	if res.Columns == nil {
		res.Columns = []string{}
	}
	if res.Table == nil {
		res.Table = []Row{}
	}
	return res, nil
}

// load fetches the declared tables concurrently. Each goroutine writes its own dataset
// field, so no mutex is needed; errgroup cancels the siblings on first failure.
func (e *Engine) load(ctx context.Context, needs Needs, w Window, f Filters) (*Dataset, error) {
	ds := &Dataset{Window: w}
	g, ctx := errgroup.WithContext(ctx)

	if needs.Orders {
		g.Go(func() error {
			rows, err := e.source.Orders(ctx, w, f.Status)
			if err != nil {
				return &DataSourceError{Source: "orders", Err: err}
			}
			ds.Orders = rows
			return nil
		})
	}
	if needs.Payments {
		g.Go(func() error {
			rows, err := e.source.Payments(ctx, w)
			if err != nil {
				return &DataSourceError{Source: "payments", Err: err}
			}
			ds.Payments = rows
			return nil
		})
	}
	if needs.Deliveries {
		g.Go(func() error {
			rows, err := e.source.Deliveries(ctx, w)
			if err != nil {
				return &DataSourceError{Source: "deliveries", Err: err}
			}
			ds.Deliveries = rows
			return nil
		})
	}
	if needs.Expenses {
		g.Go(func() error {
			rows, err := e.source.Expenses(ctx, w)
			if err != nil {
				return &DataSourceError{Source: "expenses", Err: err}
			}
			ds.Expenses = rows
			return nil
		})
	}
	if needs.Profiles {
		g.Go(func() error {
			rows, err := e.source.Profiles(ctx)
			if err != nil {
				return &DataSourceError{Source: "profiles", Err: err}
			}
			ds.Profiles = rows
			return nil
		})
	}
	if needs.Products {
		g.Go(func() error {
			rows, err := e.source.Products(ctx)
			if err != nil {
				return &DataSourceError{Source: "products", Err: err}
			}
			ds.Products = rows
			return nil
		})
	}
	if needs.Events {
		g.Go(func() error {
			rows, err := e.source.Events(ctx, w)
			if err != nil {
				return &DataSourceError{Source: "events", Err: err}
			}
			ds.Events = rows
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return ds, nil
}

// normalizeStatus folds the UI's "all" pseudo-status into the empty filter.
func normalizeStatus(s string) string {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "all" {
		return ""
	}
	return s
}
