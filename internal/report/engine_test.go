package report

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Mocks ---

type stubSource struct {
	orders     []Order
	payments   []Payment
	deliveries []Delivery
	expenses   []Expense
	profiles   []Profile
	products   []Product
	events     []Event

	fetched map[string]bool
	failOn  string

	lastStatus string
}

func newStubSource() *stubSource {
	return &stubSource{fetched: make(map[string]bool)}
}

func (s *stubSource) fetch(table string) error {
	s.fetched[table] = true
	if s.failOn == table {
		return errors.New("connection reset")
	}
	return nil
}

func (s *stubSource) Orders(_ context.Context, _ Window, status string) ([]Order, error) {
	s.lastStatus = status
	if err := s.fetch("orders"); err != nil {
		return nil, err
	}
	return s.orders, nil
}

func (s *stubSource) Payments(_ context.Context, _ Window) ([]Payment, error) {
	if err := s.fetch("payments"); err != nil {
		return nil, err
	}
	return s.payments, nil
}

func (s *stubSource) Deliveries(_ context.Context, _ Window) ([]Delivery, error) {
	if err := s.fetch("deliveries"); err != nil {
		return nil, err
	}
	return s.deliveries, nil
}

func (s *stubSource) Expenses(_ context.Context, _ Window) ([]Expense, error) {
	if err := s.fetch("expenses"); err != nil {
		return nil, err
	}
	return s.expenses, nil
}

func (s *stubSource) Profiles(_ context.Context) ([]Profile, error) {
	if err := s.fetch("profiles"); err != nil {
		return nil, err
	}
	return s.profiles, nil
}

func (s *stubSource) Products(_ context.Context) ([]Product, error) {
	if err := s.fetch("products"); err != nil {
		return nil, err
	}
	return s.products, nil
}

func (s *stubSource) Events(_ context.Context, _ Window) ([]Event, error) {
	if err := s.fetch("events"); err != nil {
		return nil, err
	}
	return s.events, nil
}

func testWindow() Window {
	return Window{
		Since: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		Until: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
	}
}

func dayIn(window Window, day int) time.Time {
	return window.Since.AddDate(0, 0, day-1).Add(10 * time.Hour)
}

// --- Tests ---

func TestEngine_UnknownReport(t *testing.T) {
	eng := NewEngine(newStubSource(), NewRegistry())

	res, err := eng.Compute(context.Background(), "no-such-report", testWindow(), Filters{})

	assert.ErrorIs(t, err, ErrUnknownReport)
	assert.Equal(t, "no-such-report", res.ID)
	assert.Empty(t, res.KPIs)
	assert.Nil(t, res.Chart)
	assert.Empty(t, res.Table)
	assert.False(t, res.HasRows())
}

func TestEngine_FetchesOnlyDeclaredTables(t *testing.T) {
	src := newStubSource()
	eng := NewEngine(src, NewRegistry())

	_, err := eng.Compute(context.Background(), "expense-by-category", testWindow(), Filters{})
	require.NoError(t, err)

	assert.True(t, src.fetched["expenses"])
	assert.False(t, src.fetched["orders"])
	assert.False(t, src.fetched["events"])
	assert.False(t, src.fetched["products"])
}

func TestEngine_DataSourceError(t *testing.T) {
	src := newStubSource()
	src.failOn = "orders"
	eng := NewEngine(src, NewRegistry())

	_, err := eng.Compute(context.Background(), "sales-summary", testWindow(), Filters{})

	var dsErr *DataSourceError
	require.ErrorAs(t, err, &dsErr)
	assert.Equal(t, "orders", dsErr.Source)
	assert.Contains(t, dsErr.Error(), "connection reset")
}

func TestEngine_StampsIdentity(t *testing.T) {
	eng := NewEngine(newStubSource(), NewRegistry())

	res, err := eng.Compute(context.Background(), "sales-summary", testWindow(), Filters{})
	require.NoError(t, err)

	assert.Equal(t, "sales-summary", res.ID)
	assert.Equal(t, "Sales Summary", res.Title)
	assert.Equal(t, CategorySales, res.Category)
	assert.False(t, res.GeneratedAt.IsZero())
}

func TestEngine_StatusFilterNormalized(t *testing.T) {
	src := newStubSource()
	eng := NewEngine(src, NewRegistry())

	_, err := eng.Compute(context.Background(), "sales-summary", testWindow(), Filters{Status: "All"})
	require.NoError(t, err)
	assert.Equal(t, "", src.lastStatus)

	_, err = eng.Compute(context.Background(), "sales-summary", testWindow(), Filters{Status: "Delivered"})
	require.NoError(t, err)
	assert.Equal(t, "delivered", src.lastStatus)
}

func TestEngine_EmptyWindowProducesEmptyResult(t *testing.T) {
	eng := NewEngine(newStubSource(), NewRegistry())

	for _, def := range eng.Registry().Definitions() {
		res, err := eng.Compute(context.Background(), def.ID, testWindow(), Filters{})
		require.NoError(t, err, def.ID)

		assert.Len(t, res.KPIs, 4, def.ID)
		assert.Nil(t, res.Chart, def.ID)
		assert.Empty(t, res.Table, def.ID)
		assert.NotEmpty(t, res.Columns, def.ID)
		for _, kpi := range res.KPIs {
			assert.False(t, kpi.Raw != kpi.Raw, "NaN KPI in %s: %s", def.ID, kpi.Label)
		}
	}
}

func TestEngine_ContextCancellation(t *testing.T) {
	src := newStubSource()
	eng := NewEngine(src, NewRegistry())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// A cancelled caller may still get a result when fetches never block, but the
	// engine must not panic or hang.
	_, err := eng.Compute(ctx, "sales-summary", testWindow(), Filters{})
	assert.NoError(t, err)
}
