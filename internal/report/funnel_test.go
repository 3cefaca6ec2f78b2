package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConversionFunnel_DeduplicatesBySession(t *testing.T) {
	w := testWindow()
	ds := &Dataset{
		Window: w,
		Events: []Event{
			// s1 views twice, carts, checks out, purchases.
			{EventType: "product_view", SessionID: "s1", CreatedAt: dayIn(w, 1)},
			{EventType: "product_view", SessionID: "s1", CreatedAt: dayIn(w, 1)},
			{EventType: "add_to_cart", SessionID: "s1", CreatedAt: dayIn(w, 1)},
			{EventType: "checkout_started", SessionID: "s1", CreatedAt: dayIn(w, 1)},
			{EventType: "order_completed", SessionID: "s1", CreatedAt: dayIn(w, 1)},
			// s2 views and carts only.
			{EventType: "product_view", SessionID: "s2", CreatedAt: dayIn(w, 2)},
			{EventType: "add_to_cart", SessionID: "s2", CreatedAt: dayIn(w, 2)},
			{EventType: "add_to_cart", SessionID: "s2", CreatedAt: dayIn(w, 2)},
			// s3 views only; page views never join the funnel.
			{EventType: "product_view", SessionID: "s3", CreatedAt: dayIn(w, 3)},
			{EventType: "page_view", SessionID: "s4", CreatedAt: dayIn(w, 3)},
		},
	}

	res := buildConversionFunnel(ds, Filters{})

	require.Len(t, res.Table, 4)
	assert.Equal(t, 3, res.Table[0]["sessions"], "s1 counted once despite two views")
	assert.Equal(t, 2, res.Table[1]["sessions"], "s2 counted once despite two cart adds")
	assert.Equal(t, 1, res.Table[2]["sessions"])
	assert.Equal(t, 1, res.Table[3]["sessions"])

	assert.Equal(t, labelNone, res.Table[0]["conversion"])
	assert.Equal(t, "66.7%", res.Table[1]["conversion"])
	assert.Equal(t, "50.0%", res.Table[2]["conversion"])
	assert.Equal(t, "100.0%", res.Table[3]["conversion"])

	assert.Equal(t, 3.0, kpiByLabel(t, res, "Sessions with Views").Raw)
	assert.InDelta(t, 33.3, kpiByLabel(t, res, "Conversion Rate").Raw, 0.05)
}

func TestCartAbandonment(t *testing.T) {
	w := testWindow()
	ds := &Dataset{
		Window: w,
		Events: []Event{
			{EventType: "add_to_cart", SessionID: "s1", CreatedAt: dayIn(w, 1)},
			{EventType: "order_completed", SessionID: "s1", CreatedAt: dayIn(w, 1)},
			{EventType: "add_to_cart", SessionID: "s2", CreatedAt: dayIn(w, 1)},
			{EventType: "add_to_cart", SessionID: "s3", CreatedAt: dayIn(w, 2)},
			{EventType: "add_to_cart", SessionID: "s3", CreatedAt: dayIn(w, 2)},
		},
	}

	res := buildCartAbandonment(ds, Filters{})

	assert.Equal(t, 3.0, kpiByLabel(t, res, "Cart Sessions").Raw)
	assert.Equal(t, 1.0, kpiByLabel(t, res, "Completed").Raw)
	assert.Equal(t, 2.0, kpiByLabel(t, res, "Abandoned").Raw)
	assert.InDelta(t, 66.7, kpiByLabel(t, res, "Abandonment Rate").Raw, 0.05)

	require.Len(t, res.Table, 2)
	assert.Equal(t, 2, res.Table[0]["carts"])
	assert.Equal(t, 1, res.Table[0]["completed"])
	assert.Equal(t, "50.0%", res.Table[0]["rate"])
	assert.Equal(t, 1, res.Table[1]["carts"])
	assert.Equal(t, "100.0%", res.Table[1]["rate"])
}

func TestMostViewedProducts(t *testing.T) {
	w := testWindow()
	ds := &Dataset{
		Window: w,
		Products: []Product{
			{ID: "p1", Name: "Kaju Katli", Category: "Sweets"},
		},
		Events: []Event{
			{EventType: "product_view", SessionID: "s1", VisitorID: "v1", ProductID: "p1", CreatedAt: dayIn(w, 1)},
			{EventType: "product_view", SessionID: "s2", VisitorID: "v1", ProductID: "p1", CreatedAt: dayIn(w, 2)},
			{EventType: "product_view", SessionID: "s3", VisitorID: "v2", ProductID: "p-deleted", CreatedAt: dayIn(w, 3)},
			{EventType: "page_view", SessionID: "s4", VisitorID: "v3", PagePath: "/home", CreatedAt: dayIn(w, 3)},
		},
	}

	res := buildMostViewedProducts(ds, Filters{})

	assert.Equal(t, 3.0, kpiByLabel(t, res, "Product Views").Raw)
	assert.Equal(t, 2.0, kpiByLabel(t, res, "Products Viewed").Raw)
	assert.Equal(t, "Kaju Katli", kpiByLabel(t, res, "Top Product").Value)

	require.Len(t, res.Table, 2)
	assert.Equal(t, "Kaju Katli", res.Table[0]["product"])
	assert.Equal(t, 2, res.Table[0]["views"])
	assert.Equal(t, 1, res.Table[0]["visitors"], "same visitor counted once")
	assert.Equal(t, labelUnknown, res.Table[1]["product"], "deleted product falls back to sentinel")
}

func TestTrafficByPage(t *testing.T) {
	w := testWindow()
	ds := &Dataset{
		Window: w,
		Events: []Event{
			{EventType: "page_view", SessionID: "s1", PagePath: "/home", CreatedAt: dayIn(w, 1)},
			{EventType: "page_view", SessionID: "s1", PagePath: "/home", CreatedAt: dayIn(w, 1)},
			{EventType: "page_view", SessionID: "s2", PagePath: "/products", CreatedAt: dayIn(w, 2)},
			{EventType: "product_view", SessionID: "s3", ProductID: "p1", CreatedAt: dayIn(w, 2)},
		},
	}

	res := buildTrafficByPage(ds, Filters{})

	assert.Equal(t, 3.0, kpiByLabel(t, res, "Page Views").Raw)
	assert.Equal(t, 2.0, kpiByLabel(t, res, "Pages").Raw)
	assert.Equal(t, 2.0, kpiByLabel(t, res, "Sessions").Raw)
	assert.Equal(t, "/home", kpiByLabel(t, res, "Top Page").Value)

	require.Len(t, res.Table, 2)
	assert.Equal(t, "/home", res.Table[0]["page"])
	assert.Equal(t, 2, res.Table[0]["views"])
	assert.Equal(t, 1, res.Table[0]["sessions"])
	assert.InDelta(t, 100.0, shareSum(t, res.Table, "share"), 0.2)
}
