package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentMethodSplit_OnlyCollectedPayments(t *testing.T) {
	w := testWindow()
	ds := &Dataset{
		Window: w,
		Payments: []Payment{
			{OrderID: "o1", Method: "upi", Status: "paid", Amount: 1000, CreatedAt: dayIn(w, 1)},
			{OrderID: "o2", Method: "card", Status: "paid", Amount: 500, CreatedAt: dayIn(w, 2)},
			{OrderID: "o3", Method: "upi", Status: "failed", Amount: 999, CreatedAt: dayIn(w, 3)},
			{OrderID: "o4", Method: "cod", Status: "partial", Amount: 300, CreatedAt: dayIn(w, 4)},
		},
	}

	res := buildPaymentMethodSplit(ds, Filters{})

	assert.Equal(t, 1800.0, kpiByLabel(t, res, "Collected").Raw, "failed payments excluded")
	assert.Equal(t, "upi", kpiByLabel(t, res, "Top Method").Value)
	require.Len(t, res.Table, 3)
	assert.Equal(t, "upi", res.Table[0]["method"])
	assert.InDelta(t, 100.0, shareSum(t, res.Table, "share"), 0.2)
}

func TestRefunds_JoinsOrderNumbers(t *testing.T) {
	w := testWindow()
	ds := &Dataset{
		Window: w,
		Orders: []Order{
			{ID: "o1", OrderNumber: "ORD-2001", CreatedAt: dayIn(w, 1)},
		},
		Payments: []Payment{
			{OrderID: "o1", Method: "upi", Status: "refunded", Amount: 800, RefundAmount: 800, RefundReason: "damaged", CreatedAt: dayIn(w, 2)},
			{OrderID: "o-missing", Method: "card", Status: "partial", Amount: 1200, RefundAmount: 400, CreatedAt: dayIn(w, 3)},
			{OrderID: "o2", Method: "card", Status: "paid", Amount: 999, CreatedAt: dayIn(w, 4)},
		},
	}

	res := buildRefunds(ds, Filters{})

	assert.Equal(t, 2.0, kpiByLabel(t, res, "Refunds").Raw)
	assert.Equal(t, 1200.0, kpiByLabel(t, res, "Refund Amount").Raw)
	assert.Equal(t, 600.0, kpiByLabel(t, res, "Avg Refund").Raw)

	require.Len(t, res.Table, 2)
	assert.Equal(t, "ORD-2001", res.Table[0]["order"], "largest refund first, joined to order number")
	assert.Equal(t, labelUnknown, res.Table[1]["order"], "missing order falls back to sentinel")
	assert.Equal(t, labelNone, res.Table[1]["reason"])
}

func TestCODvsPrepaid_DeliveryFlagWins(t *testing.T) {
	w := testWindow()
	ds := &Dataset{
		Window: w,
		Orders: []Order{
			{ID: "o1", PaymentMethod: "upi", Total: 1000, CreatedAt: dayIn(w, 1)},
			{ID: "o2", PaymentMethod: "cod", Total: 600, CreatedAt: dayIn(w, 2)},
			{ID: "o3", PaymentMethod: "upi", Total: 400, CreatedAt: dayIn(w, 3)},
		},
		Deliveries: []Delivery{
			// Marked COD on delivery even though the order says upi.
			{OrderID: "o3", IsCOD: true, CODAmount: 400, CreatedAt: dayIn(w, 3)},
		},
	}

	res := buildCODvsPrepaid(ds, Filters{})

	assert.Equal(t, 2.0, kpiByLabel(t, res, "COD Orders").Raw)
	assert.Equal(t, 1.0, kpiByLabel(t, res, "Prepaid Orders").Raw)
	assert.Equal(t, 1000.0, kpiByLabel(t, res, "COD Value").Raw)

	require.Len(t, res.Table, 2)
	assert.Equal(t, "COD", res.Table[0]["type"])
	assert.InDelta(t, 100.0, shareSum(t, res.Table, "share"), 0.2)
}

func TestPaymentsSummary_NetCollected(t *testing.T) {
	w := testWindow()
	ds := &Dataset{
		Window: w,
		Payments: []Payment{
			{OrderID: "o1", Status: "paid", Amount: 2000, CreatedAt: dayIn(w, 1)},
			{OrderID: "o2", Status: "refunded", Amount: 500, RefundAmount: 500, CreatedAt: dayIn(w, 2)},
		},
	}

	res := buildPaymentsSummary(ds, Filters{})

	assert.Equal(t, 2000.0, kpiByLabel(t, res, "Collected").Raw)
	assert.Equal(t, 500.0, kpiByLabel(t, res, "Refunded").Raw)
	assert.Equal(t, 1500.0, kpiByLabel(t, res, "Net Collected").Raw)
	require.Len(t, res.Table, 2)
}
