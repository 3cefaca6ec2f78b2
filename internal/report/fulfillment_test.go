package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPartnerPerformance(t *testing.T) {
	w := testWindow()
	ds := &Dataset{
		Window: w,
		Deliveries: []Delivery{
			{OrderID: "o1", PartnerName: "Shiprocket", Status: "delivered", CreatedAt: dayIn(w, 1)},
			{OrderID: "o2", PartnerName: "Shiprocket", Status: "delivered", CreatedAt: dayIn(w, 2)},
			{OrderID: "o3", PartnerName: "Shiprocket", Status: "failed", CreatedAt: dayIn(w, 3)},
			{OrderID: "o4", PartnerName: "Delhivery", Status: "delivered", CreatedAt: dayIn(w, 4)},
			{OrderID: "o5", PartnerName: "", Status: "in_transit", CreatedAt: dayIn(w, 5)},
		},
	}

	res := buildPartnerPerformance(ds, Filters{})

	assert.Equal(t, 3.0, kpiByLabel(t, res, "Partners").Raw)
	assert.Equal(t, 3.0, kpiByLabel(t, res, "Delivered").Raw)
	assert.Equal(t, 1.0, kpiByLabel(t, res, "Failed").Raw)
	assert.Equal(t, 60.0, kpiByLabel(t, res, "Success Rate").Raw)

	require.Len(t, res.Table, 3)
	assert.Equal(t, "Shiprocket", res.Table[0]["partner"])
	assert.Equal(t, "66.7%", res.Table[0]["success_rate"])

	var sentinel bool
	for _, row := range res.Table {
		if row["partner"] == labelUnknown {
			sentinel = true
		}
	}
	assert.True(t, sentinel)
}

func TestCODReconciliation(t *testing.T) {
	w := testWindow()
	ds := &Dataset{
		Window: w,
		Deliveries: []Delivery{
			{OrderID: "o1", PartnerName: "Shiprocket", IsCOD: true, CODAmount: 1000, CODCollected: true, CreatedAt: dayIn(w, 1)},
			{OrderID: "o2", PartnerName: "Shiprocket", IsCOD: true, CODAmount: 600, CODCollected: false, CreatedAt: dayIn(w, 2)},
			{OrderID: "o3", PartnerName: "Delhivery", IsCOD: true, CODAmount: 400, CODCollected: true, CreatedAt: dayIn(w, 3)},
			{OrderID: "o4", PartnerName: "Delhivery", IsCOD: false, CODAmount: 0, CreatedAt: dayIn(w, 4)},
		},
	}

	res := buildCODReconciliation(ds, Filters{})

	assert.Equal(t, 3.0, kpiByLabel(t, res, "COD Deliveries").Raw)
	assert.Equal(t, 2000.0, kpiByLabel(t, res, "COD Value").Raw)
	assert.Equal(t, 1400.0, kpiByLabel(t, res, "Collected").Raw)
	assert.Equal(t, 600.0, kpiByLabel(t, res, "Pending").Raw)

	require.Len(t, res.Table, 2)
	assert.Equal(t, "Shiprocket", res.Table[0]["partner"])
	assert.Equal(t, 600.0, res.Table[0]["pending"])
	assert.Equal(t, 0.0, res.Table[1]["pending"])
}

func TestDeliveryTimelines(t *testing.T) {
	w := testWindow()
	deliveredAt := func(placed time.Time, days float64) *time.Time {
		d := placed.Add(time.Duration(days * 24 * float64(time.Hour)))
		return &d
	}
	placed1 := dayIn(w, 1)
	placed2 := dayIn(w, 2)
	placed3 := dayIn(w, 3)
	ds := &Dataset{
		Window: w,
		Orders: []Order{
			{ID: "o1", CreatedAt: placed1},
			{ID: "o2", CreatedAt: placed2},
			{ID: "o3", CreatedAt: placed3},
		},
		Deliveries: []Delivery{
			{OrderID: "o1", Status: "delivered", DeliveredAt: deliveredAt(placed1, 0.5), CreatedAt: placed1},
			{OrderID: "o2", Status: "delivered", DeliveredAt: deliveredAt(placed2, 2), CreatedAt: placed2},
			{OrderID: "o3", Status: "delivered", DeliveredAt: deliveredAt(placed3, 7), CreatedAt: placed3},
			{OrderID: "o4", Status: "in_transit", CreatedAt: dayIn(w, 4)},
		},
	}

	res := buildDeliveryTimelines(ds, Filters{})

	assert.Equal(t, 3.0, kpiByLabel(t, res, "Delivered").Raw)
	assert.InDelta(t, 3.2, kpiByLabel(t, res, "Avg Days").Raw, 0.05)
	assert.Equal(t, 0.5, kpiByLabel(t, res, "Fastest (Days)").Raw)
	assert.Equal(t, 7.0, kpiByLabel(t, res, "Slowest (Days)").Raw)

	require.Len(t, res.Table, 4)
	assert.Equal(t, "Same Day", res.Table[0]["duration"])
	assert.Equal(t, 1, res.Table[0]["deliveries"])
	assert.Equal(t, 1, res.Table[1]["deliveries"])
	assert.Equal(t, 0, res.Table[2]["deliveries"])
	assert.Equal(t, 1, res.Table[3]["deliveries"])
}

func TestDeliverySummary(t *testing.T) {
	w := testWindow()
	ds := &Dataset{
		Window: w,
		Deliveries: []Delivery{
			{OrderID: "o1", Status: "delivered", CreatedAt: dayIn(w, 1)},
			{OrderID: "o2", Status: "in_transit", CreatedAt: dayIn(w, 2)},
			{OrderID: "o3", Status: "pending", CreatedAt: dayIn(w, 3)},
			{OrderID: "o4", Status: "failed", CreatedAt: dayIn(w, 4)},
		},
	}

	res := buildDeliverySummary(ds, Filters{})

	assert.Equal(t, 4.0, kpiByLabel(t, res, "Deliveries").Raw)
	assert.Equal(t, 1.0, kpiByLabel(t, res, "Delivered").Raw)
	assert.Equal(t, 2.0, kpiByLabel(t, res, "In Flight").Raw)
	assert.Equal(t, 1.0, kpiByLabel(t, res, "Failed").Raw)
	assert.InDelta(t, 100.0, shareSum(t, res.Table, "share"), 0.2)
}
