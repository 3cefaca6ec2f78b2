package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupProduct_FallsBackToName(t *testing.T) {
	byID, byName := productsByID([]Product{
		{ID: "p1", Name: "Cotton Kurta", Category: "Apparel"},
		{ID: "p2", Name: "Brass Lamp", Category: "Home"},
	})

	p, ok := lookupProduct(OrderItem{ProductID: "p2", ProductName: "stale name"}, byID, byName)
	assert.True(t, ok)
	assert.Equal(t, "Brass Lamp", p.Name)

	// Deleted product: id no longer in the catalog, captured name still resolves.
	p, ok = lookupProduct(OrderItem{ProductID: "gone", ProductName: "Cotton Kurta"}, byID, byName)
	assert.True(t, ok)
	assert.Equal(t, "p1", p.ID)

	_, ok = lookupProduct(OrderItem{ProductName: "never existed"}, byID, byName)
	assert.False(t, ok)
}

func TestCustomerLabel_Sentinels(t *testing.T) {
	profiles := profilesByUser([]Profile{
		{UserID: "u1", FullName: "Priya Patel"},
		{UserID: "u2"},
	})

	assert.Equal(t, "Priya Patel", customerLabel(Order{UserID: "u1"}, profiles))
	assert.Equal(t, "Guest", customerLabel(Order{}, profiles))
	assert.Equal(t, "Unknown", customerLabel(Order{UserID: "u2"}, profiles))
	assert.Equal(t, "Unknown", customerLabel(Order{UserID: "missing"}, profiles))
}

func TestCategoryOf_Sentinel(t *testing.T) {
	byID, byName := productsByID([]Product{
		{ID: "p1", Name: "Brass Lamp", Category: "Home"},
		{ID: "p2", Name: "Mystery Box"},
	})

	assert.Equal(t, "Home", categoryOf(OrderItem{ProductID: "p1"}, byID, byName))
	assert.Equal(t, "Uncategorized", categoryOf(OrderItem{ProductID: "p2"}, byID, byName))
	assert.Equal(t, "Uncategorized", categoryOf(OrderItem{ProductName: "gone"}, byID, byName))
}

func TestCategoryMatches_CaseInsensitive(t *testing.T) {
	assert.True(t, categoryMatches("", "Home"))
	assert.True(t, categoryMatches("home", "Home"))
	assert.False(t, categoryMatches("Apparel", "Home"))
}

func TestSortRowsDesc_MixedNumericTypesAndStableTies(t *testing.T) {
	rows := []Row{
		{"name": "a", "value": 5},
		{"name": "b", "value": float64(10)},
		{"name": "c", "value": int64(5)},
		{"name": "d", "value": "not a number"},
	}
	sortRowsDesc(rows, "value")

	assert.Equal(t, "b", rows[0]["name"])
	// The two fives keep their input order; the unparseable cell sinks to zero.
	assert.Equal(t, "a", rows[1]["name"])
	assert.Equal(t, "c", rows[2]["name"])
	assert.Equal(t, "d", rows[3]["name"])
}

func TestPaymentsByOrder_GroupsMultipleAttempts(t *testing.T) {
	idx := paymentsByOrder([]Payment{
		{OrderID: "o1", Status: "failed"},
		{OrderID: "o1", Status: "paid"},
		{OrderID: "o2", Status: "paid"},
	})

	assert.Len(t, idx["o1"], 2)
	assert.Len(t, idx["o2"], 1)
}

func TestSessionSet_Deduplicates(t *testing.T) {
	s := sessionSet{}
	s.add("s1")
	s.add("s1")
	s.add("s2")
	s.add("") // untagged events never count as a session

	assert.Equal(t, 2, s.size())
	assert.True(t, s.has("s1"))
	assert.False(t, s.has(""))
}

func TestBarChart_LimitsToTopRows(t *testing.T) {
	rows := []Row{
		{"name": "a", "revenue": 300.0},
		{"name": "b", "revenue": 200.0},
		{"name": "c", "revenue": 100.0},
	}
	spec := barChart(rows, "name", "Revenue", "revenue", 2)

	assert.Equal(t, ChartBar, spec.Type)
	assert.Equal(t, []string{"a", "b"}, spec.Labels)
	assert.Equal(t, []float64{300, 200}, spec.Series[0].Data)
}

func TestChartOrNil_EmptyLabels(t *testing.T) {
	assert.Nil(t, chartOrNil(ChartSpec{Type: ChartLine}))
	assert.NotNil(t, chartOrNil(ChartSpec{Type: ChartLine, Labels: []string{"01 Jan"}}))
}
