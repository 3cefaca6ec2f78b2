package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatINR(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "₹0"},
		{5, "₹5"},
		{150, "₹150"},
		{999, "₹999"},
		{1000, "₹1,000"},
		{78500, "₹78,500"},
		{100000, "₹1,00,000"},
		{1234567.89, "₹12,34,567.89"},
		{12345678, "₹1,23,45,678"},
		{1234.5, "₹1,234.50"},
		{-4500, "-₹4,500"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, formatINR(tc.in), "formatINR(%v)", tc.in)
	}
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "55.6%", formatPercent(55.5555))
	assert.Equal(t, "44.4%", formatPercent(44.4444))
	assert.Equal(t, "0.0%", formatPercent(0))
	assert.Equal(t, "100.0%", formatPercent(100))
}

func TestShare_GuardsZeroTotal(t *testing.T) {
	assert.Equal(t, 0.0, share(10, 0))
	assert.Equal(t, 55.6, share(1000, 1800))
	assert.Equal(t, 44.4, share(800, 1800))
}

func TestSafeDiv(t *testing.T) {
	assert.Equal(t, 0.0, safeDiv(100, 0))
	assert.Equal(t, 150.0, safeDiv(300, 2))
}

func TestBucketLabels(t *testing.T) {
	ts := time.Date(2025, 3, 7, 16, 45, 0, 0, time.UTC)

	assert.Equal(t, "07 Mar", dayLabel(ts))
	assert.Equal(t, "Mar 2025", monthLabel(ts))
	assert.Equal(t, time.Date(2025, 3, 7, 0, 0, 0, 0, time.UTC), dayOf(ts))
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), monthOf(ts))
}

func TestKPIConstructors(t *testing.T) {
	money := moneyKPI("Total Revenue", 78500, "green")
	assert.Equal(t, "₹78,500", money.Value)
	assert.Equal(t, 78500.0, money.Raw)
	assert.Equal(t, "currency", money.Icon)

	count := countKPI("Total Orders", 42, "blue")
	assert.Equal(t, "42", count.Value)
	assert.Equal(t, 42.0, count.Raw)

	pct := percentKPI("Conversion Rate", 3.14159, "purple")
	assert.Equal(t, "3.1%", pct.Value)
	assert.Equal(t, 3.1, pct.Raw)

	text := textKPI("Top Product", "Almond Brittle", "orange")
	assert.Equal(t, "Almond Brittle", text.Value)
	assert.Zero(t, text.Raw)
}
