package report

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Sentinel labels substituted when a relation or field is missing, so one bad row never
// aborts the rest of the aggregation.
const (
	labelGuest         = "Guest"
	labelUnknown       = "Unknown"
	labelUncategorized = "Uncategorized"
	labelNone          = "-"
)

// formatINR renders an amount as rupees with Indian digit grouping (12,34,567.89).
// Whole amounts drop the paise, matching how the dashboard shows money.
func formatINR(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	paise := int64(math.Round(v * 100))
	whole := paise / 100
	frac := paise % 100

	out := "₹" + groupIndian(strconv.FormatInt(whole, 10))
	if frac != 0 {
		out += fmt.Sprintf(".%02d", frac)
	}
	if neg {
		out = "-" + out
	}
	return out
}

// groupIndian inserts commas in the Indian system: the last three digits, then pairs.
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
	var parts []string
	for len(head) > 2 {
		parts = append([]string{head[len(head)-2:]}, parts...)
		head = head[:len(head)-2]
	}
	if head != "" {
		parts = append([]string{head}, parts...)
	}
	return strings.Join(parts, ",") + "," + tail
}

// round1 rounds to one decimal place, the precision used for shares and rates.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// round2 rounds to paise precision; table cells carry money as numbers, not strings.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// formatPercent renders a ratio already scaled to 0–100 with one decimal and a % suffix.
func formatPercent(pct float64) string {
	return strconv.FormatFloat(round1(pct), 'f', 1, 64) + "%"
}

// formatCount renders an integer KPI value.
func formatCount(n int) string { return strconv.Itoa(n) }

// formatFloat renders a non-monetary numeric KPI value with at most one decimal.
func formatFloat(v float64) string {
	if v == math.Trunc(v) {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	return strconv.FormatFloat(round1(v), 'f', 1, 64)
}

// dayLabel and monthLabel are the bucket labels used by date-based reports.
func dayLabel(t time.Time) string   { return t.Format("02 Jan") }
func monthLabel(t time.Time) string { return t.Format("Jan 2006") }

// dayOf truncates to the calendar day, monthOf to the first of the month. Buckets key on
// these times so chronological order survives formatting.
func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func monthOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// KPI constructors: every report assembles exactly four of these from sums it already
// computed, so the KPI, chart and table projections never recompute.

func moneyKPI(label string, amount float64, color string) KPI {
	return KPI{Label: label, Value: formatINR(amount), Raw: amount, Icon: "currency", Color: color}
}

func countKPI(label string, n int, color string) KPI {
	return KPI{Label: label, Value: formatCount(n), Raw: float64(n), Icon: "hash", Color: color}
}

func percentKPI(label string, pct float64, color string) KPI {
	return KPI{Label: label, Value: formatPercent(pct), Raw: round1(pct), Icon: "percent", Color: color}
}

func numberKPI(label string, v float64, color string) KPI {
	return KPI{Label: label, Value: formatFloat(v), Raw: v, Icon: "hash", Color: color}
}

func textKPI(label, value string, color string) KPI {
	return KPI{Label: label, Value: value, Icon: "tag", Color: color}
}
