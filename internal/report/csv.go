package report

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ToCSV renders the result table as CSV, header first, cells ordered by Columns.
// Values are quoted per RFC 4180, so commas inside labels survive a round trip.
// An empty table returns ErrEmptyReport; the export endpoint turns that into the
// "no data" response instead of serving a header-only file.
func ToCSV(res ReportResult) (string, error) {
	if !res.HasRows() {
		return "", ErrEmptyReport
	}

	var sb strings.Builder
	w := csv.NewWriter(&sb)

	if err := w.Write(res.Columns); err != nil {
		return "", fmt.Errorf("write csv header: %w", err)
	}
	record := make([]string, len(res.Columns))
	for _, row := range res.Table {
		for i, col := range res.Columns {
			record[i] = cell(row[col])
		}
		if err := w.Write(record); err != nil {
			return "", fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flush csv: %w", err)
	}
	return sb.String(), nil
}

// Filename is the download name for an export generated on the given date.
func Filename(reportID string, on time.Time) string {
	return fmt.Sprintf("%s-%s.csv", reportID, on.Format("2006-01-02"))
}

// cell renders one table value; nil and missing values come out empty.
func cell(v any) string {
	switch c := v.(type) {
	case nil:
		return ""
	case string:
		return c
	case int:
		return strconv.Itoa(c)
	case int64:
		return strconv.FormatInt(c, 10)
	case float64:
		return strconv.FormatFloat(c, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(c)
	default:
		return fmt.Sprint(c)
	}
}
