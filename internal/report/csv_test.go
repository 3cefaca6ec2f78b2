package report

import (
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToCSV_RoundTrip(t *testing.T) {
	res := ReportResult{
		Columns: []string{"name", "value", "share"},
		Table: []Row{
			{"name": "rent", "value": 1000.0, "share": "55.6%"},
			{"name": "ads", "value": 800.0, "share": "44.4%"},
		},
	}

	out, err := ToCSV(res)
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)

	require.Len(t, records, len(res.Table)+1)
	assert.Equal(t, []string{"name", "value", "share"}, records[0])
	assert.Equal(t, []string{"rent", "1000", "55.6%"}, records[1])
	assert.Equal(t, []string{"ads", "800", "44.4%"}, records[2])
}

func TestToCSV_QuotesEmbeddedCommas(t *testing.T) {
	res := ReportResult{
		Columns: []string{"product", "revenue"},
		Table: []Row{
			{"product": "Gift Box, Large", "revenue": 2500.0},
		},
	}

	out, err := ToCSV(res)
	require.NoError(t, err)
	assert.Contains(t, out, `"Gift Box, Large"`)

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, "Gift Box, Large", records[1][0])
}

func TestToCSV_MissingAndNilValuesRenderEmpty(t *testing.T) {
	res := ReportResult{
		Columns: []string{"a", "b", "c"},
		Table: []Row{
			{"a": "x", "b": nil},
		},
	}

	out, err := ToCSV(res)
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "", ""}, records[1])
}

func TestToCSV_EmptyTable(t *testing.T) {
	_, err := ToCSV(ReportResult{Columns: []string{"a"}})
	assert.ErrorIs(t, err, ErrEmptyReport)
}

func TestFilename(t *testing.T) {
	on := time.Date(2025, 4, 9, 18, 0, 0, 0, time.UTC)
	assert.Equal(t, "sales-summary-2025-04-09.csv", Filename("sales-summary", on))
}
