package report

import (
	"errors"
	"fmt"
)

// ErrUnknownReport is returned (alongside an empty result) for an unrecognized report id.
// The HTTP layer logs it and serves the empty result rather than failing the page.
var ErrUnknownReport = errors.New("unknown report id")

// ErrEmptyReport is returned by the CSV exporter when the table has no rows; export is
// disabled for empty reports.
var ErrEmptyReport = errors.New("report has no rows to export")

// DataSourceError wraps a row-fetch failure with the logical table that failed.
type DataSourceError struct {
	Source string
	Err    error
}

func (e *DataSourceError) Error() string {
	return fmt.Sprintf("report source %s: %v", e.Source, e.Err)
}

func (e *DataSourceError) Unwrap() error { return e.Err }
