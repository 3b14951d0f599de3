package importer

import (
	"fmt"
	"strings"

	"github.com/darianmavgo/tabimport/destination"
	"github.com/darianmavgo/tabimport/sources"
	"github.com/darianmavgo/tabimport/sources/common"
)

// InferSchema derives a schema from a batch: sanitized header names, or
// cl0..clN when there is no header, typed from sampled values.
func InferSchema(batch *sources.Batch) destination.Schema {
	var names []string
	switch {
	case len(batch.Header) > 0:
		names = common.GenColumnNames(batch.Header)
	case batch.Len() > 0:
		names = common.PositionalNames(len(batch.Rows[0]))
	default:
		return nil
	}
	return destination.NewSchema(names, common.InferColumnTypes(batch.Rows, len(names)))
}

// MapByHeader reorders rows from the source header order to columns. A
// column matches a header field when the sanitized header equals the column
// name, ignoring case. Unmatched columns get NULL. A row whose width differs
// from the header is rejected with a SchemaMismatchError.
func MapByHeader(header, columns []string, rows [][]any) ([][]any, error) {
	sanitized := common.GenColumnNames(header)

	positions := make([]int, len(columns))
	matched := 0
	for c, col := range columns {
		positions[c] = -1
		for h := range header {
			if strings.EqualFold(sanitized[h], col) || strings.EqualFold(strings.TrimSpace(header[h]), col) {
				positions[c] = h
				matched++
				break
			}
		}
	}
	if matched == 0 {
		return nil, fmt.Errorf("no source column matches the destination columns %v", columns)
	}

	for r, row := range rows {
		if len(row) != len(header) {
			return nil, &destination.SchemaMismatchError{Row: r, Got: len(row), Want: len(header)}
		}
	}

	mapped := make([][]any, len(rows))
	for r, row := range rows {
		out := make([]any, len(columns))
		for c, pos := range positions {
			if pos >= 0 {
				out[c] = row[pos]
			}
		}
		mapped[r] = out
	}
	return mapped, nil
}
