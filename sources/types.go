package sources

import (
	"context"
	"fmt"

	"github.com/darianmavgo/tabimport/sources/common"
)

// Batch is the full set of rows read from a source before any insert begins.
type Batch struct {
	// Header holds the raw header row, or nil when the source has none.
	Header []string
	// Rows are in source order. Values are scalars: string, int64, float64 or nil.
	Rows [][]any
}

// Len returns the number of data rows.
func (b *Batch) Len() int {
	if b == nil {
		return 0
	}
	return len(b.Rows)
}

// Producer reads a tabular source and produces its ordered rows.
type Producer interface {
	Produce(ctx context.Context) (*Batch, error)
}

// Driver defines the interface that must be implemented by a source package.
type Driver interface {
	// Open returns a new Producer for the given source options.
	Open(config *common.SourceConfig) (Producer, error)
}

// SourceReadError reports a source that is missing, unreadable or malformed.
type SourceReadError struct {
	Path string
	Err  error
}

func (e *SourceReadError) Error() string {
	return fmt.Sprintf("failed to read source %s: %v", e.Path, e.Err)
}

func (e *SourceReadError) Unwrap() error {
	return e.Err
}

// StringsToRow converts a record of text fields to a row without coercion.
func StringsToRow(record []string) []any {
	row := make([]any, len(record))
	for i, val := range record {
		row[i] = val
	}
	return row
}
