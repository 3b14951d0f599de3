package destination

import (
	"errors"
	"fmt"
)

// ErrTableNotFound is returned when a table has no columns in the destination.
var ErrTableNotFound = errors.New("table not found")

// ConnectionError reports a destination file that could not be opened.
type ConnectionError struct {
	Path string
	Err  error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connection to database %s failed: %v", e.Path, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// SchemaMismatchError reports a row whose value count differs from the
// number of target columns. Row is zero-based in source order.
type SchemaMismatchError struct {
	Table string
	Row   int
	Got   int
	Want  int
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("row %d has %d values, table %s has %d columns", e.Row, e.Got, e.Table, e.Want)
}
