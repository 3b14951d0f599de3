// Package literal provides a source made of records supplied in code or config.
package literal

import (
	"context"

	"github.com/darianmavgo/tabimport/sources"
	"github.com/darianmavgo/tabimport/sources/common"
)

func init() {
	sources.Register("literal", &literalDriver{})
}

type literalDriver struct{}

func (d *literalDriver) Open(config *common.SourceConfig) (sources.Producer, error) {
	if len(config.Rows) == 0 && len(config.Header) == 0 {
		return Default(), nil
	}
	rows := make([][]any, len(config.Rows))
	for i, record := range config.Rows {
		rows[i] = sources.StringsToRow(record)
	}
	return New(config.Header, rows...), nil
}

// LiteralProducer yields a fixed set of records.
type LiteralProducer struct {
	header []string
	rows   [][]any
}

var _ sources.Producer = (*LiteralProducer)(nil)

// New creates a producer for the given header and records.
// The header may be nil.
func New(header []string, rows ...[]any) *LiteralProducer {
	return &LiteralProducer{header: header, rows: rows}
}

// Default returns the sample person record.
func Default() *LiteralProducer {
	return New(
		[]string{"fName", "lName", "title", "age"},
		[]any{"Some First Name", "Some Last Name", "Very good Title", int64(42)},
	)
}

// Produce implements sources.Producer. The returned batch shares no slices
// with the producer.
func (p *LiteralProducer) Produce(ctx context.Context) (*sources.Batch, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	batch := &sources.Batch{Rows: make([][]any, len(p.rows))}
	if p.header != nil {
		batch.Header = append([]string(nil), p.header...)
	}
	for i, row := range p.rows {
		batch.Rows[i] = append([]any(nil), row...)
	}
	return batch, nil
}
