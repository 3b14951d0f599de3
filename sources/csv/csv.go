package csv

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/darianmavgo/tabimport/sources"
	"github.com/darianmavgo/tabimport/sources/common"
)

func init() {
	sources.Register("csv", &csvDriver{})
}

type csvDriver struct{}

func (d *csvDriver) Open(config *common.SourceConfig) (sources.Producer, error) {
	return NewCSVProducer(config)
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVProducer reads a delimited text file. The first record is the header
// and is kept out of the rows.
type CSVProducer struct {
	path      string
	delimiter rune
}

// Ensure CSVProducer implements Producer
var _ sources.Producer = (*CSVProducer)(nil)

// NewCSVProducer creates a producer for config.Path. The file is not opened
// until Produce is called.
func NewCSVProducer(config *common.SourceConfig) (*CSVProducer, error) {
	if config == nil || config.Path == "" {
		return nil, fmt.Errorf("csv source requires a path")
	}
	return &CSVProducer{
		path:      config.Path,
		delimiter: config.Delimiter,
	}, nil
}

// Produce implements sources.Producer.
func (c *CSVProducer) Produce(ctx context.Context) (*sources.Batch, error) {
	f, err := os.Open(c.path)
	if err != nil {
		return nil, &sources.SourceReadError{Path: c.path, Err: err}
	}
	defer f.Close()

	batch, err := ReadBatch(ctx, f, c.delimiter)
	if err != nil {
		return nil, &sources.SourceReadError{Path: c.path, Err: err}
	}
	return batch, nil
}

// ReadBatch reads every record from r. A zero delimiter is detected from the
// first line. Empty input yields an empty batch with no header.
func ReadBatch(ctx context.Context, r io.Reader, delimiter rune) (*sources.Batch, error) {
	br := bufio.NewReaderSize(r, 65536)

	if peek, _ := br.Peek(len(utf8BOM)); bytes.Equal(peek, utf8BOM) {
		if _, err := br.Discard(len(utf8BOM)); err != nil {
			return nil, err
		}
	}

	if delimiter == 0 {
		peekBytes, _ := br.Peek(2048)
		sample := peekBytes
		if idx := bytes.IndexAny(sample, "\r\n"); idx != -1 {
			sample = sample[:idx]
		}
		delimiter = common.DetectDelimiter(string(sample))
	}

	reader := csv.NewReader(br)
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1 // Allow variable number of fields

	batch := &sources.Batch{}

	header, err := reader.Read()
	if err == io.EOF {
		return batch, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	batch.Header = header

	for line := 1; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row: %w", err)
		}
		batch.Rows = append(batch.Rows, sources.StringsToRow(record))

		if line%1000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
	}

	return batch, ctx.Err()
}
