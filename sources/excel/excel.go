package excel

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/darianmavgo/tabimport/sources"
	"github.com/darianmavgo/tabimport/sources/common"
	csvsource "github.com/darianmavgo/tabimport/sources/csv"

	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

func init() {
	sources.Register("excel", &excelDriver{})
}

type excelDriver struct{}

func (d *excelDriver) Open(config *common.SourceConfig) (sources.Producer, error) {
	return NewExcelProducer(config)
}

// Workbook is the part of a spreadsheet session the producer uses.
// *excelize.File satisfies it.
type Workbook interface {
	GetSheetList() []string
	GetRows(sheet string, opts ...excelize.Options) ([][]string, error)
	Close() error
}

// Opener starts a spreadsheet session for path.
type Opener func(path string) (Workbook, error)

// OpenFile opens path with excelize.
func OpenFile(path string) (Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// Option customizes an ExcelProducer.
type Option func(*ExcelProducer)

// WithOpener replaces the function used to open the workbook.
func WithOpener(open Opener) Option {
	return func(e *ExcelProducer) {
		e.open = open
	}
}

// ExcelProducer reads one worksheet of a workbook.
type ExcelProducer struct {
	open       Opener
	path       string
	sheet      int
	mode       string
	exportPath string
}

// Ensure ExcelProducer implements Producer
var _ sources.Producer = (*ExcelProducer)(nil)

// NewExcelProducer creates a producer for config.Path. The workbook is not
// opened until Produce is called.
func NewExcelProducer(config *common.SourceConfig, opts ...Option) (*ExcelProducer, error) {
	if config == nil || config.Path == "" {
		return nil, fmt.Errorf("excel source requires a path")
	}

	mode := config.Mode
	if mode == "" {
		mode = common.ModeRange
	}
	if mode != common.ModeRange && mode != common.ModeExport {
		return nil, fmt.Errorf("unsupported excel mode %q", mode)
	}

	exportPath := config.ExportPath
	if exportPath == "" {
		exportPath = config.Path + ".csv"
	}

	e := &ExcelProducer{
		open:       OpenFile,
		path:       config.Path,
		sheet:      config.SheetIndex(),
		mode:       mode,
		exportPath: exportPath,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Produce implements sources.Producer. The workbook is closed before it returns.
func (e *ExcelProducer) Produce(ctx context.Context) (*sources.Batch, error) {
	wb, err := e.open(e.path)
	if err != nil {
		return nil, &sources.SourceReadError{Path: e.path, Err: err}
	}
	defer func() {
		if err := wb.Close(); err != nil {
			log.WithField("source", e.path).Warnf("failed to close workbook: %v", err)
		}
	}()

	sheets := wb.GetSheetList()
	if e.sheet > len(sheets) {
		return nil, &sources.SourceReadError{
			Path: e.path,
			Err:  fmt.Errorf("there is no worksheet with index %d (workbook has %d)", e.sheet, len(sheets)),
		}
	}
	sheetName := sheets[e.sheet-1]

	if e.mode == common.ModeExport {
		return e.produceExport(ctx, wb, sheetName)
	}
	return e.produceRange(ctx, wb, sheetName)
}

// produceRange reads the block below the header row: header width wide,
// ending at the first fully empty row.
func (e *ExcelProducer) produceRange(ctx context.Context, wb Workbook, sheetName string) (*sources.Batch, error) {
	rows, err := wb.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, &sources.SourceReadError{Path: e.path, Err: fmt.Errorf("failed to read sheet %s: %w", sheetName, err)}
	}

	batch := &sources.Batch{}
	if len(rows) == 0 {
		return batch, nil
	}

	width := 0
	for width < len(rows[0]) && strings.TrimSpace(rows[0][width]) != "" {
		width++
	}
	if width == 0 {
		return batch, nil
	}
	batch.Header = append([]string(nil), rows[0][:width]...)

	for _, raw := range rows[1:] {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row, empty := rangeRow(raw, width)
		if empty {
			break
		}
		batch.Rows = append(batch.Rows, row)
	}

	log.WithFields(log.Fields{
		"source": e.path,
		"sheet":  sheetName,
		"rows":   batch.Len(),
	}).Debug("read worksheet range")
	return batch, nil
}

// rangeRow pads or truncates raw to width. Empty cells become nil.
func rangeRow(raw []string, width int) ([]any, bool) {
	row := make([]any, width)
	empty := true
	for i := 0; i < width && i < len(raw); i++ {
		if raw[i] == "" {
			continue
		}
		row[i] = raw[i]
		empty = false
	}
	return row, empty
}

// produceExport saves the sheet as comma separated text and reads it back.
func (e *ExcelProducer) produceExport(ctx context.Context, wb Workbook, sheetName string) (*sources.Batch, error) {
	rows, err := wb.GetRows(sheetName)
	if err != nil {
		return nil, &sources.SourceReadError{Path: e.path, Err: fmt.Errorf("failed to read sheet %s: %w", sheetName, err)}
	}

	if err := writeCSV(e.exportPath, rows); err != nil {
		return nil, &sources.SourceReadError{Path: e.exportPath, Err: err}
	}
	log.WithFields(log.Fields{
		"source": e.path,
		"sheet":  sheetName,
		"export": e.exportPath,
	}).Debug("exported worksheet")

	p, err := csvsource.NewCSVProducer(&common.SourceConfig{Path: e.exportPath, Delimiter: ','})
	if err != nil {
		return nil, err
	}
	return p.Produce(ctx)
}

func writeCSV(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}
	return f.Close()
}
