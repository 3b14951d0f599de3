// Package importer runs one tabular import: open the destination, ensure
// the table, read the source, insert the batch, close.
package importer

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/darianmavgo/tabimport/config"
	"github.com/darianmavgo/tabimport/destination"
	"github.com/darianmavgo/tabimport/sources"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// Result summarizes a run.
type Result struct {
	RunID        string
	Table        string
	RowsRead     int
	RowsInserted int
	RowsBefore   int
	RowsAfter    int
	Skipped      bool // nothing to insert
}

// Option customizes an Importer.
type Option func(*Importer)

// WithProducer replaces the configured source with p.
func WithProducer(p sources.Producer) Option {
	return func(im *Importer) {
		im.producer = p
	}
}

// Importer imports one source into one table.
type Importer struct {
	cfg      *config.Config
	producer sources.Producer
	state    State
}

// New validates cfg and opens the configured source driver unless a
// producer is supplied.
func New(cfg *config.Config, opts ...Option) (*Importer, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	im := &Importer{cfg: cfg}
	for _, opt := range opts {
		opt(im)
	}

	if im.producer == nil {
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("invalid config: %w", err)
		}
		p, err := sources.Open(cfg.Source.Kind, cfg.Source.SourceConfig())
		if err != nil {
			return nil, fmt.Errorf("failed to initialize source: %w", err)
		}
		im.producer = p
	} else if err := validateWithoutSource(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return im, nil
}

func validateWithoutSource(cfg *config.Config) error {
	c := *cfg
	if c.Source == nil {
		c.Source = &config.SourceBlock{Kind: "injected"}
	}
	return c.Validate()
}

// State returns where the last or current run is in its lifecycle.
func (im *Importer) State() State {
	return im.state
}

func (im *Importer) advance(to State) error {
	if !im.state.next(to) {
		return fmt.Errorf("invalid state transition %s -> %s", im.state, to)
	}
	im.state = to
	return nil
}

// Run performs the import. The destination is closed on every path. A
// destination that cannot be opened is reported and nothing else is done.
func (im *Importer) Run(ctx context.Context) (*Result, error) {
	cfg := im.cfg
	res := &Result{RunID: uuid.NewString(), Table: cfg.Table}
	logger := log.WithFields(log.Fields{
		"run_id": res.RunID,
		"db":     cfg.Destination,
		"table":  cfg.Table,
	})

	if im.state != Closed {
		return res, fmt.Errorf("import already running (state %s)", im.state)
	}

	dst, err := destination.Open(ctx, cfg.Destination)
	if err != nil {
		logger.Errorf("Connection to database failed: %v", err)
		return res, err
	}
	if err := im.advance(Open); err != nil {
		dst.Close()
		return res, err
	}
	defer func() {
		if err := dst.Close(); err != nil {
			logger.Warnf("failed to close destination: %v", err)
		}
		im.state = Closed
	}()

	schema := cfg.Schema()
	if schema != nil {
		if err := im.ensure(ctx, dst, schema); err != nil {
			return res, err
		}
	}

	batch, err := im.producer.Produce(ctx)
	if err != nil {
		return res, err
	}
	res.RowsRead = batch.Len()
	logger.WithField("rows", res.RowsRead).Debug("read source")

	if schema == nil {
		if batch.Len() == 0 {
			logger.Info("Nothing to insert")
			res.Skipped = true
			return res, nil
		}
		schema = InferSchema(batch)
		if err := im.ensure(ctx, dst, schema); err != nil {
			return res, err
		}
	}

	if res.RowsBefore, err = dst.Count(ctx, cfg.Table); err != nil {
		return res, err
	}
	res.RowsAfter = res.RowsBefore

	if batch.Len() == 0 {
		logger.Info("Nothing to insert")
		res.Skipped = true
		return res, nil
	}

	columns, err := dst.Columns(ctx, cfg.Table)
	if err != nil {
		return res, err
	}

	rows := batch.Rows
	if cfg.MatchHeader && len(batch.Header) > 0 {
		if rows, err = MapByHeader(batch.Header, columns, rows); err != nil {
			return res, im.rejected(logger, err)
		}
	}

	n, err := dst.Insert(ctx, cfg.Table, columns, rows, cfg.BatchSize)
	if err != nil {
		return res, im.rejected(logger, err)
	}
	if err := im.advance(Inserted); err != nil {
		return res, err
	}
	res.RowsInserted = n

	if res.RowsAfter, err = dst.Count(ctx, cfg.Table); err != nil {
		return res, err
	}

	logger.WithFields(log.Fields{
		"rows":  n,
		"total": res.RowsAfter,
	}).Info("SQL insert process finished")
	return res, nil
}

// rejected logs a batch that was refused because of a ragged row.
func (im *Importer) rejected(logger *log.Entry, err error) error {
	var mismatch *destination.SchemaMismatchError
	if errors.As(err, &mismatch) {
		if mismatch.Table == "" {
			mismatch.Table = im.cfg.Table
		}
		logger.WithField("row", mismatch.Row).Error("row does not match table columns, nothing inserted")
	}
	return err
}

func (im *Importer) ensure(ctx context.Context, dst *destination.Destination, schema destination.Schema) error {
	if err := dst.EnsureTable(ctx, im.cfg.Table, schema); err != nil {
		return err
	}
	return im.advance(SchemaEnsured)
}

// WriteSQL reads the source and writes the SQL script an import would run,
// without touching the destination.
func (im *Importer) WriteSQL(ctx context.Context, w io.Writer) error {
	batch, err := im.producer.Produce(ctx)
	if err != nil {
		return err
	}

	schema := im.cfg.Schema()
	if schema == nil {
		schema = InferSchema(batch)
	}
	if schema == nil {
		return fmt.Errorf("cannot derive columns for %s from an empty source", im.cfg.Table)
	}
	columns := schema.Names()

	rows := batch.Rows
	if im.cfg.MatchHeader && len(batch.Header) > 0 && batch.Len() > 0 {
		if rows, err = MapByHeader(batch.Header, columns, rows); err != nil {
			return err
		}
	}

	return destination.WriteSQL(w, im.cfg.Table, schema, columns, rows)
}
