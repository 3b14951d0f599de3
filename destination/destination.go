// Package destination owns the local sqlite file an import writes to.
package destination

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	_ "modernc.org/sqlite"
)

// DriverName is the database/sql driver used for destination files.
const DriverName = "sqlite"

// Column is one column of a table schema.
type Column struct {
	Name string
	Type string
}

// Schema is an ordered list of columns.
type Schema []Column

// NewSchema zips names and types. Missing types are left empty.
func NewSchema(names, types []string) Schema {
	schema := make(Schema, len(names))
	for i, name := range names {
		schema[i].Name = name
		if i < len(types) {
			schema[i].Type = types[i]
		}
	}
	return schema
}

// Names returns the column names in order.
func (s Schema) Names() []string {
	names := make([]string, len(s))
	for i, col := range s {
		names[i] = col.Name
	}
	return names
}

// Destination is an open handle to a sqlite data file.
type Destination struct {
	db   *sql.DB
	path string
}

// Open opens the sqlite file at path, creating it when missing. On failure
// it returns a nil handle and a *ConnectionError.
func Open(ctx context.Context, path string) (*Destination, error) {
	if path == "" {
		return nil, &ConnectionError{Path: path, Err: errors.New("empty database path")}
	}

	db, err := sql.Open(DriverName, path)
	if err != nil {
		return nil, &ConnectionError{Path: path, Err: err}
	}

	// Limit to 1 connection to avoid locking issues and improve tx.Stmt performance
	db.SetMaxOpenConns(1)

	// sql.Open is lazy; reading the header forces the file open and rejects non-databases.
	var version int
	if err := db.QueryRowContext(ctx, "PRAGMA schema_version").Scan(&version); err != nil {
		db.Close()
		return nil, &ConnectionError{Path: path, Err: err}
	}

	if _, err := db.ExecContext(ctx, "PRAGMA page_size = 65536; PRAGMA cache_size = -2000;"); err != nil {
		db.Close()
		return nil, &ConnectionError{Path: path, Err: fmt.Errorf("failed to set PRAGMAs: %w", err)}
	}

	log.WithField("db", path).Debug("opened destination")
	return &Destination{db: db, path: path}, nil
}

// Path returns the file the destination was opened on.
func (d *Destination) Path() string {
	return d.path
}

// Close releases the handle. It is safe to call more than once.
func (d *Destination) Close() error {
	if d == nil || d.db == nil {
		return nil
	}
	err := d.db.Close()
	d.db = nil
	log.WithField("db", d.path).Debug("closed destination")
	return err
}

// EnsureTable creates table with schema unless a table of that name already
// exists. An existing table is left untouched whatever its columns are.
func (d *Destination) EnsureTable(ctx context.Context, table string, schema Schema) error {
	if table == "" {
		return fmt.Errorf("table name is required")
	}
	if len(schema) == 0 {
		return fmt.Errorf("schema for table %s has no columns", table)
	}

	createTableSQL := GenCreateTableSQL(table, schema)
	if _, err := d.db.ExecContext(ctx, createTableSQL); err != nil {
		return fmt.Errorf("failed to create table %s: %w", table, err)
	}
	log.WithFields(log.Fields{"db": d.path, "table": table}).Debugf("ensured table: %s", createTableSQL)
	return nil
}

// Columns returns the column names of table in declared order.
func (d *Destination) Columns(ctx context.Context, table string) ([]string, error) {
	rows, err := d.db.QueryContext(ctx, "SELECT name FROM pragma_table_info(?) ORDER BY cid", table)
	if err != nil {
		return nil, fmt.Errorf("failed to read columns of %s: %w", table, err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan column of %s: %w", table, err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read columns of %s: %w", table, err)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("%s: %w", table, ErrTableNotFound)
	}
	return names, nil
}

// Count returns the number of rows in table.
func (d *Destination) Count(ctx context.Context, table string) (int, error) {
	var n int
	if err := d.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+QuoteIdent(table)).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count rows of %s: %w", table, err)
	}
	return n, nil
}

// Insert appends rows to table in source order inside a single transaction.
// Each row must hold exactly one value per column. Up to batchSize rows are
// bound per statement. Any failure rolls the whole batch back.
func (d *Destination) Insert(ctx context.Context, table string, columns []string, rows [][]any, batchSize int) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	if len(columns) == 0 {
		return 0, fmt.Errorf("no columns to insert into %s", table)
	}

	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := insertRows(ctx, tx, table, columns, rows, batchSize); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			log.WithField("table", table).Errorf("failed to roll back: %v", rbErr)
		}
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction for table %s: %w", table, err)
	}
	log.WithFields(log.Fields{"db": d.path, "table": table, "rows": len(rows)}).Debug("committed batch")
	return len(rows), nil
}

func insertRows(ctx context.Context, tx *sql.Tx, table string, columns []string, rows [][]any, batchSize int) error {
	perStmt := rowsPerStatement(batchSize, len(columns))

	var stmt *sql.Stmt
	stmtRows := 0
	defer func() {
		if stmt != nil {
			stmt.Close()
		}
	}()

	args := make([]any, 0, min(perStmt, len(rows))*len(columns))
	for start := 0; start < len(rows); start += perStmt {
		chunk := rows[start:min(start+perStmt, len(rows))]

		if len(chunk) != stmtRows {
			if stmt != nil {
				stmt.Close()
			}
			insertSQL, err := GenInsertStmt(table, columns, len(chunk))
			if err != nil {
				return err
			}
			stmt, err = tx.PrepareContext(ctx, insertSQL)
			if err != nil {
				return fmt.Errorf("failed to prepare insert statement for table %s: %w", table, err)
			}
			stmtRows = len(chunk)
		}

		args = args[:0]
		for i, row := range chunk {
			if len(row) != len(columns) {
				return &SchemaMismatchError{Table: table, Row: start + i, Got: len(row), Want: len(columns)}
			}
			args = append(args, row...)
		}

		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("failed to insert rows %d-%d in table %s: %w", start, start+len(chunk)-1, table, err)
		}
	}
	return nil
}
