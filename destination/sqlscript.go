package destination

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// WriteSQL writes a script that reproduces an import: the CREATE TABLE
// statement when schema is non-empty, then one INSERT per row inside a
// transaction.
func WriteSQL(w io.Writer, table string, schema Schema, columns []string, rows [][]any) error {
	bw := bufio.NewWriter(w)

	if len(schema) > 0 {
		if _, err := fmt.Fprintf(bw, "%s;\n\n", GenCreateTableSQL(table, schema)); err != nil {
			return fmt.Errorf("failed to write CREATE TABLE: %w", err)
		}
	}
	if len(columns) == 0 {
		columns = schema.Names()
	}
	if len(rows) > 0 && len(columns) == 0 {
		return fmt.Errorf("no columns to insert into %s", table)
	}

	quoted := make([]string, len(columns))
	for i, col := range columns {
		quoted[i] = QuoteIdent(col)
	}
	prefix := fmt.Sprintf("INSERT INTO %s (%s) VALUES (", QuoteIdent(table), strings.Join(quoted, ", "))

	if _, err := bw.WriteString("BEGIN;\n"); err != nil {
		return fmt.Errorf("failed to write BEGIN: %w", err)
	}
	for i, row := range rows {
		if len(row) != len(columns) {
			return &SchemaMismatchError{Table: table, Row: i, Got: len(row), Want: len(columns)}
		}
		if _, err := bw.WriteString(prefix); err != nil {
			return fmt.Errorf("failed to write INSERT start: %w", err)
		}
		for j, val := range row {
			if j > 0 {
				if _, err := bw.WriteString(", "); err != nil {
					return fmt.Errorf("failed to write value separator: %w", err)
				}
			}
			if _, err := bw.WriteString(FormatLiteral(val)); err != nil {
				return fmt.Errorf("failed to write value: %w", err)
			}
		}
		if _, err := bw.WriteString(");\n"); err != nil {
			return fmt.Errorf("failed to write statement end: %w", err)
		}
	}
	if _, err := bw.WriteString("COMMIT;\n"); err != nil {
		return fmt.Errorf("failed to write COMMIT: %w", err)
	}

	return bw.Flush()
}
