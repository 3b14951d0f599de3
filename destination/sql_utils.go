package destination

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// maxVariables is sqlite's default SQLITE_MAX_VARIABLE_NUMBER.
const maxVariables = 32766

// QuoteIdent quotes a table or column name for sqlite.
func QuoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// GenCreateTableSQL generates an idempotent CREATE TABLE statement.
func GenCreateTableSQL(tableName string, schema Schema) string {
	var builder strings.Builder
	builder.Grow(len(tableName) + len(schema)*24)

	builder.WriteString("CREATE TABLE IF NOT EXISTS ")
	builder.WriteString(QuoteIdent(tableName))
	builder.WriteString(" (")
	for i, col := range schema {
		if i > 0 {
			builder.WriteString(", ")
		}
		builder.WriteString(QuoteIdent(col.Name))
		if col.Type != "" {
			builder.WriteByte(' ')
			builder.WriteString(col.Type)
		}
	}
	builder.WriteByte(')')
	return builder.String()
}

// GenInsertStmt generates a parameterized INSERT with one placeholder per
// field for each of rowCount rows.
func GenInsertStmt(table string, fields []string, rowCount int) (string, error) {
	if table == "" || len(fields) == 0 {
		return "", fmt.Errorf("table name and fields are required")
	}
	if rowCount < 1 {
		return "", fmt.Errorf("row count must be positive, got %d", rowCount)
	}

	quoted := make([]string, len(fields))
	for i, field := range fields {
		quoted[i] = QuoteIdent(field)
	}
	tuple := "(" + strings.Repeat("?, ", len(fields)-1) + "?)"

	var builder strings.Builder
	builder.WriteString("INSERT INTO ")
	builder.WriteString(QuoteIdent(table))
	builder.WriteString(" (")
	builder.WriteString(strings.Join(quoted, ", "))
	builder.WriteString(") VALUES ")
	for i := 0; i < rowCount; i++ {
		if i > 0 {
			builder.WriteString(", ")
		}
		builder.WriteString(tuple)
	}
	return builder.String(), nil
}

// rowsPerStatement caps batchSize so one statement binds at most maxVariables values.
func rowsPerStatement(batchSize, numCols int) int {
	if batchSize < 1 {
		batchSize = 1
	}
	if numCols > 0 && batchSize*numCols > maxVariables {
		batchSize = max(maxVariables/numCols, 1)
	}
	return batchSize
}

// FormatLiteral renders a value as a sqlite literal.
func FormatLiteral(v any) string {
	switch val := v.(type) {
	case nil:
		return "NULL"
	case string:
		return "'" + strings.ReplaceAll(val, "'", "''") + "'"
	case []byte:
		return fmt.Sprintf("X'%X'", val)
	case bool:
		if val {
			return "1"
		}
		return "0"
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case int32, int16, int8, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprint(val)
	case float64:
		return formatFloat(val)
	case float32:
		return formatFloat(float64(val))
	case time.Time:
		return "'" + val.Format(time.RFC3339Nano) + "'"
	default:
		return "'" + strings.ReplaceAll(fmt.Sprint(val), "'", "''") + "'"
	}
}

func formatFloat(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "NULL"
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
