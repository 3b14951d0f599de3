package destination

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenCreateTableSQL(t *testing.T) {
	got := GenCreateTableSQL("sample_table", Schema{
		{Name: "fName", Type: "TEXT"},
		{Name: "age", Type: "INT"},
		{Name: "loose"},
	})
	assert.Equal(t, `CREATE TABLE IF NOT EXISTS "sample_table" ("fName" TEXT, "age" INT, "loose")`, got)
}

func TestGenInsertStmt(t *testing.T) {
	got, err := GenInsertStmt("t", []string{"a", "b"}, 1)
	require.NoError(t, err)
	assert.Equal(t, `INSERT INTO "t" ("a", "b") VALUES (?, ?)`, got)

	got, err = GenInsertStmt("t", []string{"a"}, 3)
	require.NoError(t, err)
	assert.Equal(t, `INSERT INTO "t" ("a") VALUES (?), (?), (?)`, got)
}

func TestGenInsertStmtValidation(t *testing.T) {
	_, err := GenInsertStmt("", []string{"a"}, 1)
	assert.Error(t, err)
	_, err = GenInsertStmt("t", nil, 1)
	assert.Error(t, err)
	_, err = GenInsertStmt("t", []string{"a"}, 0)
	assert.Error(t, err)
}

func TestQuoteIdent(t *testing.T) {
	assert.Equal(t, `"order"`, QuoteIdent("order"))
	assert.Equal(t, `"we""ird"`, QuoteIdent(`we"ird`))
}

func TestRowsPerStatement(t *testing.T) {
	assert.Equal(t, 1000, rowsPerStatement(1000, 12))
	assert.Equal(t, 1, rowsPerStatement(0, 12))
	assert.Equal(t, 81, rowsPerStatement(1000, 400))
	assert.Equal(t, 1, rowsPerStatement(10, 40000))
}

func TestFormatLiteral(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"Nil", nil, "NULL"},
		{"String", "it's", "'it''s'"},
		{"Int", 42, "42"},
		{"Int64", int64(-7), "-7"},
		{"Uint8", uint8(3), "3"},
		{"Float", 8.1, "8.1"},
		{"NaN", math.NaN(), "NULL"},
		{"Bool", true, "1"},
		{"Bytes", []byte{0xAB, 0x01}, "X'AB01'"},
		{"Time", time.Date(2016, 1, 2, 3, 4, 5, 0, time.UTC), "'2016-01-02T03:04:05Z'"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatLiteral(tt.in))
		})
	}
}
