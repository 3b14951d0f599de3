package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenTablesNames(t *testing.T) {
	rawnames := []string{"Organized", "Timeline", "Raw Content", ""}
	expected := []string{"organized", "timeline", "raw_content", "tb3"}
	assert.Equal(t, expected, GenTableNames(rawnames))
}

func TestGenCompliantNamesDigits(t *testing.T) {
	// "4658.25" -> "465825" -> starts with digit -> "cl0465825"
	rawnames := []string{"4658.25", "123", "abc"}
	expected := []string{"cl0465825", "cl1123", "abc"}
	assert.Equal(t, expected, GenCompliantNames(rawnames, "cl"))
}

func TestGenCompliantNamesKeywords(t *testing.T) {
	rawnames := []string{"group", "order", "select", "table", "where"}
	expected := []string{"group_", "order_", "select_", "table_", "where_"}
	assert.Equal(t, expected, GenCompliantNames(rawnames, "cl"))
}

func TestGenCompliantNamesDuplicates(t *testing.T) {
	rawnames := []string{"Year", "year", " YEAR "}
	expected := []string{"year", "year2", "year3"}
	assert.Equal(t, expected, GenColumnNames(rawnames))

	// A suffixed name must not collide with a later raw name.
	assert.Equal(t, []string{"a", "a2", "a22"}, GenColumnNames([]string{"a", "a", "a2"}))
	assert.Equal(t, []string{"a2", "a", "a3", "a22"}, GenColumnNames([]string{"a2", "a", "a", "a2"}))
}

func TestGenColumnNamesIMDBHeader(t *testing.T) {
	rawnames := []string{"Rank", "Title", "Runtime (Minutes)", "Revenue (Millions)", "Metascore"}
	expected := []string{"rank", "title", "runtime_minutes", "revenue_millions", "metascore"}
	assert.Equal(t, expected, GenColumnNames(rawnames))
}

func TestPositionalNames(t *testing.T) {
	assert.Equal(t, []string{"cl0", "cl1", "cl2"}, PositionalNames(3))
	assert.Empty(t, PositionalNames(0))
}
