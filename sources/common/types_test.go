package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInferColumnTypes(t *testing.T) {
	rows := [][]any{
		{"1", "Guardians of the Galaxy", "8.1", "", int64(757074)},
		{"2", "Prometheus", "7", "", int64(485820)},
		{"3", "Split", "7.3", "", 3.5},
	}
	got := InferColumnTypes(rows, 5)
	assert.Equal(t, []string{"INTEGER", "TEXT", "REAL", "TEXT", "REAL"}, got)
}

func TestInferColumnTypesShortRows(t *testing.T) {
	rows := [][]any{
		{"1"},
		{"2", "x"},
	}
	assert.Equal(t, []string{"INTEGER", "TEXT", "TEXT"}, InferColumnTypes(rows, 3))
}

func TestInferColumnTypesNoRows(t *testing.T) {
	assert.Equal(t, []string{"TEXT", "TEXT"}, InferColumnTypes(nil, 2))
}
