package common

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	TypeInteger = "INTEGER"
	TypeReal    = "REAL"
	TypeText    = "TEXT"
)

// InferSampleSize is the number of rows InferColumnTypes looks at.
var InferSampleSize = 100

// InferColumnTypes picks a sqlite type per column from the first
// InferSampleSize rows. A column is INTEGER when every non-empty value parses
// as an integer, REAL when every non-empty value parses as a number, TEXT
// otherwise. Columns with no values at all are TEXT.
func InferColumnTypes(rows [][]any, numCols int) []string {
	types := make([]string, numCols)
	limit := min(len(rows), InferSampleSize)

	for col := 0; col < numCols; col++ {
		seen := false
		isInt, isReal := true, true
		for _, row := range rows[:limit] {
			if col >= len(row) {
				continue
			}
			kind := valueKind(row[col])
			switch kind {
			case "":
				continue
			case TypeInteger:
			case TypeReal:
				isInt = false
			default:
				isInt, isReal = false, false
			}
			seen = true
			if !isReal {
				break
			}
		}

		switch {
		case !seen:
			types[col] = TypeText
		case isInt:
			types[col] = TypeInteger
		case isReal:
			types[col] = TypeReal
		default:
			types[col] = TypeText
		}
	}
	return types
}

// valueKind classifies a single value; "" means empty.
func valueKind(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return TypeInteger
	case float32, float64:
		return TypeReal
	case bool:
		return TypeInteger
	case string:
		return stringKind(val)
	case []byte:
		return stringKind(string(val))
	default:
		return stringKind(fmt.Sprint(val))
	}
}

func stringKind(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if _, err := strconv.ParseInt(s, 10, 64); err == nil {
		return TypeInteger
	}
	if _, err := strconv.ParseFloat(s, 64); err == nil {
		return TypeReal
	}
	return TypeText
}
