package common

import (
	"strings"
)

// SourceConfig stores the options a driver needs to open a source.
type SourceConfig struct {
	Path       string     // Path to the input file
	Delimiter  rune       // Delimiter used for CSV parsing, 0 means detect
	Sheet      int        // One-based worksheet (or HTML table) index
	Mode       string     // Spreadsheet read mode: "range" or "export"
	ExportPath string     // Target of the exported sheet in export mode
	Header     []string   // Header of a literal source
	Rows       [][]string // Rows of a literal source
}

const (
	ModeRange  = "range"
	ModeExport = "export"
)

// SheetIndex returns the configured one-based sheet index, defaulting to 1.
func (c *SourceConfig) SheetIndex() int {
	if c == nil || c.Sheet < 1 {
		return 1
	}
	return c.Sheet
}

// DetectDelimiter attempts to detect the delimiter from a raw line of text.
// It checks common delimiters and returns the one that produces the most fields.
// Defaults to comma if line is empty or no clear winner.
func DetectDelimiter(line string) rune {
	if line == "" {
		return ','
	}

	delimiters := []rune{',', '\t', ';', '|'}
	maxCount := 0
	winner := ','

	for _, delim := range delimiters {
		count := strings.Count(line, string(delim))
		if count > maxCount {
			maxCount = count
			winner = delim
		}
	}

	return winner
}
