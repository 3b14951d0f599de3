package common

import "testing"

func TestDetectDelimiter(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected rune
	}{
		{"Empty", "", ','},
		{"Comma", "a,b,c", ','},
		{"Tab", "a\tb\tc", '\t'},
		{"Semicolon", "a;b;c", ';'},
		{"Pipe", "a|b|c", '|'},
		{"MixedPreferComma", "a,b;c", ','}, // tie goes to the first candidate
		{"MixedPreferTab", "a\tb\tc,d", '\t'},
		{"NoDelimiter", "abc", ','},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectDelimiter(tt.line)
			if got != tt.expected {
				t.Errorf("DetectDelimiter(%q) = %q, want %q", tt.line, got, tt.expected)
			}
		})
	}
}

func TestSheetIndex(t *testing.T) {
	var nilCfg *SourceConfig
	if got := nilCfg.SheetIndex(); got != 1 {
		t.Errorf("nil config: got %d, want 1", got)
	}
	if got := (&SourceConfig{}).SheetIndex(); got != 1 {
		t.Errorf("zero sheet: got %d, want 1", got)
	}
	if got := (&SourceConfig{Sheet: 3}).SheetIndex(); got != 3 {
		t.Errorf("sheet 3: got %d, want 3", got)
	}
}
