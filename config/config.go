package config

import (
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/darianmavgo/tabimport/destination"
	"github.com/darianmavgo/tabimport/sources/common"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"
)

// Config represents the application configuration.
type Config struct {
	Destination string        `hcl:"destination,optional"`
	Table       string        `hcl:"table,optional"`
	BatchSize   int           `hcl:"batch_size,optional"`
	MatchHeader bool          `hcl:"match_header,optional"`
	Source      *SourceBlock  `hcl:"source,block"`
	Columns     []ColumnBlock `hcl:"column,block"`
}

// SourceBlock selects and configures the source driver.
type SourceBlock struct {
	Kind       string     `hcl:"kind"`
	Path       string     `hcl:"path,optional"`
	Sheet      int        `hcl:"sheet,optional"`
	Mode       string     `hcl:"mode,optional"`
	ExportPath string     `hcl:"export_path,optional"`
	Delimiter  string     `hcl:"delimiter,optional"`
	Header     []string   `hcl:"header,optional"`
	Rows       [][]string `hcl:"rows,optional"`
}

// ColumnBlock declares one column of a fixed schema.
type ColumnBlock struct {
	Name string `hcl:"name,label"`
	Type string `hcl:"type,optional"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Destination: "sampleSQLite.db",
		BatchSize:   1000,
	}
}

// Builtin returns the configuration used when no file is given: the IMDB
// movie CSV loaded into imdb_temp with a fixed schema.
func Builtin() *Config {
	cfg := DefaultConfig()
	cfg.Table = "imdb_temp"
	cfg.Source = &SourceBlock{
		Kind: "csv",
		Path: "IMDB-Movie-Data.csv",
	}
	cfg.Columns = []ColumnBlock{
		{Name: "rank", Type: "INTEGER"},
		{Name: "title", Type: "TEXT"},
		{Name: "genre", Type: "TEXT"},
		{Name: "description", Type: "TEXT"},
		{Name: "director", Type: "TEXT"},
		{Name: "actors", Type: "TEXT"},
		{Name: "year_release", Type: "INTEGER"},
		{Name: "runTime", Type: "INTEGER"},
		{Name: "rating", Type: "DECIMAL"},
		{Name: "votes", Type: "INTEGER"},
		{Name: "revenue", Type: "DECIMAL"},
		{Name: "metascore", Type: "INTEGER"},
	}
	return cfg
}

// BuiltinLiteral returns the configuration for the sample person record:
// one row into sample_table(fName, lName, title, age).
func BuiltinLiteral() *Config {
	cfg := DefaultConfig()
	cfg.Table = "sample_table"
	cfg.Source = &SourceBlock{Kind: "literal"}
	cfg.Columns = []ColumnBlock{
		{Name: "fName", Type: "TEXT"},
		{Name: "lName", Type: "TEXT"},
		{Name: "title", Type: "TEXT"},
		{Name: "age", Type: "INT"},
	}
	return cfg
}

// Load reads the configuration from the given HCL file.
func Load(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(content, path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse config file: %s", diags.Error())
	}

	cfg := DefaultConfig()
	diags = gohcl.DecodeBody(file.Body, nil, cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode config: %s", diags.Error())
	}

	return cfg, nil
}

// Validate reports the first problem that would stop an import.
func (c *Config) Validate() error {
	switch {
	case c.Destination == "":
		return fmt.Errorf("destination is required")
	case c.Table == "":
		return fmt.Errorf("table is required")
	case c.BatchSize < 1:
		return fmt.Errorf("batch_size must be positive, got %d", c.BatchSize)
	case c.Source == nil:
		return fmt.Errorf("a source block is required")
	case c.Source.Kind == "":
		return fmt.Errorf("source kind is required")
	}

	if n := utf8.RuneCountInString(c.Source.Delimiter); n > 1 {
		return fmt.Errorf("delimiter must be a single character, got %q", c.Source.Delimiter)
	}

	seen := make(map[string]bool, len(c.Columns))
	for _, col := range c.Columns {
		if col.Name == "" {
			return fmt.Errorf("column name is required")
		}
		if seen[col.Name] {
			return fmt.Errorf("duplicate column %q", col.Name)
		}
		seen[col.Name] = true
	}
	return nil
}

// Schema returns the fixed schema, or nil when the schema is to be inferred.
func (c *Config) Schema() destination.Schema {
	if len(c.Columns) == 0 {
		return nil
	}
	schema := make(destination.Schema, len(c.Columns))
	for i, col := range c.Columns {
		schema[i] = destination.Column{Name: col.Name, Type: col.Type}
	}
	return schema
}

// SourceConfig translates the block into driver options.
func (s *SourceBlock) SourceConfig() *common.SourceConfig {
	cfg := &common.SourceConfig{
		Path:       s.Path,
		Sheet:      s.Sheet,
		Mode:       s.Mode,
		ExportPath: s.ExportPath,
		Header:     s.Header,
		Rows:       s.Rows,
	}
	if s.Delimiter != "" {
		cfg.Delimiter, _ = utf8.DecodeRuneInString(s.Delimiter)
	}
	return cfg
}

// Export writes the configuration to the specified file in HCL format.
func Export(path string, cfg *Config) error {
	f := hclwrite.NewEmptyFile()
	root := f.Body()

	root.SetAttributeValue("destination", cty.StringVal(cfg.Destination))
	root.SetAttributeValue("table", cty.StringVal(cfg.Table))
	root.SetAttributeValue("batch_size", cty.NumberIntVal(int64(cfg.BatchSize)))
	root.SetAttributeValue("match_header", cty.BoolVal(cfg.MatchHeader))

	if src := cfg.Source; src != nil {
		root.AppendNewline()
		body := root.AppendNewBlock("source", nil).Body()
		body.SetAttributeValue("kind", cty.StringVal(src.Kind))
		setOptionalString(body, "path", src.Path)
		if src.Sheet > 0 {
			body.SetAttributeValue("sheet", cty.NumberIntVal(int64(src.Sheet)))
		}
		setOptionalString(body, "mode", src.Mode)
		setOptionalString(body, "export_path", src.ExportPath)
		setOptionalString(body, "delimiter", src.Delimiter)
		if len(src.Header) > 0 {
			body.SetAttributeValue("header", stringList(src.Header))
		}
		if len(src.Rows) > 0 {
			rows := make([]cty.Value, len(src.Rows))
			for i, row := range src.Rows {
				rows[i] = stringList(row)
			}
			body.SetAttributeValue("rows", cty.ListVal(rows))
		}
	}

	for _, col := range cfg.Columns {
		root.AppendNewline()
		body := root.AppendNewBlock("column", []string{col.Name}).Body()
		setOptionalString(body, "type", col.Type)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()

	_, err = file.Write(f.Bytes())
	if err != nil {
		return fmt.Errorf("failed to write config to file: %w", err)
	}

	return nil
}

func setOptionalString(body *hclwrite.Body, name, value string) {
	if value != "" {
		body.SetAttributeValue(name, cty.StringVal(value))
	}
}

func stringList(values []string) cty.Value {
	if len(values) == 0 {
		return cty.ListValEmpty(cty.String)
	}
	vals := make([]cty.Value, len(values))
	for i, v := range values {
		vals[i] = cty.StringVal(v)
	}
	return cty.ListVal(vals)
}
