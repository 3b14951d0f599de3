package html

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/darianmavgo/tabimport/sources"
	"github.com/darianmavgo/tabimport/sources/common"

	"golang.org/x/net/html"
)

func init() {
	sources.Register("html", &htmlDriver{})
}

type htmlDriver struct{}

func (d *htmlDriver) Open(config *common.SourceConfig) (sources.Producer, error) {
	return NewHTMLProducer(config)
}

// HTMLProducer reads one <table> of an HTML document. The first <tr> is the header.
type HTMLProducer struct {
	path  string
	table int
}

// Ensure HTMLProducer implements Producer
var _ sources.Producer = (*HTMLProducer)(nil)

// NewHTMLProducer creates a producer for the table at the one-based
// config.Sheet index of config.Path.
func NewHTMLProducer(config *common.SourceConfig) (*HTMLProducer, error) {
	if config == nil || config.Path == "" {
		return nil, fmt.Errorf("html source requires a path")
	}
	return &HTMLProducer{path: config.Path, table: config.SheetIndex()}, nil
}

// Produce implements sources.Producer.
func (c *HTMLProducer) Produce(ctx context.Context) (*sources.Batch, error) {
	f, err := os.Open(c.path)
	if err != nil {
		return nil, &sources.SourceReadError{Path: c.path, Err: err}
	}
	defer f.Close()

	tables, err := parseHTML(bufio.NewReaderSize(f, 65536))
	if err != nil {
		return nil, &sources.SourceReadError{Path: c.path, Err: err}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if c.table > len(tables) {
		return nil, &sources.SourceReadError{
			Path: c.path,
			Err:  fmt.Errorf("there is no table with index %d (document has %d)", c.table, len(tables)),
		}
	}

	rows := tables[c.table-1]
	batch := &sources.Batch{}
	if len(rows) == 0 {
		return batch, nil
	}
	batch.Header = rows[0]
	for _, row := range rows[1:] {
		batch.Rows = append(batch.Rows, sources.StringsToRow(row))
	}
	return batch, nil
}

// parseHTML returns the rows of every top level and nested table in document order.
func parseHTML(reader io.Reader) ([][][]string, error) {
	doc, err := html.Parse(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	var tables [][][]string
	var f func(*html.Node)
	f = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "table" {
			tables = append(tables, extractRows(n))
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			f(c)
		}
	}
	f(doc)
	return tables, nil
}

func extractRows(n *html.Node) [][]string {
	var rows [][]string
	var visitRows func(*html.Node)
	visitRows = func(node *html.Node) {
		if node.Type == html.ElementNode && node.Data == "tr" {
			var row []string
			for c := node.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == html.ElementNode && (c.Data == "td" || c.Data == "th") {
					row = append(row, extractText(c))
				}
			}
			rows = append(rows, row)
			return
		}

		for c := node.FirstChild; c != nil; c = c.NextSibling {
			// nested tables are collected separately
			if c.Type == html.ElementNode && c.Data == "table" {
				continue
			}
			visitRows(c)
		}
	}
	visitRows(n)
	return rows
}

func extractText(n *html.Node) string {
	var sb strings.Builder
	extractTextRecursive(n, &sb)
	return strings.TrimSpace(sb.String())
}

func extractTextRecursive(n *html.Node, sb *strings.Builder) {
	if n.Type == html.TextNode {
		sb.WriteString(n.Data)
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		extractTextRecursive(c, sb)
	}
}
