package html

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/darianmavgo/tabimport/sources"
	"github.com/darianmavgo/tabimport/sources/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const page = `<html><body>
<table id="movies">
  <tr><th>Rank</th><th>Title</th></tr>
  <tr><td>1</td><td><b>Guardians</b> of the Galaxy</td></tr>
  <tr><td>2</td><td>Prometheus</td></tr>
</table>
<table id="empty"></table>
<table>
  <tr><th>a</th></tr>
  <tr><td>x</td></tr>
</table>
</body></html>`

func writePage(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "page.html")
	require.NoError(t, os.WriteFile(path, []byte(page), 0644))
	return path
}

func TestProduceFirstTable(t *testing.T) {
	p, err := sources.Open("html", &common.SourceConfig{Path: writePage(t)})
	require.NoError(t, err)

	batch, err := p.Produce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Rank", "Title"}, batch.Header)
	assert.Equal(t, [][]any{{"1", "Guardians of the Galaxy"}, {"2", "Prometheus"}}, batch.Rows)
}

func TestProduceTableByIndex(t *testing.T) {
	p, err := NewHTMLProducer(&common.SourceConfig{Path: writePage(t), Sheet: 3})
	require.NoError(t, err)

	batch, err := p.Produce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, batch.Header)
	assert.Equal(t, [][]any{{"x"}}, batch.Rows)
}

func TestProduceEmptyTable(t *testing.T) {
	p, err := NewHTMLProducer(&common.SourceConfig{Path: writePage(t), Sheet: 2})
	require.NoError(t, err)

	batch, err := p.Produce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, batch.Len())
	assert.Nil(t, batch.Header)
}

func TestProduceTableOutOfRange(t *testing.T) {
	p, err := NewHTMLProducer(&common.SourceConfig{Path: writePage(t), Sheet: 9})
	require.NoError(t, err)

	_, err = p.Produce(context.Background())
	var readErr *sources.SourceReadError
	require.True(t, errors.As(err, &readErr))
}

func TestProduceMissingFile(t *testing.T) {
	p, err := NewHTMLProducer(&common.SourceConfig{Path: filepath.Join(t.TempDir(), "nope.html")})
	require.NoError(t, err)

	_, err = p.Produce(context.Background())
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
