package sources

import (
	"context"
	"testing"

	"github.com/darianmavgo/tabimport/sources/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProducer struct {
	path string
}

func (p *stubProducer) Produce(ctx context.Context) (*Batch, error) {
	return &Batch{Header: []string{"path"}, Rows: [][]any{{p.path}}}, nil
}

type stubDriver struct{}

func (d *stubDriver) Open(config *common.SourceConfig) (Producer, error) {
	return &stubProducer{path: config.Path}, nil
}

func TestRegisterAndOpen(t *testing.T) {
	Register("stub-open", &stubDriver{})

	p, err := Open("stub-open", &common.SourceConfig{Path: "in.csv"})
	require.NoError(t, err)

	batch, err := p.Produce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, batch.Len())
	assert.Equal(t, "in.csv", batch.Rows[0][0])
	assert.Contains(t, Drivers(), "stub-open")
}

func TestOpenNilConfig(t *testing.T) {
	Register("stub-nil", &stubDriver{})

	p, err := Open("stub-nil", nil)
	require.NoError(t, err)
	assert.NotNil(t, p)
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := Open("nope", nil)
	assert.ErrorContains(t, err, `unknown driver "nope"`)
}

func TestRegisterTwicePanics(t *testing.T) {
	Register("stub-dup", &stubDriver{})
	assert.Panics(t, func() { Register("stub-dup", &stubDriver{}) })
	assert.Panics(t, func() { Register("stub-nil-driver", nil) })
}

func TestBatchLen(t *testing.T) {
	var b *Batch
	assert.Equal(t, 0, b.Len())
	assert.Equal(t, 2, (&Batch{Rows: [][]any{{1}, {2}}}).Len())
}

func TestStringsToRow(t *testing.T) {
	assert.Equal(t, []any{"a", "b"}, StringsToRow([]string{"a", "b"}))
}
