package literal

import (
	"context"
	"testing"

	"github.com/darianmavgo/tabimport/sources"
	"github.com/darianmavgo/tabimport/sources/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRecord(t *testing.T) {
	batch, err := Default().Produce(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"fName", "lName", "title", "age"}, batch.Header)
	require.Equal(t, 1, batch.Len())
	assert.Equal(t, []any{"Some First Name", "Some Last Name", "Very good Title", int64(42)}, batch.Rows[0])
}

func TestProduceCopiesRows(t *testing.T) {
	p := New(nil, []any{"a", int64(1)})

	first, err := p.Produce(context.Background())
	require.NoError(t, err)
	first.Rows[0][0] = "mutated"

	second, err := p.Produce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "a", second.Rows[0][0])
	assert.Nil(t, second.Header)
}

func TestProduceCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Default().Produce(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDriverFromConfig(t *testing.T) {
	p, err := sources.Open("literal", &common.SourceConfig{
		Header: []string{"a", "b"},
		Rows:   [][]string{{"1", "x"}, {"2", "y"}},
	})
	require.NoError(t, err)

	batch, err := p.Produce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, batch.Header)
	assert.Equal(t, [][]any{{"1", "x"}, {"2", "y"}}, batch.Rows)
}

func TestDriverEmptyConfigUsesDefault(t *testing.T) {
	p, err := sources.Open("literal", &common.SourceConfig{})
	require.NoError(t, err)

	batch, err := p.Produce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, batch.Len())
	assert.Equal(t, "Some First Name", batch.Rows[0][0])
}
