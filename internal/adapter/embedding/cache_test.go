package embedding_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/ats-resume-scorer/internal/adapter/embedding"
	"github.com/fairyhunter13/ats-resume-scorer/internal/domain"
)

// countingClient returns a constant vector per text and counts Embed calls.
type countingClient struct {
	calls atomic.Int64
	err   error
}

func (c *countingClient) Embed(_ context.Context, texts []string) ([][]float32, error) {
	c.calls.Add(1)
	if c.err != nil {
		return nil, c.err
	}
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i] = []float32{float32(len(t)), 1}
	}
	return out, nil
}

func TestMemCache_HitAvoidsProviderCall(t *testing.T) {
	t.Parallel()
	base := &countingClient{}
	cached := embedding.NewMemCache(base, 16)

	v1, err := cached.Embed(context.Background(), []string{"golang resume"})
	require.NoError(t, err)
	v2, err := cached.Embed(context.Background(), []string{"golang resume"})
	require.NoError(t, err)

	assert.Equal(t, v1, v2)
	assert.EqualValues(t, 1, base.calls.Load())
}

func TestMemCache_PartialMiss(t *testing.T) {
	t.Parallel()
	base := &countingClient{}
	cached := embedding.NewMemCache(base, 16)

	_, err := cached.Embed(context.Background(), []string{"a"})
	require.NoError(t, err)

	vecs, err := cached.Embed(context.Background(), []string{"a", "bb"})
	require.NoError(t, err)
	require.Len(t, vecs, 2)
	assert.Equal(t, []float32{1, 1}, vecs[0])
	assert.Equal(t, []float32{2, 1}, vecs[1])
	assert.EqualValues(t, 2, base.calls.Load())
}

func TestMemCache_FIFOEviction(t *testing.T) {
	t.Parallel()
	base := &countingClient{}
	cached := embedding.NewMemCache(base, 2)

	for _, text := range []string{"one", "two", "three"} {
		_, err := cached.Embed(context.Background(), []string{text})
		require.NoError(t, err)
	}
	// "one" was evicted, so this is a provider call again.
	_, err := cached.Embed(context.Background(), []string{"one"})
	require.NoError(t, err)
	assert.EqualValues(t, 4, base.calls.Load())
}

func TestMemCache_ErrorPassthrough(t *testing.T) {
	t.Parallel()
	base := &countingClient{err: errors.New("provider down")}
	cached := embedding.NewMemCache(base, 16)

	_, err := cached.Embed(context.Background(), []string{"x"})
	assert.ErrorContains(t, err, "provider down")
}

func TestNewMemCache_ZeroCapacityReturnsBase(t *testing.T) {
	t.Parallel()
	base := &countingClient{}
	var asClient domain.EmbeddingClient = base
	assert.Equal(t, asClient, embedding.NewMemCache(base, 0))
	assert.Nil(t, embedding.NewMemCache(nil, 10))
}
