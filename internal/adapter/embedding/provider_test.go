package embedding_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/ats-resume-scorer/internal/adapter/embedding"
)

func TestCosine(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{"identical", []float32{1, 2, 3}, []float32{1, 2, 3}, 1},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0},
		{"opposite clamped to zero", []float32{1, 0}, []float32{-1, 0}, 0},
		{"zero vector", []float32{0, 0}, []float32{1, 1}, 0},
		{"dimension mismatch", []float32{1, 2}, []float32{1, 2, 3}, 0},
		{"empty", nil, nil, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tc.want, embedding.Cosine(tc.a, tc.b), 0.0001)
		})
	}
}

type fixedClient struct {
	vecs [][]float32
	err  error
}

func (f fixedClient) Embed(context.Context, []string) ([][]float32, error) {
	return f.vecs, f.err
}

func TestProvider_Similarity(t *testing.T) {
	t.Parallel()
	p := embedding.NewProvider(fixedClient{vecs: [][]float32{{1, 0}, {1, 0}}})
	sim, err := p.Similarity(context.Background(), "a", "b")
	require.NoError(t, err)
	assert.InDelta(t, 1.0, sim, 0.0001)
}

func TestProvider_Errors(t *testing.T) {
	t.Parallel()
	p := embedding.NewProvider(fixedClient{err: errors.New("boom")})
	_, err := p.Similarity(context.Background(), "a", "b")
	assert.ErrorContains(t, err, "op=embedding.Similarity")

	p = embedding.NewProvider(fixedClient{vecs: [][]float32{{1}}})
	_, err = p.Similarity(context.Background(), "a", "b")
	assert.ErrorContains(t, err, "expected 2 vectors")
}

func TestLexicalClient(t *testing.T) {
	t.Parallel()
	p := embedding.NewProvider(embedding.NewLexicalClient())

	sim, err := p.Similarity(context.Background(), "go developer", "go developer")
	require.NoError(t, err)
	assert.InDelta(t, 1.0, sim, 0.0001)

	sim, err = p.Similarity(context.Background(), "go developer", "pastry chef")
	require.NoError(t, err)
	assert.Less(t, sim, 0.5)

	// Deterministic across calls.
	again, err := p.Similarity(context.Background(), "go developer", "pastry chef")
	require.NoError(t, err)
	assert.Equal(t, sim, again)
}
