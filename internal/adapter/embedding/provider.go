package embedding

import (
	"fmt"
	"math"

	"github.com/fairyhunter13/ats-resume-scorer/internal/domain"
)

// Provider computes semantic similarity as the cosine of the two texts'
// embedding vectors, clamped to [0,1].
type Provider struct {
	client domain.EmbeddingClient
}

// NewProvider wraps an embedding client as a domain.SimilarityProvider.
func NewProvider(client domain.EmbeddingClient) *Provider {
	return &Provider{client: client}
}

// Similarity embeds both texts in one batch and returns their cosine
// similarity. Zero-length or mismatched vectors score 0 rather than erroring.
func (p *Provider) Similarity(ctx domain.Context, a, b string) (float64, error) {
	vecs, err := p.client.Embed(ctx, []string{a, b})
	if err != nil {
		return 0, fmt.Errorf("op=embedding.Similarity: %w", err)
	}
	if len(vecs) != 2 {
		return 0, fmt.Errorf("op=embedding.Similarity: expected 2 vectors, got %d", len(vecs))
	}
	return Cosine(vecs[0], vecs[1]), nil
}

// Cosine returns the cosine similarity of two vectors clamped to [0,1].
// Dimension mismatches and zero vectors yield 0.
func Cosine(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	sim := dot / (math.Sqrt(na) * math.Sqrt(nb))
	return math.Max(0, math.Min(1, sim))
}
