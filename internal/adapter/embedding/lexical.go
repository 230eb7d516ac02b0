package embedding

import (
	"hash/fnv"
	"strings"

	"github.com/fairyhunter13/ats-resume-scorer/internal/domain"
)

// lexicalDim is the fixed dimensionality of the hashed bag-of-words vectors.
const lexicalDim = 512

// LexicalClient is an offline embedding client. Each text becomes a hashed
// bag-of-words vector, so cosine similarity degrades to lexical overlap. It
// backs the CLI and any deployment without an embeddings API key; results are
// deterministic across processes.
type LexicalClient struct{}

// NewLexicalClient returns the offline embedding client.
func NewLexicalClient() *LexicalClient { return &LexicalClient{} }

// Embed hashes each whitespace-separated term into a fixed-size vector.
// It never fails.
func (LexicalClient) Embed(_ domain.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		vec := make([]float32, lexicalDim)
		for _, term := range strings.Fields(strings.ToLower(text)) {
			h := fnv.New32a()
			_, _ = h.Write([]byte(term))
			vec[h.Sum32()%lexicalDim]++
		}
		out[i] = vec
	}
	return out, nil
}
