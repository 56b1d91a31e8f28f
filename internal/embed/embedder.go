// Package embed provides the optional embedding client used to prepare
// vectors for the semantic binding strategy. The verification core never
// calls out here; callers populate vectors up front and hand them in.
package embed

import (
	"context"

	"github.com/mkrogh/veridoc/internal/model"
)

// Embedder computes embedding vectors for a batch of texts.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float64, error)
}

// ChunkVectors fills the embedding field of every chunk in place-order
// and returns the updated slice.
func ChunkVectors(ctx context.Context, e Embedder, chunks []model.EvidenceChunk) ([]model.EvidenceChunk, error) {
	if len(chunks) == 0 {
		return chunks, nil
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}

	vectors, err := e.Embed(ctx, texts)
	if err != nil {
		return nil, err
	}

	out := make([]model.EvidenceChunk, len(chunks))
	for i, c := range chunks {
		c.Embedding = vectors[i]
		out[i] = c
	}
	return out, nil
}

// ClaimVectors computes the claim-ID → vector map consumed by the
// semantic strategy.
func ClaimVectors(ctx context.Context, e Embedder, claims []model.Claim) (map[string][]float64, error) {
	if len(claims) == 0 {
		return map[string][]float64{}, nil
	}

	texts := make([]string, len(claims))
	for i, c := range claims {
		texts[i] = c.Text
	}

	vectors, err := e.Embed(ctx, texts)
	if err != nil {
		return nil, err
	}

	byID := make(map[string][]float64, len(claims))
	for i, c := range claims {
		byID[c.ID] = vectors[i]
	}
	return byID, nil
}
