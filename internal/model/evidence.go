package model

import "fmt"

// EvidenceChunk is a retrievable unit of source text. Chunks are produced
// by the retrieval side (or the ingest package) and only read here.
type EvidenceChunk struct {
	ID         string                 `json:"id"`
	RunID      string                 `json:"run_id,omitempty"`
	SourceID   string                 `json:"source_id"`
	Text       string                 `json:"text"`
	ChunkIndex int                    `json:"chunk_index"`          // Order within the source, 0-based
	StartChar  *int                   `json:"start_char,omitempty"` // Char offset into the source
	EndChar    *int                   `json:"end_char,omitempty"`
	Embedding  []float64              `json:"embedding_vector,omitempty"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
}

// NewEvidenceChunk constructs a chunk and validates its invariants.
func NewEvidenceChunk(runID, sourceID, text string, chunkIndex int) (EvidenceChunk, error) {
	if chunkIndex < 0 {
		return EvidenceChunk{}, fmt.Errorf("chunk index %d must be >= 0", chunkIndex)
	}
	return EvidenceChunk{
		ID:         DeterministicID("chunk", runID, sourceID, fmt.Sprintf("%d", chunkIndex)),
		RunID:      runID,
		SourceID:   sourceID,
		Text:       text,
		ChunkIndex: chunkIndex,
	}, nil
}

// WithOffsets attaches char offsets into the source document.
func (c EvidenceChunk) WithOffsets(start, end int) (EvidenceChunk, error) {
	if start >= end {
		return EvidenceChunk{}, fmt.Errorf("chunk offsets %d..%d must satisfy start < end", start, end)
	}
	c.StartChar = &start
	c.EndChar = &end
	return c, nil
}

// BindingType classifies how a claim was bound to evidence
type BindingType string

const (
	BindingKeyword  BindingType = "KEYWORD"
	BindingSemantic BindingType = "SEMANTIC"
	BindingManual   BindingType = "MANUAL"
)

// ClaimEvidenceLink is a binding decision: one claim to its single
// best-supporting chunk. A chunk may back many claims.
type ClaimEvidenceLink struct {
	ID           string      `json:"id"`
	ClaimID      string      `json:"claim_id"`
	EvidenceID   string      `json:"evidence_chunk_id"`
	BindingType  BindingType `json:"binding_type"`
	BindingScore float64     `json:"binding_score"` // 0.0-1.0
}

// NewClaimEvidenceLink constructs a link and validates its score range.
func NewClaimEvidenceLink(claimID, evidenceID string, bindingType BindingType, score float64) (ClaimEvidenceLink, error) {
	if score < 0 || score > 1 {
		return ClaimEvidenceLink{}, fmt.Errorf("binding score %.3f outside [0,1]", score)
	}
	return ClaimEvidenceLink{
		ID:           DeterministicID("link", claimID, evidenceID),
		ClaimID:      claimID,
		EvidenceID:   evidenceID,
		BindingType:  bindingType,
		BindingScore: score,
	}, nil
}

// Source is a minimal source record as supplied by the retrieval stage.
type Source struct {
	ID        string                 `json:"id" yaml:"id"`
	Title     string                 `json:"title,omitempty" yaml:"title,omitempty"`
	Published string                 `json:"published,omitempty" yaml:"published,omitempty"` // Free-form date string
	Year      int                    `json:"year,omitempty" yaml:"year,omitempty"`
	Metadata  map[string]interface{} `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}
