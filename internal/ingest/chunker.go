// Package ingest converts already-materialized source documents into
// evidence chunks. It performs no network retrieval; fetching literature
// belongs to the surrounding pipeline.
package ingest

import (
	"fmt"
	"strings"

	"github.com/mkrogh/veridoc/internal/model"
)

// DefaultMaxChunkChars bounds one chunk's text length.
const DefaultMaxChunkChars = 800

// Chunker splits source documents into evidence chunks.
type Chunker struct {
	maxChars int
}

// NewChunker creates a chunker; maxChars <= 0 selects the default.
func NewChunker(maxChars int) *Chunker {
	if maxChars <= 0 {
		maxChars = DefaultMaxChunkChars
	}
	return &Chunker{maxChars: maxChars}
}

// ChunkText splits plain text or markdown into paragraph-based chunks
// with char offsets into the original document.
func (c *Chunker) ChunkText(runID, sourceID, content string) ([]model.EvidenceChunk, error) {
	var chunks []model.EvidenceChunk

	offset := 0
	index := 0
	for _, para := range strings.Split(content, "\n\n") {
		start := strings.Index(content[offset:], para)
		if start < 0 {
			start = 0
		}
		start += offset
		offset = start + len(para)

		for _, piece := range c.split(para) {
			text := strings.TrimSpace(piece.text)
			if text == "" {
				continue
			}

			chunk, err := model.NewEvidenceChunk(runID, sourceID, text, index)
			if err != nil {
				return nil, fmt.Errorf("chunk %s: %w", sourceID, err)
			}

			pieceStart := start + piece.offset
			pieceEnd := pieceStart + len(piece.text)
			if pieceStart < pieceEnd {
				chunk, err = chunk.WithOffsets(pieceStart, pieceEnd)
				if err != nil {
					return nil, fmt.Errorf("chunk %s offsets: %w", sourceID, err)
				}
			}

			chunks = append(chunks, chunk)
			index++
		}
	}

	return chunks, nil
}

type piece struct {
	text   string
	offset int // Offset within the paragraph
}

// split cuts an oversized paragraph at sentence boundaries, falling back
// to a hard cut when a single sentence exceeds the limit.
func (c *Chunker) split(para string) []piece {
	if len(para) <= c.maxChars {
		return []piece{{text: para}}
	}

	var pieces []piece
	start := 0
	for start < len(para) {
		end := start + c.maxChars
		if end >= len(para) {
			pieces = append(pieces, piece{text: para[start:], offset: start})
			break
		}
		cut := strings.LastIndexAny(para[start:end], ".!?")
		if cut <= 0 {
			cut = c.maxChars - 1
		}
		pieces = append(pieces, piece{text: para[start : start+cut+1], offset: start})
		start += cut + 1
	}
	return pieces
}
