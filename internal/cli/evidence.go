package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mkrogh/veridoc/internal/ingest"
	"github.com/mkrogh/veridoc/internal/model"
)

// sourceEntry is one entry of the sources manifest: the source record
// plus an optional local document to ingest into evidence chunks.
type sourceEntry struct {
	model.Source `yaml:",inline"`
	File         string `yaml:"file,omitempty"`
}

type sourcesManifest struct {
	Sources []sourceEntry `yaml:"sources"`
}

// loadEvidence reads the sources manifest and assembles the evidence
// set: chunks ingested from per-source documents, optionally merged with
// precomputed chunks from a JSON file.
func loadEvidence(runID, manifestPath, chunksPath string) ([]model.EvidenceChunk, []model.Source, error) {
	var chunks []model.EvidenceChunk
	var sources []model.Source

	if manifestPath != "" {
		raw, err := os.ReadFile(manifestPath)
		if err != nil {
			return nil, nil, fmt.Errorf("read sources manifest: %w", err)
		}
		var manifest sourcesManifest
		if err := yaml.Unmarshal(raw, &manifest); err != nil {
			return nil, nil, fmt.Errorf("parse sources manifest: %w", err)
		}

		chunker := ingest.NewChunker(0)
		for _, entry := range manifest.Sources {
			sources = append(sources, entry.Source)
			if entry.File == "" {
				continue
			}

			path := entry.File
			if !filepath.IsAbs(path) {
				path = filepath.Join(filepath.Dir(manifestPath), path)
			}
			content, err := os.ReadFile(path)
			if err != nil {
				return nil, nil, fmt.Errorf("read source document %s: %w", entry.ID, err)
			}

			var ingested []model.EvidenceChunk
			switch strings.ToLower(filepath.Ext(path)) {
			case ".html", ".htm":
				ingested, err = chunker.ChunkHTML(runID, entry.ID, string(content))
			default:
				ingested, err = chunker.ChunkText(runID, entry.ID, string(content))
			}
			if err != nil {
				return nil, nil, fmt.Errorf("chunk source %s: %w", entry.ID, err)
			}
			chunks = append(chunks, ingested...)
		}
	}

	if chunksPath != "" {
		raw, err := os.ReadFile(chunksPath)
		if err != nil {
			return nil, nil, fmt.Errorf("read chunks file: %w", err)
		}
		var precomputed []model.EvidenceChunk
		if err := json.Unmarshal(raw, &precomputed); err != nil {
			return nil, nil, fmt.Errorf("parse chunks file: %w", err)
		}
		chunks = append(chunks, precomputed...)
	}

	return chunks, sources, nil
}
