package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/mkrogh/veridoc/internal/model"
)

func TestLoadEvidence_ManifestWithFiles(t *testing.T) {
	dir := t.TempDir()

	if err := os.WriteFile(filepath.Join(dir, "guideline.md"),
		[]byte("Adrenalin 0.5 mg gives intramuskulært.\n\nGentag efter fem minutter."), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "page.html"),
		[]byte("<html><body><p>Amiodaron 300 mg intravenøst.</p></body></html>"), 0o644); err != nil {
		t.Fatal(err)
	}

	manifest := filepath.Join(dir, "sources.yaml")
	manifestYAML := `sources:
  - id: SRC001
    title: Anafylaksi-retningslinje
    year: 2024
    file: guideline.md
  - id: SRC002
    title: Hjertestop
    file: page.html
  - id: SRC003
    title: Uden dokument
`
	if err := os.WriteFile(manifest, []byte(manifestYAML), 0o644); err != nil {
		t.Fatal(err)
	}

	chunks, sources, err := loadEvidence("run1", manifest, "")
	if err != nil {
		t.Fatal(err)
	}

	if len(sources) != 3 {
		t.Fatalf("expected 3 sources, got %d", len(sources))
	}
	if sources[0].ID != "SRC001" || sources[0].Year != 2024 {
		t.Errorf("unexpected first source: %+v", sources[0])
	}

	bySource := make(map[string]int)
	for _, c := range chunks {
		bySource[c.SourceID]++
	}
	if bySource["SRC001"] != 2 {
		t.Errorf("expected 2 chunks from the markdown source, got %d", bySource["SRC001"])
	}
	if bySource["SRC002"] != 1 {
		t.Errorf("expected 1 chunk from the HTML source, got %d", bySource["SRC002"])
	}
	if bySource["SRC003"] != 0 {
		t.Errorf("expected no chunks for a source without a document, got %d", bySource["SRC003"])
	}
}

func TestLoadEvidence_PrecomputedChunks(t *testing.T) {
	dir := t.TempDir()

	chunk, err := model.NewEvidenceChunk("run1", "SRC001", "precomputed evidence", 0)
	if err != nil {
		t.Fatal(err)
	}
	data, err := json.Marshal([]model.EvidenceChunk{chunk})
	if err != nil {
		t.Fatal(err)
	}
	chunksFile := filepath.Join(dir, "chunks.json")
	if err := os.WriteFile(chunksFile, data, 0o644); err != nil {
		t.Fatal(err)
	}

	chunks, sources, err := loadEvidence("run1", "", chunksFile)
	if err != nil {
		t.Fatal(err)
	}
	if len(chunks) != 1 || chunks[0].Text != "precomputed evidence" {
		t.Errorf("unexpected chunks: %+v", chunks)
	}
	if len(sources) != 0 {
		t.Errorf("expected no sources without a manifest, got %d", len(sources))
	}
}

func TestLoadEvidence_MissingManifest(t *testing.T) {
	if _, _, err := loadEvidence("run1", "/nonexistent/sources.yaml", ""); err == nil {
		t.Error("expected an error for a missing manifest")
	}
}

func TestLoadEvidence_MissingSourceDocument(t *testing.T) {
	dir := t.TempDir()
	manifest := filepath.Join(dir, "sources.yaml")
	if err := os.WriteFile(manifest, []byte("sources:\n  - id: SRC001\n    file: missing.md\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, _, err := loadEvidence("run1", manifest, ""); err == nil {
		t.Error("expected an error for a missing source document")
	}
}
