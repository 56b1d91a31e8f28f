package worker

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/mkrogh/veridoc/internal/model"
	"github.com/mkrogh/veridoc/internal/pipeline"
)

func writeDraft(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestBatchProcessor_ProcessPaths(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeDraft(t, dir, "a.md", "Adrenalin 0.5 mg i.m. ved anafylaksi."),
		writeDraft(t, dir, "b.md", "Amiodaron 300 mg i.v. ved VF."),
	}

	chunk, err := model.NewEvidenceChunk("", "SRC001",
		"Adrenalin 0.5 mg intramuskulært og amiodaron 300 mg intravenøst.", 0)
	if err != nil {
		t.Fatal(err)
	}

	processor := NewBatchProcessor(pipeline.NewVerifier(nil, nil), 2)
	results := processor.ProcessPaths(context.Background(), paths,
		[]model.EvidenceChunk{chunk}, []model.Source{{ID: "SRC001", Year: 2025}})

	if len(results) != len(paths) {
		t.Fatalf("expected %d results, got %d", len(paths), len(results))
	}
	for _, r := range results {
		if r.Error != nil {
			t.Errorf("%s: unexpected error: %v", r.Path, r.Error)
			continue
		}
		if r.Report == nil {
			t.Errorf("%s: expected a report", r.Path)
			continue
		}
		if len(r.Report.Claims) == 0 {
			t.Errorf("%s: expected claims from the draft", r.Path)
		}
	}
}

func TestBatchProcessor_MissingFile(t *testing.T) {
	processor := NewBatchProcessor(pipeline.NewVerifier(nil, nil), 1)
	results := processor.ProcessPaths(context.Background(),
		[]string{"/nonexistent/draft.md"}, nil, nil)

	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Error == nil {
		t.Error("expected an error for a missing draft file")
	}
}

func TestBatchProcessor_NoPaths(t *testing.T) {
	processor := NewBatchProcessor(pipeline.NewVerifier(nil, nil), 1)
	if results := processor.ProcessPaths(context.Background(), nil, nil, nil); len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}

func TestVerifyJob_DeterministicRunID(t *testing.T) {
	dir := t.TempDir()
	path := writeDraft(t, dir, "a.md", "Adrenalin 0.5 mg i.m.")

	verifier := pipeline.NewVerifier(nil, nil)
	job := &VerifyJob{Path: path, Verifier: verifier}

	first := job.Execute(context.Background()).(*VerifyResult)
	second := job.Execute(context.Background()).(*VerifyResult)

	if first.Error != nil || second.Error != nil {
		t.Fatalf("unexpected errors: %v, %v", first.Error, second.Error)
	}
	if first.Report.RunID != second.Report.RunID {
		t.Errorf("run ID must be stable per path: %s vs %s", first.Report.RunID, second.Report.RunID)
	}
	if first.Report.Title != "a" {
		t.Errorf("expected title derived from filename, got %q", first.Report.Title)
	}
}

func TestReadPathsFromFile(t *testing.T) {
	dir := t.TempDir()
	manifest := writeDraft(t, dir, "drafts.txt",
		"# kommentar\n/tmp/a.md\n\n/tmp/b.md\n/tmp/a.md\n")

	paths, err := ReadPathsFromFile(manifest)
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"/tmp/a.md", "/tmp/b.md"}
	if len(paths) != len(want) {
		t.Fatalf("expected %d paths, got %d: %v", len(want), len(paths), paths)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("path %d: expected %s, got %s", i, want[i], paths[i])
		}
	}
}

func TestReadPathsFromFile_Missing(t *testing.T) {
	if _, err := ReadPathsFromFile("/nonexistent/manifest.txt"); err == nil {
		t.Error("expected an error for a missing manifest")
	}
}
