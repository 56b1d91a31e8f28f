package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mkrogh/veridoc/internal/model"
)

func goldenReport(t *testing.T) *model.Report {
	t.Helper()
	chunks, sources := goldenEvidence(t)
	report, err := NewVerifier(nil, nil).Verify(context.Background(), Input{
		RunID:   "run1",
		Title:   "Anafylaksi",
		Draft:   goldenDraft,
		Chunks:  chunks,
		Sources: sources,
	})
	if err != nil {
		t.Fatal(err)
	}
	return report
}

func TestRenderer_JSONRoundTrip(t *testing.T) {
	report := goldenReport(t)
	path := filepath.Join(t.TempDir(), "out", "report.json")

	if err := NewRenderer(true).RenderJSON(report, path); err != nil {
		t.Fatalf("render json: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	var decoded model.Report
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if decoded.RunID != report.RunID || len(decoded.Claims) != len(report.Claims) {
		t.Errorf("round trip lost data: %+v", decoded)
	}
}

func TestRenderer_Markdown(t *testing.T) {
	report := goldenReport(t)
	path := filepath.Join(t.TempDir(), "report.md")

	if err := NewRenderer(true).RenderMarkdown(report, path); err != nil {
		t.Fatalf("render markdown: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)

	for _, want := range []string{"# Anafylaksi", "## Gates", "S0_SAFETY", "FINAL", "## Claims", "Generated by veridoc"} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown missing %q", want)
		}
	}
}

func TestRenderer_MarkdownNoFooter(t *testing.T) {
	report := goldenReport(t)
	path := filepath.Join(t.TempDir(), "report.md")

	if err := NewRenderer(false).RenderMarkdown(report, path); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "Generated by veridoc") {
		t.Error("footer must be omitted when disabled")
	}
}

func TestRenderer_Summary(t *testing.T) {
	report := goldenReport(t)

	var buf bytes.Buffer
	NewRenderer(true).RenderSummary(&buf, report)

	out := buf.String()
	if !strings.Contains(out, "RELEASE OK") {
		t.Errorf("expected RELEASE OK verdict, got:\n%s", out)
	}
	if !strings.Contains(out, "S0_SAFETY") {
		t.Errorf("expected gate statuses in summary, got:\n%s", out)
	}

	report.AllGatesPassed = false
	buf.Reset()
	NewRenderer(true).RenderSummary(&buf, report)
	if !strings.Contains(buf.String(), "RELEASE BLOCKED") {
		t.Error("expected RELEASE BLOCKED verdict for a failing report")
	}
}
