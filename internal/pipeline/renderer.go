package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mkrogh/veridoc/internal/model"
)

// Renderer writes verification reports as JSON, Markdown and a terminal
// summary.
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a renderer.
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON writes the report as indented JSON.
func (r *Renderer) RenderJSON(report *model.Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// RenderMarkdown writes a human-readable report.
func (r *Renderer) RenderMarkdown(report *model.Report, path string) error {
	var b strings.Builder

	title := report.Title
	if title == "" {
		title = "Verification report"
	}
	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, "Verified: %s\n\n", report.VerifiedAt.Format("2006-01-02 15:04 UTC"))

	b.WriteString("## Gates\n\n")
	b.WriteString("| Gate | Status | Checked | Failed |\n")
	b.WriteString("|------|--------|---------|--------|\n")
	for _, g := range report.Gates {
		fmt.Fprintf(&b, "| %s | %s | %d | %d |\n", g.Type, g.Status, g.IssuesChecked, g.IssuesFailed)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "## Claims (%d)\n\n", len(report.Claims))
	fmt.Fprintf(&b, "Bound: %d, unbound: %d\n\n", report.BindStats.Bound, report.BindStats.Unbound)
	for _, c := range report.Claims {
		refs := ""
		if len(c.SourceRefs) > 0 {
			refs = " [" + strings.Join(c.SourceRefs, ", ") + "]"
		}
		fmt.Fprintf(&b, "- L%d %s: %s%s\n", c.LineNumber, c.Type, c.Text, refs)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "## Issues (S0: %d, S1: %d, S2: %d)\n\n",
		report.S0Count, report.S1Count, report.S2Count)
	for _, issue := range report.Issues {
		line := ""
		if issue.LineNumber > 0 {
			line = fmt.Sprintf(" (line %d)", issue.LineNumber)
		}
		fmt.Fprintf(&b, "- **%s** %s: %s%s\n", issue.Severity, issue.Code, issue.Message, line)
	}
	b.WriteString("\n")

	if r.includeFooter {
		b.WriteString("---\n\nGenerated by veridoc. Findings gate release; they do not replace clinical review.\n")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write markdown: %w", err)
	}
	return nil
}

// RenderSummary prints a short verdict to the given writer.
func (r *Renderer) RenderSummary(w io.Writer, report *model.Report) {
	verdict := "RELEASE BLOCKED"
	if report.AllGatesPassed {
		verdict = "RELEASE OK"
	}
	fmt.Fprintf(w, "\n%s\n", verdict)
	fmt.Fprintf(w, "  Claims:  %d (%d bound, %d unbound)\n",
		report.BindStats.TotalClaims, report.BindStats.Bound, report.BindStats.Unbound)
	fmt.Fprintf(w, "  Issues:  %d S0, %d S1, %d S2\n",
		report.S0Count, report.S1Count, report.S2Count)
	for _, g := range report.Gates {
		fmt.Fprintf(w, "  %-10s %s\n", g.Type+":", g.Status)
	}
}
