package ingest

import (
	"strings"
	"testing"
)

func TestChunker_ParagraphSplit(t *testing.T) {
	c := NewChunker(0)
	content := "Første afsnit om anafylaksi.\n\nAndet afsnit om dosering af adrenalin.\n\nTredje afsnit."

	chunks, err := c.ChunkText("run1", "SRC001", content)
	if err != nil {
		t.Fatal(err)
	}

	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}
	for i, chunk := range chunks {
		if chunk.ChunkIndex != i {
			t.Errorf("chunk %d: expected index %d, got %d", i, i, chunk.ChunkIndex)
		}
		if chunk.SourceID != "SRC001" {
			t.Errorf("chunk %d: expected source SRC001, got %s", i, chunk.SourceID)
		}
		if chunk.StartChar == nil || chunk.EndChar == nil {
			t.Fatalf("chunk %d: expected offsets", i)
		}
		if got := content[*chunk.StartChar:*chunk.EndChar]; strings.TrimSpace(got) != chunk.Text {
			t.Errorf("chunk %d: offsets point at %q, text is %q", i, got, chunk.Text)
		}
	}
}

func TestChunker_SplitsOversizedParagraph(t *testing.T) {
	c := NewChunker(50)
	content := "Den første sætning handler om dosering. Den anden sætning handler om kontraindikationer. Den tredje handler om komplikationer."

	chunks, err := c.ChunkText("run1", "SRC001", content)
	if err != nil {
		t.Fatal(err)
	}

	if len(chunks) < 2 {
		t.Fatalf("expected the paragraph split into several chunks, got %d", len(chunks))
	}
	for i, chunk := range chunks {
		if len(chunk.Text) > 50 {
			t.Errorf("chunk %d exceeds the limit: %d chars", i, len(chunk.Text))
		}
	}
}

func TestChunker_SkipsBlankParagraphs(t *testing.T) {
	c := NewChunker(0)

	chunks, err := c.ChunkText("run1", "SRC001", "Et afsnit.\n\n\n\n   \n\nAndet afsnit.")
	if err != nil {
		t.Fatal(err)
	}
	if len(chunks) != 2 {
		t.Fatalf("expected blank paragraphs skipped, got %d chunks", len(chunks))
	}
}

func TestChunker_EmptyContent(t *testing.T) {
	c := NewChunker(0)

	chunks, err := c.ChunkText("run1", "SRC001", "")
	if err != nil {
		t.Fatal(err)
	}
	if len(chunks) != 0 {
		t.Errorf("expected no chunks for empty content, got %d", len(chunks))
	}
}

func TestChunker_HTML(t *testing.T) {
	c := NewChunker(0)
	doc := `<html><head><style>p { color: red }</style><script>alert(1)</script></head>
<body>
<h2>Dosering</h2>
<p>Adrenalin 0.5 mg gives intramuskulært.</p>
<ul><li>Gentag efter fem minutter.</li></ul>
<noscript>Slå javascript til.</noscript>
</body></html>`

	chunks, err := c.ChunkHTML("run1", "SRC001", doc)
	if err != nil {
		t.Fatal(err)
	}

	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks (h2, p, li), got %d: %+v", len(chunks), chunks)
	}

	joined := ""
	for _, chunk := range chunks {
		joined += chunk.Text + "\n"
	}
	if !strings.Contains(joined, "Adrenalin 0.5 mg") {
		t.Errorf("expected paragraph text extracted, got %q", joined)
	}
	if strings.Contains(joined, "alert") || strings.Contains(joined, "color") || strings.Contains(joined, "javascript") {
		t.Errorf("script/style/noscript content must be skipped, got %q", joined)
	}
}
