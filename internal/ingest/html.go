package ingest

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/mkrogh/veridoc/internal/model"
)

// ChunkHTML extracts the visible block-level text of an HTML source
// document and chunks it. Char offsets are omitted for HTML since they
// cannot be mapped back onto the markup.
func (c *Chunker) ChunkHTML(runID, sourceID, htmlContent string) ([]model.EvidenceChunk, error) {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return nil, err
	}

	var chunks []model.EvidenceChunk
	index := 0

	for _, block := range visibleBlocks(doc) {
		for _, p := range c.split(block) {
			text := strings.TrimSpace(p.text)
			if text == "" {
				continue
			}
			chunk, err := model.NewEvidenceChunk(runID, sourceID, text, index)
			if err != nil {
				return nil, err
			}
			chunks = append(chunks, chunk)
			index++
		}
	}

	return chunks, nil
}

// blockTags delimit chunk boundaries.
var blockTags = map[string]bool{
	"p": true, "li": true, "td": true, "blockquote": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
}

// visibleBlocks walks the document and collects the text of each block
// element, skipping script/style subtrees.
func visibleBlocks(doc *html.Node) []string {
	var blocks []string

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			}
			if blockTags[n.Data] {
				if text := strings.TrimSpace(nodeText(n)); text != "" {
					blocks = append(blocks, text)
				}
				return
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)

	return blocks
}

func nodeText(n *html.Node) string {
	var b strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				b.WriteString(t)
				b.WriteString(" ")
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)

	return b.String()
}
