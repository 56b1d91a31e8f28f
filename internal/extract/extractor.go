package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/mkrogh/veridoc/internal/model"
)

// citationTagRe matches [SRC123] / [S:SRC123] citation tags,
// case-insensitive. Matched identifiers are normalized to upper case.
var citationTagRe = regexp.MustCompile(`(?i)\[(?:s:)?(src[a-z0-9]+)\]`)

// Extractor scans draft text line by line and emits typed claims via the
// category pattern catalogs. Extraction is fully deterministic: catalogs
// are applied in a fixed order, patterns in a fixed order within each
// catalog, matches left to right within the line.
type Extractor struct {
	catalogs   []catalog
	citedBonus float64
}

// NewExtractor creates an extractor with the default tuning.
func NewExtractor() *Extractor {
	return NewExtractorWithConfig(model.DefaultConfig().Extract)
}

// NewExtractorWithConfig creates an extractor with explicit tuning.
func NewExtractorWithConfig(cfg model.ExtractConfig) *Extractor {
	return &Extractor{
		catalogs:   buildCatalogs(),
		citedBonus: cfg.CitedBonus,
	}
}

// Extract scans the draft and returns all claims found. Empty lines and
// heading lines (leading '#') never contribute claims.
func (e *Extractor) Extract(runID, text string) []model.Claim {
	var claims []model.Claim

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		lineNumber := i + 1
		refs := extractSourceRefs(line)

		for _, cat := range e.catalogs {
			claims = append(claims, e.extractCategory(runID, cat, line, lineNumber, refs)...)
		}
	}

	return claims
}

// extractCategory applies one catalog to one line. Matches from later
// patterns that overlap a span already claimed by an earlier pattern in
// the same category are dropped.
func (e *Extractor) extractCategory(runID string, cat catalog, line string, lineNumber int, refs []string) []model.Claim {
	var claims []model.Claim
	var taken []span

	confidence := cat.base
	if len(refs) > 0 {
		confidence += e.citedBonus
	}
	if confidence > 1 {
		confidence = 1
	}

	for _, p := range cat.patterns {
		for _, m := range p.re.FindAllStringSubmatchIndex(line, -1) {
			s := span{start: m[0], end: m[1]}
			if s.overlapsAny(taken) {
				continue
			}

			text := strings.TrimSpace(line[m[0]:m[1]])
			if text == "" {
				continue
			}

			claim, err := model.NewClaim(runID, cat.claimType, text, lineNumber, confidence)
			if err != nil {
				// Pattern-derived input cannot violate claim invariants
				panic(err)
			}
			claim.SourceRefs = refs

			if p.valueGroup > 0 {
				if v, ok := submatchFloat(line, m, p.valueGroup); ok {
					claim.NormalizedValue = &v
				}
			}
			if p.unitGroup > 0 {
				claim.Unit = submatch(line, m, p.unitGroup)
			}

			taken = append(taken, s)
			claims = append(claims, claim)
		}
	}

	return claims
}

// extractSourceRefs returns the ordered set of source identifiers cited
// on the line, upper-cased, first occurrence wins.
func extractSourceRefs(line string) []string {
	var refs []string
	seen := make(map[string]bool)

	for _, m := range citationTagRe.FindAllStringSubmatch(line, -1) {
		id := strings.ToUpper(m[1])
		if !seen[id] {
			seen[id] = true
			refs = append(refs, id)
		}
	}

	return refs
}

type span struct {
	start, end int
}

func (s span) overlapsAny(spans []span) bool {
	for _, o := range spans {
		if s.start < o.end && o.start < s.end {
			return true
		}
	}
	return false
}

// submatch returns the text of a capture group, or "" when unmatched.
func submatch(line string, m []int, group int) string {
	lo, hi := m[2*group], m[2*group+1]
	if lo < 0 || hi < 0 {
		return ""
	}
	return line[lo:hi]
}

// submatchFloat parses a capture group as a number, accepting comma
// decimals. A missing or unparseable group degrades to no value.
func submatchFloat(line string, m []int, group int) (float64, bool) {
	raw := submatch(line, m, group)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", "."), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
