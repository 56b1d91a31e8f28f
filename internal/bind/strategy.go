package bind

import (
	"math"
	"strings"
	"unicode"

	"github.com/mkrogh/veridoc/internal/model"
)

// Strategy scores how well one chunk supports one claim, in [0,1].
// The source-reference bonus, thresholding and tie-breaking live in the
// shared binder, not in strategies.
type Strategy interface {
	Type() model.BindingType
	Score(claim model.Claim, chunk model.EvidenceChunk) float64
}

// KeywordStrategy scores by lexical overlap: the fraction of the claim's
// significant words restated verbatim by the chunk (claim-coverage ratio).
type KeywordStrategy struct{}

// Type returns the binding type produced by this strategy.
func (KeywordStrategy) Type() model.BindingType { return model.BindingKeyword }

// Score returns |claim ∩ chunk| / |claim keywords|.
func (KeywordStrategy) Score(claim model.Claim, chunk model.EvidenceChunk) float64 {
	claimKW := Keywords(claim.Text)
	if len(claimKW) == 0 {
		return 0
	}
	chunkKW := Keywords(chunk.Text)
	return float64(intersectionSize(claimKW, chunkKW)) / float64(len(claimKW))
}

// SemanticStrategy scores by cosine similarity of precomputed embedding
// vectors. Claims have no embedding field of their own, so the caller
// supplies a claim-ID → vector map. Missing vectors score zero.
type SemanticStrategy struct {
	ClaimVectors map[string][]float64
}

// Type returns the binding type produced by this strategy.
func (SemanticStrategy) Type() model.BindingType { return model.BindingSemantic }

// Score maps cosine similarity from [-1,1] to [0,1].
func (s SemanticStrategy) Score(claim model.Claim, chunk model.EvidenceChunk) float64 {
	v := s.ClaimVectors[claim.ID]
	if len(v) == 0 || len(chunk.Embedding) == 0 || len(v) != len(chunk.Embedding) {
		return 0
	}
	var dot, normA, normB float64
	for i := range v {
		dot += v[i] * chunk.Embedding[i]
		normA += v[i] * v[i]
		normB += chunk.Embedding[i] * chunk.Embedding[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	cos := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	return (cos + 1) / 2
}

// stopWords are excluded from keyword sets (Danish and English).
var stopWords = map[string]bool{
	"and": true, "are": true, "but": true, "can": true,
	"for": true, "from": true, "had": true, "has": true, "have": true,
	"may": true, "not": true, "that": true, "the": true,
	"this": true, "was": true, "were": true, "will": true, "with": true,
	"af": true, "den": true, "der": true, "det": true, "eller": true,
	"hos": true, "ikke": true, "kan": true, "med": true, "også": true,
	"samt": true, "skal": true, "som": true, "til": true, "ved": true,
}

// Keywords tokenizes text into the set of lower-cased significant words:
// stop words and words shorter than 3 characters are excluded.
func Keywords(text string) map[string]bool {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	kw := make(map[string]bool, len(words))
	for _, w := range words {
		if len([]rune(w)) < 3 || stopWords[w] {
			continue
		}
		kw[w] = true
	}
	return kw
}

func intersectionSize(a, b map[string]bool) int {
	if len(b) < len(a) {
		a, b = b, a
	}
	n := 0
	for w := range a {
		if b[w] {
			n++
		}
	}
	return n
}
