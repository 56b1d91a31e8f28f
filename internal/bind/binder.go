package bind

import (
	"sync"

	"github.com/mkrogh/veridoc/internal/model"
)

// Result is the outcome of one binding run.
type Result struct {
	Links   []model.ClaimEvidenceLink
	Unbound []model.Claim
	Stats   model.BindStats
}

// Binder matches each claim to its single best-supporting evidence chunk.
// Scoring is delegated to a Strategy; the source-reference bonus, the
// minimum-score threshold and the deterministic tie-break are applied here.
type Binder struct {
	strategy       Strategy
	sourceRefBonus float64
	workers        int
}

// NewBinder creates a binder with default tuning around the given strategy.
func NewBinder(strategy Strategy) *Binder {
	cfg := model.DefaultConfig()
	return NewBinderWithConfig(strategy, cfg.Bind, cfg.Concurrency.BindWorkers)
}

// NewBinderWithConfig creates a binder with explicit tuning.
func NewBinderWithConfig(strategy Strategy, cfg model.BindConfig, workers int) *Binder {
	if workers <= 0 {
		workers = 1
	}
	return &Binder{
		strategy:       strategy,
		sourceRefBonus: cfg.SourceRefBonus,
		workers:        workers,
	}
}

// candidate is one chunk's standing for one claim. Ties on score break by
// larger keyword intersection, then richer chunk keyword set (a chunk
// carrying more content restates more of the source context), then lowest
// chunk index, then source ID.
type candidate struct {
	chunk         model.EvidenceChunk
	score         float64
	intersection  int
	chunkKeywords int
}

func (c candidate) betterThan(o candidate) bool {
	if c.score != o.score {
		return c.score > o.score
	}
	if c.intersection != o.intersection {
		return c.intersection > o.intersection
	}
	if c.chunkKeywords != o.chunkKeywords {
		return c.chunkKeywords > o.chunkKeywords
	}
	if c.chunk.ChunkIndex != o.chunk.ChunkIndex {
		return c.chunk.ChunkIndex < o.chunk.ChunkIndex
	}
	return c.chunk.SourceID < o.chunk.SourceID
}

// Bind matches every claim against every chunk. Claims scoring below
// minScore against all chunks are returned unbound. Claims are scored
// independently and may be processed concurrently; output order always
// follows claim order.
func (b *Binder) Bind(claims []model.Claim, chunks []model.EvidenceChunk, minScore float64) Result {
	type outcome struct {
		link  model.ClaimEvidenceLink
		bound bool
	}

	outcomes := make([]outcome, len(claims))

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, b.workers)

	for i, claim := range claims {
		wg.Add(1)
		go func(idx int, c model.Claim) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			if best, ok := b.bestMatch(c, chunks, minScore); ok {
				link, err := model.NewClaimEvidenceLink(c.ID, best.chunk.ID, b.strategy.Type(), best.score)
				if err != nil {
					// Scores are capped before link construction
					panic(err)
				}
				outcomes[idx] = outcome{link: link, bound: true}
			}
		}(i, claim)
	}
	wg.Wait()

	result := Result{
		Links:   make([]model.ClaimEvidenceLink, 0, len(claims)),
		Unbound: make([]model.Claim, 0),
	}
	for i, o := range outcomes {
		if o.bound {
			result.Links = append(result.Links, o.link)
		} else {
			result.Unbound = append(result.Unbound, claims[i])
		}
	}

	result.Stats = model.BindStats{
		TotalClaims: len(claims),
		Bound:       len(result.Links),
		Unbound:     len(result.Unbound),
		TotalLinks:  len(result.Links),
	}
	return result
}

// bestMatch scores one claim against all chunks and selects the winner
// among those at or above minScore.
func (b *Binder) bestMatch(claim model.Claim, chunks []model.EvidenceChunk, minScore float64) (candidate, bool) {
	claimKW := Keywords(claim.Text)

	var best candidate
	found := false

	for _, chunk := range chunks {
		score := b.strategy.Score(claim, chunk)
		if b.sourceRefBonus > 0 && claim.HasSourceRef(chunk.SourceID) {
			score += b.sourceRefBonus
		}
		if score > 1 {
			score = 1
		}
		if score < minScore {
			continue
		}

		chunkKW := Keywords(chunk.Text)
		cand := candidate{
			chunk:         chunk,
			score:         score,
			intersection:  intersectionSize(claimKW, chunkKW),
			chunkKeywords: len(chunkKW),
		}
		if !found || cand.betterThan(best) {
			best = cand
			found = true
		}
	}

	return best, found
}
