// Package pipeline orchestrates the complete verification run:
// extraction, binding, linting and gating over one draft.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mkrogh/veridoc/internal/bind"
	"github.com/mkrogh/veridoc/internal/extract"
	"github.com/mkrogh/veridoc/internal/gate"
	"github.com/mkrogh/veridoc/internal/lint"
	"github.com/mkrogh/veridoc/internal/model"
)

// Input is one verification request: the draft plus the evidence the
// retrieval stage has already materialized.
type Input struct {
	RunID   string
	Title   string
	Draft   string
	Chunks  []model.EvidenceChunk
	Sources []model.Source

	// MinScore overrides the configured binding threshold when set.
	MinScore *float64

	// Strategy overrides the binding strategy; nil selects keyword
	// matching. Callers with precomputed embeddings pass a semantic
	// strategy instead.
	Strategy bind.Strategy
}

// Verifier wires the four stages together. All stages are pure
// computation over the input; the verifier itself holds no run state.
type Verifier struct {
	extractor *extract.Extractor
	evaluator *gate.Evaluator
	config    *model.Config
	logger    *slog.Logger
}

// NewVerifier creates a verifier with the given configuration.
func NewVerifier(cfg *model.Config, logger *slog.Logger) *Verifier {
	if cfg == nil {
		cfg = model.DefaultConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Verifier{
		extractor: extract.NewExtractorWithConfig(cfg.Extract),
		evaluator: gate.NewEvaluator(),
		config:    cfg,
		logger:    logger,
	}
}

// Verify runs extract -> bind -> lint -> gate and assembles the report
// consumed by the revision loop. The stages never block on I/O; ctx is
// only consulted between stages so a caller-side timeout can cut a run
// short.
func (v *Verifier) Verify(ctx context.Context, in Input) (*model.Report, error) {
	claims := v.extractor.Extract(in.RunID, in.Draft)
	v.logger.Debug("extracted claims", "run_id", in.RunID, "count", len(claims))

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("verify cancelled after extraction: %w", err)
	}

	strategy := in.Strategy
	if strategy == nil {
		strategy = bind.KeywordStrategy{}
	}
	minScore := v.config.Bind.MinScore
	if in.MinScore != nil {
		minScore = *in.MinScore
	}

	binder := bind.NewBinderWithConfig(strategy, v.config.Bind, v.config.Concurrency.BindWorkers)
	bound := binder.Bind(claims, in.Chunks, minScore)
	v.logger.Debug("bound claims", "run_id", in.RunID,
		"links", bound.Stats.TotalLinks, "unbound", bound.Stats.Unbound)

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("verify cancelled after binding: %w", err)
	}

	lintCtx := &lint.Context{
		RunID:   in.RunID,
		Title:   in.Title,
		Draft:   in.Draft,
		Claims:  claims,
		Links:   bound.Links,
		Unbound: bound.Unbound,
		Sources: in.Sources,
	}
	issues := lint.RunAll(lintCtx, lint.DefaultRules(v.config.Lint))
	v.logger.Debug("lint complete", "run_id", in.RunID, "issues", len(issues))

	eval := v.evaluator.Evaluate(in.RunID, issues)

	return &model.Report{
		RunID:          in.RunID,
		Title:          in.Title,
		VerifiedAt:     time.Now().UTC(),
		Claims:         claims,
		Links:          bound.Links,
		UnboundClaims:  bound.Unbound,
		Issues:         issues,
		Gates:          eval.Gates,
		BindStats:      bound.Stats,
		S0Count:        eval.S0Count,
		S1Count:        eval.S1Count,
		S2Count:        eval.S2Count,
		AllGatesPassed: eval.AllGatesPassed,
	}, nil
}
