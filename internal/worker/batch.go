package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mkrogh/veridoc/internal/model"
	"github.com/mkrogh/veridoc/internal/pipeline"
)

// Verifier runs one verification. Satisfied by *pipeline.Verifier.
type Verifier interface {
	Verify(ctx context.Context, in pipeline.Input) (*model.Report, error)
}

// VerifyJob verifies a single draft file against shared evidence.
type VerifyJob struct {
	Path     string
	Verifier Verifier
	Chunks   []model.EvidenceChunk
	Sources  []model.Source
}

// Execute reads the draft and runs verification.
func (j *VerifyJob) Execute(ctx context.Context) Result {
	content, err := os.ReadFile(j.Path)
	if err != nil {
		return &VerifyResult{Path: j.Path, Error: fmt.Errorf("read draft: %w", err)}
	}

	title := strings.TrimSuffix(filepath.Base(j.Path), filepath.Ext(j.Path))
	report, err := j.Verifier.Verify(ctx, pipeline.Input{
		RunID:   model.DeterministicID("run", j.Path),
		Title:   title,
		Draft:   string(content),
		Chunks:  j.Chunks,
		Sources: j.Sources,
	})
	if err != nil {
		return &VerifyResult{Path: j.Path, Error: err}
	}
	return &VerifyResult{Path: j.Path, Report: report}
}

// VerifyResult is the outcome of one draft verification.
type VerifyResult struct {
	Path   string
	Report *model.Report
	Error  error
}

// GetError returns the job error, if any.
func (r *VerifyResult) GetError() error {
	return r.Error
}

// BatchProcessor verifies many drafts concurrently against the same
// evidence set.
type BatchProcessor struct {
	verifier    Verifier
	concurrency int
}

// NewBatchProcessor creates a batch processor.
func NewBatchProcessor(verifier Verifier, concurrency int) *BatchProcessor {
	return &BatchProcessor{verifier: verifier, concurrency: concurrency}
}

// ProcessPaths verifies the given draft files concurrently.
func (b *BatchProcessor) ProcessPaths(ctx context.Context, paths []string, chunks []model.EvidenceChunk, sources []model.Source) []*VerifyResult {
	if len(paths) == 0 {
		return []*VerifyResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	// Submit concurrently with result draining so a batch larger than
	// the channel buffers cannot wedge the pool.
	go func() {
		for _, path := range paths {
			pool.Submit(&VerifyJob{
				Path:     path,
				Verifier: b.verifier,
				Chunks:   chunks,
				Sources:  sources,
			})
		}
		pool.Done()
	}()

	results := pool.Wait()
	out := make([]*VerifyResult, len(results))
	for i, r := range results {
		out[i] = r.(*VerifyResult)
	}
	return out
}

// ReadPathsFromFile reads draft paths from a manifest file, one per line,
// skipping blanks and comments, deduplicating.
func ReadPathsFromFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open manifest: %w", err)
	}
	defer func() { _ = file.Close() }()

	var paths []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !seen[line] {
			seen[line] = true
			paths = append(paths, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan manifest: %w", err)
	}
	return paths, nil
}
