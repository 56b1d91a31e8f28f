package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mkrogh/veridoc/internal/bind"
	"github.com/mkrogh/veridoc/internal/cache"
	"github.com/mkrogh/veridoc/internal/embed"
	"github.com/mkrogh/veridoc/internal/extract"
	"github.com/mkrogh/veridoc/internal/model"
	"github.com/mkrogh/veridoc/internal/pipeline"
)

var (
	sourcesPath  string
	chunksPath   string
	outJSON      string
	outMD        string
	title        string
	runID        string
	minScore     float64
	semantic     bool
	noCache      bool
	noFooter     bool
	checkTimeout time.Duration
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check <draft>",
	Short: "Verify a single draft against its evidence",
	Long: `Check extracts claims from a draft, binds them to evidence
chunks, runs the lint battery and evaluates release gates.

Exit status is 1 when the FINAL gate fails.

Example:
  veridoc check draft.md --sources sources.yaml
  veridoc check draft.md --sources sources.yaml --chunks chunks.json --json report.json
  veridoc check draft.md --sources sources.yaml --semantic --min-score 0.3`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVar(&sourcesPath, "sources", "", "sources manifest (YAML)")
	checkCmd.Flags().StringVar(&chunksPath, "chunks", "", "precomputed evidence chunks (JSON)")
	checkCmd.Flags().StringVar(&outJSON, "json", "report.json", "output JSON path")
	checkCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	checkCmd.Flags().StringVar(&title, "title", "", "procedure title (default: draft filename)")
	checkCmd.Flags().StringVar(&runID, "run-id", "", "run identifier (default: derived from draft path)")
	checkCmd.Flags().Float64Var(&minScore, "min-score", 0, "binding threshold override (0 = config default)")
	checkCmd.Flags().BoolVar(&semantic, "semantic", false, "use embedding-based binding (requires OPENAI_API_KEY)")
	checkCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the report cache")
	checkCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
	checkCmd.Flags().DurationVar(&checkTimeout, "timeout", 2*time.Minute, "overall timeout")
}

func runCheck(cmd *cobra.Command, args []string) error {
	draftPath := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
	defer cancel()

	cfg := model.DefaultConfig()
	cfg.Cache.Enabled = !noCache
	cfg.Output.Verbose = verbose
	cfg.Output.IncludeFooter = !noFooter

	content, err := os.ReadFile(draftPath)
	if err != nil {
		return fmt.Errorf("read draft: %w", err)
	}
	draft := string(content)

	if runID == "" {
		runID = model.DeterministicID("run", draftPath)
	}
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(draftPath), filepath.Ext(draftPath))
	}

	chunks, sources, err := loadEvidence(runID, sourcesPath, chunksPath)
	if err != nil {
		return err
	}
	slog.Debug("evidence loaded", "chunks", len(chunks), "sources", len(sources))

	input := pipeline.Input{
		RunID:   runID,
		Title:   title,
		Draft:   draft,
		Chunks:  chunks,
		Sources: sources,
	}
	if minScore > 0 {
		input.MinScore = &minScore
	}

	strategyName := string(model.BindingKeyword)
	if semantic {
		strategy, embedChunks, err := buildSemanticStrategy(ctx, cfg, runID, draft, chunks)
		if err != nil {
			return err
		}
		input.Strategy = strategy
		input.Chunks = embedChunks
		strategyName = string(model.BindingSemantic)
	}

	store := openCache(cfg)
	effectiveMin := cfg.Bind.MinScore
	if input.MinScore != nil {
		effectiveMin = *input.MinScore
	}
	key := cache.ReportKey(draft, input.Chunks, sources, strategyName, effectiveMin)

	var report *model.Report
	if store != nil {
		if cached, found := cache.GetReport(store, key); found {
			slog.Debug("report cache hit", "run_id", runID)
			report = cached
		}
	}
	if report == nil {
		verifier := pipeline.NewVerifier(cfg, slog.Default())
		report, err = verifier.Verify(ctx, input)
		if err != nil {
			return err
		}
		if store != nil {
			if err := cache.SetReport(store, key, report, cfg.Cache.TTL); err != nil {
				slog.Warn("report cache write failed", "error", err)
			}
		}
	}

	renderer := pipeline.NewRenderer(cfg.Output.IncludeFooter)
	if outJSON != "" {
		if err := renderer.RenderJSON(report, outJSON); err != nil {
			return err
		}
	}
	if outMD != "" {
		if err := renderer.RenderMarkdown(report, outMD); err != nil {
			return err
		}
	}
	renderer.RenderSummary(cmd.OutOrStdout(), report)

	if !report.AllGatesPassed {
		return fmt.Errorf("release blocked: %d S0 and %d S1 issue(s)", report.S0Count, report.S1Count)
	}
	return nil
}

// buildSemanticStrategy extracts claims up front (extraction is
// deterministic, so the verifier reproduces identical claim IDs), embeds
// claims and chunks, and returns the semantic strategy.
func buildSemanticStrategy(ctx context.Context, cfg *model.Config, runID, draft string, chunks []model.EvidenceChunk) (bind.Strategy, []model.EvidenceChunk, error) {
	cfg.Embedding.APIKey = os.Getenv("OPENAI_API_KEY")
	if cfg.Embedding.APIKey == "" {
		return nil, nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
	}

	embedder, err := embed.NewOpenAIEmbedder(cfg.Embedding)
	if err != nil {
		return nil, nil, err
	}

	claims := extract.NewExtractorWithConfig(cfg.Extract).Extract(runID, draft)
	claimVectors, err := embed.ClaimVectors(ctx, embedder, claims)
	if err != nil {
		return nil, nil, fmt.Errorf("embed claims: %w", err)
	}
	embedded, err := embed.ChunkVectors(ctx, embedder, chunks)
	if err != nil {
		return nil, nil, fmt.Errorf("embed chunks: %w", err)
	}

	return bind.SemanticStrategy{ClaimVectors: claimVectors}, embedded, nil
}

// openCache returns the layered report cache, or nil when disabled.
func openCache(cfg *model.Config) cache.Cache {
	if !cfg.Cache.Enabled {
		return nil
	}
	dir := cfg.Cache.Dir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return cache.NewMemory(cfg.Cache.TTL, 10*time.Minute)
		}
		dir = filepath.Join(home, ".veridoc", "cache")
	}
	return cache.NewLayered(cfg.Cache.TTL, dir, cfg.Cache.TTL)
}
