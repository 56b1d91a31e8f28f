package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mkrogh/veridoc/internal/model"
	"github.com/mkrogh/veridoc/internal/pipeline"
	"github.com/mkrogh/veridoc/internal/worker"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <manifest>",
	Short: "Verify multiple drafts from a manifest in parallel",
	Long: `Batch reads draft paths from a manifest file (one per line) and
verifies them concurrently against a shared evidence set, writing one
JSON and one Markdown report per draft.

Example:
  veridoc batch drafts.txt --sources sources.yaml
  veridoc batch drafts.txt --sources sources.yaml --concurrency 8 --output-dir ./reports`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringVar(&sourcesPath, "sources", "", "sources manifest (YAML)")
	batchCmd.Flags().StringVar(&chunksPath, "chunks", "", "precomputed evidence chunks (JSON)")
	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./veridoc-reports", "output directory for reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
}

func runBatch(cmd *cobra.Command, args []string) error {
	manifest := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg := model.DefaultConfig()
	cfg.Output.Verbose = verbose
	cfg.Output.IncludeFooter = !noFooter
	cfg.Concurrency.BatchWorkers = concurrency

	paths, err := worker.ReadPathsFromFile(manifest)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("manifest %s contains no draft paths", manifest)
	}

	// One shared evidence set across the batch; the chunk run ID is not
	// draft-specific, so leave it empty.
	chunks, sources, err := loadEvidence("", sourcesPath, chunksPath)
	if err != nil {
		return err
	}

	slog.Info("batch starting", "drafts", len(paths), "workers", concurrency,
		"chunks", len(chunks), "sources", len(sources))

	verifier := pipeline.NewVerifier(cfg, slog.Default())
	processor := worker.NewBatchProcessor(verifier, cfg.Concurrency.BatchWorkers)
	results := processor.ProcessPaths(ctx, paths, chunks, sources)

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	renderer := pipeline.NewRenderer(cfg.Output.IncludeFooter)
	passed, blocked, failed := 0, 0, 0

	for _, r := range results {
		if r.Error != nil {
			failed++
			slog.Error("verification failed", "draft", r.Path, "error", r.Error)
			continue
		}

		base := strings.TrimSuffix(filepath.Base(r.Path), filepath.Ext(r.Path))
		if err := renderer.RenderJSON(r.Report, filepath.Join(outputDir, base+".json")); err != nil {
			return err
		}
		if err := renderer.RenderMarkdown(r.Report, filepath.Join(outputDir, base+".md")); err != nil {
			return err
		}

		if r.Report.AllGatesPassed {
			passed++
		} else {
			blocked++
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\nBatch complete: %d passed, %d blocked, %d failed\n", passed, blocked, failed)
	if failed > 0 {
		return fmt.Errorf("%d draft(s) could not be verified", failed)
	}
	return nil
}
