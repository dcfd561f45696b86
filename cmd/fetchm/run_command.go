package main

import (
	"fmt"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"fetchm/internal/config"
	"fetchm/internal/pipeline"
)

const summaryDurationUnit = 10 * time.Millisecond

func newRunCommand(ctx *commandContext) *cobra.Command {
	var (
		inputPath        string
		outputDir        string
		delayMS          int
		minCompleteness  float64
		maxContamination float64
		download         bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the enrichment pipeline against an assembly table",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if err := applyRunFlags(cmd, cfg, outputDir, delayMS, minCompleteness, maxContamination, download); err != nil {
				return err
			}

			if strings.TrimSpace(inputPath) == "" {
				return fmt.Errorf("--input is required")
			}
			input, err := config.ExpandPath(inputPath)
			if err != nil {
				return fmt.Errorf("resolve input path: %w", err)
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			runner := pipeline.NewRunner(cfg, ctx.ensureLogger())
			summary, err := runner.Run(runCtx, input)
			if err != nil {
				return err
			}

			printSummary(cmd, summary)
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "Assembly table to enrich (tab-separated)")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "Output directory (overrides configuration)")
	cmd.Flags().IntVar(&delayMS, "delay", 0, "Milliseconds to wait between registry requests")
	cmd.Flags().Float64Var(&minCompleteness, "min-completeness", 0, "Minimum completeness to keep a row")
	cmd.Flags().Float64Var(&maxContamination, "max-contamination", 0, "Maximum contamination to keep a row")
	cmd.Flags().BoolVar(&download, "download-sequences", false, "Download genomic sequences for kept rows")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

// applyRunFlags overlays explicitly set flags onto the loaded configuration.
// Only flags the user changed win over the file.
func applyRunFlags(cmd *cobra.Command, cfg *config.Config, outputDir string, delayMS int, minCompleteness, maxContamination float64, download bool) error {
	if cmd.Flags().Changed("output") {
		expanded, err := config.ExpandPath(outputDir)
		if err != nil {
			return fmt.Errorf("resolve output path: %w", err)
		}
		cfg.Paths.OutputDir = expanded
	}
	if cmd.Flags().Changed("delay") {
		cfg.Registry.RequestDelayMS = delayMS
	}
	if cmd.Flags().Changed("min-completeness") {
		cfg.Quality.MinCompleteness = minCompleteness
	}
	if cmd.Flags().Changed("max-contamination") {
		cfg.Quality.MaxContamination = maxContamination
	}
	if cmd.Flags().Changed("download-sequences") {
		cfg.Download.Enabled = download
	}
	return cfg.Validate()
}

func printSummary(cmd *cobra.Command, summary *pipeline.Summary) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Run %s complete in %s\n", summary.RunID, summary.Duration.Round(summaryDurationUnit))

	rows := [][]string{
		{"input rows", fmt.Sprintf("%d", summary.TotalRows)},
		{"kept", fmt.Sprintf("%d", summary.KeptRows)},
		{"dropped by quality filter", fmt.Sprintf("%d", summary.DroppedRows)},
		{"kept without quality scores", fmt.Sprintf("%d", summary.UnscoredRows)},
		{"enriched", fmt.Sprintf("%d", summary.EnrichedRows)},
		{"cache hits", fmt.Sprintf("%d", summary.CacheHits)},
		{"lookup failures", fmt.Sprintf("%d", summary.LookupFailures)},
	}
	if summary.Downloaded > 0 || summary.DownloadFailed > 0 {
		rows = append(rows,
			[]string{"sequences downloaded", fmt.Sprintf("%d", summary.Downloaded)},
			[]string{"download failures", fmt.Sprintf("%d", summary.DownloadFailed)})
	}

	fmt.Fprintln(out, renderTable(out, []string{"Metric", "Value"}, rows, []columnAlignment{alignLeft, alignRight}))
	fmt.Fprintf(out, "Output written to %s\n", summary.OutputDir)
}
