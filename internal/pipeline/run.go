package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"fetchm/internal/aggregate"
	"fetchm/internal/biosample"
	"fetchm/internal/config"
	"fetchm/internal/dataset"
	"fetchm/internal/history"
	"fetchm/internal/logging"
	"fetchm/internal/normalize"
	"fetchm/internal/report"
	"fetchm/internal/samplecache"
	"fetchm/internal/seqfetch"
)

// Summary reports what one pipeline run did.
type Summary struct {
	RunID          string
	OutputDir      string
	TotalRows      int
	KeptRows       int
	DroppedRows    int
	UnscoredRows   int
	EnrichedRows   int
	CacheHits      int
	LookupFailures int
	Downloaded     int
	DownloadFailed int
	Duration       time.Duration
}

// Runner executes the enrichment pipeline end to end: load, filter, enrich,
// normalize, aggregate, report, and optionally download sequences.
type Runner struct {
	cfg      *config.Config
	logger   *slog.Logger
	registry *biosample.Client
	cache    *samplecache.Cache
	fetcher  *seqfetch.Fetcher
}

// NewRunner builds a runner wired from configuration.
func NewRunner(cfg *config.Config, logger *slog.Logger) *Runner {
	cache := samplecache.New(cfg.Paths.CachePath, logger)
	return New(cfg, logger, biosample.NewClient(cfg, logger), cache)
}

// New builds a runner with an explicit registry client and cache.
func New(cfg *config.Config, logger *slog.Logger, registry *biosample.Client, cache *samplecache.Cache) *Runner {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Runner{
		cfg:      cfg,
		logger:   logging.NewComponentLogger(logger, "pipeline"),
		registry: registry,
		cache:    cache,
	}
}

// Cache exposes the runner's lookup cache.
func (r *Runner) Cache() *samplecache.Cache { return r.cache }

// Run executes the full pipeline against the assembly table at inputPath.
// Output goes under the configured output directory; a lock file there
// serializes concurrent runs against the same directory.
func (r *Runner) Run(ctx context.Context, inputPath string) (*Summary, error) {
	started := time.Now()

	layout := report.Layout{Root: r.cfg.Paths.OutputDir}
	if err := layout.Ensure(); err != nil {
		return nil, err
	}

	lock := flock.New(filepath.Join(layout.Root, ".fetchm.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire run lock: %w", err)
	}
	if !locked {
		return nil, errors.New("another run is already writing to this output directory")
	}
	defer lock.Unlock()

	summary := &Summary{
		RunID:     uuid.NewString(),
		OutputDir: layout.Root,
	}
	r.logger.Info("run started",
		logging.String(logging.FieldRunID, summary.RunID),
		logging.String(logging.FieldPath, inputPath))

	records, err := dataset.Load(inputPath)
	if err != nil {
		return nil, err
	}
	summary.TotalRows = len(records)

	filtered := dataset.Filter(records, r.cfg.Quality, r.logger)
	summary.KeptRows = len(filtered.Kept)
	summary.DroppedRows = filtered.Dropped
	summary.UnscoredRows = filtered.Unscored
	r.logger.Info("quality filter applied",
		logging.Int("total", summary.TotalRows),
		logging.Int("kept", summary.KeptRows),
		logging.Int("dropped", summary.DroppedRows),
		logging.Int("unscored", summary.UnscoredRows))

	rows, err := r.enrich(ctx, filtered.Kept, summary)
	if err != nil {
		return nil, err
	}

	if err := r.report(layout, rows); err != nil {
		return nil, err
	}

	if r.cfg.Download.Enabled && len(filtered.Kept) > 0 {
		fetcher := r.fetcher
		if fetcher == nil {
			fetcher = seqfetch.NewFetcher(r.cfg, layout.SequencesDir(), r.logger)
		}
		summary.Downloaded, summary.DownloadFailed = fetcher.FetchAll(ctx, filtered.Kept)
	}

	summary.Duration = time.Since(started)
	r.recordHistory(ctx, inputPath, started, summary)

	r.logger.Info("run finished",
		logging.String(logging.FieldRunID, summary.RunID),
		logging.Int("enriched", summary.EnrichedRows),
		logging.Int("cache_hits", summary.CacheHits),
		logging.Int("lookup_failures", summary.LookupFailures),
		logging.Duration("duration", summary.Duration))
	return summary, nil
}

// report writes the metadata table, the per-field summary tables, the PNG
// charts, and the HTML report page. Chart output skips the absent bucket and
// is suppressed entirely for fields with no observed values.
func (r *Runner) report(layout report.Layout, rows []report.MetadataRow) error {
	if err := layout.WriteMetadata(rows); err != nil {
		return err
	}

	fields := []struct {
		name  string
		title string
		value func(report.MetadataRow) string
	}{
		{"isolation_source", "Isolation sources", func(m report.MetadataRow) string { return m.Source }},
		{"collection_year", "Collection years", func(m report.MetadataRow) string { return m.Year }},
		{"country", "Countries", func(m report.MetadataRow) string { return m.Country }},
		{"host", "Hosts", func(m report.MetadataRow) string { return m.Host }},
		{"organism", "Organisms", func(m report.MetadataRow) string { return m.Organism }},
	}

	var sections []report.Section
	for _, field := range fields {
		values := make([]string, len(rows))
		for i, row := range rows {
			values[i] = field.value(row)
		}
		counts := aggregate.Tally(values)

		if err := layout.WriteSummary(field.name, field.name, counts); err != nil {
			return err
		}

		charted := counts.WithoutKey(normalize.Absent)
		if len(charted) == 0 {
			r.logger.Debug("no data to chart", logging.String("field", field.name))
			continue
		}
		if _, err := layout.SaveBarChart(field.name, field.title, "assemblies", charted); err != nil {
			return err
		}
		sections = append(sections, report.Section{Title: field.title, Counts: charted})
	}

	if _, err := layout.WriteHTML("fetchm report", sections); err != nil {
		return err
	}
	return nil
}

// recordHistory appends the run to the history database. History is a
// convenience log; failures are reported but do not fail a completed run.
func (r *Runner) recordHistory(ctx context.Context, inputPath string, started time.Time, summary *Summary) {
	if r.cfg.Paths.HistoryDB == "" {
		return
	}
	store, err := history.Open(ctx, r.cfg.Paths.HistoryDB)
	if err != nil {
		r.logger.Warn("run history unavailable", logging.Error(err))
		return
	}
	defer store.Close()

	run := history.Run{
		ID:             summary.RunID,
		InputPath:      inputPath,
		OutputDir:      summary.OutputDir,
		TotalRows:      summary.TotalRows,
		KeptRows:       summary.KeptRows,
		DroppedRows:    summary.DroppedRows,
		EnrichedRows:   summary.EnrichedRows,
		CacheHits:      summary.CacheHits,
		LookupFailures: summary.LookupFailures,
		Downloaded:     summary.Downloaded,
		StartedAt:      started.UTC(),
		FinishedAt:     started.Add(summary.Duration).UTC(),
	}
	if err := store.RecordRun(ctx, run); err != nil {
		r.logger.Warn("failed to record run history", logging.Error(err))
	}
}
