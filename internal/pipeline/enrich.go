package pipeline

import (
	"context"
	"time"

	"github.com/schollz/progressbar/v3"

	"fetchm/internal/biosample"
	"fetchm/internal/dataset"
	"fetchm/internal/logging"
	"fetchm/internal/normalize"
	"fetchm/internal/report"
	"fetchm/internal/samplecache"
)

// enrich resolves the metadata tuple for every record and returns the
// normalized output rows in input order. Lookups consult the cache first;
// failed registry calls are cached as failures and yield absent tuples, so
// every input row produces exactly one output row.
func (r *Runner) enrich(ctx context.Context, records []dataset.Record, summary *Summary) ([]report.MetadataRow, error) {
	bar := progressbar.Default(int64(len(records)), "fetching metadata")
	defer bar.Close()

	delay := time.Duration(r.cfg.Registry.RequestDelayMS) * time.Millisecond
	var lastRequest time.Time

	rows := make([]report.MetadataRow, 0, len(records))
	for _, record := range records {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		enrichment, ok := r.lookupCached(record, summary)
		if !ok {
			if err := r.pace(ctx, delay, lastRequest); err != nil {
				return nil, err
			}
			lastRequest = time.Now()
			enrichment = r.lookupRemote(ctx, record.SampleID, summary)
		}

		rows = append(rows, report.MetadataRow{
			Row:       record.Row,
			Accession: record.Accession,
			Organism:  record.Organism,
			SampleID:  record.SampleID,
			Source:    normalize.Source(enrichment.IsolationSource),
			Year:      normalize.Year(enrichment.CollectionDate),
			Country:   normalize.Country(enrichment.GeoLocation),
			Host:      normalize.Host(enrichment.Host),
		})
		_ = bar.Add(1)
	}
	return rows, nil
}

// lookupCached resolves a record without touching the registry: rows with no
// sample identifier and cached identifiers (successes and failures alike)
// are answered locally. The second return reports whether that was possible.
func (r *Runner) lookupCached(record dataset.Record, summary *Summary) (biosample.Enrichment, bool) {
	if record.SampleID == "" {
		r.logger.Debug("row has no sample identifier",
			logging.Int(logging.FieldRow, record.Row),
			logging.String("accession", record.Accession))
		return biosample.Enrichment{}, true
	}

	entry, found := r.cache.Lookup(record.SampleID)
	if !found {
		return biosample.Enrichment{}, false
	}

	summary.CacheHits++
	if !entry.Failed {
		summary.EnrichedRows++
	}
	return entry.Enrichment, true
}

// lookupRemote fetches one sample from the registry and caches the outcome.
// Errors are absorbed into an absent tuple so the run continues.
func (r *Runner) lookupRemote(ctx context.Context, sampleID string, summary *Summary) biosample.Enrichment {
	enrichment, err := r.registry.Fetch(ctx, sampleID)
	entry := samplecache.Entry{SampleID: sampleID, Enrichment: enrichment, Failed: err != nil}

	if err != nil {
		summary.LookupFailures++
		r.logger.Warn("sample lookup failed; recording absent metadata",
			logging.String(logging.FieldSampleID, sampleID),
			logging.Error(err))
	} else {
		summary.EnrichedRows++
	}

	if storeErr := r.cache.Store(entry); storeErr != nil {
		r.logger.Warn("failed to cache sample lookup",
			logging.String(logging.FieldSampleID, sampleID),
			logging.Error(storeErr))
	}
	return entry.Enrichment
}

// pace sleeps out the remainder of the configured inter-request delay.
func (r *Runner) pace(ctx context.Context, delay time.Duration, lastRequest time.Time) error {
	if delay <= 0 || lastRequest.IsZero() {
		return nil
	}
	remaining := delay - time.Since(lastRequest)
	if remaining <= 0 {
		return nil
	}
	timer := time.NewTimer(remaining)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
