package dataset

import (
	"log/slog"

	"fetchm/internal/config"
	"fetchm/internal/logging"
)

// FilterResult summarizes a quality-filter pass.
type FilterResult struct {
	Kept     []Record
	Dropped  int
	Unscored int
}

// Filter applies the completeness/contamination thresholds to records. Rows
// whose quality cells are blank or unparseable are kept and counted in
// Unscored; the registry data for such assemblies is often incomplete and
// dropping them silently would bias the summaries.
func Filter(records []Record, quality config.Quality, logger *slog.Logger) FilterResult {
	logger = logging.NewComponentLogger(logger, "filter")

	result := FilterResult{Kept: make([]Record, 0, len(records))}
	for _, record := range records {
		if record.Completeness == nil || record.Contamination == nil {
			result.Unscored++
			result.Kept = append(result.Kept, record)
			logger.Debug("row kept without quality scores",
				logging.Int(logging.FieldRow, record.Row),
				logging.String("accession", record.Accession))
			continue
		}
		if *record.Completeness < quality.MinCompleteness || *record.Contamination > quality.MaxContamination {
			result.Dropped++
			logger.Debug("row dropped by quality filter",
				logging.Int(logging.FieldRow, record.Row),
				logging.String("accession", record.Accession),
				logging.Float64("completeness", *record.Completeness),
				logging.Float64("contamination", *record.Contamination))
			continue
		}
		result.Kept = append(result.Kept, record)
	}

	logger.Info("quality filter applied",
		logging.Int("input_rows", len(records)),
		logging.Int("kept", len(result.Kept)),
		logging.Int("dropped", result.Dropped),
		logging.Int("unscored", result.Unscored),
		logging.Float64("min_completeness", quality.MinCompleteness),
		logging.Float64("max_contamination", quality.MaxContamination))

	return result
}
