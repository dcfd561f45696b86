package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"fetchm/internal/aggregate"
)

var metadataHeader = []string{
	"row", "accession", "organism", "biosample", "isolation_source",
	"collection_year", "country", "host",
}

// WriteMetadata writes the full enriched dataset to tables/metadata.tsv.
func (l Layout) WriteMetadata(rows []MetadataRow) error {
	path := filepath.Join(l.TablesDir(), "metadata.tsv")
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	w.Comma = '\t'

	if err := w.Write(metadataHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, row := range rows {
		record := []string{
			strconv.Itoa(row.Row),
			row.Accession,
			row.Organism,
			row.SampleID,
			row.Source,
			row.Year,
			row.Country,
			row.Host,
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("write row %d: %w", row.Row, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return file.Close()
}

// WriteSummary writes one aggregation to tables/<name>_summary.tsv with the
// given key column label.
func (l Layout) WriteSummary(name, keyLabel string, counts aggregate.Counts) error {
	path := filepath.Join(l.TablesDir(), name+"_summary.tsv")
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	w.Comma = '\t'

	if err := w.Write([]string{keyLabel, "count"}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, bucket := range counts {
		if err := w.Write([]string{bucket.Key, strconv.Itoa(bucket.Count)}); err != nil {
			return fmt.Errorf("write bucket %q: %w", bucket.Key, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return file.Close()
}
