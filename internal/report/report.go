package report

import (
	"path/filepath"

	"fetchm/internal/fileutil"
)

// MetadataRow is one enriched, normalized record of the output dataset.
type MetadataRow struct {
	Row       int
	Accession string
	Organism  string
	SampleID  string
	Source    string
	Year      string
	Country   string
	Host      string
}

// Layout resolves the fixed output directory structure under a run's output
// directory.
type Layout struct {
	Root string
}

// TablesDir returns the directory receiving delimited summary files.
func (l Layout) TablesDir() string { return filepath.Join(l.Root, "tables") }

// FiguresDir returns the directory receiving chart images and the HTML report.
func (l Layout) FiguresDir() string { return filepath.Join(l.Root, "figures") }

// SequencesDir returns the directory receiving downloaded sequences.
func (l Layout) SequencesDir() string { return filepath.Join(l.Root, "sequences") }

// Ensure creates the tables and figures directories. The sequences directory
// is created on demand by the downloader.
func (l Layout) Ensure() error {
	if err := fileutil.EnsureDir(l.TablesDir()); err != nil {
		return err
	}
	return fileutil.EnsureDir(l.FiguresDir())
}
