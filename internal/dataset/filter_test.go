package dataset

import (
	"strings"
	"testing"

	"fetchm/internal/config"
)

func TestFilterThresholds(t *testing.T) {
	records, err := Parse(strings.NewReader(sampleTSV))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	quality := config.Quality{MinCompleteness: 90, MaxContamination: 5}
	result := Filter(records, quality, nil)

	if len(result.Kept) != 2 {
		t.Fatalf("expected 2 kept rows, got %d", len(result.Kept))
	}
	if result.Dropped != 1 {
		t.Fatalf("expected 1 dropped row, got %d", result.Dropped)
	}
	if result.Unscored != 1 {
		t.Fatalf("expected 1 unscored row, got %d", result.Unscored)
	}
	// The unscored row survives the filter.
	if result.Kept[1].Accession != "GCA_000007445.1" {
		t.Fatalf("unexpected kept rows: %+v", result.Kept)
	}
}

func TestFilterContaminationBound(t *testing.T) {
	records, err := Parse(strings.NewReader(sampleTSV))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	quality := config.Quality{MinCompleteness: 0, MaxContamination: 0.05}
	result := Filter(records, quality, nil)

	// Both scored rows exceed 0.05 contamination; only the unscored row stays.
	if len(result.Kept) != 1 || result.Kept[0].Row != 3 {
		t.Fatalf("unexpected kept rows: %+v", result.Kept)
	}
	if result.Dropped != 2 {
		t.Fatalf("expected 2 dropped, got %d", result.Dropped)
	}
}
