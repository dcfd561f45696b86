package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fetchm/internal/aggregate"
)

func testLayout(t *testing.T) Layout {
	t.Helper()
	layout := Layout{Root: t.TempDir()}
	if err := layout.Ensure(); err != nil {
		t.Fatalf("Ensure: %v", err)
	}
	return layout
}

func TestWriteMetadata(t *testing.T) {
	layout := testLayout(t)

	rows := []MetadataRow{
		{Row: 1, Accession: "GCA_1", Organism: "Escherichia coli", SampleID: "SAMN1",
			Source: "blood", Year: "2013", Country: "USA", Host: "Homo sapiens"},
		{Row: 2, Accession: "GCA_2", Organism: "Escherichia coli", SampleID: "SAMN2",
			Source: "absent", Year: "absent", Country: "absent", Host: "absent"},
	}
	if err := layout.WriteMetadata(rows); err != nil {
		t.Fatalf("WriteMetadata: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(layout.TablesDir(), "metadata.tsv"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "row\taccession") {
		t.Fatalf("unexpected header: %q", lines[0])
	}
	if lines[1] != "1\tGCA_1\tEscherichia coli\tSAMN1\tblood\t2013\tUSA\tHomo sapiens" {
		t.Fatalf("unexpected row: %q", lines[1])
	}
}

func TestWriteSummaryIsDeterministic(t *testing.T) {
	layout := testLayout(t)

	counts := aggregate.Tally([]string{"USA", "Kenya", "USA", "absent"})
	if err := layout.WriteSummary("country", "country", counts); err != nil {
		t.Fatalf("WriteSummary: %v", err)
	}

	first, err := os.ReadFile(filepath.Join(layout.TablesDir(), "country_summary.tsv"))
	if err != nil {
		t.Fatal(err)
	}
	if err := layout.WriteSummary("country", "country", counts); err != nil {
		t.Fatal(err)
	}
	second, _ := os.ReadFile(filepath.Join(layout.TablesDir(), "country_summary.tsv"))
	if string(first) != string(second) {
		t.Fatal("summary files differ between identical runs")
	}

	want := "country\tcount\nUSA\t2\nKenya\t1\nabsent\t1\n"
	if string(first) != want {
		t.Fatalf("unexpected summary content:\n%s", first)
	}
}

func TestWriteSummaryEmptyCountsWritesHeaderOnly(t *testing.T) {
	layout := testLayout(t)

	if err := layout.WriteSummary("host", "host", nil); err != nil {
		t.Fatalf("WriteSummary: %v", err)
	}
	data, _ := os.ReadFile(filepath.Join(layout.TablesDir(), "host_summary.tsv"))
	if strings.TrimSpace(string(data)) != "host\tcount" {
		t.Fatalf("expected header-only file, got %q", data)
	}
}

func TestSaveBarChartWritesPNG(t *testing.T) {
	layout := testLayout(t)

	counts := aggregate.Tally([]string{"USA", "USA", "Kenya"})
	path, err := layout.SaveBarChart("Country", "Assemblies by country", "assemblies", counts)
	if err != nil {
		t.Fatalf("SaveBarChart: %v", err)
	}
	if filepath.Base(path) != "country.png" {
		t.Fatalf("unexpected chart filename: %q", path)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() == 0 {
		t.Fatal("chart file is empty")
	}
}

func TestSaveBarChartRejectsEmptyCounts(t *testing.T) {
	layout := testLayout(t)
	if _, err := layout.SaveBarChart("country", "t", "y", nil); err == nil {
		t.Fatal("expected error for empty counts")
	}
}

func TestWriteHTMLReport(t *testing.T) {
	layout := testLayout(t)

	sections := []Section{
		{Title: "Assemblies by country", Counts: aggregate.Tally([]string{"USA", "Kenya"})},
		{Title: "Empty section", Counts: nil},
	}
	path, err := layout.WriteHTML("fetchm report", sections)
	if err != nil {
		t.Fatalf("WriteHTML: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	body := string(data)
	if !strings.Contains(body, "Assemblies by country") {
		t.Fatal("report missing section title")
	}
	if !strings.Contains(body, "Kenya") {
		t.Fatal("report missing data key")
	}
}
