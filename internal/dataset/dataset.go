package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Record is one row of the input assembly table. Row is the 1-based position
// of the record in the original file (header excluded) and serves as its
// identity throughout the run.
type Record struct {
	Row           int
	Accession     string
	AssemblyName  string
	Organism      string
	SampleID      string
	Completeness  *float64
	Contamination *float64
}

// columnAliases maps each logical column to the header spellings accepted for
// it, lowercased. The NCBI datasets export and its tab-separated variants use
// different labels across versions.
var columnAliases = map[string][]string{
	"accession":     {"assembly accession", "accession"},
	"assemblyName":  {"assembly name"},
	"organism":      {"organism name", "organism scientific name", "organism"},
	"sample":        {"assembly biosample accession", "biosample accession", "biosample"},
	"completeness":  {"checkm completeness", "completeness"},
	"contamination": {"checkm contamination", "contamination"},
}

// Load reads the tab-separated assembly table at path. The header row is
// required; the sample-identifier column is the only mandatory column.
func Load(path string) ([]Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer file.Close()

	return Parse(file)
}

// Parse reads tab-separated records from r. Exposed separately so tests and
// alternate inputs can feed readers directly.
func Parse(r io.Reader) ([]Record, error) {
	reader := csv.NewReader(r)
	reader.Comma = '\t'
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("dataset is empty")
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols, err := resolveColumns(header)
	if err != nil {
		return nil, err
	}

	var records []Record
	row := 0
	for {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", row+1, err)
		}
		row++
		records = append(records, Record{
			Row:           row,
			Accession:     cols.value(fields, "accession"),
			AssemblyName:  cols.value(fields, "assemblyName"),
			Organism:      cols.value(fields, "organism"),
			SampleID:      cols.value(fields, "sample"),
			Completeness:  cols.float(fields, "completeness"),
			Contamination: cols.float(fields, "contamination"),
		})
	}
	return records, nil
}

type columns struct {
	index map[string]int
}

func resolveColumns(header []string) (columns, error) {
	index := make(map[string]int, len(columnAliases))
	for i, name := range header {
		normalized := strings.ToLower(strings.TrimSpace(name))
		for logical, aliases := range columnAliases {
			if _, done := index[logical]; done {
				continue
			}
			for _, alias := range aliases {
				if normalized == alias {
					index[logical] = i
					break
				}
			}
		}
	}
	if _, ok := index["sample"]; !ok {
		return columns{}, fmt.Errorf("dataset header is missing a sample identifier column (expected one of %q)", columnAliases["sample"])
	}
	return columns{index: index}, nil
}

func (c columns) value(fields []string, logical string) string {
	idx, ok := c.index[logical]
	if !ok || idx >= len(fields) {
		return ""
	}
	return strings.TrimSpace(fields[idx])
}

func (c columns) float(fields []string, logical string) *float64 {
	raw := c.value(fields, logical)
	if raw == "" {
		return nil
	}
	parsed, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &parsed
}
