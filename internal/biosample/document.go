package biosample

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// Enrichment is the per-sample metadata tuple fetched from the registry.
// Fields hold the raw registry values; normalization happens downstream.
type Enrichment struct {
	IsolationSource string `json:"isolation_source"`
	CollectionDate  string `json:"collection_date"`
	GeoLocation     string `json:"geo_location"`
	Host            string `json:"host"`
}

type sampleSet struct {
	XMLName xml.Name         `xml:"BioSampleSet"`
	Samples []sampleDocument `xml:"BioSample"`
}

type sampleDocument struct {
	Accession  string            `xml:"accession,attr"`
	Attributes []sampleAttribute `xml:"Attributes>Attribute"`
}

type sampleAttribute struct {
	Name       string `xml:"attribute_name,attr"`
	Harmonized string `xml:"harmonized_name,attr"`
	Value      string `xml:",chardata"`
}

// attributeKeys maps each tuple field to the harmonized and display names the
// registry uses for it. Harmonized names win; submitters frequently invent
// display-name variants.
var attributeKeys = map[string][]string{
	"isolation_source": {"isolation_source", "isolation source", "isolation-source"},
	"collection_date":  {"collection_date", "collection date"},
	"geo_loc_name":     {"geo_loc_name", "geographic location", "geographic location (country and/or sea)"},
	"host":             {"host", "specific host", "host scientific name"},
}

func decodeDocument(r io.Reader, sampleID string) (Enrichment, error) {
	var set sampleSet
	if err := xml.NewDecoder(r).Decode(&set); err != nil {
		return Enrichment{}, fmt.Errorf("decode registry document for %s: %w", sampleID, err)
	}
	if len(set.Samples) == 0 {
		return Enrichment{}, fmt.Errorf("registry document for %s contains no samples", sampleID)
	}

	// The registry may return several documents for merged accessions; prefer
	// the one matching the requested identifier.
	doc := set.Samples[0]
	for _, candidate := range set.Samples {
		if strings.EqualFold(strings.TrimSpace(candidate.Accession), sampleID) {
			doc = candidate
			break
		}
	}

	return Enrichment{
		IsolationSource: attributeValue(doc.Attributes, attributeKeys["isolation_source"]),
		CollectionDate:  attributeValue(doc.Attributes, attributeKeys["collection_date"]),
		GeoLocation:     attributeValue(doc.Attributes, attributeKeys["geo_loc_name"]),
		Host:            attributeValue(doc.Attributes, attributeKeys["host"]),
	}, nil
}

func attributeValue(attrs []sampleAttribute, keys []string) string {
	for _, key := range keys {
		for _, attr := range attrs {
			if strings.EqualFold(strings.TrimSpace(attr.Harmonized), key) ||
				strings.EqualFold(strings.TrimSpace(attr.Name), key) {
				if value := strings.TrimSpace(attr.Value); value != "" {
					return value
				}
			}
		}
	}
	return ""
}
