package biosample

import (
	"strings"
	"testing"
)

func TestDecodeDocumentPrefersMatchingAccession(t *testing.T) {
	doc := `<BioSampleSet>
  <BioSample accession="SAMN0001">
    <Attributes>
      <Attribute attribute_name="host" harmonized_name="host">Bos taurus</Attribute>
    </Attributes>
  </BioSample>
  <BioSample accession="SAMN0002">
    <Attributes>
      <Attribute attribute_name="host" harmonized_name="host">Homo sapiens</Attribute>
    </Attributes>
  </BioSample>
</BioSampleSet>`

	enrichment, err := decodeDocument(strings.NewReader(doc), "SAMN0002")
	if err != nil {
		t.Fatalf("decodeDocument: %v", err)
	}
	if enrichment.Host != "Homo sapiens" {
		t.Fatalf("expected matching accession to win, got host %q", enrichment.Host)
	}
}

func TestDecodeDocumentFallsBackToDisplayNames(t *testing.T) {
	doc := `<BioSampleSet>
  <BioSample accession="SAMN0001">
    <Attributes>
      <Attribute attribute_name="geographic location (country and/or sea)">Kenya</Attribute>
      <Attribute attribute_name="isolation-source">soil</Attribute>
    </Attributes>
  </BioSample>
</BioSampleSet>`

	enrichment, err := decodeDocument(strings.NewReader(doc), "SAMN0001")
	if err != nil {
		t.Fatalf("decodeDocument: %v", err)
	}
	if enrichment.GeoLocation != "Kenya" {
		t.Errorf("geo location fallback failed: %q", enrichment.GeoLocation)
	}
	if enrichment.IsolationSource != "soil" {
		t.Errorf("isolation source fallback failed: %q", enrichment.IsolationSource)
	}
	if enrichment.CollectionDate != "" || enrichment.Host != "" {
		t.Errorf("missing attributes should stay empty: %+v", enrichment)
	}
}

func TestDecodeDocumentRejectsMalformedXML(t *testing.T) {
	if _, err := decodeDocument(strings.NewReader("<BioSampleSet><oops"), "SAMN1"); err == nil {
		t.Fatal("expected error for malformed document")
	}
}
