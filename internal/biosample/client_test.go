package biosample

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const registryDocument = `<?xml version="1.0" encoding="UTF-8"?>
<BioSampleSet>
  <BioSample accession="SAMN02604091">
    <Attributes>
      <Attribute attribute_name="strain" harmonized_name="strain">K-12</Attribute>
      <Attribute attribute_name="collection date" harmonized_name="collection_date">2013-05-01</Attribute>
      <Attribute attribute_name="geographic location" harmonized_name="geo_loc_name">USA: California</Attribute>
      <Attribute attribute_name="specific host" harmonized_name="host">Homo sapiens</Attribute>
      <Attribute attribute_name="isolation source" harmonized_name="isolation_source">Blood</Attribute>
    </Attributes>
  </BioSample>
</BioSampleSet>`

func TestFetchExtractsEnrichmentTuple(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path + "?" + r.URL.RawQuery
		w.Header().Set("Content-Type", "application/xml")
		_, _ = w.Write([]byte(registryDocument))
	}))
	defer server.Close()

	client := New(server.URL, "", server.Client(), nil)
	enrichment, err := client.Fetch(context.Background(), "SAMN02604091")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	if !strings.Contains(gotPath, "/efetch.fcgi") {
		t.Fatalf("unexpected path: %q", gotPath)
	}
	if !strings.Contains(gotPath, "db=biosample") || !strings.Contains(gotPath, "id=SAMN02604091") {
		t.Fatalf("unexpected query: %q", gotPath)
	}

	if enrichment.CollectionDate != "2013-05-01" {
		t.Errorf("collection date: %q", enrichment.CollectionDate)
	}
	if enrichment.GeoLocation != "USA: California" {
		t.Errorf("geo location: %q", enrichment.GeoLocation)
	}
	if enrichment.Host != "Homo sapiens" {
		t.Errorf("host: %q", enrichment.Host)
	}
	if enrichment.IsolationSource != "Blood" {
		t.Errorf("isolation source: %q", enrichment.IsolationSource)
	}
}

func TestFetchSendsAPIKeyWhenConfigured(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(registryDocument))
	}))
	defer server.Close()

	client := New(server.URL, "secret", server.Client(), nil)
	if _, err := client.Fetch(context.Background(), "SAMN02604091"); err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if !strings.Contains(gotQuery, "api_key=secret") {
		t.Fatalf("api key missing from query: %q", gotQuery)
	}
}

func TestFetchReportsHTTPFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "too many requests", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := New(server.URL, "", server.Client(), nil)
	if _, err := client.Fetch(context.Background(), "SAMN1"); err == nil {
		t.Fatal("expected error for HTTP 429")
	}
}

func TestFetchRejectsEmptyIdentifier(t *testing.T) {
	client := New("https://example.org", "", http.DefaultClient, nil)
	if _, err := client.Fetch(context.Background(), "  "); err == nil {
		t.Fatal("expected error for empty identifier")
	}
}

func TestFetchRejectsEmptyDocument(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<BioSampleSet></BioSampleSet>`))
	}))
	defer server.Close()

	client := New(server.URL, "", server.Client(), nil)
	if _, err := client.Fetch(context.Background(), "SAMN1"); err == nil {
		t.Fatal("expected error for empty document")
	}
}
