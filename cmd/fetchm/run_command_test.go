package main

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

const testTable = "Assembly Accession\tAssembly Name\tOrganism Name\tAssembly BioSample Accession\tCheckM completeness\tCheckM contamination\n" +
	"GCA_000005845.2\tASM584v2\tEscherichia coli\tSAMN02604091\t99.8\t0.2\n" +
	"GCA_000006945.2\tASM694v2\tSalmonella enterica\tSAMN02604099\t45.0\t12.0\n"

const testRegistryDocument = `<?xml version="1.0" encoding="UTF-8"?>
<BioSampleSet>
  <BioSample accession="SAMN02604091">
    <Attributes>
      <Attribute attribute_name="collection date" harmonized_name="collection_date">2013-05-01</Attribute>
      <Attribute attribute_name="geographic location" harmonized_name="geo_loc_name">USA: California</Attribute>
      <Attribute attribute_name="specific host" harmonized_name="host">Homo sapiens</Attribute>
      <Attribute attribute_name="isolation source" harmonized_name="isolation_source">Blood</Attribute>
    </Attributes>
  </BioSample>
</BioSampleSet>`

func newTestRegistry(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(testRegistryDocument))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestRunCommandEndToEnd(t *testing.T) {
	env := setupCLITestEnv(t)
	server := newTestRegistry(t)
	env.cfg.Registry.BaseURL = server.URL
	env.writeConfig(t)

	input := filepath.Join(env.baseDir, "assemblies.tsv")
	if err := os.WriteFile(input, []byte(testTable), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}

	out, _, err := runCLI(t, []string{"run", "--input", input}, env.configPath)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	requireContains(t, out, "complete in")
	requireContains(t, out, "Output written to")

	if _, err := os.Stat(filepath.Join(env.cfg.Paths.OutputDir, "tables", "metadata.tsv")); err != nil {
		t.Fatalf("metadata table missing: %v", err)
	}

	// The run lands in history.
	out, _, err = runCLI(t, []string{"history"}, env.configPath)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	requireContains(t, out, "assemblies.tsv")

	// And the lookup landed in the persistent cache.
	out, _, err = runCLI(t, []string{"cache", "count"}, env.configPath)
	if err != nil {
		t.Fatalf("cache count: %v", err)
	}
	requireContains(t, out, "1")
}

func TestRunCommandRequiresInput(t *testing.T) {
	env := setupCLITestEnv(t)
	if _, _, err := runCLI(t, []string{"run"}, env.configPath); err == nil {
		t.Fatal("run without --input should fail")
	}
}

func TestRunCommandThresholdFlagsOverrideConfig(t *testing.T) {
	env := setupCLITestEnv(t)
	server := newTestRegistry(t)
	env.cfg.Registry.BaseURL = server.URL
	env.writeConfig(t)

	input := filepath.Join(env.baseDir, "assemblies.tsv")
	if err := os.WriteFile(input, []byte(testTable), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}

	// Thresholds relaxed: the contaminated Salmonella row passes too.
	out, _, err := runCLI(t, []string{
		"run", "--input", input, "--min-completeness", "0", "--max-contamination", "100",
	}, env.configPath)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	requireContains(t, out, "Output written to")

	metadata, err := os.ReadFile(filepath.Join(env.cfg.Paths.OutputDir, "tables", "metadata.tsv"))
	if err != nil {
		t.Fatalf("read metadata: %v", err)
	}
	requireContains(t, string(metadata), "GCA_000006945.2")
}

func TestRunCommandRejectsInvalidThreshold(t *testing.T) {
	env := setupCLITestEnv(t)
	input := filepath.Join(env.baseDir, "assemblies.tsv")
	if err := os.WriteFile(input, []byte(testTable), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}

	if _, _, err := runCLI(t, []string{"run", "--input", input, "--min-completeness", "150"}, env.configPath); err == nil {
		t.Fatal("out-of-range threshold should fail validation")
	}
}
