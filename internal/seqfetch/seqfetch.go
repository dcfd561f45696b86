package seqfetch

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"

	"fetchm/internal/config"
	"fetchm/internal/dataset"
	"fetchm/internal/fileutil"
	"fetchm/internal/logging"
)

// HTTPDoer describes the HTTP client used by the fetcher.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// accessionPattern matches assembly accessions such as GCA_000005845.2.
var accessionPattern = regexp.MustCompile(`^(GC[AF])_(\d{9})\.(\d+)$`)

// AssemblyURL derives the static file-tree location of an assembly's genomic
// FASTA from its accession and assembly name. The tree shards the 9-digit
// accession number into three directory levels of three digits each.
func AssemblyURL(baseURL, accession, assemblyName string) (string, error) {
	accession = strings.TrimSpace(accession)
	assemblyName = strings.TrimSpace(assemblyName)

	m := accessionPattern.FindStringSubmatch(accession)
	if m == nil {
		return "", fmt.Errorf("malformed assembly accession %q", accession)
	}
	if assemblyName == "" {
		return "", fmt.Errorf("assembly %s has no assembly name", accession)
	}

	digits := m[2]
	// Spaces occur in older assembly names; the file tree uses underscores.
	dirName := accession + "_" + strings.ReplaceAll(assemblyName, " ", "_")
	return fmt.Sprintf("%s/%s/%s/%s/%s/%s/%s_genomic.fna.gz",
		strings.TrimRight(baseURL, "/"),
		m[1], digits[0:3], digits[3:6], digits[6:9],
		dirName, dirName), nil
}

// Fetcher downloads and decompresses genomic sequences for kept records.
type Fetcher struct {
	baseURL string
	destDir string
	client  HTTPDoer
	logger  *slog.Logger
}

// NewFetcher builds a fetcher writing into destDir.
func NewFetcher(cfg *config.Config, destDir string, logger *slog.Logger) *Fetcher {
	timeout := 10 * time.Minute
	baseURL := ""
	if cfg != nil {
		if cfg.Download.TimeoutSeconds > 0 {
			timeout = time.Duration(cfg.Download.TimeoutSeconds) * time.Second
		}
		baseURL = cfg.Download.BaseURL
	}
	return New(baseURL, destDir, &http.Client{Timeout: timeout}, logger)
}

// New constructs a fetcher with an explicit HTTP client, primarily for tests.
func New(baseURL, destDir string, client HTTPDoer, logger *slog.Logger) *Fetcher {
	return &Fetcher{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		destDir: destDir,
		client:  client,
		logger:  logging.NewComponentLogger(logger, "seqfetch"),
	}
}

// Fetch downloads one record's genomic FASTA, decompresses it, and returns
// the written path. Existing files are left alone so interrupted runs can be
// resumed by rerunning.
func (f *Fetcher) Fetch(ctx context.Context, record dataset.Record) (string, error) {
	fetchURL, err := AssemblyURL(f.baseURL, record.Accession, record.AssemblyName)
	if err != nil {
		return "", err
	}

	destPath := filepath.Join(f.destDir, filepath.Base(strings.TrimSuffix(fetchURL, ".gz")))
	if _, err := os.Stat(destPath); err == nil {
		f.logger.Debug("sequence already present",
			logging.String("accession", record.Accession),
			logging.String(logging.FieldPath, destPath))
		return destPath, nil
	}

	if err := fileutil.EnsureDir(f.destDir); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fetchURL, nil)
	if err != nil {
		return "", fmt.Errorf("build download request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("download %s: %w", record.Accession, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download %s returned %d", record.Accession, resp.StatusCode)
	}

	gz, err := gzip.NewReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("decompress %s: %w", record.Accession, err)
	}
	defer gz.Close()

	tmpPath := destPath + ".tmp"
	out, err := os.Create(tmpPath)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", tmpPath, err)
	}

	if _, err := io.Copy(out, gz); err != nil {
		out.Close()
		os.Remove(tmpPath)
		return "", fmt.Errorf("write %s: %w", destPath, err)
	}
	if err := out.Close(); err != nil {
		os.Remove(tmpPath)
		return "", err
	}
	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("rename %s: %w", destPath, err)
	}

	return destPath, nil
}

// FetchAll downloads every record sequentially, logging and skipping rows
// that fail. It returns the number of sequences written and the number of
// failures.
func (f *Fetcher) FetchAll(ctx context.Context, records []dataset.Record) (int, int) {
	bar := progressbar.Default(int64(len(records)), "downloading sequences")
	defer bar.Close()

	downloaded := 0
	failed := 0
	for _, record := range records {
		if ctx.Err() != nil {
			break
		}
		if _, err := f.Fetch(ctx, record); err != nil {
			failed++
			f.logger.Warn("sequence download failed; continuing",
				logging.Int(logging.FieldRow, record.Row),
				logging.String("accession", record.Accession),
				logging.Error(err))
		} else {
			downloaded++
		}
		_ = bar.Add(1)
	}

	f.logger.Info("sequence download finished",
		logging.Int("downloaded", downloaded),
		logging.Int("failed", failed))

	return downloaded, failed
}
