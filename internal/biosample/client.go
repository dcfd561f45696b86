package biosample

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"fetchm/internal/config"
	"fetchm/internal/logging"
)

// HTTPDoer describes the HTTP client used by the registry client.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client looks up per-sample metadata in the remote sample registry.
type Client struct {
	baseURL string
	apiKey  string
	client  HTTPDoer
	logger  *slog.Logger
}

// NewClient builds a registry client from configuration.
func NewClient(cfg *config.Config, logger *slog.Logger) *Client {
	timeout := 30 * time.Second
	baseURL := ""
	apiKey := ""
	if cfg != nil {
		if cfg.Registry.TimeoutSeconds > 0 {
			timeout = time.Duration(cfg.Registry.TimeoutSeconds) * time.Second
		}
		baseURL = cfg.Registry.BaseURL
		apiKey = cfg.Registry.APIKey
	}
	return New(baseURL, apiKey, &http.Client{Timeout: timeout}, logger)
}

// New constructs a registry client with an explicit HTTP client, primarily
// for tests.
func New(baseURL, apiKey string, client HTTPDoer, logger *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		apiKey:  strings.TrimSpace(apiKey),
		client:  client,
		logger:  logging.NewComponentLogger(logger, "registry"),
	}
}

// Fetch retrieves the enrichment tuple for the given sample identifier. The
// registry answers with a hierarchical XML document; only the four metadata
// attributes are extracted from it.
func (c *Client) Fetch(ctx context.Context, sampleID string) (Enrichment, error) {
	sampleID = strings.TrimSpace(sampleID)
	if sampleID == "" {
		return Enrichment{}, fmt.Errorf("sample identifier is empty")
	}

	query := url.Values{}
	query.Set("db", "biosample")
	query.Set("id", sampleID)
	query.Set("retmode", "xml")
	if c.apiKey != "" {
		query.Set("api_key", c.apiKey)
	}
	lookupURL := fmt.Sprintf("%s/efetch.fcgi?%s", c.baseURL, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, lookupURL, nil)
	if err != nil {
		return Enrichment{}, fmt.Errorf("build registry request: %w", err)
	}
	req.Header.Set("Accept", "application/xml")

	resp, err := c.client.Do(req)
	if err != nil {
		return Enrichment{}, fmt.Errorf("fetch sample %s: %w", sampleID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return Enrichment{}, fmt.Errorf("registry returned %d for sample %s: %s",
			resp.StatusCode, sampleID, strings.TrimSpace(string(body)))
	}

	enrichment, err := decodeDocument(resp.Body, sampleID)
	if err != nil {
		return Enrichment{}, err
	}

	c.logger.Debug("sample lookup complete",
		logging.String(logging.FieldSampleID, sampleID),
		logging.Bool("has_date", enrichment.CollectionDate != ""),
		logging.Bool("has_location", enrichment.GeoLocation != ""),
		logging.Bool("has_host", enrichment.Host != ""),
		logging.Bool("has_source", enrichment.IsolationSource != ""))

	return enrichment, nil
}
