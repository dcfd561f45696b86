package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeRegistry()
	c.normalizeDownload()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		c.Paths.OutputDir = defaultOutputDir
	}
	if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.HistoryDB) == "" {
		c.Paths.HistoryDB = defaultHistoryDB
	}
	if c.Paths.HistoryDB, err = expandPath(c.Paths.HistoryDB); err != nil {
		return fmt.Errorf("paths.history_db: %w", err)
	}
	// Cache path stays empty unless configured; an empty path keeps the
	// lookup cache in memory for the lifetime of the run.
	if strings.TrimSpace(c.Paths.CachePath) != "" {
		if c.Paths.CachePath, err = expandPath(c.Paths.CachePath); err != nil {
			return fmt.Errorf("paths.cache_path: %w", err)
		}
	} else {
		c.Paths.CachePath = ""
	}
	return nil
}

func (c *Config) normalizeRegistry() {
	c.Registry.BaseURL = strings.TrimRight(strings.TrimSpace(c.Registry.BaseURL), "/")
	if c.Registry.BaseURL == "" {
		c.Registry.BaseURL = defaultRegistryBaseURL
	}
	c.Registry.APIKey = strings.TrimSpace(c.Registry.APIKey)
	if c.Registry.APIKey == "" {
		if value, ok := os.LookupEnv("NCBI_API_KEY"); ok {
			c.Registry.APIKey = strings.TrimSpace(value)
		}
	}
	if c.Registry.TimeoutSeconds <= 0 {
		c.Registry.TimeoutSeconds = defaultRegistryTimeout
	}
	if c.Registry.RequestDelayMS < 0 {
		c.Registry.RequestDelayMS = defaultRequestDelayMS
	}
}

func (c *Config) normalizeDownload() {
	c.Download.BaseURL = strings.TrimRight(strings.TrimSpace(c.Download.BaseURL), "/")
	if c.Download.BaseURL == "" {
		c.Download.BaseURL = defaultDownloadBaseURL
	}
	if c.Download.TimeoutSeconds <= 0 {
		c.Download.TimeoutSeconds = defaultDownloadTimeout
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
