package config

import (
	"errors"
	"fmt"
	"net/url"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateRegistry(); err != nil {
		return err
	}
	if err := c.validateQuality(); err != nil {
		return err
	}
	if err := c.validateDownload(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateRegistry() error {
	if _, err := url.ParseRequestURI(c.Registry.BaseURL); err != nil {
		return fmt.Errorf("registry.base_url is not a valid URL: %w", err)
	}
	if c.Registry.RequestDelayMS > 60_000 {
		return errors.New("registry.request_delay_ms must be at most 60000")
	}
	return nil
}

func (c *Config) validateQuality() error {
	if c.Quality.MinCompleteness < 0 || c.Quality.MinCompleteness > 100 {
		return errors.New("quality.min_completeness must be between 0 and 100")
	}
	if c.Quality.MaxContamination < 0 || c.Quality.MaxContamination > 100 {
		return errors.New("quality.max_contamination must be between 0 and 100")
	}
	return nil
}

func (c *Config) validateDownload() error {
	if !c.Download.Enabled {
		return nil
	}
	if _, err := url.ParseRequestURI(c.Download.BaseURL); err != nil {
		return fmt.Errorf("download.base_url is not a valid URL: %w", err)
	}
	return nil
}
