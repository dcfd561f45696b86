// Package config loads, normalizes, and validates fetchm configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// NCBI_API_KEY. The Config type centralizes every knob the CLI needs, so
// output directories, registry pacing, and quality thresholds are discovered
// in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
