// Package logging builds the slog loggers used across fetchm.
//
// It provides a console handler with a component-prefixed single-line format,
// a JSON handler for machine consumption, typed attribute helpers, and the
// standardized field keys shared by the pipeline, cache, and registry client.
package logging
