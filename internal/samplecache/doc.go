// Package samplecache holds the flat lookup cache mapping sample identifiers
// to their enrichment tuples. Both successful and failed lookups are cached,
// nothing is evicted within a run, and persistence to a JSON file is
// optional.
package samplecache
