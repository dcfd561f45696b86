// Package history persists one row per completed pipeline run in a local
// SQLite database. The table records input provenance and the counters a
// run produced so `fetchm history` can show what happened and when.
//
// Schema changes bump the version in schema.go; the database is a log, not
// an archive, so users delete it to adopt a new schema.
package history
