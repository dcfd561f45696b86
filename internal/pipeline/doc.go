// Package pipeline runs the end-to-end enrichment flow: load the assembly
// table, apply the quality filter, resolve each sample's registry metadata
// through the lookup cache, normalize the tuples, and write the summary
// tables, charts, and HTML report. A flock on the output directory keeps
// concurrent runs from interleaving their writes, and each completed run is
// appended to the history database.
package pipeline
