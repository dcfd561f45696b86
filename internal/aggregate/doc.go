// Package aggregate produces the deterministic tallies behind every summary
// table and chart. Buckets are ordered by count descending then key
// ascending so repeated runs over the same data emit byte-identical
// artifacts.
package aggregate
