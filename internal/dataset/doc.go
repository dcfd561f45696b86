// Package dataset loads the tab-separated genome-assembly table and applies
// the assembly-quality filter. Column positions are resolved by header name
// so the loader tolerates the label drift between NCBI datasets export
// versions; a record's identity is its row position in the original table.
package dataset
