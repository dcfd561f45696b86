// Package report writes every run artifact: delimited summary tables, PNG
// bar charts, and the single-page HTML chart report, all under the fixed
// tables/ and figures/ layout of the output directory.
package report
