// Package seqfetch retrieves genomic FASTA files from the registry's static
// file tree. It is a plain fetch-and-decompress utility: one request per
// assembly, no retries, no integrity checking, failures logged and skipped.
package seqfetch
