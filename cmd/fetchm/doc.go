// Package main hosts the fetchm CLI entrypoint and command graph.
//
// The Cobra-based command tree covers the enrichment pipeline itself plus
// maintenance surfaces around it: inspecting the sample lookup cache,
// reviewing run history, and configuration scaffolding. It centralizes
// configuration resolution and logger setup so subcommands can focus on
// user experience instead of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
