// Package cmd contains the command-line interface (CLI) definitions
// and execution logic for Glance. It provides the root command that
// wires the extensible flag registry, the in-memory image store, the
// Prometheus metrics recorder, and the HTTP API server together, and
// serves as the primary entry point for the Glance service.
package cmd
