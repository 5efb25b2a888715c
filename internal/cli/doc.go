// Package cli wires together the Cobra command tree for the contentcheck
// binary.
//
// It defines the root command and all subcommands (run, render, config,
// version), binds flags, loads configuration, drives the validation pipeline,
// and returns deterministic exit codes for CI gating.
package cli
