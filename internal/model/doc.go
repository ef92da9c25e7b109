// Package model defines the domain types and value objects for the
// workflowgen CLI.
//
// This package contains pure data structures with no external dependencies.
// Options, ResolvedPaths and Artifact are transient: they live for a single
// invocation and nothing is persisted besides the generated files themselves.
//
// The package also defines exit codes (ExitCode) and a custom error type
// (CLIError) that carries exit codes for proper OS process exit handling.
package model
