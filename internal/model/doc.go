// Package model defines the domain types and value objects for the
// lvenv CLI.
//
// This package contains pure data structures with no external dependencies.
// Options is the immutable configuration produced once from the command line
// (and an optional defaults file), and Result describes what a run produced.
// Neither is persisted: the only durable artifact of a run is the environment
// directory tree itself.
//
// The package also defines exit codes (ExitCode) and a custom error type
// (CLIError) that carries exit codes for proper OS process exit handling.
package model
