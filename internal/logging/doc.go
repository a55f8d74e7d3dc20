// Package logging provides logging utilities for lvenv.
//
// This package provides two categories of output:
//   - Debug logging: structured logs for diagnosing a run (via slog)
//   - User output: short status lines for the person running the command
//
// # Debug Logging
//
// Debug logs are written using slog and controlled by the --verbose and
// --json flags:
//
//	logging.Debug("running interpreter", "cmd", cmdline)
//	logging.Debug("first attempt failed, retrying with symlinks", "err", err)
//
// # User Output
//
//	logging.UserInfo("Creating environment in %s", dir)
//	logging.UserSuccess("Installed %d shim(s)", n)
//
// Output destinations:
//   - UserInfo, UserSuccess: stdout
//   - UserWarning, UserError: stderr (UserError carries the final "Error:" line)
//
// Status indicators (ℹ ✓ ⚠ ✗) are only prepended when the destination
// is a terminal, so redirected output stays plain.
package logging
