// Package venv provisions Python virtual environments for the lvenv CLI.
//
// The environment itself is built by the host interpreter's venv module,
// invoked as a child process (`python -m venv ...`). This package only
// translates options into that call and applies the fallback policy:
// a failed first attempt is retried exactly once with symlinks forced on.
//
// The Creator interface is the seam between the policy (Provisioner) and the
// external capability (PythonCreator), so the policy can be tested without
// an interpreter.
package venv
