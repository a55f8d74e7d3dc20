package model

import (
	"fmt"
	"strings"
)

// Options is the configuration for a single lvenv run.
//
// It is built once by the CLI layer and then only read. The field set mirrors
// the flags accepted by the command; see UseSymlinks for the one derived value.
type Options struct {
	// EnvDir is the directory to create the environment in (positional argument).
	EnvDir string

	// Python is the interpreter used to run the venv module.
	// Empty means "discover python3 or python on PATH".
	Python string

	// SystemSitePackages gives the environment access to the system
	// site-packages directory.
	SystemSitePackages bool

	// Symlinks and Copies are mutually exclusive preferences for how the
	// interpreter is placed into the environment.
	Symlinks bool
	Copies   bool

	// Clear deletes the environment directory contents before creation.
	Clear bool

	// Upgrade is accepted for command-line compatibility but is never
	// forwarded to the environment builder.
	Upgrade bool

	// WithoutPip skips bootstrapping pip into the environment.
	WithoutPip bool

	// Prompt is an alternative prompt prefix. nil means none was given,
	// which is distinct from an explicitly empty prompt.
	Prompt *string

	// UpgradeDeps upgrades pip and setuptools to the latest release.
	UpgradeDeps bool
}

// UseSymlinks returns the symlink preference forwarded to the builder.
func (o *Options) UseSymlinks() bool {
	return o.Symlinks && !o.Copies
}

// WithPip reports whether pip should be bootstrapped.
func (o *Options) WithPip() bool {
	return !o.WithoutPip
}

// Validate checks the options for usage errors. It never touches the
// filesystem, so a failing Validate guarantees no side effect has happened.
func (o *Options) Validate() error {
	if strings.TrimSpace(o.EnvDir) == "" {
		return NewCLIError(ExitUsageError, "the following arguments are required: ENV_DIR")
	}
	if o.Symlinks && o.Copies {
		return NewCLIError(ExitUsageError, "argument --copies: not allowed with argument --symlinks")
	}
	return nil
}

// Result describes the outcome of a successful run.
// It exists only for output formatting and is never written to disk.
type Result struct {
	// EnvDir is the absolute path of the environment directory.
	EnvDir string `json:"envDir"`

	// Python is the interpreter that created the environment.
	Python string `json:"python"`

	// Prompt is the prompt prefix passed to the builder; null when none was given.
	Prompt *string `json:"prompt"`

	// Attempts is the number of creation calls made (1 or 2).
	Attempts int `json:"attempts"`

	// SymlinkFallback is true when the first attempt failed and the retry
	// with forced symlinks succeeded.
	SymlinkFallback bool `json:"symlinkFallback"`

	// Shims lists every sitecustomize.py written, in glob order.
	Shims []string `json:"shims"`

	// TemplateVersion and TemplateDigest identify the shim payload.
	TemplateVersion string `json:"templateVersion"`
	TemplateDigest  string `json:"templateDigest"`
}

// PromptString returns the prompt for display, or "-" when none is set.
func (r *Result) PromptString() string {
	if r.Prompt == nil {
		return "-"
	}
	return fmt.Sprintf("%q", *r.Prompt)
}
