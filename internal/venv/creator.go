package venv

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	shellquote "github.com/kballard/go-shellquote"

	"github.com/shinji-kodama/lvenv/internal/logging"
	"github.com/shinji-kodama/lvenv/internal/model"
)

// CreateRequest holds the parameters forwarded to the environment builder.
// It corresponds one-to-one to the keyword arguments of venv.create.
type CreateRequest struct {
	Dir                string
	SystemSitePackages bool
	Clear              bool
	Symlinks           bool
	WithPip            bool
	// Prompt is nil when no prompt was given.
	Prompt      *string
	UpgradeDeps bool
}

// RequestFromOptions builds the first-attempt request from the run options.
// Options.Upgrade is intentionally not part of the request.
func RequestFromOptions(opts *model.Options) CreateRequest {
	return CreateRequest{
		Dir:                opts.EnvDir,
		SystemSitePackages: opts.SystemSitePackages,
		Clear:              opts.Clear,
		Symlinks:           opts.UseSymlinks(),
		WithPip:            opts.WithPip(),
		Prompt:             opts.Prompt,
		UpgradeDeps:        opts.UpgradeDeps,
	}
}

// Args returns the `-m venv` argument list for the request.
//
// Exactly one of --symlinks/--copies is always passed because the venv
// command line defaults to symlinks on POSIX, while the requested default is
// copies. The directory comes last, after "--", so a name starting with a
// dash is not mistaken for an option.
func (r CreateRequest) Args() []string {
	args := []string{"-m", "venv"}
	if r.SystemSitePackages {
		args = append(args, "--system-site-packages")
	}
	if r.Symlinks {
		args = append(args, "--symlinks")
	} else {
		args = append(args, "--copies")
	}
	if r.Clear {
		args = append(args, "--clear")
	}
	if !r.WithPip {
		args = append(args, "--without-pip")
	}
	if r.Prompt != nil {
		args = append(args, "--prompt="+*r.Prompt)
	}
	if r.UpgradeDeps {
		args = append(args, "--upgrade-deps")
	}
	return append(args, "--", r.Dir)
}

// Creator creates an environment for a request. Implementations return an
// error for any failure; the caller decides whether to retry.
type Creator interface {
	Create(ctx context.Context, req CreateRequest) error
}

// PythonCreator runs the venv module of a specific interpreter.
type PythonCreator struct {
	// Python is the interpreter path or name, as resolved by FindPython.
	Python string
}

// NewPythonCreator returns a Creator backed by the given interpreter.
func NewPythonCreator(python string) *PythonCreator {
	return &PythonCreator{Python: python}
}

// Create runs `<python> -m venv ...` and waits for it to finish.
func (c *PythonCreator) Create(ctx context.Context, req CreateRequest) error {
	args := req.Args()
	cmdline := shellquote.Join(append([]string{c.Python}, args...)...)
	logging.Debug("running interpreter", "cmd", cmdline)

	// #nosec G204 -- the interpreter is chosen by the user running the tool
	cmd := exec.CommandContext(ctx, c.Python, args...)

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		message := fmt.Sprintf("`%s` failed", cmdline)
		if stderrStr := strings.TrimSpace(stderr.String()); stderrStr != "" {
			message = fmt.Sprintf("%s: %s", message, stderrStr)
		}
		return fmt.Errorf("%s: %w", message, err)
	}

	if out := strings.TrimSpace(stdout.String()); out != "" {
		logging.Debug("interpreter output", "stdout", out)
	}
	return nil
}

// defaultInterpreters is the PATH search order when --python is not given.
var defaultInterpreters = []string{"python3", "python"}

// FindPython resolves the interpreter to use. An explicit value is looked up
// as given (a bare name on PATH, or a path); otherwise the first of
// python3 and python found on PATH wins.
func FindPython(explicit string) (string, error) {
	candidates := defaultInterpreters
	if explicit != "" {
		candidates = []string{explicit}
	}

	for _, name := range candidates {
		if path, err := exec.LookPath(name); err == nil {
			return path, nil
		}
	}

	return "", model.NewCLIError(
		model.ExitPythonNotFound,
		fmt.Sprintf("python interpreter not found (searched: %s)", strings.Join(candidates, ", ")),
	)
}
