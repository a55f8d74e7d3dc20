package cli

// create.go implements a single lvenv run.
//
// Orchestration steps:
//  1. Build options from flags and the optional --config file
//  2. Validate them (usage errors stop here, before any side effect)
//  3. Resolve the interpreter
//  4. Provision the environment (one retry with symlinks on failure)
//  5. Install sitecustomize.py into every site-packages directory
//  6. Print the summary (text or JSON)

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/lvenv/internal/config"
	"github.com/shinji-kodama/lvenv/internal/logging"
	"github.com/shinji-kodama/lvenv/internal/model"
	"github.com/shinji-kodama/lvenv/internal/shim"
	"github.com/shinji-kodama/lvenv/internal/venv"
)

// createFlags holds the flag values of the root command.
type createFlags struct {
	opts       model.Options
	prompt     string // --prompt, copied into opts.Prompt only when given
	configPath string // --config
}

// register binds the flags to cmd.
func (f *createFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.BoolVar(&f.opts.SystemSitePackages, "system-site-packages", false,
		"Give the virtual environment access to the system site-packages dir")
	fl.BoolVar(&f.opts.Symlinks, "symlinks", false,
		"Try to use symlinks rather than copies, when symlinks are not the default for the platform")
	fl.BoolVar(&f.opts.Copies, "copies", false,
		"Try to use copies rather than symlinks, even when symlinks are the default for the platform")
	fl.BoolVar(&f.opts.Clear, "clear", false,
		"Delete the contents of the environment directory if it already exists, before environment creation")
	fl.BoolVar(&f.opts.Upgrade, "upgrade", false,
		"Upgrade the environment directory to use this version of Python (accepted, has no effect)")
	fl.BoolVar(&f.opts.WithoutPip, "without-pip", false,
		"Skip installing or upgrading pip in the virtual environment")
	fl.StringVar(&f.prompt, "prompt", "",
		"Alternative prompt prefix for this environment")
	fl.BoolVar(&f.opts.UpgradeDeps, "upgrade-deps", false,
		"Upgrade core dependencies (pip, setuptools) to the latest version in PyPI")
	fl.StringVar(&f.opts.Python, "python", "",
		"Python interpreter used to create the environment (default: python3 or python on PATH)")
	fl.StringVar(&f.configPath, "config", "",
		"Read default option values from a .toml, .yaml or .json(c) file")
}

// Seams for tests: interpreter discovery and the environment builder.
var (
	findPython = venv.FindPython
	newCreator = func(python string) venv.Creator { return venv.NewPythonCreator(python) }
)

// buildOptions merges command-line flags with the --config file and
// validates the result.
func buildOptions(cmd *cobra.Command, envDir string, flags *createFlags) (*model.Options, error) {
	opts := flags.opts
	opts.EnvDir = envDir

	changed := func(name string) bool { return cmd.Flags().Changed(name) }
	if changed("prompt") {
		prompt := flags.prompt
		opts.Prompt = &prompt
	}

	if flags.configPath != "" {
		file, err := config.Load(flags.configPath)
		if err != nil {
			return nil, err
		}
		file.Apply(&opts, changed)
		logging.Debug("applied config file", "path", flags.configPath)
	}

	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &opts, nil
}

// runCreate is the main orchestration function for a run.
func runCreate(cmd *cobra.Command, envDir string, flags *createFlags) error {
	opts, err := buildOptions(cmd, envDir, flags)
	if err != nil {
		return err
	}

	python, err := findPython(opts.Python)
	if err != nil {
		return err
	}
	logging.Debug("using interpreter", "python", python)

	absDir, err := filepath.Abs(opts.EnvDir)
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "failed to resolve environment directory", err)
	}

	if !IsJSONOutput() {
		logging.UserInfo("Creating virtual environment in %s", absDir)
	}

	outcome, err := venv.NewProvisioner(newCreator(python)).Provision(cmd.Context(), opts)
	if err != nil {
		return err
	}

	shims, err := shim.Install(opts.EnvDir)
	if err != nil {
		return err
	}
	if len(shims) == 0 && !IsJSONOutput() {
		logging.UserWarning("No lib/python*/site-packages directory found in %s; no shim installed", absDir)
	}

	result := &model.Result{
		EnvDir:          absDir,
		Python:          python,
		Prompt:          opts.Prompt,
		Attempts:        outcome.Attempts,
		SymlinkFallback: outcome.SymlinkFallback,
		Shims:           shims,
		TemplateVersion: shim.Version,
		TemplateDigest:  shim.Digest(),
	}
	return printCreateResult(cmd.OutOrStdout(), result)
}
