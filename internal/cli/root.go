// Package cli implements the cobra-based command line for lvenv.
//
// lvenv is a single command without subcommands. This file defines the root
// command, its flags and the error-to-exit-code handling; create.go holds the
// orchestration of a run and output.go the result formatting.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/lvenv/internal/logging"
	"github.com/shinji-kodama/lvenv/internal/model"
)

// Global flag variables. They are bound to persistent flags on the root
// command so the error handler in Execute can see them too.
var (
	// jsonOutput switches the run summary and error output to JSON.
	jsonOutput bool

	// verbose enables debug logging on stderr.
	verbose bool
)

// version, commit, and date are set at build time via ldflags.
// They are injected from the main package to display version information.
var (
	// Version is the semantic version of the binary (e.g., "1.0.0").
	Version = "dev"

	// Commit is the Git commit hash the binary was built from.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// NewRootCommand creates and configures the lvenv command.
func NewRootCommand() *cobra.Command {
	flags := &createFlags{}

	rootCmd := &cobra.Command{
		Use:   "lvenv ENV_DIR",
		Short: "Create a Python virtual environment that logs every run",
		Long: `lvenv creates a virtual Python environment in ENV_DIR and installs a
sitecustomize.py into its site-packages. Every script later run with the
environment's interpreter logs its path, arguments, git commit, installed
packages and source, plus all root-logger messages, to a file under ./.log.

Examples:
  lvenv .venv
  lvenv --without-pip --prompt demo /tmp/demo-env
  lvenv --config lvenv.toml .venv`,

		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.ExactArgs(1)(cmd, args); err != nil {
				return model.WrapCLIError(model.ExitUsageError, "expected exactly one ENV_DIR argument", err)
			}
			return nil
		},

		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			logging.Setup(verbose, jsonOutput, cmd.ErrOrStderr())
			logging.SetUserOutput(cmd.OutOrStdout(), cmd.ErrOrStderr())
			return nil
		},

		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreate(cmd, args[0], flags)
		},

		// Errors and usage are printed by Execute so that usage only
		// accompanies usage errors and JSON mode stays machine-readable.
		SilenceUsage:  true,
		SilenceErrors: true,

		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),
	}

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return model.NewCLIError(model.ExitUsageError, err.Error())
	})

	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	flags.register(rootCmd)

	return rootCmd
}

// Execute runs the root command and exits the process with the code that
// belongs to the returned error.
func Execute(rootCmd *cobra.Command) {
	os.Exit(int(run(rootCmd, os.Stderr)))
}

// run executes rootCmd and reports any error on stderr. Usage errors are
// followed by the command usage unless JSON output was requested.
func run(rootCmd *cobra.Command, stderr io.Writer) model.ExitCode {
	err := rootCmd.Execute()
	if err == nil {
		return model.ExitSuccess
	}

	// Flag and argument errors are returned before PersistentPreRunE runs.
	logging.SetUserOutput(rootCmd.OutOrStdout(), stderr)

	code := model.ExitCodeOf(err)
	var cliErr *model.CLIError
	if errors.As(err, &cliErr) {
		printError(stderr, cliErr.Message, cliErr.Err)
	} else {
		printError(stderr, err.Error(), nil)
	}
	if code == model.ExitUsageError && !jsonOutput {
		fmt.Fprint(stderr, rootCmd.UsageString())
	}
	return code
}

// printError outputs an error message in the appropriate format
// (JSON or text) based on the --json global flag. JSON goes to w; text goes
// through the user error stream, which run points at the same writer.
func printError(w io.Writer, message string, underlying error) {
	if jsonOutput {
		errObj := map[string]interface{}{
			"error": map[string]interface{}{
				"message": message,
			},
		}
		if underlying != nil {
			if errMap, ok := errObj["error"].(map[string]interface{}); ok {
				errMap["detail"] = underlying.Error()
			}
		}
		data, _ := json.MarshalIndent(errObj, "", "  ")
		fmt.Fprintln(w, string(data))
		return
	}

	if underlying != nil {
		logging.UserError("Error: %s: %v", message, underlying)
	} else {
		logging.UserError("Error: %s", message)
	}
}

// IsJSONOutput returns whether the --json flag is set.
func IsJSONOutput() bool {
	return jsonOutput
}
