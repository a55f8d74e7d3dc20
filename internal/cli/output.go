package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/shinji-kodama/lvenv/internal/logging"
	"github.com/shinji-kodama/lvenv/internal/model"
)

// printCreateResult outputs the run summary in text or JSON format.
func printCreateResult(w io.Writer, result *model.Result) error {
	if IsJSONOutput() {
		return printCreateResultJSON(w, result)
	}
	printCreateResultText(w, result)
	return nil
}

// printCreateResultJSON writes the result as an indented JSON object.
func printCreateResultJSON(w io.Writer, result *model.Result) error {
	if result.Shims == nil {
		result.Shims = []string{}
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "failed to encode result", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// printCreateResultText writes a success line followed by a summary table.
func printCreateResultText(w io.Writer, result *model.Result) {
	logging.UserSuccess("Created virtual environment %s", result.EnvDir)
	fmt.Fprintln(w, renderSummary(result))
}

// renderSummary renders the result as a two-column key/value table.
func renderSummary(result *model.Result) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Field", "Value"})

	attempts := strconv.Itoa(result.Attempts)
	if result.SymlinkFallback {
		attempts += " (symlink fallback)"
	}

	tw.AppendRow(table.Row{"Environment", result.EnvDir})
	tw.AppendRow(table.Row{"Python", result.Python})
	tw.AppendRow(table.Row{"Prompt", result.PromptString()})
	tw.AppendRow(table.Row{"Attempts", attempts})
	if len(result.Shims) == 0 {
		tw.AppendRow(table.Row{"Shim", "-"})
	}
	for _, s := range result.Shims {
		tw.AppendRow(table.Row{"Shim", s})
	}
	tw.AppendRow(table.Row{"Template", fmt.Sprintf("v%s sha256:%.12s", result.TemplateVersion, result.TemplateDigest)})

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		{Number: 2, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}
