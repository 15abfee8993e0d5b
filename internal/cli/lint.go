package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jakewins/transactional-promises/contract"
)

// FileResult holds the lint result for a single contract file.
type FileResult struct {
	Path     string `json:"path"`
	Contract string `json:"contract,omitempty"`
	Pass     bool   `json:"pass"`
	Error    string `json:"error,omitempty"`
}

// LintResult holds the overall lint result.
type LintResult struct {
	Files  []FileResult `json:"files"`
	Passed int          `json:"passed"`
	Failed int          `json:"failed"`
	Total  int          `json:"total"`
}

// NewLintCommand creates the lint command.
func NewLintCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lint <path>...",
		Short: "Validate contract files",
		Long: `Validate and compile contract files without running a pattern.

Each argument may be a contract file or a directory; directories are
walked recursively for .yaml and .yml files.

Exit codes:
  0 - All contracts valid
  1 - One or more contracts invalid
  2 - Command error (path not found, no contract files, etc.)

Examples:
  ordercheck lint ./contracts
  ordercheck lint contract.yaml --format json`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(rootOpts, args, cmd)
		},
	}

	return cmd
}

func runLint(opts *RootOptions, paths []string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	files, err := findContractFiles(paths)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to find contract files", err)
	}
	if len(files) == 0 {
		return NewExitError(ExitCommandError, "no contract files found")
	}

	formatter.VerboseLog("Found %d contract file(s)", len(files))

	result := LintResult{
		Files: make([]FileResult, 0, len(files)),
		Total: len(files),
	}

	for _, file := range files {
		result.Files = append(result.Files, lintFile(file, formatter))
	}
	for _, f := range result.Files {
		if f.Pass {
			result.Passed++
		} else {
			result.Failed++
		}
	}

	if opts.Format == "json" {
		return outputLintJSON(cmd, result)
	}
	return outputLintText(cmd, result)
}

// findContractFiles resolves the argument paths to a list of contract files.
// A file argument is taken as-is; a directory is walked for .yaml/.yml files.
func findContractFiles(paths []string) ([]string, error) {
	var files []string

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("path not found: %s", path)
		}

		if !info.IsDir() {
			files = append(files, path)
			continue
		}

		err = filepath.Walk(path, func(p string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() {
				return nil
			}
			ext := filepath.Ext(p)
			if ext != ".yaml" && ext != ".yml" {
				return nil
			}
			files = append(files, p)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return files, nil
}

// lintFile loads and compiles a single contract file.
func lintFile(path string, formatter *OutputFormatter) FileResult {
	w := formatter.Writer

	compiled, err := contract.LoadFile(path)
	if err != nil {
		if formatter.Format != "json" {
			fmt.Fprintf(w, "✗ %s\n", filepath.Base(path))
			fmt.Fprintf(w, "  %v\n", err)
		}
		return FileResult{Path: path, Pass: false, Error: err.Error()}
	}

	if formatter.Format != "json" {
		fmt.Fprintf(w, "✓ %s\n", compiled.Doc.Name)
	}
	return FileResult{Path: path, Contract: compiled.Doc.Name, Pass: true}
}

// outputLintJSON outputs the lint result as JSON.
func outputLintJSON(cmd *cobra.Command, result LintResult) error {
	status := "ok"
	if result.Failed > 0 {
		status = "error"
	}

	response := CLIResponse{
		Status: status,
		Data:   result,
	}
	if result.Failed > 0 {
		response.Error = &CLIError{
			Code:    "E_LINT_FAILED",
			Message: fmt.Sprintf("%d contract(s) invalid", result.Failed),
		}
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(response); err != nil {
		return err
	}

	if result.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d contract(s) invalid", result.Failed))
	}
	return nil
}

// outputLintText outputs the lint result as text.
func outputLintText(cmd *cobra.Command, result LintResult) error {
	w := cmd.OutOrStdout()

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Lint Summary: %d passed, %d failed, %d total\n", result.Passed, result.Failed, result.Total)

	if result.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d contract(s) invalid", result.Failed))
	}

	fmt.Fprintln(w, "✓ All contracts valid")
	return nil
}
