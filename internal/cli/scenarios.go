package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jakewins/transactional-promises/callorder"
	"github.com/jakewins/transactional-promises/contract"
)

// ScenarioChoice is one action/outcome assignment within a scenario.
type ScenarioChoice struct {
	Action  string `json:"action"`
	Outcome string `json:"outcome"`
}

// ScenariosResult holds the enumerated scenarios of a contract.
type ScenariosResult struct {
	Contract  string             `json:"contract"`
	Actions   int                `json:"actions"`
	Scenarios [][]ScenarioChoice `json:"scenarios"`
}

// NewScenariosCommand creates the scenarios command.
func NewScenariosCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scenarios <contract-file>",
		Short: "Enumerate the outcome scenarios of a contract",
		Long: `Enumerate every combination of action outcomes a contract implies.

A verification run executes the pattern once per scenario, so this
shows exactly which runs a contract will produce and in what order.

Examples:
  ordercheck scenarios contract.yaml
  ordercheck scenarios contract.yaml --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenarios(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runScenarios(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	compiled, err := contract.LoadFile(path)
	if err != nil {
		_ = formatter.Error("E_LOAD", err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to load contract", err)
	}

	perms := callorder.Permutations(compiled.Actions)
	formatter.VerboseLog("Contract declares %d action(s)", len(compiled.Actions))

	result := ScenariosResult{
		Contract:  compiled.Doc.Name,
		Actions:   len(compiled.Actions),
		Scenarios: make([][]ScenarioChoice, 0, len(perms)),
	}
	for _, perm := range perms {
		choices := make([]ScenarioChoice, 0, len(perm))
		for _, choice := range perm {
			choices = append(choices, ScenarioChoice{
				Action:  choice.Action.Name(),
				Outcome: choice.Outcome.Name(),
			})
		}
		result.Scenarios = append(result.Scenarios, choices)
	}

	if opts.Format == "json" {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(CLIResponse{Status: "ok", Data: result})
	}

	return outputScenariosText(cmd, result)
}

// outputScenariosText outputs enumerated scenarios as text.
func outputScenariosText(cmd *cobra.Command, result ScenariosResult) error {
	w := cmd.OutOrStdout()

	fmt.Fprintf(w, "Contract: %s\n", result.Contract)
	fmt.Fprintf(w, "Actions: %d\n", result.Actions)
	fmt.Fprintf(w, "Scenarios: %d\n", len(result.Scenarios))

	for i, choices := range result.Scenarios {
		parts := make([]string, 0, len(choices))
		for _, c := range choices {
			parts = append(parts, fmt.Sprintf("%s=%s", c.Action, c.Outcome))
		}
		if len(parts) == 0 {
			fmt.Fprintf(w, "  [%d] (no actions)\n", i)
			continue
		}
		fmt.Fprintf(w, "  [%d] %s\n", i, strings.Join(parts, " "))
	}

	return nil
}
