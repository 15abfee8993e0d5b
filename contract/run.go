package contract

import (
	"context"
	"fmt"
	"strings"

	"github.com/jakewins/transactional-promises/callorder"
)

// LoadFile loads, validates, and compiles a contract file in one step.
func LoadFile(path string) (*Compiled, error) {
	doc, err := Load(path)
	if err != nil {
		return nil, err
	}
	compiled, err := doc.Compile()
	if err != nil {
		return nil, fmt.Errorf("failed to compile contract: %w", err)
	}
	return compiled, nil
}

// Run verifies a pattern against the compiled contract.
// Runner options (logger, token generator) are passed through.
func (c *Compiled) Run(ctx context.Context, pattern callorder.Pattern, opts ...callorder.RunnerOption) (*callorder.Report, error) {
	return callorder.NewRunner(opts...).Verify(ctx, c.Actions, c.Valid, pattern)
}

// RunFile loads a contract file and verifies a pattern against it.
func RunFile(ctx context.Context, path string, pattern callorder.Pattern, opts ...callorder.RunnerOption) (*callorder.Report, error) {
	compiled, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	return compiled.Run(ctx, pattern, opts...)
}

// RenderReport renders a verification report as stable, human-readable
// text. The run token is deliberately excluded so rendered reports are
// byte-identical across runs and usable as golden fixtures.
func RenderReport(name string, report *callorder.Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "contract: %s\n", name)
	fmt.Fprintf(&b, "scenarios: %d\n", report.Scenarios)
	if report.Passed {
		b.WriteString("result: pass\n")
		return b.String()
	}
	fmt.Fprintf(&b, "result: fail (%d of %d scenarios)\n", len(report.Failures), report.Scenarios)
	b.WriteString(report.Description())
	b.WriteString("\n")
	return b.String()
}
