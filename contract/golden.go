package contract

import (
	"context"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/jakewins/transactional-promises/callorder"
)

// RunWithGolden verifies a pattern against a contract file and compares the
// rendered report against a golden file.
// The golden file is stored in testdata/golden/{contract name}.golden
//
// To regenerate golden files, run:
//
//	go test ./... -update
//
// The run uses a fixed token generator so the report is deterministic and
// the golden file serves as the source of truth for expected report output.
func RunWithGolden(t *testing.T, path string, pattern callorder.Pattern) *callorder.Report {
	t.Helper()

	compiled, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load contract %s: %v", path, err)
	}

	report, err := compiled.Run(context.Background(), pattern,
		callorder.WithTokenGenerator(callorder.NewFixedTokenGenerator("golden-run")))
	if err != nil {
		t.Fatalf("run contract %s: %v", compiled.Doc.Name, err)
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, compiled.Doc.Name, []byte(RenderReport(compiled.Doc.Name, report)))

	return report
}
