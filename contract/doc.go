// Package contract loads declarative call-ordering contracts.
//
// A contract document names the actions a pattern under test may invoke,
// the possible outcomes of each action, and the whitelist of valid call
// sequences. The pattern itself is Go code supplied by the consumer; the
// document carries everything else, so fixtures can be reviewed and linted
// without reading test code.
//
// # Document Format
//
// Contracts are defined in YAML files with the following structure:
//
//	name: commit_or_rollback
//	description: "Commit only after begin succeeds"
//	actions:
//	  - name: begin
//	    outcomes:
//	      - name: ok
//	        effect: returns
//	        value: 1
//	      - name: refused
//	        effect: fails
//	        error: "begin refused"
//	  - name: commit
//	    outcomes:
//	      - name: ok
//	        effect: returns
//	valid_sequences:
//	  - steps:
//	      - action: begin
//	        outcomes: [ok]
//	      - action: commit
//	  - steps:
//	      - action: begin
//	        outcomes: [refused]
//
// # Outcome Effects
//
// The following effects are supported:
//
//   - returns: the outcome produces value as a plain result
//   - fails: the outcome produces an error with the given message
//   - resolves: the outcome produces a deferred completion settled with value
//   - rejects: the outcome produces a deferred completion settled with an error
//
// A step with no outcomes list accepts any outcome of its action. An empty
// steps list declares the empty sequence as valid.
//
// # Usage
//
// Load and run a contract against a pattern:
//
//	compiled, err := contract.LoadFile("testdata/contracts/commit.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	report, err := compiled.Run(ctx, pattern)
//
// In tests, RunWithGolden compares the rendered report against a golden
// file under testdata/golden.
package contract
