// Package harness runs end-to-end compilation scenarios.
//
// A scenario compiles a list of CCG derivations under one set of compile
// flags and checks the resulting DRSs. Each run uses a fresh compiler, an
// in-memory store and sequential IDs, so the same scenario always records
// the same log and renders the same golden output.
//
// # Scenario Format
//
// Scenarios are YAML files:
//
//	name: copula
//	description: "Predicative adjectives attach to the subject"
//	options: [remove_unary_props]
//	sentences:
//	  - id: happy
//	    text: A man is happy.
//	    derivation: "(<T S[dcl] 0 2> ...)"
//	    expect:
//	      drs: "<{x},{man(x),happy(x)}>"
//	  - id: broken
//	    derivation: "(<T S[dcl] 0 2> ...)"
//	    expect:
//	      error: UnknownRule
//	assertions:
//	  - type: has_relation
//	    sentence: happy
//	    relation: man
//
// Unknown fields are rejected so typos fail loudly.
//
// # Assertion Types
//
//   - proper, pure, fol_convertible: structural checks on a sentence's DRS
//   - has_relation, lacks_relation: a relation name occurs at any depth
//   - referent_count: size of the top-level universe
//   - distinct_drs: number of distinct meanings recorded in the store
//
// # Golden Files
//
// RunWithGolden compares the rendered outputs against
// testdata/golden/<name>.golden. Regenerate with go test -update.
package harness
