// Package conformance runs YAML-described checks against the Reader, the
// Writer and the Extractor.
//
// # Suite Format
//
//	name: core
//	description: "What this suite covers"
//	cases:
//	  - name: vector
//	    op: read            # read (default), extract or columns
//	    input: "[1, 2 ,3]"
//	    expect: "[1 2 3]"   # compact output of the parsed value
//	  - name: strict rejects stray closer
//	    input: "[1 ) 2]"
//	    strict: true
//	    error: unexpected_char
//	  - name: fenced query
//	    op: extract
//	    input: "```edn\n[:find ?e]\n```"
//	    extract: "[:find ?e]"
//	  - name: count column
//	    op: columns
//	    input: "[:find ?e (count ?x) :where]"
//	    columns: ["?e", "count(?x)"]
//
// Read cases that succeed are also checked for round-trip: the compact and
// pretty output must read back Equal to the parsed value.
//
// Unknown fields are rejected so that a typo in a suite fails loudly
// instead of silently skipping a check.
package conformance
