// Package harness runs conformance scenarios against the event registry.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: scenario_name
//	description: "What this scenario validates"
//	catalog: ../catalogs/waves.cue   # optional, registered before steps
//	steps:
//	  - add: {kind: A, at: 0}
//	  - add: {kind: B, range: {x: 0, y: 10}}
//	    expect: duplicate_condition
//	  - get: 0
//	    kind: A
//	  - get: 5
//	    expect: not_found
//	assertions:
//	  - type: registry_count
//	    count: 1
//	  - type: active_at
//	    at: 0
//	    kind: A
//
// An add step expects ok unless told otherwise (duplicate_condition,
// invalid_event). A get step expects found unless told not_found, and may
// pin the returned kind.
//
// # Assertion Types
//
//   - registry_count: the registry holds exactly count entries
//   - active_at: the event active at an instant has the given kind
//   - inactive_at: nothing is active at an instant
//   - kinds_in_order: registered kinds, in insertion order
//
// # Deterministic Testing
//
// Every scenario gets a fresh registry whose clock starts at 1, and its
// log output is discarded. The trace of a run is rendered as canonical JSON
// (see Snapshot) for golden file comparison.
package harness
