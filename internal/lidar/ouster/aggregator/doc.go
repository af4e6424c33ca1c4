// Package aggregator owns Layer 3 (Aggregator) of the Ouster data model:
// the frame reassembly state machine that accepts packets arriving in
// approximately monotonic frame-id order, tolerant of per-frame
// reordering, duplicates and gaps, and emits each rotation exactly once
// as a CompleteData handle.
//
// Dependency rule: aggregator depends on packet and profile, never on
// config or geometry — it consumes plain measurement ids and frame ids,
// not a validated configuration.
package aggregator
