// Package profile owns Layer 0 (Profile) of the Ouster data model.
//
// Responsibilities: describing the wire-format variant of a rotating
// multi-beam lidar's UDP payload — how many columns a packet carries (C),
// how many beams fire per column (L), and which of the four channel
// encodings is in play. Every downstream struct size and per-sample
// decode formula is a function of the values in this package.
//
// Dependency rule: profile depends on nothing else in internal/lidar/ouster;
// packet, config, aggregator and geometry all depend on it.
package profile
