// Package packet owns Layer 1 (Packet model) of the Ouster data model.
//
// Responsibilities: interpreting one UDP datagram as a typed view —
// header, columns, per-beam channels — and decoding a channel's raw bytes
// into a normalized point sample. Field-by-field little-endian loads
// stand in for the reference implementation's aligned-memory struct
// overlay (see package profile's doc comment and DESIGN.md); this keeps
// the decode path branch-light without requiring unsafe struct casts for
// every profile variant.
//
// Dependency rule: packet depends only on profile.
package packet
