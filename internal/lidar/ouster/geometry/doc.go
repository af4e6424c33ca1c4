// Package geometry owns Layer 4 (Geometry / iterators) of the Ouster data
// model: turning a validated configuration's per-beam intrinsics into
// polar points with translation, converting those to Cartesian
// coordinates, and computing the output pixel position each sample lands
// on after per-row azimuth correction.
//
// Dependency rule: geometry depends on config and profile, never on
// aggregator or packet.
package geometry
