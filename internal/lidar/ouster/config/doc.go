// Package config owns Layer 2 (Configuration validation) of the Ouster
// data model.
//
// Responsibilities: turning the device's JSON configuration document
// (already deserialized by the caller — this package does not touch
// encoding/json itself) into a validated, read-only operational
// configuration: beam intrinsics, lidar data format, azimuth/signal
// parameters, and the ValidWindow that tells the aggregator how many
// packets constitute one frame.
//
// Dependency rule: config depends only on profile.
package config
