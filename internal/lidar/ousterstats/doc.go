// Package ousterstats persists per-frame completeness statistics emitted by
// an aggregator.Aggregator to SQLite, so a frame's packet-loss history
// survives past the aggregator's own in-memory Statistics snapshot.
//
// It depends on aggregator (for the shapes it persists) and never on
// packet, profile, config or geometry — it only ever sees the already
// summarized Statistics, not raw packets.
package ousterstats
