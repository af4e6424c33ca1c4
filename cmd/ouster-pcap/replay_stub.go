//go:build !pcap
// +build !pcap

package main

import (
	"fmt"

	"github.com/banshee-data/ouster.report/internal/lidar/ouster/aggregator"
	"github.com/banshee-data/ouster.report/internal/lidar/ouster/profile"
)

// replayPCAP is a stub used when this binary is built without the pcap tag.
// Build with -tags pcap to enable PCAP file replay.
func replayPCAP(path string, udpPort int, p profile.Profile, a *aggregator.Aggregator, onFrame func(*aggregator.CompleteData)) error {
	return fmt.Errorf("pcap support not enabled: rebuild with -tags pcap")
}
