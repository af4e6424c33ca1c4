//go:build pcap
// +build pcap

package main

import (
	"fmt"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcap"

	"github.com/banshee-data/ouster.report/internal/lidar/ouster/aggregator"
	ousterpacket "github.com/banshee-data/ouster.report/internal/lidar/ouster/packet"
	"github.com/banshee-data/ouster.report/internal/lidar/ouster/profile"
)

// replayPCAP walks every UDP datagram addressed to udpPort in the capture
// at path, decodes it as one of p's packets, and feeds it to a. onFrame is
// called synchronously for every frame a.PutPacket completes.
func replayPCAP(path string, udpPort int, p profile.Profile, a *aggregator.Aggregator, onFrame func(*aggregator.CompleteData)) error {
	handle, err := pcap.OpenOffline(path)
	if err != nil {
		return fmt.Errorf("open pcap file %s: %w", path, err)
	}
	defer handle.Close()

	filter := fmt.Sprintf("udp port %d", udpPort)
	if err := handle.SetBPFFilter(filter); err != nil {
		return fmt.Errorf("set BPF filter %q: %w", filter, err)
	}

	want := p.PacketSize()
	source := gopacket.NewPacketSource(handle, handle.LinkType())
	for packet := range source.Packets() {
		udpLayer := packet.Layer(layers.LayerTypeUDP)
		if udpLayer == nil {
			continue
		}
		udp, ok := udpLayer.(*layers.UDP)
		if !ok || len(udp.Payload) != want {
			continue
		}

		pk, err := ousterpacket.FromUnaligned(udp.Payload, p)
		if err != nil {
			continue
		}

		if cd := a.PutPacket(pk); cd != nil {
			onFrame(cd)
		}
	}
	return nil
}
