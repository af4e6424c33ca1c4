// Command ouster-pcap replays an offline PCAP capture of an Ouster lidar's
// UDP packet stream through the same reassembly pipeline ouster-ingest
// runs live, printing per-frame completeness statistics as it goes. Build
// with -tags pcap (it links libpcap via gopacket/pcap).
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/banshee-data/ouster.report/internal/lidar/ouster/aggregator"
	"github.com/banshee-data/ouster.report/internal/lidar/ousterconfigio"
)

var (
	pcapFile   = flag.String("pcap", "", "Path to the PCAP capture file to replay")
	configPath = flag.String("config", "ouster-config.json", "Path to the sensor's JSON configuration document")
	udpPort    = flag.Int("udp-port", 7502, "UDP port the captured lidar traffic was sent to")
)

func main() {
	flag.Parse()
	if *pcapFile == "" {
		log.Fatal("-pcap is required")
	}

	cfg, p, err := ousterconfigio.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load sensor configuration: %v", err)
	}
	window := cfg.LidarDataFormat.ColumnWindow
	a := aggregator.NewAggregator(p, window.StartMeasurementID(), window.RequiredMeasurements(), window.MeasurementsPerFrame())

	framesSeen := 0
	if err := replayPCAP(*pcapFile, *udpPort, p, a, func(cd *aggregator.CompleteData) {
		framesSeen++
		fmt.Printf("frame %d: %d/%d packets\n", cd.FrameID(), cd.Len(), cd.Required())
		cd.Release()
	}); err != nil {
		log.Fatalf("replay failed: %v", err)
	}

	stats := a.GetStatistics()
	fmt.Printf("replay complete: %d frames emitted, %d packets dropped\n", framesSeen, stats.DroppedPackets)
}
