// Command ouster-ingest listens for an Ouster lidar's UDP packet stream,
// reassembles it into complete frames, persists per-frame completeness
// statistics to SQLite, and serves a debugging HTTP console (a live
// completeness histogram plus a tailsql SQL console over the stats
// database).
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/banshee-data/ouster.report/internal/lidar/ouster/aggregator"
	"github.com/banshee-data/ouster.report/internal/lidar/ouster/packet"
	"github.com/banshee-data/ouster.report/internal/lidar/ouster/profile"
	"github.com/banshee-data/ouster.report/internal/lidar/ousterconfigio"
	"github.com/banshee-data/ouster.report/internal/lidar/ousterstats"
)

var (
	listen     = flag.String("listen", ":8082", "HTTP listen address for the debug console")
	udpPort    = flag.Int("udp-port", 7502, "UDP port to listen for Ouster lidar packets")
	configPath = flag.String("config", "ouster-config.json", "Path to the sensor's JSON configuration document")
	dbFile     = flag.String("db", "ouster_stats.db", "Path to the SQLite stats database file")
	sensorID   = flag.String("sensor-id", "default", "Sensor identifier tag for persisted stats rows")
	rcvBuf     = flag.Int("rcvbuf", 4<<20, "UDP receive buffer size in bytes")

	forwardPackets = flag.Bool("forward", false, "Forward received UDP packets to another destination")
	forwardAddr    = flag.String("forward-addr", "localhost", "Address to forward UDP packets to")
	forwardPort    = flag.Int("forward-port", 7512, "Port to forward UDP packets to (for LidarView-style monitoring)")
)

func main() {
	flag.Parse()

	runID := uuid.New().String()
	log.Printf("ouster-ingest starting, run_id=%s", runID)

	cfg, p, err := ousterconfigio.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load sensor configuration: %v", err)
	}
	window := cfg.LidarDataFormat.ColumnWindow
	// The aggregator has a single owner (the UDP loop); the debug console's
	// histogram endpoint reads it through the same mutex.
	var aggMu sync.Mutex
	a := aggregator.NewAggregator(p, window.StartMeasurementID(), window.RequiredMeasurements(), window.MeasurementsPerFrame())
	histogram := func() []uint64 {
		aggMu.Lock()
		defer aggMu.Unlock()
		return a.GetHistogram()
	}

	statsDB, err := ousterstats.Open(*dbFile)
	if err != nil {
		log.Fatalf("failed to open stats database: %v", err)
	}
	defer statsDB.Close()
	recorder := ousterstats.NewRecorder(statsDB, *sensorID)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := listenUDP(ctx, p, a, &aggMu, recorder); err != nil && err != context.Canceled {
			log.Printf("UDP listener error: %v", err)
		}
		log.Print("UDP listener routine terminated")
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		runHTTPServer(ctx, *sensorID, histogram, statsDB)
		log.Print("HTTP server routine terminated")
	}()

	wg.Wait()
	log.Printf("ouster-ingest shutdown complete")
}

func listenUDP(ctx context.Context, p profile.Profile, a *aggregator.Aggregator, aggMu *sync.Mutex, recorder *ousterstats.Recorder) error {
	addr, err := net.ResolveUDPAddr("udp", fmt.Sprintf(":%d", *udpPort))
	if err != nil {
		return fmt.Errorf("resolve UDP address: %w", err)
	}
	conn, err := net.ListenUDP("udp", addr)
	if err != nil {
		return fmt.Errorf("listen UDP: %w", err)
	}
	defer conn.Close()

	if err := conn.SetReadBuffer(*rcvBuf); err != nil {
		log.Printf("warning: failed to set UDP receive buffer to %d bytes: %v", *rcvBuf, err)
	}
	log.Printf("listening for Ouster lidar packets on :%d", *udpPort)

	// Optional relay of the raw packet stream to a second consumer
	// (LidarView or another ingest), fed through a buffered channel so a
	// slow forward destination never blocks the receive loop.
	var forwardChan chan []byte
	if *forwardPackets {
		forwardAddress := fmt.Sprintf("%s:%d", *forwardAddr, *forwardPort)
		forwardUDPAddr, err := net.ResolveUDPAddr("udp", forwardAddress)
		if err != nil {
			return fmt.Errorf("resolve forward address: %w", err)
		}
		forwardConn, err := net.DialUDP("udp", nil, forwardUDPAddr)
		if err != nil {
			return fmt.Errorf("create forward connection: %w", err)
		}
		defer forwardConn.Close()

		forwardChan = make(chan []byte, 1000)
		go func() {
			dropped := 0
			var lastError error
			ticker := time.NewTicker(10 * time.Second)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case raw := <-forwardChan:
					if _, err := forwardConn.Write(raw); err != nil {
						dropped++
						lastError = err
					}
				case <-ticker.C:
					if dropped > 0 && lastError != nil {
						log.Printf("dropped %d forwarded packets due to errors (latest: %v)", dropped, lastError)
						dropped = 0
						lastError = nil
					}
				}
			}
		}()
		log.Printf("forwarding packets to %s", forwardAddress)
	}

	want := p.PacketSize()
	buf := make([]byte, want)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := conn.SetReadDeadline(time.Now().Add(time.Second)); err != nil {
			log.Printf("error setting read deadline: %v", err)
			continue
		}
		n, _, err := conn.ReadFromUDP(buf)
		if err != nil {
			if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
				continue
			}
			log.Printf("error reading UDP packet: %v", err)
			continue
		}
		if n != want {
			continue
		}

		// FromUnaligned, not FromBytes: buf is reused across iterations, so
		// every packet handed to the aggregator must own a copy rather than
		// risk FromBytes picking the zero-copy FromAligned path.
		pk, err := packet.FromUnaligned(buf[:n], p)
		if err != nil {
			log.Printf("failed to decode packet: %v", err)
			continue
		}

		if forwardChan != nil {
			// The aggregator zeroes packet buffers when it reclaims a frame
			// slot, so the relay gets its own copy; drop rather than block
			// when the relay is full.
			raw := pk.AsBytes()
			fwd := make([]byte, len(raw))
			copy(fwd, raw)
			select {
			case forwardChan <- fwd:
			default:
			}
		}

		aggMu.Lock()
		cd := a.PutPacket(pk)
		var stats aggregator.Statistics
		if cd != nil {
			stats = a.GetStatistics()
		}
		aggMu.Unlock()

		if cd != nil {
			recorder.Record(cd, stats, time.Now().UnixNano())
			cd.Release()
		}
	}
}
