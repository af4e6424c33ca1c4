package ousterstats

import (
	"log"

	"github.com/banshee-data/ouster.report/internal/lidar/ouster/aggregator"
)

// Recorder persists one FrameStats row each time a frame commits, pulled
// from an aggregator.Aggregator's running Statistics. Frame-level fields
// (FrameID, PacketCount) come from the CompleteData handle the aggregator
// just emitted; the loss/histogram fields come from the aggregator's
// cumulative Statistics snapshot taken at the same moment.
type Recorder struct {
	db       *DB
	sensorID string
}

// NewRecorder builds a Recorder that writes rows tagged with sensorID.
func NewRecorder(db *DB, sensorID string) *Recorder {
	return &Recorder{db: db, sensorID: sensorID}
}

// Record persists cd's commit outcome alongside a Statistics snapshot taken
// at commit time. nowUnixNanos is supplied by the caller rather than
// computed here, so the recorder stays trivially testable.
func (r *Recorder) Record(cd *aggregator.CompleteData, stats aggregator.Statistics, nowUnixNanos int64) {
	fs := FrameStats{
		SensorID:       r.sensorID,
		FrameID:        cd.FrameID(),
		TakenUnixNanos: nowUnixNanos,
		PacketCount:    cd.Len(),
		RequiredCount:  cd.Required(),
		DroppedPackets: stats.DroppedPackets,
		Histogram:      stats.Histogram,
		MissingPackets: stats.MissingPackets,
	}
	if err := r.db.Insert(fs); err != nil {
		log.Printf("ousterstats: failed to record frame %d: %v", fs.FrameID, err)
	}
}
