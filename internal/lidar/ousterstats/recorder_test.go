package ousterstats

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/banshee-data/ouster.report/internal/lidar/ouster/aggregator"
	"github.com/banshee-data/ouster.report/internal/lidar/ouster/packet"
	"github.com/banshee-data/ouster.report/internal/lidar/ouster/profile"
)

func mkPacket(t *testing.T, p profile.Profile, frameID uint16, measurementID uint16) *packet.Packet {
	t.Helper()
	buf := make([]byte, p.PacketSize())
	if p.Kind.UsesSafetyHeader() {
		buf[4] = byte(frameID)
		buf[5] = byte(frameID >> 8)
	} else {
		buf[2] = byte(frameID)
		buf[3] = byte(frameID >> 8)
	}
	for i := 0; i < p.Columns; i++ {
		colStart := profile.HeaderSize + i*p.ColumnSize()
		buf[colStart+8] = byte(measurementID)
		buf[colStart+9] = byte(measurementID >> 8)
	}
	pk, err := packet.FromUnaligned(buf, p)
	require.NoError(t, err)
	return pk
}

func TestRecorderPersistsCommittedFrame(t *testing.T) {
	db := setupTestDB(t)
	rec := NewRecorder(db, "sensor-a")

	p := profile.Dual64
	const required = 64
	a := aggregator.NewAggregator(p, 0, required, required)

	for i := 0; i < required; i++ {
		require.Nil(t, a.PutPacket(mkPacket(t, p, 0, uint16(i*16))))
	}

	var committed *aggregator.CompleteData
	for i := 0; i < aggregator.CommitDelay; i++ {
		if out := a.PutPacket(mkPacket(t, p, 1, uint16(i*16))); out != nil {
			committed = out
		}
	}
	require.NotNil(t, committed)
	defer committed.Release()

	rec.Record(committed, a.GetStatistics(), 42)

	rows, err := db.RecentFrameStats("sensor-a", 1)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, uint16(0), rows[0].FrameID)
	require.Equal(t, required, rows[0].PacketCount)
	require.Equal(t, int64(42), rows[0].TakenUnixNanos)
}
