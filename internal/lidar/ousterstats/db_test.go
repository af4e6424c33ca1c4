package ousterstats

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()
	fname := t.Name() + ".db"
	_ = os.Remove(fname)
	db, err := Open(fname)
	require.NoError(t, err)
	t.Cleanup(func() {
		db.Close()
		_ = os.Remove(fname)
		_ = os.Remove(fname + "-shm")
		_ = os.Remove(fname + "-wal")
	})
	return db
}

func TestOpenMigratesSchema(t *testing.T) {
	db := setupTestDB(t)

	var count int
	err := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='ouster_frame_stats'`).Scan(&count)
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

func TestInsertAndRecentFrameStats(t *testing.T) {
	db := setupTestDB(t)

	for i := 0; i < 3; i++ {
		fs := FrameStats{
			SensorID:       "sensor-a",
			FrameID:        uint16(i),
			TakenUnixNanos: int64(1000 + i),
			PacketCount:    64,
			RequiredCount:  64,
			DroppedPackets: uint64(i),
			Histogram:      []uint64{0, 0, 64},
			MissingPackets: make([]uint64, 64),
		}
		require.NoError(t, db.Insert(fs))
	}

	rows, err := db.RecentFrameStats("sensor-a", 2)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	// Most recent first.
	require.Equal(t, uint16(2), rows[0].FrameID)
	require.Equal(t, uint16(1), rows[1].FrameID)
	require.Equal(t, []uint64{0, 0, 64}, rows[0].Histogram)
	require.Len(t, rows[0].MissingPackets, 64)
}

func TestRecentFrameStatsFiltersBySensor(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, db.Insert(FrameStats{SensorID: "a", FrameID: 1, TakenUnixNanos: 1, Histogram: []uint64{1}, MissingPackets: []uint64{}}))
	require.NoError(t, db.Insert(FrameStats{SensorID: "b", FrameID: 2, TakenUnixNanos: 2, Histogram: []uint64{1}, MissingPackets: []uint64{}}))

	rows, err := db.RecentFrameStats("a", 10)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, uint16(1), rows[0].FrameID)
}

func TestCompletenessSummary(t *testing.T) {
	db := setupTestDB(t)

	ratios := []struct {
		packetCount   int
		requiredCount int
	}{
		{64, 64},
		{60, 64},
		{64, 64},
	}
	for i, r := range ratios {
		require.NoError(t, db.Insert(FrameStats{
			SensorID:       "sensor-a",
			FrameID:        uint16(i),
			TakenUnixNanos: int64(i),
			PacketCount:    r.packetCount,
			RequiredCount:  r.requiredCount,
			Histogram:      []uint64{},
			MissingPackets: []uint64{},
		}))
	}

	summary, err := db.CompletenessSummary("sensor-a", 10)
	require.NoError(t, err)
	require.Equal(t, 3, summary.SampleCount)
	require.InDelta(t, (1.0+60.0/64.0+1.0)/3.0, summary.Mean, 1e-9)
	require.Greater(t, summary.Variance, 0.0)
}

func TestCompletenessSummaryEmpty(t *testing.T) {
	db := setupTestDB(t)

	summary, err := db.CompletenessSummary("nobody", 10)
	require.NoError(t, err)
	require.Equal(t, CompletenessSummary{}, summary)
}
