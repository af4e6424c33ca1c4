package ousterstats

import (
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"

	_ "modernc.org/sqlite"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"gonum.org/v1/gonum/stat"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// DevMode switches migration loading from the embedded filesystem to the
// local one on disk, for hot-reloading a migration under development.
var DevMode = false

// DB persists ouster_frame_stats rows: one per frame an Aggregator commits.
// The store carries no legacy deployment history, so it always migrates
// straight to the latest version on open rather than detecting or
// baselining an existing schema.
type DB struct {
	*sql.DB
}

func getMigrationsFS() (fs.FS, error) {
	if DevMode {
		return os.DirFS("migrations"), nil
	}
	return fs.Sub(migrationsFS, "migrations")
}

func applyPragmas(db *sql.DB) error {
	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA temp_store = MEMORY",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}
	return nil
}

// Open opens (creating if necessary) a SQLite database at path and migrates
// it to the latest schema version.
func Open(path string) (*DB, error) {
	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if err := applyPragmas(sqlDB); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to apply PRAGMAs: %w", err)
	}

	db := &DB{sqlDB}
	if err := db.migrateUp(); err != nil {
		sqlDB.Close()
		return nil, err
	}
	return db, nil
}

func (db *DB) migrateUp() error {
	migrationsFS, err := getMigrationsFS()
	if err != nil {
		return fmt.Errorf("failed to get migrations filesystem: %w", err)
	}

	sourceDriver, err := iofs.New(migrationsFS, ".")
	if err != nil {
		return fmt.Errorf("failed to create iofs source driver: %w", err)
	}
	dbDriver, err := sqlite.WithInstance(db.DB, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("failed to create sqlite driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", sourceDriver, "sqlite", dbDriver)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	m.Log = &migrateLogger{}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("migration up failed: %w", err)
	}
	return nil
}

type migrateLogger struct{}

func (l *migrateLogger) Printf(format string, v ...interface{}) {
	fmt.Printf("[ousterstats migrate] "+format, v...)
}
func (l *migrateLogger) Verbose() bool { return false }

// FrameStats is one persisted row: an Aggregator.Statistics snapshot taken
// at the moment a particular frame committed.
type FrameStats struct {
	SensorID       string
	FrameID        uint16
	TakenUnixNanos int64
	PacketCount    int
	RequiredCount  int
	DroppedPackets uint64
	Histogram      []uint64
	MissingPackets []uint64
}

// Insert records one FrameStats row.
func (db *DB) Insert(fs FrameStats) error {
	histJSON, err := json.Marshal(fs.Histogram)
	if err != nil {
		return fmt.Errorf("marshal histogram: %w", err)
	}
	missingJSON, err := json.Marshal(fs.MissingPackets)
	if err != nil {
		return fmt.Errorf("marshal missing packets: %w", err)
	}
	_, err = db.Exec(`
		INSERT INTO ouster_frame_stats
			(sensor_id, frame_id, taken_unix_nanos, packet_count, required_count, dropped_packets, histogram_json, missing_packets_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		fs.SensorID, fs.FrameID, fs.TakenUnixNanos, fs.PacketCount, fs.RequiredCount, fs.DroppedPackets, string(histJSON), string(missingJSON))
	if err != nil {
		return fmt.Errorf("insert ouster_frame_stats: %w", err)
	}
	return nil
}

// RecentFrameStats returns the last limit rows for a sensor, most recent
// first.
func (db *DB) RecentFrameStats(sensorID string, limit int) ([]FrameStats, error) {
	rows, err := db.Query(`
		SELECT frame_id, taken_unix_nanos, packet_count, required_count, dropped_packets, histogram_json, missing_packets_json
		FROM ouster_frame_stats WHERE sensor_id = ? ORDER BY taken_unix_nanos DESC LIMIT ?`,
		sensorID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []FrameStats
	for rows.Next() {
		var fs FrameStats
		var histJSON, missingJSON string
		if err := rows.Scan(&fs.FrameID, &fs.TakenUnixNanos, &fs.PacketCount, &fs.RequiredCount, &fs.DroppedPackets, &histJSON, &missingJSON); err != nil {
			return nil, err
		}
		fs.SensorID = sensorID
		if err := json.Unmarshal([]byte(histJSON), &fs.Histogram); err != nil {
			return nil, fmt.Errorf("unmarshal histogram: %w", err)
		}
		if err := json.Unmarshal([]byte(missingJSON), &fs.MissingPackets); err != nil {
			return nil, fmt.Errorf("unmarshal missing packets: %w", err)
		}
		out = append(out, fs)
	}
	return out, rows.Err()
}

// CompletenessSummary is the mean and variance of a sensor's recent
// per-frame completeness ratio (packets received over packets required).
type CompletenessSummary struct {
	SampleCount int
	Mean        float64
	Variance    float64
}

// CompletenessSummary computes the mean/variance of the completeness ratio
// across a sensor's last limit committed frames.
func (db *DB) CompletenessSummary(sensorID string, limit int) (CompletenessSummary, error) {
	rows, err := db.RecentFrameStats(sensorID, limit)
	if err != nil {
		return CompletenessSummary{}, err
	}
	if len(rows) == 0 {
		return CompletenessSummary{}, nil
	}

	ratios := make([]float64, len(rows))
	for i, fs := range rows {
		if fs.RequiredCount == 0 {
			continue
		}
		ratios[i] = float64(fs.PacketCount) / float64(fs.RequiredCount)
	}

	mean, variance := stat.MeanVariance(ratios, nil)
	return CompletenessSummary{SampleCount: len(ratios), Mean: mean, Variance: variance}, nil
}
