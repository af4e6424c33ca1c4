package packet

import (
	"encoding/binary"
	"time"

	"github.com/banshee-data/ouster.report/internal/lidar/ouster/profile"
)

// Column is a view over one column's bytes within a packet: its header
// (timestamp, measurement id, status) followed by Layers channels. It
// aliases the packet's backing array; it never copies.
type Column struct {
	raw  []byte
	kind profile.Kind
	L    int
}

// MeasurementID is the column's azimuth index within the rotation, always
// a multiple of the packet's column count C.
func (c Column) MeasurementID() uint16 {
	return binary.LittleEndian.Uint16(c.raw[8:10])
}

// StatusAndReserve is the column header's 16-bit status field.
func (c Column) StatusAndReserve() uint16 {
	return binary.LittleEndian.Uint16(c.raw[10:12])
}

// Timestamp decodes the column header's 64-bit nanosecond timestamp, split
// on the wire into two little-endian 32-bit halves.
func (c Column) Timestamp() time.Duration {
	lo := binary.LittleEndian.Uint32(c.raw[0:4])
	hi := binary.LittleEndian.Uint32(c.raw[4:8])
	return time.Duration(uint64(lo) | uint64(hi)<<32)
}

// Layers is the number of beams (channels) in this column.
func (c Column) Layers() int { return c.L }

// channelBytes returns the raw bytes of the row-th channel in this column.
func (c Column) channelBytes(row int) []byte {
	size := c.kind.ChannelSize()
	start := profile.ColumnHeaderSize + row*size
	return c.raw[start : start+size]
}

// Channel decodes the row-th beam's sample, applying n_vec as the optical
// origin offset correction.
func (c Column) Channel(row int, nVec uint32) PointInfo {
	return decodeChannel(c.kind, c.channelBytes(row), nVec)
}

// ChannelPrimary decodes only the first return of the row-th beam's
// sample, the cheaper hot-path variant of Channel.
func (c Column) ChannelPrimary(row int, nVec uint32) PrimaryPointInfo {
	return decodeChannelPrimary(c.kind, c.channelBytes(row), nVec)
}
