package aggregator

import (
	"github.com/banshee-data/ouster.report/internal/lidar/ouster/packet"
	"github.com/banshee-data/ouster.report/internal/lidar/ouster/profile"
)

// CompleteData is a completed frame: exactly requiredMeasurements packets
// covering one rotation's configured azimuth window, handed to the caller
// as a shared, immutable handle. Its backing storage is only ever
// recycled by the aggregator once every handle referencing it has called
// Release — until then the content a caller sees never changes underneath
// it.
type CompleteData struct {
	storage              *storage
	bitmap               Bitmap128
	count                int
	frameID              uint16
	profile              profile.Profile
	requiredMeasurements int
}

// FrameID is the wire frame id this frame was assembled from.
func (cd *CompleteData) FrameID() uint16 { return cd.frameID }

// Len is the number of packets this frame actually received — equal to
// Required() for a fully complete frame, less for one that closed with
// loss. Iteration always covers all Required() slots; the missing ones
// hold zeroed packets.
func (cd *CompleteData) Len() int { return cd.count }

// Required is the number of packet slots the configured window expects
// for a complete frame.
func (cd *CompleteData) Required() int { return cd.requiredMeasurements }

// IsEmpty reports whether this frame received zero packets. The
// aggregator never hands out a CompleteData for an empty frame, but
// callers constructing one directly (tests) may still produce one.
func (cd *CompleteData) IsEmpty() bool { return cd.count == 0 }

// Statistics is the 128-bit bitmap recording which of this frame's
// required_measurements packet slots were actually filled.
func (cd *CompleteData) Statistics() Bitmap128 { return cd.bitmap }

// Release drops this handle's claim on the frame's backing storage.
// A handle still unreleased at the next commit makes that commit allocate
// a fresh buffer instead of reusing this one, which then leaves the
// aggregator's three-buffer pool; releasing before the next commit keeps
// the steady state allocation-free.
func (cd *CompleteData) Release() {
	cd.storage.release()
}

// ColumnIterator walks every column across a CompleteData's packets, in
// packet-slot order (slot 0..Required()-1), each packet's columns in wire
// order.
type ColumnIterator struct {
	cd   *CompleteData
	slot int
	col  int
}

// Iter returns a ColumnIterator over this frame's Columns*Required()
// columns.
func (cd *CompleteData) Iter() *ColumnIterator {
	return &ColumnIterator{cd: cd}
}

// Next advances the iterator and reports whether a column was produced.
func (it *ColumnIterator) Next() (packet.Column, bool) {
	if it.slot >= it.cd.requiredMeasurements {
		return packet.Column{}, false
	}
	col := it.cd.storage.packets[it.slot].Column(it.col)
	it.col++
	if it.col >= it.cd.profile.Columns {
		it.col = 0
		it.slot++
	}
	return col, true
}

// PointInfoEntry is one decoded sample plus its position within the frame.
type PointInfoEntry struct {
	Column int
	Layer  int
	Info   packet.PointInfo
}

// PointInfoIterator walks every (column, layer) sample of a CompleteData,
// decoding every return each channel carries.
type PointInfoIterator struct {
	cols        *ColumnIterator
	col         packet.Column
	have        bool
	layer       int
	columnIndex int
	nVec        uint32
}

// IterInfos returns a PointInfoIterator applying nVec as the range
// correction constant (config.Validated.NVec()) to every decoded sample.
func (cd *CompleteData) IterInfos(nVec uint32) *PointInfoIterator {
	return &PointInfoIterator{cols: cd.Iter(), nVec: nVec, columnIndex: -1}
}

// Next advances the iterator and reports whether a sample was produced.
func (it *PointInfoIterator) Next() (PointInfoEntry, bool) {
	for {
		if !it.have {
			c, ok := it.cols.Next()
			if !ok {
				return PointInfoEntry{}, false
			}
			it.col = c
			it.have = true
			it.layer = 0
			it.columnIndex++
		}
		if it.layer < it.col.Layers() {
			entry := PointInfoEntry{
				Column: it.columnIndex,
				Layer:  it.layer,
				Info:   it.col.Channel(it.layer, it.nVec),
			}
			it.layer++
			return entry, true
		}
		it.have = false
	}
}

// PrimaryPointInfoEntry is one decoded first-return sample plus its
// position within the frame.
type PrimaryPointInfoEntry struct {
	Column int
	Layer  int
	Info   packet.PrimaryPointInfo
}

// PrimaryPointInfoIterator is IterInfos' 10-20% cheaper counterpart: it
// decodes only the first return of each channel.
type PrimaryPointInfoIterator struct {
	cols        *ColumnIterator
	col         packet.Column
	have        bool
	layer       int
	columnIndex int
	nVec        uint32
}

// IterInfosPrimary returns a PrimaryPointInfoIterator applying nVec as the
// range correction constant to every decoded sample.
func (cd *CompleteData) IterInfosPrimary(nVec uint32) *PrimaryPointInfoIterator {
	return &PrimaryPointInfoIterator{cols: cd.Iter(), nVec: nVec, columnIndex: -1}
}

// Next advances the iterator and reports whether a sample was produced.
func (it *PrimaryPointInfoIterator) Next() (PrimaryPointInfoEntry, bool) {
	for {
		if !it.have {
			c, ok := it.cols.Next()
			if !ok {
				return PrimaryPointInfoEntry{}, false
			}
			it.col = c
			it.have = true
			it.layer = 0
			it.columnIndex++
		}
		if it.layer < it.col.Layers() {
			entry := PrimaryPointInfoEntry{
				Column: it.columnIndex,
				Layer:  it.layer,
				Info:   it.col.ChannelPrimary(it.layer, it.nVec),
			}
			it.layer++
			return entry, true
		}
		it.have = false
	}
}

// GetRowFirstInfosPrimary is random access by linear index
// index = column_outer*Layers + row, for consumers that index directly
// into a laid-out image rather than walking the iterator. Reports false
// if index falls outside the frame's Columns*Required()*Layers extent.
func (cd *CompleteData) GetRowFirstInfosPrimary(index int, nVec uint32) (packet.PrimaryPointInfo, bool) {
	L := cd.profile.Layers
	if L == 0 || index < 0 {
		return packet.PrimaryPointInfo{}, false
	}
	row := index % L
	columnOuter := index / L

	c := cd.profile.Columns
	slotIdx := columnOuter / c
	colInPacket := columnOuter % c
	if slotIdx < 0 || slotIdx >= cd.requiredMeasurements {
		return packet.PrimaryPointInfo{}, false
	}

	col := cd.storage.packets[slotIdx].Column(colInPacket)
	return col.ChannelPrimary(row, nVec), true
}
