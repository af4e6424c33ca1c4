package aggregator

import (
	"github.com/banshee-data/ouster.report/internal/lidar/ouster/packet"
	"github.com/banshee-data/ouster.report/internal/lidar/ouster/profile"
)

// CommitDelay is the number of next-frame packets the aggregator waits for
// after the first packet of frame N+1 arrives before it finalizes and
// emits frame N. Expressed in packets, not time, so it tracks however
// fast or slow packets are actually arriving. Tunable: too low loses late
// out-of-order packets from N, too high delays emission by
// CommitDelay*packet_interval. The count is of distinct slots, so a window
// whose requiredMeasurements is below CommitDelay never reaches it and
// such an aggregator emits no frames.
const CommitDelay = 10

// slot is one in-flight frame: the packets collected for it so far, which
// of its required_measurements positions have been filled, and the frame
// id it is currently collecting for.
type slot struct {
	frameID  uint16
	assigned bool
	bitmap   Bitmap128
	count    int
	storage  *storage
}

func (s *slot) storeInto(idx int, pk *packet.Packet) {
	s.storage.packets[idx] = pk
	if !s.bitmap.IsSet(idx) {
		s.bitmap.Set(idx)
		s.count++
	}
}

func (s *slot) repurpose(frameID uint16) {
	s.frameID = frameID
	s.assigned = true
	s.bitmap.Clear()
	s.count = 0
}

// Aggregator is the frame reassembly state machine: it accepts packets
// arriving in approximately monotonic frame-id order, tolerant of
// per-frame reordering, duplicates and gaps, and emits each rotation
// exactly once as a CompleteData handle. One instance is not shared
// across goroutines — it performs no locking and no blocking, and every
// PutPacket call completes synchronously.
//
// Aggregator deliberately takes plain measurement-id window parameters
// rather than a config.Validated, per the package's dependency rule: it
// never imports the config package. Callers derive startMeasurementID,
// requiredMeasurements and measurementsPerFrame from a validated
// config.ValidWindow before constructing one.
type Aggregator struct {
	profile              profile.Profile
	startMeasurementID   uint16
	measurementsPerFrame uint16
	requiredMeasurements int

	active  slot
	other   slot
	outSlot slot

	completionHistogram []uint64
	missingPackets      []uint64
	droppedPackets      uint64
}

// NewAggregator builds an Aggregator for one sensor stream's window.
// requiredMeasurements must not exceed 128 — config validation enforces
// this ahead of construction (§3 invariants), but NewAggregator panics
// rather than silently truncating the histogram if it is violated anyway.
func NewAggregator(p profile.Profile, startMeasurementID uint16, requiredMeasurements int, measurementsPerFrame uint16) *Aggregator {
	if requiredMeasurements > 128 {
		panic("aggregator: required_measurements exceeds the 128-bit histogram width")
	}
	return &Aggregator{
		profile:              p,
		startMeasurementID:   startMeasurementID,
		measurementsPerFrame: measurementsPerFrame,
		requiredMeasurements: requiredMeasurements,
		active:               slot{storage: newStorage(requiredMeasurements, p)},
		other:                slot{storage: newStorage(requiredMeasurements, p)},
		outSlot:              slot{storage: newStorage(requiredMeasurements, p)},
		completionHistogram:  make([]uint64, requiredMeasurements+2),
		missingPackets:       make([]uint64, requiredMeasurements),
	}
}

// slotIndex computes the window-relative slot a packet belongs to from its
// first column's measurement id, reporting false if the packet falls
// outside the configured azimuth window (a soft, silent OutOfWindow —
// not counted as dropped; see §4.2 step 1 and §9's azimuth-window edge
// policy).
func (a *Aggregator) slotIndex(pk *packet.Packet) (int, bool) {
	mid := pk.Column(0).MeasurementID()
	pos := int(mid) / a.profile.Columns
	perFrame := int(a.measurementsPerFrame)
	idx := ((pos-int(a.startMeasurementID))%perFrame + perFrame) % perFrame
	if idx >= a.requiredMeasurements {
		return 0, false
	}
	return idx, true
}

// PutPacket ingests one packet, returning the just-completed frame if this
// packet was the one that brought entry_other's count to CommitDelay. Every call
// completes synchronously and never blocks.
func (a *Aggregator) PutPacket(pk *packet.Packet) *CompleteData {
	idx, ok := a.slotIndex(pk)
	if !ok {
		return nil
	}

	frameID := pk.Header.FrameID()

	// Bootstrap: the very first packet ever seen lazily assigns
	// entry_active's frame id, since the state machine has no frame to
	// compare against yet.
	if !a.active.assigned {
		a.active.frameID = frameID
		a.active.assigned = true
	}

	switch {
	case frameID == a.active.frameID:
		a.active.storeInto(idx, pk)
		return nil

	case a.other.assigned && frameID == a.other.frameID:
		a.other.storeInto(idx, pk)
		if a.other.count == CommitDelay {
			return a.commit()
		}
		return nil

	default:
		// A packet for a frame id matching neither active nor other:
		// entry_other is repurposed for this new frame, and whatever it
		// had already accumulated is abandoned and counted as dropped.
		// entry_active is left untouched — it is not emitted here.
		a.droppedPackets += uint64(a.other.count)
		a.other.repurpose(frameID)
		a.other.storeInto(idx, pk)
		return nil
	}
}

// commit finalizes entry_active, records its statistics, rotates the
// three slots (out <- active, active <- other, other <- fresh), and
// returns the finalized frame as a CompleteData handle — or nil if
// entry_active never received a single packet.
func (a *Aggregator) commit() *CompleteData {
	freshStorage := reclaim(a.outSlot.storage, a.requiredMeasurements, a.profile)

	histIdx := a.active.count
	if last := a.requiredMeasurements + 1; histIdx > last {
		histIdx = last
	}
	a.completionHistogram[histIdx]++

	for i := 0; i < a.requiredMeasurements; i++ {
		if !a.active.bitmap.IsSet(i) {
			a.missingPackets[i]++
			a.active.storage.packets[i].Reset()
		}
	}

	var cd *CompleteData
	if a.active.count > 0 {
		a.active.storage.acquire()
		cd = &CompleteData{
			storage:              a.active.storage,
			bitmap:               a.active.bitmap,
			count:                a.active.count,
			frameID:              a.active.frameID,
			profile:              a.profile,
			requiredMeasurements: a.requiredMeasurements,
		}
	}

	a.outSlot = a.active
	a.active = a.other
	a.other = slot{storage: freshStorage}

	return cd
}

// GetHistogram returns the running completion histogram — index k holds
// how many frames closed with exactly k packets, with the last index
// ("more than expected") absorbing any overflow — plus a synthetic entry
// for entry_active's current in-flight count, so a snapshot taken
// mid-frame still accounts for every packet seen so far.
func (a *Aggregator) GetHistogram() []uint64 {
	out := make([]uint64, len(a.completionHistogram))
	copy(out, a.completionHistogram)
	idx := a.active.count
	if last := a.requiredMeasurements + 1; idx > last {
		idx = last
	}
	out[idx]++
	return out
}

// Statistics is a point-in-time snapshot of an Aggregator's quality
// counters.
type Statistics struct {
	Histogram      []uint64
	DroppedPackets uint64
	MissingPackets []uint64
}

// GetStatistics returns Histogram plus the dropped-packet total and
// per-slot miss counts accumulated across every frame emitted so far.
func (a *Aggregator) GetStatistics() Statistics {
	missing := make([]uint64, len(a.missingPackets))
	copy(missing, a.missingPackets)
	return Statistics{
		Histogram:      a.GetHistogram(),
		DroppedPackets: a.droppedPackets,
		MissingPackets: missing,
	}
}
