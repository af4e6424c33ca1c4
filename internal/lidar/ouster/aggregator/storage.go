package aggregator

import (
	"sync/atomic"

	"github.com/banshee-data/ouster.report/internal/lidar/ouster/packet"
	"github.com/banshee-data/ouster.report/internal/lidar/ouster/profile"
)

// storage is the boxed packet backing array one frame slot owns: a fixed
// array of Profile-sized packets, allocated once and swapped into by move
// as real packets arrive. A CompleteData handle shares this same array
// rather than copying it; refcount tracks how many holders (the
// aggregator itself, plus zero or more live CompleteData handles) are
// still alive, so the aggregator can tell whether it is safe to reuse the
// array in place the next time it needs a fresh slot.
type storage struct {
	packets  []*packet.Packet
	refcount int32
}

func newStorage(n int, p profile.Profile) *storage {
	pkts := make([]*packet.Packet, n)
	for i := range pkts {
		pkts[i] = packet.Zero(p)
	}
	return &storage{packets: pkts, refcount: 1}
}

// reclaim prepares a storage that has just finished its turn as entry_out
// for reuse as the aggregator's next fresh "other" slot. If some
// CompleteData handle still references it (refcount > 1, i.e. more than
// the aggregator's own implicit hold), it is left untouched — still live,
// just no longer tracked by the aggregator — and a brand new buffer is
// allocated instead. Otherwise s is cleared in place and reused, which is
// what keeps the aggregator's steady-state per-frame allocation at zero.
func reclaim(s *storage, n int, p profile.Profile) *storage {
	if atomic.LoadInt32(&s.refcount) > 1 {
		return newStorage(n, p)
	}
	for _, pk := range s.packets {
		pk.Reset()
	}
	return s
}

func (s *storage) acquire() { atomic.AddInt32(&s.refcount, 1) }
func (s *storage) release() { atomic.AddInt32(&s.refcount, -1) }
