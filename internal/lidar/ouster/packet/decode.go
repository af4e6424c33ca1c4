package packet

import (
	"encoding/binary"

	"github.com/banshee-data/ouster.report/internal/lidar/ouster/profile"
)

// ChannelInfo is one return's decoded range/reflectivity/signal for a beam.
// Signal is zero for LowData/DualLow channels, which carry no signal field.
type ChannelInfo struct {
	Distance     uint16
	Reflectivity uint8
	Signal       uint16
}

// PointInfo is a beam's fully decoded sample, carrying every return the
// channel's profile provides (one for Single/LowData, two for Dual/DualLow).
type PointInfo struct {
	NIR      uint8
	Count    int
	Channels [2]ChannelInfo
}

// PrimaryPointInfo is a beam's first-return-only decode: 10-20% cheaper
// than PointInfo on the hot path since it skips the second return entirely.
type PrimaryPointInfo struct {
	Distance     uint16
	Reflectivity uint8
	Signal       uint16
	NIR          uint8
}

// satSubClip subtracts n_vec from raw with saturation at zero, then clips
// to uint16 range. Underflow saturates to zero; overflow saturates to
// 0xFFFF.
func satSubClip(raw, nVec uint32) uint16 {
	var v uint32
	if raw > nVec {
		v = raw - nVec
	}
	if v > 0xFFFF {
		return 0xFFFF
	}
	return uint16(v)
}

// decode20BitRange extracts the 20-bit range packed in the low bits of a
// 32-bit word, used by Single and Dual channels.
func decode20BitRange(word uint32) uint32 {
	return word & ((1 << 20) - 1)
}

// decode15BitRangeX8 extracts the 15-bit range field from a LowData/DualLow
// channel's 16-bit word and scales it by 8. The reference implementation
// computes this as ((word*2 wrapping)/2)*8 — multiplying into u16 overflow
// drops bit 15, then dividing by 2 shifts the remaining 15 bits back down,
// which is equivalent to masking off bit 15 before scaling. Kept in that
// form here for fidelity with the decode the device actually performs.
func decode15BitRangeX8(word uint16) uint32 {
	doubled := word * 2 // wraps silently, uint16 arithmetic
	stripped := doubled / 2
	return uint32(stripped) * 8
}

func decodeChannel(kind profile.Kind, raw []byte, nVec uint32) PointInfo {
	switch kind {
	case profile.KindSingle:
		rangeWord := binary.LittleEndian.Uint32(raw[0:4])
		nir := binary.LittleEndian.Uint16(raw[8:10])
		signal := binary.LittleEndian.Uint16(raw[6:8])
		return PointInfo{
			NIR:   uint8(nir >> 8),
			Count: 1,
			Channels: [2]ChannelInfo{{
				Distance:     satSubClip(decode20BitRange(rangeWord), nVec),
				Reflectivity: raw[4],
				Signal:       signal,
			}},
		}
	case profile.KindDual:
		ret1 := binary.LittleEndian.Uint32(raw[0:4])
		ret2 := binary.LittleEndian.Uint32(raw[4:8])
		signal1 := binary.LittleEndian.Uint16(raw[8:10])
		signal2 := binary.LittleEndian.Uint16(raw[10:12])
		nir := binary.LittleEndian.Uint16(raw[12:14])
		return PointInfo{
			NIR:   uint8(nir >> 8),
			Count: 2,
			Channels: [2]ChannelInfo{
				{
					Distance:     satSubClip(decode20BitRange(ret1), nVec),
					Reflectivity: uint8(ret1 >> 24),
					Signal:       signal1,
				},
				{
					Distance:     satSubClip(decode20BitRange(ret2), nVec),
					Reflectivity: uint8(ret2 >> 24),
					Signal:       signal2,
				},
			},
		}
	case profile.KindLowData:
		word := binary.LittleEndian.Uint16(raw[0:2])
		return PointInfo{
			NIR:   raw[3],
			Count: 1,
			Channels: [2]ChannelInfo{{
				Distance:     satSubClip(decode15BitRangeX8(word), nVec),
				Reflectivity: raw[2],
			}},
		}
	case profile.KindDualLow:
		word1 := binary.LittleEndian.Uint16(raw[0:2])
		word2 := binary.LittleEndian.Uint16(raw[4:6])
		return PointInfo{
			NIR:   raw[3],
			Count: 2,
			Channels: [2]ChannelInfo{
				{
					Distance:     satSubClip(decode15BitRangeX8(word1), nVec),
					Reflectivity: raw[2],
				},
				{
					Distance:     satSubClip(decode15BitRangeX8(word2), nVec),
					Reflectivity: raw[6],
				},
			},
		}
	default:
		panic("ouster/packet: unknown channel kind")
	}
}

func decodeChannelPrimary(kind profile.Kind, raw []byte, nVec uint32) PrimaryPointInfo {
	switch kind {
	case profile.KindSingle:
		rangeWord := binary.LittleEndian.Uint32(raw[0:4])
		nir := binary.LittleEndian.Uint16(raw[8:10])
		return PrimaryPointInfo{
			Distance:     satSubClip(decode20BitRange(rangeWord), nVec),
			Reflectivity: raw[4],
			Signal:       binary.LittleEndian.Uint16(raw[6:8]),
			NIR:          uint8(nir >> 8),
		}
	case profile.KindDual:
		ret1 := binary.LittleEndian.Uint32(raw[0:4])
		nir := binary.LittleEndian.Uint16(raw[12:14])
		return PrimaryPointInfo{
			Distance:     satSubClip(decode20BitRange(ret1), nVec),
			Reflectivity: uint8(ret1 >> 24),
			Signal:       binary.LittleEndian.Uint16(raw[8:10]),
			NIR:          uint8(nir >> 8),
		}
	case profile.KindLowData:
		word := binary.LittleEndian.Uint16(raw[0:2])
		return PrimaryPointInfo{
			Distance:     satSubClip(decode15BitRangeX8(word), nVec),
			Reflectivity: raw[2],
			NIR:          raw[3],
		}
	case profile.KindDualLow:
		word1 := binary.LittleEndian.Uint16(raw[0:2])
		return PrimaryPointInfo{
			Distance:     satSubClip(decode15BitRangeX8(word1), nVec),
			Reflectivity: raw[2],
			NIR:          raw[3],
		}
	default:
		panic("ouster/packet: unknown channel kind")
	}
}
