package packet

import "encoding/binary"

// Header is implemented by both on-wire header layouts. FrameID always
// returns the 16-bit value used to match packets to a frame, truncating
// the safety header's 32-bit field as the device itself does when mixed
// with non-safety sensors.
type Header interface {
	FrameID() uint16
}

// StandardHeader is the 32-byte header carried by Single, Dual and LowData
// packets: a 16-bit frame id.
type StandardHeader struct {
	PacketType                   uint16
	rawFrameID                   uint16
	InitIDPart1                  uint16
	InitIDPart2                  uint8
	SerialNo1                    uint8
	SerialNo2                    uint32
	ShutdownCountdown            uint8
	ShotLimitingCountdown        uint8
	ShutdownStatusAndReserve     uint8
	ShotLimitingStatusAndReserve uint8
}

// FrameID implements Header.
func (h StandardHeader) FrameID() uint16 { return h.rawFrameID }

func decodeStandardHeader(buf []byte) StandardHeader {
	return StandardHeader{
		PacketType:                   binary.LittleEndian.Uint16(buf[0:2]),
		rawFrameID:                   binary.LittleEndian.Uint16(buf[2:4]),
		InitIDPart1:                  binary.LittleEndian.Uint16(buf[4:6]),
		InitIDPart2:                  buf[6],
		SerialNo1:                    buf[7],
		SerialNo2:                    binary.LittleEndian.Uint32(buf[8:12]),
		ShutdownCountdown:            buf[16],
		ShotLimitingCountdown:        buf[17],
		ShutdownStatusAndReserve:     buf[18],
		ShotLimitingStatusAndReserve: buf[19],
	}
}

// SafetyHeader is the 32-byte alternate header carried by DualLow packets:
// a 32-bit frame id, of which only the low 16 bits are used for matching
// against non-safety sensors.
type SafetyHeader struct {
	PacketType                   uint8
	InitIDPart2                  uint8
	InitIDPart1                  uint16
	RawFrameID                   uint32
	AlertFlag                    uint8
	SerialNo1                    uint8
	SerialNo2                    uint32
	ShutdownCountdown            uint8
	ShotLimitingCountdown        uint8
	ShutdownStatusAndReserve     uint8
	ShotLimitingStatusAndReserve uint8
}

// FrameID implements Header, truncating the 32-bit field to its low
// 16 bits for compatibility with the standard header's matching semantics.
func (h SafetyHeader) FrameID() uint16 { return uint16(h.RawFrameID) }

func decodeSafetyHeader(buf []byte) SafetyHeader {
	return SafetyHeader{
		PacketType:                   buf[0],
		InitIDPart2:                  buf[1],
		InitIDPart1:                  binary.LittleEndian.Uint16(buf[2:4]),
		RawFrameID:                   binary.LittleEndian.Uint32(buf[4:8]),
		AlertFlag:                    buf[8],
		SerialNo1:                    buf[11],
		SerialNo2:                    binary.LittleEndian.Uint32(buf[12:16]),
		ShutdownCountdown:            buf[16],
		ShotLimitingCountdown:        buf[17],
		ShutdownStatusAndReserve:     buf[18],
		ShotLimitingStatusAndReserve: buf[19],
	}
}
