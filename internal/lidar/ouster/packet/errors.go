package packet

import "fmt"

// SizeMismatch is returned when a buffer handed to FromAligned, FromUnaligned
// or FromBytes does not match the exact byte size the given profile expects.
type SizeMismatch struct {
	Expected int
	Actual   int
}

func (e *SizeMismatch) Error() string {
	return fmt.Sprintf("ouster/packet: expected %d bytes, got %d", e.Expected, e.Actual)
}

// Misaligned is returned by FromAligned when the supplied buffer's backing
// array does not start on a 32-byte boundary, and so cannot be viewed
// in place without risking unaligned multi-byte loads.
type Misaligned struct {
	Address uintptr
}

func (e *Misaligned) Error() string {
	return fmt.Sprintf("ouster/packet: buffer at address 0x%x is not 32-byte aligned", e.Address)
}
