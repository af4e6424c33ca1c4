package packet

import (
	"errors"
	"unsafe"

	"github.com/banshee-data/ouster.report/internal/lidar/ouster/profile"
)

// alignment is the byte boundary a buffer's backing array must start on
// for FromAligned to view it in place without risking unaligned
// multi-byte loads.
const alignment = 32

// Packet is a view over one UDP datagram's bytes: a header, Profile.Columns
// columns of Profile.Layers channels each, and a reserved tail. It wraps a
// byte slice rather than exposing typed struct fields directly — the Go
// analog of the reference implementation's aligned-memory cast, since Go
// has no portable way to overlay an arbitrary struct on an arbitrary
// buffer without unsafe per-field assumptions that would have to be
// re-derived for every profile anyway.
type Packet struct {
	Profile profile.Profile
	Header  Header
	raw     []byte
}

// FromAligned interprets buf as a Packet without copying. It fails with
// SizeMismatch if len(buf) does not match p's packet size, and Misaligned
// if buf's backing array is not 32-byte aligned.
func FromAligned(buf []byte, p profile.Profile) (*Packet, error) {
	want := p.PacketSize()
	if len(buf) != want {
		return nil, &SizeMismatch{Expected: want, Actual: len(buf)}
	}
	if len(buf) > 0 {
		addr := uintptr(unsafe.Pointer(&buf[0]))
		if addr%alignment != 0 {
			return nil, &Misaligned{Address: addr}
		}
	}
	return newPacket(buf, p), nil
}

// FromUnaligned allocates an owned copy of buf and interprets it as a
// Packet, regardless of buf's alignment. Fails with SizeMismatch if
// len(buf) does not match p's packet size.
func FromUnaligned(buf []byte, p profile.Profile) (*Packet, error) {
	want := p.PacketSize()
	if len(buf) != want {
		return nil, &SizeMismatch{Expected: want, Actual: len(buf)}
	}
	owned := make([]byte, want)
	copy(owned, buf)
	return newPacket(owned, p), nil
}

// FromBytes tries the zero-copy FromAligned path first and falls back to
// FromUnaligned's copy when the buffer is misaligned. When buf is aligned
// the returned Packet aliases buf rather than owning a copy; the UDP and
// PCAP ingest commands reuse their receive buffers and therefore call
// FromUnaligned directly.
func FromBytes(buf []byte, p profile.Profile) (*Packet, error) {
	pkt, err := FromAligned(buf, p)
	if err == nil {
		return pkt, nil
	}
	var mis *Misaligned
	if errors.As(err, &mis) {
		return FromUnaligned(buf, p)
	}
	return nil, err
}

// Zero allocates a packet-sized buffer of zeroed bytes and wraps it as a
// Packet. Used by the aggregator to pre-populate a frame's slots before any
// real packet has landed in them, so an incomplete frame's unset rows
// decode as zero rather than aliasing leftover memory from a prior frame.
func Zero(p profile.Profile) *Packet {
	return newPacket(make([]byte, p.PacketSize()), p)
}

func newPacket(buf []byte, p profile.Profile) *Packet {
	var hdr Header
	if p.Kind.UsesSafetyHeader() {
		hdr = decodeSafetyHeader(buf[:32])
	} else {
		hdr = decodeStandardHeader(buf[:32])
	}
	return &Packet{Profile: p, Header: hdr, raw: buf}
}

// AsBytes re-exposes the packet's bytes for network send or persistence.
// For a packet built with FromAligned this is the original buffer; no copy
// is made.
func (pk *Packet) AsBytes() []byte {
	return pk.raw
}

// Column returns a view over the i-th column (0-indexed, i < Profile.Columns).
func (pk *Packet) Column(i int) Column {
	colSize := pk.Profile.ColumnSize()
	start := profile.HeaderSize + i*colSize
	return Column{
		raw:  pk.raw[start : start+colSize],
		kind: pk.Profile.Kind,
		L:    pk.Profile.Layers,
	}
}

// Reset zeroes the packet's backing buffer in place and re-decodes the
// (now zero) header. Used by the aggregator to scrub a frame slot before
// reuse, so a reclaimed buffer never leaks a prior frame's content into a
// slot that never receives a new packet.
func (pk *Packet) Reset() {
	for i := range pk.raw {
		pk.raw[i] = 0
	}
	if pk.Profile.Kind.UsesSafetyHeader() {
		pk.Header = decodeSafetyHeader(pk.raw[:32])
	} else {
		pk.Header = decodeStandardHeader(pk.raw[:32])
	}
}
