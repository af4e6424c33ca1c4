package packet

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/ouster.report/internal/lidar/ouster/profile"
)

func TestSizeInvariants(t *testing.T) {
	assert.Equal(t, 32, profile.HeaderSize)
	assert.Equal(t, 12, profile.ColumnHeaderSize)

	cases := []struct {
		name string
		p    profile.Profile
		want int
	}{
		{"Single128", profile.Single128, 24832},
		{"Dual128", profile.Dual128, 33024},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, c.p.PacketSize())
		})
	}
}

func TestPacketSizeSelfConsistent(t *testing.T) {
	// Dual/64 and LowData/128 are not independently asserted by the
	// reference implementation's own test suite; this checks the
	// computed size is internally self-consistent (header + C columns +
	// reserved) rather than trusting an unverified literal.
	for _, p := range []profile.Profile{profile.Dual64, profile.LowData128, profile.DualLow128} {
		want := profile.HeaderSize + p.Columns*(profile.ColumnHeaderSize+p.Layers*p.Kind.ChannelSize()) + profile.ReservedSize
		assert.Equal(t, want, p.PacketSize())
	}
}

func fillPacket(p profile.Profile, frameID uint16) []byte {
	buf := make([]byte, p.PacketSize())
	if p.Kind.UsesSafetyHeader() {
		buf[4] = byte(frameID)
		buf[5] = byte(frameID >> 8)
	} else {
		buf[2] = byte(frameID)
		buf[3] = byte(frameID >> 8)
	}
	for i := 0; i < p.Columns; i++ {
		colStart := profile.HeaderSize + i*p.ColumnSize()
		mid := uint16(i * p.Columns)
		buf[colStart+8] = byte(mid)
		buf[colStart+9] = byte(mid >> 8)
	}
	return buf
}

func TestRoundTrip(t *testing.T) {
	for _, p := range []profile.Profile{profile.Single128, profile.Dual128, profile.Dual64, profile.LowData128, profile.DualLow128} {
		buf := fillPacket(p, 7)
		pkt, err := FromUnaligned(buf, p)
		require.NoError(t, err)
		require.Equal(t, uint16(7), pkt.Header.FrameID())
		if diff := cmp.Diff(buf, pkt.AsBytes()); diff != "" {
			t.Errorf("round trip mismatch for %s (-want +got):\n%s", p.Kind, diff)
		}
	}
}

func TestFromAlignedSizeMismatch(t *testing.T) {
	_, err := FromAligned(make([]byte, 10), profile.Single128)
	var sm *SizeMismatch
	require.ErrorAs(t, err, &sm)
	assert.Equal(t, profile.Single128.PacketSize(), sm.Expected)
	assert.Equal(t, 10, sm.Actual)
}

func TestFromBytesSucceedsRegardlessOfAlignment(t *testing.T) {
	// FromBytes must succeed whether the buffer happens to land aligned
	// or not, via FromAligned or the FromUnaligned fallback.
	big := make([]byte, profile.Single128.PacketSize()+1)
	buf := big[1:]
	pkt, err := FromBytes(buf, profile.Single128)
	require.NoError(t, err)
	assert.Equal(t, profile.Single128.PacketSize(), len(pkt.AsBytes()))
}

func TestRangeDecodeMonotonicity(t *testing.T) {
	assert.Equal(t, uint16(0), satSubClip(5, 10))
	assert.Equal(t, uint16(5), satSubClip(10, 5))
	assert.Equal(t, uint16(0xFFFF), satSubClip(0xFFFFFF, 0))
}

func TestSingleChannelDecode(t *testing.T) {
	raw := make([]byte, profile.KindSingle.ChannelSize())
	// range_and_reserved low 20 bits = 1000, top bits reserved/garbage.
	raw[0] = byte(1000 & 0xFF)
	raw[1] = byte(1000 >> 8)
	raw[4] = 42  // reflectivity
	raw[6] = 11  // signal low byte
	raw[9] = 200 // nir high byte (nir field is raw[8:10], top byte at raw[9])

	info := decodeChannel(profile.KindSingle, raw, 100)
	require.Equal(t, 1, info.Count)
	assert.Equal(t, uint16(900), info.Channels[0].Distance)
	assert.Equal(t, uint8(42), info.Channels[0].Reflectivity)
	assert.Equal(t, uint16(11), info.Channels[0].Signal)
	assert.Equal(t, uint8(200), info.NIR)
}

func TestLowDataChannelDecode(t *testing.T) {
	raw := make([]byte, profile.KindLowData.ChannelSize())
	raw[0] = 100 // low byte of distance_and_reserve
	raw[2] = 30  // reflectivity
	raw[3] = 9   // nir

	info := decodeChannel(profile.KindLowData, raw, 50)
	require.Equal(t, 1, info.Count)
	// 100 & 0x7FFF == 100, *8 == 800, minus n_vec 50 == 750
	assert.Equal(t, uint16(750), info.Channels[0].Distance)
	assert.Equal(t, uint8(30), info.Channels[0].Reflectivity)
	assert.Equal(t, uint8(9), info.NIR)
}

func TestDualChannelBothReturns(t *testing.T) {
	raw := make([]byte, profile.KindDual.ChannelSize())
	// ret1 range word at raw[0:4], low 20 bits = 500.
	raw[0], raw[1] = byte(500&0xFF), byte(500>>8)
	// ret2 range word at raw[4:8], low 20 bits = 700.
	raw[4], raw[5] = byte(700&0xFF), byte(700>>8)

	info := decodeChannel(profile.KindDual, raw, 0)
	require.Equal(t, 2, info.Count)
	assert.Equal(t, uint16(500), info.Channels[0].Distance)
	assert.Equal(t, uint16(700), info.Channels[1].Distance)
}
