package config

import (
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/ouster.report/internal/lidar/ouster/profile"
)

func mkConfigParams(t *testing.T, mode LidarMode) ConfigParams {
	t.Helper()
	window, err := NewAzimuthWindow(0, 360_000)
	require.NoError(t, err)
	cp, err := NewConfigParams(ConfigParamsRaw{
		AzimuthWindow:    window,
		LidarMode:        mode,
		UDPDest:          netip.MustParseAddr("192.168.1.100"),
		UDPPortLidar:     7502,
		UDPProfileLidar:  profile.KindDual,
		SignalMultiplier: SignalOne,
	})
	require.NoError(t, err)
	return cp
}

func TestValidateSucceeds(t *testing.T) {
	c := OusterConfig{
		BeamIntrinsics: BeamIntrinsics{
			BeamAltitudeAngles: make([]float32, 128),
			BeamAzimuthAngles:  make([]float32, 128),
		},
		ConfigParams: mkConfigParams(t, Mode1024x10),
		LidarDataFormat: LidarDataFormat{
			ColumnsPerPacket: 16,
			PixelsPerColumn:  128,
			ColumnsPerFrame:  1024,
			ColumnWindowFrom: 0,
			ColumnWindowTo:   1023,
			UDPProfileLidar:  profile.KindDual,
		},
	}
	valid, err := c.Validate(profile.Dual128)
	require.NoError(t, err)
	assert.Equal(t, 64, valid.LidarDataFormat.ColumnWindow.RequiredMeasurements())
}

func TestValidateRejectsModeColumnsMismatch(t *testing.T) {
	c := OusterConfig{
		ConfigParams: mkConfigParams(t, Mode2048x10),
		LidarDataFormat: LidarDataFormat{
			ColumnsPerPacket: 16,
			PixelsPerColumn:  128,
			ColumnsPerFrame:  1024,
			ColumnWindowFrom: 0,
			ColumnWindowTo:   1023,
			UDPProfileLidar:  profile.KindDual,
		},
	}
	_, err := c.Validate(profile.Dual128)
	var invalid *InvalidConfig
	require.ErrorAs(t, err, &invalid)
}

func TestLidarDataFormatValidateRejectsOversizedWindow(t *testing.T) {
	// 2048 columns at 8 per packet needs 256 packets per frame, past the
	// 128-slot completeness bitmap.
	f := LidarDataFormat{
		ColumnsPerPacket: 8,
		PixelsPerColumn:  64,
		ColumnsPerFrame:  2048,
		ColumnWindowFrom: 0,
		ColumnWindowTo:   2047,
		UDPProfileLidar:  profile.KindSingle,
	}
	_, err := f.Validate(profile.Profile{Kind: profile.KindSingle, Columns: 8, Layers: 64})
	var invalid *InvalidConfig
	require.ErrorAs(t, err, &invalid)
}
