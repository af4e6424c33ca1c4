package config

import "github.com/banshee-data/ouster.report/internal/lidar/ouster/profile"

// LidarDataFormat describes the packet layout and azimuth windowing the
// device is configured for.
type LidarDataFormat struct {
	ColumnsPerPacket uint8
	PixelsPerColumn  uint8
	ColumnsPerFrame  uint16
	PixelShiftByRow  []int8
	ColumnWindowFrom uint16
	ColumnWindowTo   uint16
	UDPProfileLidar  profile.Kind
}

// ValidLidarDataFormat is a LidarDataFormat that has been checked against
// a specific profile's (C, L) and had its ValidWindow precomputed.
type ValidLidarDataFormat struct {
	ColumnsPerFrame uint16
	PixelShiftByRow []int8
	ColumnWindow    ValidWindow
	UDPProfileLidar profile.Kind
}

// Validate checks f against p's column/layer counts and builds a
// ValidLidarDataFormat, or returns InvalidConfig.
func (f LidarDataFormat) Validate(p profile.Profile) (ValidLidarDataFormat, error) {
	if int(f.PixelsPerColumn) != p.Layers {
		return ValidLidarDataFormat{}, invalidf("expected pixels_per_column to be %d, got %d", p.Layers, f.PixelsPerColumn)
	}
	if int(f.ColumnsPerPacket) != p.Columns {
		return ValidLidarDataFormat{}, invalidf("expected columns_per_packet to be %d, got %d", p.Columns, f.ColumnsPerPacket)
	}

	window := NewValidWindowFromFormat(f, p.Columns)
	if window.RequiredMeasurements() > 128 {
		return ValidLidarDataFormat{}, invalidf("column window needs %d packets per frame, more than the supported 128", window.RequiredMeasurements())
	}

	return ValidLidarDataFormat{
		ColumnsPerFrame: f.ColumnsPerFrame,
		PixelShiftByRow: f.PixelShiftByRow,
		ColumnWindow:    window,
		UDPProfileLidar: f.UDPProfileLidar,
	}, nil
}

// CalcCompleteColsAligned forwards to the precomputed ColumnWindow.
func (f ValidLidarDataFormat) CalcCompleteColsAligned(alignment int) (int, int) {
	return f.ColumnWindow.CalcCompleteColsAligned(f.PixelShiftByRow, alignment)
}

// ShiftRange is the [min, max] of PixelShiftByRow.
func (f LidarDataFormat) ShiftRange() (min, max int8) {
	if len(f.PixelShiftByRow) == 0 {
		return 0, 0
	}
	min, max = f.PixelShiftByRow[0], f.PixelShiftByRow[0]
	for _, v := range f.PixelShiftByRow[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}
