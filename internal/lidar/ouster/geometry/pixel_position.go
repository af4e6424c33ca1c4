package geometry

import "github.com/banshee-data/ouster.report/internal/lidar/ouster/config"

// PixelPositionIterator yields the output pixel (col, row) for each sample
// in iteration order, applying per-row azimuth shifts from
// pixel_shift_by_row. Rows iterate fastest; when rows exhaust, the column
// advances. Empty windows yield no items.
type PixelPositionIterator struct {
	pixelShifts []int8
	col         int
	row         int
	colLen      int
	started     bool
	done        bool
}

// NewPixelPositionIterator builds a PixelPositionIterator over an
// inclusive column range [colFrom, colTo].
func NewPixelPositionIterator(pixelShifts []int8, colFrom, colTo int) *PixelPositionIterator {
	length := colTo - colFrom + 1
	return &PixelPositionIterator{
		pixelShifts: pixelShifts,
		colLen:      length,
		done:        length <= 0 || len(pixelShifts) == 0,
	}
}

// NewPixelPositionIteratorFromFormat builds a PixelPositionIterator from a
// validated LidarDataFormat's column window.
func NewPixelPositionIteratorFromFormat(f config.ValidLidarDataFormat) *PixelPositionIterator {
	return NewPixelPositionIterator(f.PixelShiftByRow, f.ColumnWindow.Start(), f.ColumnWindow.End()-1)
}

// Next advances the iterator and reports whether a pixel position was
// produced.
func (it *PixelPositionIterator) Next() (col, row int, ok bool) {
	if it.done {
		return 0, 0, false
	}

	var offset int
	if it.row < len(it.pixelShifts) {
		offset = int(it.pixelShifts[it.row])
		col = it.col
		row = it.row
		it.row++
	} else if it.col < it.colLen-1 {
		it.row = 1
		it.col++
		col = it.col
		row = 0
		offset = int(it.pixelShifts[0])
	} else {
		it.done = true
		return 0, 0, false
	}

	shifted := col + offset
	outCol := ((shifted % it.colLen) + it.colLen) % it.colLen
	return outCol, row, true
}
