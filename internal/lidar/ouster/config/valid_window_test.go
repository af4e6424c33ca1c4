package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrappingEndInSame(t *testing.T) {
	w := NewValidWindow(2, 0, 1024, 16)
	assert.Equal(t, 1024/16, w.RequiredMeasurements())
}

func TestWrappingWithoutPacketOverlap(t *testing.T) {
	w := NewValidWindow(16, 0, 1024, 16)
	assert.Equal(t, 1024/16, w.RequiredMeasurements())
}

func TestCompleteColsWrapping(t *testing.T) {
	w := NewValidWindow(33, 15, 1024, 16)
	skip, take := w.CalcCompleteColsAligned([]int8{-1, 1}, 16)
	assert.Equal(t, 8, skip)
	assert.Equal(t, ((15+1024-33)/16)*16, take)
}

func TestCalc17Remaining(t *testing.T) {
	w := NewValidWindow(16, 159, 1024, 16)
	skip, take := w.CalcCompleteColsAligned([]int8{-64, 63}, 16)
	assert.Equal(t, 64, skip)
	assert.Equal(t, 16, take)
}

func TestCalc33Remaining(t *testing.T) {
	w := NewValidWindow(16, 160, 1024, 16)
	skip, take := w.CalcCompleteColsAligned([]int8{-64, 63}, 16)
	assert.Equal(t, 64, skip)
	assert.Equal(t, 32, take)
}

func TestCalc32Remaining(t *testing.T) {
	w := NewValidWindow(16, 160, 1024, 16)
	skip, take := w.CalcCompleteColsAligned([]int8{-64, 64}, 16)
	assert.Equal(t, 64, skip)
	assert.Equal(t, 32, take)
}

func TestCalcCompleteColsEvenlyAligned(t *testing.T) {
	w := NewValidWindow(16, 160, 1024, 16)
	skip, take := w.CalcCompleteColsAligned([]int8{-64, 60}, 16)
	assert.Equal(t, 66, skip)
	assert.Equal(t, 32, take)
}

func TestSmallDoesntPanic(t *testing.T) {
	w := NewValidWindow(0, 1, 1024, 13)
	shifts := make([]int8, 128)
	for i := range shifts {
		shifts[i] = 32
	}
	skip, take := w.CalcCompleteColsAligned(shifts, 16)
	assert.Equal(t, 32, skip)
	assert.Equal(t, 0, take)
}
