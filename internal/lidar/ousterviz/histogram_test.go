package ousterviz

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistogramHandlerRendersHTML(t *testing.T) {
	handler := HistogramHandler("sensor-a", func() []uint64 {
		return []uint64{0, 1, 0, 2, 61}
	})

	req := httptest.NewRequest("GET", "/ousterviz/histogram", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	require.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Greater(t, rec.Body.Len(), 0)
}
