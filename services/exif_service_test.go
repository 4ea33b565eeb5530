package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestDmsToDecimal(t *testing.T) {
	// 40°26'46" N
	assert.InDelta(t, 40.4461, dmsToDecimal(40, 26, 46, false), 1e-4)
	// Same magnitude, southern hemisphere.
	assert.InDelta(t, -40.4461, dmsToDecimal(40, 26, 46, true), 1e-4)
	assert.Equal(t, 0.0, dmsToDecimal(0, 0, 0, false))
}

func TestExtractGPSNoExif(t *testing.T) {
	s := NewExifService(zap.NewNop())

	assert.Nil(t, s.ExtractGPS([]byte("not an image")))
	assert.Nil(t, s.ExtractGPS(nil))
}
