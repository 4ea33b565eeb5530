package services

import (
	"bytes"
	"strings"

	"github.com/rwcarlsen/goexif/exif"
	"go.uber.org/zap"

	"snaphistory/models"
)

// ExifService reads GPS positions embedded in image metadata. Extraction is
// best-effort enrichment: any decode or tag failure yields no coordinates
// rather than an error.
type ExifService struct {
	logger *zap.Logger
}

func NewExifService(logger *zap.Logger) *ExifService {
	return &ExifService{logger: logger}
}

// ExtractGPS returns the capture location stored in the image's EXIF tags,
// or nil when the image carries no usable GPS data.
func (s *ExifService) ExtractGPS(image []byte) *models.Coordinates {
	x, err := exif.Decode(bytes.NewReader(image))
	if err != nil {
		s.logger.Debug("no exif metadata", zap.Error(err))
		return nil
	}

	lat, ok := tagDegrees(x, exif.GPSLatitude, exif.GPSLatitudeRef, "S")
	if !ok {
		return nil
	}
	lon, ok := tagDegrees(x, exif.GPSLongitude, exif.GPSLongitudeRef, "W")
	if !ok {
		return nil
	}
	return &models.Coordinates{Lat: lat, Lon: lon}
}

// tagDegrees reads a DMS rational triplet plus its hemisphere reference and
// converts it to signed decimal degrees.
func tagDegrees(x *exif.Exif, field, refField exif.FieldName, negatingRef string) (float64, bool) {
	tag, err := x.Get(field)
	if err != nil {
		return 0, false
	}

	var dms [3]float64
	for i := range dms {
		num, den, err := tag.Rat2(i)
		if err != nil || den == 0 {
			return 0, false
		}
		dms[i] = float64(num) / float64(den)
	}

	negate := false
	if refTag, err := x.Get(refField); err == nil {
		if ref, err := refTag.StringVal(); err == nil {
			negate = strings.EqualFold(strings.TrimSpace(ref), negatingRef)
		}
	}
	return dmsToDecimal(dms[0], dms[1], dms[2], negate), true
}

// dmsToDecimal converts degrees/minutes/seconds to decimal degrees. The
// southern and western hemispheres negate the magnitude.
func dmsToDecimal(deg, min, sec float64, negate bool) float64 {
	value := deg + min/60.0 + sec/3600.0
	if negate {
		return -value
	}
	return value
}
