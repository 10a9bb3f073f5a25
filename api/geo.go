package api

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/bitmark-inc/beacon-api/lifecycle"
)

const geoPositionHeaderName = "Geo-Position"

// parseGeoPosition will parse latitude and longitude from the geo-position string
func parseGeoPosition(geoPosition string) (float64, float64, error) {
	positions := strings.Split(geoPosition, ";")

	if len(positions) != 2 {
		return 0, 0, fmt.Errorf("invalid geo-position value")
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(positions[0]), 64)
	if err != nil {
		return 0, 0, err
	}

	long, err := strconv.ParseFloat(strings.TrimSpace(positions[1]), 64)
	if err != nil {
		return 0, 0, err
	}

	return lat, long, nil
}

// geoPositionHeader provides the location a device sends along with a
// request. A device without location permission sends no header.
type geoPositionHeader string

func (h geoPositionHeader) CurrentPosition(ctx context.Context) (float64, float64, error) {
	if strings.TrimSpace(string(h)) == "" {
		return 0, 0, lifecycle.ErrPermissionDenied
	}

	lat, lng, err := parseGeoPosition(string(h))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %s", lifecycle.ErrInvalidLocation, err)
	}

	return lat, lng, nil
}
