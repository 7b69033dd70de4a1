package path

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/Carmen-Shannon/oxy-motion/common"
)

// Destination is a named point a Homing controller can fly to.
type Destination struct {
	ID       string
	Position r3.Vec
}

// LatLng places a destination on a sphere of the given radius from a latitude and
// longitude in degrees. Longitude increases westward around +Y, matching the globe texture.
//
// Parameters:
//   - id: the destination name
//   - lat: latitude in degrees
//   - lng: longitude in degrees
//   - radius: sphere radius
//
// Returns:
//   - Destination: the placed destination
func LatLng(id string, lat, lng, radius float64) Destination {
	latRad := common.Radians(lat)
	lngRad := common.Radians(360 - lng)
	return Destination{
		ID: id,
		Position: r3.Vec{
			X: radius * math.Cos(latRad) * math.Cos(lngRad),
			Y: radius * math.Sin(latRad),
			Z: radius * math.Cos(latRad) * math.Sin(lngRad),
		},
	}
}

// InvalidTargetError is returned by SetTarget for a destination id that was never registered.
type InvalidTargetError struct {
	ID string
}

func (e *InvalidTargetError) Error() string {
	return fmt.Sprintf("path: unknown destination %q", e.ID)
}
