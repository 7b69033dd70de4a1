package pulse

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/Carmen-Shannon/oxy-motion/common"
)

// SphereLayout places rows of tiles around a sphere. Rows run from just above the south pole
// to just below the north pole, skipping both poles, and every tile faces the center.
// Item ids are row*cols+col, matching Field.
//
// Parameters:
//   - radius: sphere radius
//   - splitRow: number of latitude bands around the full circle (rows = splitRow/2-1)
//   - splitCol: number of tiles per row
//
// Returns:
//   - []common.Transform: one local transform per tile
//   - int: row count
//   - int: column count
func SphereLayout(radius float64, splitRow, splitCol int) ([]common.Transform, int, int) {
	rows := splitRow/2 - 1
	if rows <= 0 || splitCol <= 0 {
		return nil, 0, 0
	}
	rowDeg := 360 / float64(splitRow)
	colDeg := 360 / float64(splitCol)
	up := r3.Vec{Y: 1}

	out := make([]common.Transform, 0, rows*splitCol)
	for i := 1; i <= rows; i++ {
		base := common.Radians(rowDeg*float64(i) - 90)
		ringRadius := math.Cos(base) * radius
		y := math.Sin(base) * radius
		for j := 0; j < splitCol; j++ {
			a := common.Radians(colDeg * float64(j))
			t := common.IdentityTransform()
			t.Position = r3.Vec{X: ringRadius * math.Cos(a), Y: y, Z: ringRadius * math.Sin(a)}
			t.Rotation = common.LookRotation(r3.Scale(-1, t.Position), up)
			out = append(out, t)
		}
	}
	return out, rows, splitCol
}
