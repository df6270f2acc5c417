package mapping

import (
	"math"

	"github.com/paulmach/orb"
)

// Direction is a compass bucket used to label approaches and exits of a
// junction.
type Direction string

const (
	North Direction = "north"
	South Direction = "south"
	East  Direction = "east"
	West  Direction = "west"
)

// Bearing returns the angle of the vector origin → target in degrees,
// normalized to [0, 360). Zero-length vectors are the caller's problem.
func Bearing(origin, target orb.Point) float64 {
	angle := math.Atan2(target.Y()-origin.Y(), target.X()-origin.X()) * 180 / math.Pi
	if angle < 0 {
		angle += 360
	}
	return angle
}

// ClassifyBearing buckets a bearing into a compass direction. Boundary
// angles belong to the counter-clockwise bucket: 45 is north, 135 is west,
// 225 is south, 315 is east.
func ClassifyBearing(angle float64) Direction {
	switch {
	case angle >= 315 || angle < 45:
		return East
	case angle < 135:
		return North
	case angle < 225:
		return West
	default:
		return South
	}
}
