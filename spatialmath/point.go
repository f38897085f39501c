// Package spatialmath defines the planar geometry helpers used by the linkage solver.
// Points are golang/geo r2 points expressed in the arm's local frame, base at the origin.
package spatialmath

import (
	"math"

	"github.com/golang/geo/r2"

	"go.viam.com/planarik/utils"
)

// Origin is the base of every linkage.
var Origin = r2.Point{}

// NewPointFromPolar returns the point at the given distance along the given angle (radians) from the origin.
func NewPointFromPolar(radius, theta float64) r2.Point {
	return r2.Point{X: radius * math.Cos(theta), Y: radius * math.Sin(theta)}
}

// ToPolar returns the distance of p from the origin and the angle from the positive X axis to p.
func ToPolar(p r2.Point) (radius, theta float64) {
	return p.Norm(), math.Atan2(p.Y, p.X)
}

// Distance returns the euclidean distance between two points.
func Distance(a, b r2.Point) float64 {
	return a.Sub(b).Norm()
}

// R2PointAlmostEqual compares two points component-wise.
func R2PointAlmostEqual(a, b r2.Point, epsilon float64) bool {
	return utils.Float64AlmostEqual(a.X, b.X, epsilon) && utils.Float64AlmostEqual(a.Y, b.Y, epsilon)
}

// PointIsFinite reports whether neither coordinate is NaN or infinite.
func PointIsFinite(p r2.Point) bool {
	return utils.IsFinite(p.X, p.Y)
}
