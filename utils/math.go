// Package utils contains small helpers shared across packages.
package utils

import (
	"math"

	"gonum.org/v1/gonum/floats/scalar"
)

// DegToRad converts degrees to radians.
func DegToRad(degrees float64) float64 {
	return degrees * math.Pi / 180
}

// RadToDeg converts radians to degrees.
func RadToDeg(radians float64) float64 {
	return radians * 180 / math.Pi
}

// Clamp limits v to the closed interval [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// Float64AlmostEqual compares two float64s and returns if the difference between them is less than epsilon.
func Float64AlmostEqual(a, b, epsilon float64) bool {
	return scalar.EqualWithinAbs(a, b, epsilon)
}

// Square returns n*n. Faster than math.Pow(n, 2).
func Square(n float64) float64 {
	return n * n
}

// IsFinite reports whether every value is neither NaN nor infinite.
func IsFinite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
