package kinematics

import "math"

// Reach is the reachable annulus of a two link arm: the closed range of distances from the base
// that the end effector can attain.
type Reach struct {
	Min float64
	Max float64
}

// NewReach returns the annulus [|L1-L2|, L1+L2] for the given link lengths.
func NewReach(firstLength, secondLength float64) Reach {
	return Reach{
		Min: math.Abs(firstLength - secondLength),
		Max: firstLength + secondLength,
	}
}

// Contains reports whether distance is reachable.
func (r Reach) Contains(distance float64) bool {
	return distance >= r.Min && distance <= r.Max
}

// Clamp returns the nearest reachable distance, and whether it differs from the one given.
func (r Reach) Clamp(distance float64) (float64, bool) {
	if distance > r.Max {
		return r.Max, true
	}
	if distance < r.Min {
		return r.Min, true
	}
	return distance, false
}

// ClampToReach clamps a requested base to end effector distance into the reachable annulus of the
// given link lengths. The lower bound applies whichever link is longer.
func ClampToReach(distance, firstLength, secondLength float64) (float64, bool) {
	return NewReach(firstLength, secondLength).Clamp(distance)
}
