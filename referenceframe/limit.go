package referenceframe

import "go.viam.com/planarik/utils"

// Limit represents the limits of motion for a single degree of freedom.
type Limit struct {
	Min float64
	Max float64
}

// Contains reports whether v lies within the closed interval of the limit.
func (l Limit) Contains(v float64) bool {
	return v >= l.Min && v <= l.Max
}

// Clamp returns v restricted to the limit.
func (l Limit) Clamp(v float64) float64 {
	return utils.Clamp(v, l.Min, l.Max)
}
