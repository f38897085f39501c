// Package referenceframe does the forward kinematics of planar linkages: translating joint inputs
// into joint positions in the linkage's local frame.
package referenceframe

import (
	"fmt"
	"math"

	"github.com/golang/geo/r2"

	"go.viam.com/planarik/spatialmath"
	"go.viam.com/planarik/utils"
)

// RevoluteLimit is the default range of a planar revolute joint.
var RevoluteLimit = Limit{Min: -2 * math.Pi, Max: 2 * math.Pi}

// PlanarTwoLink is a two degree of freedom planar arm anchored at the origin. The first input is
// the absolute angle of the proximal link, the second the angle of the distal link relative to it.
type PlanarTwoLink struct {
	name         string
	firstLength  float64
	secondLength float64
	limits       []Limit
}

// NewPlanarTwoLink creates a planar two link frame with the default revolute limits.
func NewPlanarTwoLink(name string, firstLength, secondLength float64) (*PlanarTwoLink, error) {
	if !utils.IsFinite(firstLength) || firstLength <= 0 {
		return nil, NewInvalidLengthError("first", firstLength)
	}
	if !utils.IsFinite(secondLength) || secondLength <= 0 {
		return nil, NewInvalidLengthError("second", secondLength)
	}
	return &PlanarTwoLink{
		name:         name,
		firstLength:  firstLength,
		secondLength: secondLength,
		limits:       []Limit{RevoluteLimit, RevoluteLimit},
	}, nil
}

// Name returns the name of the frame.
func (m *PlanarTwoLink) Name() string {
	return m.name
}

// DoF returns the limits of the shoulder and elbow joints.
func (m *PlanarTwoLink) DoF() []Limit {
	return m.limits
}

// Transform returns the base, elbow and end effector positions for the given joint inputs.
// Out of bounds inputs are still computed, but a non-nil error containing OOBErrString is returned.
func (m *PlanarTwoLink) Transform(inputs []Input) ([3]r2.Point, error) {
	if len(inputs) != len(m.limits) {
		return [3]r2.Point{}, NewIncorrectDoFError(len(inputs), len(m.limits))
	}
	var err error
	for i, in := range inputs {
		if !m.limits[i].Contains(in.Value) {
			err = fmt.Errorf("%.5f %s %v", in.Value, OOBErrString, m.limits[i])
			break
		}
	}

	shoulder := inputs[0].Value
	elbowAngle := shoulder + inputs[1].Value
	elbow := spatialmath.NewPointFromPolar(m.firstLength, shoulder)
	end := elbow.Add(spatialmath.NewPointFromPolar(m.secondLength, elbowAngle))
	return [3]r2.Point{spatialmath.Origin, elbow, end}, err
}
