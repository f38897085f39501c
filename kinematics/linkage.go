// Package kinematics implements closed form inverse kinematics for planar two link arms.
package kinematics

import (
	"fmt"
	"math"

	"github.com/golang/geo/r2"
	"github.com/jedib0t/go-pretty/v6/table"

	"go.viam.com/planarik/referenceframe"
	"go.viam.com/planarik/spatialmath"
)

// Joint indexes into LinkageState.Joints.
const (
	BaseJoint = iota
	ElbowJoint
	EndEffectorJoint
)

const frameName = "arm"

// Request holds the scalar inputs a driver sets before each solve.
type Request struct {
	FirstLength    float64
	SecondLength   float64
	DirectionAngle float64
	Distance       float64
}

// LinkageState is a solved two link arm. It is a value: solvers return a new state rather than
// modifying an existing one.
type LinkageState struct {
	FirstLength  float64
	SecondLength float64
	// DirectionAngle is the angle in radians from the positive X axis to the end effector, as given.
	DirectionAngle float64
	// TargetDistance is the base to end effector distance actually used, after clamping.
	TargetDistance float64
	Joints         [3]r2.Point
}

// NewLinkageState returns the fully extended arm pointing along angle.
func NewLinkageState(angle, firstLength, secondLength float64) LinkageState {
	reach := firstLength + secondLength
	return LinkageState{
		FirstLength:    firstLength,
		SecondLength:   secondLength,
		DirectionAngle: angle,
		TargetDistance: reach,
		Joints: [3]r2.Point{
			spatialmath.Origin,
			spatialmath.NewPointFromPolar(firstLength, angle),
			spatialmath.NewPointFromPolar(reach, angle),
		},
	}
}

// Request returns the request that reproduces this state.
func (s LinkageState) Request() Request {
	return Request{
		FirstLength:    s.FirstLength,
		SecondLength:   s.SecondLength,
		DirectionAngle: s.DirectionAngle,
		Distance:       s.TargetDistance,
	}
}

// Base returns the fixed base joint.
func (s LinkageState) Base() r2.Point {
	return s.Joints[BaseJoint]
}

// Elbow returns the joint between the two links.
func (s LinkageState) Elbow() r2.Point {
	return s.Joints[ElbowJoint]
}

// EndEffector returns the free end of the distal link.
func (s LinkageState) EndEffector() r2.Point {
	return s.Joints[EndEffectorJoint]
}

// Reach returns the reachable annulus for the state's link lengths.
func (s LinkageState) Reach() Reach {
	return NewReach(s.FirstLength, s.SecondLength)
}

// Frame returns the forward kinematics frame for the state's link lengths.
func (s LinkageState) Frame() (*referenceframe.PlanarTwoLink, error) {
	return referenceframe.NewPlanarTwoLink(frameName, s.FirstLength, s.SecondLength)
}

// JointAngles returns the shoulder angle (absolute, proximal link) and the elbow angle (distal link
// relative to the proximal one) in radians, both in [-pi, pi].
func (s LinkageState) JointAngles() []referenceframe.Input {
	elbow := s.Elbow()
	distal := s.EndEffector().Sub(elbow)
	shoulder := math.Atan2(elbow.Y, elbow.X)
	relative := math.Remainder(math.Atan2(distal.Y, distal.X)-shoulder, 2*math.Pi)
	return referenceframe.FloatsToInputs([]float64{shoulder, relative})
}

// String renders the joints as a table.
func (s LinkageState) String() string {
	t := table.NewWriter()
	t.SetTitle("L1 %.2f, L2 %.2f, angle %.4f rad, distance %.2f",
		s.FirstLength, s.SecondLength, s.DirectionAngle, s.TargetDistance)
	t.AppendHeader(table.Row{"Joint", "X", "Y"})
	for i, name := range []string{"base", "elbow", "end effector"} {
		t.AppendRow(table.Row{name, fmt.Sprintf("%.4f", s.Joints[i].X), fmt.Sprintf("%.4f", s.Joints[i].Y)})
	}
	return t.Render()
}
