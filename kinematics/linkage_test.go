package kinematics

import (
	"math"
	"testing"

	"github.com/golang/geo/r2"
	"go.viam.com/test"

	"go.viam.com/planarik/referenceframe"
)

func TestNewLinkageState(t *testing.T) {
	state := NewLinkageState(math.Pi/2, 128, 64)
	test.That(t, state.TargetDistance, test.ShouldEqual, 192.)
	test.That(t, state.Base(), test.ShouldResemble, r2.Point{})
	test.That(t, state.Elbow().X, test.ShouldAlmostEqual, 0)
	test.That(t, state.Elbow().Y, test.ShouldAlmostEqual, 128)
	test.That(t, state.EndEffector().Y, test.ShouldAlmostEqual, 192)
	test.That(t, CheckInvariants(state, 1e-9), test.ShouldBeNil)

	// The initial pose is already what the solver produces for it.
	solved := AnalyticTwoLink{}.Solve(state.Request())
	for i := range state.Joints {
		test.That(t, solved.Joints[i].X, test.ShouldAlmostEqual, state.Joints[i].X)
		test.That(t, solved.Joints[i].Y, test.ShouldAlmostEqual, state.Joints[i].Y)
	}
}

func TestJointAngles(t *testing.T) {
	state := AnalyticTwoLink{}.Solve(Request{FirstLength: 100, SecondLength: 100, DirectionAngle: 0, Distance: 100 * math.Sqrt2})
	angles := referenceframe.InputsToFloats(state.JointAngles())
	test.That(t, angles[0], test.ShouldAlmostEqual, math.Pi/4)
	test.That(t, angles[1], test.ShouldAlmostEqual, -math.Pi/2)

	extended := NewLinkageState(1, 10, 10)
	angles = referenceframe.InputsToFloats(extended.JointAngles())
	test.That(t, angles[0], test.ShouldAlmostEqual, 1)
	test.That(t, angles[1], test.ShouldAlmostEqual, 0)
}

func TestLinkageStateString(t *testing.T) {
	out := NewLinkageState(0, 128, 128).String()
	test.That(t, out, test.ShouldContainSubstring, "256.00")
	test.That(t, out, test.ShouldContainSubstring, "end effector")
	test.That(t, out, test.ShouldContainSubstring, "256.0000")
}
