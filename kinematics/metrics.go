package kinematics

import (
	"math"

	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"go.viam.com/planarik/spatialmath"
)

// StateMetric is a function which, given a LinkageState, produces some score. Lower is better.
type StateMetric func(LinkageState) float64

// CombineMetrics returns a StateMetric summing all given metrics.
func CombineMetrics(metrics ...StateMetric) StateMetric {
	return func(s LinkageState) float64 {
		dist := 0.
		for _, metric := range metrics {
			dist += metric(s)
		}
		return dist
	}
}

// SegmentLengthError returns the largest deviation of either link from its configured length.
func SegmentLengthError(s LinkageState) float64 {
	first := math.Abs(spatialmath.Distance(s.Base(), s.Elbow()) - s.FirstLength)
	second := math.Abs(spatialmath.Distance(s.Elbow(), s.EndEffector()) - s.SecondLength)
	return math.Max(first, second)
}

// ReachError returns how far the end effector is from TargetDistance.
func ReachError(s LinkageState) float64 {
	return math.Abs(spatialmath.Distance(s.Base(), s.EndEffector()) - s.TargetDistance)
}

// CheckInvariants returns every way in which the state is not a consistent solved pose, within tolerance.
func CheckInvariants(s LinkageState, tolerance float64) error {
	var err error
	for i, joint := range s.Joints {
		if !spatialmath.PointIsFinite(joint) {
			err = multierr.Append(err, errors.Errorf("joint %d is not finite: %v", i, joint))
		}
	}
	if s.Base() != spatialmath.Origin {
		err = multierr.Append(err, errors.Errorf("base is not at the origin: %v", s.Base()))
	}
	if e := SegmentLengthError(s); !(e <= tolerance) {
		err = multierr.Append(err, errors.Errorf("link length off by %g", e))
	}
	if e := ReachError(s); !(e <= tolerance) {
		err = multierr.Append(err, errors.Errorf("end effector off target distance by %g", e))
	}
	err = multierr.Append(err, checkJointAngles(s, tolerance))
	reach := s.Reach()
	if s.TargetDistance < reach.Min-tolerance || s.TargetDistance > reach.Max+tolerance {
		err = multierr.Append(err, errors.Errorf("distance %g outside reach [%g, %g]", s.TargetDistance, reach.Min, reach.Max))
	}
	return err
}

// checkJointAngles verifies that the state's joint angles, run forward through its frame, land on
// its joints.
func checkJointAngles(s LinkageState, tolerance float64) error {
	frame, err := s.Frame()
	if err != nil {
		return err
	}
	joints, err := frame.Transform(s.JointAngles())
	if err != nil {
		return errors.Wrapf(err, "frame %q", frame.Name())
	}
	for i, joint := range joints {
		if !spatialmath.R2PointAlmostEqual(joint, s.Joints[i], tolerance) {
			err = multierr.Append(err, errors.Errorf("joint angles place joint %d at %v, not %v", i, joint, s.Joints[i]))
		}
	}
	return err
}
