package kinematics

import (
	"math"
	"slices"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"go.viam.com/planarik/spatialmath"
	"go.viam.com/planarik/utils"
)

// Solver computes a linkage pose for a request. Implementations must be pure: the same request
// always yields the same state, and no state is kept between calls.
type Solver interface {
	Solve(req Request) LinkageState
}

// SolverType names a Solver implementation.
type SolverType string

// AnalyticSolverType is the closed form two link solver.
const AnalyticSolverType SolverType = "analytic"

var registeredSolvers = map[SolverType]func() Solver{
	AnalyticSolverType: func() Solver { return AnalyticTwoLink{} },
}

// NewSolver returns the solver registered under the given type.
func NewSolver(kind SolverType) (Solver, error) {
	constructor, ok := registeredSolvers[kind]
	if !ok {
		return nil, errors.Errorf("unknown solver type %q, expected one of %v", kind, SolverTypes())
	}
	return constructor(), nil
}

// SolverTypes lists the registered solver types in sorted order.
func SolverTypes() []SolverType {
	kinds := lo.Keys(registeredSolvers)
	slices.Sort(kinds)
	return kinds
}

// AnalyticTwoLink solves two link planar IK in closed form with the law of cosines.
type AnalyticTwoLink struct{}

// Solve clamps the requested distance into the reachable annulus and places the joints so the end
// effector lies at that distance along the requested direction.
func (AnalyticTwoLink) Solve(req Request) LinkageState {
	distance, joints := Solve(req.FirstLength, req.SecondLength, req.DirectionAngle, req.Distance)
	return LinkageState{
		FirstLength:    req.FirstLength,
		SecondLength:   req.SecondLength,
		DirectionAngle: req.DirectionAngle,
		TargetDistance: distance,
		Joints:         joints,
	}
}

// Solve returns the clamped base to end effector distance and the base, elbow and end effector
// positions of a two link arm. Lengths must be positive and finite, the distance non-negative.
func Solve(firstLength, secondLength, directionAngle, requestedDistance float64) (float64, [3]r2.Point) {
	distance, _ := ClampToReach(requestedDistance, firstLength, secondLength)
	theta := baseAngle(firstLength, secondLength, distance)

	elbow := spatialmath.NewPointFromPolar(firstLength, theta+directionAngle)
	end := spatialmath.NewPointFromPolar(distance, directionAngle)
	return distance, [3]r2.Point{spatialmath.Origin, elbow, end}
}

// baseAngle is the angle at the base between the proximal link and the line to the end effector,
// from the law of cosines on the triangle with sides firstLength, distance and secondLength.
func baseAngle(firstLength, secondLength, distance float64) float64 {
	denominator := 2 * firstLength * distance
	if denominator == 0 {
		// Equal links folded onto the base: every elbow direction is valid.
		return math.Pi / 2
	}
	numerator := utils.Square(firstLength) + utils.Square(distance) - utils.Square(secondLength)

	// Account for floating point issues at the edges of the annulus.
	return math.Acos(utils.Clamp(numerator/denominator, -1, 1))
}
