package kinematics

import (
	"github.com/golang/geo/r2"

	"go.viam.com/planarik/spatialmath"
)

// RequestFromPointer derives the direction and distance of a request from a pointer position
// relative to the base. Clamping is left to the solver.
func RequestFromPointer(firstLength, secondLength float64, pointer r2.Point) Request {
	distance, angle := spatialmath.ToPolar(pointer)
	return Request{
		FirstLength:    firstLength,
		SecondLength:   secondLength,
		DirectionAngle: angle,
		Distance:       distance,
	}
}

// Track solves for the arm reaching toward the pointer.
func Track(solver Solver, firstLength, secondLength float64, pointer r2.Point) LinkageState {
	return solver.Solve(RequestFromPointer(firstLength, secondLength, pointer))
}
