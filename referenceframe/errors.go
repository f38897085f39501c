package referenceframe

import "github.com/pkg/errors"

// OOBErrString is a string that all OOB errors should contain, so that they can be checked for distinct from other Transform errors.
const OOBErrString = "input out of bounds"

// NewIncorrectDoFError returns an error indicating that the number of inputs does not match the frame's DoF.
func NewIncorrectDoFError(actual, expected int) error {
	return errors.Errorf("number of inputs does not match frame DoF, expected %d but got %d", expected, actual)
}

// NewInvalidLengthError returns an error indicating that a link length is not a positive finite number.
func NewInvalidLengthError(name string, length float64) error {
	return errors.Errorf("link %q length must be positive and finite, got %g", name, length)
}
