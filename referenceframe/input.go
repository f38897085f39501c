package referenceframe

import "go.viam.com/planarik/utils"

// Input wraps the input to a mutable frame, e.g. a joint angle. Revolute inputs are in radians.
type Input struct {
	Value float64
}

// FloatsToInputs wraps a slice of floats in Inputs.
func FloatsToInputs(floats []float64) []Input {
	inputs := make([]Input, len(floats))
	for i, f := range floats {
		inputs[i] = Input{f}
	}
	return inputs
}

// InputsToFloats unwraps Inputs to raw floats.
func InputsToFloats(inputs []Input) []float64 {
	floats := make([]float64, len(inputs))
	for i, f := range inputs {
		floats[i] = f.Value
	}
	return floats
}

// InputsToDegrees unwraps revolute Inputs and converts them to degrees.
func InputsToDegrees(inputs []Input) []float64 {
	degrees := make([]float64, len(inputs))
	for i, f := range inputs {
		degrees[i] = utils.RadToDeg(f.Value)
	}
	return degrees
}
