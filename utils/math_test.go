package utils

import (
	"math"
	"testing"

	"go.viam.com/test"
)

func TestAngleConversion(t *testing.T) {
	test.That(t, DegToRad(180), test.ShouldAlmostEqual, math.Pi)
	test.That(t, RadToDeg(math.Pi/2), test.ShouldAlmostEqual, 90)
	test.That(t, RadToDeg(DegToRad(37.5)), test.ShouldAlmostEqual, 37.5)
}

func TestClamp(t *testing.T) {
	test.That(t, Clamp(1.0000001, -1, 1), test.ShouldEqual, 1.)
	test.That(t, Clamp(-3, -1, 1), test.ShouldEqual, -1.)
	test.That(t, Clamp(0.25, -1, 1), test.ShouldEqual, 0.25)
}

func TestFloat64AlmostEqual(t *testing.T) {
	test.That(t, Float64AlmostEqual(1, 1.00001, 1e-4), test.ShouldBeTrue)
	test.That(t, Float64AlmostEqual(1, 1.001, 1e-4), test.ShouldBeFalse)
}

func TestIsFinite(t *testing.T) {
	test.That(t, IsFinite(0, 1, -2.5), test.ShouldBeTrue)
	test.That(t, IsFinite(1, math.NaN()), test.ShouldBeFalse)
	test.That(t, IsFinite(math.Inf(-1)), test.ShouldBeFalse)
	test.That(t, IsFinite(), test.ShouldBeTrue)
}

func TestConfigErrors(t *testing.T) {
	err := NewConfigValidationFieldRequiredError("arm.json", "first_length")
	test.That(t, err.Error(), test.ShouldContainSubstring, `"first_length" is required`)
	test.That(t, err.Error(), test.ShouldContainSubstring, `"arm.json"`)

	err = NewOutOfRangeError("step_hz", 0, 1, 1000)
	test.That(t, err.Error(), test.ShouldEqual, `"step_hz" must be in [1, 1000], got 0`)
}
