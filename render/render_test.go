package render

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"go.viam.com/test"

	"go.viam.com/planarik/kinematics"
)

func rgb8(c color.Color) (int, int, int) {
	r, g, b, _ := c.RGBA()
	return int(r >> 8), int(g >> 8), int(b >> 8)
}

func TestDrawLinkage(t *testing.T) {
	state := kinematics.NewLinkageState(0, 128, 128)
	img := DrawLinkage(state, DefaultOptions())
	test.That(t, img.Bounds(), test.ShouldResemble, image.Rect(0, 0, 512, 512))

	// Midway along the proximal link, on the horizontal through the base.
	r, g, b := rgb8(img.At(320, 256))
	test.That(t, r, test.ShouldAlmostEqual, 221, 2)
	test.That(t, g, test.ShouldAlmostEqual, 160, 2)
	test.That(t, b, test.ShouldAlmostEqual, 221, 2)

	// Elbow marker.
	r, g, b = rgb8(img.At(384, 256))
	test.That(t, []int{r, g, b}, test.ShouldResemble, []int{255, 255, 255})

	// Nothing drawn above the arm.
	r, g, b = rgb8(img.At(320, 100))
	test.That(t, []int{r, g, b}, test.ShouldResemble, []int{0, 0, 0})
}

func TestSavePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arm.png")
	state := kinematics.AnalyticTwoLink{}.Solve(kinematics.Request{FirstLength: 100, SecondLength: 60, DirectionAngle: 1, Distance: 120})
	test.That(t, SavePNG(path, state, DefaultOptions()), test.ShouldBeNil)

	info, err := os.Stat(path)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, info.Size(), test.ShouldBeGreaterThan, 0)

	opts := DefaultOptions()
	opts.Width = 0
	test.That(t, SavePNG(path, state, opts), test.ShouldNotBeNil)
}
