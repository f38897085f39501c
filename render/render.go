// Package render draws solved linkages to images.
package render

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"

	"go.viam.com/planarik/kinematics"
)

var (
	// Plum is the link color.
	Plum = color.RGBA{R: 221, G: 160, B: 221, A: 255}
	// JointColor marks each joint.
	JointColor = color.White
)

// Options controls the canvas. The base is drawn at the center with Y pointing up.
type Options struct {
	Width       int
	Height      int
	Scale       float64
	LineWidth   float64
	JointRadius float64
	Background  color.Color
}

// DefaultOptions is a 512x512 black canvas, one pixel per unit.
func DefaultOptions() Options {
	return Options{
		Width:       512,
		Height:      512,
		Scale:       1,
		LineWidth:   8,
		JointRadius: 5,
		Background:  color.Black,
	}
}

// DrawLinkage draws the links as a polyline through the joints, with a marker at each joint.
func DrawLinkage(state kinematics.LinkageState, opts Options) image.Image {
	dc := gg.NewContext(opts.Width, opts.Height)
	dc.SetColor(opts.Background)
	dc.Clear()

	toCanvas := func(p r2.Point) (float64, float64) {
		return float64(opts.Width)/2 + p.X*opts.Scale, float64(opts.Height)/2 - p.Y*opts.Scale
	}

	dc.SetColor(Plum)
	dc.SetLineWidth(opts.LineWidth)
	dc.SetLineCap(gg.LineCapRound)
	dc.SetLineJoin(gg.LineJoinRound)
	for i, joint := range state.Joints {
		x, y := toCanvas(joint)
		if i == 0 {
			dc.MoveTo(x, y)
			continue
		}
		dc.LineTo(x, y)
	}
	dc.Stroke()

	if opts.JointRadius > 0 {
		dc.SetColor(JointColor)
		for _, joint := range state.Joints {
			x, y := toCanvas(joint)
			dc.DrawCircle(x, y, opts.JointRadius)
			dc.Fill()
		}
	}
	return dc.Image()
}

// SavePNG draws the linkage and writes it to path.
func SavePNG(path string, state kinematics.LinkageState, opts Options) error {
	if opts.Width <= 0 || opts.Height <= 0 {
		return errors.Errorf("invalid canvas size %dx%d", opts.Width, opts.Height)
	}
	dc := gg.NewContextForImage(DrawLinkage(state, opts))
	if err := dc.SavePNG(path); err != nil {
		return errors.Wrapf(err, "cannot save %q", path)
	}
	return nil
}
