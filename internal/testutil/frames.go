// Package testutil builds synthetic BGR frames for tests.
package testutil

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"
)

// Common colors, given as RGB.
var (
	Black = color.RGBA{0, 0, 0, 0}
	White = color.RGBA{255, 255, 255, 0}
	Red   = color.RGBA{255, 0, 0, 0}
	Blue  = color.RGBA{0, 0, 255, 0}
	// Skin falls inside the default skin band (OpenCV HSV about (10,150,220)).
	Skin = color.RGBA{220, 142, 91, 0}
)

// Solid returns a width x height frame filled with c.
func Solid(width, height int, c color.RGBA) *gocv.Mat {
	mat := gocv.NewMatWithSizeFromScalar(scalar(c), height, width, gocv.MatTypeCV8UC3)
	return &mat
}

// WithRect returns a frame filled with bg and a filled rectangle r in fg.
func WithRect(width, height int, bg, fg color.RGBA, r image.Rectangle) *gocv.Mat {
	mat := Solid(width, height, bg)
	gocv.Rectangle(mat, r, fg, -1)
	return mat
}

// MovingRect returns n frames with a size x size square in fg moving by
// step each frame, starting at origin.
func MovingRect(width, height, size, n int, origin, step image.Point, bg, fg color.RGBA) []*gocv.Mat {
	frames := make([]*gocv.Mat, 0, n)
	for i := 0; i < n; i++ {
		at := origin.Add(step.Mul(i))
		frames = append(frames, WithRect(width, height, bg, fg, image.Rectangle{Min: at, Max: at.Add(image.Pt(size, size))}))
	}
	return frames
}

// CloseAll releases every frame.
func CloseAll(frames []*gocv.Mat) {
	for _, f := range frames {
		f.Close()
	}
}

// PixelRGB returns the color at (x, y) of a BGR frame.
func PixelRGB(frame gocv.Mat, x, y int) color.RGBA {
	v := frame.GetVecbAt(y, x)
	return color.RGBA{v[2], v[1], v[0], 0}
}

func scalar(c color.RGBA) gocv.Scalar {
	return gocv.NewScalar(float64(c.B), float64(c.G), float64(c.R), 0)
}
