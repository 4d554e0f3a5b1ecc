// Package sampler extracts the average color of a small window of a frame.
package sampler

import (
	"image"

	"gocv.io/x/gocv"

	"github.com/ayusman/chromatip/internal/chroma"
)

// DefaultRadius is the half-width of the sampling window in pixels.
const DefaultRadius = 15

// Sample returns the mean color of the square window of side 2*radius
// centered on p. The center is clamped so the window always lies inside
// the frame. When radius is zero or the frame is smaller than the window,
// the single pixel at p (clamped to the frame) is returned instead.
//
// The frame is expected in BGR channel order; the result is RGB. An empty
// frame or one with fewer than three channels yields the zero color, so
// callers check the frame first.
func Sample(frame gocv.Mat, p image.Point, radius int) chroma.RGB {
	if frame.Empty() || frame.Channels() < 3 {
		return chroma.RGB{}
	}

	w, h := frame.Cols(), frame.Rows()
	rect := Window(image.Pt(w, h), p, radius)
	if rect.Empty() {
		return pixel(frame, clamp(p.X, 0, w-1), clamp(p.Y, 0, h-1))
	}

	region := frame.Region(rect)
	defer region.Close()

	mean := region.Mean()

	return chroma.RGB{
		R: uint8(mean.Val3),
		G: uint8(mean.Val2),
		B: uint8(mean.Val1),
	}
}

// Window returns the rectangle Sample averages over for p and radius
// in a frame of the given size. An empty rectangle means single-pixel sampling.
func Window(size image.Point, p image.Point, radius int) image.Rectangle {
	if radius <= 0 || size.X < 2*radius || size.Y < 2*radius {
		return image.Rectangle{}
	}
	x := clamp(p.X, radius, size.X-radius)
	y := clamp(p.Y, radius, size.Y-radius)
	return image.Rect(x-radius, y-radius, x+radius, y+radius)
}

func pixel(frame gocv.Mat, x, y int) chroma.RGB {
	v := frame.GetVecbAt(y, x)
	return chroma.RGB{R: v[2], G: v[1], B: v[0]}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
