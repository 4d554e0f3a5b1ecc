package capture

import (
	"image"

	"gocv.io/x/gocv"
)

// ToGray converts a frame to single-channel grayscale. A positive odd
// blur size applies a Gaussian blur of that size to reduce sensor noise.
// The caller must close the returned Mat.
func ToGray(frame gocv.Mat, blur int) gocv.Mat {
	gray := gocv.NewMat()

	if frame.Channels() > 1 {
		gocv.CvtColor(frame, &gray, gocv.ColorBGRToGray)
	} else {
		frame.CopyTo(&gray)
	}

	if blur <= 0 {
		return gray
	}
	if blur%2 == 0 {
		blur++
	}

	blurred := gocv.NewMat()
	gocv.GaussianBlur(gray, &blurred, image.Point{X: blur, Y: blur}, 0, 0, gocv.BorderDefault)
	gray.Close()

	return blurred
}
