package detector

import (
	"image"

	"gocv.io/x/gocv"
)

// MotionConfig holds the frame-difference parameters.
type MotionConfig struct {
	// Threshold is the per-pixel intensity change that counts as motion.
	Threshold float64
	// MinArea is the smallest contour area accepted as a moving object.
	MinArea float64
}

// DefaultMotionConfig returns the default motion parameters.
func DefaultMotionConfig() MotionConfig {
	return MotionConfig{
		Threshold: 30,
		MinArea:   500,
	}
}

// MotionDetector points at the centroid of the largest changed region
// between the previous and current grayscale frames.
type MotionDetector struct {
	config MotionConfig
}

// NewMotionDetector creates a motion detector.
func NewMotionDetector(config MotionConfig) *MotionDetector {
	return &MotionDetector{config: config}
}

// Mode implements PointDetector.
func (d *MotionDetector) Mode() Mode { return ModeMotion }

// Detect implements PointDetector. It needs both Gray and PrevGray.
func (d *MotionDetector) Detect(in Input) (image.Point, bool) {
	if in.Gray == nil || in.PrevGray == nil || in.Gray.Empty() || in.PrevGray.Empty() {
		return image.Point{}, false
	}
	if in.Gray.Rows() != in.PrevGray.Rows() || in.Gray.Cols() != in.PrevGray.Cols() {
		return image.Point{}, false
	}

	diff := gocv.NewMat()
	defer diff.Close()
	gocv.AbsDiff(*in.PrevGray, *in.Gray, &diff)

	thresh := gocv.NewMat()
	defer thresh.Close()
	gocv.Threshold(diff, &thresh, float32(d.config.Threshold), 255, gocv.ThresholdBinary)

	contours := gocv.FindContours(thresh, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	pts, area, ok := largestContour(contours)
	if !ok || area < d.config.MinArea {
		return image.Point{}, false
	}

	return centroid(pts)
}
