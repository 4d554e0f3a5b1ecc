package detector

import (
	"image"

	"gocv.io/x/gocv"
)

// SkinConfig holds the skin segmentation parameters.
// Bounds use OpenCV's 8-bit HSV scale: H in [0,180], S and V in [0,255].
type SkinConfig struct {
	Lower      gocv.Scalar
	Upper      gocv.Scalar
	MinArea    float64
	KernelSize int
}

// DefaultSkinConfig returns the default skin band and area threshold.
func DefaultSkinConfig() SkinConfig {
	return SkinConfig{
		Lower:      gocv.NewScalar(0, 70, 70, 0),
		Upper:      gocv.NewScalar(20, 255, 255, 0),
		MinArea:    1000,
		KernelSize: 3,
	}
}

// SkinDetector points at the topmost point of the largest skin-colored region.
type SkinDetector struct {
	config SkinConfig
}

// NewSkinDetector creates a skin detector. A kernel size below 1 disables
// morphological cleanup.
func NewSkinDetector(config SkinConfig) *SkinDetector {
	return &SkinDetector{config: config}
}

// Mode implements PointDetector.
func (d *SkinDetector) Mode() Mode { return ModeSkin }

// Detect implements PointDetector.
func (d *SkinDetector) Detect(in Input) (image.Point, bool) {
	if in.Frame == nil || in.Frame.Empty() {
		return image.Point{}, false
	}

	mask := d.Mask(*in.Frame)
	defer mask.Close()

	contours := gocv.FindContours(mask, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	pts, area, ok := largestContour(contours)
	if !ok || area < d.config.MinArea {
		return image.Point{}, false
	}

	return topmost(pts), true
}

// Mask returns the binary skin mask of a BGR frame after opening and
// closing. The caller must close the returned Mat.
func (d *SkinDetector) Mask(frame gocv.Mat) gocv.Mat {
	hsv := gocv.NewMat()
	defer hsv.Close()
	gocv.CvtColor(frame, &hsv, gocv.ColorBGRToHSV)

	mask := gocv.NewMat()
	gocv.InRangeWithScalar(hsv, d.config.Lower, d.config.Upper, &mask)

	if d.config.KernelSize < 1 {
		return mask
	}

	kernel := gocv.GetStructuringElement(gocv.MorphRect, image.Pt(d.config.KernelSize, d.config.KernelSize))
	defer kernel.Close()

	opened := gocv.NewMat()
	defer opened.Close()
	gocv.MorphologyEx(mask, &opened, gocv.MorphOpen, kernel)
	gocv.MorphologyEx(opened, &mask, gocv.MorphClose, kernel)

	return mask
}

// topmost returns the first point with the smallest y.
func topmost(pts []image.Point) image.Point {
	best := pts[0]
	for _, p := range pts[1:] {
		if p.Y < best.Y {
			best = p
		}
	}
	return best
}

// largestContour returns the points and area of the contour with the
// largest area. The first contour wins ties.
func largestContour(contours gocv.PointsVector) ([]image.Point, float64, bool) {
	best := -1
	bestArea := 0.0

	for i := 0; i < contours.Size(); i++ {
		area := gocv.ContourArea(contours.At(i))
		if best < 0 || area > bestArea {
			best, bestArea = i, area
		}
	}

	if best < 0 {
		return nil, 0, false
	}

	pts := contours.At(best).ToPoints()
	if len(pts) == 0 {
		return nil, 0, false
	}
	return pts, bestArea, true
}
