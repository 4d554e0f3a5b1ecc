package detector

import "image"

// polygonMoments returns the spatial moments m00, m10 and m01 of the
// polygon outlined by pts, computed with Green's theorem the same way
// OpenCV computes moments of a contour. The sign follows the winding
// direction; centroids taken as ratios are unaffected.
func polygonMoments(pts []image.Point) (m00, m10, m01 float64) {
	n := len(pts)
	if n < 3 {
		return 0, 0, 0
	}

	for i := 0; i < n; i++ {
		p := pts[i]
		q := pts[(i+1)%n]
		x0, y0 := float64(p.X), float64(p.Y)
		x1, y1 := float64(q.X), float64(q.Y)

		cross := x0*y1 - x1*y0
		m00 += cross
		m10 += (x0 + x1) * cross
		m01 += (y0 + y1) * cross
	}

	return m00 / 2, m10 / 6, m01 / 6
}

// centroid returns the truncated centroid of the polygon, or false when
// its area is zero.
func centroid(pts []image.Point) (image.Point, bool) {
	m00, m10, m01 := polygonMoments(pts)
	if m00 == 0 {
		return image.Point{}, false
	}
	return image.Pt(int(m10/m00), int(m01/m00)), true
}
