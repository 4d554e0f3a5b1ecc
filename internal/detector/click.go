package detector

import (
	"image"
	"sync"
)

// ClickDetector reports the most recent pointer click. Clicks arrive from
// other goroutines (HTTP handlers, UI callbacks) through Report.
type ClickDetector struct {
	mu    sync.Mutex
	point image.Point
	set   bool
}

// NewClickDetector creates a click detector with no click recorded.
func NewClickDetector() *ClickDetector {
	return &ClickDetector{}
}

// Mode implements PointDetector.
func (d *ClickDetector) Mode() Mode { return ModeClick }

// Report records a click at p, replacing any earlier click.
func (d *ClickDetector) Report(p image.Point) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.point = p
	d.set = true
}

// Reset forgets the recorded click.
func (d *ClickDetector) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.point = image.Point{}
	d.set = false
}

// Last returns the recorded click.
func (d *ClickDetector) Last() (image.Point, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.point, d.set
}

// Detect implements PointDetector. Clicks outside the frame are clamped
// to its edge.
func (d *ClickDetector) Detect(in Input) (image.Point, bool) {
	p, ok := d.Last()
	if !ok {
		return image.Point{}, false
	}

	size := in.Size()
	if size.X == 0 || size.Y == 0 {
		return p, true
	}
	return image.Pt(
		max(0, min(size.X-1, p.X)),
		max(0, min(size.Y-1, p.Y)),
	), true
}
