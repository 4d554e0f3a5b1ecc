package detector

import (
	"image"
	"log"
	"sync"
)

// LandmarkDetector points at the index fingertip of the first tracked hand.
type LandmarkDetector struct {
	tracker HandTracker

	mu      sync.Mutex
	failing bool
}

// NewLandmarkDetector creates a detector backed by tracker.
func NewLandmarkDetector(tracker HandTracker) *LandmarkDetector {
	return &LandmarkDetector{tracker: tracker}
}

// Mode implements PointDetector.
func (d *LandmarkDetector) Mode() Mode { return ModeLandmark }

// Detect implements PointDetector.
func (d *LandmarkDetector) Detect(in Input) (image.Point, bool) {
	if in.Frame == nil || in.Frame.Empty() {
		return image.Point{}, false
	}

	hands, err := d.tracker.Track(in.Frame)
	d.noteResult(err)
	if err != nil || len(hands) == 0 {
		return image.Point{}, false
	}

	return hands[0].Pixel(IndexTip, in.Size()), true
}

// noteResult logs tracker failures once per failure streak.
func (d *LandmarkDetector) noteResult(err error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	switch {
	case err != nil && !d.failing:
		log.Printf("Hand tracking failed: %v", err)
		d.failing = true
	case err == nil && d.failing:
		log.Println("Hand tracking recovered")
		d.failing = false
	}
}
