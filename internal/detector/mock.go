package detector

import (
	"sync"

	"gocv.io/x/gocv"
)

// MockTracker is a test implementation of the HandTracker interface.
// It allows tests to control the tracking results.
type MockTracker struct {
	mu     sync.Mutex
	hands  []HandLandmarks
	err    error
	calls  int
	closed bool
}

// NewMockTracker creates a new MockTracker instance.
func NewMockTracker() *MockTracker {
	return &MockTracker{}
}

// SetHands sets the hands that will be returned by Track.
func (m *MockTracker) SetHands(hands []HandLandmarks) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hands = hands
}

// SetError sets the error that will be returned by Track.
func (m *MockTracker) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Track returns the pre-configured hands or error.
func (m *MockTracker) Track(frame *gocv.Mat) ([]HandLandmarks, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.hands, nil
}

// Calls returns how many times Track was invoked.
func (m *MockTracker) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Closed reports whether Close was called.
func (m *MockTracker) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// Close marks the tracker closed.
func (m *MockTracker) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// PointingLandmarks returns a right hand with the index finger extended
// and its tip at the normalized position (x, y). The remaining fingers
// are curled below the tip.
func PointingLandmarks(x, y float64) HandLandmarks {
	landmarks := HandLandmarks{
		Handedness: "Right",
		Score:      0.95,
	}

	// Wrist well below the fingertip
	landmarks.Points[Wrist] = Point3D{X: x, Y: y + 0.45, Z: 0.0}

	landmarks.Points[ThumbCMC] = Point3D{X: x + 0.05, Y: y + 0.40, Z: 0.0}
	landmarks.Points[ThumbMCP] = Point3D{X: x + 0.08, Y: y + 0.34, Z: 0.0}
	landmarks.Points[ThumbIP] = Point3D{X: x + 0.08, Y: y + 0.28, Z: 0.0}
	landmarks.Points[ThumbTip] = Point3D{X: x + 0.06, Y: y + 0.24, Z: 0.0}

	// Index finger extended toward the tip
	landmarks.Points[IndexMCP] = Point3D{X: x, Y: y + 0.30, Z: 0.0}
	landmarks.Points[IndexPIP] = Point3D{X: x, Y: y + 0.20, Z: 0.0}
	landmarks.Points[IndexDIP] = Point3D{X: x, Y: y + 0.10, Z: 0.0}
	landmarks.Points[IndexTip] = Point3D{X: x, Y: y, Z: 0.0}

	// Middle, ring and pinky curled
	for i, base := range []int{MiddleMCP, RingMCP, PinkyMCP} {
		dx := -0.04 * float64(i+1)
		landmarks.Points[base] = Point3D{X: x + dx, Y: y + 0.30, Z: -0.02}
		landmarks.Points[base+1] = Point3D{X: x + dx, Y: y + 0.28, Z: -0.05}
		landmarks.Points[base+2] = Point3D{X: x + dx, Y: y + 0.31, Z: -0.04}
		landmarks.Points[base+3] = Point3D{X: x + dx, Y: y + 0.33, Z: -0.02}
	}

	return landmarks
}
