// Package detector locates the pointing position in a video frame.
//
// Each strategy implements PointDetector. Detectors never fail: problems
// with a collaborator are logged and reported as "no point this frame".
package detector

import (
	"fmt"
	"image"
	"strings"

	"gocv.io/x/gocv"
)

// Mode identifies a pointing-position strategy.
type Mode int

const (
	ModeLandmark Mode = iota
	ModeSkin
	ModeMotion
	ModeClick
)

// AllModes lists every mode in cycle order.
var AllModes = []Mode{ModeLandmark, ModeSkin, ModeMotion, ModeClick}

var modeNames = map[Mode]string{
	ModeLandmark: "landmark",
	ModeSkin:     "skin",
	ModeMotion:   "motion",
	ModeClick:    "click",
}

// String returns the lowercase identifier used in config files and the API.
func (m Mode) String() string {
	if s, ok := modeNames[m]; ok {
		return s
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// Title returns the capitalized name shown to users.
func (m Mode) Title() string {
	s := m.String()
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(b []byte) error {
	parsed, err := ParseMode(string(b))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// ParseMode converts a mode identifier (case-insensitive) to a Mode.
func ParseMode(s string) (Mode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for m, name := range modeNames {
		if name == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown detection mode %q", s)
}

// Input is everything a detector may look at for one tick.
// Gray and PrevGray are single-channel versions of the current and
// previous frame; PrevGray is nil when there is no previous frame.
type Input struct {
	Frame    *gocv.Mat
	Gray     *gocv.Mat
	PrevGray *gocv.Mat
}

// Size returns the frame dimensions.
func (in Input) Size() image.Point {
	if in.Frame == nil {
		return image.Point{}
	}
	return image.Pt(in.Frame.Cols(), in.Frame.Rows())
}

// PointDetector finds the pointing position in a frame.
type PointDetector interface {
	// Mode returns the strategy implemented by the detector.
	Mode() Mode

	// Detect returns the pointing position, or false when there is none.
	// The returned point always lies inside the frame.
	Detect(in Input) (image.Point, bool)
}

// HandTracker is the hand-landmark inference collaborator.
type HandTracker interface {
	// Track analyzes a video frame and returns detected hand landmarks.
	// Returns an empty slice if no hands are detected.
	Track(frame *gocv.Mat) ([]HandLandmarks, error)

	// Close releases any resources held by the tracker.
	Close() error
}

// TrackerConfig holds configuration options for hand tracking.
type TrackerConfig struct {
	// MaxHands is the maximum number of hands to track (default: 1).
	MaxHands int

	// MinConfidence is the minimum detection confidence threshold (0.0-1.0).
	MinConfidence float64

	// MinTrackingConf is the minimum tracking confidence threshold (0.0-1.0).
	MinTrackingConf float64
}

// DefaultTrackerConfig returns a TrackerConfig with sensible default values.
func DefaultTrackerConfig() TrackerConfig {
	return TrackerConfig{
		MaxHands:        1,
		MinConfidence:   0.7,
		MinTrackingConf: 0.5,
	}
}
