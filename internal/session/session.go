// Package session runs the per-frame detect, sample and classify pipeline
// for the active pointing mode and keeps the most recent result.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"log"
	"sync"
	"time"

	"gocv.io/x/gocv"

	"github.com/ayusman/chromatip/internal/capture"
	"github.com/ayusman/chromatip/internal/chroma"
	"github.com/ayusman/chromatip/internal/detector"
	"github.com/ayusman/chromatip/internal/sampler"
)

var (
	// ErrModeUnavailable is returned when switching to a mode that has no detector.
	ErrModeUnavailable = errors.New("detection mode unavailable")

	// ErrNoDetectors is returned by New when no detector is supplied.
	ErrNoDetectors = errors.New("no detectors configured")

	// ErrNothingToSave is returned when saving before any color was detected.
	ErrNothingToSave = errors.New("no detected color to save")
)

// Options configures a Session.
type Options struct {
	// Radius is the sampling window half-width in pixels.
	Radius int
	// InitialMode is the mode active at start. If it is unavailable the
	// first available mode is used.
	InitialMode detector.Mode
	// MotionBlur is the Gaussian blur size applied to grayscale frames in
	// motion mode; 0 disables it.
	MotionBlur int
}

// DefaultOptions returns the default session options.
func DefaultOptions() Options {
	return Options{
		Radius:      sampler.DefaultRadius,
		InitialMode: detector.ModeSkin,
	}
}

// Detection is a successful detect-sample-classify result.
type Detection struct {
	Mode           detector.Mode
	Point          image.Point
	Classification chroma.Classification
	Time           time.Time
}

// MarshalJSON writes the point with lowercase keys.
func (d Detection) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Mode           detector.Mode         `json:"mode"`
		Point          jsonPoint             `json:"point"`
		Classification chroma.Classification `json:"classification"`
		Time           time.Time             `json:"time"`
	}{d.Mode, jsonPoint{d.Point.X, d.Point.Y}, d.Classification, d.Time})
}

// Result describes one tick. When Detected is false, Last still carries
// the most recent successful detection (if any) so callers can keep
// showing it.
type Result struct {
	Seq      uint64
	Mode     detector.Mode
	Detected bool
	Point    image.Point
	Last     *Detection
}

// MarshalJSON writes the point with lowercase keys and omits it when absent.
func (r Result) MarshalJSON() ([]byte, error) {
	var pt *jsonPoint
	if r.Detected {
		pt = &jsonPoint{r.Point.X, r.Point.Y}
	}
	return json.Marshal(struct {
		Seq      uint64        `json:"seq"`
		Mode     detector.Mode `json:"mode"`
		Detected bool          `json:"detected"`
		Point    *jsonPoint    `json:"point,omitempty"`
		Last     *Detection    `json:"last,omitempty"`
	}{r.Seq, r.Mode, r.Detected, pt, r.Last})
}

type jsonPoint struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Session holds the active mode and all cross-frame state. All methods
// are safe for concurrent use.
type Session struct {
	classifier *chroma.Classifier
	radius     int
	motionBlur int

	detectors map[detector.Mode]detector.PointDetector
	modes     []detector.Mode
	click     *detector.ClickDetector

	mu       sync.Mutex
	mode     detector.Mode
	prevGray *gocv.Mat
	last     *Detection
	seq      uint64
}

// New creates a session over the given detectors. Available modes are
// those with a detector, cycled in detector.AllModes order.
func New(classifier *chroma.Classifier, opts Options, detectors ...detector.PointDetector) (*Session, error) {
	if len(detectors) == 0 {
		return nil, ErrNoDetectors
	}
	if classifier == nil {
		classifier = chroma.NewClassifier(nil)
	}

	s := &Session{
		classifier: classifier,
		radius:     opts.Radius,
		motionBlur: opts.MotionBlur,
		detectors:  make(map[detector.Mode]detector.PointDetector, len(detectors)),
	}

	for _, d := range detectors {
		if _, dup := s.detectors[d.Mode()]; dup {
			return nil, fmt.Errorf("duplicate detector for %s mode", d.Mode())
		}
		s.detectors[d.Mode()] = d
		if c, ok := d.(*detector.ClickDetector); ok {
			s.click = c
		}
	}

	for _, m := range detector.AllModes {
		if _, ok := s.detectors[m]; ok {
			s.modes = append(s.modes, m)
		}
	}

	s.mode = s.modes[0]
	if _, ok := s.detectors[opts.InitialMode]; ok {
		s.mode = opts.InitialMode
	} else {
		log.Printf("%s mode unavailable, starting in %s mode", opts.InitialMode.Title(), s.mode.Title())
	}

	return s, nil
}

// Mode returns the active mode.
func (s *Session) Mode() detector.Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// Modes returns the available modes in cycle order.
func (s *Session) Modes() []detector.Mode {
	out := make([]detector.Mode, len(s.modes))
	copy(out, s.modes)
	return out
}

// Available reports whether m has a detector.
func (s *Session) Available(m detector.Mode) bool {
	_, ok := s.detectors[m]
	return ok
}

// Cycle switches to the next available mode, wrapping around, and returns it.
func (s *Session) Cycle() detector.Mode {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.modes[0]
	for i, m := range s.modes {
		if m == s.mode {
			next = s.modes[(i+1)%len(s.modes)]
			break
		}
	}
	s.switchLocked(next)
	return next
}

// SetMode switches to m.
func (s *Session) SetMode(m detector.Mode) error {
	if !s.Available(m) {
		return fmt.Errorf("%w: %s", ErrModeUnavailable, m)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if m != s.mode {
		s.switchLocked(m)
	}
	return nil
}

func (s *Session) switchLocked(m detector.Mode) {
	s.mode = m
	s.releasePrevLocked()
	log.Printf("Switched to %s detection mode", m)
}

func (s *Session) releasePrevLocked() {
	if s.prevGray != nil {
		s.prevGray.Close()
		s.prevGray = nil
	}
}

// ReportClick records a pointer click for click mode. Clicks are accepted
// in any mode and used once click mode is active.
func (s *Session) ReportClick(p image.Point) error {
	if s.click == nil {
		return fmt.Errorf("%w: %s", ErrModeUnavailable, detector.ModeClick)
	}
	s.click.Report(p)
	return nil
}

// Last returns the most recent successful detection.
func (s *Session) Last() (Detection, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.last == nil {
		return Detection{}, false
	}
	return *s.last, true
}

// Tick runs the active detector on frame and, when a point is found,
// samples and classifies the color there. The frame is only read. A nil,
// empty or non-BGR frame detects nothing and keeps the last detection.
func (s *Session) Tick(frame *gocv.Mat) Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	mode := s.mode

	if frame == nil || frame.Empty() || frame.Channels() < 3 {
		return Result{Seq: s.seq, Mode: mode, Last: s.lastCopyLocked()}
	}

	in := detector.Input{Frame: frame}

	var gray *gocv.Mat
	if mode == detector.ModeMotion {
		g := capture.ToGray(*frame, s.motionBlur)
		gray = &g
		in.Gray = gray
		in.PrevGray = s.prevGray
	}

	p, ok := s.detectors[mode].Detect(in)

	if gray != nil {
		s.releasePrevLocked()
		s.prevGray = gray
	}

	res := Result{Seq: s.seq, Mode: mode, Detected: ok, Point: p}

	if ok {
		rgb := sampler.Sample(*frame, p, s.radius)
		s.last = &Detection{
			Mode:           mode,
			Point:          p,
			Classification: s.classifier.Classify(rgb),
			Time:           time.Now(),
		}
	}

	res.Last = s.lastCopyLocked()
	return res
}

func (s *Session) lastCopyLocked() *Detection {
	if s.last == nil {
		return nil
	}
	last := *s.last
	return &last
}

// Close releases the retained grayscale frame.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.releasePrevLocked()
}
