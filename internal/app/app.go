// Package app wires the camera, the detection session and the save path
// into the running chromatip application.
package app

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"gocv.io/x/gocv"

	"github.com/ayusman/chromatip/internal/capture"
	"github.com/ayusman/chromatip/internal/colorlog"
	"github.com/ayusman/chromatip/internal/detector"
	"github.com/ayusman/chromatip/internal/metrics"
	"github.com/ayusman/chromatip/internal/overlay"
	"github.com/ayusman/chromatip/internal/plugin"
	"github.com/ayusman/chromatip/internal/session"
	"github.com/ayusman/chromatip/internal/store"
)

// ResultSink receives every tick result.
type ResultSink interface {
	Broadcast(v any) error
}

// FrameSink receives annotated JPEG frames. Frames are only encoded while
// it has clients.
type FrameSink interface {
	Publish(frame []byte)
	Clients() int
}

// Config holds the collaborators of an App. Every field is optional.
type Config struct {
	Store   *store.Store
	Log     *colorlog.Log
	Hooks   *plugin.Hooks
	Metrics *metrics.Metrics
	Results ResultSink
	Frames  FrameSink

	// Radius is drawn around the detected point in the preview.
	Radius int
	// RememberMode persists mode changes and lets RestoreMode read them back.
	RememberMode bool
}

// App runs the capture and processing loops and saves detected colors.
type App struct {
	config  Config
	camera  capture.Camera
	session *session.Session

	mu        sync.Mutex
	listeners []func(session.Result)
	running   bool
}

// New creates an App reading from camera and ticking sess.
func New(camera capture.Camera, sess *session.Session, config Config) *App {
	return &App{
		config:  config,
		camera:  camera,
		session: sess,
	}
}

// OnResult registers fn to be called with every tick result from the
// processing goroutine. fn must not block.
func (a *App) OnResult(fn func(session.Result)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.listeners = append(a.listeners, fn)
}

// Run opens the camera and processes frames until ctx is cancelled or the
// camera fails. A cancelled run returns nil; a camera failure is returned
// wrapped.
func (a *App) Run(ctx context.Context) error {
	a.mu.Lock()
	if a.running {
		a.mu.Unlock()
		return errors.New("app is already running")
	}
	a.running = true
	a.mu.Unlock()

	defer func() {
		a.mu.Lock()
		a.running = false
		a.mu.Unlock()
	}()

	if err := a.camera.Open(); err != nil {
		return fmt.Errorf("open camera: %w", err)
	}
	defer func() {
		if err := a.camera.Close(); err != nil {
			log.Printf("Error closing camera: %v", err)
		}
	}()

	mailbox := capture.NewMailbox()
	if a.config.Metrics != nil {
		mailbox.OnDrop(func() { a.config.Metrics.FramesDropped.Add(1) })
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errc := make(chan error, 1)
	go func() {
		errc <- a.captureLoop(ctx, mailbox)
		mailbox.Close()
	}()

	log.Printf("Detection started in %s mode", a.session.Mode().Title())

	for {
		frame, err := mailbox.Next()
		if err != nil {
			break
		}
		a.process(frame)
	}

	cancel()
	err := <-errc
	if err != nil {
		log.Printf("Detection stopped: %v", err)
	} else {
		log.Println("Detection stopped")
	}
	return err
}

// captureLoop reads frames at the camera rate and hands them to mailbox.
func (a *App) captureLoop(ctx context.Context, mailbox *capture.Mailbox) error {
	ticker := time.NewTicker(frameInterval(a.camera.FPS()))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			frame, err := a.camera.ReadFrame()
			if err != nil {
				return fmt.Errorf("read frame: %w", err)
			}
			if err := mailbox.Publish(frame); err != nil {
				return nil
			}
		}
	}
}

func frameInterval(fps int) time.Duration {
	if fps <= 0 {
		fps = capture.DefaultFPS
	}
	return time.Second / time.Duration(fps)
}

// process ticks the session on frame, fans the result out and releases
// the frame.
func (a *App) process(frame *gocv.Mat) {
	defer frame.Close()

	start := time.Now()
	res := a.session.Tick(frame)
	if a.config.Metrics != nil {
		a.config.Metrics.ObserveTick(res.Mode, res.Detected, time.Since(start))
	}

	if a.config.Results != nil {
		if err := a.config.Results.Broadcast(res); err != nil {
			log.Printf("Failed to broadcast result: %v", err)
		}
	}

	if a.config.Frames != nil && a.config.Frames.Clients() > 0 {
		overlay.Draw(frame, res, a.config.Radius)
		if data, err := overlay.Encode(*frame); err == nil {
			a.config.Frames.Publish(data)
		}
	}

	a.mu.Lock()
	listeners := a.listeners
	a.mu.Unlock()
	for _, fn := range listeners {
		fn(res)
	}
}

// Save records the most recent detection in the color log and the history
// store and notifies color_saved plugins. It returns
// session.ErrNothingToSave when nothing has been detected yet.
func (a *App) Save(ctx context.Context) (*store.Color, error) {
	det, ok := a.session.Last()
	if !ok {
		return nil, session.ErrNothingToSave
	}

	c, err := a.save(det)
	if a.config.Metrics != nil {
		a.config.Metrics.ObserveSave(err)
	}
	if err != nil {
		return nil, err
	}

	log.Printf("Saved %s (%s) from %s mode", c.Classification.Name, c.Classification.Hex, det.Mode.Title())

	if a.config.Hooks != nil {
		if err := a.config.Hooks.Dispatch(ctx, plugin.ActionColorSaved, colorParams(c)); err != nil {
			log.Printf("Save hooks failed: %v", err)
		}
	}

	return c, nil
}

func (a *App) save(det session.Detection) (*store.Color, error) {
	if a.config.Log != nil {
		rec := colorlog.Record{Classification: det.Classification, Mode: det.Mode}
		if err := a.config.Log.Append(rec); err != nil {
			return nil, err
		}
	}

	c := &store.Color{
		ID:             uuid.New().String(),
		Classification: det.Classification,
		Mode:           det.Mode.String(),
		X:              det.Point.X,
		Y:              det.Point.Y,
		CreatedAt:      time.Now(),
	}
	if a.config.Store != nil {
		if err := a.config.Store.Colors().Create(c); err != nil {
			return nil, fmt.Errorf("store color: %w", err)
		}
	}
	return c, nil
}

func colorParams(c *store.Color) plugin.ColorParams {
	cl := c.Classification
	return plugin.ColorParams{
		ID:   c.ID,
		Name: cl.Name,
		Hex:  cl.Hex,
		RGB:  [3]int{int(cl.RGB.R), int(cl.RGB.G), int(cl.RGB.B)},
		HSV:  [3]int{cl.HSV.H, cl.HSV.S, cl.HSV.V},
		HSL:  [3]int{cl.HSL.H, cl.HSL.S, cl.HSL.L},
		Mode: c.Mode,
		X:    c.X,
		Y:    c.Y,
	}
}

// Mode returns the active detection mode.
func (a *App) Mode() detector.Mode {
	return a.session.Mode()
}

// Modes returns the available modes in cycle order.
func (a *App) Modes() []detector.Mode {
	return a.session.Modes()
}

// Cycle switches to the next available mode.
func (a *App) Cycle() detector.Mode {
	m := a.session.Cycle()
	a.persistMode(m)
	return m
}

// SetMode switches to m.
func (a *App) SetMode(m detector.Mode) error {
	if err := a.session.SetMode(m); err != nil {
		return err
	}
	a.persistMode(m)
	return nil
}

// ReportClick records a pointer click for click mode.
func (a *App) ReportClick(p image.Point) error {
	return a.session.ReportClick(p)
}

// Last returns the most recent detection.
func (a *App) Last() (session.Detection, bool) {
	return a.session.Last()
}

func (a *App) persistMode(m detector.Mode) {
	if !a.config.RememberMode || a.config.Store == nil {
		return
	}
	if err := a.config.Store.Settings().Set(store.SettingMode, m.String()); err != nil {
		log.Printf("Failed to remember mode: %v", err)
	}
}

// RestoreMode switches to the mode saved by an earlier run, if any.
func (a *App) RestoreMode() {
	if !a.config.RememberMode || a.config.Store == nil {
		return
	}

	value, err := a.config.Store.Settings().Get(store.SettingMode)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Printf("Failed to read remembered mode: %v", err)
		}
		return
	}

	m, err := detector.ParseMode(value)
	if err != nil {
		log.Printf("Ignoring remembered mode: %v", err)
		return
	}
	if err := a.session.SetMode(m); err != nil {
		log.Printf("Remembered mode unavailable: %v", err)
	}
}

// Camera returns the frame source.
func (a *App) Camera() capture.Camera {
	return a.camera
}

// Session returns the detection session.
func (a *App) Session() *session.Session {
	return a.session
}
