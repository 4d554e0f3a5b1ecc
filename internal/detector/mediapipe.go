package detector

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"gocv.io/x/gocv"
)

// ErrTrackerUnavailable is returned when the hand tracking service script
// cannot be found.
var ErrTrackerUnavailable = errors.New("hand_service.py not found")

// trackerIdleTimeout stops the Python process after a period without frames.
const trackerIdleTimeout = 30 * time.Second

// MediaPipeTracker implements HandTracker using a Python MediaPipe subprocess.
//
// Frames are sent as a 4-byte big-endian length followed by JPEG bytes;
// the service answers each frame with one JSON line.
type MediaPipeTracker struct {
	config     TrackerConfig
	scriptPath string
	cmd        *exec.Cmd
	stdin      io.WriteCloser
	stdout     *bufio.Reader
	mu         sync.Mutex
	started    bool
	idleTimer  *time.Timer
}

// NewMediaPipeTracker creates a new MediaPipe tracker.
// The Python process is started lazily on first use.
func NewMediaPipeTracker(config TrackerConfig) (*MediaPipeTracker, error) {
	scriptPath := findHandServiceScript()
	if scriptPath == "" {
		return nil, ErrTrackerUnavailable
	}

	return &MediaPipeTracker{
		config:     config,
		scriptPath: scriptPath,
	}, nil
}

// Track sends a frame to the service and returns the hands it reports.
func (t *MediaPipeTracker) Track(frame *gocv.Mat) ([]HandLandmarks, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.ensureStarted(); err != nil {
		return nil, err
	}

	buf, err := gocv.IMEncode(gocv.JPEGFileExt, *frame)
	if err != nil {
		return nil, fmt.Errorf("encode frame: %w", err)
	}
	defer buf.Close()

	hands, err := t.roundTrip(buf.GetBytes())
	if err != nil {
		// A broken pipe leaves the service in an unknown state; restart on next frame.
		t.shutdown()
		return nil, err
	}

	t.resetIdleTimer()
	return hands, nil
}

func (t *MediaPipeTracker) roundTrip(data []byte) ([]HandLandmarks, error) {
	length := make([]byte, 4)
	binary.BigEndian.PutUint32(length, uint32(len(data)))

	if _, err := t.stdin.Write(length); err != nil {
		return nil, fmt.Errorf("write length: %w", err)
	}
	if _, err := t.stdin.Write(data); err != nil {
		return nil, fmt.Errorf("write data: %w", err)
	}

	line, err := t.stdout.ReadString('\n')
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	return parseTrackerResponse([]byte(line))
}

// Close shuts down the Python process.
func (t *MediaPipeTracker) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.shutdown()
}

func (t *MediaPipeTracker) ensureStarted() error {
	if t.started {
		return nil
	}

	pythonPath := findVenvPython()
	if pythonPath == "" {
		pythonPath = "python3"
	}

	t.cmd = exec.Command(pythonPath, t.scriptPath,
		"--max-hands", strconv.Itoa(t.config.MaxHands),
		"--min-detection-confidence", strconv.FormatFloat(t.config.MinConfidence, 'f', -1, 64),
		"--min-tracking-confidence", strconv.FormatFloat(t.config.MinTrackingConf, 'f', -1, 64),
	)

	stdin, err := t.cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("create stdin pipe: %w", err)
	}

	stdout, err := t.cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("create stdout pipe: %w", err)
	}

	t.cmd.Stderr = os.Stderr

	if err := t.cmd.Start(); err != nil {
		return fmt.Errorf("start hand service: %w", err)
	}

	t.stdin = stdin
	t.stdout = bufio.NewReader(stdout)
	t.started = true

	return nil
}

func (t *MediaPipeTracker) shutdown() error {
	if !t.started {
		return nil
	}

	if t.idleTimer != nil {
		t.idleTimer.Stop()
		t.idleTimer = nil
	}

	if t.stdin != nil {
		t.stdin.Close()
	}

	err := t.cmd.Wait()
	t.started = false
	t.cmd = nil
	t.stdin = nil
	t.stdout = nil

	return err
}

func (t *MediaPipeTracker) resetIdleTimer() {
	if t.idleTimer != nil {
		t.idleTimer.Stop()
	}
	t.idleTimer = time.AfterFunc(trackerIdleTimeout, func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		t.shutdown()
	})
}

func findHandServiceScript() string {
	execPath, err := os.Executable()
	var execDir string
	if err == nil {
		execDir = filepath.Dir(execPath)
	}

	candidates := []string{
		"scripts/hand_service.py",
		"../scripts/hand_service.py",
		filepath.Join(execDir, "scripts/hand_service.py"),
		filepath.Join(os.Getenv("HOME"), ".chromatip/scripts/hand_service.py"),
	}

	return firstExisting(candidates)
}

// findVenvPython looks for a Python interpreter in a virtual environment.
func findVenvPython() string {
	execPath, err := os.Executable()
	if err != nil {
		return ""
	}
	execDir := filepath.Dir(execPath)

	candidates := []string{
		"venv/bin/python",
		"../venv/bin/python",
		filepath.Join(execDir, "venv/bin/python"),
		filepath.Join(os.Getenv("HOME"), ".chromatip/venv/bin/python"),
	}

	return firstExisting(candidates)
}

func firstExisting(paths []string) string {
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if abs, err := filepath.Abs(path); err == nil {
				return abs
			}
			return path
		}
	}
	return ""
}

// jsonHand represents the JSON structure from the Python service.
type jsonHand struct {
	Points     []Point3D `json:"points"`
	Handedness string    `json:"handedness"`
	Score      float64   `json:"score"`
}

func parseTrackerResponse(line []byte) ([]HandLandmarks, error) {
	var response struct {
		Hands []jsonHand `json:"hands"`
		Error string     `json:"error,omitempty"`
	}
	if err := json.Unmarshal(line, &response); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}
	if response.Error != "" {
		return nil, fmt.Errorf("hand service: %s", response.Error)
	}

	result := make([]HandLandmarks, 0, len(response.Hands))
	for _, h := range response.Hands {
		if len(h.Points) <= IndexTip {
			continue
		}
		lm := HandLandmarks{Handedness: h.Handedness, Score: h.Score}
		copy(lm.Points[:], h.Points)
		result = append(result, lm)
	}

	return result, nil
}
