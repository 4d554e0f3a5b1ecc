// Package config loads the chromatip YAML configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gocv.io/x/gocv"
	"gopkg.in/yaml.v3"

	"github.com/ayusman/chromatip/internal/capture"
	"github.com/ayusman/chromatip/internal/colorlog"
	"github.com/ayusman/chromatip/internal/detector"
	"github.com/ayusman/chromatip/internal/sampler"
)

// Config represents the complete chromatip configuration.
type Config struct {
	Camera   CameraConfig   `yaml:"camera"`
	Sampler  SamplerConfig  `yaml:"sampler"`
	Landmark LandmarkConfig `yaml:"landmark"`
	Skin     SkinConfig     `yaml:"skin"`
	Motion   MotionConfig   `yaml:"motion"`
	Session  SessionConfig  `yaml:"session"`
	Storage  StorageConfig  `yaml:"storage"`
	Server   ServerConfig   `yaml:"server"`
	Colors   ColorsConfig   `yaml:"colors"`
	Plugins  PluginsConfig  `yaml:"plugins"`
}

// CameraConfig contains capture device settings.
type CameraConfig struct {
	Device int  `yaml:"device"`
	Width  int  `yaml:"width"`
	Height int  `yaml:"height"`
	FPS    int  `yaml:"fps"`
	Mirror bool `yaml:"mirror"` // flip frames horizontally
}

// SamplerConfig contains color sampling settings.
type SamplerConfig struct {
	Radius int `yaml:"radius"` // half-width of the sampling window in pixels
}

// LandmarkConfig contains hand tracking settings.
type LandmarkConfig struct {
	Enabled               bool    `yaml:"enabled"`
	MaxHands              int     `yaml:"max_hands"`
	MinConfidence         float64 `yaml:"min_confidence"`
	MinTrackingConfidence float64 `yaml:"min_tracking_confidence"`
}

// SkinConfig contains skin segmentation settings.
// Lower and Upper are HSV bounds on OpenCV's scale (H 0-180, S and V 0-255).
type SkinConfig struct {
	Lower      [3]int  `yaml:"lower"`
	Upper      [3]int  `yaml:"upper"`
	MinArea    float64 `yaml:"min_area"`
	KernelSize int     `yaml:"kernel_size"`
}

// MotionConfig contains frame-difference settings.
type MotionConfig struct {
	Threshold float64 `yaml:"threshold"` // per-pixel intensity change, 0-255
	MinArea   float64 `yaml:"min_area"`
	Blur      int     `yaml:"blur"` // Gaussian blur size, 0 disables
}

// SessionConfig contains detection session settings.
type SessionConfig struct {
	InitialMode  string `yaml:"initial_mode"`
	RememberMode bool   `yaml:"remember_mode"` // restore the last used mode on start
}

// StorageConfig contains file locations. Empty paths are placed in DataDir.
type StorageConfig struct {
	DataDir  string `yaml:"data_dir"`
	LogFile  string `yaml:"log_file"`
	Database string `yaml:"database"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Addr      string `yaml:"addr"`
	StaticDir string `yaml:"static_dir"`
}

// ColorsConfig selects the reference color table. Empty uses the built-in table.
type ColorsConfig struct {
	Table string `yaml:"table"`
}

// PluginsConfig contains save-hook plugin settings.
type PluginsConfig struct {
	Dir       string `yaml:"dir"`
	TimeoutMs int    `yaml:"timeout_ms"`
}

// Default returns the built-in configuration.
func Default() *Config {
	dataDir := ".chromatip"
	if home, err := os.UserHomeDir(); err == nil {
		dataDir = filepath.Join(home, ".chromatip")
	}

	return &Config{
		Camera: CameraConfig{
			Device: 0,
			Width:  capture.DefaultWidth,
			Height: capture.DefaultHeight,
			FPS:    capture.DefaultFPS,
			Mirror: true,
		},
		Sampler: SamplerConfig{Radius: sampler.DefaultRadius},
		Landmark: LandmarkConfig{
			Enabled:               true,
			MaxHands:              1,
			MinConfidence:         0.7,
			MinTrackingConfidence: 0.5,
		},
		Skin: SkinConfig{
			Lower:      [3]int{0, 70, 70},
			Upper:      [3]int{20, 255, 255},
			MinArea:    1000,
			KernelSize: 3,
		},
		Motion: MotionConfig{
			Threshold: 30,
			MinArea:   500,
		},
		Session: SessionConfig{
			InitialMode: detector.ModeSkin.String(),
		},
		Storage: StorageConfig{DataDir: dataDir},
		Server:  ServerConfig{Addr: ":8080"},
		Plugins: PluginsConfig{TimeoutMs: 5000},
	}
}

// Load reads a YAML configuration file over the defaults. An empty path
// returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Marshal renders cfg as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// Validate checks value ranges and fills derived defaults.
func Validate(c *Config) error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Camera.Device >= 0, "camera.device must be >= 0")
	check(c.Camera.Width > 0 && c.Camera.Height > 0, "camera.width and camera.height must be positive")
	check(c.Camera.FPS > 0, "camera.fps must be positive")

	check(c.Sampler.Radius >= 0, "sampler.radius must be >= 0")

	check(c.Landmark.MaxHands >= 1, "landmark.max_hands must be >= 1")
	check(inUnit(c.Landmark.MinConfidence), "landmark.min_confidence must be in [0,1]")
	check(inUnit(c.Landmark.MinTrackingConfidence), "landmark.min_tracking_confidence must be in [0,1]")

	limits := [3]int{180, 255, 255}
	for i, name := range []string{"h", "s", "v"} {
		lo, hi := c.Skin.Lower[i], c.Skin.Upper[i]
		check(lo >= 0 && hi <= limits[i], "skin %s bounds must be within [0,%d]", name, limits[i])
		check(lo <= hi, "skin.lower %s must not exceed skin.upper %s", name, name)
	}
	check(c.Skin.MinArea >= 0, "skin.min_area must be >= 0")
	check(c.Skin.KernelSize >= 0, "skin.kernel_size must be >= 0")

	check(c.Motion.Threshold >= 0 && c.Motion.Threshold <= 255, "motion.threshold must be in [0,255]")
	check(c.Motion.MinArea >= 0, "motion.min_area must be >= 0")
	check(c.Motion.Blur >= 0, "motion.blur must be >= 0")

	if _, err := detector.ParseMode(c.Session.InitialMode); err != nil {
		errs = append(errs, fmt.Errorf("session.initial_mode: %w", err))
	}

	check(c.Server.Addr != "", "server.addr must not be empty")
	check(c.Plugins.TimeoutMs > 0, "plugins.timeout_ms must be positive")
	check(c.Storage.DataDir != "", "storage.data_dir must not be empty")

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	if c.Storage.LogFile == "" {
		c.Storage.LogFile = filepath.Join(c.Storage.DataDir, colorlog.DefaultFileName)
	}
	if c.Storage.Database == "" {
		c.Storage.Database = filepath.Join(c.Storage.DataDir, "chromatip.db")
	}
	if c.Plugins.Dir == "" {
		c.Plugins.Dir = filepath.Join(c.Storage.DataDir, "plugins")
	}

	return nil
}

func inUnit(v float64) bool {
	return v >= 0 && v <= 1
}

// Mode returns the configured initial detection mode.
func (c *Config) Mode() detector.Mode {
	m, err := detector.ParseMode(c.Session.InitialMode)
	if err != nil {
		return detector.ModeSkin
	}
	return m
}

// CameraOptions converts the camera section for capture.NewCamera.
func (c CameraConfig) CameraOptions() capture.Options {
	return capture.Options{
		DeviceID: c.Device,
		Width:    c.Width,
		Height:   c.Height,
		FPS:      c.FPS,
		Mirror:   c.Mirror,
	}
}

// TrackerConfig converts the landmark section for the hand tracker.
func (c LandmarkConfig) TrackerConfig() detector.TrackerConfig {
	return detector.TrackerConfig{
		MaxHands:        c.MaxHands,
		MinConfidence:   c.MinConfidence,
		MinTrackingConf: c.MinTrackingConfidence,
	}
}

// DetectorConfig converts the skin section for detector.NewSkinDetector.
func (c SkinConfig) DetectorConfig() detector.SkinConfig {
	return detector.SkinConfig{
		Lower:      gocv.NewScalar(float64(c.Lower[0]), float64(c.Lower[1]), float64(c.Lower[2]), 0),
		Upper:      gocv.NewScalar(float64(c.Upper[0]), float64(c.Upper[1]), float64(c.Upper[2]), 0),
		MinArea:    c.MinArea,
		KernelSize: c.KernelSize,
	}
}

// DetectorConfig converts the motion section for detector.NewMotionDetector.
func (c MotionConfig) DetectorConfig() detector.MotionConfig {
	return detector.MotionConfig{
		Threshold: c.Threshold,
		MinArea:   c.MinArea,
	}
}
