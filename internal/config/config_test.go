package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/ayusman/chromatip/internal/detector"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error = %v", err)
	}

	if cfg.Sampler.Radius != 15 {
		t.Errorf("Sampler.Radius = %d, want 15", cfg.Sampler.Radius)
	}
	if cfg.Skin.MinArea != 1000 || cfg.Motion.MinArea != 500 || cfg.Motion.Threshold != 30 {
		t.Errorf("detector defaults = %+v / %+v", cfg.Skin, cfg.Motion)
	}
	if cfg.Mode() != detector.ModeSkin {
		t.Errorf("Mode() = %v, want skin", cfg.Mode())
	}
	if !strings.HasSuffix(cfg.Storage.LogFile, "detected_colors.txt") {
		t.Errorf("Storage.LogFile = %q", cfg.Storage.LogFile)
	}
	if !strings.HasSuffix(cfg.Storage.Database, "chromatip.db") {
		t.Errorf("Storage.Database = %q", cfg.Storage.Database)
	}
	if cfg.Plugins.Dir == "" {
		t.Error("Plugins.Dir should be derived from the data directory")
	}
}

func TestLoad_OverridesDefaults(t *testing.T) {
	dataDir := t.TempDir()
	path := writeConfig(t, `
camera:
  device: 1
  mirror: false
sampler:
  radius: 4
skin:
  lower: [5, 40, 60]
  upper: [25, 200, 250]
motion:
  threshold: 45
  blur: 5
session:
  initial_mode: motion
storage:
  data_dir: `+dataDir+`
server:
  addr: "127.0.0.1:9090"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Camera.Device != 1 || cfg.Camera.Mirror {
		t.Errorf("Camera = %+v", cfg.Camera)
	}
	if cfg.Camera.Width != 640 {
		t.Errorf("unset Camera.Width = %d, want default 640", cfg.Camera.Width)
	}
	if cfg.Sampler.Radius != 4 {
		t.Errorf("Sampler.Radius = %d, want 4", cfg.Sampler.Radius)
	}
	if cfg.Skin.Lower != [3]int{5, 40, 60} || cfg.Skin.Upper != [3]int{25, 200, 250} {
		t.Errorf("Skin bounds = %v..%v", cfg.Skin.Lower, cfg.Skin.Upper)
	}
	if cfg.Skin.MinArea != 1000 {
		t.Errorf("unset Skin.MinArea = %f, want 1000", cfg.Skin.MinArea)
	}
	if cfg.Motion.Threshold != 45 || cfg.Motion.Blur != 5 {
		t.Errorf("Motion = %+v", cfg.Motion)
	}
	if cfg.Mode() != detector.ModeMotion {
		t.Errorf("Mode() = %v, want motion", cfg.Mode())
	}
	if cfg.Storage.Database != filepath.Join(dataDir, "chromatip.db") {
		t.Errorf("Storage.Database = %q", cfg.Storage.Database)
	}
	if cfg.Server.Addr != "127.0.0.1:9090" {
		t.Errorf("Server.Addr = %q", cfg.Server.Addr)
	}

	sc := cfg.Skin.DetectorConfig()
	if sc.Lower.Val1 != 5 || sc.Upper.Val3 != 250 {
		t.Errorf("DetectorConfig() = %+v", sc)
	}
	if cfg.Camera.CameraOptions().DeviceID != 1 {
		t.Error("CameraOptions() lost the device id")
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"negative radius", "sampler:\n  radius: -1\n", "sampler.radius"},
		{"hue above 180", "skin:\n  upper: [200, 255, 255]\n", "skin h bounds"},
		{"inverted band", "skin:\n  lower: [30, 70, 70]\n  upper: [20, 255, 255]\n", "skin.lower h"},
		{"threshold too high", "motion:\n  threshold: 300\n", "motion.threshold"},
		{"unknown mode", "session:\n  initial_mode: telepathy\n", "session.initial_mode"},
		{"bad confidence", "landmark:\n  min_confidence: 1.5\n", "landmark.min_confidence"},
		{"zero fps", "camera:\n  fps: 0\n", "camera.fps"},
		{"malformed yaml", "camera: [", "parse config"},
		{"wrong array length", "skin:\n  lower: [1, 2]\n", "parse config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("Load() should fail")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Load() error = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Load() of a missing file should fail")
	}
}

func TestConfig_MarshalRoundTrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	data, err := cfg.Marshal()
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var back Config
	if err := yaml.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if back.Skin != cfg.Skin || back.Session != cfg.Session || back.Storage != cfg.Storage {
		t.Errorf("round trip mismatch:\n%s", data)
	}
}
