package sampler

import (
	"image"
	"image/color"
	"testing"

	"gocv.io/x/gocv"

	"github.com/ayusman/chromatip/internal/chroma"
)

func TestWindow_StaysInsideFrame(t *testing.T) {
	size := image.Pt(64, 48)
	bounds := image.Rect(0, 0, size.X, size.Y)

	for _, radius := range []int{1, 5, 10, 24} {
		for x := -20; x <= size.X+20; x += 3 {
			for y := -20; y <= size.Y+20; y += 3 {
				w := Window(size, image.Pt(x, y), radius)
				if w.Empty() {
					t.Fatalf("Window(%d,%d r=%d) is empty", x, y, radius)
				}
				if !w.In(bounds) {
					t.Fatalf("Window(%d,%d r=%d) = %v, outside %v", x, y, radius, w, bounds)
				}
				if w.Dx() != 2*radius || w.Dy() != 2*radius {
					t.Fatalf("Window(%d,%d r=%d) = %v, want side %d", x, y, radius, w, 2*radius)
				}
			}
		}
	}
}

func TestWindow_Fallback(t *testing.T) {
	tests := []struct {
		name   string
		size   image.Point
		radius int
	}{
		{"zero radius", image.Pt(100, 100), 0},
		{"negative radius", image.Pt(100, 100), -3},
		{"frame too narrow", image.Pt(15, 100), 8},
		{"frame too short", image.Pt(100, 15), 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if w := Window(tt.size, image.Pt(5, 5), tt.radius); !w.Empty() {
				t.Errorf("Window() = %v, want empty", w)
			}
		})
	}
}

func TestWindow_ExactFit(t *testing.T) {
	w := Window(image.Pt(20, 20), image.Pt(0, 19), 10)
	if w != image.Rect(0, 0, 20, 20) {
		t.Errorf("Window() = %v, want whole frame", w)
	}
}

// splitFrame returns a 100x100 frame whose left half is red and right half is blue.
func splitFrame() gocv.Mat {
	frame := gocv.NewMatWithSize(100, 100, gocv.MatTypeCV8UC3)
	gocv.Rectangle(&frame, image.Rect(0, 0, 50, 100), color.RGBA{R: 255, A: 255}, -1)
	gocv.Rectangle(&frame, image.Rect(50, 0, 100, 100), color.RGBA{B: 255, A: 255}, -1)
	return frame
}

func TestSample_Uniform(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	// BGR scalar for RGB (30, 60, 90).
	frame := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(90, 60, 30, 0), 120, 160, gocv.MatTypeCV8UC3)
	defer frame.Close()

	want := chroma.RGB{R: 30, G: 60, B: 90}
	points := []image.Point{{0, 0}, {80, 60}, {159, 119}, {-50, 500}, {1000, -1}}

	for _, p := range points {
		if got := Sample(frame, p, DefaultRadius); got != want {
			t.Errorf("Sample(%v) = %v, want %v", p, got, want)
		}
	}
}

func TestSample_AveragesWindow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	frame := splitFrame()
	defer frame.Close()

	got := Sample(frame, image.Pt(50, 50), 10)
	want := chroma.RGB{R: 127, G: 0, B: 127}
	if got != want {
		t.Errorf("Sample() across the split = %v, want %v", got, want)
	}
}

func TestSample_ClampsNearEdge(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	frame := splitFrame()
	defer frame.Close()

	tests := []struct {
		name string
		p    image.Point
		want chroma.RGB
	}{
		{"top left corner", image.Pt(0, 0), chroma.RGB{R: 255}},
		{"outside left", image.Pt(-40, 50), chroma.RGB{R: 255}},
		{"bottom right corner", image.Pt(99, 99), chroma.RGB{B: 255}},
		{"outside right", image.Pt(400, 10), chroma.RGB{B: 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sample(frame, tt.p, 10); got != tt.want {
				t.Errorf("Sample(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestSample_SinglePixelFallback(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	frame := splitFrame()
	defer frame.Close()

	if got := Sample(frame, image.Pt(49, 10), 0); got != (chroma.RGB{R: 255}) {
		t.Errorf("Sample(r=0) at x=49 = %v, want red", got)
	}
	if got := Sample(frame, image.Pt(50, 10), 0); got != (chroma.RGB{B: 255}) {
		t.Errorf("Sample(r=0) at x=50 = %v, want blue", got)
	}
	if got := Sample(frame, image.Pt(200, 200), 80); got != (chroma.RGB{B: 255}) {
		t.Errorf("Sample(oversized radius) = %v, want clamped blue pixel", got)
	}
}

func TestSample_EmptyFrame(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	frame := gocv.NewMat()
	defer frame.Close()

	if got := Sample(frame, image.Pt(1, 1), 5); got != (chroma.RGB{}) {
		t.Errorf("Sample(empty) = %v, want zero color", got)
	}
}
