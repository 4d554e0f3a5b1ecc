package overlay

import (
	"bytes"
	"image"
	"testing"
	"time"

	"gocv.io/x/gocv"

	"github.com/ayusman/chromatip/internal/chroma"
	"github.com/ayusman/chromatip/internal/detector"
	"github.com/ayusman/chromatip/internal/session"
)

func TestPanelRect(t *testing.T) {
	tests := []struct {
		name  string
		size  image.Point
		empty bool
	}{
		{"vga", image.Pt(640, 480), false},
		{"exact fit", image.Pt(PanelWidth+20, PanelHeight+20), false},
		{"too narrow", image.Pt(PanelWidth, 480), true},
		{"too short", image.Pt(640, PanelHeight), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := PanelRect(tt.size)
			if r.Empty() != tt.empty {
				t.Fatalf("PanelRect(%v) = %v, empty = %v, want %v", tt.size, r, r.Empty(), tt.empty)
			}
			if !tt.empty && !r.In(image.Rectangle{Max: tt.size}) {
				t.Errorf("PanelRect(%v) = %v leaves the frame", tt.size, r)
			}
		})
	}
}

func TestSwatchRect_InsidePanel(t *testing.T) {
	panel := PanelRect(image.Pt(640, 480))
	if swatch := SwatchRect(panel); !swatch.In(panel) {
		t.Errorf("SwatchRect() = %v not inside panel %v", swatch, panel)
	}
}

func TestDraw(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping OpenCV test in short mode")
	}

	frame := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), 480, 640, gocv.MatTypeCV8UC3)
	defer frame.Close()

	c := chroma.NewClassifier(nil).Classify(chroma.RGB{R: 255})
	res := session.Result{
		Mode:     detector.ModeClick,
		Detected: true,
		Point:    image.Pt(320, 100),
		Last:     &session.Detection{Mode: detector.ModeClick, Point: image.Pt(320, 100), Classification: c, Time: time.Now()},
	}

	Draw(&frame, res, 10)

	// Marker center is filled green (BGR).
	if v := frame.GetVecbAt(100, 320); v[0] != 0 || v[1] != 255 || v[2] != 0 {
		t.Errorf("marker pixel = %v, want green", v)
	}

	// Swatch interior carries the classified color (BGR).
	swatch := SwatchRect(PanelRect(image.Pt(640, 480)))
	cx, cy := (swatch.Min.X+swatch.Max.X)/2, (swatch.Min.Y+swatch.Max.Y)/2
	if v := frame.GetVecbAt(cy, cx); v[0] != 0 || v[1] != 0 || v[2] != 255 {
		t.Errorf("swatch pixel = %v, want red", v)
	}
}

func TestDraw_NoDetection(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping OpenCV test in short mode")
	}

	frame := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), 480, 640, gocv.MatTypeCV8UC3)
	defer frame.Close()

	Draw(&frame, session.Result{Mode: detector.ModeSkin, Point: image.Pt(320, 240)}, 10)

	if v := frame.GetVecbAt(240, 320); v[0] != 0 || v[1] != 0 || v[2] != 0 {
		t.Errorf("pixel at absent point = %v, want untouched", v)
	}
	panel := PanelRect(image.Pt(640, 480))
	if v := frame.GetVecbAt(panel.Min.Y+5, panel.Max.X-5); v[0] != 0 {
		t.Errorf("panel drawn without a last result: %v", v)
	}
}

func TestEncode(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping OpenCV test in short mode")
	}

	frame := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(10, 20, 30, 0), 48, 64, gocv.MatTypeCV8UC3)
	defer frame.Close()

	data, err := Encode(frame)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if !bytes.HasPrefix(data, []byte{0xff, 0xd8}) {
		t.Errorf("Encode() output is not JPEG: % x", data[:min(4, len(data))])
	}
}
