package capture

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"gocv.io/x/gocv"
)

func TestMockCamera_Playback(t *testing.T) {
	frame1 := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer frame1.Close()
	frame2 := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer frame2.Close()

	cam := NewMockCamera([]*gocv.Mat{&frame1, &frame2}, false)

	if _, err := cam.ReadFrame(); !errors.Is(err, ErrCameraNotOpen) {
		t.Errorf("ReadFrame() before Open error = %v, want ErrCameraNotOpen", err)
	}

	if err := cam.Open(); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer cam.Close()

	for i := 0; i < 2; i++ {
		f, err := cam.ReadFrame()
		if err != nil {
			t.Fatalf("ReadFrame() %d error = %v", i, err)
		}
		f.Close()
	}

	if _, err := cam.ReadFrame(); !errors.Is(err, ErrEndOfStream) {
		t.Errorf("ReadFrame() after last frame error = %v, want ErrEndOfStream", err)
	}
	if cam.Reads() != 2 {
		t.Errorf("Reads() = %d, want 2", cam.Reads())
	}
}

func TestMockCamera_Loop(t *testing.T) {
	frame := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer frame.Close()

	cam := NewMockCamera([]*gocv.Mat{&frame}, true)
	cam.Open()
	defer cam.Close()

	for i := 0; i < 5; i++ {
		f, err := cam.ReadFrame()
		if err != nil {
			t.Fatalf("ReadFrame() iteration %d error = %v", i, err)
		}
		f.Close()
	}
}

func TestMockCamera_Empty(t *testing.T) {
	cam := NewMockCamera(nil, true)
	cam.Open()
	defer cam.Close()

	if _, err := cam.ReadFrame(); !errors.Is(err, ErrEndOfStream) {
		t.Errorf("ReadFrame() error = %v, want ErrEndOfStream", err)
	}
}

func TestMirror(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	frame := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), 10, 20, gocv.MatTypeCV8UC3)
	gocv.Rectangle(&frame, image.Rect(0, 0, 5, 10), color.RGBA{R: 255, A: 255}, -1)

	flipped := Mirror(&frame)
	defer flipped.Close()

	left := flipped.GetVecbAt(5, 0)
	right := flipped.GetVecbAt(5, 19)
	if left[2] != 0 {
		t.Errorf("left edge red = %d, want 0", left[2])
	}
	if right[2] != 255 {
		t.Errorf("right edge red = %d, want 255", right[2])
	}
}

func TestToGray(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	frame := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(100, 100, 100, 0), 30, 40, gocv.MatTypeCV8UC3)
	defer frame.Close()

	for _, blur := range []int{0, 4, 5} {
		gray := ToGray(frame, blur)
		if gray.Channels() != 1 {
			t.Errorf("blur %d: Channels() = %d, want 1", blur, gray.Channels())
		}
		if gray.Rows() != 30 || gray.Cols() != 40 {
			t.Errorf("blur %d: size = %dx%d, want 40x30", blur, gray.Cols(), gray.Rows())
		}
		if v := gray.GetUCharAt(15, 20); v != 100 {
			t.Errorf("blur %d: pixel = %d, want 100", blur, v)
		}
		gray.Close()
	}
}
