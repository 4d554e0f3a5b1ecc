// Package overlay annotates frames with the pointing marker, the detection
// mode and the last classified color.
package overlay

import (
	"fmt"
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"github.com/ayusman/chromatip/internal/chroma"
	"github.com/ayusman/chromatip/internal/detector"
	"github.com/ayusman/chromatip/internal/session"
)

const (
	PanelWidth  = 400
	PanelHeight = 150
	panelMargin = 10

	swatchSize = 60
)

var (
	markerColor = color.RGBA{0, 255, 0, 0}
	modeColor   = color.RGBA{0, 255, 0, 0}
	panelColor  = color.RGBA{50, 50, 50, 0}
	textColor   = color.RGBA{255, 255, 255, 0}
	accentColor = color.RGBA{255, 255, 0, 0}
)

// Draw annotates frame in place with the state described by res.
// radius is the sampling radius drawn around a detected point.
func Draw(frame *gocv.Mat, res session.Result, radius int) {
	if frame == nil || frame.Empty() {
		return
	}

	if res.Detected {
		if radius > 0 {
			gocv.Circle(frame, res.Point, radius, markerColor, 2)
		}
		gocv.Circle(frame, res.Point, 3, markerColor, -1)
	}

	gocv.PutText(frame, "Detection Mode: "+res.Mode.Title(), image.Pt(10, 30),
		gocv.FontHersheySimplex, 0.7, modeColor, 2)

	if res.Last != nil {
		DrawPanel(frame, res.Last.Classification, res.Mode)
	}
}

// PanelRect returns where the info panel goes on a frame of the given size.
// It is empty when the frame cannot hold the panel.
func PanelRect(size image.Point) image.Rectangle {
	if size.X < PanelWidth+2*panelMargin || size.Y < PanelHeight+2*panelMargin {
		return image.Rectangle{}
	}
	y := size.Y - PanelHeight - panelMargin
	return image.Rect(panelMargin, y, panelMargin+PanelWidth, y+PanelHeight)
}

// SwatchRect returns the color swatch inside a panel.
func SwatchRect(panel image.Rectangle) image.Rectangle {
	origin := panel.Min.Add(image.Pt(20, 20))
	return image.Rectangle{Min: origin, Max: origin.Add(image.Pt(swatchSize+40, swatchSize))}
}

// DrawPanel draws the color info panel in the lower left corner. Frames
// too small for the panel are left untouched.
func DrawPanel(frame *gocv.Mat, c chroma.Classification, mode detector.Mode) {
	panel := PanelRect(image.Pt(frame.Cols(), frame.Rows()))
	if panel.Empty() {
		return
	}

	gocv.Rectangle(frame, panel, panelColor, -1)

	swatch := SwatchRect(panel)
	gocv.Rectangle(frame, swatch, color.RGBA{c.RGB.R, c.RGB.G, c.RGB.B, 0}, -1)
	gocv.Rectangle(frame, swatch, textColor, 2)

	x := swatch.Max.X + 20
	y := panel.Min.Y + 40
	lines := []string{
		"Color: " + c.Name,
		"RGB: " + c.RGB.String(),
		"HEX: " + c.Hex,
		"HSV: " + c.HSV.String(),
	}
	for i, line := range lines {
		gocv.PutText(frame, line, image.Pt(x, y+i*20), gocv.FontHersheySimplex, 0.6, textColor, 1)
	}
	gocv.PutText(frame, "Mode: "+mode.Title(), image.Pt(x, y+len(lines)*20),
		gocv.FontHersheySimplex, 0.6, accentColor, 1)
}

// Encode returns frame as JPEG bytes.
func Encode(frame gocv.Mat) ([]byte, error) {
	buf, err := gocv.IMEncode(gocv.JPEGFileExt, frame)
	if err != nil {
		return nil, fmt.Errorf("failed to encode frame: %w", err)
	}
	defer buf.Close()

	out := make([]byte, buf.Len())
	copy(out, buf.GetBytes())
	return out, nil
}
