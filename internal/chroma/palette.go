package chroma

import "fmt"

// Scheme names a palette generation strategy.
type Scheme string

const (
	SchemeMonochromatic Scheme = "monochromatic"
	SchemeAnalogous     Scheme = "analogous"
	SchemeTriadic       Scheme = "triadic"
	SchemeComplementary Scheme = "complementary"
)

// ParseScheme validates a scheme name.
func ParseScheme(s string) (Scheme, error) {
	switch Scheme(s) {
	case SchemeMonochromatic, SchemeAnalogous, SchemeTriadic, SchemeComplementary:
		return Scheme(s), nil
	}
	return "", fmt.Errorf("unknown palette scheme %q", s)
}

// rotate returns h shifted by deg degrees, wrapped into [0,360).
func rotate(h HSV, deg int) HSV {
	h.H = ((h.H+deg)%360 + 360) % 360
	return h
}

func clampInt(v, lo, hi int) int {
	return max(lo, min(hi, v))
}

// Complementary returns the color opposite c on the hue wheel.
func Complementary(c RGB) RGB {
	return rotate(c.HSV(), 180).RGB()
}

// Palette returns base followed by the colors derived from it under scheme.
func Palette(base RGB, scheme Scheme) []RGB {
	hsv := base.HSV()
	palette := []RGB{base}

	switch scheme {
	case SchemeMonochromatic:
		for i := 1; i < 5; i++ {
			palette = append(palette, HSV{
				H: hsv.H,
				S: clampInt(hsv.S+i*15, 10, 100),
				V: clampInt(hsv.V+i*10, 20, 100),
			}.RGB())
		}
	case SchemeAnalogous:
		for _, off := range []int{-30, -15, 15, 30} {
			palette = append(palette, rotate(hsv, off).RGB())
		}
	case SchemeTriadic:
		for _, off := range []int{120, 240} {
			palette = append(palette, rotate(hsv, off).RGB())
		}
	case SchemeComplementary:
		palette = append(palette, Complementary(base))
		for _, off := range []int{150, 210} {
			palette = append(palette, rotate(hsv, off).RGB())
		}
	}

	return palette
}

// Blend mixes a and b; ratio 0 yields a, ratio 1 yields b.
// Ratios outside [0,1] are clamped.
func Blend(a, b RGB, ratio float64) RGB {
	ratio = max(0, min(1, ratio))
	mix := func(x, y uint8) uint8 {
		return uint8(float64(x)*(1-ratio) + float64(y)*ratio)
	}
	return RGB{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B)}
}
