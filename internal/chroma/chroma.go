// Package chroma converts sampled colors between color spaces and resolves
// them to human-readable names against a reference table.
package chroma

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidHex is returned when a hex color code cannot be parsed.
var ErrInvalidHex = errors.New("invalid hex color")

// RGB is an 8-bit-per-channel color in red, green, blue order.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// HSV is a hue/saturation/value triple.
// Hue is in [0,360), saturation and value are in [0,100].
type HSV struct {
	H int `json:"h"`
	S int `json:"s"`
	V int `json:"v"`
}

// HSL is a hue/saturation/lightness triple.
// Hue is in [0,360), saturation and lightness are in [0,100].
type HSL struct {
	H int `json:"h"`
	S int `json:"s"`
	L int `json:"l"`
}

// Common reference colors.
var (
	Black = RGB{0, 0, 0}
	White = RGB{255, 255, 255}
)

// String formats the color the way it is written to the color log: "(r, g, b)".
func (c RGB) String() string {
	return fmt.Sprintf("(%d, %d, %d)", c.R, c.G, c.B)
}

func (h HSV) String() string {
	return fmt.Sprintf("(%d, %d, %d)", h.H, h.S, h.V)
}

func (h HSL) String() string {
	return fmt.Sprintf("(%d, %d, %d)", h.H, h.S, h.L)
}

// Hex returns the lowercase "#rrggbb" code for the color.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ParseHex parses "#rrggbb", "rrggbb", "#rgb" or "rgb" (any case).
func ParseHex(s string) (RGB, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return RGB{}, fmt.Errorf("%w: %q", ErrInvalidHex, s)
	}

	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("%w: %q", ErrInvalidHex, s)
	}

	return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// normalized returns the channels scaled to [0,1].
func (c RGB) normalized() (r, g, b float64) {
	return float64(c.R) / 255.0, float64(c.G) / 255.0, float64(c.B) / 255.0
}

// hue returns the hue of r, g, b in whole degrees [0,360), truncated,
// together with the channel maximum and minimum.
func hue(r, g, b int) (h, maxC, minC int) {
	maxC = max(r, g, b)
	minC = min(r, g, b)
	d := maxC - minC

	if d == 0 {
		return 0, maxC, minC
	}

	switch maxC {
	case r:
		h = floorDiv(60*(g-b), d)
		if h < 0 {
			h += 360
		}
	case g:
		h = floorDiv(60*(b-r), d) + 120
	default:
		h = floorDiv(60*(r-g), d) + 240
	}
	return h, maxC, minC
}

// floorDiv divides a by b > 0, rounding toward negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && a < 0 {
		q--
	}
	return q
}

// HSV converts the color to hue/saturation/value, truncating each channel.
func (c RGB) HSV() HSV {
	h, maxC, minC := hue(int(c.R), int(c.G), int(c.B))

	var s int
	if maxC > 0 {
		s = (maxC - minC) * 100 / maxC
	}

	return HSV{H: h, S: s, V: maxC * 100 / 255}
}

// HSL converts the color to hue/saturation/lightness, truncating each channel.
func (c RGB) HSL() HSL {
	h, maxC, minC := hue(int(c.R), int(c.G), int(c.B))
	sum := maxC + minC

	var s int
	if d := maxC - minC; d > 0 {
		if sum <= 255 {
			s = d * 100 / sum
		} else {
			s = d * 100 / (510 - sum)
		}
	}

	return HSL{H: h, S: s, L: sum * 100 / 510}
}

// RGB converts an HSV triple back to 8-bit channels, truncating each channel.
func (h HSV) RGB() RGB {
	hf := float64(h.H) / 360.0
	s := float64(h.S) / 100.0
	v := float64(h.V) / 100.0

	if s == 0 {
		return RGB{uint8(v * 255), uint8(v * 255), uint8(v * 255)}
	}

	i := int(hf * 6)
	f := hf*6 - float64(i)
	p := v * (1 - s)
	q := v * (1 - s*f)
	t := v * (1 - s*(1-f))

	var r, g, b float64
	switch i % 6 {
	case 0:
		r, g, b = v, t, p
	case 1:
		r, g, b = q, v, p
	case 2:
		r, g, b = p, v, t
	case 3:
		r, g, b = p, q, v
	case 4:
		r, g, b = t, p, v
	default:
		r, g, b = v, p, q
	}

	return RGB{uint8(r * 255), uint8(g * 255), uint8(b * 255)}
}

// Luminance returns the perceived brightness of the color in [0,1].
func (c RGB) Luminance() float64 {
	r, g, b := c.normalized()
	return 0.299*r + 0.587*g + 0.114*b
}

// IsLight reports whether the color's luminance is above one half.
func (c RGB) IsLight() bool {
	return c.Luminance() > 0.5
}

// Contrast returns black for light colors and white for dark ones.
func (c RGB) Contrast() RGB {
	if c.IsLight() {
		return Black
	}
	return White
}

// squaredDistance is the squared Euclidean distance between two colors in RGB space.
func squaredDistance(a, b RGB) int {
	dr := int(a.R) - int(b.R)
	dg := int(a.G) - int(b.G)
	db := int(a.B) - int(b.B)
	return dr*dr + dg*dg + db*db
}

// Distance returns the Euclidean distance between two colors in RGB space.
func Distance(a, b RGB) float64 {
	return math.Sqrt(float64(squaredDistance(a, b)))
}
