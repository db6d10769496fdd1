package render

import (
	"fmt"

	"gonum.org/v1/plot/vg"
)

// Default render size in pixels.
const (
	DefaultWidth  = 800
	DefaultHeight = 600
)

// Size limits in pixels.
const (
	MinWidth  = 320
	MinHeight = 240
	MaxSide   = 4096
)

// PixelsPerInch is the screen resolution pixel sizes refer to.
const PixelsPerInch = 96

// ClampSize applies the default size to zero values and clamps both sides
// into [Min, MaxSide].
func ClampSize(w, h int) (int, int) {
	if w <= 0 {
		w = DefaultWidth
	}
	if h <= 0 {
		h = DefaultHeight
	}
	return clamp(w, MinWidth, MaxSide), clamp(h, MinHeight, MaxSide)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// PixelsToLength converts pixels at 96 DPI to a plot length.
// 1 inch = 96 px = 72 pt.
func PixelsToLength(px int) vg.Length {
	return vg.Length(px) * vg.Inch / PixelsPerInch
}

// CSSPixels formats a pixel size for HTML, e.g. "800px".
func CSSPixels(px int) string {
	return fmt.Sprintf("%dpx", px)
}
