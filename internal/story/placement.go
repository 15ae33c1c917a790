package story

import (
	"regexp"
	"strconv"
)

// CenterTransform is the default transform: the element is centred on its
// top/left anchor.
const CenterTransform Transform = "translate(-50%, -50%)"

// Placement is the geometric baseline of an interactive element before any
// animation is applied.
type Placement struct {
	Top       Length
	Left      Length
	Width     Length
	Height    Length
	Transform Transform
}

// DefaultPlacement returns the placement used when a page omits "initial".
func DefaultPlacement() Placement {
	return Placement{
		Top:       Pct(50),
		Left:      Pct(50),
		Width:     Px(80),
		Height:    Px(80),
		Transform: CenterTransform,
	}
}

// Transform is a CSS-transform-like string.
type Transform string

var (
	scaleRegex     = regexp.MustCompile(`scale\(\s*([-+0-9.eE]+)\s*\)`)
	translateRegex = regexp.MustCompile(`translate\(\s*([-+0-9.eE]+)%\s*,\s*([-+0-9.eE]+)%\s*\)`)
	hueRegex       = regexp.MustCompile(`hue-rotate\(\s*([-+0-9.eE]+)deg\s*\)`)
)

// ScaleTransform returns the centre translate composed with a uniform scale.
func ScaleTransform(scale float64) Transform {
	return Transform(string(CenterTransform) + " scale(" + formatNumber(scale) + ")")
}

// Scale returns the uniform scale factor, or 1 when none is present.
func (t Transform) Scale() float64 {
	m := scaleRegex.FindStringSubmatch(string(t))
	if m == nil {
		return 1
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 1
	}
	return v
}

// Translate returns the translate percentages relative to the element size.
func (t Transform) Translate() (x, y float64) {
	m := translateRegex.FindStringSubmatch(string(t))
	if m == nil {
		return 0, 0
	}
	x, _ = strconv.ParseFloat(m[1], 64)
	y, _ = strconv.ParseFloat(m[2], 64)
	return x, y
}

// Filter is a CSS-filter-like string. The zero value means no filter.
type Filter string

// HueRotateFilter returns a hue-rotation filter of the given degrees.
func HueRotateFilter(degrees float64) Filter {
	return Filter("hue-rotate(" + formatNumber(degrees) + "deg)")
}

// HueRotate returns the hue rotation in degrees and whether one is present.
func (f Filter) HueRotate() (float64, bool) {
	m := hueRegex.FindStringSubmatch(string(f))
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
