package story

import "strings"

// Style is the concrete style record of an interactive element.
type Style struct {
	Top       Length
	Left      Length
	Width     Length
	Height    Length
	Transform Transform
	Filter    Filter
}

// Resolve maps an interactive element and its activated flag to a style.
// Inactive elements get their placement; active ones get the placement with
// the animation applied.
func Resolve(in Interactive, activated bool) Style {
	base := in.Initial.Style()
	if !activated || in.Animation == nil {
		return base
	}
	return in.Animation.apply(base)
}

// Style returns the placement as a style record with no filter.
func (p Placement) Style() Style {
	return Style{
		Top:       p.Top,
		Left:      p.Left,
		Width:     p.Width,
		Height:    p.Height,
		Transform: p.Transform,
	}
}

// CSS renders the style as CSS declarations.
func (s Style) CSS() string {
	decls := []string{
		"top: " + s.Top.String(),
		"left: " + s.Left.String(),
		"width: " + s.Width.String(),
		"height: " + s.Height.String(),
	}
	if s.Transform != "" {
		decls = append(decls, "transform: "+string(s.Transform))
	}
	if s.Filter != "" {
		decls = append(decls, "filter: "+string(s.Filter))
	}
	return strings.Join(decls, "; ")
}

// Rect is an axis-aligned rectangle in stage coordinates.
type Rect struct {
	X, Y, W, H float64
}

// Contains reports whether the point lies inside the rectangle.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Box places the styled element on a stage of the given size. Top/left are
// relative to the stage, the translate is relative to the element and the
// scale is applied about the element centre.
func (s Style) Box(stageW, stageH float64) Rect {
	w := s.Width.Resolve(stageW)
	h := s.Height.Resolve(stageH)
	tx, ty := s.Transform.Translate()
	cx := s.Left.Resolve(stageW) + w/2 + tx*w/100
	cy := s.Top.Resolve(stageH) + h/2 + ty*h/100
	scale := s.Transform.Scale()
	sw, sh := w*scale, h*scale
	return Rect{X: cx - sw/2, Y: cy - sh/2, W: sw, H: sh}
}
