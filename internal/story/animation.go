package story

// Kind names an animation variant.
type Kind string

const (
	KindMove    Kind = "move"
	KindGrow    Kind = "grow"
	KindShrink  Kind = "shrink"
	KindColor   Kind = "color"
	KindUnknown Kind = ""
)

// Default animation parameters, applied at parse time when absent.
const (
	DefaultGrowScale   = 1.5
	DefaultShrinkScale = 0.5
	DefaultHue         = 90
)

// Animation is the click-triggered effect of an interactive element. The set
// of implementations is closed: Move, Grow, Shrink, Color and Unknown.
type Animation interface {
	Kind() Kind
	apply(base Style) Style
}

// Position is an absolute top/left pair.
type Position struct {
	Top  Length
	Left Length
}

// Move repositions the element.
type Move struct {
	To Position
}

// Grow scales the element up around its centre.
type Grow struct {
	Scale float64
}

// Shrink scales the element down around its centre.
type Shrink struct {
	Scale float64
}

// Color rotates the element's hue.
type Color struct {
	Hue float64
}

// Unknown is an animation with an unrecognised type. Applying it is a no-op.
type Unknown struct {
	Type string
}

func (Move) Kind() Kind    { return KindMove }
func (Grow) Kind() Kind    { return KindGrow }
func (Shrink) Kind() Kind  { return KindShrink }
func (Color) Kind() Kind   { return KindColor }
func (Unknown) Kind() Kind { return KindUnknown }

func (a Move) apply(s Style) Style {
	s.Top = a.To.Top
	s.Left = a.To.Left
	return s
}

func (a Grow) apply(s Style) Style {
	s.Transform = ScaleTransform(a.Scale)
	return s
}

func (a Shrink) apply(s Style) Style {
	s.Transform = ScaleTransform(a.Scale)
	return s
}

func (a Color) apply(s Style) Style {
	s.Filter = HueRotateFilter(a.Hue)
	return s
}

func (Unknown) apply(s Style) Style { return s }
