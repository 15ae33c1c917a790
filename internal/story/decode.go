package story

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalid is returned for content that does not match the book model.
var ErrInvalid = errors.New("invalid book")

// RawBook is the on-disk JSON form of a book. Optional fields are pointers
// so that an absent or null field can be told apart from a zero value.
type RawBook struct {
	ID    string    `json:"id"`
	Title string    `json:"title"`
	Cover string    `json:"cover"`
	Pages []RawPage `json:"pages"`
}

// RawPage is the on-disk form of a page.
type RawPage struct {
	Background  string          `json:"background"`
	Interactive *RawInteractive `json:"interactive"`
}

// RawInteractive is the on-disk form of an interactive element.
type RawInteractive struct {
	Src       string        `json:"src"`
	Initial   *RawPlacement `json:"initial,omitempty"`
	Animation *RawAnimation `json:"animation"`
}

// RawPlacement is the on-disk form of a placement.
type RawPlacement struct {
	Top       *Length    `json:"top,omitempty"`
	Left      *Length    `json:"left,omitempty"`
	Width     *Length    `json:"width,omitempty"`
	Height    *Length    `json:"height,omitempty"`
	Transform *Transform `json:"transform,omitempty"`
}

// RawPosition is the on-disk form of a move target.
type RawPosition struct {
	Top  *Length `json:"top"`
	Left *Length `json:"left"`
}

// RawAnimation is the on-disk, loosely-typed form of an animation.
type RawAnimation struct {
	Type  string       `json:"type"`
	To    *RawPosition `json:"to,omitempty"`
	Scale *float64     `json:"scale,omitempty"`
	Hue   *float64     `json:"hue,omitempty"`
}

// DecodeBook parses and validates a JSON book.
func DecodeBook(data []byte) (*Book, error) {
	var raw RawBook
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return raw.Build()
}

// Build validates the raw book and returns a fully-defaulted Book.
func (r RawBook) Build() (*Book, error) {
	if len(r.Pages) == 0 {
		return nil, fmt.Errorf("%w: no pages", ErrInvalid)
	}
	book := &Book{
		ID:    r.ID,
		Title: r.Title,
		Cover: r.Cover,
		Pages: make([]Page, 0, len(r.Pages)),
	}
	for i, rp := range r.Pages {
		p, err := rp.Build()
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", i+1, err)
		}
		book.Pages = append(book.Pages, p)
	}
	return book, nil
}

// Build validates the raw page.
func (r RawPage) Build() (Page, error) {
	if r.Interactive == nil {
		return Page{}, fmt.Errorf("%w: missing interactive", ErrInvalid)
	}
	in, err := r.Interactive.Build()
	if err != nil {
		return Page{}, err
	}
	return Page{Background: r.Background, Interactive: in}, nil
}

// Build validates the raw interactive element and applies placement
// defaults.
func (r RawInteractive) Build() (Interactive, error) {
	if r.Animation == nil {
		return Interactive{}, fmt.Errorf("%w: missing animation", ErrInvalid)
	}
	anim, err := r.Animation.Build()
	if err != nil {
		return Interactive{}, err
	}
	return Interactive{
		Src:       r.Src,
		Initial:   r.Initial.Build(),
		Animation: anim,
	}, nil
}

// Build applies defaults to every absent field. A nil placement yields
// DefaultPlacement.
func (r *RawPlacement) Build() Placement {
	p := DefaultPlacement()
	if r == nil {
		return p
	}
	if r.Top != nil {
		p.Top = *r.Top
	}
	if r.Left != nil {
		p.Left = *r.Left
	}
	if r.Width != nil {
		p.Width = *r.Width
	}
	if r.Height != nil {
		p.Height = *r.Height
	}
	if r.Transform != nil {
		p.Transform = *r.Transform
	}
	return p
}

// Build converts the loosely-typed animation to its variant. Unrecognised
// types become Unknown.
func (r RawAnimation) Build() (Animation, error) {
	switch Kind(r.Type) {
	case "":
		return nil, fmt.Errorf("%w: animation type is required", ErrInvalid)
	case KindMove:
		if r.To == nil || r.To.Top == nil || r.To.Left == nil {
			return nil, fmt.Errorf("%w: move animation requires to.top and to.left", ErrInvalid)
		}
		return Move{To: Position{Top: *r.To.Top, Left: *r.To.Left}}, nil
	case KindGrow:
		return Grow{Scale: orDefault(r.Scale, DefaultGrowScale)}, nil
	case KindShrink:
		return Shrink{Scale: orDefault(r.Scale, DefaultShrinkScale)}, nil
	case KindColor:
		return Color{Hue: orDefault(r.Hue, DefaultHue)}, nil
	default:
		return Unknown{Type: r.Type}, nil
	}
}

func orDefault(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}
