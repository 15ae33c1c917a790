package story

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeBookDefaults(t *testing.T) {
	data := []byte(`{
		"id": "forest",
		"title": "The Forest",
		"cover": "assets/forest-cover.png",
		"pages": [
			{"background": "bg1.png", "interactive": {"src": "owl.png", "animation": {"type": "grow"}}},
			{"background": "bg2.png", "interactive": {"src": "fox.png", "initial": {"top": "20%", "width": 120}, "animation": {"type": "shrink", "scale": null}}},
			{"background": "bg3.png", "interactive": {"src": "leaf.png", "animation": {"type": "color"}}},
			{"background": "bg4.png", "interactive": {"src": "bee.png", "animation": {"type": "move", "to": {"top": "10%", "left": 40}}}}
		]
	}`)

	book, err := DecodeBook(data)
	require.NoError(t, err)
	require.Len(t, book.Pages, 4)

	assert.Equal(t, "forest", book.ID)
	assert.Equal(t, "The Forest", book.Title)

	p0 := book.Pages[0].Interactive
	assert.Equal(t, DefaultPlacement(), p0.Initial)
	assert.Equal(t, Grow{Scale: 1.5}, p0.Animation)

	p1 := book.Pages[1].Interactive
	assert.Equal(t, Pct(20), p1.Initial.Top)
	assert.Equal(t, Pct(50), p1.Initial.Left)
	assert.Equal(t, Px(120), p1.Initial.Width)
	assert.Equal(t, Px(80), p1.Initial.Height)
	assert.Equal(t, CenterTransform, p1.Initial.Transform)
	assert.Equal(t, Shrink{Scale: 0.5}, p1.Animation)

	assert.Equal(t, Color{Hue: 90}, book.Pages[2].Interactive.Animation)
	assert.Equal(t, Move{To: Position{Top: Pct(10), Left: Px(40)}}, book.Pages[3].Interactive.Animation)
}

func TestDecodeBookKeepsExplicitZero(t *testing.T) {
	data := []byte(`{"pages":[{"background":"bg.png","interactive":{"src":"s.png","initial":{"top":0,"width":0},"animation":{"type":"grow","scale":0}}}]}`)

	book, err := DecodeBook(data)
	require.NoError(t, err)

	in := book.Pages[0].Interactive
	assert.Equal(t, Px(0), in.Initial.Top)
	assert.Equal(t, Px(0), in.Initial.Width)
	assert.Equal(t, Grow{Scale: 0}, in.Animation)
}

func TestDecodeBookUnknownType(t *testing.T) {
	data := []byte(`{"pages":[{"background":"bg.png","interactive":{"src":"s.png","animation":{"type":"spin"}}}]}`)

	book, err := DecodeBook(data)
	require.NoError(t, err)
	assert.Equal(t, Unknown{Type: "spin"}, book.Pages[0].Interactive.Animation)
	assert.Equal(t, KindUnknown, book.Pages[0].Interactive.Animation.Kind())
}

func TestDecodeBookErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		msg  string
	}{
		{"malformed json", `{"pages": [`, "invalid book"},
		{"no pages", `{"pages": []}`, "no pages"},
		{"missing interactive", `{"pages":[{"background":"bg.png"}]}`, "page 1: invalid book: missing interactive"},
		{"missing animation", `{"pages":[{"background":"bg.png","interactive":{"src":"s.png"}}]}`, "missing animation"},
		{"missing type", `{"pages":[{"background":"bg.png","interactive":{"src":"s.png","animation":{}}}]}`, "type is required"},
		{"move without target", `{"pages":[{"background":"bg.png","interactive":{"src":"s.png","animation":{"type":"move","to":{"top":"1%"}}}}]}`, "requires to.top and to.left"},
		{"bad length", `{"pages":[{"background":"bg.png","interactive":{"src":"s.png","initial":{"top":"3em"},"animation":{"type":"grow"}}}]}`, `invalid length "3em"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeBook([]byte(tt.data))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalid)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestParseLength(t *testing.T) {
	tests := []struct {
		in      string
		want    Length
		wantErr bool
	}{
		{"50%", Pct(50), false},
		{"12px", Px(12), false},
		{"7.5", Px(7.5), false},
		{" 10 % ", Pct(10), false},
		{"-20%", Pct(-20), false},
		{"auto", Length{}, true},
		{"", Length{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLength(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseLengthErrorQuotesInput(t *testing.T) {
	for _, in := range []string{"abc%", "3em", "xpx"} {
		_, err := ParseLength(in)
		require.Error(t, err)
		assert.Contains(t, err.Error(), fmt.Sprintf("%q", in))
	}
}
