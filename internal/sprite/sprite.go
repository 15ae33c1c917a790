// Package sprite loads page images and applies the colour filter of an
// activated sprite.
package sprite

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	_ "golang.org/x/image/webp"
)

// Decode reads and decodes the image at ref in fsys.
func Decode(fsys fs.FS, ref string) (image.Image, error) {
	data, err := fs.ReadFile(fsys, ref)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", ref, err)
	}
	return img, nil
}

// HueRotate returns a copy of src with every pixel's hue rotated by degrees.
// Alpha is preserved; fully transparent pixels are copied unchanged.
func HueRotate(src image.Image, degrees float64) *image.NRGBA {
	b := src.Bounds()
	dst := image.NewNRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(src.At(x, y)).(color.NRGBA)
			if c.A == 0 {
				dst.SetNRGBA(x, y, c)
				continue
			}
			r, g, bl := rotate(colorful.Color{
				R: float64(c.R) / 255,
				G: float64(c.G) / 255,
				B: float64(c.B) / 255,
			}, degrees).RGB255()
			dst.SetNRGBA(x, y, color.NRGBA{R: r, G: g, B: bl, A: c.A})
		}
	}
	return dst
}

// RotateHex rotates the hue of a "#rrggbb" colour.
func RotateHex(hex string, degrees float64) (string, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return "", err
	}
	return rotate(c, degrees).Hex(), nil
}

func rotate(c colorful.Color, degrees float64) colorful.Color {
	h, s, v := c.Hsv()
	h = math.Mod(h+degrees, 360)
	if h < 0 {
		h += 360
	}
	return colorful.Hsv(h, s, v).Clamped()
}
