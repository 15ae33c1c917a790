//go:build !gui

package main

import (
	"math"
	"path"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/metcalfc/storybook/internal/app"
	"github.com/metcalfc/storybook/internal/sprite"
	"github.com/metcalfc/storybook/internal/story"
)

// A terminal cell stands in for this many pixels, so pixel sizes from the
// book keep roughly their proportions.
const (
	cellWidth  = 8
	cellHeight = 16
)

const spriteColor = "#F2A93B"

var (
	backdropStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#3A3F5C"))

	backdropLabelStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#8A8FAC")).
				Italic(true)
)

// stage is the reader's drawing area, measured in terminal cells.
type stage struct {
	cols int
	rows int
}

func newStage(cols, rows int) stage {
	return stage{cols: max(cols, 1), rows: max(rows, 1)}
}

// spriteCells returns the sprite rectangle in cells. The rectangle may lie
// partly or wholly outside the stage; edges further than one stage extent
// away are pulled in to that distance.
func (st stage) spriteCells(style story.Style) (x, y, w, h int) {
	r := style.Box(float64(st.cols*cellWidth), float64(st.rows*cellHeight))
	x0, x1 := clampCells(r.X/cellWidth, st.cols), clampCells((r.X+r.W)/cellWidth, st.cols)
	y0, y1 := clampCells(r.Y/cellHeight, st.rows), clampCells((r.Y+r.H)/cellHeight, st.rows)
	return x0, y0, max(x1-x0, 1), max(y1-y0, 1)
}

// clampCells rounds v to a cell index within [-extent, 2*extent].
func clampCells(v float64, extent int) int {
	lo, hi := float64(-extent), float64(2*extent)
	return int(math.Round(math.Max(lo, math.Min(v, hi))))
}

// hit reports whether the cell at col,row lies on the sprite.
func (st stage) hit(style story.Style, col, row int) bool {
	x, y, w, h := st.spriteCells(style)
	return col >= x && col < x+w && row >= y && row < y+h
}

// spriteFill returns the sprite colour with the style's filter applied.
func spriteFill(style story.Style) string {
	if hue, ok := style.Filter.HueRotate(); ok {
		if c, err := sprite.RotateHex(spriteColor, hue); err == nil {
			return c
		}
	}
	return spriteColor
}

// render draws the stage. Only the visible part of the sprite is built, so
// the cost is bounded by the stage size whatever the sprite's size.
func (st stage) render(s app.Scene) string {
	x, y, w, h := st.spriteCells(s.Sprite.Style)
	spriteStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#1B1B1B")).
		Background(lipgloss.Color(spriteFill(s.Sprite.Style)))

	label := []rune(path.Base(s.Sprite.Src))
	if len(label) > w {
		label = label[:w]
	}
	labelRow, labelCol := y+h/2, x+(w-len(label))/2

	backdrop := []rune(strings.Repeat("·", st.cols))
	caption := []rune(" " + path.Base(s.Background) + " ")

	from, to := max(x, 0), min(x+w, st.cols)
	top, bottom := max(y, 0), min(y+h, st.rows)

	lines := make([]string, st.rows)
	for row := 0; row < st.rows; row++ {
		bg := backdrop
		bgStyle := backdropStyle
		if row == st.rows-1 && len(caption) < st.cols {
			bg = append(append([]rune{}, caption...), backdrop[len(caption):]...)
			bgStyle = backdropLabelStyle
		}

		if row < top || row >= bottom || from >= to {
			lines[row] = bgStyle.Render(string(bg))
			continue
		}

		block := []rune(strings.Repeat(" ", to-from))
		if row == labelRow {
			for i, r := range label {
				if c := labelCol + i; c >= from && c < to {
					block[c-from] = r
				}
			}
		}
		lines[row] = bgStyle.Render(string(bg[:from])) +
			spriteStyle.Render(string(block)) +
			bgStyle.Render(string(bg[to:]))
	}
	return strings.Join(lines, "\n")
}
