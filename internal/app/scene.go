package app

import "github.com/metcalfc/storybook/internal/story"

// Scene is the layered description of the current page for a renderer.
type Scene struct {
	// Background is the bottom layer image reference.
	Background string
	// Sprite is the top, clickable layer.
	Sprite Sprite
	// CanPrev and CanNext enable the navigation affordances.
	CanPrev bool
	CanNext bool
	// Page is 1-based.
	Page  int
	Pages int
	// Progress is Page/Pages.
	Progress float64
}

// Sprite is the interactive image and its resolved style.
type Sprite struct {
	Src       string
	Style     story.Style
	Activated bool
}

// Scene returns the scene for the current page. It reports false outside
// the reader view or while no book is open.
func (a *App) Scene() (Scene, bool) {
	if a.View != ViewReader || a.Book == nil {
		return Scene{}, false
	}
	page, ok := a.reader.CurrentPage()
	if !ok {
		return Scene{}, false
	}
	current, total := a.reader.Progress()
	return Scene{
		Background: page.Background,
		Sprite: Sprite{
			Src:       page.Interactive.Src,
			Style:     story.Resolve(page.Interactive, a.Activated),
			Activated: a.Activated,
		},
		CanPrev:  a.reader.CanPrev(),
		CanNext:  a.reader.CanNext(),
		Page:     current,
		Pages:    total,
		Progress: a.reader.Fraction(),
	}, true
}
