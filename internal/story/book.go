// Package story holds the storybook content model and the style resolver
// that maps an interactive element's declarative animation to a style.
package story

// Summary is a catalog entry for a book.
type Summary struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Cover string `json:"cover"`
}

// Book is a titled, ordered collection of pages. Books are immutable once
// loaded.
type Book struct {
	ID    string
	Title string
	Cover string
	Pages []Page
}

// Page is one screen: a background and exactly one interactive element.
type Page struct {
	Background  string
	Interactive Interactive
}

// Interactive describes a clickable sprite: its image, its placement and
// the animation applied once it is clicked.
type Interactive struct {
	Src       string
	Initial   Placement
	Animation Animation
}
