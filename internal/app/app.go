// Package app holds the storybook view state: which view is showing, the
// open book, loading, and whether the current page's sprite was clicked.
// Both the terminal and desktop front ends drive it.
package app

import (
	"context"
	"log/slog"

	"github.com/metcalfc/storybook/internal/reader"
	"github.com/metcalfc/storybook/internal/story"
)

// DefaultTitle is shown in the header outside the reader view.
const DefaultTitle = "Storybook Reader"

// View is the top-level screen.
type View int

const (
	ViewList View = iota
	ViewReader
)

func (v View) String() string {
	switch v {
	case ViewList:
		return "List"
	case ViewReader:
		return "Reader"
	default:
		return "Unknown"
	}
}

// Catalog is the content source the app reads from.
type Catalog interface {
	Summaries() []story.Summary
	Lookup(ctx context.Context, id string) (*story.Book, error)
}

// App is the view orchestrator. All methods except Fetch are meant to be
// called from the UI event loop only.
type App struct {
	View      View
	Book      *story.Book
	Loading   bool
	Activated bool
	// Err is the last failed book lookup, cleared by the next open.
	Err error

	pending string
	reader  *reader.Reader
	catalog Catalog
	log     *slog.Logger
}

// New creates an App showing the book list. A nil logger discards output.
func New(c Catalog, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &App{
		View:    ViewList,
		reader:  reader.NewReader(nil),
		catalog: c,
		log:     logger,
	}
}

// Summaries returns the books shown in the list view.
func (a *App) Summaries() []story.Summary {
	return a.catalog.Summaries()
}

// Reader exposes the navigation state of the open book.
func (a *App) Reader() *reader.Reader {
	return a.reader
}

// BeginOpen marks id as loading. Requests are serialized: it returns false
// and changes nothing while another book is loading.
func (a *App) BeginOpen(id string) bool {
	if a.Loading {
		a.log.Debug("open ignored while loading", slog.String("id", id), slog.String("pending", a.pending))
		return false
	}
	a.Loading = true
	a.pending = id
	a.Err = nil
	a.log.Info("opening book", slog.String("id", id))
	return true
}

// Fetch looks up the book in the catalog. It touches no view state and may
// run off the event loop.
func (a *App) Fetch(ctx context.Context, id string) (*story.Book, error) {
	return a.catalog.Lookup(ctx, id)
}

// FinishOpen completes the open started by BeginOpen. On success the book
// becomes current, navigation resets to the first page and the reader view
// is shown. On failure the list view stays and Err is set. Results for an
// id that is not pending are dropped.
func (a *App) FinishOpen(id string, book *story.Book, err error) {
	if !a.Loading || id != a.pending {
		a.log.Debug("stale open result dropped", slog.String("id", id))
		return
	}
	a.Loading = false
	a.pending = ""
	if err != nil {
		a.Err = err
		a.log.Error("open book failed", slog.String("id", id), slog.Any("err", err))
		return
	}
	a.Book = book
	a.reader.Open(book)
	a.Activated = false
	a.View = ViewReader
	a.log.Info("book opened", slog.String("id", id), slog.Int("pages", len(book.Pages)))
}

// GoHome shows the list view. The open book is kept.
func (a *App) GoHome() {
	a.View = ViewList
}

// Prev moves to the previous page.
func (a *App) Prev() { a.turn(a.reader.Prev) }

// Next moves to the next page.
func (a *App) Next() { a.turn(a.reader.Next) }

// First moves to the first page.
func (a *App) First() { a.turn(a.reader.First) }

// Last moves to the last page.
func (a *App) Last() { a.turn(a.reader.Last) }

// turn applies a navigation move in the reader view and resets the sprite
// when the page changes.
func (a *App) turn(move func() bool) {
	if a.View != ViewReader || a.Book == nil {
		return
	}
	if move() {
		a.Activated = false
	}
}

// Activate records a click on the current page's sprite.
func (a *App) Activate() {
	if a.View != ViewReader || a.Book == nil {
		return
	}
	a.Activated = true
	if p, ok := a.reader.CurrentPage(); ok {
		kind := story.KindUnknown
		if p.Interactive.Animation != nil {
			kind = p.Interactive.Animation.Kind()
		}
		a.log.Debug("sprite activated",
			slog.Int("page", a.reader.CurrentIndex+1),
			slog.String("animation", string(kind)),
			slog.String("style", story.Resolve(p.Interactive, true).CSS()))
	}
}

// Title is the header title: the book title in the reader, DefaultTitle
// otherwise.
func (a *App) Title() string {
	if a.View == ViewReader && a.Book != nil {
		return a.Book.Title
	}
	return DefaultTitle
}
