// Package reader provides page navigation for an open storybook.
package reader

import "github.com/metcalfc/storybook/internal/story"

// Reader holds the navigation state for the currently open book.
// CurrentIndex is always within [0, PageCount()-1] once a book with pages is
// open; every move is clamped to that range.
type Reader struct {
	Book         *story.Book
	CurrentIndex int
}

// NewReader creates a Reader positioned on the first page of book.
func NewReader(book *story.Book) *Reader {
	r := &Reader{}
	r.Open(book)
	return r
}

// Open binds the reader to book and resets it to the first page.
func (r *Reader) Open(book *story.Book) {
	r.Book = book
	r.CurrentIndex = 0
}

// PageCount returns the number of pages in the open book.
func (r *Reader) PageCount() int {
	if r.Book == nil {
		return 0
	}
	return len(r.Book.Pages)
}

// Prev moves to the previous page. Returns true if the page changed.
func (r *Reader) Prev() bool {
	return r.JumpTo(r.CurrentIndex - 1)
}

// Next moves to the next page. Returns true if the page changed.
func (r *Reader) Next() bool {
	return r.JumpTo(r.CurrentIndex + 1)
}

// First moves to the first page.
func (r *Reader) First() bool {
	return r.JumpTo(0)
}

// Last moves to the last page.
func (r *Reader) Last() bool {
	return r.JumpTo(r.PageCount() - 1)
}

// JumpTo moves to page index i, clamped to the open book. Returns true if
// the page changed.
func (r *Reader) JumpTo(i int) bool {
	i = min(i, r.PageCount()-1)
	i = max(i, 0)
	if i == r.CurrentIndex {
		return false
	}
	r.CurrentIndex = i
	return true
}

// CanPrev reports whether there is a page before the current one.
func (r *Reader) CanPrev() bool {
	return r.CurrentIndex > 0
}

// CanNext reports whether there is a page after the current one.
func (r *Reader) CanNext() bool {
	return r.CurrentIndex < r.PageCount()-1
}

// CurrentPage returns the page at the current index.
func (r *Reader) CurrentPage() (story.Page, bool) {
	if r.CurrentIndex >= 0 && r.CurrentIndex < r.PageCount() {
		return r.Book.Pages[r.CurrentIndex], true
	}
	return story.Page{}, false
}

// Progress returns the current page number and the total page count.
func (r *Reader) Progress() (current, total int) {
	return r.CurrentIndex + 1, r.PageCount()
}

// Fraction returns (current page number) / (page count), or 0 when no book
// is open.
func (r *Reader) Fraction() float64 {
	current, total := r.Progress()
	if total == 0 {
		return 0
	}
	return float64(current) / float64(total)
}
