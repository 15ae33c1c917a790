// Package catalog loads storybooks from a content tree: a books.json index of
// summaries and one book file per id under books/.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"regexp"
	"time"

	"github.com/metcalfc/storybook/internal/story"
)

const (
	indexFile = "books.json"
	booksDir  = "books"
)

// ErrNotFound is returned when no book file exists for an id.
var ErrNotFound = errors.New("book not found")

var idRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]*$`)

// Catalog is a read-only collection of books backed by an fs.FS.
type Catalog struct {
	fsys      fs.FS
	summaries []story.Summary
	log       *slog.Logger
}

// New reads the books.json index from fsys. A nil logger discards output.
func New(fsys fs.FS, logger *slog.Logger) (*Catalog, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	data, err := fs.ReadFile(fsys, indexFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", indexFile, err)
	}
	var summaries []story.Summary
	if err := json.Unmarshal(data, &summaries); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", indexFile, err)
	}
	seen := make(map[string]bool, len(summaries))
	for i, s := range summaries {
		if !idRegex.MatchString(s.ID) {
			return nil, fmt.Errorf("%s: entry %d: invalid id %q", indexFile, i+1, s.ID)
		}
		if seen[s.ID] {
			return nil, fmt.Errorf("%s: duplicate id %q", indexFile, s.ID)
		}
		seen[s.ID] = true
	}
	logger.Debug("catalog loaded", slog.Int("books", len(summaries)))
	return &Catalog{fsys: fsys, summaries: summaries, log: logger}, nil
}

// Summaries returns the ordered book summaries.
func (c *Catalog) Summaries() []story.Summary {
	return c.summaries
}

// Summary returns the summary for id.
func (c *Catalog) Summary(id string) (story.Summary, bool) {
	for _, s := range c.summaries {
		if s.ID == id {
			return s, true
		}
	}
	return story.Summary{}, false
}

// Lookup loads the full book for id. Missing id, title and cover fields are
// filled from the index entry.
func (c *Catalog) Lookup(ctx context.Context, id string) (*story.Book, error) {
	start := time.Now()
	f, data, err := c.find(ctx, id)
	if err != nil {
		return nil, err
	}
	book, err := f.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode book %q: %w", id, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s, ok := c.Summary(id); ok {
		if book.Title == "" {
			book.Title = s.Title
		}
		if book.Cover == "" {
			book.Cover = s.Cover
		}
	}
	if book.ID == "" {
		book.ID = id
	}
	c.log.Debug("book loaded",
		slog.String("id", id),
		slog.String("format", f.Name()),
		slog.Int("pages", len(book.Pages)),
		slog.Duration("elapsed", time.Since(start)))
	return book, nil
}

// Assets returns the file system that image references of book id resolve
// against.
func (c *Catalog) Assets(ctx context.Context, id string) (fs.FS, error) {
	f, data, err := c.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if p, ok := f.(AssetProvider); ok {
		return p.Assets(data)
	}
	return c.fsys, nil
}

func (c *Catalog) find(ctx context.Context, id string) (Format, []byte, error) {
	if !idRegex.MatchString(id) {
		return nil, nil, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	for _, f := range registry {
		for _, ext := range f.Extensions() {
			if err := ctx.Err(); err != nil {
				return nil, nil, err
			}
			data, err := fs.ReadFile(c.fsys, path.Join(booksDir, id+ext))
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			if err != nil {
				return nil, nil, fmt.Errorf("failed to read book %q: %w", id, err)
			}
			return f, data, nil
		}
	}
	return nil, nil, fmt.Errorf("%w: %q", ErrNotFound, id)
}
