package catalog

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"path"
	"strconv"
	"strings"

	"github.com/taylorskalyo/goreader/epub"
	"golang.org/x/net/html"

	"github.com/metcalfc/storybook/internal/story"
)

// EPUBFormat implements Format for storybooks packaged as EPUB. Every spine
// document holding an <img class="interactive"> becomes one page; its
// background is the first <img class="background">. Placement and animation
// are read from data-* attributes on the interactive image.
type EPUBFormat struct{}

func init() {
	Register(&EPUBFormat{})
}

func (f *EPUBFormat) Name() string         { return "EPUB" }
func (f *EPUBFormat) Extensions() []string { return []string{".epub"} }

// Assets exposes the archive itself; image references are archive paths.
func (f *EPUBFormat) Assets(data []byte) (fs.FS, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open epub: %w", err)
	}
	return zr, nil
}

func (f *EPUBFormat) Decode(data []byte) (*story.Book, error) {
	rc, err := epub.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open epub: %w", err)
	}

	if len(rc.Rootfiles) == 0 {
		return nil, fmt.Errorf("no rootfiles found in epub")
	}

	rootfile := rc.Rootfiles[0]
	opfDir := path.Dir(rootfile.FullPath)

	var raw story.RawBook
	for _, ref := range rootfile.Spine.Itemrefs {
		if ref.Item == nil {
			continue
		}
		r, err := ref.Item.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", ref.Item.HREF, err)
		}
		doc, err := io.ReadAll(r)
		r.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", ref.Item.HREF, err)
		}

		page, ok, err := parseEPUBPage(doc, archivePath(opfDir, ref.Item.HREF))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ref.Item.HREF, err)
		}
		if ok {
			raw.Pages = append(raw.Pages, page)
		}
	}

	return raw.Build()
}

// archivePath resolves an OPF-relative href to a path inside the archive.
func archivePath(opfDir, href string) string {
	if opfDir == "." || strings.HasPrefix(href, opfDir+"/") {
		return path.Clean(href)
	}
	return path.Join(opfDir, href)
}

// parseEPUBPage extracts a page from an XHTML spine document located at
// docPath. Documents without an interactive image are not pages.
func parseEPUBPage(doc []byte, docPath string) (story.RawPage, bool, error) {
	root, err := html.Parse(bytes.NewReader(doc))
	if err != nil {
		return story.RawPage{}, false, err
	}

	var background, interactive *html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "img" {
			switch {
			case background == nil && hasClass(n, "background"):
				background = n
			case interactive == nil && hasClass(n, "interactive"):
				interactive = n
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	if interactive == nil {
		return story.RawPage{}, false, nil
	}

	in, err := rawInteractive(interactive, docPath)
	if err != nil {
		return story.RawPage{}, false, err
	}
	page := story.RawPage{Interactive: in}
	if background != nil {
		page.Background = resolveRef(docPath, attr(background, "src"))
	}
	return page, true, nil
}

func rawInteractive(n *html.Node, docPath string) (*story.RawInteractive, error) {
	in := &story.RawInteractive{Src: resolveRef(docPath, attr(n, "src"))}

	var placement story.RawPlacement
	var set bool
	for _, field := range []struct {
		name string
		dst  **story.Length
	}{
		{"data-top", &placement.Top},
		{"data-left", &placement.Left},
		{"data-width", &placement.Width},
		{"data-height", &placement.Height},
	} {
		l, err := lengthAttr(n, field.name)
		if err != nil {
			return nil, err
		}
		if l != nil {
			*field.dst = l
			set = true
		}
	}
	if v, ok := lookupAttr(n, "data-transform"); ok {
		t := story.Transform(v)
		placement.Transform = &t
		set = true
	}
	if set {
		in.Initial = &placement
	}

	kind, ok := lookupAttr(n, "data-animation")
	if !ok {
		return in, nil
	}
	anim := &story.RawAnimation{Type: kind}
	var err error
	if anim.Scale, err = floatAttr(n, "data-scale"); err != nil {
		return nil, err
	}
	if anim.Hue, err = floatAttr(n, "data-hue"); err != nil {
		return nil, err
	}
	top, err := lengthAttr(n, "data-to-top")
	if err != nil {
		return nil, err
	}
	left, err := lengthAttr(n, "data-to-left")
	if err != nil {
		return nil, err
	}
	if top != nil || left != nil {
		anim.To = &story.RawPosition{Top: top, Left: left}
	}
	in.Animation = anim
	return in, nil
}

// resolveRef turns a document-relative image reference into an archive path.
func resolveRef(docPath, src string) string {
	if src == "" || strings.Contains(src, "://") {
		return src
	}
	return path.Join(path.Dir(docPath), src)
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

func attr(n *html.Node, key string) string {
	v, _ := lookupAttr(n, key)
	return v
}

func lookupAttr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func lengthAttr(n *html.Node, key string) (*story.Length, error) {
	v, ok := lookupAttr(n, key)
	if !ok {
		return nil, nil
	}
	l, err := story.ParseLength(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", story.ErrInvalid, key, err)
	}
	return &l, nil
}

func floatAttr(n *html.Node, key string) (*float64, error) {
	v, ok := lookupAttr(n, key)
	if !ok {
		return nil, nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: invalid number %q", story.ErrInvalid, key, v)
	}
	return &f, nil
}
