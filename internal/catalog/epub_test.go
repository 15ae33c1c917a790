package catalog

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taylorskalyo/goreader/epub"

	"github.com/metcalfc/storybook/internal/story"
)

// missingPage as a page body lists the page in the manifest and spine but
// leaves its document out of the archive.
const missingPage = "<missing>"

// buildEPUB assembles a minimal EPUB whose package document sits at the
// archive root. Each page body is wrapped in an XHTML document.
func buildEPUB(t *testing.T, bodies ...string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	write := func(name, content string) {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}

	write("mimetype", "application/epub+zip")
	write("META-INF/container.xml", `<?xml version="1.0"?>
<container version="1.0" xmlns="urn:oasis:names:tc:opendocument:xmlns:container">
  <rootfiles><rootfile full-path="content.opf" media-type="application/oebps-package+xml"/></rootfiles>
</container>`)

	var manifest, spine strings.Builder
	for i, body := range bodies {
		name := fmt.Sprintf("text/p%d.xhtml", i+1)
		if body != missingPage {
			write(name, `<html xmlns="http://www.w3.org/1999/xhtml"><head><title>p</title></head><body>`+body+`</body></html>`)
		}
		fmt.Fprintf(&manifest, `<item id="p%d" href="%s" media-type="application/xhtml+xml"/>`, i+1, name)
		fmt.Fprintf(&spine, `<itemref idref="p%d"/>`, i+1)
	}
	write("img/bg.png", "bg")
	write("img/sprite.png", "sprite")
	write("content.opf", `<?xml version="1.0"?>
<package xmlns="http://www.idpf.org/2007/opf" version="2.0">
  <metadata xmlns:dc="http://purl.org/dc/elements/1.1/"><dc:title>Test</dc:title></metadata>
  <manifest>`+manifest.String()+`</manifest>
  <spine>`+spine.String()+`</spine>
</package>`)

	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestEPUBFormat(t *testing.T) {
	f := &EPUBFormat{}
	if f.Name() != "EPUB" {
		t.Errorf("Name() = %q, want EPUB", f.Name())
	}
	if exts := f.Extensions(); len(exts) != 1 || exts[0] != ".epub" {
		t.Errorf("Extensions() = %v, want [.epub]", exts)
	}
}

func TestEPUBDecode(t *testing.T) {
	data := buildEPUB(t,
		`<h1>Title page</h1>`,
		`<img class="background" src="../img/bg.png"/>
		 <img class="sprite interactive" src="../img/sprite.png" data-animation="grow"/>`,
		`<img class="background" src="../img/bg.png"/>
		 <img class="interactive" src="../img/sprite.png" data-top="30%" data-left="10"
		      data-animation="move" data-to-top="80%" data-to-left="70%"/>`,
		`<img class="interactive" src="../img/sprite.png" data-animation="color" data-hue="120"/>`,
	)

	book, err := (&EPUBFormat{}).Decode(data)
	require.NoError(t, err)
	require.Len(t, book.Pages, 3)

	p1 := book.Pages[0]
	assert.Equal(t, "img/bg.png", p1.Background)
	assert.Equal(t, "img/sprite.png", p1.Interactive.Src)
	assert.Equal(t, story.DefaultPlacement(), p1.Interactive.Initial)
	assert.Equal(t, story.Grow{Scale: story.DefaultGrowScale}, p1.Interactive.Animation)

	p2 := book.Pages[1].Interactive
	assert.Equal(t, story.Pct(30), p2.Initial.Top)
	assert.Equal(t, story.Px(10), p2.Initial.Left)
	assert.Equal(t, story.Px(80), p2.Initial.Width)
	assert.Equal(t, story.Move{To: story.Position{Top: story.Pct(80), Left: story.Pct(70)}}, p2.Animation)

	p3 := book.Pages[2]
	assert.Empty(t, p3.Background)
	assert.Equal(t, story.Color{Hue: 120}, p3.Interactive.Animation)
}

func TestEPUBDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"no pages", `<p>Just text</p>`},
		{"no animation", `<img class="interactive" src="s.png"/>`},
		{"bad scale", `<img class="interactive" src="s.png" data-animation="grow" data-scale="big"/>`},
		{"bad length", `<img class="interactive" src="s.png" data-animation="grow" data-top="auto"/>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := (&EPUBFormat{}).Decode(buildEPUB(t, tt.body))
			assert.ErrorIs(t, err, story.ErrInvalid)
		})
	}

	t.Run("not a zip", func(t *testing.T) {
		_, err := (&EPUBFormat{}).Decode([]byte("plain text"))
		assert.Error(t, err)
	})
}

func TestEPUBCatalog(t *testing.T) {
	data := buildEPUB(t, `<img class="background" src="../img/bg.png"/><img class="interactive" src="../img/sprite.png" data-animation="shrink"/>`)
	c, err := New(fstest.MapFS{
		"books.json":     {Data: []byte(`[{"id": "pic", "title": "Picture Book", "cover": "pic.png"}]`)},
		"books/pic.epub": {Data: data},
	}, nil)
	require.NoError(t, err)

	book, err := c.Lookup(context.Background(), "pic")
	require.NoError(t, err)
	assert.Equal(t, "Picture Book", book.Title)
	assert.Equal(t, "pic", book.ID)
	assert.Equal(t, story.Shrink{Scale: story.DefaultShrinkScale}, book.Pages[0].Interactive.Animation)

	assets, err := c.Assets(context.Background(), "pic")
	require.NoError(t, err)
	got, err := fs.ReadFile(assets, book.Pages[0].Interactive.Src)
	require.NoError(t, err)
	assert.Equal(t, "sprite", string(got))
}

func TestArchivePath(t *testing.T) {
	tests := []struct {
		opfDir, href, want string
	}{
		{".", "text/p1.xhtml", "text/p1.xhtml"},
		{"OEBPS", "text/p1.xhtml", "OEBPS/text/p1.xhtml"},
		{"OEBPS", "OEBPS/text/p1.xhtml", "OEBPS/text/p1.xhtml"},
	}
	for _, tt := range tests {
		if got := archivePath(tt.opfDir, tt.href); got != tt.want {
			t.Errorf("archivePath(%q, %q) = %q, want %q", tt.opfDir, tt.href, got, tt.want)
		}
	}
}

func TestEPUBDecodeMissingSpineDocument(t *testing.T) {
	data := buildEPUB(t,
		`<img class="interactive" src="../img/sprite.png" data-animation="grow"/>`,
		missingPage,
	)

	_, err := (&EPUBFormat{}).Decode(data)
	require.Error(t, err)
	assert.ErrorIs(t, err, epub.ErrBadManifest)
	assert.Contains(t, err.Error(), "text/p2.xhtml")
}
