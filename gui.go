//go:build gui

package main

import (
	"context"
	"flag"
	"fmt"
	"image/color"
	"io/fs"
	"log/slog"
	"os"
	"path"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	storyapp "github.com/metcalfc/storybook/internal/app"
	"github.com/metcalfc/storybook/internal/catalog"
	"github.com/metcalfc/storybook/internal/config"
	"github.com/metcalfc/storybook/internal/sprite"
	"github.com/metcalfc/storybook/internal/story"
)

// Version info (injected via ldflags)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// tappableImage is an image that reports taps.
type tappableImage struct {
	widget.BaseWidget
	image *canvas.Image
	onTap func()
}

func newTappableImage(img *canvas.Image, onTap func()) *tappableImage {
	t := &tappableImage{image: img, onTap: onTap}
	t.ExtendBaseWidget(t)
	return t
}

func (t *tappableImage) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(t.image)
}

func (t *tappableImage) Tapped(*fyne.PointEvent) {
	if t.onTap != nil {
		t.onTap()
	}
}

// stageLayout stretches the first object over the stage and places the
// second where the sprite style puts it.
type stageLayout struct {
	style story.Style
}

func (l *stageLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	return fyne.NewSize(480, 300)
}

func (l *stageLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	if len(objects) < 2 {
		return
	}
	objects[0].Move(fyne.NewPos(0, 0))
	objects[0].Resize(size)

	r := l.style.Box(float64(size.Width), float64(size.Height))
	objects[1].Move(fyne.NewPos(float32(r.X), float32(r.Y)))
	objects[1].Resize(fyne.NewSize(float32(r.W), float32(r.H)))
}

// loadImage loads ref from fsys as a canvas image. Failures are logged and
// yield an empty image so a missing picture never blocks reading.
func loadImage(fsys fs.FS, ref string, fill canvas.ImageFill, log *slog.Logger) *canvas.Image {
	data, err := fs.ReadFile(fsys, ref)
	if err != nil {
		log.Warn("image not found", slog.String("ref", ref), slog.Any("err", err))
		img := canvas.NewImageFromImage(nil)
		img.FillMode = fill
		return img
	}
	img := canvas.NewImageFromResource(fyne.NewStaticResource(path.Base(ref), data))
	img.FillMode = fill
	return img
}

// loadSprite loads the sprite image, applying the style's hue rotation to
// raster images.
func loadSprite(fsys fs.FS, s storyapp.Sprite, log *slog.Logger) *canvas.Image {
	hue, ok := s.Style.Filter.HueRotate()
	if !ok {
		return loadImage(fsys, s.Src, canvas.ImageFillStretch, log)
	}
	src, err := sprite.Decode(fsys, s.Src)
	if err != nil {
		log.Warn("cannot filter sprite", slog.String("ref", s.Src), slog.Any("err", err))
		return loadImage(fsys, s.Src, canvas.ImageFillStretch, log)
	}
	img := canvas.NewImageFromImage(sprite.HueRotate(src, hue))
	img.FillMode = canvas.ImageFillStretch
	return img
}

func main() {
	catalogDir := flag.String("c", "", "Catalog directory containing books.json (default: built-in library)")
	bookID := flag.String("b", "", "Open the book with this id at startup")
	showVersion := flag.Bool("v", false, "Show version information")
	showVersionLong := flag.Bool("version", false, "Show version information")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Storybook - Desktop Picture Book Reader\n\n")
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  storybook [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  storybook -c ~/books           Browse a catalog directory\n")
		fmt.Fprintf(os.Stderr, "  storybook -b ocean-friends     Open a book directly\n")
	}
	flag.Parse()

	if *showVersion || *showVersionLong {
		fmt.Printf("storybook %s (commit: %s, built: %s)\n", version, commit, date)
		os.Exit(0)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *catalogDir != "" {
		cfg.CatalogDir = *catalogDir
	}
	logger := cfg.NewLogger(os.Stderr)

	catalogFS := cfg.CatalogFS()
	cat, err := catalog.New(catalogFS, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Failed to load catalog: %v\n", err)
		os.Exit(1)
	}

	m := storyapp.New(cat, logger)
	var assets fs.FS = catalogFS

	a := app.New()
	w := a.NewWindow(storyapp.DefaultTitle)

	titleLabel := widget.NewLabelWithStyle(storyapp.DefaultTitle, fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	backButton := widget.NewButton("←", nil)
	homeButton := widget.NewButton("Home", nil)
	header := container.NewBorder(nil, nil, container.NewHBox(backButton, homeButton), nil, titleLabel)

	progressBar := widget.NewProgressBar()
	progressBar.TextFormatter = func() string { return "" }
	pageLabel := widget.NewLabel("")
	caption := widget.NewLabel("My Storybook App")
	footer := container.NewStack()

	body := container.NewStack()
	errorLabel := widget.NewLabel("")
	errorLabel.Importance = widget.DangerImportance

	var refresh func()
	var openBook func(id string)

	openBook = func(id string) {
		if !m.BeginOpen(id) {
			return
		}
		refresh()
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), cfg.LoadTimeout)
			defer cancel()
			book, err := m.Fetch(ctx, id)
			var bookAssets fs.FS
			if err == nil {
				bookAssets, err = cat.Assets(ctx, id)
			}
			fyne.Do(func() {
				if err == nil {
					assets = bookAssets
				}
				m.FinishOpen(id, book, err)
				refresh()
			})
		}()
	}

	listView := func() fyne.CanvasObject {
		var cards []fyne.CanvasObject
		for _, s := range m.Summaries() {
			id := s.ID
			cover := loadImage(catalogFS, s.Cover, canvas.ImageFillContain, logger)
			cover.SetMinSize(fyne.NewSize(200, 120))
			button := widget.NewButton(s.Title, func() { openBook(id) })
			cards = append(cards, container.NewVBox(cover, button))
		}
		heading := widget.NewLabelWithStyle("Select a Book", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
		top := container.NewVBox(heading)
		if m.Err != nil {
			errorLabel.SetText("Could not open book: " + m.Err.Error())
			top.Add(errorLabel)
		}
		return container.NewBorder(top, nil, nil, nil,
			container.NewVScroll(container.NewGridWrap(fyne.NewSize(200, 170), cards...)))
	}

	readerView := func(s storyapp.Scene) fyne.CanvasObject {
		background := loadImage(assets, s.Background, canvas.ImageFillStretch, logger)
		spriteImage := newTappableImage(loadSprite(assets, s.Sprite, logger), func() {
			m.Activate()
			refresh()
		})
		stage := container.New(&stageLayout{style: s.Sprite.Style}, background, spriteImage)

		prev := widget.NewButton("Prev", func() { m.Prev(); refresh() })
		next := widget.NewButton("Next", func() { m.Next(); refresh() })
		if !s.CanPrev {
			prev.Disable()
		}
		if !s.CanNext {
			next.Disable()
		}
		controls := container.NewHBox(layout.NewSpacer(), prev, next, layout.NewSpacer())
		return container.NewBorder(nil, controls, nil, nil, stage)
	}

	refresh = func() {
		titleLabel.SetText(m.Title())
		w.SetTitle(m.Title())

		scene, inReader := m.Scene()
		if inReader && scene.CanPrev {
			backButton.Enable()
		} else {
			backButton.Disable()
		}

		switch {
		case m.Loading:
			body.Objects = []fyne.CanvasObject{container.NewCenter(container.NewVBox(
				widget.NewProgressBarInfinite(),
				widget.NewLabel("Loading book..."),
			))}
		case inReader:
			body.Objects = []fyne.CanvasObject{readerView(scene)}
		default:
			body.Objects = []fyne.CanvasObject{listView()}
		}
		body.Refresh()

		if inReader {
			progressBar.SetValue(scene.Progress)
			pageLabel.SetText(fmt.Sprintf("%d / %d", scene.Page, scene.Pages))
			footer.Objects = []fyne.CanvasObject{container.NewBorder(nil, nil, nil, pageLabel, progressBar)}
		} else {
			footer.Objects = []fyne.CanvasObject{caption}
		}
		footer.Refresh()
	}

	backButton.OnTapped = func() { m.Prev(); refresh() }
	homeButton.OnTapped = func() { m.GoHome(); refresh() }

	w.Canvas().SetOnTypedKey(func(key *fyne.KeyEvent) {
		switch key.Name {
		case fyne.KeyLeft:
			m.Prev()
		case fyne.KeyRight:
			m.Next()
		case fyne.KeyHome:
			m.First()
		case fyne.KeyEnd:
			m.Last()
		case fyne.KeySpace:
			m.Activate()
		case fyne.KeyEscape:
			m.GoHome()
		case fyne.KeyQ:
			a.Quit()
			return
		default:
			return
		}
		refresh()
	})

	background := canvas.NewRectangle(color.NRGBA{R: 0xF3, G: 0xF2, B: 0xF1, A: 0xFF})
	w.SetContent(container.NewBorder(header, footer, nil, nil, container.NewStack(background, body)))
	w.Resize(fyne.NewSize(900, 640))

	refresh()
	if *bookID != "" {
		openBook(*bookID)
	}

	w.ShowAndRun()
}
