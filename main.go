//go:build !gui

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/metcalfc/storybook/internal/app"
	"github.com/metcalfc/storybook/internal/catalog"
	"github.com/metcalfc/storybook/internal/config"
	"github.com/metcalfc/storybook/internal/story"
)

// Version info (injected via ldflags)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#0063B1"))

	navEnabledStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#0063B1"))

	navDisabledStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#6A9CCB")).
				Background(lipgloss.Color("#0063B1"))

	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5555")).
			Padding(0, 2)

	loadingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFAA00")).
			Padding(1, 2)
)

// Rows taken by the header above the body and the progress and help lines
// below it.
const (
	headerRows = 1
	footerRows = 2
)

type keyMap struct {
	Open     key.Binding
	Prev     key.Binding
	Next     key.Binding
	First    key.Binding
	Last     key.Binding
	Activate key.Binding
	Home     key.Binding
	Quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Open:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "read")),
		Prev:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev")),
		Next:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next")),
		First:    key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "first")),
		Last:     key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "last")),
		Activate: key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "poke")),
		Home:     key.NewBinding(key.WithKeys("esc", "backspace"), key.WithHelp("esc", "home")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// helpKeys adapts a set of bindings to help.KeyMap.
type helpKeys []key.Binding

func (h helpKeys) ShortHelp() []key.Binding  { return h }
func (h helpKeys) FullHelp() [][]key.Binding { return [][]key.Binding{h} }

// bookItem implements list.Item for a catalog summary.
type bookItem struct {
	story.Summary
}

func (b bookItem) FilterValue() string { return b.Summary.Title }
func (b bookItem) Title() string       { return b.Summary.Title }
func (b bookItem) Description() string { return "Read now" }

// bookLoadedMsg carries the result of an asynchronous catalog lookup.
type bookLoadedMsg struct {
	id   string
	book *story.Book
	err  error
}

type model struct {
	*app.App
	keys     keyMap
	list     list.Model
	spinner  spinner.Model
	progress progress.Model
	help     help.Model
	timeout  time.Duration
	startID  string
	quitting bool
	width    int
	height   int
}

func newModel(a *app.App, timeout time.Duration) model {
	items := make([]list.Item, 0, len(a.Summaries()))
	for _, s := range a.Summaries() {
		items = append(items, bookItem{Summary: s})
	}

	l := list.New(items, list.NewDefaultDelegate(), 80, 24-headerRows-footerRows)
	l.Title = "Select a Book"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.DisableQuitKeybindings()

	return model{
		App:      a,
		keys:     newKeyMap(),
		list:     l,
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(loadingStyle.UnsetPadding())),
		progress: progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage(), progress.WithWidth(60)),
		help:     help.New(),
		timeout:  timeout,
		width:    80,
		height:   24,
	}
}

func (m model) Init() tea.Cmd {
	if m.startID != "" {
		return m.openBook(m.startID)
	}
	return nil
}

// openBook starts loading id. The lookup runs as a command, off the event
// loop, and reports back with a bookLoadedMsg.
func (m model) openBook(id string) tea.Cmd {
	if !m.BeginOpen(id) {
		return nil
	}
	a, timeout := m.App, m.timeout
	load := func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		book, err := a.Fetch(ctx, id)
		return bookLoadedMsg{id: id, book: book, err: err}
	}
	return tea.Batch(load, m.spinner.Tick)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width, max(msg.Height-headerRows-footerRows, 1))
		m.progress.Width = max(msg.Width-16, 10)
		m.help.Width = msg.Width
		return m, nil

	case bookLoadedMsg:
		m.FinishOpen(msg.id, msg.book, msg.err)
		return m, nil

	case spinner.TickMsg:
		if !m.Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			if s, ok := m.Scene(); ok && m.spriteHit(s, msg.X, msg.Y-headerRows) {
				m.Activate()
			}
		}
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.quitting = true
			return m, tea.Quit
		}
		if m.Loading {
			return m, nil
		}
		if m.App.View == app.ViewReader {
			return m.updateReader(msg)
		}
		if key.Matches(msg, m.keys.Open) {
			if item, ok := m.list.SelectedItem().(bookItem); ok {
				return m, m.openBook(item.ID)
			}
			return m, nil
		}
	}

	if m.App.View == app.ViewList {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m model) updateReader(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Prev):
		m.Prev()
	case key.Matches(msg, m.keys.Next):
		m.Next()
	case key.Matches(msg, m.keys.First):
		m.First()
	case key.Matches(msg, m.keys.Last):
		m.Last()
	case key.Matches(msg, m.keys.Activate):
		m.Activate()
	case key.Matches(msg, m.keys.Home):
		m.GoHome()
	}
	return m, nil
}

func (m model) stageRows() int {
	return max(m.height-headerRows-footerRows, 3)
}

func (m model) spriteHit(s app.Scene, col, row int) bool {
	if row < 0 || row >= m.stageRows() {
		return false
	}
	stage := newStage(m.width, m.stageRows())
	return stage.hit(s.Sprite.Style, col, row)
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(m.headerView())
	sb.WriteString("\n")

	bodyRows := m.stageRows()
	var body string
	switch {
	case m.Loading:
		body = loadingStyle.Render(m.spinner.View() + " Loading book...")
	case m.App.View == app.ViewReader:
		if s, ok := m.Scene(); ok {
			body = newStage(m.width, bodyRows).render(s)
		}
	default:
		body = m.list.View()
		if m.Err != nil {
			body = errorStyle.Render("Could not open book: "+m.Err.Error()) + "\n" + body
		}
	}
	sb.WriteString(lipgloss.NewStyle().Height(bodyRows).MaxHeight(bodyRows).Render(body))
	sb.WriteString("\n")
	sb.WriteString(m.footerView())
	sb.WriteString("\n")
	sb.WriteString(m.helpView())
	return sb.String()
}

func (m model) headerView() string {
	back := navDisabledStyle
	if s, ok := m.Scene(); ok && s.CanPrev {
		back = navEnabledStyle
	}
	left := back.Render(" ← ") + navEnabledStyle.Render(" Home ")
	title := headerStyle.
		Width(max(m.width-lipgloss.Width(left), 0)).
		Align(lipgloss.Center).
		Render(m.Title())
	return left + title
}

func (m model) footerView() string {
	s, ok := m.Scene()
	if !ok {
		return footerStyle.Render("My Storybook App")
	}
	return " " + m.progress.ViewAs(s.Progress) + footerStyle.Render(fmt.Sprintf("%d / %d", s.Page, s.Pages))
}

func (m model) helpView() string {
	k := m.keys
	if m.App.View == app.ViewReader {
		return m.help.View(helpKeys{k.Prev, k.Next, k.First, k.Last, k.Activate, k.Home, k.Quit})
	}
	return m.help.View(helpKeys{k.Open, k.Quit})
}

func main() {
	catalogDir := flag.String("c", "", "Catalog directory containing books.json (default: built-in library)")
	bookID := flag.String("b", "", "Open the book with this id at startup")
	showFormats := flag.Bool("formats", false, "List supported book formats")
	showVersion := flag.Bool("v", false, "Show version information")
	showVersionLong := flag.Bool("version", false, "Show version information")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Storybook - Terminal Picture Book Reader\n\n")
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  storybook [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  storybook                      Browse the built-in library\n")
		fmt.Fprintf(os.Stderr, "  storybook -c ~/books           Browse a catalog directory\n")
		fmt.Fprintf(os.Stderr, "  storybook -b ocean-friends     Open a book directly\n")
		fmt.Fprintf(os.Stderr, "\nEnvironment:\n")
		fmt.Fprintf(os.Stderr, "  STORYBOOK_CATALOG       Catalog directory\n")
		fmt.Fprintf(os.Stderr, "  STORYBOOK_LOG           Log file (logging is off without it)\n")
		fmt.Fprintf(os.Stderr, "  STORYBOOK_LOG_LEVEL     debug, info, warn or error\n")
		fmt.Fprintf(os.Stderr, "  STORYBOOK_LOAD_TIMEOUT  Book load timeout (default 10s)\n")
		fmt.Fprintf(os.Stderr, "  STORYBOOK_MOUSE         Enable mouse clicks (default true)\n")
		fmt.Fprintf(os.Stderr, "\nControls:\n")
		fmt.Fprintf(os.Stderr, "  ENTER       Open book / poke the picture\n")
		fmt.Fprintf(os.Stderr, "  SPACE       Poke the picture (or click it)\n")
		fmt.Fprintf(os.Stderr, "  ←/→         Previous/next page\n")
		fmt.Fprintf(os.Stderr, "  g/G         First/last page\n")
		fmt.Fprintf(os.Stderr, "  ESC         Back to the book list\n")
		fmt.Fprintf(os.Stderr, "  Q           Quit\n")
	}
	flag.Parse()

	if *showVersion || *showVersionLong {
		fmt.Printf("storybook %s (commit: %s, built: %s)\n", version, commit, date)
		os.Exit(0)
	}

	if *showFormats {
		for _, f := range catalog.SupportedFormats() {
			fmt.Println(f)
		}
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

	var logOut io.Writer
	if cfg.LogFile != "" {
		f, err := tea.LogToFile(cfg.LogFile, "storybook")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: Failed to open log file '%s': %v\n", cfg.LogFile, err)
			os.Exit(1)
		}
		defer f.Close()
		logOut = f
	}
	logger := cfg.NewLogger(logOut)

	cat, err := catalog.New(cfg.CatalogFS(), logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Failed to load catalog: %v\n", err)
		os.Exit(1)
	}
	if len(cat.Summaries()) == 0 {
		fmt.Fprintln(os.Stderr, "Error: The catalog has no books.")
		os.Exit(1)
	}

	m := newModel(app.New(cat, logger), cfg.LoadTimeout)
	m.startID = *bookID

	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.Mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	p := tea.NewProgram(m, opts...)

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
