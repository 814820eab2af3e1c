package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/explorer/internal/browse"
	"github.com/desertthunder/explorer/internal/models"
	"github.com/desertthunder/explorer/internal/shared"
)

// Authenticator reports whether the music session can make requests.
type Authenticator interface {
	IsAuthenticated() bool
}

// MovieDetailer fetches the full record of a movie.
type MovieDetailer interface {
	Details(ctx context.Context, id string) (*models.MovieDetails, error)
}

// PosterBuilder turns an image path into a URL.
type PosterBuilder interface {
	PosterURL(path *string, size string) string
}

// Options are the dependencies of a [Model].
type Options struct {
	Source    browse.Source
	Details   MovieDetailer // movies only
	Posters   PosterBuilder // movies only
	Session   Authenticator // music only
	Debounce  time.Duration
	Logger    *log.Logger
	StartPath string
}

// Model represents the TUI application state.
type Model struct {
	ctx     context.Context
	variant browse.Variant
	source  browse.Source
	details MovieDetailer
	posters PosterBuilder
	session Authenticator
	logger  *log.Logger

	route  browse.Route
	back   string
	notice string
	err    error
	width  int
	height int
	help   help.Model
	keys   keyMap

	input     textinput.Model
	debouncer *browse.Debouncer
	listState *browse.ListState
	results   list.Model

	galleryState *browse.GalleryState
	galleryList  list.Model
	genreCursor  int
	loading      bool

	nav          *browse.Navigator
	movieDetails *models.MovieDetails
}

// NewModel creates a new TUI model for the variant of opts.Source.
func NewModel(ctx context.Context, opts Options) *Model {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.StartPath == "" {
		opts.StartPath = "/"
	}

	input := textinput.New()
	input.Placeholder = "Search..."
	input.Prompt = "› "
	input.CharLimit = 120

	variant := opts.Source.Variant()
	return &Model{
		ctx:         ctx,
		variant:     variant,
		source:      opts.Source,
		details:     opts.Details,
		posters:     opts.Posters,
		session:     opts.Session,
		logger:      opts.Logger,
		route:       browse.ParseRoute(opts.StartPath),
		help:        help.New(),
		keys:        newKeyMap(),
		width:       80,
		height:      24,
		input:       input,
		debouncer:   browse.NewDebouncer(opts.Debounce),
		listState:   browse.NewListState(variant),
		results:     newList(80, 24),
		galleryList: newList(80, 24),
	}
}

func newList(width, height int) list.Model {
	l := list.New(nil, list.NewDefaultDelegate(), width-4, height-8)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	return l
}

// Init enters the start route.
func (m *Model) Init() tea.Cmd {
	return m.navigate(m.route.Path, nil)
}

// Route returns the active route.
func (m *Model) Route() browse.Route { return m.route }

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.results.SetSize(msg.Width-4, msg.Height-10)
		m.galleryList.SetSize(msg.Width-4, msg.Height-12)
		m.input.Width = msg.Width - 8
		return m, nil

	case navigateMsg:
		return m, m.navigate(msg.path, msg.handoff)

	case searchTickMsg:
		query, ok := m.debouncer.Settle(msg.seq)
		if !ok {
			return m, nil
		}
		return m, m.fetch(msg.seq, query)

	case searchResultMsg:
		if !m.listState.Apply(msg.seq, msg.items, msg.err) {
			m.logger.Debug("dropped stale results", "seq", msg.seq)
			return m, nil
		}
		if msg.err != nil {
			return m, m.fail(msg.err)
		}
		m.syncResults()
		return m, nil

	case galleryLoadedMsg:
		m.loading = false
		if msg.err != nil {
			return m, m.fail(msg.err)
		}
		m.galleryState = browse.NewGalleryState(msg.gallery)
		m.genreCursor = -1
		m.syncGallery()
		return m, nil

	case detailResolvedMsg:
		m.loading = false
		if msg.err != nil {
			return m, m.fail(msg.err)
		}
		m.nav = msg.nav
		return m, m.loadCurrent()

	case movieDetailsMsg:
		if m.nav == nil || m.nav.Current().ID() != msg.id {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			return m, m.fail(msg.err)
		}
		m.movieDetails = msg.details
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.quit) && (msg.String() == "ctrl+c" || m.route.Screen != browse.ScreenList) {
			return m, tea.Quit
		}
		switch m.route.Screen {
		case browse.ScreenList:
			return m.updateList(msg)
		case browse.ScreenGallery:
			return m.updateGallery(msg)
		case browse.ScreenDetail:
			return m.updateDetail(msg)
		default:
			return m, m.globalKeys(msg)
		}
	}

	if m.route.Screen == browse.ScreenList {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// navigate switches screens. Music screens other than home need a signed-in session.
func (m *Model) navigate(path string, handoff *browse.Handoff) tea.Cmd {
	route := browse.ParseRoute(path)
	if route.RequiresAuth(m.variant) && (m.session == nil || !m.session.IsAuthenticated()) {
		m.notice = "Sign in first: run `explorer music login`."
		route = browse.ParseRoute("/")
	}

	if m.route.Screen == browse.ScreenList || m.route.Screen == browse.ScreenGallery {
		m.back = m.route.Path
	}
	m.route = route
	m.err = nil
	m.input.Blur()

	switch route.Screen {
	case browse.ScreenList:
		m.input.Focus()
		if m.listState.Pending() == 0 {
			seq := m.debouncer.Touch(m.input.Value())
			query, _ := m.debouncer.Settle(seq)
			return tea.Batch(textinput.Blink, m.fetch(seq, query))
		}
		return textinput.Blink

	case browse.ScreenGallery:
		if m.galleryState == nil && !m.loading {
			m.loading = true
			return m.loadGallery()
		}

	case browse.ScreenDetail:
		m.nav = nil
		m.movieDetails = nil
		m.loading = true
		return m.resolveDetail(route, handoff)

	case browse.ScreenCallback:
		m.notice = "Sign-in completes in the browser; run `explorer music login`."
		m.route = browse.ParseRoute("/")
	}
	return nil
}

func navigateTo(path string, h *browse.Handoff) tea.Cmd {
	return func() tea.Msg { return navigateMsg{path: path, handoff: h} }
}

// fail routes errors: a rejected session returns home, lost navigation context returns to the listing.
func (m *Model) fail(err error) tea.Cmd {
	m.loading = false
	switch {
	case errors.Is(err, shared.ErrUnauthorized), errors.Is(err, shared.ErrNotAuthenticated):
		m.logger.Warn("session rejected", "error", err)
		m.notice = "Your session expired. Sign in again with `explorer music login`."
		m.route = browse.ParseRoute("/")
		return nil
	case errors.Is(err, shared.ErrMissingContext):
		m.logger.Info("detail opened without context, returning to listing")
		return navigateTo("/search", nil)
	}
	m.logger.Error("request failed", "error", err)
	m.err = err
	return nil
}

func (m *Model) globalKeys(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.home):
		return navigateTo("/", nil)
	case key.Matches(msg, m.keys.search):
		return navigateTo("/search", nil)
	case key.Matches(msg, m.keys.gallery):
		return navigateTo("/gallery", nil)
	case key.Matches(msg, m.keys.back) && m.route.Screen == browse.ScreenNotFound:
		return navigateTo("/", nil)
	}
	return nil
}

// View renders the navbar and the active screen.
func (m *Model) View() string {
	var body string
	switch m.route.Screen {
	case browse.ScreenHome:
		body = m.renderHome()
	case browse.ScreenList:
		body = m.renderList()
	case browse.ScreenGallery:
		body = m.renderGallery()
	case browse.ScreenDetail:
		body = m.renderDetail()
	default:
		body = m.renderNotFound()
	}

	var b strings.Builder
	b.WriteString(m.renderNavbar())
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(styles.err.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n\n")
	}
	b.WriteString(body)
	return b.String()
}

func (m *Model) renderNavbar() string {
	links := []struct {
		label  string
		screen browse.Screen
	}{
		{"1 Home", browse.ScreenHome},
		{"2 Search", browse.ScreenList},
		{"3 Gallery", browse.ScreenGallery},
	}

	parts := []string{styles.ok.Render("explorer") + styles.help.Render(" · "+m.variant.String())}
	for _, l := range links {
		if l.screen == m.route.Screen {
			parts = append(parts, styles.active.Render(l.label))
		} else {
			parts = append(parts, styles.tab.Render(l.label))
		}
	}
	if m.variant == browse.Music {
		if m.session != nil && m.session.IsAuthenticated() {
			parts = append(parts, styles.ok.Render("● signed in"))
		} else {
			parts = append(parts, styles.warn.Render("○ signed out"))
		}
	}
	return strings.Join(parts, " ")
}

func (m *Model) renderHome() string {
	var b strings.Builder
	if m.variant == browse.Music {
		b.WriteString(styles.title.Render("Music Explorer"))
		b.WriteString("\nSearch tracks, albums and artists, and browse your top picks and new releases.\n")
	} else {
		b.WriteString(styles.title.Render("Movie Explorer"))
		b.WriteString("\nSearch the movie catalog and browse popular, now playing and top rated titles.\n")
	}
	if m.notice != "" {
		b.WriteString("\n" + styles.warn.Render(m.notice) + "\n")
	}
	b.WriteString("\n" + m.help.ShortHelpView([]key.Binding{m.keys.search, m.keys.gallery, m.keys.quit}))
	return b.String()
}

func (m *Model) renderNotFound() string {
	return styles.warn.Render(fmt.Sprintf("Nothing at %s", m.route.Path)) + "\n\n" +
		m.help.ShortHelpView([]key.Binding{m.keys.back, m.keys.home, m.keys.quit})
}
