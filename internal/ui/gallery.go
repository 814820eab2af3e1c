package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/explorer/internal/browse"
)

func (m *Model) loadGallery() tea.Cmd {
	src, ctx := m.source, m.ctx
	return func() tea.Msg {
		g, err := src.Gallery(ctx)
		return galleryLoadedMsg{gallery: g, err: err}
	}
}

func (m *Model) syncGallery() {
	if m.galleryState == nil {
		return
	}
	m.galleryList.SetItems(toListItems(m.galleryState.Visible()))
	m.galleryList.ResetSelected()
}

// cycleGenre walks the genre cursor through the options, selecting one genre at a time.
func (m *Model) cycleGenre() {
	genres := m.galleryState.Gallery.Genres
	if len(genres) == 0 {
		return
	}
	if m.genreCursor >= 0 && m.genreCursor < len(genres) {
		m.galleryState.ToggleGenre(genres[m.genreCursor].ID)
	}
	m.genreCursor++
	if m.genreCursor >= len(genres) {
		m.genreCursor = -1
		return
	}
	m.galleryState.ToggleGenre(genres[m.genreCursor].ID)
}

func (m *Model) updateGallery(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.galleryState == nil {
		return m, m.globalKeys(msg)
	}

	switch {
	case key.Matches(msg, m.keys.back):
		return m, navigateTo("/", nil)
	case key.Matches(msg, m.keys.tab):
		m.galleryState.NextTab()
		m.syncGallery()
	case key.Matches(msg, m.keys.untab):
		m.galleryState.PrevTab()
		m.syncGallery()
	case key.Matches(msg, m.keys.genre):
		m.cycleGenre()
		m.syncGallery()
	case key.Matches(msg, m.keys.year):
		m.galleryState.CycleYear()
		m.syncGallery()
	case key.Matches(msg, m.keys.clear):
		m.galleryState.ClearFilters()
		m.genreCursor = -1
		m.syncGallery()
	case key.Matches(msg, m.keys.enter):
		h, ok := m.galleryState.Select(m.galleryList.Index())
		if !ok {
			return m, nil
		}
		return m, navigateTo(browse.DetailPath(h.Item), &h)
	case key.Matches(msg, m.keys.up), key.Matches(msg, m.keys.down):
		var cmd tea.Cmd
		m.galleryList, cmd = m.galleryList.Update(msg)
		return m, cmd
	default:
		return m, m.globalKeys(msg)
	}
	return m, nil
}

func (m *Model) renderGallery() string {
	var b strings.Builder
	b.WriteString(styles.title.Render("Gallery"))
	b.WriteString("\n")

	if m.loading || m.galleryState == nil {
		b.WriteString(styles.help.Render("Loading collections..."))
		return b.String()
	}

	tabs := make([]string, len(m.galleryState.Gallery.Collections))
	for i, c := range m.galleryState.Gallery.Collections {
		if i == m.galleryState.Tab {
			tabs[i] = styles.active.Render(c.Title)
		} else {
			tabs[i] = styles.tab.Render(c.Title)
		}
	}
	b.WriteString(strings.Join(tabs, " "))
	b.WriteString("\n\n")

	genre, year := "all", "all"
	if names := m.selectedGenres(); len(names) > 0 {
		genre = strings.Join(names, ", ")
		if !m.galleryState.GenresApply() {
			genre += " (not applied on this tab)"
		}
	}
	if y := m.galleryState.Filter.Year; y != 0 {
		year = fmt.Sprint(y)
	}
	b.WriteString(styles.label.Render("Genre: ") + styles.help.Render(genre) + "  ")
	b.WriteString(styles.label.Render("Year: ") + styles.help.Render(year))
	b.WriteString("\n\n")

	visible := m.galleryState.Visible()
	if len(visible) == 0 {
		b.WriteString(styles.help.Render("No items match the current filters"))
	} else {
		b.WriteString(m.galleryList.View())
	}

	b.WriteString("\n\n" + m.help.ShortHelpView([]key.Binding{
		m.keys.tab, m.keys.genre, m.keys.year, m.keys.clear, m.keys.enter, m.keys.back,
	}))
	return b.String()
}

func (m *Model) selectedGenres() []string {
	var names []string
	for _, id := range m.galleryState.Filter.Genres {
		name := id
		for _, g := range m.galleryState.Gallery.Genres {
			if g.ID == id {
				name = g.Name
				break
			}
		}
		names = append(names, name)
	}
	return names
}
