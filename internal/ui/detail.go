package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/explorer/internal/browse"
	"github.com/desertthunder/explorer/internal/formatter"
	"github.com/desertthunder/explorer/internal/models"
	"github.com/desertthunder/explorer/internal/services"
)

func (m *Model) resolveDetail(route browse.Route, h *browse.Handoff) tea.Cmd {
	src, ctx := m.source, m.ctx
	return func() tea.Msg {
		nav, err := browse.ResolveDetail(ctx, src, route.Kind, route.ID, h)
		return detailResolvedMsg{nav: nav, err: err}
	}
}

// loadCurrent fetches the full movie record for the navigator's cursor. Music items render
// from the hand-off alone.
func (m *Model) loadCurrent() tea.Cmd {
	if m.nav == nil {
		return nil
	}
	current := m.nav.Current()
	m.route.ID = current.ID()
	m.route.Path = browse.DetailPath(current)
	m.movieDetails = nil
	if current.Kind != models.KindMovie || m.details == nil {
		m.loading = false
		return nil
	}

	m.loading = true
	id, details, ctx := current.ID(), m.details, m.ctx
	return func() tea.Msg {
		d, err := details.Details(ctx, id)
		return movieDetailsMsg{id: id, details: d, err: err}
	}
}

func (m *Model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.back):
		back := m.back
		if back == "" {
			back = "/search"
		}
		return m, navigateTo(back, nil)
	case key.Matches(msg, m.keys.prev):
		if m.nav == nil {
			return m, nil
		}
		if _, moved := m.nav.Prev(); moved {
			return m, m.loadCurrent()
		}
	case key.Matches(msg, m.keys.next):
		if m.nav == nil {
			return m, nil
		}
		if _, moved := m.nav.Next(); moved {
			return m, m.loadCurrent()
		}
	default:
		return m, m.globalKeys(msg)
	}
	return m, nil
}

func (m *Model) renderDetail() string {
	if m.nav == nil {
		return styles.help.Render("Loading...")
	}

	var b strings.Builder
	current := m.nav.Current()
	b.WriteString(styles.title.Render(current.Name()))
	b.WriteString("\n")

	switch current.Kind {
	case models.KindMovie:
		b.WriteString(m.renderMovie(current))
	case models.KindTrack:
		t := current.Track
		field(&b, "Artists", models.ArtistNames(t.Artists))
		field(&b, "Album", t.Album.Name)
		field(&b, "Duration", formatter.FormatDuration(t.DurationMS))
		field(&b, "Released", formatter.FormatDate(t.Album.ReleaseDate))
		field(&b, "Popularity", fmt.Sprint(t.Popularity))
		field(&b, "Link", t.ExternalURLs.Spotify)
	case models.KindAlbum:
		a := current.Album
		field(&b, "Artists", models.ArtistNames(a.Artists))
		field(&b, "Type", a.AlbumType)
		field(&b, "Tracks", fmt.Sprint(a.TotalTracks))
		field(&b, "Released", formatter.FormatDate(a.ReleaseDate))
		field(&b, "Cover", current.ImageURL())
		field(&b, "Link", a.ExternalURLs.Spotify)
	case models.KindArtist:
		a := current.Artist
		field(&b, "Genres", strings.Join(a.Genres, ", "))
		field(&b, "Followers", formatter.FormatNumber(a.Followers.Total))
		field(&b, "Popularity", fmt.Sprint(a.Popularity))
		field(&b, "Image", current.ImageURL())
		field(&b, "Link", a.ExternalURLs.Spotify)
	}

	b.WriteString("\n")
	prev, next := m.keys.prev, m.keys.next
	prev.SetEnabled(m.nav.HasPrev())
	next.SetEnabled(m.nav.HasNext())
	b.WriteString(styles.help.Render(m.nav.Position()))
	b.WriteString("\n\n" + m.help.ShortHelpView([]key.Binding{prev, next, m.keys.back}))
	return b.String()
}

func (m *Model) renderMovie(item models.Item) string {
	var b strings.Builder
	if m.loading || m.movieDetails == nil {
		field(&b, "Released", formatter.FormatDate(item.ReleaseDate()))
		field(&b, "Rating", formatter.FormatRating(item.Rating()))
		b.WriteString(styles.help.Render("Loading details..."))
		b.WriteString("\n")
		return b.String()
	}

	d := m.movieDetails
	if d.Tagline != "" {
		b.WriteString(styles.help.Render(d.Tagline) + "\n\n")
	}
	field(&b, "Released", formatter.FormatDate(d.ReleaseDate))
	field(&b, "Runtime", formatter.FormatRuntime(d.Runtime))
	field(&b, "Genres", strings.Join(d.GenreNames(), ", "))
	field(&b, "Rating", fmt.Sprintf("%s (%s votes)", formatter.FormatRating(d.VoteAverage), formatter.FormatNumber(d.VoteCount)))
	field(&b, "Budget", formatter.FormatMoney(d.Budget))
	field(&b, "Revenue", formatter.FormatMoney(d.Revenue))
	field(&b, "Status", d.Status)
	if m.posters != nil {
		field(&b, "Poster", m.posters.PosterURL(d.PosterPath, services.DefaultPosterSize))
	}
	if d.Overview != "" {
		b.WriteString("\n" + d.Overview + "\n")
	}
	return b.String()
}

func field(b *strings.Builder, label, value string) {
	if value == "" {
		value = formatter.Unknown
	}
	fmt.Fprintf(b, "%s %s\n", styles.label.Render(label+":"), value)
}
