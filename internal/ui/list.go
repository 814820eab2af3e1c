package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/explorer/internal/browse"
	"github.com/desertthunder/explorer/internal/formatter"
	"github.com/desertthunder/explorer/internal/models"
)

var _ list.Item = resultItem{}

// resultItem wraps [models.Item] to implement [list.Item].
type resultItem struct {
	item models.Item
}

func (i resultItem) FilterValue() string { return i.item.Name() }
func (i resultItem) Title() string       { return i.item.Name() }
func (i resultItem) Description() string {
	desc := i.item.Subtitle()
	switch i.item.Kind {
	case models.KindMovie:
		desc = fmt.Sprintf("%s • ★ %s", desc, formatter.FormatRating(i.item.Rating()))
	case models.KindTrack:
		desc = fmt.Sprintf("%s • %s", desc, formatter.FormatDuration(i.item.Duration()))
	}
	return desc
}

func toListItems(items []models.Item) []list.Item {
	out := make([]list.Item, len(items))
	for i, it := range items {
		out[i] = resultItem{item: it}
	}
	return out
}

// fetch issues the search for edit seq. The result is tagged so stale replies can be dropped.
func (m *Model) fetch(seq uint64, query string) tea.Cmd {
	m.listState.Begin(seq, query)
	src, ctx, kind := m.source, m.ctx, m.listState.Kind
	return func() tea.Msg {
		items, err := src.Search(ctx, query, kind)
		return searchResultMsg{seq: seq, items: items, err: err}
	}
}

// debounce schedules a tick for the current input; only the last tick before a pause fetches.
func (m *Model) debounce() tea.Cmd {
	seq := m.debouncer.Touch(m.input.Value())
	return tea.Tick(m.debouncer.Delay(), func(time.Time) tea.Msg {
		return searchTickMsg{seq: seq}
	})
}

func (m *Model) refetch() tea.Cmd {
	seq := m.debouncer.Touch(m.input.Value())
	query, _ := m.debouncer.Settle(seq)
	return m.fetch(seq, query)
}

func (m *Model) syncResults() {
	m.results.SetItems(toListItems(m.listState.Items()))
	m.results.ResetSelected()
}

func (m *Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.back):
		return m, navigateTo("/", nil)
	case key.Matches(msg, m.keys.enter):
		h, ok := m.listState.Select(m.results.Index())
		if !ok {
			return m, nil
		}
		return m, navigateTo(browse.DetailPath(h.Item), &h)
	case key.Matches(msg, m.keys.sort):
		m.listState.CycleField()
		m.syncResults()
		return m, nil
	case key.Matches(msg, m.keys.order):
		m.listState.ToggleOrder()
		m.syncResults()
		return m, nil
	case key.Matches(msg, m.keys.kind):
		if m.listState.CycleKind() {
			return m, m.refetch()
		}
		return m, nil
	case key.Matches(msg, m.keys.up), key.Matches(msg, m.keys.down):
		var cmd tea.Cmd
		m.results, cmd = m.results.Update(msg)
		return m, cmd
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() == before {
		return m, cmd
	}
	return m, tea.Batch(cmd, m.debounce())
}

func (m *Model) renderList() string {
	var b strings.Builder
	title := "Search Movies"
	if m.variant == browse.Music {
		title = "Search " + strings.ToUpper(m.listState.Kind.String()[:1]) + m.listState.Kind.String()[1:] + "s"
	}
	b.WriteString(styles.title.Render(title))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")

	sortLabel := "fetched order"
	if m.listState.Field != browse.FieldNone {
		sortLabel = fmt.Sprintf("%s %s", m.listState.Field, m.listState.Order)
	}
	b.WriteString(styles.label.Render("Sort: ") + styles.help.Render(sortLabel))
	b.WriteString("\n\n")

	switch {
	case m.listState.Loading && len(m.listState.Items()) == 0:
		b.WriteString(styles.help.Render("Loading..."))
	case len(m.listState.Items()) == 0:
		b.WriteString(styles.help.Render("No results"))
	default:
		if m.listState.Loading {
			b.WriteString(styles.help.Render("Updating...") + "\n")
		}
		b.WriteString(m.results.View())
	}

	keys := []key.Binding{m.keys.enter, m.keys.sort, m.keys.order, m.keys.back}
	if m.variant == browse.Music {
		keys = append(keys, m.keys.kind)
	}
	b.WriteString("\n\n" + m.help.ShortHelpView(keys))
	return b.String()
}
