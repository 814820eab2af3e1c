package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up      key.Binding
	down    key.Binding
	enter   key.Binding
	back    key.Binding
	prev    key.Binding
	next    key.Binding
	tab     key.Binding
	untab   key.Binding
	sort    key.Binding
	order   key.Binding
	kind    key.Binding
	genre   key.Binding
	year    key.Binding
	clear   key.Binding
	home    key.Binding
	search  key.Binding
	gallery key.Binding
	quit    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:      key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "up")),
		down:    key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "down")),
		enter:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		prev:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "previous")),
		next:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next")),
		tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		untab:   key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous tab")),
		sort:    key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "sort field")),
		order:   key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "sort order")),
		kind:    key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "search type")),
		genre:   key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "genre")),
		year:    key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "year")),
		clear:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear filters")),
		home:    key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "home")),
		search:  key.NewBinding(key.WithKeys("2", "/"), key.WithHelp("2", "search")),
		gallery: key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "gallery")),
		quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.enter, k.back},
		{k.prev, k.next, k.tab, k.untab},
		{k.sort, k.order, k.kind},
		{k.genre, k.year, k.clear},
		{k.home, k.search, k.gallery, k.quit},
	}
}
