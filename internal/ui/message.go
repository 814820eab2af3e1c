package ui

import (
	"github.com/desertthunder/explorer/internal/browse"
	"github.com/desertthunder/explorer/internal/models"
)

// navigateMsg moves to a route, optionally carrying a hand-off for the detail screen.
type navigateMsg struct {
	path    string
	handoff *browse.Handoff
}

// searchTickMsg fires when the debounce delay of edit seq has elapsed.
type searchTickMsg struct {
	seq uint64
}

type searchResultMsg struct {
	seq   uint64
	items []models.Item
	err   error
}

type galleryLoadedMsg struct {
	gallery *browse.Gallery
	err     error
}

type detailResolvedMsg struct {
	nav *browse.Navigator
	err error
}

type movieDetailsMsg struct {
	id      string
	details *models.MovieDetails
	err     error
}
