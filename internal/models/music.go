package models

import "strings"

// Image represents an image resource.
type Image struct {
	URL    string `json:"url"`
	Height int    `json:"height"`
	Width  int    `json:"width"`
}

// ExternalURLs holds links back to the streaming service.
type ExternalURLs struct {
	Spotify string `json:"spotify"`
}

type Followers struct {
	Total int `json:"total"`
}

// Artist represents a Spotify artist.
type Artist struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Images       []Image      `json:"images"`
	ExternalURLs ExternalURLs `json:"external_urls"`
	Genres       []string     `json:"genres"`
	Popularity   int          `json:"popularity"`
	Followers    Followers    `json:"followers"`
}

// Album represents a Spotify album.
type Album struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Images       []Image      `json:"images"`
	ExternalURLs ExternalURLs `json:"external_urls"`
	Artists      []Artist     `json:"artists"`
	ReleaseDate  string       `json:"release_date"`
	TotalTracks  int          `json:"total_tracks"`
	AlbumType    string       `json:"album_type"`
}

// Track represents a Spotify track.
type Track struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Artists      []Artist     `json:"artists"`
	Album        Album        `json:"album"`
	DurationMS   int          `json:"duration_ms"`
	Popularity   int          `json:"popularity"`
	ExternalURLs ExternalURLs `json:"external_urls"`
	PreviewURL   *string      `json:"preview_url"`
}

// Page is one page of a search result collection.
type Page[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

// SearchResponse is the multi-type search payload; only requested types are present.
type SearchResponse struct {
	Tracks  *Page[Track]  `json:"tracks,omitempty"`
	Albums  *Page[Album]  `json:"albums,omitempty"`
	Artists *Page[Artist] `json:"artists,omitempty"`
}

// UserProfile represents the current Spotify user.
type UserProfile struct {
	ID          string  `json:"id"`
	DisplayName string  `json:"display_name"`
	Email       string  `json:"email"`
	Images      []Image `json:"images"`
}

// Playlist is the simplified playlist object returned by browse endpoints.
type Playlist struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	Images       []Image      `json:"images"`
	ExternalURLs ExternalURLs `json:"external_urls"`
}

// ArtistNames joins artist names with ", ".
func ArtistNames(artists []Artist) string {
	names := make([]string, len(artists))
	for i, a := range artists {
		names[i] = a.Name
	}
	return strings.Join(names, ", ")
}

// FirstImage returns the URL of the first image or "".
func FirstImage(images []Image) string {
	if len(images) == 0 {
		return ""
	}
	return images[0].URL
}
