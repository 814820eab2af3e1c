package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind discriminates the payload carried by an [Item].
type Kind int

const (
	KindMovie Kind = iota
	KindTrack
	KindAlbum
	KindArtist
)

func (k Kind) String() string {
	switch k {
	case KindMovie:
		return "movie"
	case KindTrack:
		return "track"
	case KindAlbum:
		return "album"
	case KindArtist:
		return "artist"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseKind converts a route or flag value into a [Kind].
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "movie", "movies":
		return KindMovie, nil
	case "track", "tracks":
		return KindTrack, nil
	case "album", "albums":
		return KindAlbum, nil
	case "artist", "artists":
		return KindArtist, nil
	}
	return 0, fmt.Errorf("unknown item kind %q", s)
}

// Item is a tagged variant over the browsable record types. Exactly one payload pointer,
// the one matching Kind, is non-nil.
type Item struct {
	Kind   Kind
	Movie  *Movie
	Track  *Track
	Album  *Album
	Artist *Artist
}

func MovieItem(m Movie) Item   { return Item{Kind: KindMovie, Movie: &m} }
func TrackItem(t Track) Item   { return Item{Kind: KindTrack, Track: &t} }
func AlbumItem(a Album) Item   { return Item{Kind: KindAlbum, Album: &a} }
func ArtistItem(a Artist) Item { return Item{Kind: KindArtist, Artist: &a} }

// MovieItems wraps each movie in an [Item].
func MovieItems(movies []Movie) []Item {
	items := make([]Item, len(movies))
	for i, m := range movies {
		items[i] = MovieItem(m)
	}
	return items
}

func TrackItems(tracks []Track) []Item {
	items := make([]Item, len(tracks))
	for i, t := range tracks {
		items[i] = TrackItem(t)
	}
	return items
}

func AlbumItems(albums []Album) []Item {
	items := make([]Item, len(albums))
	for i, a := range albums {
		items[i] = AlbumItem(a)
	}
	return items
}

func ArtistItems(artists []Artist) []Item {
	items := make([]Item, len(artists))
	for i, a := range artists {
		items[i] = ArtistItem(a)
	}
	return items
}

// ID returns the remote identity as a string.
func (i Item) ID() string {
	switch i.Kind {
	case KindMovie:
		return i.Movie.Key()
	case KindTrack:
		return i.Track.ID
	case KindAlbum:
		return i.Album.ID
	case KindArtist:
		return i.Artist.ID
	}
	return ""
}

// Name returns the display title (a movie's title, otherwise the name).
func (i Item) Name() string {
	switch i.Kind {
	case KindMovie:
		return i.Movie.Title
	case KindTrack:
		return i.Track.Name
	case KindAlbum:
		return i.Album.Name
	case KindArtist:
		return i.Artist.Name
	}
	return ""
}

// Popularity returns the popularity score; albums carry none and report 0.
func (i Item) Popularity() float64 {
	switch i.Kind {
	case KindMovie:
		return i.Movie.Popularity
	case KindTrack:
		return float64(i.Track.Popularity)
	case KindArtist:
		return float64(i.Artist.Popularity)
	}
	return 0
}

// Rating returns the movie vote average, 0 for music items.
func (i Item) Rating() float64 {
	if i.Kind == KindMovie {
		return i.Movie.VoteAverage
	}
	return 0
}

// ReleaseDate returns the raw release date; tracks use their album's date, artists have none.
func (i Item) ReleaseDate() string {
	switch i.Kind {
	case KindMovie:
		return i.Movie.ReleaseDate
	case KindTrack:
		return i.Track.Album.ReleaseDate
	case KindAlbum:
		return i.Album.ReleaseDate
	}
	return ""
}

// Year returns the release year, or 0 when the date is missing or malformed.
func (i Item) Year() int {
	date := i.ReleaseDate()
	if len(date) < 4 {
		return 0
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0
	}
	return year
}

// Duration returns the track length in milliseconds, 0 for other kinds.
func (i Item) Duration() int {
	if i.Kind == KindTrack {
		return i.Track.DurationMS
	}
	return 0
}

// ImageURL returns the first image of a music item. Movie posters are built by the
// catalog client from a path, so movies return "".
func (i Item) ImageURL() string {
	switch i.Kind {
	case KindTrack:
		return FirstImage(i.Track.Album.Images)
	case KindAlbum:
		return FirstImage(i.Album.Images)
	case KindArtist:
		return FirstImage(i.Artist.Images)
	}
	return ""
}

// Genres returns genre names attached to a music item; tracks and albums inherit them from their artists.
func (i Item) Genres() []string {
	var artists []Artist
	switch i.Kind {
	case KindArtist:
		return i.Artist.Genres
	case KindTrack:
		artists = i.Track.Artists
	case KindAlbum:
		artists = i.Album.Artists
	default:
		return nil
	}

	var genres []string
	for _, a := range artists {
		genres = append(genres, a.Genres...)
	}
	return genres
}

// Subtitle returns the secondary line shown under the name in listings.
func (i Item) Subtitle() string {
	switch i.Kind {
	case KindMovie:
		if i.Movie.ReleaseDate == "" {
			return "Release date unknown"
		}
		return i.Movie.ReleaseDate
	case KindTrack:
		return ArtistNames(i.Track.Artists)
	case KindAlbum:
		return ArtistNames(i.Album.Artists)
	case KindArtist:
		genres := i.Artist.Genres
		if len(genres) > 2 {
			genres = genres[:2]
		}
		if len(genres) == 0 {
			return "Artist"
		}
		return strings.Join(genres, ", ")
	}
	return ""
}
