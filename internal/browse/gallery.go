package browse

import (
	"context"
	"slices"
	"strconv"
	"strings"

	"github.com/desertthunder/explorer/internal/models"
	"golang.org/x/sync/errgroup"
)

// Collection is one gallery tab.
//
// NoGenres marks collections whose items carry no genres; the genre filter skips them.
type Collection struct {
	Key      string
	Title    string
	Items    []models.Item
	NoGenres bool
}

// GenreOption is a selectable genre filter value.
//
// ID is the movie genre id or the music genre name.
type GenreOption struct {
	ID   string
	Name string
}

// Gallery is the full set of collections loaded for the gallery screen.
type Gallery struct {
	Collections []Collection
	Genres      []GenreOption
}

// Gallery loads popular, now playing and top rated movies plus the genre list concurrently.
func (s *MovieSource) Gallery(ctx context.Context) (*Gallery, error) {
	var (
		popular, nowPlaying, topRated *models.TMDBResponse
		genres                        []models.Genre
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { popular, err = s.Catalog.PopularMovies(ctx, 1); return })
	g.Go(func() (err error) { nowPlaying, err = s.Catalog.NowPlayingMovies(ctx, 1); return })
	g.Go(func() (err error) { topRated, err = s.Catalog.TopRatedMovies(ctx, 1); return })
	g.Go(func() (err error) { genres, err = s.Catalog.Genres(ctx); return })
	if err := g.Wait(); err != nil {
		return nil, err
	}

	options := make([]GenreOption, len(genres))
	for i, genre := range genres {
		options[i] = GenreOption{ID: strconv.Itoa(genre.ID), Name: genre.Name}
	}

	return &Gallery{
		Collections: []Collection{
			{Key: "popular", Title: "Popular", Items: models.MovieItems(popular.Results)},
			{Key: "now_playing", Title: "Now Playing", Items: models.MovieItems(nowPlaying.Results)},
			{Key: "top_rated", Title: "Top Rated", Items: models.MovieItems(topRated.Results)},
		},
		Genres: options,
	}, nil
}

// Gallery loads new releases, top artists and top tracks plus the genre seeds concurrently.
//
// Albums and tracks list simplified artists without genres, so only Top Artists filters by genre.
func (s *MusicSource) Gallery(ctx context.Context) (*Gallery, error) {
	var (
		releases *models.Page[models.Album]
		artists  *models.Page[models.Artist]
		tracks   *models.Page[models.Track]
		genres   []string
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { releases, err = s.Catalog.NewReleases(ctx, s.Limit); return })
	g.Go(func() (err error) { artists, err = s.Catalog.TopArtists(ctx, s.TimeRange, s.Limit); return })
	g.Go(func() (err error) { tracks, err = s.Catalog.TopTracks(ctx, s.TimeRange, s.Limit); return })
	g.Go(func() (err error) { genres, err = s.Catalog.AvailableGenres(ctx); return })
	if err := g.Wait(); err != nil {
		return nil, err
	}

	options := make([]GenreOption, len(genres))
	for i, genre := range genres {
		options[i] = GenreOption{ID: genre, Name: genre}
	}

	return &Gallery{
		Collections: []Collection{
			{Key: "new_releases", Title: "New Releases", Items: models.AlbumItems(releases.Items), NoGenres: true},
			{Key: "top_artists", Title: "Top Artists", Items: models.ArtistItems(artists.Items)},
			{Key: "top_tracks", Title: "Top Tracks", Items: models.TrackItems(tracks.Items), NoGenres: true},
		},
		Genres: options,
	}, nil
}

// Filter narrows a collection. Zero values disable the corresponding filter.
type Filter struct {
	Genres []string
	Year   int
}

// Active reports whether any filter is set.
func (f Filter) Active() bool {
	return len(f.Genres) > 0 || f.Year != 0
}

// Match reports whether item passes every active filter.
//
// Movies match a genre when any selected genre id is among their genre ids. Music items
// match when any of their genres contains a selected genre, ignoring case.
func (f Filter) Match(item models.Item) bool {
	if f.Year != 0 && item.Year() != f.Year {
		return false
	}
	if len(f.Genres) == 0 {
		return true
	}

	if item.Kind == models.KindMovie {
		for _, id := range f.Genres {
			n, err := strconv.Atoi(id)
			if err == nil && item.Movie.HasGenre(n) {
				return true
			}
		}
		return false
	}

	for _, selected := range f.Genres {
		want := strings.ToLower(selected)
		for _, genre := range item.Genres() {
			if strings.Contains(strings.ToLower(genre), want) {
				return true
			}
		}
	}
	return false
}

// Apply returns the items passing the filter, in their original order.
func (f Filter) Apply(items []models.Item) []models.Item {
	out := make([]models.Item, 0, len(items))
	for _, item := range items {
		if f.Match(item) {
			out = append(out, item)
		}
	}
	return out
}

// GalleryState is the gallery screen: a tab over the loaded collections and a filter.
type GalleryState struct {
	Gallery *Gallery
	Tab     int
	Filter  Filter
}

func NewGalleryState(g *Gallery) *GalleryState {
	return &GalleryState{Gallery: g}
}

// Current returns the selected collection.
func (s *GalleryState) Current() Collection {
	if s.Gallery == nil || len(s.Gallery.Collections) == 0 {
		return Collection{}
	}
	return s.Gallery.Collections[s.Tab]
}

// Visible recomputes the filtered items of the selected collection.
func (s *GalleryState) Visible() []models.Item {
	f := s.Filter
	if !s.GenresApply() {
		f.Genres = nil
	}
	return f.Apply(s.Current().Items)
}

// GenresApply reports whether the genre filter narrows the selected collection.
func (s *GalleryState) GenresApply() bool {
	return !s.Current().NoGenres
}

// NextTab and PrevTab cycle through the collections.
func (s *GalleryState) NextTab() { s.shiftTab(1) }
func (s *GalleryState) PrevTab() { s.shiftTab(-1) }

func (s *GalleryState) shiftTab(delta int) {
	if s.Gallery == nil || len(s.Gallery.Collections) == 0 {
		return
	}
	n := len(s.Gallery.Collections)
	s.Tab = ((s.Tab+delta)%n + n) % n
}

// ToggleGenre adds or removes a genre from the filter.
func (s *GalleryState) ToggleGenre(id string) {
	if i := slices.Index(s.Filter.Genres, id); i >= 0 {
		s.Filter.Genres = slices.Delete(s.Filter.Genres, i, i+1)
		return
	}
	s.Filter.Genres = append(s.Filter.Genres, id)
}

// Years lists the distinct release years in the selected collection, newest first.
func (s *GalleryState) Years() []int {
	var years []int
	for _, item := range s.Current().Items {
		if y := item.Year(); y != 0 && !slices.Contains(years, y) {
			years = append(years, y)
		}
	}
	slices.Sort(years)
	slices.Reverse(years)
	return years
}

// CycleYear steps the year filter through [GalleryState.Years] and back to no filter.
func (s *GalleryState) CycleYear() {
	years := s.Years()
	if len(years) == 0 {
		s.Filter.Year = 0
		return
	}
	i := slices.Index(years, s.Filter.Year)
	switch {
	case s.Filter.Year == 0:
		s.Filter.Year = years[0]
	case i < 0 || i == len(years)-1:
		s.Filter.Year = 0
	default:
		s.Filter.Year = years[i+1]
	}
}

// ClearFilters removes every filter.
func (s *GalleryState) ClearFilters() {
	s.Filter = Filter{}
}

// Select hands off the i-th visible item with the visible items as siblings.
func (s *GalleryState) Select(i int) (Handoff, bool) {
	visible := s.Visible()
	if i < 0 || i >= len(visible) {
		return Handoff{}, false
	}
	return NewHandoff(visible, i), true
}
