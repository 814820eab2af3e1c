package browse

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/desertthunder/explorer/internal/models"
	"github.com/desertthunder/explorer/internal/services"
	"github.com/desertthunder/explorer/internal/shared"
)

// Source adapts a catalog to the operations of the browse views.
type Source interface {
	Variant() Variant
	// Search returns results for query; an empty query returns the default collection for kind.
	Search(ctx context.Context, query string, kind models.Kind) ([]models.Item, error)
	// Gallery fetches every gallery collection, failing as a whole if any fetch fails.
	Gallery(ctx context.Context) (*Gallery, error)
	// Fallback rebuilds a hand-off for a detail route entered without one.
	Fallback(ctx context.Context, kind models.Kind, id string) (Handoff, error)
}

// MovieSource browses the movie catalog.
type MovieSource struct {
	Catalog services.MovieCatalog
}

func NewMovieSource(catalog services.MovieCatalog) *MovieSource {
	return &MovieSource{Catalog: catalog}
}

func (s *MovieSource) Variant() Variant { return Movies }

// Search queries titles, or lists popular movies for an empty query.
func (s *MovieSource) Search(ctx context.Context, query string, _ models.Kind) ([]models.Item, error) {
	var (
		resp *models.TMDBResponse
		err  error
	)
	if q := strings.TrimSpace(query); q == "" {
		resp, err = s.Catalog.PopularMovies(ctx, 1)
	} else {
		resp, err = s.Catalog.SearchMovies(ctx, q, 1)
	}
	if err != nil {
		return nil, err
	}
	return models.MovieItems(resp.Results), nil
}

// Details fetches the full record for a movie id.
func (s *MovieSource) Details(ctx context.Context, id string) (*models.MovieDetails, error) {
	n, err := strconv.Atoi(id)
	if err != nil {
		return nil, fmt.Errorf("%w: movie id %q", shared.ErrInvalidArgument, id)
	}
	return s.Catalog.MovieDetails(ctx, n)
}

// Fallback re-fetches the popular collection and positions the hand-off on id.
//
// A movie outside that collection still gets a single-item hand-off so its details can load.
func (s *MovieSource) Fallback(ctx context.Context, kind models.Kind, id string) (Handoff, error) {
	if kind != models.KindMovie {
		return Handoff{}, shared.ErrMissingContext
	}
	n, err := strconv.Atoi(id)
	if err != nil {
		return Handoff{}, fmt.Errorf("%w: movie id %q", shared.ErrInvalidArgument, id)
	}

	resp, err := s.Catalog.PopularMovies(ctx, 1)
	if err != nil {
		return Handoff{}, err
	}

	items := models.MovieItems(resp.Results)
	if h, ok := Locate(items, kind, id); ok {
		return h, nil
	}
	return NewHandoff([]models.Item{models.MovieItem(models.Movie{ID: n})}, 0), nil
}

// MusicSource browses the streaming catalog.
type MusicSource struct {
	Catalog   services.MusicCatalog
	Limit     int
	TimeRange string
}

func NewMusicSource(catalog services.MusicCatalog, limit int) *MusicSource {
	return &MusicSource{Catalog: catalog, Limit: limit}
}

func (s *MusicSource) Variant() Variant { return Music }

// Search queries one item type. An empty query lists top tracks, new releases or top
// artists depending on kind.
func (s *MusicSource) Search(ctx context.Context, query string, kind models.Kind) ([]models.Item, error) {
	if !Music.Owns(kind) {
		return nil, fmt.Errorf("%w: search type %s", shared.ErrInvalidArgument, kind)
	}

	if strings.TrimSpace(query) == "" {
		return s.defaults(ctx, kind)
	}

	resp, err := s.Catalog.Search(ctx, strings.TrimSpace(query), []string{kind.String()}, s.Limit)
	if err != nil {
		return nil, err
	}

	switch kind {
	case models.KindAlbum:
		if resp.Albums != nil {
			return models.AlbumItems(resp.Albums.Items), nil
		}
	case models.KindArtist:
		if resp.Artists != nil {
			return models.ArtistItems(resp.Artists.Items), nil
		}
	default:
		if resp.Tracks != nil {
			return models.TrackItems(resp.Tracks.Items), nil
		}
	}
	return []models.Item{}, nil
}

func (s *MusicSource) defaults(ctx context.Context, kind models.Kind) ([]models.Item, error) {
	switch kind {
	case models.KindAlbum:
		page, err := s.Catalog.NewReleases(ctx, s.Limit)
		if err != nil {
			return nil, err
		}
		return models.AlbumItems(page.Items), nil
	case models.KindArtist:
		page, err := s.Catalog.TopArtists(ctx, s.TimeRange, s.Limit)
		if err != nil {
			return nil, err
		}
		return models.ArtistItems(page.Items), nil
	default:
		page, err := s.Catalog.TopTracks(ctx, s.TimeRange, s.Limit)
		if err != nil {
			return nil, err
		}
		return models.TrackItems(page.Items), nil
	}
}

// Fallback has nothing to rebuild from: music detail needs the hand-off.
func (s *MusicSource) Fallback(context.Context, models.Kind, string) (Handoff, error) {
	return Handoff{}, shared.ErrMissingContext
}
