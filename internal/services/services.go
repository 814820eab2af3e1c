// package services implements typed clients for the remote catalogs
//
// TMDB (movies), Spotify (music)
package services

import (
	"context"

	"github.com/desertthunder/explorer/internal/models"
)

// MovieCatalog is the read surface of the movie catalog used by the views.
type MovieCatalog interface {
	SearchMovies(ctx context.Context, query string, page int) (*models.TMDBResponse, error)
	PopularMovies(ctx context.Context, page int) (*models.TMDBResponse, error)
	NowPlayingMovies(ctx context.Context, page int) (*models.TMDBResponse, error)
	TopRatedMovies(ctx context.Context, page int) (*models.TMDBResponse, error)
	MovieDetails(ctx context.Context, id int) (*models.MovieDetails, error)
	Genres(ctx context.Context) ([]models.Genre, error)
}

// MusicCatalog is the read surface of the streaming service used by the views.
type MusicCatalog interface {
	Search(ctx context.Context, query string, types []string, limit int) (*models.SearchResponse, error)
	TopTracks(ctx context.Context, timeRange string, limit int) (*models.Page[models.Track], error)
	TopArtists(ctx context.Context, timeRange string, limit int) (*models.Page[models.Artist], error)
	NewReleases(ctx context.Context, limit int) (*models.Page[models.Album], error)
	AvailableGenres(ctx context.Context) ([]string, error)
}

var (
	_ MovieCatalog = (*MovieService)(nil)
	_ MusicCatalog = (*SpotifyService)(nil)
)
