// TMDB catalog client
//
// Response shapes follow https://developer.themoviedb.org/reference
package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/desertthunder/explorer/internal/formatter"
	"github.com/desertthunder/explorer/internal/models"
	"github.com/desertthunder/explorer/internal/shared"
)

const (
	TMDBBaseURL      = "https://api.themoviedb.org/3"
	TMDBImageBaseURL = "https://image.tmdb.org/t/p"

	PosterPlaceholder   = "/placeholder-poster.jpg"
	BackdropPlaceholder = "/placeholder-backdrop.jpg"

	DefaultPosterSize   = "w500"
	DefaultBackdropSize = "w1280"
)

// MovieService reads the movie catalog.
type MovieService struct {
	client       *Client
	imageBaseURL string
}

// NewMovieService creates a catalog client authenticated with the configured api key.
func NewMovieService(cfg shared.TMDBConfig, httpClient *http.Client, opts ...ClientOption) (*MovieService, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("%w: tmdb api_key", shared.ErrMissingCredentials)
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = TMDBBaseURL
	}
	imageBaseURL := cfg.ImageBaseURL
	if imageBaseURL == "" {
		imageBaseURL = TMDBImageBaseURL
	}

	opts = append([]ClientOption{WithParams(url.Values{"api_key": {cfg.APIKey}})}, opts...)
	return &MovieService{
		client:       NewClient(baseURL, httpClient, opts...),
		imageBaseURL: strings.TrimRight(imageBaseURL, "/"),
	}, nil
}

// Client exposes the underlying transport for raw requests.
func (s *MovieService) Client() *Client { return s.client }

func (s *MovieService) Name() string { return "TMDB" }

func pageQuery(page int) url.Values {
	if page < 1 {
		page = 1
	}
	return url.Values{"page": {strconv.Itoa(page)}}
}

func (s *MovieService) listing(ctx context.Context, path string, query url.Values) (*models.TMDBResponse, error) {
	var resp models.TMDBResponse
	if err := s.client.GetJSON(ctx, path, query, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SearchMovies searches titles matching query.
func (s *MovieService) SearchMovies(ctx context.Context, query string, page int) (*models.TMDBResponse, error) {
	q := pageQuery(page)
	q.Set("query", query)
	q.Set("include_adult", "false")
	return s.listing(ctx, "/search/movie", q)
}

// PopularMovies lists the popular collection.
func (s *MovieService) PopularMovies(ctx context.Context, page int) (*models.TMDBResponse, error) {
	return s.listing(ctx, "/movie/popular", pageQuery(page))
}

// NowPlayingMovies lists titles currently in theaters.
func (s *MovieService) NowPlayingMovies(ctx context.Context, page int) (*models.TMDBResponse, error) {
	return s.listing(ctx, "/movie/now_playing", pageQuery(page))
}

// TopRatedMovies lists the top rated collection.
func (s *MovieService) TopRatedMovies(ctx context.Context, page int) (*models.TMDBResponse, error) {
	return s.listing(ctx, "/movie/top_rated", pageQuery(page))
}

// MoviesByGenre discovers popular titles tagged with genreID.
func (s *MovieService) MoviesByGenre(ctx context.Context, genreID, page int) (*models.TMDBResponse, error) {
	q := pageQuery(page)
	q.Set("with_genres", strconv.Itoa(genreID))
	q.Set("sort_by", "popularity.desc")
	return s.listing(ctx, "/discover/movie", q)
}

// MovieDetails fetches the full record for id.
func (s *MovieService) MovieDetails(ctx context.Context, id int) (*models.MovieDetails, error) {
	var details models.MovieDetails
	if err := s.client.GetJSON(ctx, fmt.Sprintf("/movie/%d", id), nil, &details); err != nil {
		return nil, err
	}
	return &details, nil
}

// Genres fetches the genre vocabulary.
func (s *MovieService) Genres(ctx context.Context) ([]models.Genre, error) {
	var resp models.GenreResponse
	if err := s.client.GetJSON(ctx, "/genre/movie/list", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Genres, nil
}

// PosterURL builds an image URL for a poster path, or the placeholder when path is missing.
func (s *MovieService) PosterURL(path *string, size string) string {
	if size == "" {
		size = DefaultPosterSize
	}
	return s.imageURL(path, size, PosterPlaceholder)
}

// BackdropURL builds an image URL for a backdrop path, or the placeholder when path is missing.
func (s *MovieService) BackdropURL(path *string, size string) string {
	if size == "" {
		size = DefaultBackdropSize
	}
	return s.imageURL(path, size, BackdropPlaceholder)
}

func (s *MovieService) imageURL(path *string, size, placeholder string) string {
	if path == nil || *path == "" {
		return placeholder
	}
	return s.imageBaseURL + "/" + size + *path
}

func (s *MovieService) FormatDate(date string) string   { return formatter.FormatDate(date) }
func (s *MovieService) FormatRuntime(minutes int) string { return formatter.FormatRuntime(minutes) }
func (s *MovieService) FormatMoney(amount int64) string  { return formatter.FormatMoney(amount) }
