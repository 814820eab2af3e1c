package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/desertthunder/explorer/internal/browse"
	"github.com/desertthunder/explorer/internal/formatter"
	"github.com/desertthunder/explorer/internal/models"
	"github.com/desertthunder/explorer/internal/services"
	"github.com/desertthunder/explorer/internal/shared"
	"github.com/urfave/cli/v3"
)

type movieListing struct {
	title string
	fetch func(*services.MovieService, context.Context, int) (*models.TMDBResponse, error)
}

var (
	popularMovies    = movieListing{"Popular Movies", (*services.MovieService).PopularMovies}
	nowPlayingMovies = movieListing{"Now Playing", (*services.MovieService).NowPlayingMovies}
	topRatedMovies   = movieListing{"Top Rated Movies", (*services.MovieService).TopRatedMovies}
)

// MoviesSearch searches the movie catalog by title.
func (r *Runner) MoviesSearch(ctx context.Context, cmd *cli.Command) error {
	query := strings.TrimSpace(cmd.StringArg("query"))
	if query == "" {
		return fmt.Errorf("%w: query is required", shared.ErrMissingArgument)
	}
	if err := r.requireMovies(); err != nil {
		return err
	}

	r.logger.Info("searching movies", "query", query)

	resp, err := r.movies.SearchMovies(ctx, query, cmd.Int("page"))
	if err != nil {
		return err
	}

	r.logger.Debug("search complete", "results", len(resp.Results), "total", resp.TotalResults)
	return r.writeItems(cmd, browse.Movies, fmt.Sprintf("Results for %q", query), models.MovieItems(resp.Results))
}

// MoviesListing returns the action printing one of the catalog's movie lists.
func (r *Runner) MoviesListing(l movieListing) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		if err := r.requireMovies(); err != nil {
			return err
		}

		resp, err := l.fetch(r.movies, ctx, cmd.Int("page"))
		if err != nil {
			return err
		}
		return r.writeItems(cmd, browse.Movies, l.title, models.MovieItems(resp.Results))
	}
}

// MoviesGenres lists the genre vocabulary.
func (r *Runner) MoviesGenres(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireMovies(); err != nil {
		return err
	}

	genres, err := r.movies.Genres(ctx)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(genres, true)
	}

	r.writePlainHeader("Genres")
	for _, g := range genres {
		r.writePlain("%6d  %s\n", g.ID, g.Name)
	}
	return nil
}

// MoviesShow prints the details of one movie.
func (r *Runner) MoviesShow(ctx context.Context, cmd *cli.Command) error {
	id, err := strconv.Atoi(cmd.StringArg("id"))
	if err != nil || id <= 0 {
		return fmt.Errorf("%w: movie id must be a positive number", shared.ErrInvalidArgument)
	}
	if err := r.requireMovies(); err != nil {
		return err
	}

	d, err := r.movies.MovieDetails(ctx, id)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(d, true)
	}

	r.writePlainHeader(d.Title)
	if d.Tagline != "" {
		r.writePlain("%s\n\n", d.Tagline)
	}
	r.writePlain("Released:  %s\n", r.movies.FormatDate(d.ReleaseDate))
	r.writePlain("Runtime:   %s\n", r.movies.FormatRuntime(d.Runtime))
	r.writePlain("Genres:    %s\n", strings.Join(d.GenreNames(), ", "))
	r.writePlain("Rating:    %s (%s votes)\n", formatter.FormatRating(d.VoteAverage), formatter.FormatNumber(d.VoteCount))
	r.writePlain("Budget:    %s\n", r.movies.FormatMoney(d.Budget))
	r.writePlain("Revenue:   %s\n", r.movies.FormatMoney(d.Revenue))
	r.writePlain("Status:    %s\n", d.Status)
	r.writePlain("Poster:    %s\n", r.movies.PosterURL(d.PosterPath, services.DefaultPosterSize))
	r.writePlain("Backdrop:  %s\n", r.movies.BackdropURL(d.BackdropPath, services.DefaultBackdropSize))
	if d.Overview != "" {
		r.writePlainln("%s", d.Overview)
	}
	return nil
}

// MoviesGallery prints the gallery collections, filtered by the --genre and --year flags.
func (r *Runner) MoviesGallery(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireMovies(); err != nil {
		return err
	}

	g, err := browse.NewMovieSource(r.movies).Gallery(ctx)
	if err != nil {
		return err
	}

	filter := browse.Filter{Genres: cmd.StringSlice("genre"), Year: cmd.Int("year")}
	limit := cmd.Int("limit")
	for _, c := range g.Collections {
		items := filter.Apply(c.Items)
		r.writePlainHeader(fmt.Sprintf("%s (%d of %d)", c.Title, len(items), len(c.Items)))
		for i, it := range items {
			if limit > 0 && i >= limit {
				r.writePlain("   ...\n")
				break
			}
			r.writePlain("%d. %s\n   %s\n", i+1, it.Name(), describe(it))
		}
		r.writePlain("\n")
	}
	return nil
}
