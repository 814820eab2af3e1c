package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/explorer/internal/auth"
	"github.com/desertthunder/explorer/internal/services"
	"github.com/desertthunder/explorer/internal/shared"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	configPath string
	movies     *services.MovieService
	spotify    *services.SpotifyService
	session    *auth.Session
	db         *sql.DB
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	Movies     *services.MovieService
	Spotify    *services.SpotifyService
	Session    *auth.Session
	DB         *sql.DB
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}
	if opts.Session == nil && opts.Spotify != nil {
		opts.Session = opts.Spotify.Session()
	}

	return &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		movies:     opts.Movies,
		spotify:    opts.Spotify,
		session:    opts.Session,
		db:         opts.DB,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
	}
}

// Wire builds the services described by config. A catalog whose credentials are missing
// is left nil and its commands report [shared.ErrMissingCredentials].
func Wire(opts RunnerOpts) (*Runner, error) {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}
	config := opts.Config

	if config.Storage.Driver == "sqlite" && opts.DB == nil {
		db, err := shared.NewDatabase(config.Database.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)
		if err := shared.RunMigrations(db); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		opts.DB = db
	}

	store, err := auth.OpenStore(config.Storage, opts.DB)
	if err != nil {
		return nil, err
	}
	if opts.Session == nil {
		opts.Session = auth.NewSession(store, opts.Logger)
	}

	clientOpts := []services.ClientOption{
		services.WithRateLimit(config.HTTP.RequestsPerSecond),
		services.WithLogger(opts.Logger),
	}

	if opts.Movies == nil {
		movies, err := services.NewMovieService(config.Credentials.TMDB, opts.HTTPClient, clientOpts...)
		if err != nil {
			opts.Logger.Debug("movie catalog disabled", "reason", err)
		} else {
			opts.Movies = movies
		}
	}

	if opts.Spotify == nil {
		spotify, err := services.NewSpotifyService(config.Credentials.Spotify, opts.Session, opts.HTTPClient, clientOpts...)
		if err != nil {
			opts.Logger.Debug("music catalog disabled", "reason", err)
		} else {
			opts.Spotify = spotify
		}
	}

	return NewRunner(opts), nil
}

// Close releases the database handle, if one was opened.
func (r *Runner) Close() error {
	if r.db == nil {
		return nil
	}
	return r.db.Close()
}

// SetLogger replaces the runner's logger.
func (r *Runner) SetLogger(l *log.Logger) {
	r.logger = l
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, moviesCommand, musicCommand, apiCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

func (r *Runner) requireMovies() error {
	if r.movies == nil {
		return fmt.Errorf("%w: set credentials.tmdb.api_key or %s", shared.ErrMissingCredentials, shared.EnvTMDBAPIKey)
	}
	return nil
}

func (r *Runner) requireSpotify() error {
	if r.spotify == nil {
		return fmt.Errorf("%w: set credentials.spotify.client_id or %s", shared.ErrMissingCredentials, shared.EnvSpotifyClientID)
	}
	return nil
}

// requireSession checks for a usable token before any music request is made.
func (r *Runner) requireSession() error {
	if err := r.requireSpotify(); err != nil {
		return err
	}
	if !r.session.IsAuthenticated() {
		return fmt.Errorf("%w: run `explorer music login` first", shared.ErrNotAuthenticated)
	}
	return nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
