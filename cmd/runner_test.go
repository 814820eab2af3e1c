package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/explorer/internal/auth"
	"github.com/desertthunder/explorer/internal/shared"
	tu "github.com/desertthunder/explorer/internal/testing"
	"github.com/urfave/cli/v3"
)

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}
			httpClient := &http.Client{}
			session := auth.NewSession(auth.NewMemoryStore(), nil)

			runner := NewRunner(RunnerOpts{
				Config:     config,
				ConfigPath: "/test/path/config.toml",
				Logger:     logger,
				Output:     output,
				HTTPClient: httpClient,
				Session:    session,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.configPath != "/test/path/config.toml" {
				t.Errorf("expected configPath to be set, got %s", runner.configPath)
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
			if runner.httpClient != httpClient {
				t.Error("expected httpClient to be set")
			}
			if runner.session != session {
				t.Error("expected session to be set")
			}
		})

		t.Run("with nil config uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Config: nil})
			if runner.config == nil {
				t.Error("expected default config to be set")
			}
		})

		t.Run("with nil logger uses default", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Logger: nil})
			if runner.logger == nil {
				t.Error("expected default logger to be set")
			}
		})

		t.Run("with nil output uses stdout", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: nil})
			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
		})

		t.Run("with nil httpClient uses default", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{HTTPClient: nil})
			if runner.httpClient != http.DefaultClient {
				t.Error("expected httpClient to default to http.DefaultClient")
			}
		})
	})

	t.Run("Wire", func(t *testing.T) {
		t.Run("skips catalogs without credentials", func(t *testing.T) {
			config := shared.DefaultConfig()
			config.Storage.Driver = "memory"
			config.Credentials.TMDB.APIKey = ""
			config.Credentials.Spotify.ClientID = ""

			runner, err := Wire(RunnerOpts{Config: config, Logger: quietLogger()})
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if runner.movies != nil || runner.spotify != nil {
				t.Error("expected both catalogs to be disabled")
			}
			if runner.session == nil {
				t.Error("expected a session even without a client id")
			}
			if err := runner.requireMovies(); !errors.Is(err, shared.ErrMissingCredentials) {
				t.Errorf("expected ErrMissingCredentials, got %v", err)
			}
		})

		t.Run("opens sqlite storage", func(t *testing.T) {
			config := shared.DefaultConfig()
			config.Storage.Driver = "sqlite"
			config.Database.Path = ":memory:"

			runner, err := Wire(RunnerOpts{Config: config, Logger: quietLogger()})
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			defer runner.Close()

			if runner.db == nil {
				t.Fatal("expected database to be opened")
			}
			if err := runner.session.Capture(auth.Grant{AccessToken: "abc", ExpiresIn: 60}); err != nil {
				t.Fatalf("expected capture to succeed, got %v", err)
			}
			if !runner.session.IsAuthenticated() {
				t.Error("expected token to round-trip through sqlite")
			}
		})

		t.Run("rejects unknown storage driver", func(t *testing.T) {
			config := shared.DefaultConfig()
			config.Storage.Driver = "cookie"

			if _, err := Wire(RunnerOpts{Config: config, Logger: quietLogger()}); !errors.Is(err, shared.ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	})

	t.Run("writeJSON", func(t *testing.T) {
		t.Run("writes formatted JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			data := map[string]string{"key": "value"}
			err := runner.writeJSON(data, true)

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if !strings.Contains(result, `"key": "value"`) {
				t.Errorf("expected formatted JSON, got %s", result)
			}
			if !strings.HasSuffix(result, "\n") {
				t.Error("expected output to end with newline")
			}
		})

		t.Run("writes compact JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			data := map[string]string{"key": "value"}
			err := runner.writeJSON(data, false)

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			expected := `{"key":"value"}` + "\n"
			if result != expected {
				t.Errorf("expected %q, got %q", expected, result)
			}
		})

		t.Run("handles marshal error with non-serializable data", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			// channels cannot be marshaled to JSON
			data := make(chan int)
			err := runner.writeJSON(data, false)

			if err == nil {
				t.Fatal("expected error for non-serializable data")
			}
			if !strings.Contains(err.Error(), "failed to marshal JSON") {
				t.Errorf("expected marshal error, got %v", err)
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			failing := &tu.FWriter{}
			runner := NewRunner(RunnerOpts{Output: failing})

			data := map[string]string{"key": "value"}
			err := runner.writeJSON(data, false)

			if err == nil {
				t.Fatal("expected error from failing writer")
			}
			if !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})

		t.Run("handles newline write failure", func(t *testing.T) {
			data := map[string]string{"key": "value"}
			limitedWriter := tu.NewLimitedWriter(1, 0, &bytes.Buffer{})
			runner := NewRunner(RunnerOpts{Output: &limitedWriter})

			err := runner.writeJSON(data, false)

			if err == nil {
				t.Fatal("expected error writing newline")
			}
			if !strings.Contains(err.Error(), "failed to write newline") {
				t.Errorf("expected newline write error, got %v", err)
			}
		})
	})

	t.Run("writePlain", func(t *testing.T) {
		t.Run("writes plain text successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			err := runner.writePlain("hello %s", "world")

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if result != "hello world" {
				t.Errorf("expected 'hello world', got %q", result)
			}
		})

		t.Run("writes plain text without formatting", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			err := runner.writePlain("simple text")

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if result != "simple text" {
				t.Errorf("expected 'simple text', got %q", result)
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			failing := &tu.FWriter{}
			runner := NewRunner(RunnerOpts{Output: failing})

			err := runner.writePlain("test")

			if err == nil {
				t.Fatal("expected error from failing writer")
			}
			if !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})
	})

	t.Run("register", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{})
		commands := runner.register()

		if len(commands) == 0 {
			t.Error("expected at least one command to be registered")
		}

		for i, cmd := range commands {
			if cmd == nil {
				t.Errorf("command at index %d is nil", i)
			}
		}
	})
}

func quietLogger() *log.Logger {
	return shared.NewLogger(io.Discard)
}

// testEnv is a runner wired against a fake API serving both catalogs.
type testEnv struct {
	runner *Runner
	api    *tu.FakeAPI
	output *bytes.Buffer
	config *shared.Config
}

func newTestEnv(t *testing.T, routes map[string]tu.Route) *testEnv {
	t.Helper()
	api := tu.NewFakeAPI(t, routes)

	config := shared.DefaultConfig()
	config.Storage.Driver = "memory"
	config.Credentials.TMDB.APIKey = "test-key"
	config.Credentials.TMDB.BaseURL = api.URL
	config.Credentials.Spotify.ClientID = "test-client"
	config.Credentials.Spotify.BaseURL = api.URL
	config.Server.Port = 0

	output := &bytes.Buffer{}
	runner, err := Wire(RunnerOpts{
		Config:     config,
		Logger:     quietLogger(),
		Output:     output,
		HTTPClient: api.Client(),
	})
	if err != nil {
		t.Fatalf("failed to wire runner: %v", err)
	}
	return &testEnv{runner: runner, api: api, output: output, config: config}
}

func (e *testEnv) run(args ...string) error {
	app := &cli.Command{Name: "explorer", Commands: e.runner.register()}
	return app.Run(context.Background(), append([]string{"explorer"}, args...))
}

func (e *testEnv) signIn(t *testing.T) {
	t.Helper()
	if err := e.runner.session.Capture(auth.Grant{AccessToken: "tok", TokenType: "Bearer", ExpiresIn: 3600}); err != nil {
		t.Fatalf("failed to sign in: %v", err)
	}
}

var batmanListing = map[string]any{
	"page": 1,
	"results": []map[string]any{
		{"id": 268, "title": "Batman", "release_date": "1989-06-23", "vote_average": 7.2, "popularity": 40.1},
		{"id": 155, "title": "The Dark Knight", "release_date": "2008-07-16", "vote_average": 8.5, "popularity": 90.5},
		{"id": 414906, "title": "The Batman", "release_date": "2022-03-01", "vote_average": 7.7, "popularity": 120.3},
	},
	"total_pages":   1,
	"total_results": 3,
}

func TestMoviesCommands(t *testing.T) {
	t.Run("search prints results by title", func(t *testing.T) {
		env := newTestEnv(t, map[string]tu.Route{"/search/movie": {Body: batmanListing}})

		if err := env.run("movies", "search", "batman"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		out := env.output.String()
		for _, line := range []string{"1. Batman", "2. The Batman", "3. The Dark Knight"} {
			if !strings.Contains(out, line) {
				t.Errorf("expected %q in output, got %s", line, out)
			}
		}

		req := env.api.Requests()[0]
		if got := req.URL.Query().Get("query"); got != "batman" {
			t.Errorf("expected query batman, got %s", got)
		}
		if got := req.URL.Query().Get("api_key"); got != "test-key" {
			t.Errorf("expected api key to be sent, got %s", got)
		}
	})

	t.Run("search sorts by vote average descending", func(t *testing.T) {
		env := newTestEnv(t, map[string]tu.Route{"/search/movie": {Body: batmanListing}})

		if err := env.run("movies", "search", "--sort", "vote_average", "--order", "desc", "batman"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(env.output.String(), "1. The Dark Knight") {
			t.Errorf("expected highest rated first, got %s", env.output.String())
		}
	})

	t.Run("search rejects unknown sort field", func(t *testing.T) {
		env := newTestEnv(t, map[string]tu.Route{"/search/movie": {Body: batmanListing}})

		err := env.run("movies", "search", "--sort", "duration", "batman")
		if !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("search keeps fetched order with sort none", func(t *testing.T) {
		env := newTestEnv(t, map[string]tu.Route{"/search/movie": {Body: batmanListing}})

		if err := env.run("movies", "search", "--sort", "none", "batman"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		out := env.output.String()
		if !strings.Contains(out, "2. The Dark Knight") || !strings.Contains(out, "3. The Batman") {
			t.Errorf("expected fetched order, got %s", out)
		}
	})

	t.Run("search exports csv", func(t *testing.T) {
		env := newTestEnv(t, map[string]tu.Route{"/search/movie": {Body: batmanListing}})

		if err := env.run("movies", "search", "--format", "csv", "batman"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.HasPrefix(env.output.String(), "Kind,ID,Name") {
			t.Errorf("expected csv header, got %s", env.output.String())
		}
	})

	t.Run("search requires a query", func(t *testing.T) {
		env := newTestEnv(t, nil)

		if err := env.run("movies", "search"); !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
		if len(env.api.Requests()) != 0 {
			t.Error("expected no request")
		}
	})

	t.Run("popular writes JSON", func(t *testing.T) {
		env := newTestEnv(t, map[string]tu.Route{"/movie/popular": {Body: batmanListing}})

		if err := env.run("movies", "popular", "--json"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(env.output.String(), `"title": "The Dark Knight"`) {
			t.Errorf("expected movie JSON, got %s", env.output.String())
		}
	})

	t.Run("show formats details", func(t *testing.T) {
		env := newTestEnv(t, map[string]tu.Route{"/movie/155": {Body: map[string]any{
			"id": 155, "title": "The Dark Knight", "release_date": "2008-07-16",
			"runtime": 152, "budget": 185000000, "revenue": 1004558444,
			"genres": []map[string]any{{"id": 28, "name": "Action"}, {"id": 80, "name": "Crime"}},
		}}})

		if err := env.run("movies", "show", "155"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		out := env.output.String()
		for _, want := range []string{"7/16/2008", "2h 32m", "Action, Crime", "$185,000,000"} {
			if !strings.Contains(out, want) {
				t.Errorf("expected %q in output, got %s", want, out)
			}
		}
	})

	t.Run("show rejects a non-numeric id", func(t *testing.T) {
		env := newTestEnv(t, nil)

		if err := env.run("movies", "show", "abc"); !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("show surfaces not found", func(t *testing.T) {
		env := newTestEnv(t, nil)

		if err := env.run("movies", "show", "1"); !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("gallery applies the year filter", func(t *testing.T) {
		env := newTestEnv(t, map[string]tu.Route{
			"/movie/popular":     {Body: batmanListing},
			"/movie/now_playing": {Body: batmanListing},
			"/movie/top_rated":   {Body: batmanListing},
			"/genre/movie/list":  {Body: map[string]any{"genres": []map[string]any{{"id": 28, "name": "Action"}}}},
		})

		if err := env.run("movies", "gallery", "--year", "2008"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		out := env.output.String()
		if !strings.Contains(out, "(1 of 3)") {
			t.Errorf("expected filtered counts, got %s", out)
		}
		if strings.Contains(out, "The Batman") {
			t.Errorf("expected 2022 release to be filtered out")
		}
	})
}

func TestMusicCommands(t *testing.T) {
	topTracks := map[string]any{
		"items": []map[string]any{
			{"id": "t1", "name": "Song A", "duration_ms": 61000, "artists": []map[string]any{{"name": "Artist"}}},
			{"id": "t2", "name": "Song B", "duration_ms": 185000, "artists": []map[string]any{{"name": "Artist"}}},
		},
		"total": 2,
	}

	t.Run("commands require a session", func(t *testing.T) {
		env := newTestEnv(t, map[string]tu.Route{"/me/top/tracks": {Body: topTracks}})

		err := env.run("music", "top", "tracks")
		if !errors.Is(err, shared.ErrNotAuthenticated) {
			t.Errorf("expected ErrNotAuthenticated, got %v", err)
		}
		if env.api.Count("/me/top/tracks") != 0 {
			t.Error("expected no request without a token")
		}
	})

	t.Run("top tracks sends the bearer token", func(t *testing.T) {
		env := newTestEnv(t, map[string]tu.Route{"/me/top/tracks": {Body: topTracks}})
		env.signIn(t)

		if err := env.run("music", "top", "tracks", "--sort", "duration", "--order", "desc"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if got := env.api.Requests()[0].Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("expected bearer token, got %q", got)
		}
		out := env.output.String()
		if !strings.Contains(out, "1. Song B") || !strings.Contains(out, "3:05") {
			t.Errorf("expected longest track first, got %s", out)
		}
	})

	t.Run("rejected token clears the session", func(t *testing.T) {
		env := newTestEnv(t, map[string]tu.Route{"/me/top/tracks": {
			Status: http.StatusUnauthorized,
			Body:   map[string]any{"error": map[string]any{"status": 401, "message": "The access token expired"}},
		}})
		env.signIn(t)

		err := env.run("music", "top", "tracks")
		if !errors.Is(err, shared.ErrUnauthorized) {
			t.Fatalf("expected ErrUnauthorized, got %v", err)
		}
		if !strings.Contains(err.Error(), "music login") {
			t.Errorf("expected login hint, got %v", err)
		}
		if env.runner.session.IsAuthenticated() {
			t.Error("expected session to be cleared")
		}
		if env.api.Count("/me/top/tracks") != 1 {
			t.Error("expected a single request with no retry")
		}
	})

	t.Run("search validates the type", func(t *testing.T) {
		env := newTestEnv(t, nil)
		env.signIn(t)

		if err := env.run("music", "search", "--type", "movie", "x"); !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("search artists", func(t *testing.T) {
		env := newTestEnv(t, map[string]tu.Route{"/search": {Body: map[string]any{
			"artists": map[string]any{"items": []map[string]any{
				{"id": "a1", "name": "Radiohead", "genres": []string{"alternative rock"}},
			}},
		}}})
		env.signIn(t)

		if err := env.run("music", "search", "--type", "artist", "radiohead"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if got := env.api.Requests()[0].URL.Query().Get("type"); got != "artist" {
			t.Errorf("expected type artist, got %s", got)
		}
		if !strings.Contains(env.output.String(), "alternative rock") {
			t.Errorf("expected genres in output, got %s", env.output.String())
		}
	})

	t.Run("login with a pasted url", func(t *testing.T) {
		env := newTestEnv(t, nil)

		err := env.run("music", "login", "--url", "http://127.0.0.1:3000/callback#access_token=abc&token_type=Bearer&expires_in=3600&state=s")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !env.runner.session.IsAuthenticated() {
			t.Error("expected session to be authenticated")
		}
		if !strings.Contains(env.output.String(), "Signed in") {
			t.Errorf("expected confirmation, got %s", env.output.String())
		}
	})

	t.Run("login with an error redirect", func(t *testing.T) {
		env := newTestEnv(t, nil)

		err := env.run("music", "login", "--url", "http://127.0.0.1:3000/callback#error=access_denied")
		if !errors.Is(err, shared.ErrAuthFailed) {
			t.Errorf("expected ErrAuthFailed, got %v", err)
		}
	})

	t.Run("login times out without a redirect", func(t *testing.T) {
		env := newTestEnv(t, nil)
		original := loginTimeout
		loginTimeout = 50 * time.Millisecond
		t.Cleanup(func() { loginTimeout = original })

		err := env.run("music", "login", "--no-browser")
		if !errors.Is(err, shared.ErrTimeout) {
			t.Fatalf("expected ErrTimeout, got %v", err)
		}
		if !strings.Contains(env.output.String(), "accounts.spotify.com/authorize") {
			t.Errorf("expected authorization url to be printed, got %s", env.output.String())
		}
	})

	t.Run("status and logout", func(t *testing.T) {
		env := newTestEnv(t, nil)
		env.signIn(t)

		if err := env.run("music", "status"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(env.output.String(), "Status: authenticated") {
			t.Errorf("expected authenticated status, got %s", env.output.String())
		}

		if err := env.run("music", "logout"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if env.runner.session.State() != auth.Unauthenticated {
			t.Errorf("expected unauthenticated after logout, got %v", env.runner.session.State())
		}
	})
}

func TestAPICommand(t *testing.T) {
	t.Run("gets raw movie JSON", func(t *testing.T) {
		env := newTestEnv(t, map[string]tu.Route{"/genre/movie/list": {Body: `{"genres":[{"id":28,"name":"Action"}]}`}})

		if err := env.run("api", "get", "--json", "movies", "/genre/movie/list"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		expected := `{"genres":[{"id":28,"name":"Action"}]}` + "\n"
		if env.output.String() != expected {
			t.Errorf("expected %q, got %q", expected, env.output.String())
		}
	})

	t.Run("reports error status", func(t *testing.T) {
		env := newTestEnv(t, nil)

		if err := env.run("api", "get", "movies", "/missing"); !errors.Is(err, shared.ErrAPIRequest) {
			t.Errorf("expected ErrAPIRequest, got %v", err)
		}
	})

	t.Run("rejects unknown service", func(t *testing.T) {
		env := newTestEnv(t, nil)

		if err := env.run("api", "get", "books", "/x"); !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})
}

func TestSetupCommands(t *testing.T) {
	t.Run("config writes the template once", func(t *testing.T) {
		env := newTestEnv(t, nil)
		path := filepath.Join(t.TempDir(), "config.toml")

		if err := env.run("setup", "config", "--config", path); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		tu.AssertFileExists(t, path)
		if !strings.Contains(tu.MustReadFile(t, path), "[credentials.tmdb]") {
			t.Error("expected template content")
		}

		if err := env.run("setup", "config", "--config", path); !errors.Is(err, shared.ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig on second run, got %v", err)
		}
	})

	t.Run("database runs migrations", func(t *testing.T) {
		env := newTestEnv(t, nil)
		dir := t.TempDir()
		wd := tu.MustGetwd(t)
		tu.MustChdir(t, dir)
		t.Cleanup(func() { tu.MustChdir(t, wd) })

		if err := env.run("setup", "database", "--config", "config.toml"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		tu.AssertFileExists(t, filepath.Join(dir, "config.toml"))
		tu.AssertFileExists(t, filepath.Join(dir, "explorer.db"))
	})
}
