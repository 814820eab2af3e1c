package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/desertthunder/explorer/internal/auth"
	"github.com/desertthunder/explorer/internal/browse"
	"github.com/desertthunder/explorer/internal/models"
	"github.com/desertthunder/explorer/internal/server"
	"github.com/desertthunder/explorer/internal/shared"
	"github.com/urfave/cli/v3"
)

// loginTimeout bounds the wait for the browser redirect.
var loginTimeout = 2 * time.Minute

// MusicLogin signs in with the implicit grant.
//
// Starts the local callback server, opens the browser at the authorization URL and waits
// for the page to hand the token back. With --url the redirect URL is parsed directly.
func (r *Runner) MusicLogin(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSpotify(); err != nil {
		return err
	}

	var grant auth.Grant
	if raw := cmd.String("url"); raw != "" {
		g, err := auth.ParseFragment(raw)
		if err != nil {
			return err
		}
		grant = g
	} else {
		g, err := r.doLogin(ctx, !cmd.Bool("no-browser"))
		if err != nil {
			return err
		}
		grant = g
	}

	if err := r.session.Capture(grant); err != nil {
		return fmt.Errorf("failed to store token: %w", err)
	}

	r.writePlainln("✓ Signed in")
	if exp := r.session.ExpiresAt(); !exp.IsZero() {
		r.writePlain("✓ Token valid until %s\n", exp.Local().Format(time.Kitchen))
	}
	r.writePlain("\nYou can now use: explorer music top tracks\n")
	return nil
}

// doLogin runs the callback server until a grant arrives, the wait times out, or ctx ends.
func (r *Runner) doLogin(ctx context.Context, openBrowser bool) (auth.Grant, error) {
	state, err := shared.GenerateState()
	if err != nil {
		return auth.Grant{}, fmt.Errorf("failed to generate state token: %w", err)
	}

	authURL, err := r.spotify.AuthURL(state)
	if err != nil {
		return auth.Grant{}, err
	}

	handler := server.NewCallbackHandler(state)
	router := server.NewBasicRouter()
	router.Use(server.RequestLogger(r.logger), server.NoStore)
	router.Handler(handler)

	srv, err := server.Start(r.config.Addr(), router)
	if err != nil {
		return auth.Grant{}, err
	}
	defer func() {
		if err := srv.Shutdown(context.Background()); err != nil {
			r.logger.Warn("error shutting down server", "error", err)
		}
	}()
	r.logger.Info("callback server listening", "addr", srv.Addr())

	if openBrowser {
		r.writePlain("→ Opening browser for sign in...\n")
	}
	if !openBrowser || shared.OpenBrowser(authURL) != nil {
		r.writePlain("Please open this URL in your browser:\n%s\n\n", authURL)
	}

	r.writePlain("→ Waiting for authorization (%s timeout)...\n", loginTimeout)

	timeout := time.NewTimer(loginTimeout)
	defer timeout.Stop()

	select {
	case result := <-handler.Result():
		if result.Err != nil {
			return auth.Grant{}, fmt.Errorf("authorization failed: %w", result.Err)
		}
		return result.Grant, nil
	case err := <-srv.Errors():
		return auth.Grant{}, fmt.Errorf("server error: %w", err)
	case <-timeout.C:
		return auth.Grant{}, fmt.Errorf("%w: authorization timed out after %s", shared.ErrTimeout, loginTimeout)
	case <-ctx.Done():
		return auth.Grant{}, ctx.Err()
	}
}

// MusicLogout forgets the stored token.
func (r *Runner) MusicLogout(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSpotify(); err != nil {
		return err
	}
	if err := r.session.Logout(); err != nil {
		return fmt.Errorf("failed to clear token: %w", err)
	}
	return r.writePlain("✓ Signed out\n")
}

// MusicStatus prints the session state.
func (r *Runner) MusicStatus(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSpotify(); err != nil {
		return err
	}

	state := r.session.State()
	r.writePlain("Status: %s\n", state)
	switch state {
	case auth.Authenticated:
		if exp := r.session.ExpiresAt(); !exp.IsZero() {
			r.writePlain("Expires in: %s\n", time.Until(exp).Round(time.Second))
		}
	case auth.Expired:
		r.writePlain("Run `explorer music login` to sign in again.\n")
	}
	return nil
}

// MusicMe prints the signed-in profile.
func (r *Runner) MusicMe(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(); err != nil {
		return err
	}

	user, err := r.spotify.CurrentUser(ctx)
	if err != nil {
		return r.musicError(err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(user, true)
	}
	r.writePlain("Name:  %s\n", user.DisplayName)
	r.writePlain("ID:    %s\n", user.ID)
	if user.Email != "" {
		r.writePlain("Email: %s\n", user.Email)
	}
	return nil
}

// MusicSearch searches one item type.
func (r *Runner) MusicSearch(ctx context.Context, cmd *cli.Command) error {
	query := strings.TrimSpace(cmd.StringArg("query"))
	if query == "" {
		return fmt.Errorf("%w: query is required", shared.ErrMissingArgument)
	}
	kind, err := models.ParseKind(cmd.String("type"))
	if err != nil || !browse.Music.Owns(kind) {
		return fmt.Errorf("%w: type must be track, album or artist", shared.ErrInvalidArgument)
	}
	if err := r.requireSession(); err != nil {
		return err
	}

	r.logger.Info("searching music", "query", query, "type", kind)

	items, err := browse.NewMusicSource(r.spotify, cmd.Int("limit")).Search(ctx, query, kind)
	if err != nil {
		return r.musicError(err)
	}
	return r.writeItems(cmd, browse.Music, fmt.Sprintf("%s results for %q", kind, query), items)
}

// MusicTopTracks lists the user's top tracks.
func (r *Runner) MusicTopTracks(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(); err != nil {
		return err
	}

	page, err := r.spotify.TopTracks(ctx, cmd.String("time-range"), cmd.Int("limit"))
	if err != nil {
		return r.musicError(err)
	}
	return r.writeItems(cmd, browse.Music, "Top Tracks", models.TrackItems(page.Items))
}

// MusicTopArtists lists the user's top artists.
func (r *Runner) MusicTopArtists(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(); err != nil {
		return err
	}

	page, err := r.spotify.TopArtists(ctx, cmd.String("time-range"), cmd.Int("limit"))
	if err != nil {
		return r.musicError(err)
	}
	return r.writeItems(cmd, browse.Music, "Top Artists", models.ArtistItems(page.Items))
}

// MusicNewReleases lists new album releases.
func (r *Runner) MusicNewReleases(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(); err != nil {
		return err
	}

	page, err := r.spotify.NewReleases(ctx, cmd.Int("limit"))
	if err != nil {
		return r.musicError(err)
	}
	return r.writeItems(cmd, browse.Music, "New Releases", models.AlbumItems(page.Items))
}

// MusicGenres lists the genre seeds.
func (r *Runner) MusicGenres(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(); err != nil {
		return err
	}

	genres, err := r.spotify.AvailableGenres(ctx)
	if err != nil {
		return r.musicError(err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(genres, true)
	}
	r.writePlainHeader("Genres")
	for _, g := range genres {
		r.writePlain("%s\n", g)
	}
	return nil
}

// musicError adds a sign-in hint to rejected tokens. The session has already been cleared.
func (r *Runner) musicError(err error) error {
	if errors.Is(err, shared.ErrUnauthorized) || errors.Is(err, shared.ErrNotAuthenticated) {
		r.logger.Warn("token rejected", "error", err)
		return fmt.Errorf("%w: run `explorer music login` to sign in again", err)
	}
	return err
}
