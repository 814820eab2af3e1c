package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/desertthunder/explorer/internal/auth"
	"github.com/desertthunder/explorer/internal/shared"
	tu "github.com/desertthunder/explorer/internal/testing"
)

func newSpotifyService(t *testing.T, routes map[string]tu.Route, authenticated bool) (*SpotifyService, *tu.FakeAPI) {
	t.Helper()
	api := tu.NewFakeAPI(t, routes)
	session := auth.NewSession(auth.NewMemoryStore(), nil)
	if authenticated {
		if err := session.Capture(auth.Grant{AccessToken: "tok", ExpiresIn: 3600}); err != nil {
			t.Fatalf("capture failed: %v", err)
		}
	}

	cfg := shared.SpotifyConfig{ClientID: "client", RedirectURI: "http://127.0.0.1:3000/callback", BaseURL: api.URL}
	srv, err := NewSpotifyService(cfg, session, nil)
	if err != nil {
		t.Fatalf("failed to create service: %v", err)
	}
	return srv, api
}

func TestSpotifyService(t *testing.T) {
	t.Run("NewSpotifyService", func(t *testing.T) {
		session := auth.NewSession(auth.NewMemoryStore(), nil)

		t.Run("Missing Client ID", func(t *testing.T) {
			_, err := NewSpotifyService(shared.SpotifyConfig{}, session, nil)
			if !errors.Is(err, shared.ErrMissingCredentials) {
				t.Errorf("expected ErrMissingCredentials, got %v", err)
			}
		})

		t.Run("Missing Session", func(t *testing.T) {
			_, err := NewSpotifyService(shared.SpotifyConfig{ClientID: "c"}, nil, nil)
			if !errors.Is(err, shared.ErrMissingArgument) {
				t.Errorf("expected ErrMissingArgument, got %v", err)
			}
		})

		t.Run("Defaults", func(t *testing.T) {
			srv, err := NewSpotifyService(shared.SpotifyConfig{ClientID: "c"}, session, nil)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if srv.Name() != "Spotify" {
				t.Errorf("expected service name 'Spotify', got %s", srv.Name())
			}
			if srv.Client().BaseURL() != SpotifyBaseURL {
				t.Errorf("expected %s, got %s", SpotifyBaseURL, srv.Client().BaseURL())
			}
		})
	})

	t.Run("Search", func(t *testing.T) {
		body := `{"tracks": {"items": [{"id": "t1", "name": "Song", "duration_ms": 201000}], "total": 1}}`
		srv, api := newSpotifyService(t, map[string]tu.Route{"/search": {Body: body}}, true)

		resp, err := srv.Search(context.Background(), "song", nil, 100)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if resp.Tracks == nil || len(resp.Tracks.Items) != 1 {
			t.Fatalf("unexpected response %+v", resp)
		}
		if resp.Albums != nil {
			t.Error("expected albums page to be absent")
		}

		r := api.Requests()[0]
		q := r.URL.Query()
		for k, v := range map[string]string{"q": "song", "type": "track", "market": "US", "limit": "50"} {
			if q.Get(k) != v {
				t.Errorf("expected %s=%s, got %q", k, v, q.Get(k))
			}
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("expected bearer header, got %q", got)
		}
	})

	t.Run("Search Invalid Type", func(t *testing.T) {
		srv, api := newSpotifyService(t, map[string]tu.Route{}, true)
		if _, err := srv.Search(context.Background(), "x", []string{"podcast"}, 10); !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
		if len(api.Requests()) != 0 {
			t.Error("expected no request for invalid type")
		}
	})

	t.Run("Top Items", func(t *testing.T) {
		srv, api := newSpotifyService(t, map[string]tu.Route{
			"/me/top/tracks":  {Body: `{"items": [{"id": "t1", "name": "A"}], "total": 1}`},
			"/me/top/artists": {Body: `{"items": [{"id": "a1", "name": "B", "genres": ["indie rock"]}], "total": 1}`},
		}, true)
		ctx := context.Background()

		tracks, err := srv.TopTracks(ctx, "", 0)
		if err != nil || len(tracks.Items) != 1 {
			t.Fatalf("unexpected top tracks %+v, %v", tracks, err)
		}
		artists, err := srv.TopArtists(ctx, "long_term", 5)
		if err != nil || artists.Items[0].Genres[0] != "indie rock" {
			t.Fatalf("unexpected top artists %+v, %v", artists, err)
		}

		reqs := api.Requests()
		if got := reqs[0].URL.Query().Get("time_range"); got != DefaultTimeRange {
			t.Errorf("expected default time range, got %s", got)
		}
		if got := reqs[0].URL.Query().Get("limit"); got != "20" {
			t.Errorf("expected default limit 20, got %s", got)
		}
		if got := reqs[1].URL.Query().Get("time_range"); got != "long_term" {
			t.Errorf("expected long_term, got %s", got)
		}

		if _, err := srv.TopTracks(ctx, "forever", 10); !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("Browse Endpoints", func(t *testing.T) {
		srv, _ := newSpotifyService(t, map[string]tu.Route{
			"/browse/new-releases":                   {Body: `{"albums": {"items": [{"id": "al1", "name": "Album", "release_date": "2024-05-01"}], "total": 1}}`},
			"/browse/featured-playlists":             {Body: `{"message": "Hi", "playlists": {"items": [{"id": "p1", "name": "Mix"}], "total": 1}}`},
			"/recommendations":                       {Body: `{"tracks": [{"id": "t9", "name": "Rec"}]}`},
			"/recommendations/available-genre-seeds": {Body: `{"genres": ["acoustic", "ambient"]}`},
			"/me":                                    {Body: `{"id": "u1", "display_name": "User", "email": "u@example.com"}`},
		}, true)
		ctx := context.Background()

		albums, err := srv.NewReleases(ctx, 10)
		if err != nil || albums.Items[0].ReleaseDate != "2024-05-01" {
			t.Errorf("unexpected new releases %+v, %v", albums, err)
		}
		playlists, err := srv.FeaturedPlaylists(ctx, 10)
		if err != nil || playlists.Items[0].Name != "Mix" {
			t.Errorf("unexpected playlists %+v, %v", playlists, err)
		}
		recs, err := srv.Recommendations(ctx, []string{"a", "b", "c", "d", "e", "f"}, 10)
		if err != nil || len(recs) != 1 {
			t.Errorf("unexpected recommendations %+v, %v", recs, err)
		}
		if _, err := srv.Recommendations(ctx, nil, 10); !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
		genres, err := srv.AvailableGenres(ctx)
		if err != nil || len(genres) != 2 {
			t.Errorf("unexpected genres %v, %v", genres, err)
		}
		user, err := srv.CurrentUser(ctx)
		if err != nil || user.DisplayName != "User" {
			t.Errorf("unexpected user %+v, %v", user, err)
		}
	})

	t.Run("Recommendations Caps Seeds", func(t *testing.T) {
		srv, api := newSpotifyService(t, map[string]tu.Route{"/recommendations": {Body: `{"tracks": []}`}}, true)
		srv.Recommendations(context.Background(), []string{"a", "b", "c", "d", "e", "f"}, 10)
		seeds := api.Requests()[0].URL.Query().Get("seed_genres")
		if n := len(strings.Split(seeds, ",")); n != 5 {
			t.Errorf("expected 5 seeds, got %d (%s)", n, seeds)
		}
	})

	t.Run("Unauthenticated Session", func(t *testing.T) {
		srv, api := newSpotifyService(t, map[string]tu.Route{"/me": {Body: `{}`}}, false)
		if _, err := srv.CurrentUser(context.Background()); !errors.Is(err, shared.ErrNotAuthenticated) {
			t.Errorf("expected ErrNotAuthenticated, got %v", err)
		}
		if len(api.Requests()) != 0 {
			t.Error("expected no request without a token")
		}
	})

	t.Run("Unauthorized Invalidates Session", func(t *testing.T) {
		srv, _ := newSpotifyService(t, map[string]tu.Route{
			"/me": {Status: 401, Body: `{"error": {"status": 401, "message": "The access token expired"}}`},
		}, true)

		if !srv.Session().IsAuthenticated() {
			t.Fatal("expected authenticated session before request")
		}
		if _, err := srv.CurrentUser(context.Background()); !errors.Is(err, shared.ErrUnauthorized) {
			t.Errorf("expected ErrUnauthorized, got %v", err)
		}
		if srv.Session().IsAuthenticated() {
			t.Error("expected session to be cleared after 401")
		}
	})

	t.Run("AuthURL And HandleCallback", func(t *testing.T) {
		srv, _ := newSpotifyService(t, map[string]tu.Route{}, false)

		u, err := srv.AuthURL("st")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(u, "response_type=token") || !strings.Contains(u, "state=st") {
			t.Errorf("unexpected auth URL %s", u)
		}

		if err := srv.HandleCallback("#access_token=abc&expires_in=60&state=other", "st"); !errors.Is(err, shared.ErrInvalidState) {
			t.Errorf("expected ErrInvalidState, got %v", err)
		}
		if srv.Session().IsAuthenticated() {
			t.Error("mismatched state must not authenticate")
		}

		if err := srv.HandleCallback("#access_token=abc&expires_in=60&state=st", "st"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !srv.Session().IsAuthenticated() {
			t.Error("expected authenticated session after callback")
		}
	})

	t.Run("Formatting Helpers", func(t *testing.T) {
		srv, _ := newSpotifyService(t, map[string]tu.Route{}, false)
		if got := srv.FormatDuration(201000); got != "3:21" {
			t.Errorf("expected 3:21, got %s", got)
		}
		if got := srv.FormatDate(""); got != "Unknown" {
			t.Errorf("expected Unknown, got %s", got)
		}
	})
}
