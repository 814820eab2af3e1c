// Spotify Web API client
//
// Response shapes follow https://developer.spotify.com/documentation/web-api/reference/
package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/desertthunder/explorer/internal/auth"
	"github.com/desertthunder/explorer/internal/formatter"
	"github.com/desertthunder/explorer/internal/models"
	"github.com/desertthunder/explorer/internal/shared"
)

const (
	SpotifyBaseURL = "https://api.spotify.com/v1"

	DefaultMarket    = "US"
	DefaultTimeRange = "medium_term"
	MaxLimit         = 50
)

// TimeRanges are the windows accepted by the top items endpoints.
var TimeRanges = []string{"short_term", "medium_term", "long_term"}

// SearchTypes are the item types accepted by [SpotifyService.Search].
var SearchTypes = []string{"track", "album", "artist"}

// SpotifyService reads the streaming catalog on behalf of the signed-in user.
//
// Every request carries the session's token; a 401 invalidates the session.
type SpotifyService struct {
	client  *Client
	session *auth.Session
	config  shared.SpotifyConfig
}

// NewSpotifyService creates a client bound to session.
func NewSpotifyService(cfg shared.SpotifyConfig, session *auth.Session, httpClient *http.Client, opts ...ClientOption) (*SpotifyService, error) {
	if session == nil {
		return nil, fmt.Errorf("%w: session", shared.ErrMissingArgument)
	}
	if strings.TrimSpace(cfg.ClientID) == "" {
		return nil, fmt.Errorf("%w: spotify client_id", shared.ErrMissingCredentials)
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = SpotifyBaseURL
	}

	opts = append([]ClientOption{WithTokenSource(session), WithUnauthorized(session.Invalidate)}, opts...)
	return &SpotifyService{
		client:  NewClient(baseURL, httpClient, opts...),
		session: session,
		config:  cfg,
	}, nil
}

// Client exposes the underlying transport for raw requests.
func (s *SpotifyService) Client() *Client { return s.client }

// Session returns the session the service authenticates with.
func (s *SpotifyService) Session() *auth.Session { return s.session }

func (s *SpotifyService) Name() string { return "Spotify" }

// AuthURL returns the consent URL for a login with the given state.
func (s *SpotifyService) AuthURL(state string) (string, error) {
	return auth.AuthorizeURL(s.config, state)
}

// HandleCallback parses a redirect fragment, checks its state, and stores the token.
func (s *SpotifyService) HandleCallback(fragment, expectedState string) error {
	grant, err := auth.ParseFragment(fragment)
	if err != nil {
		return err
	}
	if err := grant.VerifyState(expectedState); err != nil {
		return err
	}
	return s.session.Capture(grant)
}

func clampLimit(limit int) string {
	if limit <= 0 {
		limit = 20
	}
	return strconv.Itoa(min(limit, MaxLimit))
}

// Search looks up query across types (track, album, artist) in the US market.
func (s *SpotifyService) Search(ctx context.Context, query string, types []string, limit int) (*models.SearchResponse, error) {
	if len(types) == 0 {
		types = []string{"track"}
	}
	for _, t := range types {
		if !slices.Contains(SearchTypes, t) {
			return nil, fmt.Errorf("%w: search type %q", shared.ErrInvalidArgument, t)
		}
	}

	q := url.Values{
		"q":      {query},
		"type":   {strings.Join(types, ",")},
		"market": {DefaultMarket},
		"limit":  {clampLimit(limit)},
	}

	var resp models.SearchResponse
	if err := s.client.GetJSON(ctx, "/search", q, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func topQuery(timeRange string, limit int) (url.Values, error) {
	if timeRange == "" {
		timeRange = DefaultTimeRange
	}
	if !slices.Contains(TimeRanges, timeRange) {
		return nil, fmt.Errorf("%w: time range %q", shared.ErrInvalidArgument, timeRange)
	}
	return url.Values{"time_range": {timeRange}, "limit": {clampLimit(limit)}}, nil
}

// TopTracks lists the user's most played tracks.
func (s *SpotifyService) TopTracks(ctx context.Context, timeRange string, limit int) (*models.Page[models.Track], error) {
	q, err := topQuery(timeRange, limit)
	if err != nil {
		return nil, err
	}
	var page models.Page[models.Track]
	if err := s.client.GetJSON(ctx, "/me/top/tracks", q, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// TopArtists lists the user's most played artists.
func (s *SpotifyService) TopArtists(ctx context.Context, timeRange string, limit int) (*models.Page[models.Artist], error) {
	q, err := topQuery(timeRange, limit)
	if err != nil {
		return nil, err
	}
	var page models.Page[models.Artist]
	if err := s.client.GetJSON(ctx, "/me/top/artists", q, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// NewReleases lists newly released albums.
func (s *SpotifyService) NewReleases(ctx context.Context, limit int) (*models.Page[models.Album], error) {
	var resp struct {
		Albums models.Page[models.Album] `json:"albums"`
	}
	q := url.Values{"limit": {clampLimit(limit)}, "country": {DefaultMarket}}
	if err := s.client.GetJSON(ctx, "/browse/new-releases", q, &resp); err != nil {
		return nil, err
	}
	return &resp.Albums, nil
}

// FeaturedPlaylists lists editorially featured playlists.
func (s *SpotifyService) FeaturedPlaylists(ctx context.Context, limit int) (*models.Page[models.Playlist], error) {
	var resp struct {
		Playlists models.Page[models.Playlist] `json:"playlists"`
	}
	if err := s.client.GetJSON(ctx, "/browse/featured-playlists", url.Values{"limit": {clampLimit(limit)}}, &resp); err != nil {
		return nil, err
	}
	return &resp.Playlists, nil
}

// Recommendations lists tracks seeded by up to five genres.
func (s *SpotifyService) Recommendations(ctx context.Context, seedGenres []string, limit int) ([]models.Track, error) {
	if len(seedGenres) == 0 {
		return nil, fmt.Errorf("%w: seed genres", shared.ErrMissingArgument)
	}
	if len(seedGenres) > 5 {
		seedGenres = seedGenres[:5]
	}

	var resp struct {
		Tracks []models.Track `json:"tracks"`
	}
	q := url.Values{
		"seed_genres": {strings.Join(seedGenres, ",")},
		"limit":       {clampLimit(limit)},
		"market":      {DefaultMarket},
	}
	if err := s.client.GetJSON(ctx, "/recommendations", q, &resp); err != nil {
		return nil, err
	}
	return resp.Tracks, nil
}

// AvailableGenres lists the genre seeds.
func (s *SpotifyService) AvailableGenres(ctx context.Context) ([]string, error) {
	var resp struct {
		Genres []string `json:"genres"`
	}
	if err := s.client.GetJSON(ctx, "/recommendations/available-genre-seeds", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Genres, nil
}

// CurrentUser fetches the signed-in user's profile.
func (s *SpotifyService) CurrentUser(ctx context.Context) (*models.UserProfile, error) {
	var user models.UserProfile
	if err := s.client.GetJSON(ctx, "/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *SpotifyService) FormatDuration(ms int) string { return formatter.FormatDuration(ms) }
func (s *SpotifyService) FormatDate(date string) string { return formatter.FormatDate(date) }
