package auth

import (
	"strings"

	"github.com/desertthunder/explorer/internal/shared"
	"golang.org/x/oauth2"
)

// AuthorizeEndpoint is the provider consent page.
const AuthorizeEndpoint = "https://accounts.spotify.com/authorize"

// DefaultScopes are requested when the config does not list any.
var DefaultScopes = []string{"user-read-private", "user-read-email", "user-top-read"}

// OAuthConfig converts the credentials section into an [oauth2.Config].
//
// Only the auth endpoint is set: the implicit grant never calls the token endpoint.
func OAuthConfig(cfg shared.SpotifyConfig) *oauth2.Config {
	scopes := cfg.Scopes
	if len(scopes) == 0 {
		scopes = DefaultScopes
	}
	return &oauth2.Config{
		ClientID:    cfg.ClientID,
		RedirectURL: cfg.RedirectURI,
		Scopes:      scopes,
		Endpoint:    oauth2.Endpoint{AuthURL: AuthorizeEndpoint},
	}
}

// AuthorizeURL returns the consent URL for the implicit grant.
//
// The consent dialog is always shown so switching accounts works after logout.
func AuthorizeURL(cfg shared.SpotifyConfig, state string) (string, error) {
	if strings.TrimSpace(cfg.ClientID) == "" {
		return "", shared.ErrMissingCredentials
	}
	if cfg.RedirectURI == "" {
		return "", shared.ErrMissingConfig
	}

	return OAuthConfig(cfg).AuthCodeURL(state,
		oauth2.SetAuthURLParam("response_type", "token"),
		oauth2.SetAuthURLParam("show_dialog", "true"),
	), nil
}
