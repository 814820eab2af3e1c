package auth

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/desertthunder/explorer/internal/shared"
)

// Grant is the token material carried in the redirect fragment.
type Grant struct {
	AccessToken string
	TokenType   string
	ExpiresIn   int // seconds; zero when the provider omitted it
	State       string
}

// ParseFragment extracts a [Grant] from a redirect fragment.
//
// It accepts a bare fragment with or without the leading '#', or a full redirect URL.
// An error parameter from the provider (e.g. access_denied) is reported as [shared.ErrAuthFailed].
func ParseFragment(raw string) (Grant, error) {
	raw = strings.TrimSpace(raw)
	if i := strings.Index(raw, "#"); i >= 0 {
		raw = raw[i+1:]
	}

	values, err := url.ParseQuery(raw)
	if err != nil {
		return Grant{}, fmt.Errorf("%w: malformed fragment: %v", shared.ErrAuthFailed, err)
	}

	if e := values.Get("error"); e != "" {
		return Grant{State: values.Get("state")}, fmt.Errorf("%w: %s", shared.ErrAuthFailed, e)
	}

	grant := Grant{
		AccessToken: values.Get("access_token"),
		TokenType:   values.Get("token_type"),
		State:       values.Get("state"),
	}
	if grant.AccessToken == "" {
		return Grant{}, fmt.Errorf("%w: no access_token in fragment", shared.ErrAuthFailed)
	}

	if v := values.Get("expires_in"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return Grant{}, fmt.Errorf("%w: invalid expires_in %q", shared.ErrAuthFailed, v)
		}
		grant.ExpiresIn = n
	}

	return grant, nil
}

// VerifyState fails with [shared.ErrInvalidState] when the grant does not echo the expected state.
func (g Grant) VerifyState(expected string) error {
	if expected != "" && g.State != expected {
		return shared.ErrInvalidState
	}
	return nil
}
