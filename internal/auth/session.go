package auth

import (
	"fmt"
	"io"
	"strconv"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/explorer/internal/shared"
	"golang.org/x/oauth2"
)

// Keys of the persisted token pair. They are always cleared together.
const (
	KeyAccessToken     = "spotify_access_token"
	KeyTokenExpiration = "spotify_token_expiration"
)

// State is the authentication state of a [Session].
type State int

const (
	Unauthenticated State = iota
	Authenticated
	Expired
)

func (s State) String() string {
	switch s {
	case Authenticated:
		return "authenticated"
	case Expired:
		return "expired"
	default:
		return "unauthenticated"
	}
}

// Session tracks the access token for the music API.
//
// Session implements [oauth2.TokenSource] so it can be handed to an API client.
type Session struct {
	mu     sync.Mutex
	store  Store
	logger *log.Logger
	now    func() time.Time
}

// NewSession returns a session backed by store.
func NewSession(store Store, logger *log.Logger) *Session {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Session{store: store, logger: logger, now: time.Now}
}

// Capture stores the grant's token and, when known, its absolute expiry in epoch milliseconds.
func (s *Session) Capture(grant Grant) error {
	if grant.AccessToken == "" {
		return fmt.Errorf("%w: empty access token", shared.ErrAuthFailed)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Set(KeyAccessToken, grant.AccessToken); err != nil {
		return fmt.Errorf("failed to store access token: %w", err)
	}

	var err error
	if grant.ExpiresIn > 0 {
		expiresAt := s.now().Add(time.Duration(grant.ExpiresIn) * time.Second).UnixMilli()
		if err = s.store.Set(KeyTokenExpiration, strconv.FormatInt(expiresAt, 10)); err != nil {
			err = fmt.Errorf("failed to store token expiration: %w", err)
		}
	} else if err = s.store.Remove(KeyTokenExpiration); err != nil {
		err = fmt.Errorf("failed to clear token expiration: %w", err)
	}
	if err != nil {
		// A token without its expiry would read as valid forever.
		if rmErr := s.store.Remove(KeyAccessToken, KeyTokenExpiration); rmErr != nil {
			s.logger.Warn("failed to roll back access token", "error", rmErr)
		}
		return err
	}

	s.logger.Debug("captured access token", "expires_in", grant.ExpiresIn)
	return nil
}

// State reports the current state without modifying storage.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, _, _ := s.load()
	return state
}

// IsAuthenticated reports whether a usable token is stored.
//
// An expired token pair is removed from storage as a side effect.
func (s *Session) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, _, _ := s.load()
	if state == Expired {
		s.logger.Info("access token expired")
		s.clear()
		return false
	}
	return state == Authenticated
}

// Token returns the stored token, or [shared.ErrNotAuthenticated] (wrapping
// [shared.ErrTokenExpired] when it lapsed). An expired pair is cleared.
func (s *Session) Token() (*oauth2.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, token, expiry := s.load()
	switch state {
	case Authenticated:
		return &oauth2.Token{AccessToken: token, TokenType: "Bearer", Expiry: expiry}, nil
	case Expired:
		s.clear()
		return nil, fmt.Errorf("%w: %w", shared.ErrNotAuthenticated, shared.ErrTokenExpired)
	default:
		return nil, shared.ErrNotAuthenticated
	}
}

// ExpiresAt returns the stored expiry, or the zero time when none is stored.
func (s *Session) ExpiresAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, _, expiry := s.load()
	return expiry
}

// Logout clears the token pair.
func (s *Session) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clear()
}

// Invalidate clears the token pair after the API rejected it.
func (s *Session) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logger.Warn("access token rejected, clearing session")
	s.clear()
}

func (s *Session) load() (State, string, time.Time) {
	token, ok, err := s.store.Get(KeyAccessToken)
	if err != nil {
		s.logger.Error("failed to read access token", "error", err)
		return Unauthenticated, "", time.Time{}
	}
	if !ok || token == "" {
		return Unauthenticated, "", time.Time{}
	}

	raw, ok, err := s.store.Get(KeyTokenExpiration)
	if err != nil {
		s.logger.Error("failed to read token expiration", "error", err)
		return Unauthenticated, "", time.Time{}
	}
	if !ok || raw == "" {
		return Authenticated, token, time.Time{}
	}

	ms, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		s.logger.Warn("unreadable token expiration", "value", raw)
		return Expired, token, time.Time{}
	}
	expiry := time.UnixMilli(ms)
	if s.now().After(expiry) {
		return Expired, token, expiry
	}
	return Authenticated, token, expiry
}

func (s *Session) clear() error {
	if err := s.store.Remove(KeyAccessToken, KeyTokenExpiration); err != nil {
		s.logger.Error("failed to clear session", "error", err)
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
