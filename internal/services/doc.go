// Package services implements typed read clients for the movie catalog (TMDB) and the music
// streaming service (Spotify).
//
// # Transport
//
// Both clients sit on a [Client], which resolves paths against a fixed base URL, attaches
// credentials and decodes JSON. TMDB takes an api_key query parameter; Spotify takes a bearer
// token drawn from an [auth.Session] on every request. Optional pacing uses a token bucket
// from golang.org/x/time/rate. There is no retry, backoff or response cache.
//
// # Error Handling
//
// Non-2xx responses become an [HTTPError] wrapped in [shared.ErrAPIRequest]:
//   - [shared.ErrUnauthorized] : 401, the session is invalidated before the error returns
//   - [shared.ErrNotFound] : 404
//   - [shared.ErrServiceUnavailable] : 5xx
//
// A request made without a usable token fails with [shared.ErrNotAuthenticated] and never
// reaches the network.
//
// # Helpers
//
// [MovieService.PosterURL] and [MovieService.BackdropURL] fall back to placeholder paths when
// the record has no image. Date, money, runtime and duration formatting delegate to the
// formatter package.
package services
