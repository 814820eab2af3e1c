// Package server runs the short-lived local HTTP server that completes a music sign-in.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method filtering.
//
// # Callback Handler
//
// [CallbackHandler] completes the implicit grant. The redirect carries the token in the URL
// fragment, so the handler serves a small page that forwards the fragment back as a query
// string. The handler parses it, checks the state parameter, and sends exactly one
// [CallbackResult] through a channel. Later callbacks are refused.
//
// # Lifecycle
//
// The login command calls [Start] on the configured callback address, opens the consent page,
// waits up to two minutes for a result, and shuts the server down.
package server
