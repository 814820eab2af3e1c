// Package auth implements the client-side implicit grant used by the music views.
//
// # Authorization
//
// [AuthorizeURL] builds the provider consent URL with response_type=token. The provider redirects back
// with the access token in the URL fragment, which [ParseFragment] turns into a [Grant].
//
// # Session
//
// A [Session] owns the persisted token pair and moves between three states:
//
//	unauthenticated --Capture--> authenticated --expiry passes--> expired
//	expired --IsAuthenticated--> unauthenticated (storage cleared)
//	authenticated --Logout/Invalidate--> unauthenticated
//
// There is no refresh flow: once the token expires the user logs in again.
//
// # Storage
//
// The token pair lives in a [Store] under [KeyAccessToken] and [KeyTokenExpiration].
// [MemoryStore] is process-local, [FileStore] keeps a TOML file readable only by the user,
// and [SQLStore] uses the local_storage table created by the shared migrations.
package auth
