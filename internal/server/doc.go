// Package server implements the companion OAuth backend: the only component
// that holds the Spotify client secret.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
// [Middleware] wraps handlers in reverse order (last added executes first),
// following the standard Go pattern. The [BasicRouter] implementation uses
// [http.ServeMux] internally with method filtering.
//
// # Backend Contract
//
// [SpotifyAuthHandler] serves the three endpoints the client consumes:
//
//	GET /spotify/login         → sets a short-lived anti-CSRF state cookie, 302 to the authorize URL
//	GET /spotify/callback      → verifies state, exchanges the code, 302 to {frontend}/spotify
//	                             with ?access_token=&refresh_token= or ?error=state_mismatch|invalid_token
//	GET /spotify/refresh_token → proxies the refresh grant, returning {access_token, refresh_token?}
//	                             or {"error": "invalid_token"}
//
// # Redirect Sink
//
// [RedirectSink] plays the frontend's role during CLI login: it captures the
// post-callback redirect query exactly once and hands it over a channel so
// the login command can consume the tokens (or the error) and shut the
// temporary server down. It only processes one redirect to prevent replays.
package server
