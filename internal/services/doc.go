// Package services implements the token lifecycle and data-acquisition
// pipeline for the Spotify Web API.
//
// # Token lifecycle
//
// The [TokenStore] interface persists the access/refresh token pair; the
// sqlite-backed implementation lives in internal/repositories. [Session] is
// the login-state controller derived from the store, and [TokenRefresher]
// exchanges the stored refresh token for a new access token through the
// companion backend (which holds the client secret).
//
// # Fetch pipeline
//
// [AuthedClient] attaches the current bearer token and returns raw responses
// without interpreting them. [SpotifyService] layers the per-call policy on
// top: successful bodies are parsed strictly against the expected shape, and
// an upstream 401 triggers exactly one refresh followed by exactly one
// re-issued request. A second 401, any non-401 error, a malformed body, or a
// network failure is terminal for that call; there is never a second refresh
// within one call.
//
// # Error handling
//
// Failures map onto sentinels from internal/shared:
//   - [shared.ErrRefreshFailed] : refresh token missing or backend refresh rejected
//   - [shared.ErrSchema] : response body or error envelope does not match the contract
//   - [shared.ErrFetchFailed] : terminal fetch failure after the permitted retry
//   - [shared.ErrAggregateFetch] : one or more per-span fetches failed, naming the span(s)
//
// Callers at the CLI/TUI boundary recover these into a user notification plus
// an empty result; only the aggregate error is surfaced to the caller to
// decide between an empty state and a retry.
package services
