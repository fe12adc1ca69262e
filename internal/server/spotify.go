package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/oauth2"

	"topspot/internal/shared"
)

const (
	stateCookieName = "spotify_auth_state"
	stateCookieTTL  = 5 * time.Minute
)

// SpotifyAuthHandler implements the companion backend endpoints for the
// authorization code flow: authorize redirect, code exchange callback, and
// refresh proxy. Implements the [Handler] interface for registration with a
// [Router].
type SpotifyAuthHandler struct {
	oauth       *oauth2.Config
	frontendURL string
	logger      *log.Logger
}

// NewSpotifyAuthHandler creates the backend handler. frontendURL is where the
// browser is redirected after the code exchange; the client consumes the
// query appended to its /spotify route.
func NewSpotifyAuthHandler(config *oauth2.Config, frontendURL string, logger *log.Logger) *SpotifyAuthHandler {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	return &SpotifyAuthHandler{
		oauth:       config,
		frontendURL: frontendURL,
		logger:      logger,
	}
}

// Routes returns the HTTP routes this handler serves.
func (h *SpotifyAuthHandler) Routes() []string {
	return []string{"/spotify/login", "/spotify/callback", "/spotify/refresh_token"}
}

// ServeHTTP dispatches to the endpoint implementations.
func (h *SpotifyAuthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/spotify/login":
		h.login(w, r)
	case "/spotify/callback":
		h.callback(w, r)
	case "/spotify/refresh_token":
		h.refreshToken(w, r)
	default:
		http.NotFound(w, r)
	}
}

// login sets the anti-CSRF state cookie and redirects to the authorize URL.
func (h *SpotifyAuthHandler) login(w http.ResponseWriter, r *http.Request) {
	state := shared.GenerateState()

	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    state,
		MaxAge:   int(stateCookieTTL.Seconds()),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, h.oauth.AuthCodeURL(state), http.StatusFound)
}

// callback verifies the state cookie, exchanges the authorization code for
// tokens, and redirects the browser back to the frontend with either the
// token pair or an error value in the query.
func (h *SpotifyAuthHandler) callback(w http.ResponseWriter, r *http.Request) {
	defer h.expireStateCookie(w)

	cookie, err := r.Cookie(stateCookieName)
	state := r.URL.Query().Get("state")
	if err != nil || state == "" || state != cookie.Value {
		h.logger.Warn("state mismatch on callback")
		h.redirectFrontend(w, r, url.Values{"error": {"state_mismatch"}})
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		h.logger.Warn("callback missing authorization code", "error", r.URL.Query().Get("error"))
		h.redirectFrontend(w, r, url.Values{"error": {"invalid_token"}})
		return
	}

	token, err := h.oauth.Exchange(r.Context(), code)
	if err != nil {
		h.logger.Warn("code exchange failed", "error", err)
		h.redirectFrontend(w, r, url.Values{"error": {"invalid_token"}})
		return
	}

	h.redirectFrontend(w, r, url.Values{
		"access_token":  {token.AccessToken},
		"refresh_token": {token.RefreshToken},
	})
}

// refreshToken proxies the refresh grant so the client never sees the client
// secret. The refresh token in the response is included only when upstream
// rotated it.
func (h *SpotifyAuthHandler) refreshToken(w http.ResponseWriter, r *http.Request) {
	refreshToken := r.URL.Query().Get("refresh_token")
	if refreshToken == "" {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid_token"})
		return
	}

	source := h.oauth.TokenSource(r.Context(), &oauth2.Token{RefreshToken: refreshToken})
	token, err := source.Token()
	if err != nil {
		h.logger.Warn("refresh grant rejected", "error", err)
		h.writeJSON(w, http.StatusBadGateway, map[string]string{"error": "invalid_token"})
		return
	}

	payload := map[string]string{"access_token": token.AccessToken}
	if token.RefreshToken != "" && token.RefreshToken != refreshToken {
		payload["refresh_token"] = token.RefreshToken
	}

	h.writeJSON(w, http.StatusOK, payload)
}

func (h *SpotifyAuthHandler) redirectFrontend(w http.ResponseWriter, r *http.Request, query url.Values) {
	target := fmt.Sprintf("%s/spotify?%s", h.frontendURL, query.Encode())
	http.Redirect(w, r, target, http.StatusFound)
}

func (h *SpotifyAuthHandler) expireStateCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    "",
		MaxAge:   -1,
		Path:     "/",
		HttpOnly: true,
	})
}

func (h *SpotifyAuthHandler) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Warn("failed to write response", "error", err)
	}
}
