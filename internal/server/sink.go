package server

import (
	"fmt"
	"net/http"
	"net/url"
	"sync"
)

// RedirectResult contains the query the backend appended to the frontend
// redirect after the code exchange.
type RedirectResult struct {
	Query url.Values
	err   error
}

func (r RedirectResult) Error() error {
	return r.err
}

// RedirectSink stands in for the frontend's /spotify route during CLI login.
// It captures the post-callback redirect query and sends it through a
// channel. Implements the [Handler] interface for registration with a Router.
//
// It only processes one redirect to prevent replay attacks.
type RedirectSink struct {
	route      string
	resultChan chan RedirectResult
	once       sync.Once
	hit        bool
	mu         sync.Mutex
}

// NewRedirectSink creates a sink serving the given route (usually /spotify).
func NewRedirectSink(route string) *RedirectSink {
	return &RedirectSink{
		route:      route,
		resultChan: make(chan RedirectResult, 1),
	}
}

// Routes returns the HTTP routes this handler serves.
func (s *RedirectSink) Routes() []string {
	return []string{s.route}
}

// ServeHTTP captures the redirect query and acknowledges the browser.
func (s *RedirectSink) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Only handle the redirect once
	s.mu.Lock()
	if s.hit {
		s.mu.Unlock()
		http.Error(w, "Redirect already processed", http.StatusBadRequest)
		return
	}
	s.hit = true
	s.mu.Unlock()

	query := r.URL.Query()
	s.Send(RedirectResult{Query: query})

	title := "✓ Authorization Complete"
	detail := "You can close this window and return to the terminal."
	if query.Has("error") {
		title = "✗ Authorization Failed"
		detail = fmt.Sprintf("The backend reported: %s. Return to the terminal for details.", query.Get("error"))
	}

	w.Header().Set("Content-Type", "text/html")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `
<!DOCTYPE html>
<html>
<head>
    <title>topspot</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
               display: flex; align-items: center; justify-content: center; height: 100vh;
               margin: 0; background: #f5f5f5; }
        .container { text-align: center; background: white; padding: 2rem;
                     border-radius: 8px; box-shadow: 0 2px 4px rgba(0,0,0,0.1); }
        h1 { color: #1DB954; margin: 0 0 1rem 0; }
        p { color: #666; margin: 0; }
    </style>
</head>
<body>
    <div class="container">
        <h1>%s</h1>
        <p>%s</p>
    </div>
</body>
</html>
`, title, detail)
}

// Send sends the redirect result through the channel (only once).
func (s *RedirectSink) Send(result RedirectResult) {
	s.once.Do(func() {
		s.resultChan <- result
		close(s.resultChan)
	})
}

// Result returns the result channel for receiving the captured redirect.
//
// Channel will receive exactly one result and then be closed.
func (s *RedirectSink) Result() <-chan RedirectResult {
	return s.resultChan
}
