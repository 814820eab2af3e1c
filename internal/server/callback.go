package server

import (
	"fmt"
	"html"
	"net/http"
	"sync"

	"github.com/desertthunder/explorer/internal/auth"
	"github.com/desertthunder/explorer/internal/shared"
)

// CallbackResult is the outcome of an implicit grant redirect.
type CallbackResult struct {
	Grant auth.Grant
	Err   error
}

// CallbackHandler captures the token of an implicit grant redirect.
//
// The provider puts the token in the URL fragment, which browsers never send to a server.
// GET /callback serves a page whose script forwards the fragment to GET /callback/token
// as a query string. The first forwarded fragment is parsed, checked against the expected
// state, and delivered on Result; later ones are refused.
type CallbackHandler struct {
	state   string
	results chan CallbackResult
	once    sync.Once

	mu   sync.Mutex
	used bool
}

// NewCallbackHandler returns a handler expecting state to be echoed back.
func NewCallbackHandler(state string) *CallbackHandler {
	return &CallbackHandler{state: state, results: make(chan CallbackResult, 1)}
}

// Routes returns the HTTP routes this handler serves.
func (h *CallbackHandler) Routes() []string {
	return []string{"/callback", "/callback/token"}
}

func (h *CallbackHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	switch r.URL.Path {
	case "/callback":
		if errParam := r.URL.Query().Get("error"); errParam != "" {
			if h.claim() {
				h.Send(CallbackResult{Err: fmt.Errorf("%w: %s", shared.ErrAuthFailed, errParam)})
			}
			writePage(w, http.StatusBadRequest, "Authorization Failed", "The provider reported: "+errParam, "")
			return
		}
		writePage(w, http.StatusOK, "Completing Sign In", "Handing the token to the terminal...", bridgeScript)
	case "/callback/token":
		h.token(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (h *CallbackHandler) token(w http.ResponseWriter, r *http.Request) {
	if !h.claim() {
		http.Error(w, "Callback already processed", http.StatusBadRequest)
		return
	}

	grant, err := auth.ParseFragment(r.URL.RawQuery)
	if err == nil {
		err = grant.VerifyState(h.state)
	}
	if err != nil {
		h.Send(CallbackResult{Err: err})
		http.Error(w, "Authorization failed", http.StatusBadRequest)
		return
	}

	h.Send(CallbackResult{Grant: grant})
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, "Authorization successful. You can close this window and return to the terminal.")
}

func (h *CallbackHandler) claim() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.used {
		return false
	}
	h.used = true
	return true
}

// Send delivers the result (only once).
func (h *CallbackHandler) Send(result CallbackResult) {
	h.once.Do(func() {
		h.results <- result
		close(h.results)
	})
}

// Result returns the channel receiving exactly one result before it is closed.
func (h *CallbackHandler) Result() <-chan CallbackResult {
	return h.results
}

const bridgeScript = `
const msg = document.getElementById("msg");
const fragment = window.location.hash.substring(1);
if (!fragment) {
    msg.textContent = "No token found in the redirect.";
} else {
    fetch("/callback/token?" + fragment)
        .then((r) => r.text())
        .then((t) => { msg.textContent = t; history.replaceState(null, "", "/callback"); })
        .catch(() => { msg.textContent = "Could not reach the terminal."; });
}`

// writePage renders the status page. title and message are escaped; script is trusted.
func writePage(w http.ResponseWriter, status int, title, message, script string) {
	title, message = html.EscapeString(title), html.EscapeString(message)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	fmt.Fprintf(w, `<!DOCTYPE html>
<html>
<head>
    <title>%s</title>
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
        <p id="msg">%s</p>
    </div>
    <script>%s</script>
</body>
</html>
`, title, title, message, script)
}
