package server

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/desertthunder/tasktube/internal/auth"
)

// CallbackResult contains the result of an OAuth authorization flow.
type CallbackResult struct {
	Credential *auth.Credential
	err        error
}

func (c *CallbackResult) Error() error {
	return c.err
}

// CallbackHandler handles OAuth2 callback requests for the authorization
// code flow. Implements the Handler interface for registration with a Router.
//
// The browser is always redirected to the root page; success or failure is
// reported only through the result channel. One callback is processed per
// flow to prevent replay attacks.
type CallbackHandler struct {
	session     *auth.Session
	resultChan  chan CallbackResult
	once        sync.Once
	callbackHit bool
	mu          sync.Mutex
}

// NewCallbackHandler creates a handler completing the given session's flow.
func NewCallbackHandler(session *auth.Session) *CallbackHandler {
	return &CallbackHandler{
		session:    session,
		resultChan: make(chan CallbackResult, 1),
	}
}

// Routes returns the HTTP routes this handler serves.
func (h *CallbackHandler) Routes() []string {
	return []string{"/oauth2callback"}
}

// ServeHTTP handles the OAuth callback request.
//
// The state parameter is validated against the in-flight session and the
// authorization code exchanged for tokens. The response is a redirect to
// the root page regardless of outcome.
func (h *CallbackHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	if h.callbackHit {
		h.mu.Unlock()
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	h.callbackHit = true
	h.mu.Unlock()

	defer http.Redirect(w, r, "/", http.StatusFound)

	query := r.URL.Query()
	if code := query.Get("code"); code == "" {
		errParam := query.Get("error")
		errDesc := query.Get("error_description")
		h.Send(CallbackResult{err: fmt.Errorf("authorization failed: %s - %s", errParam, errDesc)})
		return
	}

	cred, err := h.session.Complete(r.Context(), query.Get("state"), query.Get("code"))
	if err != nil {
		h.Send(CallbackResult{err: err})
		return
	}

	h.Send(CallbackResult{Credential: cred})
}

// Send sends the flow result through the channel (only once).
func (h *CallbackHandler) Send(result CallbackResult) {
	h.once.Do(func() {
		h.resultChan <- result
		close(h.resultChan)
	})
}

// Result returns the result channel for receiving flow completion.
//
// Channel will receive exactly one result and then be closed.
func (h *CallbackHandler) Result() <-chan CallbackResult {
	return h.resultChan
}
