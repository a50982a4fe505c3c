package auth

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tasktube/internal/shared"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// SessionState tracks where an interactive login stands.
type SessionState int

const (
	StateIdle SessionState = iota
	StateAwaitingRedirect
	StateExchanging
	StateAuthenticated
)

func (s SessionState) String() string {
	switch s {
	case StateAwaitingRedirect:
		return "awaiting_redirect"
	case StateExchanging:
		return "exchanging"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "idle"
	}
}

// Session drives a single interactive OAuth flow: Begin hands out the
// provider consent URL, Complete exchanges the redirect's code for tokens.
// Each Begin mints a fresh state token; a Complete carrying any other state
// is rejected so a leftover redirect from an abandoned flow cannot finish a
// newer one.
type Session struct {
	mu      sync.Mutex
	conf    *oauth2.Config
	logger  *log.Logger
	state   SessionState
	pending string
}

func NewSession(conf *oauth2.Config, logger *log.Logger) *Session {
	if logger == nil {
		logger = shared.NewLogger(os.Stderr)
	}
	return &Session{conf: conf, logger: logger}
}

// NewSessionFromSecrets builds a session from a downloaded client secrets
// file. A missing or unparseable file yields [shared.ErrMissingCredentials];
// there is no anonymous fallback.
func NewSessionFromSecrets(path, redirectURI string, logger *log.Logger) (*Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: client secrets at %s: %v", shared.ErrMissingCredentials, path, err)
	}
	conf, err := google.ConfigFromJSON(data, RequiredScopes()...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrMissingCredentials, err)
	}
	if redirectURI != "" {
		conf.RedirectURL = redirectURI
	}
	return NewSession(conf, logger), nil
}

// Config exposes the underlying OAuth configuration for the credential store.
func (s *Session) Config() *oauth2.Config {
	return s.conf
}

// State returns the current lifecycle state.
func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Begin starts (or restarts) the flow and returns the provider URL to open
// in a browser. A non-empty callbackURL overrides the configured redirect,
// which lets the caller bind the local server to an ephemeral port first.
// Offline access and a forced consent prompt are requested so the provider
// always issues a refresh token.
func (s *Session) Begin(callbackURL string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conf == nil || s.conf.ClientID == "" {
		return "", fmt.Errorf("%w: oauth client is not configured", shared.ErrMissingCredentials)
	}
	if callbackURL != "" {
		s.conf.RedirectURL = callbackURL
	}
	state, err := shared.GenerateState()
	if err != nil {
		return "", err
	}
	s.pending = state
	s.state = StateAwaitingRedirect
	url := s.conf.AuthCodeURL(s.pending,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
		oauth2.SetAuthURLParam("include_granted_scopes", "true"),
	)
	s.logger.Debug("authorization flow started", "state", s.pending)
	return url, nil
}

// Complete finishes the flow with the state and code from the provider
// redirect. The state must match the one minted by the most recent Begin;
// anything else fails with [shared.ErrStaleSession] and leaves no partial
// credential behind.
func (s *Session) Complete(ctx context.Context, state, code string) (*Credential, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateAwaitingRedirect || state == "" || state != s.pending {
		return nil, fmt.Errorf("%w: state token does not match the active flow", shared.ErrStaleSession)
	}
	s.state = StateExchanging
	tok, err := s.conf.Exchange(ctx, code)
	if err != nil {
		s.state = StateIdle
		s.pending = ""
		return nil, fmt.Errorf("%w: %v", shared.ErrExchangeFailed, err)
	}
	s.state = StateAuthenticated
	s.pending = ""
	return credentialFromToken(tok, s.conf.Scopes), nil
}

// Reset abandons any in-flight flow.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateIdle
	s.pending = ""
}
